// Package editor implements the pad's text buffer: lines of runes, a
// cursor, and an optional mark delimiting a selection. The buffer does no
// I/O and knows nothing about rendering, so it is testable without a
// terminal.
package editor

import (
	"slices"
	"strings"
)

// Position addresses a rune in the buffer. Row is the line index and Col
// the rune offset within that line; Col == line length is the insert
// position at end of line.
type Position struct {
	Row int
	Col int
}

// Less reports whether p is strictly before q in document order.
func (p Position) Less(q Position) bool {
	return p.Row < q.Row || (p.Row == q.Row && p.Col < q.Col)
}

// Buffer is an editable text document. It is not safe for concurrent use;
// the pad confines it to the Bubble Tea update loop.
type Buffer struct {
	lines    [][]rune
	cursor   Position
	mark     *Position
	modified bool
}

// New returns a Buffer holding text, cursor at the origin. The empty string
// yields a single empty line.
func New(text string) *Buffer {
	parts := strings.Split(text, "\n")
	b := &Buffer{lines: make([][]rune, len(parts))}
	for i, p := range parts {
		b.lines[i] = []rune(p)
	}
	return b
}

// Text reassembles the document.
func (b *Buffer) Text() string {
	var sb strings.Builder
	for i, line := range b.lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(string(line))
	}
	return sb.String()
}

// LineCount returns the number of lines. Never zero.
func (b *Buffer) LineCount() int { return len(b.lines) }

// Line returns line i as a string. Out-of-range rows return "".
func (b *Buffer) Line(i int) string {
	if i < 0 || i >= len(b.lines) {
		return ""
	}
	return string(b.lines[i])
}

// Cursor returns the current cursor position.
func (b *Buffer) Cursor() Position { return b.cursor }

// Modified reports whether the buffer changed since the last ClearModified.
func (b *Buffer) Modified() bool { return b.modified }

// ClearModified marks the buffer clean, typically after a save.
func (b *Buffer) ClearModified() { b.modified = false }

// SetMark anchors a selection at the cursor. Moving the cursor afterwards
// extends the selection; any edit other than ReplaceSelection drops it.
func (b *Buffer) SetMark() {
	p := b.cursor
	b.mark = &p
}

// ClearMark drops the selection anchor.
func (b *Buffer) ClearMark() { b.mark = nil }

// Selection returns the selected span in document order. The span is
// end-exclusive. ok is false when no mark is set or the mark sits on the
// cursor.
func (b *Buffer) Selection() (start, end Position, ok bool) {
	if b.mark == nil || *b.mark == b.cursor {
		return Position{}, Position{}, false
	}
	start, end = *b.mark, b.cursor
	if end.Less(start) {
		start, end = end, start
	}
	return start, end, true
}

// SelectedText returns the text inside the selection, "" when there is
// none.
func (b *Buffer) SelectedText() string {
	start, end, ok := b.Selection()
	if !ok {
		return ""
	}
	if start.Row == end.Row {
		return string(b.lines[start.Row][start.Col:end.Col])
	}
	var sb strings.Builder
	sb.WriteString(string(b.lines[start.Row][start.Col:]))
	for r := start.Row + 1; r < end.Row; r++ {
		sb.WriteByte('\n')
		sb.WriteString(string(b.lines[r]))
	}
	sb.WriteByte('\n')
	sb.WriteString(string(b.lines[end.Row][:end.Col]))
	return sb.String()
}

// InsertAtCursor inserts text at the cursor and leaves the cursor after the
// inserted run. Newlines split lines.
func (b *Buffer) InsertAtCursor(s string) {
	if s == "" {
		return
	}
	b.cursor = b.insertTextAt(b.cursor, s)
	b.mark = nil
	b.modified = true
}

// InsertRune inserts a single rune at the cursor.
func (b *Buffer) InsertRune(r rune) {
	b.InsertAtCursor(string(r))
}

// InsertNewline splits the current line at the cursor.
func (b *Buffer) InsertNewline() {
	b.InsertAtCursor("\n")
}

// ReplaceSelection substitutes the selection with s, clears the mark, and
// leaves the cursor after the inserted text. Without a selection it is a
// no-op returning false.
func (b *Buffer) ReplaceSelection(s string) bool {
	start, end, ok := b.Selection()
	if !ok {
		return false
	}
	b.deleteRange(start, end)
	b.cursor = b.insertTextAt(start, s)
	b.mark = nil
	b.modified = true
	return true
}

// DeleteBackward removes the selection if one exists, otherwise the rune
// before the cursor. At the start of a line it joins with the previous
// line.
func (b *Buffer) DeleteBackward() {
	if start, end, ok := b.Selection(); ok {
		b.deleteRange(start, end)
		b.cursor = start
		b.mark = nil
		b.modified = true
		return
	}
	cur := b.cursor
	switch {
	case cur.Col > 0:
		b.deleteRange(Position{Row: cur.Row, Col: cur.Col - 1}, cur)
		b.cursor.Col--
	case cur.Row > 0:
		prevLen := len(b.lines[cur.Row-1])
		b.deleteRange(Position{Row: cur.Row - 1, Col: prevLen}, cur)
		b.cursor = Position{Row: cur.Row - 1, Col: prevLen}
	default:
		return
	}
	b.mark = nil
	b.modified = true
}

// DeleteForward removes the selection if one exists, otherwise the rune
// under the cursor. At the end of a line it joins with the next line.
func (b *Buffer) DeleteForward() {
	if start, end, ok := b.Selection(); ok {
		b.deleteRange(start, end)
		b.cursor = start
		b.mark = nil
		b.modified = true
		return
	}
	cur := b.cursor
	switch {
	case cur.Col < len(b.lines[cur.Row]):
		b.deleteRange(cur, Position{Row: cur.Row, Col: cur.Col + 1})
	case cur.Row < len(b.lines)-1:
		b.deleteRange(cur, Position{Row: cur.Row + 1, Col: 0})
	default:
		return
	}
	b.mark = nil
	b.modified = true
}

// MoveLeft moves the cursor one rune back, wrapping to the previous line
// end.
func (b *Buffer) MoveLeft() {
	switch {
	case b.cursor.Col > 0:
		b.cursor.Col--
	case b.cursor.Row > 0:
		b.cursor.Row--
		b.cursor.Col = len(b.lines[b.cursor.Row])
	}
}

// MoveRight moves the cursor one rune forward, wrapping to the next line
// start.
func (b *Buffer) MoveRight() {
	switch {
	case b.cursor.Col < len(b.lines[b.cursor.Row]):
		b.cursor.Col++
	case b.cursor.Row < len(b.lines)-1:
		b.cursor.Row++
		b.cursor.Col = 0
	}
}

// MoveUp moves the cursor one line up, clamping the column.
func (b *Buffer) MoveUp() {
	if b.cursor.Row == 0 {
		return
	}
	b.cursor.Row--
	b.clampCursorCol()
}

// MoveDown moves the cursor one line down, clamping the column.
func (b *Buffer) MoveDown() {
	if b.cursor.Row >= len(b.lines)-1 {
		return
	}
	b.cursor.Row++
	b.clampCursorCol()
}

// MoveLineStart moves the cursor to column zero.
func (b *Buffer) MoveLineStart() { b.cursor.Col = 0 }

// MoveLineEnd moves the cursor past the last rune of the line.
func (b *Buffer) MoveLineEnd() { b.cursor.Col = len(b.lines[b.cursor.Row]) }

// MoveTo places the cursor at p, clamped into the document.
func (b *Buffer) MoveTo(p Position) {
	b.cursor = b.clamp(p)
}

func (b *Buffer) clampCursorCol() {
	if n := len(b.lines[b.cursor.Row]); b.cursor.Col > n {
		b.cursor.Col = n
	}
}

func (b *Buffer) clamp(p Position) Position {
	if p.Row < 0 {
		p.Row = 0
	}
	if p.Row >= len(b.lines) {
		p.Row = len(b.lines) - 1
	}
	if p.Col < 0 {
		p.Col = 0
	}
	if n := len(b.lines[p.Row]); p.Col > n {
		p.Col = n
	}
	return p
}

// insertTextAt splices s into the document at p and returns the position
// just past the inserted text. p must already be in range.
func (b *Buffer) insertTextAt(p Position, s string) Position {
	parts := strings.Split(s, "\n")
	line := b.lines[p.Row]
	head := slices.Clone(line[:p.Col])
	tail := slices.Clone(line[p.Col:])

	if len(parts) == 1 {
		ins := []rune(parts[0])
		b.lines[p.Row] = append(append(head, ins...), tail...)
		return Position{Row: p.Row, Col: p.Col + len(ins)}
	}

	newLines := make([][]rune, 0, len(parts))
	newLines = append(newLines, append(head, []rune(parts[0])...))
	for i := 1; i < len(parts)-1; i++ {
		newLines = append(newLines, []rune(parts[i]))
	}
	last := []rune(parts[len(parts)-1])
	endCol := len(last)
	newLines = append(newLines, append(last, tail...))

	b.lines = append(b.lines[:p.Row], append(newLines, b.lines[p.Row+1:]...)...)
	return Position{Row: p.Row + len(parts) - 1, Col: endCol}
}

// deleteRange removes the end-exclusive span [start, end). Both positions
// must be in range and ordered.
func (b *Buffer) deleteRange(start, end Position) {
	if start.Row == end.Row {
		line := b.lines[start.Row]
		b.lines[start.Row] = append(slices.Clone(line[:start.Col]), line[end.Col:]...)
		return
	}
	head := slices.Clone(b.lines[start.Row][:start.Col])
	merged := append(head, b.lines[end.Row][end.Col:]...)
	b.lines = append(b.lines[:start.Row], append([][]rune{merged}, b.lines[end.Row+1:]...)...)
}
