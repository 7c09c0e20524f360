package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/glyphpad/glyph/internal/editor"
	"github.com/glyphpad/glyph/internal/styles"
)

// visualCell is one display column of a rendered line. col is the rune index
// the cell came from, so tabs map several cells back to one rune.
type visualCell struct {
	r   rune
	col int
}

// gutterWidth returns the width of the line number column, including the
// separating space.
func gutterWidth(lineCount int) int {
	w := len(fmt.Sprint(lineCount))
	if w < 3 {
		w = 3
	}
	return w + 1
}

// expandLine converts a buffer line to display cells, expanding tabs.
func expandLine(line []rune, tabWidth int) []visualCell {
	if tabWidth < 1 {
		tabWidth = 1
	}
	cells := make([]visualCell, 0, len(line))
	for i, r := range line {
		if r == '\t' {
			for range tabWidth {
				cells = append(cells, visualCell{r: ' ', col: i})
			}
			continue
		}
		cells = append(cells, visualCell{r: r, col: i})
	}
	return cells
}

// visualCol maps a rune column to its display column.
func visualCol(line []rune, col, tabWidth int) int {
	if tabWidth < 1 {
		tabWidth = 1
	}
	v := 0
	for i := 0; i < col && i < len(line); i++ {
		if line[i] == '\t' {
			v += tabWidth
		} else {
			v++
		}
	}
	return v
}

// lineRenderOpts carries per-line rendering state.
type lineRenderOpts struct {
	cursorHere bool
	cursorCol  int // rune column
	selected   bool
	selFrom    int // rune columns, half-open
	selTo      int
	scrollCol  int // display columns
	textWidth  int
	tabWidth   int
}

// renderLine renders one buffer line into display space, applying selection
// and cursor styling.
func renderLine(line []rune, opts lineRenderOpts) string {
	cells := expandLine(line, opts.tabWidth)

	cursorV := -1
	if opts.cursorHere {
		cursorV = visualCol(line, opts.cursorCol, opts.tabWidth)
	}

	selFromV, selToV := -1, -1
	if opts.selected {
		selFromV = visualCol(line, opts.selFrom, opts.tabWidth)
		selToV = visualCol(line, opts.selTo, opts.tabWidth)
	}

	// The cursor may sit one past the last cell; render a cell for it.
	end := len(cells)
	if cursorV+1 > end {
		end = cursorV + 1
	}
	if end > opts.scrollCol+opts.textWidth {
		end = opts.scrollCol + opts.textWidth
	}

	var b strings.Builder
	for v := opts.scrollCol; v < end; v++ {
		ch := " "
		if v < len(cells) {
			ch = string(cells[v].r)
		}
		switch {
		case v == cursorV:
			b.WriteString(cursorStyle.Render(ch))
		case v < len(cells) && v >= selFromV && v < selToV:
			b.WriteString(selectionStyle.Render(ch))
		default:
			b.WriteString(ch)
		}
	}
	return b.String()
}

// renderEditor renders the visible window of the buffer with a line number
// gutter. Lines past the end of the buffer render as "~" like less or vim.
func renderEditor(buf *editor.Buffer, scrollRow, scrollCol, width, height, tabWidth int) string {
	gw := gutterWidth(buf.LineCount())
	textWidth := width - gw
	if textWidth < 1 {
		textWidth = 1
	}

	cursor := buf.Cursor()
	selStart, selEnd, hasSel := buf.Selection()

	lines := make([]string, 0, height)
	for i := range height {
		row := scrollRow + i
		if row >= buf.LineCount() {
			lines = append(lines, gutterStyle.Render(fmt.Sprintf("%*s ", gw-1, "~")))
			continue
		}

		num := fmt.Sprintf("%*d ", gw-1, row+1)
		gutter := gutterStyle.Render(num)
		if row == cursor.Row {
			gutter = gutterActiveStyle.Render(num)
		}

		line := []rune(buf.Line(row))
		opts := lineRenderOpts{
			cursorHere: row == cursor.Row,
			cursorCol:  cursor.Col,
			scrollCol:  scrollCol,
			textWidth:  textWidth,
			tabWidth:   tabWidth,
		}
		if hasSel && row >= selStart.Row && row <= selEnd.Row {
			opts.selected = true
			opts.selFrom = 0
			opts.selTo = len(line)
			if row == selStart.Row {
				opts.selFrom = selStart.Col
			}
			if row == selEnd.Row {
				opts.selTo = selEnd.Col
			}
		}

		lines = append(lines, gutter+renderLine(line, opts))
	}

	return strings.Join(lines, "\n")
}

// statusBarData carries everything the status bar displays.
type statusBarData struct {
	file      string
	modified  bool
	cursor    editor.Position
	lineCount int
	lastID    string
	status    string
	statusErr bool
	width     int
}

// renderStatusBar renders the single status line under the editor.
func renderStatusBar(d statusBarData) string {
	name := d.file
	if name == "" {
		name = "[scratch]"
	}

	left := " " + statusFileStyle.Render(name)
	if d.modified {
		left += " " + statusModifiedStyle.Render("[+]")
	}
	if d.status != "" {
		style := statusMsgStyle
		if d.statusErr {
			style = statusErrStyle
		}
		left += "  " + style.Render(d.status)
	}

	right := ""
	if d.lastID != "" {
		right = statusIDStyle.Render(d.lastID) + "  "
	}
	right += statusInfoStyle.Render(fmt.Sprintf("%d:%d %s %dL ", d.cursor.Row+1, d.cursor.Col+1, iconDot, d.lineCount))

	gap := d.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

// renderSplash renders the start screen shown for an empty scratch pad.
func renderSplash(width, height int) string {
	hints := []string{
		"ctrl+g  insert a fresh ID",
		"ctrl+d  view the ID scheme",
		"ctrl+q  quit",
	}

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		styles.BannerStyle.Render(styles.Banner),
		"",
		splashHintStyle.Render(strings.Join(hints, "\n")),
	)

	return lipgloss.Place(
		width, height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
}
