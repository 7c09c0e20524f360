package tui

import (
	"context"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/glyphpad/glyph/internal/core/config"
	"github.com/glyphpad/glyph/internal/editor"
	"github.com/glyphpad/glyph/pkg/executil"
	"github.com/glyphpad/glyph/pkg/tmpl"
)

// UIState represents the current state of the TUI.
type UIState int

const (
	stateEditing UIState = iota
	stateConfirmingQuit
	stateConfirmingAction
	stateScheme
)

// Key constants for event handling.
const (
	keyEnter = "enter"
	keyCtrlC = "ctrl+c"
)

// IDSource produces identifiers for the pad to insert.
type IDSource interface {
	Generate() (string, error)
}

// Options configures the pad behavior.
type Options struct {
	File     string            // file backing the pad (empty for a scratch buffer)
	Text     string            // initial buffer contents
	Executor executil.Executor // runs keybinding commands (defaults to RealExecutor)
}

// Model is the main Bubble Tea model for the pad.
type Model struct {
	cfg     *config.Config
	gen     IDSource
	handler *KeybindingHandler
	buffer  *editor.Buffer
	file    string

	state   UIState
	modal   Modal
	scheme  SchemeModal
	pending Action

	help help.Model
	keys padKeyMap

	width     int
	height    int
	scrollRow int // first visible buffer row
	scrollCol int // first visible display column

	lastID    string
	status    string
	statusErr bool
	quitting  bool
}

// actionDoneMsg is sent when a keybinding command finishes.
type actionDoneMsg struct {
	action Action
	out    []byte
	err    error
}

// padKeyMap describes the built-in pad keys for the bubbles help component.
type padKeyMap struct {
	InsertID key.Binding
	Replace  key.Binding
	Mark     key.Binding
	Save     key.Binding
	Scheme   key.Binding
	Quit     key.Binding
	custom   []key.Binding
}

func newPadKeyMap(custom []key.Binding) padKeyMap {
	return padKeyMap{
		InsertID: key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("ctrl+g", "insert id")),
		Replace:  key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "replace selection")),
		Mark:     key.NewBinding(key.WithKeys("ctrl+@"), key.WithHelp("ctrl+space", "set mark")),
		Save:     key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Scheme:   key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "id scheme")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+q"), key.WithHelp("ctrl+q", "quit")),
		custom:   custom,
	}
}

// ShortHelp returns the bindings shown in the single-line help view.
func (k padKeyMap) ShortHelp() []key.Binding {
	bindings := []key.Binding{k.InsertID, k.Replace, k.Save, k.Scheme, k.Quit}
	return append(bindings, k.custom...)
}

// FullHelp returns bindings for the expanded help view.
func (k padKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.InsertID, k.Replace, k.Mark},
		{k.Save, k.Scheme, k.Quit},
		k.custom,
	}
}

// New creates a new pad model.
func New(gen IDSource, cfg *config.Config, opts Options) Model {
	executor := opts.Executor
	if executor == nil {
		executor = &executil.RealExecutor{}
	}

	handler := NewKeybindingHandler(cfg.Keybindings, executor)

	h := help.New()
	helpStyle := lipgloss.NewStyle().Foreground(colorGray)
	h.Styles.ShortKey = helpStyle
	h.Styles.ShortDesc = helpStyle
	h.Styles.ShortSeparator = helpStyle
	h.Styles.FullKey = helpStyle
	h.Styles.FullDesc = helpStyle
	h.Styles.FullSeparator = helpStyle
	h.ShortSeparator = " " + iconDot + " "

	return Model{
		cfg:     cfg,
		gen:     gen,
		handler: handler,
		buffer:  editor.New(opts.Text),
		file:    opts.File,
		state:   stateEditing,
		help:    h,
		keys:    newPadKeyMap(handler.KeyBindings()),
	}
}

// Buffer exposes the underlying buffer. Used by the pad command after exit
// and by tests.
func (m Model) Buffer() *editor.Buffer {
	return m.buffer
}

// LastID returns the most recently generated ID, if any.
func (m Model) LastID() string {
	return m.lastID
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.clampScroll()
		return m, nil

	case actionDoneMsg:
		if msg.err != nil {
			m.setStatusError(msg.action.Key + ": " + msg.err.Error())
			return m, nil
		}
		detail := firstLine(string(msg.out))
		if detail != "" {
			m.setStatus(msg.action.Key + ": " + detail)
		} else {
			m.setStatus(msg.action.Key + ": done")
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// handleKey processes key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keyStr := msg.String()

	// Handle modal states first
	switch m.state {
	case stateScheme:
		return m.handleSchemeKey(msg, keyStr)
	case stateConfirmingQuit:
		return m.handleConfirmQuitKey(keyStr)
	case stateConfirmingAction:
		return m.handleConfirmActionKey(keyStr)
	}

	return m.handleEditingKey(msg, keyStr)
}

// handleSchemeKey handles keys while the scheme modal is shown.
func (m Model) handleSchemeKey(msg tea.KeyMsg, keyStr string) (tea.Model, tea.Cmd) {
	switch keyStr {
	case keyCtrlC:
		m.quitting = true
		return m, tea.Quit
	case "esc", keyEnter, "q":
		m.state = stateEditing
		return m, nil
	case "up", "k":
		m.scheme.ScrollUp()
		return m, nil
	case "down", "j":
		m.scheme.ScrollDown()
		return m, nil
	default:
		// Pass other messages to viewport for mouse wheel etc
		m.scheme.UpdateViewport(msg)
		return m, nil
	}
}

// handleConfirmQuitKey handles keys while the unsaved-changes modal is shown.
func (m Model) handleConfirmQuitKey(keyStr string) (tea.Model, tea.Cmd) {
	switch keyStr {
	case keyEnter:
		if m.modal.ConfirmSelected() {
			m.quitting = true
			return m, tea.Quit
		}
		m.state = stateEditing
		return m, nil
	case "esc":
		m.state = stateEditing
		return m, nil
	case "left", "right", "h", "l", "tab":
		m.modal.ToggleSelection()
		return m, nil
	}
	return m, nil
}

// handleConfirmActionKey handles keys while an action confirmation is shown.
func (m Model) handleConfirmActionKey(keyStr string) (tea.Model, tea.Cmd) {
	switch keyStr {
	case keyEnter:
		m.state = stateEditing
		if m.modal.ConfirmSelected() {
			action := m.pending
			m.pending = Action{}
			return m, m.executeAction(action)
		}
		m.pending = Action{}
		return m, nil
	case "esc":
		m.state = stateEditing
		m.pending = Action{}
		return m, nil
	case "left", "right", "h", "l", "tab":
		m.modal.ToggleSelection()
		return m, nil
	}
	return m, nil
}

// handleEditingKey handles keys in the editing state.
func (m Model) handleEditingKey(msg tea.KeyMsg, keyStr string) (tea.Model, tea.Cmd) {
	m.status = ""
	m.statusErr = false

	switch keyStr {
	case keyCtrlC, "ctrl+q":
		if m.buffer.Modified() {
			m.state = stateConfirmingQuit
			m.modal = NewModal("Unsaved Changes", "Quit without saving?")
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit

	case "ctrl+g":
		m.insertID()

	case "ctrl+r":
		m.replaceSelection()

	case "ctrl+@", "ctrl+space":
		m.buffer.SetMark()
		m.setStatus("mark set")

	case "ctrl+s":
		m.save()

	case "ctrl+d":
		m.scheme = NewSchemeModal(m.width, m.height)
		m.state = stateScheme
		return m, nil

	case "esc":
		if _, _, ok := m.buffer.Selection(); ok {
			m.buffer.ClearMark()
			m.setStatus("mark cleared")
		}

	case "up":
		m.buffer.MoveUp()
	case "down":
		m.buffer.MoveDown()
	case "left":
		m.buffer.MoveLeft()
	case "right":
		m.buffer.MoveRight()
	case "home":
		m.buffer.MoveLineStart()
	case "end":
		m.buffer.MoveLineEnd()
	case "pgup":
		cur := m.buffer.Cursor()
		m.buffer.MoveTo(editor.Position{Row: cur.Row - m.editorHeight(), Col: cur.Col})
	case "pgdown":
		cur := m.buffer.Cursor()
		m.buffer.MoveTo(editor.Position{Row: cur.Row + m.editorHeight(), Col: cur.Col})

	case keyEnter:
		m.buffer.InsertNewline()
	case "backspace":
		m.buffer.DeleteBackward()
	case "delete":
		m.buffer.DeleteForward()
	case "tab":
		m.buffer.InsertAtCursor(strings.Repeat(" ", max(m.cfg.Editor.TabWidth, 1)))

	default:
		// Custom keybindings from config
		if action, ok := m.handler.Resolve(keyStr, m.actionContext()); ok {
			if action.NeedsConfirm() {
				m.state = stateConfirmingAction
				m.pending = action
				m.modal = NewModal("Confirm", action.Confirm)
				return m, nil
			}
			return m, m.executeAction(action)
		}

		// Plain text input
		switch msg.Type {
		case tea.KeyRunes:
			if !msg.Alt {
				m.buffer.InsertAtCursor(normalizeInput(string(msg.Runes)))
			}
		case tea.KeySpace:
			m.buffer.InsertRune(' ')
		}
	}

	m.clampScroll()
	return m, nil
}

// insertID generates a fresh ID and inserts it through the insert format.
func (m *Model) insertID() {
	rendered, id, err := m.renderInsert()
	if err != nil {
		m.setStatusError(err.Error())
		return
	}
	m.buffer.InsertAtCursor(rendered)
	m.lastID = id
	m.setStatus("inserted " + id)
}

// replaceSelection swaps the selected text for a freshly generated ID.
func (m *Model) replaceSelection() {
	if _, _, ok := m.buffer.Selection(); !ok {
		m.setStatusError("no selection")
		return
	}
	rendered, id, err := m.renderInsert()
	if err != nil {
		m.setStatusError(err.Error())
		return
	}
	m.buffer.ReplaceSelection(rendered)
	m.lastID = id
	m.setStatus("replaced with " + id)
}

// renderInsert generates an ID and renders it through editor.insert_format.
func (m *Model) renderInsert() (rendered, id string, err error) {
	id, err = m.gen.Generate()
	if err != nil {
		return "", "", err
	}
	rendered, err = tmpl.Render(m.cfg.Editor.InsertFormat, config.InsertTemplateData{ID: id})
	if err != nil {
		return "", "", err
	}
	return rendered, id, nil
}

// save writes the buffer back to the backing file.
func (m *Model) save() {
	if m.file == "" {
		m.setStatusError("scratch pad has no file to save to")
		return
	}
	if err := os.WriteFile(m.file, []byte(m.buffer.Text()), 0o644); err != nil {
		m.setStatusError("save: " + err.Error())
		return
	}
	m.buffer.ClearModified()
	m.setStatus("saved " + m.file)
}

// actionContext builds the template data for custom keybindings. A fresh ID
// is generated when nothing was inserted yet.
func (m *Model) actionContext() ActionContext {
	id := m.lastID
	if id == "" {
		if fresh, err := m.gen.Generate(); err == nil {
			id = fresh
			m.lastID = fresh
		}
	}
	return ActionContext{
		ID:        id,
		File:      m.file,
		Selection: m.buffer.SelectedText(),
	}
}

// executeAction returns a command that executes the given action.
func (m Model) executeAction(action Action) tea.Cmd {
	return func() tea.Msg {
		out, err := m.handler.Execute(context.Background(), action)
		return actionDoneMsg{action: action, out: out, err: err}
	}
}

func (m *Model) setStatus(msg string) {
	m.status = msg
	m.statusErr = false
}

func (m *Model) setStatusError(msg string) {
	m.status = msg
	m.statusErr = true
}

// editorHeight returns the number of buffer rows visible on screen.
func (m Model) editorHeight() int {
	h := m.height - 2 // status bar + help line
	if h < 1 {
		h = 1
	}
	return h
}

// editorTextWidth returns the display columns available for buffer text.
func (m Model) editorTextWidth() int {
	w := m.width
	if w == 0 {
		w = 80
	}
	w -= gutterWidth(m.buffer.LineCount())
	if w < 1 {
		w = 1
	}
	return w
}

// clampScroll keeps the cursor inside the visible window.
func (m *Model) clampScroll() {
	cur := m.buffer.Cursor()
	viewH := m.editorHeight()

	if cur.Row < m.scrollRow {
		m.scrollRow = cur.Row
	}
	if cur.Row >= m.scrollRow+viewH {
		m.scrollRow = cur.Row - viewH + 1
	}
	if m.scrollRow < 0 {
		m.scrollRow = 0
	}

	textW := m.editorTextWidth()
	vcol := visualCol([]rune(m.buffer.Line(cur.Row)), cur.Col, m.cfg.Editor.TabWidth)
	if vcol < m.scrollCol {
		m.scrollCol = vcol
	}
	if vcol >= m.scrollCol+textW {
		m.scrollCol = vcol - textW + 1
	}
	if m.scrollCol < 0 {
		m.scrollCol = 0
	}
}

// isScratch returns true while the pad shows the splash screen.
func (m Model) isScratch() bool {
	return m.file == "" && !m.buffer.Modified() && m.buffer.Text() == ""
}

// View renders the TUI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	w, h := m.width, m.height
	if w == 0 {
		w = 80
	}
	if h == 0 {
		h = 24
	}

	switch m.state {
	case stateScheme:
		return m.scheme.Overlay(w, h)
	case stateConfirmingQuit, stateConfirmingAction:
		return m.modal.Overlay(w, h)
	}

	editorH := m.editorHeight()

	var body string
	if m.isScratch() {
		body = renderSplash(w, editorH)
	} else {
		body = renderEditor(m.buffer, m.scrollRow, m.scrollCol, w, editorH, m.cfg.Editor.TabWidth)
	}

	statusBar := renderStatusBar(statusBarData{
		file:      m.file,
		modified:  m.buffer.Modified(),
		cursor:    m.buffer.Cursor(),
		lineCount: m.buffer.LineCount(),
		lastID:    m.lastID,
		status:    m.status,
		statusErr: m.statusErr,
		width:     w,
	})

	return lipgloss.JoinVertical(lipgloss.Left, body, statusBar, m.help.View(m.keys))
}

// normalizeInput converts terminal newline variants to plain newlines.
// Bracketed paste delivers multi-line text as a single key message.
func normalizeInput(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// firstLine returns the first non-empty line of s, trimmed.
func firstLine(s string) string {
	for line := range strings.Lines(s) {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
