package tui

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glyphpad/glyph/internal/core/config"
	"github.com/glyphpad/glyph/pkg/executil"
)

// stubIDSource returns scripted IDs in order, repeating the last one.
type stubIDSource struct {
	ids []string
	n   int
	err error
}

func (s *stubIDSource) Generate() (string, error) {
	if s.err != nil {
		return "", s.err
	}
	if len(s.ids) == 0 {
		return "", errors.New("no ids scripted")
	}
	id := s.ids[min(s.n, len(s.ids)-1)]
	s.n++
	return id, nil
}

func newTestModel(t *testing.T, cfg *config.Config, opts Options) Model {
	t.Helper()
	if cfg == nil {
		c := config.DefaultConfig()
		cfg = &c
	}
	if opts.Executor == nil {
		opts.Executor = &executil.RecordingExecutor{}
	}

	gen := &stubIDSource{ids: []string{"tz4a98xxat96iws9zmbrgj3a", "pfh0haxfpzowht3oi213cqos"}}
	m := New(gen, cfg, opts)

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return updated.(Model)
}

// press sends a single key message and returns the updated model and command.
func press(t *testing.T, m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

// typeText sends printable text rune by rune.
func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	for _, r := range text {
		var msg tea.KeyMsg
		if r == ' ' {
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		} else {
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
		}
		m, _ = press(t, m, msg)
	}
	return m
}

func TestModel_TypingUpdatesBuffer(t *testing.T) {
	m := newTestModel(t, nil, Options{})

	m = typeText(t, m, "hello id")
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = typeText(t, m, "second")

	assert.Equal(t, "hello id\nsecond", m.Buffer().Text())
	assert.True(t, m.Buffer().Modified())
}

func TestModel_InsertID(t *testing.T) {
	m := newTestModel(t, nil, Options{})

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlG})

	assert.Equal(t, "tz4a98xxat96iws9zmbrgj3a", m.Buffer().Text())
	assert.Equal(t, "tz4a98xxat96iws9zmbrgj3a", m.LastID())
	assert.Contains(t, m.status, "inserted")
}

func TestModel_InsertID_UsesInsertFormat(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Editor.InsertFormat = "^{{ .ID }}"
	m := newTestModel(t, &cfg, Options{})

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlG})

	assert.Equal(t, "^tz4a98xxat96iws9zmbrgj3a", m.Buffer().Text())
}

func TestModel_InsertID_GeneratorError(t *testing.T) {
	cfg := config.DefaultConfig()
	m := New(&stubIDSource{err: errors.New("entropy exhausted")}, &cfg, Options{
		Executor: &executil.RecordingExecutor{},
	})

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlG})
	m = updated.(Model)

	assert.Empty(t, m.Buffer().Text())
	assert.True(t, m.statusErr)
	assert.Contains(t, m.status, "entropy exhausted")
}

func TestModel_ReplaceSelection(t *testing.T) {
	m := newTestModel(t, nil, Options{})

	m = typeText(t, m, "id: PLACEHOLDER")

	// Select "PLACEHOLDER": mark at col 4, cursor at end of line.
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyHome})
	for range 4 {
		m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	}
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlAt})
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnd})
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})

	assert.Equal(t, "id: tz4a98xxat96iws9zmbrgj3a", m.Buffer().Text())
	assert.Equal(t, "tz4a98xxat96iws9zmbrgj3a", m.LastID())
}

func TestModel_ReplaceSelection_NoSelection(t *testing.T) {
	m := newTestModel(t, nil, Options{})
	m = typeText(t, m, "text")

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})

	assert.Equal(t, "text", m.Buffer().Text())
	assert.True(t, m.statusErr)
	assert.Contains(t, m.status, "no selection")
}

func TestModel_TabInsertsSpaces(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Editor.TabWidth = 2
	m := newTestModel(t, &cfg, Options{})

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})

	assert.Equal(t, "  ", m.Buffer().Text())
}

func TestModel_QuitCleanBuffer(t *testing.T) {
	m := newTestModel(t, nil, Options{})

	_, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyCtrlQ})

	require.NotNil(t, cmd)
	_, isQuit := cmd().(tea.QuitMsg)
	assert.True(t, isQuit)
}

func TestModel_QuitModifiedAsksConfirmation(t *testing.T) {
	m := newTestModel(t, nil, Options{})
	m = typeText(t, m, "unsaved")

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyCtrlQ})

	assert.Nil(t, cmd)
	assert.Equal(t, stateConfirmingQuit, m.state)
	assert.Contains(t, stripANSI(m.View()), "Unsaved Changes")

	// Escape returns to editing without quitting.
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, stateEditing, m.state)

	// Confirming quits.
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlQ})
	m, cmd = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	_, isQuit := cmd().(tea.QuitMsg)
	assert.True(t, isQuit)
}

func TestModel_QuitConfirmCancelButton(t *testing.T) {
	m := newTestModel(t, nil, Options{})
	m = typeText(t, m, "unsaved")

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlQ})
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRight}) // select Cancel
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Equal(t, stateEditing, m.state)
	assert.Equal(t, "unsaved", m.Buffer().Text())
}

func TestModel_Save(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.md")
	m := newTestModel(t, nil, Options{File: path})

	m = typeText(t, m, "saved text")
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "saved text", string(data))
	assert.False(t, m.Buffer().Modified())
	assert.Contains(t, m.status, "saved")
}

func TestModel_SaveScratchFails(t *testing.T) {
	m := newTestModel(t, nil, Options{})
	m = typeText(t, m, "text")

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	assert.True(t, m.statusErr)
	assert.True(t, m.Buffer().Modified())
}

func TestModel_CustomKeybinding(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Keybindings = map[string]config.Keybinding{
		"ctrl+y": {Sh: "printf %s '{{ .ID }}'", Help: "copy id"},
	}
	executor := &executil.RecordingExecutor{
		Outputs: map[string][]byte{"sh": []byte("tz4a98xxat96iws9zmbrgj3a")},
	}
	m := newTestModel(t, &cfg, Options{Executor: executor})

	// Insert first so the keybinding sees the last ID.
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlG})
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyCtrlY})

	require.NotNil(t, cmd)
	msg := cmd()
	done, ok := msg.(actionDoneMsg)
	require.True(t, ok)
	require.NoError(t, done.err)

	require.Len(t, executor.Commands, 1)
	got := executor.Commands[0]
	assert.Equal(t, "sh", got.Cmd)
	require.Len(t, got.Args, 2)
	assert.Equal(t, "-c", got.Args[0])
	assert.Equal(t, "printf %s 'tz4a98xxat96iws9zmbrgj3a'", got.Args[1])

	// Feeding the result back surfaces the output in the status bar.
	updated, _ := m.Update(msg)
	m = updated.(Model)
	assert.Contains(t, m.status, "ctrl+y")
}

func TestModel_CustomKeybindingFreshIDWhenNoneInserted(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Keybindings = map[string]config.Keybinding{
		"ctrl+y": {Sh: "printf %s '{{ .ID }}'"},
	}
	executor := &executil.RecordingExecutor{}
	m := newTestModel(t, &cfg, Options{Executor: executor})

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyCtrlY})
	require.NotNil(t, cmd)
	cmd()

	require.Len(t, executor.Commands, 1)
	assert.Contains(t, executor.Commands[0].Args[1], "tz4a98xxat96iws9zmbrgj3a")
	assert.Equal(t, "tz4a98xxat96iws9zmbrgj3a", m.LastID())
}

func TestModel_CustomKeybindingConfirm(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Keybindings = map[string]config.Keybinding{
		"ctrl+y": {Sh: "rm -f cache", Confirm: "Clear the cache?"},
	}
	executor := &executil.RecordingExecutor{}
	m := newTestModel(t, &cfg, Options{Executor: executor})

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyCtrlY})
	assert.Nil(t, cmd)
	assert.Equal(t, stateConfirmingAction, m.state)
	assert.Contains(t, stripANSI(m.View()), "Clear the cache?")
	assert.Empty(t, executor.Commands)

	m, cmd = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, stateEditing, m.state)
	require.NotNil(t, cmd)
	cmd()

	require.Len(t, executor.Commands, 1)
	assert.Equal(t, "rm -f cache", executor.Commands[0].Args[1])
}

func TestModel_CustomKeybindingConfirmCancelled(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Keybindings = map[string]config.Keybinding{
		"ctrl+y": {Sh: "rm -f cache", Confirm: "Clear the cache?"},
	}
	executor := &executil.RecordingExecutor{}
	m := newTestModel(t, &cfg, Options{Executor: executor})

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlY})
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	assert.Nil(t, cmd)
	assert.Equal(t, stateEditing, m.state)
	assert.Empty(t, executor.Commands)
}

func TestModel_SchemeModal(t *testing.T) {
	m := newTestModel(t, nil, Options{})

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlD})
	assert.Equal(t, stateScheme, m.state)
	assert.Contains(t, stripANSI(m.View()), "ID Scheme")

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, stateEditing, m.state)
}

func TestModel_ViewShowsSplashThenEditor(t *testing.T) {
	m := newTestModel(t, nil, Options{})

	splash := stripANSI(m.View())
	assert.Contains(t, splash, "insert a fresh ID")

	m = typeText(t, m, "x")
	view := stripANSI(m.View())
	assert.NotContains(t, view, "insert a fresh ID")
	assert.Contains(t, view, "1 x")
	assert.Contains(t, view, "1:2")
}

func TestModel_ViewShowsFileAndModified(t *testing.T) {
	m := newTestModel(t, nil, Options{File: "notes.md", Text: "existing"})

	view := stripANSI(m.View())
	assert.Contains(t, view, "notes.md")
	assert.Contains(t, view, "1 existing")
	assert.NotContains(t, view, "[+]")

	m = typeText(t, m, "!")
	assert.Contains(t, stripANSI(m.View()), "[+]")
}

func TestModel_EscClearsMark(t *testing.T) {
	m := newTestModel(t, nil, Options{})
	m = typeText(t, m, "abc")

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyHome})
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlAt})
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnd})

	_, _, ok := m.Buffer().Selection()
	require.True(t, ok)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	_, _, ok = m.Buffer().Selection()
	assert.False(t, ok)
}

func TestModel_CursorScrollsIntoView(t *testing.T) {
	lines := make([]string, 50)
	for i := range lines {
		lines[i] = "line"
	}
	m := newTestModel(t, nil, Options{File: "big.md", Text: strings.Join(lines, "\n")})

	for range 40 {
		m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}

	cur := m.Buffer().Cursor()
	assert.Equal(t, 40, cur.Row)
	assert.LessOrEqual(t, m.scrollRow, cur.Row)
	assert.Greater(t, m.scrollRow+m.editorHeight(), cur.Row)
}
