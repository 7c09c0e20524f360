package tui

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/charmbracelet/bubbles/key"

	"github.com/glyphpad/glyph/internal/core/config"
	"github.com/glyphpad/glyph/pkg/executil"
	"github.com/glyphpad/glyph/pkg/tmpl"
)

// Action represents a resolved keybinding ready for execution.
type Action struct {
	Key      string
	Help     string
	Confirm  string // Non-empty if confirmation required
	ShellCmd string // The rendered shell command
}

// NeedsConfirm returns true if the action requires user confirmation.
func (a Action) NeedsConfirm() bool {
	return a.Confirm != ""
}

// ActionContext carries the template data exposed to keybinding commands.
type ActionContext struct {
	ID        string
	File      string
	Selection string
}

// KeybindingHandler resolves configured keys to shell actions.
type KeybindingHandler struct {
	keybindings map[string]config.Keybinding
	executor    executil.Executor
}

// NewKeybindingHandler creates a new handler with the given config.
func NewKeybindingHandler(keybindings map[string]config.Keybinding, executor executil.Executor) *KeybindingHandler {
	return &KeybindingHandler{
		keybindings: keybindings,
		executor:    executor,
	}
}

// Resolve attempts to resolve a key press to an action in the given context.
func (h *KeybindingHandler) Resolve(key string, actx ActionContext) (Action, bool) {
	kb, exists := h.keybindings[key]
	if !exists {
		return Action{}, false
	}

	action := Action{
		Key:     key,
		Help:    kb.Help,
		Confirm: kb.Confirm,
	}

	data := config.KeybindingTemplateData{
		ID:        actx.ID,
		File:      actx.File,
		Selection: actx.Selection,
	}

	rendered, err := tmpl.Render(kb.Sh, data)
	if err != nil {
		// A template can pass config validation and still fail on live
		// data. Route the error through the action path so it lands in
		// the status line.
		action.ShellCmd = "echo " + tmpl.ShellQuote(fmt.Sprintf("template error: %v", err))
		return action, true
	}

	action.ShellCmd = rendered
	return action, true
}

// Execute runs the given action's command through sh.
func (h *KeybindingHandler) Execute(ctx context.Context, action Action) ([]byte, error) {
	return h.executor.Run(ctx, "sh", "-c", action.ShellCmd)
}

// KeyBindings returns key.Binding objects for integration with bubbles help system.
func (h *KeybindingHandler) KeyBindings() []key.Binding {
	keys := slices.Sorted(maps.Keys(h.keybindings))
	bindings := make([]key.Binding, 0, len(keys))

	for _, k := range keys {
		kb := h.keybindings[k]
		help := kb.Help
		if help == "" {
			help = "shell"
		}

		bindings = append(bindings, key.NewBinding(
			key.WithKeys(k),
			key.WithHelp(k, help),
		))
	}

	return bindings
}
