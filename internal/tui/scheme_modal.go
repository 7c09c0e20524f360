package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/glyphpad/glyph/internal/docs"
)

// Scheme modal layout constants.
const (
	schemeModalMaxWidth  = 80 // maximum modal width in columns
	schemeModalMaxHeight = 32 // maximum modal height in rows
	schemeModalMargin    = 4  // margin from screen edges
	schemeModalChrome    = 7  // rows for title, help, border, and spacing
	schemeModalPadding   = 4  // padding inside content area
	glamourGutter        = 2  // glamour adds gutter space
)

// SchemeModal displays the ID scheme documentation with markdown rendering.
type SchemeModal struct {
	viewport viewport.Model
}

// NewSchemeModal creates the scheme documentation modal sized to the screen.
func NewSchemeModal(width, height int) SchemeModal {
	modalWidth := min(width-schemeModalMargin, schemeModalMaxWidth)
	modalHeight := min(height-schemeModalMargin, schemeModalMaxHeight)
	contentHeight := modalHeight - schemeModalChrome
	if contentHeight < 1 {
		contentHeight = 1
	}

	vp := viewport.New(modalWidth-schemeModalPadding, contentHeight)

	m := SchemeModal{viewport: vp}
	m.renderContent(modalWidth - schemeModalPadding - glamourGutter)

	return m
}

// renderContent renders the scheme document as markdown.
func (m *SchemeModal) renderContent(width int) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("tokyo-night"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		m.viewport.SetContent(docs.Scheme)
		return
	}

	rendered, err := renderer.Render(docs.Scheme)
	if err != nil {
		m.viewport.SetContent(docs.Scheme)
		return
	}

	m.viewport.SetContent(strings.TrimRight(rendered, "\n"))
}

// UpdateViewport updates the viewport with a message (for scrolling).
func (m *SchemeModal) UpdateViewport(msg any) {
	m.viewport, _ = m.viewport.Update(msg)
}

// ScrollUp scrolls the viewport up.
func (m *SchemeModal) ScrollUp() {
	m.viewport.ScrollUp(1)
}

// ScrollDown scrolls the viewport down.
func (m *SchemeModal) ScrollDown() {
	m.viewport.ScrollDown(1)
}

// Overlay renders the scheme modal centered in the given dimensions.
func (m SchemeModal) Overlay(width, height int) string {
	modalWidth := min(width-schemeModalMargin, schemeModalMaxWidth)

	scrollInfo := ""
	if m.viewport.TotalLineCount() > m.viewport.VisibleLineCount() {
		scrollInfo = statusInfoStyle.Render(fmt.Sprintf(" (%.0f%%)", m.viewport.ScrollPercent()*100))
	}

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		modalTitleStyle.Render("ID Scheme"+scrollInfo),
		"",
		m.viewport.View(),
		modalHelpStyle.Render("[↑/↓/j/k] scroll  [enter/esc] close"),
	)

	modal := modalStyle.
		Width(modalWidth).
		Render(content)

	return lipgloss.Place(
		width, height,
		lipgloss.Center, lipgloss.Center,
		modal,
	)
}
