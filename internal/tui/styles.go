// Package tui implements the Bubble Tea scratch pad for glyph.
package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Tokyo Night color palette.
var (
	colorGreen  = lipgloss.Color("#9ece6a") // green
	colorYellow = lipgloss.Color("#e0af68") // yellow
	colorBlue   = lipgloss.Color("#7aa2f7") // blue
	colorGray   = lipgloss.Color("#565f89") // comment
	colorWhite  = lipgloss.Color("#c0caf5") // foreground
)

// Styles used for rendering the pad.
var (
	// Line number gutter.
	gutterStyle = lipgloss.NewStyle().
			Foreground(colorGray)

	// Gutter entry for the cursor line.
	gutterActiveStyle = lipgloss.NewStyle().
				Foreground(colorWhite)

	// Cursor cell.
	cursorStyle = lipgloss.NewStyle().
			Reverse(true)

	// Selected text between mark and cursor.
	selectionStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#33467c"))

	// File name segment of the status bar.
	statusFileStyle = lipgloss.NewStyle().
			Foreground(colorBlue).
			Bold(true)

	// Modified indicator.
	statusModifiedStyle = lipgloss.NewStyle().
				Foreground(colorYellow)

	// Cursor position and line count.
	statusInfoStyle = lipgloss.NewStyle().
			Foreground(colorGray)

	// Last generated ID.
	statusIDStyle = lipgloss.NewStyle().
			Foreground(colorGreen)

	// Transient status messages.
	statusMsgStyle = lipgloss.NewStyle().
			Foreground(colorGray).
			Italic(true)

	statusErrStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d75f6b"))

	// Splash screen hints.
	splashHintStyle = lipgloss.NewStyle().
			Foreground(colorGray)
)

// Icons and symbols.
const (
	iconDot = "•" // Unicode bullet separator
)

// Modal styles.
var (
	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBlue).
			Padding(1, 2)

	modalTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite)

	modalHelpStyle = lipgloss.NewStyle().
			Foreground(colorGray).
			MarginTop(1)

	modalButtonStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Background(lipgloss.Color("#3b4261")).
				Foreground(lipgloss.Color("#a9b1d6"))

	modalButtonSelectedStyle = lipgloss.NewStyle().
					Padding(0, 1).
					Background(colorBlue).
					Foreground(lipgloss.Color("#1a1b26")).
					Bold(true)
)
