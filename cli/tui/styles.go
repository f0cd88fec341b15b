// Package tui provides the Bubble Tea touchpad for the indigo CLI.
//
// The pad is opt-in (indigo pad) and drives a live session: cursor
// movement maps to normalized screen coordinates, key presses inject
// touch and button messages.
package tui

import "github.com/charmbracelet/lipgloss"

// Color palette.
var (
	primaryColor   = lipgloss.Color("#7C3AED") // Purple
	successColor   = lipgloss.Color("#10B981") // Green
	warningColor   = lipgloss.Color("#F59E0B") // Amber
	errorColor     = lipgloss.Color("#EF4444") // Red
	mutedColor     = lipgloss.Color("#6B7280") // Gray
	highlightColor = lipgloss.Color("#3B82F6") // Blue
)

// Styles for pad components.
var (
	// TitleStyle for the pad header.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	// LabelStyle for field labels.
	LabelStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Width(12)

	// ValueStyle for field values.
	ValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	// SuccessStyle for sent-message feedback.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(successColor)

	// WarningStyle for held-touch state.
	WarningStyle = lipgloss.NewStyle().
			Foreground(warningColor)

	// ErrorStyle for send failures.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	// PadStyle for the touch surface border.
	PadStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(highlightColor)

	// CursorStyle for the touch cursor cell.
	CursorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(successColor)

	// HelpStyle for the key help line.
	HelpStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			MarginTop(1)
)
