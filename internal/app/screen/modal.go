package screen

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/chmouel/lazystatus/internal/theme"
)

// Key strings shared by the overlay Update methods.
const (
	keyEnter    = "enter"
	keyEsc      = "esc"
	keyTab      = "tab"
	keyShiftTab = "shift+tab"
	keyQuit     = "q"
	keyCtrlC    = "ctrl+c"
)

// Geometry of the small fixed-size dialogs. The picker and help
// screens size themselves to the window instead.
const (
	dialogWidth  = 60
	dialogHeight = 11
)

// dialogFrame draws the rounded border every small dialog sits in.
func dialogFrame(thm *theme.Theme) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(thm.Accent).
		Padding(1, 2).
		Width(dialogWidth).
		Height(dialogHeight)
}

// dialogMessage centers the message text in the space above the button
// row.
func dialogMessage(thm *theme.Theme, message string) string {
	return lipgloss.NewStyle().
		Width(dialogWidth-4).
		Height(dialogHeight-6).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(thm.TextFg).
		Render(message)
}

// dialogButton renders one button. A focused button gets the given
// background so the dangerous choice can stand out in a different
// colour than the safe one.
func dialogButton(thm *theme.Theme, label string, width int, focused bool, focusBg lipgloss.Color) string {
	style := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Padding(0, 2)
	if focused {
		style = style.Foreground(thm.AccentFg).Background(focusBg).Bold(true)
	} else {
		style = style.Foreground(thm.MutedFg).Background(thm.BorderDim)
	}
	return style.Render(label)
}
