package screen

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/chmouel/lazystatus/internal/theme"
)

// Button positions in a ConfirmScreen.
const (
	buttonConfirm = iota
	buttonCancel
)

// ConfirmScreen asks a yes/no question, used before removing an
// untracked file. 'y' and 'n' answer directly; Tab and the arrows move
// between the two buttons for Enter.
type ConfirmScreen struct {
	Message string
	Focused int
	Thm     *theme.Theme

	OnConfirm func() tea.Cmd
	OnCancel  func() tea.Cmd
}

// NewConfirmScreen builds a confirmation dialog with Confirm focused.
func NewConfirmScreen(message string, thm *theme.Theme) *ConfirmScreen {
	return &ConfirmScreen{Message: message, Thm: thm}
}

func (s *ConfirmScreen) Type() Type { return TypeConfirm }

// Update moves the focus or resolves the question. Returning nil
// closes the dialog.
func (s *ConfirmScreen) Update(msg tea.KeyMsg) (Screen, tea.Cmd) {
	switch msg.String() {
	case keyTab, keyShiftTab, "left", "right", "h", "l":
		// Two buttons, so either direction toggles.
		s.Focused = 1 - s.Focused
	case "y", "Y":
		return nil, s.confirm()
	case "n", "N", keyEsc, keyQuit, keyCtrlC:
		return nil, s.cancel()
	case keyEnter:
		if s.Focused == buttonConfirm {
			return nil, s.confirm()
		}
		return nil, s.cancel()
	}
	return s, nil
}

func (s *ConfirmScreen) confirm() tea.Cmd {
	if s.OnConfirm == nil {
		return nil
	}
	return s.OnConfirm()
}

func (s *ConfirmScreen) cancel() tea.Cmd {
	if s.OnCancel == nil {
		return nil
	}
	return s.OnCancel()
}

// View renders the message above a Confirm/Cancel button row. The
// confirm button uses the error colour since confirming discards work.
func (s *ConfirmScreen) View() string {
	buttonWidth := (dialogWidth - 6) / 2
	confirm := dialogButton(s.Thm, "[Confirm]", buttonWidth, s.Focused == buttonConfirm, s.Thm.ErrorFg)
	cancel := dialogButton(s.Thm, "[Cancel]", buttonWidth, s.Focused == buttonCancel, s.Thm.Accent)

	content := dialogMessage(s.Thm, s.Message) + "\n\n" + confirm + "  " + cancel
	return dialogFrame(s.Thm).Render(content)
}
