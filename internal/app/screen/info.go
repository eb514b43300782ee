package screen

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/chmouel/lazystatus/internal/theme"
)

// InfoScreen shows a message that only needs acknowledging, such as a
// failed command's output.
type InfoScreen struct {
	Message string
	Thm     *theme.Theme
}

// NewInfoScreen builds an informational dialog with an OK button.
func NewInfoScreen(message string, thm *theme.Theme) *InfoScreen {
	return &InfoScreen{Message: message, Thm: thm}
}

func (s *InfoScreen) Type() Type { return TypeInfo }

// Update closes the dialog on any of the dismiss keys.
func (s *InfoScreen) Update(msg tea.KeyMsg) (Screen, tea.Cmd) {
	switch msg.String() {
	case keyEnter, keyEsc, keyQuit, keyCtrlC:
		return nil, nil
	}
	return s, nil
}

// View renders the message above a single focused OK button.
func (s *InfoScreen) View() string {
	ok := dialogButton(s.Thm, "[OK]", dialogWidth-6, true, s.Thm.Accent)
	content := dialogMessage(s.Thm, s.Message) + "\n\n" + ok
	return dialogFrame(s.Thm).Render(content)
}
