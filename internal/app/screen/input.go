package screen

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/chmouel/lazystatus/internal/theme"
)

// InputScreen prompts for a single line of text. The commit flow hands
// it the per-repository message history, which the arrow keys browse
// newest first, like a shell.
type InputScreen struct {
	Prompt    string
	Input     textinput.Model
	Thm       *theme.Theme
	ShowIcons bool

	OnSubmit func(value string) tea.Cmd

	// history[0] is the most recent entry. histPos is the entry being
	// shown, or -1 while editing the draft, which is stashed so down
	// arrow can bring it back.
	history []string
	histPos int
	draft   string
}

// NewInputScreen builds a text prompt pre-filled with initial.
func NewInputScreen(prompt, placeholder, initial string, thm *theme.Theme, showIcons bool) *InputScreen {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = placeholder
	ti.CharLimit = 200
	ti.Width = dialogWidth - 8
	ti.TextStyle = lipgloss.NewStyle().Foreground(thm.TextFg)
	ti.SetValue(initial)
	ti.Focus()

	return &InputScreen{
		Prompt:    prompt,
		Input:     ti,
		Thm:       thm,
		ShowIcons: showIcons,
		histPos:   -1,
	}
}

// SetHistory enables up/down browsing over previous entries, newest
// first.
func (s *InputScreen) SetHistory(entries []string) {
	s.history = entries
	s.histPos = -1
	s.draft = ""
}

func (s *InputScreen) Type() Type { return TypeInput }

// Update feeds keys to the text input, intercepting submit, cancel,
// and history browsing. Returning nil closes the prompt.
func (s *InputScreen) Update(msg tea.KeyMsg) (Screen, tea.Cmd) {
	switch msg.String() {
	case keyEnter:
		s.histPos = -1
		if s.OnSubmit == nil {
			return nil, nil
		}
		return nil, s.OnSubmit(s.Input.Value())
	case keyEsc, keyCtrlC:
		return nil, nil
	case "up":
		if s.browse(1) {
			return s, nil
		}
	case "down":
		if s.browse(-1) {
			return s, nil
		}
	}

	// Editing leaves history browsing; the edited text becomes the
	// new draft.
	if msg.Type == tea.KeyRunes || msg.Type == tea.KeyBackspace || msg.Type == tea.KeyDelete {
		s.histPos = -1
	}

	var cmd tea.Cmd
	s.Input, cmd = s.Input.Update(msg)
	return s, cmd
}

// browse moves through the history. dir is +1 toward older entries,
// -1 back toward the draft. Reports whether the key was consumed.
func (s *InputScreen) browse(dir int) bool {
	if len(s.history) == 0 {
		return false
	}
	next := s.histPos + dir
	switch {
	case next >= len(s.history):
		return true
	case next < -1:
		return true
	case next == -1:
		s.histPos = -1
		s.Input.SetValue(s.draft)
	default:
		if s.histPos == -1 {
			s.draft = s.Input.Value()
		}
		s.histPos = next
		s.Input.SetValue(s.history[next])
	}
	s.Input.CursorEnd()
	return true
}

// View renders the prompt, the bordered input line, and a key hint.
func (s *InputScreen) View() string {
	inner := dialogWidth - 6
	centered := lipgloss.NewStyle().Width(inner).Align(lipgloss.Center)

	title := centered.
		Bold(true).
		Foreground(s.Thm.Accent).
		Render(s.Prompt)

	field := lipgloss.NewStyle().
		Width(inner).
		Padding(0, 1).
		Border(lipgloss.NormalBorder()).
		BorderForeground(s.Thm.Border).
		Render(s.Input.View())

	footer := centered.
		MarginTop(1).
		Foreground(s.Thm.MutedFg).
		Render(s.keyHint())

	frame := lipgloss.NewStyle().
		Width(dialogWidth).
		Padding(1, 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.Thm.Accent)
	return frame.Render(strings.Join([]string{title, field, footer}, "\n\n"))
}

func (s *InputScreen) keyHint() string {
	if len(s.history) == 0 {
		return "Enter to confirm • Esc to cancel"
	}
	arrows := "Up/Down"
	if s.ShowIcons {
		arrows = "↑↓"
	}
	return arrows + " history • Enter confirm • Esc cancel"
}
