package screen

import (
	"math/rand/v2"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/chmouel/lazystatus/internal/theme"
)

// LoadingTips rotate under the spinner while the first status read
// runs.
var LoadingTips = []string{
	"Press '?' to view the help guide anytime.",
	"Press 's' to stage the selected file or directory.",
	"Press 'p' to stage a file hunk by hunk (git add --patch).",
	"Press 'r' to reset a file; staged files ask for reset or checkout.",
	"Press 'd' to toggle the diff preview for the selected file.",
	"Press 'D' to open the full diff in your pager.",
	"Press 'c' to commit; up/down browses your commit message history.",
	"Press 'e' to open the selected file in your editor.",
	"Press Space to mark files and act on several at once.",
	"Press Enter on a directory to collapse or expand it.",
	"Press 'f' to filter the candidate list by path or status.",
	"Untracked files diff against /dev/null, so 'd' works on them too.",
	"Press 'R' to refresh the status list manually.",
	"Switch between panes using '1' and '2', or Tab.",
	"Zoom into a pane with '='.",
	"Press 'T' to switch the colour theme.",
	"Removal strategy 'auto' prefers trash-put, then rmtrash, then rm.",
	"Set strict_git_errors to turn parse warnings into hard failures.",
}

var fallbackFrames = []string{"...", ".. ", ".  "}

// LoadingScreen shows a spinner, a message, and one random tip while
// the model waits for the first refresh. It swallows every key.
type LoadingScreen struct {
	Message string
	Tip     string
	Thm     *theme.Theme

	frames []string
	frame  int
	pulse  int
}

// NewLoadingScreen picks a random tip. Passing nil frames falls back
// to a plain-text spinner.
func NewLoadingScreen(message string, thm *theme.Theme, frames []string) *LoadingScreen {
	if len(frames) == 0 {
		frames = fallbackFrames
	}
	return &LoadingScreen{
		Message: message,
		Tip:     LoadingTips[rand.IntN(len(LoadingTips))],
		Thm:     thm,
		frames:  frames,
	}
}

func (s *LoadingScreen) Type() Type { return TypeLoading }

// Update ignores keys; the loading box cannot be dismissed.
func (s *LoadingScreen) Update(msg tea.KeyMsg) (Screen, tea.Cmd) {
	return s, nil
}

// Tick advances the spinner frame and the border pulse.
func (s *LoadingScreen) Tick() {
	s.frame = (s.frame + 1) % len(s.frames)
	s.pulse = (s.pulse + 1) % len(s.pulseColors())
}

// pulseColors is the cycle the border fades through.
func (s *LoadingScreen) pulseColors() []lipgloss.Color {
	return []lipgloss.Color{s.Thm.Accent, s.Thm.SuccessFg, s.Thm.WarnFg, s.Thm.Accent}
}

// View renders the spinner over the message, a rule, and the tip.
func (s *LoadingScreen) View() string {
	width := dialogWidth
	colors := s.pulseColors()

	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colors[s.pulse%len(colors)]).
		Padding(1, 2).
		Width(width).
		Height(9)

	spin := lipgloss.NewStyle().
		Foreground(s.Thm.Accent).
		Bold(true).
		Render(s.frames[s.frame%len(s.frames)])

	message := lipgloss.NewStyle().
		Foreground(s.Thm.TextFg).
		Bold(true).
		Render(s.Message)

	rule := lipgloss.NewStyle().
		Foreground(s.Thm.BorderDim).
		Render(strings.Repeat("-", width-6))

	tip := s.Tip
	if limit := width - 12; len(tip) > limit {
		tip = tip[:limit-3] + "..."
	}
	tipLine := lipgloss.NewStyle().
		Foreground(s.Thm.MutedFg).
		Italic(true).
		Render("Tip: " + tip)

	return frame.Render(lipgloss.JoinVertical(lipgloss.Center, spin, "", message, rule, tipLine))
}
