package screen

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/chmouel/lazystatus/internal/theme"
)

// helpEntry is one line of a help section. Lines with keys render the
// key part highlighted; lines without are plain prose.
type helpEntry struct {
	keys string
	text string
}

type helpSection struct {
	icon    UIIcon
	title   string
	entries []helpEntry
}

func prose(lines ...string) []helpEntry {
	entries := make([]helpEntry, 0, len(lines))
	for _, line := range lines {
		entries = append(entries, helpEntry{text: line})
	}
	return entries
}

// helpSections is the whole guide. The renderer styles it, the search
// box filters it line by line.
func helpSections() []helpSection {
	return []helpSection{
		{icon: UIIconNavigation, title: "Navigation", entries: []helpEntry{
			{"j / k", "Move down / up the candidate list"},
			{"g / G", "Jump to top / bottom"},
			{"1 / 2", "Focus the list or preview pane (again to zoom)"},
			{"Tab", "Cycle to the next pane"},
			{"=", "Toggle zoom for the focused pane"},
			{"Enter", "Collapse a directory, or toggle a file's preview"},
			{"q", "Quit"},
		}},
		{icon: UIIconMarks, title: "Marks & Selection", entries: append([]helpEntry{
			{"Space", "Mark / unmark the selected file"},
			{"Esc", "Clear marks, the filter, or the open preview"},
		}, prose(
			"Actions apply to the marked files when any exist, otherwise",
			"to the selection. A directory row covers every file under it.",
		)...)},
		{icon: UIIconStage, title: "Staging & Committing", entries: []helpEntry{
			{"s", "Stage the targets (git add)"},
			{"p", "Stage hunk by hunk (git add --patch)"},
			{"c", "Commit the targets; up/down browses message history"},
			{"e", "Open the selected file in your editor"},
		}},
		{icon: UIIconReset, title: "Reset & Removal", entries: append([]helpEntry{
			{"r", "Reset the targets, one file at a time"},
		}, prose(
			"Files both staged and modified ask for reset or checkout.",
			"Untracked files confirm before removal; the removal setting",
			"picks rm, trash-put, or rmtrash (auto probes trash helpers).",
		)...)},
		{icon: UIIconDiff, title: "Diff Preview", entries: append([]helpEntry{
			{"d", "Toggle the preview for the selected file"},
			{"D", "Open the diff full screen in your pager"},
			{"Ctrl+D / Ctrl+U", "Scroll the preview half a page"},
		}, prose(
			"Staged files diff the index (git diff --cached), unstaged the",
			"working tree, untracked files diff against /dev/null.",
		)...)},
		{icon: UIIconWatch, title: "Refresh & Watching", entries: append([]helpEntry{
			{"R", "Refresh the candidate list manually"},
		}, prose(
			"With auto_refresh on, a watcher follows ref updates, index",
			"writes, and edits to files that already have changes.",
		)...)},
		{icon: UIIconFilter, title: "Filtering", entries: []helpEntry{
			{"f or /", "Filter the list by path or status label"},
			{"Enter", "Keep the filter and return to the list"},
			{"Esc", "Clear it"},
		}},
		{icon: UIIconColumns, title: "Status Columns", entries: prose(
			"The first column is the index, the second the working tree:",
			"~ modified, + added, - deleted, > renamed, ? untracked.",
			"The header shows the branch, ↑N / ↓N divergence from the",
			"upstream, and staged / modified / untracked counts.",
		)},
		{icon: UIIconHelpKeys, title: "Help Navigation", entries: []helpEntry{
			{"/", "Search the guide (Enter applies, Esc clears)"},
			{"j / k", "Scroll line by line"},
			{"Ctrl+D / Ctrl+U", "Scroll half a page"},
			{"q / Esc", "Close help"},
		}},
		{icon: UIIconTerminal, title: "Command Line", entries: prose(
			"Every action also works without the TUI:",
			"lazystatus list | stage | patch | reset | diff | commit | root",
			"For flags, see: lazystatus --help",
		)},
		{icon: UIIconConfig, title: "Configuration", entries: prose(
			"Settings are read in order of precedence, highest first:",
			"-C ls.key=value overrides, then the YAML file at",
			"~/.config/lazystatus/config.yaml, then built-in defaults.",
			"Example: lazystatus -C ls.theme=nord -C ls.removal=trash-put",
		)},
		{icon: UIIconTheme, title: "Themes", entries: append([]helpEntry{
			{"T", "Open the theme picker; moving the cursor previews live"},
		}, prose(
			"Without an explicit theme the terminal background decides",
			"between dracula and clean-light. git_pager_args follows the",
			"theme unless it is set explicitly.",
		)...)},
	}
}

// HelpScreen renders the searchable guide in a viewport.
type HelpScreen struct {
	thm       *theme.Theme
	showIcons bool
	width     int
	height    int

	viewport    viewport.Model
	searchInput textinput.Model
	searching   bool
	query       string
	lines       []string
}

// NewHelpScreen lays out the guide for the available window size.
func NewHelpScreen(maxWidth, maxHeight int, thm *theme.Theme, showIcons bool) *HelpScreen {
	width, height := helpBox(maxWidth, maxHeight)

	ti := textinput.New()
	ti.Placeholder = "Search help (/ to start, Enter to apply, Esc to clear)"
	ti.CharLimit = 64
	ti.Prompt = "/ "
	ti.Width = max(20, width-6)

	s := &HelpScreen{
		thm:         thm,
		showIcons:   showIcons,
		width:       width,
		height:      height,
		viewport:    viewport.New(width-2, max(5, height-4)),
		searchInput: ti,
	}
	s.lines = s.styledLines()
	s.refresh()
	return s
}

// helpBox clamps the guide to a readable size inside the window.
func helpBox(maxWidth, maxHeight int) (int, int) {
	width, height := 80, 30
	if maxWidth > 0 {
		width = min(100, max(60, int(float64(maxWidth)*0.75)))
	}
	if maxHeight > 0 {
		height = min(40, max(20, int(float64(maxHeight)*0.7)))
	}
	return width, height
}

// SetSize relays a terminal resize.
func (s *HelpScreen) SetSize(maxWidth, maxHeight int) {
	s.width, s.height = helpBox(maxWidth, maxHeight)
	s.viewport.Width = s.width - 2
	s.viewport.Height = max(5, s.height-4)
}

func (s *HelpScreen) Type() Type { return TypeHelp }

// Update handles search input and scrolling.
func (s *HelpScreen) Update(msg tea.KeyMsg) (Screen, tea.Cmd) {
	switch msg.String() {
	case "/":
		if !s.searching {
			s.searching = true
			s.searchInput.Focus()
			return s, textinput.Blink
		}
	case keyEnter:
		if s.searching {
			s.query = strings.TrimSpace(s.searchInput.Value())
			s.searching = false
			s.searchInput.Blur()
			s.refresh()
			return s, nil
		}
	case keyEsc, keyCtrlC:
		if s.searching || s.query != "" {
			s.searching = false
			s.searchInput.SetValue("")
			s.query = ""
			s.searchInput.Blur()
			s.refresh()
			return s, nil
		}
		return nil, nil
	case keyQuit:
		if !s.searching {
			return nil, nil
		}
	}

	if s.searching {
		var cmd tea.Cmd
		s.searchInput, cmd = s.searchInput.Update(msg)
		if q := strings.TrimSpace(s.searchInput.Value()); q != s.query {
			s.query = q
			s.refresh()
		}
		return s, cmd
	}

	switch msg.String() {
	case "ctrl+d", " ":
		s.viewport.HalfPageDown()
	case "ctrl+u":
		s.viewport.HalfPageUp()
	case "j", "down":
		s.viewport.ScrollDown(1)
	case "k", "up":
		s.viewport.ScrollUp(1)
	default:
		var cmd tea.Cmd
		s.viewport, cmd = s.viewport.Update(msg)
		return s, cmd
	}
	return s, nil
}

// styledLines renders every section once; search filters the result.
func (s *HelpScreen) styledLines() []string {
	titleStyle := lipgloss.NewStyle().Foreground(s.thm.Accent).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(s.thm.SuccessFg).Bold(true)
	marker := sectionMarker(s.showIcons)

	lines := []string{labelWithIcon(UIIconHelp, "LazyStatus Help Guide", s.showIcons), ""}
	for _, section := range helpSections() {
		header := iconPrefix(section.icon, s.showIcons) + section.title
		lines = append(lines, titleStyle.Render(marker+" "+header))
		for _, entry := range section.entries {
			if entry.keys == "" {
				lines = append(lines, entry.text)
				continue
			}
			lines = append(lines, "  "+keyStyle.Render(entry.keys)+": "+entry.text)
		}
		lines = append(lines, "")
	}
	lines = append(lines, labelWithIcon(UIIconTip, "Tip: press 'd' twice on the same file to close its preview.", s.showIcons))
	return lines
}

func (s *HelpScreen) refresh() {
	s.viewport.SetContent(s.content())
	s.viewport.GotoTop()
}

// content returns the full guide, or just the matching lines with the
// query highlighted while a search is active.
func (s *HelpScreen) content() string {
	if s.query == "" {
		return strings.Join(s.lines, "\n")
	}
	query := strings.ToLower(s.query)
	mark := lipgloss.NewStyle().Foreground(s.thm.AccentFg).Background(s.thm.Accent).Bold(true)

	var matches []string
	for _, line := range s.lines {
		if strings.Contains(strings.ToLower(line), query) {
			matches = append(matches, highlight(line, query, mark))
		}
	}
	if len(matches) == 0 {
		return fmt.Sprintf("No help entries match %q", s.query)
	}
	return strings.Join(matches, "\n")
}

// highlight wraps every case-insensitive occurrence of query in the
// style.
func highlight(line, query string, style lipgloss.Style) string {
	lower := strings.ToLower(line)
	var parts []string
	for {
		idx := strings.Index(lower, query)
		if idx < 0 {
			parts = append(parts, line)
			break
		}
		end := idx + len(query)
		parts = append(parts, line[:idx], style.Render(line[idx:end]))
		line, lower = line[end:], lower[end:]
	}
	return strings.Join(parts, "")
}

// View renders the title bar, the optional search field, the viewport,
// and a key hint footer.
func (s *HelpScreen) View() string {
	inner := s.width - 2
	s.viewport.Width = inner
	s.viewport.Height = max(5, s.height-4)
	s.viewport.SetContent(s.content())

	title := lipgloss.NewStyle().
		Foreground(s.thm.Accent).
		Bold(true).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(s.thm.BorderDim).
		Width(inner).
		Padding(0, 1).
		Render(labelWithIcon(UIIconHelp, "Help", s.showIcons))

	sections := []string{title}
	if s.searching || s.query != "" {
		field := lipgloss.NewStyle().
			Width(inner).
			Padding(0, 1).
			Render(s.searchInput.View())
		rule := lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(s.thm.BorderDim).
			Width(inner).
			Render("")
		sections = append(sections, field+"\n"+rule)
	}

	body := lipgloss.NewStyle().
		Padding(0, 1).
		Width(inner).
		Render(s.viewport.View())
	footer := lipgloss.NewStyle().
		Foreground(s.thm.MutedFg).
		Width(inner).
		PaddingTop(1).
		Render("j/k: scroll • Ctrl+d/u: page • /: search • esc: close")
	sections = append(sections, body, footer)

	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.thm.Accent).
		Width(s.width)
	return frame.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}
