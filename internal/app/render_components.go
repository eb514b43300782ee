package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/chmouel/lazystatus/internal/app/state"
	"github.com/muesli/reflow/wrap"
)

// keyPill is the badge style shared by footer hints, pane indicators,
// and the filter label.
func (m *Model) keyPill() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(m.theme.AccentFg).Background(m.theme.Accent).
		Bold(true).Padding(0, 1)
}

func (m *Model) mutedText() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(m.theme.MutedFg)
}

// renderTitleBar draws the top bar: program name, repo key, and the
// branch with its divergence arrows.
func (m *Model) renderTitleBar(layout layoutDims) string {
	parts := []string{"Lazystatus"}
	if key := strings.TrimSpace(m.repoKey); key != "" && key != "unknown" && !strings.HasPrefix(key, "local-") {
		parts = append(parts, key)
	}
	if info := m.data.info; info != nil && info.Branch != "" {
		parts = append(parts, info.Branch+m.divergenceSuffix())
	}

	bar := lipgloss.NewStyle().
		Background(m.theme.AccentDim).Foreground(m.theme.TextFg).Bold(true).
		Padding(0, 2).Align(lipgloss.Center).
		Width(layout.width)
	return bar.Render(ansi.Truncate(strings.Join(parts, "  •  "), max(1, layout.width), "..."))
}

// divergenceSuffix renders the ahead/behind arrows next to the branch
// name, or nothing when the branch has no upstream.
func (m *Model) divergenceSuffix() string {
	info := m.data.info
	if info == nil || !info.HasUpstream {
		return ""
	}
	var b strings.Builder
	if info.Ahead > 0 {
		fmt.Fprintf(&b, " %s%d", aheadIndicator(m.config.ShowIcons), info.Ahead)
	}
	if info.Behind > 0 {
		fmt.Fprintf(&b, " %s%d", behindIndicator(m.config.ShowIcons), info.Behind)
	}
	return b.String()
}

// renderFilterBar draws the filter input line under the title bar.
func (m *Model) renderFilterBar(layout layoutDims) string {
	line := m.keyPill().Render("Filter") + " " + m.ui.filterInput.View()
	return lipgloss.NewStyle().
		Foreground(m.theme.TextFg).Padding(0, 1).
		Width(layout.width).
		Render(line)
}

// renderHintBar draws the bottom bar: key hints for the focused pane,
// or a transient status line until the next refresh.
func (m *Model) renderHintBar(layout layoutDims) string {
	bar := lipgloss.NewStyle().
		Foreground(m.theme.TextFg).Background(m.theme.BorderDim).
		Padding(0, 1)

	if m.data.statusLine != "" {
		return bar.Width(layout.width).
			Render(ansi.Truncate(m.data.statusLine, max(1, layout.width-2), "..."))
	}

	var pairs [][2]string
	if m.view.FocusedPane == state.PanePreview {
		pairs = [][2]string{
			{"j/k", "Scroll"},
			{"ctrl+d/u", "Page"},
			{"d", "Close Diff"},
			{"Tab", "Switch Pane"},
			{"q", "Quit"},
			{"?", "Help"},
		}
	} else {
		pairs = [][2]string{
			{"s", "Stage"},
			{"p", "Patch"},
			{"r", "Reset"},
			{"d", "Diff"},
			{"c", "Commit"},
			{"Space", "Mark"},
		}
		if len(m.data.marks) > 0 {
			pairs = append(pairs, [2]string{"Esc", "Clear Marks"})
		}
		pairs = append(pairs, [2]string{"f", "Filter"}, [2]string{"q", "Quit"}, [2]string{"?", "Help"})
	}

	accent := lipgloss.NewStyle().Foreground(m.theme.Accent)
	hints := make([]string, len(pairs))
	for i, p := range pairs {
		hints[i] = m.keyPill().Render(p[0]) + " " + accent.Render(p[1])
	}
	line := strings.Join(hints, "  ")

	if !m.loading {
		return bar.Width(layout.width).Render(line)
	}
	const gap = "  "
	spin := m.ui.spinner.View()
	available := max(layout.width-lipgloss.Width(spin)-lipgloss.Width(gap), 0)
	return lipgloss.JoinHorizontal(lipgloss.Left, bar.Width(available).Render(line), gap, spin)
}

// paneBadge renders the " icon Label  key Action" tail shared by the
// filter and zoom indicators in pane titles.
func (m *Model) paneBadge(icon uiIconKind, label string, labelStyle lipgloss.Style, key, action string) string {
	return fmt.Sprintf(" %s%s  %s %s",
		iconPrefix(icon, m.config.ShowIcons),
		labelStyle.Render(label),
		m.keyPill().Render(key),
		m.mutedText().Render(action))
}

// paneTitle draws the numbered title row of a pane, with badges when
// the list is narrowed or the pane is zoomed.
func (m *Model) paneTitle(index int, title string, focused bool, width int) string {
	num := m.mutedText()
	label := m.mutedText()
	if focused {
		num = lipgloss.NewStyle().Foreground(m.theme.Accent).Bold(true)
		label = lipgloss.NewStyle().Foreground(m.theme.TextFg).Bold(true)
	}
	format := "[%d]"
	if m.config.ShowIcons {
		format = "(%d)"
	}
	head := num.Render(fmt.Sprintf(format, index)) + " " + label.Render(title)

	var badges string
	pane := index - 1 // titles are numbered from 1, panes from 0
	if pane == state.PaneList && !m.view.ShowingFilter && m.services.filter.HasActive() {
		badges += m.paneBadge(uiIconFilter, "Filtered",
			lipgloss.NewStyle().Foreground(m.theme.WarnFg).Italic(true), "Esc", "Clear")
	}
	if m.view.ZoomedPane == pane {
		badges += m.paneBadge(uiIconZoom, "Zoomed",
			lipgloss.NewStyle().Foreground(m.theme.Accent).Italic(true), "=", "Unzoom")
	}

	return lipgloss.NewStyle().Width(width).Render(head + badges)
}

// renderRepoSummary boxes the branch, divergence, and change counts
// shown above the diff viewport.
func (m *Model) renderRepoSummary(width int) string {
	frame := m.innerBoxFrame().Width(width)
	body := wrap.String(m.repoSummaryContent(width), max(1, width-frame.GetHorizontalFrameSize()))
	heading := m.mutedText().Bold(true).Render("Repository")
	return frame.Render(lipgloss.JoinVertical(lipgloss.Left, heading, body))
}

// repoSummaryContent lists the branch line, the per-kind change counts,
// and the mark tally when files are marked.
func (m *Model) repoSummaryContent(width int) string {
	info := m.data.info
	if info == nil {
		return "Reading repository..."
	}

	branch := info.Branch
	if branch == "" {
		branch = "(detached)"
	}
	branchLine := iconPrefix(uiIconBranch, m.config.ShowIcons) + branch + m.divergenceSuffix()
	if !info.HasUpstream {
		branchLine += m.mutedText().Render("  no upstream")
	}

	counts := []string{
		lipgloss.NewStyle().Foreground(m.theme.Cyan).Render(fmt.Sprintf("%d staged", info.Staged)),
		lipgloss.NewStyle().Foreground(m.theme.WarnFg).Render(fmt.Sprintf("%d modified", info.Modified)),
		lipgloss.NewStyle().Foreground(m.theme.ErrorFg).Render(fmt.Sprintf("%d untracked", info.Untracked)),
	}

	lines := []string{branchLine, strings.Join(counts, "  ")}
	if n := len(m.data.marks); n > 0 {
		lines = append(lines, fmt.Sprintf("%d marked", n))
	}
	for i, line := range lines {
		lines[i] = ansi.Truncate(line, max(1, width-2), "...")
	}
	return strings.Join(lines, "\n")
}

// borderedBox is the shared pane chrome.
func (m *Model) borderedBox(border lipgloss.Border, color lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(border).
		BorderForeground(color).
		Padding(0, 1)
}

// paneFrame picks the pane border: rounded accent when focused, plain
// dim otherwise.
func (m *Model) paneFrame(focused bool) lipgloss.Style {
	if focused {
		return m.borderedBox(lipgloss.RoundedBorder(), m.theme.Accent)
	}
	return m.borderedBox(lipgloss.NormalBorder(), m.theme.BorderDim)
}

func (m *Model) innerBoxFrame() lipgloss.Style {
	return m.borderedBox(lipgloss.RoundedBorder(), m.theme.BorderDim)
}
