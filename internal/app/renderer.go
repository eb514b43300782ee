package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/chmouel/lazystatus/internal/app/screen"
)

// View renders one frame: header, optional filter bar, the two panes,
// and the footer, with any active screen overlaid.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.view.WindowWidth == 0 || m.view.WindowHeight == 0 {
		return "Loading..."
	}

	layout := m.computeLayout()
	m.applyLayout(layout)

	bodyBudget := m.view.WindowHeight - layout.headerHeight - layout.footerHeight - layout.filterHeight
	body := headLines(m.renderBody(layout), bodyBudget)

	sections := []string{m.renderTitleBar(layout)}
	if layout.filterHeight > 0 {
		sections = append(sections, m.renderFilterBar(layout))
	}
	sections = append(sections, body, m.renderHintBar(layout))
	baseView := lipgloss.JoinVertical(lipgloss.Left, sections...)

	if m.ui.screenManager.IsActive() {
		scr := m.ui.screenManager.Current()
		if hs, ok := scr.(*screen.HelpScreen); ok {
			hs.SetSize(m.view.WindowWidth, m.view.WindowHeight)
			return hs.View()
		}
		return m.overlayPopup(baseView, scr.View(), 3)
	}
	return baseView
}

// overlayPopup centers popup over base, preserving the base view around
// it so the UI stays visible behind modals.
func (m *Model) overlayPopup(base, popup string, topMargin int) string {
	baseLines := strings.Split(base, "\n")
	popupLines := strings.Split(popup, "\n")

	popupWidth := 0
	for _, line := range popupLines {
		if w := lipgloss.Width(line); w > popupWidth {
			popupWidth = w
		}
	}

	startRow := topMargin
	if startRow+len(popupLines) > len(baseLines) {
		startRow = max(0, len(baseLines)-len(popupLines))
	}
	startCol := max(0, (m.view.WindowWidth-popupWidth)/2)

	for i, popupLine := range popupLines {
		row := startRow + i
		if row >= len(baseLines) {
			break
		}
		baseLine := baseLines[row]
		left := ansi.Truncate(baseLine, startCol, "")
		if pad := startCol - lipgloss.Width(left); pad > 0 {
			left += strings.Repeat(" ", pad)
		}
		rightStart := startCol + popupWidth
		right := ""
		if lipgloss.Width(baseLine) > rightStart {
			right = ansi.TruncateLeft(baseLine, rightStart, "")
		}
		baseLines[row] = left + popupLine + right
	}
	return strings.Join(baseLines, "\n")
}

// headLines keeps at most n lines from the start of s.
func headLines(s string, n int) string {
	if n <= 0 {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) > n {
		lines = lines[:n]
	}
	return strings.Join(lines, "\n")
}

// tailLines keeps at most n lines from the end of s.
func tailLines(s string, n int) string {
	if n <= 0 {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
