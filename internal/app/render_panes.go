package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/chmouel/lazystatus/internal/app/state"
	"github.com/chmouel/lazystatus/internal/models"
)

func (m *Model) renderBody(layout layoutDims) string {
	// Zoom mode: only render the zoomed pane.
	if m.view.ZoomedPane >= 0 {
		switch m.view.ZoomedPane {
		case state.PaneList:
			return m.renderListPane(layout)
		case state.PanePreview:
			return m.renderPreviewPane(layout)
		}
	}

	left := m.renderListPane(layout)
	right := m.renderPreviewPane(layout)
	gap := lipgloss.NewStyle().
		Width(layout.gapX).
		Render(strings.Repeat(" ", layout.gapX))
	return lipgloss.JoinHorizontal(lipgloss.Top, left, gap, right)
}

// renderListPane renders the left pane (changed-files tree).
func (m *Model) renderListPane(layout layoutDims) string {
	focused := m.view.FocusedPane == state.PaneList
	title := m.paneTitle(1, "Changes", focused, layout.listInnerWidth)
	body := headLines(m.renderCandidateList(layout), max(1, layout.listInnerHeight-1))
	content := lipgloss.JoinVertical(lipgloss.Left, title, body)
	return m.paneFrame(focused).
		Width(layout.listWidth).
		Height(layout.bodyHeight).
		MaxHeight(layout.bodyHeight).
		Render(content)
}

// renderPreviewPane renders the right pane (repository info box and the
// diff viewport).
func (m *Model) renderPreviewPane(layout layoutDims) string {
	focused := m.view.FocusedPane == state.PanePreview
	title := m.paneTitle(2, m.previewTitle(), focused, layout.previewInnerWidth)

	frame := m.innerBoxFrame()
	infoBox := m.renderRepoSummary(layout.previewInnerWidth)

	previewBoxHeight := max(layout.previewInnerHeight-lipgloss.Height(title)-lipgloss.Height(infoBox)-2, 3)
	viewportWidth := max(1, layout.previewInnerWidth-frame.GetHorizontalFrameSize())
	viewportHeight := max(1, previewBoxHeight-frame.GetVerticalFrameSize())
	m.ui.previewViewport.Width = viewportWidth
	m.ui.previewViewport.Height = viewportHeight

	var inner string
	switch {
	case m.data.previewed == nil:
		inner = lipgloss.NewStyle().Foreground(m.theme.MutedFg).
			Render("No diff open.\n\nPress d on a file to preview its diff,\nD to open it in the pager.")
	case m.data.previewContent == "":
		inner = lipgloss.NewStyle().Foreground(m.theme.MutedFg).Render("Loading diff...")
	default:
		m.ui.previewViewport.SetContent(m.data.previewContent)
		inner = m.ui.previewViewport.View()
	}
	previewBox := frame.
		Width(layout.previewInnerWidth).
		Height(previewBoxHeight).
		Render(inner)

	content := lipgloss.JoinVertical(lipgloss.Left, title, infoBox, previewBox)
	return m.paneFrame(focused).
		Width(layout.previewWidth).
		Height(layout.bodyHeight).
		MaxHeight(layout.bodyHeight).
		Render(content)
}

func (m *Model) previewTitle() string {
	if m.data.previewed == nil {
		return "Preview"
	}
	side := "worktree"
	if m.data.previewCached {
		side = "cached"
	}
	if m.data.previewed.Untracked() {
		side = "untracked"
	}
	return fmt.Sprintf("Preview %s (%s)", m.data.previewed.RelPath(), side)
}

// renderCandidateList renders the tree with disclosure markers for
// directories and per-character status coloring for files.
func (m *Model) renderCandidateList(layout layoutDims) string {
	flat := m.services.tree.Flat
	if len(flat) == 0 {
		if len(m.data.candidates) == 0 {
			return lipgloss.NewStyle().Foreground(m.theme.SuccessFg).Render("Clean working tree")
		}
		if m.services.filter.HasActive() {
			return lipgloss.NewStyle().Foreground(m.theme.MutedFg).Render(
				fmt.Sprintf("No files match %q", strings.TrimSpace(m.services.filter.Query)),
			)
		}
		return lipgloss.NewStyle().Foreground(m.theme.MutedFg).Render("No files to display")
	}

	dirStyle := lipgloss.NewStyle().Foreground(m.theme.MutedFg)
	markStyle := lipgloss.NewStyle().Foreground(m.theme.Pink).Bold(true)
	previewStyle := lipgloss.NewStyle().Foreground(m.theme.Accent)
	selectedStyle := lipgloss.NewStyle().
		Foreground(m.theme.AccentFg).
		Background(m.theme.Accent).
		Bold(true)

	showIcons := m.config.ShowIcons
	width := layout.listInnerWidth
	focused := m.view.FocusedPane == state.PaneList

	lines := make([]string, 0, len(flat))
	for i, node := range flat {
		indent := strings.Repeat("  ", node.Depth)

		var plain, styled string
		if node.IsDir() {
			// Directory line: "  ▼ dirname/" or "  ▶ dirname/"
			expandIcon := disclosureIndicator(m.services.tree.Collapsed[node.Path], showIcons)
			dirIcon := ""
			if showIcons {
				dirIcon = iconWithSpace(deviconForName(node.Name(), true))
			}
			plain = fmt.Sprintf("%s%s %s%s/", indent, expandIcon, dirIcon, node.Name())
			styled = dirStyle.Render(plain)
		} else {
			cand := node.Candidate
			mark := " "
			markRendered := " "
			if m.data.marks[cand.Path] {
				mark = "*"
				markRendered = markStyle.Render("*")
			}
			slot := " "
			slotRendered := " "
			if m.data.previewed != nil && m.data.previewed.Path == cand.Path {
				slot = ">"
				slotRendered = previewStyle.Render(">")
			}
			fileIcon := ""
			if showIcons {
				fileIcon = iconWithSpace(deviconForName(node.Name(), false))
			}
			plain = fmt.Sprintf("%s%s%s %s %s%s", indent, mark, slot, statusCell(cand), fileIcon, node.Name())
			styled = fmt.Sprintf("%s%s%s %s %s%s", indent, markRendered, slotRendered,
				m.renderStatusCell(cand), fileIcon, node.Name())
		}

		if focused && i == m.services.tree.Index {
			if width > 0 && lipgloss.Width(plain) < width {
				plain += strings.Repeat(" ", width-lipgloss.Width(plain))
			}
			lines = append(lines, selectedStyle.Render(plain))
			continue
		}
		lines = append(lines, styled)
	}
	return strings.Join(lines, "\n")
}

func statusCell(cand *models.Candidate) string {
	if cand.Untracked() {
		return "??"
	}
	return string(rune(cand.IndexCode)) + string(rune(cand.TreeCode))
}

// renderStatusCell colors the two porcelain characters independently:
// the index column leans cyan for staged work, the tree column orange
// for pending edits. Additions and deletions keep their own colors in
// either column.
func (m *Model) renderStatusCell(cand *models.Candidate) string {
	if cand.Untracked() {
		return lipgloss.NewStyle().Foreground(m.theme.WarnFg).Render("??")
	}

	addedStyle := lipgloss.NewStyle().Foreground(m.theme.SuccessFg)
	deletedStyle := lipgloss.NewStyle().Foreground(m.theme.ErrorFg)
	stagedStyle := lipgloss.NewStyle().Foreground(m.theme.Cyan)
	modifiedStyle := lipgloss.NewStyle().Foreground(m.theme.WarnFg)

	renderCode := func(code models.StatusCode, index bool) string {
		if code == models.StatusUnmodified {
			return " "
		}
		var style lipgloss.Style
		switch code {
		case models.StatusAdded:
			style = addedStyle
		case models.StatusDeleted:
			style = deletedStyle
		default:
			if index {
				style = stagedStyle
			} else {
				style = modifiedStyle
			}
		}
		return style.Render(string(rune(code)))
	}

	return renderCode(cand.IndexCode, true) + renderCode(cand.TreeCode, false)
}
