package app

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/chmouel/lazystatus/internal/app/screen"
	"github.com/chmouel/lazystatus/internal/app/state"
)

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.view.ShowingFilter {
		return m.handleFilterKey(msg)
	}

	switch msg.String() {
	case "ctrl+c", "q":
		m.quitting = true
		m.Close()
		return m, tea.Quit
	case "1":
		m.focusOrZoom(state.PaneList)
	case "2":
		m.focusOrZoom(state.PanePreview)
	case "tab":
		m.cycleFocus()
	case "=":
		m.toggleZoom()
	case "j", "down":
		m.handleNavigationDown()
	case "k", "up":
		m.handleNavigationUp()
	case "g", "home":
		m.handleNavigationTop()
	case "G", "end":
		m.handleNavigationBottom()
	case "ctrl+d", "pgdown":
		m.ui.previewViewport.HalfPageDown()
	case "ctrl+u", "pgup":
		m.ui.previewViewport.HalfPageUp()
	case " ":
		m.toggleMark()
	case "enter":
		return m, m.handleEnter()
	case "s":
		return m, m.stageTargets()
	case "p":
		return m, m.patchTargets()
	case "r":
		return m, m.resetTargets()
	case "d":
		return m, m.togglePreview()
	case "D":
		return m, m.openDiffInPager()
	case "c":
		return m, m.startCommit()
	case "e":
		return m, m.openInEditor()
	case "f", "/":
		m.view.ShowingFilter = true
		m.ui.filterInput.Focus()
		return m, textinput.Blink
	case "R":
		m.loading = true
		return m, tea.Batch(m.refreshStatus(), m.ui.spinner.Tick)
	case "T":
		m.showThemePicker()
	case "?":
		m.ui.screenManager.Push(screen.NewHelpScreen(m.view.WindowWidth, m.view.WindowHeight, m.theme, m.config.ShowIcons))
	case "esc":
		m.handleEscape()
	}
	return m, nil
}

// handleFilterKey feeds keys to the filter input while the filter bar is
// open. Enter keeps the query, escape drops it.
func (m *Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.view.ShowingFilter = false
		m.ui.filterInput.Blur()
		return m, nil
	case "esc", "ctrl+c":
		m.view.ShowingFilter = false
		m.ui.filterInput.Blur()
		m.clearFilter()
		return m, nil
	case "down", "up":
		// Let the list move while the filter stays open.
		if msg.String() == "down" {
			m.handleNavigationDown()
		} else {
			m.handleNavigationUp()
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.ui.filterInput, cmd = m.ui.filterInput.Update(msg)
	m.services.filter.Query = m.ui.filterInput.Value()
	m.rebuildTree()
	return m, cmd
}

func (m *Model) focusOrZoom(pane int) {
	if m.view.FocusedPane == pane {
		m.toggleZoom()
		return
	}
	m.view.FocusedPane = pane
	m.view.ZoomedPane = -1
}

func (m *Model) cycleFocus() {
	if m.view.FocusedPane == state.PaneList {
		m.view.FocusedPane = state.PanePreview
	} else {
		m.view.FocusedPane = state.PaneList
	}
	m.view.ZoomedPane = -1
}

func (m *Model) toggleZoom() {
	if m.view.ZoomedPane == m.view.FocusedPane {
		m.view.ZoomedPane = -1
	} else {
		m.view.ZoomedPane = m.view.FocusedPane
	}
}

func (m *Model) handleNavigationDown() {
	if m.view.FocusedPane == state.PanePreview {
		m.ui.previewViewport.ScrollDown(1)
		return
	}
	m.services.tree.Index++
	m.services.tree.ClampIndex()
}

func (m *Model) handleNavigationUp() {
	if m.view.FocusedPane == state.PanePreview {
		m.ui.previewViewport.ScrollUp(1)
		return
	}
	m.services.tree.Index--
	m.services.tree.ClampIndex()
}

func (m *Model) handleNavigationTop() {
	if m.view.FocusedPane == state.PanePreview {
		m.ui.previewViewport.GotoTop()
		return
	}
	m.services.tree.Index = 0
	m.services.tree.ClampIndex()
}

func (m *Model) handleNavigationBottom() {
	if m.view.FocusedPane == state.PanePreview {
		m.ui.previewViewport.GotoBottom()
		return
	}
	m.services.tree.Index = len(m.services.tree.Flat) - 1
	m.services.tree.ClampIndex()
}

// toggleMark flips the mark on the selected file, or on every file under
// the selected directory as one unit, then advances the cursor.
func (m *Model) toggleMark() {
	if m.view.FocusedPane != state.PaneList {
		return
	}
	node := m.services.tree.SelectedNode()
	if node == nil {
		return
	}
	cands := node.CollectCandidates()
	if len(cands) == 0 {
		return
	}
	all := true
	for _, c := range cands {
		if !m.data.marks[c.Path] {
			all = false
			break
		}
	}
	for _, c := range cands {
		if all {
			delete(m.data.marks, c.Path)
		} else {
			m.data.marks[c.Path] = true
		}
	}
	m.services.tree.Index++
	m.services.tree.ClampIndex()
}

func (m *Model) clearMarks() {
	m.data.marks = make(map[string]bool)
}

func (m *Model) clearFilter() {
	m.services.filter.Query = ""
	m.ui.filterInput.SetValue("")
	m.rebuildTree()
}

// handleEnter collapses directories and toggles the preview for files.
func (m *Model) handleEnter() tea.Cmd {
	if m.view.FocusedPane != state.PaneList {
		return nil
	}
	node := m.services.tree.SelectedNode()
	if node == nil {
		return nil
	}
	if node.IsDir() {
		m.services.tree.ToggleCollapse(node.Path)
		return nil
	}
	return m.togglePreview()
}

// handleEscape unwinds transient state one layer at a time: marks first,
// then the filter, then the open preview.
func (m *Model) handleEscape() {
	switch {
	case len(m.data.marks) > 0:
		m.clearMarks()
	case m.services.filter.HasActive():
		m.clearFilter()
	case m.data.previewed != nil:
		m.closePreview()
	}
}
