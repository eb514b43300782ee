package app

import (
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/chmouel/lazystatus/internal/app/state"
	"github.com/chmouel/lazystatus/internal/models"
)

// refreshStatus reads the porcelain listing and the branch summary in the
// background and delivers both in one message.
func (m *Model) refreshStatus() tea.Cmd {
	return func() tea.Msg {
		candidates, err := m.git.Candidates(m.ctx, m.root, m.config.StrictGitErrors)
		if err != nil {
			return statusLoadedMsg{err: err}
		}
		info := m.git.Summary(m.ctx, m.root, candidates)
		return statusLoadedMsg{candidates: candidates, info: info}
	}
}

// rebuildTree reapplies the filter and rebuilds the tree from the current
// candidates, keeping the selection where possible. Watched directories
// follow the listing so edits in untracked subtrees still trigger events.
func (m *Model) rebuildTree() {
	cands := make([]*models.Candidate, 0, len(m.data.candidates))
	rels := make([]string, 0, len(m.data.candidates))
	for i := range m.data.candidates {
		cands = append(cands, &m.data.candidates[i])
		rels = append(rels, filepath.ToSlash(m.data.candidates[i].RelPath()))
	}
	m.services.tree.SetCandidates(m.services.filter.Apply(cands))
	if m.services.watch != nil && m.services.watch.Running() {
		m.services.watch.WatchCandidateDirs(rels)
	}
}

func (m *Model) pruneMarks() {
	if len(m.data.marks) == 0 {
		return
	}
	present := make(map[string]bool, len(m.data.candidates))
	for i := range m.data.candidates {
		present[m.data.candidates[i].Path] = true
	}
	for path := range m.data.marks {
		if !present[path] {
			delete(m.data.marks, path)
		}
	}
}

// syncPreview re-points the preview slot at the refreshed candidate, or
// closes it when the file left the listing.
func (m *Model) syncPreview() {
	if m.data.previewed == nil {
		return
	}
	for i := range m.data.candidates {
		if m.data.candidates[i].Path == m.data.previewed.Path {
			updated := m.data.candidates[i]
			m.data.previewed = &updated
			return
		}
	}
	m.closePreview()
}

func (m *Model) closePreview() {
	m.data.previewed = nil
	m.data.previewContent = ""
	m.ui.previewViewport.SetContent("")
	if m.view.FocusedPane == state.PanePreview {
		m.view.FocusedPane = state.PaneList
	}
}

// startGitWatcher starts the filesystem watcher the first time a
// successful refresh lands. Subsequent calls are no-ops.
func (m *Model) startGitWatcher() tea.Cmd {
	if m.services.watch == nil || m.services.watch.Running() {
		return nil
	}
	started, err := m.services.watch.Start(m.ctx, m.config, m.root)
	if err != nil {
		m.debugf("watch: %v", err)
		return nil
	}
	if !started {
		return nil
	}
	m.rewatchCandidates()
	return m.waitForGitWatchEvent()
}

func (m *Model) stopGitWatcher() {
	if m.services.watch != nil {
		m.services.watch.Stop()
	}
}

// waitForGitWatchEvent blocks on the watcher channel and resurfaces the
// event as a message. A nil channel means the previous event has not been
// consumed yet, so no new wait is queued.
func (m *Model) waitForGitWatchEvent() tea.Cmd {
	ch := m.services.watch.NextEvent()
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return gitDirChangedMsg{}
	}
}

func (m *Model) rewatchCandidates() {
	rels := make([]string, 0, len(m.data.candidates))
	for i := range m.data.candidates {
		rels = append(rels, filepath.ToSlash(m.data.candidates[i].RelPath()))
	}
	m.services.watch.WatchCandidateDirs(rels)
}
