package app

import (
	"errors"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/chmouel/lazystatus/internal/app/screen"
	"github.com/chmouel/lazystatus/internal/models"
)

type errMsg struct {
	err error
}

// statusLoadedMsg carries a fresh repository snapshot.
type statusLoadedMsg struct {
	candidates []models.Candidate
	info       *models.RepoInfo
	err        error
}

// previewLoadedMsg delivers diff text for the pinned preview candidate.
// path guards against a stale load racing a preview switch.
type previewLoadedMsg struct {
	path    string
	content string
}

// resetStepMsg advances the per-file reset walk to the next target.
type resetStepMsg struct {
	targets []*models.Candidate
	idx     int
}

type commitDoneMsg struct {
	message string
	output  string
	err     error
}

// refreshCompleteMsg requests a status reload after an action finished.
type refreshCompleteMsg struct{}

// gitDirChangedMsg is emitted by the filesystem watcher.
type gitDirChangedMsg struct{}

type loadingTickMsg struct{}

// handleStatusMessages dispatches the background messages produced by
// commands. Key and component messages are handled in Update directly.
func (m *Model) handleStatusMessages(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case statusLoadedMsg:
		return m.handleStatusLoaded(msg)
	case previewLoadedMsg:
		return m.handlePreviewLoaded(msg)
	case resetStepMsg:
		return m, m.resetStep(msg.targets, msg.idx)
	case commitDoneMsg:
		return m.handleCommitDone(msg)
	case refreshCompleteMsg:
		m.loading = true
		return m, tea.Batch(m.refreshStatus(), m.ui.spinner.Tick)
	case gitDirChangedMsg:
		return m.handleGitDirChanged()
	case errMsg:
		return m.handleErr(msg)
	}
	return m, nil
}

func (m *Model) handleStatusLoaded(msg statusLoadedMsg) (tea.Model, tea.Cmd) {
	m.loading = false
	if m.ui.screenManager.Type() == screen.TypeLoading {
		m.ui.screenManager.Pop()
	}
	if msg.err != nil {
		m.data.statusLine = ""
		m.showError("Reading status failed", msg.err)
		return m, nil
	}
	m.data.candidates = msg.candidates
	m.data.info = msg.info
	m.data.statusLine = ""
	m.pruneMarks()
	m.rebuildTree()
	m.syncPreview()

	var cmds []tea.Cmd
	if cmd := m.startGitWatcher(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if cmd := m.loadPreview(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) handlePreviewLoaded(msg previewLoadedMsg) (tea.Model, tea.Cmd) {
	if m.data.previewed == nil || m.data.previewed.Path != msg.path {
		return m, nil
	}
	m.data.previewContent = msg.content
	m.ui.previewViewport.SetContent(msg.content)
	m.ui.previewViewport.GotoTop()
	return m, nil
}

func (m *Model) handleCommitDone(msg commitDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		detail := tailLines(strings.TrimSpace(msg.output), 12)
		if detail == "" {
			detail = msg.err.Error()
		}
		m.showError("Commit failed", errors.New(detail))
		m.loading = true
		return m, tea.Batch(m.refreshStatus(), m.ui.spinner.Tick)
	}
	if err := m.services.history.RecordMessage(m.repoKey, msg.message); err != nil {
		m.debugf("history: %v", err)
	}
	summary, _, _ := strings.Cut(msg.message, "\n")
	m.data.statusLine = "Committed: " + summary
	m.loading = true
	return m, tea.Batch(m.refreshStatus(), m.ui.spinner.Tick)
}

func (m *Model) handleGitDirChanged() (tea.Model, tea.Cmd) {
	if m.services.watch == nil {
		return m, nil
	}
	m.services.watch.ResetWaiting()
	cmds := []tea.Cmd{m.waitForGitWatchEvent()}
	if m.services.watch.ShouldRefresh(time.Now()) {
		m.loading = true
		cmds = append(cmds, m.refreshStatus(), m.ui.spinner.Tick)
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) handleErr(msg errMsg) (tea.Model, tea.Cmd) {
	if msg.err == nil {
		return m, nil
	}
	m.showError("Command failed", msg.err)
	m.loading = true
	return m, tea.Batch(m.refreshStatus(), m.ui.spinner.Tick)
}

func (m *Model) showError(title string, err error) {
	message := title
	if err != nil {
		message = title + "\n\n" + err.Error()
	}
	m.ui.screenManager.Push(screen.NewInfoScreen(message, m.theme))
}
