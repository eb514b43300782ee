package app

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/chmouel/lazystatus/internal/app/screen"
	"github.com/chmouel/lazystatus/internal/git"
	"github.com/chmouel/lazystatus/internal/models"
	"github.com/chmouel/lazystatus/internal/theme"
)

// actionTargets resolves what an action applies to: the marked files when
// any exist, otherwise the selection (a directory selects every file
// under it). Listing order is preserved so actions run top to bottom.
func (m *Model) actionTargets() []*models.Candidate {
	if len(m.data.marks) > 0 {
		out := make([]*models.Candidate, 0, len(m.data.marks))
		for i := range m.data.candidates {
			if m.data.marks[m.data.candidates[i].Path] {
				out = append(out, &m.data.candidates[i])
			}
		}
		return out
	}
	node := m.services.tree.SelectedNode()
	if node == nil {
		return nil
	}
	return node.CollectCandidates()
}

// stageTargets stages all targets with a single git add.
func (m *Model) stageTargets() tea.Cmd {
	targets := m.actionTargets()
	if len(targets) == 0 {
		return nil
	}
	m.clearMarks()
	args := []string{"git", "add"}
	for _, t := range targets {
		args = append(args, t.RelPath())
	}
	return func() tea.Msg {
		if _, err := m.git.CombinedOutput(m.ctx, args, m.root); err != nil {
			return errMsg{err: err}
		}
		return refreshCompleteMsg{}
	}
}

// patchTargets hands the terminal to git add --patch for the targets.
func (m *Model) patchTargets() tea.Cmd {
	targets := m.actionTargets()
	if len(targets) == 0 {
		return nil
	}
	m.clearMarks()
	args := []string{"add", "--patch"}
	for _, t := range targets {
		args = append(args, t.RelPath())
	}
	c := m.commandRunner(m.ctx, "git", args...)
	c.Dir = m.root
	return m.execProcess(c, func(err error) tea.Msg {
		if err != nil {
			return errMsg{err: err}
		}
		return refreshCompleteMsg{}
	})
}

// resetTargets walks the targets one file at a time. Each file gets the
// treatment its state calls for: unstage, checkout, a choice between the
// two, or removal for untracked files.
func (m *Model) resetTargets() tea.Cmd {
	targets := m.actionTargets()
	if len(targets) == 0 {
		return nil
	}
	m.clearMarks()
	return m.resetStep(targets, 0)
}

// resetStep runs while Update holds the model, so it may push screens.
// Git work happens in returned commands which loop back via resetStepMsg.
func (m *Model) resetStep(targets []*models.Candidate, idx int) tea.Cmd {
	if idx >= len(targets) {
		return func() tea.Msg { return refreshCompleteMsg{} }
	}
	t := targets[idx]
	rel := t.RelPath()
	switch {
	case t.Staged && t.ModifiedInTree:
		m.pushResetChoice(targets, idx, rel)
		return nil
	case t.ModifiedInTree:
		return m.runResetCommand([]string{"git", "checkout", "--", rel}, targets, idx)
	case t.Staged:
		return m.runResetCommand([]string{"git", "reset", "HEAD", "--", rel}, targets, idx)
	default:
		m.pushRemoveConfirm(targets, idx)
		return nil
	}
}

// pushResetChoice asks whether a file that is both staged and modified
// should be unstaged or checked out. Cancelling skips just this file.
func (m *Model) pushResetChoice(targets []*models.Candidate, idx int, rel string) {
	items := []screen.SelectionItem{
		{ID: "reset", Label: "Reset", Description: "Unstage, keep working tree changes"},
		{ID: "checkout", Label: "Checkout", Description: "Discard working tree changes"},
	}
	sel := screen.NewListSelectionScreen(items, screen.PickerOptions{
		Title:     fmt.Sprintf("%s is staged and modified", rel),
		InitialID: "reset",
		MaxWidth:  m.view.WindowWidth,
		MaxHeight: m.view.WindowHeight,
		Theme:     m.theme,
	})
	sel.OnSelect = func(item screen.SelectionItem) tea.Cmd {
		args := []string{"git", "reset", "HEAD", "--", rel}
		if item.ID == "checkout" {
			args = []string{"git", "checkout", "--", rel}
		}
		return m.runResetCommand(args, targets, idx)
	}
	sel.OnCancel = func() tea.Cmd {
		return func() tea.Msg { return resetStepMsg{targets: targets, idx: idx + 1} }
	}
	m.ui.screenManager.Push(sel)
}

func (m *Model) pushRemoveConfirm(targets []*models.Candidate, idx int) {
	t := targets[idx]
	message := fmt.Sprintf("Remove untracked file?\n\n%s (%s)", t.RelPath(), m.removal)
	confirm := screen.NewConfirmScreen(message, m.theme)
	confirm.OnConfirm = func() tea.Cmd {
		return m.removeCandidate(t, targets, idx)
	}
	confirm.OnCancel = func() tea.Cmd {
		return func() tea.Msg { return resetStepMsg{targets: targets, idx: idx + 1} }
	}
	m.ui.screenManager.Push(confirm)
}

func (m *Model) runResetCommand(args []string, targets []*models.Candidate, idx int) tea.Cmd {
	return func() tea.Msg {
		if _, err := m.git.CombinedOutput(m.ctx, args, m.root); err != nil {
			return errMsg{err: err}
		}
		return resetStepMsg{targets: targets, idx: idx + 1}
	}
}

// removeCandidate deletes an untracked file using the resolved removal
// strategy. Trash helpers take the absolute path since they run outside
// git.
func (m *Model) removeCandidate(t *models.Candidate, targets []*models.Candidate, idx int) tea.Cmd {
	strategy := m.removal
	path := t.Path
	return func() tea.Msg {
		var err error
		switch strategy {
		case git.RemoveTrashPut:
			_, err = m.git.CombinedOutput(m.ctx, []string{"trash-put", path}, m.root)
		case git.RemoveRmtrash:
			_, err = m.git.CombinedOutput(m.ctx, []string{"rmtrash", path}, m.root)
		default:
			err = os.Remove(path)
		}
		if err != nil {
			return errMsg{err: err}
		}
		return resetStepMsg{targets: targets, idx: idx + 1}
	}
}

// togglePreview opens the selected file's diff in the preview pane, or
// closes it when it is already showing. A file that is both staged and
// modified first asks which side to diff.
func (m *Model) togglePreview() tea.Cmd {
	node := m.services.tree.SelectedNode()
	if node == nil || node.IsDir() {
		return nil
	}
	t := node.Candidate
	if m.data.previewed != nil && m.data.previewed.Path == t.Path {
		m.closePreview()
		return nil
	}
	if t.Staged && t.ModifiedInTree {
		m.pushDiffSideChoice(t)
		return nil
	}
	return m.openPreview(t, t.Staged && !t.ModifiedInTree)
}

func (m *Model) pushDiffSideChoice(t *models.Candidate) {
	items := []screen.SelectionItem{
		{ID: "cached", Label: "Cached", Description: "Diff the index against HEAD"},
		{ID: "worktree", Label: "Worktree", Description: "Diff the working tree against the index"},
	}
	sel := screen.NewListSelectionScreen(items, screen.PickerOptions{
		Title:     fmt.Sprintf("Diff %s", t.RelPath()),
		InitialID: "cached",
		MaxWidth:  m.view.WindowWidth,
		MaxHeight: m.view.WindowHeight,
		Theme:     m.theme,
	})
	target := *t
	sel.OnSelect = func(item screen.SelectionItem) tea.Cmd {
		return m.openPreview(&target, item.ID == "cached")
	}
	m.ui.screenManager.Push(sel)
}

func (m *Model) openPreview(t *models.Candidate, cached bool) tea.Cmd {
	previewed := *t
	m.data.previewed = &previewed
	m.data.previewCached = cached
	m.data.previewContent = ""
	m.ui.previewViewport.SetContent("")
	return m.loadPreview()
}

// loadPreview fetches the diff for the pinned candidate and runs it
// through the diff formatter when one is configured.
func (m *Model) loadPreview() tea.Cmd {
	if m.data.previewed == nil {
		return nil
	}
	t := *m.data.previewed
	spec := git.DiffSpec{Rel: t.RelPath(), Cached: m.data.previewCached, Untracked: t.Untracked()}
	return func() tea.Msg {
		diff := m.git.Diff(m.ctx, m.root, spec)
		if diff == "" {
			diff = "No changes."
		} else if m.git.UseGitPager() {
			diff = m.git.ApplyGitPager(m.ctx, diff)
		}
		return previewLoadedMsg{path: t.Path, content: diff}
	}
}

// startCommit prompts for a message with the per-repository history on
// the up arrow, then commits the targets.
func (m *Model) startCommit() tea.Cmd {
	targets := m.actionTargets()
	if len(targets) == 0 {
		return nil
	}
	input := screen.NewInputScreen("Commit message", "Summarize the change...", "", m.theme, m.config.ShowIcons)
	input.SetHistory(m.services.history.LoadMessages(m.repoKey))
	input.OnSubmit = func(value string) tea.Cmd {
		m.clearMarks()
		return m.commitTargets(value, targets)
	}
	m.ui.screenManager.Push(input)
	return textinput.Blink
}

// commitTargets commits only the target paths. The message goes to git
// as-is; git rejects an empty one with its own error.
func (m *Model) commitTargets(message string, targets []*models.Candidate) tea.Cmd {
	args := []string{"git", "commit", "-v", "-m", message}
	for _, t := range targets {
		args = append(args, t.RelPath())
	}
	return func() tea.Msg {
		out, err := m.git.CombinedOutput(m.ctx, args, m.root)
		return commitDoneMsg{message: message, output: out, err: err}
	}
}

// showThemePicker lists the themes with a live preview while moving the
// cursor. Cancelling restores the theme that was active.
func (m *Model) showThemePicker() {
	current := m.themeName
	names := theme.AvailableThemes()
	items := make([]screen.SelectionItem, 0, len(names))
	for _, name := range names {
		desc := "Dark"
		if theme.IsLight(name) {
			desc = "Light"
		}
		items = append(items, screen.SelectionItem{ID: name, Label: name, Description: desc})
	}
	sel := screen.NewListSelectionScreen(items, screen.PickerOptions{
		Title:       "Select theme",
		Placeholder: "Filter themes...",
		NoResults:   "No matching theme.",
		InitialID:   current,
		MaxWidth:    m.view.WindowWidth,
		MaxHeight:   m.view.WindowHeight,
		Theme:       m.theme,
	})
	sel.OnCursorChange = func(item screen.SelectionItem) {
		thm := theme.GetTheme(item.ID)
		m.applyTheme(item.ID, thm)
		sel.Thm = thm
	}
	sel.OnSelect = func(item screen.SelectionItem) tea.Cmd {
		m.applyTheme(item.ID, theme.GetTheme(item.ID))
		return nil
	}
	sel.OnCancel = func() tea.Cmd {
		m.applyTheme(current, theme.GetTheme(current))
		return nil
	}
	m.ui.screenManager.Push(sel)
}
