package app

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/chmouel/lazystatus/internal/app/services"
)

// shellQuote single-quotes s for bash so file names with spaces or
// metacharacters survive the round trip.
func shellQuote(s string) string {
	if s == "" {
		return "''"
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// openInEditor suspends the UI and opens the selected file in the
// configured editor, working-tree relative.
func (m *Model) openInEditor() tea.Cmd {
	node := m.services.tree.SelectedNode()
	if node == nil || node.IsDir() {
		return nil
	}
	editor := services.EditorCommand(m.config)
	if strings.TrimSpace(editor) == "" {
		m.showError("No editor configured", errors.New("set editor in the config file or export EDITOR"))
		return nil
	}
	cmdStr := fmt.Sprintf("%s %s", editor, shellQuote(node.Candidate.RelPath()))
	c := m.commandRunner(m.ctx, "bash", "-c", cmdStr)
	c.Dir = m.root
	return m.execProcess(c, func(err error) tea.Msg {
		if err != nil {
			return errMsg{err: err}
		}
		return refreshCompleteMsg{}
	})
}

// openDiffInPager shows the full diff for the selected file in the
// configured pager. The git side mirrors the preview: untracked files
// diff against /dev/null, staged-only files diff the index.
func (m *Model) openDiffInPager() tea.Cmd {
	node := m.services.tree.SelectedNode()
	if node == nil || node.IsDir() {
		return nil
	}
	t := node.Candidate
	rel := shellQuote(t.RelPath())
	var gitCmd string
	switch {
	case t.Untracked():
		// no-index exits 1 when the file has content, which is the
		// normal case here.
		gitCmd = fmt.Sprintf("git diff --no-index -- /dev/null %s || [ $? -eq 1 ]", rel)
	case t.Staged && !t.ModifiedInTree:
		gitCmd = fmt.Sprintf("git diff --cached -- %s", rel)
	default:
		gitCmd = fmt.Sprintf("git diff -- %s", rel)
	}
	return m.runInPager(gitCmd)
}

// runInPager pipes a shell command through the pager with the UI
// suspended. SIGPIPE from quitting the pager early is not an error.
func (m *Model) runInPager(shellCmd string) tea.Cmd {
	pager := services.PagerCommand(m.config)
	pagerCmd := pager
	if env := services.PagerEnv(pager); env != "" {
		pagerCmd = fmt.Sprintf("%s %s", env, pager)
	}
	cmdStr := fmt.Sprintf("set -o pipefail; (%s) 2>&1 | %s", shellCmd, pagerCmd)
	c := m.commandRunner(m.ctx, "bash", "-c", cmdStr)
	c.Dir = m.root
	return m.execProcess(c, func(err error) tea.Msg {
		if err != nil {
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) && exitErr.ExitCode() == 141 {
				return refreshCompleteMsg{}
			}
			return errMsg{err: err}
		}
		return refreshCompleteMsg{}
	})
}
