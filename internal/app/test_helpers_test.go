package app

import (
	"bytes"
	"context"
	"os/exec"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/chmouel/lazystatus/internal/config"
	"github.com/chmouel/lazystatus/internal/models"
)

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
}

// setupRepo creates a throwaway repository with a committed user identity
// so commit tests work in a clean environment.
func setupRepo(t *testing.T) string {
	t.Helper()
	requireGit(t)
	root := t.TempDir()
	rungit(t, root, "init", "-q", "-b", "main")
	rungit(t, root, "config", "user.email", "test@example.com")
	rungit(t, root, "config", "user.name", "Test")
	return root
}

func rungit(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	if err := cmd.Run(); err != nil {
		t.Fatalf("git %v: %v\n%s", args, err, out.String())
	}
	return out.String()
}

func testConfig() *config.AppConfig {
	cfg := config.DefaultConfig()
	cfg.Theme = "dracula"
	cfg.ShowIcons = false
	cfg.AutoRefresh = false
	cfg.Removal = config.RemovalPermanent
	cfg.GitPager = ""
	return cfg
}

func newTestModel(t *testing.T) *Model {
	t.Helper()
	return newTestModelAt(t, t.TempDir())
}

func newTestModelAt(t *testing.T, root string) *Model {
	t.Helper()
	m := NewModel(testConfig(), root, "")
	m.setWindowSize(120, 40)
	t.Cleanup(m.Close)
	return m
}

func makeCandidate(root, rel string, index, tree models.StatusCode) models.Candidate {
	return models.Candidate{
		Path:           filepath.Join(root, filepath.FromSlash(rel)),
		Root:           root,
		IndexCode:      index,
		TreeCode:       tree,
		Staged:         index != models.StatusUnmodified && index != models.StatusUntracked,
		ModifiedInTree: tree != models.StatusUnmodified && tree != models.StatusUntracked,
		Label:          models.FormatLabel(index, tree, rel),
	}
}

func seedCandidates(m *Model, candidates ...models.Candidate) {
	m.data.candidates = candidates
	m.rebuildTree()
}

func pressKey(m *Model, key string) (*Model, tea.Cmd) {
	var msg tea.KeyMsg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "space":
		msg = tea.KeyMsg{Type: tea.KeySpace}
	case "ctrl+c":
		msg = tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	updated, cmd := m.Update(msg)
	return updated.(*Model), cmd
}

type recordedCommand struct {
	name string
	args []string
	dir  string
}

type commandRecorder struct {
	execs []recordedCommand
}

func (r *commandRecorder) runner(_ context.Context, name string, args ...string) *exec.Cmd {
	return exec.Command(name, args...)
}

func (r *commandRecorder) exec(cmd *exec.Cmd, _ tea.ExecCallback) tea.Cmd {
	r.execs = append(r.execs, recordedCommand{
		name: cmd.Args[0],
		args: append([]string{}, cmd.Args[1:]...),
		dir:  cmd.Dir,
	})
	return func() tea.Msg { return nil }
}

func containsCommand(cmds []recordedCommand, name string) bool {
	for _, cmd := range cmds {
		if cmd.name == name {
			return true
		}
	}
	return false
}

func findCommand(cmds []recordedCommand, name string) (recordedCommand, bool) {
	for _, cmd := range cmds {
		if cmd.name == name {
			return cmd, true
		}
	}
	return recordedCommand{}, false
}
