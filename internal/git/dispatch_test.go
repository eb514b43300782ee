package git

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chmouel/lazystatus/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeHost implements Host with scripted prompt answers and records every
// callback the dispatcher makes.
type fakeHost struct {
	workdir        string
	answers        []string
	promptErr      error
	prompts        []string
	filesChanged   int
	previewOpen    bool
	opened         []DiffSpec
	closed         int
	interactive    [][]string
	interactiveErr error
	commands       map[string]bool
}

var _ Host = (*fakeHost)(nil)

func (f *fakeHost) Workdir() (string, error) {
	return f.workdir, nil
}

func (f *fakeHost) Prompt(_ context.Context, message, def string) (string, error) {
	f.prompts = append(f.prompts, message)
	if f.promptErr != nil {
		return "", f.promptErr
	}
	if len(f.answers) == 0 {
		return def, nil
	}
	answer := f.answers[0]
	f.answers = f.answers[1:]
	return answer, nil
}

func (f *fakeHost) FilesChanged() {
	f.filesChanged++
}

func (f *fakeHost) OpenPreview(_ context.Context, _ string, spec DiffSpec) error {
	f.opened = append(f.opened, spec)
	f.previewOpen = true
	return nil
}

func (f *fakeHost) ClosePreview() error {
	f.closed++
	f.previewOpen = false
	return nil
}

func (f *fakeHost) IsPreviewOpen() bool {
	return f.previewOpen
}

func (f *fakeHost) RunInteractive(_ context.Context, argv []string, _ string) error {
	f.interactive = append(f.interactive, argv)
	return f.interactiveErr
}

func (f *fakeHost) HasCommand(name string) bool {
	return f.commands[name]
}

func listCandidates(t *testing.T, service *Service, root string) []models.Candidate {
	t.Helper()
	candidates, err := service.Candidates(context.Background(), root, true)
	require.NoError(t, err)
	return candidates
}

func statusOf(t *testing.T, dir, rel string) string {
	t.Helper()
	out := runGit(t, dir, "status", "--porcelain", "-uall", "--", rel)
	if out == "" {
		return ""
	}
	return out[:2]
}

func TestRemovalFromName(t *testing.T) {
	tests := []struct {
		name  string
		want  RemovalStrategy
		valid bool
	}{
		{name: "permanent", want: RemovePermanent, valid: true},
		{name: "trash-put", want: RemoveTrashPut, valid: true},
		{name: "rmtrash", want: RemoveRmtrash, valid: true},
		{name: " Trash-Put ", want: RemoveTrashPut, valid: true},
		{name: "shred", want: RemovePermanent, valid: false},
		{name: "", want: RemovePermanent, valid: false},
	}

	for _, tt := range tests {
		got, ok := RemovalFromName(tt.name)
		assert.Equal(t, tt.want, got, "name %q", tt.name)
		assert.Equal(t, tt.valid, ok, "name %q", tt.name)
	}
}

func TestProbeRemoval(t *testing.T) {
	t.Run("prefers trash-put", func(t *testing.T) {
		host := &fakeHost{commands: map[string]bool{"trash-put": true, "rmtrash": true}}
		assert.Equal(t, RemoveTrashPut, ProbeRemoval(host))
	})

	t.Run("falls back to rmtrash", func(t *testing.T) {
		host := &fakeHost{commands: map[string]bool{"rmtrash": true}}
		assert.Equal(t, RemoveRmtrash, ProbeRemoval(host))
	})

	t.Run("permanent when nothing is installed", func(t *testing.T) {
		host := &fakeHost{}
		assert.Equal(t, RemovePermanent, ProbeRemoval(host))
	})
}

func TestNewSession(t *testing.T) {
	t.Run("inside a repository", func(t *testing.T) {
		tmpDir := t.TempDir()
		setupGitRepo(t, tmpDir)
		nested := filepath.Join(tmpDir, "sub")
		require.NoError(t, os.MkdirAll(nested, 0o750))

		sess, err := NewSession(&fakeHost{workdir: nested})
		require.NoError(t, err)
		assert.True(t, sess.InRepo())
		assert.Equal(t, tmpDir, sess.Root)
		assert.Nil(t, sess.Previewed)
	})

	t.Run("outside a repository", func(t *testing.T) {
		plain := t.TempDir()

		sess, err := NewSession(&fakeHost{workdir: plain})
		require.NoError(t, err)
		assert.False(t, sess.InRepo())
		assert.Empty(t, sess.Root)
	})
}

func TestDispatchContract(t *testing.T) {
	service := newTestService()
	host := &fakeHost{}
	dispatcher := NewDispatcher(service, host, RemovePermanent)
	ctx := context.Background()

	t.Run("empty batch is a no-op", func(t *testing.T) {
		results := dispatcher.Dispatch(ctx, &Session{Root: "/repo"}, ActionStage, nil)
		assert.Nil(t, results)
	})

	t.Run("mixed roots fail the whole batch", func(t *testing.T) {
		sess := &Session{Root: "/repo"}
		targets := []models.Candidate{
			{Path: "/repo/a.txt", Root: "/repo"},
			{Path: "/elsewhere/b.txt", Root: "/elsewhere"},
		}

		results := dispatcher.Dispatch(ctx, sess, ActionStage, targets)
		require.Len(t, results, 2)
		for _, res := range results {
			assert.Equal(t, OutcomeFailed, res.Outcome)
			require.Error(t, res.Err)
			assert.Contains(t, res.Err.Error(), "session root")
		}
	})

	t.Run("unknown action fails the batch", func(t *testing.T) {
		sess := &Session{Root: "/repo"}
		targets := []models.Candidate{{Path: "/repo/a.txt", Root: "/repo"}}

		results := dispatcher.Dispatch(ctx, sess, Action(99), targets)
		require.Len(t, results, 1)
		assert.Equal(t, OutcomeFailed, results[0].Outcome)
	})
}

func TestDispatchStage(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	t.Run("stages all targets in one invocation", func(t *testing.T) {
		tmpDir := t.TempDir()
		setupGitRepo(t, tmpDir)
		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "a.txt"), []byte("a"), 0o600))
		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "b.txt"), []byte("b"), 0o600))

		host := &fakeHost{workdir: tmpDir}
		dispatcher := NewDispatcher(service, host, RemovePermanent)
		sess := &Session{Root: tmpDir}
		targets := listCandidates(t, service, tmpDir)
		require.Len(t, targets, 2)

		results := dispatcher.Dispatch(ctx, sess, ActionStage, targets)
		require.Len(t, results, 2)
		for _, res := range results {
			assert.Equal(t, OutcomeApplied, res.Outcome)
			assert.NoError(t, res.Err)
		}

		assert.Equal(t, "A ", statusOf(t, tmpDir, "a.txt"))
		assert.Equal(t, "A ", statusOf(t, tmpDir, "b.txt"))
	})

	t.Run("failure marks every target", func(t *testing.T) {
		tmpDir := t.TempDir()
		setupGitRepo(t, tmpDir)

		host := &fakeHost{workdir: tmpDir}
		dispatcher := NewDispatcher(service, host, RemovePermanent)
		sess := &Session{Root: tmpDir}
		targets := []models.Candidate{{
			Path: filepath.Join(tmpDir, "missing.txt"),
			Root: tmpDir,
		}}

		results := dispatcher.Dispatch(ctx, sess, ActionStage, targets)
		require.Len(t, results, 1)
		assert.Equal(t, OutcomeFailed, results[0].Outcome)

		var subErr *SubprocessError
		assert.ErrorAs(t, results[0].Err, &subErr)
	})

	t.Run("pathspecs stay root relative", func(t *testing.T) {
		tmpDir := t.TempDir()
		recorded := filepath.Join(t.TempDir(), "argv")
		writeStubCommand(t, "git", `printf '%s\n' "$@" > `+recorded)

		host := &fakeHost{workdir: tmpDir}
		dispatcher := NewDispatcher(service, host, RemovePermanent)
		sess := &Session{Root: tmpDir}
		targets := []models.Candidate{{
			Path: filepath.Join(tmpDir, "sub", "deep.txt"),
			Root: tmpDir,
		}}

		results := dispatcher.Dispatch(ctx, sess, ActionStage, targets)
		require.Len(t, results, 1)
		assert.Equal(t, OutcomeApplied, results[0].Outcome)

		got, err := os.ReadFile(recorded) // #nosec G304 -- test file in temp dir
		require.NoError(t, err)
		assert.Equal(t, "add\nsub/deep.txt\n", string(got))
	})
}

func TestDispatchPatch(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	tmpDir := t.TempDir()
	setupGitRepo(t, tmpDir)
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "a.txt"), []byte("a"), 0o600))

	host := &fakeHost{workdir: tmpDir}
	dispatcher := NewDispatcher(service, host, RemovePermanent)
	sess := &Session{Root: tmpDir}
	targets := listCandidates(t, service, tmpDir)
	require.Len(t, targets, 1)

	t.Run("hands the terminal to git add --patch", func(t *testing.T) {
		results := dispatcher.Dispatch(ctx, sess, ActionPatch, targets)
		require.Len(t, results, 1)
		assert.Equal(t, OutcomeApplied, results[0].Outcome)

		require.Len(t, host.interactive, 1)
		assert.Equal(t, []string{"git", "add", "--patch", "a.txt"}, host.interactive[0])
	})

	t.Run("interactive failure marks the batch", func(t *testing.T) {
		host.interactiveErr = errors.New("terminal gone")
		results := dispatcher.Dispatch(ctx, sess, ActionPatch, targets)
		require.Len(t, results, 1)
		assert.Equal(t, OutcomeFailed, results[0].Outcome)
		host.interactiveErr = nil
	})
}

func TestDispatchResetStagedOnly(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	tmpDir := t.TempDir()
	setupGitRepo(t, tmpDir)
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "staged.txt"), []byte("content"), 0o600))
	runGit(t, tmpDir, "add", "staged.txt")

	host := &fakeHost{workdir: tmpDir}
	dispatcher := NewDispatcher(service, host, RemovePermanent)
	sess := &Session{Root: tmpDir}
	targets := listCandidates(t, service, tmpDir)
	require.Len(t, targets, 1)
	require.True(t, targets[0].Staged)

	results := dispatcher.Dispatch(ctx, sess, ActionReset, targets)
	require.Len(t, results, 1)
	assert.Equal(t, OutcomeApplied, results[0].Outcome)

	// Unstaged without touching the prompt; the file is untracked again.
	assert.Empty(t, host.prompts)
	assert.Equal(t, "??", statusOf(t, tmpDir, "staged.txt"))
	assert.Equal(t, 1, host.filesChanged)
}

func TestDispatchResetModifiedOnly(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	tmpDir := t.TempDir()
	setupGitRepo(t, tmpDir)
	path := filepath.Join(tmpDir, "README.md")
	require.NoError(t, os.WriteFile(path, []byte("# Dirty"), 0o600))

	host := &fakeHost{workdir: tmpDir}
	dispatcher := NewDispatcher(service, host, RemovePermanent)
	sess := &Session{Root: tmpDir}
	targets := listCandidates(t, service, tmpDir)
	require.Len(t, targets, 1)
	require.True(t, targets[0].ModifiedInTree)
	require.False(t, targets[0].Staged)

	results := dispatcher.Dispatch(ctx, sess, ActionReset, targets)
	require.Len(t, results, 1)
	assert.Equal(t, OutcomeApplied, results[0].Outcome)

	// Checked out from the index without asking.
	assert.Empty(t, host.prompts)
	content, err := os.ReadFile(path) // #nosec G304 -- test file in temp dir
	require.NoError(t, err)
	assert.Equal(t, "# Test Repo", string(content))
	assert.Equal(t, "", statusOf(t, tmpDir, "README.md"))
}

func TestDispatchResetStagedAndModified(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	setup := func(t *testing.T) (string, []models.Candidate) {
		t.Helper()
		tmpDir := t.TempDir()
		setupGitRepo(t, tmpDir)
		path := filepath.Join(tmpDir, "both.txt")
		require.NoError(t, os.WriteFile(path, []byte("staged"), 0o600))
		runGit(t, tmpDir, "add", "both.txt")
		require.NoError(t, os.WriteFile(path, []byte("tree"), 0o600))

		targets := listCandidates(t, service, tmpDir)
		require.Len(t, targets, 1)
		require.True(t, targets[0].Staged)
		require.True(t, targets[0].ModifiedInTree)
		return tmpDir, targets
	}

	t.Run("answer r unstages and keeps tree content", func(t *testing.T) {
		tmpDir, targets := setup(t)
		host := &fakeHost{workdir: tmpDir, answers: []string{"r"}}
		dispatcher := NewDispatcher(service, host, RemovePermanent)

		results := dispatcher.Dispatch(ctx, &Session{Root: tmpDir}, ActionReset, targets)
		require.Len(t, results, 1)
		assert.Equal(t, OutcomeApplied, results[0].Outcome)
		assert.Equal(t, []string{PromptResetOrCheckout}, host.prompts)

		content, err := os.ReadFile(filepath.Join(tmpDir, "both.txt")) // #nosec G304 -- test file in temp dir
		require.NoError(t, err)
		assert.Equal(t, "tree", string(content))
		assert.Equal(t, "??", statusOf(t, tmpDir, "both.txt"))
		assert.Equal(t, 1, host.filesChanged)
	})

	t.Run("answer c restores the index content", func(t *testing.T) {
		tmpDir, targets := setup(t)
		host := &fakeHost{workdir: tmpDir, answers: []string{"c"}}
		dispatcher := NewDispatcher(service, host, RemovePermanent)

		results := dispatcher.Dispatch(ctx, &Session{Root: tmpDir}, ActionReset, targets)
		require.Len(t, results, 1)
		assert.Equal(t, OutcomeApplied, results[0].Outcome)

		content, err := os.ReadFile(filepath.Join(tmpDir, "both.txt")) // #nosec G304 -- test file in temp dir
		require.NoError(t, err)
		assert.Equal(t, "staged", string(content))
		assert.Equal(t, "A ", statusOf(t, tmpDir, "both.txt"))
	})

	t.Run("other answers skip the target", func(t *testing.T) {
		tmpDir, targets := setup(t)
		host := &fakeHost{workdir: tmpDir, answers: []string{"x"}}
		dispatcher := NewDispatcher(service, host, RemovePermanent)

		results := dispatcher.Dispatch(ctx, &Session{Root: tmpDir}, ActionReset, targets)
		require.Len(t, results, 1)
		assert.Equal(t, OutcomeSkipped, results[0].Outcome)
		assert.NoError(t, results[0].Err)

		// Nothing moved and nobody was told to reload.
		assert.Equal(t, "AM", statusOf(t, tmpDir, "both.txt"))
		assert.Zero(t, host.filesChanged)
	})

	t.Run("cancelled prompt skips the target", func(t *testing.T) {
		tmpDir, targets := setup(t)
		host := &fakeHost{workdir: tmpDir, promptErr: errors.New("cancelled")}
		dispatcher := NewDispatcher(service, host, RemovePermanent)

		results := dispatcher.Dispatch(ctx, &Session{Root: tmpDir}, ActionReset, targets)
		require.Len(t, results, 1)
		assert.Equal(t, OutcomeSkipped, results[0].Outcome)
		assert.Equal(t, "AM", statusOf(t, tmpDir, "both.txt"))
	})
}

func TestDispatchResetUntracked(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	t.Run("permanent removal unlinks the file", func(t *testing.T) {
		tmpDir := t.TempDir()
		setupGitRepo(t, tmpDir)
		path := filepath.Join(tmpDir, "loose.txt")
		require.NoError(t, os.WriteFile(path, []byte("bye"), 0o600))

		host := &fakeHost{workdir: tmpDir}
		dispatcher := NewDispatcher(service, host, RemovePermanent)
		targets := listCandidates(t, service, tmpDir)
		require.Len(t, targets, 1)
		require.True(t, targets[0].Untracked())

		results := dispatcher.Dispatch(ctx, &Session{Root: tmpDir}, ActionReset, targets)
		require.Len(t, results, 1)
		assert.Equal(t, OutcomeApplied, results[0].Outcome)

		_, err := os.Stat(path)
		assert.True(t, os.IsNotExist(err))
		assert.Equal(t, 1, host.filesChanged)
	})

	t.Run("trash-put receives the absolute path", func(t *testing.T) {
		tmpDir := t.TempDir()
		setupGitRepo(t, tmpDir)
		path := filepath.Join(tmpDir, "loose.txt")
		require.NoError(t, os.WriteFile(path, []byte("bye"), 0o600))

		recorded := filepath.Join(t.TempDir(), "recorded")
		writeStubCommand(t, "trash-put", `printf '%s' "$1" > `+recorded)

		host := &fakeHost{workdir: tmpDir}
		dispatcher := NewDispatcher(service, host, RemoveTrashPut)
		targets := listCandidates(t, service, tmpDir)
		require.Len(t, targets, 1)

		results := dispatcher.Dispatch(ctx, &Session{Root: tmpDir}, ActionReset, targets)
		require.Len(t, results, 1)
		assert.Equal(t, OutcomeApplied, results[0].Outcome)

		got, err := os.ReadFile(recorded) // #nosec G304 -- test file in temp dir
		require.NoError(t, err)
		assert.Equal(t, path, string(got))
	})

	t.Run("missing file fails only that target", func(t *testing.T) {
		tmpDir := t.TempDir()
		setupGitRepo(t, tmpDir)
		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "keep.txt"), []byte("keep"), 0o600))

		host := &fakeHost{workdir: tmpDir}
		dispatcher := NewDispatcher(service, host, RemovePermanent)

		ghost := models.Candidate{
			Path:      filepath.Join(tmpDir, "ghost.txt"),
			Root:      tmpDir,
			IndexCode: models.StatusUntracked,
			TreeCode:  models.StatusUntracked,
		}
		existing := listCandidates(t, service, tmpDir)
		require.Len(t, existing, 1)
		targets := []models.Candidate{ghost, existing[0]}

		results := dispatcher.Dispatch(ctx, &Session{Root: tmpDir}, ActionReset, targets)
		require.Len(t, results, 2)
		assert.Equal(t, OutcomeFailed, results[0].Outcome)
		assert.Error(t, results[0].Err)
		assert.Equal(t, OutcomeApplied, results[1].Outcome)

		_, err := os.Stat(filepath.Join(tmpDir, "keep.txt"))
		assert.True(t, os.IsNotExist(err))
	})
}

func TestDispatchDiff(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	t.Run("untracked target previews without asking", func(t *testing.T) {
		tmpDir := t.TempDir()
		setupGitRepo(t, tmpDir)
		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "loose.txt"), []byte("x"), 0o600))

		host := &fakeHost{workdir: tmpDir}
		dispatcher := NewDispatcher(service, host, RemovePermanent)
		sess := &Session{Root: tmpDir}
		targets := listCandidates(t, service, tmpDir)
		require.Len(t, targets, 1)

		results := dispatcher.Dispatch(ctx, sess, ActionDiff, targets)
		require.Len(t, results, 1)
		assert.Equal(t, OutcomeApplied, results[0].Outcome)

		assert.Empty(t, host.prompts)
		require.Len(t, host.opened, 1)
		assert.Equal(t, DiffSpec{Rel: "loose.txt", Untracked: true}, host.opened[0])
		require.NotNil(t, sess.Previewed)
		assert.Equal(t, targets[0], *sess.Previewed)
	})

	t.Run("staged only target diffs the cache without asking", func(t *testing.T) {
		tmpDir := t.TempDir()
		setupGitRepo(t, tmpDir)
		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "staged.txt"), []byte("x"), 0o600))
		runGit(t, tmpDir, "add", "staged.txt")

		host := &fakeHost{workdir: tmpDir}
		dispatcher := NewDispatcher(service, host, RemovePermanent)
		sess := &Session{Root: tmpDir}
		targets := listCandidates(t, service, tmpDir)
		require.Len(t, targets, 1)

		results := dispatcher.Dispatch(ctx, sess, ActionDiff, targets)
		require.Len(t, results, 1)
		assert.Equal(t, OutcomeApplied, results[0].Outcome)

		assert.Empty(t, host.prompts)
		require.Len(t, host.opened, 1)
		assert.Equal(t, DiffSpec{Rel: "staged.txt", Cached: true}, host.opened[0])
	})

	t.Run("staged and modified target asks cached or not", func(t *testing.T) {
		tmpDir := t.TempDir()
		setupGitRepo(t, tmpDir)
		path := filepath.Join(tmpDir, "both.txt")
		require.NoError(t, os.WriteFile(path, []byte("staged"), 0o600))
		runGit(t, tmpDir, "add", "both.txt")
		require.NoError(t, os.WriteFile(path, []byte("tree"), 0o600))

		targets := listCandidates(t, service, tmpDir)
		require.Len(t, targets, 1)

		t.Run("default answer picks cached", func(t *testing.T) {
			host := &fakeHost{workdir: tmpDir}
			dispatcher := NewDispatcher(service, host, RemovePermanent)
			sess := &Session{Root: tmpDir}

			results := dispatcher.Dispatch(ctx, sess, ActionDiff, targets)
			assert.Equal(t, OutcomeApplied, results[0].Outcome)
			assert.Equal(t, []string{PromptDiffCached}, host.prompts)
			require.Len(t, host.opened, 1)
			assert.True(t, host.opened[0].Cached)
		})

		t.Run("answer n picks the working tree", func(t *testing.T) {
			host := &fakeHost{workdir: tmpDir, answers: []string{"n"}}
			dispatcher := NewDispatcher(service, host, RemovePermanent)
			sess := &Session{Root: tmpDir}

			results := dispatcher.Dispatch(ctx, sess, ActionDiff, targets)
			assert.Equal(t, OutcomeApplied, results[0].Outcome)
			require.Len(t, host.opened, 1)
			assert.False(t, host.opened[0].Cached)
		})

		t.Run("unrecognized answer skips", func(t *testing.T) {
			host := &fakeHost{workdir: tmpDir, answers: []string{"maybe"}}
			dispatcher := NewDispatcher(service, host, RemovePermanent)
			sess := &Session{Root: tmpDir}

			results := dispatcher.Dispatch(ctx, sess, ActionDiff, targets)
			assert.Equal(t, OutcomeSkipped, results[0].Outcome)
			assert.Empty(t, host.opened)
			assert.Nil(t, sess.Previewed)
		})
	})

	t.Run("second dispatch on the previewed target closes it", func(t *testing.T) {
		tmpDir := t.TempDir()
		setupGitRepo(t, tmpDir)
		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "loose.txt"), []byte("x"), 0o600))

		host := &fakeHost{workdir: tmpDir}
		dispatcher := NewDispatcher(service, host, RemovePermanent)
		sess := &Session{Root: tmpDir}
		targets := listCandidates(t, service, tmpDir)

		dispatcher.Dispatch(ctx, sess, ActionDiff, targets)
		require.NotNil(t, sess.Previewed)
		require.True(t, host.IsPreviewOpen())

		results := dispatcher.Dispatch(ctx, sess, ActionDiff, targets)
		assert.Equal(t, OutcomeApplied, results[0].Outcome)
		assert.Equal(t, 1, host.closed)
		assert.Nil(t, sess.Previewed)
		assert.Len(t, host.opened, 1)
	})

	t.Run("dispatch on another target replaces the slot", func(t *testing.T) {
		tmpDir := t.TempDir()
		setupGitRepo(t, tmpDir)
		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "one.txt"), []byte("1"), 0o600))
		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "two.txt"), []byte("2"), 0o600))

		host := &fakeHost{workdir: tmpDir}
		dispatcher := NewDispatcher(service, host, RemovePermanent)
		sess := &Session{Root: tmpDir}
		targets := listCandidates(t, service, tmpDir)
		require.Len(t, targets, 2)
		one := candidateByRel(t, targets, "one.txt")
		two := candidateByRel(t, targets, "two.txt")

		dispatcher.Dispatch(ctx, sess, ActionDiff, []models.Candidate{one})
		dispatcher.Dispatch(ctx, sess, ActionDiff, []models.Candidate{two})

		require.NotNil(t, sess.Previewed)
		assert.Equal(t, two, *sess.Previewed)
		assert.Len(t, host.opened, 2)
		assert.Zero(t, host.closed)
	})

	t.Run("stale slot reopens after the host closed the preview", func(t *testing.T) {
		tmpDir := t.TempDir()
		setupGitRepo(t, tmpDir)
		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "loose.txt"), []byte("x"), 0o600))

		host := &fakeHost{workdir: tmpDir}
		dispatcher := NewDispatcher(service, host, RemovePermanent)
		sess := &Session{Root: tmpDir}
		targets := listCandidates(t, service, tmpDir)

		dispatcher.Dispatch(ctx, sess, ActionDiff, targets)
		host.previewOpen = false

		results := dispatcher.Dispatch(ctx, sess, ActionDiff, targets)
		assert.Equal(t, OutcomeApplied, results[0].Outcome)
		assert.Len(t, host.opened, 2)
		assert.Zero(t, host.closed)
	})

	t.Run("extra targets are skipped", func(t *testing.T) {
		tmpDir := t.TempDir()
		setupGitRepo(t, tmpDir)
		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "one.txt"), []byte("1"), 0o600))
		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "two.txt"), []byte("2"), 0o600))

		host := &fakeHost{workdir: tmpDir}
		dispatcher := NewDispatcher(service, host, RemovePermanent)
		sess := &Session{Root: tmpDir}
		targets := listCandidates(t, service, tmpDir)
		require.Len(t, targets, 2)

		results := dispatcher.Dispatch(ctx, sess, ActionDiff, targets)
		require.Len(t, results, 2)
		assert.Equal(t, OutcomeApplied, results[0].Outcome)
		assert.Equal(t, OutcomeSkipped, results[1].Outcome)
		assert.Len(t, host.opened, 1)
	})
}

func TestDispatchCommit(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	t.Run("commits targets with the prompted message", func(t *testing.T) {
		tmpDir := t.TempDir()
		setupGitRepo(t, tmpDir)
		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "feature.txt"), []byte("x"), 0o600))
		runGit(t, tmpDir, "add", "feature.txt")

		host := &fakeHost{workdir: tmpDir, answers: []string{"add feature file"}}
		dispatcher := NewDispatcher(service, host, RemovePermanent)
		sess := &Session{Root: tmpDir}
		targets := listCandidates(t, service, tmpDir)
		require.Len(t, targets, 1)

		results := dispatcher.Dispatch(ctx, sess, ActionCommit, targets)
		require.Len(t, results, 1)
		assert.Equal(t, OutcomeApplied, results[0].Outcome)
		assert.Equal(t, []string{PromptCommitMessage}, host.prompts)

		subject := runGit(t, tmpDir, "log", "-1", "--pretty=%s")
		assert.Equal(t, "add feature file", subject)
		assert.Equal(t, "", statusOf(t, tmpDir, "feature.txt"))
	})

	t.Run("cancelled prompt skips the batch", func(t *testing.T) {
		tmpDir := t.TempDir()
		setupGitRepo(t, tmpDir)
		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "feature.txt"), []byte("x"), 0o600))
		runGit(t, tmpDir, "add", "feature.txt")

		host := &fakeHost{workdir: tmpDir, promptErr: errors.New("cancelled")}
		dispatcher := NewDispatcher(service, host, RemovePermanent)
		sess := &Session{Root: tmpDir}
		targets := listCandidates(t, service, tmpDir)

		results := dispatcher.Dispatch(ctx, sess, ActionCommit, targets)
		require.Len(t, results, 1)
		assert.Equal(t, OutcomeSkipped, results[0].Outcome)
		assert.Equal(t, "A ", statusOf(t, tmpDir, "feature.txt"))
	})

	t.Run("empty message passes through and fails in git", func(t *testing.T) {
		tmpDir := t.TempDir()
		setupGitRepo(t, tmpDir)
		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "feature.txt"), []byte("x"), 0o600))
		runGit(t, tmpDir, "add", "feature.txt")

		host := &fakeHost{workdir: tmpDir, answers: []string{""}}
		dispatcher := NewDispatcher(service, host, RemovePermanent)
		sess := &Session{Root: tmpDir}
		targets := listCandidates(t, service, tmpDir)

		results := dispatcher.Dispatch(ctx, sess, ActionCommit, targets)
		require.Len(t, results, 1)
		assert.Equal(t, OutcomeFailed, results[0].Outcome)

		var subErr *SubprocessError
		require.ErrorAs(t, results[0].Err, &subErr)
		assert.Contains(t, strings.ToLower(subErr.Output), "empty")
	})
}
