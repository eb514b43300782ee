package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chmouel/lazystatus/internal/config"
	"github.com/chmouel/lazystatus/internal/git"
	"github.com/chmouel/lazystatus/internal/models"
)

// gitService is the slice of the git service the line-mode operations call
// directly; everything that mutates the repository goes through the
// dispatcher instead.
type gitService interface {
	Candidates(ctx context.Context, root string, strict bool) ([]models.Candidate, error)
}

var _ gitService = (*git.Service)(nil)

// Root prints the repository root discovered from the working directory.
// Outside a repository it fails, so scripts can branch on the exit code.
func Root(out io.Writer) error {
	cwd, err := osGetwd()
	if err != nil {
		return err
	}
	root, ok := git.FindRoot(cwd)
	if !ok {
		return git.ErrNoRepository
	}
	fmt.Fprintln(out, root)
	return nil
}

// List prints the changed paths of the enclosing repository, one per
// line. On a terminal each candidate renders its aligned label; piped
// output is the stable two-code, tab, relative-path form. Outside a
// repository the listing is empty, not an error.
func List(ctx context.Context, gitSvc gitService, cfg *config.AppConfig, out io.Writer) error {
	cwd, err := osGetwd()
	if err != nil {
		return err
	}
	root, _ := git.FindRoot(cwd)

	candidates, err := gitSvc.Candidates(ctx, root, cfg.StrictGitErrors)
	if err != nil {
		return err
	}

	tty := stdoutIsTerminal()
	for _, c := range candidates {
		if tty {
			fmt.Fprintln(out, c.Label)
		} else {
			fmt.Fprintf(out, "%c%c\t%s\n", byte(c.IndexCode), byte(c.TreeCode), c.RelPath())
		}
	}
	return nil
}

// Runner bundles the pieces one line-mode command needs: the git service,
// the terminal host, the session for the enclosing repository and a
// dispatcher with the removal strategy resolved once.
type Runner struct {
	svc  *git.Service
	host *TerminalHost
	sess *git.Session
	disp *git.Dispatcher
	cfg  *config.AppConfig

	stderr io.Writer
}

// NewRunner builds the line-mode stack around an already configured git
// service. Commands that need a repository fail here when none encloses
// the working directory.
func NewRunner(svc *git.Service, cfg *config.AppConfig) (*Runner, error) {
	host := NewTerminalHost(svc, cfg)
	sess, err := git.NewSession(host)
	if err != nil {
		return nil, err
	}
	if !sess.InRepo() {
		return nil, git.ErrNoRepository
	}
	return &Runner{
		svc:    svc,
		host:   host,
		sess:   sess,
		disp:   git.NewDispatcher(svc, host, resolveRemoval(cfg, host)),
		cfg:    cfg,
		stderr: os.Stderr,
	}, nil
}

// resolveRemoval picks the strategy for discarding untracked files.
// Explicit config wins; auto probes the host for trash helpers.
func resolveRemoval(cfg *config.AppConfig, host git.Host) git.RemovalStrategy {
	if cfg != nil {
		if strategy, ok := git.RemovalFromName(cfg.Removal); ok {
			return strategy
		}
	}
	return git.ProbeRemoval(host)
}

// Stage adds the named paths to the index.
func (r *Runner) Stage(ctx context.Context, paths []string) error {
	targets, err := r.resolveTargets(ctx, paths)
	if err != nil {
		return err
	}
	if len(targets) == 0 {
		fmt.Fprintln(r.stderr, "Nothing to stage: working tree is clean.")
		return nil
	}
	return r.report(r.disp.Dispatch(ctx, r.sess, git.ActionStage, targets))
}

// Patch opens interactive hunk staging for the named paths, or for every
// changed path when none are given.
func (r *Runner) Patch(ctx context.Context, paths []string) error {
	targets, err := r.resolveTargets(ctx, paths)
	if err != nil {
		return err
	}
	if len(targets) == 0 {
		fmt.Fprintln(r.stderr, "Nothing to patch: working tree is clean.")
		return nil
	}
	return r.report(r.disp.Dispatch(ctx, r.sess, git.ActionPatch, targets))
}

// Reset walks the named paths through the unstage/discard/remove decision
// table, prompting when a path is both staged and modified.
func (r *Runner) Reset(ctx context.Context, paths []string) error {
	targets, err := r.resolveTargets(ctx, paths)
	if err != nil {
		return err
	}
	if len(targets) == 0 {
		fmt.Fprintln(r.stderr, "Nothing to reset: working tree is clean.")
		return nil
	}
	return r.report(r.disp.Dispatch(ctx, r.sess, git.ActionReset, targets))
}

// Commit records the named paths with a commit scoped to them. A message
// given on the command line skips the prompt.
func (r *Runner) Commit(ctx context.Context, message string, paths []string) error {
	r.host.commitMessage = message
	targets, err := r.resolveTargets(ctx, paths)
	if err != nil {
		return err
	}
	if len(targets) == 0 {
		fmt.Fprintln(r.stderr, "Nothing to commit: working tree is clean.")
		return nil
	}
	return r.report(r.disp.Dispatch(ctx, r.sess, git.ActionCommit, targets))
}

// Diff shows the patch for one path. The cached flag forces which side is
// compared; without it a path that is both staged and modified prompts,
// matching the interactive flow.
func (r *Runner) Diff(ctx context.Context, path string, cached, cachedSet bool) error {
	targets, err := r.resolveTargets(ctx, []string{path})
	if err != nil {
		return err
	}
	if len(targets) != 1 {
		return fmt.Errorf("%q matches %d changed files, diff takes exactly one", path, len(targets))
	}

	if cachedSet {
		t := targets[0]
		spec := git.DiffSpec{Rel: t.RelPath(), Cached: cached, Untracked: t.Untracked()}
		return r.host.OpenPreview(ctx, r.sess.Root, spec)
	}
	return r.report(r.disp.Dispatch(ctx, r.sess, git.ActionDiff, targets))
}

// resolveTargets maps user-supplied paths onto the current listing. Paths
// are taken relative to the working directory, the repository root, or
// absolute; a directory matches every candidate under it. An empty list
// selects every candidate.
func (r *Runner) resolveTargets(ctx context.Context, paths []string) ([]models.Candidate, error) {
	candidates, err := r.svc.Candidates(ctx, r.sess.Root, r.cfg.StrictGitErrors)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return candidates, nil
	}

	cwd, err := osGetwd()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	targets := make([]models.Candidate, 0, len(paths))
	for _, arg := range paths {
		matched := false
		for _, c := range candidates {
			if !matchesTarget(c, arg, cwd, r.sess.Root) {
				continue
			}
			matched = true
			if !seen[c.Path] {
				seen[c.Path] = true
				targets = append(targets, c)
			}
		}
		if !matched {
			return nil, fmt.Errorf("no changed file matches %q", arg)
		}
	}
	return targets, nil
}

// matchesTarget reports whether candidate c is named by arg, either
// exactly or as a directory prefix. Relative args are resolved against
// both the working directory and the repository root, so root-relative
// paths pasted from a listing work from any subdirectory.
func matchesTarget(c models.Candidate, arg, cwd, root string) bool {
	arg = filepath.Clean(arg)

	var resolved []string
	if filepath.IsAbs(arg) {
		resolved = []string{arg}
	} else {
		resolved = []string{filepath.Join(cwd, arg), filepath.Join(root, arg)}
	}

	for _, abs := range resolved {
		if c.Path == abs || strings.HasPrefix(c.Path, abs+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// report prints per-target outcomes to stderr and folds failures into a
// single error. Applied targets stay silent; git already said what it had
// to say.
func (r *Runner) report(results []git.Result) error {
	failed := 0
	for _, res := range results {
		switch res.Outcome {
		case git.OutcomeSkipped:
			fmt.Fprintf(r.stderr, "skipped: %s\n", res.Target.RelPath())
		case git.OutcomeFailed:
			failed++
			fmt.Fprintf(r.stderr, "failed: %s: %v\n", res.Target.RelPath(), res.Err)
		case git.OutcomeApplied:
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d targets failed", failed, len(results))
	}
	return nil
}
