package git

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/chmouel/lazystatus/internal/models"
)

// Action identifies one dispatchable operation over selected candidates.
// The set is closed; dispatching an action outside it fails the batch
// instead of silently doing nothing.
type Action int

// Dispatchable actions.
const (
	ActionStage Action = iota
	ActionPatch
	ActionReset
	ActionDiff
	ActionCommit
)

func (a Action) String() string {
	switch a {
	case ActionStage:
		return "stage"
	case ActionPatch:
		return "patch"
	case ActionReset:
		return "reset"
	case ActionDiff:
		return "diff"
	case ActionCommit:
		return "commit"
	default:
		return "unknown"
	}
}

// RemovalStrategy selects how untracked files are deleted from disk when
// a reset reaches one.
type RemovalStrategy int

const (
	// RemovePermanent unlinks the file.
	RemovePermanent RemovalStrategy = iota
	// RemoveTrashPut moves the file to the trash with trash-put.
	RemoveTrashPut
	// RemoveRmtrash moves the file to the trash with rmtrash.
	RemoveRmtrash
)

func (r RemovalStrategy) String() string {
	switch r {
	case RemoveTrashPut:
		return "trash-put"
	case RemoveRmtrash:
		return "rmtrash"
	default:
		return "permanent"
	}
}

// RemovalFromName maps a configuration value to a removal strategy.
func RemovalFromName(name string) (RemovalStrategy, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "permanent":
		return RemovePermanent, true
	case "trash-put":
		return RemoveTrashPut, true
	case "rmtrash":
		return RemoveRmtrash, true
	default:
		return RemovePermanent, false
	}
}

// ProbeRemoval picks the removal strategy for a host: the first trash
// helper found in PATH wins, with permanent deletion as the fallback. The
// probe runs once at startup, never per dispatch.
func ProbeRemoval(host Host) RemovalStrategy {
	if host.HasCommand("trash-put") {
		return RemoveTrashPut
	}
	if host.HasCommand("rmtrash") {
		return RemoveRmtrash
	}
	return RemovePermanent
}

// DiffSpec names one diff preview: a root-relative pathspec plus whether
// the diff compares the index against HEAD (cached) or the working tree
// against the index. Untracked marks paths git does not know, which need
// a no-index rendering instead of a plain diff.
type DiffSpec struct {
	Rel       string
	Cached    bool
	Untracked bool
}

// Prompt messages the dispatcher sends through Host.Prompt. Hosts may
// match on them to pick the widget that fits the question.
const (
	PromptResetOrCheckout = "Select action reset or checkout [r/c]"
	PromptDiffCached      = "Diff cached? [y/n]"
	PromptCommitMessage   = "Commit message: "
)

// Host is the surface the dispatcher calls back into. The terminal and
// TUI frontends both implement it; tests substitute scripted fakes.
type Host interface {
	// Workdir resolves the directory a session starts from.
	Workdir() (string, error)
	// Prompt asks the user a question and returns the raw answer. def
	// seeds the reply. A non-nil error means the prompt was cancelled.
	Prompt(ctx context.Context, message, def string) (string, error)
	// FilesChanged tells the host that files on disk were mutated so it
	// can reload anything it holds open.
	FilesChanged()
	// OpenPreview shows the diff described by spec for the repository at
	// root, replacing any preview already open.
	OpenPreview(ctx context.Context, root string, spec DiffSpec) error
	// ClosePreview hides the open preview.
	ClosePreview() error
	// IsPreviewOpen reports whether a preview is currently showing.
	IsPreviewOpen() bool
	// RunInteractive hands the terminal to argv in dir and blocks until
	// it exits.
	RunInteractive(ctx context.Context, argv []string, dir string) error
	// HasCommand reports whether an external helper is installed.
	HasCommand(name string) bool
}

// Outcome classifies what happened to one target during a dispatch.
type Outcome int

const (
	// OutcomeApplied means the action ran against the target.
	OutcomeApplied Outcome = iota
	// OutcomeSkipped means the target was left untouched, usually
	// because a disambiguating prompt was declined.
	OutcomeSkipped
	// OutcomeFailed means the action was attempted and failed.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeApplied:
		return "applied"
	case OutcomeSkipped:
		return "skipped"
	default:
		return "failed"
	}
}

// Result reports the per-target outcome of a dispatch. A failing target
// never aborts the rest of its batch; every target carries its own result.
type Result struct {
	Target  models.Candidate
	Outcome Outcome
	Err     error
}

// Session threads per-root dispatch state through calls. Previewed is the
// single preview slot: at most one candidate has an open diff preview at
// a time, and toggling it off goes through here. Sessions belong to one
// root and are not safe for concurrent use.
type Session struct {
	Root      string
	Previewed *models.Candidate
}

// NewSession resolves the host working directory and locates the
// enclosing repository once. A session outside any repository has an
// empty root and lists no candidates; only resolving the directory itself
// can fail.
func NewSession(host Host) (*Session, error) {
	cwd, err := host.Workdir()
	if err != nil {
		return nil, err
	}
	root, ok := FindRoot(cwd)
	if !ok {
		return &Session{}, nil
	}
	return &Session{Root: root}, nil
}

// InRepo reports whether the session found a repository root.
func (s *Session) InRepo() bool { return s.Root != "" }

// Dispatcher applies actions to candidates through git and the host
// surface. The removal strategy is fixed at construction so no dispatch
// ever probes the environment.
type Dispatcher struct {
	svc     *Service
	host    Host
	removal RemovalStrategy
}

// NewDispatcher builds a dispatcher around the git service, the host
// surface, and a removal strategy picked by ProbeRemoval or pinned by
// configuration.
func NewDispatcher(svc *Service, host Host, removal RemovalStrategy) *Dispatcher {
	return &Dispatcher{svc: svc, host: host, removal: removal}
}

// Removal returns the strategy the dispatcher was built with.
func (d *Dispatcher) Removal() RemovalStrategy { return d.removal }

// Dispatch runs one action over the targets and returns a result per
// target. Targets must belong to the session's root; a mixed batch is a
// caller contract violation and fails whole. An empty batch is a no-op.
func (d *Dispatcher) Dispatch(ctx context.Context, sess *Session, action Action, targets []models.Candidate) []Result {
	if len(targets) == 0 {
		return nil
	}
	for _, t := range targets {
		if t.Root != sess.Root {
			return failAll(targets, fmt.Errorf("target %s belongs to root %s, session root is %s", t.Path, t.Root, sess.Root))
		}
	}

	switch action {
	case ActionStage:
		return d.stage(ctx, sess, targets)
	case ActionPatch:
		return d.patch(ctx, sess, targets)
	case ActionReset:
		return d.reset(ctx, sess, targets)
	case ActionDiff:
		return d.diff(ctx, sess, targets)
	case ActionCommit:
		return d.commit(ctx, sess, targets)
	default:
		return failAll(targets, fmt.Errorf("unknown action %d", int(action)))
	}
}

// stage adds all targets to the index in one git invocation.
func (d *Dispatcher) stage(ctx context.Context, sess *Session, targets []models.Candidate) []Result {
	args := []string{"git", "add"}
	for _, t := range targets {
		args = append(args, t.RelPath())
	}
	if _, err := d.svc.CombinedOutput(ctx, args, sess.Root); err != nil {
		return failAll(targets, err)
	}
	return applyAll(targets)
}

// patch hands the terminal to interactive hunk staging for the targets.
func (d *Dispatcher) patch(ctx context.Context, sess *Session, targets []models.Candidate) []Result {
	args := []string{"git", "add", "--patch"}
	for _, t := range targets {
		args = append(args, t.RelPath())
	}
	if err := d.host.RunInteractive(ctx, args, sess.Root); err != nil {
		return failAll(targets, err)
	}
	return applyAll(targets)
}

// reset walks the targets one by one through the decision table over
// (staged, modified in tree): both set asks the user to pick, tree-only
// discards working tree changes, index-only unstages, and untracked
// targets are removed from disk. The host hears about disk changes after
// every applied target, not once at the end.
func (d *Dispatcher) reset(ctx context.Context, sess *Session, targets []models.Candidate) []Result {
	results := make([]Result, 0, len(targets))
	for _, t := range targets {
		res := d.resetOne(ctx, sess, t)
		if res.Outcome == OutcomeApplied {
			d.host.FilesChanged()
		}
		results = append(results, res)
	}
	return results
}

func (d *Dispatcher) resetOne(ctx context.Context, sess *Session, t models.Candidate) Result {
	rel := t.RelPath()
	switch {
	case t.Staged && t.ModifiedInTree:
		answer, err := d.host.Prompt(ctx, PromptResetOrCheckout, "")
		if err != nil {
			return Result{Target: t, Outcome: OutcomeSkipped}
		}
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "r":
			return d.runTarget(ctx, sess, t, []string{"git", "reset", "HEAD", "--", rel})
		case "c":
			return d.runTarget(ctx, sess, t, []string{"git", "checkout", "--", rel})
		default:
			return Result{Target: t, Outcome: OutcomeSkipped}
		}
	case t.ModifiedInTree:
		return d.runTarget(ctx, sess, t, []string{"git", "checkout", "--", rel})
	case t.Staged:
		return d.runTarget(ctx, sess, t, []string{"git", "reset", "HEAD", "--", rel})
	default:
		return d.removeTarget(ctx, sess, t)
	}
}

func (d *Dispatcher) runTarget(ctx context.Context, sess *Session, t models.Candidate, args []string) Result {
	if _, err := d.svc.CombinedOutput(ctx, args, sess.Root); err != nil {
		return Result{Target: t, Outcome: OutcomeFailed, Err: err}
	}
	return Result{Target: t, Outcome: OutcomeApplied}
}

// removeTarget deletes an untracked file using the strategy fixed at
// construction. The trash helpers get the absolute path; they take file
// paths, not git pathspecs.
func (d *Dispatcher) removeTarget(ctx context.Context, sess *Session, t models.Candidate) Result {
	switch d.removal {
	case RemoveTrashPut:
		return d.runTarget(ctx, sess, t, []string{"trash-put", t.Path})
	case RemoveRmtrash:
		return d.runTarget(ctx, sess, t, []string{"rmtrash", t.Path})
	default:
		if err := os.Remove(t.Path); err != nil {
			return Result{Target: t, Outcome: OutcomeFailed, Err: err}
		}
		return Result{Target: t, Outcome: OutcomeApplied}
	}
}

// diff toggles the preview for the first target. Trailing targets are
// reported as skipped: only one preview can be open, so a multi-target
// diff has nothing sensible to do with the rest.
func (d *Dispatcher) diff(ctx context.Context, sess *Session, targets []models.Candidate) []Result {
	results := make([]Result, 0, len(targets))
	results = append(results, d.diffOne(ctx, sess, targets[0]))
	for _, t := range targets[1:] {
		results = append(results, Result{Target: t, Outcome: OutcomeSkipped})
	}
	return results
}

func (d *Dispatcher) diffOne(ctx context.Context, sess *Session, t models.Candidate) Result {
	if sess.Previewed != nil && *sess.Previewed == t && d.host.IsPreviewOpen() {
		if err := d.host.ClosePreview(); err != nil {
			return Result{Target: t, Outcome: OutcomeFailed, Err: err}
		}
		sess.Previewed = nil
		return Result{Target: t, Outcome: OutcomeApplied}
	}

	cached := false
	if t.Staged {
		if t.ModifiedInTree {
			answer, err := d.host.Prompt(ctx, PromptDiffCached, "y")
			if err != nil {
				return Result{Target: t, Outcome: OutcomeSkipped}
			}
			switch strings.ToLower(strings.TrimSpace(answer)) {
			case "y", "yes":
				cached = true
			case "n", "no":
				cached = false
			default:
				return Result{Target: t, Outcome: OutcomeSkipped}
			}
		} else {
			cached = true
		}
	}

	spec := DiffSpec{Rel: t.RelPath(), Cached: cached, Untracked: t.Untracked()}
	if err := d.host.OpenPreview(ctx, sess.Root, spec); err != nil {
		return Result{Target: t, Outcome: OutcomeFailed, Err: err}
	}
	previewed := t
	sess.Previewed = &previewed
	return Result{Target: t, Outcome: OutcomeApplied}
}

// commit asks for a message and commits the targets by pathspec. Message
// content is git's concern, so an empty answer still goes through and
// fails there; only a cancelled prompt skips the batch.
func (d *Dispatcher) commit(ctx context.Context, sess *Session, targets []models.Candidate) []Result {
	message, err := d.host.Prompt(ctx, PromptCommitMessage, "")
	if err != nil {
		return skipAll(targets)
	}

	args := []string{"git", "commit", "-v", "-m", message}
	for _, t := range targets {
		args = append(args, t.RelPath())
	}
	if _, err := d.svc.CombinedOutput(ctx, args, sess.Root); err != nil {
		return failAll(targets, err)
	}
	return applyAll(targets)
}

func applyAll(targets []models.Candidate) []Result {
	results := make([]Result, 0, len(targets))
	for _, t := range targets {
		results = append(results, Result{Target: t, Outcome: OutcomeApplied})
	}
	return results
}

func skipAll(targets []models.Candidate) []Result {
	results := make([]Result, 0, len(targets))
	for _, t := range targets {
		results = append(results, Result{Target: t, Outcome: OutcomeSkipped})
	}
	return results
}

func failAll(targets []models.Candidate, err error) []Result {
	results := make([]Result, 0, len(targets))
	for _, t := range targets {
		results = append(results, Result{Target: t, Outcome: OutcomeFailed, Err: err})
	}
	return results
}
