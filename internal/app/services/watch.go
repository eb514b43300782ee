package services

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/chmouel/lazystatus/internal/config"
)

// watchDebounce is the window within which repeated watcher events collapse
// into a single refresh.
const watchDebounce = 600 * time.Millisecond

// relevantOps are the filesystem operations that can change status output.
const relevantOps = fsnotify.Write | fsnotify.Create | fsnotify.Remove | fsnotify.Rename

// GitDirResolver resolves git directories for the watched repository.
type GitDirResolver interface {
	RunGit(ctx context.Context, args []string, cwd string, okReturncodes []int, strip, silent bool) string
}

// GitWatchService watches the repository for changes that should trigger a
// status refresh: ref updates and index writes under the git dir, plus file
// churn in the worktree itself.
type GitWatchService struct {
	git  GitDirResolver
	logf func(string, ...any)

	started  bool
	waiting  bool
	repoRoot string
	roots    []string
	events   chan struct{}
	done     chan struct{}
	watcher  *fsnotify.Watcher

	mu      sync.Mutex
	watched map[string]struct{}

	lastRefresh time.Time
}

// NewGitWatchService creates a new GitWatchService.
func NewGitWatchService(git GitDirResolver, logf func(string, ...any)) *GitWatchService {
	return &GitWatchService{
		git:  git,
		logf: logf,
	}
}

// Start initialises the watcher for the repository at root and starts the
// background goroutine. Returns false without error when auto refresh is
// disabled or the git dir cannot be resolved.
func (w *GitWatchService) Start(ctx context.Context, cfg *config.AppConfig, root string) (bool, error) {
	if w.started || cfg == nil || !cfg.AutoRefresh || root == "" {
		return false, nil
	}
	gitDir := w.resolveGitCommonDir(ctx, root)
	if gitDir == "" {
		w.debugf("auto refresh: unable to resolve git common dir")
		return false, nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return false, err
	}

	w.started = true
	w.watcher = watcher
	w.repoRoot = root
	w.events = make(chan struct{}, 1)
	w.done = make(chan struct{})
	w.watched = make(map[string]struct{})
	w.roots = []string{
		root,
		filepath.Join(gitDir, "refs"),
		filepath.Join(gitDir, "logs"),
	}

	w.addWatchDir(gitDir)
	w.addWatchDir(root)
	for _, sub := range w.roots[1:] {
		w.addWatchTree(sub)
	}

	go w.run()
	return true, nil
}

// Stop stops the watcher and closes channels.
func (w *GitWatchService) Stop() {
	if !w.started {
		return
	}
	w.started = false
	close(w.done)
	if w.watcher != nil {
		_ = w.watcher.Close()
	}
}

// Running reports whether the background watcher is active.
func (w *GitWatchService) Running() bool { return w.started }

// NextEvent returns the event channel, or nil while a previous event is
// still being waited on.
func (w *GitWatchService) NextEvent() <-chan struct{} {
	if w.events == nil || w.waiting {
		return nil
	}
	w.waiting = true
	return w.events
}

// ResetWaiting clears the waiting flag after an event was consumed.
func (w *GitWatchService) ResetWaiting() {
	w.waiting = false
}

// ShouldRefresh applies the debounce window. A refresh itself touches the
// index, so the window also breaks the loop between refreshing and the
// watcher seeing that write.
func (w *GitWatchService) ShouldRefresh(now time.Time) bool {
	if !w.lastRefresh.IsZero() && now.Sub(w.lastRefresh) < watchDebounce {
		return false
	}
	w.lastRefresh = now
	return true
}

// WatchCandidateDirs registers the parent directories of the given
// repo-relative paths so edits to files with pending changes are noticed
// even deep in the tree.
func (w *GitWatchService) WatchCandidateDirs(rels []string) {
	if !w.started || w.repoRoot == "" {
		return
	}
	seen := make(map[string]struct{}, len(rels))
	for _, rel := range rels {
		dir := filepath.Dir(filepath.Join(w.repoRoot, filepath.FromSlash(rel)))
		if _, dup := seen[dir]; dup {
			continue
		}
		seen[dir] = struct{}{}
		w.addWatchDir(dir)
	}
}

func (w *GitWatchService) run() {
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(ev)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.debugf("git watcher error: %v", err)
		}
	}
}

func (w *GitWatchService) handleEvent(ev fsnotify.Event) {
	if ev.Op&relevantOps == 0 || strings.HasSuffix(ev.Name, ".lock") {
		return
	}
	if ev.Op.Has(fsnotify.Create) {
		w.maybeWatchNewDir(ev.Name)
	}
	w.signal()
}

// maybeWatchNewDir registers a newly created directory under a watch root.
func (w *GitWatchService) maybeWatchNewDir(path string) {
	if !w.isUnderRoot(path) {
		return
	}
	if info, err := os.Stat(path); err != nil || !info.IsDir() {
		return
	}
	w.addWatchDir(path)
}

func (w *GitWatchService) signal() {
	select {
	case <-w.done:
		return
	default:
	}
	select {
	case w.events <- struct{}{}:
	default:
	}
}

func (w *GitWatchService) isUnderRoot(path string) bool {
	if path == "" {
		return false
	}
	for _, root := range w.roots {
		if root == "" {
			continue
		}
		if path == root || strings.HasPrefix(path, root+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

func (w *GitWatchService) addWatchDir(path string) {
	if path == "" {
		return
	}
	if info, err := os.Stat(path); err != nil || !info.IsDir() {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.watched[path]; ok {
		return
	}
	if err := w.watcher.Add(path); err != nil {
		w.debugf("git watcher add failed for %s: %v", path, err)
		return
	}
	w.watched[path] = struct{}{}
}

func (w *GitWatchService) addWatchTree(root string) {
	if root == "" {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err == nil && d.IsDir() {
			w.addWatchDir(path)
		}
		return nil
	})
}

func (w *GitWatchService) resolveGitCommonDir(ctx context.Context, root string) string {
	if w.git == nil {
		return ""
	}
	out := w.git.RunGit(ctx, []string{"git", "rev-parse", "--git-common-dir"}, root, []int{0}, true, false)
	dir := strings.TrimSpace(out)
	switch {
	case dir == "":
		return ""
	case filepath.IsAbs(dir):
		return dir
	default:
		return filepath.Join(root, dir)
	}
}

func (w *GitWatchService) debugf(format string, args ...any) {
	if w.logf == nil {
		return
	}
	w.logf(format, args...)
}
