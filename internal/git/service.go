// Package git wraps git commands and the status dispatch core used by
// lazystatus.
package git

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"runtime"
	"slices"
	"strings"

	"github.com/chmouel/lazystatus/internal/log"
)

// LookupPath finds executables in PATH. Tests swap it out so they do not
// depend on system binaries being installed.
var LookupPath = exec.LookPath

// NotifyOnceFn reports a failure to the host, deduplicated by key so
// refresh loops cannot repeat the same complaint.
type NotifyOnceFn func(key string, message string, severity string)

// allowedCommands is the set of programs the service will spawn. Everything
// the dispatch tables produce starts with one of these words.
var allowedCommands = map[string]bool{
	"git":       true,
	"trash-put": true,
	"rmtrash":   true,
}

// Service runs git and the trash helpers for the hosts.
type Service struct {
	notifyOnce     NotifyOnceFn
	sem            chan struct{}
	gitPager       string
	gitPagerArgs   []string
	pagerAvailable bool
}

// NewService constructs a Service. notifyOnce receives failure reports.
func NewService(notifyOnce NotifyOnceFn) *Service {
	return &Service{
		notifyOnce: notifyOnce,
		// Buffered channel as a counting semaphore: sends take a slot,
		// receives free one, so at most cap(sem) subprocesses run at once.
		sem: make(chan struct{}, min(max(runtime.NumCPU()*2, 4), 32)),
	}
}

func (s *Service) acquireSemaphore() { s.sem <- struct{}{} }
func (s *Service) releaseSemaphore() { <-s.sem }

// SetGitPager sets the diff formatter command. Empty disables formatting.
func (s *Service) SetGitPager(pager string) {
	s.gitPager = strings.TrimSpace(pager)
	s.pagerAvailable = false
	if s.gitPager != "" {
		_, err := LookupPath(s.gitPager)
		s.pagerAvailable = err == nil
	}
}

// SetGitPagerArgs replaces the extra arguments passed to the diff formatter.
func (s *Service) SetGitPagerArgs(args []string) {
	s.gitPagerArgs = slices.Clone(args)
}

// UseGitPager reports whether the diff formatter is configured and on PATH.
func (s *Service) UseGitPager() bool { return s.pagerAvailable }

// ApplyGitPager pipes a diff through the configured formatter. On any
// failure the raw diff comes back unchanged.
func (s *Service) ApplyGitPager(ctx context.Context, diff string) string {
	if !s.pagerAvailable || diff == "" {
		return diff
	}
	var args []string
	if s.gitPager == "delta" {
		// Keep delta from re-paging or picking up user gitconfig.
		args = append(args, "--no-gitconfig", "--paging=never")
	}
	args = append(args, s.gitPagerArgs...)
	// #nosec G204 -- the formatter command comes from the user's own config
	cmd := exec.CommandContext(ctx, s.gitPager, args...)
	cmd.Stdin = strings.NewReader(diff)
	out, err := cmd.Output()
	if err != nil {
		return diff
	}
	return string(out)
}

func (s *Service) debugf(format string, args ...any) {
	log.Printf(format, args...)
}

func newCommand(ctx context.Context, args []string) (*exec.Cmd, error) {
	if len(args) == 0 {
		return nil, errors.New("empty command")
	}
	if !allowedCommands[args[0]] {
		return nil, fmt.Errorf("unsupported command %q", args[0])
	}
	// #nosec G204 -- argv comes from internal dispatch tables, not shell input
	return exec.CommandContext(ctx, args[0], args[1:]...), nil
}

func displayCommand(args []string) string {
	if len(args) == 0 {
		return "<empty>"
	}
	return strings.Join(args, " ")
}

// RunGit executes an allowlisted command and returns its stdout. Exit codes
// in okReturncodes count as success with whatever stdout was produced;
// other failures report through notifyOnce (or only the debug log when
// silent) and come back as "".
func (s *Service) RunGit(ctx context.Context, args []string, cwd string, okReturncodes []int, strip, silent bool) string {
	command := displayCommand(args)
	s.debugf("run: %s (cwd=%s)", command, cwd)

	cmd, err := newCommand(ctx, args)
	if err != nil {
		s.notifyOnce("unsupported_cmd:"+command, "Unsupported command: "+command, "error")
		s.debugf("error: %s (unsupported command)", command)
		return ""
	}
	cmd.Dir = cwd

	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			if !silent {
				s.notifyOnce("cmd_missing:"+args[0], "Command not found: "+args[0], "error")
				s.debugf("error: command not found: %s", args[0])
			}
			return ""
		}
		if code := exitErr.ExitCode(); !slices.Contains(okReturncodes, code) {
			if silent {
				s.debugf("error: %s (exit %d, silenced)", command, code)
				return ""
			}
			detail := strings.TrimSpace(string(exitErr.Stderr))
			if detail == "" {
				detail = fmt.Sprintf("exit %d", code)
			}
			s.notifyOnce(fmt.Sprintf("git_fail:%s:%s", cwd, command), "Command failed: "+command+": "+detail, "error")
			s.debugf("error: %s: %s", command, detail)
			return ""
		}
	}

	out := string(output)
	if strip {
		out = strings.TrimSpace(out)
	}
	s.debugf("ok: %s", command)
	return out
}

// CombinedOutput executes a command and returns its merged stdout/stderr.
// Unlike RunGit it never swallows: any start or exit failure comes back as
// a *SubprocessError carrying the captured output.
func (s *Service) CombinedOutput(ctx context.Context, args []string, cwd string) (string, error) {
	command := displayCommand(args)
	s.debugf("run: %s (cwd=%s)", command, cwd)

	cmd, err := newCommand(ctx, args)
	if err != nil {
		return "", &SubprocessError{Args: args, Dir: cwd, Err: err}
	}
	cmd.Dir = cwd

	output, err := cmd.CombinedOutput()
	if err != nil {
		s.debugf("error: %s: %v", command, err)
		return string(output), &SubprocessError{Args: args, Dir: cwd, Output: strings.TrimSpace(string(output)), Err: err}
	}

	s.debugf("ok: %s", command)
	return string(output), nil
}

// RunLines executes a command and splits its merged output on newlines.
// Failures collapse to an empty result while still being reported once
// through the notify callback. Use RunLinesChecked when the caller needs
// the error.
func (s *Service) RunLines(ctx context.Context, args []string, cwd string) []string {
	lines, err := s.RunLinesChecked(ctx, args, cwd)
	if err != nil {
		key := fmt.Sprintf("cmd_fail:%s:%s", cwd, displayCommand(args))
		s.notifyOnce(key, fmt.Sprintf("Command failed: %v", err), "error")
		return nil
	}
	return lines
}

// RunLinesChecked is RunLines without the swallowing: failures surface as
// the *SubprocessError from CombinedOutput.
func (s *Service) RunLinesChecked(ctx context.Context, args []string, cwd string) ([]string, error) {
	out, err := s.CombinedOutput(ctx, args, cwd)
	if err != nil {
		return nil, err
	}
	return strings.Split(out, "\n"), nil
}

// ownerRepoRE pulls "owner/name" out of both URL and scp-style remotes.
var ownerRepoRE = regexp.MustCompile(`[:/]([^/]+/[^/]+?)(?:\.git)?$`)

// RepoKey returns a stable identifier for the repository at root, used to
// namespace per-repository state on disk. The origin URL is preferred so
// clones of the same project share history; repositories without a remote
// fall back to a hash of the root path.
func (s *Service) RepoKey(ctx context.Context, root string) string {
	remote := s.RunGit(ctx, []string{"git", "remote", "get-url", "origin"}, root, []int{0}, true, true)
	if m := ownerRepoRE.FindStringSubmatch(remote); len(m) > 1 {
		return strings.TrimSuffix(m[1], ".git")
	}
	if root := strings.TrimSpace(root); root != "" {
		sum := sha256.Sum256([]byte(root))
		return fmt.Sprintf("local-%x", sum[:8])
	}
	return "unknown"
}
