// Package cli implements the line-mode host: each subcommand drives one
// dispatch against the repository and exits, with prompts on stderr and
// machine output on stdout.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/chmouel/lazystatus/internal/app/services"
	"github.com/chmouel/lazystatus/internal/config"
	"github.com/chmouel/lazystatus/internal/git"
	"golang.org/x/term"
)

var (
	osGetwd            = os.Getwd
	execCommandContext = exec.CommandContext

	// stdoutIsTerminal decides between human and plumbing output. It is a
	// package variable so tests can pin either mode.
	stdoutIsTerminal = func() bool { return term.IsTerminal(int(os.Stdout.Fd())) }
)

// TerminalHost adapts the dispatcher's host surface to a plain terminal.
// Questions go to stderr and read one line from stdin, previews print the
// diff through the configured pager, and interactive commands take over
// the terminal until they exit.
type TerminalHost struct {
	svc *git.Service
	cfg *config.AppConfig

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	// commitMessage preseeds the commit prompt so -m skips it.
	commitMessage string

	scanner *bufio.Scanner
}

var _ git.Host = (*TerminalHost)(nil)

// NewTerminalHost wires a host to the process streams.
func NewTerminalHost(svc *git.Service, cfg *config.AppConfig) *TerminalHost {
	return &TerminalHost{
		svc:    svc,
		cfg:    cfg,
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
}

// Workdir returns the directory the process was started from.
func (h *TerminalHost) Workdir() (string, error) {
	return osGetwd()
}

// Prompt writes the question to stderr and reads one line from stdin. An
// empty answer falls back to def; EOF cancels the prompt.
func (h *TerminalHost) Prompt(_ context.Context, message, def string) (string, error) {
	if message == git.PromptCommitMessage && h.commitMessage != "" {
		return h.commitMessage, nil
	}

	fmt.Fprintf(h.stderr, "%s ", strings.TrimRight(message, " "))

	if h.scanner == nil {
		h.scanner = bufio.NewScanner(h.stdin)
	}
	if !h.scanner.Scan() {
		return "", fmt.Errorf("prompt cancelled")
	}

	answer := strings.TrimSpace(h.scanner.Text())
	if answer == "" {
		return def, nil
	}
	return answer, nil
}

// FilesChanged is a no-op: line mode holds nothing open, the next listing
// comes from a fresh process.
func (h *TerminalHost) FilesChanged() {}

// OpenPreview prints the diff described by spec. On a terminal the text
// runs through the diff formatter and the configured pager; piped output
// gets the raw patch so scripts see what git produced.
func (h *TerminalHost) OpenPreview(ctx context.Context, root string, spec git.DiffSpec) error {
	diff := h.svc.Diff(ctx, root, spec)

	if !stdoutIsTerminal() {
		_, err := io.WriteString(h.stdout, diff)
		return err
	}

	if h.svc.UseGitPager() {
		diff = h.svc.ApplyGitPager(ctx, diff)
	}

	pager := services.PagerCommand(h.cfg)
	pagerCmd := pager
	if env := services.PagerEnv(pager); env != "" {
		pagerCmd = fmt.Sprintf("%s %s", env, pager)
	}
	cmd := execCommandContext(ctx, "bash", "-c", pagerCmd)
	cmd.Stdin = strings.NewReader(diff)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// ClosePreview is a no-op: a line-mode preview ends when the pager exits.
func (h *TerminalHost) ClosePreview() error { return nil }

// IsPreviewOpen always reports false, so the diff action opens instead of
// toggling.
func (h *TerminalHost) IsPreviewOpen() bool { return false }

// RunInteractive attaches argv to the real terminal and blocks until it
// exits.
func (h *TerminalHost) RunInteractive(ctx context.Context, argv []string, dir string) error {
	if len(argv) == 0 {
		return fmt.Errorf("no command provided")
	}
	// #nosec G204 -- argv is built by the dispatcher from parsed status lines
	cmd := execCommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// HasCommand reports whether a helper binary is on PATH.
func (h *TerminalHost) HasCommand(name string) bool {
	_, err := git.LookupPath(name)
	return err == nil
}
