package services

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/chmouel/lazystatus/internal/config"
	"github.com/chmouel/lazystatus/internal/git"
)

// lessCommand is the pager invocation used when nothing is configured and
// less is on PATH. The prompt replaces less's default status line.
const lessCommand = "less --use-color -q --wordwrap -qcR -P 'Press q to exit..'"

// PagerCommand picks the pager for full-screen diffs: the configured one,
// then $PAGER, then the best binary on PATH.
func PagerCommand(cfg *config.AppConfig) string {
	if cfg != nil {
		if pager := strings.TrimSpace(cfg.Pager); pager != "" {
			return pager
		}
	}
	if pager := strings.TrimSpace(os.Getenv("PAGER")); pager != "" {
		return pager
	}
	switch firstOnPath("less", "more") {
	case "less":
		return lessCommand
	case "more":
		return "more"
	}
	return "cat"
}

// EditorCommand picks the editor for opening files: the configured one with
// environment variables expanded, then $EDITOR, then nvim or vi from PATH.
// Empty means no editor is available.
func EditorCommand(cfg *config.AppConfig) string {
	if cfg != nil {
		if editor := strings.TrimSpace(cfg.Editor); editor != "" {
			return os.ExpandEnv(editor)
		}
	}
	if editor := strings.TrimSpace(os.Getenv("EDITOR")); editor != "" {
		return editor
	}
	return firstOnPath("nvim", "vi")
}

// PagerEnv returns extra environment assignments the pager needs. less gets
// a clean slate so inherited LESS flags cannot break the diff colours.
func PagerEnv(pager string) string {
	if filepath.Base(commandWord(pager)) == "less" {
		return "LESS= LESSHISTFILE=-"
	}
	return ""
}

func firstOnPath(names ...string) string {
	for _, name := range names {
		if _, err := git.LookupPath(name); err == nil {
			return name
		}
	}
	return ""
}

// commandWord extracts the program word from a shell-style command line,
// skipping leading VAR=value assignments.
func commandWord(cmdline string) string {
	for _, field := range strings.Fields(cmdline) {
		if isEnvAssignment(field) {
			continue
		}
		return field
	}
	return ""
}

func isEnvAssignment(field string) bool {
	return strings.Contains(field, "=") && !strings.HasPrefix(field, "-") && !strings.Contains(field, "/")
}
