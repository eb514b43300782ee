// Package bootstrap wires configuration, debug logging, and the git
// service for the command-line entry points. The TUI launcher and the
// line-mode subcommands share the same startup path.
package bootstrap

import (
	"fmt"
	"os"

	"github.com/chmouel/lazystatus/internal/config"
	"github.com/chmouel/lazystatus/internal/git"
	"github.com/chmouel/lazystatus/internal/log"
)

// LoadCLIConfig loads the configuration file, applies the --theme flag,
// and layers --config overrides on top. A broken config file degrades
// to defaults with a note on stderr instead of refusing to start.
func LoadCLIConfig(configFile, themeFlag string, overrides []string) (*config.AppConfig, error) {
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		cfg = config.DefaultConfig()
	}

	if err := ApplyThemeFlag(cfg, themeFlag); err != nil {
		return nil, err
	}

	if len(overrides) > 0 {
		if err := cfg.ApplyCLIOverrides(overrides); err != nil {
			return nil, fmt.Errorf("error applying config overrides: %w", err)
		}
	}

	return cfg, nil
}

// ApplyThemeFlag overrides the configured theme from the command line.
// The diff formatter arguments follow the theme unless the config file
// pinned them explicitly.
func ApplyThemeFlag(cfg *config.AppConfig, themeName string) error {
	if themeName == "" {
		return nil
	}

	normalized := config.NormalizeThemeName(themeName)
	if normalized == "" {
		return fmt.Errorf("unknown theme %q", themeName)
	}

	cfg.Theme = normalized
	if !cfg.GitPagerArgsSet {
		cfg.GitPagerArgs = config.DefaultGitPagerArgsForTheme(normalized)
	}
	return nil
}

// SetupDebugLog routes debug logging to the file named by the flag,
// falling back to the config value. With neither set, the logs
// buffered during startup are discarded. Failures to open the file are
// reported on stderr but never abort startup.
func SetupDebugLog(flagValue string, cfg *config.AppConfig) {
	path := flagValue
	if path == "" {
		path = cfg.DebugLog
	}
	if path == "" {
		_ = log.SetFile("")
		return
	}

	cfg.DebugLog = path
	if err := log.SetFile(path); err != nil {
		fmt.Fprintf(os.Stderr, "Error opening debug log file %q: %v\n", path, err)
	}
}

// NewGitService creates a git service for line mode, with notifications
// printed to stderr.
func NewGitService(cfg *config.AppConfig) *git.Service {
	gitSvc := git.NewService(cliNotifyOnce)
	gitSvc.SetGitPager(cfg.GitPager)
	gitSvc.SetGitPagerArgs(cfg.GitPagerArgs)
	return gitSvc
}

// cliNotify is the notification callback for git operations in line mode.
func cliNotify(message, severity string) {
	if severity == "error" {
		fmt.Fprintf(os.Stderr, "Error: %s\n", message)
		return
	}
	fmt.Fprintf(os.Stderr, "%s\n", message)
}

// cliNotifyOnce is the deduplicating variant; line mode runs one
// operation per invocation, so it just forwards.
func cliNotifyOnce(_, message, severity string) {
	cliNotify(message, severity)
}
