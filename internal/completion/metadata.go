// Package completion generates shell completion scripts for the
// lazystatus binary. The flag and command tables here are the single
// source of truth the generators build from.
package completion

import "github.com/chmouel/lazystatus/internal/theme"

// FlagInfo contains metadata about a command-line flag for completion generation.
type FlagInfo struct {
	Name        string   // Flag name without dashes
	Description string   // Human-readable description
	HasValue    bool     // true for string flags, false for bool flags
	ValueHint   string   // Hint for value type (e.g., "FILE", "PATH", "NAME")
	Values      []string // Enumerated values for completion (e.g., theme names)
}

// CommandInfo contains metadata about a subcommand for completion generation.
type CommandInfo struct {
	Name        string
	Description string
	Flags       []FlagInfo
	TakesPaths  bool     // positional arguments are file paths
	Args        []string // fixed positional argument values
}

// GetFlags returns metadata for all global lazystatus flags.
func GetFlags() []FlagInfo {
	return []FlagInfo{
		{
			Name:        "config-file",
			Description: "Path to configuration file",
			HasValue:    true,
			ValueHint:   "FILE",
		},
		{
			Name:        "config",
			Description: "Override config values (ls.key=value)",
			HasValue:    true,
			ValueHint:   "KEY=VALUE",
		},
		{
			Name:        "debug-log",
			Description: "Path to debug log file",
			HasValue:    true,
			ValueHint:   "PATH",
		},
		{
			Name:        "theme",
			Description: "Override UI theme",
			HasValue:    true,
			ValueHint:   "NAME",
			Values:      theme.AvailableThemes(),
		},
		{
			Name:        "show-syntax-themes",
			Description: "List diff syntax themes",
			HasValue:    false,
		},
		{
			Name:        "version",
			Description: "Print version information",
			HasValue:    false,
		},
	}
}

// GetCommands returns metadata for all lazystatus subcommands.
func GetCommands() []CommandInfo {
	return []CommandInfo{
		{Name: "list", Description: "List changed files"},
		{Name: "root", Description: "Print the repository root"},
		{Name: "stage", Description: "Stage files", TakesPaths: true},
		{Name: "patch", Description: "Stage hunks interactively", TakesPaths: true},
		{Name: "reset", Description: "Unstage changes or restore files", TakesPaths: true},
		{
			Name:        "diff",
			Description: "Show the diff for one file",
			TakesPaths:  true,
			Flags: []FlagInfo{
				{Name: "cached", Description: "Diff the index against HEAD", HasValue: false},
			},
		},
		{
			Name:        "commit",
			Description: "Commit files",
			TakesPaths:  true,
			Flags: []FlagInfo{
				{Name: "message", Description: "Commit message", HasValue: true, ValueHint: "MSG"},
			},
		},
		{Name: "completion", Description: "Generate shell completion scripts", Args: []string{"bash", "zsh"}},
	}
}
