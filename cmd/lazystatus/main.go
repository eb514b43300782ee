// Package main is the entry point for the lazystatus application.
package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/chmouel/lazystatus/internal/app"
	"github.com/chmouel/lazystatus/internal/bootstrap"
	"github.com/chmouel/lazystatus/internal/buildinfo"
	"github.com/chmouel/lazystatus/internal/config"
	"github.com/chmouel/lazystatus/internal/git"
	"github.com/chmouel/lazystatus/internal/log"
	"github.com/chmouel/lazystatus/internal/theme"
	urfavecli "github.com/urfave/cli/v2"
)

// Injected by the linker at release time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

func main() {
	buildinfo.Set(version, commit, date, builtBy)
	buildinfo.Enrich()

	urfavecli.VersionPrinter = func(c *urfavecli.Context) {
		fmt.Print(buildinfo.Summary(c.App.Name))
	}

	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func newApp() *urfavecli.App {
	return &urfavecli.App{
		Name:                 "lazystatus",
		Usage:                "A TUI to stage, reset, diff, and commit changed files",
		Version:              buildinfo.Version(),
		EnableBashCompletion: true,
		Flags:                globalFlags(),
		Commands: []*urfavecli.Command{
			listCommand(),
			rootCommand(),
			stageCommand(),
			patchCommand(),
			resetCommand(),
			diffCommand(),
			commitCommand(),
			completionCommand(),
		},
		Before:       handleEarlyExitFlags,
		Action:       runTUI,
		BashComplete: completeTopLevel,
	}
}

// handleEarlyExitFlags services flags that print and exit before any
// command runs. --version is handled by urfave/cli itself.
func handleEarlyExitFlags(c *urfavecli.Context) error {
	if c.Bool("show-syntax-themes") {
		printSyntaxThemes()
		os.Exit(0)
	}
	return nil
}

// runTUI is the default action: load config, find the repository, and
// hand the terminal to the interactive UI.
func runTUI(c *urfavecli.Context) error {
	cfg, err := bootstrap.LoadCLIConfig(c.String("config-file"), c.String("theme"), c.StringSlice("config"))
	if err != nil {
		return err
	}
	bootstrap.SetupDebugLog(c.String("debug-log"), cfg)
	defer closeDebugLog()

	root, err := resolveRepoRoot()
	if err != nil {
		return err
	}

	model := app.NewModel(cfg, root, c.String("filter"))
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = p.Run()
	model.Close()
	return err
}

func resolveRepoRoot() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	root, ok := git.FindRoot(wd)
	if !ok {
		return "", git.ErrNoRepository
	}
	return root, nil
}

func closeDebugLog() {
	if err := log.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error closing debug log: %v\n", err)
	}
}

// printSyntaxThemes prints the diff formatter syntax theme paired with
// each UI theme.
func printSyntaxThemes() {
	names := theme.AvailableThemes()
	sort.Strings(names)
	fmt.Println("Available syntax themes (delta --syntax-theme defaults):")
	for _, name := range names {
		syntax := ""
		if args := config.DefaultGitPagerArgsForTheme(name); len(args) == 2 {
			syntax = strings.Trim(args[1], `"`)
		}
		fmt.Printf("  %-16s -> %s\n", name, syntax)
	}
}
