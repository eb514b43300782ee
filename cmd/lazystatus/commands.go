// Package main provides CLI command definitions for lazystatus.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/chmouel/lazystatus/internal/bootstrap"
	"github.com/chmouel/lazystatus/internal/cli"
	"github.com/chmouel/lazystatus/internal/completion"
	"github.com/chmouel/lazystatus/internal/config"
	"github.com/chmouel/lazystatus/internal/git"
	"github.com/chmouel/lazystatus/internal/log"
	urfavecli "github.com/urfave/cli/v2"
)

// lineModeConfig loads configuration and builds the git service for a
// line-mode subcommand. Global flags are read through the subcommand
// context.
func lineModeConfig(c *urfavecli.Context) (*config.AppConfig, *git.Service, error) {
	cfg, err := bootstrap.LoadCLIConfig(c.String("config-file"), c.String("theme"), c.StringSlice("config"))
	if err != nil {
		return nil, nil, err
	}
	bootstrap.SetupDebugLog(c.String("debug-log"), cfg)
	return cfg, bootstrap.NewGitService(cfg), nil
}

// withRunner loads config, builds the line-mode runner, and hands it to
// fn. The debug log closes when fn returns.
func withRunner(c *urfavecli.Context, fn func(ctx context.Context, r *cli.Runner) error) error {
	cfg, gitSvc, err := lineModeConfig(c)
	if err != nil {
		return err
	}
	defer func() { _ = log.Close() }()

	runner, err := cli.NewRunner(gitSvc, cfg)
	if err != nil {
		return err
	}
	return fn(c.Context, runner)
}

// listCommand returns the list subcommand definition.
func listCommand() *urfavecli.Command {
	return &urfavecli.Command{
		Name:  "list",
		Usage: "List changed files",
		Action: func(c *urfavecli.Context) error {
			cfg, gitSvc, err := lineModeConfig(c)
			if err != nil {
				return err
			}
			defer func() { _ = log.Close() }()
			return cli.List(c.Context, gitSvc, cfg, os.Stdout)
		},
	}
}

// rootCommand returns the root subcommand definition.
func rootCommand() *urfavecli.Command {
	return &urfavecli.Command{
		Name:  "root",
		Usage: "Print the repository root",
		Action: func(_ *urfavecli.Context) error {
			return cli.Root(os.Stdout)
		},
	}
}

// stageCommand returns the stage subcommand definition. Without paths
// it stages every changed file.
func stageCommand() *urfavecli.Command {
	return &urfavecli.Command{
		Name:      "stage",
		Usage:     "Stage files",
		ArgsUsage: "[<path>...]",
		Action: func(c *urfavecli.Context) error {
			return withRunner(c, func(ctx context.Context, r *cli.Runner) error {
				return r.Stage(ctx, c.Args().Slice())
			})
		},
	}
}

// patchCommand returns the patch subcommand definition.
func patchCommand() *urfavecli.Command {
	return &urfavecli.Command{
		Name:      "patch",
		Usage:     "Stage hunks interactively",
		ArgsUsage: "[<path>...]",
		Action: func(c *urfavecli.Context) error {
			return withRunner(c, func(ctx context.Context, r *cli.Runner) error {
				return r.Patch(ctx, c.Args().Slice())
			})
		},
	}
}

// resetCommand returns the reset subcommand definition.
func resetCommand() *urfavecli.Command {
	return &urfavecli.Command{
		Name:      "reset",
		Usage:     "Unstage changes or restore files",
		ArgsUsage: "[<path>...]",
		Action: func(c *urfavecli.Context) error {
			return withRunner(c, func(ctx context.Context, r *cli.Runner) error {
				return r.Reset(ctx, c.Args().Slice())
			})
		},
	}
}

// diffCommand returns the diff subcommand definition.
func diffCommand() *urfavecli.Command {
	return &urfavecli.Command{
		Name:      "diff",
		Usage:     "Show the diff for one file",
		ArgsUsage: "<path>",
		Flags: []urfavecli.Flag{
			&urfavecli.BoolFlag{
				Name:  "cached",
				Usage: "Diff the index against HEAD",
			},
		},
		Action: func(c *urfavecli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("usage: lazystatus diff [--cached] <path>")
			}
			return withRunner(c, func(ctx context.Context, r *cli.Runner) error {
				return r.Diff(ctx, c.Args().First(), c.Bool("cached"), c.IsSet("cached"))
			})
		},
	}
}

// commitCommand returns the commit subcommand definition. The message
// is prompted on stderr when --message is omitted.
func commitCommand() *urfavecli.Command {
	return &urfavecli.Command{
		Name:      "commit",
		Usage:     "Commit files",
		ArgsUsage: "[<path>...]",
		Flags: []urfavecli.Flag{
			&urfavecli.StringFlag{
				Name:    "message",
				Aliases: []string{"m"},
				Usage:   "Commit message",
			},
		},
		Action: func(c *urfavecli.Context) error {
			return withRunner(c, func(ctx context.Context, r *cli.Runner) error {
				return r.Commit(ctx, c.String("message"), c.Args().Slice())
			})
		},
	}
}

// completionCommand returns the completion subcommand definition.
func completionCommand() *urfavecli.Command {
	return &urfavecli.Command{
		Name:      "completion",
		Usage:     "Generate shell completion scripts",
		ArgsUsage: "<bash|zsh>",
		Action: func(c *urfavecli.Context) error {
			if c.NArg() == 0 {
				return fmt.Errorf("usage: lazystatus completion <bash|zsh>")
			}
			switch shell := c.Args().First(); shell {
			case "bash":
				fmt.Print(completion.Bash(c.App.Name))
			case "zsh":
				fmt.Print(completion.Zsh(c.App.Name))
			default:
				return fmt.Errorf("unsupported shell: %s (supported: bash, zsh)", shell)
			}
			return nil
		},
	}
}
