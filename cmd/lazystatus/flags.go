// Package main provides CLI flag definitions for lazystatus.
package main

import (
	"fmt"

	urfavecli "github.com/urfave/cli/v2"
)

// globalFlags returns the top-level flags. --version needs no entry
// here, urfave/cli derives it from App.Version.
func globalFlags() []urfavecli.Flag {
	return []urfavecli.Flag{
		&urfavecli.StringFlag{
			Name:  "config-file",
			Usage: "Load configuration from this file instead of the default locations",
		},
		&urfavecli.StringSliceFlag{
			Name:    "config",
			Aliases: []string{"C"},
			Usage:   "Override config values (repeatable): --config=ls.key=value",
		},
		&urfavecli.StringFlag{
			Name:    "theme",
			Aliases: []string{"t"},
			Usage:   "Override the UI theme",
		},
		&urfavecli.StringFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "Start with the file filter pre-populated",
		},
		&urfavecli.StringFlag{
			Name:  "debug-log",
			Usage: "Write debug output to this file",
		},
		&urfavecli.BoolFlag{
			Name:  "show-syntax-themes",
			Usage: "List available diff syntax themes and exit",
		},
	}
}

// completeTopLevel prints subcommand names for the shell completion
// hook.
func completeTopLevel(c *urfavecli.Context) {
	if c.NArg() > 0 {
		return
	}
	for _, cmd := range c.App.Commands {
		if cmd.Hidden {
			continue
		}
		fmt.Println(cmd.Name)
	}
}
