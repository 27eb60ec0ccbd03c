// Package bootstrap wires the lazymd command line to the application.
package bootstrap

import (
	"context"
	"fmt"
	"os"

	urfavecli "github.com/urfave/cli/v3"

	"github.com/chmouel/lazymd/internal/completion"
)

// globalFlags returns all global flags for the application.
// Note: --version is provided automatically by urfave/cli via Command.Version
func globalFlags() []urfavecli.Flag {
	return []urfavecli.Flag{
		&urfavecli.StringFlag{
			Name:  "debug-log",
			Usage: "Path to debug log file",
		},
		&urfavecli.StringFlag{
			Name:    "theme",
			Aliases: []string{"t"},
			Usage:   "Override the UI theme",
		},
		&urfavecli.StringFlag{
			Name:  "config-file",
			Usage: "Path to configuration file",
		},
		&urfavecli.StringFlag{
			Name:  "selection",
			Usage: "Button selection mode: multi or single",
		},
		&urfavecli.StringSliceFlag{
			Name:  "view",
			Usage: "Panes shown at start (repeatable): markdown, html, preview",
		},
		&urfavecli.BoolFlag{
			Name:  "watch",
			Usage: "Reload the file when it changes on disk (--watch=false to disable)",
		},
		&urfavecli.StringSliceFlag{
			Name:    "config",
			Aliases: []string{"C"},
			Usage:   "Override config values (repeatable): --config=key=value",
		},
	}
}

func renderFlags() []urfavecli.Flag {
	return []urfavecli.Flag{
		&urfavecli.BoolFlag{
			Name:    "document",
			Aliases: []string{"d"},
			Usage:   "Print the full HTML document with the theme stylesheet",
		},
		&urfavecli.BoolFlag{
			Name:  "text",
			Usage: "Print the terminal preview instead of HTML",
		},
		&urfavecli.IntFlag{
			Name:  "width",
			Usage: "Width of the terminal preview (defaults to the terminal width)",
		},
	}
}

const completionFlag = "--generate-shell-completion"

// completeGlobalFlags prints completions for the root command. Subcommands are
// offered before any argument.
func completeGlobalFlags(_ context.Context, cmd *urfavecli.Command) {
	args := completionArgs(os.Args)
	w := cmd.Root().Writer
	if len(args) == 0 {
		for _, sub := range cmd.Commands {
			fmt.Fprintln(w, sub.Name)
		}
	}
	for _, s := range completion.Complete(args, "") {
		fmt.Fprintln(w, s)
	}
}

// completionArgs drops the program name and the completion marker.
func completionArgs(argv []string) []string {
	if len(argv) <= 1 {
		return nil
	}
	args := make([]string, 0, len(argv)-1)
	for _, a := range argv[1:] {
		if a != completionFlag {
			args = append(args, a)
		}
	}
	return args
}
