package bootstrap

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	urfavecli "github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/chmouel/lazymd/internal/app"
	"github.com/chmouel/lazymd/internal/htmlview"
	"github.com/chmouel/lazymd/internal/theme"
)

const defaultRenderWidth = 80

// terminalWidth reports the width of stdout, or 0 when it is not a terminal.
var terminalWidth = func() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 0
	}
	return width
}

func renderCommand() *urfavecli.Command {
	return &urfavecli.Command{
		Name:      "render",
		Usage:     "Render a Markdown file (or stdin) and print the result",
		ArgsUsage: "[file.md|-]",
		Flags:     renderFlags(),
		Action:    runRender,
	}
}

func themesCommand() *urfavecli.Command {
	return &urfavecli.Command{
		Name:   "themes",
		Usage:  "List the available themes",
		Action: runThemes,
	}
}

func runRender(_ context.Context, cmd *urfavecli.Command) error {
	if cmd.Args().Len() > 1 {
		return errTooManyArgs
	}
	cfg, err := loadCLIConfig(cmd)
	if err != nil {
		return err
	}
	source, err := readSource(cmd.Args().First(), cmd.Root().Reader)
	if err != nil {
		return err
	}

	ctl, err := app.NewControl(cfg)
	if err != nil {
		return err
	}
	ctl.SetMarkdownText(source)

	var out string
	switch {
	case cmd.Bool("text"):
		width := cmd.Int("width")
		if width <= 0 {
			width = terminalWidth()
		}
		if width <= 0 {
			width = defaultRenderWidth
		}
		out, err = htmlview.Render(ctl.HTMLDocument(), width, ctl.Preview().Theme())
		if err != nil {
			return fmt.Errorf("render preview: %w", err)
		}
	case cmd.Bool("document"):
		out = ctl.HTMLDocument()
	default:
		out = ctl.HTMLBody()
	}
	fmt.Fprintln(cmd.Root().Writer, out)

	if err := ctl.RenderErr(); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}

func runThemes(_ context.Context, cmd *urfavecli.Command) error {
	w := tabwriter.NewWriter(cmd.Root().Writer, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tBACKGROUND\tSYNTAX")
	for _, name := range theme.Available() {
		thm := theme.Get(name)
		kind := "dark"
		if thm.IsLight() {
			kind = "light"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", name, kind, thm.Syntax)
	}
	return w.Flush()
}
