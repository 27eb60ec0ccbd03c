package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	urfavecli "github.com/urfave/cli/v3"

	"github.com/chmouel/lazymd/internal/app"
	"github.com/chmouel/lazymd/internal/buildinfo"
	"github.com/chmouel/lazymd/internal/config"
	"github.com/chmouel/lazymd/internal/log"
	"github.com/chmouel/lazymd/internal/theme"
	"github.com/chmouel/lazymd/internal/widget"
)

var errTooManyArgs = errors.New("expected at most one Markdown file")

// runProgram runs the Bubble Tea program; tests replace it.
var runProgram = func(m *app.Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

// NewCommand builds the lazymd root command.
func NewCommand() *urfavecli.Command {
	return &urfavecli.Command{
		Name:      "lazymd",
		Usage:     "Edit Markdown beside its HTML source and a live preview",
		ArgsUsage: "[file.md]",
		Version:   buildinfo.Get().Version,
		Flags:     globalFlags(),
		Commands: []*urfavecli.Command{
			renderCommand(),
			themesCommand(),
		},
		EnableShellCompletion: true,
		ShellComplete:         completeGlobalFlags,
		Action:                runTUI,
	}
}

func init() {
	urfavecli.VersionPrinter = printVersion
}

func printVersion(cmd *urfavecli.Command) {
	fmt.Fprintln(cmd.Root().Writer, buildinfo.Get())
}

// Run executes the command line and returns the first error.
func Run(ctx context.Context, args []string) error {
	return NewCommand().Run(ctx, args)
}

func runTUI(_ context.Context, cmd *urfavecli.Command) error {
	if cmd.Args().Len() > 1 {
		return errTooManyArgs
	}

	cfg, err := loadCLIConfig(cmd)
	if err != nil {
		_ = log.Close()
		return err
	}

	model, err := app.NewModel(cfg, cmd.Args().First())
	if err != nil {
		_ = log.Close()
		return err
	}

	err = runProgram(model)
	model.Close()
	if err != nil {
		_ = log.Close()
		return fmt.Errorf("error running app: %w", err)
	}

	if err := log.Close(); err != nil {
		fmt.Fprintf(cmd.Root().ErrWriter, "Error closing debug log: %v\n", err)
	}
	return nil
}

// loadCLIConfig loads the configuration file and applies the global flags on
// top of it, CLI overrides last.
func loadCLIConfig(cmd *urfavecli.Command) (*config.AppConfig, error) {
	debugLog := cmd.String("debug-log")
	if debugLog != "" {
		setupDebugLog(debugLog, cmd.Root().ErrWriter)
	}

	cfg, err := config.LoadConfig(cmd.String("config-file"))
	if err != nil {
		fmt.Fprintf(cmd.Root().ErrWriter, "Error loading config: %v\n", err)
		cfg = config.DefaultConfig()
		if cfg.Theme == "" {
			cfg.Theme = theme.Detect()
		}
	}

	if debugLog == "" {
		setupDebugLog(cfg.DebugLog, cmd.Root().ErrWriter)
	}

	if name := cmd.String("theme"); name != "" {
		normalized := theme.Normalize(name)
		if normalized == "" {
			return nil, fmt.Errorf("unknown theme %q", name)
		}
		cfg.Theme = normalized
	}
	if mode := cmd.String("selection"); mode != "" {
		if _, ok := widget.ParseSelectionMode(mode); !ok {
			return nil, fmt.Errorf("%w: selection mode %q", widget.ErrInvalidArgument, mode)
		}
		cfg.SelectionMode = mode
	}
	if views := cmd.StringSlice("view"); len(views) > 0 {
		for _, v := range views {
			if _, ok := widget.ParsePane(v); !ok && v != "all" {
				return nil, fmt.Errorf("%w: view %q", widget.ErrInvalidArgument, v)
			}
		}
		cfg.View = views
	}
	if cmd.IsSet("watch") {
		cfg.Watch = cmd.Bool("watch")
	}

	if overrides := cmd.StringSlice("config"); len(overrides) > 0 {
		if err := cfg.ApplyCLIOverrides(overrides); err != nil {
			return nil, fmt.Errorf("error applying config overrides: %w", err)
		}
	}
	return cfg, nil
}

// setupDebugLog points the debug log at path; an empty path discards the
// buffered output.
func setupDebugLog(path string, stderr io.Writer) {
	if path == "" {
		_ = log.SetFile("")
		return
	}
	if expanded, err := config.ExpandPath(path); err == nil {
		path = expanded
	}
	if err := log.SetFile(path); err != nil {
		fmt.Fprintf(stderr, "Error opening debug log file %q: %v\n", path, err)
	}
}

func readSource(path string, stdin io.Reader) (string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path) //nolint:gosec
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}
