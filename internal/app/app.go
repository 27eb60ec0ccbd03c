// Package app hosts the Markdown control in a Bubble Tea program.
package app

import (
	"context"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/chmouel/lazymd/internal/app/screen"
	"github.com/chmouel/lazymd/internal/config"
	"github.com/chmouel/lazymd/internal/log"
	"github.com/chmouel/lazymd/internal/markdown"
	"github.com/chmouel/lazymd/internal/theme"
	"github.com/chmouel/lazymd/internal/watch"
	"github.com/chmouel/lazymd/internal/widget"
)

// Message types for the Bubble Tea app
type (
	errMsg        struct{ err error }
	fileLoadedMsg struct {
		path    string
		content string
		err     error
	}
	fileChangedMsg struct{}
	reloadTickMsg  struct{}
)

// sampleDocument is shown when no file is given.
const sampleDocument = `# lazymd

Edit this text with **e**, toggle the views with **1**, **2** and **3**.

- [x] Markdown source
- [ ] HTML source
- [x] Preview

` + "```go\nfmt.Println(\"hello\")\n```\n"

// Model is the main application model.
type Model struct {
	config  *config.AppConfig
	ctl     *widget.Control
	screens *screen.Manager
	keys    keyMap
	help    help.Model
	theme   *theme.Theme

	path    string
	watcher *watch.FileWatcher
	ctx     context.Context
	cancel  context.CancelFunc

	originalTheme string
	previewCSS    string
	reloadPending bool
	status        string
	width         int
	height        int
	quitting      bool

	debugf func(string, ...any)
}

// NewModel creates the application model for the Markdown file at path. An
// empty path starts with a sample document.
func NewModel(cfg *config.AppConfig, path string) (*Model, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	ctl, err := NewControl(cfg)
	if err != nil {
		return nil, err
	}
	css, err := previewCSS(cfg)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithCancel(context.Background())

	m := &Model{
		config:     cfg,
		ctl:        ctl,
		screens:    screen.NewManager(),
		keys:       defaultKeyMap(),
		help:       help.New(),
		theme:      ctl.Theme(),
		path:       path,
		previewCSS: css,
		ctx:        ctx,
		cancel:     cancel,
		debugf:     log.Scoped("app"),
	}
	m.applyHelpStyles()
	if path == "" {
		ctl.SetMarkdownText(sampleDocument)
	} else if cfg.Watch {
		m.watcher = watch.New(path, log.Scoped("watch"))
	}
	return m, nil
}

// NewControl builds a Markdown control configured from cfg.
func NewControl(cfg *config.AppConfig) (*widget.Control, error) {
	uiTheme := theme.Get(cfg.Theme)
	editorTheme := uiTheme
	if cfg.EditorTheme != "" {
		editorTheme = theme.Get(cfg.EditorTheme)
	}
	css, err := previewCSS(cfg)
	if err != nil {
		return nil, err
	}
	previewTheme := withPreviewCSS(uiTheme, css)

	opts := markdown.Options{}
	if cfg.HighlightCode {
		opts.CodeStyle = previewTheme.Syntax
	}

	ctl := widget.New(
		widget.WithRenderer(markdown.New(opts)),
		widget.WithTheme(uiTheme),
		widget.WithLogger(log.Scoped("control")),
	)
	ctl.SetTheme(editorTheme, widget.Panes(widget.PaneMarkdown, widget.PaneHTML))
	ctl.SetTheme(previewTheme, widget.Panes(widget.PanePreview))

	mode, _ := widget.ParseSelectionMode(cfg.SelectionMode)
	ctl.SetSelectionMode(mode)
	ctl.SetButtons(cfg.ButtonPanes())
	ctl.SetView(cfg.ViewPanes())

	style, _ := widget.ParseButtonStyle(cfg.ButtonStyle)
	ctl.SetButtonStyle(style, widget.AllPanes)
	ctl.SetButtonsLayout(cfg.Layout())

	for _, name := range cfg.IconPanes() {
		id, ok := widget.ParsePane(name)
		if !ok {
			continue
		}
		if err := setIcon(ctl, id, cfg.Icons[name]); err != nil {
			return nil, fmt.Errorf("icon for %s: %w", name, err)
		}
	}
	return ctl, nil
}

func previewCSS(cfg *config.AppConfig) (string, error) {
	if cfg.PreviewCSS == "" {
		return "", nil
	}
	path, err := config.ExpandPath(cfg.PreviewCSS)
	if err != nil {
		return "", err
	}
	return theme.LoadCSS(path)
}

func withPreviewCSS(thm *theme.Theme, css string) *theme.Theme {
	if css == "" {
		return thm
	}
	return thm.WithCSS(css)
}

// setIcon treats value as an icon file when it exists and as a glyph when it
// is a short string that does not name a file.
func setIcon(ctl *widget.Control, id widget.PaneID, value string) error {
	path, err := config.ExpandPath(value)
	if err != nil {
		return err
	}
	if _, statErr := os.Stat(path); os.IsNotExist(statErr) && utf8.RuneCountInString(value) <= 4 {
		ctl.SetButtonIcon(widget.Icon{Glyph: value}, widget.Panes(id))
		return nil
	}
	return ctl.SetButtonIconPath(path, widget.Panes(id))
}

// Control returns the hosted Markdown control.
func (m *Model) Control() *widget.Control { return m.ctl }

// Init loads the file and starts watching it.
func (m *Model) Init() tea.Cmd {
	if m.path == "" {
		return nil
	}
	return tea.Batch(m.loadFile(), m.startWatcher())
}

func (m *Model) loadFile() tea.Cmd {
	path := m.path
	return func() tea.Msg {
		data, err := os.ReadFile(path) //nolint:gosec
		if err != nil {
			return fileLoadedMsg{path: path, err: fmt.Errorf("read %s: %w", path, err)}
		}
		return fileLoadedMsg{path: path, content: string(data)}
	}
}

// Close stops the file watcher.
func (m *Model) Close() {
	if m.watcher != nil {
		m.watcher.Stop()
	}
	m.cancel()
}
