package widget

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/chmouel/lazymd/internal/htmlview"
	"github.com/chmouel/lazymd/internal/theme"
)

// PreviewPane shows the rendered HTML body wrapped in its theme's document.
// Like SourcePane it does no work while hidden.
type PreviewPane struct {
	body      string
	thm       *theme.Theme
	document  string
	visible   bool
	stale     bool
	refreshes int
	logf      func(string, ...any)

	// layouts keeps recent terminal renderings so that resizing back or
	// toggling the pane does not re-parse the same document.
	layouts *lru.Cache[layoutKey, string]

	viewport viewport.Model
	width    int
	height   int
}

const layoutCacheSize = 16

type layoutKey struct {
	document string
	width    int
	thm      *theme.Theme
}

// NewPreviewPane returns a hidden preview pane.
func NewPreviewPane(thm *theme.Theme) *PreviewPane {
	layouts, _ := lru.New[layoutKey, string](layoutCacheSize)
	return &PreviewPane{thm: thm, viewport: viewport.New(0, 0), stale: true, layouts: layouts}
}

// ID returns PanePreview.
func (p *PreviewPane) ID() PaneID { return PanePreview }

// SetBody stores a new HTML body and reloads when visible.
func (p *PreviewPane) SetBody(body string) {
	p.body = body
	p.Refresh()
}

// Theme returns the preview theme.
func (p *PreviewPane) Theme() *theme.Theme { return p.thm }

// SetTheme switches the document theme and reloads when visible.
func (p *PreviewPane) SetTheme(thm *theme.Theme) {
	if thm == nil {
		return
	}
	p.thm = thm
	p.Refresh()
}

// Document returns the document loaded by the last refresh.
func (p *PreviewPane) Document() string { return p.document }

// Refresh rebuilds the document and its terminal rendering, or marks it stale
// while hidden.
func (p *PreviewPane) Refresh() {
	if !p.visible {
		p.stale = true
		return
	}
	p.stale = false
	p.refreshes++
	p.document = p.thm.Document(p.body)
	p.layout()
}

// Refreshes counts how many times the document was rebuilt.
func (p *PreviewPane) Refreshes() int { return p.refreshes }

// Visible reports whether the pane is shown.
func (p *PreviewPane) Visible() bool { return p.visible }

// SetVisible shows or hides the pane. Becoming visible triggers one refresh.
func (p *PreviewPane) SetVisible(visible bool) {
	was := p.visible
	p.visible = visible
	if visible && !was {
		p.Refresh()
	}
}

// SetSize sets the inner size and re-lays out the current document.
func (p *PreviewPane) SetSize(width, height int) {
	if width == p.width && height == p.height {
		return
	}
	p.width, p.height = max(width, 1), max(height, 1)
	p.viewport.Width = p.width
	p.viewport.Height = p.height
	if p.visible && !p.stale {
		p.layout()
	}
}

// Update scrolls the preview.
func (p *PreviewPane) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	p.viewport, cmd = p.viewport.Update(msg)
	return cmd
}

// View renders the pane body.
func (p *PreviewPane) View() string { return p.viewport.View() }

// CachedLayouts returns how many terminal renderings are cached.
func (p *PreviewPane) CachedLayouts() int { return p.layouts.Len() }

func (p *PreviewPane) layout() {
	if p.width <= 0 {
		return
	}
	key := layoutKey{document: p.document, width: p.width, thm: p.thm}
	if out, ok := p.layouts.Get(key); ok {
		p.viewport.SetContent(out)
		return
	}
	out, err := htmlview.Render(p.document, p.width, p.thm)
	if err != nil {
		if p.logf != nil {
			p.logf("preview layout failed: %v", err)
		}
		out = lipgloss.NewStyle().Foreground(p.thm.ErrorFg).Render(err.Error())
	} else {
		p.layouts.Add(key, out)
	}
	p.viewport.SetContent(out)
}
