// Package widget implements the Markdown control: a Markdown source pane, an
// HTML source pane and a rendered preview, shown or hidden through a bar of
// toggle buttons.
//
// Editing the Markdown pane renders it to HTML and pushes the result into the
// other two panes. Hidden panes defer all styling work until they are shown.
package widget

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/chmouel/lazymd/internal/lexer"
	"github.com/chmouel/lazymd/internal/log"
	"github.com/chmouel/lazymd/internal/markdown"
	"github.com/chmouel/lazymd/internal/theme"
)

// Option configures a Control.
type Option func(*Control)

// WithRenderer sets the Markdown to HTML converter.
func WithRenderer(r markdown.Renderer) Option {
	return func(c *Control) { c.renderer = r }
}

// WithStyler sets the lexer used by both source panes.
func WithStyler(s lexer.Styler) Option {
	return func(c *Control) { c.styler = s }
}

// WithTheme sets the initial theme of every pane and the button bar.
func WithTheme(thm *theme.Theme) Option {
	return func(c *Control) {
		if thm != nil {
			c.uiTheme = thm
		}
	}
}

// WithLogger sets the debug log function.
func WithLogger(logf func(string, ...any)) Option {
	return func(c *Control) { c.logf = logf }
}

// Control is the composite Markdown widget.
type Control struct {
	renderer markdown.Renderer
	styler   lexer.Styler
	uiTheme  *theme.Theme
	logf     func(string, ...any)

	source   *SourcePane
	html     *SourcePane
	preview  *PreviewPane
	switcher *ViewSwitcher

	body      string
	renderErr error
	renders   int
	updating  bool

	focus         PaneID
	x, y          int
	width, height int
}

// New returns a control showing the Markdown and preview panes in multi
// selection mode, with the button bar centred below them.
func New(opts ...Option) *Control {
	c := &Control{
		renderer: markdown.New(markdown.Options{}),
		styler:   lexer.NewChroma(),
		uiTheme:  theme.Get(theme.DefaultDark()),
		logf:     log.Scoped("control"),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.source = NewSourcePane(PaneMarkdown, "markdown", false, c.styler, c.uiTheme)
	c.source.onChange = c.markdownChanged
	c.html = NewSourcePane(PaneHTML, "html", true, c.styler, c.uiTheme)
	c.preview = NewPreviewPane(c.uiTheme)
	c.preview.logf = c.logf

	c.switcher = NewViewSwitcher()
	c.switcher.AddButton(PaneMarkdown, defaultIcon(PaneMarkdown), "Markdown")
	c.switcher.AddButton(PaneHTML, defaultIcon(PaneHTML), "HTML")
	c.switcher.AddButton(PanePreview, defaultIcon(PanePreview), "Preview")
	c.switcher.OnChange = c.syncPanes

	c.Render()
	c.SetView(Panes(PaneMarkdown, PanePreview))
	return c
}

// MarkdownText returns the Markdown source.
func (c *Control) MarkdownText() string { return c.source.Content() }

// SetMarkdownText replaces the Markdown source and re-renders.
func (c *Control) SetMarkdownText(text string) { c.source.SetContent(text) }

// Render converts the Markdown source and refreshes the HTML and preview
// panes. A failing renderer yields the error fragment instead of a body.
func (c *Control) Render() {
	c.updating = true
	defer func() { c.updating = false }()

	body, err := markdown.Body(c.renderer, c.source.Content())
	c.renders++
	c.renderErr = err
	if err != nil {
		c.logf("render failed: %v", err)
	}
	c.body = body
	c.html.SetContent(body)
	c.preview.SetBody(body)
}

func (c *Control) markdownChanged(string) {
	if c.updating {
		return
	}
	c.Render()
}

// Renders counts completed renders.
func (c *Control) Renders() int { return c.renders }

// RenderErr returns the error of the last render, if any.
func (c *Control) RenderErr() error { return c.renderErr }

// HTMLBody returns the body produced by the last render.
func (c *Control) HTMLBody() string { return c.body }

// HTMLDocument returns the last body wrapped in the preview theme's document.
func (c *Control) HTMLDocument() string { return c.preview.Theme().Document(c.body) }

// MarkdownPane returns the Markdown source pane.
func (c *Control) MarkdownPane() *SourcePane { return c.source }

// HTMLPane returns the HTML source pane.
func (c *Control) HTMLPane() *SourcePane { return c.html }

// Preview returns the preview pane.
func (c *Control) Preview() *PreviewPane { return c.preview }

// Switcher returns the button bar.
func (c *Control) Switcher() *ViewSwitcher { return c.switcher }

// VisiblePanes returns the content panes currently shown.
func (c *Control) VisiblePanes() PaneSet {
	var s PaneSet
	for _, id := range contentPanes {
		if c.paneVisible(id) {
			s = s.With(id)
		}
	}
	return s
}

// SetView checks exactly the buttons of panes. In single selection mode only
// the first of them is kept.
func (c *Control) SetView(panes PaneSet) {
	values := make([]bool, c.switcher.Len())
	for i, b := range c.switcher.Buttons() {
		values[i] = panes.Has(b.Pane)
	}
	_ = c.switcher.SetValues(values)
}

// SetCtrlVisibility shows or hides the given components. In single selection
// mode showing a content pane selects the first one named and hides the rest.
func (c *Control) SetCtrlVisibility(ctrls PaneSet, visible bool) {
	selected := false
	for _, id := range ctrls.IDs() {
		switch {
		case id == PaneSwitcher:
			c.switcher.Show(visible)
		case visible && c.switcher.Mode() == SingleSelection:
			if !selected {
				c.switcher.selectOnly(id)
				selected = true
			}
		default:
			c.switcher.check(id, visible)
		}
	}
	c.syncPanes()
}

// SetButtons shows only the buttons of the given panes. Hiding a button does
// not hide its pane.
func (c *Control) SetButtons(buttons PaneSet) {
	values := make([]bool, c.switcher.Len())
	for i, b := range c.switcher.Buttons() {
		values[i] = buttons.Has(b.Pane)
	}
	_ = c.switcher.SetVisibility(values)
}

// SelectionMode returns the button bar selection mode.
func (c *Control) SelectionMode() SelectionMode { return c.switcher.Mode() }

// SetSelectionMode switches between single and multi selection.
func (c *Control) SetSelectionMode(mode SelectionMode) {
	c.switcher.SetMode(mode)
	c.syncPanes()
}

// SetButtonStyle changes what the target buttons show.
func (c *Control) SetButtonStyle(style ButtonStyle, targets PaneSet) {
	for _, id := range targets.IDs() {
		if b := c.switcher.Button(id); b != nil {
			b.Style = style
		}
	}
}

// SetButtonIcon sets the icon of the target buttons.
func (c *Control) SetButtonIcon(icon Icon, targets PaneSet) {
	for _, id := range targets.IDs() {
		if b := c.switcher.Button(id); b != nil {
			b.Icon = icon
		}
	}
}

// SetButtonIconPath loads an icon from path and sets it on the target
// buttons. Buttons are left unchanged when the file cannot be read.
func (c *Control) SetButtonIconPath(path string, targets PaneSet) error {
	icon, err := LoadIcon(path)
	if err != nil {
		return err
	}
	c.SetButtonIcon(icon, targets)
	return nil
}

// SetButtonsLayout moves the button bar.
func (c *Control) SetButtonsLayout(l Layout) { c.switcher.SetLayout(l) }

// Theme returns the theme of the button bar and pane frames.
func (c *Control) Theme() *theme.Theme { return c.uiTheme }

// SetTheme applies thm to the target components. The switcher target themes
// the button bar and pane frames.
func (c *Control) SetTheme(thm *theme.Theme, targets PaneSet) {
	if thm == nil {
		return
	}
	for _, id := range targets.IDs() {
		switch id {
		case PaneMarkdown:
			c.source.SetTheme(thm)
		case PaneHTML:
			c.html.SetTheme(thm)
		case PanePreview:
			c.preview.SetTheme(thm)
		case PaneSwitcher:
			c.uiTheme = thm
		}
	}
}

// Click acts as a mouse click on the button of pane.
func (c *Control) Click(pane PaneID) { c.switcher.Click(pane) }

// Focused returns the pane receiving keys.
func (c *Control) Focused() PaneID { return c.focus }

// Focus moves key focus to a visible pane.
func (c *Control) Focus(id PaneID) {
	if c.paneVisible(id) {
		c.focus = id
	}
}

// FocusNext cycles key focus through the visible panes.
func (c *Control) FocusNext() {
	ids := c.VisiblePanes().IDs()
	if len(ids) == 0 {
		return
	}
	for i, id := range ids {
		if id == c.focus {
			c.focus = ids[(i+1)%len(ids)]
			return
		}
	}
	c.focus = ids[0]
}

// Editing reports whether the Markdown editor has the keyboard.
func (c *Control) Editing() bool { return c.source.Editing() }

// StartEditing focuses the Markdown pane and opens its editor. It fails when
// the pane is hidden.
func (c *Control) StartEditing() bool {
	if !c.source.Visible() {
		return false
	}
	c.focus = PaneMarkdown
	return c.source.StartEditing()
}

// StopEditing closes the Markdown editor.
func (c *Control) StopEditing() { c.source.StopEditing() }

// SetOffset records where the control is drawn, for mouse hit testing.
func (c *Control) SetOffset(x, y int) { c.x, c.y = x, y }

// SetSize sets the outer size of the control.
func (c *Control) SetSize(width, height int) {
	c.width, c.height = max(width, 0), max(height, 0)
}

// Update handles keys and mouse events.
func (c *Control) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.MouseMsg:
		x, y := msg.X-c.x, msg.Y-c.y
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			if id, ok := c.geometry().buttonAt(x, y); ok {
				c.Click(id)
				return nil
			}
			if id, ok := c.geometry().paneAt(x, y); ok {
				c.focus = id
			}
			return nil
		}
	case tea.KeyMsg:
		if c.source.Editing() && msg.Type == tea.KeyEsc {
			c.StopEditing()
			return nil
		}
	}
	switch c.focus {
	case PaneMarkdown:
		return c.source.Update(msg)
	case PaneHTML:
		return c.html.Update(msg)
	case PanePreview:
		return c.preview.Update(msg)
	}
	return nil
}

func (c *Control) paneVisible(id PaneID) bool {
	switch id {
	case PaneMarkdown:
		return c.source.Visible()
	case PaneHTML:
		return c.html.Visible()
	case PanePreview:
		return c.preview.Visible()
	case PaneSwitcher:
		return c.switcher.Visible()
	}
	return false
}

// syncPanes makes pane visibility follow the checked buttons.
func (c *Control) syncPanes() {
	checked := c.switcher.Checked()
	c.source.SetVisible(checked.Has(PaneMarkdown))
	c.html.SetVisible(checked.Has(PaneHTML))
	c.preview.SetVisible(checked.Has(PanePreview))
	if !c.source.Visible() && c.source.Editing() {
		c.source.StopEditing()
	}
	if !c.paneVisible(c.focus) {
		if ids := checked.IDs(); len(ids) > 0 {
			c.focus = ids[0]
		}
	}
}
