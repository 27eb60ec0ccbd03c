package widget

import (
	"errors"
	"iter"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/chroma/v2"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chmouel/lazymd/internal/markdown"
	"github.com/chmouel/lazymd/internal/theme"
)

// countingStyler records how often each language is lexed.
type countingStyler struct {
	calls map[string]int
}

func (s *countingStyler) Lex(text, language string) iter.Seq2[chroma.TokenType, string] {
	s.calls[language]++
	return func(yield func(chroma.TokenType, string) bool) {
		if text != "" {
			yield(chroma.Text, text)
		}
	}
}

// countingRenderer wraps its input in a paragraph.
type countingRenderer struct {
	calls int
}

func (r *countingRenderer) Convert(source string) (string, error) {
	r.calls++
	return "<p>" + source + "</p>", nil
}

func newTestControl(t *testing.T, opts ...Option) (*Control, *countingStyler, *countingRenderer) {
	t.Helper()
	styler := &countingStyler{calls: map[string]int{}}
	renderer := &countingRenderer{}
	opts = append([]Option{WithStyler(styler), WithRenderer(renderer), WithLogger(func(string, ...any) {})}, opts...)
	return New(opts...), styler, renderer
}

func TestNewControlDefaults(t *testing.T) {
	c, _, _ := newTestControl(t)

	if c.SelectionMode() != MultiSelection {
		t.Errorf("expected multi selection, got %v", c.SelectionMode())
	}
	if got := c.VisiblePanes(); got != Panes(PaneMarkdown, PanePreview) {
		t.Errorf("expected markdown and preview visible, got %v", got)
	}
	if !c.Switcher().Visible() {
		t.Error("expected the button bar to be visible")
	}
	if c.Switcher().Layout() != DefaultLayout() {
		t.Errorf("unexpected layout %+v", c.Switcher().Layout())
	}
	if c.MarkdownText() != "" {
		t.Errorf("expected empty markdown, got %q", c.MarkdownText())
	}
	if c.Focused() != PaneMarkdown {
		t.Errorf("expected markdown focus, got %v", c.Focused())
	}
}

func TestSetMarkdownTextRenders(t *testing.T) {
	c := New(WithLogger(func(string, ...any) {}))
	c.SetMarkdownText("# Hi")

	assert.Equal(t, "# Hi", c.MarkdownText())
	assert.Equal(t, "<h1>Hi</h1>", c.HTMLBody())
	assert.Equal(t, "<h1>Hi</h1>", c.HTMLPane().Content())
	assert.Contains(t, c.Preview().Document(), "<h1>Hi</h1>")
	assert.Equal(t, c.Preview().Theme().Document("<h1>Hi</h1>"), c.HTMLDocument())
	require.NoError(t, c.RenderErr())
}

func TestSetMarkdownTextRoundTrip(t *testing.T) {
	c, _, r := newTestControl(t)
	for _, text := range []string{"", "plain", "\n\nleading", "ünïcode *x*"} {
		c.SetMarkdownText(text)
		assert.Equal(t, text, c.MarkdownText())
	}
	assert.Equal(t, 5, r.calls, "one render at construction plus one per set")
}

func TestRenderFailureShowsErrorFragment(t *testing.T) {
	failure := errors.New("bad <input>")
	c, _, _ := newTestControl(t, WithRenderer(markdown.RendererFunc(func(string) (string, error) {
		return "", failure
	})))
	c.SetMarkdownText("anything")

	want := markdown.ErrorFragment(failure)
	assert.Equal(t, want, c.HTMLBody())
	assert.Equal(t, want, c.HTMLPane().Content())
	assert.Contains(t, c.Preview().Document(), want)
	assert.Contains(t, want, "bad &lt;input&gt;")
	assert.ErrorIs(t, c.RenderErr(), failure)
}

func TestRenderPanicIsContained(t *testing.T) {
	c, _, _ := newTestControl(t, WithRenderer(markdown.RendererFunc(func(string) (string, error) {
		panic("kaboom")
	})))
	assert.NotPanics(t, func() { c.SetMarkdownText("x") })
	assert.Contains(t, c.HTMLBody(), "kaboom")
}

func TestRenderGuardStopsReentry(t *testing.T) {
	var c *Control
	calls := 0
	c, _, _ = newTestControl(t, WithRenderer(markdown.RendererFunc(func(source string) (string, error) {
		calls++
		if c != nil && source == "outer" {
			c.SetMarkdownText("inner")
		}
		return source, nil
	})))
	calls = 0

	c.SetMarkdownText("outer")
	assert.Equal(t, 1, calls)
	assert.Equal(t, "inner", c.MarkdownText())
}

func TestHiddenPaneStylesOnceWhenShown(t *testing.T) {
	c, styler, _ := newTestControl(t)
	require.False(t, c.HTMLPane().Visible())
	require.Zero(t, c.HTMLPane().Restyles())

	for _, text := range []string{"a", "b", "c"} {
		c.SetMarkdownText(text)
	}
	assert.Zero(t, c.HTMLPane().Restyles())
	assert.Zero(t, styler.calls["html"])

	c.Click(PaneHTML)
	assert.True(t, c.HTMLPane().Visible())
	assert.Equal(t, 1, c.HTMLPane().Restyles())
	assert.Equal(t, 1, styler.calls["html"])
	require.Len(t, c.HTMLPane().Spans(), 1)
	assert.Equal(t, 8, c.HTMLPane().Spans()[0].End, "spans cover <p>c</p>")
}

func TestVisiblePaneRestylesOnEveryChange(t *testing.T) {
	c, _, _ := newTestControl(t)
	before := c.MarkdownPane().Restyles()
	c.SetMarkdownText("one")
	c.SetMarkdownText("two")
	assert.Equal(t, before+2, c.MarkdownPane().Restyles())
}

func TestHiddenPreviewRefreshesOnceWhenShown(t *testing.T) {
	c, _, _ := newTestControl(t)
	c.SetView(Panes(PaneMarkdown))
	before := c.Preview().Refreshes()

	c.SetMarkdownText("x")
	c.SetMarkdownText("y")
	assert.Equal(t, before, c.Preview().Refreshes())
	assert.NotContains(t, c.Preview().Document(), "<p>y</p>")

	c.SetCtrlVisibility(Panes(PanePreview), true)
	assert.Equal(t, before+1, c.Preview().Refreshes())
	assert.Contains(t, c.Preview().Document(), "<p>y</p>")
}

func TestLeadingNewlinesAreNotLexed(t *testing.T) {
	c, _, _ := newTestControl(t)
	c.SetMarkdownText("\n\n# T")
	spans := c.MarkdownPane().Spans()
	require.Len(t, spans, 1)
	assert.Equal(t, 2, spans[0].Start)
	assert.Equal(t, 5, spans[0].End)
}

func TestSetCtrlVisibilityMulti(t *testing.T) {
	c, _, _ := newTestControl(t)
	c.SetCtrlVisibility(AllPanes, true)
	assert.Equal(t, AllPanes, c.VisiblePanes())
	assert.Equal(t, []bool{true, true, true}, c.Switcher().Values())

	c.SetCtrlVisibility(Panes(PaneMarkdown), false)
	assert.Equal(t, Panes(PaneHTML, PanePreview), c.VisiblePanes())

	c.SetCtrlVisibility(Panes(PaneSwitcher), false)
	assert.False(t, c.Switcher().Visible())
	c.SetCtrlVisibility(Panes(PaneSwitcher), true)
	assert.True(t, c.Switcher().Visible())
}

func TestSetCtrlVisibilitySingleSelectsFirst(t *testing.T) {
	c, _, _ := newTestControl(t)
	c.SetSelectionMode(SingleSelection)
	assert.Equal(t, Panes(PaneMarkdown), c.VisiblePanes(), "switching mode keeps the first checked pane")

	c.SetCtrlVisibility(Panes(PaneHTML, PanePreview), true)
	assert.Equal(t, Panes(PaneHTML), c.VisiblePanes())
	assert.Equal(t, []bool{false, true, false}, c.Switcher().Values())
}

func TestUnknownPaneIsNoop(t *testing.T) {
	c, _, _ := newTestControl(t)
	before := c.VisiblePanes()
	values := c.Switcher().Values()

	c.SetCtrlVisibility(Panes(PaneID(9)), true)
	c.SetCtrlVisibility(PaneSet(1<<20), false)
	c.Click(PaneID(9))
	c.SetTheme(theme.Get(theme.NordName), Panes(PaneID(9)))

	assert.Equal(t, before, c.VisiblePanes())
	assert.Equal(t, values, c.Switcher().Values())
	assert.Equal(t, theme.DefaultDark(), c.MarkdownPane().Theme().Name)
}

func TestSingleModeClickActiveButton(t *testing.T) {
	c, _, _ := newTestControl(t)
	c.SetSelectionMode(SingleSelection)
	c.Click(PanePreview)
	c.Click(PanePreview)
	assert.Equal(t, Panes(PanePreview), c.VisiblePanes())
}

func TestSetButtonsHidesButtonsOnly(t *testing.T) {
	c, _, _ := newTestControl(t)
	c.SetButtons(Panes(PaneHTML))
	assert.False(t, c.Switcher().Button(PaneMarkdown).Visible())
	assert.True(t, c.Switcher().Button(PaneHTML).Visible())
	assert.Equal(t, Panes(PaneMarkdown, PanePreview), c.VisiblePanes())

	c.SetButtons(0)
	assert.False(t, c.Switcher().Visible())
}

func TestSetButtonStyleAndIcon(t *testing.T) {
	c, _, _ := newTestControl(t)
	c.SetButtonStyle(ButtonTextOnly, Panes(PaneHTML, PaneSwitcher))
	assert.Equal(t, "HTML", c.Switcher().Button(PaneHTML).Text())
	assert.Equal(t, ButtonTextBesideIcon, c.Switcher().Button(PaneMarkdown).Style)

	c.SetButtonIcon(Icon{Glyph: "M"}, Panes(PaneMarkdown))
	assert.Equal(t, "M Markdown", c.Switcher().Button(PaneMarkdown).Text())

	path := filepath.Join(t.TempDir(), "icon")
	require.NoError(t, os.WriteFile(path, []byte("P"), 0o600))
	require.NoError(t, c.SetButtonIconPath(path, Panes(PanePreview)))
	assert.Equal(t, "P Preview", c.Switcher().Button(PanePreview).Text())

	err := c.SetButtonIconPath(filepath.Join(t.TempDir(), "missing"), Panes(PanePreview))
	require.Error(t, err)
	assert.Equal(t, "P", c.Switcher().Button(PanePreview).Icon.Glyph)
}

func TestSetThemeTargets(t *testing.T) {
	c, _, _ := newTestControl(t)
	nord := theme.Get(theme.NordName)
	c.SetTheme(nord, Panes(PaneHTML, PaneSwitcher))

	assert.Equal(t, theme.NordName, c.HTMLPane().Theme().Name)
	assert.Equal(t, theme.NordName, c.Theme().Name)
	assert.Equal(t, theme.DefaultDark(), c.MarkdownPane().Theme().Name)
	assert.Equal(t, theme.DefaultDark(), c.Preview().Theme().Name)

	c.SetTheme(nil, AllPanes)
	assert.Equal(t, theme.NordName, c.HTMLPane().Theme().Name)
}

func TestSetThemeRecolorsSpans(t *testing.T) {
	c := New(WithLogger(func(string, ...any) {}))
	c.SetMarkdownText("# Title")
	torillic := theme.Get(theme.TorillicName)
	c.SetTheme(torillic, Panes(PaneMarkdown))

	for _, s := range c.MarkdownPane().Spans() {
		assert.Equal(t, torillic.StyleForToken(s.Kind), s.Style)
	}
}

func TestEditingUpdatesRender(t *testing.T) {
	c, _, _ := newTestControl(t)
	require.True(t, c.StartEditing())
	c.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("hi")})

	assert.Equal(t, "hi", c.MarkdownText())
	assert.Equal(t, "<p>hi</p>", c.HTMLBody())

	c.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, c.Editing())
}

func TestStartEditingNeedsVisibleMarkdown(t *testing.T) {
	c, _, _ := newTestControl(t)
	c.SetView(Panes(PanePreview))
	assert.False(t, c.StartEditing())
	assert.False(t, c.HTMLPane().StartEditing(), "html pane is read-only")
}

func TestFocusNextCyclesVisiblePanes(t *testing.T) {
	c, _, _ := newTestControl(t)
	c.SetView(AllPanes)
	c.FocusNext()
	assert.Equal(t, PaneHTML, c.Focused())
	c.FocusNext()
	assert.Equal(t, PanePreview, c.Focused())
	c.FocusNext()
	assert.Equal(t, PaneMarkdown, c.Focused())

	c.SetView(Panes(PanePreview))
	assert.Equal(t, PanePreview, c.Focused(), "focus leaves hidden panes")
}

func TestMouseClickOnButton(t *testing.T) {
	c, _, _ := newTestControl(t)
	c.SetSize(80, 20)
	c.SetOffset(0, 2)

	g := c.geometry()
	require.Len(t, g.buttons, 3)
	html := g.buttons[1]
	require.Equal(t, PaneHTML, html.id)
	assert.Equal(t, 19, html.y, "bar sits on the last row")

	c.Update(tea.MouseMsg{X: html.x, Y: html.y + 2, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.True(t, c.HTMLPane().Visible())
}

func TestGeometryAlignment(t *testing.T) {
	c, _, _ := newTestControl(t)
	c.SetSize(60, 10)
	c.SetButtonStyle(ButtonTextOnly, AllPanes)
	// "Markdown", "HTML", "Preview" plus padding and two gaps
	total := 10 + 6 + 9 + 2

	c.SetButtonsLayout(Layout{Area: TopArea, Align: AlignLeading})
	g := c.geometry()
	assert.Equal(t, 0, g.buttons[0].x)
	assert.Equal(t, 0, g.bar.y)
	assert.Equal(t, 1, g.content.y)

	c.SetButtonsLayout(Layout{Area: BottomArea, Align: AlignTrailing})
	g = c.geometry()
	last := g.buttons[2]
	assert.Equal(t, 60, last.x+last.w)

	c.SetButtonsLayout(Layout{Area: BottomArea, Align: AlignCenter})
	g = c.geometry()
	assert.Equal(t, (60-total)/2, g.buttons[0].x)

	c.SetButtonsLayout(Layout{Area: RightArea, Align: AlignLeading})
	g = c.geometry()
	assert.Equal(t, 60-10, g.bar.x)
	assert.Equal(t, 50, g.content.w)
	assert.Equal(t, []int{0, 1, 2}, []int{g.buttons[0].y, g.buttons[1].y, g.buttons[2].y})
}

func TestViewShowsPanesAndButtons(t *testing.T) {
	c, _, _ := newTestControl(t)
	c.SetButtonStyle(ButtonTextOnly, AllPanes)
	c.SetSize(80, 12)
	c.SetMarkdownText("hello world")

	out := ansi.Strip(c.View())
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 12)
	assert.Contains(t, out, "hello world")
	assert.Contains(t, lines[len(lines)-1], "Markdown")
	assert.Contains(t, lines[len(lines)-1], "Preview")

	c.SetView(0)
	assert.Contains(t, ansi.Strip(c.View()), "No view selected")
}
