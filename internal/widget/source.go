package widget

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wrap"

	"github.com/chmouel/lazymd/internal/lexer"
	"github.com/chmouel/lazymd/internal/theme"
)

// StyledSpan is a lexer span with the formatting the pane's theme gives it.
type StyledSpan struct {
	lexer.Span
	Style theme.TokenStyle
}

// SourcePane shows Markdown or HTML text coloured by a lexer. Styling is
// lazy: while hidden the pane only records that its spans are stale, and the
// spans are recomputed once when it becomes visible again.
type SourcePane struct {
	id       PaneID
	language string
	readOnly bool

	content  string
	thm      *theme.Theme
	styler   lexer.Styler
	spans    []StyledSpan
	visible  bool
	stale    bool
	restyles int

	// onChange runs after every content change.
	onChange func(string)

	styleCache map[theme.TokenStyle]lipgloss.Style
	viewport   viewport.Model
	editor     textarea.Model
	editing    bool
	width      int
	height     int
}

// NewSourcePane returns a hidden pane for language.
func NewSourcePane(id PaneID, language string, readOnly bool, styler lexer.Styler, thm *theme.Theme) *SourcePane {
	ed := textarea.New()
	ed.Prompt = ""
	ed.ShowLineNumbers = false
	ed.CharLimit = 0
	ed.MaxHeight = 0
	p := &SourcePane{
		id:       id,
		language: language,
		readOnly: readOnly,
		styler:   styler,
		viewport: viewport.New(0, 0),
		editor:   ed,
	}
	p.SetTheme(thm)
	return p
}

// ID returns the pane identifier.
func (p *SourcePane) ID() PaneID { return p.id }

// Language returns the lexer language name.
func (p *SourcePane) Language() string { return p.language }

// ReadOnly reports whether the pane refuses editing.
func (p *SourcePane) ReadOnly() bool { return p.readOnly }

// Content returns the current text.
func (p *SourcePane) Content() string { return p.content }

// SetContent replaces the text, restyles when visible and notifies the change
// listener.
func (p *SourcePane) SetContent(text string) {
	p.content = text
	if p.editing && p.editor.Value() != text {
		p.editor.SetValue(text)
	}
	p.Restyle()
	if p.onChange != nil {
		p.onChange(text)
	}
}

// Theme returns the pane theme.
func (p *SourcePane) Theme() *theme.Theme { return p.thm }

// SetTheme switches the token colours and restyles when visible.
func (p *SourcePane) SetTheme(thm *theme.Theme) {
	if thm == nil {
		return
	}
	p.thm = thm
	p.styleCache = make(map[theme.TokenStyle]lipgloss.Style)
	p.applyEditorTheme()
	p.Restyle()
}

// Restyle recomputes the token spans, or marks them stale while hidden.
func (p *SourcePane) Restyle() {
	if !p.visible {
		p.stale = true
		return
	}
	p.stale = false
	p.restyles++
	raw := lexer.Spans(p.styler, p.content, p.language)
	p.spans = make([]StyledSpan, len(raw))
	for i, s := range raw {
		p.spans[i] = StyledSpan{Span: s, Style: p.thm.StyleForToken(s.Kind)}
	}
	p.refreshViewport()
}

// Restyles counts how many times the spans were recomputed.
func (p *SourcePane) Restyles() int { return p.restyles }

// Spans returns the spans from the last restyle.
func (p *SourcePane) Spans() []StyledSpan { return p.spans }

// Visible reports whether the pane is shown.
func (p *SourcePane) Visible() bool { return p.visible }

// SetVisible shows or hides the pane. Becoming visible triggers one restyle.
func (p *SourcePane) SetVisible(visible bool) {
	was := p.visible
	p.visible = visible
	if visible && !was {
		p.Restyle()
	}
}

// Editing reports whether keystrokes go to the editor.
func (p *SourcePane) Editing() bool { return p.editing }

// StartEditing hands keystrokes to the embedded editor. Read-only panes
// refuse.
func (p *SourcePane) StartEditing() bool {
	if p.readOnly {
		return false
	}
	p.editing = true
	p.editor.SetValue(p.content)
	p.editor.Focus()
	return true
}

// StopEditing returns the pane to the styled, scrollable view.
func (p *SourcePane) StopEditing() {
	p.editing = false
	p.editor.Blur()
}

// SetSize sets the inner size of the pane.
func (p *SourcePane) SetSize(width, height int) {
	if width == p.width && height == p.height {
		return
	}
	p.width, p.height = max(width, 1), max(height, 1)
	p.viewport.Width = p.width
	p.viewport.Height = p.height
	p.editor.SetWidth(p.width)
	p.editor.SetHeight(p.height)
	p.refreshViewport()
}

// Update routes a message to the editor while editing and to the viewport
// otherwise.
func (p *SourcePane) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if !p.editing {
		p.viewport, cmd = p.viewport.Update(msg)
		return cmd
	}
	p.editor, cmd = p.editor.Update(msg)
	if v := p.editor.Value(); v != p.content {
		p.SetContent(v)
	}
	return cmd
}

// View renders the pane body.
func (p *SourcePane) View() string {
	if p.editing {
		return p.editor.View()
	}
	return p.viewport.View()
}

func (p *SourcePane) refreshViewport() {
	if p.width <= 0 || !p.visible {
		return
	}
	// A bare \r would send the terminal cursor back over the line.
	text := strings.ReplaceAll(p.styledText(), "\r", "")
	p.viewport.SetContent(wrap.String(text, p.width))
}

// styledText renders the content using the current spans. Text not covered
// by a span, such as skipped leading newlines, is written plain.
func (p *SourcePane) styledText() string {
	runes := []rune(p.content)
	var b strings.Builder
	pos := 0
	for _, s := range p.spans {
		if s.Start > pos {
			b.WriteString(string(runes[pos:s.Start]))
		}
		p.writeStyled(&b, string(runes[s.Start:s.End]), s.Style)
		pos = s.End
	}
	if pos < len(runes) {
		b.WriteString(string(runes[pos:]))
	}
	return b.String()
}

func (p *SourcePane) writeStyled(b *strings.Builder, text string, ts theme.TokenStyle) {
	style := p.lipglossStyle(ts)
	// Style each line separately so lipgloss never pads a multi-line token.
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			b.WriteByte('\n')
		}
		if line != "" {
			b.WriteString(style.Render(line))
		}
	}
}

func (p *SourcePane) lipglossStyle(ts theme.TokenStyle) lipgloss.Style {
	if s, ok := p.styleCache[ts]; ok {
		return s
	}
	s := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ts.Color)).
		Bold(ts.Bold).
		Italic(ts.Italic).
		Underline(ts.Underline)
	p.styleCache[ts] = s
	return s
}

func (p *SourcePane) applyEditorTheme() {
	focused, blurred := textarea.DefaultStyles()
	focused.Text = lipgloss.NewStyle().Foreground(p.thm.TextFg)
	focused.Placeholder = lipgloss.NewStyle().Foreground(p.thm.MutedFg).Italic(true)
	focused.CursorLine = lipgloss.NewStyle().Foreground(p.thm.TextFg).Background(p.thm.AccentDim)
	focused.EndOfBuffer = lipgloss.NewStyle().Foreground(p.thm.MutedFg)
	blurred.Text = focused.Text
	p.editor.FocusedStyle = focused
	p.editor.BlurredStyle = blurred
}
