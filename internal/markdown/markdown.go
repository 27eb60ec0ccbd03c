// Package markdown converts Markdown to HTML for the widget.
//
// Conversion goes through the Renderer interface so callers can plug in any
// interpreter. Convert never fails: a renderer error or panic is turned into
// a fixed HTML error fragment that still flows through the panes.
package markdown

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// Renderer converts Markdown source into an HTML body.
type Renderer interface {
	Convert(source string) (string, error)
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(source string) (string, error)

// Convert calls f.
func (f RendererFunc) Convert(source string) (string, error) {
	return f(source)
}

// Options configures the goldmark renderer.
type Options struct {
	// CodeStyle is the chroma style used for fenced code blocks. Empty
	// disables code highlighting.
	CodeStyle string
	// Unsafe passes raw HTML in the Markdown through unchanged.
	Unsafe bool
}

// Goldmark is the default Renderer, backed by github.com/yuin/goldmark with
// GitHub-flavoured extensions.
type Goldmark struct {
	md goldmark.Markdown
}

// New builds a goldmark renderer.
func New(opts Options) *Goldmark {
	exts := []goldmark.Extender{extension.GFM}
	if opts.CodeStyle != "" {
		exts = append(exts, highlighting.NewHighlighting(
			highlighting.WithStyle(opts.CodeStyle),
		))
	}
	var rendererOpts []renderer.Option
	if opts.Unsafe {
		rendererOpts = append(rendererOpts, gmhtml.WithUnsafe())
	}
	return &Goldmark{
		md: goldmark.New(
			goldmark.WithExtensions(exts...),
			goldmark.WithRendererOptions(rendererOpts...),
		),
	}
}

// Convert renders source to HTML with the trailing newline trimmed.
func (g *Goldmark) Convert(source string) (string, error) {
	var buf bytes.Buffer
	if err := g.md.Convert([]byte(source), &buf); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

// ErrorFragment is the HTML shown in place of a failed conversion.
func ErrorFragment(err error) string {
	return "<h1>Error</h1>\n" +
		"<p>Could not parse Markdown. Error from renderer:</p>\n" +
		"<pre><code>" + html.EscapeString(err.Error()) + "</code></pre>\n"
}

// Body converts source with r and substitutes ErrorFragment on any failure,
// including a panic inside the renderer. The returned error reports what
// went wrong; the HTML is always usable.
func Body(r Renderer, source string) (body string, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("renderer panic: %v", p)
			body = ErrorFragment(err)
		}
	}()

	body, err = r.Convert(source)
	if err != nil {
		return ErrorFragment(err), err
	}
	return body, nil
}
