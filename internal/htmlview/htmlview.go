// Package htmlview renders an HTML document as styled terminal text.
//
// It understands the subset of HTML that Markdown renderers emit: headings,
// paragraphs, lists, block quotes, code blocks, tables, rules, links and the
// usual inline emphasis. Everything inside <head> is ignored.
package htmlview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/chmouel/lazymd/internal/theme"
)

// Render parses doc and lays it out for a terminal of the given width.
func Render(doc string, width int, thm *theme.Theme) (string, error) {
	root, err := html.Parse(strings.NewReader(doc))
	if err != nil {
		return "", fmt.Errorf("parse preview document: %w", err)
	}
	if width < 10 {
		width = 10
	}
	r := &renderer{width: width, styles: newStyles(thm)}
	if body := find(root, atom.Body); body != nil {
		r.blocks(body, 0)
	}
	return strings.TrimRight(strings.Join(r.out, "\n"), "\n"), nil
}

type styles struct {
	text    lipgloss.Style
	heading []lipgloss.Style
	code    lipgloss.Style
	block   lipgloss.Style
	link    lipgloss.Style
	quote   lipgloss.Style
	rule    lipgloss.Style
	muted   lipgloss.Style
}

func newStyles(thm *theme.Theme) styles {
	h := lipgloss.NewStyle().Foreground(thm.Accent).Bold(true)
	return styles{
		text: lipgloss.NewStyle().Foreground(thm.TextFg),
		heading: []lipgloss.Style{
			h.Underline(true),
			h,
			h.Foreground(thm.Cyan),
			h.Foreground(thm.Cyan).Bold(false),
		},
		code:  lipgloss.NewStyle().Foreground(thm.Yellow).Background(thm.AccentDim),
		block: lipgloss.NewStyle().Foreground(thm.TextFg).Background(thm.AccentDim),
		link:  lipgloss.NewStyle().Foreground(thm.Pink).Underline(true),
		quote: lipgloss.NewStyle().Foreground(thm.MutedFg).Italic(true),
		rule:  lipgloss.NewStyle().Foreground(thm.BorderDim),
		muted: lipgloss.NewStyle().Foreground(thm.MutedFg),
	}
}

type renderer struct {
	width  int
	styles styles
	out    []string
}

func (r *renderer) emit(text string, depth int) {
	avail := max(r.width-depth*2, 4)
	wrapped := wrap.String(wordwrap.String(text, avail), avail)
	if depth > 0 {
		wrapped = indent.String(wrapped, uint(depth*2))
	}
	r.out = append(r.out, wrapped)
}

func (r *renderer) gap() {
	if len(r.out) > 0 && r.out[len(r.out)-1] != "" {
		r.out = append(r.out, "")
	}
}

// blocks renders the block-level children of n.
func (r *renderer) blocks(n *html.Node, depth int) {
	var pending []*html.Node
	flush := func() {
		if len(pending) == 0 {
			return
		}
		text := strings.TrimSpace(r.inlines(pending))
		pending = nil
		if text != "" {
			r.emit(text, depth)
			r.gap()
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !isBlock(c) {
			pending = append(pending, c)
			continue
		}
		flush()
		r.block(c, depth)
	}
	flush()
}

func (r *renderer) block(n *html.Node, depth int) {
	switch n.DataAtom {
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		level := int(n.Data[1] - '0')
		style := r.styles.heading[min(level, len(r.styles.heading))-1]
		prefix := strings.Repeat("#", level) + " "
		r.emit(style.Render(prefix+strings.TrimSpace(plain(n))), depth)
		r.gap()
	case atom.P:
		r.emit(strings.TrimSpace(r.inlines(children(n))), depth)
		r.gap()
	case atom.Pre:
		r.pre(n, depth)
		r.gap()
	case atom.Blockquote:
		start := len(r.out)
		r.blocks(n, depth+1)
		for i := start; i < len(r.out); i++ {
			lines := strings.Split(r.out[i], "\n")
			for j, line := range lines {
				if line != "" {
					lines[j] = r.styles.quote.Render("│ " + strings.TrimLeft(line, " "))
				}
			}
			r.out[i] = strings.Join(lines, "\n")
		}
		r.gap()
	case atom.Ul, atom.Ol:
		r.list(n, depth)
		r.gap()
	case atom.Hr:
		r.out = append(r.out, r.styles.rule.Render(strings.Repeat("─", max(r.width-depth*2, 1))))
		r.gap()
	case atom.Table:
		r.table(n, depth)
		r.gap()
	default:
		r.blocks(n, depth)
	}
}

func (r *renderer) pre(n *html.Node, depth int) {
	code := strings.TrimRight(plain(n), "\n")
	lines := strings.Split(code, "\n")
	inner := 0
	for _, line := range lines {
		inner = max(inner, lipgloss.Width(line))
	}
	inner = min(inner, max(r.width-depth*2-2, 1))
	for i, line := range lines {
		line = wrap.String(line, inner)
		lines[i] = r.styles.block.Width(inner + 2).Padding(0, 1).Render(line)
	}
	r.out = append(r.out, indent.String(strings.Join(lines, "\n"), uint(depth*2)))
}

func (r *renderer) list(n *html.Node, depth int) {
	ordered := n.DataAtom == atom.Ol
	index := 1
	for li := n.FirstChild; li != nil; li = li.NextSibling {
		if li.DataAtom != atom.Li {
			continue
		}
		marker := "• "
		if ordered {
			marker = fmt.Sprintf("%d. ", index)
			index++
		}
		marker = taskMarker(li, marker)

		var inline, nested []*html.Node
		for c := li.FirstChild; c != nil; c = c.NextSibling {
			switch {
			case c.DataAtom == atom.P:
				inline = append(inline, children(c)...)
			case isBlock(c):
				nested = append(nested, c)
			default:
				inline = append(inline, c)
			}
		}
		r.emit(r.styles.muted.Render(strings.TrimSpace(marker))+" "+strings.TrimSpace(r.inlines(inline)), depth)
		for _, c := range nested {
			r.block(c, depth+1)
		}
	}
}

func taskMarker(li *html.Node, marker string) string {
	for c := li.FirstChild; c != nil; c = c.NextSibling {
		if c.DataAtom == atom.Input && attr(c, "type") == "checkbox" {
			for _, a := range c.Attr {
				if a.Key == "checked" {
					return "[x] "
				}
			}
			return "[ ] "
		}
	}
	return marker
}

func (r *renderer) table(n *html.Node, depth int) {
	var rows [][]string
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			if c.DataAtom == atom.Tr {
				var row []string
				for cell := c.FirstChild; cell != nil; cell = cell.NextSibling {
					if cell.DataAtom == atom.Td || cell.DataAtom == atom.Th {
						row = append(row, strings.TrimSpace(r.inlines(children(cell))))
					}
				}
				rows = append(rows, row)
				continue
			}
			walk(c)
		}
	}
	walk(n)

	for i, row := range rows {
		r.emit(strings.Join(row, r.styles.rule.Render(" │ ")), depth)
		if i == 0 && len(rows) > 1 {
			r.out = append(r.out, r.styles.rule.Render(strings.Repeat("─", max(r.width-depth*2, 1))))
		}
	}
}

// inlines renders a run of inline nodes to a single styled string.
func (r *renderer) inlines(nodes []*html.Node) string {
	var b strings.Builder
	for _, n := range nodes {
		r.inline(&b, n)
	}
	return b.String()
}

func (r *renderer) inline(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(r.styles.text.Render(collapse(n.Data)))
		return
	case html.ElementNode:
	default:
		return
	}

	switch n.DataAtom {
	case atom.Strong, atom.B:
		b.WriteString(lipgloss.NewStyle().Bold(true).Render(plain(n)))
	case atom.Em, atom.I:
		b.WriteString(lipgloss.NewStyle().Italic(true).Render(plain(n)))
	case atom.Del, atom.S:
		b.WriteString(lipgloss.NewStyle().Strikethrough(true).Render(plain(n)))
	case atom.Code:
		b.WriteString(r.styles.code.Render(plain(n)))
	case atom.A:
		text := plain(n)
		b.WriteString(r.styles.link.Render(text))
		if href := attr(n, "href"); href != "" && href != text {
			b.WriteString(r.styles.muted.Render(" (" + href + ")"))
		}
	case atom.Img:
		b.WriteString(r.styles.muted.Render("[image: " + attr(n, "alt") + "]"))
	case atom.Br:
		b.WriteString("\n")
	case atom.Input:
	default:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			r.inline(b, c)
		}
	}
}

func isBlock(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	switch n.DataAtom {
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6,
		atom.P, atom.Pre, atom.Blockquote, atom.Ul, atom.Ol, atom.Hr,
		atom.Table, atom.Div, atom.Main, atom.Section, atom.Article:
		return true
	}
	return false
}

func children(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, c)
	}
	return out
}

// plain returns the text content of n with whitespace preserved.
func plain(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(plain(c))
	}
	return b.String()
}

func collapse(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		if s == "" {
			return ""
		}
		return " "
	}
	out := strings.Join(fields, " ")
	if strings.TrimLeft(s, " \t\n") != s {
		out = " " + out
	}
	if strings.TrimRight(s, " \t\n") != s {
		out += " "
	}
	return out
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func find(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := find(c, a); found != nil {
			return found
		}
	}
	return nil
}
