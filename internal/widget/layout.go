package widget

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

type rect struct {
	x, y, w, h int
}

func (r rect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

type box struct {
	id PaneID
	rect
}

type geometry struct {
	bar     rect
	showBar bool
	buttons []box
	panes   []box
	content rect
}

func (g geometry) buttonAt(x, y int) (PaneID, bool) {
	for _, b := range g.buttons {
		if b.contains(x, y) {
			return b.id, true
		}
	}
	return 0, false
}

func (g geometry) paneAt(x, y int) (PaneID, bool) {
	for _, p := range g.panes {
		if p.contains(x, y) {
			return p.id, true
		}
	}
	return 0, false
}

// buttonWidth is the rendered width of a button, including its padding.
func buttonWidth(b *ToggleButton) int {
	return lipgloss.Width(b.Text()) + 2
}

func alignOffset(align Align, space, used int) int {
	free := max(space-used, 0)
	switch align {
	case AlignLeading:
		return 0
	case AlignTrailing:
		return free
	default:
		return free / 2
	}
}

// geometry computes where the bar, its buttons and the visible panes are
// drawn, relative to the control's origin.
func (c *Control) geometry() geometry {
	g := geometry{content: rect{w: c.width, h: c.height}}
	var shown []*ToggleButton
	for _, b := range c.switcher.Buttons() {
		if b.Visible() {
			shown = append(shown, b)
		}
	}

	if c.switcher.Visible() && c.width > 0 && c.height > 0 {
		g.showBar = true
		layout := c.switcher.Layout()
		if layout.Area.vertical() {
			barW := 0
			for _, b := range shown {
				barW = max(barW, buttonWidth(b))
			}
			barW = min(barW, c.width)
			g.bar = rect{w: barW, h: c.height}
			if layout.Area == RightArea {
				g.bar.x = c.width - barW
			} else {
				g.content.x = barW
			}
			g.content.w = c.width - barW
			top := alignOffset(layout.Align, c.height, len(shown))
			for i, b := range shown {
				g.buttons = append(g.buttons, box{id: b.Pane, rect: rect{x: g.bar.x, y: top + i, w: barW, h: 1}})
			}
		} else {
			g.bar = rect{w: c.width, h: 1}
			if layout.Area == TopArea {
				g.content.y = 1
			} else {
				g.bar.y = c.height - 1
			}
			g.content.h = c.height - 1
			total := 0
			for i, b := range shown {
				if i > 0 {
					total++
				}
				total += buttonWidth(b)
			}
			x := alignOffset(layout.Align, c.width, total)
			for _, b := range shown {
				w := buttonWidth(b)
				g.buttons = append(g.buttons, box{id: b.Pane, rect: rect{x: x, y: g.bar.y, w: w, h: 1}})
				x += w + 1
			}
		}
	}

	ids := c.VisiblePanes().IDs()
	if len(ids) == 0 || g.content.w <= 0 || g.content.h <= 0 {
		return g
	}
	each := g.content.w / len(ids)
	x := g.content.x
	for i, id := range ids {
		w := each
		if i == len(ids)-1 {
			w = g.content.x + g.content.w - x
		}
		g.panes = append(g.panes, box{id: id, rect: rect{x: x, y: g.content.y, w: w, h: g.content.h}})
		x += w
	}
	return g
}

// View renders the visible panes side by side with the button bar.
func (c *Control) View() string {
	if c.width <= 0 || c.height <= 0 {
		return ""
	}
	g := c.geometry()

	var content string
	if len(g.panes) == 0 {
		content = lipgloss.Place(g.content.w, max(g.content.h, 0), lipgloss.Center, lipgloss.Center,
			lipgloss.NewStyle().Foreground(c.uiTheme.MutedFg).Render("No view selected"))
	} else {
		boxes := make([]string, 0, len(g.panes))
		for _, p := range g.panes {
			boxes = append(boxes, c.renderPane(p))
		}
		content = lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
	}
	if !g.showBar {
		return content
	}

	bar := c.renderBar(g)
	switch c.switcher.Layout().Area {
	case TopArea:
		return lipgloss.JoinVertical(lipgloss.Left, bar, content)
	case LeftArea:
		return lipgloss.JoinHorizontal(lipgloss.Top, bar, content)
	case RightArea:
		return lipgloss.JoinHorizontal(lipgloss.Top, content, bar)
	default:
		return lipgloss.JoinVertical(lipgloss.Left, content, bar)
	}
}

func (c *Control) renderPane(p box) string {
	if p.w < 4 || p.h < 4 {
		return lipgloss.NewStyle().Width(p.w).Height(p.h).Render("")
	}
	innerW, innerH := p.w-2, p.h-2
	focused := c.focus == p.id

	title, body := "", ""
	switch p.id {
	case PaneMarkdown:
		c.source.SetSize(innerW, innerH-1)
		body = c.source.View()
		title = "Markdown"
		if c.source.Editing() {
			title += " (editing)"
		}
	case PaneHTML:
		c.html.SetSize(innerW, innerH-1)
		body = c.html.View()
		title = "HTML"
	case PanePreview:
		c.preview.SetSize(innerW, innerH-1)
		body = c.preview.View()
		title = "Preview"
	}
	if b := c.switcher.Button(p.id); b != nil && !b.Icon.IsZero() {
		title = b.Icon.Glyph + " " + title
	}

	titleStyle := lipgloss.NewStyle().Foreground(c.uiTheme.MutedFg)
	border := c.uiTheme.BorderDim
	if focused {
		titleStyle = lipgloss.NewStyle().Foreground(c.uiTheme.Accent).Bold(true)
		border = c.uiTheme.Accent
	}
	title = titleStyle.Render(ansi.Truncate(title, innerW, "…"))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(innerW).
		Height(innerH).
		MaxHeight(p.h).
		Render(title + "\n" + body)
}

func (c *Control) renderButton(b *ToggleButton, width int) string {
	style := lipgloss.NewStyle().Padding(0, 1).Foreground(c.uiTheme.TextFg)
	if b.Checked() {
		style = style.Background(c.uiTheme.Accent).Foreground(c.uiTheme.AccentFg).Bold(true)
	}
	text := b.Text()
	if width > 0 {
		style = style.Width(width)
		text = ansi.Truncate(text, max(width-2, 1), "…")
	}
	return style.Render(text)
}

func (c *Control) renderBar(g geometry) string {
	if c.switcher.Layout().Area.vertical() {
		lines := make([]string, g.bar.h)
		blank := strings.Repeat(" ", g.bar.w)
		for i := range lines {
			lines[i] = blank
		}
		for _, bx := range g.buttons {
			if bx.y >= 0 && bx.y < len(lines) {
				lines[bx.y] = c.renderButton(c.switcher.Button(bx.id), g.bar.w)
			}
		}
		return strings.Join(lines, "\n")
	}

	var b strings.Builder
	pos := 0
	for _, bx := range g.buttons {
		if bx.x > pos {
			b.WriteString(strings.Repeat(" ", bx.x-pos))
		}
		b.WriteString(c.renderButton(c.switcher.Button(bx.id), 0))
		pos = bx.x + bx.w
	}
	row := b.String()
	if pad := g.bar.w - lipgloss.Width(row); pad > 0 {
		row += strings.Repeat(" ", pad)
	}
	return ansi.Truncate(row, g.bar.w, "")
}
