package screen

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/chmouel/lazymd/internal/theme"
)

type helpEntry struct {
	keys string
	desc string
}

type helpSection struct {
	title   string
	entries []helpEntry
}

var helpSections = []helpSection{
	{"Views", []helpEntry{
		{"1 / 2 / 3", "toggle the Markdown, HTML and Preview buttons"},
		{"click", "toggle a button, or focus a pane"},
		{"m", "switch between multi and single selection"},
		{"tab", "focus the next visible pane"},
	}},
	{"Button bar", []helpEntry{
		{"b", "show or hide the bar"},
		{"s", "cycle the button style: icon and text, icon, text"},
		{"l", "move the bar: bottom, top, left, right"},
		{"a", "cycle the alignment: center, leading, trailing"},
	}},
	{"Editing", []helpEntry{
		{"e / enter", "edit the Markdown pane"},
		{"esc", "stop editing"},
		{"j / k, pgup / pgdown", "scroll the focused pane"},
	}},
	{"File", []helpEntry{
		{"r", "reload the file from disk"},
		{"watch", "changes on disk are reloaded unless watch=false"},
	}},
	{"Appearance", []helpEntry{
		{"t", "pick a theme, esc restores the previous one"},
		{"highlight_code", "colour code blocks in the rendered HTML"},
	}},
	{"Configuration", []helpEntry{
		{"config", "~/.config/lazymd/config.yaml or config.toml"},
		{"-C key=value", "override a setting, e.g. -C view=markdown -C view=html"},
	}},
	{"General", []helpEntry{
		{"/", "filter this help"},
		{"q / ctrl+c", "quit"},
	}},
}

// HelpScreen lists the key bindings, filtered by an optional query.
type HelpScreen struct {
	Viewport viewport.Model
	Filter   textinput.Model
	// Filtering is true while the query is being typed.
	Filtering bool
	Width     int
	Height    int
	Thm       *theme.Theme
}

func helpSize(maxWidth, maxHeight int) (int, int) {
	if maxWidth <= 0 || maxHeight <= 0 {
		return 72, 24
	}
	return min(72, max(maxWidth-4, 40)), min(32, max(maxHeight-4, 12))
}

// NewHelpScreen builds the help overlay for a terminal of the given size.
func NewHelpScreen(maxWidth, maxHeight int, thm *theme.Theme) *HelpScreen {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "filter"
	ti.CharLimit = 32

	s := &HelpScreen{Filter: ti, Thm: thm, Viewport: viewport.New(0, 0)}
	s.SetSize(maxWidth, maxHeight)
	return s
}

// Type returns TypeHelp.
func (s *HelpScreen) Type() Type { return TypeHelp }

// SetTheme restyles the help text.
func (s *HelpScreen) SetTheme(thm *theme.Theme) {
	s.Thm = thm
	s.refresh()
}

// SetSize fits the overlay to the terminal.
func (s *HelpScreen) SetSize(maxWidth, maxHeight int) {
	s.Width, s.Height = helpSize(maxWidth, maxHeight)
	s.Viewport.Width = s.Width - 4
	s.Viewport.Height = s.Height - 5
	s.Filter.Width = s.Width - 8
	s.refresh()
}

// Query returns the active filter.
func (s *HelpScreen) Query() string {
	return strings.ToLower(strings.TrimSpace(s.Filter.Value()))
}

// Update filters while typing and otherwise scrolls. Esc clears a filter
// before it closes the screen.
func (s *HelpScreen) Update(msg tea.KeyMsg) (Screen, tea.Cmd) {
	switch msg.String() {
	case keyEsc:
		if s.Filtering || s.Query() != "" {
			s.Filtering = false
			s.Filter.Blur()
			s.Filter.SetValue("")
			s.refresh()
			return s, nil
		}
		return nil, nil
	case keyEnter:
		if s.Filtering {
			s.Filtering = false
			s.Filter.Blur()
		}
		return s, nil
	}

	if s.Filtering {
		var cmd tea.Cmd
		s.Filter, cmd = s.Filter.Update(msg)
		s.refresh()
		return s, cmd
	}

	switch msg.String() {
	case keyQ, "?":
		return nil, nil
	case "/":
		s.Filtering = true
		s.Filter.Focus()
		return s, textinput.Blink
	}
	var cmd tea.Cmd
	s.Viewport, cmd = s.Viewport.Update(msg)
	return s, cmd
}

func (s *HelpScreen) refresh() {
	s.Viewport.SetContent(s.content())
	s.Viewport.GotoTop()
}

// content renders the sections with at least one entry matching the query.
func (s *HelpScreen) content() string {
	query := s.Query()
	titleStyle := lipgloss.NewStyle().Foreground(s.Thm.Accent).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(s.Thm.SuccessFg).Bold(true)
	mark := lipgloss.NewStyle().Foreground(s.Thm.AccentFg).Background(s.Thm.Accent)

	var b strings.Builder
	for _, sec := range helpSections {
		var rows []string
		for _, e := range sec.entries {
			if query != "" && !strings.Contains(strings.ToLower(e.keys+" "+e.desc), query) {
				continue
			}
			rows = append(rows, "  "+keyStyle.Render(highlight(e.keys, query, mark))+"  "+highlight(e.desc, query, mark))
		}
		if len(rows) == 0 {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(titleStyle.Render(sec.title))
		b.WriteString("\n")
		b.WriteString(strings.Join(rows, "\n"))
	}
	if b.Len() == 0 {
		return lipgloss.NewStyle().Foreground(s.Thm.MutedFg).Render("Nothing matches " + query)
	}
	return b.String()
}

// highlight marks every case-insensitive occurrence of query in text.
// query must already be lower case.
func highlight(text, query string, style lipgloss.Style) string {
	if query == "" {
		return text
	}
	lower := strings.ToLower(text)
	if len(lower) != len(text) {
		return text
	}
	var b strings.Builder
	for {
		i := strings.Index(lower, query)
		if i < 0 {
			b.WriteString(text)
			return b.String()
		}
		b.WriteString(text[:i])
		b.WriteString(style.Render(text[i : i+len(query)]))
		text, lower = text[i+len(query):], lower[i+len(query):]
	}
}

// View renders the overlay.
func (s *HelpScreen) View() string {
	title := lipgloss.NewStyle().Foreground(s.Thm.Accent).Bold(true).Render("Help")
	filter := lipgloss.NewStyle().Foreground(s.Thm.MutedFg).Render("/ to filter • esc to close")
	if s.Filtering || s.Query() != "" {
		filter = s.Filter.View()
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.Thm.Accent).
		Padding(0, 1).
		Width(s.Width - 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, title, filter, "", s.Viewport.View()))
}
