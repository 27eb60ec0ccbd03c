package screen

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/chmouel/lazymd/internal/theme"
)

// ThemeItem is one entry of the theme picker.
type ThemeItem struct {
	Name        string
	Description string
}

// ThemeItems lists every available theme with its background and syntax style.
func ThemeItems() []ThemeItem {
	names := theme.Available()
	items := make([]ThemeItem, 0, len(names))
	for _, name := range names {
		thm := theme.Get(name)
		kind := "dark"
		if thm.IsLight() {
			kind = "light"
		}
		items = append(items, ThemeItem{Name: name, Description: kind + ", " + thm.Syntax})
	}
	return items
}

// ThemeSelectScreen lets the user pick a theme, previewing it as the cursor
// moves.
type ThemeSelectScreen struct {
	Items    []ThemeItem
	Filtered []ThemeItem

	FilterInput  textinput.Model
	FilterActive bool
	Cursor       int
	ScrollOffset int
	Width        int
	Height       int
	Title        string
	Thm          *theme.Theme

	OnSelect       func(ThemeItem) tea.Cmd
	OnCancel       func() tea.Cmd
	OnCursorChange func(ThemeItem)
}

// NewThemeSelectScreen builds a picker sized to 60% of the terminal with the
// cursor on current.
func NewThemeSelectScreen(items []ThemeItem, current string, maxWidth, maxHeight int, thm *theme.Theme) *ThemeSelectScreen {
	width := max(int(float64(maxWidth)*0.6), 50)
	height := max(int(float64(maxHeight)*0.6), 12)

	ti := textinput.New()
	ti.Placeholder = "Filter themes..."
	ti.CharLimit = 64
	ti.Prompt = "> "
	ti.Blur()
	ti.Width = width - 4

	cursor := 0
	if len(items) == 0 {
		cursor = -1
	}
	for i, item := range items {
		if item.Name == current {
			cursor = i
			break
		}
	}

	s := &ThemeSelectScreen{
		Items:       items,
		Filtered:    items,
		FilterInput: ti,
		Cursor:      cursor,
		Width:       width,
		Height:      height,
		Title:       "Select theme",
		Thm:         thm,
	}
	s.ensureVisible()
	return s
}

// Type returns the screen type.
func (s *ThemeSelectScreen) Type() Type {
	return TypeThemeSelect
}

// SetTheme restyles the picker, used while previewing.
func (s *ThemeSelectScreen) SetTheme(thm *theme.Theme) {
	s.Thm = thm
}

// Update handles keyboard input and returns nil to signal the screen should close.
func (s *ThemeSelectScreen) Update(msg tea.KeyMsg) (Screen, tea.Cmd) {
	keyStr := msg.String()

	switch keyStr {
	case keyEnter:
		if s.OnSelect != nil {
			if item, ok := s.Selected(); ok {
				return nil, s.OnSelect(item)
			}
		}
		return nil, nil
	case keyCtrlC:
		return s.cancel()
	case keyEsc:
		if s.FilterActive {
			s.FilterActive = false
			s.FilterInput.Blur()
			return s, nil
		}
		return s.cancel()
	case keyUp, "ctrl+k":
		s.move(-1)
		return s, nil
	case keyDown, "ctrl+j":
		s.move(1)
		return s, nil
	}

	if !s.FilterActive {
		switch keyStr {
		case "f", "/":
			s.FilterActive = true
			s.FilterInput.Focus()
			return s, textinput.Blink
		case "k":
			s.move(-1)
		case "j":
			s.move(1)
		case keyQ:
			return s.cancel()
		}
		return s, nil
	}

	var cmd tea.Cmd
	s.FilterInput, cmd = s.FilterInput.Update(msg)
	s.applyFilter()
	return s, cmd
}

func (s *ThemeSelectScreen) cancel() (Screen, tea.Cmd) {
	if s.OnCancel != nil {
		return nil, s.OnCancel()
	}
	return nil, nil
}

func (s *ThemeSelectScreen) move(delta int) {
	next := s.Cursor + delta
	if next < 0 || next >= len(s.Filtered) {
		return
	}
	s.Cursor = next
	s.ensureVisible()
	if s.OnCursorChange != nil {
		if item, ok := s.Selected(); ok {
			s.OnCursorChange(item)
		}
	}
}

func (s *ThemeSelectScreen) ensureVisible() {
	maxVisible := s.maxVisible()
	if s.Cursor < s.ScrollOffset {
		s.ScrollOffset = max(s.Cursor, 0)
	}
	if s.Cursor >= s.ScrollOffset+maxVisible {
		s.ScrollOffset = s.Cursor - maxVisible + 1
	}
}

// Selected returns the item under the cursor, if any.
func (s *ThemeSelectScreen) Selected() (ThemeItem, bool) {
	if s.Cursor < 0 || s.Cursor >= len(s.Filtered) {
		return ThemeItem{}, false
	}
	return s.Filtered[s.Cursor], true
}

func (s *ThemeSelectScreen) applyFilter() {
	query := strings.ToLower(strings.TrimSpace(s.FilterInput.Value()))
	if query == "" {
		s.Filtered = s.Items
	} else {
		s.Filtered = []ThemeItem{}
		for _, item := range s.Items {
			if strings.Contains(item.Name, query) || strings.Contains(strings.ToLower(item.Description), query) {
				s.Filtered = append(s.Filtered, item)
			}
		}
	}

	if len(s.Filtered) == 0 {
		s.Cursor = -1
	} else if s.Cursor >= len(s.Filtered) || s.Cursor < 0 {
		s.Cursor = 0
	}
	s.ScrollOffset = 0
	s.ensureVisible()
}

func (s *ThemeSelectScreen) maxVisible() int {
	maxVisible := s.Height - 6
	if !s.FilterActive {
		maxVisible += 2
	}
	return max(maxVisible, 1)
}

// View renders the theme picker.
func (s *ThemeSelectScreen) View() string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.Thm.Accent).
		Width(s.Width)

	title := lipgloss.NewStyle().
		Foreground(s.Thm.Accent).
		Bold(true).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(s.Thm.BorderDim).
		Width(s.Width-2).
		Padding(0, 1).
		Render(s.Title)

	itemStyle := lipgloss.NewStyle().Padding(0, 1).Width(s.Width - 2)
	selectedStyle := itemStyle.
		Background(s.Thm.Accent).
		Foreground(s.Thm.AccentFg).
		Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(s.Thm.MutedFg)

	var rows []string
	end := min(s.ScrollOffset+s.maxVisible(), len(s.Filtered))
	for i := s.ScrollOffset; i < end; i++ {
		item := s.Filtered[i]
		if i == s.Cursor {
			rows = append(rows, selectedStyle.Render(fmt.Sprintf("%s  %s", item.Name, item.Description)))
			continue
		}
		rows = append(rows, itemStyle.Render(item.Name+"  "+descStyle.Render(item.Description)))
	}
	if len(s.Filtered) == 0 {
		rows = append(rows, itemStyle.Foreground(s.Thm.MutedFg).Italic(true).Render("No themes match."))
	}

	footerText := "j/k to move • f to filter • Enter to select • Esc to cancel"
	if s.FilterActive {
		footerText = "Esc to return • Enter to select"
	}
	footer := lipgloss.NewStyle().
		Foreground(s.Thm.MutedFg).
		Align(lipgloss.Right).
		Width(s.Width - 2).
		PaddingTop(1).
		Render(footerText)

	lines := []string{title}
	if s.FilterActive {
		lines = append(lines, lipgloss.NewStyle().Padding(0, 1).Render(ansi.Truncate(s.FilterInput.View(), s.Width-4, "")))
	}
	lines = append(lines, strings.Join(rows, "\n"), footer)
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
