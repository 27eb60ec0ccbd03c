package screen

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/chmouel/lazymd/internal/theme"
)

func testThemeItems() []ThemeItem {
	return []ThemeItem{
		{Name: "dracula", Description: "dark, dracula"},
		{Name: "nord", Description: "dark, nord"},
		{Name: "torillic", Description: "light, torillic"},
	}
}

func TestThemeSelectStartsOnCurrent(t *testing.T) {
	scr := NewThemeSelectScreen(testThemeItems(), "nord", 100, 40, theme.Get(theme.DraculaName))
	if scr.Cursor != 1 {
		t.Fatalf("expected cursor on nord, got %d", scr.Cursor)
	}
}

func TestThemeSelectJKNavigationPreviews(t *testing.T) {
	scr := NewThemeSelectScreen(testThemeItems(), "", 100, 40, theme.Get(theme.DraculaName))
	var previewed []string
	scr.OnCursorChange = func(item ThemeItem) { previewed = append(previewed, item.Name) }

	next, _ := scr.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	scr, ok := next.(*ThemeSelectScreen)
	if !ok || scr == nil {
		t.Fatal("expected Update to return the theme screen after j")
	}
	next, _ = scr.Update(tea.KeyMsg{Type: tea.KeyDown})
	scr = next.(*ThemeSelectScreen)
	next, _ = scr.Update(tea.KeyMsg{Type: tea.KeyDown})
	scr = next.(*ThemeSelectScreen)

	if scr.Cursor != 2 {
		t.Fatalf("expected cursor to stop at the last item, got %d", scr.Cursor)
	}
	if len(previewed) != 2 || previewed[1] != "torillic" {
		t.Fatalf("unexpected previews %v", previewed)
	}
}

func TestThemeSelectFilterAndSelect(t *testing.T) {
	scr := NewThemeSelectScreen(testThemeItems(), "", 100, 40, theme.Get(theme.DraculaName))
	var chosen string
	scr.OnSelect = func(item ThemeItem) tea.Cmd {
		chosen = item.Name
		return nil
	}

	next, _ := scr.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'f'}})
	scr = next.(*ThemeSelectScreen)
	if !scr.FilterActive {
		t.Fatal("expected filter to be active after f")
	}
	next, _ = scr.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("light")})
	scr = next.(*ThemeSelectScreen)
	if len(scr.Filtered) != 1 || scr.Filtered[0].Name != "torillic" {
		t.Fatalf("expected only torillic, got %v", scr.Filtered)
	}

	next, _ = scr.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if next != nil {
		t.Fatal("expected the screen to close on enter")
	}
	if chosen != "torillic" {
		t.Fatalf("expected torillic, got %q", chosen)
	}
}

func TestThemeSelectEscClosesFilterThenScreen(t *testing.T) {
	scr := NewThemeSelectScreen(testThemeItems(), "", 100, 40, theme.Get(theme.DraculaName))
	cancelled := false
	scr.OnCancel = func() tea.Cmd {
		cancelled = true
		return nil
	}

	next, _ := scr.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	scr = next.(*ThemeSelectScreen)
	next, _ = scr.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if next == nil {
		t.Fatal("first esc should only leave the filter")
	}
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if next != nil || !cancelled {
		t.Fatal("second esc should cancel the picker")
	}
}

func TestThemeItemsCoverAvailable(t *testing.T) {
	items := ThemeItems()
	if len(items) != len(theme.Available()) {
		t.Fatalf("expected %d items, got %d", len(theme.Available()), len(items))
	}
	for _, item := range items {
		if item.Description == "" {
			t.Errorf("theme %s has no description", item.Name)
		}
	}
}
