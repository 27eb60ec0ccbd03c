package screen

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/chmouel/lazymd/internal/theme"
)

func TestNewManager(t *testing.T) {
	m := NewManager()
	if m == nil {
		t.Fatal("expected non-nil manager")
	}
	if m.IsActive() {
		t.Error("expected new manager to have no active screen")
	}
	if m.Type() != TypeNone {
		t.Errorf("expected TypeNone, got %v", m.Type())
	}
}

func TestManagerPushPop(t *testing.T) {
	m := NewManager()
	thm := theme.Get(theme.DraculaName)

	help := NewHelpScreen(100, 40, thm)
	m.Push(help)

	if !m.IsActive() {
		t.Error("expected manager to be active after push")
	}
	if m.Type() != TypeHelp {
		t.Errorf("expected TypeHelp, got %v", m.Type())
	}

	info := NewInfoScreen("Error", "boom", thm)
	m.Push(info)

	if m.Type() != TypeInfo {
		t.Errorf("expected TypeInfo, got %v", m.Type())
	}
	if m.StackDepth() != 1 {
		t.Errorf("expected stack depth 1, got %d", m.StackDepth())
	}

	if popped := m.Pop(); popped != info {
		t.Error("expected to pop the info screen")
	}
	if m.Type() != TypeHelp {
		t.Errorf("expected TypeHelp after pop, got %v", m.Type())
	}
	if popped := m.Pop(); popped != help {
		t.Error("expected to pop the help screen")
	}
	if m.IsActive() {
		t.Error("expected manager to be inactive after popping all screens")
	}
}

func TestManagerPushNilIgnored(t *testing.T) {
	m := NewManager()
	m.Push(nil)
	if m.IsActive() {
		t.Error("pushing nil must not activate the manager")
	}
}

func TestManagerClear(t *testing.T) {
	m := NewManager()
	thm := theme.Get(theme.DraculaName)

	m.Push(NewHelpScreen(100, 40, thm))
	m.Push(NewInfoScreen("", "info", thm))
	m.Clear()

	if m.IsActive() {
		t.Error("expected manager to be inactive after clear")
	}
	if m.StackDepth() != 0 {
		t.Errorf("expected empty stack, got %d", m.StackDepth())
	}
}

func TestManagerHandleKeyPopsClosedScreen(t *testing.T) {
	m := NewManager()
	thm := theme.Get(theme.DraculaName)
	m.Push(NewHelpScreen(100, 40, thm))
	m.Push(NewInfoScreen("", "info", thm))

	m.HandleKey(tea.KeyMsg{Type: tea.KeyEnter})
	if m.Type() != TypeHelp {
		t.Fatalf("expected help screen after closing info, got %v", m.Type())
	}
	m.HandleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if m.IsActive() {
		t.Fatal("expected no screen after q on help")
	}
	if cmd := m.HandleKey(tea.KeyMsg{Type: tea.KeyEnter}); cmd != nil {
		t.Error("expected nil command with no active screen")
	}
}

func TestManagerSetThemePropagates(t *testing.T) {
	m := NewManager()
	dracula := theme.Get(theme.DraculaName)
	nord := theme.Get(theme.NordName)

	info := NewInfoScreen("", "info", dracula)
	picker := NewThemeSelectScreen(ThemeItems(), theme.DraculaName, 100, 40, dracula)
	m.Push(info)
	m.Push(picker)

	m.SetTheme(nord)
	if info.Thm != nord || picker.Thm != nord {
		t.Error("expected every stacked screen to use the new theme")
	}
}

func TestTypeString(t *testing.T) {
	tests := map[Type]string{
		TypeNone:        "none",
		TypeInfo:        "info",
		TypeHelp:        "help",
		TypeThemeSelect: "theme-select",
		Type(99):        "unknown",
	}
	for typ, want := range tests {
		if got := typ.String(); got != want {
			t.Errorf("Type(%d).String() = %q, want %q", int(typ), got, want)
		}
	}
}
