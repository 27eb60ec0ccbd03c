// Package screen provides the modal overlays drawn above the Markdown control.
package screen

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/chmouel/lazymd/internal/theme"
)

// Screen represents a modal screen overlay that can handle input and render itself.
type Screen interface {
	// Update processes a key message and returns the updated screen and any command.
	// Returning nil for the Screen signals that this screen should be closed.
	Update(msg tea.KeyMsg) (Screen, tea.Cmd)

	// View renders the screen's content.
	View() string

	// Type returns the screen's type identifier.
	Type() Type
}

// Themed is implemented by screens that restyle when the theme changes.
type Themed interface {
	SetTheme(thm *theme.Theme)
}

// Type identifies the kind of screen being displayed.
type Type int

// Screen type constants.
const (
	TypeNone Type = iota
	TypeInfo
	TypeHelp
	TypeThemeSelect
)

// String returns a human-readable name for the screen type.
func (t Type) String() string {
	switch t {
	case TypeNone:
		return "none"
	case TypeInfo:
		return "info"
	case TypeHelp:
		return "help"
	case TypeThemeSelect:
		return "theme-select"
	default:
		return "unknown"
	}
}

const (
	keyEnter = "enter"
	keyEsc   = "esc"
	keyQ     = "q"
	keyCtrlC = "ctrl+c"
	keyUp    = "up"
	keyDown  = "down"
)
