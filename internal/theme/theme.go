// Package theme provides the colour themes shared by the panes and the button bar.
//
// A Theme bundles three things: a UI palette used for borders and buttons, a
// chroma syntax style used to colour source panes, and the CSS placed in the
// head of the preview document. Themes are values: the With helpers return
// modified copies and never mutate the receiver.
package theme

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
)

// Theme defines every colour used by the widget.
type Theme struct {
	Name string

	Background lipgloss.Color
	Accent     lipgloss.Color
	AccentFg   lipgloss.Color // text drawn on Accent
	AccentDim  lipgloss.Color
	Border     lipgloss.Color
	BorderDim  lipgloss.Color
	MutedFg    lipgloss.Color
	TextFg     lipgloss.Color
	SuccessFg  lipgloss.Color
	WarnFg     lipgloss.Color
	ErrorFg    lipgloss.Color
	Cyan       lipgloss.Color
	Pink       lipgloss.Color
	Yellow     lipgloss.Color

	// FontFamily is optional; it only reaches the preview CSS.
	FontFamily string
	// Syntax names the chroma style used for token colouring.
	Syntax string

	css   string
	light bool
}

// TokenStyle is the formatting applied to one lexer token.
type TokenStyle struct {
	Italic    bool
	Bold      bool
	Underline bool
	Color     string // "#rrggbb"
}

// Theme names.
const (
	DraculaName         = "dracula"
	DraculaLightName    = "dracula-light"
	NarnaName           = "narna"
	CleanLightName      = "clean-light"
	SolarizedDarkName   = "solarized-dark"
	SolarizedLightName  = "solarized-light"
	GruvboxDarkName     = "gruvbox-dark"
	GruvboxLightName    = "gruvbox-light"
	NordName            = "nord"
	MonokaiName         = "monokai"
	CatppuccinMochaName = "catppuccin-mocha"
	CatppuccinLatteName = "catppuccin-latte"
	RosePineDawnName    = "rose-pine-dawn"
	OneLightName        = "one-light"
	EverforestLightName = "everforest-light"
	TorillicName        = "torillic"
)

// Get returns the named theme, or Dracula when the name is unknown.
func Get(name string) *Theme {
	if t, ok := Lookup(name); ok {
		return t
	}
	return palettes[DraculaName].theme(DraculaName)
}

// Lookup returns the named theme and whether it exists.
func Lookup(name string) (*Theme, bool) {
	p, ok := palettes[Normalize(name)]
	if !ok {
		return nil, false
	}
	return p.theme(Normalize(name)), true
}

// Normalize lowercases and trims a theme name, returning "" when unsupported.
func Normalize(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if _, ok := palettes[name]; ok {
		return name
	}
	return ""
}

// Available returns every theme name, sorted.
func Available() []string {
	names := make([]string, 0, len(palettes))
	for name := range palettes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// IsLight reports whether the theme is meant for light backgrounds.
func (t *Theme) IsLight() bool { return t.light }

// DefaultDark returns the default dark theme name.
func DefaultDark() string { return DraculaName }

// DefaultLight returns the default light theme name.
func DefaultLight() string { return DraculaLightName }

// Detect picks the default theme matching the terminal background.
func Detect() string {
	if lipgloss.HasDarkBackground() {
		return DefaultDark()
	}
	return DefaultLight()
}

// SyntaxStyle resolves the chroma style, falling back to chroma's default.
func (t *Theme) SyntaxStyle() *chroma.Style {
	return styles.Get(t.Syntax)
}

// StyleForToken returns the formatting for a token kind. Token kinds without
// an explicit colour fall back to the theme's text colour.
func (t *Theme) StyleForToken(kind chroma.TokenType) TokenStyle {
	entry := t.SyntaxStyle().Get(kind)
	ts := TokenStyle{
		Italic:    entry.Italic == chroma.Yes,
		Bold:      entry.Bold == chroma.Yes,
		Underline: entry.Underline == chroma.Yes,
		Color:     strings.ToLower(string(t.TextFg)),
	}
	if entry.Colour.IsSet() {
		ts.Color = entry.Colour.String()
	}
	return ts
}

// CSS returns the stylesheet for the preview document.
func (t *Theme) CSS() string {
	if t.css != "" {
		return t.css
	}
	return generateCSS(t)
}

// Document wraps an HTML body in a complete document carrying the theme CSS.
func (t *Theme) Document(body string) string {
	return "<head>\n<style>\n" + t.CSS() + "\n</style>\n</head>\n<body>\n" + body + "\n</body>"
}

// WithCSS returns a copy of the theme whose preview uses css verbatim.
func (t *Theme) WithCSS(css string) *Theme {
	c := *t
	c.css = css
	return &c
}

// WithFont returns a copy of the theme using the given font family.
func (t *Theme) WithFont(family string) *Theme {
	c := *t
	c.FontFamily = strings.TrimSpace(family)
	return &c
}

// WithSyntax returns a copy of the theme using another chroma style.
func (t *Theme) WithSyntax(name string) *Theme {
	c := *t
	c.Syntax = name
	return &c
}

// LoadCSS reads a stylesheet from disk for use with WithCSS.
func LoadCSS(path string) (string, error) {
	data, err := os.ReadFile(path) //nolint:gosec
	if err != nil {
		return "", fmt.Errorf("read preview css: %w", err)
	}
	return string(data), nil
}

// SyntaxStyles lists the chroma style names usable as editor themes.
func SyntaxStyles() []string {
	return styles.Names()
}
