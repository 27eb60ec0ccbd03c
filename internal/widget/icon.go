package widget

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	devicons "github.com/epilande/go-devicons"
)

// Icon is a pre-loaded button glyph, usually a Nerd Font code point.
type Icon struct {
	Glyph string
	Color string
}

// IsZero reports whether the icon has no glyph.
func (i Icon) IsZero() bool { return i.Glyph == "" }

const maxIconRunes = 4

// previewGlyph is nf-md-eye.
const previewGlyph = "󰈈"

type iconFileInfo struct{ name string }

func (i iconFileInfo) Name() string       { return i.name }
func (i iconFileInfo) Size() int64        { return 0 }
func (i iconFileInfo) Mode() os.FileMode  { return 0 }
func (i iconFileInfo) ModTime() time.Time { return time.Time{} }
func (i iconFileInfo) IsDir() bool        { return false }
func (i iconFileInfo) Sys() any           { return nil }

// IconForFile returns the devicon for a file name.
func IconForFile(name string) Icon {
	style := devicons.IconForInfo(iconFileInfo{name: filepath.Base(name)})
	return Icon{Glyph: style.Icon, Color: style.Color}
}

// LoadIcon reads an icon from disk. A short text file is taken as the glyph
// itself; anything else (an image from a desktop icon set, say) resolves to
// the devicon for the file's name.
func LoadIcon(path string) (Icon, error) {
	data, err := os.ReadFile(path) //nolint:gosec
	if err != nil {
		return Icon{}, fmt.Errorf("load icon %q: %w", path, err)
	}
	glyph := strings.TrimSpace(string(data))
	if glyph != "" && utf8.ValidString(glyph) && !strings.ContainsAny(glyph, "\n\r\t") &&
		utf8.RuneCountInString(glyph) <= maxIconRunes {
		return Icon{Glyph: glyph}, nil
	}
	return IconForFile(path), nil
}

func defaultIcon(id PaneID) Icon {
	switch id {
	case PaneMarkdown:
		return IconForFile("index.md")
	case PaneHTML:
		return IconForFile("index.html")
	default:
		return Icon{Glyph: previewGlyph}
	}
}
