package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chmouel/lazymd/internal/theme"
	"github.com/chmouel/lazymd/internal/widget"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.NotNil(t, cfg)
	assert.Equal(t, "multi", cfg.SelectionMode)
	assert.Equal(t, widget.Panes(widget.PaneMarkdown, widget.PanePreview), cfg.ViewPanes())
	assert.Equal(t, widget.AllPanes, cfg.ButtonPanes())
	assert.Equal(t, widget.DefaultLayout(), cfg.Layout())
	assert.True(t, cfg.HighlightCode)
	assert.True(t, cfg.Watch)
	assert.Empty(t, cfg.Theme)
	assert.Empty(t, cfg.DebugLog)
	assert.Empty(t, cfg.Icons)
}

func TestNormalizeList(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected []string
	}{
		{name: "nil input", input: nil, expected: []string{}},
		{name: "empty string", input: "", expected: []string{}},
		{name: "comma separated", input: "Markdown, html", expected: []string{"markdown", "html"}},
		{name: "yaml list", input: []any{"preview", nil, " HTML "}, expected: []string{"preview", "html"}},
		{name: "unsupported type", input: 42, expected: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, normalizeList(tt.input))
		})
	}
}

func TestCoerceBool(t *testing.T) {
	tests := []struct {
		name       string
		input      any
		defaultVal bool
		expected   bool
	}{
		{name: "nil uses default", input: nil, defaultVal: true, expected: true},
		{name: "bool", input: false, defaultVal: true, expected: false},
		{name: "int", input: 1, defaultVal: false, expected: true},
		{name: "yes", input: "yes", defaultVal: false, expected: true},
		{name: "off", input: "OFF", defaultVal: true, expected: false},
		{name: "garbage", input: "maybe", defaultVal: true, expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, coerceBool(tt.input, tt.defaultVal))
		})
	}
}

func TestParseConfig(t *testing.T) {
	cfg := parseConfig(map[string]any{
		"theme":          "Nord",
		"editor_theme":   "torillic",
		"preview_css":    " ~/style.css ",
		"selection_mode": "single",
		"view":           []any{"html"},
		"buttons":        "markdown,preview",
		"button_style":   "icon",
		"buttons_area":   "left",
		"buttons_align":  "trailing",
		"icons":          map[string]any{"markdown": "M", "switcher": "x", "bogus": "y"},
		"highlight_code": "no",
		"watch":          false,
		"debug_log":      "/tmp/lazymd.log",
	})

	assert.Equal(t, theme.NordName, cfg.Theme)
	assert.Equal(t, theme.TorillicName, cfg.EditorTheme)
	assert.Equal(t, "~/style.css", cfg.PreviewCSS)
	assert.Equal(t, "single", cfg.SelectionMode)
	assert.Equal(t, widget.Panes(widget.PaneHTML), cfg.ViewPanes())
	assert.Equal(t, widget.Panes(widget.PaneMarkdown, widget.PanePreview), cfg.ButtonPanes())
	assert.Equal(t, "icon", cfg.ButtonStyle)
	assert.Equal(t, widget.Layout{Area: widget.LeftArea, Align: widget.AlignTrailing}, cfg.Layout())
	assert.Equal(t, map[string]string{"markdown": "M"}, cfg.Icons)
	assert.False(t, cfg.HighlightCode)
	assert.False(t, cfg.Watch)
	assert.Equal(t, "/tmp/lazymd.log", cfg.DebugLog)
}

func TestParseConfigIgnoresInvalidValues(t *testing.T) {
	cfg := parseConfig(map[string]any{
		"theme":          "no-such-theme",
		"selection_mode": "several",
		"button_style":   "fancy",
		"buttons_area":   "middle",
		"buttons_align":  "justify",
		"watch":          "perhaps",
	})

	defaults := DefaultConfig()
	assert.Empty(t, cfg.Theme)
	assert.Equal(t, defaults.SelectionMode, cfg.SelectionMode)
	assert.Equal(t, defaults.ButtonStyle, cfg.ButtonStyle)
	assert.Equal(t, defaults.Layout(), cfg.Layout())
	assert.True(t, cfg.Watch)
}

func TestApplyCLIOverrides(t *testing.T) {
	cfg := DefaultConfig()
	err := cfg.ApplyCLIOverrides([]string{
		"theme=monokai",
		"view=markdown",
		"view=html",
		"icons.preview=P",
		"watch=false",
	})
	require.NoError(t, err)

	assert.Equal(t, theme.MonokaiName, cfg.Theme)
	assert.Equal(t, []string{"markdown", "html"}, cfg.View)
	assert.Equal(t, "P", cfg.Icons["preview"])
	assert.False(t, cfg.Watch)
	assert.Equal(t, DefaultConfig().Buttons, cfg.Buttons, "keys not overridden are untouched")
}

func TestApplyCLIOverridesErrors(t *testing.T) {
	tests := []string{"theme", "=value"}
	for _, override := range tests {
		t.Run(override, func(t *testing.T) {
			cfg := DefaultConfig()
			assert.Error(t, cfg.ApplyCLIOverrides([]string{override}))
		})
	}
}

func TestLoadConfigFromXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "lazymd"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lazymd", "config.yml"), []byte("theme: gruvbox-dark\nbuttons_area: top\n"), 0o600))

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, theme.GruvboxDarkName, cfg.Theme)
	assert.Equal(t, widget.TopArea, cfg.Layout().Area)
}

func TestLoadConfigExplicitPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("theme: nord\nselection_mode: single\n"), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, theme.NordName, cfg.Theme)
	assert.Equal(t, "single", cfg.SelectionMode)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("theme: [unclosed\n"), 0o600))
	cfg, err := LoadConfig(path)
	require.Error(t, err)
	assert.NotNil(t, cfg)
}

func TestLoadConfigMissingDefaultFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.NotEmpty(t, cfg.Theme, "theme is detected when not configured")
}

func TestLoadConfigTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `theme = "nord"
view = ["markdown", "html"]
watch = false

[icons]
preview = "P"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, theme.NordName, cfg.Theme)
	assert.Equal(t, widget.Panes(widget.PaneMarkdown, widget.PaneHTML), cfg.ViewPanes())
	assert.False(t, cfg.Watch)
	assert.Equal(t, "P", cfg.Icons["preview"])
}

func TestLoadConfigTOMLError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("theme = \n"), 0o600))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}
