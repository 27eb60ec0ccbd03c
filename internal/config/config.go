// Package config loads the lazymd configuration from YAML or TOML.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/chmouel/lazymd/internal/theme"
	"github.com/chmouel/lazymd/internal/widget"
)

// AppConfig defines the lazymd configuration options.
type AppConfig struct {
	Theme         string            // UI and preview theme, see theme.Available
	EditorTheme   string            // Theme for the source panes; empty follows Theme
	PreviewCSS    string            // CSS file replacing the generated preview stylesheet
	SelectionMode string            // "multi" or "single"
	View          []string          // Panes shown at start
	Buttons       []string          // Buttons shown in the bar
	ButtonStyle   string            // "both", "icon" or "text"
	ButtonsArea   string            // "bottom", "top", "left" or "right"
	ButtonsAlign  string            // "center", "leading" or "trailing"
	Icons         map[string]string // Pane name to glyph or icon file
	HighlightCode bool              // Colour fenced code blocks in the rendered HTML
	Watch         bool              // Reload the file when it changes on disk
	DebugLog      string
}

// DefaultConfig returns the default configuration values.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		SelectionMode: "multi",
		View:          []string{"markdown", "preview"},
		Buttons:       []string{"markdown", "html", "preview"},
		ButtonStyle:   "both",
		ButtonsArea:   "bottom",
		ButtonsAlign:  "center",
		Icons:         map[string]string{},
		HighlightCode: true,
		Watch:         true,
	}
}

// normalizeList converts a scalar or sequence to a list of strings. A
// scalar may hold several comma separated items.
func normalizeList(value any) []string {
	if value == nil {
		return []string{}
	}

	var raw []string
	switch v := value.(type) {
	case string:
		raw = strings.Split(v, ",")
	case []any:
		for _, item := range v {
			if item == nil {
				continue
			}
			raw = append(raw, fmt.Sprintf("%v", item))
		}
	case []string:
		raw = v
	}

	items := []string{}
	for _, item := range raw {
		text := strings.ToLower(strings.TrimSpace(item))
		if text != "" {
			items = append(items, text)
		}
	}
	return items
}

func coerceBool(value any, defaultVal bool) bool {
	if value == nil {
		return defaultVal
	}

	switch v := value.(type) {
	case bool:
		return v
	case int:
		return v != 0
	case int64:
		return v != 0
	case string:
		text := strings.ToLower(strings.TrimSpace(v))
		switch text {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return defaultVal
}

func stringValue(data map[string]any, key string) (string, bool) {
	v, ok := data[key].(string)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}

func parseConfig(data map[string]any) *AppConfig {
	cfg := DefaultConfig()
	cfg.apply(data)
	return cfg
}

// apply overlays the keys present in data; unknown or invalid values keep
// the current setting.
func (cfg *AppConfig) apply(data map[string]any) {
	if name, ok := stringValue(data, "theme"); ok {
		if normalized := theme.Normalize(name); normalized != "" {
			cfg.Theme = normalized
		}
	}
	if name, ok := stringValue(data, "editor_theme"); ok {
		if normalized := theme.Normalize(name); normalized != "" {
			cfg.EditorTheme = normalized
		}
	}
	if css, ok := stringValue(data, "preview_css"); ok {
		cfg.PreviewCSS = css
	}
	if debugLog, ok := stringValue(data, "debug_log"); ok {
		cfg.DebugLog = debugLog
	}

	if mode, ok := stringValue(data, "selection_mode"); ok {
		if m, valid := widget.ParseSelectionMode(mode); valid {
			cfg.SelectionMode = m.String()
		}
	}
	if style, ok := stringValue(data, "button_style"); ok {
		if s, valid := widget.ParseButtonStyle(style); valid {
			cfg.ButtonStyle = s.String()
		}
	}
	if area, ok := stringValue(data, "buttons_area"); ok {
		if a, valid := widget.ParseArea(area); valid {
			cfg.ButtonsArea = a.String()
		}
	}
	if align, ok := stringValue(data, "buttons_align"); ok {
		if a, valid := widget.ParseAlign(align); valid {
			cfg.ButtonsAlign = a.String()
		}
	}

	if _, ok := data["view"]; ok {
		cfg.View = normalizeList(data["view"])
	}
	if _, ok := data["buttons"]; ok {
		cfg.Buttons = normalizeList(data["buttons"])
	}
	if icons, ok := data["icons"].(map[string]any); ok {
		if cfg.Icons == nil {
			cfg.Icons = map[string]string{}
		}
		for pane, value := range icons {
			id, known := widget.ParsePane(pane)
			text := strings.TrimSpace(fmt.Sprintf("%v", value))
			if !known || id == widget.PaneSwitcher || text == "" {
				continue
			}
			cfg.Icons[id.String()] = text
		}
	}

	if _, ok := data["highlight_code"]; ok {
		cfg.HighlightCode = coerceBool(data["highlight_code"], cfg.HighlightCode)
	}
	if _, ok := data["watch"]; ok {
		cfg.Watch = coerceBool(data["watch"], cfg.Watch)
	}
}

// ApplyCLIOverrides applies key=value overrides given on the command line.
// Repeating a key builds a list.
func (cfg *AppConfig) ApplyCLIOverrides(overrides []string) error {
	data, err := parseCLIConfigOverrides(overrides)
	if err != nil {
		return err
	}
	cfg.apply(data)
	return nil
}

func parseCLIConfigOverrides(overrides []string) (map[string]any, error) {
	result := make(map[string]any)
	icons := make(map[string]any)

	for _, override := range overrides {
		key, value, ok := strings.Cut(override, "=")
		if !ok {
			return nil, fmt.Errorf("invalid config override: %q, expected format: key=value", override)
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return nil, fmt.Errorf("empty config key in override: %q", override)
		}

		if pane, isIcon := strings.CutPrefix(key, "icons."); isIcon {
			icons[pane] = value
			result["icons"] = icons
			continue
		}

		switch existing := result[key].(type) {
		case nil:
			result[key] = value
		case string:
			result[key] = []any{existing, value}
		case []any:
			result[key] = append(existing, value)
		}
	}

	return result, nil
}

// ViewPanes returns the configured start view as a pane set.
func (cfg *AppConfig) ViewPanes() widget.PaneSet { return widget.ParsePanes(cfg.View) }

// ButtonPanes returns the configured visible buttons as a pane set.
func (cfg *AppConfig) ButtonPanes() widget.PaneSet { return widget.ParsePanes(cfg.Buttons) }

// Layout returns the configured button bar placement.
func (cfg *AppConfig) Layout() widget.Layout {
	area, _ := widget.ParseArea(cfg.ButtonsArea)
	align, _ := widget.ParseAlign(cfg.ButtonsAlign)
	return widget.Layout{Area: area, Align: align}
}

// IconPanes lists the panes with a configured icon, in a stable order.
func (cfg *AppConfig) IconPanes() []string {
	names := make([]string, 0, len(cfg.Icons))
	for name := range cfg.Icons {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func getConfigDir() string {
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return xdgConfigHome
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config")
}

// LoadConfig reads the configuration from configPath, or from
// $XDG_CONFIG_HOME/lazymd/config.{yaml,yml,toml} when configPath is empty.
// Files ending in .toml are read as TOML, everything else as YAML. A missing
// file yields the defaults.
func LoadConfig(configPath string) (*AppConfig, error) {
	var paths []string

	if configPath != "" {
		expanded, err := ExpandPath(configPath)
		if err != nil {
			return DefaultConfig(), err
		}
		paths = []string{expanded}
	} else {
		base := filepath.Join(getConfigDir(), "lazymd")
		paths = []string{
			filepath.Join(base, "config.yaml"),
			filepath.Join(base, "config.yml"),
			filepath.Join(base, "config.toml"),
		}
	}

	var cfg *AppConfig

	for _, path := range paths {
		data, err := os.ReadFile(path) //nolint:gosec
		if err != nil {
			if os.IsNotExist(err) && configPath == "" {
				continue
			}
			return DefaultConfig(), fmt.Errorf("read config: %w", err)
		}

		raw, err := decode(path, data)
		if err != nil {
			return DefaultConfig(), fmt.Errorf("parse config %s: %w", path, err)
		}

		cfg = parseConfig(raw)
		break
	}

	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.Theme == "" {
		cfg.Theme = theme.Detect()
	}
	return cfg, nil
}

func decode(path string, data []byte) (map[string]any, error) {
	var raw map[string]any
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		return raw, nil
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// ExpandPath expands a leading ~ and environment variables in path.
func ExpandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, path[1:])
	}
	return os.ExpandEnv(path), nil
}
