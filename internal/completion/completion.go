// Package completion describes the lazymd flags and config keys for shell
// completion.
package completion

import (
	"sort"
	"strings"

	"github.com/chmouel/lazymd/internal/theme"
)

// FlagInfo contains metadata about a command-line flag for completion generation.
type FlagInfo struct {
	Name        string   // Flag name without dashes
	Description string   // Human-readable description
	HasValue    bool     // true for string flags, false for bool flags
	ValueHint   string   // Hint for value type (e.g., "PATH", "NAME")
	Values      []string // Enumerated values for completion (e.g., theme names)
}

var paneNames = []string{"markdown", "html", "preview"}

// GetFlags returns metadata for the global lazymd flags.
func GetFlags() []FlagInfo {
	return []FlagInfo{
		{
			Name:        "debug-log",
			Description: "Path to debug log file",
			HasValue:    true,
			ValueHint:   "PATH",
		},
		{
			Name:        "theme",
			Description: "Override UI theme",
			HasValue:    true,
			ValueHint:   "NAME",
			Values:      theme.Available(),
		},
		{
			Name:        "config-file",
			Description: "Path to configuration file",
			HasValue:    true,
			ValueHint:   "FILE",
		},
		{
			Name:        "selection",
			Description: "Button selection mode",
			HasValue:    true,
			ValueHint:   "MODE",
			Values:      []string{"multi", "single"},
		},
		{
			Name:        "view",
			Description: "Panes shown at start",
			HasValue:    true,
			ValueHint:   "PANE",
			Values:      append(append([]string{}, paneNames...), "all"),
		},
		{
			Name:        "watch",
			Description: "Reload the file when it changes",
		},
		{
			Name:        "config",
			Description: "Override config values",
			HasValue:    true,
			ValueHint:   "KEY=VALUE",
		},
		{
			Name:        "version",
			Description: "Print version information",
		},
	}
}

// configKeys lists the keys accepted by --config.
var configKeys = []string{
	"theme", "editor_theme", "preview_css", "selection_mode", "view", "buttons",
	"button_style", "buttons_area", "buttons_align", "icons.markdown", "icons.html",
	"icons.preview", "highlight_code", "watch", "debug_log",
}

// SuggestConfigKeys returns "key=" suggestions matching prefix.
func SuggestConfigKeys(prefix string) []string {
	var matches []string
	for _, key := range configKeys {
		if prefix == "" || strings.HasPrefix(key, prefix) {
			matches = append(matches, key+"=")
		}
	}
	return matches
}

// SuggestConfigValues returns value suggestions for a config key.
func SuggestConfigValues(key string) []string {
	switch key {
	case "theme", "editor_theme":
		return theme.Available()
	case "selection_mode":
		return []string{"multi", "single"}
	case "view", "buttons":
		return paneNames
	case "button_style":
		return []string{"both", "icon", "text"}
	case "buttons_area":
		return []string{"bottom", "top", "left", "right"}
	case "buttons_align":
		return []string{"center", "leading", "trailing"}
	case "highlight_code", "watch":
		return []string{"true", "false"}
	default:
		return nil
	}
}

// Complete returns suggestions for the word after args. A trailing value flag
// completes its values; otherwise the flags are offered.
func Complete(args []string, current string) []string {
	if len(args) > 0 {
		prev := strings.TrimLeft(args[len(args)-1], "-")
		if prev == "config" || prev == "C" {
			return completeConfig(current)
		}
		for _, f := range GetFlags() {
			if f.Name == prev || (prev == "t" && f.Name == "theme") {
				if !f.HasValue {
					break
				}
				return filterPrefix(f.Values, current)
			}
		}
	}

	var out []string
	for _, f := range GetFlags() {
		out = append(out, "--"+f.Name)
	}
	sort.Strings(out)
	return filterPrefix(out, current)
}

func completeConfig(current string) []string {
	key, value, ok := strings.Cut(current, "=")
	if !ok {
		return SuggestConfigKeys(current)
	}
	var out []string
	for _, v := range filterPrefix(SuggestConfigValues(key), value) {
		out = append(out, key+"="+v)
	}
	return out
}

func filterPrefix(values []string, prefix string) []string {
	out := []string{}
	for _, v := range values {
		if strings.HasPrefix(v, prefix) {
			out = append(out, v)
		}
	}
	return out
}
