package widget

import "strings"

// PaneID identifies one of the control's components.
type PaneID int

// Pane identifiers.
const (
	PaneMarkdown PaneID = iota
	PaneHTML
	PanePreview
	PaneSwitcher
)

var paneNames = [...]string{"markdown", "html", "preview", "switcher"}

func (id PaneID) valid() bool { return id >= PaneMarkdown && id <= PaneSwitcher }

// String returns the configuration name of the pane.
func (id PaneID) String() string {
	if !id.valid() {
		return "unknown"
	}
	return paneNames[id]
}

// ParsePane maps a configuration name to a PaneID.
func ParsePane(name string) (PaneID, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "md", "source":
		return PaneMarkdown, true
	case "buttons", "bar":
		return PaneSwitcher, true
	}
	for i, n := range paneNames {
		if n == name {
			return PaneID(i), true
		}
	}
	return 0, false
}

// PaneSet is a set of pane identifiers. Identifiers outside the known range
// are never members, so operations given them do nothing.
type PaneSet uint32

// AllPanes holds the three content panes.
const AllPanes = PaneSet(1<<PaneMarkdown | 1<<PaneHTML | 1<<PanePreview)

var contentPanes = [...]PaneID{PaneMarkdown, PaneHTML, PanePreview}

// Panes builds a set from ids.
func Panes(ids ...PaneID) PaneSet {
	var s PaneSet
	for _, id := range ids {
		s = s.With(id)
	}
	return s
}

// ParsePanes builds a set from configuration names, ignoring unknown ones.
// The name "all" stands for every content pane.
func ParsePanes(names []string) PaneSet {
	var s PaneSet
	for _, name := range names {
		if strings.EqualFold(strings.TrimSpace(name), "all") {
			s = s.Union(AllPanes)
			continue
		}
		if id, ok := ParsePane(name); ok {
			s = s.With(id)
		}
	}
	return s
}

// Has reports whether id is a member.
func (s PaneSet) Has(id PaneID) bool {
	return id.valid() && s&(1<<uint(id)) != 0
}

// With returns s plus id.
func (s PaneSet) With(id PaneID) PaneSet {
	if !id.valid() {
		return s
	}
	return s | 1<<uint(id)
}

// Without returns s minus id.
func (s PaneSet) Without(id PaneID) PaneSet {
	if !id.valid() {
		return s
	}
	return s &^ (1 << uint(id))
}

// Union returns the members of either set.
func (s PaneSet) Union(o PaneSet) PaneSet { return s | o }

// IDs returns the known members in pane order.
func (s PaneSet) IDs() []PaneID {
	var ids []PaneID
	for id := PaneMarkdown; id <= PaneSwitcher; id++ {
		if s.Has(id) {
			ids = append(ids, id)
		}
	}
	return ids
}

// String lists the members, comma separated.
func (s PaneSet) String() string {
	ids := s.IDs()
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = id.String()
	}
	return strings.Join(names, ",")
}

// SelectionMode controls whether several panes may be shown at once.
type SelectionMode int

// Selection modes.
const (
	MultiSelection SelectionMode = iota
	SingleSelection
)

// String returns the configuration name of the mode.
func (m SelectionMode) String() string {
	if m == SingleSelection {
		return "single"
	}
	return "multi"
}

// ParseSelectionMode maps "single" or "multi" to a mode.
func ParseSelectionMode(name string) (SelectionMode, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "single":
		return SingleSelection, true
	case "multi", "multiple":
		return MultiSelection, true
	}
	return MultiSelection, false
}

// ButtonStyle selects what a toggle button shows.
type ButtonStyle int

// Button styles.
const (
	ButtonTextBesideIcon ButtonStyle = iota
	ButtonIconOnly
	ButtonTextOnly
)

// String returns the configuration name of the style.
func (s ButtonStyle) String() string {
	switch s {
	case ButtonIconOnly:
		return "icon"
	case ButtonTextOnly:
		return "text"
	default:
		return "both"
	}
}

// ParseButtonStyle maps "icon", "text" or "both" to a style.
func ParseButtonStyle(name string) (ButtonStyle, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "icon", "icon-only":
		return ButtonIconOnly, true
	case "text", "text-only":
		return ButtonTextOnly, true
	case "both", "text-beside-icon":
		return ButtonTextBesideIcon, true
	}
	return ButtonTextBesideIcon, false
}

// Area is where the button bar sits relative to the panes.
type Area int

// Button bar areas.
const (
	BottomArea Area = iota
	TopArea
	LeftArea
	RightArea
)

// String returns the configuration name of the area.
func (a Area) String() string {
	switch a {
	case TopArea:
		return "top"
	case LeftArea:
		return "left"
	case RightArea:
		return "right"
	default:
		return "bottom"
	}
}

func (a Area) vertical() bool { return a == LeftArea || a == RightArea }

// ParseArea maps "top", "bottom", "left" or "right" to an area.
func ParseArea(name string) (Area, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "bottom":
		return BottomArea, true
	case "top":
		return TopArea, true
	case "left":
		return LeftArea, true
	case "right":
		return RightArea, true
	}
	return BottomArea, false
}

// Align positions the buttons inside the bar.
type Align int

// Button alignments.
const (
	AlignCenter Align = iota
	AlignLeading
	AlignTrailing
)

// String returns the configuration name of the alignment.
func (a Align) String() string {
	switch a {
	case AlignLeading:
		return "leading"
	case AlignTrailing:
		return "trailing"
	default:
		return "center"
	}
}

// ParseAlign maps "leading", "center" or "trailing" to an alignment.
func ParseAlign(name string) (Align, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "center", "centre":
		return AlignCenter, true
	case "leading", "start":
		return AlignLeading, true
	case "trailing", "end":
		return AlignTrailing, true
	}
	return AlignCenter, false
}

// Layout places the button bar.
type Layout struct {
	Area  Area
	Align Align
}

// DefaultLayout puts the bar below the panes, centred.
func DefaultLayout() Layout {
	return Layout{Area: BottomArea, Align: AlignCenter}
}
