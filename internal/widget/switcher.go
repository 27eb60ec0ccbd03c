package widget

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is returned when a value list does not match the number
// of buttons.
var ErrInvalidArgument = errors.New("invalid argument")

// ToggleButton is one checkable button of the view switcher.
type ToggleButton struct {
	Pane  PaneID
	Label string
	Icon  Icon
	Style ButtonStyle

	checked bool
	visible bool
}

// Checked reports whether the button is on.
func (b *ToggleButton) Checked() bool { return b.checked }

// Visible reports whether the button is drawn in the bar.
func (b *ToggleButton) Visible() bool { return b.visible }

// Text returns what the button shows for its style.
func (b *ToggleButton) Text() string {
	switch {
	case b.Style == ButtonTextOnly || b.Icon.IsZero():
		return b.Label
	case b.Style == ButtonIconOnly:
		return b.Icon.Glyph
	default:
		return b.Icon.Glyph + " " + b.Label
	}
}

// ViewSwitcher is an ordered group of toggle buttons, one per pane. In single
// selection mode at most one button is checked at a time and clicking the
// checked button leaves it checked.
type ViewSwitcher struct {
	buttons []*ToggleButton
	mode    SelectionMode
	shown   bool
	layout  Layout

	// OnChange runs after any change to the checked state.
	OnChange func()
}

// NewViewSwitcher returns an empty, shown switcher in multi selection mode.
func NewViewSwitcher() *ViewSwitcher {
	return &ViewSwitcher{shown: true, layout: DefaultLayout()}
}

// AddButton appends a visible, unchecked button for pane.
func (v *ViewSwitcher) AddButton(pane PaneID, icon Icon, label string) *ToggleButton {
	b := &ToggleButton{Pane: pane, Label: label, Icon: icon, visible: true}
	v.buttons = append(v.buttons, b)
	return b
}

// Buttons returns the buttons in order.
func (v *ViewSwitcher) Buttons() []*ToggleButton { return v.buttons }

// Len returns the number of buttons.
func (v *ViewSwitcher) Len() int { return len(v.buttons) }

// Button returns the button for pane, or nil.
func (v *ViewSwitcher) Button(pane PaneID) *ToggleButton {
	for _, b := range v.buttons {
		if b.Pane == pane {
			return b
		}
	}
	return nil
}

// Mode returns the selection mode.
func (v *ViewSwitcher) Mode() SelectionMode { return v.mode }

// SetMode changes the selection mode. Switching to single selection keeps the
// first checked button and unchecks the rest; with nothing checked, the first
// visible button (or the first button) is checked.
func (v *ViewSwitcher) SetMode(mode SelectionMode) {
	v.mode = mode
	if mode != SingleSelection || len(v.buttons) == 0 {
		return
	}
	changed := false
	found := false
	for _, b := range v.buttons {
		if !b.checked {
			continue
		}
		if found {
			b.checked = false
			changed = true
		}
		found = true
	}
	if !found {
		first := v.buttons[0]
		for _, b := range v.buttons {
			if b.visible {
				first = b
				break
			}
		}
		first.checked = true
		changed = true
	}
	if changed {
		v.changed()
	}
}

// Layout returns where the bar is placed.
func (v *ViewSwitcher) Layout() Layout { return v.layout }

// SetLayout moves the bar.
func (v *ViewSwitcher) SetLayout(l Layout) { v.layout = l }

// Visible reports whether the bar is drawn: it must be shown and have at
// least one visible button.
func (v *ViewSwitcher) Visible() bool {
	if !v.shown {
		return false
	}
	for _, b := range v.buttons {
		if b.visible {
			return true
		}
	}
	return false
}

// Show shows or hides the whole bar.
func (v *ViewSwitcher) Show(shown bool) { v.shown = shown }

// Checked returns the panes whose buttons are on.
func (v *ViewSwitcher) Checked() PaneSet {
	var s PaneSet
	for _, b := range v.buttons {
		if b.checked {
			s = s.With(b.Pane)
		}
	}
	return s
}

// Values returns the checked state of every button in order.
func (v *ViewSwitcher) Values() []bool {
	out := make([]bool, len(v.buttons))
	for i, b := range v.buttons {
		out[i] = b.checked
	}
	return out
}

// SetValues sets the checked state of every button. A single value applies to
// all buttons; otherwise the list must have one value per button. In single
// selection mode only the first true value is kept.
func (v *ViewSwitcher) SetValues(values []bool) error {
	values, err := broadcast(values, len(v.buttons))
	if err != nil {
		return fmt.Errorf("set values: %w", err)
	}
	seen := false
	for i, b := range v.buttons {
		on := values[i]
		if v.mode == SingleSelection {
			on = on && !seen
			seen = seen || on
		}
		b.checked = on
	}
	v.changed()
	return nil
}

// SetVisibility shows or hides individual buttons with the same length rules
// as SetValues. Hidden buttons keep their checked state.
func (v *ViewSwitcher) SetVisibility(values []bool) error {
	values, err := broadcast(values, len(v.buttons))
	if err != nil {
		return fmt.Errorf("set visibility: %w", err)
	}
	for i, b := range v.buttons {
		b.visible = values[i]
	}
	return nil
}

// Click toggles the button for pane as a user click would. It reports whether
// pane has a button.
func (v *ViewSwitcher) Click(pane PaneID) bool {
	target := v.Button(pane)
	if target == nil {
		return false
	}
	if v.mode == SingleSelection {
		for _, b := range v.buttons {
			b.checked = b == target
		}
	} else {
		target.checked = !target.checked
	}
	v.changed()
	return true
}

// check sets one button without going through the selection rules.
func (v *ViewSwitcher) check(pane PaneID, on bool) {
	if b := v.Button(pane); b != nil {
		b.checked = on
	}
}

// selectOnly checks pane and unchecks every other button.
func (v *ViewSwitcher) selectOnly(pane PaneID) {
	for _, b := range v.buttons {
		b.checked = b.Pane == pane
	}
}

func (v *ViewSwitcher) changed() {
	if v.OnChange != nil {
		v.OnChange()
	}
}

func broadcast(values []bool, n int) ([]bool, error) {
	switch len(values) {
	case n:
		return values, nil
	case 1:
		out := make([]bool, n)
		for i := range out {
			out[i] = values[0]
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: got %d values for %d buttons", ErrInvalidArgument, len(values), n)
	}
}
