package app

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the application bindings. Keys not bound here reach the
// focused pane.
type keyMap struct {
	Quit     key.Binding
	Markdown key.Binding
	HTML     key.Binding
	Preview  key.Binding
	Mode     key.Binding
	Style    key.Binding
	Area     key.Binding
	Align    key.Binding
	Bar      key.Binding
	Theme    key.Binding
	Edit     key.Binding
	Focus    key.Binding
	Reload   key.Binding
	Help     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Markdown: key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "markdown")),
		HTML:     key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "html")),
		Preview:  key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "preview")),
		Mode:     key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "single/multi")),
		Style:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "button style")),
		Area:     key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "move bar")),
		Align:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "align bar")),
		Bar:      key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "toggle bar")),
		Theme:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		Edit:     key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit")),
		Focus:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "focus")),
		Reload:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	}
}

// ShortHelp implements help.KeyMap for the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Markdown, k.HTML, k.Preview, k.Edit, k.Mode, k.Theme, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Markdown, k.HTML, k.Preview, k.Focus},
		{k.Mode, k.Style, k.Area, k.Align, k.Bar},
		{k.Edit, k.Reload, k.Theme, k.Help, k.Quit},
	}
}
