package app

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/chmouel/lazymd/internal/app/screen"
	"github.com/chmouel/lazymd/internal/theme"
	"github.com/chmouel/lazymd/internal/watch"
	"github.com/chmouel/lazymd/internal/widget"
)

// Update handles Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.layout()
		if hs, ok := m.screens.Current().(*screen.HelpScreen); ok {
			hs.SetSize(msg.Width, msg.Height)
		}
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case tea.MouseMsg:
		if m.screens.IsActive() {
			return m, nil
		}
		return m, m.ctl.Update(msg)

	case fileLoadedMsg:
		if msg.err != nil {
			m.debugf("load failed: %v", msg.err)
			m.showError("Load failed", msg.err)
			return m, nil
		}
		if msg.content != m.ctl.MarkdownText() {
			m.ctl.SetMarkdownText(msg.content)
		}
		m.status = "Loaded " + msg.path
		return m, nil

	case fileChangedMsg:
		if m.watcher == nil {
			return m, nil
		}
		m.watcher.ResetWaiting()
		cmds := []tea.Cmd{m.waitForFileEvent()}
		if m.ctl.Editing() {
			m.status = "File changed on disk, press r after editing to reload"
			return m, tea.Batch(cmds...)
		}
		if m.watcher.ShouldReload(time.Now()) {
			cmds = append(cmds, m.loadFile())
		} else {
			cmds = append(cmds, m.scheduleReload())
		}
		return m, tea.Batch(cmds...)

	case reloadTickMsg:
		m.reloadPending = false
		if m.ctl.Editing() {
			return m, nil
		}
		return m, m.loadFile()

	case errMsg:
		m.showError("Error", msg.err)
		return m, nil
	}

	return m, m.ctl.Update(msg)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.screens.IsActive() {
		if key.Matches(msg, m.keys.Quit) && msg.String() == "ctrl+c" {
			return m.quit()
		}
		return m.screens.HandleKey(msg)
	}

	// The editor owns the keyboard until esc.
	if m.ctl.Editing() {
		if msg.String() == "ctrl+c" {
			return m.quit()
		}
		return m.ctl.Update(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Markdown):
		m.ctl.Click(widget.PaneMarkdown)
	case key.Matches(msg, m.keys.HTML):
		m.ctl.Click(widget.PaneHTML)
	case key.Matches(msg, m.keys.Preview):
		m.ctl.Click(widget.PanePreview)
	case key.Matches(msg, m.keys.Mode):
		m.toggleSelectionMode()
	case key.Matches(msg, m.keys.Style):
		m.cycleButtonStyle()
	case key.Matches(msg, m.keys.Area):
		l := m.ctl.Switcher().Layout()
		l.Area = (l.Area + 1) % (widget.RightArea + 1)
		m.ctl.SetButtonsLayout(l)
		m.layout()
	case key.Matches(msg, m.keys.Align):
		l := m.ctl.Switcher().Layout()
		l.Align = (l.Align + 1) % (widget.AlignTrailing + 1)
		m.ctl.SetButtonsLayout(l)
	case key.Matches(msg, m.keys.Bar):
		m.ctl.SetCtrlVisibility(widget.Panes(widget.PaneSwitcher), !m.ctl.Switcher().Visible())
	case key.Matches(msg, m.keys.Theme):
		return m.showThemeSelection()
	case key.Matches(msg, m.keys.Edit):
		if !m.ctl.StartEditing() {
			m.status = "Show the Markdown pane to edit"
		}
	case key.Matches(msg, m.keys.Focus):
		m.ctl.FocusNext()
	case key.Matches(msg, m.keys.Reload):
		if m.path == "" {
			return nil
		}
		return m.loadFile()
	case key.Matches(msg, m.keys.Help):
		m.screens.Push(screen.NewHelpScreen(m.width, m.height, m.theme))
	default:
		return m.ctl.Update(msg)
	}
	return nil
}

func (m *Model) quit() tea.Cmd {
	m.quitting = true
	m.Close()
	return tea.Quit
}

func (m *Model) toggleSelectionMode() {
	mode := widget.SingleSelection
	if m.ctl.SelectionMode() == widget.SingleSelection {
		mode = widget.MultiSelection
	}
	m.ctl.SetSelectionMode(mode)
	m.status = mode.String() + " selection"
}

func (m *Model) cycleButtonStyle() {
	buttons := m.ctl.Switcher().Buttons()
	if len(buttons) == 0 {
		return
	}
	next := (buttons[0].Style + 1) % (widget.ButtonTextOnly + 1)
	m.ctl.SetButtonStyle(next, widget.AllPanes)
	m.layout()
}

func (m *Model) showThemeSelection() tea.Cmd {
	m.originalTheme = m.theme.Name
	picker := screen.NewThemeSelectScreen(screen.ThemeItems(), m.theme.Name, m.width, m.height, m.theme)
	picker.OnCursorChange = func(item screen.ThemeItem) {
		m.applyTheme(item.Name)
	}
	picker.OnSelect = func(item screen.ThemeItem) tea.Cmd {
		m.applyTheme(item.Name)
		m.config.Theme = item.Name
		m.originalTheme = ""
		m.status = "Theme " + item.Name
		return nil
	}
	picker.OnCancel = func() tea.Cmd {
		if m.originalTheme != "" {
			m.applyTheme(m.originalTheme)
			m.originalTheme = ""
		}
		return nil
	}
	m.screens.Push(picker)
	return nil
}

// applyTheme recolours the whole program. A configured editor theme keeps
// the source panes on their own colours.
func (m *Model) applyTheme(name string) {
	thm := theme.Get(name)
	m.theme = thm
	m.ctl.SetTheme(thm, widget.Panes(widget.PaneSwitcher))
	m.ctl.SetTheme(withPreviewCSS(thm, m.previewCSS), widget.Panes(widget.PanePreview))
	if m.config.EditorTheme == "" {
		m.ctl.SetTheme(thm, widget.Panes(widget.PaneMarkdown, widget.PaneHTML))
	}
	m.screens.SetTheme(thm)
	m.applyHelpStyles()
}

func (m *Model) showError(title string, err error) {
	if err == nil {
		return
	}
	m.screens.Push(screen.NewInfoScreen(title, err.Error(), m.theme))
}

func (m *Model) startWatcher() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	if err := m.watcher.Start(m.ctx); err != nil {
		m.debugf("watch disabled: %v", err)
		m.watcher = nil
		return func() tea.Msg { return errMsg{err: err} }
	}
	return m.waitForFileEvent()
}

func (m *Model) waitForFileEvent() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	events := m.watcher.NextEvent()
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-events; !ok {
			return nil
		}
		return fileChangedMsg{}
	}
}

// scheduleReload reloads the file once the debounce window has passed. A
// burst of changes inside the window shares one pending reload.
func (m *Model) scheduleReload() tea.Cmd {
	if m.reloadPending {
		return nil
	}
	m.reloadPending = true
	return tea.Tick(watch.Debounce, func(time.Time) tea.Msg { return reloadTickMsg{} })
}
