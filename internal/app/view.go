package app

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/chmouel/lazymd/internal/app/screen"
)

const (
	headerHeight = 1
	footerHeight = 1
)

// layout sizes the control to the window below the header.
func (m *Model) layout() {
	m.ctl.SetOffset(0, headerHeight)
	m.ctl.SetSize(m.width, max(m.height-headerHeight-footerHeight, 0))
}

func (m *Model) applyHelpStyles() {
	m.help.Styles.ShortKey = lipgloss.NewStyle().Foreground(m.theme.Accent).Bold(true)
	m.help.Styles.ShortDesc = lipgloss.NewStyle().Foreground(m.theme.TextFg)
	m.help.Styles.ShortSeparator = lipgloss.NewStyle().Foreground(m.theme.MutedFg)
	m.help.Styles.FullKey = m.help.Styles.ShortKey
	m.help.Styles.FullDesc = m.help.Styles.ShortDesc
	m.help.Styles.FullSeparator = m.help.Styles.ShortSeparator
}

// View renders the program.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	body := truncateToHeight(m.ctl.View(), m.height-headerHeight-footerHeight)
	base := lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), body, m.renderFooter())

	if !m.screens.IsActive() {
		return base
	}
	scr := m.screens.Current()
	switch scr.Type() {
	case screen.TypeInfo:
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, scr.View())
	default:
		return overlayPopup(base, scr.View(), 2)
	}
}

func (m *Model) renderHeader() string {
	style := lipgloss.NewStyle().
		Background(m.theme.AccentDim).
		Foreground(m.theme.TextFg).
		Bold(true).
		Width(m.width).
		Padding(0, 2).
		Align(lipgloss.Center)

	title := "lazymd"
	if m.path != "" {
		title = fmt.Sprintf("%s  •  %s", title, filepath.Base(m.path))
	}
	if m.ctl.Editing() {
		title += "  •  editing"
	}
	return style.Render(ansi.Truncate(title, max(m.width-4, 0), "…"))
}

func (m *Model) renderFooter() string {
	style := lipgloss.NewStyle().
		Foreground(m.theme.TextFg).
		Background(m.theme.BorderDim).
		Padding(0, 1).
		Width(m.width)

	var line string
	switch {
	case m.ctl.Editing():
		line = m.help.ShortHelpView([]key.Binding{
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "stop editing")),
			key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		})
	case m.status != "":
		line = m.status + "  " + m.help.View(m.keys)
	default:
		line = m.help.View(m.keys)
	}
	return style.Render(ansi.Truncate(line, max(m.width-2, 0), "…"))
}

func truncateToHeight(s string, height int) string {
	if height <= 0 {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) <= height {
		return s
	}
	return strings.Join(lines[:height], "\n")
}

// overlayPopup draws popup centred over base starting at marginTop, keeping
// the base visible on both sides.
func overlayPopup(base, popup string, marginTop int) string {
	if base == "" || popup == "" {
		return base
	}

	baseLines := strings.Split(base, "\n")
	popupLines := strings.Split(popup, "\n")

	baseWidth := lipgloss.Width(baseLines[0])
	popupWidth := lipgloss.Width(popupLines[0])
	leftPad := max((baseWidth-popupWidth)/2, 0)

	for i, line := range popupLines {
		row := marginTop + i
		if row >= len(baseLines) {
			break
		}

		leftPart := ansi.Truncate(baseLines[row], leftPad, "")
		if w := lipgloss.Width(leftPart); w < leftPad {
			leftPart += strings.Repeat(" ", leftPad-w)
		}
		rightPart := ansi.TruncateLeft(baseLines[row], leftPad+popupWidth, "")

		newLine := leftPart + line + rightPart
		if w := lipgloss.Width(newLine); w < baseWidth {
			newLine += strings.Repeat(" ", baseWidth-w)
		}
		baseLines[row] = newLine
	}

	return strings.Join(baseLines, "\n")
}
