package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// quitMsg ends the program
type quitMsg struct{}

type menuItem struct {
	label  string
	target navigateMsg
}

var menuItems = []menuItem{
	{label: "1. Begin a new study session.", target: navigateMsg{to: screenSubjects}},
	{label: "2. Add a new subject.", target: navigateMsg{to: screenSubjects, adding: true}},
	{label: "3. View study sessions' table.", target: navigateMsg{to: screenSessions}},
	{label: "4. View summary.", target: navigateMsg{to: screenSummary}},
}

type menuModel struct {
	theme    Theme
	selected int

	// quit confirmation modal
	confirming bool
	quitFocus  bool // true when "Quit" is focused, false for "Cancel"
}

func newMenuModel(theme Theme) menuModel {
	return menuModel{theme: theme}
}

func (m menuModel) update(msg tea.Msg) (menuModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.confirming {
		return m.updateConfirm(key)
	}

	switch key.String() {
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
	case "down", "j":
		if m.selected < len(menuItems)-1 {
			m.selected++
		}
	case "1", "2", "3", "4":
		m.selected = int(key.String()[0] - '1')
		target := menuItems[m.selected].target
		return m, func() tea.Msg { return target }
	case "enter":
		target := menuItems[m.selected].target
		return m, func() tea.Msg { return target }
	case "q", "esc":
		m.confirming = true
		m.quitFocus = false
	case "Q":
		return m, func() tea.Msg { return quitMsg{} }
	}
	return m, nil
}

func (m menuModel) updateConfirm(key tea.KeyMsg) (menuModel, tea.Cmd) {
	switch key.String() {
	case "left", "right", "tab", "h", "l":
		m.quitFocus = !m.quitFocus
	case "y":
		return m, func() tea.Msg { return quitMsg{} }
	case "n", "esc", "q":
		m.confirming = false
	case "enter":
		if m.quitFocus {
			return m, func() tea.Msg { return quitMsg{} }
		}
		m.confirming = false
	}
	return m, nil
}

func (m menuModel) view(width int) string {
	if m.confirming {
		return m.renderConfirm()
	}

	var b strings.Builder
	b.WriteString(m.theme.title().Render("Select one of the following options or press 'q' to quit."))
	b.WriteString("\n")

	for i, item := range menuItems {
		if i == m.selected {
			b.WriteString(m.theme.selected().Render("> " + item.label))
		} else {
			b.WriteString(m.theme.text().PaddingLeft(2).Render(item.label))
		}
		b.WriteString("\n\n")
	}
	return b.String()
}

func (m menuModel) renderConfirm() string {
	button := func(label string, focused bool, bg string) string {
		style := lipgloss.NewStyle().
			Padding(0, 3).
			Foreground(lipgloss.Color(m.theme.Foreground)).
			Background(lipgloss.Color(bg))
		if focused {
			style = style.Bold(true).Underline(true)
		}
		return style.Render(label)
	}

	buttons := lipgloss.JoinHorizontal(lipgloss.Center,
		button("Quit", m.quitFocus, m.theme.Primary),
		"   ",
		button("Cancel", !m.quitFocus, m.theme.Accent),
	)

	dialog := lipgloss.JoinVertical(lipgloss.Center,
		m.theme.text().Bold(true).Render("Are you sure you want to quit?"),
		"",
		buttons,
	)

	return lipgloss.NewStyle().
		Border(lipgloss.ThickBorder()).
		BorderForeground(lipgloss.Color(m.theme.Panel)).
		Background(lipgloss.Color(m.theme.Surface)).
		Padding(1, 4).
		Width(60).
		Align(lipgloss.Center).
		Render(dialog)
}

func (m menuModel) helpText() string {
	if m.confirming {
		return "←/→ switch · enter select · y quit · n/esc cancel"
	}
	return "↑/↓ nav · enter select · 1-4 jump · q quit · Q quit now"
}
