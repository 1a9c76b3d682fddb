package tui

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// Theme is a named color palette for every screen
type Theme struct {
	Name       string
	Primary    string // titles, selected rows, key hints
	Accent     string // secondary highlights, cancel button
	Foreground string // regular text
	Background string
	Muted      string // help text, placeholders
	Warning    string
	Error      string
	Success    string
	Surface    string // modal background
	Panel      string // borders
}

var themes = map[string]Theme{
	"unipd-light": {
		Name:       "unipd-light",
		Primary:    "#9B0014",
		Accent:     "#213B4A",
		Foreground: "#484F59",
		Background: "#F0F0F0",
		Muted:      "#8A9099",
		Warning:    "#E2B602",
		Error:      "#4F010B",
		Success:    "#009B14",
		Surface:    "#D8D8D8",
		Panel:      "#D0D0D0",
	},
	"unipd-dark": {
		Name:       "unipd-dark",
		Primary:    "#9B0014",
		Accent:     "#213B4A",
		Foreground: "#F0F0F0",
		Background: "#0A0A0A",
		Muted:      "#6D7383",
		Warning:    "#E2B602",
		Error:      "#EF4444",
		Success:    "#009B14",
		Surface:    "#484F59",
		Panel:      "#1E1E1E",
	},
}

// ThemeByName looks up a registered theme
func ThemeByName(name string) (Theme, error) {
	theme, ok := themes[name]
	if !ok {
		return Theme{}, fmt.Errorf("unknown theme %q (available: %v)", name, ThemeNames())
	}
	return theme, nil
}

// ThemeNames lists registered themes in alphabetical order
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (t Theme) color(c string) lipgloss.Color {
	return lipgloss.Color(c)
}

func (t Theme) title() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Underline(true).Foreground(t.color(t.Primary)).Margin(1, 0)
}

func (t Theme) text() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.color(t.Foreground))
}

func (t Theme) muted() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.color(t.Muted)).Italic(true)
}

func (t Theme) selected() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.color(t.Primary)).Bold(true).Underline(true)
}

func (t Theme) panel() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.color(t.Panel)).
		Padding(0, 1)
}

func (t Theme) notice(isError bool) lipgloss.Style {
	c := t.Success
	if isError {
		c = t.Warning
	}
	return lipgloss.NewStyle().Foreground(t.color(c)).Bold(true)
}

func (t Theme) help() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.color(t.Muted)).Italic(true)
}
