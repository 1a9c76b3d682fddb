package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/studytime/internal/models"
	"github.com/balkashynov/studytime/internal/parser"
)

// summaryModel shows total study time per subject as a bar chart
type summaryModel struct {
	repo  Repository
	theme Theme
	rows  []models.SubjectSummary
}

func newSummaryModel(repo Repository, theme Theme) summaryModel {
	return summaryModel{repo: repo, theme: theme}
}

func (m summaryModel) reload() (summaryModel, tea.Cmd) {
	rows, err := m.repo.Summary()
	if err != nil {
		return m, notifyErr(err)
	}
	m.rows = rows
	return m, nil
}

func (m summaryModel) update(msg tea.Msg) (summaryModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "r":
			return m.reload()
		case "esc", "q":
			return m, navigate(screenMenu)
		}
	}
	return m, nil
}

func (m summaryModel) view(width int) string {
	var b strings.Builder
	b.WriteString(m.theme.title().Render("Time studied per subject"))
	b.WriteString("\n")

	if len(m.rows) == 0 {
		b.WriteString(m.theme.muted().Render("No subjects yet."))
		return b.String()
	}

	var longest, total int64
	for _, r := range m.rows {
		longest = max(longest, r.TotalSeconds)
		total += r.TotalSeconds
	}

	nameWidth := 20
	barWidth := max(width-nameWidth-30, 10)
	bar := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Primary))

	for _, r := range m.rows {
		filled := 0
		if longest > 0 {
			filled = int(r.TotalSeconds * int64(barWidth) / longest)
		}
		fmt.Fprintf(&b, "%-*s ", nameWidth, truncate(r.SubjectName, nameWidth))
		b.WriteString(bar.Render(strings.Repeat("█", filled)))
		b.WriteString(strings.Repeat(" ", barWidth-filled))
		b.WriteString(m.theme.text().Render(fmt.Sprintf(" %7s  %3d sessions",
			parser.FormatDuration(time.Duration(r.TotalSeconds)*time.Second), r.Sessions)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.theme.muted().Render("Total: " + parser.FormatDuration(time.Duration(total)*time.Second)))
	return b.String()
}

func (m summaryModel) helpText() string {
	return "r refresh · esc menu"
}
