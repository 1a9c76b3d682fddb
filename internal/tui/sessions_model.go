package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/studytime/internal/db"
	"github.com/balkashynov/studytime/internal/models"
	"github.com/balkashynov/studytime/internal/parser"
)

// sessionsModel is the paged sessions table
type sessionsModel struct {
	repo  Repository
	theme Theme
	now   func() time.Time

	sessions []models.Session
	names    map[string]string // subject id -> name
	subjects []models.Subject  // filter ring, in list order
	filter   int               // 0 shows every subject, i>0 shows subjects[i-1]

	selected    int
	currentPage int
	perPage     int
}

func newSessionsModel(repo Repository, theme Theme, now func() time.Time) sessionsModel {
	return sessionsModel{
		repo:    repo,
		theme:   theme,
		now:     now,
		names:   map[string]string{},
		perPage: 10,
	}
}

// setSize fits the page to the terminal height
func (m *sessionsModel) setSize(_, height int) {
	// header, title, column header, page info, notice and help
	m.perPage = max(height-12, 3)
	m.clampPage()
}

func (m sessionsModel) reload() (sessionsModel, tea.Cmd) {
	subjects, err := m.repo.ListSubjects()
	if err != nil {
		return m, notifyErr(err)
	}
	m.subjects = subjects
	m.names = make(map[string]string, len(subjects))
	for _, s := range subjects {
		m.names[s.SubjectID] = s.SubjectName
	}
	if m.filter > len(subjects) {
		m.filter = 0
	}

	var filter db.SessionFilter
	if m.filter > 0 {
		filter.SubjectID = subjects[m.filter-1].SubjectID
	}
	sessions, err := m.repo.ListSessions(filter)
	if err != nil {
		return m, notifyErr(err)
	}
	// Newest first
	for i, j := 0, len(sessions)-1; i < j; i, j = i+1, j-1 {
		sessions[i], sessions[j] = sessions[j], sessions[i]
	}
	m.sessions = sessions
	m.clampPage()
	return m, nil
}

func (m *sessionsModel) clampPage() {
	if m.selected >= len(m.sessions) {
		m.selected = max(len(m.sessions)-1, 0)
	}
	if m.perPage > 0 {
		m.currentPage = m.selected / m.perPage
	}
}

func (m sessionsModel) totalPages() int {
	if m.perPage <= 0 || len(m.sessions) == 0 {
		return 1
	}
	return (len(m.sessions) + m.perPage - 1) / m.perPage
}

func (m sessionsModel) update(msg tea.Msg) (sessionsModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "up", "k":
		if m.selected > 0 {
			m.selected--
			m.clampPage()
		}
	case "down", "j":
		if m.selected < len(m.sessions)-1 {
			m.selected++
			m.clampPage()
		}
	case "left", "h":
		if m.currentPage > 0 {
			m.currentPage--
			m.selected = m.currentPage * m.perPage
		}
	case "right", "l":
		if m.currentPage < m.totalPages()-1 {
			m.currentPage++
			m.selected = m.currentPage * m.perPage
		}
	case "f":
		m.filter = (m.filter + 1) % (len(m.subjects) + 1)
		m.selected = 0
		return m.reload()
	case "e":
		if m.selected >= len(m.sessions) {
			return m, nil
		}
		session := m.sessions[m.selected]
		if session.Finished() {
			return m, notify("That session has already ended.")
		}
		ended, err := m.repo.EndSession(session.SessionID)
		if err != nil {
			return m, notifyErr(err)
		}
		m, cmd := m.reload()
		return m, tea.Batch(cmd, notify(fmt.Sprintf("⏹️  Ended session %s after %s",
			shortID(ended.SessionID), formatElapsed(ended, m.now()))))
	case "r":
		return m.reload()
	case "esc", "q":
		return m, navigate(screenMenu)
	}
	return m, nil
}

func (m sessionsModel) filterLabel() string {
	if m.filter == 0 || m.filter > len(m.subjects) {
		return "all subjects"
	}
	return m.subjects[m.filter-1].SubjectName
}

func (m sessionsModel) view(width int) string {
	var b strings.Builder

	b.WriteString(m.theme.title().Render(fmt.Sprintf("Study sessions (%d)", len(m.sessions))))
	b.WriteString("  ")
	b.WriteString(m.theme.muted().Render(m.filterLabel()))
	b.WriteString("\n")

	if len(m.sessions) == 0 {
		b.WriteString(m.theme.muted().Render("No sessions recorded yet."))
		return b.String()
	}

	subjectWidth := min(max(width-70, 12), 30)
	header := fmt.Sprintf("%-8s  %-*s  %-16s  %-16s  %s",
		"ID", subjectWidth, "SUBJECT", "START", "END", "DURATION")
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.Primary)).Render(header))
	b.WriteString("\n")

	now := m.now()
	start := m.currentPage * m.perPage
	end := min(start+m.perPage, len(m.sessions))
	for i := start; i < end; i++ {
		s := m.sessions[i]

		name, ok := m.names[s.SubjectID]
		if !ok {
			name = "(deleted)"
		}
		endText := "running"
		if s.Finished() {
			endText = s.EndTime.Local().Format("2006-01-02 15:04")
		}

		row := fmt.Sprintf("%-8s  %-*s  %-16s  %-16s  %s",
			shortID(s.SessionID),
			subjectWidth, truncate(name, subjectWidth),
			s.StartTime.Local().Format("2006-01-02 15:04"),
			endText,
			parser.FormatDuration(s.Elapsed(now)),
		)

		switch {
		case i == m.selected:
			b.WriteString(m.theme.selected().Render(row))
		case !s.Finished():
			b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Warning)).Render(row))
		default:
			b.WriteString(m.theme.text().Render(row))
		}
		b.WriteString("\n")
	}

	if pages := m.totalPages(); pages > 1 {
		b.WriteString(m.theme.muted().Render(fmt.Sprintf("Page %d/%d", m.currentPage+1, pages)))
		b.WriteString("\n")
	}
	return b.String()
}

func (m sessionsModel) helpText() string {
	return "↑/↓ nav · ←/→ page · f filter subject · e end running · r refresh · esc menu"
}
