package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/studytime/internal/models"
)

// AppModel is the root model: it owns the current screen and routes
// messages to it.
type AppModel struct {
	width  int
	height int

	repo  Repository
	theme Theme
	now   func() time.Time

	screen   screen
	menu     menuModel
	subjects subjectsModel
	sessions sessionsModel
	summary  summaryModel
	timer    *TimerModel

	notice        string
	noticeIsError bool

	// standaloneTimer quits the program when the timer screen is left
	standaloneTimer bool
	quitting        bool
}

// NewAppModel creates the root model at the main menu
func NewAppModel(repo Repository, theme Theme, now func() time.Time) AppModel {
	return AppModel{
		repo:     repo,
		theme:    theme,
		now:      now,
		screen:   screenMenu,
		menu:     newMenuModel(theme),
		subjects: newSubjectsModel(repo, theme),
		sessions: newSessionsModel(repo, theme, now),
		summary:  newSummaryModel(repo, theme),
	}
}

// Init initializes the model
func (m AppModel) Init() tea.Cmd {
	if m.screen == screenTimer && m.timer != nil {
		return m.timer.Init()
	}
	return nil
}

// Update handles messages
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.sessions.setSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		// Any key press dismisses the previous notification
		m.notice = ""
		m.noticeIsError = false

	case noticeMsg:
		m.notice = msg.text
		m.noticeIsError = msg.isError
		return m, nil

	case navigateMsg:
		return m.navigate(msg)

	case sessionStartedMsg:
		m = m.openTimer(msg.session, msg.subject)
		return m, m.timer.Init()

	case quitMsg:
		m.quitting = true
		return m, tea.Quit
	}

	var cmd tea.Cmd
	switch m.screen {
	case screenMenu:
		m.menu, cmd = m.menu.update(msg)
	case screenSubjects:
		m.subjects, cmd = m.subjects.update(msg)
	case screenSessions:
		m.sessions, cmd = m.sessions.update(msg)
	case screenSummary:
		m.summary, cmd = m.summary.update(msg)
	case screenTimer:
		if m.timer != nil {
			var timer TimerModel
			timer, cmd = m.timer.update(msg)
			m.timer = &timer
		}
	}
	return m, cmd
}

func (m AppModel) navigate(msg navigateMsg) (tea.Model, tea.Cmd) {
	if m.screen == screenTimer && m.standaloneTimer {
		m.quitting = true
		return m, tea.Quit
	}

	m.screen = msg.to
	var cmd tea.Cmd
	switch msg.to {
	case screenSubjects:
		m.subjects, cmd = m.subjects.reload()
		if msg.adding {
			var focus tea.Cmd
			m.subjects, focus = m.subjects.startAdding()
			cmd = tea.Batch(cmd, focus)
		}
	case screenSessions:
		m.sessions, cmd = m.sessions.reload()
	case screenSummary:
		m.summary, cmd = m.summary.reload()
	}
	return m, cmd
}

func (m AppModel) openTimer(session *models.Session, subject models.Subject) AppModel {
	timer := NewTimerModel(m.repo, m.theme, session, subject, m.now)
	m.timer = &timer
	m.screen = screenTimer
	return m
}

// View renders the current screen with the notification line and help bar
func (m AppModel) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var body, help string
	switch m.screen {
	case screenMenu:
		body, help = m.menu.view(m.width), m.menu.helpText()
	case screenSubjects:
		body, help = m.subjects.view(m.width), m.subjects.helpText()
	case screenSessions:
		body, help = m.sessions.view(m.width), m.sessions.helpText()
	case screenSummary:
		body, help = m.summary.view(m.width), m.summary.helpText()
	case screenTimer:
		if m.timer != nil {
			body, help = m.timer.view(m.width, m.height-3), m.timer.helpText()
		}
	}

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(m.theme.Foreground)).
		Background(lipgloss.Color(m.theme.Primary)).
		Width(m.width).
		Align(lipgloss.Center).
		Render("StudyTime · " + m.screenTitle())

	notice := ""
	if m.notice != "" {
		notice = m.theme.notice(m.noticeIsError).Render(m.notice)
	}

	footer := m.theme.help().Width(m.width).Align(lipgloss.Center).Render(help)

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		lipgloss.PlaceHorizontal(m.width, lipgloss.Center, body),
		lipgloss.PlaceHorizontal(m.width, lipgloss.Center, notice),
		footer,
	)
}

func (m AppModel) screenTitle() string {
	switch m.screen {
	case screenSubjects:
		return "Subjects"
	case screenTimer:
		return "Study Session"
	case screenSessions:
		return "Sessions"
	case screenSummary:
		return "Summary"
	default:
		return "Main Menu"
	}
}
