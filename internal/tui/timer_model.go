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

// TimerModel shows a running study session and ends it on request
type TimerModel struct {
	repo    Repository
	theme   Theme
	now     func() time.Time
	session *models.Session
	subject models.Subject

	elapsed        time.Duration
	timerAnimation int

	// stopped is set once the session has been ended from this screen
	stopped bool
}

// timerTickMsg is sent every second to update the clock
type timerTickMsg struct{}

// animationTickMsg drives the header animation
type animationTickMsg struct{}

// NewTimerModel creates a timer for a session that is already running
func NewTimerModel(repo Repository, theme Theme, session *models.Session, subject models.Subject, now func() time.Time) TimerModel {
	return TimerModel{
		repo:    repo,
		theme:   theme,
		now:     now,
		session: session,
		subject: subject,
		elapsed: session.Elapsed(now()),
	}
}

// Init starts both tickers
func (m TimerModel) Init() tea.Cmd {
	return tea.Batch(timerTick(), animationTick())
}

func timerTick() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return timerTickMsg{} })
}

func animationTick() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(time.Time) tea.Msg { return animationTickMsg{} })
}

func (m TimerModel) update(msg tea.Msg) (TimerModel, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		if m.stopped {
			return m, nil
		}
		m.elapsed = m.session.Elapsed(m.now())
		return m, timerTick()

	case animationTickMsg:
		if m.stopped {
			return m, nil
		}
		m.timerAnimation = (m.timerAnimation + 1) % 4
		return m, animationTick()

	case tea.KeyMsg:
		switch msg.String() {
		case "s", "S":
			ended, err := m.repo.EndSession(m.session.SessionID)
			if err != nil {
				return m, notifyErr(err)
			}
			m.session = ended
			m.elapsed = ended.Elapsed(m.now())
			m.stopped = true
			return m, tea.Sequence(
				notify(fmt.Sprintf("⏹️  Studied %s for %s", m.subject.SubjectName, formatElapsed(ended, m.now()))),
				navigate(screenSubjects),
			)
		case "esc", "q":
			// Leave the session running
			return m, navigate(screenMenu)
		}
	}
	return m, nil
}

func (m TimerModel) view(width, height int) string {
	if width < 90 {
		return m.renderTimerPanel(width, height)
	}

	leftWidth := width / 2
	rightWidth := width - leftWidth - 2
	return lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderTimerPanel(leftWidth, height),
		"  ",
		m.renderDetailsPanel(rightWidth, height),
	)
}

func (m TimerModel) renderTimerPanel(width, height int) string {
	centered := lipgloss.NewStyle().Align(lipgloss.Center).Width(width)

	animChars := []string{"⏱", "⏲", "⏱", "⏲"}
	animChar := animChars[m.timerAnimation]

	var components []string
	components = append(components,
		centered.Foreground(lipgloss.Color(m.theme.Primary)).Bold(true).
			Render(fmt.Sprintf("%s  STUDYING  %s", animChar, animChar)))
	components = append(components,
		centered.Foreground(lipgloss.Color(m.theme.Foreground)).Bold(true).
			Render(truncate(m.subject.SubjectName, max(width-4, 4))))

	var clock []string
	for _, line := range strings.Split(m.renderBigClock(), "\n") {
		clock = append(clock, centered.Render(line))
	}
	components = append(components, strings.Join(clock, "\n"))

	components = append(components,
		centered.Foreground(lipgloss.Color(m.theme.Muted)).Italic(true).
			Render("Started at "+m.session.StartTime.Local().Format("15:04:05")))

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(strings.Join(components, "\n\n"))
}

var bigDigits = map[rune][5]string{
	'0': {" ███ ", "█   █", "█   █", "█   █", " ███ "},
	'1': {"  █  ", " ██  ", "  █  ", "  █  ", "█████"},
	'2': {" ███ ", "█   █", "   █ ", "  █  ", "█████"},
	'3': {" ███ ", "█   █", "  ██ ", "█   █", " ███ "},
	'4': {"█   █", "█   █", "█████", "    █", "    █"},
	'5': {"█████", "█    ", "████ ", "    █", "████ "},
	'6': {" ███ ", "█    ", "████ ", "█   █", " ███ "},
	'7': {"█████", "    █", "   █ ", "  █  ", " █   "},
	'8': {" ███ ", "█   █", " ███ ", "█   █", " ███ "},
	'9': {" ███ ", "█   █", " ████", "    █", " ███ "},
	':': {"     ", "  █  ", "     ", "  █  ", "     "},
}

func (m TimerModel) renderBigClock() string {
	var lines [5]strings.Builder
	for _, char := range parser.FormatClock(m.elapsed) {
		art, ok := bigDigits[char]
		if !ok {
			continue
		}
		for i := range lines {
			lines[i].WriteString(art[i])
			lines[i].WriteString(" ")
		}
	}

	style := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Primary)).Bold(true)
	rendered := make([]string, len(lines))
	for i := range lines {
		rendered[i] = style.Render(lines[i].String())
	}
	return strings.Join(rendered, "\n")
}

func (m TimerModel) renderDetailsPanel(width, height int) string {
	label := m.theme.muted()
	value := m.theme.text().Bold(true)

	rows := []string{
		m.theme.title().Render("Session"),
		label.Render("Subject: ") + value.Render(m.subject.SubjectName),
		label.Render("Session: ") + value.Render(shortID(m.session.SessionID)),
		label.Render("Started: ") + value.Render(m.session.StartTime.Local().Format("Mon Jan 02 15:04")),
		label.Render("Elapsed: ") + value.Render(formatElapsed(m.session, m.now())),
	}

	return m.theme.panel().
		Width(max(width-4, 10)).
		Height(max(height-2, 1)).
		Render(strings.Join(rows, "\n"))
}

func (m TimerModel) helpText() string {
	return "s stop & save · esc/q back to menu (keep running) · ctrl+c quit"
}

// formatElapsed renders the time studied so far, or in total once ended
func formatElapsed(session *models.Session, now time.Time) string {
	return parser.FormatDuration(session.Elapsed(now))
}
