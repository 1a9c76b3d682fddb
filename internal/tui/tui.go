package tui

import (
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/balkashynov/studytime/internal/db"
	"github.com/balkashynov/studytime/internal/models"
)

// Repository is the part of the store the screens talk to
type Repository interface {
	ListSubjects() ([]models.Subject, error)
	AddSubject(name string) (*models.Subject, error)
	RenameSubject(id, newName string) (*models.Subject, error)
	DeleteSubject(id string) error
	BeginSession(subjectID string) (*models.Session, error)
	EndSession(sessionID string) (*models.Session, error)
	ListSessions(filter db.SessionFilter) ([]models.Session, error)
	Summary() ([]models.SubjectSummary, error)
}

var _ Repository = (*db.Store)(nil)

type screen int

const (
	screenMenu screen = iota
	screenSubjects
	screenTimer
	screenSessions
	screenSummary
)

// navigateMsg switches the visible screen
type navigateMsg struct {
	to     screen
	adding bool // open the subjects screen straight into the add form
}

// noticeMsg is a transient notification shown under the current screen
type noticeMsg struct {
	text    string
	isError bool
}

// sessionStartedMsg opens the timer for a freshly started session
type sessionStartedMsg struct {
	session *models.Session
	subject models.Subject
}

func navigate(to screen) tea.Cmd {
	return func() tea.Msg { return navigateMsg{to: to} }
}

func notify(text string) tea.Cmd {
	return func() tea.Msg { return noticeMsg{text: text} }
}

// notifyErr turns a repository error into a notification, never a crash
func notifyErr(err error) tea.Cmd {
	return func() tea.Msg { return noticeMsg{text: "⚠ " + err.Error(), isError: true} }
}

// Run starts the interactive application at the main menu
func Run(repo Repository, theme Theme, out io.Writer) error {
	model := NewAppModel(repo, theme, time.Now)

	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	if m, ok := finalModel.(AppModel); ok && m.timer != nil && !m.timer.session.Finished() {
		fmt.Fprintf(out, "💡 Session %s for %s is still running. Use 'studytime stop' to end it.\n",
			shortID(m.timer.session.SessionID), m.timer.subject.SubjectName)
	}
	return nil
}

// RunTimer opens the timer screen for session and quits when it is left
func RunTimer(repo Repository, theme Theme, session *models.Session, subject models.Subject, out io.Writer) error {
	model := NewAppModel(repo, theme, time.Now)
	model.standaloneTimer = true
	model = model.openTimer(session, subject)

	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	m, ok := finalModel.(AppModel)
	if !ok || m.timer == nil {
		return nil
	}
	if m.timer.session.Finished() {
		fmt.Fprintf(out, "⏹️  Stopped studying %s\n", subject.SubjectName)
		fmt.Fprintf(out, "📊 Session duration: %s\n", formatElapsed(m.timer.session, time.Now()))
	} else {
		fmt.Fprintf(out, "\n💡 Session %s is still running for %s.\n", shortID(session.SessionID), subject.SubjectName)
		fmt.Fprintf(out, "   Use 'studytime status' to check it or 'studytime stop' to end it.\n")
	}
	if m.notice != "" && m.noticeIsError {
		fmt.Fprintln(out, m.notice)
	}
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
