package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/balkashynov/studytime/internal/models"
)

type subjectsMode int

const (
	subjectsBrowse subjectsMode = iota
	subjectsAdding
	subjectsRenaming
	subjectsConfirmDelete
)

// subjectsModel lists subjects and hosts the add/rename/delete flows
type subjectsModel struct {
	repo  Repository
	theme Theme

	subjects []models.Subject // in display order
	selected int
	order    SortOrder

	mode  subjectsMode
	input textinput.Model
}

func newSubjectsModel(repo Repository, theme Theme) subjectsModel {
	input := textinput.New()
	input.Placeholder = "Subject name"
	input.CharLimit = 80
	input.Width = 40

	return subjectsModel{
		repo:  repo,
		theme: theme,
		order: SortByNameAsc,
		input: input,
	}
}

// reload re-reads subjects from the store keeping the selection on the same
// subject when it still exists.
func (m subjectsModel) reload() (subjectsModel, tea.Cmd) {
	var current string
	if s, ok := m.current(); ok {
		current = s.SubjectID
	}

	subjects, err := m.repo.ListSubjects()
	if err != nil {
		return m, notifyErr(err)
	}
	m.order.Apply(subjects)
	m.subjects = subjects
	m.mode = subjectsBrowse
	m.input.Blur()

	m.selected = 0
	for i, s := range subjects {
		if s.SubjectID == current {
			m.selected = i
			break
		}
	}
	return m, nil
}

func (m subjectsModel) current() (models.Subject, bool) {
	if m.selected < 0 || m.selected >= len(m.subjects) {
		return models.Subject{}, false
	}
	return m.subjects[m.selected], true
}

func (m subjectsModel) startAdding() (subjectsModel, tea.Cmd) {
	m.mode = subjectsAdding
	m.input.SetValue("")
	return m, m.input.Focus()
}

func (m subjectsModel) update(msg tea.Msg) (subjectsModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.mode == subjectsAdding || m.mode == subjectsRenaming {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	switch m.mode {
	case subjectsAdding, subjectsRenaming:
		return m.updateForm(key)
	case subjectsConfirmDelete:
		return m.updateConfirmDelete(key)
	}

	switch key.String() {
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
	case "down", "j":
		if m.selected < len(m.subjects)-1 {
			m.selected++
		}
	case "s":
		m.order = m.order.Next()
		return m.reload()
	case "a":
		return m.startAdding()
	case "r":
		subject, ok := m.current()
		if !ok {
			return m, nil
		}
		m.mode = subjectsRenaming
		m.input.SetValue(subject.SubjectName)
		m.input.CursorEnd()
		return m, m.input.Focus()
	case "d":
		if _, ok := m.current(); ok {
			m.mode = subjectsConfirmDelete
		}
	case "enter":
		subject, ok := m.current()
		if !ok {
			return m, notify("Add a subject first with 'a'.")
		}
		session, err := m.repo.BeginSession(subject.SubjectID)
		if err != nil {
			return m, notifyErr(err)
		}
		return m, func() tea.Msg { return sessionStartedMsg{session: session, subject: subject} }
	case "esc", "q":
		return m, navigate(screenMenu)
	}
	return m, nil
}

func (m subjectsModel) updateForm(key tea.KeyMsg) (subjectsModel, tea.Cmd) {
	switch key.String() {
	case "esc":
		m.mode = subjectsBrowse
		m.input.Blur()
		return m, nil

	case "enter":
		name := m.input.Value()
		var (
			saved *models.Subject
			err   error
			verb  string
		)
		if m.mode == subjectsAdding {
			saved, err = m.repo.AddSubject(name)
			verb = "Added"
		} else {
			subject, _ := m.current()
			saved, err = m.repo.RenameSubject(subject.SubjectID, name)
			verb = "Renamed to"
		}
		if err != nil {
			// Keep the form open so the name can be fixed
			return m, notifyErr(err)
		}

		m, cmd := m.reload()
		for i, s := range m.subjects {
			if s.SubjectID == saved.SubjectID {
				m.selected = i
			}
		}
		return m, tea.Batch(cmd, notify(fmt.Sprintf("✅ %s %q", verb, saved.SubjectName)))
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(key)
	return m, cmd
}

func (m subjectsModel) updateConfirmDelete(key tea.KeyMsg) (subjectsModel, tea.Cmd) {
	switch key.String() {
	case "y", "Y":
		subject, _ := m.current()
		m.mode = subjectsBrowse
		if err := m.repo.DeleteSubject(subject.SubjectID); err != nil {
			return m, notifyErr(err)
		}
		m, cmd := m.reload()
		return m, tea.Batch(cmd, notify(fmt.Sprintf("🗑️  Deleted %q and its sessions", subject.SubjectName)))
	case "n", "N", "esc":
		m.mode = subjectsBrowse
	}
	return m, nil
}

func (m subjectsModel) view(width int) string {
	var b strings.Builder

	b.WriteString(m.theme.title().Render(fmt.Sprintf("Subjects (%d)", len(m.subjects))))
	b.WriteString("  ")
	b.WriteString(m.theme.muted().Render("sorted by " + m.order.String()))
	b.WriteString("\n")

	if len(m.subjects) == 0 {
		b.WriteString(m.theme.muted().Render("No subjects yet. Press 'a' to add one."))
		b.WriteString("\n")
	}

	nameWidth := min(max(width/2, 20), 50)
	for i, s := range m.subjects {
		name := truncate(s.SubjectName, nameWidth)
		line := fmt.Sprintf("%-*s  updated %s", nameWidth, name, s.UpdatedTime.Local().Format("2006-01-02 15:04"))
		if i == m.selected {
			b.WriteString(m.theme.selected().Render("> " + line))
		} else {
			b.WriteString(m.theme.text().PaddingLeft(2).Render(line))
		}
		b.WriteString("\n")
	}

	switch m.mode {
	case subjectsAdding:
		b.WriteString("\n")
		b.WriteString(m.theme.panel().Render("New subject: " + m.input.View()))
	case subjectsRenaming:
		b.WriteString("\n")
		b.WriteString(m.theme.panel().Render("Rename to: " + m.input.View()))
	case subjectsConfirmDelete:
		subject, _ := m.current()
		b.WriteString("\n")
		b.WriteString(m.theme.panel().Render(fmt.Sprintf(
			"Delete %q and all of its sessions? (y/n)", subject.SubjectName)))
	}

	return b.String()
}

func (m subjectsModel) helpText() string {
	switch m.mode {
	case subjectsAdding, subjectsRenaming:
		return "enter save · esc cancel"
	case subjectsConfirmDelete:
		return "y delete · n/esc keep"
	}
	return "↑/↓ nav · enter start session · a add · r rename · d delete · s sort · esc menu"
}

// truncate shortens s to at most n runes, marking the cut with "..."
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}
