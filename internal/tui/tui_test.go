package tui

import (
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balkashynov/studytime/internal/config"
	"github.com/balkashynov/studytime/internal/db"
	"github.com/balkashynov/studytime/internal/models"
)

func setupTestStore(t *testing.T) (*db.Store, func() time.Time) {
	t.Helper()
	current := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	clock := func() time.Time {
		current = current.Add(time.Minute)
		return current
	}

	settings := config.Default()
	settings.DatabaseFile = filepath.Join(t.TempDir(), "studytime.db")
	store, err := db.Initialize(settings, db.WithClock(clock))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store, clock
}

func testTheme(t *testing.T) Theme {
	t.Helper()
	theme, err := ThemeByName(config.DefaultTheme)
	require.NoError(t, err)
	return theme
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func runCmd(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	require.NotNil(t, cmd)
	return cmd()
}

func TestSortOrder_Ring(t *testing.T) {
	order := SortByNameAsc
	var seen []SortOrder
	for i := 0; i < 5; i++ {
		seen = append(seen, order)
		order = order.Next()
	}
	assert.Equal(t, []SortOrder{
		SortByNameAsc, SortByNameDesc, SortByRecentlyUpdated, SortByOldestAdded, SortByNameAsc,
	}, seen)
}

func TestSortOrder_Apply(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	subjects := func() []models.Subject {
		return []models.Subject{
			{SubjectName: "biology", AddedTime: models.NewTimestamp(base.Add(2 * time.Hour)), UpdatedTime: models.NewTimestamp(base.Add(2 * time.Hour))},
			{SubjectName: "Algebra", AddedTime: models.NewTimestamp(base.Add(3 * time.Hour)), UpdatedTime: models.NewTimestamp(base.Add(5 * time.Hour))},
			{SubjectName: "chemistry", AddedTime: models.NewTimestamp(base), UpdatedTime: models.NewTimestamp(base)},
		}
	}
	names := func(s []models.Subject) []string {
		out := make([]string, len(s))
		for i := range s {
			out[i] = s[i].SubjectName
		}
		return out
	}

	tests := []struct {
		order SortOrder
		want  []string
	}{
		{SortByNameAsc, []string{"Algebra", "biology", "chemistry"}},
		{SortByNameDesc, []string{"chemistry", "biology", "Algebra"}},
		{SortByRecentlyUpdated, []string{"Algebra", "biology", "chemistry"}},
		{SortByOldestAdded, []string{"chemistry", "biology", "Algebra"}},
	}
	for _, tt := range tests {
		t.Run(tt.order.String(), func(t *testing.T) {
			s := subjects()
			tt.order.Apply(s)
			assert.Equal(t, tt.want, names(s))
		})
	}
}

func TestThemeByName_Unknown(t *testing.T) {
	_, err := ThemeByName("solarized")
	assert.Error(t, err)
	assert.Equal(t, []string{"unipd-dark", "unipd-light"}, ThemeNames())
}

func TestMenu_Navigation(t *testing.T) {
	m := newMenuModel(testTheme(t))

	m, cmd := m.update(keyRunes("3"))
	assert.Equal(t, navigateMsg{to: screenSessions}, runCmd(t, cmd))

	m, cmd = m.update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Nil(t, cmd)
	m, cmd = m.update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, navigateMsg{to: screenSubjects, adding: true}, runCmd(t, cmd))
	assert.Equal(t, 1, m.selected)
}

func TestMenu_QuitConfirmation(t *testing.T) {
	m := newMenuModel(testTheme(t))

	m, cmd := m.update(keyRunes("q"))
	assert.Nil(t, cmd)
	assert.True(t, m.confirming)

	// Cancel is focused first
	m, cmd = m.update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.False(t, m.confirming)

	m, _ = m.update(keyRunes("q"))
	m, _ = m.update(tea.KeyMsg{Type: tea.KeyTab})
	_, cmd = m.update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, quitMsg{}, runCmd(t, cmd))
}

func TestSubjects_AddRenameDelete(t *testing.T) {
	store, _ := setupTestStore(t)
	m := newSubjectsModel(store, testTheme(t))

	m, _ = m.reload()
	m, _ = m.startAdding()
	m.input.SetValue("  Math ")
	m, cmd := m.update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, subjectsBrowse, m.mode)
	require.Len(t, m.subjects, 1)
	assert.Equal(t, "Math", m.subjects[0].SubjectName)

	// A duplicate keeps the form open and reports the error
	m, _ = m.startAdding()
	m.input.SetValue("math")
	m, cmd = m.update(tea.KeyMsg{Type: tea.KeyEnter})
	msg, ok := runCmd(t, cmd).(noticeMsg)
	require.True(t, ok)
	assert.True(t, msg.isError)
	assert.Equal(t, subjectsAdding, m.mode)
	m, _ = m.update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, subjectsBrowse, m.mode)

	m, _ = m.update(keyRunes("r"))
	assert.Equal(t, subjectsRenaming, m.mode)
	m.input.SetValue("Calculus")
	m, _ = m.update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Len(t, m.subjects, 1)
	assert.Equal(t, "Calculus", m.subjects[0].SubjectName)

	m, _ = m.update(keyRunes("d"))
	assert.Equal(t, subjectsConfirmDelete, m.mode)
	m, _ = m.update(keyRunes("y"))
	assert.Empty(t, m.subjects)

	subjects, err := store.ListSubjects()
	require.NoError(t, err)
	assert.Empty(t, subjects)
}

func TestSubjects_EnterBeginsSession(t *testing.T) {
	store, _ := setupTestStore(t)
	subject, err := store.AddSubject("History")
	require.NoError(t, err)

	m := newSubjectsModel(store, testTheme(t))
	m, _ = m.reload()
	_, cmd := m.update(tea.KeyMsg{Type: tea.KeyEnter})

	started, ok := runCmd(t, cmd).(sessionStartedMsg)
	require.True(t, ok)
	assert.Equal(t, subject.SubjectID, started.subject.SubjectID)
	assert.False(t, started.session.Finished())

	active, err := store.ActiveSessions()
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, started.session.SessionID, active[0].SessionID)
}

func TestSubjects_EnterWithoutSubjects(t *testing.T) {
	store, _ := setupTestStore(t)
	m := newSubjectsModel(store, testTheme(t))
	m, _ = m.reload()

	_, cmd := m.update(tea.KeyMsg{Type: tea.KeyEnter})
	msg, ok := runCmd(t, cmd).(noticeMsg)
	require.True(t, ok)
	assert.False(t, msg.isError)
}

func TestTimer_StopEndsSession(t *testing.T) {
	store, clock := setupTestStore(t)
	subject, err := store.AddSubject("Physics")
	require.NoError(t, err)
	session, err := store.BeginSession(subject.SubjectID)
	require.NoError(t, err)

	m := NewTimerModel(store, testTheme(t), session, *subject, clock)
	m, cmd := m.update(keyRunes("s"))
	require.NotNil(t, cmd)
	assert.True(t, m.stopped)
	assert.True(t, m.session.Finished())

	sessions, err := store.ListSessions(db.SessionFilter{})
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	require.NotNil(t, sessions[0].Duration)
	// begin at +2m, the timer reads the clock once, end at +4m
	assert.Equal(t, int64(120), *sessions[0].Duration)

	// Ticks stop once the session is over
	_, cmd = m.update(timerTickMsg{})
	assert.Nil(t, cmd)
}

func TestTimer_EscKeepsSessionRunning(t *testing.T) {
	store, clock := setupTestStore(t)
	subject, err := store.AddSubject("Physics")
	require.NoError(t, err)
	session, err := store.BeginSession(subject.SubjectID)
	require.NoError(t, err)

	m := NewTimerModel(store, testTheme(t), session, *subject, clock)
	_, cmd := m.update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, navigateMsg{to: screenMenu}, runCmd(t, cmd))

	active, err := store.ActiveSessions()
	require.NoError(t, err)
	assert.Len(t, active, 1)
}

func TestApp_StandaloneTimerQuitsOnLeave(t *testing.T) {
	store, clock := setupTestStore(t)
	subject, err := store.AddSubject("Physics")
	require.NoError(t, err)
	session, err := store.BeginSession(subject.SubjectID)
	require.NoError(t, err)

	model := NewAppModel(store, testTheme(t), clock)
	model.standaloneTimer = true
	model = model.openTimer(session, *subject)
	assert.Equal(t, screenTimer, model.screen)

	updated, cmd := model.Update(navigateMsg{to: screenMenu})
	assert.Equal(t, tea.QuitMsg{}, runCmd(t, cmd))
	assert.True(t, updated.(AppModel).quitting)
}

func TestApp_NoticeClearedOnKeyPress(t *testing.T) {
	store, clock := setupTestStore(t)
	model := NewAppModel(store, testTheme(t), clock)

	updated, _ := model.Update(noticeMsg{text: "saved"})
	assert.Equal(t, "saved", updated.(AppModel).notice)

	updated, _ = updated.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Empty(t, updated.(AppModel).notice)
}

func TestSessions_EndRunningSession(t *testing.T) {
	store, clock := setupTestStore(t)
	subject, err := store.AddSubject("Art")
	require.NoError(t, err)
	_, err = store.BeginSession(subject.SubjectID)
	require.NoError(t, err)

	m := newSessionsModel(store, testTheme(t), clock)
	m, _ = m.reload()
	require.Len(t, m.sessions, 1)
	assert.False(t, m.sessions[0].Finished())
	assert.NotEmpty(t, m.view(120))

	m, cmd := m.update(keyRunes("e"))
	require.NotNil(t, cmd)
	require.Len(t, m.sessions, 1)
	assert.True(t, m.sessions[0].Finished())

	_, cmd = m.update(keyRunes("e"))
	msg, ok := runCmd(t, cmd).(noticeMsg)
	require.True(t, ok)
	assert.False(t, msg.isError)
}

func TestSummary_Reload(t *testing.T) {
	store, _ := setupTestStore(t)
	subject, err := store.AddSubject("Art")
	require.NoError(t, err)
	session, err := store.BeginSession(subject.SubjectID)
	require.NoError(t, err)
	_, err = store.EndSession(session.SessionID)
	require.NoError(t, err)

	m := newSummaryModel(store, testTheme(t))
	m, cmd := m.reload()
	assert.Nil(t, cmd)
	require.Len(t, m.rows, 1)
	assert.Equal(t, int64(60), m.rows[0].TotalSeconds)
	assert.Contains(t, m.view(100), "Art")
}
