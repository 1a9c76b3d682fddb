package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balkashynov/studytime/internal/models"
)

func TestStore_BeginAndEndSession(t *testing.T) {
	store, clock := setupTestStore(t)

	math, err := store.AddSubject("Math")
	require.NoError(t, err)

	started, err := store.BeginSession(math.SubjectID)
	require.NoError(t, err)
	assert.Equal(t, math.SubjectID, started.SubjectID)
	assert.False(t, started.Finished())
	assert.Nil(t, started.Duration)

	ended, err := store.EndSession(started.SessionID)
	require.NoError(t, err)
	assert.True(t, ended.Finished())
	assert.False(t, ended.EndTime.Before(ended.StartTime.Time))
	require.NotNil(t, ended.Duration)
	assert.Equal(t, int64(clock.step/time.Second), *ended.Duration)
	assert.Equal(t, 90*time.Second, ended.Elapsed(time.Now()))
}

func TestStore_BeginSession_UnknownSubject(t *testing.T) {
	store, _ := setupTestStore(t)

	_, err := store.BeginSession("missing")

	assert.True(t, IsNotFound(err))
	sessions, err := store.ListSessions(SessionFilter{})
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestStore_EndSession_UnknownID(t *testing.T) {
	store, _ := setupTestStore(t)

	_, err := store.EndSession("never-started")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_EndSession_Twice(t *testing.T) {
	store, _ := setupTestStore(t)

	math, err := store.AddSubject("Math")
	require.NoError(t, err)
	session, err := store.BeginSession(math.SubjectID)
	require.NoError(t, err)

	first, err := store.EndSession(session.SessionID)
	require.NoError(t, err)

	_, err = store.EndSession(session.SessionID)
	require.Error(t, err)
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "already ended", nf.Detail)

	sessions, err := store.ListSessions(SessionFilter{})
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, first.EndTime.String(), sessions[0].EndTime.String())
}

func TestStore_ListSessions_Filters(t *testing.T) {
	store, _ := setupTestStore(t)

	math, err := store.AddSubject("Math")
	require.NoError(t, err)
	physics, err := store.AddSubject("Physics")
	require.NoError(t, err)

	first, err := store.BeginSession(math.SubjectID)
	require.NoError(t, err)
	second, err := store.BeginSession(physics.SubjectID)
	require.NoError(t, err)
	third, err := store.BeginSession(math.SubjectID)
	require.NoError(t, err)

	all, err := store.ListSessions(SessionFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, first.SessionID, all[0].SessionID)
	assert.Equal(t, second.SessionID, all[1].SessionID)
	assert.Equal(t, third.SessionID, all[2].SessionID)

	mathOnly, err := store.ListSessions(SessionFilter{SubjectID: math.SubjectID})
	require.NoError(t, err)
	require.Len(t, mathOnly, 2)
	assert.Equal(t, first.SessionID, mathOnly[0].SessionID)
	assert.Equal(t, third.SessionID, mathOnly[1].SessionID)

	recent, err := store.ListSessions(SessionFilter{Since: second.StartTime.Time})
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, second.SessionID, recent[0].SessionID)
}

func TestStore_ActiveSessions(t *testing.T) {
	store, _ := setupTestStore(t)

	math, err := store.AddSubject("Math")
	require.NoError(t, err)
	done, err := store.BeginSession(math.SubjectID)
	require.NoError(t, err)
	running, err := store.BeginSession(math.SubjectID)
	require.NoError(t, err)
	_, err = store.EndSession(done.SessionID)
	require.NoError(t, err)

	active, err := store.ActiveSessions()

	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, running.SessionID, active[0].SessionID)
}

func TestStore_RoundTripIsExact(t *testing.T) {
	store, _ := setupTestStore(t)

	subject, err := store.AddSubject("Math")
	require.NoError(t, err)
	renamed, err := store.RenameSubject(subject.SubjectID, "Mathematics")
	require.NoError(t, err)
	session, err := store.BeginSession(subject.SubjectID)
	require.NoError(t, err)
	ended, err := store.EndSession(session.SessionID)
	require.NoError(t, err)
	open, err := store.BeginSession(subject.SubjectID)
	require.NoError(t, err)

	subjects, err := store.ListSubjects()
	require.NoError(t, err)
	require.Len(t, subjects, 1)
	assert.Equal(t, *renamed, subjects[0])
	assert.Equal(t, renamed.AddedTime.String(), subjects[0].AddedTime.String())
	assert.Equal(t, renamed.UpdatedTime.String(), subjects[0].UpdatedTime.String())

	sessions, err := store.ListSessions(SessionFilter{SubjectID: subject.SubjectID})
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, *ended, sessions[0])
	assert.Equal(t, *open, sessions[1])
	assert.True(t, sessions[1].EndTime.IsZero())
	assert.Nil(t, sessions[1].Duration)
}

func TestStore_Summary(t *testing.T) {
	store, _ := setupTestStore(t)

	math, err := store.AddSubject("Math")
	require.NoError(t, err)
	_, err = store.AddSubject("History")
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		session, err := store.BeginSession(math.SubjectID)
		require.NoError(t, err)
		_, err = store.EndSession(session.SessionID)
		require.NoError(t, err)
	}
	_, err = store.BeginSession(math.SubjectID) // still running, not counted
	require.NoError(t, err)

	summary, err := store.Summary()

	require.NoError(t, err)
	require.Len(t, summary, 2)
	assert.Equal(t, models.SubjectSummary{
		SubjectID:    math.SubjectID,
		SubjectName:  "Math",
		Sessions:     2,
		TotalSeconds: 180,
	}, summary[0])
	assert.Equal(t, "History", summary[1].SubjectName)
	assert.Zero(t, summary[1].Sessions)
	assert.Zero(t, summary[1].TotalSeconds)
}
