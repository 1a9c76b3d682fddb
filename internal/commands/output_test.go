package commands

import (
	"bytes"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"

	"github.com/balkashynov/studytime/internal/models"
)

func newGoldie(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func at(day, hour, minute, second int) models.Timestamp {
	return models.NewTimestamp(time.Date(2024, 3, day, hour, minute, second, 0, time.UTC))
}

func seconds(n int64) *int64 {
	return &n
}

var fixtureSubjects = []models.Subject{
	{
		SubjectID:   "3f2a9c1e-5b7d-4e8f-9a0b-1c2d3e4f5a6b",
		SubjectName: "Linear Algebra",
		AddedTime:   at(1, 9, 0, 0),
		UpdatedTime: at(2, 10, 30, 0),
	},
	{
		SubjectID:   "b71d04e2-8c9a-4b3d-a5e6-f7081920a1b2",
		SubjectName: "History of Medieval Europe and Beyond",
		AddedTime:   at(3, 8, 15, 0),
		UpdatedTime: at(3, 8, 15, 0),
	},
}

func TestRenderSubjectTable(t *testing.T) {
	var buf bytes.Buffer
	renderSubjectTable(&buf, fixtureSubjects, time.UTC)
	newGoldie(t).Assert(t, "subject_table", buf.Bytes())
}

func TestRenderSessionTable(t *testing.T) {
	names := map[string]string{}
	for _, s := range fixtureSubjects {
		names[s.SubjectID] = s.SubjectName
	}

	sessions := []models.Session{
		{
			SessionID: "0c9e1f44-2a3b-4c5d-8e9f-a0b1c2d3e4f5",
			SubjectID: fixtureSubjects[0].SubjectID,
			StartTime: at(4, 9, 0, 0),
			EndTime:   at(4, 10, 30, 0),
			Duration:  seconds(5400),
		},
		{
			SessionID: "5d8a2b90-6e7f-4a1b-9c2d-3e4f5a6b7c8d",
			SubjectID: fixtureSubjects[1].SubjectID,
			StartTime: at(4, 14, 0, 0),
			EndTime:   at(4, 14, 44, 0),
			Duration:  seconds(2640),
		},
		{
			SessionID: "e4f6a7b8-1c2d-4e3f-8a9b-0c1d2e3f4a5b",
			SubjectID: "subject-that-was-removed",
			StartTime: at(5, 8, 0, 0),
			EndTime:   at(5, 8, 0, 30),
			Duration:  seconds(30),
		},
		{
			SessionID: "9a1b2c3d-4e5f-4a6b-8c7d-9e0f1a2b3c4d",
			SubjectID: fixtureSubjects[0].SubjectID,
			StartTime: at(5, 9, 0, 0),
		},
	}
	now := time.Date(2024, 3, 5, 9, 25, 0, 0, time.UTC)

	var buf bytes.Buffer
	renderSessionTable(&buf, sessions, names, now, time.UTC)
	newGoldie(t).Assert(t, "session_table", buf.Bytes())
}

func TestRenderSummaryTable(t *testing.T) {
	rows := []models.SubjectSummary{
		{SubjectID: fixtureSubjects[0].SubjectID, SubjectName: "Linear Algebra", Sessions: 1, TotalSeconds: 5400},
		{SubjectID: fixtureSubjects[1].SubjectID, SubjectName: "History of Medieval Europe and Beyond", Sessions: 1, TotalSeconds: 2640},
		{SubjectID: "c0ffee00-0000-4000-8000-000000000000", SubjectName: "Chemistry"},
	}

	var buf bytes.Buffer
	renderSummaryTable(&buf, rows)
	newGoldie(t).Assert(t, "summary_table", buf.Bytes())
}
