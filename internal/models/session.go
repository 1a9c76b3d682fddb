package models

import "time"

// Session is one timed interval of studying against a subject
type Session struct {
	SessionID string    `gorm:"column:session_id;primaryKey" json:"session_id"`
	SubjectID string    `gorm:"column:subject_id" json:"subject_id"`
	StartTime Timestamp `gorm:"column:start_time" json:"start_time"`
	EndTime   Timestamp `gorm:"column:end_time" json:"end_time"` // zero while in progress
	Duration  *int64    `gorm:"column:duration" json:"duration"` // seconds, nil while in progress
}

// TableName overrides the gorm default
func (Session) TableName() string {
	return "fact_session"
}

// Finished reports whether the session has been ended
func (s Session) Finished() bool {
	return !s.EndTime.IsZero()
}

// Elapsed returns the stored duration of a finished session, or the time
// since start for one still running.
func (s Session) Elapsed(now time.Time) time.Duration {
	if s.Duration != nil {
		return time.Duration(*s.Duration) * time.Second
	}
	return now.Sub(s.StartTime.Time)
}
