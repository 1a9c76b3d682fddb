package db

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/balkashynov/studytime/internal/models"
)

// SessionFilter narrows ListSessions. The zero value matches every session.
type SessionFilter struct {
	SubjectID string
	Since     time.Time // lower bound on start_time
}

// BeginSession starts a new study session for a subject
func (s *Store) BeginSession(subjectID string) (*models.Session, error) {
	var session models.Session
	err := s.transaction(func(tx *gorm.DB) error {
		if _, err := findSubject(tx, subjectID); err != nil {
			return err
		}

		id, err := s.freshID(tx, models.Session{}.TableName(), "session_id")
		if err != nil {
			return err
		}

		session = models.Session{
			SessionID: id,
			SubjectID: subjectID,
			StartTime: models.NewTimestamp(s.now()),
		}
		if err := tx.Create(&session).Error; err != nil {
			return fmt.Errorf("failed to create session: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &session, nil
}

// EndSession finalizes a running session: end_time is stamped and the
// duration computed. Ending an unknown or already finished session fails.
func (s *Store) EndSession(sessionID string) (*models.Session, error) {
	var session models.Session
	err := s.transaction(func(tx *gorm.DB) error {
		err := tx.Where("session_id = ?", sessionID).Take(&session).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Entity: "session", ID: sessionID}
		}
		if err != nil {
			return fmt.Errorf("failed to read session %s: %w", sessionID, err)
		}
		if session.Finished() {
			return &NotFoundError{Entity: "session", ID: sessionID, Detail: "already ended"}
		}

		end := models.NewTimestamp(s.now())
		// keep start_time <= end_time even if the wall clock stepped back
		if end.Before(session.StartTime.Time) {
			end = session.StartTime
		}
		duration := int64(end.Sub(session.StartTime.Time) / time.Second)

		err = tx.Model(&models.Session{}).
			Where("session_id = ?", sessionID).
			Updates(map[string]any{
				"end_time": end,
				"duration": duration,
			}).Error
		if err != nil {
			return fmt.Errorf("failed to end session: %w", err)
		}

		session.EndTime = end
		session.Duration = &duration
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &session, nil
}

// ListSessions returns sessions ordered by start time
func (s *Store) ListSessions(filter SessionFilter) ([]models.Session, error) {
	var sessions []models.Session
	err := s.transaction(func(tx *gorm.DB) error {
		query := tx.Model(&models.Session{})
		if filter.SubjectID != "" {
			query = query.Where("subject_id = ?", filter.SubjectID)
		}
		if !filter.Since.IsZero() {
			query = query.Where("start_time >= ?", models.NewTimestamp(filter.Since))
		}
		return query.Order("start_time, session_id").Find(&sessions).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return sessions, nil
}

// ActiveSessions returns the sessions that have not been ended yet
func (s *Store) ActiveSessions() ([]models.Session, error) {
	var sessions []models.Session
	err := s.transaction(func(tx *gorm.DB) error {
		return tx.Where("end_time IS NULL").Order("start_time, session_id").Find(&sessions).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list active sessions: %w", err)
	}
	return sessions, nil
}

// Summary returns per-subject totals over finished sessions. Subjects without
// any finished session are included with zero totals.
func (s *Store) Summary() ([]models.SubjectSummary, error) {
	var summary []models.SubjectSummary
	err := s.transaction(func(tx *gorm.DB) error {
		return tx.Table("dim_subject AS s").
			Select("s.subject_id AS subject_id, s.subject_name AS subject_name, " +
				"COUNT(f.session_id) AS sessions, COALESCE(SUM(f.duration), 0) AS total_seconds").
			Joins("LEFT JOIN fact_session AS f ON f.subject_id = s.subject_id AND f.end_time IS NOT NULL").
			Group("s.subject_id, s.subject_name").
			Order("total_seconds DESC, s.subject_name").
			Scan(&summary).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to summarize sessions: %w", err)
	}
	return summary, nil
}
