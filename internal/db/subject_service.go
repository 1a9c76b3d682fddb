package db

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"gorm.io/gorm"

	"github.com/balkashynov/studytime/internal/models"
)

// sameName compares subject names case-insensitively (Unicode case folding)
func sameName(a, b string) bool {
	fold := cases.Fold()
	return fold.String(a) == fold.String(b)
}

// ListSubjects returns all subjects in stable read order
func (s *Store) ListSubjects() ([]models.Subject, error) {
	var subjects []models.Subject
	err := s.transaction(func(tx *gorm.DB) error {
		return tx.Order("added_time, subject_id").Find(&subjects).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list subjects: %w", err)
	}
	return subjects, nil
}

// GetSubject retrieves a subject by ID
func (s *Store) GetSubject(id string) (*models.Subject, error) {
	var subject *models.Subject
	err := s.transaction(func(tx *gorm.DB) error {
		var err error
		subject, err = findSubject(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return subject, nil
}

// ResolveSubject finds a subject by ID, falling back to a case-insensitive
// name match.
func (s *Store) ResolveSubject(ref string) (*models.Subject, error) {
	ref = strings.TrimSpace(ref)
	subjects, err := s.ListSubjects()
	if err != nil {
		return nil, err
	}
	for i := range subjects {
		if subjects[i].SubjectID == ref {
			return &subjects[i], nil
		}
	}
	for i := range subjects {
		if sameName(subjects[i].SubjectName, ref) {
			return &subjects[i], nil
		}
	}
	return nil, &NotFoundError{Entity: "subject", ID: ref}
}

// AddSubject creates a new subject named name (trimmed)
func (s *Store) AddSubject(name string) (*models.Subject, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	var subject models.Subject
	err := s.transaction(func(tx *gorm.DB) error {
		var existing []models.Subject
		if err := tx.Find(&existing).Error; err != nil {
			return fmt.Errorf("failed to read subjects: %w", err)
		}
		for _, e := range existing {
			if sameName(e.SubjectName, name) {
				return fmt.Errorf("%w: %q", ErrDuplicateName, e.SubjectName)
			}
		}

		id, err := s.freshID(tx, models.Subject{}.TableName(), "subject_id")
		if err != nil {
			return err
		}

		now := models.NewTimestamp(s.now())
		subject = models.Subject{
			SubjectID:   id,
			SubjectName: name,
			AddedTime:   now,
			UpdatedTime: now,
		}
		if err := tx.Create(&subject).Error; err != nil {
			return fmt.Errorf("failed to create subject: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &subject, nil
}

// RenameSubject changes a subject's name and bumps its updated_time
func (s *Store) RenameSubject(id, newName string) (*models.Subject, error) {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return nil, ErrEmptyName
	}

	var subject *models.Subject
	err := s.transaction(func(tx *gorm.DB) error {
		var existing []models.Subject
		if err := tx.Find(&existing).Error; err != nil {
			return fmt.Errorf("failed to read subjects: %w", err)
		}

		for i := range existing {
			if existing[i].SubjectID == id {
				subject = &existing[i]
				break
			}
		}
		if subject == nil {
			return &NotFoundError{Entity: "subject", ID: id}
		}
		if subject.SubjectName == newName {
			return ErrNoChange
		}
		for _, e := range existing {
			if e.SubjectID != id && sameName(e.SubjectName, newName) {
				return fmt.Errorf("%w: %q", ErrDuplicateName, e.SubjectName)
			}
		}

		now := models.NewTimestamp(s.now())
		err := tx.Model(&models.Subject{}).
			Where("subject_id = ?", id).
			Updates(map[string]any{
				"subject_name": newName,
				"updated_time": now,
			}).Error
		if err != nil {
			return fmt.Errorf("failed to rename subject: %w", err)
		}

		subject.SubjectName = newName
		subject.UpdatedTime = now
		return nil
	})
	if err != nil {
		return nil, err
	}

	return subject, nil
}

// DeleteSubject removes a subject together with all of its sessions
func (s *Store) DeleteSubject(id string) error {
	return s.transaction(func(tx *gorm.DB) error {
		if _, err := findSubject(tx, id); err != nil {
			return err
		}
		if err := tx.Where("subject_id = ?", id).Delete(&models.Session{}).Error; err != nil {
			return fmt.Errorf("failed to delete sessions of subject %s: %w", id, err)
		}
		if err := tx.Where("subject_id = ?", id).Delete(&models.Subject{}).Error; err != nil {
			return fmt.Errorf("failed to delete subject %s: %w", id, err)
		}
		return nil
	})
}

func findSubject(tx *gorm.DB, id string) (*models.Subject, error) {
	var subject models.Subject
	err := tx.Where("subject_id = ?", id).Take(&subject).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Entity: "subject", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read subject %s: %w", id, err)
	}
	return &subject, nil
}
