package db

import (
	"errors"
	"fmt"
	"strconv"

	"gorm.io/gorm"

	"github.com/balkashynov/studytime/internal/config"
	"github.com/balkashynov/studytime/internal/models"
)

// table describes one required table: how to create it and how to check it
// when it already exists.
type table struct {
	name     string
	ddl      string
	seed     func(tx *gorm.DB, version int) error
	validate func(tx *gorm.DB, version int) error
}

// requiredTables is in creation order: meta first, then parents before dependents.
var requiredTables = []table{
	{
		name:     "meta_info",
		ddl:      "CREATE TABLE meta_info(key TEXT PRIMARY KEY, value) WITHOUT ROWID",
		seed:     seedMetaInfo,
		validate: validateMetaInfo,
	},
	{
		name:     "dim_subject",
		ddl:      "CREATE TABLE dim_subject(subject_id TEXT PRIMARY KEY, subject_name TEXT, added_time TEXT, updated_time TEXT)",
		validate: trustExisting,
	},
	{
		name:     "fact_session",
		ddl:      "CREATE TABLE fact_session(session_id TEXT PRIMARY KEY, subject_id TEXT, start_time TEXT, end_time TEXT, duration INT)",
		validate: trustExisting,
	},
}

// ensureSchema creates missing tables and validates existing ones
func (s *Store) ensureSchema(version int) error {
	existing, err := s.catalog()
	if err != nil {
		return fmt.Errorf("failed to read schema catalog: %w", err)
	}

	for _, t := range requiredTables {
		if existing[t.name] {
			if err := t.validate(s.db, version); err != nil {
				return err
			}
			s.log.Printf("validated table %s", t.name)
			continue
		}

		err := s.db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Exec(t.ddl).Error; err != nil {
				return fmt.Errorf("failed to create table %s: %w", t.name, err)
			}
			if t.seed != nil {
				return t.seed(tx, version)
			}
			return nil
		})
		if err != nil {
			return err
		}
		s.log.Printf("created table %s", t.name)
	}

	return nil
}

// catalog returns the names of the tables already present in the store
func (s *Store) catalog() (map[string]bool, error) {
	var names []string
	if err := s.db.Raw("SELECT name FROM sqlite_master WHERE type = ?", "table").Scan(&names).Error; err != nil {
		return nil, err
	}

	tables := make(map[string]bool, len(names))
	for _, name := range names {
		tables[name] = true
	}
	return tables, nil
}

func seedMetaInfo(tx *gorm.DB, version int) error {
	meta := models.MetaInfo{Key: models.VersionKey, Value: strconv.Itoa(version)}
	if err := tx.Create(&meta).Error; err != nil {
		return fmt.Errorf("failed to write schema version: %w", err)
	}
	return nil
}

// validateMetaInfo fails unless the stored version equals the configured one.
// There is no migration path: a mismatch stops the program.
func validateMetaInfo(tx *gorm.DB, version int) error {
	var meta models.MetaInfo
	err := tx.Where("key = ?", models.VersionKey).Take(&meta).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &config.StartupError{Reason: "meta_info has no Version record"}
	}
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	stored, err := strconv.Atoi(meta.Value)
	if err != nil {
		return &config.StartupError{Reason: fmt.Sprintf("stored schema version %q is not a number", meta.Value), Err: err}
	}
	if stored != version {
		return &config.StartupError{
			Reason: fmt.Sprintf("store was created with schema version %d but settings require version %d", stored, version),
		}
	}
	return nil
}

// trustExisting accepts a table as-is. Structural drift of the entity tables
// is not checked.
func trustExisting(*gorm.DB, int) error {
	return nil
}
