package db

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/balkashynov/studytime/internal/config"
)

// Store is the handle returned by Initialize. It owns all persisted state;
// every exported method is one logical transaction.
type Store struct {
	db    *gorm.DB
	mu    sync.Mutex
	now   func() time.Time
	newID func() string
	log   *log.Logger
}

type options struct {
	now      func() time.Time
	newID    func() string
	log      *log.Logger
	sqlLevel logger.LogLevel
}

// Option customizes a Store
type Option func(*options)

// WithClock replaces time.Now as the source of every stored timestamp
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithIDGenerator replaces the UUID generator used for new identifiers
func WithIDGenerator(newID func() string) Option {
	return func(o *options) {
		o.newID = newID
	}
}

// WithLogger routes schema and SQL logging to w
func WithLogger(w io.Writer, sqlLevel logger.LogLevel) Option {
	return func(o *options) {
		o.log = log.New(w, "studytime: ", log.LstdFlags)
		o.sqlLevel = sqlLevel
	}
}

// Initialize opens the store at settings.DatabaseFile, creates any missing
// table and validates the existing ones. It is called once at startup.
func Initialize(settings *config.Settings, opts ...Option) (*Store, error) {
	o := options{
		now:      time.Now,
		newID:    uuid.NewString,
		log:      log.New(io.Discard, "", 0),
		sqlLevel: logger.Silent, // Quiet by default
	}
	for _, opt := range opts {
		opt(&o)
	}

	dbPath := settings.DatabaseFile
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	gdb, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.New(o.log, logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  o.sqlLevel,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access database handle: %w", err)
	}
	// Single writer: one connection serializes everything on the file.
	sqlDB.SetMaxOpenConns(1)

	s := &Store{
		db:    gdb,
		now:   o.now,
		newID: o.newID,
		log:   o.log,
	}

	if err := s.ensureSchema(settings.Version); err != nil {
		s.Close()
		return nil, err
	}

	s.log.Printf("database ready at %s (schema version %d)", dbPath, settings.Version)
	return s, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// transaction runs fn in a single transaction while holding the store lock,
// so a check-then-act sequence cannot interleave with another call.
func (s *Store) transaction(fn func(tx *gorm.DB) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Transaction(fn)
}

// freshID draws identifiers until one is unused in table.column
func (s *Store) freshID(tx *gorm.DB, table, column string) (string, error) {
	for {
		id := s.newID()
		var count int64
		if err := tx.Table(table).Where(column+" = ?", id).Count(&count).Error; err != nil {
			return "", fmt.Errorf("failed to check %s uniqueness: %w", column, err)
		}
		if count == 0 {
			return id, nil
		}
	}
}
