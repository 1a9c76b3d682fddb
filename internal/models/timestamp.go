package models

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// TimestampLayout is how timestamps are stored: ISO-8601 text in UTC with a
// fixed-width fraction, so text order in SQL matches chronological order.
const TimestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Timestamp is a time.Time persisted as ISO-8601 text. The zero value maps to NULL.
type Timestamp struct {
	time.Time
}

// NewTimestamp normalizes t to UTC without a monotonic reading so that a value
// read back from the store compares equal to the one written.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.UTC().Round(0)}
}

// Value implements driver.Valuer
func (t Timestamp) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return t.UTC().Format(TimestampLayout), nil
}

// Scan implements sql.Scanner
func (t *Timestamp) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		t.Time = time.Time{}
		return nil
	case string:
		return t.parse(v)
	case []byte:
		return t.parse(string(v))
	case time.Time:
		*t = NewTimestamp(v)
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Timestamp", src)
	}
}

func (t *Timestamp) parse(s string) error {
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	parsed, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	*t = NewTimestamp(parsed)
	return nil
}

// String returns the stored text form
func (t Timestamp) String() string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(TimestampLayout)
}
