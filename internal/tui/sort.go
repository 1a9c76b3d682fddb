package tui

import (
	"sort"
	"strings"

	"github.com/balkashynov/studytime/internal/models"
)

// SortOrder is how the subjects screen orders its rows. Orders form a fixed
// ring walked by Next.
type SortOrder int

const (
	SortByNameAsc SortOrder = iota
	SortByNameDesc
	SortByRecentlyUpdated
	SortByOldestAdded

	sortOrderCount
)

// Next returns the following order in the ring
func (o SortOrder) Next() SortOrder {
	return (o + 1) % sortOrderCount
}

func (o SortOrder) String() string {
	switch o {
	case SortByNameAsc:
		return "name ↑"
	case SortByNameDesc:
		return "name ↓"
	case SortByRecentlyUpdated:
		return "recently updated"
	case SortByOldestAdded:
		return "oldest added"
	default:
		return "unknown"
	}
}

// Apply sorts subjects in place
func (o SortOrder) Apply(subjects []models.Subject) {
	var less func(a, b models.Subject) bool
	switch o {
	case SortByNameDesc:
		less = func(a, b models.Subject) bool { return strings.ToLower(a.SubjectName) > strings.ToLower(b.SubjectName) }
	case SortByRecentlyUpdated:
		less = func(a, b models.Subject) bool { return a.UpdatedTime.After(b.UpdatedTime.Time) }
	case SortByOldestAdded:
		less = func(a, b models.Subject) bool { return a.AddedTime.Before(b.AddedTime.Time) }
	default:
		less = func(a, b models.Subject) bool { return strings.ToLower(a.SubjectName) < strings.ToLower(b.SubjectName) }
	}
	sort.SliceStable(subjects, func(i, j int) bool { return less(subjects[i], subjects[j]) })
}
