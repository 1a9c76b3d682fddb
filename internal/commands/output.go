package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/balkashynov/studytime/internal/models"
	"github.com/balkashynov/studytime/internal/parser"
)

const dateTimeLayout = "2006-01-02 15:04"

func renderSubjectTable(w io.Writer, subjects []models.Subject, loc *time.Location) {
	fmt.Fprintf(w, "%-8s %-30s %-16s %s\n", "ID", "NAME", "ADDED", "UPDATED")
	fmt.Fprintln(w, strings.Repeat("-", 72))
	for _, s := range subjects {
		fmt.Fprintf(w, "%-8s %-30s %-16s %s\n",
			shortID(s.SubjectID),
			truncate(s.SubjectName, 30),
			s.AddedTime.In(loc).Format(dateTimeLayout),
			s.UpdatedTime.In(loc).Format(dateTimeLayout),
		)
	}
}

// renderSessionTable prints sessions in the given order. names maps subject
// ids to display names.
func renderSessionTable(w io.Writer, sessions []models.Session, names map[string]string, now time.Time, loc *time.Location) {
	fmt.Fprintf(w, "%-8s %-20s %-16s %-16s %s\n", "ID", "SUBJECT", "START", "END", "DURATION")
	fmt.Fprintln(w, strings.Repeat("-", 72))

	var total time.Duration
	for _, s := range sessions {
		name, ok := names[s.SubjectID]
		if !ok {
			name = "(deleted)"
		}
		end := "running"
		if s.Finished() {
			end = s.EndTime.In(loc).Format(dateTimeLayout)
		}
		elapsed := s.Elapsed(now)
		total += elapsed

		fmt.Fprintf(w, "%-8s %-20s %-16s %-16s %s\n",
			shortID(s.SessionID),
			truncate(name, 20),
			s.StartTime.In(loc).Format(dateTimeLayout),
			end,
			parser.FormatDuration(elapsed),
		)
	}

	fmt.Fprintln(w, strings.Repeat("-", 72))
	fmt.Fprintf(w, "%d sessions, %s in total\n", len(sessions), parser.FormatDuration(total))
}

func renderSummaryTable(w io.Writer, rows []models.SubjectSummary) {
	fmt.Fprintf(w, "%-20s %8s %10s\n", "SUBJECT", "SESSIONS", "TOTAL")
	fmt.Fprintln(w, strings.Repeat("-", 40))

	var sessions, seconds int64
	for _, r := range rows {
		fmt.Fprintf(w, "%-20s %8d %10s\n",
			truncate(r.SubjectName, 20),
			r.Sessions,
			parser.FormatDuration(time.Duration(r.TotalSeconds)*time.Second),
		)
		sessions += r.Sessions
		seconds += r.TotalSeconds
	}

	fmt.Fprintln(w, strings.Repeat("-", 40))
	fmt.Fprintf(w, "%-20s %8d %10s\n", "Total", sessions,
		parser.FormatDuration(time.Duration(seconds)*time.Second))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}
