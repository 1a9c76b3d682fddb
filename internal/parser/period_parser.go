package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	dateRegex     = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	relativeRegex = regexp.MustCompile(`^(\d+)\s*(h|hour|hours|d|day|days|w|week|weeks)$`)
)

// ParseSince turns a --since expression into the start of a time window
// ending at now. Supported formats:
// - "today" / "yesterday"
// - dd/mm/yyyy (e.g., "15/12/2024"), start of that day
// - X hours (e.g., "3 hours", "3h")
// - X days (e.g., "7 days", "7d"), counted from the start of today
// - X weeks (e.g., "2 weeks", "2w"), counted from the start of today
// An empty input returns the zero time, meaning no lower bound.
func ParseSince(input string, now time.Time) (time.Time, error) {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return time.Time{}, nil
	}

	today := startOfDay(now)
	switch input {
	case "today":
		return today, nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	}

	if since, err := parseDateFormat(input, now.Location()); err == nil {
		if since.After(now) {
			return time.Time{}, fmt.Errorf("date %s is in the future", input)
		}
		return since, nil
	}

	if since, err := parseRelativeTime(input, now); err == nil {
		return since, nil
	}

	return time.Time{}, fmt.Errorf("invalid period %q. Use: today, yesterday, dd/mm/yyyy, X hours, X days, or X weeks", input)
}

// parseDateFormat parses dd/mm/yyyy format
func parseDateFormat(input string, loc *time.Location) (time.Time, error) {
	matches := dateRegex.FindStringSubmatch(input)
	if len(matches) != 4 {
		return time.Time{}, fmt.Errorf("invalid date format")
	}

	day, _ := strconv.Atoi(matches[1])
	month, _ := strconv.Atoi(matches[2])
	year, _ := strconv.Atoi(matches[3])

	if day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("day must be between 1 and 31")
	}
	if month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("month must be between 1 and 12")
	}

	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)

	// Check if date is valid (handles leap years, etc.)
	if date.Day() != day || date.Month() != time.Month(month) || date.Year() != year {
		return time.Time{}, fmt.Errorf("invalid date")
	}

	return date, nil
}

// parseRelativeTime parses "3 days", "24h", "2 weeks" and friends
func parseRelativeTime(input string, now time.Time) (time.Time, error) {
	matches := relativeRegex.FindStringSubmatch(input)
	if len(matches) != 3 {
		return time.Time{}, fmt.Errorf("invalid relative time format")
	}

	amount, err := strconv.Atoi(matches[1])
	if err != nil || amount < 1 {
		return time.Time{}, fmt.Errorf("amount must be a positive number")
	}

	switch matches[2] {
	case "h", "hour", "hours":
		if amount > 8760 { // Max 1 year in hours
			return time.Time{}, fmt.Errorf("hours must be between 1 and 8760")
		}
		return now.Add(-time.Duration(amount) * time.Hour), nil

	case "d", "day", "days":
		if amount > 365 {
			return time.Time{}, fmt.Errorf("days must be between 1 and 365")
		}
		return startOfDay(now).AddDate(0, 0, -(amount - 1)), nil

	case "w", "week", "weeks":
		if amount > 52 {
			return time.Time{}, fmt.Errorf("weeks must be between 1 and 52")
		}
		return startOfDay(now).AddDate(0, 0, -(amount*7 - 1)), nil

	default:
		return time.Time{}, fmt.Errorf("unsupported time unit")
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// FormatDuration formats a duration in a human-readable way
func FormatDuration(d time.Duration) string {
	if d.Hours() >= 1 {
		return fmt.Sprintf("%.1fh", d.Hours())
	} else if d.Minutes() >= 1 {
		return fmt.Sprintf("%.0fm", d.Minutes())
	} else {
		return fmt.Sprintf("%.0fs", d.Seconds())
	}
}

// FormatClock formats a duration as HH:MM:SS
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}
