package domain

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the ISO calendar date format used for Task.Date and the selection.
const DateLayout = "2006-01-02"

// ParseDate parses an ISO calendar date in the local time zone.
func ParseDate(value string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(value), time.Local)
	if err != nil {
		return time.Time{}, WrapError(ErrCodeInvalid, fmt.Sprintf("invalid date %q", value), err)
	}
	return t, nil
}

// FormatDate renders t as an ISO calendar date.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Today is the local calendar date of now.
func Today(now time.Time) string {
	return FormatDate(now.In(time.Local))
}

// ShiftDate moves an ISO date by the given number of days.
func ShiftDate(date string, days int) (string, error) {
	t, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return FormatDate(t.AddDate(0, 0, days)), nil
}

// DateHeading is the caption pair shown above the day's task list.
type DateHeading struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	IsToday  bool   `json:"isToday"`
}

// Heading renders "Today" for the current day and "Wed, Oct 14" otherwise.
// The subtitle always carries the full weekday name.
func Heading(selected, today string) (DateHeading, error) {
	t, err := ParseDate(selected)
	if err != nil {
		return DateHeading{}, err
	}
	day := t.Weekday().String()
	month := t.Format("Jan")
	h := DateHeading{
		Title:    fmt.Sprintf("%s, %s %d", day[:3], month, t.Day()),
		Subtitle: fmt.Sprintf("%s, %s %d", day, month, t.Day()),
		IsToday:  selected == today,
	}
	if h.IsToday {
		h.Title = "Today"
	}
	return h, nil
}
