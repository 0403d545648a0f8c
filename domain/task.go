package domain

import (
	"encoding/json"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"
)

// DefaultCompletionTimeGoal is the time pre-filled into a new task form.
const DefaultCompletionTimeGoal = "7:00 PM"

// MaxTitleLength is the longest accepted task title, in characters, after trimming.
const MaxTitleLength = 100

var timeGoalPattern = regexp.MustCompile(`(?i)^(0?[1-9]|1[0-2]):[0-5][0-9]\s?(AM|PM)$`)

// IsTimeGoal reports whether value is a 12-hour clock time such as "7:00 PM".
func IsTimeGoal(value string) bool {
	return timeGoalPattern.MatchString(strings.TrimSpace(value))
}

var (
	// AlertOptions is the pre-deadline alert menu, in minutes before the goal.
	AlertOptions = []int{5, 10, 15}
	// SnoozeOptions is the default snooze menu, in minutes.
	SnoozeOptions = []int{5, 10, 15}
	// CategoryOptions are the category chips offered by the task form.
	CategoryOptions = []string{"Cleaning", "Errand", "Work", "Study", "Personal", "Home", "Other"}
)

// Task represents one schedulable chore.
type Task struct {
	ID                   string         `json:"id"`
	Title                string         `json:"title"`
	Date                 string         `json:"date"`
	CompletionTimeGoal   string         `json:"completionTimeGoal"`
	RepeatDays           WeekdaySet     `json:"repeatDays"`
	MonthlyPattern       MonthlyPattern `json:"monthlyPattern"`
	IsOverdue            bool           `json:"isOverdue"`
	IsComplete           bool           `json:"isComplete"`
	URL                  string         `json:"url,omitempty"`
	Location             string         `json:"location,omitempty"`
	Notes                string         `json:"notes,omitempty"`
	CategoryTags         []string       `json:"categoryTags"`
	PreDeadlineAlerts    []int          `json:"preDeadlineAlerts"`
	DefaultSnoozeMinutes *int           `json:"defaultSnoozeMinutes"`
}

// HasCategory reports whether the task is tagged with category.
func (t *Task) HasCategory(category string) bool {
	return t != nil && slices.Contains(t.CategoryTags, category)
}

// Clone returns a deep copy so callers never share slices with the owner.
func (t Task) Clone() Task {
	out := t
	out.CategoryTags = slices.Clone(t.CategoryTags)
	out.PreDeadlineAlerts = slices.Clone(t.PreDeadlineAlerts)
	if out.CategoryTags == nil {
		out.CategoryTags = []string{}
	}
	if out.PreDeadlineAlerts == nil {
		out.PreDeadlineAlerts = []int{}
	}
	if t.DefaultSnoozeMinutes != nil {
		v := *t.DefaultSnoozeMinutes
		out.DefaultSnoozeMinutes = &v
	}
	return out
}

// MonthlyPattern is a recurrence rule evaluated once per month.
type MonthlyPattern string

const (
	MonthlyNone          MonthlyPattern = ""
	MonthlyLastDay       MonthlyPattern = "LAST_DAY"
	MonthlyThirdSaturday MonthlyPattern = "THIRD_SATURDAY"
)

// Valid reports whether p is one of the known patterns.
func (p MonthlyPattern) Valid() bool {
	switch p {
	case MonthlyNone, MonthlyLastDay, MonthlyThirdSaturday:
		return true
	}
	return false
}

// Label is the caption shown on a task card.
func (p MonthlyPattern) Label() string {
	switch p {
	case MonthlyLastDay:
		return "Last day of month"
	case MonthlyThirdSaturday:
		return "Third Saturday"
	default:
		return ""
	}
}

func (p MonthlyPattern) MarshalJSON() ([]byte, error) {
	if p == MonthlyNone {
		return []byte("null"), nil
	}
	return json.Marshal(string(p))
}

func (p *MonthlyPattern) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*p = MonthlyNone
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed := MonthlyPattern(strings.ToUpper(strings.TrimSpace(raw)))
	if !parsed.Valid() {
		return fmt.Errorf("unknown monthly pattern %q", raw)
	}
	*p = parsed
	return nil
}

// WeekdaySet is a set over the seven days of the week.
type WeekdaySet uint8

var weekdayNames = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// NewWeekdaySet builds a set from the given days. Duplicates collapse.
func NewWeekdaySet(days ...time.Weekday) WeekdaySet {
	var s WeekdaySet
	for _, d := range days {
		s = s.With(d)
	}
	return s
}

// ParseWeekday accepts a short ("Mon") or full ("Monday") day name, case-insensitively.
func ParseWeekday(name string) (time.Weekday, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, short := range weekdayNames {
		full := strings.ToLower(time.Weekday(i).String())
		if name == strings.ToLower(short) || name == full {
			return time.Weekday(i), nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", name)
}

// WeekdayName is the short marker for d.
func WeekdayName(d time.Weekday) string {
	if d < time.Sunday || d > time.Saturday {
		return ""
	}
	return weekdayNames[d]
}

func (s WeekdaySet) Has(d time.Weekday) bool {
	if d < time.Sunday || d > time.Saturday {
		return false
	}
	return s&(1<<uint(d)) != 0
}

func (s WeekdaySet) With(d time.Weekday) WeekdaySet {
	if d < time.Sunday || d > time.Saturday {
		return s
	}
	return s | 1<<uint(d)
}

func (s WeekdaySet) Without(d time.Weekday) WeekdaySet {
	if d < time.Sunday || d > time.Saturday {
		return s
	}
	return s &^ (1 << uint(d))
}

func (s WeekdaySet) Toggle(d time.Weekday) WeekdaySet {
	if s.Has(d) {
		return s.Without(d)
	}
	return s.With(d)
}

// Days lists the members in calendar order, Sunday first.
func (s WeekdaySet) Days() []time.Weekday {
	out := make([]time.Weekday, 0, 7)
	for d := time.Sunday; d <= time.Saturday; d++ {
		if s.Has(d) {
			out = append(out, d)
		}
	}
	return out
}

func (s WeekdaySet) Len() int {
	return len(s.Days())
}

// Names lists the short day markers in calendar order.
func (s WeekdaySet) Names() []string {
	days := s.Days()
	out := make([]string, 0, len(days))
	for _, d := range days {
		out = append(out, weekdayNames[d])
	}
	return out
}

func (s WeekdaySet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Names())
}

func (s *WeekdaySet) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return err
	}
	var out WeekdaySet
	for _, name := range names {
		d, err := ParseWeekday(name)
		if err != nil {
			return err
		}
		out = out.With(d)
	}
	*s = out
	return nil
}

// IsAlertOption reports whether minutes is on the pre-deadline alert menu.
func IsAlertOption(minutes int) bool {
	return slices.Contains(AlertOptions, minutes)
}

// IsSnoozeOption reports whether minutes is on the default snooze menu.
func IsSnoozeOption(minutes int) bool {
	return slices.Contains(SnoozeOptions, minutes)
}

// NormalizeAlerts returns alerts sorted ascending with duplicates removed.
func NormalizeAlerts(alerts []int) []int {
	out := slices.Clone(alerts)
	slices.Sort(out)
	out = slices.Compact(out)
	if out == nil {
		out = []int{}
	}
	return out
}
