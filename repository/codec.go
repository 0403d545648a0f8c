package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fastygo/chores/domain"
)

// legacyWeekdays maps the one-letter chips stored by the first app release.
var legacyWeekdays = map[string]time.Weekday{
	"S": time.Sunday,
	"M": time.Monday,
	"T": time.Tuesday,
	"W": time.Wednesday,
	"H": time.Thursday,
	"F": time.Friday,
}

// taskRecord is the persisted shape of a task. Notes is written under both
// "notes" and "description" so older readers keep working.
type taskRecord struct {
	ID                   string                `json:"id"`
	Title                string                `json:"title"`
	Date                 string                `json:"date"`
	CompletionTimeGoal   string                `json:"completionTimeGoal"`
	RepeatDays           []string              `json:"repeatDays"`
	MonthlyPattern       domain.MonthlyPattern `json:"monthlyPattern"`
	IsOverdue            bool                  `json:"isOverdue"`
	IsComplete           bool                  `json:"isComplete"`
	URL                  string                `json:"url,omitempty"`
	Location             string                `json:"location,omitempty"`
	Notes                string                `json:"notes,omitempty"`
	Description          string                `json:"description,omitempty"`
	CategoryTags         []string              `json:"categoryTags"`
	PreDeadlineAlerts    []int                 `json:"preDeadlineAlerts"`
	DefaultSnoozeMinutes *int                  `json:"defaultSnoozeMinutes"`
}

// EncodeTasks serializes the full collection.
func EncodeTasks(tasks []domain.Task) ([]byte, error) {
	records := make([]taskRecord, 0, len(tasks))
	for _, t := range tasks {
		c := t.Clone()
		records = append(records, taskRecord{
			ID:                   c.ID,
			Title:                c.Title,
			Date:                 c.Date,
			CompletionTimeGoal:   c.CompletionTimeGoal,
			RepeatDays:           c.RepeatDays.Names(),
			MonthlyPattern:       c.MonthlyPattern,
			IsOverdue:            c.IsOverdue,
			IsComplete:           c.IsComplete,
			URL:                  c.URL,
			Location:             c.Location,
			Notes:                c.Notes,
			Description:          c.Notes,
			CategoryTags:         c.CategoryTags,
			PreDeadlineAlerts:    c.PreDeadlineAlerts,
			DefaultSnoozeMinutes: c.DefaultSnoozeMinutes,
		})
	}
	return json.Marshal(records)
}

// DecodeTasks parses a collection written by EncodeTasks or by older releases
// that used weekday letters and a separate notes field.
func DecodeTasks(data []byte) ([]domain.Task, error) {
	var records []taskRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}

	tasks := make([]domain.Task, 0, len(records))
	seen := make(map[string]struct{}, len(records))
	for i, r := range records {
		if r.ID == "" {
			return nil, fmt.Errorf("decode tasks: record %d has no id", i)
		}
		if _, dup := seen[r.ID]; dup {
			return nil, fmt.Errorf("decode tasks: duplicate id %q", r.ID)
		}
		seen[r.ID] = struct{}{}
		if err := checkRecord(r); err != nil {
			return nil, fmt.Errorf("decode tasks: record %q: %w", r.ID, err)
		}

		days, err := decodeWeekdays(r.RepeatDays)
		if err != nil {
			return nil, fmt.Errorf("decode tasks: record %q: %w", r.ID, err)
		}

		notes := r.Description
		if notes == "" {
			notes = r.Notes
		}

		t := domain.Task{
			ID:                   r.ID,
			Title:                r.Title,
			Date:                 r.Date,
			CompletionTimeGoal:   r.CompletionTimeGoal,
			RepeatDays:           days,
			MonthlyPattern:       r.MonthlyPattern,
			IsOverdue:            r.IsOverdue,
			IsComplete:           r.IsComplete,
			URL:                  r.URL,
			Location:             r.Location,
			Notes:                notes,
			CategoryTags:         r.CategoryTags,
			PreDeadlineAlerts:    domain.NormalizeAlerts(r.PreDeadlineAlerts),
			DefaultSnoozeMinutes: r.DefaultSnoozeMinutes,
		}
		tasks = append(tasks, t.Clone())
	}
	return tasks, nil
}

// checkRecord rejects records no form submit could have produced.
func checkRecord(r taskRecord) error {
	if strings.TrimSpace(r.Title) == "" {
		return errors.New("empty title")
	}
	if _, err := domain.ParseDate(r.Date); err != nil {
		return err
	}
	if !domain.IsTimeGoal(r.CompletionTimeGoal) {
		return fmt.Errorf("completionTimeGoal %q is not a clock time", r.CompletionTimeGoal)
	}
	if len(r.CategoryTags) == 0 {
		return errors.New("no category tags")
	}
	return nil
}

func decodeWeekdays(names []string) (domain.WeekdaySet, error) {
	var set domain.WeekdaySet
	for _, name := range names {
		if d, ok := legacyWeekdays[strings.TrimSpace(name)]; ok {
			set = set.With(d)
			continue
		}
		d, err := domain.ParseWeekday(name)
		if err != nil {
			return 0, err
		}
		set = set.With(d)
	}
	return set, nil
}
