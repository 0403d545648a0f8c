package domain

import (
	"slices"
	"time"
)

// Draft is the uncommitted state of the create/edit task form.
type Draft struct {
	Title                string         `json:"title"`
	Date                 string         `json:"date"`
	CompletionTimeGoal   string         `json:"completionTimeGoal"`
	RepeatDays           WeekdaySet     `json:"repeatDays"`
	MonthlyPattern       MonthlyPattern `json:"monthlyPattern"`
	CategoryTags         []string       `json:"categoryTags"`
	Location             string         `json:"location"`
	URL                  string         `json:"url"`
	Description          string         `json:"description"`
	PreDeadlineAlerts    []int          `json:"preDeadlineAlerts"`
	DefaultSnoozeMinutes *int           `json:"defaultSnoozeMinutes"`
}

// NewDraft returns the blank form for a task scheduled on date.
func NewDraft(date string) Draft {
	return Draft{
		Date:               date,
		CompletionTimeGoal: DefaultCompletionTimeGoal,
		CategoryTags:       []string{},
		PreDeadlineAlerts:  []int{},
	}
}

// DraftFrom pre-fills the form with an existing task.
func DraftFrom(t Task) Draft {
	c := t.Clone()
	return Draft{
		Title:                c.Title,
		Date:                 c.Date,
		CompletionTimeGoal:   c.CompletionTimeGoal,
		RepeatDays:           c.RepeatDays,
		MonthlyPattern:       c.MonthlyPattern,
		CategoryTags:         c.CategoryTags,
		Location:             c.Location,
		URL:                  c.URL,
		Description:          c.Notes,
		PreDeadlineAlerts:    c.PreDeadlineAlerts,
		DefaultSnoozeMinutes: c.DefaultSnoozeMinutes,
	}
}

// Clone returns a deep copy of the draft.
func (d Draft) Clone() Draft {
	out := d
	out.CategoryTags = slices.Clone(d.CategoryTags)
	out.PreDeadlineAlerts = slices.Clone(d.PreDeadlineAlerts)
	if d.DefaultSnoozeMinutes != nil {
		v := *d.DefaultSnoozeMinutes
		out.DefaultSnoozeMinutes = &v
	}
	return out
}

// ToggleDay adds or removes a weekly repeat day.
func (d *Draft) ToggleDay(day time.Weekday) {
	d.RepeatDays = d.RepeatDays.Toggle(day)
}

// ToggleCategory adds category at the end of the tag list, or removes it.
func (d *Draft) ToggleCategory(category string) {
	if i := slices.Index(d.CategoryTags, category); i >= 0 {
		d.CategoryTags = slices.Delete(slices.Clone(d.CategoryTags), i, i+1)
		return
	}
	d.CategoryTags = append(slices.Clone(d.CategoryTags), category)
}

// ToggleAlert adds or removes a pre-deadline alert, keeping the list ascending.
// Values outside AlertOptions are ignored and false is returned.
func (d *Draft) ToggleAlert(minutes int) bool {
	if !IsAlertOption(minutes) {
		return false
	}
	if i := slices.Index(d.PreDeadlineAlerts, minutes); i >= 0 {
		d.PreDeadlineAlerts = slices.Delete(slices.Clone(d.PreDeadlineAlerts), i, i+1)
		return true
	}
	d.PreDeadlineAlerts = NormalizeAlerts(append(slices.Clone(d.PreDeadlineAlerts), minutes))
	return true
}

// SetSnooze selects a default snooze value; nil clears it.
func (d *Draft) SetSnooze(minutes *int) bool {
	if minutes == nil {
		d.DefaultSnoozeMinutes = nil
		return true
	}
	if !IsSnoozeOption(*minutes) {
		return false
	}
	v := *minutes
	d.DefaultSnoozeMinutes = &v
	return true
}

// Payload is a draft that passed validation.
type Payload struct {
	Title                string
	Date                 string
	CompletionTimeGoal   string
	RepeatDays           WeekdaySet
	MonthlyPattern       MonthlyPattern
	CategoryTags         []string
	Location             string
	URL                  string
	Notes                string
	PreDeadlineAlerts    []int
	DefaultSnoozeMinutes *int
}

// Apply overwrites every editable field of t. ID and the status flags are left alone.
func (p Payload) Apply(t *Task) {
	t.Title = p.Title
	t.Date = p.Date
	t.CompletionTimeGoal = p.CompletionTimeGoal
	t.RepeatDays = p.RepeatDays
	t.MonthlyPattern = p.MonthlyPattern
	t.CategoryTags = slices.Clone(p.CategoryTags)
	t.Location = p.Location
	t.URL = p.URL
	t.Notes = p.Notes
	t.PreDeadlineAlerts = NormalizeAlerts(p.PreDeadlineAlerts)
	t.DefaultSnoozeMinutes = nil
	if p.DefaultSnoozeMinutes != nil {
		v := *p.DefaultSnoozeMinutes
		t.DefaultSnoozeMinutes = &v
	}
}
