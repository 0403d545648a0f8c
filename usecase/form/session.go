package form

import (
	"slices"
	"time"

	"github.com/fastygo/chores/domain"
)

// Session drives one create/edit form: Idle → Editing → Submitted → Closed.
// A failed submit returns to Editing with every field error populated.
// Session is not safe for concurrent use; its owner serializes access.
type Session struct {
	now func() time.Time

	state     domain.FormState
	opened    uint64
	mode      domain.FormMode
	editingID string
	draft     domain.Draft
	errors    domain.FieldErrors
}

func NewSession(now func() time.Time) *Session {
	if now == nil {
		now = time.Now
	}
	return &Session{now: now, state: domain.FormIdle}
}

// OpenCreate starts a blank form for a task on date.
func (s *Session) OpenCreate(date string) {
	s.open(domain.FormModeCreate, "", domain.NewDraft(date))
}

// OpenEdit starts a form pre-filled with t.
func (s *Session) OpenEdit(t domain.Task) {
	s.open(domain.FormModeEdit, t.ID, domain.DraftFrom(t))
}

func (s *Session) open(mode domain.FormMode, id string, d domain.Draft) {
	s.opened++
	s.state = domain.FormEditing
	s.mode = mode
	s.editingID = id
	s.draft = d
	s.errors = nil
}

func (s *Session) State() domain.FormState { return s.state }

// IsOpen reports whether a draft is being edited.
func (s *Session) IsOpen() bool { return s.state == domain.FormEditing }

func (s *Session) Mode() domain.FormMode { return s.mode }

// Opened counts how many times a form has been opened. Work started against
// one form compares it to tell whether that form is still the one showing.
func (s *Session) Opened() uint64 { return s.opened }

// EditingID is the id of the task being edited, empty for a new task.
func (s *Session) EditingID() string { return s.editingID }

// Draft returns a copy of the current draft.
func (s *Session) Draft() domain.Draft { return s.draft.Clone() }

// Errors returns the field errors currently shown.
func (s *Session) Errors() domain.FieldErrors { return slices.Clone(s.errors) }

// Snapshot is a read-only copy of the session for the presentation layer.
func (s *Session) Snapshot() domain.FormSnapshot {
	snap := domain.FormSnapshot{
		State:  s.state,
		Errors: s.Errors(),
	}
	if snap.Errors == nil {
		snap.Errors = domain.FieldErrors{}
	}
	if s.state == domain.FormEditing {
		d := s.Draft()
		snap.Mode = s.mode
		snap.EditingID = s.editingID
		snap.Draft = &d
	}
	return snap
}

// Update mutates the draft and re-checks only the touched field.
func (s *Session) Update(field domain.Field, mutate func(*domain.Draft)) error {
	if s.state != domain.FormEditing {
		return domain.ErrFormNotOpen
	}
	mutate(&s.draft)
	s.errors = append(s.errors.Without(field), ValidateField(field, s.draft, s.now())...)
	return nil
}

func (s *Session) SetTitle(v string) error {
	return s.Update(domain.FieldTitle, func(d *domain.Draft) { d.Title = v })
}

func (s *Session) SetDate(v string) error {
	return s.Update(domain.FieldDate, func(d *domain.Draft) { d.Date = v })
}

func (s *Session) SetCompletionTimeGoal(v string) error {
	return s.Update(domain.FieldCompletionTimeGoal, func(d *domain.Draft) { d.CompletionTimeGoal = v })
}

func (s *Session) SetURL(v string) error {
	return s.Update(domain.FieldURL, func(d *domain.Draft) { d.URL = v })
}

func (s *Session) SetLocation(v string) error {
	return s.Update(domain.FieldLocation, func(d *domain.Draft) { d.Location = v })
}

func (s *Session) SetDescription(v string) error {
	return s.Update(domain.FieldDescription, func(d *domain.Draft) { d.Description = v })
}

func (s *Session) SetMonthlyPattern(p domain.MonthlyPattern) error {
	if !p.Valid() {
		return domain.ErrInvalidPayload
	}
	return s.Update(domain.FieldMonthlyPattern, func(d *domain.Draft) { d.MonthlyPattern = p })
}

func (s *Session) SetRepeatDays(days domain.WeekdaySet) error {
	return s.Update(domain.FieldRepeatDays, func(d *domain.Draft) { d.RepeatDays = days })
}

func (s *Session) ToggleDay(day time.Weekday) error {
	return s.Update(domain.FieldRepeatDays, func(d *domain.Draft) { d.ToggleDay(day) })
}

func (s *Session) SetCategoryTags(tags []string) error {
	return s.Update(domain.FieldCategoryTags, func(d *domain.Draft) { d.CategoryTags = slices.Clone(tags) })
}

func (s *Session) ToggleCategory(category string) error {
	return s.Update(domain.FieldCategoryTags, func(d *domain.Draft) { d.ToggleCategory(category) })
}

// SetAlerts replaces the alert selection; off-menu values are rejected.
func (s *Session) SetAlerts(alerts []int) error {
	for _, m := range alerts {
		if !domain.IsAlertOption(m) {
			return domain.ErrInvalidPayload
		}
	}
	return s.Update(domain.FieldPreDeadlineAlerts, func(d *domain.Draft) {
		d.PreDeadlineAlerts = domain.NormalizeAlerts(alerts)
	})
}

func (s *Session) ToggleAlert(minutes int) error {
	if !domain.IsAlertOption(minutes) {
		return domain.ErrInvalidPayload
	}
	return s.Update(domain.FieldPreDeadlineAlerts, func(d *domain.Draft) { d.ToggleAlert(minutes) })
}

// SetSnooze selects the default snooze; nil means none.
func (s *Session) SetSnooze(minutes *int) error {
	if minutes != nil && !domain.IsSnoozeOption(*minutes) {
		return domain.ErrInvalidPayload
	}
	return s.Update(domain.FieldDefaultSnooze, func(d *domain.Draft) { d.SetSnooze(minutes) })
}

// Batch applies changes in order. If one fails, the draft and errors are
// restored to what they were before the first change.
func (s *Session) Batch(changes ...func(*Session) error) error {
	if s.state != domain.FormEditing {
		return domain.ErrFormNotOpen
	}
	draft, errs := s.draft.Clone(), slices.Clone(s.errors)
	for _, change := range changes {
		if err := change(s); err != nil {
			s.draft, s.errors = draft, errs
			return err
		}
	}
	return nil
}

// Replace swaps the whole draft, keeping current errors until the next submit.
func (s *Session) Replace(d domain.Draft) error {
	if s.state != domain.FormEditing {
		return domain.ErrFormNotOpen
	}
	s.draft = d.Clone()
	return nil
}

// Submit validates every field regardless of earlier per-field results.
// On success the form closes and the payload is returned for committing.
func (s *Session) Submit() (domain.Payload, error) {
	var out domain.Payload
	err := s.SubmitWith(func(p domain.Payload) error {
		out = p
		return nil
	})
	return out, err
}

// SubmitWith validates the draft and hands the payload to commit while the
// form is Submitted. The form closes only if commit succeeds; any failure
// returns it to Editing with the draft intact.
func (s *Session) SubmitWith(commit func(domain.Payload) error) error {
	if s.state != domain.FormEditing {
		return domain.ErrFormNotOpen
	}
	s.state = domain.FormSubmitted

	payload, err := Validate(s.draft, s.now())
	if err != nil {
		if fe, ok := err.(domain.FieldErrors); ok {
			s.errors = fe
		}
		s.state = domain.FormEditing
		return err
	}
	if err := commit(payload); err != nil {
		s.state = domain.FormEditing
		return err
	}
	s.close()
	return nil
}

// Cancel discards the draft. Cancelling a closed form is harmless.
func (s *Session) Cancel() {
	s.close()
}

func (s *Session) close() {
	s.state = domain.FormClosed
	s.draft = domain.Draft{}
	s.errors = nil
}
