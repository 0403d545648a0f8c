// Package session holds the single top-level state of the app: the current
// selection, the open form and the new-task highlight, plus the handles to the
// task store and the mock capabilities. Every intent from the presentation
// layer goes through a Session method and runs to completion under one lock.
package session

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/fastygo/chores/domain"
	"github.com/fastygo/chores/usecase/dictation"
	"github.com/fastygo/chores/usecase/form"
	"github.com/fastygo/chores/usecase/notify"
	"github.com/fastygo/chores/usecase/view"
)

// DefaultHighlight is how long a newly created task stays highlighted.
const DefaultHighlight = 3 * time.Second

// ErrDictationUnavailable is returned when no dictation service is wired.
var ErrDictationUnavailable = domain.NewError(domain.ErrCodeConflict, "dictation unavailable")

// TaskStore is the subset of the task store the session drives.
type TaskStore interface {
	All() []domain.Task
	Get(id string) (domain.Task, error)
	Create(ctx context.Context, payload domain.Payload) (domain.Task, error)
	Update(ctx context.Context, id string, payload domain.Payload) (domain.Task, error)
	ToggleComplete(ctx context.Context, id string) (domain.Task, error)
	Delete(ctx context.Context, id string)
}

type Session struct {
	tasks     TaskStore
	dictation dictation.Service
	renderer  notify.Renderer
	logger    *zap.Logger

	now          func() time.Time
	highlightFor time.Duration
	today        string

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu             sync.Mutex
	selection      domain.Selection
	form           *form.Session
	highlightID    string
	highlightUntil time.Time
}

// Option customizes a Session.
type Option func(*Session)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

// WithHighlight sets how long a created task is reported as highlighted.
func WithHighlight(d time.Duration) Option {
	return func(s *Session) {
		if d > 0 {
			s.highlightFor = d
		}
	}
}

// New builds a session whose selected date is today's date at construction time.
func New(tasks TaskStore, dict dictation.Service, renderer notify.Renderer, logger *zap.Logger, opts ...Option) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	if renderer == nil {
		renderer = notify.NewPreviewRenderer()
	}
	s := &Session{
		tasks:        tasks,
		dictation:    dict,
		renderer:     renderer,
		logger:       logger,
		now:          time.Now,
		highlightFor: DefaultHighlight,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.ctx, s.cancel = context.WithCancel(context.Background())
	s.today = domain.Today(s.now())
	s.selection = domain.Selection{Date: s.today}
	s.form = form.NewSession(s.now)
	return s
}

// Close stops background dictation captures.
func (s *Session) Close() {
	s.cancel()
	s.wg.Wait()
}

// Today is the process-start date used for the "Today" heading.
func (s *Session) Today() string { return s.today }

// Selection returns the current filter.
func (s *Session) Selection() domain.Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copySelection(s.selection)
}

// Snapshot returns everything needed to render the current frame.
func (s *Session) Snapshot() domain.View {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := s.tasks.All()
	heading, err := domain.Heading(s.selection.Date, s.today)
	if err != nil {
		s.logger.Warn("selected date unreadable", zap.String("date", s.selection.Date), zap.Error(err))
	}
	v := domain.View{
		Selection:  copySelection(s.selection),
		Today:      s.today,
		Heading:    heading,
		Tasks:      view.Project(all, s.selection),
		Categories: view.VisibleCategories(all),
		Form:       s.form.Snapshot(),
		Dictation:  domain.DictationIdle,
	}
	if s.highlightID != "" && s.now().Before(s.highlightUntil) {
		v.HighlightedID = s.highlightID
	}
	if s.dictation != nil {
		v.Dictation = s.dictation.Status()
	}
	return v
}

// Categories lists every tag in the collection for the filter control.
func (s *Session) Categories() []string {
	return view.VisibleCategories(s.tasks.All())
}

func (s *Session) OnToggleComplete(ctx context.Context, id string) (domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tasks.ToggleComplete(ctx, id)
}

// OnCreateRequest opens a blank form dated on the selected day.
func (s *Session) OnCreateRequest() domain.FormSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.form.OpenCreate(s.selection.Date)
	return s.form.Snapshot()
}

// OnEditRequest opens the form pre-filled with the task.
func (s *Session) OnEditRequest(id string) (domain.FormSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.tasks.Get(id)
	if err != nil {
		s.logger.Warn("edit of unknown task ignored", zap.String("task_id", id))
		return s.form.Snapshot(), err
	}
	s.form.OpenEdit(t)
	return s.form.Snapshot(), nil
}

// OnDeleteRequest removes a task once the user has confirmed.
func (s *Session) OnDeleteRequest(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return domain.ErrDeleteNotConfirmed
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tasks.Delete(ctx, id)
	if s.form.IsOpen() && s.form.EditingID() == id {
		s.form.Cancel()
	}
	if s.highlightID == id {
		s.highlightID = ""
	}
	return nil
}

func (s *Session) OnDateChange(date string) (domain.Selection, error) {
	t, err := domain.ParseDate(date)
	if err != nil {
		return s.Selection(), domain.ErrInvalidDate
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection.Date = domain.FormatDate(t)
	return copySelection(s.selection), nil
}

func (s *Session) OnPreviousDay() domain.Selection {
	return s.shiftDay(-1)
}

func (s *Session) OnNextDay() domain.Selection {
	return s.shiftDay(1)
}

func (s *Session) shiftDay(days int) domain.Selection {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := domain.ShiftDate(s.selection.Date, days)
	if err != nil {
		s.logger.Warn("cannot move selected date", zap.String("date", s.selection.Date), zap.Error(err))
		return copySelection(s.selection)
	}
	s.selection.Date = next
	return copySelection(s.selection)
}

// OnCategoryFilterChange sets the category filter; nil or empty clears it.
func (s *Session) OnCategoryFilterChange(category *string) domain.Selection {
	s.mu.Lock()
	defer s.mu.Unlock()

	if category == nil || *category == "" {
		s.selection.Category = nil
	} else {
		c := *category
		s.selection.Category = &c
	}
	return copySelection(s.selection)
}

// OnFormChange applies field edits to the open form.
func (s *Session) OnFormChange(change func(f *form.Session) error) (domain.FormSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.form.IsOpen() {
		return s.form.Snapshot(), domain.ErrFormNotOpen
	}
	err := change(s.form)
	return s.form.Snapshot(), err
}

// OnFormSubmit validates the form (after replacing its draft when one is given)
// and commits it to the store. A validation or store failure leaves the form
// open with the draft as it was.
func (s *Session) OnFormSubmit(ctx context.Context, draft *domain.Draft) (domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if draft != nil {
		if err := s.form.Replace(*draft); err != nil {
			return domain.Task{}, err
		}
	}
	mode, editingID := s.form.Mode(), s.form.EditingID()

	var saved domain.Task
	err := s.form.SubmitWith(func(payload domain.Payload) error {
		var err error
		if mode == domain.FormModeEdit {
			saved, err = s.tasks.Update(ctx, editingID, payload)
		} else {
			saved, err = s.tasks.Create(ctx, payload)
		}
		return err
	})
	if err != nil {
		return domain.Task{}, err
	}
	if mode != domain.FormModeEdit {
		s.highlightID = saved.ID
		s.highlightUntil = s.now().Add(s.highlightFor)
	}

	if saved.Date != s.selection.Date {
		s.selection.Date = saved.Date
	}
	return saved, nil
}

func (s *Session) OnFormCancel() domain.FormSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.form.Cancel()
	return s.form.Snapshot()
}

// OnDictate starts a voice capture whose transcript becomes the form title.
func (s *Session) OnDictate() error {
	if s.dictation == nil {
		return ErrDictationUnavailable
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.form.IsOpen() {
		return domain.ErrFormNotOpen
	}
	events, err := s.dictation.Start(s.ctx)
	if err != nil {
		return err
	}
	opened := s.form.Opened()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for ev := range events {
			if ev.Status != domain.DictationTranscribed {
				continue
			}
			s.mu.Lock()
			if s.form.IsOpen() && s.form.Opened() == opened {
				_ = s.form.SetTitle(ev.Transcript)
			} else {
				s.logger.Debug("transcript dropped, form changed since dictation started")
			}
			s.mu.Unlock()
		}
	}()
	return nil
}

// Previews renders the notification mockups for a task.
func (s *Session) Previews(id string) ([]domain.Notification, error) {
	t, err := s.tasks.Get(id)
	if err != nil {
		return nil, err
	}
	return s.renderer.Render(t), nil
}

func copySelection(sel domain.Selection) domain.Selection {
	out := domain.Selection{Date: sel.Date}
	if sel.Category != nil {
		c := *sel.Category
		out.Category = &c
	}
	return out
}
