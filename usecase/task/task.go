package task

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fastygo/chores/domain"
	"github.com/fastygo/chores/repository"
)

// Store owns the authoritative task collection and persists all of it after
// every mutation. Persistence failures are logged, never returned: the
// in-memory collection stays authoritative for the session.
type Store struct {
	blobs  repository.BlobStore
	seed   SeedFunc
	logger *zap.Logger
	newID  func() string

	mu    sync.Mutex
	tasks []domain.Task
	dirty bool
}

// Option customizes a Store.
type Option func(*Store)

// WithIDGenerator replaces the uuid generator, mostly for tests.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) {
		if fn != nil {
			s.newID = fn
		}
	}
}

func New(blobs repository.BlobStore, seed SeedFunc, logger *zap.Logger, opts ...Option) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	if seed == nil {
		seed = func() []domain.Task { return nil }
	}
	s := &Store{
		blobs:  blobs,
		seed:   seed,
		logger: logger,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load hydrates the store from the persisted blob. A missing blob, a read
// failure or malformed content all fall back to the seed set.
func (s *Store) Load(ctx context.Context) []domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := s.read(ctx)
	switch {
	case err == nil:
		s.tasks = tasks
		s.logger.Info("tasks loaded", zap.Int("count", len(tasks)))
	case errors.Is(err, repository.ErrBlobNotFound):
		s.tasks = cloneAll(s.seed())
		s.logger.Info("no persisted tasks, using seed set", zap.Int("count", len(s.tasks)))
		s.persistLocked(ctx, "seed")
	default:
		s.tasks = cloneAll(s.seed())
		s.logger.Warn("failed to load persisted tasks, using seed set",
			zap.Int("count", len(s.tasks)),
			zap.Error(domain.WrapError(domain.ErrCodePersistence, "load tasks", err)))
	}
	return cloneAll(s.tasks)
}

// All returns a copy of the collection in insertion order.
func (s *Store) All() []domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneAll(s.tasks)
}

// Get returns a copy of the task with the given id.
func (s *Store) Get(id string) (domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return domain.Task{}, domain.ErrTaskNotFound
	}
	return s.tasks[i].Clone(), nil
}

// Create appends a new incomplete, non-overdue task built from payload.
func (s *Store) Create(ctx context.Context, payload domain.Payload) (domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := domain.Task{ID: s.newID()}
	for s.indexLocked(t.ID) >= 0 {
		t.ID = s.newID()
	}
	payload.Apply(&t)
	t.IsComplete = false
	t.IsOverdue = false
	t = t.Clone()

	s.tasks = append(s.tasks, t)
	s.persistLocked(ctx, "create")
	return t.Clone(), nil
}

// Update replaces every editable field of the task with the given id.
func (s *Store) Update(ctx context.Context, id string, payload domain.Payload) (domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		s.logger.Warn("update of unknown task ignored", zap.String("task_id", id))
		return domain.Task{}, domain.ErrTaskNotFound
	}
	payload.Apply(&s.tasks[i])
	s.tasks[i] = s.tasks[i].Clone()
	s.persistLocked(ctx, "update")
	return s.tasks[i].Clone(), nil
}

// ToggleComplete flips the completion flag of the task with the given id.
func (s *Store) ToggleComplete(ctx context.Context, id string) (domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		s.logger.Warn("toggle of unknown task ignored", zap.String("task_id", id))
		return domain.Task{}, domain.ErrTaskNotFound
	}
	s.tasks[i].IsComplete = !s.tasks[i].IsComplete
	s.persistLocked(ctx, "toggle")
	return s.tasks[i].Clone(), nil
}

// Delete removes the task with the given id. Unknown ids are a no-op.
func (s *Store) Delete(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexLocked(id); i >= 0 {
		s.tasks = append(s.tasks[:i:i], s.tasks[i+1:]...)
	}
	s.persistLocked(ctx, "delete")
}

// Dirty reports whether the last save failed and has not been retried successfully.
func (s *Store) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// Flush retries a failed save. It is a no-op when nothing is pending.
func (s *Store) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.dirty {
		return nil
	}
	if err := s.writeLocked(ctx); err != nil {
		return domain.WrapError(domain.ErrCodePersistence, "flush tasks", err)
	}
	s.dirty = false
	s.logger.Info("pending tasks flushed", zap.Int("count", len(s.tasks)))
	return nil
}

func (s *Store) read(ctx context.Context) ([]domain.Task, error) {
	if s.blobs == nil {
		return nil, repository.ErrBlobNotFound
	}
	data, err := s.blobs.Get(ctx, repository.TasksKey)
	if err != nil {
		return nil, err
	}
	return repository.DecodeTasks(data)
}

func (s *Store) persistLocked(ctx context.Context, operation string) {
	if err := s.writeLocked(ctx); err != nil {
		s.dirty = true
		s.logger.Warn("failed to persist tasks",
			zap.String("operation", operation),
			zap.Error(domain.WrapError(domain.ErrCodePersistence, "save tasks", err)))
		return
	}
	s.dirty = false
}

func (s *Store) writeLocked(ctx context.Context) error {
	if s.blobs == nil {
		return errors.New("no blob store configured")
	}
	data, err := repository.EncodeTasks(s.tasks)
	if err != nil {
		return err
	}
	return s.blobs.Set(ctx, repository.TasksKey, data)
}

func (s *Store) indexLocked(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneAll(tasks []domain.Task) []domain.Task {
	out := make([]domain.Task, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.Clone())
	}
	return out
}
