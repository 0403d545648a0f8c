package memory

import (
	"context"
	"sync"

	"github.com/fastygo/chores/repository"
)

// Store keeps blobs in process memory. It backs tests and the "memory" driver.
type Store struct {
	mu      sync.RWMutex
	blobs   map[string][]byte
	getErr  error
	setErr  error
	pingErr error
	writes  int
}

func New() *Store {
	return &Store{blobs: map[string][]byte{}}
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.getErr != nil {
		return nil, s.getErr
	}
	v, ok := s.blobs[key]
	if !ok {
		return nil, repository.ErrBlobNotFound
	}
	return append([]byte(nil), v...), nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.setErr != nil {
		return s.setErr
	}
	s.blobs[key] = append([]byte(nil), value...)
	s.writes++
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pingErr
}

// Put seeds a raw value, bypassing any injected failure.
func (s *Store) Put(key string, value []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[key] = append([]byte(nil), value...)
}

// FailReads makes every Get return err until cleared with nil.
func (s *Store) FailReads(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.getErr = err
}

// FailWrites makes every Set return err until cleared with nil.
func (s *Store) FailWrites(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setErr = err
}

// FailPings makes Ping return err until cleared with nil.
func (s *Store) FailPings(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pingErr = err
}

// Writes counts successful Set calls.
func (s *Store) Writes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writes
}

var _ repository.BlobStore = (*Store)(nil)
