// Package dictation provides voice capture for the task title. Only a timed
// mock exists: it pretends to listen, then yields a fixed transcript.
package dictation

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/fastygo/chores/domain"
)

// ErrBusy is returned when a capture is started while another one is listening.
var ErrBusy = domain.NewError(domain.ErrCodeConflict, "dictation already listening")

// Service captures one utterance. The returned channel reports every phase
// change and is closed once the capture is back to idle.
type Service interface {
	Start(ctx context.Context) (<-chan domain.DictationEvent, error)
	Status() domain.DictationStatus
}

type MockConfig struct {
	ListenFor  time.Duration
	HoldFor    time.Duration
	Transcript string
}

// Mock walks idle → listening → transcribed → idle on fixed timers.
type Mock struct {
	cfg    MockConfig
	logger *zap.Logger

	mu     sync.Mutex
	status domain.DictationStatus
	gen    uint64
}

func NewMock(cfg MockConfig, logger *zap.Logger) *Mock {
	if cfg.ListenFor <= 0 {
		cfg.ListenFor = 2 * time.Second
	}
	if cfg.HoldFor <= 0 {
		cfg.HoldFor = 2 * time.Second
	}
	if cfg.Transcript == "" {
		cfg.Transcript = "Walk the dog"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Mock{cfg: cfg, logger: logger, status: domain.DictationIdle}
}

func (m *Mock) Status() domain.DictationStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

func (m *Mock) Start(ctx context.Context) (<-chan domain.DictationEvent, error) {
	m.mu.Lock()
	if m.status == domain.DictationListening {
		m.mu.Unlock()
		return nil, ErrBusy
	}
	m.gen++
	gen := m.gen
	m.status = domain.DictationListening
	m.mu.Unlock()

	// three events at most, so sends never block
	events := make(chan domain.DictationEvent, 3)
	events <- domain.DictationEvent{Status: domain.DictationListening}
	m.logger.Debug("dictation listening")

	go m.run(ctx, gen, events)
	return events, nil
}

func (m *Mock) run(ctx context.Context, gen uint64, events chan<- domain.DictationEvent) {
	defer close(events)

	if !m.wait(ctx, m.cfg.ListenFor) {
		m.transition(gen, domain.DictationIdle)
		events <- domain.DictationEvent{Status: domain.DictationIdle}
		return
	}
	m.transition(gen, domain.DictationTranscribed)
	events <- domain.DictationEvent{Status: domain.DictationTranscribed, Transcript: m.cfg.Transcript}

	m.wait(ctx, m.cfg.HoldFor)
	m.transition(gen, domain.DictationIdle)
	events <- domain.DictationEvent{Status: domain.DictationIdle}
}

func (m *Mock) wait(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}

// transition only applies when no newer capture has started since gen.
func (m *Mock) transition(gen uint64, status domain.DictationStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.gen == gen {
		m.status = status
	}
}

var _ Service = (*Mock)(nil)
