package monitor

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/fastygo/chores/repository"
)

var errNoStore = errors.New("no blob store configured")

// PendingReporter tells whether the task store has unsaved changes.
type PendingReporter interface {
	Dirty() bool
}

// Monitor periodically pings the blob store.
type Monitor struct {
	store   repository.BlobStore
	driver  string
	pending PendingReporter

	status   Status
	mu       sync.RWMutex
	interval time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
	logger   *zap.Logger
}

func New(store repository.BlobStore, driver string, pending PendingReporter, interval time.Duration, logger *zap.Logger) *Monitor {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Monitor{
		store:    store,
		driver:   driver,
		pending:  pending,
		interval: interval,
		stopCh:   make(chan struct{}),
		logger:   logger,
		status:   Status{Driver: driver},
	}
}

func (m *Monitor) Start() {
	go m.loop()
}

func (m *Monitor) Stop() {
	m.stopOnce.Do(func() { close(m.stopCh) })
}

// IsOnline reports whether the last ping succeeded.
func (m *Monitor) IsOnline() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status.Storage
}

func (m *Monitor) GetStatus() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

func (m *Monitor) loop() {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.Refresh()
	for {
		select {
		case <-ticker.C:
			m.Refresh()
		case <-m.stopCh:
			return
		}
	}
}

// Refresh checks the store once and records the result.
func (m *Monitor) Refresh() Status {
	status := Status{
		Driver:    m.driver,
		LastCheck: time.Now(),
	}
	if err := m.ping(); err != nil {
		status.LastError = err.Error()
		m.logger.Warn("blob store ping failed", zap.String("driver", m.driver), zap.Error(err))
	} else {
		status.Storage = true
	}
	if m.pending != nil {
		status.PendingFlush = m.pending.Dirty()
	}

	m.mu.Lock()
	m.status = status
	m.mu.Unlock()
	return status
}

func (m *Monitor) ping() error {
	if m.store == nil {
		return errNoStore
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	return m.store.Ping(ctx)
}
