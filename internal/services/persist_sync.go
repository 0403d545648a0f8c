package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Flusher is a store that can retry a failed save.
type Flusher interface {
	Dirty() bool
	Flush(ctx context.Context) error
}

// StorageHealth abstracts the storage monitor.
type StorageHealth interface {
	IsOnline() bool
}

// SyncConfig controls how often a failed save is retried.
type SyncConfig struct {
	Interval time.Duration
}

// PersistSync periodically re-saves the task collection after a persistence failure.
type PersistSync struct {
	store   Flusher
	monitor StorageHealth
	logger  *zap.Logger
	cron    *cron.Cron
	cfg     SyncConfig
}

func NewPersistSync(store Flusher, monitor StorageHealth, logger *zap.Logger, cfg SyncConfig) *PersistSync {
	if cfg.Interval <= 0 {
		cfg.Interval = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	ps := &PersistSync{
		store:   store,
		monitor: monitor,
		logger:  logger,
		cfg:     cfg,
		cron:    cron.New(cron.WithSeconds()),
	}

	schedule := fmt.Sprintf("@every %ds", max(1, int(cfg.Interval.Seconds())))
	_, _ = ps.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Interval)
		defer cancel()
		if err := ps.Run(ctx); err != nil {
			ps.logger.Warn("task re-sync failed", zap.Error(err))
		}
	})

	return ps
}

// Start launches the cron scheduler.
func (ps *PersistSync) Start() {
	if ps == nil || ps.cron == nil {
		return
	}
	ps.cron.Start()
	ps.logger.Info("task re-sync started", zap.Duration("interval", ps.cfg.Interval))
}

// Stop gracefully stops the scheduler and makes a last flush attempt.
func (ps *PersistSync) Stop(ctx context.Context) {
	if ps == nil || ps.cron == nil {
		return
	}
	stopCtx := ps.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	if err := ps.Run(ctx); err != nil {
		ps.logger.Warn("final task flush failed", zap.Error(err))
	}
	ps.logger.Info("task re-sync stopped")
}

// Run flushes pending changes once. It skips when nothing is pending or the
// storage is known to be offline.
func (ps *PersistSync) Run(ctx context.Context) error {
	if ps == nil || ps.store == nil || !ps.store.Dirty() {
		return nil
	}
	if ps.monitor != nil && !ps.monitor.IsOnline() {
		ps.logger.Debug("skipping task re-sync (storage offline)")
		return nil
	}
	return ps.store.Flush(ctx)
}
