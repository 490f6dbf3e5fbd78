// Package scheduler manages the periodic rebuild of the evidence embedding
// index. Embedding models and the snippet corpus drift over time, so the
// index is rebuilt daily; a staleness monitor warns when rebuilds have been
// failing long enough to matter.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/pillsync/pillsync-api/evidence"
	"github.com/pillsync/pillsync-api/logging"
)

const rebuildTimeout = 2 * time.Minute

// Scheduler drives evidence index rebuilds.
type Scheduler struct {
	index     *evidence.Index
	scheduler *gocron.Scheduler
	done      chan struct{}
}

// NewScheduler creates a scheduler for the given index.
func NewScheduler(index *evidence.Index) *Scheduler {
	return &Scheduler{
		index:     index,
		scheduler: gocron.NewScheduler(time.Local),
		done:      make(chan struct{}),
	}
}

// Start performs the initial index build and schedules daily rebuilds. When
// no embedder is configured this is a no-op: the service runs on the
// deterministic advice path alone. An initial build failure is tolerated;
// the daily job retries.
func (s *Scheduler) Start() error {
	if !s.index.Enabled() {
		logging.Info("Evidence embedding disabled, skipping index scheduling")
		return nil
	}

	if err := s.rebuild(); err != nil {
		logging.Warn("Initial evidence index build failed, attribution degrades to advice only", "error", err)
	}

	_, err := s.scheduler.Every(1).Day().At("03:00").Do(func() {
		if err := s.rebuild(); err != nil {
			logging.Error("Scheduled evidence index rebuild failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule index rebuilds: %w", err)
	}

	s.scheduler.StartAsync()
	s.startStalenessMonitoring()
	return nil
}

// Stop stops the scheduler and the staleness monitor.
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
	close(s.done)
}

func (s *Scheduler) rebuild() error {
	ctx, cancel := context.WithTimeout(context.Background(), rebuildTimeout)
	defer cancel()
	return s.index.Rebuild(ctx)
}

// startStalenessMonitoring warns hourly when the index is older than two
// missed rebuild cycles.
func (s *Scheduler) startStalenessMonitoring() {
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		for {
			select {
			case <-s.done:
				return
			case <-ticker.C:
				stats := s.index.Stats()
				if stats.Ready && time.Since(stats.BuiltAt) > 49*time.Hour {
					logging.Warn("Evidence index hasn't been rebuilt in over 49 hours")
				}
			}
		}
	}()
}
