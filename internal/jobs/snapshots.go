package jobs

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"fittrack/internal/service"
)

// SnapshotConfig controls the periodic leaderboard snapshot rebuild.
type SnapshotConfig struct {
	// Interval between rebuilds. Snapshot generation is a batch concern; the
	// request path never triggers it.
	Interval time.Duration
}

// SnapshotManager periodically rebuilds the leaderboard snapshots for every
// period's current window.
type SnapshotManager struct {
	service *service.LeaderboardService
	config  SnapshotConfig
	stopCh  chan struct{}
	wg      sync.WaitGroup
	running atomic.Bool
}

// NewSnapshotManager creates a snapshot manager.
func NewSnapshotManager(svc *service.LeaderboardService, config SnapshotConfig) *SnapshotManager {
	if config.Interval <= 0 {
		config.Interval = time.Hour
	}
	return &SnapshotManager{
		service: svc,
		config:  config,
		stopCh:  make(chan struct{}),
	}
}

// Start launches the rebuild loop. An immediate rebuild runs before the first
// tick so fresh deployments serve a current leaderboard right away.
func (m *SnapshotManager) Start(ctx context.Context) error {
	if !m.running.CompareAndSwap(false, true) {
		return fmt.Errorf("snapshot manager already running")
	}

	m.wg.Add(1)
	go m.run(ctx)
	log.Printf("snapshot manager started (interval: %s)", m.config.Interval)
	return nil
}

func (m *SnapshotManager) run(ctx context.Context) {
	defer m.wg.Done()

	m.rebuild(ctx)

	ticker := time.NewTicker(m.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.rebuild(ctx)
		case <-m.stopCh:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (m *SnapshotManager) rebuild(ctx context.Context) {
	start := time.Now()
	if err := m.service.BuildSnapshots(ctx, start); err != nil {
		log.Printf("snapshot rebuild failed: %v", err)
		return
	}
	log.Printf("snapshot rebuild completed in %v", time.Since(start))
}

// Stop halts the rebuild loop and waits for an in-flight rebuild to finish.
func (m *SnapshotManager) Stop() {
	if !m.running.CompareAndSwap(true, false) {
		return
	}
	close(m.stopCh)
	m.wg.Wait()
	log.Println("snapshot manager stopped")
}

// Running reports whether the loop is active.
func (m *SnapshotManager) Running() bool {
	return m.running.Load()
}
