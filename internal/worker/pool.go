package worker

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"fittrack/internal/observability"
	"fittrack/internal/repository"
)

// RankSyncTask mirrors a user's total points into the live Redis ranking.
// Submitted after every points fold; dropped under backpressure because the
// ranking is a best-effort view over the Postgres source of truth.
type RankSyncTask struct {
	Username    string
	TotalPoints int
}

// Pool manages a set of workers applying rank-sync tasks off the request path.
type Pool struct {
	jobs        chan RankSyncTask
	workerCount int
	redisRepo   *repository.RedisRepository
	wg          sync.WaitGroup
	ctx         context.Context
	cancel      context.CancelFunc
	metrics     *poolMetrics
}

type poolMetrics struct {
	mu           sync.RWMutex
	processed    int64
	failed       int64
	backpressure int64
}

// NewPool creates a rank-sync worker pool.
func NewPool(workerCount, queueSize int, redisRepo *repository.RedisRepository) *Pool {
	ctx, cancel := context.WithCancel(context.Background())
	return &Pool{
		jobs:        make(chan RankSyncTask, queueSize),
		workerCount: workerCount,
		redisRepo:   redisRepo,
		ctx:         ctx,
		cancel:      cancel,
		metrics:     &poolMetrics{},
	}
}

// Start launches the worker goroutines.
func (p *Pool) Start() {
	log.Printf("Starting rank-sync pool with %d workers and queue size %d", p.workerCount, cap(p.jobs))
	for i := 1; i <= p.workerCount; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case task, ok := <-p.jobs:
			if !ok {
				return
			}
			p.processTask(id, task)
		}
	}
}

func (p *Pool) processTask(workerID int, task RankSyncTask) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("worker #%d panic recovered: %v (user: %s)", workerID, r, task.Username)
			p.metrics.incrementFailed()
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := p.redisRepo.UpdatePoints(ctx, task.Username, task.TotalPoints); err != nil {
		log.Printf("worker #%d failed to sync ranking for %s: %v", workerID, task.Username, err)
		observability.RecordRankSyncFailure()
		p.metrics.incrementFailed()
		return
	}
	p.metrics.recordSuccess()
}

// Submit queues a task, dropping it when the queue is full.
func (p *Pool) Submit(task RankSyncTask) error {
	select {
	case p.jobs <- task:
		return nil
	default:
		log.Printf("backpressure: queue full, dropping ranking sync for user %s", task.Username)
		p.metrics.incrementBackpressure()
		return fmt.Errorf("worker pool queue full (backpressure)")
	}
}

// Shutdown stops the pool, draining queued tasks up to the timeout.
func (p *Pool) Shutdown(timeout time.Duration) error {
	close(p.jobs)

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.logMetrics()
		return nil
	case <-time.After(timeout):
		p.cancel()
		return fmt.Errorf("shutdown timeout exceeded")
	}
}

// Stats returns a snapshot of the pool counters.
func (p *Pool) Stats() (processed, failed, backpressure int64) {
	p.metrics.mu.RLock()
	defer p.metrics.mu.RUnlock()
	return p.metrics.processed, p.metrics.failed, p.metrics.backpressure
}

func (p *Pool) logMetrics() {
	processed, failed, backpressure := p.Stats()
	log.Printf("rank-sync pool drained: processed=%d failed=%d backpressure=%d", processed, failed, backpressure)
}

func (m *poolMetrics) recordSuccess() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.processed++
}

func (m *poolMetrics) incrementFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failed++
}

func (m *poolMetrics) incrementBackpressure() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.backpressure++
}
