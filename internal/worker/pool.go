package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrQueueFull   = errors.New("worker queue is full")
	ErrPoolStopped = errors.New("worker pool is stopped")
)

// Job is one detached unit of background work. Once accepted it runs to
// completion; there is no cancellation or retry.
type Job struct {
	ID          uuid.UUID
	Name        string
	SubmittedAt time.Time
	Run         func()
}

// Pool executes jobs on a fixed set of goroutines behind a bounded queue.
// Submit never blocks: when the queue is saturated the job is dropped,
// counted, and an error is returned for the caller to log.
type Pool struct {
	jobs    chan Job
	log     *zap.Logger
	wg      sync.WaitGroup
	mu      sync.RWMutex
	stopped bool
	dropped atomic.Int64
}

func NewPool(workers, queueSize int, log *zap.Logger) *Pool {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}

	p := &Pool{
		jobs: make(chan Job, queueSize),
		log:  log,
	}

	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}

	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for job := range p.jobs {
		job.Run()
	}
}

func (p *Pool) Submit(name string, run func()) (uuid.UUID, error) {
	job := Job{
		ID:          uuid.New(),
		Name:        name,
		SubmittedAt: time.Now(),
		Run:         run,
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.stopped {
		p.dropped.Add(1)
		return job.ID, ErrPoolStopped
	}

	select {
	case p.jobs <- job:
		return job.ID, nil
	default:
		p.dropped.Add(1)
		p.log.Warn("worker queue saturated, job dropped",
			zap.String("job", name),
			zap.String("job_id", job.ID.String()),
			zap.Int64("dropped_total", p.dropped.Load()))
		return job.ID, ErrQueueFull
	}
}

// Dropped reports how many jobs were rejected since startup.
func (p *Pool) Dropped() int64 {
	return p.dropped.Load()
}

// Shutdown stops accepting jobs and waits for in-flight ones until ctx
// expires.
func (p *Pool) Shutdown(ctx context.Context) {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	close(p.jobs)
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		p.log.Warn("worker pool shutdown timed out")
	}
}
