package worker

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/semprofile/mapper/engine"
)

// Invoker is the interface the pool invokes jobs through. *engine.Invoker
// satisfies it.
type Invoker interface {
	Invoke(ctx context.Context, inv engine.Invocation) (map[string]any, error)
}

// ErrNoInvoker is returned on every job when the pool has no invoker.
var ErrNoInvoker = poolError("no invoker configured")

type poolError string

func (e poolError) Error() string {
	return string(e)
}

// Pool manages a pool of worker goroutines for parallel invocation.
type Pool struct {
	workers    int
	jobsChan   chan Job
	resultChan chan *JobResult
	invoker    Invoker
	ctx        context.Context
	cancel     context.CancelFunc
	wg         sync.WaitGroup
	closed     atomic.Bool

	jobsSubmitted atomic.Uint64
	jobsCompleted atomic.Uint64
	jobsFailed    atomic.Uint64
	totalDuration atomic.Uint64
}

// NewPool creates a worker pool with the specified number of workers.
// If workers <= 0, it defaults to runtime.NumCPU().
func NewPool(invoker Invoker, workers int) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	ctx, cancel := context.WithCancel(context.Background())

	p := &Pool{
		workers:    workers,
		jobsChan:   make(chan Job, workers*2),
		resultChan: make(chan *JobResult, workers*2),
		invoker:    invoker,
		ctx:        ctx,
		cancel:     cancel,
	}

	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker()
	}

	return p
}

// Submit queues a job, blocking while the queue is full. It reports
// false once the pool is closed.
func (p *Pool) Submit(job Job) bool {
	if p.closed.Load() {
		return false
	}

	select {
	case <-p.ctx.Done():
		return false
	case p.jobsChan <- job:
		p.jobsSubmitted.Add(1)
		return true
	}
}

// SubmitAsync queues a job without blocking. It reports false when the
// queue is full or the pool is closed.
func (p *Pool) SubmitAsync(job Job) bool {
	if p.closed.Load() {
		return false
	}

	select {
	case <-p.ctx.Done():
		return false
	case p.jobsChan <- job:
		p.jobsSubmitted.Add(1)
		return true
	default:
		return false
	}
}

// Results returns the channel job results are delivered on. The channel
// closes after Close once all in-flight jobs have finished.
func (p *Pool) Results() <-chan *JobResult {
	return p.resultChan
}

// Close stops accepting jobs and waits for in-flight work. Undelivered
// results are discarded; drain Results first to keep them.
func (p *Pool) Close() {
	if p.closed.Swap(true) {
		return
	}

	close(p.jobsChan)

	done := make(chan struct{})
	go func() {
		for range p.resultChan {
		}
		close(done)
	}()

	p.wg.Wait()
	p.cancel()
	close(p.resultChan)
	<-done
}

// CloseAndWait stops accepting jobs and collects every pending result.
func (p *Pool) CloseAndWait() []*JobResult {
	if p.closed.Swap(true) {
		return nil
	}

	close(p.jobsChan)

	go func() {
		p.wg.Wait()
		p.cancel()
		close(p.resultChan)
	}()

	results := make([]*JobResult, 0, p.jobsSubmitted.Load())
	for result := range p.resultChan {
		results = append(results, result)
	}
	return results
}

// Stats returns current pool statistics.
func (p *Pool) Stats() PoolStats {
	return PoolStats{
		Workers:       p.workers,
		JobsSubmitted: p.jobsSubmitted.Load(),
		JobsCompleted: p.jobsCompleted.Load(),
		JobsFailed:    p.jobsFailed.Load(),
		AvgDuration:   p.averageDuration(),
	}
}

// PoolStats contains pool statistics.
type PoolStats struct {
	Workers       int
	JobsSubmitted uint64
	JobsCompleted uint64
	JobsFailed    uint64
	AvgDuration   time.Duration
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for job := range p.jobsChan {
		result := p.processJob(job)
		p.jobsCompleted.Add(1)
		p.totalDuration.Add(uint64(result.Duration))

		select {
		case <-p.ctx.Done():
			return
		case p.resultChan <- result:
		}
	}
}

func (p *Pool) processJob(job Job) *JobResult {
	start := time.Now()

	result := &JobResult{ID: job.ID}

	if p.invoker == nil {
		result.Error = ErrNoInvoker
	} else {
		result.Output, result.Error = p.invoker.Invoke(p.ctx, job.Invocation)
	}
	if result.Error != nil {
		p.jobsFailed.Add(1)
	}

	result.Duration = time.Since(start)
	return result
}

func (p *Pool) averageDuration() time.Duration {
	completed := p.jobsCompleted.Load()
	if completed == 0 {
		return 0
	}
	return time.Duration(p.totalDuration.Load() / completed)
}
