package worker

import (
	"context"
	"sync"
)

// Job is one unit of work run by a Pool
type Job interface {
	Execute(ctx context.Context) Result
}

// Result is what a Job hands back
type Result interface {
	GetError() error
}

// Pool runs jobs on a fixed number of goroutines.
//
// Typical use is Start, Submit from one goroutine, then either Wait for small
// batches or Close plus a range over Results when results must be drained
// while jobs are still being submitted.
type Pool struct {
	size  int
	queue chan Job
	out   chan Result
	wg    sync.WaitGroup

	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	closed bool

	outOnce sync.Once
}

// NewPool creates a pool of size workers bound to ctx. Cancelling ctx stops
// the workers; queued jobs that never started produce no result.
func NewPool(ctx context.Context, size int) *Pool {
	if size <= 0 {
		size = 1
	}
	ctx, cancel := context.WithCancel(ctx)
	return &Pool{
		size:   size,
		queue:  make(chan Job, size*2),
		out:    make(chan Result, size*2),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start launches the workers
func (p *Pool) Start() {
	p.wg.Add(p.size)
	for i := 0; i < p.size; i++ {
		go p.run()
	}
}

func (p *Pool) run() {
	defer p.wg.Done()
	for {
		select {
		case <-p.ctx.Done():
			return
		case job, ok := <-p.queue:
			if !ok {
				return
			}
			res := job.Execute(p.ctx)
			select {
			case p.out <- res:
			case <-p.ctx.Done():
				return
			}
		}
	}
}

// Submit queues a job, blocking while the queue is full. It reports false
// once the pool is closed or its context is done.
func (p *Pool) Submit(job Job) bool {
	p.mu.Lock()
	closed := p.closed
	p.mu.Unlock()
	if closed || p.ctx.Err() != nil {
		return false
	}

	select {
	case <-p.ctx.Done():
		return false
	case p.queue <- job:
		return true
	}
}

// Results streams results in completion order. The channel is closed after
// Close (or Shutdown) once every running job has reported.
func (p *Pool) Results() <-chan Result {
	return p.out
}

// Close stops accepting jobs. Queued jobs still run.
// Close must be called from the submitting goroutine.
func (p *Pool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.mu.Unlock()

	close(p.queue)
	go func() {
		p.wg.Wait()
		p.closeOut()
	}()
}

// Wait closes the pool and gathers every remaining result
func (p *Pool) Wait() []Result {
	p.Close()
	var results []Result
	for res := range p.out {
		results = append(results, res)
	}
	return results
}

// Shutdown cancels running jobs and returns once the workers have exited
func (p *Pool) Shutdown() {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()

	p.cancel()
	p.wg.Wait()
	p.closeOut()
}

func (p *Pool) closeOut() {
	p.outOnce.Do(func() { close(p.out) })
}
