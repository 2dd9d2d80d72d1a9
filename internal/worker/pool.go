// Package worker evaluates independent mix requests concurrently.
package worker

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/ewilliams-labs/setcurve/internal/core/domain"
	"github.com/ewilliams-labs/setcurve/internal/core/services"
)

var (
	// ErrQueueFull is returned by Submit when the job queue has no room.
	ErrQueueFull = errors.New("worker: queue full")
	// ErrPoolStopped is returned by Submit after Stop.
	ErrPoolStopped = errors.New("worker: pool stopped")
)

// Generator produces a mix for one request. *services.Mixer satisfies it.
type Generator interface {
	GenerateMix(ctx context.Context, spec services.MixSpec) (domain.Mix, error)
}

// Job is one request of a batch. Index identifies it in the Outcome.
type Job struct {
	Index int
	Spec  services.MixSpec
}

// Outcome is the result of a Job.
type Outcome struct {
	Index int
	Mix   domain.Mix
	Err   error
}

type task struct {
	ctx context.Context
	job Job
	out chan<- Outcome
}

// Pool manages background workers for mix jobs.
type Pool struct {
	gen  Generator
	jobs chan task
	wg   sync.WaitGroup

	mu      sync.RWMutex
	stopped bool
}

// NewPool creates a worker pool with the given queue size.
func NewPool(gen Generator, queueSize int) *Pool {
	if queueSize < 1 {
		queueSize = 1
	}
	return &Pool{gen: gen, jobs: make(chan task, queueSize)}
}

// Start launches the worker goroutines.
func (p *Pool) Start(workers int) {
	if workers < 1 {
		workers = 1
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for t := range p.jobs {
				t.out <- p.process(t.ctx, t.job)
			}
		}()
	}
	log.Printf("INFO worker: started %d workers (queue %d)", workers, cap(p.jobs))
}

// Stop closes the queue and waits for queued jobs to drain. It is safe to
// call more than once.
func (p *Pool) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	close(p.jobs)
	p.mu.Unlock()
	p.wg.Wait()
}

// Submit queues a job without blocking. The outcome is sent on out, which
// must have room for it.
func (p *Pool) Submit(ctx context.Context, job Job, out chan<- Outcome) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.stopped {
		return ErrPoolStopped
	}
	select {
	case p.jobs <- task{ctx: ctx, job: job, out: out}:
		return nil
	default:
		return ErrQueueFull
	}
}

// RunBatch evaluates specs concurrently and returns their outcomes in input
// order. When the queue is full the caller's goroutine runs the job itself.
func (p *Pool) RunBatch(ctx context.Context, specs []services.MixSpec) []Outcome {
	outcomes := make([]Outcome, len(specs))
	out := make(chan Outcome, len(specs))

	pending := 0
	for i, spec := range specs {
		job := Job{Index: i, Spec: spec}
		err := p.Submit(ctx, job, out)
		switch {
		case err == nil:
			pending++
		case errors.Is(err, ErrQueueFull):
			log.Printf("WARN worker: queue full, running job %d inline", i)
			outcomes[i] = p.process(ctx, job)
		default:
			outcomes[i] = Outcome{Index: i, Err: err}
		}
	}

	for ; pending > 0; pending-- {
		o := <-out
		outcomes[o.Index] = o
	}
	return outcomes
}

func (p *Pool) process(ctx context.Context, job Job) Outcome {
	mix, err := p.gen.GenerateMix(ctx, job.Spec)
	if err != nil {
		log.Printf("DEBUG worker: job %d failed: %v", job.Index, err)
	}
	return Outcome{Index: job.Index, Mix: mix, Err: err}
}
