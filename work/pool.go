// Package work provides the task execution service the rest of the module
// depends on: submit a task, get a future, shut the pool down gracefully or
// abort it. In-flight tasks are never cancelled; they run to completion or
// fail.
package work

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// ShutdownMode selects how Shutdown treats outstanding work.
type ShutdownMode int

const (
	// ShutdownGraceful stops intake and waits for queued and running tasks
	// to drain, polling at a bounded interval.
	ShutdownGraceful ShutdownMode = iota
	// ShutdownAbort stops intake and discards queued tasks. Tasks already
	// running still run to completion.
	ShutdownAbort
)

const drainPollInterval = 10 * time.Millisecond

// Task is one unit of work.
type Task func() (any, error)

// Future is the handle to a submitted task's eventual result.
type Future struct {
	done   chan struct{}
	result any
	err    error
}

// Await blocks until the task finished or the context ended.
func (f *Future) Await(ctx context.Context) (any, error) {
	select {
	case <-f.done:
		return f.result, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Done reports completion without blocking.
func (f *Future) Done() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

func (f *Future) complete(result any, err error) {
	f.result = result
	f.err = err
	close(f.done)
}

// ErrPoolClosed is returned by Submit after shutdown began.
var ErrPoolClosed = fmt.Errorf("pool is shut down")

type job struct {
	task   Task
	future *Future
}

// Pool is a fixed-size worker pool.
type Pool struct {
	jobs    chan *job
	quit    chan struct{}
	wg      sync.WaitGroup
	active  atomic.Int32
	stopped atomic.Bool

	mu      sync.Mutex     // orders the stopped check against shutdown
	sending sync.WaitGroup // in-flight Submit sends; close(jobs) waits on it
}

// NewPool starts a pool with the given worker count; zero or negative means
// one worker per CPU.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	p := &Pool{
		jobs: make(chan *job, workers*2),
		quit: make(chan struct{}),
	}
	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for j := range p.jobs {
		p.active.Add(1)
		result, err := j.task()
		j.future.complete(result, err)
		p.active.Add(-1)
	}
}

// Submit queues a task and returns its future. Fails after shutdown began.
// A Submit blocked on a full queue unblocks when shutdown starts.
func (p *Pool) Submit(task Task) (*Future, error) {
	p.mu.Lock()
	if p.stopped.Load() {
		p.mu.Unlock()
		return nil, ErrPoolClosed
	}
	p.sending.Add(1)
	p.mu.Unlock()
	defer p.sending.Done()

	f := &Future{done: make(chan struct{})}
	select {
	case p.jobs <- &job{task: task, future: f}:
		return f, nil
	case <-p.quit:
		return nil, ErrPoolClosed
	}
}

// Shutdown stops intake and winds the pool down per mode. Graceful mode
// drains queued and running tasks; abort mode discards queued tasks and
// fails their futures. Safe to call once.
func (p *Pool) Shutdown(ctx context.Context, mode ShutdownMode) error {
	p.mu.Lock()
	if p.stopped.Swap(true) {
		p.mu.Unlock()
		return nil
	}
	close(p.quit)
	p.mu.Unlock()
	// every blocked or in-flight Submit resolves before the channel closes
	p.sending.Wait()
	if mode == ShutdownAbort {
		// drain the queue before closing so workers never see the jobs
		for {
			select {
			case j := <-p.jobs:
				j.future.complete(nil, ErrPoolClosed)
				continue
			default:
			}
			break
		}
	}
	close(p.jobs)

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()
	ticker := time.NewTicker(drainPollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			// bounded poll keeps graceful shutdown responsive to ctx
		}
	}
}

// Active reports the number of tasks currently executing.
func (p *Pool) Active() int { return int(p.active.Load()) }
