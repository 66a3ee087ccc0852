// Package executor offloads blocking units of work onto a fixed worker
// pool so request-serving goroutines are never tied up in synchronous
// database I/O. Submit hands back a Task that resolves with the work's
// result; scheduling failures are reported by Submit itself and are
// distinct from errors the work returns.
package executor

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrClosed is returned by Submit after the pool has been closed.
	ErrClosed = errors.New("executor: pool is closed")
	// ErrQueueFull is returned by Submit when the submission queue is at
	// capacity. Callers treat it as an internal fault, not backpressure
	// to retry.
	ErrQueueFull = errors.New("executor: submission queue is full")
)

// Work is a zero-argument unit of blocking work. It must not capture
// worker-affine state: successive invocations may land on any worker.
type Work func() (interface{}, error)

// Task is the future side of a submitted unit of work.
type Task struct {
	work   Work
	done   chan struct{}
	result interface{}
	err    error
}

// Wait blocks until the work has run and returns its result, or returns
// early with the context's error if ctx is done first. The work itself
// keeps running; an abandoned Task simply has nobody waiting on it.
func (t *Task) Wait(ctx context.Context) (interface{}, error) {
	select {
	case <-t.done:
		return t.result, t.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (t *Task) run() {
	defer close(t.done)
	defer func() {
		// A panicking unit of work must not take the worker down.
		if r := recover(); r != nil {
			t.result = nil
			t.err = fmt.Errorf("executor: work panicked: %v", r)
		}
	}()
	t.result, t.err = t.work()
}

// Pool executes submitted work on a fixed number of worker goroutines,
// sized independently of the number of concurrent callers.
type Pool struct {
	queue chan *Task
	wg    sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

// DefaultWorkers is the worker count used when NewPool is given zero.
const DefaultWorkers = 8

// DefaultQueueSize is the submission queue capacity used when NewPool is
// given zero.
const DefaultQueueSize = 64

// NewPool starts a pool with the given worker count and submission queue
// capacity. Zero or negative values fall back to the defaults.
func NewPool(workers, queueSize int) *Pool {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}

	p := &Pool{queue: make(chan *Task, queueSize)}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for task := range p.queue {
		task.run()
	}
}

// Submit schedules work on the pool and returns its Task. The returned
// error covers scheduling only (ErrClosed, ErrQueueFull); errors produced
// by the work are delivered through Task.Wait.
func (p *Pool) Submit(work Work) (*Task, error) {
	if work == nil {
		return nil, errors.New("executor: nil work")
	}

	t := &Task{work: work, done: make(chan struct{})}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil, ErrClosed
	}
	select {
	case p.queue <- t:
		return t, nil
	default:
		return nil, ErrQueueFull
	}
}

// Close stops accepting work, runs everything already queued, and waits
// for the workers to exit. It is safe to call more than once.
func (p *Pool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.queue)
	p.mu.Unlock()

	p.wg.Wait()
}
