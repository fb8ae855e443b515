// Package workerpool bounds the goroutines the storefront spends on
// upstream fan-out. Pages that aggregate several backend calls, like the
// admin dashboard, run them through a shared pool so a burst of dashboard
// loads cannot multiply into unbounded concurrent calls against the
// backend.
//
//	pool := workerpool.New(16)
//	defer pool.Shutdown()
//
//	workerpool.FanOut(pool,
//	    func() { products, perr = backend.AdminProducts(ctx, token, "") },
//	    func() { users, uerr = backend.AdminUsers(ctx, token) },
//	)
package workerpool

import (
	"errors"
	"sync"
)

// ErrPoolClosed is returned by SubmitWait after Shutdown has been called.
var ErrPoolClosed = errors.New("workerpool: pool is closed")

// Pool is a bounded goroutine pool.
type Pool struct {
	tasks  chan func()
	wg     sync.WaitGroup
	once   sync.Once
	mu     sync.RWMutex
	closed bool
}

// New creates a Pool with the given number of workers.
func New(size int) *Pool {
	if size <= 0 {
		size = 1
	}

	p := &Pool{
		tasks: make(chan func(), size*2),
	}

	for i := 0; i < size; i++ {
		p.wg.Add(1)
		go p.worker()
	}

	return p
}

// SubmitWait enqueues task, blocking until a slot frees up. Returns
// ErrPoolClosed when the pool is shutting down. The read lock pairs with
// Shutdown's write lock so the task channel cannot close mid-send.
func (p *Pool) SubmitWait(task func()) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrPoolClosed
	}
	p.tasks <- task
	return nil
}

// FanOut runs all tasks through the pool and waits for every one to
// finish. Tasks rejected by a closing pool are simply skipped; the caller
// is shutting down anyway.
func FanOut(p *Pool, tasks ...func()) {
	var wg sync.WaitGroup
	for _, task := range tasks {
		task := task
		wg.Add(1)
		if err := p.SubmitWait(func() {
			defer wg.Done()
			task()
		}); err != nil {
			wg.Done()
		}
	}
	wg.Wait()
}

// Shutdown stops accepting tasks and waits for in-flight ones to finish.
// Safe to call more than once. Taking the write lock first means no
// SubmitWait can be committed to a send when the channel closes.
func (p *Pool) Shutdown() {
	p.once.Do(func() {
		p.mu.Lock()
		p.closed = true
		close(p.tasks)
		p.mu.Unlock()
		p.wg.Wait()
	})
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for task := range p.tasks {
		run(task)
	}
}

// run executes task, recovering from panics so one bad task cannot kill a
// worker goroutine.
func run(task func()) {
	defer func() { recover() }() //nolint:errcheck
	task()
}
