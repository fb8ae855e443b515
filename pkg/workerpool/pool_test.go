package workerpool_test

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/shashiranjanraj/swaad/pkg/workerpool"
)

func TestPool_SubmitWaitRunsEverything(t *testing.T) {
	pool := workerpool.New(4)
	defer pool.Shutdown()

	const n = 100
	var count atomic.Int64
	done := make(chan struct{}, n)

	for i := 0; i < n; i++ {
		err := pool.SubmitWait(func() {
			count.Add(1)
			done <- struct{}{}
		})
		if err != nil {
			t.Fatalf("SubmitWait returned unexpected error: %v", err)
		}
	}

	for i := 0; i < n; i++ {
		<-done
	}

	if got := count.Load(); got != n {
		t.Errorf("expected %d tasks to run, got %d", n, got)
	}
}

func TestFanOut_WaitsForAllTasks(t *testing.T) {
	pool := workerpool.New(2)
	defer pool.Shutdown()

	var a, b, c atomic.Bool
	workerpool.FanOut(pool,
		func() { a.Store(true) },
		func() { b.Store(true) },
		func() { c.Store(true) },
	)

	if !a.Load() || !b.Load() || !c.Load() {
		t.Errorf("FanOut returned before all tasks ran: a=%v b=%v c=%v", a.Load(), b.Load(), c.Load())
	}
}

func TestPool_SubmitWaitAfterShutdown(t *testing.T) {
	pool := workerpool.New(1)
	pool.Shutdown()

	if err := pool.SubmitWait(func() {}); err != workerpool.ErrPoolClosed {
		t.Errorf("expected ErrPoolClosed, got %v", err)
	}
}

func TestPool_ShutdownDuringSubmitsDoesNotPanic(t *testing.T) {
	pool := workerpool.New(2)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// Either outcome is fine; sending on a closed channel is not.
			_ = pool.SubmitWait(func() {})
		}()
	}

	pool.Shutdown()
	wg.Wait()
}

func TestPool_TaskPanicDoesNotKillWorker(t *testing.T) {
	pool := workerpool.New(1)
	defer pool.Shutdown()

	done := make(chan struct{})
	_ = pool.SubmitWait(func() { panic("boom") })
	if err := pool.SubmitWait(func() { close(done) }); err != nil {
		t.Fatalf("SubmitWait after panic: %v", err)
	}
	<-done
}
