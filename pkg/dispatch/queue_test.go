package dispatch

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestEnqueueProcess(t *testing.T) {
	q := NewQueue()
	var ran []int
	q.Enqueue(func() { ran = append(ran, 1) })
	q.Enqueue(func() { ran = append(ran, 2) })

	q.Process()

	if len(ran) != 2 || ran[0] != 1 || ran[1] != 2 {
		t.Errorf("ran = %v, want [1 2]", ran)
	}
}

func TestProcessDrainsNestedEnqueues(t *testing.T) {
	q := NewQueue()
	count := 0
	q.Enqueue(func() {
		count++
		q.Enqueue(func() { count++ })
	})

	q.Process()

	if count != 2 {
		t.Errorf("count = %d, want 2 (closures enqueued while draining run in the same pass)", count)
	}
}

func TestTryDequeue(t *testing.T) {
	q := NewQueue()
	if _, ok := q.TryDequeue(); ok {
		t.Fatal("TryDequeue on empty queue returned a task")
	}
	ran := false
	q.Enqueue(func() { ran = true })
	task, ok := q.TryDequeue()
	if !ok {
		t.Fatal("TryDequeue returned no task")
	}
	task()
	if !ran {
		t.Error("dequeued task did not run")
	}
	if q.Pending() != 0 {
		t.Errorf("Pending = %d, want 0", q.Pending())
	}
}

func TestDispatchModes(t *testing.T) {
	tests := []struct {
		name       string
		mode       Mode
		processing bool
		wantInline bool
	}{
		{"never enqueues", ModeNever, false, false},
		{"if-on-thread runs inline", ModeIfOnThread, false, true},
		{"if-processing outside process enqueues", ModeIfProcessing, false, false},
		{"if-processing inside process runs inline", ModeIfProcessing, true, true},
		{"always runs inline", ModeAlways, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := NewQueue()
			ran := false
			dispatch := func() {
				f := q.Dispatch(func() { ran = true }, tt.mode)
				if tt.wantInline && !f.Resolved() {
					t.Error("future not resolved after inline dispatch")
				}
			}
			if tt.processing {
				q.Enqueue(dispatch)
				q.Process()
			} else {
				dispatch()
			}
			if ran != tt.wantInline {
				t.Errorf("ran inline = %v, want %v", ran, tt.wantInline)
			}
		})
	}
}

func TestDispatchFromOtherGoroutineEnqueues(t *testing.T) {
	q := NewQueue()
	var ran atomic.Bool

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		q.Dispatch(func() { ran.Store(true) }, ModeAlways)
	}()
	wg.Wait()

	if ran.Load() {
		t.Fatal("closure ran on the wrong goroutine")
	}
	q.Process()
	if !ran.Load() {
		t.Error("closure did not run after Process")
	}
}

func TestDispatchNeverThenWait(t *testing.T) {
	q := NewQueue()
	ran := false
	f := q.Dispatch(func() { ran = true }, ModeNever)
	if f.Resolved() {
		t.Fatal("future resolved before the queue drained")
	}
	q.Process()
	f.Wait()
	if !ran {
		t.Error("closure did not run")
	}
}

func TestWaitForCompletionCrossGoroutine(t *testing.T) {
	q := NewQueue()
	var ran atomic.Bool
	q.Enqueue(func() { ran.Store(true) })

	done := make(chan struct{})
	go func() {
		defer close(done)
		q.WaitForCompletion()
	}()

	// Give the waiter time to block on the sentinel.
	time.Sleep(10 * time.Millisecond)
	q.Process()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("WaitForCompletion did not return after drain")
	}
	if !ran.Load() {
		t.Error("task did not run before completion")
	}
}

func TestWaitForCompletionOnOwnerDrainsInline(t *testing.T) {
	q := NewQueue()
	ran := false
	q.Enqueue(func() { ran = true })
	q.WaitForCompletion()
	if !ran {
		t.Error("owner-side WaitForCompletion did not drain the queue")
	}
}

func TestTaskPanicSuppressed(t *testing.T) {
	q := NewQueue()
	ran := false
	q.Enqueue(func() { panic("bad task") })
	q.Enqueue(func() { ran = true })
	q.Process()
	if !ran {
		t.Error("task after a panicking one did not run")
	}
}

func TestBindMovesOwnership(t *testing.T) {
	q := NewQueue()
	var ran atomic.Bool
	q.Enqueue(func() { ran.Store(true) })

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		q.Bind()
		if !q.IsCurrent() {
			t.Error("queue not current after Bind")
		}
		q.Process()
	}()
	wg.Wait()

	if !ran.Load() {
		t.Error("rebound consumer did not drain")
	}
	if q.IsCurrent() {
		t.Error("original goroutine still owns the queue")
	}
}

func TestMainQueueWakeup(t *testing.T) {
	woke := make(chan struct{}, 1)
	RegisterWakeup(func() {
		select {
		case woke <- struct{}{}:
		default:
		}
	})
	defer RegisterWakeup(nil)

	q := NewMainQueue()
	q.Enqueue(func() {})

	select {
	case <-woke:
	case <-time.After(time.Second):
		t.Fatal("enqueue on the main queue did not trigger the wakeup callback")
	}
}
