// Package dispatch provides thread-bound task queues used to marshal work
// between the platform, UI and worker threads.
//
// A Queue is bound to the goroutine that creates it (or that calls Bind).
// Any goroutine may enqueue closures; only the owner drains them. Dispatch
// offers an execute-immediately fast path when the caller is already on the
// owning goroutine.
package dispatch

import (
	"sync"

	"github.com/brisk-gui/brisk/pkg/errors"
)

// Mode controls when Dispatch may run a closure synchronously instead of
// enqueuing it.
type Mode int

const (
	// ModeNever always enqueues, even from the owning goroutine.
	ModeNever Mode = iota
	// ModeIfOnThread runs synchronously when called from the owning goroutine.
	ModeIfOnThread
	// ModeIfProcessing runs synchronously only while the owner is inside
	// Process (prevents re-entrancy outside the drain loop).
	ModeIfProcessing
	// ModeAlways runs synchronously whenever the caller is the owner,
	// regardless of processing state.
	ModeAlways
)

// Queue is a multi-producer single-consumer queue of closures bound to one
// goroutine. Closures that panic are reported and suppressed; they never
// propagate through the queue.
type Queue struct {
	mu    sync.Mutex
	tasks []func()

	owner uint64 // goroutine id of the consumer
	depth int    // Process nesting, guarded by mu
	main  bool   // enqueue triggers the host wake-up callback
}

// NewQueue creates a queue owned by the calling goroutine.
func NewQueue() *Queue {
	return &Queue{owner: currentGoroutineID()}
}

// NewMainQueue creates a queue owned by the calling goroutine whose enqueues
// invoke the registered wake-up callback to unblock the OS event loop.
func NewMainQueue() *Queue {
	q := NewQueue()
	q.main = true
	return q
}

// Bind rebinds the queue to the calling goroutine. Call this when the
// consumer goroutine starts, before any Process call.
func (q *Queue) Bind() {
	q.mu.Lock()
	q.owner = currentGoroutineID()
	q.mu.Unlock()
}

// IsCurrent reports whether the calling goroutine owns the queue.
func (q *Queue) IsCurrent() bool {
	q.mu.Lock()
	owner := q.owner
	q.mu.Unlock()
	return owner == currentGoroutineID()
}

// Enqueue pushes a closure for the owning goroutine to run. Safe to call
// from any goroutine.
func (q *Queue) Enqueue(task func()) {
	if task == nil {
		return
	}
	q.mu.Lock()
	q.tasks = append(q.tasks, task)
	q.mu.Unlock()
	if q.main {
		wakeMain()
	}
}

// TryDequeue pops a single closure. It must only be called from the owning
// goroutine.
func (q *Queue) TryDequeue() (func(), bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.tasks) == 0 {
		return nil, false
	}
	task := q.tasks[0]
	q.tasks = q.tasks[1:]
	return task, true
}

// Process drains the queue. It must only be called from the owning
// goroutine. Closures enqueued while draining are run in the same pass.
func (q *Queue) Process() {
	if !q.IsCurrent() {
		errors.Programmer("dispatch.Process", "called from a non-owning goroutine")
		return
	}
	q.mu.Lock()
	q.depth++
	q.mu.Unlock()
	defer func() {
		q.mu.Lock()
		q.depth--
		q.mu.Unlock()
	}()

	for {
		q.mu.Lock()
		if len(q.tasks) == 0 {
			q.mu.Unlock()
			return
		}
		batch := q.tasks
		q.tasks = nil
		q.mu.Unlock()

		for _, task := range batch {
			runTask(task)
		}
	}
}

// Processing reports whether the owner is currently inside Process.
func (q *Queue) Processing() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.depth > 0
}

// Pending reports the number of queued closures.
func (q *Queue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks)
}

// Dispatch runs the closure synchronously when the caller owns the queue and
// the mode permits; otherwise it enqueues the closure. The returned Future
// resolves when the closure has run.
func (q *Queue) Dispatch(task func(), mode Mode) *Future {
	f := newFuture()
	if task == nil {
		f.resolve()
		return f
	}
	if q.runInline(mode) {
		runTask(task)
		f.resolve()
		return f
	}
	q.Enqueue(func() {
		defer f.resolve()
		runTask(task)
	})
	return f
}

// runInline decides the synchronous fast path for Dispatch.
func (q *Queue) runInline(mode Mode) bool {
	if mode == ModeNever || !q.IsCurrent() {
		return false
	}
	switch mode {
	case ModeIfOnThread, ModeAlways:
		return true
	case ModeIfProcessing:
		return q.Processing()
	}
	return false
}

// WaitForCompletion enqueues a sentinel and blocks until the owning
// goroutine has drained everything queued before it. Calling this from the
// owning goroutine would deadlock; the queue drains inline instead.
func (q *Queue) WaitForCompletion() {
	if q.IsCurrent() {
		q.Process()
		return
	}
	f := newFuture()
	q.Enqueue(f.resolve)
	f.Wait()
}

// runTask invokes a closure, reporting and suppressing any panic.
func runTask(task func()) {
	defer errors.Recover("dispatch.runTask")
	task()
}
