package dispatch

import "sync"

// Future resolves once the dispatched closure has run.
type Future struct {
	once sync.Once
	done chan struct{}
}

func newFuture() *Future {
	return &Future{done: make(chan struct{})}
}

// resolve marks the future complete. Idempotent.
func (f *Future) resolve() {
	f.once.Do(func() { close(f.done) })
}

// Done returns a channel closed when the closure has run.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the closure has run.
func (f *Future) Wait() {
	<-f.done
}

// Resolved reports whether the closure has already run.
func (f *Future) Resolved() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}
