package dispatch

import "sync"

var (
	wakeupMu   sync.RWMutex
	wakeupFunc func()
)

// RegisterWakeup sets the callback used to unblock the OS event loop when a
// task lands on the main queue from another goroutine. The host window layer
// should call this once during initialization.
func RegisterWakeup(fn func()) {
	wakeupMu.Lock()
	wakeupFunc = fn
	wakeupMu.Unlock()
}

// wakeMain invokes the registered wake-up callback, if any.
func wakeMain() {
	wakeupMu.RLock()
	fn := wakeupFunc
	wakeupMu.RUnlock()
	if fn != nil {
		fn()
	}
}
