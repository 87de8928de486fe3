package dispatch

import (
	"bytes"
	"runtime"
	"strconv"
)

// currentGoroutineID parses the goroutine id from the runtime stack header
// ("goroutine N [running]:"). Queues use it to enforce single-consumer
// semantics and to decide the Dispatch fast path. The id is never stored
// beyond the queue's owner field and never used to reach into the runtime.
func currentGoroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	header := buf[:n]
	header = bytes.TrimPrefix(header, []byte("goroutine "))
	if i := bytes.IndexByte(header, ' '); i >= 0 {
		header = header[:i]
	}
	id, err := strconv.ParseUint(string(header), 10, 64)
	if err != nil {
		return 0
	}
	return id
}
