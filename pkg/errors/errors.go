// Package errors provides structured error handling for the Brisk core.
//
// The core never tears itself down on recoverable errors: exceptions thrown
// from handlers, widget callbacks or queued tasks are reported through the
// global handler and suppressed. Programmer errors panic when DebugMode is
// set and are logged otherwise.
package errors

import (
	"fmt"
	"time"
)

// DebugMode controls whether programmer errors abort the process.
// Set it once during application startup, before any frame runs.
var DebugMode = false

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindProgrammer indicates an API misuse (binding to an unregistered
	// region, illegal thread access). Panics in debug mode.
	KindProgrammer
	// KindRecoverable indicates a recovered failure from a handler, widget
	// callback or queued task. Always logged and suppressed.
	KindRecoverable
	// KindResource indicates a resource that failed to load (font, image).
	KindResource
	// KindInput indicates a host event that maps to no known event type.
	KindInput
)

func (k ErrorKind) String() string {
	switch k {
	case KindProgrammer:
		return "programmer"
	case KindRecoverable:
		return "recoverable"
	case KindResource:
		return "resource"
	case KindInput:
		return "input"
	default:
		return "unknown"
	}
}

// CoreError represents a structured error in the Brisk core.
type CoreError struct {
	// Op is the operation that failed (e.g., "binding.Connect").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

// New wraps err as a CoreError with the given op and kind.
func New(op string, kind ErrorKind, err error) *CoreError {
	return &CoreError{Op: op, Kind: kind, Err: err, Timestamp: time.Now()}
}

func (e *CoreError) Error() string {
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *CoreError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "binding.Notify").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}
