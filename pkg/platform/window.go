// Package platform declares the host OS contracts the core consumes: the
// window surface delivering events and metrics, and the clipboard.
package platform

import "github.com/brisk-gui/brisk/pkg/graphics"

// Cursor identifies a pointer shape the window should display.
type Cursor uint8

const (
	CursorArrow Cursor = iota
	CursorIBeam
	CursorHand
	CursorCrosshair
	CursorResizeH
	CursorResizeV
	CursorNotAllowed
)

// Window is the host window contract. The host delivers key, char, mouse,
// wheel, focus, resize and close events by constructing input events and
// feeding the tree's input queue; this interface covers what the core asks
// of the window in return.
type Window interface {
	// FramebufferSize returns the surface size in physical pixels.
	FramebufferSize() graphics.Size
	// ContentScale returns physical pixels per logical pixel.
	ContentScale() float64
	// SetCursor changes the displayed pointer shape.
	SetCursor(c Cursor)
	// Cursor returns the current pointer shape.
	Cursor() Cursor
	// Wakeup unblocks the OS event loop; wired into dispatch.RegisterWakeup
	// so cross-thread task enqueues never sleep indefinitely.
	Wakeup()
}
