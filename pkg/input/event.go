// Package input bridges host OS events and widget callbacks: event
// synthesis, hit testing, focus, hover, click classification and the drag
// state machine.
package input

import "github.com/brisk-gui/brisk/pkg/graphics"

// Modifiers is the keyboard modifier mask carried by every event.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModControl
	ModAlt
	ModSuper
)

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	ButtonLeft MouseButton = iota
	ButtonRight
	ButtonMiddle
	buttonCount
)

// KeyCode identifies a key. Values follow the USB HID usage names the host
// layer maps to; only the keys the core inspects are named here.
type KeyCode int

const (
	KeyUnknown KeyCode = iota
	KeyTab
	KeyEnter
	KeyEscape
	KeySpace
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
)

// EventKind discriminates the event union.
type EventKind uint8

const (
	KindKeyPressed EventKind = iota
	KindKeyReleased
	KindCharacterTyped
	KindMouseMoved
	KindMouseButtonPressed
	KindMouseButtonReleased
	KindMouseDoubleClicked
	KindMouseTripleClicked
	KindMouseWheelX
	KindMouseWheelY
	KindMouseExited
	KindFocused
	KindBlurred
	KindTargetedKeyPressed
	KindSourceChange
)

// Event is the envelope dispatched to widgets. Handlers read the payload
// and may set the stopped flag to end propagation; the payload itself is
// never mutated during dispatch.
type Event struct {
	Kind   EventKind
	Cookie uint32
	Mods   Modifiers

	Point  graphics.Point
	Button MouseButton
	Key    KeyCode
	Rune   rune
	Wheel  float64

	// KeyboardFocus marks a Focused event that arrived via keyboard
	// traversal, for selection semantics.
	KeyboardFocus bool

	stopped bool
}

// StopPropagation ends dispatch of this event after the current handler.
func (e *Event) StopPropagation() {
	e.stopped = true
}

// Stopped reports whether a handler ended propagation.
func (e *Event) Stopped() bool {
	return e.stopped
}

// IsMouse reports whether the event carries a mouse position.
func (e *Event) IsMouse() bool {
	switch e.Kind {
	case KindMouseMoved, KindMouseButtonPressed, KindMouseButtonReleased,
		KindMouseDoubleClicked, KindMouseTripleClicked,
		KindMouseWheelX, KindMouseWheelY, KindMouseExited:
		return true
	}
	return false
}

// IsKey reports whether the event targets the keyboard focus.
func (e *Event) IsKey() bool {
	switch e.Kind {
	case KindKeyPressed, KindKeyReleased, KindCharacterTyped, KindTargetedKeyPressed:
		return true
	}
	return false
}

// MouseInteraction controls how a widget participates in hit testing.
type MouseInteraction uint8

const (
	// MouseEnable makes the widget a hit target.
	MouseEnable MouseInteraction = iota
	// MouseDisable removes the widget from hit testing entirely.
	MouseDisable
	// MousePass forwards hits through the widget to whatever lies beneath
	// it in paint order.
	MousePass
)

// Target is the widget surface the input queue dispatches to. The widget
// package implements it.
type Target interface {
	// HandleEvent delivers the event; the handler may stop propagation.
	HandleEvent(ev *Event)
	ParentTarget() Target
	ChildTargets() []Target
	Interaction() MouseInteraction
	TabStop() bool
	// TabGroup marks the widget as a traversal boundary: tab wraps within
	// the nearest enclosing group.
	TabGroup() bool
	// FocusCapture marks popups that confine tab traversal to themselves.
	FocusCapture() bool
	Draggable() bool
	SetHovered(hovered bool)
	SetPressed(pressed bool)
	SetFocused(focused bool)
}
