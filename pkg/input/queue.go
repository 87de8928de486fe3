package input

import (
	"time"

	"github.com/brisk-gui/brisk/pkg/errors"
	"github.com/brisk-gui/brisk/pkg/graphics"
)

// Defaults for click and drag classification.
const (
	DefaultDoubleClickTime     = 500 * time.Millisecond
	DefaultDoubleClickDistance = 4.0
	DefaultDragThreshold       = 4.0
)

// Queue buffers host events and dispatches them through hit-tested widget
// chains. It is owned by the UI goroutine and carries no lock; all methods
// must be called from there.
type Queue struct {
	events     []*Event
	nextCookie uint32

	geometry []HitEntry

	focused     Target
	prevFocused Target
	pressed     Target
	captured    Target
	hoverStack  []Target

	mods       Modifiers
	mouse      graphics.Point
	mouseValid bool
	downPoint  graphics.Point

	drags  [buttonCount]dragState
	clicks clickState

	// unhandled records the cookies of events that reached the sink, so
	// external callers can detect events no widget consumed.
	unhandled []uint32

	// OnUnhandled, when set, receives events that no handler stopped.
	OnUnhandled func(ev *Event)
	// OnDrag receives drag state machine transitions.
	OnDrag func(ev DragEvent)

	DoubleClickTime     time.Duration
	DoubleClickDistance float64
	DragThreshold       float64

	// Now supplies timestamps for click classification. Tests override it.
	Now func() time.Time
}

// clickState tracks the last press for multi-click classification.
type clickState struct {
	button MouseButton
	time   time.Time
	point  graphics.Point
	count  int
}

// NewQueue creates an input queue with default classification thresholds.
func NewQueue() *Queue {
	return &Queue{
		DoubleClickTime:     DefaultDoubleClickTime,
		DoubleClickDistance: DefaultDoubleClickDistance,
		DragThreshold:       DefaultDragThreshold,
		Now:                 time.Now,
	}
}

// push tags the event with a fresh cookie and buffers it.
func (q *Queue) push(ev Event) uint32 {
	q.nextCookie++
	ev.Cookie = q.nextCookie
	q.events = append(q.events, &ev)
	return ev.Cookie
}

// PushKeyPressed buffers a key-down event.
func (q *Queue) PushKeyPressed(key KeyCode, mods Modifiers) uint32 {
	return q.push(Event{Kind: KindKeyPressed, Key: key, Mods: mods})
}

// PushKeyReleased buffers a key-up event.
func (q *Queue) PushKeyReleased(key KeyCode, mods Modifiers) uint32 {
	return q.push(Event{Kind: KindKeyReleased, Key: key, Mods: mods})
}

// PushCharacterTyped buffers a text-input event.
func (q *Queue) PushCharacterTyped(r rune, mods Modifiers) uint32 {
	return q.push(Event{Kind: KindCharacterTyped, Rune: r, Mods: mods})
}

// PushMouseMoved buffers a pointer-move event.
func (q *Queue) PushMouseMoved(p graphics.Point, mods Modifiers) uint32 {
	return q.push(Event{Kind: KindMouseMoved, Point: p, Mods: mods})
}

// PushMouseButtonPressed buffers a button-down event.
func (q *Queue) PushMouseButtonPressed(button MouseButton, p graphics.Point, mods Modifiers) uint32 {
	return q.push(Event{Kind: KindMouseButtonPressed, Button: button, Point: p, Mods: mods})
}

// PushMouseButtonReleased buffers a button-up event.
func (q *Queue) PushMouseButtonReleased(button MouseButton, p graphics.Point, mods Modifiers) uint32 {
	return q.push(Event{Kind: KindMouseButtonReleased, Button: button, Point: p, Mods: mods})
}

// PushMouseWheel buffers a wheel event on the given axis.
func (q *Queue) PushMouseWheel(vertical bool, delta float64, p graphics.Point, mods Modifiers) uint32 {
	kind := KindMouseWheelX
	if vertical {
		kind = KindMouseWheelY
	}
	return q.push(Event{Kind: kind, Wheel: delta, Point: p, Mods: mods})
}

// PushMouseExited buffers a pointer-left-window event.
func (q *Queue) PushMouseExited() uint32 {
	return q.push(Event{Kind: KindMouseExited})
}

// PushWindowBlurred buffers a window-lost-focus event. It cancels any drag
// in progress and blurs the focused widget.
func (q *Queue) PushWindowBlurred() uint32 {
	return q.push(Event{Kind: KindBlurred})
}

// PushSourceChange buffers an input-source-change event (pen vs mouse vs
// touch). Unmappable host events should be dropped by the host layer, not
// queued.
func (q *Queue) PushSourceChange() uint32 {
	return q.push(Event{Kind: KindSourceChange})
}

// Pending reports the buffered event count.
func (q *Queue) Pending() int {
	return len(q.events)
}

// WasUnhandled reports whether the event with the given cookie reached the
// unhandled sink during a ProcessEvents pass.
func (q *Queue) WasUnhandled(cookie uint32) bool {
	for _, c := range q.unhandled {
		if c == cookie {
			return true
		}
	}
	return false
}

// ProcessEvents drains the buffer, dispatching every event. Called from
// the frame pipeline after geometry update; all buffered events are drained
// synchronously.
func (q *Queue) ProcessEvents() {
	for len(q.events) > 0 {
		batch := q.events
		q.events = nil
		for _, ev := range batch {
			q.handleEvent(ev)
		}
	}
}

func (q *Queue) handleEvent(ev *Event) {
	defer errors.Recover("input.handleEvent")
	q.mods = ev.Mods

	switch ev.Kind {
	case KindMouseMoved:
		q.mouse = ev.Point
		q.mouseValid = true
		q.updateHover(ev.Point)
		q.dragMove(ev.Point, ev.Mods)
		q.dispatch(ev)

	case KindMouseButtonPressed:
		q.mouse = ev.Point
		q.mouseValid = true
		q.downPoint = ev.Point
		target := q.WidgetAt(ev.Point)
		q.setPressed(target)
		q.classifyPress(ev)
		q.dragArm(ev.Button, target, ev.Point)
		if target != nil && target.TabStop() {
			q.Focus(target, false)
		}
		q.dispatch(ev)

	case KindMouseButtonReleased:
		q.mouse = ev.Point
		q.dispatch(ev)
		q.dragRelease(ev.Button, ev.Point, ev.Mods)
		q.setPressed(nil)
		q.classifyRelease(ev)

	case KindMouseExited:
		q.clearHover()
		q.dispatch(ev)

	case KindKeyPressed:
		if ev.Key == KeyEscape {
			q.dragCancelAll()
		}
		q.dispatch(ev)
		if !ev.Stopped() && ev.Key == KeyTab {
			q.AdvanceFocus(ev.Mods&ModShift != 0)
		}

	case KindBlurred:
		// Window blur: cancel drags and drop widget focus.
		q.dragCancelAll()
		q.Focus(nil, false)
		q.sink(ev)

	default:
		q.dispatch(ev)
	}
}

// dispatch routes one event: the captured widget first, then the
// hit-tested chain for mouse events or the focus chain for key events,
// bubbling until a handler stops propagation, finally the unhandled sink.
func (q *Queue) dispatch(ev *Event) {
	if q.captured != nil {
		q.deliver(q.captured, ev)
		if ev.Stopped() {
			return
		}
	}

	var start Target
	switch {
	case ev.IsMouse():
		start = q.WidgetAt(ev.Point)
	case ev.IsKey():
		start = q.focused
	}
	for t := start; t != nil && !ev.Stopped(); t = t.ParentTarget() {
		if t == q.captured {
			continue
		}
		q.deliver(t, ev)
	}
	if !ev.Stopped() {
		q.sink(ev)
	}
}

// deliver invokes one widget handler, suppressing panics so a single bad
// widget cannot stop the loop.
func (q *Queue) deliver(t Target, ev *Event) {
	defer errors.Recover("input.deliver")
	t.HandleEvent(ev)
}

// sink records an event no handler consumed.
func (q *Queue) sink(ev *Event) {
	q.unhandled = append(q.unhandled, ev.Cookie)
	if q.OnUnhandled != nil {
		q.OnUnhandled(ev)
	}
}

// SetCapture routes all events to the target first until released. Used
// for drags and for popups opened with mouse-anywhere semantics.
func (q *Queue) SetCapture(t Target) {
	q.captured = t
}

// ReleaseCapture ends event capture.
func (q *Queue) ReleaseCapture() {
	q.captured = nil
}

// Captured returns the widget holding event capture, if any.
func (q *Queue) Captured() Target {
	return q.captured
}

// Focused returns the widget with keyboard focus, if any.
func (q *Queue) Focused() Target {
	return q.focused
}

// PrevFocused returns the widget that held keyboard focus before the most
// recent focus change. Selection code uses it to restore focus after a
// transient grab (a popup or a drag).
func (q *Queue) PrevFocused() Target {
	return q.prevFocused
}

// Focus moves keyboard focus, emitting Blurred on the previous widget and
// Focused on the new one. keyboard records whether the focus change arrived
// via keyboard traversal.
func (q *Queue) Focus(t Target, keyboard bool) {
	if q.focused == t {
		return
	}
	prev := q.focused
	q.prevFocused = prev
	q.focused = t
	if prev != nil {
		prev.SetFocused(false)
		q.nextCookie++
		q.deliver(prev, &Event{Kind: KindBlurred, Cookie: q.nextCookie})
	}
	if t != nil {
		t.SetFocused(true)
		q.nextCookie++
		q.deliver(t, &Event{Kind: KindFocused, Cookie: q.nextCookie, KeyboardFocus: keyboard})
	}
}

// setPressed updates the pressed widget and its state bit.
func (q *Queue) setPressed(t Target) {
	if q.pressed == t {
		return
	}
	if q.pressed != nil {
		q.pressed.SetPressed(false)
	}
	q.pressed = t
	if t != nil {
		t.SetPressed(true)
	}
}

// updateHover recomputes the hovered chain and emits MouseExited to
// widgets the pointer left.
func (q *Queue) updateHover(p graphics.Point) {
	target := q.WidgetAt(p)
	var chain []Target
	for t := target; t != nil; t = t.ParentTarget() {
		chain = append(chain, t)
	}
	inChain := func(t Target) bool {
		for _, c := range chain {
			if c == t {
				return true
			}
		}
		return false
	}
	for _, old := range q.hoverStack {
		if !inChain(old) {
			old.SetHovered(false)
			q.nextCookie++
			q.deliver(old, &Event{Kind: KindMouseExited, Cookie: q.nextCookie, Point: p})
		}
	}
	wasHovered := func(t Target) bool {
		for _, old := range q.hoverStack {
			if old == t {
				return true
			}
		}
		return false
	}
	// Ancestors first, the hit target last: SetHovered may update the
	// window cursor, and the deepest widget's cursor must win.
	for i := len(chain) - 1; i >= 0; i-- {
		if t := chain[i]; !wasHovered(t) {
			t.SetHovered(true)
		}
	}
	q.hoverStack = chain
}

// clearHover empties the hover stack when the pointer leaves the window.
func (q *Queue) clearHover() {
	for _, t := range q.hoverStack {
		t.SetHovered(false)
	}
	q.hoverStack = nil
}

// classifyPress counts consecutive presses within the double-click time
// and distance.
func (q *Queue) classifyPress(ev *Event) {
	now := q.Now()
	c := &q.clicks
	if c.count > 0 &&
		c.button == ev.Button &&
		now.Sub(c.time) <= q.DoubleClickTime &&
		ev.Point.Distance(c.point) <= q.DoubleClickDistance {
		c.count++
	} else {
		c.count = 1
	}
	c.button = ev.Button
	c.time = now
	c.point = ev.Point
}

// classifyRelease synthesizes double- and triple-click events in addition
// to the usual press/release pair.
func (q *Queue) classifyRelease(ev *Event) {
	c := &q.clicks
	if c.button != ev.Button || ev.Point.Distance(c.point) > q.DoubleClickDistance {
		return
	}
	switch c.count {
	case 2:
		q.nextCookie++
		q.dispatch(&Event{
			Kind: KindMouseDoubleClicked, Cookie: q.nextCookie,
			Button: ev.Button, Point: ev.Point, Mods: ev.Mods,
		})
	case 3:
		q.nextCookie++
		q.dispatch(&Event{
			Kind: KindMouseTripleClicked, Cookie: q.nextCookie,
			Button: ev.Button, Point: ev.Point, Mods: ev.Mods,
		})
		c.count = 0
	}
}
