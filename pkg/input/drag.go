package input

import "github.com/brisk-gui/brisk/pkg/graphics"

// DragPhase identifies a transition in the drag state machine.
type DragPhase int

const (
	// DragStarted fires once when movement first exceeds the threshold.
	DragStarted DragPhase = iota
	// DragMoved fires on every subsequent pointer move while dragging.
	DragMoved
	// DragDropped fires on button release after a drag started.
	DragDropped
	// DragCancelled fires when Escape or window blur aborts a drag.
	DragCancelled
)

func (p DragPhase) String() string {
	switch p {
	case DragStarted:
		return "started"
	case DragMoved:
		return "moved"
	case DragDropped:
		return "dropped"
	case DragCancelled:
		return "cancelled"
	}
	return "unknown"
}

// DragEvent reports one drag transition. Offset is measured from the
// press anchor point, not from the previous move.
type DragEvent struct {
	Phase  DragPhase
	Button MouseButton
	Source Target
	Anchor graphics.Point
	Point  graphics.Point
	Offset graphics.Point
	Mods   Modifiers
}

type dragMode int

const (
	dragIdle dragMode = iota
	dragArmed
	dragActive
)

// dragState is the per-button machine: Idle until a press lands on a
// draggable widget (Armed), Active once movement exceeds the threshold.
type dragState struct {
	mode   dragMode
	source Target
	anchor graphics.Point
}

// dragArm arms the machine if the pressed chain contains a draggable
// widget. The nearest draggable ancestor becomes the drag source.
func (q *Queue) dragArm(button MouseButton, hit Target, p graphics.Point) {
	if button >= buttonCount {
		return
	}
	for t := hit; t != nil; t = t.ParentTarget() {
		if t.Draggable() {
			q.drags[button] = dragState{mode: dragArmed, source: t, anchor: p}
			return
		}
	}
	q.drags[button] = dragState{mode: dragIdle}
}

// dragMove advances every armed or active machine for the new pointer
// position.
func (q *Queue) dragMove(p graphics.Point, mods Modifiers) {
	for b := range q.drags {
		d := &q.drags[b]
		switch d.mode {
		case dragArmed:
			if p.Distance(d.anchor) >= q.DragThreshold {
				d.mode = dragActive
				q.SetCapture(d.source)
				q.emitDrag(DragStarted, MouseButton(b), d, p, mods)
				q.emitDrag(DragMoved, MouseButton(b), d, p, mods)
			}
		case dragActive:
			q.emitDrag(DragMoved, MouseButton(b), d, p, mods)
		}
	}
}

// dragRelease finishes the machine for one button: Dropped if a drag was
// active, silently disarmed otherwise.
func (q *Queue) dragRelease(button MouseButton, p graphics.Point, mods Modifiers) {
	if button >= buttonCount {
		return
	}
	d := &q.drags[button]
	if d.mode == dragActive {
		q.emitDrag(DragDropped, button, d, p, mods)
		q.ReleaseCapture()
	}
	*d = dragState{}
}

// dragCancelAll aborts every active drag. Armed machines are disarmed
// without an event.
func (q *Queue) dragCancelAll() {
	for b := range q.drags {
		d := &q.drags[b]
		if d.mode == dragActive {
			q.emitDrag(DragCancelled, MouseButton(b), d, q.mouse, q.mods)
			q.ReleaseCapture()
		}
		*d = dragState{}
	}
}

// Dragging reports whether any button currently drives an active drag.
func (q *Queue) Dragging() bool {
	for b := range q.drags {
		if q.drags[b].mode == dragActive {
			return true
		}
	}
	return false
}

func (q *Queue) emitDrag(phase DragPhase, button MouseButton, d *dragState, p graphics.Point, mods Modifiers) {
	if q.OnDrag == nil {
		return
	}
	q.OnDrag(DragEvent{
		Phase:  phase,
		Button: button,
		Source: d.source,
		Anchor: d.anchor,
		Point:  p,
		Offset: p.Sub(d.anchor),
		Mods:   mods,
	})
}
