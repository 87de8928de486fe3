// Package widget implements the retained widget tree: nodes with styled
// properties, the per-frame pipeline driving style resolution, layout,
// input dispatch and layered painting, and the tree-level work queues
// widgets defer onto.
package widget

import (
	"github.com/brisk-gui/brisk/pkg/errors"
	"github.com/brisk-gui/brisk/pkg/graphics"
	"github.com/brisk-gui/brisk/pkg/input"
	"github.com/brisk-gui/brisk/pkg/layout"
	"github.com/brisk-gui/brisk/pkg/platform"
	"github.com/brisk-gui/brisk/pkg/render"
	"github.com/brisk-gui/brisk/pkg/style"
)

// Widget is one node of the retained tree. Behavior attaches through the
// exported hook fields; appearance through the stylesheet and property
// table. A widget belongs to at most one tree at a time.
type Widget struct {
	typeName string
	id       string
	role     string
	classes  []string

	parent   *Widget
	tree     *Tree
	children []*Widget
	groups   []Group

	sheet   *style.Stylesheet
	base    [style.PropertyCount]any // defaults + explicit sets + matched rules
	props   [style.PropertyCount]any // resolved values, post transition sampling
	prev    [style.PropertyCount]any // pre-transition snapshot
	active  map[style.PropertyIndex]*style.Transition
	reapply func()
	styling bool // guards against restyle recursion from rule application

	fontSize    float64
	layoutStyle layout.Style
	states      style.StateMask

	rect       graphics.Rect
	clientRect graphics.Rect
	hintRect   graphics.Rect

	cursor       platform.Cursor
	interaction  input.MouseInteraction
	tabStop      bool
	tabGroup     bool
	focusCapture bool
	draggable    bool

	// Layered widgets paint on a fresh layer above their parent's, via
	// the tree's layer queue.
	Layered bool

	// Behavior hooks. All optional; panics are contained per callback.
	OnChildAdded     func(child *Widget)
	OnChildRemoved   func(child *Widget)
	OnEvent          func(ev *input.Event)
	OnPaint          func(c render.Canvas)
	OnPostPaint      func(c render.Canvas)
	OnRefresh        func()
	OnAnimationFrame func()
	OnRebuild        func()
	OnLayoutUpdated  func()
	OnMeasure        func(available graphics.Size) graphics.Size
	OnHint           func() string
}

// New constructs a detached widget of the given type name with default
// properties.
func New(typeName string) *Widget {
	w := &Widget{
		typeName: typeName,
		cursor:   platform.CursorArrow,
	}
	for i := range w.base {
		w.base[i] = style.Meta(style.PropertyIndex(i)).Default
	}
	return w
}

// TypeName returns the widget's type name, matched by Type selectors.
func (w *Widget) TypeName() string { return w.typeName }

// ID returns the widget id.
func (w *Widget) ID() string { return w.id }

// SetID changes the widget id and queues a restyle.
func (w *Widget) SetID(id string) {
	if w.id == id {
		return
	}
	w.id = id
	w.requestRestyle()
}

// Role returns the widget role.
func (w *Widget) Role() string { return w.role }

// SetRole changes the widget role and queues a restyle.
func (w *Widget) SetRole(role string) {
	if w.role == role {
		return
	}
	w.role = role
	w.requestRestyle()
}

// HasClass reports whether the widget carries the class.
func (w *Widget) HasClass(name string) bool {
	for _, c := range w.classes {
		if c == name {
			return true
		}
	}
	return false
}

// AddClass adds a class and queues a restyle.
func (w *Widget) AddClass(name string) {
	if w.HasClass(name) {
		return
	}
	w.classes = append(w.classes, name)
	w.requestRestyle()
}

// RemoveClass removes a class and queues a restyle.
func (w *Widget) RemoveClass(name string) {
	for i, c := range w.classes {
		if c == name {
			w.classes = append(w.classes[:i], w.classes[i+1:]...)
			w.requestRestyle()
			return
		}
	}
}

// ToggleClass adds or removes a class depending on enabled.
func (w *Widget) ToggleClass(name string, enabled bool) {
	if enabled {
		w.AddClass(name)
	} else {
		w.RemoveClass(name)
	}
}

// States returns the widget's current state bits.
func (w *Widget) States() style.StateMask { return w.states }

// ParentNode adapts the parent for selector matching.
func (w *Widget) ParentNode() style.Node {
	if w.parent == nil {
		return nil
	}
	return w.parent
}

// ChildIndex returns the widget's position under its parent.
func (w *Widget) ChildIndex() (index, count int, ok bool) {
	if w.parent == nil {
		return 0, 0, false
	}
	for i, c := range w.parent.children {
		if c == w {
			return i, len(w.parent.children), true
		}
	}
	return 0, 0, false
}

// Parent returns the parent widget, nil at the root.
func (w *Widget) Parent() *Widget { return w.parent }

// Tree returns the owning tree, nil while detached.
func (w *Widget) Tree() *Tree { return w.tree }

// Children returns the child list. Callers must not mutate it.
func (w *Widget) Children() []*Widget { return w.children }

// Rect returns the widget's layout rect in viewport coordinates.
func (w *Widget) Rect() graphics.Rect { return w.rect }

// ClientRect returns the rect inset by border and padding.
func (w *Widget) ClientRect() graphics.Rect { return w.clientRect }

// HintRect returns the anchor rect for the widget's hint popup.
func (w *Widget) HintRect() graphics.Rect { return w.hintRect }

// SetHintRect overrides the hint anchor. Zero restores the default (the
// widget rect).
func (w *Widget) SetHintRect(rect graphics.Rect) { w.hintRect = rect }

// Cursor returns the pointer shape shown while the widget is hovered.
func (w *Widget) Cursor() platform.Cursor { return w.cursor }

// SetCursor changes the hover pointer shape.
func (w *Widget) SetCursor(c platform.Cursor) { w.cursor = c }

// Append adds children to the end of the child list.
func (w *Widget) Append(children ...*Widget) {
	for _, c := range children {
		w.insertAt(len(w.children), c)
	}
}

// Insert places a child at the given position, clamped to the list bounds.
func (w *Widget) Insert(i int, child *Widget) {
	if i < 0 {
		i = 0
	}
	if i > len(w.children) {
		i = len(w.children)
	}
	w.insertAt(i, child)
}

func (w *Widget) insertAt(i int, child *Widget) {
	if child == nil {
		return
	}
	if child.parent != nil {
		child.parent.Remove(child)
	}
	w.children = append(w.children, nil)
	copy(w.children[i+1:], w.children[i:])
	w.children[i] = child
	child.parent = w
	child.setTree(w.tree)
	if w.OnChildAdded != nil {
		w.OnChildAdded(child)
	}
	w.invalidate()
}

// Remove detaches a child. It reports whether the child was present.
func (w *Widget) Remove(child *Widget) bool {
	for i, c := range w.children {
		if c == child {
			w.children = append(w.children[:i], w.children[i+1:]...)
			child.parent = nil
			child.setTree(nil)
			if w.OnChildRemoved != nil {
				w.OnChildRemoved(child)
			}
			w.invalidate()
			return true
		}
	}
	return false
}

// Clear detaches every child.
func (w *Widget) Clear() {
	children := w.children
	w.children = nil
	for _, c := range children {
		c.parent = nil
		c.setTree(nil)
		if w.OnChildRemoved != nil {
			w.OnChildRemoved(c)
		}
	}
	w.invalidate()
}

// setTree propagates tree membership through the subtree, firing group
// attach and detach callbacks.
func (w *Widget) setTree(t *Tree) {
	if w.tree == t {
		return
	}
	if w.tree != nil {
		w.tree.detachWidget(w)
	}
	w.tree = t
	if t != nil {
		t.attachWidget(w)
		w.requestRestyle()
	}
	for _, c := range w.children {
		c.setTree(t)
	}
}

// invalidate marks layout and geometry stale after a structural change.
func (w *Widget) invalidate() {
	if w.tree != nil {
		w.tree.RequestUpdateLayout()
		w.tree.RequestUpdateGeometry()
	}
}

// AddGroup subscribes the widget to a group. If the widget is attached the
// group sees it immediately.
func (w *Widget) AddGroup(g Group) {
	for _, have := range w.groups {
		if have == g {
			return
		}
	}
	w.groups = append(w.groups, g)
	if w.tree != nil {
		w.tree.addGroup(g)
		g.Attach(w)
	}
}

// Find returns the first widget in the subtree, in document order, for
// which match returns true.
func (w *Widget) Find(match func(*Widget) bool) *Widget {
	if match(w) {
		return w
	}
	for _, c := range w.children {
		if found := c.Find(match); found != nil {
			return found
		}
	}
	return nil
}

// FindAll returns every widget in the subtree matching the predicate, in
// document order.
func (w *Widget) FindAll(match func(*Widget) bool) []*Widget {
	var out []*Widget
	w.Walk(func(x *Widget) {
		if match(x) {
			out = append(out, x)
		}
	})
	return out
}

// FindByID returns the widget with the given id, or nil.
func (w *Widget) FindByID(id string) *Widget {
	return w.Find(func(x *Widget) bool { return x.id == id })
}

// FindByClass returns all widgets carrying the class.
func (w *Widget) FindByClass(name string) []*Widget {
	return w.FindAll(func(x *Widget) bool { return x.HasClass(name) })
}

// FindByRole returns all widgets with the given role.
func (w *Widget) FindByRole(role string) []*Widget {
	return w.FindAll(func(x *Widget) bool { return x.role == role })
}

// Walk visits the subtree depth-first in document order.
func (w *Widget) Walk(visit func(*Widget)) {
	visit(w)
	for _, c := range w.children {
		c.Walk(visit)
	}
}

// SetTabStop includes or excludes the widget from tab traversal.
func (w *Widget) SetTabStop(stop bool) { w.tabStop = stop }

// SetTabGroup marks the widget as a tab traversal boundary.
func (w *Widget) SetTabGroup(group bool) { w.tabGroup = group }

// SetFocusCapture confines tab traversal to this subtree. Popups set it.
func (w *Widget) SetFocusCapture(capture bool) { w.focusCapture = capture }

// SetDraggable arms the drag state machine on presses inside the widget.
func (w *Widget) SetDraggable(d bool) { w.draggable = d }

// SetInteraction controls hit-test participation.
func (w *Widget) SetInteraction(m input.MouseInteraction) {
	w.interaction = m
	if w.tree != nil {
		w.tree.RequestUpdateGeometry()
	}
}

// Clone deep-copies the subtree. Resolved properties carry over;
// transition state, tree membership and input state do not.
func (w *Widget) Clone() *Widget {
	c := &Widget{
		typeName:     w.typeName,
		id:           w.id,
		role:         w.role,
		classes:      append([]string(nil), w.classes...),
		sheet:        w.sheet,
		base:         w.base,
		props:        w.props,
		prev:         w.prev,
		fontSize:     w.fontSize,
		layoutStyle:  w.layoutStyle,
		cursor:       w.cursor,
		interaction:  w.interaction,
		tabStop:      w.tabStop,
		tabGroup:     w.tabGroup,
		focusCapture: w.focusCapture,
		draggable:    w.draggable,
		Layered:      w.Layered,

		OnChildAdded:     w.OnChildAdded,
		OnChildRemoved:   w.OnChildRemoved,
		OnEvent:          w.OnEvent,
		OnPaint:          w.OnPaint,
		OnPostPaint:      w.OnPostPaint,
		OnRefresh:        w.OnRefresh,
		OnAnimationFrame: w.OnAnimationFrame,
		OnRebuild:        w.OnRebuild,
		OnLayoutUpdated:  w.OnLayoutUpdated,
		OnMeasure:        w.OnMeasure,
		OnHint:           w.OnHint,
	}
	// Transient interaction state does not clone.
	c.states = w.states &^ (style.StateHover | style.StatePressed | style.StateFocused | style.StateKeyFocused)
	for _, child := range w.children {
		cc := child.Clone()
		cc.parent = c
		c.children = append(c.children, cc)
	}
	return c
}

// RequestRebuild queues the widget's OnRebuild hook for the next frame.
func (w *Widget) RequestRebuild() {
	if w.tree != nil {
		w.tree.queueRebuild(w)
	}
}

// RequestAnimationFrame queues the widget's OnAnimationFrame hook for the
// next frame.
func (w *Widget) RequestAnimationFrame() {
	if w.tree != nil {
		w.tree.queueAnimation(w)
	}
}

// RequestUpdateLayout marks the tree's layout stale.
func (w *Widget) RequestUpdateLayout() {
	if w.tree != nil {
		w.tree.RequestUpdateLayout()
	}
}

// RequestUpdateGeometry marks the hit-test cache stale.
func (w *Widget) RequestUpdateGeometry() {
	if w.tree != nil {
		w.tree.RequestUpdateGeometry()
	}
}

func (w *Widget) requestRestyle() {
	if w.tree != nil {
		w.tree.queueRestyle(w)
	}
}

// RequestRestyle queues the widget for style re-resolution next frame.
func (w *Widget) RequestRestyle() { w.requestRestyle() }

// HandleEvent delivers an input event to the OnEvent hook.
func (w *Widget) HandleEvent(ev *input.Event) {
	if w.OnEvent != nil {
		w.OnEvent(ev)
	}
}

// ParentTarget adapts the parent for input dispatch.
func (w *Widget) ParentTarget() input.Target {
	if w.parent == nil {
		return nil
	}
	return w.parent
}

// ChildTargets adapts the children for focus traversal.
func (w *Widget) ChildTargets() []input.Target {
	if len(w.children) == 0 {
		return nil
	}
	out := make([]input.Target, len(w.children))
	for i, c := range w.children {
		out[i] = c
	}
	return out
}

// Interaction returns the widget's hit-test mode.
func (w *Widget) Interaction() input.MouseInteraction { return w.interaction }

// TabStop reports tab traversal membership.
func (w *Widget) TabStop() bool { return w.tabStop }

// TabGroup reports whether the widget bounds tab traversal.
func (w *Widget) TabGroup() bool { return w.tabGroup }

// FocusCapture reports whether tab traversal is confined to the subtree.
func (w *Widget) FocusCapture() bool { return w.focusCapture }

// Draggable reports whether presses inside the widget arm a drag.
func (w *Widget) Draggable() bool { return w.draggable }

// SetHovered updates the hover state bit.
func (w *Widget) SetHovered(hovered bool) {
	w.setStateBit(style.StateHover, hovered)
	if hovered && w.tree != nil && w.tree.window != nil {
		w.tree.window.SetCursor(w.cursor)
	}
}

// SetPressed updates the pressed state bit.
func (w *Widget) SetPressed(pressed bool) {
	w.setStateBit(style.StatePressed, pressed)
}

// SetFocused updates the focus state bit.
func (w *Widget) SetFocused(focused bool) {
	w.setStateBit(style.StateFocused, focused)
}

// SetSelected updates the selected state bit.
func (w *Widget) SetSelected(selected bool) {
	w.setStateBit(style.StateSelected, selected)
}

// SetDisabled updates the disabled state bit.
func (w *Widget) SetDisabled(disabled bool) {
	w.setStateBit(style.StateDisabled, disabled)
}

func (w *Widget) setStateBit(bit style.StateMask, on bool) {
	prev := w.states
	if on {
		w.states |= bit
	} else {
		w.states &^= bit
	}
	if w.states != prev {
		w.requestRestyle()
	}
}

// call runs a widget hook, containing panics so one bad widget cannot
// stop the frame.
func call(op string, fn func()) {
	if fn == nil {
		return
	}
	defer errors.Recover(op)
	fn()
}
