package widget

import (
	"time"

	"github.com/brisk-gui/brisk/pkg/binding"
	"github.com/brisk-gui/brisk/pkg/dispatch"
	"github.com/brisk-gui/brisk/pkg/errors"
	"github.com/brisk-gui/brisk/pkg/graphics"
	"github.com/brisk-gui/brisk/pkg/input"
	"github.com/brisk-gui/brisk/pkg/layout"
	"github.com/brisk-gui/brisk/pkg/platform"
	"github.com/brisk-gui/brisk/pkg/render"
	"github.com/brisk-gui/brisk/pkg/style"
)

// treeRegionSize is the binding address space reserved per tree for widget
// trigger addresses.
const treeRegionSize = 1 << 20

// Tree owns a root widget and drives the per-frame pipeline: style
// resolution, layout, input dispatch and layered painting. All methods
// must run on the UI queue's goroutine.
type Tree struct {
	root     *Widget
	window   platform.Window
	viewport graphics.Rect
	scale    float64

	engine   layout.Engine
	inputQ   *input.Queue
	queue    *dispatch.Queue
	registry *binding.Registry

	region      binding.Address
	nextTrigger uint64

	groups []Group

	lastRefresh time.Time
	frameTime   time.Time

	layoutCounter int64
	layoutDirty   bool
	layoutFailed  bool
	geometryDirty bool

	animations  []*Widget
	rebuilds    []*Widget
	restyles    []*Widget
	rectChanged []*Widget
	layers      []func(render.Canvas)

	// Now supplies frame timestamps. Tests override it.
	Now func() time.Time
}

// Option configures a Tree at construction.
type Option func(*Tree)

// WithEngine replaces the default flexbox engine.
func WithEngine(e layout.Engine) Option {
	return func(t *Tree) { t.engine = e }
}

// WithWindow attaches the host window for cursor updates and wakeups.
func WithWindow(w platform.Window) Option {
	return func(t *Tree) { t.window = w }
}

// WithRegistry uses a specific binding registry instead of the process
// instance.
func WithRegistry(r *binding.Registry) Option {
	return func(t *Tree) { t.registry = r }
}

// WithQueue sets the UI dispatch queue the tree and its binding region
// run on.
func WithQueue(q *dispatch.Queue) Option {
	return func(t *Tree) { t.queue = q }
}

// NewTree builds a tree around the given root widget and registers its
// binding region on the UI queue.
func NewTree(root *Widget, opts ...Option) *Tree {
	t := &Tree{
		scale:       1,
		engine:      layout.NewFlexEngine(),
		inputQ:      input.NewQueue(),
		lastRefresh: time.Time{},
		layoutDirty: true,
		Now:         time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.queue == nil {
		t.queue = dispatch.NewQueue()
	}
	if t.registry == nil {
		t.registry = binding.Instance()
	}
	t.region = binding.AllocateAddress(treeRegionSize)
	t.registry.RegisterRegion(t.region, t.queue)
	if root != nil {
		t.root = root
		root.setTree(t)
	}
	return t
}

// Close unregisters the tree's binding region, sweeping every connection
// into or out of it.
func (t *Tree) Close() {
	if !t.region.IsZero() {
		t.registry.UnregisterRegion(t.region)
		t.region = binding.Address{}
	}
}

// Root returns the root widget.
func (t *Tree) Root() *Widget { return t.root }

// Input returns the tree's input queue for event injection.
func (t *Tree) Input() *input.Queue { return t.inputQ }

// Queue returns the UI dispatch queue the tree runs on.
func (t *Tree) Queue() *dispatch.Queue { return t.queue }

// Registry returns the binding registry the tree's region lives in.
func (t *Tree) Registry() *binding.Registry { return t.registry }

// Window returns the host window, if attached.
func (t *Tree) Window() platform.Window { return t.window }

// Viewport returns the current viewport rect.
func (t *Tree) Viewport() graphics.Rect { return t.viewport }

// SetViewport updates the viewport and content scale, dirtying layout.
func (t *Tree) SetViewport(rect graphics.Rect, scale float64) {
	if rect.Equal(t.viewport) && scale == t.scale {
		return
	}
	t.viewport = rect
	if scale > 0 {
		t.scale = scale
	}
	t.RequestUpdateLayout()
	if t.root != nil {
		t.root.Walk(func(w *Widget) { t.queueRestyle(w) })
	}
}

// ContentScale returns device pixels per logical pixel.
func (t *Tree) ContentScale() float64 { return t.scale }

// LayoutCounter returns the number of completed layout passes.
func (t *Tree) LayoutCounter() int64 { return t.layoutCounter }

// LayoutFailed reports whether the most recent layout pass failed. Rects
// from the previous successful pass stay in effect.
func (t *Tree) LayoutFailed() bool { return t.layoutFailed }

// FrameTime returns the monotonic timestamp published at frame start.
func (t *Tree) FrameTime() time.Time { return t.frameTime }

// AllocateTrigger reserves a trigger address inside the tree's binding
// region. Notifications on it run handlers on the UI queue.
func (t *Tree) AllocateTrigger(size uint64) binding.Address {
	if t.nextTrigger+size > t.region.Size() {
		errors.Programmer("widget.AllocateTrigger", "tree binding region exhausted")
		return binding.Address{}
	}
	addr := t.region.Slice(t.nextTrigger, size)
	t.nextTrigger += size
	return addr
}

// Notify fires the binding handlers registered on a trigger address.
func (t *Tree) Notify(addr binding.Address) {
	t.registry.Notify(addr)
}

// RequestUpdateLayout marks layout stale; the next frame runs a pass.
func (t *Tree) RequestUpdateLayout() {
	t.layoutDirty = true
	t.wake()
}

// RequestUpdateGeometry marks the hit-test cache stale.
func (t *Tree) RequestUpdateGeometry() {
	t.geometryDirty = true
	t.wake()
}

func (t *Tree) wake() {
	if t.window != nil {
		t.window.Wakeup()
	}
}

// addGroup registers a group with the tree once.
func (t *Tree) addGroup(g Group) {
	for _, have := range t.groups {
		if have == g {
			return
		}
	}
	t.groups = append(t.groups, g)
}

// attachWidget wires a widget joining the tree: group callbacks fire and
// its style resolves next frame.
func (t *Tree) attachWidget(w *Widget) {
	for _, g := range w.groups {
		t.addGroup(g)
		g.Attach(w)
	}
	t.RequestUpdateLayout()
	t.RequestUpdateGeometry()
}

// detachWidget fires group detach callbacks and purges the widget from
// the per-frame queues.
func (t *Tree) detachWidget(w *Widget) {
	for _, g := range w.groups {
		g.Detach(w)
	}
	t.animations = removeWidget(t.animations, w)
	t.rebuilds = removeWidget(t.rebuilds, w)
	t.restyles = removeWidget(t.restyles, w)
	if t.inputQ.Focused() == input.Target(w) {
		t.inputQ.Focus(nil, false)
	}
	t.RequestUpdateGeometry()
}

func removeWidget(list []*Widget, w *Widget) []*Widget {
	for i, x := range list {
		if x == w {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}

func (t *Tree) queueAnimation(w *Widget) {
	for _, x := range t.animations {
		if x == w {
			return
		}
	}
	t.animations = append(t.animations, w)
	t.wake()
}

func (t *Tree) queueRebuild(w *Widget) {
	for _, x := range t.rebuilds {
		if x == w {
			return
		}
	}
	t.rebuilds = append(t.rebuilds, w)
	t.wake()
}

func (t *Tree) queueRestyle(w *Widget) {
	for _, x := range t.restyles {
		if x == w {
			return
		}
	}
	t.restyles = append(t.restyles, w)
	t.wake()
}

func (t *Tree) noteRectChanged(w *Widget) {
	t.rectChanged = append(t.rectChanged, w)
}

// PushLayer defers a drawable onto the layer queue; it paints after the
// current layer finishes, compositing above it.
func (t *Tree) PushLayer(drawable func(render.Canvas)) {
	t.layers = append(t.layers, drawable)
}

// collectGeometry rebuilds the hit-test cache in paint order: parents
// before children, layered subtrees after everything else so they sit on
// top, clips accumulated down the ancestor chain.
func (t *Tree) collectGeometry() []input.HitEntry {
	if t.root == nil {
		return nil
	}
	var entries []input.HitEntry
	var layered []*Widget
	var walk func(w *Widget, clip graphics.Rect)
	walk = func(w *Widget, clip graphics.Rect) {
		if visible, ok := w.props[style.PropVisible].(bool); ok && !visible {
			return
		}
		entries = append(entries, input.HitEntry{
			Target: w,
			Rect:   w.rect,
			Clip:   clip,
			Z:      len(entries),
		})
		childClip := clip.Intersect(w.rect)
		for _, c := range w.children {
			if c.Layered {
				layered = append(layered, c)
				continue
			}
			walk(c, childClip)
		}
	}
	walk(t.root, t.viewport)
	for len(layered) > 0 {
		batch := layered
		layered = nil
		for _, w := range batch {
			walk(w, t.viewport)
		}
	}
	return entries
}
