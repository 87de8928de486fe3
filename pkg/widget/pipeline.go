package widget

import (
	"time"

	"github.com/brisk-gui/brisk/pkg/errors"
	"github.com/brisk-gui/brisk/pkg/render"
)

// refreshInterval is the minimum spacing between onRefresh walks.
const refreshInterval = 100 * time.Millisecond

// Frame runs one full pipeline pass: group hooks, the refresh gate,
// animation and rebuild drains, layout, geometry and input, restyle, then
// layered painting. Every step is idempotent when nothing changed; a
// panicking widget callback is contained and the frame continues.
func (t *Tree) Frame(canvas render.Canvas) {
	now := t.Now()
	t.frameTime = now

	for _, g := range t.groups {
		g.BeforeFrame(now)
	}

	t.refreshPass(now)
	t.drainAnimations()
	t.drainRebuilds()

	for _, g := range t.groups {
		g.BeforeLayout(t.layoutDirty)
	}
	t.layoutPass()

	t.geometryPass()
	t.inputQ.ProcessEvents()

	t.restylePass(now)

	for _, g := range t.groups {
		g.BeforePaint()
	}
	t.paintPass(canvas)

	for _, g := range t.groups {
		g.AfterFrame()
	}
}

// refreshPass opens the refresh gate at most once per interval, walking
// the tree through onRefresh.
func (t *Tree) refreshPass(now time.Time) {
	if now.Sub(t.lastRefresh) < refreshInterval {
		return
	}
	t.lastRefresh = now
	for _, g := range t.groups {
		g.BeforeRefresh()
	}
	if t.root == nil {
		return
	}
	t.root.Walk(func(w *Widget) {
		call("widget.onRefresh", w.OnRefresh)
	})
}

// drainAnimations swaps the animation queue and runs each still-attached
// widget's hook. Hooks may requeue for the next frame.
func (t *Tree) drainAnimations() {
	queued := t.animations
	t.animations = nil
	for _, w := range queued {
		if w.tree != t {
			continue
		}
		call("widget.animationFrame", w.OnAnimationFrame)
	}
}

// drainRebuilds swaps the rebuild queue and runs each still-attached
// widget's hook.
func (t *Tree) drainRebuilds() {
	queued := t.rebuilds
	t.rebuilds = nil
	for _, w := range queued {
		if w.tree != t {
			continue
		}
		call("widget.rebuild", w.OnRebuild)
	}
}

// layoutPass runs the engine when layout is dirty. Failure keeps the
// previous rects and sets the failed flag; success bumps the counter and
// fires onLayoutUpdated on widgets whose rect changed.
func (t *Tree) layoutPass() {
	if !t.layoutDirty || t.root == nil {
		return
	}
	t.layoutDirty = false
	t.rectChanged = t.rectChanged[:0]
	_, err := t.engine.ComputeLayout(t.root, t.viewport.Size())
	if err != nil {
		t.layoutFailed = true
		errors.Report(errors.New("widget.layoutPass", errors.KindRecoverable, err))
		return
	}
	t.layoutFailed = false
	t.layoutCounter++
	t.geometryDirty = true
	changed := t.rectChanged
	t.rectChanged = nil
	for _, w := range changed {
		if w.tree != t {
			continue
		}
		call("widget.onLayoutUpdated", w.OnLayoutUpdated)
	}
}

// geometryPass rebuilds the hit-test cache if requested.
func (t *Tree) geometryPass() {
	if !t.geometryDirty {
		return
	}
	t.geometryDirty = false
	t.inputQ.ResetGeometry()
	t.inputQ.SetGeometry(t.collectGeometry())
}

// restylePass resolves style for every widget queued since last frame.
func (t *Tree) restylePass(now time.Time) {
	queued := t.restyles
	t.restyles = nil
	for _, w := range queued {
		if w.tree != t {
			continue
		}
		w.resolveStyle(now)
	}
}

// paintPass drains the layer queue: the root's drawable seeds layer zero,
// drawables pushed while painting composite on later layers.
func (t *Tree) paintPass(canvas render.Canvas) {
	if canvas == nil || t.root == nil {
		return
	}
	t.layers = t.layers[:0]
	root := t.root
	t.PushLayer(func(c render.Canvas) { root.draw(c) })
	for len(t.layers) > 0 {
		batch := t.layers
		t.layers = nil
		for _, drawable := range batch {
			paintLayer(canvas, drawable)
		}
	}
}

func paintLayer(canvas render.Canvas, drawable func(render.Canvas)) {
	defer errors.Recover("widget.paintLayer")
	drawable(canvas)
}
