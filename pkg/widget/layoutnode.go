package widget

import (
	"github.com/brisk-gui/brisk/pkg/graphics"
	"github.com/brisk-gui/brisk/pkg/layout"
)

// LayoutStyle returns the widget's layout inputs for the engine.
func (w *Widget) LayoutStyle() layout.Style { return w.layoutStyle }

// ChildCount returns the number of layout children.
func (w *Widget) ChildCount() int { return len(w.children) }

// ChildAt returns the i-th layout child.
func (w *Widget) ChildAt(i int) layout.Node { return w.children[i] }

// Measure returns the content size of a leaf widget. Widgets without an
// OnMeasure hook have no intrinsic content.
func (w *Widget) Measure(available graphics.Size) graphics.Size {
	if w.OnMeasure == nil {
		return graphics.Size{}
	}
	return w.OnMeasure(available)
}

// SetRect is the layout engine callback assigning the widget's final rect.
// The client rect insets border and padding; rect changes queue the
// OnLayoutUpdated hook and dirty the hit-test cache.
func (w *Widget) SetRect(rect graphics.Rect) {
	changed := !rect.Equal(w.rect)
	w.rect = rect
	b := w.layoutStyle.Border
	p := w.layoutStyle.Padding
	w.clientRect = graphics.Rect{
		Left:   rect.Left + b.Left + p.Left,
		Top:    rect.Top + b.Top + p.Top,
		Right:  rect.Right - b.Right - p.Right,
		Bottom: rect.Bottom - b.Bottom - p.Bottom,
	}
	if w.hintRect.IsEmpty() {
		w.hintRect = rect
	}
	if changed && w.tree != nil {
		w.tree.noteRectChanged(w)
	}
}
