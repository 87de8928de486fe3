package widget

import (
	"github.com/brisk-gui/brisk/pkg/render"
	"github.com/brisk-gui/brisk/pkg/style"
)

// Paint draws the widget's own decoration and runs the OnPaint hook. It
// does not paint children; draw drives the full subtree.
func (w *Widget) Paint(c render.Canvas) {
	w.paintDecoration(c)
	call("widget.Paint", func() {
		if w.OnPaint != nil {
			w.OnPaint(c)
		}
	})
}

// PostPaint runs the OnPostPaint hook after the children painted.
func (w *Widget) PostPaint(c render.Canvas) {
	call("widget.PostPaint", func() {
		if w.OnPostPaint != nil {
			w.OnPostPaint(c)
		}
	})
}

// paintDecoration renders the styled background and border.
func (w *Widget) paintDecoration(c render.Canvas) {
	if visible, ok := w.props[style.PropVisible].(bool); ok && !visible {
		return
	}
	bg := w.GetColor(style.PropBackgroundColor)
	if bg.Alpha() > 0 {
		c.DrawRectangle(w.rect, render.Fill(bg))
	}
	bw := w.GetFloat(style.PropBorderWidth)
	border := w.GetColor(style.PropBorderColor)
	if bw > 0 && border.Alpha() > 0 {
		half := bw / 2
		c.DrawRectangle(w.rect.Inset(half), render.Stroke(border, bw))
	}
}

// draw paints the widget and its subtree in document order. Layered
// children defer to the tree's layer queue so they composite above
// everything painted this layer.
func (w *Widget) draw(c render.Canvas) {
	if visible, ok := w.props[style.PropVisible].(bool); ok && !visible {
		return
	}
	w.Paint(c)
	for _, child := range w.children {
		if child.Layered && w.tree != nil {
			deferred := child
			w.tree.PushLayer(func(lc render.Canvas) { deferred.draw(lc) })
			continue
		}
		child.draw(c)
	}
	w.PostPaint(c)
}
