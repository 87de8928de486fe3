package widget

import "time"

// Group observes tree membership and frame phases for a family of widgets.
// Widgets subscribe with AddGroup; the tree calls the phase hooks once per
// frame in registration order.
type Group interface {
	// Attach is called when a subscribed widget joins a tree.
	Attach(w *Widget)
	// Detach is called when a subscribed widget leaves its tree.
	Detach(w *Widget)
	// BeforeFrame runs first each frame with the frame timestamp.
	BeforeFrame(now time.Time)
	// BeforeRefresh runs when the refresh gate opens, before onRefresh
	// walks the tree.
	BeforeRefresh()
	// BeforeLayout runs before the layout pass; dirty reports whether a
	// pass will run.
	BeforeLayout(dirty bool)
	// BeforePaint runs after input dispatch, before painting.
	BeforePaint()
	// AfterFrame runs last each frame.
	AfterFrame()
}

// GroupBase is a no-op Group for embedding; override the hooks you need.
type GroupBase struct{}

func (GroupBase) Attach(*Widget)         {}
func (GroupBase) Detach(*Widget)         {}
func (GroupBase) BeforeFrame(time.Time)  {}
func (GroupBase) BeforeRefresh()         {}
func (GroupBase) BeforeLayout(bool)      {}
func (GroupBase) BeforePaint()           {}
func (GroupBase) AfterFrame()            {}
