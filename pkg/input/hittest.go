package input

import "github.com/brisk-gui/brisk/pkg/graphics"

// HitEntry is one widget's cached geometry: its rect in viewport
// coordinates, the clip in effect when it painted, and its paint-order
// z index.
type HitEntry struct {
	Target Target
	Rect   graphics.Rect
	Clip   graphics.Rect
	Z      int
}

// SetGeometry replaces the hit-test cache. Entries must be in paint order:
// later entries paint above earlier ones.
func (q *Queue) SetGeometry(entries []HitEntry) {
	q.geometry = entries
}

// ResetGeometry drops the hit-test cache, typically before a geometry
// update pass rebuilds it.
func (q *Queue) ResetGeometry() {
	q.geometry = nil
}

// WidgetAt returns the topmost target whose rect contains the point,
// respecting mouse-interaction modes and clip masks. Two consecutive calls
// with no intervening geometry update return the same target.
func (q *Queue) WidgetAt(p graphics.Point) Target {
	for i := len(q.geometry) - 1; i >= 0; i-- {
		entry := q.geometry[i]
		switch entry.Target.Interaction() {
		case MouseDisable:
			continue
		case MousePass:
			// Transparent to hits; the scan keeps descending in paint
			// order to whatever lies beneath.
			continue
		}
		if !entry.Clip.IsEmpty() && !entry.Clip.Contains(p) {
			continue
		}
		if entry.Rect.Contains(p) {
			return entry.Target
		}
	}
	return nil
}
