package input

// AdvanceFocus moves keyboard focus to the next (or previous) tab stop
// within the current tab group. Traversal never escapes a widget with
// focus capture set, which keeps focus inside modal popups.
func (q *Queue) AdvanceFocus(reverse bool) {
	root := q.traversalRoot()
	if root == nil {
		return
	}
	stops := collectTabStops(root, nil)
	if len(stops) == 0 {
		return
	}
	idx := -1
	for i, t := range stops {
		if t == q.focused {
			idx = i
			break
		}
	}
	var next Target
	switch {
	case idx < 0:
		if reverse {
			next = stops[len(stops)-1]
		} else {
			next = stops[0]
		}
	case reverse:
		next = stops[(idx-1+len(stops))%len(stops)]
	default:
		next = stops[(idx+1)%len(stops)]
	}
	q.Focus(next, true)
}

// traversalRoot finds the subtree tab order cycles within: the nearest
// ancestor with focus capture or an explicit tab group, else the tree root.
func (q *Queue) traversalRoot() Target {
	t := q.focused
	if t == nil {
		if len(q.geometry) == 0 {
			return nil
		}
		t = q.geometry[0].Target
	}
	var root Target
	for ; t != nil; t = t.ParentTarget() {
		root = t
		if t.FocusCapture() || t.TabGroup() {
			return t
		}
	}
	return root
}

// collectTabStops gathers tab stops in document order, skipping subtrees
// with their own focus capture (popups manage their own cycle).
func collectTabStops(t Target, out []Target) []Target {
	if t.TabStop() {
		out = append(out, t)
	}
	for _, c := range t.ChildTargets() {
		if c.FocusCapture() {
			continue
		}
		out = collectTabStops(c, out)
	}
	return out
}
