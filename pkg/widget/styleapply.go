package widget

import (
	"time"

	"github.com/brisk-gui/brisk/pkg/graphics"
	"github.com/brisk-gui/brisk/pkg/layout"
	"github.com/brisk-gui/brisk/pkg/style"
)

// Get returns the resolved value of a property.
func (w *Widget) Get(index style.PropertyIndex) any {
	return w.props[index]
}

// GetFloat returns a resolved numeric property, 0 for non-numeric slots.
func (w *Widget) GetFloat(index style.PropertyIndex) float64 {
	v, _ := w.props[index].(float64)
	return v
}

// GetColor returns a resolved color property.
func (w *Widget) GetColor(index style.PropertyIndex) graphics.Color {
	c, _ := w.props[index].(graphics.Color)
	return c
}

// FontSize returns the resolved font size in pixels.
func (w *Widget) FontSize() float64 { return w.fontSize }

// Set assigns a property value and queues the appropriate invalidation.
// Compound properties expand into their sub-properties.
func (w *Widget) Set(index style.PropertyIndex, value any) {
	meta := style.Meta(index)
	if meta.Flags&style.Compound != 0 {
		for _, sub := range meta.Expands {
			w.Set(sub, value)
		}
		return
	}
	if w.base[index] == value {
		return
	}
	w.base[index] = value
	if w.styling {
		// Rule application; invalidation happens once after resolution.
		return
	}
	w.requestRestyle()
	if meta.Flags&style.AffectLayout != 0 {
		w.RequestUpdateLayout()
	}
}

// Stylesheet returns the sheet styling this subtree, falling back to the
// nearest ancestor's.
func (w *Widget) Stylesheet() *style.Stylesheet {
	for x := w; x != nil; x = x.parent {
		if x.sheet != nil {
			return x.sheet
		}
	}
	return nil
}

// SetStylesheet attaches a stylesheet to this subtree and queues a restyle
// of every widget below.
func (w *Widget) SetStylesheet(sheet *style.Stylesheet) {
	w.sheet = sheet
	w.Walk(func(x *Widget) { x.requestRestyle() })
}

// stylize matches the effective stylesheet against the widget and captures
// the merged rules as the reapply closure. State changes rerun the closure
// without rematching selectors.
func (w *Widget) stylize() {
	sheet := w.Stylesheet()
	if sheet == nil {
		w.reapply = nil
		return
	}
	var flags style.MatchFlags
	if w.tree != nil && w.tree.root == w {
		flags |= style.MatchIsRoot
	}
	rules := sheet.Match(w, flags)
	w.reapply = func() {
		w.styling = true
		defer func() { w.styling = false }()
		rules.Select(w.states, func(index style.PropertyIndex, value any) {
			w.Set(index, value)
		})
	}
}

// resolveStyle runs the full property resolution for one widget: defaults
// and explicit sets already live in the base table; rules apply on top,
// inherit sentinels copy from ancestors, units resolve to pixels, and
// changed transition properties start animating.
func (w *Widget) resolveStyle(now time.Time) {
	w.stylize()
	if w.reapply != nil {
		w.reapply()
	}

	// Font size resolves first; em units elsewhere depend on it.
	w.fontSize = w.resolveFontSize()

	layoutDirty := false
	for i := range w.props {
		index := style.PropertyIndex(i)
		meta := style.Meta(index)
		if meta.Flags&style.Compound != 0 {
			continue
		}
		value := w.inheritedBase(index)
		if index == style.PropFontSize {
			value = w.fontSize
		} else if meta.Flags&style.Resolvable != 0 {
			value = w.resolveUnits(index, value)
		}
		if meta.Flags&style.TransitionFlag != 0 {
			value = w.transitioned(index, meta, value, now)
		}
		if w.props[i] != value {
			w.props[i] = value
			if meta.Flags&style.AffectLayout != 0 {
				layoutDirty = true
			}
		}
		w.prev[i] = value
	}
	w.rebuildLayoutStyle()
	if layoutDirty {
		w.RequestUpdateLayout()
	}
}

// inheritedBase returns the base value, replacing the inherit sentinel
// with the nearest ancestor's resolved value.
func (w *Widget) inheritedBase(index style.PropertyIndex) any {
	value := w.base[index]
	if value == nil {
		value = style.Meta(index).Default
	}
	if !style.IsInherit(value) {
		return value
	}
	for a := w.parent; a != nil; a = a.parent {
		if v := a.props[index]; v != nil && !style.IsInherit(v) {
			return v
		}
	}
	return style.Meta(index).Default
}

// resolveFontSize resolves the font-size property against the parent's
// resolved font size. Relative units compound down the tree.
func (w *Widget) resolveFontSize() float64 {
	parentFont := style.Meta(style.PropFontSize).Default.(style.Dimension).Value
	if w.parent != nil {
		parentFont = w.parent.fontSize
	}
	value := w.inheritedBase(style.PropFontSize)
	switch v := value.(type) {
	case float64:
		return v
	case style.Dimension:
		return v.Resolve(style.ResolveContext{
			FontSize:   parentFont,
			ParentSize: parentFont,
			Scale:      w.contentScale(),
		})
	default:
		return parentFont
	}
}

// resolveUnits converts dimension-valued properties to pixels. Widget
// sizing dimensions keep auto and percent intact; the layout engine
// resolves those against the parent rect.
func (w *Widget) resolveUnits(index style.PropertyIndex, value any) any {
	dim, ok := value.(style.Dimension)
	if !ok {
		return value
	}
	if sizingProperty(index) {
		return w.toLayoutDim(dim)
	}
	return dim.Resolve(style.ResolveContext{
		FontSize:   w.fontSize,
		ParentSize: w.parentExtent(index),
		Scale:      w.contentScale(),
	})
}

// toLayoutDim maps a style dimension to the layout engine's dimension,
// resolving font and device units and passing auto and percent through.
func (w *Widget) toLayoutDim(dim style.Dimension) layout.Dimension {
	switch dim.Unit {
	case style.UnitAuto:
		return layout.Auto
	case style.UnitPercent:
		return layout.Pct(dim.Value)
	case style.UnitEm:
		return layout.Point(dim.Value * w.fontSize)
	case style.UnitDevice:
		if s := w.contentScale(); s > 0 {
			return layout.Point(dim.Value / s)
		}
		return layout.Point(dim.Value)
	default:
		return layout.Point(dim.Value)
	}
}

// sizingProperty reports whether the layout engine resolves the property's
// percent and auto units itself.
func sizingProperty(index style.PropertyIndex) bool {
	switch index {
	case style.PropWidth, style.PropHeight,
		style.PropMinWidth, style.PropMinHeight,
		style.PropMaxWidth, style.PropMaxHeight,
		style.PropFlexBasis:
		return true
	}
	return false
}

// parentExtent returns the parent dimension percent units resolve against
// for edge properties.
func (w *Widget) parentExtent(index style.PropertyIndex) float64 {
	if w.parent == nil {
		if w.tree != nil {
			return w.tree.viewport.Width()
		}
		return 0
	}
	switch index {
	case style.PropPaddingTop, style.PropPaddingBottom,
		style.PropMarginTop, style.PropMarginBottom:
		return w.parent.rect.Height()
	default:
		return w.parent.rect.Width()
	}
}

func (w *Widget) contentScale() float64 {
	if w.tree != nil {
		return w.tree.scale
	}
	return 1
}

// transitioned starts or samples a transition for a property whose
// resolved value changed. While a transition runs the widget keeps
// requesting animation frames.
func (w *Widget) transitioned(index style.PropertyIndex, meta style.PropertyMeta, value any, now time.Time) any {
	if w.tree == nil || meta.Duration <= 0 {
		return value
	}
	if tr, ok := w.active[index]; ok {
		sampled, done := tr.Value(now)
		if done {
			delete(w.active, index)
			return value
		}
		if tr.To != value {
			// Retarget mid-flight from the current sampled value.
			tr = style.NewTransition(index, sampled, value, now)
			w.active[index] = tr
			sampled, _ = tr.Value(now)
		}
		w.RequestAnimationFrame()
		w.requestRestyle()
		return sampled
	}
	prev := w.prev[index]
	if prev == nil || prev == value {
		return value
	}
	if w.active == nil {
		w.active = make(map[style.PropertyIndex]*style.Transition)
	}
	tr := style.NewTransition(index, prev, value, now)
	w.active[index] = tr
	w.RequestAnimationFrame()
	w.requestRestyle()
	sampled, _ := tr.Value(now)
	return sampled
}

// rebuildLayoutStyle projects the resolved property table onto the layout
// engine's per-node style.
func (w *Widget) rebuildLayoutStyle() {
	ls := layout.DefaultStyle()
	ls.Width = w.layoutDim(style.PropWidth)
	ls.Height = w.layoutDim(style.PropHeight)
	ls.MinWidth = w.layoutDim(style.PropMinWidth)
	ls.MinHeight = w.layoutDim(style.PropMinHeight)
	ls.MaxWidth = w.layoutDim(style.PropMaxWidth)
	ls.MaxHeight = w.layoutDim(style.PropMaxHeight)
	ls.FlexBasis = w.layoutDim(style.PropFlexBasis)
	ls.FlexGrow = w.GetFloat(style.PropFlexGrow)
	ls.FlexShrink = w.GetFloat(style.PropFlexShrink)
	ls.Gap = w.GetFloat(style.PropGap)
	ls.Padding = layout.Edges{
		Left:   w.GetFloat(style.PropPaddingLeft),
		Top:    w.GetFloat(style.PropPaddingTop),
		Right:  w.GetFloat(style.PropPaddingRight),
		Bottom: w.GetFloat(style.PropPaddingBottom),
	}
	ls.Margin = layout.Edges{
		Left:   w.GetFloat(style.PropMarginLeft),
		Top:    w.GetFloat(style.PropMarginTop),
		Right:  w.GetFloat(style.PropMarginRight),
		Bottom: w.GetFloat(style.PropMarginBottom),
	}
	bw := w.GetFloat(style.PropBorderWidth)
	ls.Border = layout.Edges{Left: bw, Top: bw, Right: bw, Bottom: bw}
	ls.FlexDirection = flexDirection(w.props[style.PropFlexDirection])
	ls.Justify = justify(w.props[style.PropJustifyContent])
	ls.AlignItems = align(w.props[style.PropAlignItems], layout.AlignStretch)
	ls.AlignSelf = align(w.props[style.PropAlignSelf], layout.AlignAuto)
	if visible, ok := w.props[style.PropVisible].(bool); ok && !visible {
		ls.Display = layout.DisplayNone
	}
	w.layoutStyle = ls
}

func (w *Widget) layoutDim(index style.PropertyIndex) layout.Dimension {
	switch v := w.props[index].(type) {
	case layout.Dimension:
		return v
	case float64:
		return layout.Point(v)
	default:
		return layout.Auto
	}
}

func flexDirection(v any) layout.FlexDirection {
	s, _ := v.(string)
	switch s {
	case "row":
		return layout.FlexRow
	case "row-reverse":
		return layout.FlexRowReverse
	case "column-reverse":
		return layout.FlexColumnReverse
	default:
		return layout.FlexColumn
	}
}

func justify(v any) layout.Justify {
	s, _ := v.(string)
	switch s {
	case "flex-end":
		return layout.JustifyEnd
	case "center":
		return layout.JustifyCenter
	case "space-between":
		return layout.JustifySpaceBetween
	case "space-around":
		return layout.JustifySpaceAround
	case "space-evenly":
		return layout.JustifySpaceEvenly
	default:
		return layout.JustifyStart
	}
}

func align(v any, fallback layout.Align) layout.Align {
	s, _ := v.(string)
	switch s {
	case "stretch":
		return layout.AlignStretch
	case "flex-start":
		return layout.AlignStart
	case "flex-end":
		return layout.AlignEnd
	case "center":
		return layout.AlignCenter
	default:
		return fallback
	}
}
