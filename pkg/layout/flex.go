package layout

import (
	"errors"
	"math"

	"github.com/brisk-gui/brisk/pkg/graphics"
)

// FlexEngine is the default flexbox implementation of [Engine]. It performs
// a single recursive pass: content measurement bottom-up, then main-axis
// distribution (grow/shrink against the flex basis), cross-axis alignment,
// justification with gaps, and absolute positioning against the padding
// box.
type FlexEngine struct{}

// NewFlexEngine returns the default engine.
func NewFlexEngine() *FlexEngine {
	return &FlexEngine{}
}

var errNilRoot = errors.New("layout: nil root node")

// ComputeLayout assigns every node a rect in viewport coordinates.
func (e *FlexEngine) ComputeLayout(root Node, viewport graphics.Size) (Direction, error) {
	if root == nil {
		return DirectionLTR, errNilRoot
	}
	style := root.LayoutStyle()
	width := viewport.Width
	if w, ok := style.Width.resolve(viewport.Width); ok {
		width = w
	}
	height := viewport.Height
	if h, ok := style.Height.resolve(viewport.Height); ok {
		height = h
	}
	rect := graphics.RectFromLTWH(style.Margin.Left, style.Margin.Top, width, height)
	root.SetRect(rect)
	e.layoutChildren(root, style, rect)
	return DirectionLTR, nil
}

// contentSize measures a node's intrinsic size within the available space.
// Leaves use the measure callback; containers stack their flow children on
// the main axis.
func (e *FlexEngine) contentSize(n Node, style Style, available graphics.Size) graphics.Size {
	inner := graphics.Size{
		Width:  math.Max(0, available.Width-style.Padding.Horizontal()-style.Border.Horizontal()),
		Height: math.Max(0, available.Height-style.Padding.Vertical()-style.Border.Vertical()),
	}
	var content graphics.Size
	if n.ChildCount() == 0 {
		content = n.Measure(inner)
	} else {
		horizontal := style.FlexDirection.horizontal()
		main, cross := 0.0, 0.0
		flow := 0
		for i := 0; i < n.ChildCount(); i++ {
			child := n.ChildAt(i)
			cs := child.LayoutStyle()
			if cs.Display == DisplayNone || cs.Position == PositionAbsolute {
				continue
			}
			size := e.outerSize(child, cs, inner)
			if horizontal {
				main += size.Width
				cross = math.Max(cross, size.Height)
			} else {
				main += size.Height
				cross = math.Max(cross, size.Width)
			}
			flow++
		}
		if flow > 1 {
			main += style.Gap * float64(flow-1)
		}
		if horizontal {
			content = graphics.Size{Width: main, Height: cross}
		} else {
			content = graphics.Size{Width: cross, Height: main}
		}
	}
	return graphics.Size{
		Width:  content.Width + style.Padding.Horizontal() + style.Border.Horizontal(),
		Height: content.Height + style.Padding.Vertical() + style.Border.Vertical(),
	}
}

// outerSize returns the child's margin-box size for measurement purposes.
func (e *FlexEngine) outerSize(n Node, style Style, available graphics.Size) graphics.Size {
	size := e.hypotheticalSize(n, style, available)
	return graphics.Size{
		Width:  size.Width + style.Margin.Horizontal(),
		Height: size.Height + style.Margin.Vertical(),
	}
}

// hypotheticalSize resolves explicit dimensions, falling back to content
// measurement, then applies aspect ratio and min/max clamping.
func (e *FlexEngine) hypotheticalSize(n Node, style Style, available graphics.Size) graphics.Size {
	width, hasWidth := style.Width.resolve(available.Width)
	height, hasHeight := style.Height.resolve(available.Height)
	if !hasWidth || !hasHeight {
		content := e.contentSize(n, style, available)
		if !hasWidth {
			width = content.Width
		}
		if !hasHeight {
			height = content.Height
		}
	}
	if style.AspectRatio > 0 {
		if hasWidth && !hasHeight {
			height = width / style.AspectRatio
		} else if hasHeight && !hasWidth {
			width = height * style.AspectRatio
		}
	}
	width = clampDim(width, style.MinWidth, style.MaxWidth, available.Width)
	height = clampDim(height, style.MinHeight, style.MaxHeight, available.Height)
	return graphics.Size{Width: width, Height: height}
}

func clampDim(v float64, min, max Dimension, reference float64) float64 {
	if m, ok := max.resolve(reference); ok && v > m {
		v = m
	}
	if m, ok := min.resolve(reference); ok && v < m {
		v = m
	}
	if v < 0 {
		return 0
	}
	return v
}

// flexItem carries per-child working state for one container pass.
type flexItem struct {
	node   Node
	style  Style
	basis  float64 // main-axis basis before flexing
	main   float64 // final main-axis size
	cross  float64 // final cross-axis size
	frozen bool
}

// layoutChildren performs the flex algorithm for one container whose
// content box derives from rect, then recurses.
func (e *FlexEngine) layoutChildren(n Node, style Style, rect graphics.Rect) {
	if n.ChildCount() == 0 {
		return
	}
	content := graphics.Rect{
		Left:   rect.Left + style.Padding.Left + style.Border.Left,
		Top:    rect.Top + style.Padding.Top + style.Border.Top,
		Right:  rect.Right - style.Padding.Right - style.Border.Right,
		Bottom: rect.Bottom - style.Padding.Bottom - style.Border.Bottom,
	}
	inner := graphics.Size{
		Width:  math.Max(0, content.Width()),
		Height: math.Max(0, content.Height()),
	}
	horizontal := style.FlexDirection.horizontal()
	mainAvail := inner.Height
	crossAvail := inner.Width
	if horizontal {
		mainAvail, crossAvail = inner.Width, inner.Height
	}

	var items []flexItem
	for i := 0; i < n.ChildCount(); i++ {
		child := n.ChildAt(i)
		cs := child.LayoutStyle()
		switch {
		case cs.Display == DisplayNone:
			child.SetRect(graphics.Rect{})
		case cs.Position == PositionAbsolute:
			e.layoutAbsolute(child, cs, content)
		default:
			items = append(items, flexItem{node: child, style: cs})
		}
	}
	if len(items) == 0 {
		return
	}

	// Flex basis: explicit basis, else the main-axis hypothetical size.
	for i := range items {
		it := &items[i]
		if basis, ok := it.style.FlexBasis.resolve(mainAvail); ok {
			it.basis = basis
		} else {
			size := e.hypotheticalSize(it.node, it.style, inner)
			if horizontal {
				it.basis = size.Width
			} else {
				it.basis = size.Height
			}
		}
		it.main = it.basis
	}

	gaps := style.Gap * float64(len(items)-1)
	used := gaps
	for i := range items {
		used += items[i].basis + mainMargin(items[i].style, horizontal)
	}
	free := mainAvail - used
	e.distribute(items, free, mainAvail, horizontal)

	// Cross sizes: explicit, stretched, or content.
	for i := range items {
		it := &items[i]
		align := resolveAlign(it.style.AlignSelf, style.AlignItems)
		crossDim, crossMin, crossMax := it.style.Height, it.style.MinHeight, it.style.MaxHeight
		if !horizontal {
			crossDim, crossMin, crossMax = it.style.Width, it.style.MinWidth, it.style.MaxWidth
		}
		if c, ok := crossDim.resolve(crossAvail); ok {
			it.cross = c
		} else if align == AlignStretch {
			it.cross = crossAvail - crossMargin(it.style, horizontal)
		} else {
			size := e.hypotheticalSize(it.node, it.style, inner)
			if horizontal {
				it.cross = size.Height
			} else {
				it.cross = size.Width
			}
		}
		it.cross = clampDim(it.cross, crossMin, crossMax, crossAvail)
	}

	// Main-axis placement.
	used = gaps
	for i := range items {
		used += items[i].main + mainMargin(items[i].style, horizontal)
	}
	offset, spacing := justifyOffsets(style.Justify, mainAvail-used, len(items))
	if style.FlexDirection.reversed() {
		reverseItems(items)
	}

	cursor := offset
	for i := range items {
		it := &items[i]
		align := resolveAlign(it.style.AlignSelf, style.AlignItems)
		crossOffset := alignOffset(align, crossAvail-it.cross-crossMargin(it.style, horizontal))

		var childRect graphics.Rect
		if horizontal {
			cursor += it.style.Margin.Left
			childRect = graphics.RectFromLTWH(
				content.Left+cursor,
				content.Top+crossOffset+it.style.Margin.Top,
				it.main, it.cross)
			cursor += it.main + it.style.Margin.Right
		} else {
			cursor += it.style.Margin.Top
			childRect = graphics.RectFromLTWH(
				content.Left+crossOffset+it.style.Margin.Left,
				content.Top+cursor,
				it.cross, it.main)
			cursor += it.main + it.style.Margin.Bottom
		}
		cursor += style.Gap + spacing

		it.node.SetRect(childRect)
		e.layoutChildren(it.node, it.style, childRect)
	}
}

// distribute grows or shrinks items to absorb free space, honoring min/max
// by freezing violated items and redistributing.
func (e *FlexEngine) distribute(items []flexItem, free, mainAvail float64, horizontal bool) {
	for range items {
		totalGrow, totalScaled := 0.0, 0.0
		for i := range items {
			if items[i].frozen {
				continue
			}
			totalGrow += items[i].style.FlexGrow
			totalScaled += items[i].style.FlexShrink * items[i].basis
		}
		if free > 0 && totalGrow <= 0 {
			return
		}
		if free < 0 && totalScaled <= 0 {
			return
		}
		violated := false
		remaining := free
		for i := range items {
			it := &items[i]
			if it.frozen {
				continue
			}
			target := it.basis
			if free > 0 {
				target += remainingShare(remaining, it.style.FlexGrow, totalGrow)
			} else if free < 0 {
				target += remainingShare(remaining, it.style.FlexShrink*it.basis, totalScaled)
			}
			min, max := it.style.MinHeight, it.style.MaxHeight
			if horizontal {
				min, max = it.style.MinWidth, it.style.MaxWidth
			}
			clamped := clampDim(target, min, max, mainAvail)
			if math.Abs(clamped-target) > 1e-9 {
				it.frozen = true
				violated = true
				free -= clamped - it.basis
			}
			it.main = clamped
		}
		if !violated {
			return
		}
	}
}

func remainingShare(free, weight, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return free * weight / total
}

// layoutAbsolute positions an absolute child against the containing block.
func (e *FlexEngine) layoutAbsolute(n Node, style Style, block graphics.Rect) {
	avail := block.Size()
	left, hasLeft := style.Inset.Left.resolve(avail.Width)
	right, hasRight := style.Inset.Right.resolve(avail.Width)
	top, hasTop := style.Inset.Top.resolve(avail.Height)
	bottom, hasBottom := style.Inset.Bottom.resolve(avail.Height)

	width, hasWidth := style.Width.resolve(avail.Width)
	height, hasHeight := style.Height.resolve(avail.Height)
	if !hasWidth {
		if hasLeft && hasRight {
			width = avail.Width - left - right
		} else {
			width = e.contentSize(n, style, avail).Width
		}
	}
	if !hasHeight {
		if hasTop && hasBottom {
			height = avail.Height - top - bottom
		} else {
			height = e.contentSize(n, style, avail).Height
		}
	}
	width = clampDim(width, style.MinWidth, style.MaxWidth, avail.Width)
	height = clampDim(height, style.MinHeight, style.MaxHeight, avail.Height)

	x := block.Left + style.Margin.Left
	if hasLeft {
		x = block.Left + left
	} else if hasRight {
		x = block.Right - right - width
	}
	y := block.Top + style.Margin.Top
	if hasTop {
		y = block.Top + top
	} else if hasBottom {
		y = block.Bottom - bottom - height
	}

	rect := graphics.RectFromLTWH(x, y, width, height)
	n.SetRect(rect)
	e.layoutChildren(n, style, rect)
}

func mainMargin(style Style, horizontal bool) float64 {
	if horizontal {
		return style.Margin.Horizontal()
	}
	return style.Margin.Vertical()
}

func crossMargin(style Style, horizontal bool) float64 {
	if horizontal {
		return style.Margin.Vertical()
	}
	return style.Margin.Horizontal()
}

func resolveAlign(self, parent Align) Align {
	if self == AlignAuto {
		if parent == AlignAuto {
			return AlignStretch
		}
		return parent
	}
	return self
}

// alignOffset returns the cross-axis offset for an item with the given
// free space. Stretch behaves as start; the item already filled the axis.
func alignOffset(a Align, free float64) float64 {
	if free < 0 {
		return 0
	}
	switch a {
	case AlignEnd:
		return free
	case AlignCenter:
		return free / 2
	default:
		return 0
	}
}

// justifyOffsets returns the leading offset and the extra spacing inserted
// between items for the given justification and free space.
func justifyOffsets(j Justify, free float64, count int) (offset, spacing float64) {
	if free < 0 {
		return 0, 0
	}
	switch j {
	case JustifyEnd:
		return free, 0
	case JustifyCenter:
		return free / 2, 0
	case JustifySpaceBetween:
		if count > 1 {
			return 0, free / float64(count-1)
		}
		return 0, 0
	case JustifySpaceAround:
		s := free / float64(count)
		return s / 2, s
	case JustifySpaceEvenly:
		s := free / float64(count+1)
		return s, s
	default:
		return 0, 0
	}
}

func reverseItems(items []flexItem) {
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
}
