// Package layout defines the contract between the widget tree and a flexbox
// layout engine, plus a default engine implementing it.
//
// The widget tree presents its nodes through the [Node] interface with
// per-node [Style]; the engine assigns every node a rect in viewport
// coordinates through SetRect. Leaf nodes with content provide a measure
// callback.
package layout

import "github.com/brisk-gui/brisk/pkg/graphics"

// Unit qualifies a layout dimension. Font-relative units are resolved
// before layout; only auto, points and percent reach the engine.
type Unit uint8

const (
	UnitAuto Unit = iota
	UnitPoint
	UnitPercent
)

// Dimension is a unit-qualified length handed to the engine.
type Dimension struct {
	Value float64
	Unit  Unit
}

// Point returns a fixed-length dimension.
func Point(v float64) Dimension {
	return Dimension{Value: v, Unit: UnitPoint}
}

// Pct returns a parent-relative dimension (100 = whole).
func Pct(v float64) Dimension {
	return Dimension{Value: v, Unit: UnitPercent}
}

// Auto is the unset dimension.
var Auto = Dimension{}

// resolve converts to pixels against the reference length. ok is false for
// auto.
func (d Dimension) resolve(reference float64) (float64, bool) {
	switch d.Unit {
	case UnitPoint:
		return d.Value, true
	case UnitPercent:
		return d.Value / 100 * reference, true
	default:
		return 0, false
	}
}

// Direction is the resolved text direction of the layout.
type Direction uint8

const (
	DirectionLTR Direction = iota
	DirectionRTL
)

// Display controls whether a node participates in layout.
type Display uint8

const (
	DisplayFlex Display = iota
	DisplayNone
)

// Position selects flow or absolute placement.
type Position uint8

const (
	PositionRelative Position = iota
	PositionAbsolute
)

// FlexDirection is the main axis of a container.
type FlexDirection uint8

const (
	FlexColumn FlexDirection = iota
	FlexRow
	FlexColumnReverse
	FlexRowReverse
)

func (d FlexDirection) horizontal() bool {
	return d == FlexRow || d == FlexRowReverse
}

func (d FlexDirection) reversed() bool {
	return d == FlexRowReverse || d == FlexColumnReverse
}

// Justify distributes free space along the main axis.
type Justify uint8

const (
	JustifyStart Justify = iota
	JustifyEnd
	JustifyCenter
	JustifySpaceBetween
	JustifySpaceAround
	JustifySpaceEvenly
)

// Align positions children on the cross axis.
type Align uint8

const (
	AlignAuto Align = iota
	AlignStretch
	AlignStart
	AlignEnd
	AlignCenter
)

// Edges holds resolved per-side lengths in pixels.
type Edges struct {
	Left, Top, Right, Bottom float64
}

// Horizontal returns left + right.
func (e Edges) Horizontal() float64 {
	return e.Left + e.Right
}

// Vertical returns top + bottom.
func (e Edges) Vertical() float64 {
	return e.Top + e.Bottom
}

// Inset positions an absolute node against its containing block. Auto
// edges are unconstrained.
type Inset struct {
	Left, Top, Right, Bottom Dimension
}

// Style is the per-node layout input.
type Style struct {
	Display       Display
	Position      Position
	FlexDirection FlexDirection
	Justify       Justify
	AlignItems    Align
	AlignSelf     Align

	Width, Height       Dimension
	MinWidth, MinHeight Dimension
	MaxWidth, MaxHeight Dimension

	Margin  Edges
	Border  Edges
	Padding Edges
	Gap     float64

	FlexGrow   float64
	FlexShrink float64
	FlexBasis  Dimension

	Inset       Inset
	AspectRatio float64 // width / height; 0 means none
}

// DefaultStyle returns the style applied to nodes with no explicit inputs.
func DefaultStyle() Style {
	return Style{FlexShrink: 1, AlignItems: AlignStretch}
}

// Node is one layout participant. The widget tree adapts widgets to it.
type Node interface {
	LayoutStyle() Style
	ChildCount() int
	ChildAt(i int) Node
	// Measure returns the content size of a leaf node given the available
	// space. Container nodes are measured from their children.
	Measure(available graphics.Size) graphics.Size
	// SetRect is the engine callback assigning the final rect in viewport
	// coordinates.
	SetRect(rect graphics.Rect)
}

// Engine computes a rect per node for a tree of nodes.
type Engine interface {
	ComputeLayout(root Node, viewport graphics.Size) (Direction, error)
}
