// Package render declares the painting surface the core consumes. The
// rasterizer lives outside the core; widgets paint through the [Canvas]
// contract and text arrives pre-shaped as [PrerenderedText].
package render

import "github.com/brisk-gui/brisk/pkg/graphics"

// Paint describes fill or stroke parameters for a draw call.
type Paint struct {
	Color       graphics.Color
	Stroke      bool
	StrokeWidth float64
}

// Fill returns a solid fill paint.
func Fill(c graphics.Color) Paint {
	return Paint{Color: c}
}

// Stroke returns a stroke paint with the given width.
func Stroke(c graphics.Color, width float64) Paint {
	return Paint{Color: c, Stroke: true, StrokeWidth: width}
}

// PathVerb is one path-building operation.
type PathVerb uint8

const (
	VerbMoveTo PathVerb = iota
	VerbLineTo
	VerbQuadTo
	VerbCubicTo
	VerbClose
)

// PathElement is one verb plus its control points.
type PathElement struct {
	Verb   PathVerb
	Points [3]graphics.Point
}

// Path is a sequence of path elements consumed by DrawPath.
type Path struct {
	Elements []PathElement
}

// MoveTo starts a new contour at p.
func (p *Path) MoveTo(pt graphics.Point) *Path {
	p.Elements = append(p.Elements, PathElement{Verb: VerbMoveTo, Points: [3]graphics.Point{pt}})
	return p
}

// LineTo appends a line segment to pt.
func (p *Path) LineTo(pt graphics.Point) *Path {
	p.Elements = append(p.Elements, PathElement{Verb: VerbLineTo, Points: [3]graphics.Point{pt}})
	return p
}

// Close closes the current contour.
func (p *Path) Close() *Path {
	p.Elements = append(p.Elements, PathElement{Verb: VerbClose})
	return p
}

// Texture is an opaque image handle supplied by the host renderer.
type Texture interface {
	Size() graphics.Size
}

// Canvas is the painting surface contract. Save/Restore manage a state
// stack of clip and transform; ClipRect intersects the current clip.
type Canvas interface {
	DrawRectangle(rect graphics.Rect, paint Paint)
	DrawEllipse(rect graphics.Rect, paint Paint)
	DrawLine(from, to graphics.Point, paint Paint)
	DrawText(at graphics.Point, text PrerenderedText)
	DrawPath(path *Path, paint Paint)
	DrawTexture(rect graphics.Rect, texture Texture)
	Save()
	Restore()
	ClipRect(rect graphics.Rect)
}
