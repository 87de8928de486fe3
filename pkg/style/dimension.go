package style

// Unit qualifies a dimension value.
type Unit uint8

const (
	// UnitAuto lets the layout engine choose.
	UnitAuto Unit = iota
	// UnitPixels is logical pixels.
	UnitPixels
	// UnitEm is a multiple of the resolved font size.
	UnitEm
	// UnitPercent is a fraction of the parent dimension (100 = whole).
	UnitPercent
	// UnitDevice is physical device pixels, divided by the content scale.
	UnitDevice
)

// Dimension is a unit-qualified length.
type Dimension struct {
	Value float64
	Unit  Unit
}

// Px returns a pixel dimension.
func Px(v float64) Dimension {
	return Dimension{Value: v, Unit: UnitPixels}
}

// Em returns a font-relative dimension.
func Em(v float64) Dimension {
	return Dimension{Value: v, Unit: UnitEm}
}

// Percent returns a parent-relative dimension (100 = whole).
func Percent(v float64) Dimension {
	return Dimension{Value: v, Unit: UnitPercent}
}

// Auto is the unset dimension.
var Auto = Dimension{Unit: UnitAuto}

// ResolveContext carries the inputs for unit resolution.
type ResolveContext struct {
	// FontSize is the resolved font size in pixels, for em units.
	FontSize float64
	// ParentSize is the relevant parent dimension in pixels, for percent.
	ParentSize float64
	// Scale is the tree's content scale, for device pixels.
	Scale float64
}

// Resolve converts the dimension to pixels. Auto resolves to 0.
func (d Dimension) Resolve(ctx ResolveContext) float64 {
	switch d.Unit {
	case UnitPixels:
		return d.Value
	case UnitEm:
		return d.Value * ctx.FontSize
	case UnitPercent:
		return d.Value / 100 * ctx.ParentSize
	case UnitDevice:
		if ctx.Scale > 0 {
			return d.Value / ctx.Scale
		}
		return d.Value
	default:
		return 0
	}
}
