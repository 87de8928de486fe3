// Package style implements declarative property assignment for widget
// trees: typed properties with behavior flags, state-filtered rules,
// CSS-like selectors, stylesheets with inheritance, and the easing curves
// backing property transitions.
package style

import (
	"time"

	"github.com/brisk-gui/brisk/pkg/graphics"
)

// PropertyIndex identifies a property. Indices are dense; widgets store
// property slots in a flat table indexed by them.
type PropertyIndex int

const (
	PropWidth PropertyIndex = iota
	PropHeight
	PropMinWidth
	PropMinHeight
	PropMaxWidth
	PropMaxHeight
	PropPaddingLeft
	PropPaddingTop
	PropPaddingRight
	PropPaddingBottom
	PropPadding // compound, expands to the four edges
	PropMarginLeft
	PropMarginTop
	PropMarginRight
	PropMarginBottom
	PropMargin // compound, expands to the four edges
	PropGap
	PropBorderWidth
	PropFlexGrow
	PropFlexShrink
	PropFlexBasis
	PropFlexDirection
	PropJustifyContent
	PropAlignItems
	PropAlignSelf
	PropFontSize
	PropFontFamily
	PropColor
	PropBackgroundColor
	PropBorderColor
	PropShadowSize
	PropTabSize
	PropOpacity
	PropCornerRadius
	PropVisible

	propertyCount
)

// PropertyCount is the size of a widget's property table.
const PropertyCount = int(propertyCount)

// PropertyFlags describe how a property participates in styling, layout and
// painting.
type PropertyFlags uint16

const (
	// AffectLayout marks properties whose change dirties layout.
	AffectLayout PropertyFlags = 1 << iota
	// AffectPaint marks properties whose change requires a repaint.
	AffectPaint
	// AffectFont marks properties feeding font selection.
	AffectFont
	// Inheritable properties copy the nearest ancestor's resolved value
	// when set to the Inherit sentinel.
	Inheritable
	// Resolvable properties carry unit-qualified dimensions resolved
	// against font size, parent dimension and content scale.
	Resolvable
	// TransitionFlag properties animate between resolved values.
	TransitionFlag
	// Compound properties expand into sub-properties when applied.
	Compound
)

// inherit is the sentinel type for inherited values.
type inherit struct{}

// Inherit is the sentinel value: an Inheritable property holding it copies
// the nearest ancestor's resolved value during resolution.
var Inherit any = inherit{}

// IsInherit reports whether a property value is the inherit sentinel.
func IsInherit(v any) bool {
	_, ok := v.(inherit)
	return ok
}

// PropertyMeta is the compile-time description of one property.
type PropertyMeta struct {
	Index    PropertyIndex
	Name     string
	Flags    PropertyFlags
	Default  any
	Duration time.Duration // transition duration, for TransitionFlag properties
	Easing   EasingFunc    // transition easing, nil means EaseInOut
	Expands  []PropertyIndex
}

var propertyTable = [propertyCount]PropertyMeta{
	PropWidth:         {Name: "width", Flags: AffectLayout | Resolvable, Default: Auto},
	PropHeight:        {Name: "height", Flags: AffectLayout | Resolvable, Default: Auto},
	PropMinWidth:      {Name: "min-width", Flags: AffectLayout | Resolvable, Default: Auto},
	PropMinHeight:     {Name: "min-height", Flags: AffectLayout | Resolvable, Default: Auto},
	PropMaxWidth:      {Name: "max-width", Flags: AffectLayout | Resolvable, Default: Auto},
	PropMaxHeight:     {Name: "max-height", Flags: AffectLayout | Resolvable, Default: Auto},
	PropPaddingLeft:   {Name: "padding-left", Flags: AffectLayout | Resolvable, Default: Px(0)},
	PropPaddingTop:    {Name: "padding-top", Flags: AffectLayout | Resolvable, Default: Px(0)},
	PropPaddingRight:  {Name: "padding-right", Flags: AffectLayout | Resolvable, Default: Px(0)},
	PropPaddingBottom: {Name: "padding-bottom", Flags: AffectLayout | Resolvable, Default: Px(0)},
	PropPadding: {Name: "padding", Flags: AffectLayout | Resolvable | Compound, Default: Px(0),
		Expands: []PropertyIndex{PropPaddingLeft, PropPaddingTop, PropPaddingRight, PropPaddingBottom}},
	PropMarginLeft:   {Name: "margin-left", Flags: AffectLayout | Resolvable, Default: Px(0)},
	PropMarginTop:    {Name: "margin-top", Flags: AffectLayout | Resolvable, Default: Px(0)},
	PropMarginRight:  {Name: "margin-right", Flags: AffectLayout | Resolvable, Default: Px(0)},
	PropMarginBottom: {Name: "margin-bottom", Flags: AffectLayout | Resolvable, Default: Px(0)},
	PropMargin: {Name: "margin", Flags: AffectLayout | Resolvable | Compound, Default: Px(0),
		Expands: []PropertyIndex{PropMarginLeft, PropMarginTop, PropMarginRight, PropMarginBottom}},
	PropGap:            {Name: "gap", Flags: AffectLayout | Resolvable, Default: Px(0)},
	PropBorderWidth:    {Name: "border-width", Flags: AffectLayout | AffectPaint | Resolvable, Default: Px(0)},
	PropFlexGrow:       {Name: "flex-grow", Flags: AffectLayout, Default: 0.0},
	PropFlexShrink:     {Name: "flex-shrink", Flags: AffectLayout, Default: 1.0},
	PropFlexBasis:      {Name: "flex-basis", Flags: AffectLayout | Resolvable, Default: Auto},
	PropFlexDirection:  {Name: "flex-direction", Flags: AffectLayout, Default: "column"},
	PropJustifyContent: {Name: "justify-content", Flags: AffectLayout, Default: "flex-start"},
	PropAlignItems:     {Name: "align-items", Flags: AffectLayout, Default: "stretch"},
	PropAlignSelf:      {Name: "align-self", Flags: AffectLayout, Default: "auto"},
	PropFontSize: {Name: "font-size", Flags: AffectLayout | AffectFont | Inheritable | Resolvable,
		Default: Px(14)},
	PropFontFamily: {Name: "font-family", Flags: AffectFont | Inheritable, Default: "default"},
	PropColor: {Name: "color", Flags: AffectPaint | Inheritable | TransitionFlag,
		Default: graphics.RGB(0x20, 0x20, 0x20), Duration: 150 * time.Millisecond},
	PropBackgroundColor: {Name: "background-color", Flags: AffectPaint | TransitionFlag,
		Default: graphics.RGBA8(0, 0, 0, 0), Duration: 150 * time.Millisecond},
	PropBorderColor: {Name: "border-color", Flags: AffectPaint | TransitionFlag,
		Default: graphics.RGBA8(0, 0, 0, 0), Duration: 150 * time.Millisecond},
	PropShadowSize: {Name: "shadow-size", Flags: AffectPaint | TransitionFlag,
		Default: 0.0, Duration: 200 * time.Millisecond},
	PropTabSize: {Name: "tab-size", Flags: AffectLayout, Default: 4.0},
	PropOpacity: {Name: "opacity", Flags: AffectPaint | TransitionFlag,
		Default: 1.0, Duration: 150 * time.Millisecond},
	PropCornerRadius: {Name: "corner-radius", Flags: AffectPaint | TransitionFlag,
		Default: 0.0, Duration: 150 * time.Millisecond},
	PropVisible: {Name: "visible", Flags: AffectLayout | AffectPaint, Default: true},
}

var propertyByName = func() map[string]PropertyIndex {
	m := make(map[string]PropertyIndex, propertyCount)
	for i := range propertyTable {
		propertyTable[i].Index = PropertyIndex(i)
		m[propertyTable[i].Name] = PropertyIndex(i)
	}
	return m
}()

// Meta returns the description of a property.
func Meta(index PropertyIndex) PropertyMeta {
	return propertyTable[index]
}

// LookupProperty resolves a property by its stylesheet name.
func LookupProperty(name string) (PropertyIndex, bool) {
	idx, ok := propertyByName[name]
	return idx, ok
}
