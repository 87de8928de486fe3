package layout

import (
	"testing"

	"github.com/brisk-gui/brisk/pkg/graphics"
)

// box is a minimal Node for engine tests.
type box struct {
	style    Style
	children []*box
	rect     graphics.Rect
	content  graphics.Size
}

func newBox(style Style, children ...*box) *box {
	return &box{style: style, children: children}
}

func (b *box) LayoutStyle() Style { return b.style }
func (b *box) ChildCount() int    { return len(b.children) }
func (b *box) ChildAt(i int) Node { return b.children[i] }

func (b *box) Measure(graphics.Size) graphics.Size { return b.content }
func (b *box) SetRect(rect graphics.Rect)          { b.rect = rect }

func sized(w, h float64) Style {
	s := DefaultStyle()
	s.Width = Point(w)
	s.Height = Point(h)
	return s
}

func TestComputeLayoutNilRoot(t *testing.T) {
	e := NewFlexEngine()
	if _, err := e.ComputeLayout(nil, graphics.Size{Width: 100, Height: 100}); err == nil {
		t.Error("expected an error for a nil root")
	}
}

func TestRowPlacement(t *testing.T) {
	a := newBox(sized(30, 20))
	b := newBox(sized(50, 20))
	rootStyle := DefaultStyle()
	rootStyle.FlexDirection = FlexRow
	root := newBox(rootStyle, a, b)

	e := NewFlexEngine()
	if _, err := e.ComputeLayout(root, graphics.Size{Width: 200, Height: 100}); err != nil {
		t.Fatalf("ComputeLayout: %v", err)
	}

	if got := root.rect; !got.Equal(graphics.RectFromLTWH(0, 0, 200, 100)) {
		t.Errorf("root rect = %+v", got)
	}
	if got := a.rect; !got.Equal(graphics.RectFromLTWH(0, 0, 30, 20)) {
		t.Errorf("a rect = %+v, want 0,0 30x20", got)
	}
	if got := b.rect; !got.Equal(graphics.RectFromLTWH(30, 0, 50, 20)) {
		t.Errorf("b rect = %+v, want 30,0 50x20", got)
	}
}

func TestColumnGap(t *testing.T) {
	a := newBox(sized(40, 10))
	b := newBox(sized(40, 10))
	rootStyle := DefaultStyle()
	rootStyle.Gap = 5
	root := newBox(rootStyle, a, b)

	e := NewFlexEngine()
	e.ComputeLayout(root, graphics.Size{Width: 100, Height: 100})

	if a.rect.Top != 0 || b.rect.Top != 15 {
		t.Errorf("tops = %v, %v, want 0 and 15", a.rect.Top, b.rect.Top)
	}
}

func TestGrowDistribution(t *testing.T) {
	grow1 := sized(0, 10)
	grow1.FlexBasis = Point(0)
	grow1.FlexGrow = 1
	grow2 := grow1
	grow2.FlexGrow = 3
	a := newBox(grow1)
	b := newBox(grow2)
	rootStyle := DefaultStyle()
	rootStyle.FlexDirection = FlexRow
	root := newBox(rootStyle, a, b)

	e := NewFlexEngine()
	e.ComputeLayout(root, graphics.Size{Width: 400, Height: 50})

	if got := a.rect.Width(); got != 100 {
		t.Errorf("a width = %v, want 100 (1 of 4 shares)", got)
	}
	if got := b.rect.Width(); got != 300 {
		t.Errorf("b width = %v, want 300 (3 of 4 shares)", got)
	}
}

func TestGrowRespectsMax(t *testing.T) {
	capped := sized(0, 10)
	capped.FlexBasis = Point(0)
	capped.FlexGrow = 1
	capped.MaxWidth = Point(50)
	free := capped
	free.MaxWidth = Auto
	a := newBox(capped)
	b := newBox(free)
	rootStyle := DefaultStyle()
	rootStyle.FlexDirection = FlexRow
	root := newBox(rootStyle, a, b)

	e := NewFlexEngine()
	e.ComputeLayout(root, graphics.Size{Width: 400, Height: 50})

	if got := a.rect.Width(); got != 50 {
		t.Errorf("a width = %v, want 50 (max clamped)", got)
	}
	if got := b.rect.Width(); got != 350 {
		t.Errorf("b width = %v, want 350 (absorbs a's surplus)", got)
	}
}

func TestShrink(t *testing.T) {
	a := newBox(sized(300, 10))
	b := newBox(sized(300, 10))
	rootStyle := DefaultStyle()
	rootStyle.FlexDirection = FlexRow
	root := newBox(rootStyle, a, b)

	e := NewFlexEngine()
	e.ComputeLayout(root, graphics.Size{Width: 400, Height: 50})

	if got := a.rect.Width(); got != 200 {
		t.Errorf("a width = %v, want 200 (even shrink)", got)
	}
	if got := b.rect.Width(); got != 200 {
		t.Errorf("b width = %v, want 200", got)
	}
}

func TestStretchCross(t *testing.T) {
	child := DefaultStyle()
	child.Height = Point(10)
	a := newBox(child)
	root := newBox(DefaultStyle(), a)

	e := NewFlexEngine()
	e.ComputeLayout(root, graphics.Size{Width: 120, Height: 60})

	if got := a.rect.Width(); got != 120 {
		t.Errorf("stretched width = %v, want 120", got)
	}
}

func TestJustifyCenter(t *testing.T) {
	a := newBox(sized(40, 10))
	rootStyle := DefaultStyle()
	rootStyle.FlexDirection = FlexRow
	rootStyle.Justify = JustifyCenter
	root := newBox(rootStyle, a)

	e := NewFlexEngine()
	e.ComputeLayout(root, graphics.Size{Width: 100, Height: 50})

	if got := a.rect.Left; got != 30 {
		t.Errorf("left = %v, want 30", got)
	}
}

func TestRowReverse(t *testing.T) {
	a := newBox(sized(30, 10))
	b := newBox(sized(30, 10))
	rootStyle := DefaultStyle()
	rootStyle.FlexDirection = FlexRowReverse
	root := newBox(rootStyle, a, b)

	e := NewFlexEngine()
	e.ComputeLayout(root, graphics.Size{Width: 100, Height: 50})

	if b.rect.Left >= a.rect.Left {
		t.Errorf("reversed order: b.left = %v, a.left = %v, want b before a", b.rect.Left, a.rect.Left)
	}
}

func TestAbsoluteInset(t *testing.T) {
	abs := DefaultStyle()
	abs.Position = PositionAbsolute
	abs.Inset = Inset{Left: Point(10), Top: Point(20), Right: Point(10), Bottom: Point(20)}
	a := newBox(abs)
	root := newBox(DefaultStyle(), a)

	e := NewFlexEngine()
	e.ComputeLayout(root, graphics.Size{Width: 100, Height: 100})

	if got := a.rect; !got.Equal(graphics.RectFromLTWH(10, 20, 80, 60)) {
		t.Errorf("absolute rect = %+v, want 10,20 80x60", got)
	}
}

func TestDisplayNoneSkipsLayout(t *testing.T) {
	hidden := sized(40, 40)
	hidden.Display = DisplayNone
	a := newBox(hidden)
	b := newBox(sized(40, 40))
	root := newBox(DefaultStyle(), a, b)

	e := NewFlexEngine()
	e.ComputeLayout(root, graphics.Size{Width: 100, Height: 100})

	if !a.rect.Equal(graphics.Rect{}) {
		t.Errorf("hidden rect = %+v, want zero", a.rect)
	}
	if b.rect.Top != 0 {
		t.Errorf("b top = %v, want 0 (hidden child takes no space)", b.rect.Top)
	}
}

func TestMeasureCallback(t *testing.T) {
	leaf := newBox(DefaultStyle())
	leaf.content = graphics.Size{Width: 70, Height: 35}
	leaf.style.AlignSelf = AlignStart
	root := newBox(DefaultStyle(), leaf)

	e := NewFlexEngine()
	e.ComputeLayout(root, graphics.Size{Width: 200, Height: 200})

	if got := leaf.rect.Size(); got != (graphics.Size{Width: 70, Height: 35}) {
		t.Errorf("leaf size = %+v, want measured 70x35", got)
	}
}

func TestPercentDimensions(t *testing.T) {
	half := DefaultStyle()
	half.Width = Pct(50)
	half.Height = Pct(25)
	half.AlignSelf = AlignStart
	a := newBox(half)
	root := newBox(DefaultStyle(), a)

	e := NewFlexEngine()
	e.ComputeLayout(root, graphics.Size{Width: 200, Height: 200})

	if got := a.rect.Size(); got != (graphics.Size{Width: 100, Height: 50}) {
		t.Errorf("size = %+v, want 100x50", got)
	}
}
