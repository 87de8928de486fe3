package widget

import (
	"testing"
	"time"

	"github.com/brisk-gui/brisk/pkg/binding"
	"github.com/brisk-gui/brisk/pkg/graphics"
	"github.com/brisk-gui/brisk/pkg/platform"
	"github.com/brisk-gui/brisk/pkg/render"
	"github.com/brisk-gui/brisk/pkg/style"
)

// nopCanvas satisfies render.Canvas for paint-path tests.
type nopCanvas struct{}

func (nopCanvas) DrawRectangle(graphics.Rect, render.Paint)     {}
func (nopCanvas) DrawEllipse(graphics.Rect, render.Paint)       {}
func (nopCanvas) DrawLine(graphics.Point, graphics.Point, render.Paint) {}
func (nopCanvas) DrawText(graphics.Point, render.PrerenderedText)       {}
func (nopCanvas) DrawPath(*render.Path, render.Paint)           {}
func (nopCanvas) DrawTexture(graphics.Rect, render.Texture)     {}
func (nopCanvas) Save()                                         {}
func (nopCanvas) Restore()                                      {}
func (nopCanvas) ClipRect(graphics.Rect)                        {}

func newTestTree(root *Widget) *Tree {
	return NewTree(root, WithRegistry(binding.NewRegistry()))
}

// settle runs frames until style resolution and layout reach a fixed point.
func settle(t *Tree) {
	for i := 0; i < 4; i++ {
		t.Frame(nil)
	}
}

func TestFontSizeRelativeToParent(t *testing.T) {
	root := New("panel")
	child := New("label")
	root.Append(child)
	root.Set(style.PropFontSize, style.Px(20))
	child.Set(style.PropFontSize, style.Percent(200))

	tree := newTestTree(root)
	defer tree.Close()
	tree.SetViewport(graphics.RectFromLTWH(0, 0, 100, 100), 1)
	settle(tree)

	if got := root.FontSize(); got != 20 {
		t.Errorf("root font size = %v, want 20", got)
	}
	if got := child.FontSize(); got != 40 {
		t.Errorf("child font size = %v, want 40 (200%% of parent)", got)
	}
}

func TestFontSizeEmCompoundsDownTree(t *testing.T) {
	root := New("panel")
	mid := New("panel")
	leaf := New("label")
	root.Append(mid)
	mid.Append(leaf)
	root.Set(style.PropFontSize, style.Px(10))
	mid.Set(style.PropFontSize, style.Em(2))
	leaf.Set(style.PropFontSize, style.Em(1.5))

	tree := newTestTree(root)
	defer tree.Close()
	tree.SetViewport(graphics.RectFromLTWH(0, 0, 100, 100), 1)
	settle(tree)

	if got := mid.FontSize(); got != 20 {
		t.Errorf("mid font size = %v, want 20", got)
	}
	if got := leaf.FontSize(); got != 30 {
		t.Errorf("leaf font size = %v, want 30", got)
	}
}

func TestInheritSentinelCopiesAncestorValue(t *testing.T) {
	root := New("panel")
	child := New("label")
	root.Append(child)
	root.Set(style.PropColor, graphics.RGB(10, 20, 30))
	child.Set(style.PropColor, style.Inherit)

	tree := newTestTree(root)
	defer tree.Close()
	settle(tree)

	want := graphics.RGB(10, 20, 30)
	if got := child.GetColor(style.PropColor); got != want {
		t.Errorf("child color = %v, want inherited %v", got, want)
	}
}

func TestColumnLayout(t *testing.T) {
	root := New("panel")
	a := New("box")
	b := New("box")
	root.Append(a, b)
	a.Set(style.PropHeight, style.Px(30))
	b.Set(style.PropHeight, style.Px(70))

	tree := newTestTree(root)
	defer tree.Close()
	tree.SetViewport(graphics.RectFromLTWH(0, 0, 200, 100), 1)
	settle(tree)

	if got, want := a.Rect(), graphics.RectFromLTWH(0, 0, 200, 30); !got.Equal(want) {
		t.Errorf("first child rect = %v, want %v", got, want)
	}
	if got, want := b.Rect(), graphics.RectFromLTWH(0, 30, 200, 70); !got.Equal(want) {
		t.Errorf("second child rect = %v, want %v", got, want)
	}
}

func TestLayoutCounterIncrementsOncePerPass(t *testing.T) {
	root := New("panel")
	tree := newTestTree(root)
	defer tree.Close()
	tree.SetViewport(graphics.RectFromLTWH(0, 0, 100, 100), 1)
	settle(tree)

	before := tree.LayoutCounter()
	tree.Frame(nil)
	if got := tree.LayoutCounter(); got != before {
		t.Errorf("counter advanced to %d with clean layout, want %d", got, before)
	}

	root.Set(style.PropWidth, style.Px(50))
	settle(tree)
	if got := tree.LayoutCounter(); got <= before {
		t.Errorf("counter = %d after property change, want > %d", got, before)
	}
}

func TestRefreshGate(t *testing.T) {
	root := New("panel")
	refreshes := 0
	root.OnRefresh = func() { refreshes++ }

	tree := newTestTree(root)
	defer tree.Close()
	now := time.Unix(1000, 0)
	tree.Now = func() time.Time { return now }

	tree.Frame(nil)
	if refreshes != 1 {
		t.Fatalf("refreshes after first frame = %d, want 1", refreshes)
	}

	now = now.Add(10 * time.Millisecond)
	tree.Frame(nil)
	if refreshes != 1 {
		t.Errorf("refreshes inside the gate window = %d, want still 1", refreshes)
	}

	now = now.Add(150 * time.Millisecond)
	tree.Frame(nil)
	if refreshes != 2 {
		t.Errorf("refreshes after the gate reopened = %d, want 2", refreshes)
	}
}

func TestAnimationFrameRunsOnce(t *testing.T) {
	root := New("panel")
	frames := 0
	root.OnAnimationFrame = func() { frames++ }

	tree := newTestTree(root)
	defer tree.Close()
	settle(tree)

	root.RequestAnimationFrame()
	root.RequestAnimationFrame() // deduped
	tree.Frame(nil)
	if frames != 1 {
		t.Errorf("animation frames = %d, want 1", frames)
	}
	tree.Frame(nil)
	if frames != 1 {
		t.Errorf("animation frames after idle frame = %d, want still 1", frames)
	}
}

func TestRebuildHookMayRequeue(t *testing.T) {
	root := New("panel")
	rebuilds := 0
	root.OnRebuild = func() {
		rebuilds++
		if rebuilds < 2 {
			root.RequestRebuild()
		}
	}

	tree := newTestTree(root)
	defer tree.Close()
	settle(tree)

	root.RequestRebuild()
	tree.Frame(nil)
	if rebuilds != 1 {
		t.Fatalf("rebuilds after first frame = %d, want 1 (requeue runs next frame)", rebuilds)
	}
	tree.Frame(nil)
	if rebuilds != 2 {
		t.Errorf("rebuilds after second frame = %d, want 2", rebuilds)
	}
}

func TestDetachedWidgetQueuesPurged(t *testing.T) {
	root := New("panel")
	child := New("box")
	root.Append(child)
	ran := false
	child.OnRebuild = func() { ran = true }

	tree := newTestTree(root)
	defer tree.Close()
	settle(tree)

	child.RequestRebuild()
	root.Remove(child)
	tree.Frame(nil)
	if ran {
		t.Error("rebuild hook ran for a widget removed before the frame")
	}
}

func TestStylesheetRulesApply(t *testing.T) {
	sheet := style.NewStylesheet(style.Style{
		Selector: style.Type("box"),
		Rules: style.NewRules(
			style.Rule{Property: style.PropTabSize, Value: 8.0},
		),
	})

	root := New("panel")
	box := New("box")
	root.Append(box)
	root.SetStylesheet(sheet)

	tree := newTestTree(root)
	defer tree.Close()
	settle(tree)

	if got := box.GetFloat(style.PropTabSize); got != 8.0 {
		t.Errorf("tab size = %v, want 8 from the stylesheet", got)
	}
	if got := root.GetFloat(style.PropTabSize); got != 4.0 {
		t.Errorf("root tab size = %v, want the default 4", got)
	}
}

func TestStateRuleReappliesWithoutRematch(t *testing.T) {
	sheet := style.NewStylesheet(style.Style{
		Selector: style.Type("box"),
		Rules: style.NewRules(
			style.Rule{Property: style.PropTabSize, Value: 8.0},
			style.Rule{Property: style.PropTabSize, States: style.StateHover, Value: 12.0},
		),
	})

	root := New("panel")
	box := New("box")
	root.Append(box)
	root.SetStylesheet(sheet)

	tree := newTestTree(root)
	defer tree.Close()
	settle(tree)

	if got := box.GetFloat(style.PropTabSize); got != 8.0 {
		t.Fatalf("tab size = %v, want 8 before hover", got)
	}

	box.SetHovered(true)
	settle(tree)
	if got := box.GetFloat(style.PropTabSize); got != 12.0 {
		t.Errorf("tab size = %v, want 12 while hovered", got)
	}

	box.SetHovered(false)
	settle(tree)
	if got := box.GetFloat(style.PropTabSize); got != 8.0 {
		t.Errorf("tab size = %v, want 8 after hover ends", got)
	}
}

func TestTriggerNotifiesListener(t *testing.T) {
	root := New("panel")
	tree := newTestTree(root)
	defer tree.Close()

	trigger := tree.AllocateTrigger(1)
	if trigger.IsZero() {
		t.Fatal("trigger allocation failed")
	}
	fired := 0
	binding.Listen(tree.Registry(), binding.Getter[int]{
		Addr: trigger,
		Get:  func() int { return fired },
	}, func(int) { fired++ })

	tree.Notify(trigger)
	tree.Queue().Process()
	if fired != 1 {
		t.Errorf("listener fired %d times, want 1", fired)
	}
}

func TestCloneStripsTransientState(t *testing.T) {
	w := New("button")
	w.SetID("ok")
	w.AddClass("primary")
	w.SetHovered(true)
	w.SetPressed(true)
	w.SetSelected(true)
	child := New("label")
	w.Append(child)

	c := w.Clone()
	if c.ID() != "ok" || !c.HasClass("primary") {
		t.Error("identity did not carry over")
	}
	if c.States()&style.StateHover != 0 || c.States()&style.StatePressed != 0 {
		t.Error("transient interaction state cloned")
	}
	if c.States()&style.StateSelected == 0 {
		t.Error("selected state lost in clone")
	}
	if len(c.Children()) != 1 || c.Children()[0] == child {
		t.Error("children not deep-copied")
	}
	if c.Children()[0].Parent() != c {
		t.Error("cloned child not reparented")
	}
	if c.Tree() != nil {
		t.Error("clone carries tree membership")
	}
}

func TestFindHelpers(t *testing.T) {
	root := New("panel")
	a := New("button")
	a.SetID("ok")
	a.AddClass("primary")
	b := New("button")
	b.SetRole("cancel")
	root.Append(a, b)

	if got := root.FindByID("ok"); got != a {
		t.Errorf("FindByID = %v, want the first button", got)
	}
	if got := root.FindByClass("primary"); len(got) != 1 || got[0] != a {
		t.Errorf("FindByClass = %v, want [a]", got)
	}
	if got := root.FindByRole("cancel"); len(got) != 1 || got[0] != b {
		t.Errorf("FindByRole = %v, want [b]", got)
	}
	if got := root.Find(func(w *Widget) bool { return w.TypeName() == "button" }); got != a {
		t.Errorf("Find = %v, want document-order first match", got)
	}
}

func TestInsertClampsAndReparents(t *testing.T) {
	p1 := New("panel")
	p2 := New("panel")
	c := New("box")
	p1.Append(c)
	p2.Insert(99, c)

	if len(p1.Children()) != 0 {
		t.Error("child still listed under the old parent")
	}
	if c.Parent() != p2 {
		t.Errorf("parent = %v, want the new panel", c.Parent())
	}
}

func TestLayeredChildPaintsAboveSibling(t *testing.T) {
	var order []string
	root := New("panel")
	root.OnPaint = func(render.Canvas) { order = append(order, "root") }
	overlay := New("popup")
	overlay.Layered = true
	overlay.OnPaint = func(render.Canvas) { order = append(order, "overlay") }
	sibling := New("box")
	sibling.OnPaint = func(render.Canvas) { order = append(order, "sibling") }
	root.Append(overlay, sibling)

	tree := newTestTree(root)
	defer tree.Close()
	settle(tree)
	order = nil

	tree.Frame(nopCanvas{})

	want := []string{"root", "sibling", "overlay"}
	if len(order) != len(want) {
		t.Fatalf("paint order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("paint order = %v, want %v", order, want)
		}
	}
}

func TestInvisibleSubtreeSkipsPaintAndHits(t *testing.T) {
	painted := false
	root := New("panel")
	hidden := New("box")
	hidden.OnPaint = func(render.Canvas) { painted = true }
	hidden.Set(style.PropVisible, false)
	root.Append(hidden)

	tree := newTestTree(root)
	defer tree.Close()
	tree.SetViewport(graphics.RectFromLTWH(0, 0, 100, 100), 1)
	settle(tree)

	tree.Frame(nopCanvas{})
	if painted {
		t.Error("invisible widget painted")
	}
	for _, entry := range tree.collectGeometry() {
		if entry.Target == hidden {
			t.Error("invisible widget present in the hit-test cache")
		}
	}
}

func TestGroupPhaseOrder(t *testing.T) {
	g := &recordingGroup{}
	root := New("panel")
	root.AddGroup(g)

	tree := newTestTree(root)
	defer tree.Close()
	g.phases = nil

	tree.Frame(nil)

	want := []string{"frame", "refresh", "layout", "paint", "after"}
	if len(g.phases) != len(want) {
		t.Fatalf("phases = %v, want %v", g.phases, want)
	}
	for i := range want {
		if g.phases[i] != want[i] {
			t.Fatalf("phases = %v, want %v", g.phases, want)
		}
	}
}

func TestGroupAttachDetach(t *testing.T) {
	g := &recordingGroup{}
	w := New("box")
	w.AddGroup(g)
	if g.attached != 0 {
		t.Fatalf("attach fired while detached, count %d", g.attached)
	}

	root := New("panel")
	tree := newTestTree(root)
	defer tree.Close()

	root.Append(w)
	if g.attached != 1 {
		t.Errorf("attach count = %d, want 1", g.attached)
	}
	root.Remove(w)
	if g.detached != 1 {
		t.Errorf("detach count = %d, want 1", g.detached)
	}
}

type recordingGroup struct {
	GroupBase
	phases   []string
	attached int
	detached int
}

func (g *recordingGroup) Attach(*Widget)        { g.attached++ }
func (g *recordingGroup) Detach(*Widget)        { g.detached++ }
func (g *recordingGroup) BeforeFrame(time.Time) { g.phases = append(g.phases, "frame") }
func (g *recordingGroup) BeforeRefresh()        { g.phases = append(g.phases, "refresh") }
func (g *recordingGroup) BeforeLayout(bool)     { g.phases = append(g.phases, "layout") }
func (g *recordingGroup) BeforePaint()          { g.phases = append(g.phases, "paint") }
func (g *recordingGroup) AfterFrame()           { g.phases = append(g.phases, "after") }

type fakeWindow struct {
	cursor platform.Cursor
}

func (w *fakeWindow) FramebufferSize() graphics.Size { return graphics.Size{Width: 100, Height: 100} }
func (w *fakeWindow) ContentScale() float64          { return 1 }
func (w *fakeWindow) SetCursor(c platform.Cursor)    { w.cursor = c }
func (w *fakeWindow) Cursor() platform.Cursor        { return w.cursor }
func (w *fakeWindow) Wakeup()                        {}

func TestHoverShowsDeepestWidgetCursor(t *testing.T) {
	root := New("panel")
	button := New("button")
	button.SetCursor(platform.CursorHand)
	button.Set(style.PropHeight, style.Px(100))
	root.Append(button)

	win := &fakeWindow{}
	tree := NewTree(root, WithRegistry(binding.NewRegistry()), WithWindow(win))
	defer tree.Close()
	tree.SetViewport(graphics.RectFromLTWH(0, 0, 100, 100), 1)
	settle(tree)

	tree.Input().PushMouseMoved(graphics.Point{X: 50, Y: 50}, 0)
	tree.Frame(nil)

	if win.cursor != platform.CursorHand {
		t.Errorf("window cursor = %v, want the hovered button's hand cursor", win.cursor)
	}
}

func TestPanickingHookDoesNotStopFrame(t *testing.T) {
	root := New("panel")
	sibling := New("box")
	ran := false
	root.OnRebuild = func() { panic("bad widget") }
	sibling.OnRebuild = func() { ran = true }
	root.Append(sibling)

	tree := newTestTree(root)
	defer tree.Close()
	settle(tree)

	root.RequestRebuild()
	sibling.RequestRebuild()
	tree.Frame(nil)
	if !ran {
		t.Error("a panicking hook stopped the rebuild drain")
	}
}
