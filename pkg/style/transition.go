package style

import (
	"time"

	"github.com/brisk-gui/brisk/pkg/graphics"
)

// Transition animates a property between two resolved values. It is created
// when resolution observes a changed value on a property carrying
// TransitionFlag, and sampled every animation frame until done.
type Transition struct {
	From     any
	To       any
	Start    time.Time
	Duration time.Duration
	Easing   EasingFunc
}

// NewTransition starts a transition for the given property.
func NewTransition(index PropertyIndex, from, to any, now time.Time) *Transition {
	meta := Meta(index)
	easing := meta.Easing
	if easing == nil {
		easing = EaseInOut
	}
	return &Transition{
		From:     from,
		To:       to,
		Start:    now,
		Duration: meta.Duration,
		Easing:   easing,
	}
}

// Value samples the transition at the given time. done reports whether the
// transition has reached its target.
func (t *Transition) Value(now time.Time) (value any, done bool) {
	if t.Duration <= 0 {
		return t.To, true
	}
	progress := float64(now.Sub(t.Start)) / float64(t.Duration)
	if progress >= 1 {
		return t.To, true
	}
	if progress < 0 {
		progress = 0
	}
	return interpolate(t.From, t.To, t.Easing(progress)), false
}

// interpolate blends two property values. Unsupported value kinds snap to
// the target.
func interpolate(from, to any, t float64) any {
	switch a := from.(type) {
	case float64:
		if b, ok := to.(float64); ok {
			return a + (b-a)*t
		}
	case graphics.Color:
		if b, ok := to.(graphics.Color); ok {
			return a.Lerp(b, t)
		}
	case Dimension:
		if b, ok := to.(Dimension); ok && a.Unit == b.Unit {
			return Dimension{Value: a.Value + (b.Value-a.Value)*t, Unit: a.Unit}
		}
	}
	return to
}
