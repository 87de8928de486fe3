package style

import (
	"math"
	"testing"
	"time"

	"github.com/brisk-gui/brisk/pkg/graphics"
)

func TestTransitionFloat(t *testing.T) {
	start := time.Now()
	tr := NewTransition(PropOpacity, 0.0, 1.0, start)

	v, done := tr.Value(start)
	if done || v != 0.0 {
		t.Errorf("at start: value = %v done = %v, want 0 false", v, done)
	}

	v, done = tr.Value(start.Add(tr.Duration))
	if !done || v != 1.0 {
		t.Errorf("at end: value = %v done = %v, want 1 true", v, done)
	}

	v, done = tr.Value(start.Add(tr.Duration / 2))
	f, ok := v.(float64)
	if done || !ok || f <= 0 || f >= 1 {
		t.Errorf("midway: value = %v done = %v, want interior float", v, done)
	}
}

func TestTransitionColor(t *testing.T) {
	start := time.Now()
	from := graphics.RGB(0, 0, 0)
	to := graphics.RGB(255, 255, 255)
	tr := NewTransition(PropBackgroundColor, from, to, start)

	v, done := tr.Value(start.Add(tr.Duration / 2))
	c, ok := v.(graphics.Color)
	if done || !ok {
		t.Fatalf("midway: value = %v done = %v, want a color", v, done)
	}
	if c == from || c == to {
		t.Errorf("midway color = %#x, want an interior blend", c)
	}
}

func TestTransitionUnsupportedSnapsToTarget(t *testing.T) {
	start := time.Now()
	tr := NewTransition(PropBackgroundColor, "left", "right", start)
	v, _ := tr.Value(start.Add(tr.Duration / 2))
	if v != "right" {
		t.Errorf("value = %v, want target for unsupported kinds", v)
	}
}

func TestEasingEndpoints(t *testing.T) {
	curves := map[string]EasingFunc{
		"linear":      Linear,
		"ease":        Ease,
		"ease-in":     EaseIn,
		"ease-out":    EaseOut,
		"ease-in-out": EaseInOut,
	}
	for name, fn := range curves {
		if got := fn(0); math.Abs(got) > 1e-6 {
			t.Errorf("%s(0) = %v, want 0", name, got)
		}
		if got := fn(1); math.Abs(got-1) > 1e-6 {
			t.Errorf("%s(1) = %v, want 1", name, got)
		}
	}
}

func TestCubicBezierMonotonic(t *testing.T) {
	fn := CubicBezier(0.25, 0.1, 0.25, 1)
	prev := fn(0)
	for i := 1; i <= 100; i++ {
		v := fn(float64(i) / 100)
		if v < prev-1e-9 {
			t.Fatalf("curve not monotonic at t=%v: %v < %v", float64(i)/100, v, prev)
		}
		prev = v
	}
}
