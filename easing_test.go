package stun

import (
	"math"
	"testing"
)

func TestCubicBezierEndpoints(t *testing.T) {
	curves := map[string][4]float64{
		"zoom":      {0.2, 0, 0.2, 1},
		"linear":    {0, 0, 1, 1},
		"ease":      {0.25, 0.1, 0.25, 1},
		"overshoot": {0.3, -0.5, 0.7, 1.5},
	}
	for name, c := range curves {
		t.Run(name, func(t *testing.T) {
			f := CubicBezier(c[0], c[1], c[2], c[3])
			if got := f(0, 10, 90, 2); got != 10 {
				t.Errorf("f(0) = %v, want 10", got)
			}
			if got := f(2, 10, 90, 2); got != 100 {
				t.Errorf("f(d) = %v, want 100", got)
			}
			if got := f(5, 10, 90, 2); got != 100 {
				t.Errorf("f(past d) = %v, want 100", got)
			}
		})
	}
}

func TestCubicBezierLinear(t *testing.T) {
	f := CubicBezier(0, 0, 1, 1)
	for _, p := range []float32{0.1, 0.25, 0.5, 0.75, 0.9} {
		got := f(p, 0, 1, 1)
		if math.Abs(float64(got-p)) > 1e-4 {
			t.Errorf("linear(%v) = %v", p, got)
		}
	}
}

func TestEaseZoomMonotonic(t *testing.T) {
	prev := float32(-1)
	for i := 0; i <= 100; i++ {
		v := EaseZoom(float32(i)/100, 0, 1, 1)
		if v < prev-1e-6 {
			t.Fatalf("EaseZoom decreased at %d: %v < %v", i, v, prev)
		}
		prev = v
	}
	// Decelerating curve: well past halfway at the midpoint.
	if mid := EaseZoom(0.5, 0, 1, 1); mid < 0.7 {
		t.Errorf("EaseZoom(0.5) = %v, want > 0.7", mid)
	}
}

func TestCubicBezierZeroDuration(t *testing.T) {
	f := CubicBezier(0.2, 0, 0.2, 1)
	if got := f(0, 3, 4, 0); got != 7 {
		t.Errorf("zero duration = %v, want 7", got)
	}
}
