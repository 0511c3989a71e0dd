package stun

import (
	"math"

	"github.com/tanema/gween/ease"
)

// EaseZoom is the curve used by the zoom interaction, cubic-bezier(0.2, 0, 0.2, 1).
var EaseZoom = CubicBezier(0.2, 0, 0.2, 1)

// CubicBezier returns a gween easing function following the CSS
// cubic-bezier(x1, y1, x2, y2) timing curve. x1 and x2 are clamped to [0, 1]
// so the curve stays a function of time.
func CubicBezier(x1, y1, x2, y2 float64) ease.TweenFunc {
	x1 = clamp01(x1)
	x2 = clamp01(x2)

	// Polynomial coefficients for B(u) = ((a*u + b)*u + c)*u.
	cx := 3 * x1
	bx := 3*(x2-x1) - cx
	ax := 1 - cx - bx
	cy := 3 * y1
	by := 3*(y2-y1) - cy
	ay := 1 - cy - by

	sampleX := func(u float64) float64 { return ((ax*u+bx)*u + cx) * u }
	sampleY := func(u float64) float64 { return ((ay*u+by)*u + cy) * u }
	slopeX := func(u float64) float64 { return (3*ax*u+2*bx)*u + cx }

	solve := func(x float64) float64 {
		u := x
		for i := 0; i < 8; i++ {
			err := sampleX(u) - x
			if math.Abs(err) < 1e-7 {
				return u
			}
			d := slopeX(u)
			if math.Abs(d) < 1e-6 {
				break
			}
			u -= err / d
		}
		// Newton stalled on a flat segment; bisect.
		lo, hi := 0.0, 1.0
		u = x
		for i := 0; i < 32; i++ {
			v := sampleX(u)
			if math.Abs(v-x) < 1e-7 {
				break
			}
			if v < x {
				lo = u
			} else {
				hi = u
			}
			u = (lo + hi) / 2
		}
		return u
	}

	return func(t, b, c, d float32) float32 {
		if d <= 0 {
			return b + c
		}
		p := float64(t / d)
		switch {
		case p <= 0:
			return b
		case p >= 1:
			return b + c
		}
		return b + c*float32(sampleY(solve(p)))
	}
}
