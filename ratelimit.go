package stun

import "time"

// Debounce returns a function that delays calling fn until wait has elapsed
// on clock without another call.
//
// With immediate false the latest call's argument is delivered once, wait
// after the last call (trailing edge). With immediate true fn runs
// synchronously on the first call of an idle period (leading edge) and every
// call inside the following wait window is swallowed; each swallowed call
// extends the window.
//
// Every call to Debounce produces an independent wrapper. fn is not wrapped
// in a recover: a panic propagates out of whichever context invoked it.
func Debounce[A any](clock Clock, wait time.Duration, immediate bool, fn func(A)) func(A) {
	var timer Timer

	return func(arg A) {
		if timer != nil {
			timer.Stop()
		}
		if immediate {
			callNow := timer == nil
			timer = clock.AfterFunc(wait, func() {
				timer = nil
			})
			if callNow {
				fn(arg)
			}
			return
		}
		timer = clock.AfterFunc(wait, func() {
			timer = nil
			fn(arg)
		})
	}
}

// ThrottleOption configures Throttle.
type ThrottleOption func(*throttleConfig)

type throttleConfig struct {
	leading  bool
	trailing bool
}

// WithLeading controls whether the first call of a window fires immediately.
// Enabled by default.
func WithLeading(leading bool) ThrottleOption {
	return func(c *throttleConfig) {
		c.leading = leading
	}
}

// WithTrailing controls whether the last call of a window fires when the
// window closes. Enabled by default.
func WithTrailing(trailing bool) ThrottleOption {
	return func(c *throttleConfig) {
		c.trailing = trailing
	}
}

// Throttle returns a function that calls fn at most once per wait window on
// clock. The first call of a window fires immediately when leading is
// enabled; the most recent call made during a window fires when the window
// closes when trailing is enabled.
//
// Disabling both edges is a footgun: the first call never fires and later
// calls fire only when a full window has passed since the previous firing,
// so bursts are dropped entirely. It is left as is.
func Throttle[A any](clock Clock, wait time.Duration, fn func(A), opts ...ThrottleOption) func(A) {
	cfg := throttleConfig{leading: true, trailing: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	var (
		timer    Timer
		previous time.Duration
		primed   bool // previous holds a real timestamp
		lastArg  A
	)

	later := func() {
		if cfg.leading {
			previous = clock.Now()
			primed = true
		} else {
			primed = false
		}
		timer = nil
		fn(lastArg)
		if timer == nil {
			var zero A
			lastArg = zero
		}
	}

	return func(arg A) {
		now := clock.Now()
		if !primed && !cfg.leading {
			previous = now
			primed = true
		}

		var remaining time.Duration
		if primed {
			remaining = wait - (now - previous)
		}
		lastArg = arg

		// remaining > wait means the clock went backwards; fire rather than stall.
		if remaining <= 0 || remaining > wait {
			if timer != nil {
				timer.Stop()
				timer = nil
			}
			previous = now
			primed = true
			fn(arg)
			if timer == nil {
				var zero A
				lastArg = zero
			}
			return
		}
		if timer == nil && cfg.trailing {
			timer = clock.AfterFunc(remaining, later)
		}
	}
}
