package stun

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// DefaultAnimationDuration is used when AnimateOptions.Duration is zero.
const DefaultAnimationDuration = 400 * time.Millisecond

// Prop selects which node properties a Keyframe animates.
type Prop uint8

const (
	PropTranslate Prop = 1 << iota // TranslateX and TranslateY
	PropScale                      // ScaleX and ScaleY, uniformly
	PropAlpha                      // Alpha
)

// Keyframe is the target state of an animation. Only the fields selected by
// Props are animated.
type Keyframe struct {
	TranslateX, TranslateY float64
	Scale                  float64
	Alpha                  float64
	Props                  Prop
}

// Transform returns a keyframe animating translation and uniform scale.
func Transform(tx, ty, scale float64) Keyframe {
	return Keyframe{TranslateX: tx, TranslateY: ty, Scale: scale, Props: PropTranslate | PropScale}
}

// Fade returns a keyframe animating alpha.
func Fade(alpha float64) Keyframe {
	return Keyframe{Alpha: alpha, Props: PropAlpha}
}

// AnimateOptions controls timing of an animation. Zero Duration and nil
// Easing select the defaults (400ms, ease.InOutSine).
type AnimateOptions struct {
	Duration time.Duration
	Easing   ease.TweenFunc
	Delay    time.Duration
	// Complete runs once after the transition finishes. It does not run if
	// the animation is stopped or its node is disposed.
	Complete func()
}

// animValues is the full set of animatable properties of a node.
type animValues struct {
	tx, ty, sx, sy, alpha float64
}

func captureValues(n *Node) animValues {
	return animValues{tx: n.TranslateX, ty: n.TranslateY, sx: n.ScaleX, sy: n.ScaleY, alpha: n.Alpha}
}

// Animation tweens a node toward a Keyframe. Animations are advanced by
// Scene.Step; there is nothing to drive by hand.
type Animation struct {
	target *Node
	props  Prop
	to     animValues
	origin animValues

	duration time.Duration
	easing   ease.TweenFunc
	delay    time.Duration
	complete func()

	tweens  []*gween.Tween
	fields  []*float64
	targets []float64
	started bool
	done    bool
	stopped bool

	scene *Scene
}

// Animate starts tweening target toward to. The animation is registered with
// the scene and advances on every Step.
func (s *Scene) Animate(target *Node, to Keyframe, opts AnimateOptions) *Animation {
	a := &Animation{
		target:   target,
		props:    to.Props,
		duration: opts.Duration,
		easing:   opts.Easing,
		delay:    opts.Delay,
		complete: opts.Complete,
		scene:    s,
	}
	if a.duration <= 0 {
		a.duration = DefaultAnimationDuration
	}
	if a.easing == nil {
		a.easing = ease.InOutSine
	}
	a.to = captureValues(target)
	if to.Props&PropTranslate != 0 {
		a.to.tx, a.to.ty = to.TranslateX, to.TranslateY
	}
	if to.Props&PropScale != 0 {
		a.to.sx, a.to.sy = to.Scale, to.Scale
	}
	if to.Props&PropAlpha != 0 {
		a.to.alpha = to.Alpha
	}
	a.origin = captureValues(target)
	s.animations = append(s.animations, a)
	return a
}

// Target returns the animated node.
func (a *Animation) Target() *Node {
	return a.target
}

// Done reports whether the animation finished or was stopped.
func (a *Animation) Done() bool {
	return a.done
}

// Stopped reports whether Stop ended the animation early.
func (a *Animation) Stopped() bool {
	return a.stopped
}

// Stop freezes the node at its current values. Complete will not run.
// Stopping a finished animation does nothing.
func (a *Animation) Stop() {
	if a.done {
		return
	}
	a.done = true
	a.stopped = true
}

// Reverse stops the animation and starts a new one from the node's current
// values back to the values it had when this animation started. Zero fields
// in opts inherit this animation's duration and easing.
func (a *Animation) Reverse(opts AnimateOptions) *Animation {
	a.Stop()
	if opts.Duration <= 0 {
		opts.Duration = a.duration
	}
	if opts.Easing == nil {
		opts.Easing = a.easing
	}
	kf := Keyframe{Props: a.props, TranslateX: a.origin.tx, TranslateY: a.origin.ty, Alpha: a.origin.alpha}
	r := a.scene.Animate(a.target, kf, opts)
	// Scale is stored per axis; restore both axes exactly.
	if a.props&PropScale != 0 {
		r.to.sx, r.to.sy = a.origin.sx, a.origin.sy
	}
	return r
}

// StopAnimations stops every running animation targeting n.
func (s *Scene) StopAnimations(n *Node) {
	for _, a := range s.animations {
		if a.target == n {
			a.Stop()
		}
	}
}

// start captures the starting values and builds the tweens.
func (a *Animation) start() {
	a.started = true
	a.origin = captureValues(a.target)
	secs := float32(a.duration.Seconds())
	n := a.target
	add := func(field *float64, to float64) {
		a.tweens = append(a.tweens, gween.New(float32(*field), float32(to), secs, a.easing))
		a.fields = append(a.fields, field)
		a.targets = append(a.targets, to)
	}
	if a.props&PropTranslate != 0 {
		add(&n.TranslateX, a.to.tx)
		add(&n.TranslateY, a.to.ty)
	}
	if a.props&PropScale != 0 {
		add(&n.ScaleX, a.to.sx)
		add(&n.ScaleY, a.to.sy)
	}
	if a.props&PropAlpha != 0 {
		add(&n.Alpha, a.to.alpha)
	}
}

// update advances the animation by dt.
func (a *Animation) update(dt time.Duration) {
	if a.done {
		return
	}
	if a.target.IsDisposed() {
		a.done = true
		return
	}
	if a.delay > 0 {
		a.delay -= dt
		if a.delay > 0 {
			return
		}
		dt = -a.delay
		a.delay = 0
	}
	if !a.started {
		a.start()
	}

	secs := float32(dt.Seconds())
	allDone := true
	for i, tw := range a.tweens {
		val, finished := tw.Update(secs)
		*a.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	if !allDone {
		return
	}
	// Snap to the exact targets; float32 tweening drifts slightly.
	for i, f := range a.fields {
		*f = a.targets[i]
	}
	a.done = true
	if a.complete != nil {
		a.complete()
	}
}

// updateAnimations advances every live animation and drops finished ones.
// Animations created during this pass start on the next step.
func (s *Scene) updateAnimations(dt time.Duration) {
	if len(s.animations) == 0 {
		return
	}
	for _, a := range s.animations {
		a.update(dt)
	}
	kept := s.animations[:0]
	for _, a := range s.animations {
		if !a.done {
			kept = append(kept, a)
		}
	}
	for i := len(kept); i < len(s.animations); i++ {
		s.animations[i] = nil
	}
	s.animations = kept
}

// Animations returns the number of animations still running.
func (s *Scene) Animations() int {
	return len(s.animations)
}
