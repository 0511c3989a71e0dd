package stun

import (
	"fmt"
	"math"
)

// ZoomState is the phase of the click-to-zoom interaction.
type ZoomState uint8

const (
	ZoomIdle    ZoomState = iota // no session
	ZoomZooming                  // proxy animating toward the centre
	ZoomZoomed                   // proxy resting at the centre
	ZoomClosing                  // proxy animating back; cleanup pending
)

// String returns the state name.
func (z ZoomState) String() string {
	switch z {
	case ZoomIdle:
		return "idle"
	case ZoomZooming:
		return "zooming"
	case ZoomZoomed:
		return "zoomed"
	case ZoomClosing:
		return "closing"
	default:
		return fmt.Sprintf("ZoomState(%d)", uint8(z))
	}
}

// ZoomTransform moves and scales a box so it is centred in the viewport.
type ZoomTransform struct {
	TranslateX, TranslateY float64
	Scale                  float64
}

// ComputeZoomTransform returns the transform that centres the border box of
// g in viewport and scales its content box to fit. A degenerate result (zero,
// NaN or infinite scale, as produced by an empty box or viewport) falls back
// to a scale of 1.
func ComputeZoomTransform(g Geometry, viewport Size) ZoomTransform {
	scale := min(viewport.Width/g.Content.Width, viewport.Height/g.Content.Height)
	if scale == 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
		scale = 1
	}
	return ZoomTransform{
		TranslateX: viewport.Width/2 - (g.Bounds.X + g.Outer.Width/2),
		TranslateY: viewport.Height/2 - (g.Bounds.Y + g.Outer.Height/2),
		Scale:      scale,
	}
}

// ZoomSession is one activation-to-teardown lifecycle. Source is the node
// that was clicked; the session hides it but never owns or disposes it.
type ZoomSession struct {
	Source    *Node
	Transform ZoomTransform

	proxy     *Node
	mask      *Node
	proxyAnim *Animation
	maskAnim  *Animation
	finished  bool
}

// Proxy returns the overlay node animated in place of Source.
func (zs *ZoomSession) Proxy() *Node {
	return zs.proxy
}

// Mask returns the full-viewport backdrop node.
func (zs *ZoomSession) Mask() *Node {
	return zs.mask
}

// Zoomer runs the click-to-zoom interaction for a set of nodes. At most one
// session exists at a time; activations outside ZoomIdle are ignored.
type Zoomer struct {
	scene   *Scene
	sel     *Selector
	state   ZoomState
	session *ZoomSession

	targets       []*Node
	handles       []CallbackHandle
	closeOnScroll func(*ZoomSession)
	stateChange   listenerList[func(from, to ZoomState)]
}

// RegisterZoomBehavior makes every visible node matching selector zoomable.
// Clicking one opens a session; a document click closes it immediately and
// scrolling closes it once scrolling has been quiet for
// Config.ScrollCloseDelay.
func (s *Scene) RegisterZoomBehavior(selector string) (*Zoomer, error) {
	sel, err := ParseSelector(selector)
	if err != nil {
		return nil, fmt.Errorf("register zoom: %w", err)
	}
	z := &Zoomer{scene: s, sel: sel}
	// A close armed by one session's scrolling must not reach a later one.
	z.closeOnScroll = Debounce(s.Clock(), s.cfg.ScrollCloseDelay, false, func(sess *ZoomSession) {
		if z.session == sess {
			z.Close()
		}
	})

	for _, n := range sel.QueryAll(s.root) {
		if !n.Visible || n.Hidden() || n == s.root {
			continue
		}
		n.AddClass(ClassZoomImage)
		target := n
		z.targets = append(z.targets, target)
		z.handles = append(z.handles, target.OnClick(func(ev *ClickEvent) {
			// The opening click must not also count as the closing click.
			ev.StopPropagation()
			z.Activate(target)
		}))
	}

	z.handles = append(z.handles,
		s.OnScroll(func(ScrollEvent) {
			if z.state == ZoomZooming || z.state == ZoomZoomed {
				z.closeOnScroll(z.session)
			}
		}),
		s.OnClick(func(*ClickEvent) {
			z.Close()
		}),
	)
	s.debugf("zoom: registered %d node(s) for %q", len(z.targets), selector)
	return z, nil
}

// State returns the current interaction state.
func (z *Zoomer) State() ZoomState {
	return z.state
}

// Session returns the open session, or nil when idle.
func (z *Zoomer) Session() *ZoomSession {
	return z.session
}

// Targets returns the nodes made zoomable at registration.
func (z *Zoomer) Targets() []*Node {
	return z.targets
}

// OnStateChange registers fn to run after every state transition.
func (z *Zoomer) OnStateChange(fn func(from, to ZoomState)) CallbackHandle {
	id := z.stateChange.add(fn)
	return CallbackHandle{id: id, reg: &z.stateChange}
}

// Activate opens a zoom session on n. It returns false, doing nothing, unless
// the interaction is idle.
func (z *Zoomer) Activate(n *Node) bool {
	s := z.scene
	if n == nil || n.IsDisposed() {
		return false
	}
	if z.state != ZoomIdle {
		s.debugf("zoom: activation of %q ignored while %s", n.Name, z.state)
		return false
	}

	g := s.Geometry(n)
	vp := s.Viewport()
	tf := ComputeZoomTransform(g, vp)
	if g.Content.Width <= 0 || g.Content.Height <= 0 {
		s.debugf("zoom: %q has degenerate size %vx%v, scale clamped to %v",
			n.Name, g.Content.Width, g.Content.Height, tf.Scale)
	}

	proxy := NewElement(n.Tag, n.Name+"-zoom")
	proxy.AddClass(n.Classes()...)
	proxy.AddClass(ClassShow)
	proxy.Image = n.Image
	proxy.Color = n.Color
	proxy.Text = n.Text
	proxy.TextColor = n.TextColor
	proxy.Fixed = n.isFixed()
	off := n.Offset()
	proxy.X = off.X + (g.Outer.Width-g.Content.Width)/2
	proxy.Y = off.Y + (g.Outer.Height-g.Content.Height)/2
	proxy.Width = g.Content.Width
	proxy.Height = g.Content.Height

	mask := NewElement("div", "zoom-mask")
	mask.AddClass(ClassZoomMask)
	mask.Fixed = true
	mask.Width, mask.Height = vp.Width, vp.Height
	mask.Color = Color{A: s.cfg.MaskOpacity}
	mask.Alpha = 0

	// Hidden in place so surrounding layout does not shift.
	n.AddClass(ClassHide)
	s.root.AddChild(mask)
	s.root.AddChild(proxy)

	sess := &ZoomSession{Source: n, Transform: tf, proxy: proxy, mask: mask}
	z.session = sess
	z.setState(ZoomZooming)

	sess.maskAnim = s.Animate(mask, Fade(1), AnimateOptions{Duration: s.cfg.MaskDuration})
	sess.proxyAnim = s.Animate(proxy, Transform(tf.TranslateX, tf.TranslateY, tf.Scale), AnimateOptions{
		Duration: s.cfg.ZoomDuration,
		Easing:   EaseZoom,
		Complete: func() {
			if z.session == sess && z.state == ZoomZooming {
				z.setState(ZoomZoomed)
			}
		},
	})
	return true
}

// Close reverses the open session. Only a zooming or zoomed session can be
// closed; any other call is absorbed and returns false. The proxy and mask
// are removed once both reverse animations complete.
func (z *Zoomer) Close() bool {
	if z.state != ZoomZooming && z.state != ZoomZoomed {
		if z.state == ZoomClosing {
			z.scene.debugf("zoom: close ignored, session already closing")
		}
		return false
	}
	sess := z.session
	z.setState(ZoomClosing)

	// Reverse stops the forward animation first, so a close while zooming
	// rewinds from wherever the proxy is instead of compounding transforms.
	remaining := 2
	settle := func() {
		remaining--
		if remaining == 0 {
			z.finish(sess)
		}
	}
	sess.proxyAnim = sess.proxyAnim.Reverse(AnimateOptions{Complete: settle})
	sess.maskAnim = sess.maskAnim.Reverse(AnimateOptions{Complete: settle})
	return true
}

// finish removes the session's overlay and restores the source node. It runs
// at most once per session.
func (z *Zoomer) finish(sess *ZoomSession) {
	if sess.finished {
		return
	}
	sess.finished = true
	s := z.scene
	s.StopAnimations(sess.proxy)
	s.StopAnimations(sess.mask)
	sess.proxy.Dispose()
	sess.mask.Dispose()
	sess.Source.RemoveClass(ClassHide)
	if z.session == sess {
		z.session = nil
		z.setState(ZoomIdle)
	}
}

// Unregister removes every listener the zoomer added and tears down an open
// session immediately, without animation.
func (z *Zoomer) Unregister() {
	for _, h := range z.handles {
		h.Remove()
	}
	z.handles = nil
	if z.session != nil {
		z.finish(z.session)
	}
}

func (z *Zoomer) setState(to ZoomState) {
	from := z.state
	z.state = to
	for _, fn := range z.stateChange.snapshot() {
		fn(from, to)
	}
	var entityID uint32
	if z.session != nil {
		entityID = z.session.Source.EntityID
	}
	z.scene.emit(InteractionEvent{Type: EventZoomState, EntityID: entityID, From: from, To: to})
}
