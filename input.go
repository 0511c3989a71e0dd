package stun

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// pointerState tracks the mouse between frames so that a click is only
// reported for a press and release over the same node.
type pointerState struct {
	down    bool
	hitNode *Node
	button  MouseButton
	// injected is set while a synthetic press awaits its synthetic release;
	// real mouse buttons are ignored until then.
	injected bool
}

// --- Hit testing ---

// collectHittable walks the tree in painter order, appending nodes that can
// receive clicks to buf. Invisible, hidden and non-interactable subtrees are
// skipped. The root itself is never a hit target.
func (s *Scene) collectHittable(buf []*Node) []*Node {
	walk(s.root, func(n *Node) bool {
		if !n.Visible || !n.Interactable || n.Hidden() {
			return false
		}
		if n != s.root {
			buf = append(buf, n)
		}
		return true
	})
	return buf
}

// hitTest finds the topmost node whose on-screen box contains the viewport
// point (x, y). Returns nil if nothing is hit.
func (s *Scene) hitTest(x, y float64) *Node {
	s.hitBuf = s.collectHittable(s.hitBuf[:0])

	// Iterate backward (reverse painter order): topmost visual node first.
	for i := len(s.hitBuf) - 1; i >= 0; i-- {
		n := s.hitBuf[i]
		r := s.visualRect(n)
		if r.Width <= 0 || r.Height <= 0 {
			continue
		}
		if r.Contains(x, y) {
			return n
		}
	}
	return nil
}

// --- Input processing ---

// processInput is called from Scene.Step. Injected events take priority over
// real input and are consumed one per step.
func (s *Scene) processInput() {
	if s.processInjectedInput() {
		return
	}

	if _, wy := ebiten.Wheel(); wy != 0 {
		s.ScrollBy(0, -wy*s.cfg.ScrollStep)
	}
	s.processKeys()
	if s.pointer.injected {
		return
	}

	mx, my := ebiten.CursorPosition()
	var pressed bool
	var button MouseButton
	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	middle := ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)
	if left || right || middle {
		pressed = true
		switch {
		case left:
			button = MouseButtonLeft
		case right:
			button = MouseButtonRight
		default:
			button = MouseButtonMiddle
		}
	}
	s.processPointer(float64(mx), float64(my), pressed, button)
}

// processKeys reports keys pressed since the last step. Nothing is polled
// while no key listener is registered.
func (s *Scene) processKeys() {
	if s.keyHandlers.len() == 0 {
		return
	}
	s.keyBuf = inpututil.AppendJustPressedKeys(s.keyBuf[:0])
	if len(s.keyBuf) == 0 {
		return
	}
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight)
	for _, k := range s.keyBuf {
		s.dispatchKey(KeyEvent{Key: k, Ctrl: ctrl})
	}
}

func (s *Scene) dispatchKey(ev KeyEvent) {
	for _, fn := range s.keyHandlers.snapshot() {
		fn(ev)
	}
}

// processPointer runs the press/release state machine for the mouse.
func (s *Scene) processPointer(x, y float64, pressed bool, button MouseButton) {
	ps := &s.pointer
	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.button = button
		ps.hitNode = s.hitTest(x, y)
	case !pressed && ps.down:
		target := s.hitTest(x, y)
		if target == ps.hitNode {
			s.dispatchClick(target, x, y, ps.button)
		}
		ps.down = false
		ps.hitNode = nil
	}
}

// dispatchClick bubbles a click from target to the root, then to the
// document listeners, stopping early if a listener stops propagation.
func (s *Scene) dispatchClick(target *Node, x, y float64, button MouseButton) {
	ev := &ClickEvent{Target: target, GlobalX: x, GlobalY: y, Button: button}
	for n := target; n != nil && !ev.stopped; n = n.Parent {
		ev.Current = n
		for _, fn := range n.click.snapshot() {
			fn(ev)
		}
	}
	if !ev.stopped {
		ev.Current = nil
		for _, fn := range s.clickHandlers.snapshot() {
			fn(ev)
		}
	}

	var entityID uint32
	if target != nil {
		entityID = target.EntityID
	}
	s.emit(InteractionEvent{Type: EventClick, EntityID: entityID, GlobalX: x, GlobalY: y, Button: button})
}
