package stun

import "github.com/hajimehoshi/ebiten/v2"

type syntheticKind uint8

const (
	syntheticPress syntheticKind = iota
	syntheticRelease
	syntheticScroll
	syntheticKey
)

// syntheticEvent is a single injected input event. Coordinates are viewport
// coordinates, identical to real mouse input.
type syntheticEvent struct {
	kind   syntheticKind
	x, y   float64
	dy     float64
	button MouseButton
	key    ebiten.Key
	ctrl   bool
}

// InjectPress queues a left-button press at the given viewport coordinates.
// The event is consumed on the next Step.
func (s *Scene) InjectPress(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: syntheticPress, x: x, y: y})
}

// InjectRelease queues a left-button release at the given viewport coordinates.
func (s *Scene) InjectRelease(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: syntheticRelease, x: x, y: y})
}

// InjectClick is a convenience that queues a press followed by a release
// at the same coordinates. Consumes two steps.
func (s *Scene) InjectClick(x, y float64) {
	s.InjectPress(x, y)
	s.InjectRelease(x, y)
}

// InjectScroll queues a document scroll by dy pixels. Consumes one step.
func (s *Scene) InjectScroll(dy float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: syntheticScroll, dy: dy})
}

// InjectKey queues a key press, with or without Ctrl held. Consumes one step.
func (s *Scene) InjectKey(key ebiten.Key, ctrl bool) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: syntheticKey, key: key, ctrl: ctrl})
}

// PendingInput returns the number of injected events not yet consumed.
func (s *Scene) PendingInput() int {
	return len(s.injectQueue)
}

// processInjectedInput pops one event from the inject queue and feeds it
// through the same path as real input. Returns true if an event was consumed
// (real input should be skipped).
func (s *Scene) processInjectedInput() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	switch evt.kind {
	case syntheticPress:
		s.processPointer(evt.x, evt.y, true, evt.button)
		s.pointer.injected = s.pointer.down
	case syntheticRelease:
		s.processPointer(evt.x, evt.y, false, evt.button)
		s.pointer.injected = false
	case syntheticScroll:
		s.ScrollBy(0, evt.dy)
	case syntheticKey:
		s.dispatchKey(KeyEvent{Key: evt.key, Ctrl: evt.ctrl})
	}
	return true
}
