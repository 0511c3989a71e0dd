package stun

import "github.com/hajimehoshi/ebiten/v2"

// EntityStore is the interface for optional ECS integration.
// When set on a Scene, interaction events are forwarded to the ECS.
type EntityStore interface {
	EmitEvent(event InteractionEvent)
}

// InteractionEvent carries interaction data for the ECS bridge.
type InteractionEvent struct {
	Type     EventType
	EntityID uint32
	GlobalX  float64
	GlobalY  float64
	Button   MouseButton
	// Scroll fields (valid for EventScroll)
	ScrollX float64
	ScrollY float64
	// Zoom fields (valid for EventZoomState)
	From ZoomState
	To   ZoomState
}

// ClickEvent is passed to click listeners while the click bubbles.
type ClickEvent struct {
	// Target is the node that was hit. Nil for clicks on empty space.
	Target *Node
	// Current is the node whose listener is running; nil for document listeners.
	Current *Node
	GlobalX float64
	GlobalY float64
	Button  MouseButton

	stopped bool
}

// StopPropagation prevents the click from reaching listeners further up the
// tree and the document-level listeners.
func (e *ClickEvent) StopPropagation() {
	e.stopped = true
}

// PropagationStopped reports whether StopPropagation was called.
func (e *ClickEvent) PropagationStopped() bool {
	return e.stopped
}

// KeyEvent reports a key that went down this step.
type KeyEvent struct {
	Key  ebiten.Key
	Ctrl bool
}

// ScrollEvent describes a document scroll.
type ScrollEvent struct {
	X, Y           float64
	DeltaX, DeltaY float64
}

// --- Handler registry ---

type listener[F any] struct {
	id uint32
	fn F
}

// listenerList is an ordered set of callbacks with removable ids.
type listenerList[F any] struct {
	entries []listener[F]
	nextID  uint32
}

func (l *listenerList[F]) add(fn F) uint32 {
	l.nextID++
	l.entries = append(l.entries, listener[F]{id: l.nextID, fn: fn})
	return l.nextID
}

func (l *listenerList[F]) remove(id uint32) {
	for i := range l.entries {
		if l.entries[i].id == id {
			copy(l.entries[i:], l.entries[i+1:])
			l.entries[len(l.entries)-1] = listener[F]{}
			l.entries = l.entries[:len(l.entries)-1]
			return
		}
	}
}

// snapshot returns the current callbacks so that listeners may add or remove
// registrations while being dispatched.
func (l *listenerList[F]) snapshot() []F {
	if len(l.entries) == 0 {
		return nil
	}
	fns := make([]F, len(l.entries))
	for i, e := range l.entries {
		fns[i] = e.fn
	}
	return fns
}

func (l *listenerList[F]) len() int {
	return len(l.entries)
}

type handlerRemover interface {
	remove(id uint32)
}

// CallbackHandle allows removing a registered callback.
type CallbackHandle struct {
	id  uint32
	reg handlerRemover
}

// Remove unregisters this callback so it no longer fires. Safe to call more
// than once and on the zero value.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	h.reg.remove(h.id)
}
