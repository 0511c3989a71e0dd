package stun

import (
	"fmt"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Scene is the top-level object that owns the page tree, the viewport and
// scroll position, input state, timers and running animations.
//
// A Scene is single-threaded: every method except Post must be called from
// the goroutine running Step (normally the ebiten game loop).
type Scene struct {
	root  *Node
	cfg   Config
	store EntityStore
	debug bool

	// ClearColor fills the screen before nodes are drawn.
	ClearColor Color

	viewport         Size
	scrollX, scrollY float64

	timeline   *Timeline
	animations []*Animation
	commands   []drawCommand

	// Input state
	clickHandlers  listenerList[func(*ClickEvent)]
	scrollHandlers listenerList[func(ScrollEvent)]
	keyHandlers    listenerList[func(KeyEvent)]
	keyBuf         []ebiten.Key
	injectQueue    []syntheticEvent
	pointer        pointerState
	hitBuf         []*Node

	postMu sync.Mutex
	posted []func()

	script          *Script
	screenshotQueue []string

	updateFunc func() error
}

// NewScene creates a scene with a pre-created body root and the given config.
// An invalid config falls back to DefaultConfig.
func NewScene(cfg Config) *Scene {
	if err := cfg.Validate(); err != nil {
		cfg = DefaultConfig()
	}
	root := NewElement("body", "root")
	s := &Scene{
		root:     root,
		cfg:      cfg,
		timeline: NewTimeline(),
		viewport: Size{Width: 800, Height: 600},
	}
	if cfg.Debug {
		s.SetDebugMode(true)
	}
	return s
}

// Root returns the scene's root node.
func (s *Scene) Root() *Node {
	return s.root
}

// Config returns the scene configuration.
func (s *Scene) Config() Config {
	return s.cfg
}

// Clock returns the scene timeline. Timers scheduled on it fire during Step.
func (s *Scene) Clock() Clock {
	return s.timeline
}

// Timeline returns the scene timeline for direct inspection.
func (s *Scene) Timeline() *Timeline {
	return s.timeline
}

// SetViewport sets the visible area size.
func (s *Scene) SetViewport(width, height float64) {
	s.viewport = Size{Width: width, Height: height}
}

// Viewport returns the visible area size.
func (s *Scene) Viewport() Size {
	return s.viewport
}

// Scroll returns the current document scroll offset.
func (s *Scene) Scroll() (x, y float64) {
	return s.scrollX, s.scrollY
}

// ScrollTo moves the document scroll offset, clamped at zero, and fires the
// scroll listeners if it changed.
func (s *Scene) ScrollTo(x, y float64) {
	x = max(x, 0)
	y = max(y, 0)
	if x == s.scrollX && y == s.scrollY {
		return
	}
	ev := ScrollEvent{X: x, Y: y, DeltaX: x - s.scrollX, DeltaY: y - s.scrollY}
	s.scrollX, s.scrollY = x, y
	for _, fn := range s.scrollHandlers.snapshot() {
		fn(ev)
	}
	s.emit(InteractionEvent{Type: EventScroll, ScrollX: x, ScrollY: y})
}

// ScrollBy moves the document scroll offset relative to its current value.
func (s *Scene) ScrollBy(dx, dy float64) {
	s.ScrollTo(s.scrollX+dx, s.scrollY+dy)
}

// OnClick registers a document-level click listener. It runs after the
// click has bubbled through the node listeners, unless one of them stopped
// propagation. Clicks on empty space reach it with a nil Target.
func (s *Scene) OnClick(fn func(*ClickEvent)) CallbackHandle {
	id := s.clickHandlers.add(fn)
	return CallbackHandle{id: id, reg: &s.clickHandlers}
}

// OnScroll registers a listener for document scroll changes.
func (s *Scene) OnScroll(fn func(ScrollEvent)) CallbackHandle {
	id := s.scrollHandlers.add(fn)
	return CallbackHandle{id: id, reg: &s.scrollHandlers}
}

// OnKey registers a listener for key presses. Keys held down do not repeat.
func (s *Scene) OnKey(fn func(KeyEvent)) CallbackHandle {
	id := s.keyHandlers.add(fn)
	return CallbackHandle{id: id, reg: &s.keyHandlers}
}

// Query returns every node matching selector in document order.
func (s *Scene) Query(selector string) ([]*Node, error) {
	sel, err := ParseSelector(selector)
	if err != nil {
		return nil, err
	}
	return sel.QueryAll(s.root), nil
}

// Post queues fn to run at the start of the next Step. It is the only Scene
// method that is safe to call from other goroutines.
func (s *Scene) Post(fn func()) {
	s.postMu.Lock()
	s.posted = append(s.posted, fn)
	s.postMu.Unlock()
}

func (s *Scene) drainPosted() {
	s.postMu.Lock()
	fns := s.posted
	s.posted = nil
	s.postMu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

// Update advances the scene by one ebiten tick.
func (s *Scene) Update() {
	s.Step(time.Second / time.Duration(ebiten.TPS()))
}

// Step runs posted callbacks, advances an attached script, processes one
// input event, fires due timers and advances animations by dt, in that order.
func (s *Scene) Step(dt time.Duration) {
	s.drainPosted()
	if s.script != nil {
		s.script.step(s)
	}
	s.processInput()
	s.timeline.Advance(dt)
	s.updateAnimations(dt)
}

// SetEntityStore sets the optional ECS bridge.
func (s *Scene) SetEntityStore(store EntityStore) {
	s.store = store
}

func (s *Scene) emit(ev InteractionEvent) {
	if s.store == nil {
		return
	}
	s.store.EmitEvent(ev)
}

// String summarises the scene for debugging.
func (s *Scene) String() string {
	return fmt.Sprintf("Scene{viewport=%vx%v scroll=(%v,%v) animations=%d timers=%d}",
		s.viewport.Width, s.viewport.Height, s.scrollX, s.scrollY, len(s.animations), s.timeline.Pending())
}
