package ecs

import (
	"github.com/phanxgames/stun"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// InteractionEventType is the Donburi event type for stun interaction events.
var InteractionEventType = events.NewEventType[stun.InteractionEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
func NewDonburiStore(world donburi.World) stun.EntityStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event stun.InteractionEvent) {
	InteractionEventType.Publish(s.world, event)
}

// ZoomTracker mirrors the zoom interaction state inside a world. It only
// sees transitions once the world's events have been processed.
type ZoomTracker struct {
	state       stun.ZoomState
	entityID    uint32
	transitions int
}

// TrackZoom subscribes a new tracker to the zoom transitions published in
// world.
func TrackZoom(world donburi.World) *ZoomTracker {
	zt := &ZoomTracker{}
	InteractionEventType.Subscribe(world, zt.handle)
	return zt
}

func (zt *ZoomTracker) handle(_ donburi.World, e stun.InteractionEvent) {
	if e.Type != stun.EventZoomState {
		return
	}
	zt.state = e.To
	zt.entityID = e.EntityID
	zt.transitions++
}

// State returns the last observed zoom state.
func (zt *ZoomTracker) State() stun.ZoomState {
	return zt.state
}

// EntityID returns the entity of the node that was zoomed most recently.
func (zt *ZoomTracker) EntityID() uint32 {
	return zt.entityID
}

// Transitions returns how many zoom transitions have been observed.
func (zt *ZoomTracker) Transitions() int {
	return zt.transitions
}
