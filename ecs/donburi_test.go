package ecs

import (
	"testing"
	"time"

	"github.com/phanxgames/stun"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestNewDonburiStore(t *testing.T) {
	world := donburi.NewWorld()
	var store stun.EntityStore = NewDonburiStore(world)
	if store == nil {
		t.Fatal("NewDonburiStore returned nil")
	}
}

func TestDonburiStore_EmitEvent(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var received []stun.InteractionEvent
	InteractionEventType.Subscribe(world, func(w donburi.World, e stun.InteractionEvent) {
		received = append(received, e)
	})

	store.EmitEvent(stun.InteractionEvent{
		Type:     stun.EventClick,
		EntityID: 42,
		GlobalX:  100,
		GlobalY:  200,
		Button:   stun.MouseButtonLeft,
	})
	store.EmitEvent(stun.InteractionEvent{
		Type:    stun.EventScroll,
		ScrollY: 80,
	})

	// Events are queued until processed.
	if len(received) != 0 {
		t.Fatalf("received %d events before ProcessEvents", len(received))
	}
	InteractionEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	if e := received[0]; e.Type != stun.EventClick || e.EntityID != 42 || e.GlobalX != 100 || e.GlobalY != 200 {
		t.Errorf("event 0: %+v", e)
	}
	if e := received[1]; e.Type != stun.EventScroll || e.ScrollY != 80 {
		t.Errorf("event 1: %+v", e)
	}
}

func TestDonburiStore_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var count1, count2 int
	InteractionEventType.Subscribe(world, func(w donburi.World, e stun.InteractionEvent) {
		count1++
	})
	InteractionEventType.Subscribe(world, func(w donburi.World, e stun.InteractionEvent) {
		count2++
	})

	store.EmitEvent(stun.InteractionEvent{Type: stun.EventClick})
	events.ProcessAllEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both subscribers called once, got %d and %d", count1, count2)
	}
}

func TestZoomTracker_IgnoresOtherEvents(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)
	zt := TrackZoom(world)

	store.EmitEvent(stun.InteractionEvent{Type: stun.EventClick, EntityID: 3})
	store.EmitEvent(stun.InteractionEvent{Type: stun.EventZoomState, EntityID: 7, From: stun.ZoomIdle, To: stun.ZoomZooming})
	InteractionEventType.ProcessEvents(world)

	if zt.Transitions() != 1 {
		t.Fatalf("Transitions = %d, want 1", zt.Transitions())
	}
	if zt.State() != stun.ZoomZooming || zt.EntityID() != 7 {
		t.Errorf("tracker = (%v, %d), want (zooming, 7)", zt.State(), zt.EntityID())
	}
}

func TestZoomTracker_FollowsScene(t *testing.T) {
	world := donburi.NewWorld()
	zt := TrackZoom(world)

	s := stun.NewScene(stun.DefaultConfig())
	s.SetEntityStore(NewDonburiStore(world))
	img := stun.NewElement("img", "photo")
	img.X, img.Y = 50, 50
	img.Width, img.Height = 200, 100
	img.EntityID = 9
	s.Root().AddChild(img)

	if _, err := s.RegisterZoomBehavior("img"); err != nil {
		t.Fatal(err)
	}

	step := 10 * time.Millisecond
	s.InjectClick(100, 100)
	s.Step(step)
	s.Step(step)
	InteractionEventType.ProcessEvents(world)
	if zt.State() != stun.ZoomZooming || zt.EntityID() != 9 {
		t.Fatalf("after click: tracker = (%v, %d), want (zooming, 9)", zt.State(), zt.EntityID())
	}

	for range 40 {
		s.Step(step)
	}
	InteractionEventType.ProcessEvents(world)
	if zt.State() != stun.ZoomZoomed {
		t.Fatalf("after animation: tracker = %v, want zoomed", zt.State())
	}
	if zt.Transitions() != 2 {
		t.Errorf("Transitions = %d, want 2", zt.Transitions())
	}
}
