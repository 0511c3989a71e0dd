// Package ecs bridges stun interaction events into a [Donburi] world.
//
// [NewDonburiStore] publishes every click, scroll, zoom transition and image
// load result as an [InteractionEventType] event. Systems subscribe to it and
// drain the queue with ProcessEvents, usually once per tick:
//
//	store := ecs.NewDonburiStore(world)
//	scene.SetEntityStore(store)
//	zoom := ecs.TrackZoom(world)
//	...
//	ecs.InteractionEventType.ProcessEvents(world)
//	if zoom.State() == stun.ZoomZoomed { ... }
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
