// Package ecs provides ECS adapters for carpenter's reaction dispatch.
//
// The primary adapter is [NewDonburiSink], which publishes a summary of
// every dispatched pointer and key event into a [Donburi] world as typed
// events. Subscribe to [ReactionEventType] in your ECS systems to receive
// them, or read the running totals from the [Stats] component.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	scene.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
