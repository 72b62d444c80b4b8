package ecs

import (
	"github.com/phanxgames/carpenter"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// ReactionEventType is the Donburi event type for carpenter dispatches.
var ReactionEventType = events.NewEventType[carpenter.ReactionEvent]()

// DispatchStats holds running totals over every forwarded dispatch.
type DispatchStats struct {
	Events  int
	Stopped int
	Skipped int
	// PerKind counts events by carpenter.EventKind.
	PerKind map[carpenter.EventKind]int
}

// Stats is the component carrying DispatchStats on the sink's entity.
var Stats = donburi.NewComponentType[DispatchStats]()

// DonburiSink is a carpenter.EventSink backed by a Donburi world.
type DonburiSink struct {
	world  donburi.World
	entity donburi.Entity
}

// NewDonburiSink creates a sink publishing to ReactionEventType. Events are
// queued until consumed with ProcessEvents. The sink also creates one
// entity holding a Stats component.
func NewDonburiSink(world donburi.World) *DonburiSink {
	e := world.Create(Stats)
	Stats.SetValue(world.Entry(e), DispatchStats{PerKind: make(map[carpenter.EventKind]int)})
	return &DonburiSink{world: world, entity: e}
}

// Entity returns the entity holding the Stats component.
func (s *DonburiSink) Entity() donburi.Entity { return s.entity }

// Stats returns the running totals.
func (s *DonburiSink) Stats() *DispatchStats {
	return Stats.Get(s.world.Entry(s.entity))
}

// EmitEvent implements carpenter.EventSink.
func (s *DonburiSink) EmitEvent(event carpenter.ReactionEvent) {
	st := s.Stats()
	st.Events++
	st.Skipped += event.Skipped
	if event.Stopped {
		st.Stopped++
	}
	st.PerKind[event.Kind]++
	ReactionEventType.Publish(s.world, event)
}
