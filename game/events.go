package game

// EventType names a lifecycle event.
type EventType string

// Lifecycle events, emitted after the state change they announce.
const (
	EventBuilt          EventType = "built"
	EventInit           EventType = "init"
	EventParticlesSetup EventType = "particles-setup"
	EventStarted        EventType = "started"
	EventPaused         EventType = "paused"
	EventPlayed         EventType = "played"
	EventStopped        EventType = "stopped"
	EventDestroyed      EventType = "destroyed"
)

// Event is delivered to subscribers.
type Event struct {
	Type      EventType
	Container *Container
}

type subscriber struct {
	id int
	fn func(Event)
}

// eventBus dispatches events to subscribers in subscription order.
type eventBus struct {
	nextID int
	subs   map[EventType][]subscriber
}

// subscribe registers fn and returns a function that removes it.
func (b *eventBus) subscribe(t EventType, fn func(Event)) func() {
	if b.subs == nil {
		b.subs = make(map[EventType][]subscriber)
	}
	b.nextID++
	id := b.nextID
	b.subs[t] = append(b.subs[t], subscriber{id: id, fn: fn})

	return func() {
		subs := b.subs[t]
		for i, s := range subs {
			if s.id == id {
				b.subs[t] = append(subs[:i:i], subs[i+1:]...)
				return
			}
		}
	}
}

func (b *eventBus) emit(e Event) {
	// Copy so handlers may unsubscribe while being called
	subs := append([]subscriber(nil), b.subs[e.Type]...)
	for _, s := range subs {
		s.fn(e)
	}
}
