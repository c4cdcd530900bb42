package events

import (
	"github.com/kelindar/event"
)

// Bus wraps kelindar/event dispatcher for event broadcasting
type Bus struct {
	dispatcher *event.Dispatcher
}

// New creates a new event bus
func New() *Bus {
	return &Bus{
		dispatcher: event.NewDispatcher(),
	}
}

// Publish publishes an event to all subscribers
// Usage: bus.Publish(StreamsRefreshedEvent{...})
func (b *Bus) Publish(ev Event) {
	// kelindar/event dispatches by concrete type, so fan out through a
	// type switch to call the generic Publish with the right type
	switch e := ev.(type) {
	case StreamsRefreshedEvent:
		event.Publish(b.dispatcher, e)
	case RoleSelectionChangedEvent:
		event.Publish(b.dispatcher, e)
	case PrebufferChangedEvent:
		event.Publish(b.dispatcher, e)
	case RoleResolvedEvent:
		event.Publish(b.dispatcher, e)
	case LogEntryEvent:
		event.Publish(b.dispatcher, e)
	}
}

// Subscribe subscribes to events with a handler function
// The handler type determines which events it receives (type inference)
// Returns an unsubscribe function
// Usage: unsub := bus.Subscribe(func(e StreamsRefreshedEvent) { ... })
func (b *Bus) Subscribe(handler any) func() {
	switch h := handler.(type) {
	case func(StreamsRefreshedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(RoleSelectionChangedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(PrebufferChangedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(RoleResolvedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(LogEntryEvent):
		return event.Subscribe(b.dispatcher, h)
	default:
		// Return a no-op function if handler type is not recognized
		return func() {}
	}
}
