package shared

import "context"

// EventHandler reacts to domain events. EventTypes narrows what the
// handler receives; an empty slice subscribes it to every event.
type EventHandler interface {
	Handle(ctx context.Context, event DomainEvent) error
	EventTypes() []string
}

// EventPublisher is the narrow dependency services hold to publish the
// events an aggregate raised once its transaction has committed.
type EventPublisher interface {
	Publish(ctx context.Context, events ...DomainEvent) error
}

// EventBus is the full bus surface wired up at startup
type EventBus interface {
	EventPublisher
	// Subscribe registers a handler; with no event types given the
	// handler's own EventTypes() decide what it receives
	Subscribe(handler EventHandler, eventTypes ...string)
	Unsubscribe(handler EventHandler)
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}
