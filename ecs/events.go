package ecs

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

const CollisionEventType = "collision"

// CollisionEventKind identifies collision event types.
type CollisionEventKind string

const (
	CollisionEventContact CollisionEventKind = "contact"
	CollisionEventPickup  CollisionEventKind = "pickup"
)

// CollisionEvent is emitted by systems reacting to physics overlaps.
type CollisionEvent struct {
	Entity Entity
	Other  Entity
	Kind   CollisionEventKind
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// PushCollision wraps evt in an Event of CollisionEventType.
func (q *EventQueue) PushCollision(evt CollisionEvent) {
	q.Push(Event{Type: CollisionEventType, Data: evt})
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}
