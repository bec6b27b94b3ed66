// Package kernel defines the common capability set every aggregate
// implements: identity, a FIFO queue of newly produced events, and the
// validate-then-apply command contract. There is no deep trait
// hierarchy here (Id/Event/Entity/Aggregation in the source this was
// ported from collapse into this single interface) because Go's lack of
// variance makes a generic event-sum type awkward; each aggregate
// package still implements this interface concretely.
package kernel

import "github.com/kuraya-dely/dely/internal/domain/core"

// Event is the marker interface every per-aggregate event variant
// implements. Concrete event types additionally carry an EventType()
// string used by the envelope codec.
type Event interface {
	// EventType returns the on-wire variant tag, e.g. "ExtraServiceCreated".
	EventType() string
}

// Entity is the capability set a repository needs from an aggregate:
// identity and the uncommitted-event queue. Command methods (Create,
// ChangeName, ...) are aggregate-specific and are not part of this
// interface.
type Entity interface {
	// ID returns the aggregate's identifier as a raw core.ID.
	ID() core.ID
	// Events returns the uncommitted event queue, read-only.
	Events() []Event
	// Peek returns the first queued event without removing it.
	Peek() (Event, bool)
	// Pop removes and returns the first queued event (FIFO).
	Pop() (Event, bool)
	// PopAll drains and returns the entire queue in order.
	PopAll() []Event
	// Clear empties the queue without returning its contents. Callers
	// that replay history into a default-constructed aggregate MUST
	// call Clear before handing the aggregate back, so the repository
	// does not re-append history as if it were new.
	Clear()
}

// AggregateRoot is Entity plus the Apply mutation every repository
// drives during replay. Apply is total and does not re-validate: the
// command path validates first, replay trusts stored history.
type AggregateRoot interface {
	Entity
	Apply(Event)
}

// Queue is an embeddable FIFO of uncommitted events, reused by every
// aggregate's concrete struct.
type Queue struct {
	events []Event
}

// Events returns the queue contents, read-only.
func (q *Queue) Events() []Event {
	return q.events
}

// Peek returns the first queued event without removing it.
func (q *Queue) Peek() (Event, bool) {
	if len(q.events) == 0 {
		return nil, false
	}
	return q.events[0], true
}

// Pop removes and returns the first queued event.
func (q *Queue) Pop() (Event, bool) {
	if len(q.events) == 0 {
		return nil, false
	}
	e := q.events[0]
	q.events = q.events[1:]
	return e, true
}

// PopAll drains and returns every queued event in order.
func (q *Queue) PopAll() []Event {
	all := q.events
	q.events = nil
	return all
}

// Clear empties the queue.
func (q *Queue) Clear() {
	q.events = nil
}

// Push appends an event to the tail of the queue. Aggregates call this
// from Apply after mutating state.
func (q *Queue) Push(e Event) {
	q.events = append(q.events, e)
}
