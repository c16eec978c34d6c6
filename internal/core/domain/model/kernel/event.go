package kernel

import "time"

// Event is a fact emitted by an aggregate. Delivery is the job of the
// ports.EventPublisher wired into the unit of work.
type Event struct {
	ID          UUID
	Name        string
	AggregateID UUID
	OccurredAt  time.Time
	Attributes  map[string]string
}

// EventRecorder is embedded by aggregates that emit events.
type EventRecorder struct {
	events []Event
}

func (r *EventRecorder) Record(name string, aggregateID UUID, at time.Time, attrs map[string]string) {
	r.events = append(r.events, Event{
		ID:          NewUUID(),
		Name:        name,
		AggregateID: aggregateID,
		OccurredAt:  at,
		Attributes:  attrs,
	})
}

// PullEvents returns the recorded events and clears the buffer.
func (r *EventRecorder) PullEvents() []Event {
	out := r.events
	r.events = nil
	return out
}
