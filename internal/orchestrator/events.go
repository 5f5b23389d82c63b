package orchestrator

import (
	"time"

	"github.com/google/uuid"
)

// Event represents an orchestrator lifecycle event: tier_set, prepare,
// evict, evict_failed, active_expired.
type Event struct {
	ID      string
	Time    time.Time
	Name    string
	ModelID string
	Fields  map[string]any
}

// EventPublisher receives events from the orchestrator. Implementations
// should be lightweight and non-blocking; Publish must not panic.
type EventPublisher interface {
	Publish(Event)
}

// noopPublisher is the default; it drops events.
type noopPublisher struct{}

func (noopPublisher) Publish(Event) {}

func (o *Orchestrator) publish(name, model string, fields map[string]any) {
	if fields == nil {
		fields = map[string]any{}
	}
	o.publisher.Publish(Event{ID: uuid.NewString(), Time: o.now(), Name: name, ModelID: model, Fields: fields})
}
