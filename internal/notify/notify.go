// Package notify delivers engine events to log and message sinks.
package notify

import (
	"context"
	"fmt"
	"sync"

	"github.com/erazemk/evidenca/internal/model"
)

// Notifier receives events after the change they describe has committed.
// Delivery is best effort: a sink reports its own failures and never fails
// the operation that produced the event.
type Notifier interface {
	Notify(ctx context.Context, e model.Event)
}

// Discard drops every event.
var Discard Notifier = discard{}

type discard struct{}

func (discard) Notify(context.Context, model.Event) {}

// Multi fans an event out to every notifier in order.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, e model.Event) {
	for _, n := range m {
		n.Notify(ctx, e)
	}
}

// Recorder keeps every event it receives. It is safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	events []model.Event
}

func (r *Recorder) Notify(_ context.Context, e model.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []model.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.Event(nil), r.events...)
}

// Kinds returns the kinds of the recorded events in order.
func (r *Recorder) Kinds() []model.EventKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	kinds := make([]model.EventKind, 0, len(r.events))
	for _, e := range r.events {
		kinds = append(kinds, e.Kind)
	}
	return kinds
}

// Message renders the status line shown for an event.
func Message(e model.Event) string {
	switch e.Kind {
	case model.EventStoreCreated:
		return fmt.Sprintf("Store has been created @ %s.", e.Location)
	case model.EventStoreOpened:
		return fmt.Sprintf("Store is open @ %s.", e.Location)
	case model.EventStoreClosed:
		return "Store is closed."
	case model.EventEntityCreated:
		switch e.Entity {
		case model.EntityItem:
			return fmt.Sprintf("Item #%d of type '%s' in place '%s' is added with name '%s'",
				e.ID, e.TypeName, e.PlaceName, e.Name)
		default:
			return fmt.Sprintf("%s #%d is added with name '%s'", entityLabel(e.Entity), e.ID, e.Name)
		}
	case model.EventEntityRenamed:
		return fmt.Sprintf("%s #%d changes name to '%s'", entityLabel(e.Entity), e.ID, e.Name)
	}
	return string(e.Kind)
}

func entityLabel(k model.EntityKind) string {
	switch k {
	case model.EntityItemType:
		return "Item type"
	case model.EntityPlace:
		return "Place"
	case model.EntityItem:
		return "Item"
	}
	return string(k)
}
