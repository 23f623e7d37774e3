package model

import "time"

// EventKind names a notification emitted by the engine.
type EventKind string

const (
	EventStoreCreated  EventKind = "store.created"
	EventStoreOpened   EventKind = "store.opened"
	EventStoreClosed   EventKind = "store.closed"
	EventEntityCreated EventKind = "entity.created"
	EventEntityRenamed EventKind = "entity.renamed"
)

// EntityKind names the entity an event refers to.
type EntityKind string

const (
	EntityItemType EntityKind = "item_type"
	EntityPlace    EntityKind = "place"
	EntityItem     EntityKind = "item"
)

// Event carries enough data for a collaborator to render a status message.
type Event struct {
	Kind     EventKind  `json:"kind"`
	StoreID  string     `json:"store_id,omitempty"`
	Location string     `json:"location,omitempty"`
	Entity   EntityKind `json:"entity,omitempty"`
	ID       int64      `json:"id,omitempty"`
	Name     string     `json:"name,omitempty"`
	OldName  string     `json:"old_name,omitempty"`

	// Set for item creation.
	TypeName  string `json:"type_name,omitempty"`
	PlaceName string `json:"place_name,omitempty"`

	At time.Time `json:"at"`
}
