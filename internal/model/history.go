package model

import "time"

// HistoryEntry is one immutable field transition of one item. A nil value
// marks a field that had no value.
type HistoryEntry struct {
	ID        int64     `json:"id"`
	ItemID    int64     `json:"item_id"`
	Field     Field     `json:"field"`
	OldValue  *string   `json:"old_value"`
	NewValue  *string   `json:"new_value"`
	ChangedAt time.Time `json:"changed_at"`
}

// Activity selects items by their active flag.
type Activity int

const (
	// ActiveOnly is the zero value so a bare Criteria hides retired items.
	ActiveOnly Activity = iota
	AnyActivity
	InactiveOnly
)

// Criteria restricts an item listing. Zero IDs impose no restriction.
type Criteria struct {
	TypeID   int64    `json:"type_id,omitempty"`
	PlaceID  int64    `json:"place_id,omitempty"`
	Activity Activity `json:"activity"`
}
