package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// ItemType is the category an item belongs to.
type ItemType struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Place is a physical storage location.
type Place struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Item is a tracked asset. Note and RegistrationCode are nil when absent.
// TypeID is fixed at creation.
type Item struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	Note             *string   `json:"note"`
	RegistrationCode *string   `json:"registration_code"`
	TypeID           int64     `json:"type_id"`
	PlaceID          int64     `json:"place_id"`
	Active           bool      `json:"active"`
	CreatedAt        time.Time `json:"created_at"`

	// Joined fields.
	TypeName  string `json:"type_name"`
	PlaceName string `json:"place_name"`
}

// Labels for the active field as stored in history.
const (
	ActiveLabel   = "active"
	InactiveLabel = "inactive"
)

// ActivityLabel returns the stored label for an active flag.
func ActivityLabel(active bool) string {
	if active {
		return ActiveLabel
	}
	return InactiveLabel
}

// Optional returns nil for an empty string, otherwise a pointer to s.
func Optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Deref returns the pointed-to string or "" when absent.
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ItemSnapshot is the state recorded by an item's creation entry. References
// are recorded by name so history stays readable after renames.
type ItemSnapshot struct {
	Type             string  `json:"type"`
	Name             string  `json:"name"`
	Place            string  `json:"place"`
	Note             *string `json:"note"`
	RegistrationCode *string `json:"registration_code"`
	Active           bool    `json:"active"`
}

// SnapshotOf captures item's current state. The joined names must be set.
func SnapshotOf(item Item) ItemSnapshot {
	return ItemSnapshot{
		Type:             item.TypeName,
		Name:             item.Name,
		Place:            item.PlaceName,
		Note:             item.Note,
		RegistrationCode: item.RegistrationCode,
		Active:           item.Active,
	}
}

// Encode returns the canonical string form stored in history.
func (s ItemSnapshot) Encode() string {
	data, err := json.Marshal(s)
	if err != nil {
		// Only strings and bools; Marshal cannot fail.
		panic(fmt.Sprintf("encoding item snapshot: %v", err))
	}
	return string(data)
}

// ParseSnapshot decodes a creation entry's new value.
func ParseSnapshot(value string) (ItemSnapshot, error) {
	var s ItemSnapshot
	if err := json.Unmarshal([]byte(value), &s); err != nil {
		return ItemSnapshot{}, fmt.Errorf("decoding item snapshot: %w", err)
	}
	return s, nil
}
