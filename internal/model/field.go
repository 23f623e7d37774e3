package model

// Field identifies an item attribute tracked by the change ledger.
type Field string

const (
	FieldCreated          Field = "created"
	FieldType             Field = "type"
	FieldName             Field = "name"
	FieldNote             Field = "note"
	FieldRegistrationCode Field = "registration_code"
	FieldPlace            Field = "place"
	FieldActive           Field = "active"
)

// Fields lists every tracked field in display order.
var Fields = []Field{
	FieldCreated,
	FieldType,
	FieldName,
	FieldNote,
	FieldRegistrationCode,
	FieldPlace,
	FieldActive,
}

// ParseField maps a stored or user-supplied field name to a Field.
func ParseField(s string) (Field, bool) {
	for _, f := range Fields {
		if string(f) == s {
			return f, true
		}
	}
	return "", false
}

// Label returns the display label for the field.
func (f Field) Label() string {
	switch f {
	case FieldCreated:
		return "Created"
	case FieldType:
		return "Item type"
	case FieldName:
		return "Name"
	case FieldNote:
		return "Note"
	case FieldRegistrationCode:
		return "INN"
	case FieldPlace:
		return "Place"
	case FieldActive:
		return "Active"
	}
	// Rows written by a newer schema.
	return "Unknown field"
}

// Updatable reports whether the field may be changed with a plain field
// update. Type is fixed at creation and activity only moves through
// deactivation.
func (f Field) Updatable() bool {
	switch f {
	case FieldName, FieldNote, FieldRegistrationCode, FieldPlace:
		return true
	}
	return false
}
