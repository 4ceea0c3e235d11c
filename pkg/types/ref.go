package types

import (
	"bytes"
	"encoding/json"
)

// Ref is a reference to an entity that the API sometimes returns as a bare
// identifier and sometimes as a fully populated object. A registration's
// event field, for example, arrives populated from the admin endpoints and
// as a plain id from the user-facing ones. Ref decodes both shapes so
// consuming code never branches on the wire format.
type Ref[T any] struct {
	id    string
	value *T
}

// NewRef creates an unresolved reference to the entity with the given id.
func NewRef[T any](id string) Ref[T] {
	return Ref[T]{id: id}
}

// ResolvedRef creates a resolved reference carrying both id and entity.
func ResolvedRef[T any](id string, value T) Ref[T] {
	return Ref[T]{id: id, value: &value}
}

// ID returns the referenced entity's identifier. It is available for both
// the bare-id and the populated shape.
func (r Ref[T]) ID() string {
	return r.id
}

// Value returns the populated entity and whether the reference is resolved.
func (r Ref[T]) Value() (T, bool) {
	if r.value == nil {
		var zero T
		return zero, false
	}
	return *r.value, true
}

// IsResolved reports whether the reference carries a populated entity.
func (r Ref[T]) IsResolved() bool {
	return r.value != nil
}

// IsZero reports whether the reference is empty.
func (r Ref[T]) IsZero() bool {
	return r.id == "" && r.value == nil
}

// UnmarshalJSON implements json.Unmarshaler. Accepted shapes:
// a JSON string (bare id), a JSON object with an "id" field (populated
// entity), or null.
func (r *Ref[T]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*r = Ref[T]{}
		return nil
	}

	if data[0] == '"' {
		return json.Unmarshal(data, &r.id)
	}

	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	r.value = &value

	// Pull the id out of the raw object so ID() works on both shapes.
	var ident struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(data, &ident); err == nil {
		r.id = ident.ID
	}
	return nil
}

// MarshalJSON implements json.Marshaler, reproducing the wire shape the
// reference was decoded from.
func (r Ref[T]) MarshalJSON() ([]byte, error) {
	if r.value != nil {
		return json.Marshal(r.value)
	}
	if r.id == "" {
		return []byte("null"), nil
	}
	return json.Marshal(r.id)
}
