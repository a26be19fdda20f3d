package domain

import (
	"bytes"
	"encoding/json"
)

// Field is a tri-state request value: absent, explicitly null, or set.
// Collapsing it into a plain pointer would lose the absent/null distinction.
type Field[T any] struct {
	Present bool
	Null    bool
	Value   T
}

// Set returns a present, non-null field.
func Set[T any](v T) Field[T] {
	return Field[T]{Present: true, Value: v}
}

// Null returns a present field holding an explicit null.
func Null[T any]() Field[T] {
	return Field[T]{Present: true, Null: true}
}

// Get returns the value when the field is present and not null.
func (f Field[T]) Get() (T, bool) {
	if !f.Present || f.Null {
		var zero T
		return zero, false
	}
	return f.Value, true
}

// Ptr returns nil for absent or null fields.
func (f Field[T]) Ptr() *T {
	v, ok := f.Get()
	if !ok {
		return nil
	}
	return &v
}

func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Present = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		f.Null = true
		var zero T
		f.Value = zero
		return nil
	}
	f.Null = false
	return json.Unmarshal(data, &f.Value)
}

func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.Present || f.Null {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}
