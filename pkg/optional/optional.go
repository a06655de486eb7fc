// Package optional provides a tri-state JSON field that distinguishes an
// absent key, an explicit null, and a concrete value. It backs partial
// update requests where "not supplied" means keep and "null" means clear.
package optional

import "encoding/json"

// Field is a JSON value that records whether the key appeared in the
// payload and whether it was null. The zero value means "absent".
type Field[T any] struct {
	value   T
	present bool
	null    bool
}

// Of returns a present, non-null Field holding v.
func Of[T any](v T) Field[T] {
	return Field[T]{value: v, present: true}
}

// Null returns a present Field that was explicitly null.
func Null[T any]() Field[T] {
	return Field[T]{present: true, null: true}
}

// Present reports whether the key appeared in the payload at all.
func (f Field[T]) Present() bool { return f.present }

// IsNull reports whether the key was supplied as an explicit null.
func (f Field[T]) IsNull() bool { return f.present && f.null }

// Value returns the decoded value and whether one was supplied (present and
// not null).
func (f Field[T]) Value() (T, bool) {
	return f.value, f.present && !f.null
}

func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.present = true
	if string(data) == "null" {
		f.null = true
		return nil
	}
	return json.Unmarshal(data, &f.value)
}

func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.present || f.null {
		return []byte("null"), nil
	}
	return json.Marshal(f.value)
}
