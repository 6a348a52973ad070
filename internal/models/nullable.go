package models

import "github.com/guregu/null/v5"

// Null is a request field that tells an absent key (Set false) apart from an
// explicit JSON null (Set true, Valid false).
type Null[T any] struct {
	V     T
	Valid bool
	Set   bool
}

func NullFrom[T any](v T) Null[T] {
	return Null[T]{V: v, Valid: true, Set: true}
}

// Cleared is an explicit null.
func Cleared[T any]() Null[T] {
	return Null[T]{Set: true}
}

func (n *Null[T]) UnmarshalJSON(data []byte) error {
	var inner null.Value[T]
	if err := inner.UnmarshalJSON(data); err != nil {
		return err
	}
	n.V, n.Valid, n.Set = inner.V, inner.Valid, true
	return nil
}

// Assignment returns the column value for an update: the value itself, or
// nil when the field was explicitly nulled.
func (n Null[T]) Assignment() any {
	if !n.Valid {
		return nil
	}
	return n.V
}
