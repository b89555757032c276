package entity

import "encoding/json"

// Patch is a tri-state JSON field for partial updates. It distinguishes a
// field the caller did not send (leave unchanged) from an explicit null
// (clear the field) from a value (overwrite).
type Patch[T any] struct {
	set   bool
	null  bool
	value T
}

// PatchValue builds a set, non-null patch. Mostly useful in tests.
func PatchValue[T any](v T) Patch[T] {
	return Patch[T]{set: true, value: v}
}

// PatchNull builds an explicit-null patch.
func PatchNull[T any]() Patch[T] {
	return Patch[T]{set: true, null: true}
}

func (p *Patch[T]) UnmarshalJSON(data []byte) error {
	// Reset before decoding: the same Patch may be unmarshaled into more
	// than once, and stale null/value state must not leak between decodes.
	var zero T
	p.set = true
	p.null = false
	p.value = zero
	if string(data) == "null" {
		p.null = true
		return nil
	}
	return json.Unmarshal(data, &p.value)
}

// IsSet reports whether the field was present in the request body.
func (p Patch[T]) IsSet() bool { return p.set }

// IsNull reports whether the field was sent as an explicit null.
func (p Patch[T]) IsNull() bool { return p.set && p.null }

// Value returns the patch value; valid only when IsSet and not IsNull.
func (p Patch[T]) Value() T { return p.value }

// Apply merges the patch into a nullable target field.
func (p Patch[T]) Apply(target **T) {
	if !p.set {
		return
	}
	if p.null {
		*target = nil
		return
	}
	v := p.value
	*target = &v
}

// ApplyRequired merges the patch into a non-nullable target field. An
// explicit null is ignored, since required columns cannot be cleared.
func (p Patch[T]) ApplyRequired(target *T) {
	if !p.set || p.null {
		return
	}
	*target = p.value
}
