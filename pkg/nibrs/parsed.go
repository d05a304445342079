// =============================================================================
// NIBRS Flat File - Parsed Values and Slots
// =============================================================================
//
// Two small generic containers used by every segment type:
//
//   Parsed[T] : a typed field value that remembers whether the raw text was
//               blank (Missing) or failed coercion (Invalid).
//   Slots[T]  : a fixed-capacity, left-to-right filled collection for the
//               repeated field groups of the flat file (bias motivations,
//               weapon pairs, property triples, ...).
//
// =============================================================================

package nibrs

// =============================================================================
// PARSED VALUE
// =============================================================================

// Parsed holds the result of coercing a positional field.
//
// Exactly one of three states is possible:
//   - valid:   Value is set, Missing and Invalid are false
//   - missing: the raw field was blank
//   - invalid: the raw field was present but could not be coerced;
//              an Error was recorded for it
type Parsed[T any] struct {
	Value   T
	Missing bool
	Invalid bool
}

// ValueOf returns a valid Parsed holding v.
func ValueOf[T any](v T) Parsed[T] {
	return Parsed[T]{Value: v}
}

// MissingValue returns a Parsed for a blank field.
func MissingValue[T any]() Parsed[T] {
	return Parsed[T]{Missing: true}
}

// InvalidValue returns a Parsed for a field that failed coercion.
func InvalidValue[T any]() Parsed[T] {
	return Parsed[T]{Invalid: true}
}

// Valid reports whether the field holds a usable value.
func (p Parsed[T]) Valid() bool {
	return !p.Missing && !p.Invalid
}

// Get returns the value and whether it is usable.
func (p Parsed[T]) Get() (T, bool) {
	return p.Value, p.Valid()
}

// =============================================================================
// SLOTS
// =============================================================================

// Slots is an ordered collection with a fixed capacity.
//
// The flat file reserves a fixed number of positions for each repeated group.
// Slots are filled left to right; the builders stop at the first blank
// position, so Len is the number of populated positions.
type Slots[T any] struct {
	items    []T
	capacity int
}

// NewSlots returns an empty collection that accepts at most capacity items.
func NewSlots[T any](capacity int) Slots[T] {
	return Slots[T]{
		items:    make([]T, 0, capacity),
		capacity: capacity,
	}
}

// Append adds v in the next free position. It returns false, and leaves the
// collection unchanged, once every position is used.
func (s *Slots[T]) Append(v T) bool {
	if len(s.items) >= s.capacity {
		return false
	}
	s.items = append(s.items, v)
	return true
}

// Len returns the number of populated positions.
func (s Slots[T]) Len() int {
	return len(s.items)
}

// Cap returns the number of positions the layout reserves.
func (s Slots[T]) Cap() int {
	return s.capacity
}

// At returns the item in position i. It panics if i >= Len().
func (s Slots[T]) At(i int) T {
	return s.items[i]
}

// All returns a copy of the populated items.
func (s Slots[T]) All() []T {
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}
