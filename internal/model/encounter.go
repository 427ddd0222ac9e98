package model

// EncounterType is the role an encounter plays in a quest's lifecycle.
// Declaration order is display order.
type EncounterType uint8

const (
	Unless EncounterType = iota
	Gain
	When
	Complete
	Lose

	numEncounterTypes = int(Lose) + 1
)

// EncounterTypes lists every EncounterType in declared order.
var EncounterTypes = [numEncounterTypes]EncounterType{Unless, Gain, When, Complete, Lose}

var encounterTags = [numEncounterTypes]string{"unless", "gain", "when", "complete", "lose"}

// CSV returns the interchange tag of et.
func (et EncounterType) CSV() string {
	if !et.Valid() {
		return ""
	}
	return encounterTags[et]
}

func (et EncounterType) String() string { return et.CSV() }

// Valid reports whether et is one of the declared values.
func (et EncounterType) Valid() bool { return int(et) < numEncounterTypes }

// ParseEncounterType parses an interchange tag.
func ParseEncounterType(s string) (EncounterType, bool) {
	for i, tag := range encounterTags {
		if tag == s {
			return EncounterType(i), true
		}
	}
	return 0, false
}

// EncounterMap is a small map keyed by EncounterType. It is backed by a
// fixed array, so iteration always follows the declared type order.
type EncounterMap[T any] struct {
	set [numEncounterTypes]bool
	val [numEncounterTypes]T
}

// Get returns the value for et.
func (m *EncounterMap[T]) Get(et EncounterType) (T, bool) {
	return m.val[et], m.set[et]
}

// Ptr returns a pointer to the stored value for et, nil when absent.
func (m *EncounterMap[T]) Ptr(et EncounterType) *T {
	if !m.set[et] {
		return nil
	}
	return &m.val[et]
}

// Contains reports whether et is present.
func (m *EncounterMap[T]) Contains(et EncounterType) bool { return m.set[et] }

// Set inserts or replaces the value for et.
func (m *EncounterMap[T]) Set(et EncounterType, v T) {
	m.set[et] = true
	m.val[et] = v
}

// Remove deletes et and reports whether it was present.
func (m *EncounterMap[T]) Remove(et EncounterType) bool {
	was := m.set[et]
	var zero T
	m.set[et] = false
	m.val[et] = zero
	return was
}

// Clear removes all entries.
func (m *EncounterMap[T]) Clear() {
	*m = EncounterMap[T]{}
}

// Len returns the number of entries.
func (m *EncounterMap[T]) Len() int {
	n := 0
	for _, ok := range m.set {
		if ok {
			n++
		}
	}
	return n
}

// IsEmpty reports whether the map has no entries.
func (m *EncounterMap[T]) IsEmpty() bool { return m.Len() == 0 }

// Keys returns the present types in declared order.
func (m *EncounterMap[T]) Keys() []EncounterType {
	var keys []EncounterType
	for _, et := range EncounterTypes {
		if m.set[et] {
			keys = append(keys, et)
		}
	}
	return keys
}

// Each calls fn for every entry in declared order. fn may modify the value.
func (m *EncounterMap[T]) Each(fn func(et EncounterType, v *T)) {
	for _, et := range EncounterTypes {
		if m.set[et] {
			fn(et, &m.val[et])
		}
	}
}
