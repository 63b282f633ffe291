package domain

import "encoding/json"

// Entity is anything persisted under a storage-assigned integer ID.
type Entity interface {
	Key() int64
}

// Refs is a link set to related aggregates. It is built either from bare
// IDs (RefIDs) or from hydrated aggregates (RefsOf); the zero value is an
// empty ID set.
type Refs[T Entity] struct {
	ids      []int64
	items    []T
	resolved bool
}

// RefIDs builds a link set from bare IDs.
func RefIDs[T Entity](ids ...int64) Refs[T] {
	return Refs[T]{ids: append([]int64(nil), ids...)}
}

// RefsOf builds a link set from aggregates.
func RefsOf[T Entity](items ...T) Refs[T] {
	return Refs[T]{items: append([]T(nil), items...), resolved: true}
}

// IDs normalizes the set to the IDs of the linked aggregates.
func (r Refs[T]) IDs() []int64 {
	if !r.resolved {
		return append([]int64(nil), r.ids...)
	}
	ids := make([]int64, len(r.items))
	for i, item := range r.items {
		ids[i] = item.Key()
	}
	return ids
}

// Items returns the linked aggregates. ok is false when the set was built
// from bare IDs.
func (r Refs[T]) Items() (items []T, ok bool) {
	if !r.resolved {
		return nil, false
	}
	return append([]T(nil), r.items...), true
}

// Resolved reports whether the set carries hydrated aggregates.
func (r Refs[T]) Resolved() bool {
	return r.resolved
}

// Len returns the number of links.
func (r Refs[T]) Len() int {
	if r.resolved {
		return len(r.items)
	}
	return len(r.ids)
}

func (r Refs[T]) MarshalJSON() ([]byte, error) {
	if r.resolved {
		if r.items == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(r.items)
	}
	if r.ids == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(r.ids)
}
