package ecs

// Store is a container for one component type T.
// Uses the sparse set pattern: components are packed densely for iteration
// and located by entity through an index map.
type Store[T any] struct {
	index    map[Entity]int
	entities []Entity // entities[i] owns dense[i]
	dense    []T
}

// NewStore creates an empty store for T.
func NewStore[T any]() *Store[T] {
	return &Store[T]{
		index:    make(map[Entity]int),
		entities: make([]Entity, 0, 16),
		dense:    make([]T, 0, 16),
	}
}

// Set inserts or replaces the component for e.
func (s *Store[T]) Set(e Entity, val T) {
	if i, ok := s.index[e]; ok {
		s.dense[i] = val
		return
	}
	s.index[e] = len(s.dense)
	s.entities = append(s.entities, e)
	s.dense = append(s.dense, val)
}

// Get returns a copy of the component for e.
func (s *Store[T]) Get(e Entity) (T, bool) {
	i, ok := s.index[e]
	if !ok {
		var zero T
		return zero, false
	}
	return s.dense[i], true
}

// Ptr returns a pointer to the stored component for in-place mutation, or nil.
// The pointer is invalidated by the next Set of a new entity.
func (s *Store[T]) Ptr(e Entity) *T {
	i, ok := s.index[e]
	if !ok {
		return nil
	}
	return &s.dense[i]
}

// Has reports whether e has this component.
func (s *Store[T]) Has(e Entity) bool {
	_, ok := s.index[e]
	return ok
}

// Entities returns the entities that have this component.
// The slice is owned by the store; do not modify it or hold it across Set.
func (s *Store[T]) Entities() []Entity {
	return s.entities
}

// Len returns the number of entities with this component.
func (s *Store[T]) Len() int {
	return len(s.dense)
}
