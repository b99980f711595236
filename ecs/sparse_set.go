package ecs

// SparseSet is a cache-friendly storage for components keyed by entity index.
// It stores components as `any`; generics.go provides the typed wrappers.
//
// A tracked set also remembers which entities lost the component, split the
// same way the physics world consumes them: explicit removals and removals
// caused by the entity being destroyed.
type SparseSet struct {
	denseEntities []Entity
	denseValues   []any
	sparse        []int

	tracking bool
	removed  []Entity
	deleted  []Entity
}

// Has returns true if the exact handle (index and generation) is stored.
func (s *SparseSet) Has(e Entity) bool {
	idx, ok := s.slot(e)
	return ok && s.denseEntities[idx] == e
}

func (s *SparseSet) slot(e Entity) (int, bool) {
	if s == nil {
		return -1, false
	}
	id := int(e.Index())
	if id <= 0 || id >= len(s.sparse) {
		return -1, false
	}
	idx := s.sparse[id]
	return idx, idx >= 0 && idx < len(s.denseEntities)
}

// Get returns the component for e, or nil.
func (s *SparseSet) Get(e Entity) any {
	if !s.Has(e) {
		return nil
	}
	return s.denseValues[s.sparse[e.Index()]]
}

// Set inserts or updates a component for e. A stored handle with the same
// index but another generation is replaced. Adding the component back
// cancels a removal of e that has not been taken yet.
func (s *SparseSet) Set(e Entity, v any) {
	if s == nil || !e.Valid() {
		return
	}
	id := int(e.Index())
	for id >= len(s.sparse) {
		s.sparse = append(s.sparse, -1)
	}
	if idx, ok := s.slot(e); ok {
		s.denseEntities[idx] = e
		s.denseValues[idx] = v
		return
	}
	s.denseEntities = append(s.denseEntities, e)
	s.denseValues = append(s.denseValues, v)
	s.sparse[id] = len(s.denseEntities) - 1
	if s.tracking {
		s.removed = without(s.removed, e)
	}
}

func without(ents []Entity, e Entity) []Entity {
	kept := ents[:0]
	for _, other := range ents {
		if other != e {
			kept = append(kept, other)
		}
	}
	if len(kept) == 0 {
		return nil
	}
	return kept
}

// Remove deletes the component for e if present.
func (s *SparseSet) Remove(e Entity) bool {
	if !s.take(e) {
		return false
	}
	if s.tracking {
		s.removed = append(s.removed, e)
	}
	return true
}

// drop is Remove for entities being destroyed.
func (s *SparseSet) drop(e Entity) bool {
	if !s.take(e) {
		return false
	}
	if s.tracking {
		s.deleted = append(s.deleted, e)
	}
	return true
}

func (s *SparseSet) take(e Entity) bool {
	if !s.Has(e) {
		return false
	}
	idx := s.sparse[e.Index()]
	last := len(s.denseEntities) - 1
	moved := s.denseEntities[last]

	s.denseEntities[idx] = moved
	s.denseValues[idx] = s.denseValues[last]
	s.sparse[moved.Index()] = idx

	s.denseValues[last] = nil
	s.denseEntities = s.denseEntities[:last]
	s.denseValues = s.denseValues[:last]
	s.sparse[e.Index()] = -1
	return true
}

// Track turns on removal bookkeeping. Calling it again is a no-op.
func (s *SparseSet) Track() {
	if s != nil {
		s.tracking = true
	}
}

// TakeRemoved returns the entities whose component was removed since the
// last call and clears the list.
func (s *SparseSet) TakeRemoved() []Entity {
	if s == nil || len(s.removed) == 0 {
		return nil
	}
	out := s.removed
	s.removed = nil
	return out
}

// TakeDeleted returns the destroyed entities that held the component since
// the last call and clears the list.
func (s *SparseSet) TakeDeleted() []Entity {
	if s == nil || len(s.deleted) == 0 {
		return nil
	}
	out := s.deleted
	s.deleted = nil
	return out
}

// Entities returns the dense entity list.
func (s *SparseSet) Entities() []Entity {
	if s == nil {
		return nil
	}
	return s.denseEntities
}

// Values returns the dense component list.
func (s *SparseSet) Values() []any {
	if s == nil {
		return nil
	}
	return s.denseValues
}

func (s *SparseSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.denseEntities)
}
