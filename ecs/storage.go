package ecs

// entityStore tracks entity generations and free indices.
type entityStore struct {
	nextID uint32
	gen    []uint32
	live   []bool
	free   []uint32
	count  int
}

func (s *entityStore) create() Entity {
	var id uint32
	if n := len(s.free); n > 0 {
		id = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		s.nextID++
		id = s.nextID
		for uint32(len(s.gen)) <= id {
			s.gen = append(s.gen, 0)
			s.live = append(s.live, false)
		}
	}
	s.live[id] = true
	s.count++
	return makeEntity(id, s.gen[id])
}

// destroy bumps the generation of e's index so every outstanding handle to
// it goes stale. Returns false when e is already dead.
func (s *entityStore) destroy(e Entity) bool {
	if !s.isAlive(e) {
		return false
	}
	id := e.Index()
	s.gen[id]++
	s.live[id] = false
	s.free = append(s.free, id)
	s.count--
	return true
}

func (s *entityStore) isAlive(e Entity) bool {
	id := e.Index()
	if id == 0 || int(id) >= len(s.gen) {
		return false
	}
	return s.live[id] && s.gen[id] == e.Generation()
}

func (s *entityStore) alive() []Entity {
	out := make([]Entity, 0, s.count)
	for id := 1; id < len(s.gen); id++ {
		if s.live[id] {
			out = append(out, makeEntity(uint32(id), s.gen[id]))
		}
	}
	return out
}
