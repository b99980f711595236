package ecs

import "github.com/milk9111/vermarine/ecs/component"

// Add attaches value to e, replacing any existing component of the kind.
func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value *T) error {
	if !kind.Valid() {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return component.ErrNilComponent
	}
	if !IsAlive(w, e) {
		return component.ErrEntityNotAlive
	}
	w.store(kind.ID(), true).Set(e, value)
	return nil
}

func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	v, ok := w.store(kind.ID(), false).Get(e).(*T)
	return v, ok
}

func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	return w.store(kind.ID(), false).Has(e)
}

func Remove[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	return w.store(kind.ID(), false).Remove(e)
}

// ForEach calls fn for every entity holding kind. fn may add, remove or
// destroy; entities that lose the component before their turn are skipped.
func ForEach[T any](w *World, kind component.ComponentKind[T], fn func(Entity, *T)) {
	s := w.store(kind.ID(), false)
	if s == nil || fn == nil {
		return
	}
	for _, e := range append([]Entity(nil), s.Entities()...) {
		if v, ok := s.Get(e).(*T); ok {
			fn(e, v)
		}
	}
}

// ForEach2 iterates entities that hold both kinds.
func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	sa := w.store(ka.ID(), false)
	sb := w.store(kb.ID(), false)
	if fn == nil {
		return
	}
	for _, e := range IntersectEntities(sa, sb) {
		a, okA := sa.Get(e).(*A)
		b, okB := sb.Get(e).(*B)
		if okA && okB {
			fn(e, a, b)
		}
	}
}

// First returns the first entity holding kind.
func First[T any](w *World, kind component.ComponentKind[T]) (Entity, bool) {
	ents := w.store(kind.ID(), false).Entities()
	if len(ents) == 0 {
		return 0, false
	}
	return ents[0], true
}

// Track enables removal and deletion bookkeeping for kind.
func Track[T any](w *World, kind component.ComponentKind[T]) {
	w.store(kind.ID(), true).Track()
}

// TakeRemoved drains the entities that had kind removed explicitly.
func TakeRemoved[T any](w *World, kind component.ComponentKind[T]) []Entity {
	return w.store(kind.ID(), false).TakeRemoved()
}

// TakeDeleted drains the destroyed entities that held kind.
func TakeDeleted[T any](w *World, kind component.ComponentKind[T]) []Entity {
	return w.store(kind.ID(), false).TakeDeleted()
}
