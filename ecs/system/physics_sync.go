package system

import (
	"github.com/milk9111/vermarine/ecs"
	"github.com/milk9111/vermarine/ecs/component"
	"github.com/milk9111/vermarine/physics"
)

// PhysicsSyncSystem drops bodies whose entity was destroyed or lost its
// PhysicsBody component since the previous frame. Run it before anything
// that moves bodies.
type PhysicsSyncSystem struct {
	physics *physics.World
}

func NewPhysicsSyncSystem(pw *physics.World) *PhysicsSyncSystem {
	return &PhysicsSyncSystem{physics: pw}
}

func (s *PhysicsSyncSystem) Update(w *ecs.World) {
	if s == nil || s.physics == nil || w == nil {
		return
	}
	kind := component.PhysicsBodyComponent.Kind()
	s.physics.Sync(ecs.TakeRemoved(w, kind), ecs.TakeDeleted(w, kind))
}
