package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/vermarine/ecs"
	"github.com/milk9111/vermarine/ecs/component"
	"github.com/milk9111/vermarine/physics"
)

// PlayerControllerSystem moves player bodies from their Input component and
// resolves them against solid colliders.
type PlayerControllerSystem struct {
	physics *physics.World
}

func NewPlayerControllerSystem(pw *physics.World) *PlayerControllerSystem {
	return &PlayerControllerSystem{physics: pw}
}

func (s *PlayerControllerSystem) Update(w *ecs.World) {
	if s == nil || s.physics == nil || w == nil {
		return
	}

	ecs.ForEach2(w, component.PlayerComponent.Kind(), component.InputComponent.Kind(), func(e ecs.Entity, player *component.Player, input *component.Input) {
		if !s.physics.Has(e) {
			return
		}
		delta := cp.Vector{X: input.MoveX, Y: input.MoveY}
		if delta.LengthSq() == 0 {
			return
		}
		if delta.LengthSq() > 1 {
			delta = delta.Normalize()
		}

		contacts := s.physics.MoveBodyAndCollide(e, delta.Mult(player.MoveSpeed))
		player.Contacts = len(contacts)
		for _, c := range contacts {
			w.Events().PushCollision(ecs.CollisionEvent{Entity: e, Other: c.Other, Kind: ecs.CollisionEventContact})
		}
	})
}
