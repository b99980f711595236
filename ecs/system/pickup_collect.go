package system

import (
	"github.com/milk9111/vermarine/ecs"
	"github.com/milk9111/vermarine/ecs/component"
	"github.com/milk9111/vermarine/physics"
)

// PickupCollectSystem destroys pickups whose body overlaps the player and
// credits the player's score.
type PickupCollectSystem struct {
	physics *physics.World
}

func NewPickupCollectSystem(pw *physics.World) *PickupCollectSystem {
	return &PickupCollectSystem{physics: pw}
}

func (s *PickupCollectSystem) Update(w *ecs.World) {
	if s == nil || s.physics == nil || w == nil {
		return
	}

	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}

	ecs.ForEach2(w, component.PickupComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, pickup *component.Pickup, _ *component.PhysicsBody) {
		if !s.physics.Has(e) || !touches(s.physics.Collider(e), player) {
			return
		}

		if p, ok := ecs.Get(w, player, component.PlayerComponent.Kind()); ok {
			p.Score += pickup.Value
		}
		w.Events().PushCollision(ecs.CollisionEvent{Entity: player, Other: e, Kind: ecs.CollisionEventPickup})
		ecs.DestroyEntity(w, e)
	})
}

func touches(body *physics.CollisionBody, other ecs.Entity) bool {
	for i := range body.Sensors {
		if body.Sensors[i].OverlapsWith(other) {
			return true
		}
	}
	for i := range body.Colliders {
		if body.Colliders[i].OverlapsWith(other) {
			return true
		}
	}
	return false
}
