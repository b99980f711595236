package system

import (
	"github.com/milk9111/vermarine/ecs"
	"github.com/milk9111/vermarine/physics"
)

// NewDefaultScheduler returns the per-frame system order used by the
// binaries: sync first so movement never sees bodies of dead entities.
func NewDefaultScheduler(pw *physics.World) *ecs.Scheduler {
	return ecs.NewScheduler(
		NewPhysicsSyncSystem(pw),
		NewPlayerControllerSystem(pw),
		NewScriptMoverSystem(pw),
		NewPickupCollectSystem(pw),
		NewTTLSystem(),
	)
}
