package physics

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/vermarine/ecs"
)

// Collision is a snapshot of one overlap taken when it was detected. Side 1
// is the collider that owns the record, side 2 is Other's collider. Normal
// is unit length and points from body 2 towards body 1, including for
// shapes that only touch.
type Collision struct {
	Transform1      Transform
	Shape1          Shape
	CollidesWith1   uint64
	CollisionLayer1 uint64

	Transform2      Transform
	Shape2          Shape
	CollidesWith2   uint64
	CollisionLayer2 uint64

	Other  ecs.Entity
	Normal cp.Vector
}

func newCollision(t1 Transform, c1 *Collider, t2 Transform, c2 *Collider, other ecs.Entity, normal cp.Vector) Collision {
	return Collision{
		Transform1:      t1,
		Shape1:          c1.Shape.Clone(),
		CollidesWith1:   c1.CollidesWith,
		CollisionLayer1: c1.CollisionLayer,
		Transform2:      t2,
		Shape2:          c2.Shape.Clone(),
		CollidesWith2:   c2.CollidesWith,
		CollisionLayer2: c2.CollisionLayer,
		Other:           other,
		Normal:          normal,
	}
}
