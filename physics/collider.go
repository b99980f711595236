package physics

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/vermarine/ecs"
)

// Collider is a shape plus its layer filtering. It reacts to another
// collider when CollidesWith shares a bit with the other's CollisionLayer;
// the relation is not symmetric.
type Collider struct {
	Shape          Shape
	CollisionLayer uint64
	CollidesWith   uint64
	// Overlapping holds the collisions recorded from this collider's side.
	Overlapping []Collision
}

func NewCircleCollider(radius float64, layer, collidesWith uint64) Collider {
	return Collider{Shape: Circle(radius), CollisionLayer: layer, CollidesWith: collidesWith}
}

// HalfExtents builds an axis-aligned box centred on the body origin.
func HalfExtents(halfWidth, halfHeight float64, layer, collidesWith uint64) Collider {
	return Collider{
		Shape: Polygon(
			cp.Vector{X: -halfWidth, Y: -halfHeight},
			cp.Vector{X: halfWidth, Y: -halfHeight},
			cp.Vector{X: halfWidth, Y: halfHeight},
			cp.Vector{X: -halfWidth, Y: halfHeight},
		),
		CollisionLayer: layer,
		CollidesWith:   collidesWith,
	}
}

func NewPolygonCollider(vertices []cp.Vector, layer, collidesWith uint64) Collider {
	return Collider{Shape: Polygon(vertices...), CollisionLayer: layer, CollidesWith: collidesWith}
}

// ReactsTo reports whether c records collisions against other.
func (c *Collider) ReactsTo(other *Collider) bool {
	return c.CollidesWith&other.CollisionLayer != 0
}

// Copy returns the same shape and layers with an empty overlap list.
func (c Collider) Copy() Collider {
	return Collider{Shape: c.Shape.Clone(), CollisionLayer: c.CollisionLayer, CollidesWith: c.CollidesWith}
}

// OverlapsWith reports whether a recorded collision references e.
func (c *Collider) OverlapsWith(e ecs.Entity) bool {
	for i := range c.Overlapping {
		if c.Overlapping[i].Other == e {
			return true
		}
	}
	return false
}

func (c *Collider) removeCollisionsWith(e ecs.Entity) {
	kept := c.Overlapping[:0]
	for _, col := range c.Overlapping {
		if col.Other != e {
			kept = append(kept, col)
		}
	}
	clear(c.Overlapping[len(kept):])
	c.Overlapping = kept
}
