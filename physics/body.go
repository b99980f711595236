package physics

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/vermarine/ecs"
)

// AABB is a body-local bounding box: the min corner offset from the body
// origin plus its size.
type AABB struct {
	DX, DY        float64
	Width, Height float64
}

// World returns the box in world space for a body at t.
func (a AABB) World(t Transform) cp.BB {
	l := t.X + a.DX
	b := t.Y + a.DY
	return cp.BB{L: l, B: b, R: l + a.Width, T: b + a.Height}
}

func boundsOf(groups ...[]Collider) AABB {
	min := cp.Vector{X: math.Inf(1), Y: math.Inf(1)}
	max := cp.Vector{X: math.Inf(-1), Y: math.Inf(-1)}
	found := false
	for _, group := range groups {
		for i := range group {
			lo, hi, ok := group[i].Shape.Bounds()
			if !ok {
				continue
			}
			found = true
			min.X = math.Min(min.X, lo.X)
			min.Y = math.Min(min.Y, lo.Y)
			max.X = math.Max(max.X, hi.X)
			max.Y = math.Max(max.Y, hi.Y)
		}
	}
	if !found {
		return AABB{}
	}
	return AABB{DX: min.X, DY: min.Y, Width: max.X - min.X, Height: max.Y - min.Y}
}

// CollisionBody groups the colliders and sensors of one entity. Colliders
// are solid and take part in push-out; sensors only detect. The AABB is
// computed once at construction and is not updated if shapes are replaced.
type CollisionBody struct {
	Colliders []Collider
	Sensors   []Collider
	aabb      AABB
}

func FromCollider(c Collider) CollisionBody {
	return FromParts([]Collider{c}, nil)
}

func FromColliders(colliders []Collider) CollisionBody {
	return FromParts(colliders, nil)
}

func FromSensor(s Collider) CollisionBody {
	return FromParts(nil, []Collider{s})
}

func FromSensors(sensors []Collider) CollisionBody {
	return FromParts(nil, sensors)
}

// FromParts builds a body with both colliders and sensors.
func FromParts(colliders, sensors []Collider) CollisionBody {
	return CollisionBody{
		Colliders: colliders,
		Sensors:   sensors,
		aabb:      boundsOf(colliders, sensors),
	}
}

// Clone copies shapes and layers into a new body with empty overlap lists.
func (b *CollisionBody) Clone() CollisionBody {
	return FromParts(copyColliders(b.Colliders), copyColliders(b.Sensors))
}

func (b *CollisionBody) AABB() AABB {
	return b.aabb
}

// Overlapping returns every record held by the body's colliders and sensors.
func (b *CollisionBody) Overlapping() []Collision {
	var out []Collision
	for i := range b.Colliders {
		out = append(out, b.Colliders[i].Overlapping...)
	}
	for i := range b.Sensors {
		out = append(out, b.Sensors[i].Overlapping...)
	}
	return out
}

func (b *CollisionBody) removeCollisionsWith(e ecs.Entity) {
	for i := range b.Colliders {
		b.Colliders[i].removeCollisionsWith(e)
	}
	for i := range b.Sensors {
		b.Sensors[i].removeCollisionsWith(e)
	}
}

func (b *CollisionBody) clearCollisions() {
	for i := range b.Colliders {
		b.Colliders[i].Overlapping = nil
	}
	for i := range b.Sensors {
		b.Sensors[i].Overlapping = nil
	}
}

// own detaches the body from caller-held slices so the world can mutate
// overlap lists in place.
func (b CollisionBody) own() CollisionBody {
	b.Colliders = copyColliders(b.Colliders)
	b.Sensors = copyColliders(b.Sensors)
	return b
}

func copyColliders(in []Collider) []Collider {
	if len(in) == 0 {
		return nil
	}
	out := make([]Collider, len(in))
	for i := range in {
		out[i] = in[i].Copy()
	}
	return out
}
