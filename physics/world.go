package physics

import (
	"fmt"
	"log"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/vermarine/ecs"
	"github.com/milk9111/vermarine/ecs/component"
)

// World stores bodies densely and keeps collision records current as bodies
// move. Each entity index owns at most one body; the stored handle's
// generation decides which registration is current.
//
// World is not safe for concurrent use.
type World struct {
	cfg Config

	transforms []Transform
	bodies     []CollisionBody
	owners     []ecs.Entity
	// sparse maps an entity index to its dense slot, -1 when empty.
	sparse []int

	broadphase *SpatialHash[ecs.Entity]
}

func NewWorld(cfg Config) *World {
	cfg = cfg.normalized()
	return &World{
		cfg:        cfg,
		broadphase: NewSpatialHash[ecs.Entity](cfg.BucketWidth, cfg.BucketHeight),
	}
}

func (pw *World) Config() Config {
	return pw.cfg
}

// Len returns the number of registered bodies.
func (pw *World) Len() int {
	return len(pw.owners)
}

func (pw *World) slot(e ecs.Entity) (int, bool) {
	idx := int(e.Index())
	if idx >= len(pw.sparse) {
		return -1, false
	}
	s := pw.sparse[idx]
	if s < 0 || pw.owners[s] != e {
		return -1, false
	}
	return s, true
}

func (pw *World) mustSlot(e ecs.Entity) int {
	s, ok := pw.slot(e)
	if !ok {
		panic(fmt.Sprintf("physics: no body registered for entity %s", e))
	}
	return s
}

// Has reports whether e is the current registration for its index.
func (pw *World) Has(e ecs.Entity) bool {
	_, ok := pw.slot(e)
	return ok
}

// CreateBody registers body for e at t. A body already stored under the same
// index is replaced when e's generation is equal or newer and left alone
// when it is newer than e. When w is non-nil the entity also receives the
// PhysicsBody marker so that later removals reach Sync. Registering again
// after the marker was removed, but before Sync, keeps the new body.
func (pw *World) CreateBody(w *ecs.World, e ecs.Entity, t Transform, body CollisionBody) {
	idx := int(e.Index())
	for len(pw.sparse) <= idx {
		pw.sparse = append(pw.sparse, -1)
	}

	body = body.own()
	if s := pw.sparse[idx]; s >= 0 {
		old := pw.owners[s]
		if old.Generation() > e.Generation() {
			if pw.cfg.Debug {
				log.Printf("PhysicsWorld: CreateBody ignored stale entity %s, index owned by %s", e, old)
			}
			return
		}
		pw.detach(s)
		pw.owners[s] = e
		pw.transforms[s] = t
		pw.bodies[s] = body
	} else {
		pw.sparse[idx] = len(pw.owners)
		pw.owners = append(pw.owners, e)
		pw.transforms = append(pw.transforms, t)
		pw.bodies = append(pw.bodies, body)
	}
	pw.broadphase.Insert(e, t, body.aabb)

	if pw.cfg.Debug {
		log.Printf("PhysicsWorld: CreateBody entity %s at (%.2f, %.2f) colliders=%d sensors=%d",
			e, t.X, t.Y, len(body.Colliders), len(body.Sensors))
	}
	if w == nil {
		return
	}
	kind := component.PhysicsBodyComponent.Kind()
	ecs.Track(w, kind)
	if err := ecs.Add(w, e, kind, &component.PhysicsBody{}); err != nil && pw.cfg.Debug {
		log.Printf("PhysicsWorld: CreateBody entity %s marker: %v", e, err)
	}
}

// Sync removes the bodies of entities whose PhysicsBody component was
// removed or whose entity was destroyed. Stale handles are skipped.
func (pw *World) Sync(removed, deleted []ecs.Entity) {
	for _, e := range removed {
		pw.removeBody(e)
	}
	for _, e := range deleted {
		pw.removeBody(e)
	}
}

func (pw *World) removeBody(e ecs.Entity) {
	s, ok := pw.slot(e)
	if !ok {
		if pw.cfg.Debug {
			log.Printf("PhysicsWorld: remove skipped entity %s, not the current registration", e)
		}
		return
	}
	pw.detach(s)

	last := len(pw.owners) - 1
	if s != last {
		pw.owners[s] = pw.owners[last]
		pw.transforms[s] = pw.transforms[last]
		pw.bodies[s] = pw.bodies[last]
		pw.sparse[pw.owners[s].Index()] = s
	}
	pw.bodies[last] = CollisionBody{}
	pw.owners = pw.owners[:last]
	pw.transforms = pw.transforms[:last]
	pw.bodies = pw.bodies[:last]
	pw.sparse[e.Index()] = -1
}

// detach clears every record involving the body in slot s and takes it out
// of the broad phase.
func (pw *World) detach(s int) {
	pw.clearOverlapping(s)
	pw.broadphase.Remove(pw.owners[s], pw.transforms[s], pw.bodies[s].aabb)
}

func (pw *World) clearOverlapping(s int) {
	e := pw.owners[s]
	for _, other := range pw.broadphase.Nearby(e, pw.transforms[s], pw.bodies[s].aabb) {
		if o, ok := pw.slot(other); ok {
			pw.bodies[o].removeCollisionsWith(e)
		}
	}
	pw.bodies[s].clearCollisions()
}

// MoveBody translates e by delta and recomputes its overlaps. No push-out
// is applied.
func (pw *World) MoveBody(e ecs.Entity, delta cp.Vector) {
	pw.move(e, func(t *Transform) { *t = t.Translate(delta) }, false)
}

func (pw *World) MoveBodyTo(e ecs.Entity, pos cp.Vector) {
	pw.move(e, func(t *Transform) { t.X, t.Y = pos.X, pos.Y }, false)
}

func (pw *World) MoveBodyToX(e ecs.Entity, x float64) {
	pw.move(e, func(t *Transform) { t.X = x }, false)
}

func (pw *World) MoveBodyToY(e ecs.Entity, y float64) {
	pw.move(e, func(t *Transform) { t.Y = y }, false)
}

// MoveBodyAndCollide translates e by delta and pushes it out of every
// collider its colliders react to, one MTV at a time in neighbour order.
// It returns the collider records gained by e during this call.
func (pw *World) MoveBodyAndCollide(e ecs.Entity, delta cp.Vector) []Collision {
	return pw.move(e, func(t *Transform) { *t = t.Translate(delta) }, true)
}

func (pw *World) move(e ecs.Entity, mutate func(*Transform), resolve bool) []Collision {
	s := pw.mustSlot(e)
	pw.detach(s)
	mutate(&pw.transforms[s])
	collisions := pw.updateOverlapping(s, resolve)
	pw.broadphase.Insert(e, pw.transforms[s], pw.bodies[s].aabb)
	return collisions
}

func (pw *World) updateOverlapping(s int, resolve bool) []Collision {
	var out []Collision
	for _, other := range pw.broadphase.Nearby(pw.owners[s], pw.transforms[s], pw.bodies[s].aabb) {
		o, ok := pw.slot(other)
		if !ok {
			continue
		}
		out = append(out, pw.collidePair(s, o, resolve)...)
	}
	return out
}

// collidePair runs the narrow phase between the moving body in slot s and
// the body in slot o.
func (pw *World) collidePair(s, o int, resolve bool) []Collision {
	self := side{t: &pw.transforms[s], body: &pw.bodies[s], e: pw.owners[s]}
	other := side{t: &pw.transforms[o], body: &pw.bodies[o], e: pw.owners[o]}

	// sensors see each other from both sides
	for i := range self.body.Sensors {
		for j := range other.body.Sensors {
			overlap(self, &self.body.Sensors[i], other, &other.body.Sensors[j], true, false)
		}
	}
	// a sensor detecting a collider records only on the sensor
	for i := range self.body.Sensors {
		for j := range other.body.Colliders {
			overlap(self, &self.body.Sensors[i], other, &other.body.Colliders[j], false, false)
		}
	}
	for i := range other.body.Sensors {
		for j := range self.body.Colliders {
			overlap(other, &other.body.Sensors[i], self, &self.body.Colliders[j], false, false)
		}
	}

	var out []Collision
	for i := range self.body.Colliders {
		for j := range other.body.Colliders {
			if c, ok := overlap(self, &self.body.Colliders[i], other, &other.body.Colliders[j], true, resolve); ok {
				out = append(out, c)
			}
		}
	}
	return out
}

type side struct {
	t    *Transform
	body *CollisionBody
	e    ecs.Entity
}

// overlap tests c1 on a against c2 on b. The record on c1 is made when c1
// reacts to c2; with both set, c2 gets the mirrored record when it reacts to
// c1. Both records are taken before any push-out. With resolve set, a is
// moved by the MTV when c1 reacts to c2. The returned collision is c1's.
func overlap(a side, c1 *Collider, b side, c2 *Collider, both, resolve bool) (Collision, bool) {
	forward := c1.ReactsTo(c2)
	backward := both && c2.ReactsTo(c1)
	if !forward && !backward {
		return Collision{}, false
	}
	collided, mtv, normal := separate(*a.t, c1.Shape, *b.t, c2.Shape)
	if !collided {
		return Collision{}, false
	}

	if backward {
		c2.Overlapping = append(c2.Overlapping, newCollision(*b.t, c2, *a.t, c1, a.e, normal.Neg()))
	}
	if !forward {
		return Collision{}, false
	}
	rec := newCollision(*a.t, c1, *b.t, c2, b.e, normal)
	c1.Overlapping = append(c1.Overlapping, rec)
	if resolve {
		*a.t = a.t.Translate(mtv)
	}
	return rec, true
}

// Transform returns the current position of e.
func (pw *World) Transform(e ecs.Entity) Transform {
	return pw.transforms[pw.mustSlot(e)]
}

// Collider returns e's body. The pointer is valid until the next call that
// creates or removes bodies.
func (pw *World) Collider(e ecs.Entity) *CollisionBody {
	return &pw.bodies[pw.mustSlot(e)]
}

func (pw *World) Parts(e ecs.Entity) (Transform, *CollisionBody) {
	s := pw.mustSlot(e)
	return pw.transforms[s], &pw.bodies[s]
}

// Each visits every body in dense order. fn must not create, remove or move
// bodies.
func (pw *World) Each(fn func(e ecs.Entity, t Transform, body *CollisionBody)) {
	for i := range pw.owners {
		fn(pw.owners[i], pw.transforms[i], &pw.bodies[i])
	}
}

// QueryRect returns the bodies whose world AABB intersects bb.
func (pw *World) QueryRect(bb cp.BB) []ecs.Entity {
	var out []ecs.Entity
	for _, e := range pw.broadphase.Query(bb) {
		s, ok := pw.slot(e)
		if !ok {
			continue
		}
		if pw.bodies[s].aabb.World(pw.transforms[s]).Intersects(bb) {
			out = append(out, e)
		}
	}
	return out
}
