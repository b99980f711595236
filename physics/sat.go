package physics

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
)

// Projection is the interval a shape covers along an axis.
type Projection struct {
	Min, Max float64
}

// Overlaps reports whether the intervals touch or intersect.
func (p Projection) Overlaps(o Projection) bool {
	return p.Min <= o.Max && o.Min <= p.Max
}

// Overlap is the length of the shared interval.
func (p Projection) Overlap(o Projection) float64 {
	return math.Min(p.Max, o.Max) - math.Max(p.Min, o.Min)
}

func unit(v cp.Vector) cp.Vector {
	l := v.Length()
	if l == 0 {
		return cp.Vector{}
	}
	return v.Mult(1 / l)
}

// Axes returns the candidate separating axes of a polygon: the normal of
// each edge (v[i], v[i+1]). The closing edge from the last vertex back to
// the first is not included. Circles have no intrinsic axes.
func Axes(s Shape) []cp.Vector {
	if s.IsCircle() || len(s.Vertices) < 2 {
		return nil
	}
	axes := make([]cp.Vector, 0, len(s.Vertices)-1)
	for i := 0; i < len(s.Vertices)-1; i++ {
		edge := s.Vertices[i].Sub(s.Vertices[i+1])
		axes = append(axes, unit(cp.Vector{X: edge.Y, Y: -edge.X}))
	}
	return axes
}

// CirclePolygonAxis returns the unit axis from the polygon vertex closest to
// the circle centre towards that centre, in world space.
func CirclePolygonAxis(circleT Transform, polygon Shape, polygonT Transform) cp.Vector {
	if polygon.Kind != ShapePolygon {
		panic(fmt.Sprintf("physics: circle-polygon axis needs a polygon, got %s", polygon.Kind))
	}
	if len(polygon.Vertices) == 0 {
		return cp.Vector{}
	}
	centre := circleT.Vector()
	origin := polygonT.Vector()
	var closest cp.Vector
	best := math.Inf(1)
	for _, v := range polygon.Vertices {
		world := v.Add(origin)
		if d := world.DistanceSq(centre); d < best {
			best = d
			closest = world
		}
	}
	return unit(centre.Sub(closest))
}

// Project projects s, placed at t, onto axis.
func Project(s Shape, t Transform, axis cp.Vector) Projection {
	if s.IsCircle() {
		c := t.Vector().Dot(axis)
		return Projection{Min: c - s.Radius, Max: c + s.Radius}
	}
	p := Projection{Min: math.Inf(1), Max: math.Inf(-1)}
	origin := t.Vector()
	for _, v := range s.Vertices {
		d := v.Add(origin).Dot(axis)
		if d < p.Min {
			p.Min = d
		}
		if d > p.Max {
			p.Max = d
		}
	}
	return p
}

func empty(s Shape) bool {
	return !s.IsCircle() && len(s.Vertices) == 0
}

// SeparatingAxisTest reports whether two placed shapes overlap and, if so,
// the minimum translation vector that moves shape 1 out of shape 2.
//
// Touching shapes count as colliding with a zero-length MTV.
func SeparatingAxisTest(t1 Transform, s1 Shape, t2 Transform, s2 Shape) (bool, cp.Vector) {
	collided, mtv, _ := separate(t1, s1, t2, s2)
	return collided, mtv
}

// separate is SeparatingAxisTest that also returns the unit axis the MTV was
// taken along, oriented like the MTV. The axis is set for touching shapes
// too.
func separate(t1 Transform, s1 Shape, t2 Transform, s2 Shape) (bool, cp.Vector, cp.Vector) {
	if empty(s1) || empty(s2) {
		return false, cp.Vector{}, cp.Vector{}
	}

	var axes []cp.Vector
	switch {
	case s1.IsCircle() && s2.IsCircle():
		d := t1.Vector().Sub(t2.Vector())
		r := s1.Radius + s2.Radius
		if d.LengthSq() > r*r {
			return false, cp.Vector{}, cp.Vector{}
		}
		axis := unit(d)
		if axis.LengthSq() == 0 {
			// concentric
			axis = cp.Vector{X: 1}
		}
		axes = []cp.Vector{axis}
	case s1.IsCircle():
		axes = append([]cp.Vector{CirclePolygonAxis(t1, s2, t2)}, Axes(s2)...)
	case s2.IsCircle():
		axes = append([]cp.Vector{CirclePolygonAxis(t2, s1, t1)}, Axes(s1)...)
	default:
		axes = append(Axes(s1), Axes(s2)...)
	}

	lowest := math.Inf(1)
	var best cp.Vector
	for _, axis := range axes {
		// a circle centred on a vertex yields no direction
		if axis.LengthSq() == 0 {
			continue
		}
		p1 := Project(s1, t1, axis)
		p2 := Project(s2, t2, axis)
		if !p1.Overlaps(p2) {
			return false, cp.Vector{}, cp.Vector{}
		}
		if o := p1.Overlap(p2); o <= lowest {
			lowest = o
			best = axis
		}
	}
	if best.LengthSq() == 0 {
		return false, cp.Vector{}, cp.Vector{}
	}

	if t2.Vector().Sub(t1.Vector()).Dot(best) > 0 {
		best = best.Neg()
	}
	return true, best.Mult(lowest), best
}
