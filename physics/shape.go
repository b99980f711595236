package physics

import (
	"math"

	"github.com/jakecoffman/cp"
)

type ShapeKind uint8

const (
	ShapeCircle ShapeKind = iota + 1
	ShapePolygon
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeCircle:
		return "circle"
	case ShapePolygon:
		return "polygon"
	default:
		return "unknown"
	}
}

// Shape is a circle or a polygon in body-local coordinates. Polygon
// vertices are never mutated in place once the shape is built.
type Shape struct {
	Kind     ShapeKind
	Radius   float64
	Vertices []cp.Vector
}

func Circle(radius float64) Shape {
	return Shape{Kind: ShapeCircle, Radius: radius}
}

// Polygon copies vertices into a new polygon shape.
func Polygon(vertices ...cp.Vector) Shape {
	return Shape{Kind: ShapePolygon, Vertices: append([]cp.Vector(nil), vertices...)}
}

func (s Shape) IsCircle() bool {
	return s.Kind == ShapeCircle
}

// Bounds returns the local bounding box of the shape. ok is false for a
// polygon without vertices.
func (s Shape) Bounds() (min, max cp.Vector, ok bool) {
	if s.IsCircle() {
		return cp.Vector{X: -s.Radius, Y: -s.Radius}, cp.Vector{X: s.Radius, Y: s.Radius}, true
	}
	if len(s.Vertices) == 0 {
		return cp.Vector{}, cp.Vector{}, false
	}
	min = cp.Vector{X: math.Inf(1), Y: math.Inf(1)}
	max = cp.Vector{X: math.Inf(-1), Y: math.Inf(-1)}
	for _, v := range s.Vertices {
		min.X = math.Min(min.X, v.X)
		min.Y = math.Min(min.Y, v.Y)
		max.X = math.Max(max.X, v.X)
		max.Y = math.Max(max.Y, v.Y)
	}
	return min, max, true
}

// Width is the horizontal extent: the diameter for circles.
func (s Shape) Width() float64 {
	min, max, ok := s.Bounds()
	if !ok {
		return 0
	}
	return max.X - min.X
}

func (s Shape) Height() float64 {
	min, max, ok := s.Bounds()
	if !ok {
		return 0
	}
	return max.Y - min.Y
}

func (s Shape) Clone() Shape {
	s.Vertices = append([]cp.Vector(nil), s.Vertices...)
	return s
}
