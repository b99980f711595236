package physics

import "github.com/jakecoffman/cp"

// Transform is the world-space position of a body.
type Transform struct {
	X, Y float64
}

func NewTransform(x, y float64) Transform {
	return Transform{X: x, Y: y}
}

func (t Transform) Vector() cp.Vector {
	return cp.Vector{X: t.X, Y: t.Y}
}

// Translate returns t moved by delta.
func (t Transform) Translate(delta cp.Vector) Transform {
	return Transform{X: t.X + delta.X, Y: t.Y + delta.Y}
}
