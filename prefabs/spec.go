package prefabs

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/vermarine/physics"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownShape = errors.New("prefabs: unknown collider shape")
	ErrBadPolygon   = errors.New("prefabs: polygon needs at least three [x, y] vertices")
)

// SceneSpec is a whole physics scene: broad-phase settings plus bodies.
type SceneSpec struct {
	Name   string     `yaml:"name"`
	World  WorldSpec  `yaml:"world"`
	Bodies []BodySpec `yaml:"bodies"`
}

type WorldSpec struct {
	BucketWidth  float64 `yaml:"bucket_width"`
	BucketHeight float64 `yaml:"bucket_height"`
	Debug        bool    `yaml:"debug"`
}

// Config converts the spec, falling back to the defaults for unset sizes.
func (s WorldSpec) Config() physics.Config {
	cfg := physics.DefaultConfig()
	if s.BucketWidth > 0 {
		cfg.BucketWidth = s.BucketWidth
	}
	if s.BucketHeight > 0 {
		cfg.BucketHeight = s.BucketHeight
	}
	cfg.Debug = s.Debug
	return cfg
}

type TransformSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// ColliderSpec describes one collider or sensor. Shape is "circle", "box"
// or "polygon".
type ColliderSpec struct {
	Shape      string      `yaml:"shape"`
	Radius     float64     `yaml:"radius"`
	HalfWidth  float64     `yaml:"half_width"`
	HalfHeight float64     `yaml:"half_height"`
	Vertices   [][]float64 `yaml:"vertices"`
	Layer      uint64      `yaml:"layer"`
	Mask       uint64      `yaml:"mask"`
}

func (c ColliderSpec) Build() (physics.Collider, error) {
	switch strings.ToLower(strings.TrimSpace(c.Shape)) {
	case "circle":
		return physics.NewCircleCollider(c.Radius, c.Layer, c.Mask), nil
	case "box", "rect":
		return physics.HalfExtents(c.HalfWidth, c.HalfHeight, c.Layer, c.Mask), nil
	case "polygon":
		if len(c.Vertices) < 3 {
			return physics.Collider{}, ErrBadPolygon
		}
		verts := make([]cp.Vector, 0, len(c.Vertices))
		for _, v := range c.Vertices {
			if len(v) != 2 {
				return physics.Collider{}, ErrBadPolygon
			}
			verts = append(verts, cp.Vector{X: v[0], Y: v[1]})
		}
		return physics.NewPolygonCollider(verts, c.Layer, c.Mask), nil
	default:
		return physics.Collider{}, fmt.Errorf("%w %q", ErrUnknownShape, c.Shape)
	}
}

type PlayerSpec struct {
	MoveSpeed float64 `yaml:"move_speed"`
}

type PickupSpec struct {
	Kind  string `yaml:"kind"`
	Value int    `yaml:"value"`
}

// ScriptSpec points at an embedded or on-disk tengo script, or carries the
// source inline.
type ScriptSpec struct {
	Path    string `yaml:"path"`
	Source  string `yaml:"source"`
	Resolve bool   `yaml:"resolve"`
}

type BodySpec struct {
	Name      string         `yaml:"name"`
	Transform TransformSpec  `yaml:"transform"`
	Colliders []ColliderSpec `yaml:"colliders"`
	Sensors   []ColliderSpec `yaml:"sensors"`
	Player    *PlayerSpec    `yaml:"player"`
	Pickup    *PickupSpec    `yaml:"pickup"`
	Script    *ScriptSpec    `yaml:"script"`
	TTL       int            `yaml:"ttl"`
}

// Body builds the physics body described by the spec.
func (b BodySpec) Body() (physics.CollisionBody, error) {
	colliders, err := buildColliders(b.Colliders)
	if err != nil {
		return physics.CollisionBody{}, fmt.Errorf("prefabs: body %q collider: %w", b.Name, err)
	}
	sensors, err := buildColliders(b.Sensors)
	if err != nil {
		return physics.CollisionBody{}, fmt.Errorf("prefabs: body %q sensor: %w", b.Name, err)
	}
	return physics.FromParts(colliders, sensors), nil
}

func (b BodySpec) Position() physics.Transform {
	return physics.NewTransform(b.Transform.X, b.Transform.Y)
}

func buildColliders(specs []ColliderSpec) ([]physics.Collider, error) {
	if len(specs) == 0 {
		return nil, nil
	}
	out := make([]physics.Collider, 0, len(specs))
	for _, s := range specs {
		c, err := s.Build()
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func ParseScene(data []byte) (*SceneSpec, error) {
	var spec SceneSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("prefabs: unmarshal scene: %w", err)
	}
	return &spec, nil
}

func LoadScene(filename string) (*SceneSpec, error) {
	data, err := Load(filename)
	if err != nil {
		return nil, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}
	spec, err := ParseScene(data)
	if err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", filename, err)
	}
	return spec, nil
}
