package system

import (
	"fmt"
	"log"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/vermarine/ecs"
	"github.com/milk9111/vermarine/ecs/component"
	"github.com/milk9111/vermarine/physics"
)

type moverRuntime struct {
	source   string
	compiled *tengo.Compiled
	state    *tengo.Map
}

// ScriptMoverSystem runs one tengo script per ScriptMover entity each frame
// and moves the body by the (dx, dy) the script assigns.
type ScriptMoverSystem struct {
	physics *physics.World
	cache   map[ecs.Entity]*moverRuntime
	frame   int
}

func NewScriptMoverSystem(pw *physics.World) *ScriptMoverSystem {
	return &ScriptMoverSystem{physics: pw, cache: map[ecs.Entity]*moverRuntime{}}
}

func (s *ScriptMoverSystem) Update(w *ecs.World) {
	if s == nil || s.physics == nil || w == nil {
		return
	}
	s.frame++

	ecs.ForEach(w, component.ScriptMoverComponent.Kind(), func(e ecs.Entity, mover *component.ScriptMover) {
		if !s.physics.Has(e) {
			return
		}
		rt, err := s.runtime(e, mover)
		if err != nil {
			log.Printf("script: entity=%s name=%q compile error: %v", e, mover.Name, err)
			return
		}

		t, body := s.physics.Parts(e)
		dx, dy, err := rt.step(t, s.frame, len(body.Overlapping()))
		if err != nil {
			log.Printf("script: entity=%s name=%q run error: %v", e, mover.Name, err)
			return
		}
		if dx == 0 && dy == 0 {
			return
		}
		delta := cp.Vector{X: dx, Y: dy}
		if mover.Resolve {
			s.physics.MoveBodyAndCollide(e, delta)
		} else {
			s.physics.MoveBody(e, delta)
		}
	})

	for e := range s.cache {
		if !ecs.IsAlive(w, e) {
			delete(s.cache, e)
		}
	}
}

func (s *ScriptMoverSystem) runtime(e ecs.Entity, mover *component.ScriptMover) (*moverRuntime, error) {
	if rt, ok := s.cache[e]; ok && rt.source == mover.Source {
		return rt, nil
	}
	rt, err := compileMover(mover.Source)
	if err != nil {
		return nil, err
	}
	s.cache[e] = rt
	return rt, nil
}

func compileMover(src string) (*moverRuntime, error) {
	script := tengo.NewScript([]byte(src))
	_ = script.Add("x", 0.0)
	_ = script.Add("y", 0.0)
	_ = script.Add("frame", 0.0)
	_ = script.Add("contacts", 0)
	_ = script.Add("state", map[string]any{})
	_ = script.Add("dx", 0.0)
	_ = script.Add("dy", 0.0)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, err
	}
	return &moverRuntime{
		source:   src,
		compiled: compiled,
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
	}, nil
}

func (rt *moverRuntime) step(t physics.Transform, frame, contacts int) (float64, float64, error) {
	if rt == nil || rt.compiled == nil {
		return 0, 0, fmt.Errorf("nil script runtime")
	}
	inputs := []struct {
		name  string
		value any
	}{
		{"x", t.X},
		{"y", t.Y},
		{"frame", float64(frame)},
		{"contacts", contacts},
		{"state", rt.state},
		{"dx", 0.0},
		{"dy", 0.0},
	}
	for _, in := range inputs {
		if err := rt.compiled.Set(in.name, in.value); err != nil {
			return 0, 0, err
		}
	}
	if err := rt.compiled.Run(); err != nil {
		return 0, 0, err
	}
	return rt.compiled.Get("dx").Float(), rt.compiled.Get("dy").Float(), nil
}
