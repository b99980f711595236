package entity

import (
	"fmt"
	"strings"

	"github.com/milk9111/vermarine/ecs"
	"github.com/milk9111/vermarine/ecs/component"
	"github.com/milk9111/vermarine/physics"
	"github.com/milk9111/vermarine/prefabs"
)

// Spawned pairs a scene body name with the entity built for it.
type Spawned struct {
	Name   string
	Entity ecs.Entity
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, spec *prefabs.BodySpec) error

var componentRegistry = map[string]componentBuildFn{
	"player": addPlayer,
	"pickup": addPickup,
	"script": addScriptMover,
	"ttl":    addTTL,
}

var componentBuildOrder = []string{
	"player",
	"pickup",
	"script",
	"ttl",
}

// BuildScene creates one entity and body per scene body.
func BuildScene(w *ecs.World, pw *physics.World, scene *prefabs.SceneSpec) ([]Spawned, error) {
	if scene == nil {
		return nil, fmt.Errorf("entity: nil scene")
	}
	out := make([]Spawned, 0, len(scene.Bodies))
	for i := range scene.Bodies {
		e, err := BuildBody(w, pw, &scene.Bodies[i])
		if err != nil {
			return out, err
		}
		out = append(out, Spawned{Name: scene.Bodies[i].Name, Entity: e})
	}
	return out, nil
}

// BuildBody creates the entity, registers its physics body and attaches the
// gameplay components named by the body spec. The entity is destroyed again if
// any part fails.
func BuildBody(w *ecs.World, pw *physics.World, spec *prefabs.BodySpec) (ecs.Entity, error) {
	body, err := spec.Body()
	if err != nil {
		return 0, err
	}

	e := ecs.CreateEntity(w)
	pw.CreateBody(w, e, spec.Position(), body)

	for _, name := range componentBuildOrder {
		if err := componentRegistry[name](w, e, spec); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("entity: body %q component %s: %w", spec.Name, name, err)
		}
	}
	return e, nil
}

func addPlayer(w *ecs.World, e ecs.Entity, spec *prefabs.BodySpec) error {
	if spec.Player == nil {
		return nil
	}
	if err := ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{}); err != nil {
		return err
	}
	if err := ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{}); err != nil {
		return err
	}
	return ecs.Add(w, e, component.PlayerComponent.Kind(), &component.Player{MoveSpeed: spec.Player.MoveSpeed})
}

func addPickup(w *ecs.World, e ecs.Entity, spec *prefabs.BodySpec) error {
	if spec.Pickup == nil {
		return nil
	}
	return ecs.Add(w, e, component.PickupComponent.Kind(), &component.Pickup{
		Kind:  spec.Pickup.Kind,
		Value: spec.Pickup.Value,
	})
}

func addScriptMover(w *ecs.World, e ecs.Entity, spec *prefabs.BodySpec) error {
	if spec.Script == nil {
		return nil
	}
	src := spec.Script.Source
	name := spec.Name
	if strings.TrimSpace(spec.Script.Path) != "" {
		data, err := prefabs.LoadScript(spec.Script.Path)
		if err != nil {
			return err
		}
		src = string(data)
		name = spec.Script.Path
	}
	if strings.TrimSpace(src) == "" {
		return fmt.Errorf("empty script")
	}
	return ecs.Add(w, e, component.ScriptMoverComponent.Kind(), &component.ScriptMover{
		Name:    name,
		Source:  src,
		Resolve: spec.Script.Resolve,
	})
}

func addTTL(w *ecs.World, e ecs.Entity, spec *prefabs.BodySpec) error {
	if spec.TTL <= 0 {
		return nil
	}
	return ecs.Add(w, e, component.TTLComponent.Kind(), &component.TTL{Frames: spec.TTL})
}
