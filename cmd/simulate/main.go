package main

import (
	"flag"
	"log"

	"github.com/milk9111/vermarine/common"
	"github.com/milk9111/vermarine/ecs"
	"github.com/milk9111/vermarine/ecs/component"
	"github.com/milk9111/vermarine/ecs/entity"
	"github.com/milk9111/vermarine/ecs/system"
	"github.com/milk9111/vermarine/physics"
	"github.com/milk9111/vermarine/prefabs"
)

func main() {
	scenePath := flag.String("scene", "prefabs/"+prefabs.DefaultScene, "scene yaml (disk path, falls back to the embedded copy)")
	ticks := flag.Int("ticks", 600, "number of frames to simulate")
	debug := flag.Bool("debug", false, "log physics bookkeeping")
	moveX := flag.Float64("move-x", 0, "constant player input on x, in [-1, 1]")
	moveY := flag.Float64("move-y", 0, "constant player input on y, in [-1, 1]")
	flag.Parse()

	scene, err := prefabs.LoadScene(*scenePath)
	if err != nil {
		log.Fatal(err)
	}
	cfg := scene.World.Config()
	if *debug {
		cfg.Debug = true
	}

	w := ecs.NewWorld()
	pw := physics.NewWorld(cfg)
	spawned, err := entity.BuildScene(w, pw, scene)
	if err != nil {
		log.Fatal(err)
	}
	scheduler := system.NewDefaultScheduler(pw)

	inX, inY := common.Clamp(*moveX, -1, 1), common.Clamp(*moveY, -1, 1)
	var contacts, pickups int
	for i := 0; i < *ticks; i++ {
		ecs.ForEach(w, component.InputComponent.Kind(), func(_ ecs.Entity, in *component.Input) {
			in.MoveX, in.MoveY = inX, inY
		})
		scheduler.Update(w)

		for _, evt := range w.Events().Drain() {
			ce, ok := evt.Data.(ecs.CollisionEvent)
			if !ok {
				continue
			}
			switch ce.Kind {
			case ecs.CollisionEventContact:
				contacts++
			case ecs.CollisionEventPickup:
				pickups++
			}
		}
	}

	log.Printf("simulate: scene=%s ticks=%d bodies=%d contacts=%d pickups=%d", scene.Name, *ticks, pw.Len(), contacts, pickups)
	for _, s := range spawned {
		if !pw.Has(s.Entity) {
			log.Printf("  %-12s removed", s.Name)
			continue
		}
		t, body := pw.Parts(s.Entity)
		log.Printf("  %-12s at (%7.2f, %7.2f) overlaps=%d", s.Name, t.X, t.Y, len(body.Overlapping()))
	}
}
