package main

import (
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/vermarine/ecs"
	"github.com/milk9111/vermarine/ecs/component"
	"github.com/milk9111/vermarine/ecs/entity"
	"github.com/milk9111/vermarine/ecs/system"
	"github.com/milk9111/vermarine/physics"
	"github.com/milk9111/vermarine/prefabs"
	"golang.org/x/image/colornames"
)

const (
	baseWidth  = 640
	baseHeight = 480

	normalLength = 12
)

type Game struct {
	frames    int
	scenePath string
	debug     bool

	world     *ecs.World
	physics   *physics.World
	scheduler *ecs.Scheduler
	spawned   []entity.Spawned
	watcher   *prefabs.Watcher

	status string
}

func NewGame(scenePath string, debug, watch bool) (*Game, error) {
	g := &Game{scenePath: scenePath, debug: debug}
	if err := g.load(); err != nil {
		return nil, err
	}
	if watch {
		w, err := prefabs.WatchScene(scenePath)
		if err != nil {
			log.Printf("sandbox: watch %s: %v", scenePath, err)
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

func (g *Game) load() error {
	scene, err := prefabs.LoadScene(g.scenePath)
	if err != nil {
		return err
	}
	cfg := scene.World.Config()
	if g.debug {
		cfg.Debug = true
	}

	w := ecs.NewWorld()
	pw := physics.NewWorld(cfg)
	spawned, err := entity.BuildScene(w, pw, scene)
	if err != nil {
		return err
	}

	g.world = w
	g.physics = pw
	g.spawned = spawned
	g.scheduler = system.NewDefaultScheduler(pw)
	g.status = fmt.Sprintf("loaded %s (%d bodies)", scene.Name, pw.Len())
	return nil
}

func (g *Game) reload() {
	if err := g.load(); err != nil {
		g.status = fmt.Sprintf("reload failed: %v", err)
		log.Printf("sandbox: reload %s: %v", g.scenePath, err)
	}
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	changed := false
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("sandbox: %s changed", name)
			changed = true
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("sandbox: watcher: %v", err)
		default:
			if changed {
				g.reload()
			}
			return
		}
	}
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.reload()
	}
	g.pollWatcher()

	g.frames++
	readInput(g.world)
	g.scheduler.Update(g.world)

	for _, evt := range g.world.Events().Drain() {
		ce, ok := evt.Data.(ecs.CollisionEvent)
		if !ok || ce.Kind != ecs.CollisionEventPickup {
			continue
		}
		g.status = fmt.Sprintf("picked up %s", g.nameOf(ce.Other))
	}
	return nil
}

func (g *Game) nameOf(e ecs.Entity) string {
	for _, s := range g.spawned {
		if s.Entity == e {
			return s.Name
		}
	}
	return e.String()
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Midnightblue)

	g.physics.Each(func(e ecs.Entity, t physics.Transform, body *physics.CollisionBody) {
		if g.debug {
			bb := body.AABB().World(t)
			vector.StrokeRect(screen, float32(bb.L), float32(bb.B), float32(bb.R-bb.L), float32(bb.T-bb.B), 1, colornames.Dimgray, false)
		}
		for i := range body.Colliders {
			clr := color.Color(colornames.Lightgrey)
			if len(body.Colliders[i].Overlapping) > 0 {
				clr = colornames.Tomato
			}
			drawShape(screen, t, body.Colliders[i].Shape, clr)
		}
		for i := range body.Sensors {
			clr := color.Color(colornames.Gold)
			if len(body.Sensors[i].Overlapping) > 0 {
				clr = colornames.Lime
			}
			drawShape(screen, t, body.Sensors[i].Shape, clr)
		}
		if g.debug {
			for _, c := range body.Overlapping() {
				x, y := float32(c.Transform1.X), float32(c.Transform1.Y)
				vector.StrokeLine(screen, x, y, x+float32(c.Normal.X*normalLength), y+float32(c.Normal.Y*normalLength), 2, colornames.Red, true)
			}
		}
	})

	score := 0
	if player, ok := ecs.First(g.world, component.PlayerTagComponent.Kind()); ok {
		if p, ok := ecs.Get(g.world, player, component.PlayerComponent.Kind()); ok {
			score = p.Score
		}
	}
	ebitenutil.DebugPrint(screen, fmt.Sprintf("Frames: %d    FPS: %.2f\nbodies: %d  score: %d\n%s",
		g.frames, ebiten.ActualFPS(), g.physics.Len(), score, g.status))
}

func drawShape(screen *ebiten.Image, t physics.Transform, s physics.Shape, clr color.Color) {
	if s.IsCircle() {
		vector.StrokeCircle(screen, float32(t.X), float32(t.Y), float32(s.Radius), 1, clr, true)
		return
	}
	n := len(s.Vertices)
	for i := 0; i < n; i++ {
		a := s.Vertices[i]
		b := s.Vertices[(i+1)%n]
		vector.StrokeLine(screen, float32(t.X+a.X), float32(t.Y+a.Y), float32(t.X+b.X), float32(t.Y+b.Y), 1, clr, true)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}

var _ ebiten.Game = (*Game)(nil)
