package main

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/vermarine/common"
	"github.com/milk9111/vermarine/ecs"
	"github.com/milk9111/vermarine/ecs/component"
)

const inputSmoothing = 0.35

func axis(neg, pos bool) float64 {
	v := 0.0
	if neg {
		v--
	}
	if pos {
		v++
	}
	return v
}

func smooth(cur, target float64) float64 {
	v := common.Lerp(cur, target, inputSmoothing)
	if target == 0 && math.Abs(v) < 0.05 {
		return 0
	}
	return common.Clamp(v, -1, 1)
}

// readInput writes keyboard state into every Input component.
func readInput(w *ecs.World) {
	left := ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft)
	right := ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight)
	up := ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp)
	down := ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown)

	x, y := axis(left, right), axis(up, down)
	ecs.ForEach(w, component.InputComponent.Kind(), func(_ ecs.Entity, in *component.Input) {
		in.MoveX = smooth(in.MoveX, x)
		in.MoveY = smooth(in.MoveY, y)
	})
}
