package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/vermarine/prefabs"
)

func main() {
	scene := flag.String("scene", "prefabs/"+prefabs.DefaultScene, "scene yaml (disk path, falls back to the embedded copy)")
	debug := flag.Bool("debug", false, "draw AABBs and normals, log physics bookkeeping")
	watch := flag.Bool("watch", false, "reload the scene when its yaml or scripts change")
	flag.Parse()

	game, err := NewGame(*scene, *debug, *watch)
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth*2, baseHeight*2)
	ebiten.SetWindowTitle("vermarine physics sandbox")

	err = ebiten.RunGame(game)
	game.Close()
	if err != nil {
		log.Fatal(err)
	}
}
