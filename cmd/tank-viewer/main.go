package main

import (
	"errors"
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/lixenwraith/tank-physics/config"
	"github.com/lixenwraith/tank-physics/scene"
)

const (
	screenWidth  = 1024
	screenHeight = 640
)

var (
	configFlag = flag.String("config", config.DefaultPath, "Config file (defaults apply when missing)")
	sceneFlag  = flag.String("scene", "", "Scene file, overrides the config")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil && !errors.Is(err, config.ErrInvalid) {
		log.Fatal(err)
	}
	if *sceneFlag != "" {
		cfg.Scene = *sceneFlag
	}

	sc, err := scene.Load(cfg.Scene)
	if err != nil {
		log.Fatal(err)
	}
	v, err := NewViewer(cfg, sc, screenWidth, screenHeight)
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("Tank Physics Viewer")
	ebiten.SetWindowResizable(true)

	if err := ebiten.RunGame(v); err != nil {
		log.Fatal(err)
	}
}
