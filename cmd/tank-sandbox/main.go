package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/tank-physics/audio"
	"github.com/lixenwraith/tank-physics/clock"
	"github.com/lixenwraith/tank-physics/config"
	"github.com/lixenwraith/tank-physics/engine"
	"github.com/lixenwraith/tank-physics/parameter"
	"github.com/lixenwraith/tank-physics/scene"
)

var (
	configFlag = flag.String("config", config.DefaultPath, "Config file (defaults apply when missing)")
	sceneFlag  = flag.String("scene", "", "Scene file, overrides the config")
	debugFlag  = flag.Bool("debug", false, "Write logs to "+logDir+"/"+logFileName)
	muteFlag   = flag.Bool("mute", false, "Disable impact sounds")
)

func main() {
	flag.Parse()

	logFile := setupLogging(*debugFlag)
	if logFile != nil {
		defer logFile.Close()
	}

	cfg, err := config.Load(*configFlag)
	if err != nil {
		if !errors.Is(err, config.ErrInvalid) {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}
		log.Printf("config rejected, using defaults: %v", err)
	}
	if *sceneFlag != "" {
		cfg.Scene = *sceneFlag
	}
	if *muteFlag {
		cfg.Audio.Enabled = false
	}

	sc, err := scene.Load(cfg.Scene)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load scene: %v\n", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize screen: %v\n", err)
		os.Exit(1)
	}

	// Restore the terminal before reporting a crash
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\n\x1b[31mTANK-SANDBOX CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()
	defer screen.Fini()
	screen.HideCursor()

	sandbox, err := NewSandbox(cfg, sc, screen, clock.NewMonotonicTimeProvider())
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "Failed to build scene: %v\n", err)
		os.Exit(1)
	}

	if cfg.Audio.Enabled {
		sounds := audio.NewSoundManager()
		if err := sounds.Initialize(); err != nil {
			// Non-fatal, the sandbox runs silently
			log.Printf("Audio initialization failed: %v", err)
		} else {
			defer sounds.Cleanup()
			attach := func(w *engine.World) {
				audio.NewImpactSounds(w, sounds, sounds.Rate(), cfg.Audio).Attach()
			}
			attach(sandbox.World())
			sandbox.onReset = attach
		}
	}

	run(screen, sandbox)
}

// run drives input and frames until the player quits
func run(screen tcell.Screen, sandbox *Sandbox) {
	ticker := time.NewTicker(parameter.FrameUpdateInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !sandbox.HandleKey(ev) {
					return
				}
			case *tcell.EventResize:
				screen.Sync()
				sandbox.Resize()
			}

		case <-ticker.C:
			sandbox.Tick()
			sandbox.Draw()
		}
	}
}
