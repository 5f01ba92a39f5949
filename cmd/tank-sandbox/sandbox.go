package main

import (
	"fmt"
	"log"

	"github.com/chewxy/math32"
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/tank-physics/clock"
	"github.com/lixenwraith/tank-physics/config"
	"github.com/lixenwraith/tank-physics/engine"
	"github.com/lixenwraith/tank-physics/event"
	"github.com/lixenwraith/tank-physics/physics"
	"github.com/lixenwraith/tank-physics/planner"
	"github.com/lixenwraith/tank-physics/render"
	"github.com/lixenwraith/tank-physics/scene"
	"github.com/lixenwraith/tank-physics/vmath"
)

const (
	playerName = "player"
	enemyName  = "enemy"

	// Turret height above a tank's origin
	turretOffset float32 = 1

	// Aim adjustment per key press
	intensityNudge float32 = 1
	angleNudge             = math32.Pi / 90
)

// Sandbox owns one duel: the world built from a scene, the renderer and both gunners
type Sandbox struct {
	cfg      config.Config
	scene    *scene.Scene
	surface  render.Surface
	world    *engine.World
	built    *scene.Built
	renderer *render.Renderer
	timer    *clock.FrameTimer
	planner  *planner.Planner

	player, enemy physics.Object
	armor         map[physics.Object]*Armor
	aim           planner.Shot
	lastPlan      *planner.Plan
	shells        int
	hits          int

	// live holds fired shells until they leave the world
	live map[physics.Object]struct{}

	// onReset is called with every freshly built world, e.g. to re-attach impact sounds
	onReset func(w *engine.World)
}

// NewSandbox builds the scene onto a fresh world drawn on surface
func NewSandbox(cfg config.Config, sc *scene.Scene, surface render.Surface, provider clock.TimeProvider) (*Sandbox, error) {
	s := &Sandbox{
		cfg:     cfg,
		scene:   sc,
		surface: surface,
		timer:   clock.NewFrameTimer(provider),
		aim:     planner.Shot{Intensity: 50, Angle: math32.Pi / 4},
	}
	if err := s.Reset(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reset rebuilds the scene on a new world, keeping the current aim
func (s *Sandbox) Reset() error {
	w := engine.NewWorld(s.cfg.Physics, nil)
	built, err := s.scene.Build(w)
	if err != nil {
		return err
	}
	player, enemy := built.Object(playerName), built.Object(enemyName)
	if player == nil || enemy == nil {
		return fmt.Errorf("scene needs bodies named %q and %q", playerName, enemyName)
	}

	s.world, s.built = w, built
	s.player, s.enemy = player, enemy
	s.planner = planner.New(w, s.cfg.Planner)
	s.lastPlan = nil
	s.shells, s.hits = 0, 0
	s.live = make(map[physics.Object]struct{})
	s.armor = map[physics.Object]*Armor{
		player: NewArmor(w, player, s.isShell),
		enemy:  NewArmor(w, enemy, s.isShell),
	}
	s.timer.Reset()

	rc := s.cfg.Render
	if s.renderer != nil {
		rc.ShowMetrics = s.renderer.ShowMetrics()
	}
	s.renderer = render.New(s.surface, rc, w.Metrics())
	s.frame()
	if s.onReset != nil {
		s.onReset(w)
	}
	log.Printf("sandbox: scene built with %d bodies", w.Len())
	return nil
}

func (s *Sandbox) World() *engine.World { return s.world }

// Tick advances the world by the real time since the previous tick
func (s *Sandbox) Tick() int {
	n := s.timer.Drive(s.world)
	for shell := range s.live {
		if _, ok := s.world.HandleOf(shell); !ok {
			delete(s.live, shell)
		}
	}
	return n
}

func (s *Sandbox) isShell(obj physics.Object) bool {
	_, ok := s.live[obj]
	return ok
}

// Armor returns the damage tracker of a tank
func (s *Sandbox) Armor(tank physics.Object) *Armor { return s.armor[tank] }

// TogglePause flips the world's pause and restarts frame timing on resume
func (s *Sandbox) TogglePause() bool {
	paused := s.world.TogglePause()
	if !paused {
		s.timer.Reset()
	}
	return paused
}

// Nudge changes the player's aim
func (s *Sandbox) Nudge(dIntensity, dAngle float32) {
	s.aim = planner.Shot{Intensity: s.aim.Intensity + dIntensity, Angle: s.aim.Angle + dAngle}.Clamp()
}

func (s *Sandbox) Aim() planner.Shot { return s.aim }

// FirePlayer launches the player's current aim toward the enemy
func (s *Sandbox) FirePlayer() physics.Object {
	origin, facing := s.muzzle(s.player, s.enemy)
	return s.launch(planner.Projectile(origin, facing, s.aim), s.player, s.enemy)
}

// FireEnemy plans a shot at the player with ghost simulations and launches it with aim error
func (s *Sandbox) FireEnemy() physics.Object {
	origin, facing := s.muzzle(s.enemy, s.player)
	shell, plan := s.planner.Fire(origin, facing, s.enemy, s.player)
	s.lastPlan = &plan
	return s.launch(shell, s.enemy, s.player)
}

// launch attaches shell so that it passes through shooter and disappears on its first hit
func (s *Sandbox) launch(shell *physics.RigidBody, shooter, target physics.Object) physics.Object {
	if s.world.Attach(shell) == 0 {
		return nil
	}
	s.world.IgnoreCollisions(shell, shooter)
	s.live[shell] = struct{}{}
	s.shells++
	s.world.ObjectBus(shell).Subscribe(event.EventHit, func(ev event.Event) {
		p, ok := ev.Payload.(*engine.HitPayload)
		if !ok {
			return
		}
		if p.Other == target {
			s.hits++
			log.Printf("sandbox: shell struck target at step %d", ev.Step)
		}
		s.world.DetachObject(shell)
	})
	return shell
}

// muzzle returns the turret position of shooter and the facing toward target
func (s *Sandbox) muzzle(shooter, target physics.Object) (vmath.Vec2, float32) {
	from := shooter.Transform().Position
	facing := float32(1)
	if target.Transform().Position.X < from.X {
		facing = -1
	}
	return from.Add(vmath.Vec2{Y: -turretOffset}), facing
}

// Overlay returns the status lines drawn above the metrics
func (s *Sandbox) Overlay() []string {
	state := "running"
	if s.world.Paused() {
		state = "paused"
	}
	lines := []string{
		fmt.Sprintf("%s  fps %.0f  shells %d  hits %d", state, s.timer.FPS(), s.shells, s.hits),
		fmt.Sprintf("aim %.0f%% %.1f°", s.aim.Intensity, s.aim.Angle*180/math32.Pi),
		fmt.Sprintf("damage player %.0f%% enemy %.0f%%", s.armor[s.player].Percent(), s.armor[s.enemy].Percent()),
	}
	if s.lastPlan != nil {
		lines = append(lines, fmt.Sprintf("enemy plan %.0f%% %.1f° miss %.2f (%d sims)",
			s.lastPlan.Shot.Intensity, s.lastPlan.Shot.Angle*180/math32.Pi, s.lastPlan.Distance, s.lastPlan.Evaluations))
	}
	return lines
}

// Draw renders the current world state
func (s *Sandbox) Draw() {
	s.renderer.Draw(s.world.Objects(), s.Overlay()...)
}

// Resize refits the camera after the surface changed size
func (s *Sandbox) Resize() {
	s.renderer.Resize()
	s.frame()
}

// HandleKey applies one key press; returns false to quit
func (s *Sandbox) HandleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyUp:
		s.Nudge(0, angleNudge)
	case tcell.KeyDown:
		s.Nudge(0, -angleNudge)
	case tcell.KeyRight:
		s.Nudge(intensityNudge, 0)
	case tcell.KeyLeft:
		s.Nudge(-intensityNudge, 0)
	case tcell.KeyEnter:
		s.FirePlayer()
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return false
		case ' ', 'p':
			s.TogglePause()
		case 'e':
			s.FireEnemy()
		case 'm':
			s.renderer.ToggleMetrics()
		case 'r':
			if err := s.Reset(); err != nil {
				log.Printf("sandbox: reset failed: %v", err)
			}
		}
	}
	return true
}

// frame fits the camera around every object with a margin
func (s *Sandbox) frame() {
	lo := vmath.V(math32.Inf(1), math32.Inf(1))
	hi := vmath.V(math32.Inf(-1), math32.Inf(-1))
	for _, obj := range s.world.Objects() {
		p, half := obj.Transform().Position, obj.HalfSize()
		lo = vmath.V(math32.Min(lo.X, p.X-half.X), math32.Min(lo.Y, p.Y-half.Y))
		hi = vmath.V(math32.Max(hi.X, p.X+half.X), math32.Max(hi.Y, p.Y+half.Y))
	}
	if lo.X > hi.X {
		return
	}
	margin := vmath.V(1, 1)
	s.renderer.Camera.Fit(lo.Sub(margin), hi.Add(margin))
}
