package main

import (
	"fmt"
	"image/color"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/lixenwraith/tank-physics/config"
	"github.com/lixenwraith/tank-physics/engine"
	"github.com/lixenwraith/tank-physics/event"
	"github.com/lixenwraith/tank-physics/geometry"
	"github.com/lixenwraith/tank-physics/physics"
	"github.com/lixenwraith/tank-physics/planner"
	"github.com/lixenwraith/tank-physics/scene"
	"github.com/lixenwraith/tank-physics/vmath"
)

var (
	colorBackground = color.RGBA{20, 20, 40, 255}
	colorStatic     = color.RGBA{86, 95, 137, 255}
	colorRigid      = color.RGBA{122, 162, 247, 255}
	colorParticle   = color.RGBA{224, 175, 104, 255}
	colorContact    = color.RGBA{247, 118, 142, 255}
)

// contactTTL is how long a contact marker stays on screen
const contactTTL = 30

// Camera maps world units to pixels around a centre point
type Camera struct {
	Center        vmath.Vec2
	PixelsPerUnit float32
	Width, Height float32
}

// WorldToScreen converts world coordinates to screen coordinates
func (c *Camera) WorldToScreen(p vmath.Vec2) (float32, float32) {
	return (p.X-c.Center.X)*c.PixelsPerUnit + c.Width/2, (p.Y-c.Center.Y)*c.PixelsPerUnit + c.Height/2
}

// ScreenToWorld converts screen coordinates to world coordinates
func (c *Camera) ScreenToWorld(x, y float32) vmath.Vec2 {
	return vmath.Vec2{
		X: (x-c.Width/2)/c.PixelsPerUnit + c.Center.X,
		Y: (y-c.Height/2)/c.PixelsPerUnit + c.Center.Y,
	}
}

type marker struct {
	at  vmath.Vec2
	ttl int
}

// Viewer is an ebiten.Game over one physics world
type Viewer struct {
	cfg     config.Config
	scene   *scene.Scene
	world   *engine.World
	built   *scene.Built
	planner *planner.Planner
	camera  Camera
	markers []marker
	step    time.Duration
}

// NewViewer builds sc onto a fresh world
func NewViewer(cfg config.Config, sc *scene.Scene, width, height int) (*Viewer, error) {
	v := &Viewer{
		cfg:    cfg,
		scene:  sc,
		camera: Camera{PixelsPerUnit: 16, Width: float32(width), Height: float32(height)},
		step:   time.Second / time.Duration(ebiten.DefaultTPS),
	}
	if err := v.reset(); err != nil {
		return nil, err
	}
	return v, nil
}

func (v *Viewer) reset() error {
	w := engine.NewWorld(v.cfg.Physics, nil)
	built, err := v.scene.Build(w)
	if err != nil {
		return err
	}
	v.world, v.built = w, built
	v.planner = planner.New(w, v.cfg.Planner)
	v.markers = v.markers[:0]
	w.Bus().Subscribe(event.EventHit, func(ev event.Event) {
		if p, ok := ev.Payload.(*engine.HitPayload); ok && len(p.Contact.Points) > 0 {
			v.markers = append(v.markers, marker{at: p.Contact.Points[0], ttl: contactTTL})
		}
	})
	return nil
}

// Update advances the world by one tick of real time
func (v *Viewer) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		v.world.TogglePause()
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		if err := v.reset(); err != nil {
			return err
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyE):
		v.fireEnemy()
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		x, y := ebiten.CursorPosition()
		v.dropCrate(v.camera.ScreenToWorld(float32(x), float32(y)))
	}

	v.world.Advance(v.step)

	kept := v.markers[:0]
	for _, m := range v.markers {
		if m.ttl--; m.ttl > 0 {
			kept = append(kept, m)
		}
	}
	v.markers = kept
	return nil
}

// fireEnemy plans a shot from the enemy tank at the player
func (v *Viewer) fireEnemy() {
	enemy, player := v.built.Object("enemy"), v.built.Object("player")
	if enemy == nil || player == nil {
		return
	}
	origin := enemy.Transform().Position.Add(vmath.Vec2{Y: -1})
	facing := float32(1)
	if player.Transform().Position.X < origin.X {
		facing = -1
	}
	shell, plan := v.planner.Fire(origin, facing, enemy, player)
	log.Printf("viewer: enemy fires %.0f%% at %.2f rad, planned miss %.2f", plan.Shot.Intensity, plan.Shot.Angle, plan.Distance)
	v.world.Attach(shell)
	v.world.IgnoreCollisions(shell, enemy)
	v.world.ObjectBus(shell).Subscribe(event.EventHit, func(event.Event) {
		v.world.DetachObject(shell)
	})
}

// dropCrate spawns the scene's crate prefab at p
func (v *Viewer) dropCrate(p vmath.Vec2) {
	def, err := v.scene.Resolve(scene.BodyDef{Prefab: "crate", Position: []float32{p.X, p.Y}})
	if err != nil {
		log.Printf("viewer: no crate prefab: %v", err)
		return
	}
	obj, forces, err := def.Object()
	if err != nil {
		log.Printf("viewer: crate: %v", err)
		return
	}
	v.world.Attach(obj, forces...)
}

// Draw renders every shape outline and recent contact points
func (v *Viewer) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)
	for _, obj := range v.world.Objects() {
		v.drawObject(screen, obj)
	}
	for _, m := range v.markers {
		x, y := v.camera.WorldToScreen(m.at)
		vector.StrokeCircle(screen, x, y, 3, 1, colorContact, true)
	}

	state := "running"
	if v.world.Paused() {
		state = "paused"
	}
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s  tps %.0f  step %d  [space] pause [e] enemy [r] reset [click] crate",
		state, ebiten.ActualTPS(), v.world.Steps()), 4, 4)
	for i, line := range v.world.Metrics().Lines() {
		ebitenutil.DebugPrintAt(screen, line, 4, 22+i*16)
	}
}

func (v *Viewer) drawObject(screen *ebiten.Image, obj physics.Object) {
	clr := colorStatic
	switch obj.Kind() {
	case physics.KindRigidBody:
		clr = colorRigid
	case physics.KindParticle:
		clr = colorParticle
	}

	t := obj.Transform()
	if len(obj.Shapes()) == 0 {
		x, y := v.camera.WorldToScreen(t.Position)
		vector.DrawFilledCircle(screen, x, y, 2, clr, true)
		return
	}
	for _, s := range obj.Shapes() {
		if s.Kind() == geometry.Circle {
			x, y := v.camera.WorldToScreen(s.WorldCenter(t.Position, t.Orientation))
			vector.StrokeCircle(screen, x, y, s.Radius()*v.camera.PixelsPerUnit, 1.5, clr, true)
			continue
		}
		verts := s.WorldVertices(t.Position, t.Orientation)
		for i := range verts {
			ax, ay := v.camera.WorldToScreen(verts[i])
			bx, by := v.camera.WorldToScreen(verts[(i+1)%len(verts)])
			vector.StrokeLine(screen, ax, ay, bx, by, 1.5, clr, true)
		}
	}
}

// Layout tracks the window size so the camera keeps the world centred
func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	v.camera.Width, v.camera.Height = float32(outsideWidth), float32(outsideHeight)
	return outsideWidth, outsideHeight
}
