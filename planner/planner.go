package planner

import (
	"log"

	"github.com/chewxy/math32"

	"github.com/lixenwraith/tank-physics/config"
	"github.com/lixenwraith/tank-physics/engine"
	"github.com/lixenwraith/tank-physics/event"
	"github.com/lixenwraith/tank-physics/geometry"
	"github.com/lixenwraith/tank-physics/parameter"
	"github.com/lixenwraith/tank-physics/physics"
	"github.com/lixenwraith/tank-physics/vmath"
)

// Shot is a launch setting: intensity in percent, elevation in radians above the horizontal
type Shot struct {
	Intensity float32
	Angle     float32
}

// Clamp keeps intensity in [0, MaxProjectileIntensity] and elevation in [0, MaxElevation]
func (s Shot) Clamp() Shot {
	s.Intensity = vmath.Clamp(s.Intensity, 0, parameter.MaxProjectileIntensity)
	s.Angle = vmath.Clamp(s.Angle, 0, parameter.PlannerMaxElevation)
	return s
}

// Direction returns the unit launch direction; facing is +1 toward +X, -1 toward -X
func (s Shot) Direction(facing float32) vmath.Vec2 {
	sin, cos := math32.Sincos(s.Angle)
	return vmath.Vec2{X: facing * cos, Y: -sin}
}

// Velocity returns the launch velocity for facing
func (s Shot) Velocity(facing float32) vmath.Vec2 {
	return s.Direction(facing).Scale(s.Intensity / parameter.MaxProjectileIntensity * parameter.MaxProjectileVelocity)
}

// Projectile builds a shell at origin moving with the shot's launch velocity
// The shell spawns MuzzleDistance along the launch direction so it clears the barrel
func Projectile(origin vmath.Vec2, facing float32, s Shot) *physics.RigidBody {
	dir := s.Direction(facing)
	size := vmath.V(2*parameter.ProjectileRadius, 2*parameter.ProjectileRadius)
	hull := geometry.MustPolygon(geometry.RegularPolygon(size, parameter.ProjectileSides, 0), vmath.Zero, geometry.DefaultSurface)
	b := physics.MustRigidBody(&physics.Transform{Position: origin.Add(dir.Scale(parameter.ProjectileMuzzleDistance))}, parameter.ProjectileMass, hull)
	b.SetVelocity(s.Velocity(facing))
	return b
}

// Plan is the outcome of a search
type Plan struct {
	Shot        Shot
	Distance    float32
	Iterations  int
	Evaluations int
}

// Hit reports whether the best shot struck the target
func (p Plan) Hit() bool { return p.Distance == 0 }

// Planner searches launch settings by hill climbing over ghost simulations
type Planner struct {
	world *engine.World
	cfg   config.Planner
	rng   *vmath.FastRand
}

// New creates a planner over w; zero config values fall back to the parameter defaults
func New(w *engine.World, cfg config.Planner) *Planner {
	if cfg.IntensityStep <= 0 {
		cfg.IntensityStep = parameter.PlannerIntensityStep
	}
	if cfg.AngleStep <= 0 {
		cfg.AngleStep = parameter.PlannerAngleStep
	}
	return &Planner{
		world: w,
		cfg:   cfg,
		rng:   vmath.NewFastRand(cfg.Seed),
	}
}

// Evaluate fires s as a ghost and scores where it lands
// Distance is 0 when the shell touched target, otherwise the horizontal gap between the shell's
// final position and the target. The shell never collides with shooter, which may be nil
func (p *Planner) Evaluate(origin vmath.Vec2, facing float32, shooter, target physics.Object, s Shot) float32 {
	shell := Projectile(origin, facing, s)
	bus := event.NewBus()
	bus.Subscribe(event.EventHit, func(event.Event) {
		p.world.DetachObject(shell)
	})
	if shooter != nil {
		// The ghost is registered from its first update on
		var h event.Handle
		h = bus.Subscribe(event.EventUpdate, func(event.Event) {
			p.world.IgnoreCollisions(shell, shooter)
			bus.Unsubscribe(h)
		})
	}

	touched := p.world.SimulateUntilDetached(shell, bus)
	if touched.Has(target) {
		return 0
	}
	return math32.Abs(shell.Transform().Position.X - target.Transform().Position.X)
}

// Search hill climbs from a random start until the target is hit, no neighbour improves,
// or the iteration budget runs out
func (p *Planner) Search(origin vmath.Vec2, facing float32, shooter, target physics.Object) Plan {
	best := Shot{
		Intensity: p.rng.Float32() * parameter.MaxProjectileIntensity,
		Angle:     p.rng.Float32() * parameter.PlannerMaxElevation,
	}
	plan := Plan{Shot: best, Distance: p.Evaluate(origin, facing, shooter, target, best), Evaluations: 1}

	for plan.Iterations < p.cfg.Iterations && !plan.Hit() {
		plan.Iterations++
		improved := false
		current := plan.Shot
		for i := 0; i < parameter.PlannerNeighbours; i++ {
			sin, cos := math32.Sincos(2 * math32.Pi * float32(i) / parameter.PlannerNeighbours)
			candidate := Shot{
				Intensity: current.Intensity + cos*p.cfg.IntensityStep,
				Angle:     current.Angle + sin*p.cfg.AngleStep,
			}.Clamp()
			if candidate == current {
				continue
			}
			d := p.Evaluate(origin, facing, shooter, target, candidate)
			plan.Evaluations++
			if d < plan.Distance {
				plan.Shot, plan.Distance = candidate, d
				improved = true
			}
		}
		if !improved {
			break
		}
	}
	log.Printf("planner: shot %.1f%% at %.3f rad, miss %.2f after %d evaluations",
		plan.Shot.Intensity, plan.Shot.Angle, plan.Distance, plan.Evaluations)
	return plan
}

// Aim returns s with a random positive jitter up to the configured errors
func (p *Planner) Aim(s Shot) Shot {
	return Shot{
		Intensity: s.Intensity + p.rng.Float32()*p.cfg.IntensityError,
		Angle:     s.Angle + p.rng.Float32()*p.cfg.AngleError,
	}.Clamp()
}

// Fire searches a shot, jitters it and returns the live projectile unattached
func (p *Planner) Fire(origin vmath.Vec2, facing float32, shooter, target physics.Object) (*physics.RigidBody, Plan) {
	plan := p.Search(origin, facing, shooter, target)
	return Projectile(origin, facing, p.Aim(plan.Shot)), plan
}
