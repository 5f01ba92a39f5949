package physics

import (
	"fmt"

	"github.com/lixenwraith/tank-physics/geometry"
	"github.com/lixenwraith/tank-physics/parameter"
	"github.com/lixenwraith/tank-physics/vmath"
)

// Particle is a shapeless point mass: integrates forces, never pairs for collision
type Particle struct {
	transform *Transform
	velocity  vmath.Vec2
	invMass   float32
}

// NewParticle creates a point mass
func NewParticle(transform *Transform, mass float32) (*Particle, error) {
	if !(mass > 0) {
		return nil, fmt.Errorf("particle mass %v: %w", mass, ErrInvalidMass)
	}
	if transform == nil {
		transform = &Transform{}
	}
	return &Particle{transform: transform, invMass: 1 / mass}, nil
}

// MustParticle panics on invalid input
func MustParticle(transform *Transform, mass float32) *Particle {
	p, err := NewParticle(transform, mass)
	if err != nil {
		panic(err)
	}
	return p
}

func (p *Particle) Kind() Kind { return KindParticle }
func (p *Particle) Transform() *Transform { return p.transform }
func (p *Particle) Velocity() vmath.Vec2 { return p.velocity }
func (p *Particle) SetVelocity(v vmath.Vec2) { p.velocity = v }
func (p *Particle) AngularVelocity() float32 { return 0 }
func (p *Particle) SetAngularVelocity(float32) {}
func (p *Particle) InverseMass() float32 { return p.invMass }
func (p *Particle) InverseInertia() float32 { return 0 }
func (p *Particle) CenterOfMass() vmath.Vec2 { return vmath.Zero }
func (p *Particle) Shapes() []*geometry.Shape { return nil }

func (p *Particle) HalfSize() vmath.Vec2 {
	return vmath.V(parameter.ParticleSize/2, parameter.ParticleSize/2)
}

// ApplyImpulse adds velocity delta (momentum transfer); lever is ignored
func (p *Particle) ApplyImpulse(impulse, _ vmath.Vec2) {
	p.velocity = p.velocity.Add(impulse.Scale(p.invMass))
}

// Integrate performs v = v + a*dt; p = p + v*dt
func (p *Particle) Integrate(forces []*Force, dt float32) {
	for _, f := range forces {
		p.velocity = p.velocity.Add(f.Acceleration(p.invMass).Scale(dt))
	}
	p.transform.Position = p.transform.Position.Add(p.velocity.Scale(dt))
}
