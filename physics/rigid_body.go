package physics

import (
	"fmt"

	"github.com/lixenwraith/tank-physics/geometry"
	"github.com/lixenwraith/tank-physics/vmath"
)

// RigidBody is a dynamic collider with linear and angular state
type RigidBody struct {
	transform *Transform
	shapes    []*geometry.Shape

	mass       float32
	invMass    float32
	invInertia float32
	com        vmath.Vec2 // local, unrotated

	velocity        vmath.Vec2
	angularVelocity float32
	torque          float32

	// multiplier scales incoming impulses (knockback), 1 is neutral
	multiplier float32
}

// NewRigidBody builds a body over 1..N shapes
// Rotational inertia is approximated from the spread of hitbox points around the centre of mass
func NewRigidBody(transform *Transform, mass float32, shapes ...*geometry.Shape) (*RigidBody, error) {
	if !(mass > 0) {
		return nil, fmt.Errorf("rigid body mass %v: %w", mass, ErrInvalidMass)
	}
	if len(shapes) == 0 {
		return nil, ErrNoShapes
	}
	if transform == nil {
		transform = &Transform{}
	}
	b := &RigidBody{
		transform:  transform,
		shapes:     shapes,
		multiplier: 1,
	}
	b.setMass(mass)
	return b, nil
}

// MustRigidBody panics on invalid input
func MustRigidBody(transform *Transform, mass float32, shapes ...*geometry.Shape) *RigidBody {
	b, err := NewRigidBody(transform, mass, shapes...)
	if err != nil {
		panic(err)
	}
	return b
}

func (b *RigidBody) setMass(mass float32) {
	b.mass = mass
	b.invMass = 1 / mass

	centroids := make([]vmath.Vec2, len(b.shapes))
	for i, s := range b.shapes {
		centroids[i] = s.Centroid()
	}
	b.com = vmath.Centroid(centroids)

	var spread float32
	var samples int
	for _, s := range b.shapes {
		if s.Kind() == geometry.Circle {
			r := s.Radius()
			spread += r*r/2 + s.Anchor().DistanceSq(b.com)
			samples++
			continue
		}
		for _, v := range s.Vertices() {
			spread += s.Anchor().Add(v).DistanceSq(b.com)
			samples++
		}
	}
	inertia := mass * spread / float32(samples)
	if inertia > vmath.Epsilon {
		b.invInertia = 1 / inertia
	} else {
		b.invInertia = 0
	}
}

// SetMass replaces the mass and rederives inverse mass and inertia
func (b *RigidBody) SetMass(mass float32) error {
	if !(mass > 0) {
		return fmt.Errorf("rigid body mass %v: %w", mass, ErrInvalidMass)
	}
	b.setMass(mass)
	return nil
}

// Clone returns an independent body with copied shapes and its own transform
func (b *RigidBody) Clone() *RigidBody {
	t := *b.transform
	shapes := make([]*geometry.Shape, len(b.shapes))
	for i, s := range b.shapes {
		shapes[i] = s.Clone()
	}
	c := &RigidBody{
		transform:       &t,
		shapes:          shapes,
		velocity:        b.velocity,
		angularVelocity: b.angularVelocity,
		multiplier:      b.multiplier,
	}
	c.setMass(b.mass)
	return c
}

func (b *RigidBody) Kind() Kind { return KindRigidBody }
func (b *RigidBody) Transform() *Transform { return b.transform }
func (b *RigidBody) Velocity() vmath.Vec2 { return b.velocity }
func (b *RigidBody) SetVelocity(v vmath.Vec2) { b.velocity = v }
func (b *RigidBody) AngularVelocity() float32 { return b.angularVelocity }
func (b *RigidBody) SetAngularVelocity(w float32) { b.angularVelocity = w }
func (b *RigidBody) Mass() float32 { return b.mass }
func (b *RigidBody) InverseMass() float32 { return b.invMass }
func (b *RigidBody) InverseInertia() float32 { return b.invInertia }
func (b *RigidBody) Shapes() []*geometry.Shape { return b.shapes }
func (b *RigidBody) Multiplier() float32 { return b.multiplier }

// SetMultiplier scales every later impulse on this body
func (b *RigidBody) SetMultiplier(m float32) { b.multiplier = m }

// CenterOfMass returns the centre of mass offset rotated into world orientation
func (b *RigidBody) CenterOfMass() vmath.Vec2 {
	return b.com.Rotate(b.transform.Orientation)
}

func (b *RigidBody) HalfSize() vmath.Vec2 {
	return halfSizeOf(b.shapes, b.transform.Orientation)
}

// ApplyImpulse changes momentum at lever (relative to the centre of mass)
func (b *RigidBody) ApplyImpulse(impulse, lever vmath.Vec2) {
	impulse = impulse.Scale(b.multiplier)
	b.velocity = b.velocity.Add(impulse.Scale(b.invMass))
	b.angularVelocity += lever.Cross(impulse) * b.invInertia
}

// ApplyTorque accumulates torque consumed by the next Integrate
func (b *RigidBody) ApplyTorque(torque float32) {
	b.torque += torque
}

// Integrate advances the body by dt seconds with semi-implicit Euler
// Velocity is updated from forces before it moves the position; spin turns the body about
// its centre of mass, matching the lever arms impulses are applied with
func (b *RigidBody) Integrate(forces []*Force, dt float32) {
	for _, f := range forces {
		b.velocity = b.velocity.Add(f.Acceleration(b.invMass).Scale(dt))
	}
	b.angularVelocity += b.torque * b.invInertia * dt
	b.torque = 0

	t := b.transform
	t.Position = t.Position.Add(b.velocity.Scale(dt))
	if b.angularVelocity != 0 {
		pivot := t.Position.Add(b.com.Rotate(t.Orientation))
		t.Orientation += b.angularVelocity * dt
		t.Position = pivot.Sub(b.com.Rotate(t.Orientation))
		for _, s := range b.shapes {
			s.Rotated(t.Orientation)
		}
	}
}
