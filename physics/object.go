package physics

import (
	"errors"

	"github.com/lixenwraith/tank-physics/geometry"
	"github.com/lixenwraith/tank-physics/vmath"
)

var (
	// ErrInvalidMass is returned for zero, negative or NaN mass
	ErrInvalidMass = errors.New("mass must be positive")

	// ErrNoShapes is returned when a collider is built without shapes
	ErrNoShapes = errors.New("collider requires at least one shape")
)

// Kind discriminates the physical object variants
type Kind int

const (
	KindRigidBody Kind = iota
	KindStatic
	KindParticle
)

func (k Kind) String() string {
	switch k {
	case KindRigidBody:
		return "rigid"
	case KindStatic:
		return "static"
	case KindParticle:
		return "particle"
	}
	return "unknown"
}

// Dynamic reports whether the variant moves under forces and impulses
func (k Kind) Dynamic() bool {
	return k != KindStatic
}

// Transform is the spatial record shared by a scene object and its physics object
// Physics writes Position and Orientation; renderers only read
type Transform struct {
	Position    vmath.Vec2
	Orientation float32
}

// Object is the capability every collision participant exposes
type Object interface {
	Kind() Kind
	Transform() *Transform
	Velocity() vmath.Vec2
	SetVelocity(v vmath.Vec2)
	AngularVelocity() float32
	SetAngularVelocity(w float32)
	InverseMass() float32
	InverseInertia() float32

	// CenterOfMass returns the offset from Position in world orientation
	CenterOfMass() vmath.Vec2

	// HalfSize returns the centred axis-aligned half extent at the current orientation
	HalfSize() vmath.Vec2

	Shapes() []*geometry.Shape

	// ApplyImpulse changes linear and angular velocity; lever is relative to the centre of mass
	ApplyImpulse(impulse, lever vmath.Vec2)
}

// Integrator is implemented by objects that advance under forces
type Integrator interface {
	Integrate(forces []*Force, dt float32)
}

// Freeze returns a read-only view of obj: zero inverse mass and inertia, impulses and velocity writes ignored
// The view reports obj's current velocity so relative velocity stays correct
func Freeze(obj Object) Object {
	if f, ok := obj.(frozen); ok {
		return f
	}
	return frozen{Object: obj}
}

// Unfreeze returns the object behind a frozen view, or obj itself
func Unfreeze(obj Object) Object {
	if f, ok := obj.(frozen); ok {
		return f.Object
	}
	return obj
}

// IsFrozen reports whether obj is a view created by Freeze
func IsFrozen(obj Object) bool {
	_, ok := obj.(frozen)
	return ok
}

type frozen struct {
	Object
}

func (f frozen) Kind() Kind { return KindStatic }
func (f frozen) InverseMass() float32 { return 0 }
func (f frozen) InverseInertia() float32 { return 0 }
func (f frozen) SetVelocity(vmath.Vec2) {}
func (f frozen) SetAngularVelocity(float32) {}
func (f frozen) ApplyImpulse(_, _ vmath.Vec2) {}

// Transform returns a copy so positional correction cannot reach the wrapped object
func (f frozen) Transform() *Transform {
	t := *f.Object.Transform()
	return &t
}

// halfSizeOf folds shape reaches into one centred half extent
func halfSizeOf(shapes []*geometry.Shape, orientation float32) vmath.Vec2 {
	var h vmath.Vec2
	for _, s := range shapes {
		r := s.Reach(orientation)
		if r.X > h.X {
			h.X = r.X
		}
		if r.Y > h.Y {
			h.Y = r.Y
		}
	}
	return h
}
