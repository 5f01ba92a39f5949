package physics

import (
	"errors"
	"testing"

	"github.com/lixenwraith/tank-physics/geometry"
	"github.com/lixenwraith/tank-physics/vmath"
)

func TestNewRigidBodyRejectsInvalidMass(t *testing.T) {
	shape := geometry.MustCircle(1, vmath.Zero, geometry.DefaultSurface)
	for _, mass := range []float32{0, -1} {
		if _, err := NewRigidBody(nil, mass, shape); !errors.Is(err, ErrInvalidMass) {
			t.Errorf("Mass %v: expected ErrInvalidMass, got %v", mass, err)
		}
	}
	if _, err := NewRigidBody(nil, 1); !errors.Is(err, ErrNoShapes) {
		t.Errorf("Expected ErrNoShapes, got %v", err)
	}
	if _, err := NewParticle(nil, 0); !errors.Is(err, ErrInvalidMass) {
		t.Errorf("Expected ErrInvalidMass for particle, got %v", err)
	}
}

func TestInertiaApproximation(t *testing.T) {
	// Square of side 2: every corner is sqrt(2) from the centre, I = m * 2
	b := newBox(vmath.Zero, vmath.V(2, 2), 1, geometry.DefaultSurface)
	if !vmath.NearlyEqual(b.InverseInertia(), 0.5, 1e-5) {
		t.Errorf("Expected inverse inertia 0.5, got %v", b.InverseInertia())
	}

	// Circle of radius 0.5: I = m * r²/2
	ball := newBall(vmath.Zero, 0.5, 2, geometry.DefaultSurface)
	if !vmath.NearlyEqual(ball.InverseInertia(), 4, 1e-5) {
		t.Errorf("Expected inverse inertia 4, got %v", ball.InverseInertia())
	}
}

func TestCenterOfMassFollowsShapes(t *testing.T) {
	left := geometry.MustPolygon(geometry.Box(vmath.V(1, 1)), vmath.V(-1, 0), geometry.DefaultSurface)
	right := geometry.MustCircle(0.5, vmath.V(3, 0), geometry.DefaultSurface)
	b := MustRigidBody(&Transform{}, 1, left, right)

	if !b.CenterOfMass().ApproxEqual(vmath.V(1, 0), 1e-5) {
		t.Errorf("Expected centre of mass (1,0), got %v", b.CenterOfMass())
	}
	b.Transform().Orientation = 3.14159265
	if !b.CenterOfMass().ApproxEqual(vmath.V(-1, 0), 1e-4) {
		t.Errorf("Expected rotated centre of mass (-1,0), got %v", b.CenterOfMass())
	}
}

func TestIntegrateSemiImplicit(t *testing.T) {
	b := newBall(vmath.Zero, 0.5, 2, geometry.DefaultSurface)
	gravity := NewGravity(10)
	push := &Force{Vector: vmath.V(4, 0)}

	b.Integrate([]*Force{gravity, push}, 0.5)

	// Gravity ignores mass, push is divided by it
	if !b.Velocity().ApproxEqual(vmath.V(1, 5), 1e-5) {
		t.Errorf("Expected velocity (1,5), got %v", b.Velocity())
	}
	// Position uses the updated velocity
	if !b.Transform().Position.ApproxEqual(vmath.V(0.5, 2.5), 1e-5) {
		t.Errorf("Expected position (0.5,2.5), got %v", b.Transform().Position)
	}
}

func TestIntegrateAngular(t *testing.T) {
	b := newBox(vmath.Zero, vmath.V(2, 2), 1, geometry.DefaultSurface)
	b.ApplyTorque(4)
	b.Integrate(nil, 0.5)

	// w = 4 * 0.5 * 0.5
	if !vmath.NearlyEqual(b.AngularVelocity(), 1, 1e-5) {
		t.Errorf("Expected angular velocity 1, got %v", b.AngularVelocity())
	}
	if !vmath.NearlyEqual(b.Transform().Orientation, 0.5, 1e-5) {
		t.Errorf("Expected orientation 0.5, got %v", b.Transform().Orientation)
	}

	// Torque is consumed by one step
	b.Integrate(nil, 0.5)
	if !vmath.NearlyEqual(b.AngularVelocity(), 1, 1e-5) {
		t.Errorf("Expected angular velocity to stay 1, got %v", b.AngularVelocity())
	}
}

func TestIntegrateSpinsAboutCenterOfMass(t *testing.T) {
	hull := geometry.MustPolygon(geometry.Box(vmath.V(2, 0.8)), vmath.Zero, geometry.DefaultSurface)
	turret := geometry.MustPolygon(geometry.Box(vmath.V(1, 0.6)), vmath.V(0, -1), geometry.DefaultSurface)
	b := MustRigidBody(&Transform{Position: vmath.V(3, 2)}, 1, hull, turret)
	if b.CenterOfMass().ApproxEqual(vmath.Zero, 1e-3) {
		t.Fatal("Expected an off-origin centre of mass")
	}
	com := b.Transform().Position.Add(b.CenterOfMass())

	b.SetAngularVelocity(2)
	for i := 0; i < 60; i++ {
		b.Integrate(nil, 1.0/60)
	}

	if !vmath.NearlyEqual(b.Transform().Orientation, 2, 1e-4) {
		t.Errorf("Expected orientation 2, got %v", b.Transform().Orientation)
	}
	if got := b.Transform().Position.Add(b.CenterOfMass()); !got.ApproxEqual(com, 1e-4) {
		t.Errorf("Expected centre of mass to stay at %v without linear velocity, got %v", com, got)
	}
	if b.Transform().Position.ApproxEqual(vmath.V(3, 2), 1e-3) {
		t.Error("Expected the origin to orbit the centre of mass")
	}
}

func TestApplyImpulseMultiplier(t *testing.T) {
	b := newBall(vmath.Zero, 0.5, 2, geometry.DefaultSurface)
	b.SetMultiplier(1.5)
	b.ApplyImpulse(vmath.V(4, 0), vmath.Zero)
	if !b.Velocity().ApproxEqual(vmath.V(3, 0), 1e-5) {
		t.Errorf("Expected velocity (3,0), got %v", b.Velocity())
	}

	b.ApplyImpulse(vmath.V(0, 1), vmath.V(1, 0))
	// lever × impulse = 1, scaled 1.5, times inverse inertia 4
	if !vmath.NearlyEqual(b.AngularVelocity(), 6, 1e-4) {
		t.Errorf("Expected angular velocity 6, got %v", b.AngularVelocity())
	}
}

func TestCloneIndependent(t *testing.T) {
	b := newBall(vmath.V(1, 1), 0.5, 2, geometry.DefaultSurface)
	b.SetVelocity(vmath.V(3, 0))
	c := b.Clone()

	c.Transform().Position = vmath.V(9, 9)
	c.Shapes()[0].SetBounciness(1)
	c.SetVelocity(vmath.Zero)

	if b.Transform().Position != vmath.V(1, 1) {
		t.Errorf("Expected original position unchanged, got %v", b.Transform().Position)
	}
	if b.Shapes()[0].Bounciness() == 1 {
		t.Error("Expected original shape unchanged")
	}
	if b.Velocity() != vmath.V(3, 0) {
		t.Errorf("Expected original velocity unchanged, got %v", b.Velocity())
	}
	if c.Mass() != b.Mass() || c.InverseInertia() != b.InverseInertia() {
		t.Error("Expected clone to keep mass properties")
	}
}

func TestStaticIgnoresMutation(t *testing.T) {
	s := newFloor(0, geometry.BoundarySurface)
	s.ApplyImpulse(vmath.V(100, 0), vmath.V(1, 0))
	s.SetVelocity(vmath.V(1, 1))
	if s.Velocity() != vmath.Zero || s.AngularVelocity() != 0 {
		t.Errorf("Expected static to stay at rest, got v=%v w=%v", s.Velocity(), s.AngularVelocity())
	}
	if s.Kind().Dynamic() {
		t.Error("Expected static kind to be non-dynamic")
	}
	if _, err := NewStatic(nil); !errors.Is(err, ErrNoShapes) {
		t.Errorf("Expected ErrNoShapes, got %v", err)
	}
}

func TestParticleIntegrate(t *testing.T) {
	p, err := NewParticle(&Transform{}, 2)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	p.Integrate([]*Force{{Vector: vmath.V(2, 0)}}, 1)
	if p.Transform().Position != vmath.V(1, 0) {
		t.Errorf("Expected position (1,0), got %v", p.Transform().Position)
	}
	if len(p.Shapes()) != 0 {
		t.Error("Expected particle without shapes")
	}
}

func TestForceSet(t *testing.T) {
	var set ForceSet
	g := NewGravity(9)
	wind := &Force{Vector: vmath.V(1, 0)}

	if !set.Add(g) || !set.Add(wind) {
		t.Fatal("Expected both forces added")
	}
	if set.Add(g) {
		t.Error("Expected duplicate add to fail")
	}
	// Equal values, different identity
	if !set.Add(&Force{Vector: vmath.V(1, 0)}) {
		t.Error("Expected distinct pointer with equal value to be added")
	}
	if !set.Remove(wind) || set.Has(wind) {
		t.Error("Expected wind removed")
	}
	if set.Len() != 2 || set.All()[0] != g {
		t.Errorf("Expected gravity first of 2, got len %d", set.Len())
	}
}
