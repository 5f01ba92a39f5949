package physics

import (
	"testing"

	"github.com/lixenwraith/tank-physics/geometry"
	"github.com/lixenwraith/tank-physics/vmath"
)

func newBall(pos vmath.Vec2, radius, mass float32, m geometry.Material) *RigidBody {
	return MustRigidBody(&Transform{Position: pos}, mass, geometry.MustCircle(radius, vmath.Zero, m))
}

func TestResolveConservesMomentum(t *testing.T) {
	elastic := geometry.Material{Bounciness: 1}
	a := newBall(vmath.V(0, 0), 1, 2, elastic)
	b := newBall(vmath.V(1.9, 0), 1, 3, elastic)
	a.SetVelocity(vmath.V(4, 0))
	b.SetVelocity(vmath.V(-1, 0))

	before := a.Velocity().Scale(a.Mass()).Add(b.Velocity().Scale(b.Mass()))

	contacts := Detect(a, b, testTol)
	if len(contacts) != 1 {
		t.Fatalf("Expected 1 contact, got %d", len(contacts))
	}
	r := NewResolver(DefaultTuning())
	if !r.Resolve(&contacts[0]) {
		t.Error("Expected genuine collision")
	}

	after := a.Velocity().Scale(a.Mass()).Add(b.Velocity().Scale(b.Mass()))
	if !after.ApproxEqual(before, 1e-4) {
		t.Errorf("Expected momentum %v, got %v", before, after)
	}
	if !a.Velocity().ApproxEqual(vmath.V(-2, 0), 1e-4) || !b.Velocity().ApproxEqual(vmath.V(3, 0), 1e-4) {
		t.Errorf("Expected elastic exchange (-2,0)/(3,0), got %v/%v", a.Velocity(), b.Velocity())
	}
}

func TestResolveSkipsSeparating(t *testing.T) {
	a := newBall(vmath.V(0, 0), 1, 1, geometry.DefaultSurface)
	b := newBall(vmath.V(1.9, 0), 1, 1, geometry.DefaultSurface)
	a.SetVelocity(vmath.V(-1, 0))
	b.SetVelocity(vmath.V(1, 0))

	contacts := Detect(a, b, testTol)
	r := NewResolver(DefaultTuning())
	if r.ApplyImpulses(&contacts[0]) {
		t.Error("Expected separating contact to be skipped")
	}
	if a.Velocity() != vmath.V(-1, 0) || b.Velocity() != vmath.V(1, 0) {
		t.Errorf("Expected velocities unchanged, got %v/%v", a.Velocity(), b.Velocity())
	}
}

func TestFrictionNeverReversesTangentialVelocity(t *testing.T) {
	tests := []struct {
		name     string
		static   float32
		dynamic  float32
		wantStop bool
	}{
		{"sliding", 1, 0.5, false},
		{"gripping", 10, 10, true},
		{"frictionless", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := geometry.Material{StaticFriction: tt.static, DynamicFriction: tt.dynamic}
			floor := newFloor(1, m)
			ball := newBall(vmath.V(0, 0.51), 0.5, 1, m)
			ball.SetVelocity(vmath.V(5, 1))

			contacts := Detect(floor, ball, testTol)
			if len(contacts) != 1 {
				t.Fatalf("Expected 1 contact, got %d", len(contacts))
			}
			NewResolver(DefaultTuning()).ApplyImpulses(&contacts[0])

			lever := contacts[0].Points[0].Sub(ball.Transform().Position)
			tangential := ball.Velocity().Add(vmath.CrossScalar(ball.AngularVelocity(), lever)).X
			if tangential < -1e-4 {
				t.Errorf("Expected tangential velocity to keep its sign, got %v", tangential)
			}
			if tangential > 5+1e-4 {
				t.Errorf("Expected friction not to accelerate, got %v", tangential)
			}
			if tt.wantStop && !vmath.NearlyEqual(tangential, 0, 1e-4) {
				t.Errorf("Expected full grip to stop sliding, got %v", tangential)
			}
			if ball.Velocity().Y > 1e-4 {
				t.Errorf("Expected normal velocity removed, got %v", ball.Velocity().Y)
			}
		})
	}
}

func TestCorrectSharesByInverseMass(t *testing.T) {
	a := newBox(vmath.V(0, 0), vmath.V(2, 2), 1, geometry.DefaultSurface)
	b := newBox(vmath.V(1.5, 0), vmath.V(2, 2), 3, geometry.DefaultSurface)

	contacts := Detect(a, b, testTol)
	if len(contacts) != 1 {
		t.Fatalf("Expected 1 contact, got %d", len(contacts))
	}
	r := NewResolver(DefaultTuning())
	if !r.Correct(&contacts[0]) {
		t.Fatal("Expected correction above threshold")
	}

	// Penetration 0.5 at 20% = 0.1 total, split 3:1 by inverse mass
	moveA := a.Transform().Position.Magnitude()
	moveB := b.Transform().Position.Sub(vmath.V(1.5, 0)).Magnitude()
	if !vmath.NearlyEqual(moveA, 0.075, 1e-4) || !vmath.NearlyEqual(moveB, 0.025, 1e-4) {
		t.Errorf("Expected shifts 0.075/0.025, got %v/%v", moveA, moveB)
	}
	if a.Transform().Position.X >= 0 || b.Transform().Position.X <= 1.5 {
		t.Errorf("Expected objects pushed apart, got %v/%v", a.Transform().Position, b.Transform().Position)
	}

	shallow := contacts[0]
	shallow.Penetration = -0.005
	if r.Correct(&shallow) {
		t.Error("Expected no correction below threshold")
	}
}

func TestResolveAgainstFrozenView(t *testing.T) {
	a := newBall(vmath.V(0, 0), 1, 1, geometry.DefaultSurface)
	b := newBall(vmath.V(1.8, 0), 1, 1, geometry.DefaultSurface)
	a.SetVelocity(vmath.V(2, 0))
	b.SetVelocity(vmath.V(0, 1))

	view := Freeze(b)
	contacts := Detect(a, view, testTol)
	if len(contacts) != 1 {
		t.Fatalf("Expected 1 contact, got %d", len(contacts))
	}
	NewResolver(DefaultTuning()).Resolve(&contacts[0])

	if b.Velocity() != vmath.V(0, 1) || b.Transform().Position != vmath.V(1.8, 0) {
		t.Errorf("Expected frozen object untouched, got v=%v p=%v", b.Velocity(), b.Transform().Position)
	}
	if a.Velocity().X >= 2 {
		t.Errorf("Expected live object to bounce, got %v", a.Velocity())
	}
	if Unfreeze(view) != Object(b) {
		t.Error("Expected Unfreeze to return the wrapped object")
	}
}

func TestImpulseHookScalesImpulse(t *testing.T) {
	a := newBall(vmath.V(0, 0), 1, 1, geometry.Material{})
	b := newBall(vmath.V(1.9, 0), 1, 1, geometry.Material{})
	a.SetVelocity(vmath.V(1, 0))
	b.SetVelocity(vmath.V(-1, 0))

	var calls int
	r := NewResolver(DefaultTuning())
	r.OnImpulse = func(target, source Object, impulse *vmath.Vec2) {
		calls++
		if target == Object(b) {
			*impulse = impulse.Scale(2)
		}
	}
	contacts := Detect(a, b, testTol)
	r.ApplyImpulses(&contacts[0])

	if calls != 2 {
		t.Errorf("Expected 2 hook calls, got %d", calls)
	}
	// Inelastic: jn = 1; A receives -1, B receives +2
	if !a.Velocity().ApproxEqual(vmath.Zero, 1e-4) || !b.Velocity().ApproxEqual(vmath.V(1, 0), 1e-4) {
		t.Errorf("Expected 0/(1,0), got %v/%v", a.Velocity(), b.Velocity())
	}
}
