package engine

import (
	"testing"
	"time"

	"github.com/chewxy/math32"

	"github.com/lixenwraith/tank-physics/config"
	"github.com/lixenwraith/tank-physics/event"
	"github.com/lixenwraith/tank-physics/geometry"
	"github.com/lixenwraith/tank-physics/physics"
	"github.com/lixenwraith/tank-physics/status"
	"github.com/lixenwraith/tank-physics/vmath"
)

var inert = geometry.Material{}

func newFloor(top float32) *physics.Static {
	shape := geometry.MustPolygon(geometry.Box(vmath.V(20, 2)), vmath.Zero, inert)
	return physics.MustStatic(&physics.Transform{Position: vmath.V(0, top+1)}, shape)
}

func newBall(pos vmath.Vec2, radius, mass float32, m geometry.Material) *physics.RigidBody {
	shape := geometry.MustCircle(radius, vmath.Zero, m)
	return physics.MustRigidBody(&physics.Transform{Position: pos}, mass, shape)
}

func newBox(pos, size vmath.Vec2, mass float32, m geometry.Material) *physics.RigidBody {
	shape := geometry.MustPolygon(geometry.Box(size), vmath.Zero, m)
	return physics.MustRigidBody(&physics.Transform{Position: pos}, mass, shape)
}

func weightless() config.Physics {
	cfg := config.DefaultPhysics()
	cfg.Gravity = 0
	return cfg
}

func TestHandlesMonotonic(t *testing.T) {
	w := NewWorld(config.DefaultPhysics(), nil)
	a := newBall(vmath.V(0, 0), 0.5, 1, inert)
	b := newBall(vmath.V(5, 0), 0.5, 1, inert)
	c := newBall(vmath.V(10, 0), 0.5, 1, inert)

	ha, hb := w.Attach(a), w.Attach(b)
	if ha != 1 || hb != 2 {
		t.Fatalf("Expected handles 1,2, got %d,%d", ha, hb)
	}
	if !w.Detach(hb) {
		t.Fatal("Expected detach to succeed")
	}
	if hc := w.Attach(c); hc != 3 {
		t.Errorf("Expected handle 3 after detach, got %d", hc)
	}
	if h := w.Attach(a); h != 0 {
		t.Errorf("Expected duplicate attach rejected, got %d", h)
	}
	if got, ok := w.HandleOf(c); !ok || got != 3 {
		t.Errorf("Expected HandleOf 3, got %d (%v)", got, ok)
	}
	if w.Object(2) != nil {
		t.Error("Expected detached handle to resolve to nil")
	}
}

func TestPairInvariant(t *testing.T) {
	w := NewWorld(config.DefaultPhysics(), nil)
	floor := newFloor(1)
	wall := physics.MustStatic(&physics.Transform{Position: vmath.V(12, 0)},
		geometry.MustPolygon(geometry.Box(vmath.V(1, 10)), vmath.Zero, inert))
	ball := newBall(vmath.V(0, 0), 0.5, 1, inert)
	dust, err := physics.NewParticle(&physics.Transform{}, 1)
	if err != nil {
		t.Fatal(err)
	}

	w.Attach(floor)
	w.Attach(wall)
	w.Attach(ball)
	w.Attach(dust)

	if w.HasPair(floor, wall) {
		t.Error("Expected no pair between two statics")
	}
	if w.HasPair(ball, dust) || w.HasPair(floor, dust) {
		t.Error("Expected no pairs for a shapeless particle")
	}
	if !w.HasPair(floor, ball) || !w.HasPair(wall, ball) {
		t.Error("Expected ball paired with both statics")
	}

	pairs := w.Pairs()
	if len(pairs) != 2 || pairs[0] != (PairKey{Lo: 1, Hi: 3}) || pairs[1] != (PairKey{Lo: 2, Hi: 3}) {
		t.Errorf("Expected sorted pairs [{1 3} {2 3}], got %v", pairs)
	}

	w.DetachObject(floor)
	if len(w.Pairs()) != 1 || w.HasPair(floor, ball) {
		t.Errorf("Expected floor pairs removed, got %v", w.Pairs())
	}
	if len(w.Forces(ball)) != 1 || w.Forces(ball)[0] != w.Gravity() {
		t.Error("Expected dynamic object to receive default gravity")
	}
	if len(w.Forces(wall)) != 0 {
		t.Error("Expected static object without forces")
	}
}

func TestCircleSettlesOnFloor(t *testing.T) {
	w := NewWorld(config.DefaultPhysics(), nil)
	floor := newFloor(1)
	ball := newBall(vmath.V(0, 1-0.49), 0.5, 1, inert)
	w.Attach(floor)
	w.Attach(ball)

	for i := 0; i < 20; i++ {
		w.Advance(100 * time.Millisecond)
	}

	gap := 1 - ball.Transform().Position.Y
	if math32.Abs(gap-0.5) > 0.0105 {
		t.Errorf("Expected centre 0.5 above floor, got %v", gap)
	}
	if math32.Abs(ball.Velocity().Y) > 0.1 {
		t.Errorf("Expected near-zero vertical velocity, got %v", ball.Velocity().Y)
	}
}

func TestRestingBoxSettles(t *testing.T) {
	w := NewWorld(config.DefaultPhysics(), nil)
	floor := newFloor(1)
	box := newBox(vmath.V(0, 0.5), vmath.V(1, 1), 2, inert)
	w.Attach(floor)
	w.Attach(box)

	steps := w.Advance(2 * time.Second)
	if steps < 239 {
		t.Fatalf("Expected about 240 steps, got %d", steps)
	}

	if box.Velocity().Magnitude() > 0.1 {
		t.Errorf("Expected resting velocity, got %v", box.Velocity())
	}
	if math32.Abs(box.AngularVelocity()) > 0.1 {
		t.Errorf("Expected no spin, got %v", box.AngularVelocity())
	}
	if y := box.Transform().Position.Y; y < 0.48 || y > 0.52 {
		t.Errorf("Expected box to stay on the floor, got y=%v", y)
	}
}

func TestSquaresCollideInelastic(t *testing.T) {
	w := NewWorld(weightless(), nil)
	a := newBox(vmath.V(0, 0), vmath.V(2, 2), 1, inert)
	b := newBox(vmath.V(1.9, 0), vmath.V(2, 2), 1, inert)
	a.SetVelocity(vmath.V(1, 0))
	b.SetVelocity(vmath.V(-1, 0))
	w.Attach(a)
	w.Attach(b)

	w.Advance(500 * time.Millisecond)

	if a.Velocity().Magnitude() > 1e-3 || b.Velocity().Magnitude() > 1e-3 {
		t.Errorf("Expected both at rest, got %v / %v", a.Velocity(), b.Velocity())
	}
	if math32.Abs(a.AngularVelocity()) > 1e-3 || math32.Abs(b.AngularVelocity()) > 1e-3 {
		t.Errorf("Expected no spin, got %v / %v", a.AngularVelocity(), b.AngularVelocity())
	}
}

func TestHitDispatch(t *testing.T) {
	metrics := status.NewRegistry()
	w := NewWorld(weightless(), metrics)
	a := newBall(vmath.V(0, 0), 1, 1, inert)
	b := newBall(vmath.V(1.95, 0), 1, 1, inert)
	a.SetVelocity(vmath.V(3, 0))
	b.SetVelocity(vmath.V(-3, 0))
	w.Attach(a)
	w.Attach(b)

	var selfHits []*HitPayload
	w.ObjectBus(a).Subscribe(event.EventHit, func(ev event.Event) {
		selfHits = append(selfHits, ev.Payload.(*HitPayload))
	})
	var otherHits int
	w.ObjectBus(b).Subscribe(event.EventHit, func(ev event.Event) {
		p := ev.Payload.(*HitPayload)
		if p.Self != physics.Object(b) || p.Other != physics.Object(a) {
			t.Errorf("Expected payload from b's side, got self=%p other=%p", p.Self, p.Other)
		}
		otherHits++
	})
	worldHits := 0
	w.Bus().Subscribe(event.EventHit, func(event.Event) { worldHits++ })

	w.Step()

	if len(selfHits) != 1 || otherHits != 1 || worldHits != 1 {
		t.Fatalf("Expected one hit on each bus, got %d/%d/%d", len(selfHits), otherHits, worldHits)
	}
	p := selfHits[0]
	if p.Self != physics.Object(a) || p.Other != physics.Object(b) {
		t.Error("Expected a's payload to name a as self")
	}
	if p.Shape != a.Shapes()[0] || p.OtherShape != b.Shapes()[0] {
		t.Error("Expected payload shapes to follow the receiver")
	}
	if math32.Abs(p.ApproachSpeed-6) > 1e-4 {
		t.Errorf("Expected approach speed 6, got %v", p.ApproachSpeed)
	}
	if got := metrics.Ints.Get(status.KeyHits).Load(); got != 1 {
		t.Errorf("Expected hit metric 1, got %d", got)
	}
}

func TestImpulseListenerRescales(t *testing.T) {
	w := NewWorld(weightless(), nil)
	a := newBall(vmath.V(0, 0), 1, 1, inert)
	b := newBall(vmath.V(1.9, 0), 1, 1, inert)
	a.SetVelocity(vmath.V(1, 0))
	b.SetVelocity(vmath.V(-1, 0))
	w.Attach(a)
	w.Attach(b)

	calls := 0
	w.ObjectBus(b).Subscribe(event.EventImpulse, func(ev event.Event) {
		p := ev.Payload.(*ImpulsePayload)
		if p.Source != physics.Object(a) {
			t.Error("Expected impulse source to be a")
		}
		*p.Impulse = vmath.Zero
		calls++
	})

	w.Step()

	if calls != 1 {
		t.Errorf("Expected 1 impulse event, got %d", calls)
	}
	if !b.Velocity().ApproxEqual(vmath.V(-1, 0), 1e-5) {
		t.Errorf("Expected cancelled impulse to leave b unchanged, got %v", b.Velocity())
	}
	if !a.Velocity().ApproxEqual(vmath.Zero, 1e-4) {
		t.Errorf("Expected a to stop, got %v", a.Velocity())
	}
}

func TestSuppressedPairIgnored(t *testing.T) {
	w := NewWorld(weightless(), nil)
	a := newBall(vmath.V(0, 0), 1, 1, inert)
	b := newBall(vmath.V(1.5, 0), 1, 1, inert)
	a.SetVelocity(vmath.V(1, 0))
	b.SetVelocity(vmath.V(-1, 0))
	w.Attach(a)
	w.Attach(b)

	hits := 0
	w.Bus().Subscribe(event.EventHit, func(event.Event) { hits++ })

	if !w.IgnoreCollisions(a, b) {
		t.Fatal("Expected suppression recorded")
	}
	if w.HasPair(a, b) {
		t.Error("Expected pair removed")
	}
	w.Step()

	if hits != 0 {
		t.Errorf("Expected no onHit, got %d", hits)
	}
	if !a.Velocity().ApproxEqual(vmath.V(1, 0), 1e-6) || !b.Velocity().ApproxEqual(vmath.V(-1, 0), 1e-6) {
		t.Errorf("Expected no impulse, got %v / %v", a.Velocity(), b.Velocity())
	}

	if !w.RestoreCollisions(a, b) || !w.HasPair(a, b) {
		t.Error("Expected pair restored")
	}
	w.Step()
	if hits != 1 {
		t.Errorf("Expected restored pair to collide, got %d hits", hits)
	}
}

func TestIgnoreAllBut(t *testing.T) {
	w := NewWorld(config.DefaultPhysics(), nil)
	floor := newFloor(1)
	tank := newBox(vmath.V(0, 0), vmath.V(1, 1), 1, inert)
	crate := newBox(vmath.V(3, 0), vmath.V(1, 1), 1, inert)
	shell := newBall(vmath.V(6, 0), 0.1, 1, inert)
	w.Attach(floor)
	w.Attach(tank)
	w.Attach(crate)
	w.Attach(shell)

	if n := w.IgnoreAllBut(shell, floor); n != 2 {
		t.Errorf("Expected 2 suppressed, got %d", n)
	}
	if !w.HasPair(shell, floor) || w.HasPair(shell, tank) || w.HasPair(shell, crate) {
		t.Error("Expected shell to collide with the floor only")
	}
	if !w.HasPair(tank, crate) {
		t.Error("Expected unrelated pairs untouched")
	}

	// Suppression dies with the object
	w.DetachObject(shell)
	w.Attach(shell)
	if !w.HasPair(shell, tank) || w.Suppressed(shell, tank) {
		t.Error("Expected reattached shell to start without suppression")
	}
}

func TestAdvanceAccumulator(t *testing.T) {
	w := NewWorld(config.DefaultPhysics(), nil)
	step := w.Config().FixedStep

	updates := 0
	w.Bus().Subscribe(event.EventUpdate, func(ev event.Event) {
		p := ev.Payload.(*UpdatePayload)
		if p.Step != w.Steps()+1 {
			t.Errorf("Expected update before step %d, got %d", w.Steps()+1, p.Step)
		}
		updates++
	})

	if n := w.Advance(step / 2); n != 0 {
		t.Errorf("Expected no step for half a step, got %d", n)
	}
	if n := w.Advance(step*3 - step/2); n != 3 {
		t.Errorf("Expected 3 steps, got %d", n)
	}
	if updates != 3 || w.Steps() != 3 {
		t.Errorf("Expected 3 updates and steps, got %d/%d", updates, w.Steps())
	}

	w.Advance(step / 3)
	w.SetPaused(true)
	if w.Accumulated() != 0 {
		t.Errorf("Expected pause to clear accumulator, got %v", w.Accumulated())
	}
	if n := w.Advance(step * 10); n != 0 {
		t.Errorf("Expected paused world to skip, got %d steps", n)
	}
	if w.TogglePause() {
		t.Error("Expected toggle to resume")
	}
	if n := w.Advance(step); n != 1 {
		t.Errorf("Expected 1 step after resume, got %d", n)
	}
}

func TestPauseFromListener(t *testing.T) {
	w := NewWorld(config.DefaultPhysics(), nil)
	w.Bus().Subscribe(event.EventUpdate, func(event.Event) {
		if w.Steps() == 1 {
			w.SetPaused(true)
		}
	})
	if n := w.Advance(w.Config().FixedStep * 5); n != 2 {
		t.Errorf("Expected stop after pausing step, got %d", n)
	}
	if w.Accumulated() != 0 {
		t.Errorf("Expected empty accumulator, got %v", w.Accumulated())
	}
}

func TestDetachDuringHit(t *testing.T) {
	w := NewWorld(weightless(), nil)
	a := newBall(vmath.V(0, 0), 1, 1, inert)
	b := newBall(vmath.V(1.9, 0), 1, 1, inert)
	a.SetVelocity(vmath.V(1, 0))
	w.Attach(a)
	w.Attach(b)

	var h event.Handle
	calls := 0
	bus := w.ObjectBus(b)
	h = bus.Subscribe(event.EventHit, func(ev event.Event) {
		calls++
		bus.Unsubscribe(h)
		w.DetachObject(b)
	})

	w.Step()
	if calls != 1 || w.Len() != 1 {
		t.Errorf("Expected b removed by its own listener, calls=%d len=%d", calls, w.Len())
	}
	if w.HasPair(a, b) {
		t.Error("Expected pair removed with b")
	}
	w.Step()
	if calls != 1 {
		t.Errorf("Expected no further hits, got %d", calls)
	}
}
