package engine

import (
	"github.com/chewxy/math32"

	"github.com/lixenwraith/tank-physics/event"
	"github.com/lixenwraith/tank-physics/physics"
	"github.com/lixenwraith/tank-physics/vmath"
)

// hit is one genuine collision recorded during a drain, dispatched afterwards
type hit struct {
	a, b     physics.Object // real objects, never frozen views
	contact  physics.Contact
	approach float32
}

// pairSource abstracts the live pair set and the ghost's private pair list for drain
type pairSource struct {
	// objects resolves a key to the two sides passed to Detect; ok is false for stale keys
	objects func(PairKey) (a, b physics.Object, ok bool)
	// related lists the other pairs to requeue after a genuine collision on key
	related func(PairKey) []PairKey
}

// Step advances the live simulation by one fixed step
//
// Pipeline:
//  1. Integrate every non-ghost integrator under its force set
//  2. Seed the work queue with all active pairs in sorted key order
//  3. Drain: broad phase, Detect, impulses, one correction; genuine hits requeue neighbours
//  4. Dispatch onHit in record order, then flush deferred listener removal
func (w *World) Step() {
	w.steps++
	dt := w.dt()

	for _, h := range w.order {
		e := w.entries[h]
		if e.ghost {
			continue
		}
		if in, ok := e.obj.(physics.Integrator); ok {
			in.Integrate(e.forces.All(), dt)
		}
	}

	hits := w.drain(sortedKeys(w.pairs), pairSource{
		objects: func(k PairKey) (physics.Object, physics.Object, bool) {
			if _, ok := w.pairs[k]; !ok {
				return nil, nil, false
			}
			return w.entries[k.Lo].obj, w.entries[k.Hi].obj, true
		},
		related: func(k PairKey) []PairKey {
			return w.neighbours(k)
		},
	})

	for _, hr := range hits {
		w.dispatchHit(hr)
	}

	w.flush()
	w.mSteps.Add(1)
	w.mPairs.Store(int64(len(w.pairs)))
}

// drain processes the queue until empty, visiting each pair at most CollisionCheckLimit times
// Returns the genuine collisions in the order they occurred, one record per pair
func (w *World) drain(seed []PairKey, src pairSource) []hit {
	w.queue.reset(seed)
	visits := make(map[PairKey]int, len(seed))
	recorded := make(map[PairKey]struct{})
	var hits []hit

	for {
		key, ok := w.queue.pop()
		if !ok {
			break
		}
		a, b, ok := src.objects(key)
		if !ok {
			continue
		}
		live := w.ghost == 0
		if visits[key] >= w.cfg.CollisionCheckLimit {
			if live {
				w.mCapped.Add(1)
			}
			continue
		}
		visits[key]++
		if live {
			w.mChecks.Add(1)
		}

		contact, approach, genuine := w.collide(a, b)
		if !genuine {
			continue
		}
		if _, seen := recorded[key]; !seen {
			recorded[key] = struct{}{}
			hits = append(hits, hit{a: physics.Unfreeze(a), b: physics.Unfreeze(b), contact: contact, approach: approach})
		}
		for _, k := range src.related(key) {
			w.queue.push(k)
		}
	}
	return hits
}

// collide runs the narrow phase and resolver for one pair
// Impulses are applied for every contact, positional correction only for the deepest
// Returns the deepest contact, the closing speed along its normal before resolution, and
// whether the collision was genuine
func (w *World) collide(a, b physics.Object) (physics.Contact, float32, bool) {
	if !overlaps(a, b) {
		return physics.Contact{}, 0, false
	}
	contacts := physics.Detect(a, b, w.resolver.Tuning.SameEdgeThreshold)
	if len(contacts) == 0 {
		return physics.Contact{}, 0, false
	}
	d := physics.Deepest(contacts)
	approach := -contacts[d].B.Velocity().Sub(contacts[d].A.Velocity()).Dot(contacts[d].Normal)

	approaching := false
	for i := range contacts {
		if w.resolver.ApplyImpulses(&contacts[i]) {
			approaching = true
		}
	}
	deepest := contacts[d]
	w.resolver.Correct(&deepest)
	if w.ghost == 0 {
		w.mDepth.Max(float64(deepest.Depth()))
	}

	return deepest, approach, approaching && deepest.Depth() > w.resolver.Tuning.CorrectionThreshold
}

// overlaps is the broad phase: centred half-size boxes around each position
func overlaps(a, b physics.Object) bool {
	pa, pb := a.Transform().Position, b.Transform().Position
	ha, hb := a.HalfSize(), b.HalfSize()
	return math32.Abs(pa.X-pb.X) <= ha.X+hb.X && math32.Abs(pa.Y-pb.Y) <= ha.Y+hb.Y
}

// neighbours returns every other active pair of both ends of key, sorted
func (w *World) neighbours(key PairKey) []PairKey {
	set := make(map[PairKey]struct{})
	for _, h := range [2]Handle{key.Lo, key.Hi} {
		e, ok := w.entries[h]
		if !ok {
			continue
		}
		for k := range e.pairs {
			if k != key {
				set[k] = struct{}{}
			}
		}
	}
	return sortedKeys(set)
}

// dispatchHit notifies both objects, then the world once for the pair
func (w *World) dispatchHit(hr hit) {
	c := hr.contact
	for _, self := range [2]physics.Object{hr.a, hr.b} {
		e := w.lookup(self)
		if e == nil {
			continue
		}
		other := hr.b
		if self == hr.b {
			other = hr.a
		}
		own, otherShape := c.ShapesOf(self)
		e.bus.Emit(event.Event{
			Type:    event.EventHit,
			Caller:  self,
			Payload: &HitPayload{Self: self, Other: other, Shape: own, OtherShape: otherShape, Contact: c, ApproachSpeed: hr.approach},
			Step:    w.steps,
		})
	}
	shapeA, shapeB := c.ShapesOf(hr.a)
	w.mHits.Add(1)
	w.bus.Emit(event.Event{
		Type:    event.EventHit,
		Caller:  w,
		Payload: &HitPayload{Self: hr.a, Other: hr.b, Shape: shapeA, OtherShape: shapeB, Contact: c, ApproachSpeed: hr.approach},
		Step:    w.steps,
	})
}

// dispatchImpulse is the resolver hook; frozen views and unregistered objects are skipped
func (w *World) dispatchImpulse(target, source physics.Object, impulse *vmath.Vec2) {
	if physics.IsFrozen(target) {
		return
	}
	e := w.lookup(target)
	if e == nil || e.bus.Len(event.EventImpulse) == 0 {
		return
	}
	e.bus.Emit(event.Event{
		Type:    event.EventImpulse,
		Caller:  target,
		Payload: &ImpulsePayload{Source: physics.Unfreeze(source), Impulse: impulse},
		Step:    w.steps,
	})
}

// flush purges deferred listener removals on every bus
func (w *World) flush() {
	w.bus.Flush()
	for _, e := range w.entries {
		e.bus.Flush()
	}
}
