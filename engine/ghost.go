package engine

import (
	"log"
	"time"

	"github.com/lixenwraith/tank-physics/event"
	"github.com/lixenwraith/tank-physics/physics"
)

// SimulateUntilDetached runs obj alone against a frozen copy of the world
//
// The object is attached as a ghost with default gravity plus forces and the given bus
// (a fresh bus when nil). Each ghost step integrates only the ghost, resolves only its
// pairs against frozen views, and fires only the ghost's update and onHit listeners.
// The run ends when the ghost is detached, usually from its own onHit listener, or when
// SimulationTimeout of simulated time elapses. Other objects are never mutated.
//
// Returns every registered object the ghost genuinely collided with; empty when obj is
// already registered or another ghost is running.
func (w *World) SimulateUntilDetached(obj physics.Object, bus *event.Bus, forces ...*physics.Force) ObjectSet {
	touched := make(ObjectSet)
	if obj == nil {
		return touched
	}
	if w.ghost != 0 {
		log.Printf("engine: ghost rejected, simulation %d already running", w.ghost)
		return touched
	}
	if h, ok := w.byObject[obj]; ok {
		log.Printf("engine: ghost rejected, object already registered as %d", h)
		return touched
	}

	g := w.attach(obj, true, forces)
	if bus != nil {
		g.bus = bus
	}
	w.ghost = g.handle
	w.mObjects.Store(int64(len(w.order)))
	w.mGhostRuns.Add(1)
	defer func() {
		w.ghost = 0
		w.Detach(g.handle)
		g.bus.Flush()
	}()

	integrator, _ := obj.(physics.Integrator)
	step := w.cfg.FixedStep
	dt := w.dt()
	var simulated time.Duration

	for n := uint64(1); w.ghostAlive(g); n++ {
		if simulated >= w.cfg.SimulationTimeout {
			log.Printf("engine: ghost %d timed out after %v", g.handle, simulated)
			break
		}

		g.bus.Emit(event.Event{Type: event.EventUpdate, Caller: obj, Payload: &UpdatePayload{Step: n, Dt: dt}, Step: n})
		if !w.ghostAlive(g) {
			break
		}
		if integrator != nil {
			integrator.Integrate(g.forces.All(), dt)
		}

		pairs := w.ghostPairs(g)
		hits := w.drain(pairs, pairSource{
			objects: func(k PairKey) (physics.Object, physics.Object, bool) {
				other, ok := w.entries[k.Other(g.handle)]
				if !ok || !w.ghostAlive(g) {
					return nil, nil, false
				}
				return obj, physics.Freeze(other.obj), true
			},
			related: func(k PairKey) []PairKey {
				out := make([]PairKey, 0, len(pairs))
				for _, p := range pairs {
					if p != k {
						out = append(out, p)
					}
				}
				return out
			},
		})

		for _, hr := range hits {
			touched.Add(hr.b)
			own, other := hr.contact.ShapesOf(obj)
			g.bus.Emit(event.Event{
				Type:    event.EventHit,
				Caller:  obj,
				Payload: &HitPayload{Self: obj, Other: hr.b, Shape: own, OtherShape: other, Contact: hr.contact, ApproachSpeed: hr.approach},
				Step:    n,
			})
		}
		g.bus.Flush()

		simulated += step
		w.mGhostStep.Add(1)
	}
	return touched
}

// Simulating reports whether a ghost run is in progress
func (w *World) Simulating() bool { return w.ghost != 0 }

func (w *World) ghostAlive(g *entry) bool {
	e, ok := w.entries[g.handle]
	return ok && e == g
}

// ghostPairs lists the ghost's candidate pairs against every live object, sorted
func (w *World) ghostPairs(g *entry) []PairKey {
	if len(g.obj.Shapes()) == 0 {
		return nil
	}
	var out []PairKey
	for _, h := range w.order {
		e := w.entries[h]
		if e == g || e.ghost || len(e.obj.Shapes()) == 0 {
			continue
		}
		if !g.obj.Kind().Dynamic() && !e.obj.Kind().Dynamic() {
			continue
		}
		key := MakePairKey(g.handle, h)
		if _, blocked := w.suppressed[key]; blocked {
			continue
		}
		out = append(out, key)
	}
	return out
}
