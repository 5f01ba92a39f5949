package engine

import (
	"log"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/tank-physics/config"
	"github.com/lixenwraith/tank-physics/event"
	"github.com/lixenwraith/tank-physics/parameter"
	"github.com/lixenwraith/tank-physics/physics"
	"github.com/lixenwraith/tank-physics/status"
)

// entry is the arena record of one registered object
type entry struct {
	handle Handle
	obj    physics.Object
	forces *physics.ForceSet
	bus    *event.Bus
	ghost  bool
	pairs  map[PairKey]struct{}
}

// World owns registered objects, their force sets and listener buses, and the active pair set
//
// Architecture:
//   - Objects live in a handle arena; byObject is the reverse lookup
//   - Pair invariant: a key is active iff both ends are registered, neither is a ghost,
//     both carry shapes, at least one is dynamic, and the pair is not suppressed
//   - Every entry indexes its own pair keys so detach and requeue touch only neighbours
//   - Not safe for concurrent use; metrics are atomics and may be read elsewhere
type World struct {
	cfg config.Physics

	next     Handle
	entries  map[Handle]*entry
	order    []Handle // ascending
	byObject map[physics.Object]Handle

	pairs      map[PairKey]struct{}
	suppressed map[PairKey]struct{}
	queue      pairQueue

	bus      *event.Bus
	resolver *physics.Resolver
	gravity  *physics.Force

	accumulator time.Duration
	paused      bool
	steps       uint64
	ghost       Handle

	metrics    *status.Registry
	mSteps     *atomic.Int64
	mObjects   *atomic.Int64
	mPairs     *atomic.Int64
	mChecks    *atomic.Int64
	mCapped    *atomic.Int64
	mHits      *atomic.Int64
	mGhostRuns *atomic.Int64
	mGhostStep *atomic.Int64
	mDepth     *status.AtomicFloat
}

// NewWorld creates an empty world; a nil registry gets a private one
func NewWorld(cfg config.Physics, metrics *status.Registry) *World {
	def := config.DefaultPhysics()
	if cfg.FixedStep <= 0 {
		cfg.FixedStep = def.FixedStep
	}
	if cfg.CollisionCheckLimit < 1 {
		cfg.CollisionCheckLimit = def.CollisionCheckLimit
	}
	if cfg.SimulationTimeout <= 0 {
		cfg.SimulationTimeout = def.SimulationTimeout
	}
	if metrics == nil {
		metrics = status.NewRegistry()
	}

	w := &World{
		cfg:        cfg,
		next:       1,
		entries:    make(map[Handle]*entry),
		byObject:   make(map[physics.Object]Handle),
		pairs:      make(map[PairKey]struct{}),
		suppressed: make(map[PairKey]struct{}),
		queue:      pairQueue{items: make([]PairKey, 0, parameter.PairQueueInitialCapacity)},
		bus:        event.NewBus(),
		resolver: physics.NewResolver(physics.Tuning{
			SameEdgeThreshold:    cfg.SameEdgeThreshold,
			CorrectionThreshold:  cfg.CorrectionThreshold,
			CorrectionPercentage: cfg.CorrectionPercentage,
		}),
		gravity: physics.NewGravity(cfg.Gravity),
		metrics: metrics,
	}
	w.resolver.OnImpulse = w.dispatchImpulse

	w.mSteps = metrics.Ints.Get(status.KeySteps)
	w.mObjects = metrics.Ints.Get(status.KeyObjects)
	w.mPairs = metrics.Ints.Get(status.KeyPairs)
	w.mChecks = metrics.Ints.Get(status.KeyChecks)
	w.mCapped = metrics.Ints.Get(status.KeyCapped)
	w.mHits = metrics.Ints.Get(status.KeyHits)
	w.mGhostRuns = metrics.Ints.Get(status.KeyGhostRuns)
	w.mGhostStep = metrics.Ints.Get(status.KeyGhostSteps)
	w.mDepth = metrics.Floats.Get(status.KeyDepth)
	return w
}

// Config returns the physics settings in effect
func (w *World) Config() config.Physics { return w.cfg }

// Metrics returns the registry the world publishes to
func (w *World) Metrics() *status.Registry { return w.metrics }

// Bus returns the world-level listener bus
func (w *World) Bus() *event.Bus { return w.bus }

// Gravity returns the shared gravity force every dynamic object receives on attach
func (w *World) Gravity() *physics.Force { return w.gravity }

// Steps returns the number of live steps run so far
func (w *World) Steps() uint64 { return w.steps }

// Attach registers obj with the default gravity (dynamic objects only) plus forces
// Returns 0 when obj is nil or already registered
func (w *World) Attach(obj physics.Object, forces ...*physics.Force) Handle {
	if obj == nil {
		return 0
	}
	if h, ok := w.byObject[obj]; ok {
		log.Printf("engine: attach rejected, object already registered as %d", h)
		return 0
	}
	e := w.attach(obj, false, forces)
	for _, h := range w.order {
		other := w.entries[h]
		if other == e || other.ghost {
			continue
		}
		if w.eligible(e, other) {
			w.linkPair(e, other)
		}
	}
	w.mObjects.Store(int64(len(w.order)))
	return e.handle
}

func (w *World) attach(obj physics.Object, ghost bool, forces []*physics.Force) *entry {
	e := &entry{
		handle: w.next,
		obj:    obj,
		forces: &physics.ForceSet{},
		bus:    event.NewBus(),
		ghost:  ghost,
		pairs:  make(map[PairKey]struct{}),
	}
	w.next++
	if obj.Kind().Dynamic() {
		e.forces.Add(w.gravity)
	}
	for _, f := range forces {
		if f != nil {
			e.forces.Add(f)
		}
	}
	w.entries[e.handle] = e
	w.order = append(w.order, e.handle)
	w.byObject[obj] = e.handle
	return e
}

// Detach removes the object, its pairs and its suppression records
// Safe to call from any listener; returns false for unknown handles
func (w *World) Detach(h Handle) bool {
	e, ok := w.entries[h]
	if !ok {
		return false
	}
	for key := range e.pairs {
		w.unlinkPair(key)
	}
	for key := range w.suppressed {
		if key.Lo == h || key.Hi == h {
			delete(w.suppressed, key)
		}
	}
	delete(w.entries, h)
	delete(w.byObject, e.obj)
	for i, oh := range w.order {
		if oh == h {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
	w.mObjects.Store(int64(len(w.order)))
	return true
}

// DetachObject removes obj by identity
func (w *World) DetachObject(obj physics.Object) bool {
	h, ok := w.byObject[obj]
	if !ok {
		return false
	}
	return w.Detach(h)
}

// HandleOf returns the handle obj is registered under
func (w *World) HandleOf(obj physics.Object) (Handle, bool) {
	h, ok := w.byObject[obj]
	return h, ok
}

// Object returns the object registered under h, nil if unknown
func (w *World) Object(h Handle) physics.Object {
	if e, ok := w.entries[h]; ok {
		return e.obj
	}
	return nil
}

// Objects returns every registered object in handle order, ghosts excluded
func (w *World) Objects() []physics.Object {
	out := make([]physics.Object, 0, len(w.order))
	for _, h := range w.order {
		if e := w.entries[h]; !e.ghost {
			out = append(out, e.obj)
		}
	}
	return out
}

// Len returns the number of registered objects, ghosts included
func (w *World) Len() int { return len(w.order) }

// ObjectBus returns the listener bus of obj, nil if unregistered
func (w *World) ObjectBus(obj physics.Object) *event.Bus {
	if e := w.lookup(obj); e != nil {
		return e.bus
	}
	return nil
}

// AddForce adds f to obj's force set
func (w *World) AddForce(obj physics.Object, f *physics.Force) bool {
	e := w.lookup(obj)
	if e == nil || f == nil {
		return false
	}
	return e.forces.Add(f)
}

// RemoveForce removes f from obj's force set
func (w *World) RemoveForce(obj physics.Object, f *physics.Force) bool {
	e := w.lookup(obj)
	if e == nil {
		return false
	}
	return e.forces.Remove(f)
}

// Forces returns obj's active forces in insertion order
func (w *World) Forces(obj physics.Object) []*physics.Force {
	if e := w.lookup(obj); e != nil {
		return e.forces.All()
	}
	return nil
}

func (w *World) lookup(obj physics.Object) *entry {
	h, ok := w.byObject[obj]
	if !ok {
		return nil
	}
	return w.entries[h]
}

// Paused reports whether Advance is suspended
func (w *World) Paused() bool { return w.paused }

// SetPaused suspends or resumes Advance; pausing discards accumulated time
func (w *World) SetPaused(paused bool) {
	w.paused = paused
	if paused {
		w.accumulator = 0
	}
}

// TogglePause flips the pause state and returns the new state
func (w *World) TogglePause() bool {
	w.SetPaused(!w.paused)
	return w.paused
}

// Accumulated returns simulated time waiting for the next fixed step
func (w *World) Accumulated() time.Duration { return w.accumulator }

// Advance feeds elapsed real time into the accumulator and runs every whole fixed step it covers
// Returns the number of steps run
func (w *World) Advance(elapsed time.Duration) int {
	if w.paused {
		return 0
	}
	w.accumulator += elapsed
	step := w.cfg.FixedStep
	n := 0
	for w.accumulator >= step {
		w.emitUpdate()
		w.Step()
		w.accumulator -= step
		n++
		if w.paused {
			w.accumulator = 0
			break
		}
	}
	return n
}

// emitUpdate dispatches update to the world, then to every live object in handle order
func (w *World) emitUpdate() {
	payload := &UpdatePayload{Step: w.steps + 1, Dt: w.dt()}
	w.bus.Emit(event.Event{Type: event.EventUpdate, Caller: w, Payload: payload, Step: payload.Step})

	snapshot := append([]Handle(nil), w.order...)
	for _, h := range snapshot {
		e, ok := w.entries[h]
		if !ok || e.ghost {
			continue
		}
		e.bus.Emit(event.Event{Type: event.EventUpdate, Caller: e.obj, Payload: payload, Step: payload.Step})
	}
}

func (w *World) dt() float32 {
	return float32(w.cfg.FixedStep.Seconds())
}
