package main

import (
	"github.com/lixenwraith/tank-physics/engine"
	"github.com/lixenwraith/tank-physics/event"
	"github.com/lixenwraith/tank-physics/parameter"
	"github.com/lixenwraith/tank-physics/physics"
)

// Armor accumulates damage on a tank and makes it easier to knock around
// Damage is a fraction: 0 is pristine, 1 reads as 100% in the overlay
type Armor struct {
	world   *engine.World
	body    physics.Object
	isShell func(physics.Object) bool

	damage     float32
	hitImpulse float32 // first shell impulse of the current hit
	hits       int
}

// NewArmor subscribes damage listeners on body; isShell tells shells from other bodies
func NewArmor(w *engine.World, body physics.Object, isShell func(physics.Object) bool) *Armor {
	a := &Armor{world: w, body: body, isShell: isShell}
	bus := w.ObjectBus(body)
	if bus == nil {
		return a
	}
	bus.Subscribe(event.EventImpulse, a.onImpulse)
	bus.Subscribe(event.EventHit, a.onHit)
	return a
}

// Damage returns the accumulated damage fraction
func (a *Armor) Damage() float32 { return a.damage }

// Percent returns the damage for display
func (a *Armor) Percent() float32 { return a.damage * 100 }

// Hits returns how many damaging hits were taken
func (a *Armor) Hits() int { return a.hits }

// onImpulse records the first shell impulse of a hit and scales its knockback
func (a *Armor) onImpulse(ev event.Event) {
	p, ok := ev.Payload.(*engine.ImpulsePayload)
	if !ok || !a.isShell(p.Source) || a.hitImpulse != 0 {
		return
	}
	a.hitImpulse = p.Impulse.Magnitude()
	*p.Impulse = p.Impulse.Scale(1 + a.damage*parameter.KnockbackGain)
}

func (a *Armor) onHit(ev event.Event) {
	p, ok := ev.Payload.(*engine.HitPayload)
	if !ok {
		return
	}
	switch {
	case a.isShell(p.Other):
		a.take(a.hitImpulse)
		a.hitImpulse = 0
	case p.Other.Kind() == physics.KindRigidBody && p.Other.InverseMass() > 0:
		rel := a.body.Velocity().Sub(p.Other.Velocity()).Magnitude()
		a.take(rel / p.Other.InverseMass())
	}
}

// take adds damage and grows the body's impulse multiplier with it
func (a *Armor) take(impulse float32) {
	if impulse <= 0 {
		return
	}
	a.damage += impulse / parameter.DamageScale
	a.hits++
	if b, ok := a.body.(*physics.RigidBody); ok {
		b.SetMultiplier(1 + a.damage)
	}
}
