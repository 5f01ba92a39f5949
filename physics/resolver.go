package physics

import (
	"github.com/chewxy/math32"

	"github.com/lixenwraith/tank-physics/vmath"
)

// ImpulseHook observes an impulse before it reaches target and may rescale it in place
type ImpulseHook func(target, source Object, impulse *vmath.Vec2)

// Resolver turns contacts into impulses and positional correction
type Resolver struct {
	Tuning Tuning

	// OnImpulse is invoked for every impulse applied to either side of a contact
	OnImpulse ImpulseHook
}

// NewResolver creates a resolver with the given thresholds
func NewResolver(t Tuning) *Resolver {
	return &Resolver{Tuning: t}
}

// pointImpulse is one impulse computed for a manifold point, applied after all points are evaluated
type pointImpulse struct {
	leverA, leverB vmath.Vec2
	impulse        vmath.Vec2 // acts on B; A receives the negation
}

// Resolve applies impulses then positional correction
// Returns true when the contact was approaching and deeper than the correction threshold
func (r *Resolver) Resolve(c *Contact) bool {
	approaching := r.ApplyImpulses(c)
	r.Correct(c)
	return approaching && c.Depth() > r.Tuning.CorrectionThreshold
}

// ApplyImpulses resolves normal and friction impulses for every manifold point
// All points are evaluated against the velocities at entry, so point order does not matter
// Returns true if any point was approaching
func (r *Resolver) ApplyImpulses(c *Contact) bool {
	a, b := c.A, c.B
	count := float32(len(c.Points))
	if count == 0 {
		return false
	}
	invA, invB := a.InverseMass(), b.InverseMass()
	inertiaA, inertiaB := a.InverseInertia(), b.InverseInertia()
	if invA+invB == 0 {
		return false
	}

	comA := a.Transform().Position.Add(a.CenterOfMass())
	comB := b.Transform().Position.Add(b.CenterOfMass())
	velA, velB := a.Velocity(), b.Velocity()
	angA, angB := a.AngularVelocity(), b.AngularVelocity()

	restitution := c.ShapeA.Bounciness() * c.ShapeB.Bounciness()
	staticFriction := c.ShapeA.StaticFriction() * c.ShapeB.StaticFriction()
	dynamicFriction := c.ShapeA.DynamicFriction() * c.ShapeB.DynamicFriction()

	pending := make([]pointImpulse, 0, 2*len(c.Points))
	approaching := false

	for _, p := range c.Points {
		rA := p.Sub(comA)
		rB := p.Sub(comB)
		rel := velB.Add(vmath.CrossScalar(angB, rB)).Sub(velA.Add(vmath.CrossScalar(angA, rA)))

		vn := rel.Dot(c.Normal)
		if vn > 0 {
			continue
		}
		approaching = true

		rnA, rnB := rA.Cross(c.Normal), rB.Cross(c.Normal)
		div := (invA + invB + rnA*rnA*inertiaA + rnB*rnB*inertiaB) * count
		jn := -(1 + restitution) * vn / div
		pending = append(pending, pointImpulse{leverA: rA, leverB: rB, impulse: c.Normal.Scale(jn)})

		tangential := rel.Sub(c.Normal.Scale(vn))
		if tangential.MagnitudeSq() < vmath.Epsilon*vmath.Epsilon {
			continue
		}
		tangent := tangential.Normalize()
		vt := rel.Dot(tangent)

		rtA, rtB := rA.Cross(tangent), rB.Cross(tangent)
		divT := (invA + invB + rtA*rtA*inertiaA + rtB*rtB*inertiaB) * count
		jt := -vt / divT

		// Coulomb cone: past static grip, slide with dynamic friction, never beyond stopping
		if math32.Abs(jt) > staticFriction*jn {
			jt = -math32.Min(dynamicFriction*jn, math32.Abs(jt))
		}
		if jt != 0 {
			pending = append(pending, pointImpulse{leverA: rA, leverB: rB, impulse: tangent.Scale(jt)})
		}
	}

	for _, p := range pending {
		r.apply(a, b, p)
	}
	return approaching
}

func (r *Resolver) apply(a, b Object, p pointImpulse) {
	toA := p.impulse.Neg()
	toB := p.impulse
	if r.OnImpulse != nil {
		r.OnImpulse(a, b, &toA)
		r.OnImpulse(b, a, &toB)
	}
	a.ApplyImpulse(toA, p.leverA)
	b.ApplyImpulse(toB, p.leverB)
}

// Correct pushes both objects apart along the normal, each by its share of the combined inverse mass
// Returns false when the overlap is within CorrectionThreshold
func (r *Resolver) Correct(c *Contact) bool {
	if c.Depth() <= r.Tuning.CorrectionThreshold {
		return false
	}
	invA, invB := c.A.InverseMass(), c.B.InverseMass()
	total := invA + invB
	if total == 0 {
		return false
	}

	// Penetration is negative, so A moves against the normal and B along it
	shift := c.Normal.Scale(c.Penetration * r.Tuning.CorrectionPercentage / total)
	if invA > 0 {
		t := c.A.Transform()
		t.Position = t.Position.Add(shift.Scale(invA))
	}
	if invB > 0 {
		t := c.B.Transform()
		t.Position = t.Position.Sub(shift.Scale(invB))
	}
	return true
}
