package engine

import (
	"github.com/lixenwraith/tank-physics/geometry"
	"github.com/lixenwraith/tank-physics/physics"
	"github.com/lixenwraith/tank-physics/vmath"
)

// UpdatePayload accompanies event.EventUpdate
type UpdatePayload struct {
	Step uint64
	Dt   float32
}

// HitPayload accompanies event.EventHit, seen from the receiving object
// The world-level dispatch reports the pair once with Self as the lower handle
type HitPayload struct {
	Self       physics.Object
	Other      physics.Object
	Shape      *geometry.Shape
	OtherShape *geometry.Shape
	Contact    physics.Contact

	// ApproachSpeed is the closing speed of the centres along the normal before resolution
	ApproachSpeed float32
}

// ImpulsePayload accompanies event.EventImpulse
// Listeners may rewrite *Impulse before it is applied to the receiver
type ImpulsePayload struct {
	Source  physics.Object
	Impulse *vmath.Vec2
}
