package physics

import (
	"github.com/lixenwraith/tank-physics/geometry"
	"github.com/lixenwraith/tank-physics/parameter"
	"github.com/lixenwraith/tank-physics/vmath"
)

// Contact describes one touching shape pair
// Penetration is signed: negative means overlap
// Normal points from A toward B
type Contact struct {
	Penetration float32
	Normal      vmath.Vec2
	Points      []vmath.Vec2

	A, B           Object
	ShapeA, ShapeB *geometry.Shape

	// support holds the unclipped support points of the query that produced the contact
	support []vmath.Vec2
}

// Depth returns the overlap distance, zero when separated
func (c *Contact) Depth() float32 {
	if c.Penetration >= 0 {
		return 0
	}
	return -c.Penetration
}

// ShapesOf returns the shape belonging to obj and the one it touched
// Frozen views match the object they wrap
func (c *Contact) ShapesOf(obj Object) (own, other *geometry.Shape) {
	if Unfreeze(c.B) == Unfreeze(obj) {
		return c.ShapeB, c.ShapeA
	}
	return c.ShapeA, c.ShapeB
}

// Tuning carries the solver thresholds
type Tuning struct {
	SameEdgeThreshold    float32
	CorrectionThreshold  float32
	CorrectionPercentage float32
}

// DefaultTuning returns the engine defaults
func DefaultTuning() Tuning {
	return Tuning{
		SameEdgeThreshold:    parameter.SameEdgeThreshold,
		CorrectionThreshold:  parameter.CorrectionThreshold,
		CorrectionPercentage: parameter.CorrectionPercentage,
	}
}

// Deepest returns the index of the most overlapping contact, -1 for an empty slice
func Deepest(contacts []Contact) int {
	best := -1
	for i := range contacts {
		if best < 0 || contacts[i].Penetration < contacts[best].Penetration {
			best = i
		}
	}
	return best
}
