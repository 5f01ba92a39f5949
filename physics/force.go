package physics

import "github.com/lixenwraith/tank-physics/vmath"

// Force is a constant push applied every step while active
type Force struct {
	Vector vmath.Vec2

	// MassProportional forces are accelerations; others are divided by mass first
	MassProportional bool

	// FluidResistance marks drag-like forces; integrated like any other force for now
	FluidResistance bool
}

// NewGravity returns a mass-proportional downward (+Y) force
func NewGravity(g float32) *Force {
	return &Force{Vector: vmath.V(0, g), MassProportional: true}
}

// Acceleration returns the velocity change rate the force causes on a body of inverse mass invMass
func (f *Force) Acceleration(invMass float32) vmath.Vec2 {
	if f.MassProportional {
		return f.Vector
	}
	return f.Vector.Scale(invMass)
}

// ForceSet is an insertion-ordered set of forces compared by pointer identity
type ForceSet struct {
	forces []*Force
}

// Add inserts f unless already present; returns false for duplicates
func (s *ForceSet) Add(f *Force) bool {
	if f == nil || s.Has(f) {
		return false
	}
	s.forces = append(s.forces, f)
	return true
}

// Remove deletes f, preserving the order of the remaining forces
func (s *ForceSet) Remove(f *Force) bool {
	for i, x := range s.forces {
		if x == f {
			s.forces = append(s.forces[:i], s.forces[i+1:]...)
			return true
		}
	}
	return false
}

func (s *ForceSet) Has(f *Force) bool {
	for _, x := range s.forces {
		if x == f {
			return true
		}
	}
	return false
}

func (s *ForceSet) Len() int { return len(s.forces) }

// All returns the backing slice; callers must not retain it across Add/Remove
func (s *ForceSet) All() []*Force { return s.forces }
