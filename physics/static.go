package physics

import (
	"github.com/lixenwraith/tank-physics/geometry"
	"github.com/lixenwraith/tank-physics/vmath"
)

// Static is an immovable shape-only collider (floors, walls, boundaries)
type Static struct {
	transform *Transform
	shapes    []*geometry.Shape
}

// NewStatic creates a static collider over 1..N shapes
func NewStatic(transform *Transform, shapes ...*geometry.Shape) (*Static, error) {
	if len(shapes) == 0 {
		return nil, ErrNoShapes
	}
	if transform == nil {
		transform = &Transform{}
	}
	return &Static{transform: transform, shapes: shapes}, nil
}

// MustStatic panics on invalid input
func MustStatic(transform *Transform, shapes ...*geometry.Shape) *Static {
	s, err := NewStatic(transform, shapes...)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Static) Kind() Kind { return KindStatic }
func (s *Static) Transform() *Transform { return s.transform }
func (s *Static) Velocity() vmath.Vec2 { return vmath.Zero }
func (s *Static) SetVelocity(vmath.Vec2) {}
func (s *Static) AngularVelocity() float32 { return 0 }
func (s *Static) SetAngularVelocity(float32) {}
func (s *Static) InverseMass() float32 { return 0 }
func (s *Static) InverseInertia() float32 { return 0 }
func (s *Static) CenterOfMass() vmath.Vec2 { return vmath.Zero }
func (s *Static) Shapes() []*geometry.Shape { return s.shapes }
func (s *Static) ApplyImpulse(_, _ vmath.Vec2) {}

func (s *Static) HalfSize() vmath.Vec2 {
	return halfSizeOf(s.shapes, s.transform.Orientation)
}
