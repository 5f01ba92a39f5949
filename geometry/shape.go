package geometry

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"

	"github.com/lixenwraith/tank-physics/parameter"
	"github.com/lixenwraith/tank-physics/vmath"
)

var (
	// ErrDegenerateShape is returned for polygons with fewer than 2 vertices or circles without positive radius
	ErrDegenerateShape = errors.New("degenerate shape")

	// ErrNotConvex is returned for polygons whose edges turn both ways
	ErrNotConvex = errors.New("polygon is not convex")
)

// Kind discriminates shape variants
type Kind int

const (
	Polygon Kind = iota
	Circle
)

func (k Kind) String() string {
	switch k {
	case Polygon:
		return "polygon"
	case Circle:
		return "circle"
	}
	return "unknown"
}

// Shape is a convex collision primitive owned by exactly one physical object
// Local points are anchor + vertex, expressed relative to the owner's origin
type Shape struct {
	kind     Kind
	vertices []vmath.Vec2
	radius   float32
	anchor   vmath.Vec2
	material Material

	// Rotated form, recomputed when orientation drifts past RotationCacheThreshold
	cacheValid    bool
	cachedAngle   float32
	rotated       []vmath.Vec2
	rotatedAnchor vmath.Vec2
}

// NewPolygon creates a convex polygon shape; either winding is accepted
func NewPolygon(vertices []vmath.Vec2, anchor vmath.Vec2, material Material) (*Shape, error) {
	if len(vertices) < 2 {
		return nil, fmt.Errorf("polygon with %d vertices: %w", len(vertices), ErrDegenerateShape)
	}
	if !isConvex(vertices) {
		return nil, ErrNotConvex
	}
	verts := make([]vmath.Vec2, len(vertices))
	copy(verts, vertices)
	return &Shape{
		kind:     Polygon,
		vertices: verts,
		anchor:   anchor,
		material: material,
	}, nil
}

// NewCircle creates a circle shape centred on anchor
func NewCircle(radius float32, anchor vmath.Vec2, material Material) (*Shape, error) {
	if !(radius > 0) {
		return nil, fmt.Errorf("circle radius %v: %w", radius, ErrDegenerateShape)
	}
	return &Shape{
		kind:     Circle,
		radius:   radius,
		anchor:   anchor,
		material: material,
	}, nil
}

// MustPolygon panics on invalid input, for static shape tables
func MustPolygon(vertices []vmath.Vec2, anchor vmath.Vec2, material Material) *Shape {
	s, err := NewPolygon(vertices, anchor, material)
	if err != nil {
		panic(err)
	}
	return s
}

// MustCircle panics on invalid input, for static shape tables
func MustCircle(radius float32, anchor vmath.Vec2, material Material) *Shape {
	s, err := NewCircle(radius, anchor, material)
	if err != nil {
		panic(err)
	}
	return s
}

// Clone returns an independent copy with an empty rotation cache
func (s *Shape) Clone() *Shape {
	c := &Shape{
		kind:     s.kind,
		radius:   s.radius,
		anchor:   s.anchor,
		material: s.material,
	}
	if s.vertices != nil {
		c.vertices = make([]vmath.Vec2, len(s.vertices))
		copy(c.vertices, s.vertices)
	}
	return c
}

func (s *Shape) Kind() Kind { return s.kind }
func (s *Shape) Radius() float32 { return s.radius }
func (s *Shape) Anchor() vmath.Vec2 { return s.anchor }
func (s *Shape) Material() Material { return s.material }
func (s *Shape) VertexCount() int { return len(s.vertices) }

// Vertices returns the local vertex list relative to the anchor; callers must not mutate it
func (s *Shape) Vertices() []vmath.Vec2 { return s.vertices }

func (s *Shape) StaticFriction() float32 { return s.material.StaticFriction }
func (s *Shape) DynamicFriction() float32 { return s.material.DynamicFriction }
func (s *Shape) Bounciness() float32 { return s.material.Bounciness }

func (s *Shape) SetMaterial(m Material) { s.material = m }
func (s *Shape) SetStaticFriction(v float32) { s.material.StaticFriction = v }
func (s *Shape) SetDynamicFriction(v float32) { s.material.DynamicFriction = v }
func (s *Shape) SetBounciness(v float32) { s.material.Bounciness = v }

// ApplySurface overrides only the coefficients present in o
func (s *Shape) ApplySurface(o Overrides) { s.material = s.material.With(o) }

// Rotated returns the shape's points rotated about the owner origin
// For polygons verts holds anchor+vertex per entry; for circles verts is nil and center is the rotated anchor
// Result slices are shared with the cache and valid until the next call
func (s *Shape) Rotated(orientation float32) (verts []vmath.Vec2, center vmath.Vec2) {
	if s.cacheValid && math32.Abs(orientation-s.cachedAngle) <= parameter.RotationCacheThreshold {
		return s.rotated, s.rotatedAnchor
	}

	sin, cos := math32.Sincos(orientation)
	rot := func(p vmath.Vec2) vmath.Vec2 {
		return vmath.Vec2{X: p.X*cos - p.Y*sin, Y: p.X*sin + p.Y*cos}
	}

	s.rotatedAnchor = rot(s.anchor)
	if s.kind == Polygon {
		if cap(s.rotated) < len(s.vertices) {
			s.rotated = make([]vmath.Vec2, len(s.vertices))
		}
		s.rotated = s.rotated[:len(s.vertices)]
		for i, v := range s.vertices {
			s.rotated[i] = rot(s.anchor.Add(v))
		}
	}
	s.cachedAngle = orientation
	s.cacheValid = true
	return s.rotated, s.rotatedAnchor
}

// WorldVertices returns freshly allocated world-space polygon vertices
func (s *Shape) WorldVertices(position vmath.Vec2, orientation float32) []vmath.Vec2 {
	rotated, _ := s.Rotated(orientation)
	out := make([]vmath.Vec2, len(rotated))
	for i, v := range rotated {
		out[i] = v.Add(position)
	}
	return out
}

// WorldCenter returns the world-space anchor (circle centre)
func (s *Shape) WorldCenter(position vmath.Vec2, orientation float32) vmath.Vec2 {
	_, c := s.Rotated(orientation)
	return c.Add(position)
}

// Centroid returns the local vertex mean including the anchor offset
func (s *Shape) Centroid() vmath.Vec2 {
	if s.kind == Circle {
		return s.anchor
	}
	return s.anchor.Add(vmath.Centroid(s.vertices))
}

// Reach returns the largest |x| and |y| of the rotated shape around the owner origin
// Used as a centred half-size for broad phase
func (s *Shape) Reach(orientation float32) vmath.Vec2 {
	verts, center := s.Rotated(orientation)
	if s.kind == Circle {
		return vmath.Vec2{X: math32.Abs(center.X) + s.radius, Y: math32.Abs(center.Y) + s.radius}
	}
	var r vmath.Vec2
	for _, v := range verts {
		r.X = math32.Max(r.X, math32.Abs(v.X))
		r.Y = math32.Max(r.Y, math32.Abs(v.Y))
	}
	return r
}

// SignedArea returns the shoelace area of a vertex loop
// Positive when the loop turns from +X toward +Y
func SignedArea(vertices []vmath.Vec2) float32 {
	var sum float32
	n := len(vertices)
	for i := 0; i < n; i++ {
		sum += vertices[i].Cross(vertices[(i+1)%n])
	}
	return sum / 2
}

// isConvex accepts collinear runs and either winding
func isConvex(vertices []vmath.Vec2) bool {
	n := len(vertices)
	if n < 4 {
		return true
	}
	var sign float32
	for i := 0; i < n; i++ {
		a := vertices[(i+1)%n].Sub(vertices[i])
		b := vertices[(i+2)%n].Sub(vertices[(i+1)%n])
		c := a.Cross(b)
		if math32.Abs(c) < vmath.Epsilon {
			continue
		}
		if sign == 0 {
			sign = vmath.Sign(c)
			continue
		}
		if vmath.Sign(c) != sign {
			return false
		}
	}
	return true
}
