package vmath

import "github.com/chewxy/math32"

// Vec2 is a 2D float32 vector in world units
// Screen-like axes: +X right, +Y down
// Value type; methods never mutate the receiver
type Vec2 struct {
	X, Y float32
}

// Zero is the additive identity
var Zero = Vec2{}

// V creates a vector from components
func V(x, y float32) Vec2 {
	return Vec2{X: x, Y: y}
}

// FromAngle returns the unit vector at angle radians
func FromAngle(angle float32) Vec2 {
	s, c := math32.Sincos(angle)
	return Vec2{X: c, Y: s}
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale multiplies both components by s
func (v Vec2) Scale(s float32) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

func (v Vec2) Neg() Vec2 {
	return Vec2{X: -v.X, Y: -v.Y}
}

// Dot returns x1*x2 + y1*y2
func (v Vec2) Dot(o Vec2) float32 {
	return v.X*o.X + v.Y*o.Y
}

// Cross returns the z component of the 3D cross product v × o
func (v Vec2) Cross(o Vec2) float32 {
	return v.X*o.Y - v.Y*o.X
}

// CrossScalar returns w × v for an angular velocity w about the z axis
// Used for the tangential velocity of a point at lever arm v
func CrossScalar(w float32, v Vec2) Vec2 {
	return Vec2{X: -w * v.Y, Y: w * v.X}
}

// Perpendicular returns the vector rotated 90° counter-clockwise in math axes
func (v Vec2) Perpendicular() Vec2 {
	return Vec2{X: -v.Y, Y: v.X}
}

// Magnitude returns the Euclidean length
func (v Vec2) Magnitude() float32 {
	return math32.Hypot(v.X, v.Y)
}

// MagnitudeSq returns squared length without sqrt
func (v Vec2) MagnitudeSq() float32 {
	return v.X*v.X + v.Y*v.Y
}

// Normalize returns the unit vector, zero-safe
func (v Vec2) Normalize() Vec2 {
	m := v.Magnitude()
	if m < Epsilon {
		return Zero
	}
	return Vec2{X: v.X / m, Y: v.Y / m}
}

// ClampMagnitude limits vector to maxMag while preserving direction
// Returns unchanged vector if magnitude <= maxMag
func (v Vec2) ClampMagnitude(maxMag float32) Vec2 {
	m := v.Magnitude()
	if m <= maxMag || m < Epsilon {
		return v
	}
	return v.Scale(maxMag / m)
}

// Rotate rotates the vector by angle radians
func (v Vec2) Rotate(angle float32) Vec2 {
	s, c := math32.Sincos(angle)
	return Vec2{X: v.X*c - v.Y*s, Y: v.X*s + v.Y*c}
}

// Heading returns the angle of the vector in radians
func (v Vec2) Heading() float32 {
	return math32.Atan2(v.Y, v.X)
}

// Reflect returns v reflected off a surface with unit normal n
// v' = v - 2 * dot(v, n) * n
func (v Vec2) Reflect(n Vec2) Vec2 {
	return v.Sub(n.Scale(2 * v.Dot(n)))
}

// Lerp interpolates between v and o by t in [0,1]
func (v Vec2) Lerp(o Vec2, t float32) Vec2 {
	return v.Add(o.Sub(v).Scale(t))
}

// DistanceSq returns squared distance between two points
func (v Vec2) DistanceSq(o Vec2) float32 {
	return v.Sub(o).MagnitudeSq()
}

// ApproxEqual reports whether both components differ by at most tol
func (v Vec2) ApproxEqual(o Vec2, tol float32) bool {
	return math32.Abs(v.X-o.X) <= tol && math32.Abs(v.Y-o.Y) <= tol
}

// Centroid returns the arithmetic mean of points, zero for an empty slice
func Centroid(points []Vec2) Vec2 {
	if len(points) == 0 {
		return Zero
	}
	var sum Vec2
	for _, p := range points {
		sum = sum.Add(p)
	}
	return sum.Scale(1 / float32(len(points)))
}
