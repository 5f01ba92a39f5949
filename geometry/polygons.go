package geometry

import (
	"github.com/chewxy/math32"

	"github.com/lixenwraith/tank-physics/vmath"
)

// RegularPolygon returns sides vertices on the ellipse inscribed in size, starting at baseAngle
func RegularPolygon(size vmath.Vec2, sides int, baseAngle float32) []vmath.Vec2 {
	return RegularPolygonAt(size, sides, baseAngle, vmath.Zero)
}

// RegularPolygonAt is RegularPolygon translated by offset
func RegularPolygonAt(size vmath.Vec2, sides int, baseAngle float32, offset vmath.Vec2) []vmath.Vec2 {
	if sides < 3 {
		return nil
	}
	verts := make([]vmath.Vec2, sides)
	increment := 2 * math32.Pi / float32(sides)
	for i := range verts {
		s, c := math32.Sincos(baseAngle + float32(i)*increment)
		verts[i] = vmath.Vec2{X: size.X / 2 * c, Y: size.Y / 2 * s}.Add(offset)
	}
	return verts
}

// Square returns the four corners of a size box with anchor as its local origin
// anchor (0,0) puts the box's top-left corner at the origin, size/2 centres it
func Square(size, anchor vmath.Vec2) []vmath.Vec2 {
	plus := size.Sub(anchor)
	minus := plus.Sub(size)
	return []vmath.Vec2{
		minus,
		{X: plus.X, Y: minus.Y},
		plus,
		{X: minus.X, Y: plus.Y},
	}
}

// Box returns a size box centred on the origin
func Box(size vmath.Vec2) []vmath.Vec2 {
	return Square(size, size.Scale(0.5))
}

// RotatedBoxSize returns the axis-aligned extent of a centred size box rotated by angle
func RotatedBoxSize(size vmath.Vec2, angle float32) vmath.Vec2 {
	minP := vmath.V(math32.MaxFloat32, math32.MaxFloat32)
	maxP := vmath.V(-math32.MaxFloat32, -math32.MaxFloat32)
	for _, v := range Box(size) {
		r := v.Rotate(angle)
		minP.X = math32.Min(minP.X, r.X)
		minP.Y = math32.Min(minP.Y, r.Y)
		maxP.X = math32.Max(maxP.X, r.X)
		maxP.Y = math32.Max(maxP.Y, r.Y)
	}
	return maxP.Sub(minP)
}
