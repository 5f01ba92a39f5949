package render

import (
	"github.com/chewxy/math32"

	"github.com/lixenwraith/tank-physics/vmath"
)

// CellAspect is the height-to-width ratio of a terminal cell
const CellAspect float32 = 2

// Camera maps world units onto a Width×Height cell grid centred on Center
// Y grows downward in both spaces
type Camera struct {
	Center       vmath.Vec2
	CellsPerUnit float32
	Width        int
	Height       int
}

// ToCell returns the fractional cell coordinates of world point p
func (c Camera) ToCell(p vmath.Vec2) vmath.Vec2 {
	return vmath.Vec2{
		X: (p.X-c.Center.X)*c.CellsPerUnit + float32(c.Width)/2,
		Y: (p.Y-c.Center.Y)*c.CellsPerUnit/CellAspect + float32(c.Height)/2,
	}
}

// ToWorld returns the world point at the centre of cell (x, y)
func (c Camera) ToWorld(x, y int) vmath.Vec2 {
	return vmath.Vec2{
		X: (float32(x)+0.5-float32(c.Width)/2)/c.CellsPerUnit + c.Center.X,
		Y: (float32(y)+0.5-float32(c.Height)/2)*CellAspect/c.CellsPerUnit + c.Center.Y,
	}
}

// Visible reports whether cell (x, y) lies on the grid
func (c Camera) Visible(x, y int) bool {
	return x >= 0 && y >= 0 && x < c.Width && y < c.Height
}

// Fit centres the camera on the box lo..hi and picks the largest scale that shows all of it
func (c *Camera) Fit(lo, hi vmath.Vec2) {
	c.Center = lo.Add(hi).Scale(0.5)
	span := hi.Sub(lo)
	if c.Width <= 0 || c.Height <= 0 || span.X <= 0 || span.Y <= 0 {
		return
	}
	c.CellsPerUnit = math32.Min(float32(c.Width)/span.X, float32(c.Height)*CellAspect/span.Y)
}
