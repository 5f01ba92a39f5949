package vmath

import "github.com/chewxy/math32"

// Traverse visits every grid cell intersected by the segment a→b, cell (x, y) covering [x, x+1)×[y, y+1)
// Uses Supercover DDA so no cell is skipped; stops early when callback returns false
// Terminates by checking target bounds before stepping
func Traverse(a, b Vec2, callback func(x, y int) bool) {
	ix, iy := int(math32.Floor(a.X)), int(math32.Floor(a.Y))
	targetX, targetY := int(math32.Floor(b.X)), int(math32.Floor(b.Y))

	if !callback(ix, iy) {
		return
	}
	if ix == targetX && iy == targetY {
		return
	}

	dx, dy := b.X-a.X, b.Y-a.Y
	stepX, stepY := 1, 1
	if dx < 0 {
		stepX, dx = -1, -dx
	}
	if dy < 0 {
		stepY, dy = -1, -dy
	}

	// Parametric distance to the next boundary and between boundaries, t in [0,1] along the segment
	tMaxX, tMaxY := math32.Inf(1), math32.Inf(1)
	var tDeltaX, tDeltaY float32
	if dx > 0 {
		tDeltaX = 1 / dx
		frac := a.X - math32.Floor(a.X)
		if stepX > 0 {
			tMaxX = (1 - frac) * tDeltaX
		} else {
			tMaxX = frac * tDeltaX
		}
	}
	if dy > 0 {
		tDeltaY = 1 / dy
		frac := a.Y - math32.Floor(a.Y)
		if stepY > 0 {
			tMaxY = (1 - frac) * tDeltaY
		} else {
			tMaxY = frac * tDeltaY
		}
	}

	for ix != targetX || iy != targetY {
		switch {
		case tMaxX < tMaxY:
			if ix != targetX {
				ix += stepX
				tMaxX += tDeltaX
			} else {
				iy += stepY
				tMaxY += tDeltaY
			}
		case tMaxX > tMaxY:
			if iy != targetY {
				iy += stepY
				tMaxY += tDeltaY
			} else {
				ix += stepX
				tMaxX += tDeltaX
			}
		default:
			// Corner crossing
			if ix != targetX {
				ix += stepX
				tMaxX += tDeltaX
			}
			if iy != targetY {
				iy += stepY
				tMaxY += tDeltaY
			}
		}

		if !callback(ix, iy) {
			return
		}
	}
}
