package physics

import (
	"github.com/chewxy/math32"

	"github.com/lixenwraith/tank-physics/geometry"
	"github.com/lixenwraith/tank-physics/vmath"
)

// QueryFace finds the axis of a on which b overlaps least
// Returns false with a non-negative Penetration as soon as a separating axis is found
// tol groups support vertices lying within tol of the extreme one
func QueryFace(a, b *geometry.Shape, objA, objB Object, tol float32) (Contact, bool) {
	ta, tb := objA.Transform(), objB.Transform()
	c := Contact{A: objA, B: objB, ShapeA: a, ShapeB: b}

	switch {
	case a.Kind() == geometry.Circle && b.Kind() == geometry.Circle:
		return queryCircles(c,
			a.WorldCenter(ta.Position, ta.Orientation), a.Radius(),
			b.WorldCenter(tb.Position, tb.Orientation), b.Radius())
	case a.Kind() == geometry.Circle:
		return queryCirclePolygon(c,
			a.WorldCenter(ta.Position, ta.Orientation), a.Radius(),
			b.WorldVertices(tb.Position, tb.Orientation), tol)
	case b.Kind() == geometry.Circle:
		return queryPolygonCircle(c,
			a.WorldVertices(ta.Position, ta.Orientation),
			b.WorldCenter(tb.Position, tb.Orientation), b.Radius())
	}
	return queryPolygons(c,
		a.WorldVertices(ta.Position, ta.Orientation),
		b.WorldVertices(tb.Position, tb.Orientation), tol)
}

// edgeNormal returns the unit normal of v0→v1, flipped for loops wound the other way
func edgeNormal(v0, v1 vmath.Vec2, reversed bool) vmath.Vec2 {
	e := v1.Sub(v0)
	n := vmath.Vec2{X: e.Y, Y: -e.X}
	if reversed {
		n = n.Neg()
	}
	return n.Normalize()
}

// windingReversed reports whether (e.y, -e.x) points into the loop
// Flat loops (segments) keep the default since both sides are covered by opposite edges
func windingReversed(vertices []vmath.Vec2) bool {
	return geometry.SignedArea(vertices) < 0
}

// supportSet returns the smallest signed distance of points from the plane (origin, normal)
// and every point within tol of it
func supportSet(points []vmath.Vec2, origin, normal vmath.Vec2, tol float32) (float32, []vmath.Vec2) {
	minD := float32(math32.MaxFloat32)
	for _, p := range points {
		if d := normal.Dot(p.Sub(origin)); d < minD {
			minD = d
		}
	}
	var support []vmath.Vec2
	for _, p := range points {
		if normal.Dot(p.Sub(origin)) <= minD+tol {
			support = append(support, p)
		}
	}
	return minD, support
}

// clipToEdge discards points whose tangent projection falls outside the segment v0→v1
func clipToEdge(points []vmath.Vec2, v0, v1 vmath.Vec2, tol float32) []vmath.Vec2 {
	edge := v1.Sub(v0)
	length := edge.Magnitude()
	if length < vmath.Epsilon {
		return nil
	}
	tangent := edge.Scale(1 / length)
	clipped := make([]vmath.Vec2, 0, len(points))
	for _, p := range points {
		s := tangent.Dot(p.Sub(v0))
		if s >= -tol && s <= length+tol {
			clipped = append(clipped, p)
		}
	}
	return clipped
}

func queryPolygons(c Contact, va, vb []vmath.Vec2, tol float32) (Contact, bool) {
	reversed := windingReversed(va)
	n := len(va)

	best := float32(-math32.MaxFloat32)
	bestEdge := -1
	var bestNormal vmath.Vec2
	var bestSupport []vmath.Vec2

	for i := 0; i < n; i++ {
		v0, v1 := va[i], va[(i+1)%n]
		normal := edgeNormal(v0, v1, reversed)
		if normal == vmath.Zero {
			continue
		}
		sep, support := supportSet(vb, v0, normal, tol)
		if sep > 0 {
			c.Penetration = sep
			c.Normal = normal
			return c, false
		}
		if sep > best {
			best, bestEdge, bestNormal, bestSupport = sep, i, normal, support
		}
	}
	if bestEdge < 0 {
		return c, false
	}

	c.Penetration = best
	c.Normal = bestNormal
	c.support = bestSupport
	c.Points = clipToEdge(bestSupport, va[bestEdge], va[(bestEdge+1)%n], tol)
	return c, true
}

// queryPolygonCircle tests a polygon's faces against a circle, falling back to the nearest vertex
// when the centre lies beyond the reference edge's endpoints
func queryPolygonCircle(c Contact, va []vmath.Vec2, center vmath.Vec2, radius float32) (Contact, bool) {
	reversed := windingReversed(va)
	n := len(va)

	best := float32(-math32.MaxFloat32)
	bestEdge := -1
	var bestNormal vmath.Vec2
	for i := 0; i < n; i++ {
		v0, v1 := va[i], va[(i+1)%n]
		normal := edgeNormal(v0, v1, reversed)
		if normal == vmath.Zero {
			continue
		}
		sep := normal.Dot(center.Sub(v0)) - radius
		if sep > 0 {
			c.Penetration = sep
			c.Normal = normal
			return c, false
		}
		if sep > best {
			best, bestEdge, bestNormal = sep, i, normal
		}
	}
	if bestEdge < 0 {
		return c, false
	}

	v0, v1 := va[bestEdge], va[(bestEdge+1)%n]
	edge := v1.Sub(v0)
	s := edge.Dot(center.Sub(v0))
	if s >= 0 && s <= edge.MagnitudeSq() {
		c.Penetration = best
		c.Normal = bestNormal
		c.Points = []vmath.Vec2{center.Sub(bestNormal.Scale(radius))}
		c.support = c.Points
		return c, true
	}

	// Vertex region
	nearest := nearestPoint(va, center)
	d := center.Sub(nearest)
	dist := d.Magnitude()
	sep := dist - radius
	if sep > 0 {
		c.Penetration = sep
		c.Normal = d.Normalize()
		return c, false
	}
	c.Penetration = best
	c.Normal = bestNormal
	if dist > vmath.Epsilon && sep > best {
		c.Penetration = sep
		c.Normal = d.Scale(1 / dist)
	}
	c.Points = []vmath.Vec2{nearest}
	c.support = c.Points
	return c, true
}

// queryCirclePolygon uses the axis from the circle centre to the polygon's nearest vertex
func queryCirclePolygon(c Contact, center vmath.Vec2, radius float32, vb []vmath.Vec2, tol float32) (Contact, bool) {
	nearest := nearestPoint(vb, center)
	normal := nearest.Sub(center).Normalize()
	if normal == vmath.Zero {
		normal = vmath.V(0, 1)
	}
	minD, support := supportSet(vb, center, normal, tol)
	c.Penetration = minD - radius
	c.Normal = normal
	if c.Penetration > 0 {
		return c, false
	}
	c.Points = support
	c.support = support
	return c, true
}

func queryCircles(c Contact, ca vmath.Vec2, ra float32, cb vmath.Vec2, rb float32) (Contact, bool) {
	d := cb.Sub(ca)
	dist := d.Magnitude()
	c.Penetration = dist - ra - rb
	if dist > vmath.Epsilon {
		c.Normal = d.Scale(1 / dist)
	} else {
		c.Normal = vmath.V(0, 1)
	}
	if c.Penetration > 0 {
		return c, false
	}
	c.Points = []vmath.Vec2{ca.Add(c.Normal.Scale(ra + c.Penetration/2))}
	c.support = c.Points
	return c, true
}

func nearestPoint(points []vmath.Vec2, to vmath.Vec2) vmath.Vec2 {
	best := points[0]
	bestD := best.DistanceSq(to)
	for _, p := range points[1:] {
		if d := p.DistanceSq(to); d < bestD {
			best, bestD = p, d
		}
	}
	return best
}

// Detect runs the face query in both directions for every shape pair of two objects
// The larger penetration is authoritative; near-equal results are merged into a two-point manifold
func Detect(objA, objB Object, tol float32) []Contact {
	var contacts []Contact
	for _, sa := range objA.Shapes() {
		for _, sb := range objB.Shapes() {
			ab, ok := QueryFace(sa, sb, objA, objB, tol)
			if !ok {
				continue
			}
			ba, ok := QueryFace(sb, sa, objB, objA, tol)
			if !ok {
				continue
			}

			var c Contact
			switch {
			case ba.Penetration > ab.Penetration+tol:
				c = ba
				c.Points = reduceManifold(c.Points, c.Normal, tol)
			case ab.Penetration > ba.Penetration+tol:
				c = ab
				c.Points = reduceManifold(c.Points, c.Normal, tol)
			default:
				c = ab
				merged := make([]vmath.Vec2, 0, len(ab.Points)+len(ba.Points))
				merged = append(merged, ab.Points...)
				merged = append(merged, ba.Points...)
				c.Points = reduceManifold(merged, c.Normal, tol)
				if len(c.Points) == 0 {
					c.support = append(append([]vmath.Vec2(nil), ab.support...), ba.support...)
				}
			}

			// Clipping can remove every candidate when supports overhang the reference edge
			if len(c.Points) == 0 {
				c.Points = reduceManifold(c.support, c.Normal, tol)
			}
			if len(c.Points) == 0 {
				continue
			}
			contacts = append(contacts, c)
		}
	}
	return contacts
}

// reduceManifold keeps the two extreme points along the contact tangent
// Points sharing an extreme within tol are averaged; a manifold narrower than tol collapses to one point
func reduceManifold(points []vmath.Vec2, normal vmath.Vec2, tol float32) []vmath.Vec2 {
	if len(points) <= 1 {
		return points
	}
	tangent := normal.Perpendicular()
	minS, maxS := float32(math32.MaxFloat32), float32(-math32.MaxFloat32)
	for _, p := range points {
		s := tangent.Dot(p)
		minS = math32.Min(minS, s)
		maxS = math32.Max(maxS, s)
	}
	if maxS-minS <= tol {
		return []vmath.Vec2{vmath.Centroid(points)}
	}

	var lo, hi []vmath.Vec2
	for _, p := range points {
		s := tangent.Dot(p)
		if s <= minS+tol {
			lo = append(lo, p)
		}
		if s >= maxS-tol {
			hi = append(hi, p)
		}
	}
	return []vmath.Vec2{vmath.Centroid(lo), vmath.Centroid(hi)}
}
