package geometry

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/lixenwraith/tank-physics/vmath"
)

func TestSquareAnchor(t *testing.T) {
	tests := []struct {
		name   string
		anchor vmath.Vec2
		min    vmath.Vec2
		max    vmath.Vec2
	}{
		{"centred", vmath.V(1, 0.5), vmath.V(-1, -0.5), vmath.V(1, 0.5)},
		{"top-left", vmath.Zero, vmath.Zero, vmath.V(2, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verts := Square(vmath.V(2, 1), tt.anchor)
			if verts[0] != tt.min {
				t.Errorf("Expected min corner %v, got %v", tt.min, verts[0])
			}
			if verts[2] != tt.max {
				t.Errorf("Expected max corner %v, got %v", tt.max, verts[2])
			}
		})
	}
}

func TestRegularPolygon(t *testing.T) {
	verts := RegularPolygon(vmath.V(2, 2), 6, 0)
	if len(verts) != 6 {
		t.Fatalf("Expected 6 vertices, got %d", len(verts))
	}
	for i, v := range verts {
		if !vmath.NearlyEqual(v.Magnitude(), 1, 1e-5) {
			t.Errorf("Vertex %d: expected radius 1, got %v", i, v.Magnitude())
		}
	}
	if RegularPolygon(vmath.V(1, 1), 2, 0) != nil {
		t.Error("Expected nil for fewer than 3 sides")
	}

	shifted := RegularPolygonAt(vmath.V(2, 2), 4, 0, vmath.V(5, 0))
	if !vmath.Centroid(shifted).ApproxEqual(vmath.V(5, 0), 1e-5) {
		t.Errorf("Expected centroid (5,0), got %v", vmath.Centroid(shifted))
	}
}

func TestRotatedBoxSize(t *testing.T) {
	got := RotatedBoxSize(vmath.V(2, 1), math32.Pi/2)
	if !got.ApproxEqual(vmath.V(1, 2), 1e-5) {
		t.Errorf("Expected (1,2), got %v", got)
	}
}

func TestSurfaceByName(t *testing.T) {
	m, ok := SurfaceByName("wooden")
	if !ok || m != WoodenSurface {
		t.Errorf("Expected wooden surface, got %+v (%v)", m, ok)
	}
	if _, ok := SurfaceByName("lava"); ok {
		t.Error("Expected unknown surface to fail")
	}
}
