package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/tank-physics/physics"
)

// RGB stores explicit 8-bit color channels, decoupled from tcell
type RGB struct {
	R, G, B uint8
}

// Tokyo Night-ish palette
var (
	ColorBackground = RGB{26, 27, 38}
	ColorStatic     = RGB{86, 95, 137}
	ColorRigid      = RGB{122, 162, 247}
	ColorParticle   = RGB{224, 175, 104}
	ColorFast       = RGB{247, 118, 142}
	ColorText       = RGB{192, 202, 245}
)

// Blend performs alpha blending: result = src*alpha + dst*(1-alpha)
func (dst RGB) Blend(src RGB, alpha float64) RGB {
	if alpha <= 0 {
		return dst
	}
	if alpha >= 1 {
		return src
	}
	inv := 1.0 - alpha
	return RGB{
		R: uint8(float64(src.R)*alpha + float64(dst.R)*inv),
		G: uint8(float64(src.G)*alpha + float64(dst.G)*inv),
		B: uint8(float64(src.B)*alpha + float64(dst.B)*inv),
	}
}

// Color converts to a tcell true color
func (c RGB) Color() tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// Style returns c as foreground over the background color
func (c RGB) Style() tcell.Style {
	return tcell.StyleDefault.Foreground(c.Color()).Background(ColorBackground.Color())
}

// KindColor is the base color for an object kind
func KindColor(k physics.Kind) RGB {
	switch k {
	case physics.KindRigidBody:
		return ColorRigid
	case physics.KindParticle:
		return ColorParticle
	}
	return ColorStatic
}

// KindGlyph is the outline rune for an object kind
func KindGlyph(k physics.Kind) rune {
	switch k {
	case physics.KindRigidBody:
		return '█'
	case physics.KindParticle:
		return '•'
	}
	return '▓'
}
