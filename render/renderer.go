package render

import (
	"github.com/chewxy/math32"
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/tank-physics/config"
	"github.com/lixenwraith/tank-physics/geometry"
	"github.com/lixenwraith/tank-physics/physics"
	"github.com/lixenwraith/tank-physics/status"
	"github.com/lixenwraith/tank-physics/vmath"
)

// Surface is the subset of tcell.Screen the renderer draws on
type Surface interface {
	Size() (width, height int)
	Clear()
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Show()
}

// FastSpeed is the speed at which a body is drawn fully in ColorFast
const FastSpeed float32 = 20

// Renderer rasterises world shapes as outlines on a terminal surface
type Renderer struct {
	surface     Surface
	Camera      Camera
	metrics     *status.Registry
	showMetrics bool
}

// New creates a renderer sized to surface
func New(surface Surface, cfg config.Render, metrics *status.Registry) *Renderer {
	r := &Renderer{
		surface:     surface,
		Camera:      Camera{CellsPerUnit: cfg.CellsPerUnit},
		metrics:     metrics,
		showMetrics: cfg.ShowMetrics,
	}
	r.Resize()
	return r
}

// Resize matches the camera grid to the surface
func (r *Renderer) Resize() {
	r.Camera.Width, r.Camera.Height = r.surface.Size()
}

func (r *Renderer) ShowMetrics() bool { return r.showMetrics }
func (r *Renderer) ToggleMetrics() { r.showMetrics = !r.showMetrics }

// Draw renders objects then the overlay lines and the metrics, and presents the frame
func (r *Renderer) Draw(objects []physics.Object, overlay ...string) {
	r.surface.Clear()
	for y := 0; y < r.Camera.Height; y++ {
		for x := 0; x < r.Camera.Width; x++ {
			r.surface.SetContent(x, y, ' ', nil, ColorBackground.Style())
		}
	}
	for _, obj := range objects {
		r.DrawObject(obj)
	}

	row := 0
	for _, line := range overlay {
		r.Text(0, row, line, ColorText.Style())
		row++
	}
	if r.showMetrics && r.metrics != nil {
		for _, line := range r.metrics.Lines() {
			r.Text(0, row, line, ColorText.Style())
			row++
		}
	}
	r.surface.Show()
}

// DrawObject outlines every shape of obj; shapeless objects are a single glyph
func (r *Renderer) DrawObject(obj physics.Object) {
	kind := obj.Kind()
	color := KindColor(kind)
	if kind.Dynamic() {
		color = color.Blend(ColorFast, float64(obj.Velocity().Magnitude()/FastSpeed))
	}
	style := color.Style()
	glyph := KindGlyph(kind)

	t := obj.Transform()
	shapes := obj.Shapes()
	if len(shapes) == 0 {
		c := r.Camera.ToCell(t.Position)
		r.set(int(math32.Floor(c.X)), int(math32.Floor(c.Y)), glyph, style)
		return
	}

	for _, s := range shapes {
		if s.Kind() == geometry.Circle {
			r.circle(s.WorldCenter(t.Position, t.Orientation), s.Radius(), glyph, style)
			continue
		}
		verts := s.WorldVertices(t.Position, t.Orientation)
		if len(verts) == 2 {
			r.line(verts[0], verts[1], glyph, style)
			continue
		}
		for i := range verts {
			r.line(verts[i], verts[(i+1)%len(verts)], glyph, style)
		}
	}
}

// Text writes s left to right from cell (x, y), clipped to the grid
func (r *Renderer) Text(x, y int, s string, style tcell.Style) {
	for _, ch := range s {
		r.set(x, y, ch, style)
		x++
	}
}

func (r *Renderer) line(a, b vmath.Vec2, glyph rune, style tcell.Style) {
	vmath.Traverse(r.Camera.ToCell(a), r.Camera.ToCell(b), func(x, y int) bool {
		r.set(x, y, glyph, style)
		return true
	})
}

func (r *Renderer) circle(center vmath.Vec2, radius float32, glyph rune, style tcell.Style) {
	segments := int(2 * math32.Pi * radius * r.Camera.CellsPerUnit)
	if segments < 8 {
		segments = 8
	}
	prev := center.Add(vmath.Vec2{X: radius})
	for i := 1; i <= segments; i++ {
		sin, cos := math32.Sincos(2 * math32.Pi * float32(i) / float32(segments))
		next := center.Add(vmath.Vec2{X: radius * cos, Y: radius * sin})
		r.line(prev, next, glyph, style)
		prev = next
	}
}

func (r *Renderer) set(x, y int, ch rune, style tcell.Style) {
	if r.Camera.Visible(x, y) {
		r.surface.SetContent(x, y, ch, nil, style)
	}
}
