package scene

import (
	"errors"
	"fmt"
	"os"

	"github.com/jinzhu/copier"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/tank-physics/engine"
	"github.com/lixenwraith/tank-physics/geometry"
	"github.com/lixenwraith/tank-physics/physics"
	"github.com/lixenwraith/tank-physics/vmath"
)

var (
	ErrUnknownPrefab  = errors.New("unknown prefab")
	ErrUnknownSurface = errors.New("unknown surface")
	ErrUnknownKind    = errors.New("unknown body kind")
	ErrBadVector      = errors.New("vector needs exactly two components")
	ErrBadShape       = errors.New("shape needs exactly one of circle, box, regular, vertices")
	ErrDuplicateName  = errors.New("duplicate body name")
)

// ShapeDef describes one shape; exactly one geometry field is set
type ShapeDef struct {
	Circle   float32             `yaml:"circle,omitempty"`
	Box      []float32           `yaml:"box,omitempty"`
	Regular  *RegularDef         `yaml:"regular,omitempty"`
	Vertices [][]float32         `yaml:"vertices,omitempty"`
	Anchor   []float32           `yaml:"anchor,omitempty"`
	Surface  string              `yaml:"surface,omitempty"`
	Override *geometry.Overrides `yaml:"override,omitempty"`
}

// RegularDef is a regular polygon inscribed in an ellipse of the given size
type RegularDef struct {
	Size      []float32 `yaml:"size"`
	Sides     int       `yaml:"sides"`
	BaseAngle float32   `yaml:"base_angle,omitempty"`
}

// ForceDef is a constant force attached to a body
type ForceDef struct {
	Vector           []float32 `yaml:"vector"`
	MassProportional bool      `yaml:"mass_proportional,omitempty"`
}

// BodyDef describes one object; fields left empty are inherited from Prefab
type BodyDef struct {
	Name            string     `yaml:"name,omitempty"`
	Prefab          string     `yaml:"prefab,omitempty"`
	Kind            string     `yaml:"kind,omitempty"`
	Mass            float32    `yaml:"mass,omitempty"`
	Position        []float32  `yaml:"position,omitempty"`
	Orientation     float32    `yaml:"orientation,omitempty"`
	Velocity        []float32  `yaml:"velocity,omitempty"`
	AngularVelocity float32    `yaml:"angular_velocity,omitempty"`
	Multiplier      float32    `yaml:"multiplier,omitempty"`
	Surface         string     `yaml:"surface,omitempty"`
	Shapes          []ShapeDef `yaml:"shapes,omitempty"`
	Forces          []ForceDef `yaml:"forces,omitempty"`
	IgnoreAllBut    []string   `yaml:"ignore_all_but,omitempty"`
}

// Scene is the YAML document root
type Scene struct {
	Prefabs map[string]BodyDef `yaml:"prefabs,omitempty"`
	Bodies  []BodyDef          `yaml:"bodies"`
}

// Built maps scene names to the objects attached to a world
type Built struct {
	Objects map[string]physics.Object
	Order   []string
}

// Object returns the named object or nil
func (b *Built) Object(name string) physics.Object {
	return b.Objects[name]
}

// Load reads and parses a scene file
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", path, err)
	}
	return s, nil
}

// Parse decodes a scene document
func Parse(data []byte) (*Scene, error) {
	var s Scene
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Resolve returns def merged over its prefab
// Prefab fields are deep-copied so bodies sharing a prefab never alias slices
func (s *Scene) Resolve(def BodyDef) (BodyDef, error) {
	if def.Prefab == "" {
		return def, nil
	}
	prefab, ok := s.Prefabs[def.Prefab]
	if !ok {
		return BodyDef{}, fmt.Errorf("%w: %q", ErrUnknownPrefab, def.Prefab)
	}
	var merged BodyDef
	if err := copier.CopyWithOption(&merged, &prefab, copier.Option{DeepCopy: true}); err != nil {
		return BodyDef{}, err
	}
	// copier merges slices element-wise; a list given by the body replaces the prefab's
	if def.Shapes != nil {
		merged.Shapes = nil
	}
	if def.Forces != nil {
		merged.Forces = nil
	}
	if def.Position != nil {
		merged.Position = nil
	}
	if def.Velocity != nil {
		merged.Velocity = nil
	}
	if def.IgnoreAllBut != nil {
		merged.IgnoreAllBut = nil
	}
	if err := copier.CopyWithOption(&merged, &def, copier.Option{DeepCopy: true, IgnoreEmpty: true}); err != nil {
		return BodyDef{}, err
	}
	merged.Prefab = ""
	return merged, nil
}

// Build creates every body and attaches it to w in document order
// Suppression lists are applied after all bodies exist
func (s *Scene) Build(w *engine.World) (*Built, error) {
	built := &Built{Objects: make(map[string]physics.Object, len(s.Bodies))}
	defs := make([]BodyDef, 0, len(s.Bodies))

	for i, raw := range s.Bodies {
		def, err := s.Resolve(raw)
		if err != nil {
			return nil, fmt.Errorf("body %d: %w", i, err)
		}
		if def.Name == "" {
			def.Name = fmt.Sprintf("body%d", i)
		}
		if _, dup := built.Objects[def.Name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, def.Name)
		}
		obj, forces, err := def.Object()
		if err != nil {
			return nil, fmt.Errorf("body %q: %w", def.Name, err)
		}
		built.Objects[def.Name] = obj
		built.Order = append(built.Order, def.Name)
		defs = append(defs, def)
		w.Attach(obj, forces...)
	}

	for _, def := range defs {
		if len(def.IgnoreAllBut) == 0 {
			continue
		}
		keep := make([]physics.Object, 0, len(def.IgnoreAllBut))
		for _, name := range def.IgnoreAllBut {
			if obj, ok := built.Objects[name]; ok {
				keep = append(keep, obj)
			}
		}
		w.IgnoreAllBut(built.Objects[def.Name], keep...)
	}
	return built, nil
}

// Object constructs the physics object and its extra forces
func (d BodyDef) Object() (physics.Object, []*physics.Force, error) {
	pos, err := vec(d.Position, vmath.Zero)
	if err != nil {
		return nil, nil, fmt.Errorf("position: %w", err)
	}
	vel, err := vec(d.Velocity, vmath.Zero)
	if err != nil {
		return nil, nil, fmt.Errorf("velocity: %w", err)
	}
	transform := &physics.Transform{Position: pos, Orientation: d.Orientation}

	shapes := make([]*geometry.Shape, 0, len(d.Shapes))
	for i, sd := range d.Shapes {
		shape, err := sd.Shape(d.Surface)
		if err != nil {
			return nil, nil, fmt.Errorf("shape %d: %w", i, err)
		}
		shapes = append(shapes, shape)
	}

	forces := make([]*physics.Force, 0, len(d.Forces))
	for _, fd := range d.Forces {
		v, err := vec(fd.Vector, vmath.Zero)
		if err != nil {
			return nil, nil, fmt.Errorf("force: %w", err)
		}
		forces = append(forces, &physics.Force{Vector: v, MassProportional: fd.MassProportional})
	}

	switch d.Kind {
	case "", "rigid":
		b, err := physics.NewRigidBody(transform, d.Mass, shapes...)
		if err != nil {
			return nil, nil, err
		}
		b.SetVelocity(vel)
		b.SetAngularVelocity(d.AngularVelocity)
		if d.Multiplier != 0 {
			b.SetMultiplier(d.Multiplier)
		}
		return b, forces, nil
	case "static":
		st, err := physics.NewStatic(transform, shapes...)
		if err != nil {
			return nil, nil, err
		}
		return st, nil, nil
	case "particle":
		p, err := physics.NewParticle(transform, d.Mass)
		if err != nil {
			return nil, nil, err
		}
		p.SetVelocity(vel)
		return p, forces, nil
	}
	return nil, nil, fmt.Errorf("%w: %q", ErrUnknownKind, d.Kind)
}

// Shape builds the geometry; bodySurface applies when the shape names none
func (sd ShapeDef) Shape(bodySurface string) (*geometry.Shape, error) {
	name := sd.Surface
	if name == "" {
		name = bodySurface
	}
	material, ok := geometry.SurfaceByName(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSurface, name)
	}
	if sd.Override != nil {
		material = material.With(*sd.Override)
	}
	anchor, err := vec(sd.Anchor, vmath.Zero)
	if err != nil {
		return nil, fmt.Errorf("anchor: %w", err)
	}

	// Deep copies of a prefab turn absent lists into empty ones, so presence is by length
	hasRegular := sd.Regular != nil && (sd.Regular.Sides != 0 || len(sd.Regular.Size) > 0)
	set := 0
	for _, present := range []bool{sd.Circle != 0, len(sd.Box) > 0, hasRegular, len(sd.Vertices) > 0} {
		if present {
			set++
		}
	}
	if set != 1 {
		return nil, ErrBadShape
	}

	switch {
	case sd.Circle != 0:
		return geometry.NewCircle(sd.Circle, anchor, material)
	case len(sd.Box) > 0:
		size, err := vec(sd.Box, vmath.Zero)
		if err != nil {
			return nil, fmt.Errorf("box: %w", err)
		}
		return geometry.NewPolygon(geometry.Box(size), anchor, material)
	case hasRegular:
		size, err := vec(sd.Regular.Size, vmath.Zero)
		if err != nil {
			return nil, fmt.Errorf("regular: %w", err)
		}
		return geometry.NewPolygon(geometry.RegularPolygon(size, sd.Regular.Sides, sd.Regular.BaseAngle), anchor, material)
	}
	verts := make([]vmath.Vec2, 0, len(sd.Vertices))
	for _, raw := range sd.Vertices {
		v, err := vec(raw, vmath.Zero)
		if err != nil {
			return nil, fmt.Errorf("vertex: %w", err)
		}
		verts = append(verts, v)
	}
	return geometry.NewPolygon(verts, anchor, material)
}

func vec(raw []float32, fallback vmath.Vec2) (vmath.Vec2, error) {
	switch len(raw) {
	case 0:
		return fallback, nil
	case 2:
		return vmath.V(raw[0], raw[1]), nil
	}
	return vmath.Zero, fmt.Errorf("%w, got %d", ErrBadVector, len(raw))
}
