package geometry

// Material holds the contact response coefficients of a shape
// Resolution multiplies the coefficients of both touching shapes
type Material struct {
	StaticFriction  float32 `yaml:"static_friction"`
	DynamicFriction float32 `yaml:"dynamic_friction"`
	Bounciness      float32 `yaml:"bounciness"`
}

// Surface presets
var (
	DefaultSurface  = Material{StaticFriction: 0.5, DynamicFriction: 0.4, Bounciness: 0.2}
	RoughSurface    = Material{StaticFriction: 0.6, DynamicFriction: 0.5, Bounciness: 0.3}
	WoodenSurface   = Material{StaticFriction: 1.2, DynamicFriction: 1.0, Bounciness: 0.1}
	BoundarySurface = Material{StaticFriction: 0, DynamicFriction: 0, Bounciness: 0.3}
)

// Overrides is a partial Material; nil fields keep the base value
type Overrides struct {
	StaticFriction  *float32 `yaml:"static_friction,omitempty"`
	DynamicFriction *float32 `yaml:"dynamic_friction,omitempty"`
	Bounciness      *float32 `yaml:"bounciness,omitempty"`
}

// With returns m with every non-nil override applied
func (m Material) With(o Overrides) Material {
	if o.StaticFriction != nil {
		m.StaticFriction = *o.StaticFriction
	}
	if o.DynamicFriction != nil {
		m.DynamicFriction = *o.DynamicFriction
	}
	if o.Bounciness != nil {
		m.Bounciness = *o.Bounciness
	}
	return m
}

// SurfaceByName resolves a preset name used by scene files
func SurfaceByName(name string) (Material, bool) {
	switch name {
	case "", "default":
		return DefaultSurface, true
	case "rough":
		return RoughSurface, true
	case "wooden":
		return WoodenSurface, true
	case "boundary":
		return BoundarySurface, true
	}
	return Material{}, false
}
