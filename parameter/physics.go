package parameter

// Solver tuning, world units and seconds
const (
	// Gravity is the downward (+Y) acceleration attached to every dynamic body on registration
	Gravity float32 = 9.18

	// CorrectionThreshold is the penetration depth tolerated before positional correction applies
	CorrectionThreshold float32 = 0.01

	// CorrectionPercentage is the fraction of penetration removed per correction
	CorrectionPercentage float32 = 0.2

	// SameEdgeThreshold groups support vertices and merges near-equal two-sided results
	SameEdgeThreshold float32 = 0.01

	// RotationCacheThreshold is the orientation change (radians) that invalidates rotated shape caches
	RotationCacheThreshold float32 = 0.001

	// ParticleSize is the half-size reported by point masses for broad phase
	ParticleSize float32 = 0.01
)

// Projectile
const (
	// MaxProjectileVelocity is the launch speed at full intensity
	MaxProjectileVelocity float32 = 100

	// MaxProjectileIntensity is the intensity ceiling (percent)
	MaxProjectileIntensity float32 = 100

	ProjectileMass   float32 = 5
	ProjectileRadius float32 = 0.1
	ProjectileSides          = 26

	// ProjectileMuzzleDistance is how far along the launch direction a shell spawns
	ProjectileMuzzleDistance float32 = 1
)

// Tank damage
const (
	// DamageScale converts a hit's impulse magnitude into damage fraction
	DamageScale float32 = 200

	// KnockbackGain scales shell knockback by accumulated damage fraction
	KnockbackGain float32 = 10
)
