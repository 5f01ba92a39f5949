package parameter

import "time"

// Impact sound synthesis
const (
	// AudioSampleRate is the speaker sample rate (Hz)
	AudioSampleRate = 44100

	// AudioBufferSize is the speaker buffer duration
	AudioBufferSize = 50 * time.Millisecond

	// ImpactBaseFrequency is the pitch of the lightest hit (Hz)
	ImpactBaseFrequency = 220.0

	// ImpactFrequencySpan is added to the base pitch at full strength
	ImpactFrequencySpan = 440.0

	// ImpactDuration is the length of a single impact sound
	ImpactDuration = 120 * time.Millisecond

	// ImpactAttack is the envelope rise time
	ImpactAttack = 5 * time.Millisecond

	// ImpactSpeedReference maps relative speed to full volume
	ImpactSpeedReference = 20.0

	// ImpactMinSpeed suppresses sounds for resting contacts
	ImpactMinSpeed = 0.5

	// ImpactCooldown rate-limits sounds per object pair
	ImpactCooldown = 80 * time.Millisecond
)
