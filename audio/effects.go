package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/tank-physics/parameter"
	"github.com/lixenwraith/tank-physics/vmath"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates raw audio waves
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	rng      *vmath.FastRand
}

// NewOscillator creates a fixed-length oscillator; noise is seeded so output is reproducible
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		rng:      vmath.NewFastRand(uint64(freq*1000) + 1),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = float64(o.rng.Symmetric(1))
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase = o.phase - math.Floor(o.phase) // Keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies a linear attack and a linear release to the tail of a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope shapes s over duration; release covers whatever attack leaves
func NewEnvelope(s beep.Streamer, duration, attack time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	if att > total {
		att = total
	}
	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: total - att,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		} else if e.releaseSamples > 0 {
			vol = float64(e.totalSamples-e.position) / float64(e.releaseSamples)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps s in a linear gain; math.Log2(0) is -Inf so zero is silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// Impact describes one collision to voice
type Impact struct {
	// Strength in [0,1], from closing speed
	Strength float64
	// Bounce is the combined bounciness of the two surfaces
	Bounce float64
	// Round is set when either shape is a circle
	Round bool
	// Ground is set when the other side does not move
	Ground bool
}

// Frequency maps bouncier surfaces to higher pitch
func (i Impact) Frequency() float64 {
	return parameter.ImpactBaseFrequency + parameter.ImpactFrequencySpan*clamp01(i.Bounce)
}

// CreateImpactSound synthesises a short hit: a tone for the body plus noise for ground strikes
func CreateImpactSound(i Impact, volume float64, rate beep.SampleRate) beep.Streamer {
	wave := WaveSquare
	if i.Round {
		wave = WaveSine
	}
	tone := NewEnvelope(NewOscillator(i.Frequency(), parameter.ImpactDuration, wave, rate),
		parameter.ImpactDuration, parameter.ImpactAttack, rate)

	gain := volume * clamp01(i.Strength)
	if !i.Ground {
		return newVolume(tone, gain)
	}

	noise := NewEnvelope(NewOscillator(0, parameter.ImpactDuration/2, WaveNoise, rate),
		parameter.ImpactDuration/2, parameter.ImpactAttack, rate)
	return newVolume(beep.Mix(newVolume(tone, 0.6), newVolume(noise, 0.4)), gain)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
