package audio

import (
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/tank-physics/config"
	"github.com/lixenwraith/tank-physics/engine"
	"github.com/lixenwraith/tank-physics/event"
	"github.com/lixenwraith/tank-physics/geometry"
	"github.com/lixenwraith/tank-physics/parameter"
	"github.com/lixenwraith/tank-physics/physics"
)

// ImpactSounds voices world-level onHit events
// Each object pair is rate-limited to one sound per ImpactCooldown of simulated time
type ImpactSounds struct {
	player   Player
	rate     beep.SampleRate
	volume   float64
	cooldown uint64 // in steps
	last     map[pairKey]uint64
	world    *engine.World
	handle   event.Handle
	played   int
}

// NewImpactSounds creates a voice for w's hits played through player
func NewImpactSounds(w *engine.World, player Player, rate beep.SampleRate, cfg config.Audio) *ImpactSounds {
	return &ImpactSounds{
		player:   player,
		rate:     rate,
		volume:   cfg.Volume,
		cooldown: CooldownFor(parameter.ImpactCooldown, w.Config().FixedStep),
		last:     make(map[pairKey]uint64),
		world:    w,
	}
}

// Attach subscribes to the world's onHit channel
func (s *ImpactSounds) Attach() {
	s.handle = s.world.Bus().Subscribe(event.EventHit, s.onHit)
}

// Detach unsubscribes; takes effect at the next flush
func (s *ImpactSounds) Detach() {
	s.world.Bus().Unsubscribe(s.handle)
}

// Played returns how many sounds were sent to the player
func (s *ImpactSounds) Played() int { return s.played }

func (s *ImpactSounds) onHit(ev event.Event) {
	p, ok := ev.Payload.(*engine.HitPayload)
	if !ok || p.ApproachSpeed < parameter.ImpactMinSpeed {
		return
	}
	// Keyed on identity; either object may already be detached by its own listener
	key := s.keyOf(p.Self, p.Other)
	if last, seen := s.last[key]; seen && ev.Step-last < s.cooldown {
		return
	}
	s.prune(ev.Step)
	s.last[key] = ev.Step

	s.player.Play(CreateImpactSound(Describe(p), s.volume, s.rate))
	s.played++
}

// pairKey identifies an unordered object pair
type pairKey [2]physics.Object

// keyOf returns the tracked key for a and b in either order
func (s *ImpactSounds) keyOf(a, b physics.Object) pairKey {
	if _, ok := s.last[pairKey{b, a}]; ok {
		return pairKey{b, a}
	}
	return pairKey{a, b}
}

// prune drops pairs whose cooldown has expired
func (s *ImpactSounds) prune(step uint64) {
	for k, last := range s.last {
		if step-last >= s.cooldown {
			delete(s.last, k)
		}
	}
}

// Tracked returns how many pairs are still cooling down
func (s *ImpactSounds) Tracked() int { return len(s.last) }

// Describe summarises a hit for synthesis
func Describe(p *engine.HitPayload) Impact {
	i := Impact{
		Strength: float64(p.ApproachSpeed) / parameter.ImpactSpeedReference,
		Ground:   !p.Self.Kind().Dynamic() || !p.Other.Kind().Dynamic(),
	}
	if p.Shape != nil && p.OtherShape != nil {
		i.Bounce = float64(p.Shape.Bounciness() * p.OtherShape.Bounciness())
		i.Round = p.Shape.Kind() == geometry.Circle || p.OtherShape.Kind() == geometry.Circle
	}
	return i
}

// CooldownFor converts a duration to whole steps of size step
func CooldownFor(d, step time.Duration) uint64 {
	if step <= 0 {
		return 1
	}
	return uint64((d + step - 1) / step)
}
