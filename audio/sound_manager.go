package audio

import (
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/tank-physics/parameter"
)

// Player accepts finished streamers for playback
type Player interface {
	Play(s beep.Streamer)
}

// SoundManager owns the speaker and a mixer all sounds are added to
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	rate        beep.SampleRate
	initialized bool
	muted       bool
}

// NewSoundManager creates a manager; the speaker is opened by Initialize
func NewSoundManager() *SoundManager {
	return &SoundManager{
		mixer: &beep.Mixer{},
		rate:  beep.SampleRate(parameter.AudioSampleRate),
	}
}

// Initialize opens the speaker and starts the mixer
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if err := speaker.Init(sm.rate, sm.rate.N(parameter.AudioBufferSize)); err != nil {
		return err
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup drops every queued sound and stops feeding the speaker
func (sm *SoundManager) Cleanup() {
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()

	sm.mu.Lock()
	defer sm.mu.Unlock()
	if sm.initialized {
		speaker.Clear()
		sm.initialized = false
	}
}

// Rate returns the sample rate sounds must be generated at
func (sm *SoundManager) Rate() beep.SampleRate { return sm.rate }

// SetMuted drops new sounds while muted
func (sm *SoundManager) SetMuted(muted bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.muted = muted
}

// Play adds s to the mixer; ignored before Initialize or while muted
func (sm *SoundManager) Play(s beep.Streamer) {
	sm.mu.Lock()
	active := sm.initialized && !sm.muted
	sm.mu.Unlock()
	if !active || s == nil {
		return
	}
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

// Active returns the number of sounds still playing
func (sm *SoundManager) Active() int {
	speaker.Lock()
	defer speaker.Unlock()
	return sm.mixer.Len()
}
