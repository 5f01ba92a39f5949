package clock

import (
	"time"
)

// Stepper consumes elapsed real time in fixed steps; *engine.World satisfies it
type Stepper interface {
	Advance(elapsed time.Duration) int
}

// FrameTimer measures real time between host frames and feeds it to a Stepper
// A frame gap longer than MaxFrame is truncated, e.g. after the process was suspended
type FrameTimer struct {
	provider TimeProvider
	last     time.Time
	started  bool

	MaxFrame time.Duration // zero disables truncation

	frames  uint64
	elapsed time.Duration
}

// NewFrameTimer creates a timer over provider; the first Tick only records the start
func NewFrameTimer(provider TimeProvider) *FrameTimer {
	return &FrameTimer{provider: provider}
}

// Tick returns the real time elapsed since the previous Tick
func (f *FrameTimer) Tick() time.Duration {
	now := f.provider.Now()
	if !f.started {
		f.started = true
		f.last = now
		return 0
	}
	d := now.Sub(f.last)
	f.last = now
	if d < 0 {
		d = 0
	}
	if f.MaxFrame > 0 && d > f.MaxFrame {
		d = f.MaxFrame
	}
	f.frames++
	f.elapsed += d
	return d
}

// Drive ticks once and advances s by the measured time, returning the steps run
func (f *FrameTimer) Drive(s Stepper) int {
	return s.Advance(f.Tick())
}

// Reset forgets the previous reading so the next Tick starts a new interval
// Used when resuming from pause so the paused span is not replayed
func (f *FrameTimer) Reset() {
	f.started = false
}

// Frames returns the number of measured intervals
func (f *FrameTimer) Frames() uint64 { return f.frames }

// Elapsed returns the total measured time
func (f *FrameTimer) Elapsed() time.Duration { return f.elapsed }

// FPS returns the mean frame rate over the measured intervals
func (f *FrameTimer) FPS() float64 {
	if f.elapsed <= 0 {
		return 0
	}
	return float64(f.frames) / f.elapsed.Seconds()
}
