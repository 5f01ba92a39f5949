package clock

import (
	"testing"
	"time"
)

type countingStepper struct {
	total time.Duration
	calls int
}

func (c *countingStepper) Advance(elapsed time.Duration) int {
	c.total += elapsed
	c.calls++
	return int(elapsed / time.Millisecond)
}

func TestMockTimeProvider(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	mock := NewMockTimeProvider(start)

	if !mock.Now().Equal(start) {
		t.Errorf("Expected %v, got %v", start, mock.Now())
	}
	mock.Advance(90 * time.Minute)
	if want := start.Add(90 * time.Minute); !mock.Now().Equal(want) {
		t.Errorf("Expected %v, got %v", want, mock.Now())
	}
	later := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	mock.SetTime(later)
	if !mock.Now().Equal(later) {
		t.Errorf("Expected %v after SetTime, got %v", later, mock.Now())
	}

	var _ TimeProvider = &MonotonicTimeProvider{}
	var _ TimeProvider = &MockTimeProvider{}
}

func TestFrameTimerTick(t *testing.T) {
	mock := NewMockTimeProvider(time.Unix(0, 0))
	f := NewFrameTimer(mock)

	if d := f.Tick(); d != 0 {
		t.Errorf("Expected first tick 0, got %v", d)
	}
	mock.Advance(16 * time.Millisecond)
	if d := f.Tick(); d != 16*time.Millisecond {
		t.Errorf("Expected 16ms, got %v", d)
	}

	f.MaxFrame = 50 * time.Millisecond
	mock.Advance(time.Second)
	if d := f.Tick(); d != 50*time.Millisecond {
		t.Errorf("Expected truncated 50ms, got %v", d)
	}

	mock.SetTime(time.Unix(0, 0))
	if d := f.Tick(); d != 0 {
		t.Errorf("Expected backwards clock to yield 0, got %v", d)
	}
	if f.Frames() != 3 || f.Elapsed() != 66*time.Millisecond {
		t.Errorf("Expected 3 frames over 66ms, got %d over %v", f.Frames(), f.Elapsed())
	}
}

func TestFrameTimerDriveAndReset(t *testing.T) {
	mock := NewMockTimeProvider(time.Unix(100, 0))
	f := NewFrameTimer(mock)
	s := &countingStepper{}

	f.Drive(s)
	mock.Advance(10 * time.Millisecond)
	if n := f.Drive(s); n != 10 {
		t.Errorf("Expected 10 from stepper, got %d", n)
	}

	// Paused span is not replayed after Reset
	mock.Advance(time.Hour)
	f.Reset()
	f.Drive(s)
	mock.Advance(5 * time.Millisecond)
	f.Drive(s)

	if s.total != 15*time.Millisecond || s.calls != 4 {
		t.Errorf("Expected 15ms over 4 calls, got %v over %d", s.total, s.calls)
	}
	if fps := f.FPS(); fps < 133 || fps > 134 {
		t.Errorf("Expected about 133 fps, got %v", fps)
	}
}
