package clock

import "time"

// TimeProvider supplies the current time to the host loop
type TimeProvider interface {
	Now() time.Time
}

// MonotonicTimeProvider reads the system clock; time.Now carries a monotonic reading
type MonotonicTimeProvider struct{}

// NewMonotonicTimeProvider creates a provider over the system clock
func NewMonotonicTimeProvider() *MonotonicTimeProvider {
	return &MonotonicTimeProvider{}
}

// Now returns the current time with monotonic clock reading
func (p *MonotonicTimeProvider) Now() time.Time {
	return time.Now()
}
