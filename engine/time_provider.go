package engine

import "time"

// Clock is the time source shared by timers, easing and animation
type Clock interface {
	Now() time.Time
}

// TimeProvider provides the real system time with monotonic clock readings
type TimeProvider struct{}

// NewTimeProvider creates a new monotonic time provider
func NewTimeProvider() *TimeProvider {
	return &TimeProvider{}
}

// Now returns the current time with monotonic clock reading
func (p *TimeProvider) Now() time.Time {
	return time.Now()
}

// MockTimeProvider is a hand-driven Clock for tests and replays
type MockTimeProvider struct {
	now time.Time
}

// NewMockTimeProvider starts the clock at start
func NewMockTimeProvider(start time.Time) *MockTimeProvider {
	return &MockTimeProvider{now: start}
}

// Now returns the current mocked time
func (m *MockTimeProvider) Now() time.Time { return m.now }

// SetTime jumps the clock, backwards included
func (m *MockTimeProvider) SetTime(t time.Time) { m.now = t }

// Advance moves the clock forward by d
func (m *MockTimeProvider) Advance(d time.Duration) { m.now = m.now.Add(d) }
