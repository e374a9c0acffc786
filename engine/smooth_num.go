package engine

import "time"

// SmoothNum eases from its current value to a new target over a fixed interval
// The curve is quadratic ease-in; retargeting mid-ramp starts from the interpolated value
type SmoothNum struct {
	clock    Clock
	start    float64
	target   float64
	interval time.Duration
	t0, t1   time.Time
}

// NewSmoothNum creates a SmoothNum resting at initial
func NewSmoothNum(initial float64, interval time.Duration, clock Clock) *SmoothNum {
	return &SmoothNum{
		clock:    clock,
		start:    initial,
		target:   initial,
		interval: interval,
	}
}

// SetValue starts a new ramp towards v, no-op when v is already the target
func (s *SmoothNum) SetValue(v float64) {
	if v == s.target {
		return
	}
	s.start = s.Value()
	s.target = v
	s.t0 = s.clock.Now()
	s.t1 = s.t0.Add(s.interval)
}

// Value returns the eased value at the current time
func (s *SmoothNum) Value() float64 {
	now := s.clock.Now()
	if !now.Before(s.t1) {
		return s.target
	}
	if !now.After(s.t0) {
		return s.start
	}
	t := float64(now.Sub(s.t0)) / float64(s.t1.Sub(s.t0))
	return s.start + (s.target-s.start)*t*t
}

// Target returns the last value set
func (s *SmoothNum) Target() float64 {
	return s.target
}
