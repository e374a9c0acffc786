package engine

import (
	"math"
	"testing"
	"time"
)

func TestSmoothNumStartsAtInitial(t *testing.T) {
	clock := NewMockTimeProvider(time.Unix(5000, 0))
	s := NewSmoothNum(7, 300*time.Millisecond, clock)

	if v := s.Value(); v != 7 {
		t.Errorf("Expected initial value 7, got %f", v)
	}
}

func TestSmoothNumQuadraticRamp(t *testing.T) {
	clock := NewMockTimeProvider(time.Unix(5000, 0))
	s := NewSmoothNum(0, 100*time.Millisecond, clock)

	s.SetValue(100)
	if v := s.Value(); v != 0 {
		t.Errorf("At ramp start expected 0, got %f", v)
	}

	clock.Advance(50 * time.Millisecond)
	if v := s.Value(); math.Abs(v-25) > 1e-9 {
		t.Errorf("Halfway expected 25 (quadratic ease-in), got %f", v)
	}

	clock.Advance(50 * time.Millisecond)
	if v := s.Value(); v != 100 {
		t.Errorf("At ramp end expected 100, got %f", v)
	}

	clock.Advance(time.Hour)
	if v := s.Value(); v != 100 {
		t.Errorf("After ramp end expected 100, got %f", v)
	}
}

func TestSmoothNumRetargetIsContinuous(t *testing.T) {
	clock := NewMockTimeProvider(time.Unix(5000, 0))
	s := NewSmoothNum(0, 300*time.Millisecond, clock)

	targets := []float64{1000, 250, 1750, 1750, -40, 90}
	for i, target := range targets {
		clock.Advance(time.Duration(37*(i+1)) * time.Millisecond)
		before := s.Value()
		s.SetValue(target)
		after := s.Value()
		if before != after {
			t.Errorf("Write %d (%f): value jumped from %f to %f", i, target, before, after)
		}
	}
}

func TestSmoothNumEndEqualsTargetForAnyInterval(t *testing.T) {
	for _, interval := range []time.Duration{0, time.Nanosecond, 10 * time.Millisecond, 2 * time.Second} {
		clock := NewMockTimeProvider(time.Unix(5000, 0))
		s := NewSmoothNum(3, interval, clock)

		s.SetValue(11)
		clock.Advance(interval)
		if v := s.Value(); v != 11 {
			t.Errorf("Interval %v: expected 11 at ramp end, got %f", interval, v)
		}
	}
}

func TestSmoothNumSameTargetIsNoop(t *testing.T) {
	clock := NewMockTimeProvider(time.Unix(5000, 0))
	s := NewSmoothNum(0, 100*time.Millisecond, clock)

	s.SetValue(10)
	clock.Advance(50 * time.Millisecond)
	mid := s.Value()

	s.SetValue(10)
	if v := s.Value(); v != mid {
		t.Errorf("Re-setting same target should not restart the ramp: %f vs %f", v, mid)
	}
	clock.Advance(50 * time.Millisecond)
	if v := s.Value(); v != 10 {
		t.Errorf("First ramp should still end on time, got %f", v)
	}
}
