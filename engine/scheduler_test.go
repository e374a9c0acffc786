package engine

import (
	"testing"
	"time"
)

func TestSchedulerFiresInDeadlineOrder(t *testing.T) {
	clock := NewMockTimeProvider(time.Unix(0, 0))
	s := NewScheduler(clock)

	var order []int
	s.AfterFunc(300*time.Millisecond, func() { order = append(order, 3) })
	s.AfterFunc(100*time.Millisecond, func() { order = append(order, 1) })
	s.AfterFunc(200*time.Millisecond, func() { order = append(order, 2) })

	clock.Advance(150 * time.Millisecond)
	if n := s.Advance(clock.Now()); n != 1 {
		t.Errorf("Expected 1 timer fired, got %d", n)
	}

	clock.Advance(time.Second)
	s.Advance(clock.Now())

	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Errorf("Expected [1 2 3], got %v", order)
	}
	if s.Pending() != 0 {
		t.Errorf("Expected no pending timers, got %d", s.Pending())
	}
}

func TestSchedulerCancel(t *testing.T) {
	clock := NewMockTimeProvider(time.Unix(0, 0))
	s := NewScheduler(clock)

	fired := false
	id := s.AfterFunc(50*time.Millisecond, func() { fired = true })

	if !s.Cancel(id) {
		t.Error("Cancel of pending timer should report true")
	}
	if s.Cancel(id) {
		t.Error("Second cancel should report false")
	}

	clock.Advance(time.Second)
	s.Advance(clock.Now())
	if fired {
		t.Error("Cancelled timer must not fire")
	}
}

func TestSchedulerCallbackSchedulesForLaterAdvance(t *testing.T) {
	clock := NewMockTimeProvider(time.Unix(0, 0))
	s := NewScheduler(clock)

	count := 0
	var again func()
	again = func() {
		count++
		s.AfterFunc(0, again)
	}
	s.AfterFunc(0, again)

	s.Advance(clock.Now())
	if count != 1 {
		t.Errorf("Expected one firing per Advance, got %d", count)
	}
	s.Advance(clock.Now())
	if count != 2 {
		t.Errorf("Expected second firing on next Advance, got %d", count)
	}
}

func TestSchedulerEqualDeadlinesKeepScheduleOrder(t *testing.T) {
	clock := NewMockTimeProvider(time.Unix(0, 0))
	s := NewScheduler(clock)

	var order []string
	s.AfterFunc(10*time.Millisecond, func() { order = append(order, "a") })
	s.AfterFunc(10*time.Millisecond, func() { order = append(order, "b") })

	clock.Advance(10 * time.Millisecond)
	s.Advance(clock.Now())

	if len(order) != 2 || order[0] != "a" || order[1] != "b" {
		t.Errorf("Expected [a b], got %v", order)
	}
}
