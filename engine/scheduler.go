package engine

import (
	"sort"
	"time"
)

// TimerID identifies a scheduled callback, 0 means no timer
type TimerID uint64

// TimerScheduler schedules callbacks on the frame loop
type TimerScheduler interface {
	AfterFunc(d time.Duration, fn func()) TimerID
	Cancel(id TimerID) bool
}

type timer struct {
	id       TimerID
	deadline time.Time
	fn       func()
}

// Scheduler is a single-thread timer queue
// Callbacks never run concurrently with frame updates: they fire from Advance, which the
// frame loop calls once per frame before updating the scene
type Scheduler struct {
	clock  Clock
	nextID TimerID
	timers []timer // sorted by deadline, then id
}

// NewScheduler creates a scheduler reading deadlines from clock
func NewScheduler(clock Clock) *Scheduler {
	return &Scheduler{clock: clock, nextID: 1}
}

// AfterFunc schedules fn to run once d has elapsed
func (s *Scheduler) AfterFunc(d time.Duration, fn func()) TimerID {
	id := s.nextID
	s.nextID++

	t := timer{id: id, deadline: s.clock.Now().Add(d), fn: fn}
	i := sort.Search(len(s.timers), func(i int) bool {
		return s.timers[i].deadline.After(t.deadline)
	})
	s.timers = append(s.timers, timer{})
	copy(s.timers[i+1:], s.timers[i:])
	s.timers[i] = t
	return id
}

// Cancel removes a pending timer, reporting whether it was still pending
func (s *Scheduler) Cancel(id TimerID) bool {
	for i := range s.timers {
		if s.timers[i].id == id {
			s.timers = append(s.timers[:i], s.timers[i+1:]...)
			return true
		}
	}
	return false
}

// Pending returns the number of timers waiting to fire
func (s *Scheduler) Pending() int {
	return len(s.timers)
}

// Advance fires every timer whose deadline is not after now, in deadline order
// Timers scheduled by a firing callback run on a later Advance
func (s *Scheduler) Advance(now time.Time) int {
	fired := 0
	limit := s.nextID
	for i := 0; i < len(s.timers); {
		t := s.timers[i]
		if t.deadline.After(now) {
			break
		}
		if t.id >= limit {
			i++
			continue
		}
		s.timers = append(s.timers[:i], s.timers[i+1:]...)
		t.fn()
		fired++
		// Callbacks may cancel or add timers, rescan from the head
		i = 0
	}
	return fired
}
