package engine

import (
	"testing"
	"time"
)

func newTestGameState() (*GameState, *Scheduler, *MockTimeProvider) {
	clock := NewMockTimeProvider(time.Unix(1000, 0))
	sched := NewScheduler(clock)
	return NewGameState(sched), sched, clock
}

func TestMessageDuration(t *testing.T) {
	if d := MessageDuration("hello"); d != 1775*time.Millisecond {
		t.Errorf("One word: expected 1775ms, got %v", d)
	}
	if d := MessageDuration("a b c"); d != 2325*time.Millisecond {
		t.Errorf("Three words: expected 2325ms, got %v", d)
	}
	// Split on single spaces, consecutive spaces count as extra words
	if d := MessageDuration("a  b"); d != 1500*time.Millisecond+3*275*time.Millisecond {
		t.Errorf("Double space: expected 2325ms, got %v", d)
	}
}

func TestShowMessageNotifiesOnSetAndClear(t *testing.T) {
	gs, sched, clock := newTestGameState()

	var seen []string
	gs.ListenFunc(func(gs *GameState) { seen = append(seen, gs.Message()) })

	gs.ShowMessage("look here")
	if len(seen) != 1 || seen[0] != "look here" {
		t.Fatalf("Expected set notification, got %v", seen)
	}

	clock.Advance(MessageDuration("look here") - time.Millisecond)
	sched.Advance(clock.Now())
	if gs.Message() != "look here" {
		t.Error("Message cleared too early")
	}

	clock.Advance(time.Millisecond)
	sched.Advance(clock.Now())
	if gs.Message() != "" {
		t.Errorf("Expected message cleared, got %q", gs.Message())
	}
	if len(seen) != 2 || seen[1] != "" {
		t.Errorf("Expected clear notification, got %v", seen)
	}
}

func TestEndMessageIsSticky(t *testing.T) {
	gs, sched, clock := newTestGameState()

	gs.ShowMessage(EndMessage)
	if sched.Pending() != 0 {
		t.Errorf("The End must not schedule a clear, %d pending", sched.Pending())
	}

	clock.Advance(time.Hour)
	sched.Advance(clock.Now())
	if gs.Message() != EndMessage {
		t.Errorf("Expected sticky end message, got %q", gs.Message())
	}
}

func TestEndMessageCancelsPendingClear(t *testing.T) {
	gs, sched, clock := newTestGameState()

	gs.ShowMessage("soon gone")
	gs.ShowMessage(EndMessage)

	clock.Advance(time.Minute)
	sched.Advance(clock.Now())
	if gs.Message() != EndMessage {
		t.Errorf("Earlier clear must not wipe the end message, got %q", gs.Message())
	}
}

func TestRapidMessagesFireSingleClear(t *testing.T) {
	gs, sched, clock := newTestGameState()

	clears := 0
	gs.ListenFunc(func(gs *GameState) {
		if gs.Message() == "" {
			clears++
		}
	})

	gs.ShowMessage("first message")
	clock.Advance(500 * time.Millisecond)
	sched.Advance(clock.Now())
	gs.ShowMessage("second")

	if sched.Pending() != 1 {
		t.Errorf("Expected exactly one pending clear, got %d", sched.Pending())
	}

	clock.Advance(time.Minute)
	sched.Advance(clock.Now())
	if clears != 1 {
		t.Errorf("Expected one clear for the burst, got %d", clears)
	}
}

type countingListener struct {
	id  int
	log *[]int
}

func (c *countingListener) GameStateChanged(gs *GameState) {
	*c.log = append(*c.log, c.id)
}

func TestListenersNotifiedInRegistrationOrder(t *testing.T) {
	gs, _, _ := newTestGameState()

	var log []int
	gs.Listen(&countingListener{id: 1, log: &log})
	gs.ListenFunc(func(*GameState) { log = append(log, 2) })
	gs.Listen(&countingListener{id: 3, log: &log})

	gs.SetEnd()

	if len(log) != 3 || log[0] != 1 || log[1] != 2 || log[2] != 3 {
		t.Errorf("Expected [1 2 3], got %v", log)
	}
	if !gs.Ending() {
		t.Error("Ending flag should be set")
	}
}

func TestMessageAfterEndStillReplaces(t *testing.T) {
	gs, _, _ := newTestGameState()

	gs.SetEnd()
	gs.ShowMessage(EndMessage)
	gs.ShowMessage("late hint")

	if gs.Message() != "late hint" {
		t.Errorf("Expected later message to replace end message, got %q", gs.Message())
	}
}
