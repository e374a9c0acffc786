package engine

import (
	"strings"
	"time"
)

// EndMessage is the terminal message, it is never cleared automatically
const EndMessage = "The End"

const (
	messageBaseDuration    = 1500 * time.Millisecond
	messagePerWordDuration = 275 * time.Millisecond
)

// Listener observes GameState changes
type Listener interface {
	GameStateChanged(gs *GameState)
}

// ListenerFunc adapts a plain function to Listener
type ListenerFunc func(gs *GameState)

// GameStateChanged calls f(gs)
func (f ListenerFunc) GameStateChanged(gs *GameState) { f(gs) }

// GameState holds the on-screen contextual message and the ending flag
// Listeners are notified synchronously in registration order
type GameState struct {
	timers TimerScheduler

	message         string
	messageEndTimer TimerID
	ending          bool

	listeners []Listener
}

// NewGameState creates a game state whose message timers run on timers
func NewGameState(timers TimerScheduler) *GameState {
	return &GameState{timers: timers}
}

// Listen registers a listener
func (gs *GameState) Listen(l Listener) {
	gs.listeners = append(gs.listeners, l)
}

// ListenFunc registers a plain function as a listener
func (gs *GameState) ListenFunc(f func(gs *GameState)) {
	gs.Listen(ListenerFunc(f))
}

func (gs *GameState) signal() {
	for _, l := range gs.listeners {
		l.GameStateChanged(gs)
	}
}

// MessageDuration returns how long m stays on screen
func MessageDuration(m string) time.Duration {
	words := len(strings.Split(m, " "))
	return messageBaseDuration + time.Duration(words)*messagePerWordDuration
}

// ShowMessage replaces the current message and restarts its auto-clear timer
func (gs *GameState) ShowMessage(m string) {
	gs.message = m
	if gs.messageEndTimer != 0 {
		gs.timers.Cancel(gs.messageEndTimer)
		gs.messageEndTimer = 0
	}
	if m != EndMessage {
		gs.messageEndTimer = gs.timers.AfterFunc(MessageDuration(m), func() {
			gs.messageEndTimer = 0
			gs.message = ""
			gs.signal()
		})
	}
	gs.signal()
}

// Message returns the current message, empty when none is shown
func (gs *GameState) Message() string { return gs.message }

// SetEnd raises the ending flag
// Messages shown afterwards still replace the current one
func (gs *GameState) SetEnd() {
	gs.ending = true
	gs.signal()
}

// Ending reports whether the game has ended
func (gs *GameState) Ending() bool { return gs.ending }
