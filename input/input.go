package input

import (
	"time"

	"github.com/gdamore/tcell/v2"
)

// Input routes tcell events into the keyboard and mouse state
type Input struct {
	Keyboard *Keyboard
	Mouse    *Mouse
}

// New creates input state with the given key hold timeout
func New(holdTimeout time.Duration) *Input {
	return &Input{
		Keyboard: NewKeyboard(holdTimeout),
		Mouse:    NewMouse(),
	}
}

// HandleEvent consumes key and mouse events, reporting whether the event was used
func (in *Input) HandleEvent(ev tcell.Event, now time.Time) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		k := FromEvent(ev)
		if k == KeyNone {
			return false
		}
		in.Keyboard.HandleKey(k, now)
		return true
	case *tcell.EventMouse:
		x, y := ev.Position()
		in.Mouse.HandleMotion(x, y)
		return true
	case *tcell.EventFocus:
		if !ev.Focused {
			in.Keyboard.ReleaseAll()
		}
		return true
	}
	return false
}

// BeginFrame latches edges and motion for the frame starting at now
func (in *Input) BeginFrame(now time.Time) {
	in.Keyboard.BeginFrame(now)
	in.Mouse.BeginFrame()
}
