package player

import (
	"math"
	"time"

	"github.com/lixenwraith/pincraft/audio"
	"github.com/lixenwraith/pincraft/engine"
	"github.com/lixenwraith/pincraft/input"
	"github.com/lixenwraith/pincraft/vmath"
)

const (
	baseSpeed    = 70
	stepInterval = 500 * time.Millisecond

	// Keyboard turning speed in viewports per second
	turnRate = .5
)

// StepPlayer plays footstep sounds
type StepPlayer interface {
	Play(sfx audio.SFX)
}

// Controller turns keyboard and pointer input into player movement
type Controller struct {
	View *View

	in     *input.Input
	layout input.KeyboardLayout
	sound  StepPlayer
	timers engine.TimerScheduler
	clock  engine.Clock

	vpWidth, vpHeight float64

	baseSpeed     float64
	speedVariance float64
	stepVariance  float64

	stopped   bool
	stepTimer engine.TimerID
}

// NewController wires a view to input, sound and timers; the controller starts stopped
func NewController(view *View, in *input.Input, layout input.KeyboardLayout, sound StepPlayer, timers engine.TimerScheduler, clock engine.Clock) *Controller {
	return &Controller{
		View:      view,
		in:        in,
		layout:    layout,
		sound:     sound,
		timers:    timers,
		clock:     clock,
		vpWidth:   80,
		vpHeight:  24,
		baseSpeed: baseSpeed,
		stopped:   true,
	}
}

// SetViewport sets the pointer travel, in cells, that maps to a full sensitivity turn
func (c *Controller) SetViewport(width, height int) {
	if width > 0 {
		c.vpWidth = float64(width)
	}
	if height > 0 {
		c.vpHeight = float64(height)
	}
}

// Go starts accepting input and locks the pointer
func (c *Controller) Go() {
	c.stopped = false
	c.in.Mouse.Lock()
}

// Stopped reports whether input is ignored
func (c *Controller) Stopped() bool { return c.stopped }

// Reset restores the view's initial pose
func (c *Controller) Reset() {
	c.View.Reset()
}

// GameStateChanged stops the player when the game ends
func (c *Controller) GameStateChanged(gs *engine.GameState) {
	if c.stopped {
		return
	}
	if gs.Ending() {
		c.stopped = true
		c.stopSteps()
		c.in.Mouse.Unlock()
		return
	}

	// Single-level game: the difficulty count stays at zero
	const count = 0
	c.speedVariance = 8 * count
	c.baseSpeed = baseSpeed - 10*count
	c.stepVariance = 70 * count
}

func (c *Controller) elapsed() float64 {
	return c.clock.Now().Sub(c.View.epoch).Seconds()
}

func (c *Controller) down(arrow input.Key, cmd input.KeyCommand) bool {
	kb := c.in.Keyboard
	return kb.Down(arrow) || kb.Down(input.KeyForCommand(cmd, c.layout))
}

// Step applies one frame of input
func (c *Controller) Step(dt time.Duration) {
	if c.stopped {
		return
	}
	secs := dt.Seconds()

	dx, dy := c.in.Mouse.PositionDelta()
	relX, relY := dx/-c.vpWidth, dy/-c.vpHeight
	kb := c.in.Keyboard
	if kb.Down(input.KeyForCommand(input.CommandTurnLeft, c.layout)) {
		relX += turnRate * secs
	}
	if kb.Down(input.KeyForCommand(input.CommandTurnRight, c.layout)) {
		relX -= turnRate * secs
	}
	c.View.Rotate(relX, relY)

	st := math.Sin(c.elapsed() * 4)
	maxAccel := c.baseSpeed + c.speedVariance*st
	accel, sideAccel := Acceleration(
		c.down(input.KeyUp, input.CommandForward),
		c.down(input.KeyDown, input.CommandBackward),
		c.down(input.KeyLeft, input.CommandLeft),
		c.down(input.KeyRight, input.CommandRight),
		maxAccel,
	)

	c.View.Update(secs, accel, sideAccel)
	c.handleStepSounds()
}

// Acceleration resolves digital movement keys into forward and sideways acceleration
// Forward wins over backward and left over right; diagonals keep the single-axis magnitude
func Acceleration(forward, backward, left, right bool, maxAccel float64) (accel, sideAccel float64) {
	switch {
	case forward:
		accel = maxAccel
	case backward:
		accel = -maxAccel
	}
	switch {
	case left:
		sideAccel = -maxAccel
	case right:
		sideAccel = maxAccel
	}

	if accel != 0 && sideAccel != 0 {
		diagonal := maxAccel * math.Sqrt2 / 2
		accel = vmath.Sign(accel) * diagonal
		sideAccel = vmath.Sign(sideAccel) * diagonal
	}
	return accel, sideAccel
}

func (c *Controller) handleStepSounds() {
	if !c.View.Moving() {
		c.stopSteps()
		return
	}
	if c.stepTimer != 0 {
		return
	}
	st := math.Sin(c.elapsed() * 4)
	delay := stepInterval + time.Duration(c.stepVariance*st)*time.Millisecond
	c.stepTimer = c.timers.AfterFunc(delay, func() {
		c.stepTimer = 0
		c.sound.Play(audio.SFXFootStep)
	})
}

func (c *Controller) stopSteps() {
	if c.stepTimer != 0 {
		c.timers.Cancel(c.stepTimer)
		c.stepTimer = 0
	}
}
