package input

import "time"

// DefaultKeyHoldTimeout covers the typical terminal auto-repeat delay
const DefaultKeyHoldTimeout = 450 * time.Millisecond

// Keyboard tracks key level and edge state per frame
// Terminals report presses and auto-repeats but never releases, so a key counts as
// released once no repeat has arrived for the hold timeout
type Keyboard struct {
	holdTimeout time.Duration

	lastSeen map[Key]time.Time // keys currently down
	queued   map[Key]bool      // pressed since the last frame

	pressed  map[Key]bool
	released map[Key]bool
}

// NewKeyboard creates a keyboard with the given hold timeout
func NewKeyboard(holdTimeout time.Duration) *Keyboard {
	if holdTimeout <= 0 {
		holdTimeout = DefaultKeyHoldTimeout
	}
	return &Keyboard{
		holdTimeout: holdTimeout,
		lastSeen:    make(map[Key]time.Time),
		queued:      make(map[Key]bool),
		pressed:     make(map[Key]bool),
		released:    make(map[Key]bool),
	}
}

// HandleKey records a key event, repeats of a held key only extend the hold
func (kb *Keyboard) HandleKey(k Key, now time.Time) {
	if k == KeyNone {
		return
	}
	if _, down := kb.lastSeen[k]; !down {
		kb.queued[k] = true
	}
	kb.lastSeen[k] = now
}

// BeginFrame computes this frame's edges, call once per frame before any query
func (kb *Keyboard) BeginFrame(now time.Time) {
	clear(kb.pressed)
	clear(kb.released)

	for k := range kb.queued {
		kb.pressed[k] = true
	}
	clear(kb.queued)

	for k, seen := range kb.lastSeen {
		if kb.pressed[k] {
			continue
		}
		if now.Sub(seen) >= kb.holdTimeout {
			delete(kb.lastSeen, k)
			kb.released[k] = true
		}
	}
}

// Pressed reports whether k went down this frame
func (kb *Keyboard) Pressed(k Key) bool { return kb.pressed[k] }

// Released reports whether k went up this frame
func (kb *Keyboard) Released(k Key) bool { return kb.released[k] }

// Down reports whether k is held
func (kb *Keyboard) Down(k Key) bool {
	_, ok := kb.lastSeen[k]
	return ok
}

// ReleaseAll lets every held key release on the next frame, used when focus is lost
func (kb *Keyboard) ReleaseAll() {
	for k := range kb.queued {
		delete(kb.lastSeen, k)
	}
	clear(kb.queued)
	for k := range kb.lastSeen {
		kb.lastSeen[k] = time.Time{}
	}
}
