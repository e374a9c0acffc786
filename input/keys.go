package input

import (
	"unicode"

	"github.com/gdamore/tcell/v2"
)

// Key identifies a physical key
// Printable keys are their lower-case rune, special keys are negative
type Key int32

const (
	KeyNone   Key = 0
	KeyLeft   Key = -1
	KeyRight  Key = -2
	KeyUp     Key = -3
	KeyDown   Key = -4
	KeyEscape Key = -5
	KeyEnter  Key = -6
	KeySpace  Key = ' '
)

// RuneKey returns the key producing r, case-insensitive
func RuneKey(r rune) Key {
	return Key(unicode.ToLower(r))
}

// String returns a printable key name
func (k Key) String() string {
	switch k {
	case KeyNone:
		return "none"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyEscape:
		return "escape"
	case KeyEnter:
		return "enter"
	case KeySpace:
		return "space"
	}
	return string(rune(k))
}

// FromEvent translates a tcell key event, KeyNone for keys the game ignores
func FromEvent(ev *tcell.EventKey) Key {
	switch ev.Key() {
	case tcell.KeyLeft:
		return KeyLeft
	case tcell.KeyRight:
		return KeyRight
	case tcell.KeyUp:
		return KeyUp
	case tcell.KeyDown:
		return KeyDown
	case tcell.KeyEscape:
		return KeyEscape
	case tcell.KeyEnter:
		return KeyEnter
	case tcell.KeyRune:
		return RuneKey(ev.Rune())
	}
	return KeyNone
}
