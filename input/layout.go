package input

import (
	"strings"

	"github.com/pkg/errors"
)

// KeyboardLayout selects the physical key positions for movement
type KeyboardLayout uint8

const (
	LayoutQWERTY KeyboardLayout = iota
	LayoutQWERTZ
	LayoutAZERTY
)

var layoutNames = [...]string{"qwerty", "qwertz", "azerty"}

func (l KeyboardLayout) String() string {
	if int(l) < len(layoutNames) {
		return layoutNames[l]
	}
	return "unknown"
}

// ParseLayout resolves a layout name, case-insensitive
func ParseLayout(name string) (KeyboardLayout, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, ln := range layoutNames {
		if ln == n {
			return KeyboardLayout(i), nil
		}
	}
	return LayoutQWERTY, errors.Errorf("unknown keyboard layout %q", name)
}

// KeyCommand is a layout-independent action
type KeyCommand uint8

const (
	CommandForward KeyCommand = iota
	CommandBackward
	CommandLeft
	CommandRight
	CommandInteract
	CommandTurnLeft
	CommandTurnRight

	commandCount
)

// keyTable is indexed [command][layout]
var keyTable = [commandCount][3]Key{
	CommandForward:   {'w', 'w', 'z'},
	CommandBackward:  {'s', 's', 's'},
	CommandLeft:      {'a', 'a', 'q'},
	CommandRight:     {'d', 'd', 'd'},
	CommandInteract:  {'e', 'e', 'e'},
	CommandTurnLeft:  {',', ',', ','},
	CommandTurnRight: {'.', '.', ';'},
}

// KeyForCommand returns the key bound to cmd in layout
func KeyForCommand(cmd KeyCommand, layout KeyboardLayout) Key {
	if cmd >= commandCount || int(layout) >= len(layoutNames) {
		return KeyNone
	}
	return keyTable[cmd][layout]
}
