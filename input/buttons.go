package input

import "strings"

// Buttons is a bitmask of the unified controller buttons.
type Buttons uint32

const (
	ButtonSelect Buttons = 1 << iota
	ButtonL3
	ButtonR3
	ButtonStart
	ButtonUp
	ButtonRight
	ButtonDown
	ButtonLeft
	ButtonL2
	ButtonR2
	ButtonL1
	ButtonR1
	ButtonTriangle
	ButtonCircle
	ButtonCross
	ButtonSquare
	ButtonPSLogo
	ButtonMic
	ButtonTouchPad
)

// ButtonOptions shares its bit with ButtonStart.
const ButtonOptions = ButtonStart

// ButtonCount is the number of defined button flags.
const ButtonCount = 19

// AllButtons has every defined flag set.
const AllButtons Buttons = 1<<ButtonCount - 1

var buttonNames = [ButtonCount]string{
	"select", "l3", "r3", "start",
	"up", "right", "down", "left",
	"l2", "r2", "l1", "r1",
	"triangle", "circle", "cross", "square",
	"ps", "mic", "touchpad",
}

// Has reports whether every flag in mask is set.
func (b Buttons) Has(mask Buttons) bool {
	return b&mask == mask
}

// Names returns the names of the set flags in bit order.
func (b Buttons) Names() []string {
	var out []string
	for i := 0; i < ButtonCount; i++ {
		if b&(1<<i) != 0 {
			out = append(out, buttonNames[i])
		}
	}
	return out
}

func (b Buttons) String() string {
	if b&AllButtons == 0 {
		return "none"
	}
	return strings.Join(b.Names(), "+")
}

// ButtonByName resolves a flag from its lower-case name.
func ButtonByName(name string) (Buttons, bool) {
	name = strings.ToLower(name)
	if name == "options" {
		return ButtonOptions, true
	}
	for i, n := range buttonNames {
		if n == name {
			return 1 << i, true
		}
	}
	return 0, false
}
