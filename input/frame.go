package input

// RawFrame is one polling cycle's raw sample from a backend.
// It is either a LegacyFrame or a DualSenseFrame.
type RawFrame interface {
	rawFrame()
}

// POVCentered is the hat value reported when no direction is held.
const POVCentered uint32 = 0xFFFFFFFF

// Legacy joystick button offsets into LegacyFrame.Buttons.
const (
	LegacySquare   = 0
	LegacyCross    = 1
	LegacyCircle   = 2
	LegacyTriangle = 3
	LegacyL1       = 4
	LegacyR1       = 5
	LegacyL2       = 6
	LegacyR2       = 7
	LegacyShare    = 8
	LegacyOptions  = 9
	LegacyL3       = 10
	LegacyR3       = 11
	LegacyPS       = 12
	LegacyTouchPad = 13

	// LegacyPressed is the bit set in a button byte while it is held.
	LegacyPressed = 0x80
)

// LegacyFrame mirrors a DirectInput style joystick sample.
// Axes are in 0..255 with 127.5 as centre; POV is in hundredths of a degree
// clockwise from up, or POVCentered.
type LegacyFrame struct {
	X, Y, Z    uint8
	Rx, Ry, Rz uint8
	POV        uint32
	Buttons    [32]byte
}

func (*LegacyFrame) rawFrame() {}

// Pressed reports whether the button byte at offset i is held.
func (f *LegacyFrame) Pressed(i int) bool {
	if i < 0 || i >= len(f.Buttons) {
		return false
	}
	return f.Buttons[i]&LegacyPressed != 0
}

// SetPressed sets or clears the held bit of the button at offset i.
func (f *LegacyFrame) SetPressed(i int, down bool) {
	if i < 0 || i >= len(f.Buttons) {
		return
	}
	if down {
		f.Buttons[i] = LegacyPressed
	} else {
		f.Buttons[i] = 0
	}
}

// DualSense button group flags, as unpacked from the HID report.
const (
	DSDpadLeft    uint8 = 0x01
	DSDpadDown    uint8 = 0x02
	DSDpadRight   uint8 = 0x04
	DSDpadUp      uint8 = 0x08
	DSBtnSquare   uint8 = 0x10
	DSBtnCross    uint8 = 0x20
	DSBtnCircle   uint8 = 0x40
	DSBtnTriangle uint8 = 0x80
)

const (
	DSBtnL1      uint8 = 0x01
	DSBtnR1      uint8 = 0x02
	DSBtnL2      uint8 = 0x04
	DSBtnR2      uint8 = 0x08
	DSBtnCreate  uint8 = 0x10
	DSBtnOptions uint8 = 0x20
	DSBtnL3      uint8 = 0x40
	DSBtnR3      uint8 = 0x80
)

const (
	DSBtnPS       uint8 = 0x01
	DSBtnTouchPad uint8 = 0x02
	DSBtnMic      uint8 = 0x04
)

// DualSenseFrame is an unpacked DualSense input report.
// Sticks are signed with up and right positive.
type DualSenseFrame struct {
	LeftX, LeftY   int8
	RightX, RightY int8

	LeftTrigger, RightTrigger uint8

	DpadAndFace uint8
	ButtonsA    uint8
	ButtonsB    uint8

	TouchX, TouchY uint16
	TouchDown      bool

	Accel [3]int16
	Gyro  [3]int16
}

func (*DualSenseFrame) rawFrame() {}
