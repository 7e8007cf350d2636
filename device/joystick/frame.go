package joystick

import "github.com/gefkit/platform/input"

// SDL hat bits.
const (
	HatUp    uint8 = 0x01
	HatRight uint8 = 0x02
	HatDown  uint8 = 0x04
	HatLeft  uint8 = 0x08
)

// AxisToByte maps an SDL axis value to the 0..255 legacy range.
func AxisToByte(raw int16) uint8 {
	return uint8((int32(raw) + 32768) >> 8)
}

// HatToPOV converts SDL hat bits to hundredths of a degree clockwise from
// up. Centered and contradictory combinations yield input.POVCentered.
func HatToPOV(hat uint8) uint32 {
	switch hat & (HatUp | HatRight | HatDown | HatLeft) {
	case HatUp:
		return 0
	case HatUp | HatRight:
		return 4500
	case HatRight:
		return 9000
	case HatRight | HatDown:
		return 13500
	case HatDown:
		return 18000
	case HatDown | HatLeft:
		return 22500
	case HatLeft:
		return 27000
	case HatLeft | HatUp:
		return 31500
	default:
		return input.POVCentered
	}
}

// BuildFrame samples js through m into a legacy frame.
func BuildFrame(js Joystick, m *Mapping) *input.LegacyFrame {
	f := &input.LegacyFrame{
		X: 0x80, Y: 0x80, Z: 0x80, Rz: 0x80,
		POV: input.POVCentered,
	}
	axes := [slotCount]*uint8{&f.X, &f.Y, &f.Z, &f.Rx, &f.Ry, &f.Rz}
	numAxes := js.NumAxes()
	for slot, idx := range m.Axes {
		if idx < 0 || idx >= numAxes {
			continue
		}
		*axes[slot] = AxisToByte(js.Axis(idx))
	}

	numButtons := js.NumButtons()
	for idx, offset := range m.Buttons {
		if idx < numButtons && js.Button(idx) {
			f.SetPressed(offset, true)
		}
	}
	if m.TriggerButtons {
		f.SetPressed(input.LegacyL2, f.Rx >= triggerButtonThreshold)
		f.SetPressed(input.LegacyR2, f.Ry >= triggerButtonThreshold)
	}

	if js.NumHats() > 0 {
		f.POV = HatToPOV(js.Hat(0))
	}
	return f
}
