package joystick

import (
	"errors"
	"fmt"

	"github.com/gefkit/platform/input"
)

// Axis slots of a legacy frame, in LegacyFrame field order.
const (
	SlotX = iota
	SlotY
	SlotZ
	SlotRx
	SlotRy
	SlotRz
	slotCount
)

// Mapping describes how one joystick model's SDL indices land in a legacy
// frame.
type Mapping struct {
	Name string
	// Axes holds the SDL axis index feeding each slot, or -1.
	Axes [slotCount]int32
	// Buttons maps an SDL button index to a legacy button offset.
	Buttons map[int32]int
	// TriggerButtons derives the L2 and R2 buttons from the Rx and Ry
	// trigger axes for drivers that only report them as analog.
	TriggerButtons bool
}

// triggerButtonThreshold is the byte level at which a derived trigger
// button counts as held.
const triggerButtonThreshold = 0x20

// directInputMapping is the raw HID order a Sony pad reports through a
// generic joystick driver.
var directInputMapping = &Mapping{
	Name: "directinput",
	Axes: [slotCount]int32{SlotX: 0, SlotY: 1, SlotZ: 2, SlotRx: 3, SlotRy: 4, SlotRz: 5},
	Buttons: map[int32]int{
		0:  input.LegacySquare,
		1:  input.LegacyCross,
		2:  input.LegacyCircle,
		3:  input.LegacyTriangle,
		4:  input.LegacyL1,
		5:  input.LegacyR1,
		6:  input.LegacyL2,
		7:  input.LegacyR2,
		8:  input.LegacyShare,
		9:  input.LegacyOptions,
		10: input.LegacyL3,
		11: input.LegacyR3,
		12: input.LegacyPS,
		13: input.LegacyTouchPad,
	},
}

// sonyHIDAPIMapping is the layout SDL's own PlayStation drivers expose:
// gamepad button order and analog-only triggers on axes 4 and 5.
var sonyHIDAPIMapping = &Mapping{
	Name: "sony-hidapi",
	Axes: [slotCount]int32{SlotX: 0, SlotY: 1, SlotZ: 2, SlotRx: 4, SlotRy: 5, SlotRz: 3},
	Buttons: map[int32]int{
		0:  input.LegacyCross,
		1:  input.LegacyCircle,
		2:  input.LegacySquare,
		3:  input.LegacyTriangle,
		4:  input.LegacyShare,
		5:  input.LegacyPS,
		6:  input.LegacyOptions,
		7:  input.LegacyL3,
		8:  input.LegacyR3,
		9:  input.LegacyL1,
		10: input.LegacyR1,
		11: input.LegacyTouchPad,
	},
	TriggerButtons: true,
}

const sonyVendorID = 0x054C

// Mappings lists the built-in mappings by name.
var Mappings = map[string]*Mapping{
	directInputMapping.Name: directInputMapping,
	sonyHIDAPIMapping.Name:  sonyHIDAPIMapping,
}

// MappingFor picks the mapping for a joystick. An explicit name wins;
// otherwise Sony pads get the SDL driver layout and anything else the raw
// DirectInput order.
func MappingFor(name string, vendorID uint16) *Mapping {
	if m, ok := Mappings[name]; ok {
		return m
	}
	if vendorID == sonyVendorID {
		return sonyHIDAPIMapping
	}
	return directInputMapping
}

// ErrUnknownMapping is returned when a configured mapping name is not built in.
var ErrUnknownMapping = errors.New("unknown joystick mapping")

// ValidateMapping checks a configured mapping name.
func ValidateMapping(name string) error {
	if name == "" {
		return nil
	}
	if _, ok := Mappings[name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownMapping, name)
	}
	return nil
}
