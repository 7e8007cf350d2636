package input

import "math"

// DualSense wire codes for the mic LED and player LED brightness.
const (
	WireMicOff   uint8 = 0
	WireMicOn    uint8 = 1
	WireMicPulse uint8 = 2

	WireBrightnessHigh   uint8 = 0
	WireBrightnessMedium uint8 = 1
	WireBrightnessLow    uint8 = 2
)

// TriggerWire is a trigger effect in device units. Every payload group is
// filled; the device encoder reads the one that matches Mode.
type TriggerWire struct {
	Mode TriggerEffectType

	Continuous struct {
		Start uint8
		Force uint8
	}
	Section struct {
		Start uint8
		End   uint8
	}
	Extended struct {
		Start       uint8
		KeepEffect  bool
		BeginForce  uint8
		MiddleForce uint8
		EndForce    uint8
		Frequency   uint8
	}
}

// DualSenseOutput is an OutputRequest in DualSense device units.
type DualSenseOutput struct {
	LeftRumble  uint8
	RightRumble uint8

	LightbarR, LightbarG, LightbarB uint8

	MicLED uint8

	PlayerLEDMask       uint8
	PlayerLEDFade       bool
	PlayerLEDBrightness uint8

	DisableLEDs bool

	LeftTrigger  TriggerWire
	RightTrigger TriggerWire
}

// Compose converts a request to DualSense device units.
func Compose(req OutputRequest) DualSenseOutput {
	return DualSenseOutput{
		LeftRumble:          Scale255(req.LeftRumble),
		RightRumble:         Scale255(req.RightRumble),
		LightbarR:           Scale255(req.Lightbar.R),
		LightbarG:           Scale255(req.Lightbar.G),
		LightbarB:           Scale255(req.Lightbar.B),
		MicLED:              micWire(req.MicLED),
		PlayerLEDMask:       req.PlayerLEDs.Mask,
		PlayerLEDFade:       req.PlayerLEDs.Fade,
		PlayerLEDBrightness: brightnessWire(req.PlayerLEDs.Brightness),
		DisableLEDs:         req.DisableLEDs,
		LeftTrigger:         ComposeTrigger(req.LeftTrigger),
		RightTrigger:        ComposeTrigger(req.RightTrigger),
	}
}

// ComposeTrigger scales a trigger effect to device units. The start
// position is written to all three groups, the remaining fields only to
// the group of the effect's own mode.
func ComposeTrigger(e TriggerEffect) TriggerWire {
	var w TriggerWire
	if e == nil {
		return w
	}
	w.Mode = e.Type()
	var start uint8
	switch v := e.(type) {
	case ContinuousResistance:
		start = Scale255(v.Start)
		w.Continuous.Force = Scale255(v.Force)
	case SectionResistance:
		start = Scale255(v.Start)
		w.Section.End = Scale255(v.End)
	case ExtendedEffect:
		start = Scale255(v.Start)
		w.Extended.KeepEffect = v.KeepEffect
		w.Extended.BeginForce = Scale255(v.BeginForce)
		w.Extended.MiddleForce = Scale255(v.MiddleForce)
		w.Extended.EndForce = Scale255(v.EndForce)
		w.Extended.Frequency = Scale255(v.Frequency)
	}
	w.Continuous.Start = start
	w.Section.Start = start
	w.Extended.Start = start
	return w
}

// Scale255 maps [0, 1] to a byte by multiplying by 255 and truncating.
// Out of range input is clamped and NaN maps to 0.
func Scale255(v float32) uint8 {
	f := v * 255
	switch {
	case math.IsNaN(float64(f)), f <= 0:
		return 0
	case f >= 255:
		return 255
	default:
		return uint8(f)
	}
}

func micWire(m MicLED) uint8 {
	switch m {
	case MicLEDOn:
		return WireMicOn
	case MicLEDPulse:
		return WireMicPulse
	default:
		return WireMicOff
	}
}

func brightnessWire(b LEDBrightness) uint8 {
	switch b {
	case BrightnessHigh:
		return WireBrightnessHigh
	case BrightnessMedium:
		return WireBrightnessMedium
	default:
		return WireBrightnessLow
	}
}
