package input

import "fmt"

// DefaultDeadZone is the stick threshold below which an axis reads 0.
const DefaultDeadZone = 0.1

// NormalizerConfig configures a Normalizer.
type NormalizerConfig struct {
	// DeadZone is applied to each stick axis after normalization.
	// Zero selects DefaultDeadZone.
	DeadZone float32 `help:"Stick dead zone in normalized units" default:"0.1" env:"GEFPAD_INPUT_DEAD_ZONE"`
}

// Normalizer converts raw frames from either device family into
// ControllerState.
type Normalizer struct {
	deadZone float32
}

func NewNormalizer(cfg NormalizerConfig) *Normalizer {
	dz := cfg.DeadZone
	if dz == 0 {
		dz = DefaultDeadZone
	}
	if dz < 0 {
		dz = 0
	}
	return &Normalizer{deadZone: dz}
}

// DeadZone returns the configured stick dead zone.
func (n *Normalizer) DeadZone() float32 {
	return n.deadZone
}

// Normalize maps a raw frame to a ControllerState. Previous is left zero;
// edge tracking is the caller's job.
func (n *Normalizer) Normalize(frame RawFrame) (ControllerState, error) {
	switch f := frame.(type) {
	case *LegacyFrame:
		if f == nil {
			break
		}
		return n.normalizeLegacy(f), nil
	case *DualSenseFrame:
		if f == nil {
			break
		}
		return n.normalizeDualSense(f), nil
	}
	return ControllerState{}, fmt.Errorf("%w: %T", ErrUnknownFrame, frame)
}

func (n *Normalizer) normalizeLegacy(f *LegacyFrame) ControllerState {
	return ControllerState{
		Down:         LegacyButtons(f),
		LeftX:        n.ApplyDeadZone(LegacyAxis(f.X)),
		LeftY:        n.ApplyDeadZone(LegacyAxis(f.Y)),
		RightX:       n.ApplyDeadZone(LegacyAxis(f.Z)),
		RightY:       n.ApplyDeadZone(LegacyAxis(f.Rz)),
		LeftTrigger:  LegacyTrigger(f.Rx),
		RightTrigger: LegacyTrigger(f.Ry),
	}
}

func (n *Normalizer) normalizeDualSense(f *DualSenseFrame) ControllerState {
	return ControllerState{
		Down:         DualSenseButtons(f),
		LeftX:        n.ApplyDeadZone(DualSenseAxis(f.LeftX)),
		LeftY:        n.ApplyDeadZone(DualSenseAxis(f.LeftY)),
		RightX:       n.ApplyDeadZone(DualSenseAxis(f.RightX)),
		RightY:       n.ApplyDeadZone(DualSenseAxis(f.RightY)),
		LeftTrigger:  DualSenseTrigger(f.LeftTrigger),
		RightTrigger: DualSenseTrigger(f.RightTrigger),
		TouchX:       int(f.TouchX),
		TouchY:       int(f.TouchY),
		Accelerometer: Vec3{
			X: float32(f.Accel[0]),
			Y: float32(f.Accel[1]),
			Z: float32(f.Accel[2]),
		},
		Gyroscope: Vec3{
			X: float32(f.Gyro[0]),
			Y: float32(f.Gyro[1]),
			Z: float32(f.Gyro[2]),
		},
	}
}

// ApplyDeadZone returns 0 if v is within the dead zone, v otherwise.
func (n *Normalizer) ApplyDeadZone(v float32) float32 {
	if v < n.deadZone && v > -n.deadZone {
		return 0
	}
	return v
}

// LegacyAxis maps a 0..255 axis to [-1, 1].
func LegacyAxis(raw uint8) float32 {
	return (float32(raw) - 127.5) / 127.5
}

// LegacyTrigger maps a 0..255 trigger to [0, 1].
func LegacyTrigger(raw uint8) float32 {
	return float32(raw) / 255
}

// DualSenseAxis maps a signed stick byte to [-1, 1]. -128 is clamped.
func DualSenseAxis(raw int8) float32 {
	v := float32(raw) / 127
	if v < -1 {
		v = -1
	}
	return v
}

// DualSenseTrigger maps a trigger byte to [0, 1). The /256 divisor means a
// fully pulled trigger reads 255/256.
func DualSenseTrigger(raw uint8) float32 {
	return float32(raw) / 256
}

var legacyButtonMap = [...]struct {
	offset int
	button Buttons
}{
	{LegacyOptions, ButtonSelect},
	{LegacyShare, ButtonStart},
	{LegacyL1, ButtonL1},
	{LegacyR1, ButtonR1},
	{LegacyL2, ButtonL2},
	{LegacyR2, ButtonR2},
	{LegacyL3, ButtonL3},
	{LegacyR3, ButtonR3},
	{LegacyPS, ButtonPSLogo},
	{LegacyTouchPad, ButtonTouchPad},
	{LegacySquare, ButtonSquare},
	{LegacyCross, ButtonCross},
	{LegacyCircle, ButtonCircle},
	{LegacyTriangle, ButtonTriangle},
}

// LegacyButtons decodes the button bytes and the POV hat of a legacy frame.
func LegacyButtons(f *LegacyFrame) Buttons {
	b := POVButtons(f.POV)
	for _, m := range legacyButtonMap {
		if f.Pressed(m.offset) {
			b |= m.button
		}
	}
	return b
}

// povDirections is indexed by POV/4500, clockwise from up.
var povDirections = [8]Buttons{
	ButtonUp,
	ButtonUp | ButtonRight,
	ButtonRight,
	ButtonRight | ButtonDown,
	ButtonDown,
	ButtonDown | ButtonLeft,
	ButtonLeft,
	ButtonLeft | ButtonUp,
}

// POVButtons maps a hat angle to direction flags. 0 is up; diagonals set
// two flags. The centered sentinel and angles off the 45 degree grid map
// to no direction.
func POVButtons(pov uint32) Buttons {
	if pov&0xFFFF == 0xFFFF || pov >= 36000 || pov%4500 != 0 {
		return 0
	}
	return povDirections[pov/4500]
}

var dualSenseButtonMap = [...]struct {
	group  int
	flag   uint8
	button Buttons
}{
	{1, DSBtnCreate, ButtonStart},
	{1, DSBtnOptions, ButtonSelect},
	{0, DSDpadUp, ButtonUp},
	{0, DSDpadRight, ButtonRight},
	{0, DSDpadDown, ButtonDown},
	{0, DSDpadLeft, ButtonLeft},
	{1, DSBtnL1, ButtonL1},
	{1, DSBtnR1, ButtonR1},
	{1, DSBtnL2, ButtonL2},
	{1, DSBtnR2, ButtonR2},
	{1, DSBtnL3, ButtonL3},
	{1, DSBtnR3, ButtonR3},
	{2, DSBtnTouchPad, ButtonTouchPad},
	{0, DSBtnSquare, ButtonSquare},
	{0, DSBtnCross, ButtonCross},
	{0, DSBtnCircle, ButtonCircle},
	{0, DSBtnTriangle, ButtonTriangle},
	{2, DSBtnPS, ButtonPSLogo},
	{2, DSBtnMic, ButtonMic},
}

// DualSenseButtons maps the three DualSense button groups to unified flags.
func DualSenseButtons(f *DualSenseFrame) Buttons {
	groups := [3]uint8{f.DpadAndFace, f.ButtonsA, f.ButtonsB}
	var b Buttons
	for _, m := range dualSenseButtonMap {
		if groups[m.group]&m.flag != 0 {
			b |= m.button
		}
	}
	return b
}
