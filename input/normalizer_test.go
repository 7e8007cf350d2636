package input_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gefkit/platform/input"
)

func neutralLegacy() *input.LegacyFrame {
	return &input.LegacyFrame{X: 128, Y: 128, Z: 128, Rz: 128, POV: input.POVCentered}
}

func TestNormalizeLegacyButtons(t *testing.T) {
	type testCase struct {
		name     string
		offsets  []int
		expected input.Buttons
	}

	cases := []testCase{
		{name: "nothing held", expected: 0},
		{name: "square", offsets: []int{input.LegacySquare}, expected: input.ButtonSquare},
		{name: "cross", offsets: []int{input.LegacyCross}, expected: input.ButtonCross},
		{name: "circle", offsets: []int{input.LegacyCircle}, expected: input.ButtonCircle},
		{name: "triangle", offsets: []int{input.LegacyTriangle}, expected: input.ButtonTriangle},
		{name: "shoulders", offsets: []int{input.LegacyL1, input.LegacyR1}, expected: input.ButtonL1 | input.ButtonR1},
		{name: "trigger buttons", offsets: []int{input.LegacyL2, input.LegacyR2}, expected: input.ButtonL2 | input.ButtonR2},
		{name: "share is start", offsets: []int{input.LegacyShare}, expected: input.ButtonStart},
		{name: "options is select", offsets: []int{input.LegacyOptions}, expected: input.ButtonSelect},
		{name: "stick clicks", offsets: []int{input.LegacyL3, input.LegacyR3}, expected: input.ButtonL3 | input.ButtonR3},
		{name: "ps", offsets: []int{input.LegacyPS}, expected: input.ButtonPSLogo},
		{name: "touchpad", offsets: []int{input.LegacyTouchPad}, expected: input.ButtonTouchPad},
		{name: "unmapped offset", offsets: []int{20}, expected: 0},
	}

	n := input.NewNormalizer(input.NormalizerConfig{})
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := neutralLegacy()
			for _, o := range tc.offsets {
				f.SetPressed(o, true)
			}
			state, err := n.Normalize(f)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, state.Down, "got %s", state.Down)
		})
	}
}

func TestNormalizeLegacyPressedBit(t *testing.T) {
	n := input.NewNormalizer(input.NormalizerConfig{})
	f := neutralLegacy()
	f.Buttons[input.LegacyCross] = 0x7F

	state, err := n.Normalize(f)
	require.NoError(t, err)
	assert.Zero(t, state.Down, "only bit 0x80 marks a held button")

	f.Buttons[input.LegacyCross] = 0xFF
	state, err = n.Normalize(f)
	require.NoError(t, err)
	assert.Equal(t, input.ButtonCross, state.Down)
}

func TestPOVButtons(t *testing.T) {
	type testCase struct {
		pov      uint32
		expected input.Buttons
	}

	cases := []testCase{
		{0, input.ButtonUp},
		{4500, input.ButtonUp | input.ButtonRight},
		{9000, input.ButtonRight},
		{13500, input.ButtonRight | input.ButtonDown},
		{18000, input.ButtonDown},
		{22500, input.ButtonDown | input.ButtonLeft},
		{27000, input.ButtonLeft},
		{31500, input.ButtonLeft | input.ButtonUp},
		{input.POVCentered, 0},
		{0x0000FFFF, 0},
		{36000, 0},
		{100, 0},
		{4501, 0},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.expected, input.POVButtons(tc.pov), "pov %d", tc.pov)
	}
}

func TestNormalizeLegacyAxes(t *testing.T) {
	n := input.NewNormalizer(input.NormalizerConfig{})

	f := &input.LegacyFrame{X: 255, Y: 0, Z: 128, Rz: 127, Rx: 255, Ry: 0, POV: input.POVCentered}
	state, err := n.Normalize(f)
	require.NoError(t, err)

	assert.Equal(t, float32(1), state.LeftX)
	assert.Equal(t, float32(-1), state.LeftY)
	assert.Equal(t, float32(0), state.RightX, "128 is inside the dead zone")
	assert.Equal(t, float32(0), state.RightY, "127 is inside the dead zone")
	assert.Equal(t, float32(1), state.LeftTrigger)
	assert.Equal(t, float32(0), state.RightTrigger)
	assert.Zero(t, state.TouchX)
	assert.Zero(t, state.Accelerometer)
}

func TestNormalizeDualSense(t *testing.T) {
	n := input.NewNormalizer(input.NormalizerConfig{})

	f := &input.DualSenseFrame{
		LeftX:        127,
		LeftY:        -128,
		RightX:       5,
		RightY:       -64,
		LeftTrigger:  255,
		RightTrigger: 128,
		DpadAndFace:  input.DSDpadUp | input.DSDpadLeft | input.DSBtnCross,
		ButtonsA:     input.DSBtnCreate | input.DSBtnOptions | input.DSBtnR3,
		ButtonsB:     input.DSBtnPS | input.DSBtnMic | input.DSBtnTouchPad,
		TouchX:       1919,
		TouchY:       1079,
		Accel:        [3]int16{1, -2, 8192},
		Gyro:         [3]int16{-3, 4, 5},
	}
	state, err := n.Normalize(f)
	require.NoError(t, err)

	assert.Equal(t, input.ButtonUp|input.ButtonLeft|input.ButtonCross|
		input.ButtonStart|input.ButtonSelect|input.ButtonR3|
		input.ButtonPSLogo|input.ButtonMic|input.ButtonTouchPad, state.Down)

	assert.Equal(t, float32(1), state.LeftX)
	assert.Equal(t, float32(-1), state.LeftY, "-128 clamps to -1")
	assert.Equal(t, float32(0), state.RightX, "5/127 is inside the dead zone")
	assert.InDelta(t, -64.0/127.0, state.RightY, 1e-6)
	assert.Equal(t, float32(255)/256, state.LeftTrigger)
	assert.Equal(t, float32(0.5), state.RightTrigger)
	assert.Equal(t, 1919, state.TouchX)
	assert.Equal(t, 1079, state.TouchY)
	assert.Equal(t, input.Vec3{X: 1, Y: -2, Z: 8192}, state.Accelerometer)
	assert.Equal(t, input.Vec3{X: -3, Y: 4, Z: 5}, state.Gyroscope)
}

func TestNormalizeDualSenseButtonGroups(t *testing.T) {
	type testCase struct {
		name     string
		frame    input.DualSenseFrame
		expected input.Buttons
	}

	cases := []testCase{
		{"square", input.DualSenseFrame{DpadAndFace: input.DSBtnSquare}, input.ButtonSquare},
		{"circle", input.DualSenseFrame{DpadAndFace: input.DSBtnCircle}, input.ButtonCircle},
		{"triangle", input.DualSenseFrame{DpadAndFace: input.DSBtnTriangle}, input.ButtonTriangle},
		{"dpad down right", input.DualSenseFrame{DpadAndFace: input.DSDpadDown | input.DSDpadRight}, input.ButtonDown | input.ButtonRight},
		{"l1 r1", input.DualSenseFrame{ButtonsA: input.DSBtnL1 | input.DSBtnR1}, input.ButtonL1 | input.ButtonR1},
		{"l2 r2", input.DualSenseFrame{ButtonsA: input.DSBtnL2 | input.DSBtnR2}, input.ButtonL2 | input.ButtonR2},
		{"l3", input.DualSenseFrame{ButtonsA: input.DSBtnL3}, input.ButtonL3},
	}

	n := input.NewNormalizer(input.NormalizerConfig{})
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := tc.frame
			state, err := n.Normalize(&f)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, state.Down)
		})
	}
}

func TestDeadZone(t *testing.T) {
	type testCase struct {
		name     string
		deadZone float32
		in       float32
		expected float32
	}

	cases := []testCase{
		{"zero config uses default", 0, 0.09, 0},
		{"default keeps edge value", 0, 0.1, 0.1},
		{"negative inside", 0, -0.05, 0},
		{"negative outside", 0, -0.5, -0.5},
		{"custom zone", 0.25, 0.2, 0},
		{"custom zone outside", 0.25, -0.3, -0.3},
		{"negative config disables", -1, 0.01, 0.01},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			n := input.NewNormalizer(input.NormalizerConfig{DeadZone: tc.deadZone})
			assert.Equal(t, tc.expected, n.ApplyDeadZone(tc.in))
		})
	}
}

func TestDeadZoneLeavesTriggers(t *testing.T) {
	n := input.NewNormalizer(input.NormalizerConfig{DeadZone: 0.5})
	state, err := n.Normalize(&input.DualSenseFrame{LeftTrigger: 10, LeftX: 10})
	require.NoError(t, err)
	assert.Equal(t, float32(10)/256, state.LeftTrigger)
	assert.Equal(t, float32(0), state.LeftX)
}

func TestNormalizeUnknownFrame(t *testing.T) {
	n := input.NewNormalizer(input.NormalizerConfig{})

	_, err := n.Normalize(nil)
	assert.ErrorIs(t, err, input.ErrUnknownFrame)

	var f *input.LegacyFrame
	_, err = n.Normalize(f)
	assert.ErrorIs(t, err, input.ErrUnknownFrame)
}

func TestNormalizedRanges(t *testing.T) {
	n := input.NewNormalizer(input.NormalizerConfig{})
	for raw := 0; raw <= 255; raw++ {
		state, err := n.Normalize(&input.LegacyFrame{
			X: uint8(raw), Y: uint8(raw), Z: uint8(raw), Rz: uint8(raw),
			Rx: uint8(raw), Ry: uint8(raw), POV: input.POVCentered,
		})
		require.NoError(t, err)
		for _, v := range []float32{state.LeftX, state.LeftY, state.RightX, state.RightY} {
			assert.True(t, v >= -1 && v <= 1, "axis %v out of range for raw %d", v, raw)
			assert.True(t, v == 0 || v >= 0.1 || v <= -0.1, "axis %v inside dead zone for raw %d", v, raw)
		}
		assert.True(t, state.LeftTrigger >= 0 && state.LeftTrigger <= 1)

		ds, err := n.Normalize(&input.DualSenseFrame{
			LeftX: int8(raw - 128), RightY: int8(raw - 128), RightTrigger: uint8(raw),
		})
		require.NoError(t, err)
		assert.True(t, ds.LeftX >= -1 && ds.LeftX <= 1)
		assert.True(t, ds.RightY >= -1 && ds.RightY <= 1)
		assert.True(t, ds.RightTrigger >= 0 && ds.RightTrigger < 1)
	}
}
