package input_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gefkit/platform/input"
)

func TestButtonBits(t *testing.T) {
	bits := []struct {
		button input.Buttons
		bit    uint
	}{
		{input.ButtonSelect, 0},
		{input.ButtonL3, 1},
		{input.ButtonR3, 2},
		{input.ButtonStart, 3},
		{input.ButtonUp, 4},
		{input.ButtonRight, 5},
		{input.ButtonDown, 6},
		{input.ButtonLeft, 7},
		{input.ButtonL2, 8},
		{input.ButtonR2, 9},
		{input.ButtonL1, 10},
		{input.ButtonR1, 11},
		{input.ButtonTriangle, 12},
		{input.ButtonCircle, 13},
		{input.ButtonCross, 14},
		{input.ButtonSquare, 15},
		{input.ButtonPSLogo, 16},
		{input.ButtonMic, 17},
		{input.ButtonTouchPad, 18},
	}
	for _, b := range bits {
		assert.Equal(t, input.Buttons(1)<<b.bit, b.button, b.button.String())
	}
	assert.Equal(t, input.ButtonStart, input.ButtonOptions)
	assert.Equal(t, input.Buttons(0x7FFFF), input.AllButtons)
}

func TestButtonsString(t *testing.T) {
	assert.Equal(t, "none", input.Buttons(0).String())
	assert.Equal(t, "cross", input.ButtonCross.String())
	assert.Equal(t, "select+up+cross", (input.ButtonCross | input.ButtonUp | input.ButtonSelect).String())
	assert.True(t, (input.ButtonCross | input.ButtonUp).Has(input.ButtonUp))
	assert.False(t, input.ButtonCross.Has(input.ButtonCross|input.ButtonUp))
}

func TestButtonByName(t *testing.T) {
	b, ok := input.ButtonByName("Triangle")
	assert.True(t, ok)
	assert.Equal(t, input.ButtonTriangle, b)

	b, ok = input.ButtonByName("options")
	assert.True(t, ok)
	assert.Equal(t, input.ButtonStart, b)

	_, ok = input.ButtonByName("turbo")
	assert.False(t, ok)
}
