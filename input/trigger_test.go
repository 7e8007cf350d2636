package input_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gefkit/platform/input"
)

func TestTriggerEffectCodes(t *testing.T) {
	assert.Equal(t, input.TriggerEffectType(0x00), input.NoResistance{}.Type())
	assert.Equal(t, input.TriggerEffectType(0x01), input.ContinuousResistance{}.Type())
	assert.Equal(t, input.TriggerEffectType(0x02), input.SectionResistance{}.Type())
	assert.Equal(t, input.TriggerEffectType(0x26), input.ExtendedEffect{}.Type())
	assert.Equal(t, input.TriggerEffectType(0xFC), input.Calibrate{}.Type())
	assert.Equal(t, "extended", input.TriggerExtended.String())
	assert.Equal(t, "TriggerEffectType(0x7f)", input.TriggerEffectType(0x7F).String())
}

func TestValidateTriggerEffect(t *testing.T) {
	type testCase struct {
		name    string
		effect  input.TriggerEffect
		wantErr bool
	}

	cases := []testCase{
		{"nil", nil, false},
		{"none", input.NoResistance{}, false},
		{"calibrate", input.Calibrate{}, false},
		{"continuous", input.ContinuousResistance{Start: 0.1, Force: 1}, false},
		{"continuous force too big", input.ContinuousResistance{Start: 0.1, Force: 1.1}, true},
		{"section", input.SectionResistance{Start: 0.2, End: 0.2}, false},
		{"section reversed", input.SectionResistance{Start: 0.6, End: 0.2}, true},
		{"section negative", input.SectionResistance{Start: -0.1, End: 0.2}, true},
		{"extended", input.ExtendedEffect{Start: 0.3, BeginForce: 1, Frequency: 0.5}, false},
		{"extended bad frequency", input.ExtendedEffect{Frequency: 2}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := input.ValidateTriggerEffect(tc.effect)
			if tc.wantErr {
				assert.ErrorIs(t, err, input.ErrInvalidTrigger)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseTriggerEffect(t *testing.T) {
	e, err := input.ParseTriggerEffect("section", 0.2, 0.6)
	require.NoError(t, err)
	assert.Equal(t, input.SectionResistance{Start: 0.2, End: 0.6}, e)

	e, err = input.ParseTriggerEffect("extended", 0.1, 1, 0.2, 0.3, 0.4, 0.5)
	require.NoError(t, err)
	assert.Equal(t, input.ExtendedEffect{
		Start: 0.1, KeepEffect: true, BeginForce: 0.2, MiddleForce: 0.3, EndForce: 0.4, Frequency: 0.5,
	}, e)

	e, err = input.ParseTriggerEffect("")
	require.NoError(t, err)
	assert.Equal(t, input.NoResistance{}, e)

	_, err = input.ParseTriggerEffect("section", 0.9, 0.1)
	assert.ErrorIs(t, err, input.ErrInvalidTrigger)

	_, err = input.ParseTriggerEffect("wobble")
	assert.ErrorIs(t, err, input.ErrInvalidTrigger)
}
