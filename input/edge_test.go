package input_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gefkit/platform/input"
)

func TestTransitions(t *testing.T) {
	type testCase struct {
		name             string
		current          input.Buttons
		previous         input.Buttons
		expectedPressed  input.Buttons
		expectedReleased input.Buttons
	}

	cases := []testCase{
		{"idle", 0, 0, 0, 0},
		{"press", input.ButtonCross, 0, input.ButtonCross, 0},
		{"hold", input.ButtonCross, input.ButtonCross, 0, 0},
		{"release", 0, input.ButtonCross, 0, input.ButtonCross},
		{
			"swap",
			input.ButtonCircle | input.ButtonL1,
			input.ButtonCross | input.ButtonL1,
			input.ButtonCircle,
			input.ButtonCross,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, r := input.Transitions(tc.current, tc.previous)
			assert.Equal(t, tc.expectedPressed, p)
			assert.Equal(t, tc.expectedReleased, r)
		})
	}
}

func TestTransitionProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		cur := input.Buttons(rng.Uint32()) & input.AllButtons
		prev := input.Buttons(rng.Uint32()) & input.AllButtons

		p, r := input.Transitions(cur, prev)
		assert.Zero(t, p&r, "pressed and released overlap")
		assert.Equal(t, cur, p|(prev&cur), "pressed | held must equal current")
		assert.Equal(t, prev, r|(prev&cur), "released | held must equal previous")

		same, _ := input.Transitions(cur, cur)
		assert.Zero(t, same)

		fromIdle, _ := input.Transitions(cur, 0)
		assert.Equal(t, cur, fromIdle)
	}
}

func TestEdgeTracker(t *testing.T) {
	var tr input.EdgeTracker

	p, r := tr.Update(input.ButtonCross)
	assert.Zero(t, p, "a button held at startup is not a press")
	assert.Zero(t, r)
	assert.Equal(t, input.ButtonCross, tr.Previous())

	p, r = tr.Update(input.ButtonCross | input.ButtonSquare)
	assert.Equal(t, input.ButtonSquare, p)
	assert.Zero(t, r)

	p, r = tr.Update(input.ButtonSquare)
	assert.Zero(t, p)
	assert.Equal(t, input.ButtonCross, r)

	p, r = tr.Update(input.ButtonSquare)
	assert.Zero(t, p)
	assert.Zero(t, r)

	tr.Reset()
	assert.Zero(t, tr.Previous())
	p, _ = tr.Update(input.ButtonStart)
	assert.Zero(t, p)
}

func TestControllerStateEdges(t *testing.T) {
	s := input.ControllerState{
		Down:     input.ButtonUp | input.ButtonR1,
		Previous: input.ButtonR1 | input.ButtonL1,
	}
	assert.Equal(t, input.ButtonUp, s.Pressed())
	assert.Equal(t, input.ButtonL1, s.Released())
}
