package input

// Vec3 is an uncalibrated motion sensor reading in device units.
type Vec3 struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	Z float32 `json:"z"`
}

// ControllerState is the unified state of one controller after a poll.
// Pressed and Released are derived from Down and Previous.
type ControllerState struct {
	Down     Buttons `json:"down"`
	Previous Buttons `json:"previous"`

	// Sticks in [-1, 1], x left to right, y as reported by the source device.
	LeftX  float32 `json:"leftX"`
	LeftY  float32 `json:"leftY"`
	RightX float32 `json:"rightX"`
	RightY float32 `json:"rightY"`

	// Triggers in [0, 1].
	LeftTrigger  float32 `json:"leftTrigger"`
	RightTrigger float32 `json:"rightTrigger"`

	TouchX int `json:"touchX"`
	TouchY int `json:"touchY"`

	Accelerometer Vec3 `json:"accelerometer"`
	Gyroscope     Vec3 `json:"gyroscope"`
}

// Pressed returns the buttons that went down this poll.
func (s ControllerState) Pressed() Buttons {
	p, _ := Transitions(s.Down, s.Previous)
	return p
}

// Released returns the buttons that went up this poll.
func (s ControllerState) Released() Buttons {
	_, r := Transitions(s.Down, s.Previous)
	return r
}
