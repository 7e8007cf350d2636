package input

// Color is an RGBA colour with channels in [0, 1].
type Color struct {
	R float32 `json:"r"`
	G float32 `json:"g"`
	B float32 `json:"b"`
	A float32 `json:"a"`
}

// MicLED is the microphone LED mode.
type MicLED uint8

const (
	MicLEDOff MicLED = iota
	MicLEDOn
	MicLEDPulse
)

func (m MicLED) String() string {
	switch m {
	case MicLEDOff:
		return "off"
	case MicLEDOn:
		return "on"
	case MicLEDPulse:
		return "pulse"
	default:
		return "unknown"
	}
}

// LEDBrightness is the player LED brightness.
type LEDBrightness uint8

const (
	BrightnessLow LEDBrightness = iota
	BrightnessMedium
	BrightnessHigh
)

func (b LEDBrightness) String() string {
	switch b {
	case BrightnessLow:
		return "low"
	case BrightnessMedium:
		return "medium"
	case BrightnessHigh:
		return "high"
	default:
		return "unknown"
	}
}

// Player LED bits, left to right as seen on the pad.
const (
	PlayerLEDLeft        uint8 = 0x01
	PlayerLEDMiddleLeft  uint8 = 0x02
	PlayerLEDMiddle      uint8 = 0x04
	PlayerLEDMiddleRight uint8 = 0x08
	PlayerLEDRight       uint8 = 0x10
)

// PlayerLEDs configures the five player indicator LEDs.
type PlayerLEDs struct {
	Mask       uint8         `json:"mask"`
	Brightness LEDBrightness `json:"brightness"`
	Fade       bool          `json:"fade"`
}

// OutputRequest is the full output state for one controller. It is
// replaced wholesale on every change.
type OutputRequest struct {
	// LeftRumble drives the hard motor, RightRumble the soft one.
	LeftRumble  float32 `json:"leftRumble"`
	RightRumble float32 `json:"rightRumble"`

	Lightbar    Color      `json:"lightbar"`
	MicLED      MicLED     `json:"micLED"`
	PlayerLEDs  PlayerLEDs `json:"playerLEDs"`
	DisableLEDs bool       `json:"disableLEDs"`

	LeftTrigger  TriggerEffect `json:"-"`
	RightTrigger TriggerEffect `json:"-"`
}

// DefaultOutput returns the request a freshly opened controller starts
// with: opaque black lightbar and medium brightness player LEDs.
func DefaultOutput() OutputRequest {
	return OutputRequest{
		Lightbar:   Color{A: 1},
		PlayerLEDs: PlayerLEDs{Brightness: BrightnessMedium},
	}
}

// PlayerLEDMaskForSlot returns the player LED pattern for a controller slot.
func PlayerLEDMaskForSlot(slot int) uint8 {
	switch slot {
	case 0:
		return PlayerLEDMiddle
	case 1:
		return PlayerLEDMiddleLeft
	case 2:
		return PlayerLEDLeft | PlayerLEDMiddle | PlayerLEDRight
	default:
		return 0
	}
}
