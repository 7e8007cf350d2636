package dualsense

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/gefkit/platform/input"
)

// Transport is the link a pad is attached over.
type Transport int

const (
	TransportUnknown Transport = iota
	TransportUSB
	TransportBluetooth
)

func (t Transport) String() string {
	switch t {
	case TransportUSB:
		return "usb"
	case TransportBluetooth:
		return "bluetooth"
	default:
		return "unknown"
	}
}

// InputState is the decoded data block of a full input report, in device
// units.
type InputState struct {
	LX, LY, RX, RY uint8
	L2, R2         uint8
	Seq            uint8
	Buttons        [3]uint8

	Gyro  [3]int16
	Accel [3]int16

	TouchID     uint8
	TouchActive bool
	TouchX      uint16
	TouchY      uint16
}

// DecodeInputReport splits a raw HID input report into its transport and
// data block. The reduced Bluetooth report sent before calibration is read
// is not supported.
func DecodeInputReport(report []byte) (InputState, Transport, error) {
	var s InputState
	if len(report) == 0 {
		return s, TransportUnknown, io.ErrUnexpectedEOF
	}
	var data []byte
	var tr Transport
	switch {
	case report[0] == ReportIDInputBT:
		data, tr = report[InOffsetHeaderBT:], TransportBluetooth
	case report[0] == ReportIDInputUSB && len(report) >= InputReportSizeUSB:
		data, tr = report[InOffsetHeaderUSB:], TransportUSB
	case report[0] == ReportIDInputUSB:
		return s, TransportBluetooth, fmt.Errorf("%w: reduced report of %d bytes", ErrShortReport, len(report))
	default:
		return s, TransportUnknown, fmt.Errorf("%w: 0x%02x", ErrUnknownReport, report[0])
	}
	if err := s.UnmarshalBinary(data); err != nil {
		return s, tr, fmt.Errorf("%w: %w", ErrShortReport, err)
	}
	return s, tr, nil
}

func (s *InputState) UnmarshalBinary(data []byte) error {
	if len(data) < InputDataSize {
		return io.ErrUnexpectedEOF
	}
	s.LX = data[InOffsetLX]
	s.LY = data[InOffsetLY]
	s.RX = data[InOffsetRX]
	s.RY = data[InOffsetRY]
	s.L2 = data[InOffsetL2]
	s.R2 = data[InOffsetR2]
	s.Seq = data[InOffsetSeq]
	copy(s.Buttons[:], data[InOffsetButtons0:InOffsetButtons2+1])
	for i := 0; i < 3; i++ {
		s.Gyro[i] = int16(binary.LittleEndian.Uint16(data[InOffsetGyro+2*i:]))
		s.Accel[i] = int16(binary.LittleEndian.Uint16(data[InOffsetAccel+2*i:]))
	}
	t := data[InOffsetTouch1 : InOffsetTouch1+4]
	s.TouchID = t[0] & TouchIDMask
	s.TouchActive = t[0]&TouchInactive == 0
	s.TouchX = uint16(t[2]&0x0F)<<8 | uint16(t[1])
	s.TouchY = uint16(t[3])<<4 | uint16(t[2]&0xF0)>>4
	return nil
}

// MarshalBinary encodes the data block, the inverse of UnmarshalBinary.
func (s *InputState) MarshalBinary() ([]byte, error) {
	b := make([]byte, InputDataSize)
	b[InOffsetLX] = s.LX
	b[InOffsetLY] = s.LY
	b[InOffsetRX] = s.RX
	b[InOffsetRY] = s.RY
	b[InOffsetL2] = s.L2
	b[InOffsetR2] = s.R2
	b[InOffsetSeq] = s.Seq
	copy(b[InOffsetButtons0:], s.Buttons[:])
	for i := 0; i < 3; i++ {
		binary.LittleEndian.PutUint16(b[InOffsetGyro+2*i:], uint16(s.Gyro[i]))
		binary.LittleEndian.PutUint16(b[InOffsetAccel+2*i:], uint16(s.Accel[i]))
	}
	t := b[InOffsetTouch1:]
	t[0] = s.TouchID & TouchIDMask
	if !s.TouchActive {
		t[0] |= TouchInactive
	}
	t[1] = uint8(s.TouchX)
	t[2] = uint8(s.TouchX>>8)&0x0F | uint8(s.TouchY<<4)&0xF0
	t[3] = uint8(s.TouchY >> 4)
	return b, nil
}

// BuildUSBInputReport wraps the data block in a 64 byte USB input report.
func (s *InputState) BuildUSBInputReport() []byte {
	data, _ := s.MarshalBinary()
	r := make([]byte, InputReportSizeUSB)
	r[0] = ReportIDInputUSB
	copy(r[InOffsetHeaderUSB:], data)
	return r
}

// hatFlags maps the 0..7 hat value, clockwise from up, to d-pad flags.
var hatFlags = [8]uint8{
	input.DSDpadUp,
	input.DSDpadUp | input.DSDpadRight,
	input.DSDpadRight,
	input.DSDpadRight | input.DSDpadDown,
	input.DSDpadDown,
	input.DSDpadDown | input.DSDpadLeft,
	input.DSDpadLeft,
	input.DSDpadLeft | input.DSDpadUp,
}

// Frame converts the device units into a DualSense raw frame. Sticks are
// re-centred to signed values with up positive.
func (s *InputState) Frame() *input.DualSenseFrame {
	f := &input.DualSenseFrame{
		LeftX:        stickX(s.LX),
		LeftY:        stickY(s.LY),
		RightX:       stickX(s.RX),
		RightY:       stickY(s.RY),
		LeftTrigger:  s.L2,
		RightTrigger: s.R2,
		DpadAndFace:  s.Buttons[0] &^ HatMask,
		ButtonsA:     s.Buttons[1],
		ButtonsB:     s.Buttons[2] & (input.DSBtnPS | input.DSBtnTouchPad | input.DSBtnMic),
		TouchX:       s.TouchX,
		TouchY:       s.TouchY,
		TouchDown:    s.TouchActive,
		Accel:        s.Accel,
		Gyro:         s.Gyro,
	}
	if hat := s.Buttons[0] & HatMask; hat < HatNeutral {
		f.DpadAndFace |= hatFlags[hat]
	}
	return f
}

func stickX(raw uint8) int8 {
	return int8(int(raw) - StickCenter)
}

func stickY(raw uint8) int8 {
	return int8(127 - int(raw))
}
