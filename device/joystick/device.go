// Package joystick is the legacy controller path: the first joystick SDL
// reports, sampled into DirectInput style frames. It has no output channel.
package joystick

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gefkit/platform/input"
)

// ErrDisconnected is returned by Poll once the joystick is gone.
var ErrDisconnected = errors.New("joystick disconnected")

// Joystick is an opened joystick as seen through SDL.
type Joystick interface {
	Name() string
	VendorID() uint16
	ProductID() uint16
	Connected() bool
	NumAxes() int32
	Axis(i int32) int16
	NumButtons() int32
	Button(i int32) bool
	NumHats() int32
	Hat(i int32) uint8
	Close()
}

// Device is an input.Backend over one joystick.
type Device struct {
	js      Joystick
	mapping *Mapping
	pump    func()
	logger  *slog.Logger
	closed  bool
}

// New wraps js. pump refreshes joystick state before each sample and may
// be nil.
func New(js Joystick, mapping *Mapping, pump func(), logger *slog.Logger) *Device {
	if mapping == nil {
		mapping = MappingFor("", js.VendorID())
	}
	if pump == nil {
		pump = func() {}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Device{js: js, mapping: mapping, pump: pump, logger: logger}
}

func (d *Device) Name() string {
	return d.js.Name()
}

// Mapping returns the layout used to sample the joystick.
func (d *Device) Mapping() *Mapping {
	return d.mapping
}

func (d *Device) Poll() (input.RawFrame, error) {
	if d.closed {
		return nil, fmt.Errorf("%s: %w", d.Name(), ErrDisconnected)
	}
	d.pump()
	if !d.js.Connected() {
		return nil, fmt.Errorf("%s: %w", d.Name(), ErrDisconnected)
	}
	return BuildFrame(d.js, d.mapping), nil
}

// SendOutput does nothing; the legacy path has no force feedback.
func (d *Device) SendOutput(input.DualSenseOutput) error {
	return nil
}

func (d *Device) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	d.js.Close()
	return nil
}
