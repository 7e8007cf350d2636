// Package sdl3 reads the legacy joystick through SDL3.
package sdl3

import (
	"fmt"
	"log/slog"

	"github.com/jupiterrider/purego-sdl3/sdl"

	"github.com/gefkit/platform/device/joystick"
	"github.com/gefkit/platform/input"
)

type sdlJoystick struct {
	js *sdl.Joystick
}

func (s *sdlJoystick) Name() string        { return sdl.GetJoystickName(s.js) }
func (s *sdlJoystick) VendorID() uint16    { return sdl.GetJoystickVendor(s.js) }
func (s *sdlJoystick) ProductID() uint16   { return sdl.GetJoystickProduct(s.js) }
func (s *sdlJoystick) Connected() bool     { return sdl.JoystickConnected(s.js) }
func (s *sdlJoystick) NumAxes() int32      { return sdl.GetNumJoystickAxes(s.js) }
func (s *sdlJoystick) Axis(i int32) int16  { return sdl.GetJoystickAxis(s.js, i) }
func (s *sdlJoystick) NumButtons() int32   { return sdl.GetNumJoystickButtons(s.js) }
func (s *sdlJoystick) Button(i int32) bool { return sdl.GetJoystickButton(s.js, i) }
func (s *sdlJoystick) NumHats() int32      { return sdl.GetNumJoystickHats(s.js) }
func (s *sdlJoystick) Hat(i int32) uint8   { return sdl.GetJoystickHat(s.js, i) }
func (s *sdlJoystick) Close()              { sdl.CloseJoystick(s.js) }

// pumpEvents drains the SDL event queue, which also refreshes joystick
// state.
func pumpEvents() {
	var event sdl.Event
	for sdl.PollEvent(&event) {
	}
}

// Enumerator opens the first SDL joystick. Enumerate and every poll of the
// returned backend must run on the same locked OS thread; cmd/gefpad pins
// the main goroutine for that.
type Enumerator struct {
	// Mapping forces a built-in mapping by name; empty picks by vendor.
	Mapping string
	Logger  *slog.Logger
}

func (e *Enumerator) Enumerate(max int) ([]input.Backend, error) {
	logger := e.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if max < 1 {
		return nil, nil
	}
	if !sdl.Init(sdl.InitJoystick) {
		return nil, fmt.Errorf("sdl init: %s", sdl.GetError())
	}

	ids := sdl.GetJoysticks()
	if len(ids) == 0 {
		return nil, nil
	}
	js := sdl.OpenJoystick(ids[0])
	if js == nil {
		return nil, fmt.Errorf("open joystick %d: %s", ids[0], sdl.GetError())
	}
	wrapped := &sdlJoystick{js: js}
	m := joystick.MappingFor(e.Mapping, wrapped.VendorID())
	logger.Info("Joystick connected",
		"name", wrapped.Name(),
		"vid", fmt.Sprintf("0x%04X", wrapped.VendorID()),
		"pid", fmt.Sprintf("0x%04X", wrapped.ProductID()),
		"mapping", m.Name,
		"axes", wrapped.NumAxes(),
		"buttons", wrapped.NumButtons(),
		"hats", wrapped.NumHats())
	return []input.Backend{joystick.New(wrapped, m, pumpEvents, logger)}, nil
}

// Shutdown releases SDL.
func Shutdown() {
	sdl.Quit()
}
