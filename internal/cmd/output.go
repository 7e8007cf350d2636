package cmd

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gefkit/platform/input"
	"github.com/gefkit/platform/internal/log"
)

// Output drives a controller's rumble, lights and adaptive triggers for a
// while, then resets them.
type Output struct {
	Slot          int           `help:"Controller slot" default:"0"`
	LeftRumble    float32       `help:"Left (heavy) motor strength, 0..1" default:"0"`
	RightRumble   float32       `help:"Right (light) motor strength, 0..1" default:"0"`
	Lightbar      string        `help:"Lightbar colour as RRGGBB" default:"000000"`
	Mic           string        `help:"Mic LED" enum:"off,on,pulse" default:"off"`
	Brightness    string        `help:"Player LED brightness" enum:"low,medium,high" default:"medium"`
	PlayerLEDs    int           `name:"player-leds" help:"Player LED bitmask (0..31); -1 keeps the slot default" default:"-1"`
	Fade          bool          `help:"Fade player LEDs in"`
	DisableLEDs   bool          `name:"disable-leds" help:"Turn the lightbar and player LEDs off"`
	Trigger       string        `help:"Adaptive trigger mode: none, continuous, section, extended, calibrate" default:"none"`
	TriggerParams []float32     `help:"Trigger effect parameters, each 0..1" sep:","`
	TriggerSide   string        `help:"Which triggers get the effect" enum:"left,right,both" default:"both"`
	Duration      time.Duration `help:"How long to hold the output" default:"2s"`
}

// Run is called by Kong when the output command is executed.
func (o *Output) Run(logger *slog.Logger, rawLogger log.RawLogger, in *InputOptions, drv *Drivers) error {
	req, err := o.request(input.PlayerLEDMaskForSlot(o.Slot))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, o.Duration)
	defer cancel()

	reg, closeFn, err := drv.openRegistry(in, logger, rawLogger)
	if err != nil {
		return err
	}
	defer closeFn()

	ctrl := reg.Controller(o.Slot)
	if ctrl == nil {
		return fmt.Errorf("no controller in slot %d (%d available)", o.Slot, reg.Count())
	}
	if reg.Family() != input.FamilyDualSense {
		logger.Warn("Legacy controllers have no output channel; nothing will change", "slot", o.Slot)
	}
	if err := ctrl.SetOutput(req); err != nil {
		return err
	}
	logger.Info("Output applied", "slot", o.Slot, "duration", o.Duration,
		"rumble", fmt.Sprintf("%.2f/%.2f", req.LeftRumble, req.RightRumble),
		"trigger", o.Trigger)

	ticker := time.NewTicker(pollInterval(in))
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := reg.UpdateAll()[o.Slot]; err != nil && !errors.Is(err, input.ErrNoDevice) {
				logger.Debug("Poll failed", "slot", o.Slot, "error", err)
			}
		}
	}
}

// request builds the output request from the flags; defaultMask is used
// when no player LED mask is given.
func (o *Output) request(defaultMask uint8) (input.OutputRequest, error) {
	req := input.DefaultOutput()
	req.LeftRumble = o.LeftRumble
	req.RightRumble = o.RightRumble

	c, err := parseColor(o.Lightbar)
	if err != nil {
		return req, err
	}
	req.Lightbar = c

	switch o.Mic {
	case "on":
		req.MicLED = input.MicLEDOn
	case "pulse":
		req.MicLED = input.MicLEDPulse
	default:
		req.MicLED = input.MicLEDOff
	}
	switch o.Brightness {
	case "low":
		req.PlayerLEDs.Brightness = input.BrightnessLow
	case "high":
		req.PlayerLEDs.Brightness = input.BrightnessHigh
	default:
		req.PlayerLEDs.Brightness = input.BrightnessMedium
	}

	switch {
	case o.PlayerLEDs < 0:
		req.PlayerLEDs.Mask = defaultMask
	case o.PlayerLEDs > 0x1F:
		return req, fmt.Errorf("player LED mask %d out of range 0..31", o.PlayerLEDs)
	default:
		req.PlayerLEDs.Mask = uint8(o.PlayerLEDs)
	}
	req.PlayerLEDs.Fade = o.Fade
	req.DisableLEDs = o.DisableLEDs

	effect, err := input.ParseTriggerEffect(o.Trigger, o.TriggerParams...)
	if err != nil {
		return req, err
	}
	switch o.TriggerSide {
	case "left":
		req.LeftTrigger = effect
	case "right":
		req.RightTrigger = effect
	default:
		req.LeftTrigger, req.RightTrigger = effect, effect
	}
	return req, nil
}

// parseColor reads an opaque RRGGBB colour, with or without a leading #.
func parseColor(s string) (input.Color, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	b, err := hex.DecodeString(s)
	if err != nil || len(b) != 3 {
		return input.Color{}, fmt.Errorf("invalid colour %q, expected RRGGBB", s)
	}
	return input.Color{
		R: float32(b[0]) / 255,
		G: float32(b[1]) / 255,
		B: float32(b[2]) / 255,
		A: 1,
	}, nil
}
