package cmd

import (
	"log/slog"
	"time"

	"github.com/gefkit/platform/audio"
	"github.com/gefkit/platform/device/joystick"
	"github.com/gefkit/platform/input"
	"github.com/gefkit/platform/internal/log"
)

// LogOptions are the global logging flags.
type LogOptions struct {
	Level   string `help:"Log level: trace, debug, info, warn, error" default:"info" enum:"trace,debug,info,warn,error" env:"GEFPAD_LOG_LEVEL"`
	File    string `help:"Log file path; empty logs to stdout and stderr" env:"GEFPAD_LOG_FILE"`
	RawFile string `help:"Write hex dumps of controller reports to this file" env:"GEFPAD_LOG_RAW_FILE"`
}

// InputOptions are the global controller flags.
type InputOptions struct {
	Registry        input.RegistryConfig `embed:""`
	PollInterval    time.Duration        `help:"Controller polling interval" default:"16ms" env:"GEFPAD_INPUT_POLL_INTERVAL"`
	JoystickMapping string               `help:"Force a legacy joystick mapping (directinput, sony-hidapi); empty picks by vendor" env:"GEFPAD_INPUT_JOYSTICK_MAPPING"`
}

// Drivers are the native transports commands run on. main wires the real
// ones; tests substitute fakes.
type Drivers struct {
	DualSense func(logger *slog.Logger, raw log.RawLogger) input.Enumerator
	Joystick  func(mapping string, logger *slog.Logger) input.Enumerator
	Audio     func() audio.Output
	// Shutdown releases global driver state after the registry is closed.
	Shutdown func()
}

// openRegistry enumerates controllers and returns the registry with a
// function that tears it and the drivers down.
func (d *Drivers) openRegistry(in *InputOptions, logger *slog.Logger, raw log.RawLogger) (*input.Registry, func(), error) {
	if err := joystick.ValidateMapping(in.JoystickMapping); err != nil {
		return nil, nil, err
	}
	var ds, legacy input.Enumerator
	if d.DualSense != nil {
		ds = d.DualSense(logger, raw)
	}
	if d.Joystick != nil {
		legacy = d.Joystick(in.JoystickMapping, logger)
	}
	reg := input.NewRegistry(in.Registry, ds, legacy, logger)
	logger.Info("Controllers ready",
		"family", reg.Family(),
		"slots", reg.Count(),
		"dead_zone", input.NewNormalizer(in.Registry.Normalizer).DeadZone())

	closeFn := func() {
		if err := reg.Close(); err != nil {
			logger.Warn("Controller teardown reported errors", "error", err)
		}
		if d.Shutdown != nil {
			d.Shutdown()
		}
	}
	return reg, closeFn, nil
}

func pollInterval(in *InputOptions) time.Duration {
	if in.PollInterval <= 0 {
		return 16 * time.Millisecond
	}
	return in.PollInterval
}
