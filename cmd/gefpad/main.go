package main

import (
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/alecthomas/kong"
	kongtoml "github.com/alecthomas/kong-toml"
	kongyaml "github.com/alecthomas/kong-yaml"

	"github.com/gefkit/platform/audio"
	"github.com/gefkit/platform/audio/speaker"
	"github.com/gefkit/platform/device/dualsense/hidapi"
	"github.com/gefkit/platform/device/joystick/sdl3"
	"github.com/gefkit/platform/input"
	"github.com/gefkit/platform/internal/cmd"
	"github.com/gefkit/platform/internal/config"
	"github.com/gefkit/platform/internal/configpaths"
	"github.com/gefkit/platform/internal/log"
)

// SDL must be initialised and polled from one OS thread. Kong runs
// commands on the main goroutine, so pin it to the main thread.
func init() {
	runtime.LockOSThread()
}

func main() {
	userCfg := findUserConfig(os.Args[1:])
	jsonPaths, yamlPaths, tomlPaths := configpaths.ConfigCandidatePaths(userCfg)

	var cli config.CLI
	ctx := kong.Parse(&cli,
		kong.Name("gefpad"),
		kong.Description("Controller, audio and image tools for the gef platform layer"),
		kong.UsageOnError(),
		// Flags and env override config values; earlier files win.
		kong.Configuration(kong.JSON, jsonPaths...),
		kong.Configuration(kongyaml.Loader, yamlPaths...),
		kong.Configuration(kongtoml.Loader, tomlPaths...),
	)

	logger, closeFiles, err := log.SetupLogger(cli.Log.Level, cli.Log.File)
	if err != nil {
		_, _ = os.Stderr.WriteString("failed to setup logger: " + err.Error() + "\n")
		os.Exit(2)
	}
	defer func() {
		for _, c := range closeFiles {
			_ = c.Close()
		}
	}()

	rawLogger, rawFile, err := log.OpenRaw(cli.Log.RawFile)
	switch {
	case err != nil:
		logger.Error("failed to open raw log file", "file", cli.Log.RawFile, "error", err)
		rawLogger = log.NewRaw(nil)
	case rawFile != nil:
		closeFiles = append(closeFiles, rawFile)
	case cli.Log.Level == "trace":
		rawLogger = log.NewRaw(os.Stdout)
	}

	ctx.Bind(logger)
	ctx.BindTo(rawLogger, (*log.RawLogger)(nil))
	ctx.Bind(&cli.Input)
	ctx.Bind(nativeDrivers())

	err = ctx.Run()
	ctx.FatalIfErrorf(err)
}

func nativeDrivers() *cmd.Drivers {
	return &cmd.Drivers{
		DualSense: func(logger *slog.Logger, raw log.RawLogger) input.Enumerator {
			return &hidapi.Enumerator{Logger: logger, Raw: raw}
		},
		Joystick: func(mapping string, logger *slog.Logger) input.Enumerator {
			return &sdl3.Enumerator{Mapping: mapping, Logger: logger}
		},
		Audio: func() audio.Output {
			return speaker.New(0)
		},
		Shutdown: func() {
			if err := hidapi.Shutdown(); err != nil {
				slog.Debug("hidapi shutdown failed", "error", err)
			}
			sdl3.Shutdown()
		},
	}
}

func findUserConfig(args []string) string {
	for i := 0; i < len(args); i++ {
		a := args[i]
		if strings.HasPrefix(a, "--config=") {
			return a[len("--config="):]
		}
		if a == "--config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	if v := os.Getenv("GEFPAD_CONFIG"); v != "" {
		return v
	}
	return ""
}
