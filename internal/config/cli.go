// Package config defines the gefpad command line.
package config

import "github.com/gefkit/platform/internal/cmd"

// CLI is the root Kong model: global options then commands.
type CLI struct {
	Config string           `help:"Config file (JSON, YAML or TOML)" type:"path" env:"GEFPAD_CONFIG"`
	Log    cmd.LogOptions   `embed:"" prefix:"log."`
	Input  cmd.InputOptions `embed:"" prefix:"input."`

	Watch  cmd.Watch         `cmd:"" help:"Log controller button and axis activity"`
	Serve  cmd.Serve         `cmd:"" help:"Stream controller state to websocket clients"`
	Output cmd.Output        `cmd:"" help:"Drive rumble, lights and adaptive triggers"`
	Sound  cmd.Sound         `cmd:"" help:"Play an audio file"`
	Image  cmd.Image         `cmd:"" help:"Decode a PNG and print its size"`
	Cfg    cmd.ConfigCommand `cmd:"" name:"config" help:"Configuration helpers"`
}
