package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	toml "github.com/pelletier/go-toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	yaml "gopkg.in/yaml.v3"

	"github.com/gefkit/platform/device/joystick"
	"github.com/gefkit/platform/graphics/imagedata"
	"github.com/gefkit/platform/input"
	"github.com/gefkit/platform/internal/log"
	"github.com/gefkit/platform/internal/stream"
	mocks "github.com/gefkit/platform/internal/testing"
)

func bufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}

func TestConfigInitJSON(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "conf", "output.json")
	c := &ConfigInit{Command: "output", Format: "json", Output: dest}
	require.NoError(t, c.Run())

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))

	assert.EqualValues(t, 0, got["slot"])
	assert.EqualValues(t, -1, got["player_leds"])
	assert.Equal(t, "2s", got["duration"])
	assert.Equal(t, "both", got["trigger_side"])
	assert.Equal(t, []any{}, got["trigger_params"])
	assert.Equal(t, false, got["disable_leds"])

	logOpts, ok := got["log"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "info", logOpts["level"])
	assert.Contains(t, logOpts, "raw_file")

	in, ok := got["input"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 4, in["max_dualsense"])
	assert.InDelta(t, 0.1, in["dead_zone"], 1e-9)
	assert.Equal(t, "16ms", in["poll_interval"])
	assert.Contains(t, in, "joystick_mapping")

	assert.Error(t, c.Run(), "existing files need --force")
	c.Force = true
	assert.NoError(t, c.Run())
}

func TestConfigInitYAML(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "watch.yaml")
	require.NoError(t, (&ConfigInit{Command: "watch", Format: "yml", Output: dest}).Run())

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	var got map[string]any
	require.NoError(t, yaml.Unmarshal(data, &got))

	assert.Equal(t, "0s", got["duration"])
	assert.Equal(t, false, got["axes"])
	in, ok := got["input"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 4, in["max_dualsense"])
}

func TestConfigInitTOML(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "serve.toml")
	require.NoError(t, (&ConfigInit{Command: "serve", Format: "toml", Output: dest}).Run())

	tree, err := toml.LoadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, ":8765", tree.Get("addr"))
	assert.Equal(t, "5s", tree.Get("sync_interval"))
	assert.Equal(t, "info", tree.Get("log.level"))
	assert.EqualValues(t, 4, tree.Get("input.max_dualsense"))
}

func TestConfigInitRejectsUnknown(t *testing.T) {
	dir := t.TempDir()
	assert.Error(t, (&ConfigInit{Command: "watch", Format: "ini", Output: filepath.Join(dir, "a")}).Run())
	assert.Error(t, (&ConfigInit{Command: "sound", Format: "json", Output: filepath.Join(dir, "b")}).Run())
}

func TestKebab(t *testing.T) {
	cases := map[string]string{
		"Level":        "level",
		"PollInterval": "poll-interval",
		"RawFile":      "raw-file",
		"DeadZone":     "dead-zone",
		"LEDMask":      "led-mask",
	}
	for in, want := range cases {
		assert.Equal(t, want, kebab(in), in)
	}
}

func TestParseColor(t *testing.T) {
	c, err := parseColor("#FF8000")
	require.NoError(t, err)
	assert.Equal(t, float32(1), c.R)
	assert.InDelta(t, 128.0/255, c.G, 1e-6)
	assert.Equal(t, float32(0), c.B)
	assert.Equal(t, float32(1), c.A)

	c, err = parseColor(" 0000ff ")
	require.NoError(t, err)
	assert.Equal(t, float32(1), c.B)

	for _, bad := range []string{"", "12345", "zzzzzz", "00000000"} {
		_, err := parseColor(bad)
		assert.Error(t, err, bad)
	}
}

func defaultOutputFlags() Output {
	return Output{
		Lightbar:    "000000",
		Mic:         "off",
		Brightness:  "medium",
		PlayerLEDs:  -1,
		Trigger:     "none",
		TriggerSide: "both",
	}
}

func TestOutputRequest(t *testing.T) {
	o := defaultOutputFlags()
	req, err := o.request(input.PlayerLEDMaskForSlot(1))
	require.NoError(t, err)
	assert.Equal(t, input.PlayerLEDMaskForSlot(1), req.PlayerLEDs.Mask)
	assert.Equal(t, input.BrightnessMedium, req.PlayerLEDs.Brightness)
	assert.Equal(t, input.NoResistance{}, req.LeftTrigger)
	assert.Equal(t, input.NoResistance{}, req.RightTrigger)

	o.PlayerLEDs = 0x15
	o.Mic = "pulse"
	o.Brightness = "high"
	o.LeftRumble = 0.5
	o.Lightbar = "ff0000"
	o.Trigger = "continuous"
	o.TriggerParams = []float32{0.2, 0.8}
	o.TriggerSide = "right"
	req, err = o.request(0x04)
	require.NoError(t, err)
	assert.Equal(t, uint8(0x15), req.PlayerLEDs.Mask)
	assert.Equal(t, input.MicLEDPulse, req.MicLED)
	assert.Equal(t, input.BrightnessHigh, req.PlayerLEDs.Brightness)
	assert.Equal(t, float32(0.5), req.LeftRumble)
	assert.Equal(t, float32(1), req.Lightbar.R)
	assert.Equal(t, input.ContinuousResistance{Start: 0.2, Force: 0.8}, req.RightTrigger)
	assert.Nil(t, req.LeftTrigger)

	wire := input.Compose(req)
	assert.Equal(t, uint8(127), wire.LeftRumble)

	o.PlayerLEDs = 40
	_, err = o.request(0)
	assert.Error(t, err)

	o = defaultOutputFlags()
	o.Trigger = "section"
	o.TriggerParams = []float32{0.8, 0.2}
	_, err = o.request(0)
	assert.ErrorIs(t, err, input.ErrInvalidTrigger)
}

func TestDescribeImage(t *testing.T) {
	img := &imagedata.Image{
		Pix:    []byte{255, 0, 0, 255, 0, 0, 255, 0},
		Width:  2,
		Height: 1,
	}
	got := describeImage("tile.png", img)
	assert.Contains(t, got, "tile.png: 2x1 RGBA, 8 bytes")
	assert.Contains(t, got, "mean #7f007f")
	assert.Contains(t, got, "1 transparent pixels")

	assert.Equal(t, "none.png: empty image", describeImage("none.png", &imagedata.Image{}))
}

type fakePoller struct {
	errs   []error
	states []input.ControllerState
	polls  int
}

func (f *fakePoller) UpdateAll() []error {
	f.polls++
	return f.errs
}

func (f *fakePoller) States() []input.ControllerState { return f.states }

func TestWatcherStep(t *testing.T) {
	logger, buf := bufferLogger()
	var live bytes.Buffer
	w := &watcher{logger: logger, axes: true, live: &live}
	p := &fakePoller{
		errs:   []error{nil},
		states: []input.ControllerState{{Down: input.ButtonCross, LeftX: 0.5}},
	}

	w.step(p)
	out := buf.String()
	assert.Contains(t, out, "msg=Buttons")
	assert.Contains(t, out, "pressed=cross")
	assert.Contains(t, out, "msg=Axes")
	assert.Contains(t, live.String(), "[0] L(+0.50,+0.00)")

	buf.Reset()
	p.states[0].Previous = input.ButtonCross
	w.step(p)
	assert.NotContains(t, buf.String(), "msg=Buttons", "held buttons are not logged again")
	assert.NotContains(t, buf.String(), "msg=Axes", "unchanged axes are not logged again")

	buf.Reset()
	p.errs[0] = input.ErrNoDevice
	w.step(p)
	w.step(p)
	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("Controller poll failed")))

	buf.Reset()
	p.errs[0] = nil
	w.step(p)
	assert.Contains(t, buf.String(), "Controller poll recovered")
}

func TestWatcherLoopStops(t *testing.T) {
	logger, _ := bufferLogger()
	p := &fakePoller{errs: []error{nil}, states: []input.ControllerState{{}}}
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	(&watcher{logger: logger}).loop(ctx, p, time.Millisecond)
	assert.Positive(t, p.polls)
}

func TestOpenRegistryDualSense(t *testing.T) {
	logger, buf := bufferLogger()
	pad := mocks.CreateMockBackend(t, "DualSense (USB)")
	pad.On("SendOutput", mock.Anything).Return(nil).Once()
	pad.On("Close").Return(nil).Once()

	shutdown := 0
	drv := &Drivers{
		DualSense: func(*slog.Logger, log.RawLogger) input.Enumerator {
			return mocks.CreateMockEnumerator(t, mocks.Backends(pad), nil)
		},
		Shutdown: func() { shutdown++ },
	}
	in := &InputOptions{Registry: input.RegistryConfig{MaxDualSense: 2}}

	reg, closeFn, err := drv.openRegistry(in, logger, log.NewRaw(nil))
	require.NoError(t, err)
	assert.Equal(t, input.FamilyDualSense, reg.Family())
	assert.Equal(t, 1, reg.Count())
	assert.Contains(t, buf.String(), "Controllers ready")

	closeFn()
	assert.Equal(t, 1, shutdown)
}

func TestOpenRegistryLegacyFallback(t *testing.T) {
	logger, _ := bufferLogger()
	stick := mocks.CreateMockBackend(t, "Wireless Controller")
	stick.On("Close").Return(errors.New("busy")).Once()

	gotMapping := ""
	drv := &Drivers{
		DualSense: func(*slog.Logger, log.RawLogger) input.Enumerator {
			return mocks.CreateMockEnumerator(t, nil, nil)
		},
		Joystick: func(mapping string, _ *slog.Logger) input.Enumerator {
			gotMapping = mapping
			return mocks.CreateMockEnumerator(t, mocks.Backends(stick), nil)
		},
	}
	in := &InputOptions{JoystickMapping: "sony-hidapi"}

	reg, closeFn, err := drv.openRegistry(in, logger, log.NewRaw(nil))
	require.NoError(t, err)
	assert.Equal(t, input.FamilyLegacy, reg.Family())
	assert.Equal(t, "sony-hidapi", gotMapping)
	closeFn()
}

func TestOpenRegistryRejectsMapping(t *testing.T) {
	logger, _ := bufferLogger()
	_, _, err := (&Drivers{}).openRegistry(&InputOptions{JoystickMapping: "xbox"}, logger, log.NewRaw(nil))
	assert.ErrorIs(t, err, joystick.ErrUnknownMapping)
}

func TestPollInterval(t *testing.T) {
	assert.Equal(t, 16*time.Millisecond, pollInterval(&InputOptions{}))
	assert.Equal(t, 4*time.Millisecond, pollInterval(&InputOptions{PollInterval: 4 * time.Millisecond}))
}

func TestWaitWhile(t *testing.T) {
	n := 0
	require.NoError(t, waitWhile(context.Background(), func() bool { n++; return n < 3 }, time.Millisecond))
	assert.Equal(t, 3, n)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, waitWhile(ctx, func() bool { return true }, time.Hour))
}

func TestSoundNeedsOutput(t *testing.T) {
	logger, _ := bufferLogger()
	assert.Error(t, (&Sound{File: "x.wav"}).Run(logger, &Drivers{}))
}

// goroutineID parses the current goroutine's id from its stack header.
func goroutineID() string {
	buf := make([]byte, 64)
	n := runtime.Stack(buf, false)
	return strings.Fields(string(buf[:n]))[1]
}

type goroutinePoller struct {
	fakePoller
	ids map[string]int
}

func (g *goroutinePoller) UpdateAll() []error {
	g.ids[goroutineID()]++
	return g.fakePoller.UpdateAll()
}

func TestServeAndPollKeepsPollingOnCaller(t *testing.T) {
	logger, _ := bufferLogger()
	b := stream.NewBroadcaster(stream.NewHub(logger), logger)
	p := &goroutinePoller{
		fakePoller: fakePoller{errs: []error{nil}, states: []input.ControllerState{{}}},
		ids:        map[string]int{},
	}

	listenID := make(chan string, 1)
	listen := func(ctx context.Context) error {
		listenID <- goroutineID()
		<-ctx.Done()
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()
	caller := goroutineID()
	require.NoError(t, serveAndPoll(ctx, p, b, time.Millisecond, 0, logger, listen))

	assert.Positive(t, p.polls)
	require.Len(t, p.ids, 1, "every poll runs on one goroutine")
	assert.Contains(t, p.ids, caller)
	assert.NotEqual(t, caller, <-listenID)
}

func TestServeAndPollStopsOnListenError(t *testing.T) {
	logger, _ := bufferLogger()
	b := stream.NewBroadcaster(stream.NewHub(logger), logger)
	p := &fakePoller{errs: []error{nil}, states: []input.ControllerState{{}}}
	errBind := errors.New("address in use")

	done := make(chan error, 1)
	go func() {
		done <- serveAndPoll(context.Background(), p, b, time.Millisecond, 0, logger,
			func(context.Context) error { return errBind })
	}()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, errBind)
	case <-time.After(2 * time.Second):
		t.Fatal("polling kept running after the listener failed")
	}
}
