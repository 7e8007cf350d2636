// Package dualsense drives Sony DualSense and DualSense Edge pads over HID.
package dualsense

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gefkit/platform/input"
	"github.com/gefkit/platform/internal/log"
)

// maxDrain bounds how many queued reports one Poll consumes.
const maxDrain = 64

// HIDDevice is the subset of an opened HID handle the pad needs. Read must
// not block and returns 0 when no report is queued.
type HIDDevice interface {
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
	Close() error
}

// Info describes an opened pad.
type Info struct {
	Path      string
	Product   string
	Serial    string
	ProductID uint16
	// Transport is a hint from enumeration; the first decoded report
	// overrides it.
	Transport Transport
}

// Device is an input.Backend for one DualSense pad.
type Device struct {
	dev    HIDDevice
	info   Info
	logger *slog.Logger
	raw    log.RawLogger

	mu        sync.Mutex
	buf       []byte
	last      input.DualSenseFrame
	transport Transport
	seq       uint8
	closed    bool
}

// New wraps an opened HID handle. raw may be nil.
func New(dev HIDDevice, info Info, logger *slog.Logger, raw log.RawLogger) *Device {
	if logger == nil {
		logger = slog.Default()
	}
	if raw == nil {
		raw = log.NewRaw(nil)
	}
	return &Device{
		dev:       dev,
		info:      info,
		logger:    logger,
		raw:       raw,
		buf:       make([]byte, InputReportSizeBT),
		transport: info.Transport,
	}
}

func (d *Device) Name() string {
	name := d.info.Product
	if name == "" {
		name = "DualSense"
		if d.info.ProductID == ProductIDEdge {
			name = "DualSense Edge"
		}
	}
	if d.info.Serial != "" {
		return name + " " + d.info.Serial
	}
	return name
}

// Transport returns the link detected from the latest report.
func (d *Device) Transport() Transport {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.transport
}

// Poll drains queued input reports and returns a frame for the newest one.
// When nothing new arrived the previous frame is returned again.
func (d *Device) Poll() (input.RawFrame, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil, fmt.Errorf("%s: device closed", d.Name())
	}
	for range maxDrain {
		n, err := d.dev.Read(d.buf)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", d.Name(), err)
		}
		if n <= 0 {
			break
		}
		report := d.buf[:n]
		d.raw.Log(true, report)
		state, tr, err := DecodeInputReport(report)
		if err != nil {
			d.logger.Log(context.Background(), log.LevelTrace, "Skipping input report", "name", d.Name(), "error", err)
			continue
		}
		d.transport = tr
		d.last = *state.Frame()
	}
	f := d.last
	return &f, nil
}

// SendOutput writes out in the report format of the detected transport.
func (d *Device) SendOutput(out input.DualSenseOutput) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return fmt.Errorf("%s: device closed", d.Name())
	}
	var report []byte
	if d.transport == TransportBluetooth {
		report = BuildBluetoothOutputReport(out, d.seq)
		d.seq = (d.seq + 1) & 0x0F
	} else {
		report = BuildUSBOutputReport(out)
	}
	d.raw.Log(false, report)
	if _, err := d.dev.Write(report); err != nil {
		return fmt.Errorf("write %s: %w", d.Name(), err)
	}
	return nil
}

func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil
	}
	d.closed = true
	return d.dev.Close()
}
