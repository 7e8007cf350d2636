// Package hidapi opens DualSense pads through the system hidapi library.
package hidapi

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/sstallion/go-hid"

	"github.com/gefkit/platform/device/dualsense"
	"github.com/gefkit/platform/input"
	"github.com/gefkit/platform/internal/log"
)

var supportedProducts = []uint16{dualsense.ProductID, dualsense.ProductIDEdge}

// Enumerator opens DualSense pads through hidapi.
type Enumerator struct {
	Logger *slog.Logger
	Raw    log.RawLogger
}

// Enumerate opens up to max attached pads.
func (e *Enumerator) Enumerate(max int) ([]input.Backend, error) {
	logger := e.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if err := hid.Init(); err != nil {
		return nil, fmt.Errorf("hid init: %w", err)
	}

	var infos []hid.DeviceInfo
	err := hid.Enumerate(dualsense.VendorID, 0, func(info *hid.DeviceInfo) error {
		if !slices.Contains(supportedProducts, info.ProductID) {
			return nil
		}
		for _, seen := range infos {
			if seen.Path == info.Path {
				return nil
			}
		}
		infos = append(infos, *info)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("hid enumerate: %w", err)
	}

	var out []input.Backend
	for _, info := range infos {
		if len(out) >= max {
			break
		}
		dev, err := open(info, logger)
		if err != nil {
			logger.Warn("Failed to open DualSense", "path", info.Path, "error", err)
			continue
		}
		out = append(out, dualsense.New(dev, deviceInfo(info), logger, e.Raw))
	}
	return out, nil
}

// Shutdown releases hidapi's global state once every pad is closed.
func Shutdown() error {
	return hid.Exit()
}

func open(info hid.DeviceInfo, logger *slog.Logger) (*hid.Device, error) {
	dev, err := hid.OpenPath(info.Path)
	if err != nil {
		return nil, err
	}
	if err := dev.SetNonblock(true); err != nil {
		_ = dev.Close()
		return nil, fmt.Errorf("set nonblocking: %w", err)
	}
	// Over Bluetooth the pad only sends full reports after the calibration
	// feature report has been read.
	buf := make([]byte, dualsense.CalibrationReportSize)
	buf[0] = dualsense.ReportIDCalibration
	if _, err := dev.GetFeatureReport(buf); err != nil {
		logger.Debug("Calibration report unavailable", "path", info.Path, "error", err)
	}
	logger.Debug("Opened DualSense",
		"path", info.Path,
		"product", info.ProductStr,
		"pid", fmt.Sprintf("0x%04X", info.ProductID),
		"interface", info.InterfaceNbr)
	return dev, nil
}

func deviceInfo(info hid.DeviceInfo) dualsense.Info {
	tr := dualsense.TransportUSB
	// hidapi reports no interface number for Bluetooth HID.
	if info.InterfaceNbr < 0 {
		tr = dualsense.TransportBluetooth
	}
	return dualsense.Info{
		Path:      info.Path,
		Product:   info.ProductStr,
		Serial:    info.SerialNbr,
		ProductID: info.ProductID,
		Transport: tr,
	}
}
