package dualsense

import (
	"encoding/binary"
	"hash/crc32"

	"github.com/gefkit/platform/input"
)

// EncodeTrigger writes the 11 byte adaptive trigger block for w into p.
func EncodeTrigger(p []byte, w input.TriggerWire) {
	clear(p[:TriggerParamSize])
	p[0] = uint8(w.Mode)
	switch w.Mode {
	case input.TriggerContinuousResistance:
		p[1] = w.Continuous.Start
		p[2] = w.Continuous.Force
	case input.TriggerSectionResistance:
		p[1] = w.Section.Start
		p[2] = w.Section.End
	case input.TriggerExtended:
		p[1] = 0xFF - w.Extended.Start
		if w.Extended.KeepEffect {
			p[2] = 0x02
		}
		p[4] = w.Extended.BeginForce
		p[5] = w.Extended.MiddleForce
		p[6] = w.Extended.EndForce
		p[9] = max(w.Extended.Frequency/2, 1)
	}
}

// encodeCommon fills the 47 byte block shared by the USB and Bluetooth
// output reports.
func encodeCommon(p []byte, out input.DualSenseOutput) {
	p[OutOffsetValidFlag0] = ValidFlag0
	p[OutOffsetValidFlag1] = ValidFlag1
	p[OutOffsetMotorRight] = out.RightRumble
	p[OutOffsetMotorLeft] = out.LeftRumble
	p[OutOffsetMicLED] = out.MicLED

	EncodeTrigger(p[OutOffsetRightTrigger:], out.RightTrigger)
	EncodeTrigger(p[OutOffsetLeftTrigger:], out.LeftTrigger)

	if out.DisableLEDs {
		p[OutOffsetValidFlag2] = ValidFlag2LightbarSetup
		p[OutOffsetLightbarSetup] = LightbarSetupLightOut
	}
	p[OutOffsetLEDBrightness] = out.PlayerLEDBrightness
	p[OutOffsetPlayerLEDs] = out.PlayerLEDMask
	if out.PlayerLEDFade {
		p[OutOffsetPlayerLEDs] &^= PlayerLEDInstant
	} else {
		p[OutOffsetPlayerLEDs] |= PlayerLEDInstant
	}
	p[OutOffsetLightbarRed] = out.LightbarR
	p[OutOffsetLightbarGreen] = out.LightbarG
	p[OutOffsetLightbarBlue] = out.LightbarB
}

// BuildUSBOutputReport encodes out as a 48 byte USB output report.
func BuildUSBOutputReport(out input.DualSenseOutput) []byte {
	r := make([]byte, OutputReportSizeUSB)
	r[0] = ReportIDOutputUSB
	encodeCommon(r[OutHeaderUSB:OutHeaderUSB+OutCommonSize], out)
	return r
}

// BuildBluetoothOutputReport encodes out as a 78 byte Bluetooth output
// report. seq is the 4 bit sequence number of the report.
func BuildBluetoothOutputReport(out input.DualSenseOutput, seq uint8) []byte {
	r := make([]byte, OutputReportSizeBT)
	r[0] = ReportIDOutputBT
	r[1] = (seq & 0x0F) << 4
	r[2] = BTOutputTag
	encodeCommon(r[OutHeaderBT:OutHeaderBT+OutCommonSize], out)
	binary.LittleEndian.PutUint32(r[OutputReportSizeBT-BTCRCSize:], BluetoothCRC(r[:OutputReportSizeBT-BTCRCSize]))
	return r
}

// BluetoothCRC is the CRC32 a Bluetooth pad expects over an output report,
// seeded with the HID output transaction header.
func BluetoothCRC(report []byte) uint32 {
	crc := crc32.Update(0, crc32.IEEETable, []byte{BTCRCSeed})
	return crc32.Update(crc, crc32.IEEETable, report)
}

// ValidBluetoothCRC checks the trailing CRC of a Bluetooth output report.
func ValidBluetoothCRC(report []byte) bool {
	if len(report) < BTCRCSize {
		return false
	}
	n := len(report) - BTCRCSize
	return binary.LittleEndian.Uint32(report[n:]) == BluetoothCRC(report[:n])
}
