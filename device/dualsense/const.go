package dualsense

const (
	VendorID      = 0x054C
	ProductID     = 0x0CE6
	ProductIDEdge = 0x0DF2
)

const (
	ReportIDInputUSB  = 0x01
	ReportIDInputBT   = 0x31
	ReportIDOutputUSB = 0x02
	ReportIDOutputBT  = 0x31

	// ReportIDCalibration is the feature report whose read switches a
	// Bluetooth pad from the reduced 0x01 report to full 0x31 reports.
	ReportIDCalibration = 0x05
)

const (
	InputReportSizeUSB  = 64
	InputReportSizeBT   = 78
	OutputReportSizeUSB = 48
	OutputReportSizeBT  = 78

	CalibrationReportSize = 41

	// InputDataSize is the part of an input report decoded here.
	InputDataSize = 36
)

// Input data offsets, relative to the first byte after the report header.
const (
	InOffsetLX        = 0
	InOffsetLY        = 1
	InOffsetRX        = 2
	InOffsetRY        = 3
	InOffsetL2        = 4
	InOffsetR2        = 5
	InOffsetSeq       = 6
	InOffsetButtons0  = 7
	InOffsetButtons1  = 8
	InOffsetButtons2  = 9
	InOffsetGyro      = 15
	InOffsetAccel     = 21
	InOffsetTouch1    = 32
	InOffsetHeaderUSB = 1
	InOffsetHeaderBT  = 2
)

const (
	HatMask    uint8 = 0x0F
	HatNeutral uint8 = 0x08

	TouchInactive uint8 = 0x80
	TouchIDMask   uint8 = 0x7F

	StickCenter = 0x80
)

// Output common block offsets. In a USB report the block starts at byte 1;
// in a Bluetooth report at byte 3.
const (
	OutOffsetValidFlag0    = 0
	OutOffsetValidFlag1    = 1
	OutOffsetMotorRight    = 2
	OutOffsetMotorLeft     = 3
	OutOffsetMicLED        = 8
	OutOffsetRightTrigger  = 10
	OutOffsetLeftTrigger   = 21
	OutOffsetValidFlag2    = 38
	OutOffsetLightbarSetup = 41
	OutOffsetLEDBrightness = 42
	OutOffsetPlayerLEDs    = 43
	OutOffsetLightbarRed   = 44
	OutOffsetLightbarGreen = 45
	OutOffsetLightbarBlue  = 46

	OutCommonSize    = 47
	OutHeaderUSB     = 1
	OutHeaderBT      = 3
	TriggerParamSize = 11
)

const (
	// ValidFlag0 enables rumble and both trigger effect blocks.
	ValidFlag0 uint8 = 0xFF
	// ValidFlag1 enables every LED block except the release-LEDs bit.
	ValidFlag1 uint8 = 0xF7

	ValidFlag2LightbarSetup uint8 = 0x02
	LightbarSetupLightOut   uint8 = 0x02

	// PlayerLEDInstant is set in the player LED byte to skip the fade in.
	PlayerLEDInstant uint8 = 0x20
)

const (
	// BTOutputTag follows the sequence byte of a Bluetooth output report.
	BTOutputTag = 0x10
	// BTCRCSeed is the HID transaction header prepended for the output CRC.
	BTCRCSeed = 0xA2
	BTCRCSize = 4
)
