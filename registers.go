// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package bno055

// Page selects one of the two register banks. The same numeric address
// denotes a different register on each page.
type Page byte

const (
	Page0 Page = 0x00 // Sensor data, status, units, modes, offsets.
	Page1 Page = 0x01 // Sensor configuration and interrupts.
)

// Page 0 registers.
const (
	ChipID     = 0x00 // Chip identification, 0xA0
	AccID      = 0x01 // Accelerometer chip revision
	MagID      = 0x02 // Magnetometer chip revision
	GyroID     = 0x03 // Gyroscope chip revision
	SwRevIDLSB = 0x04
	SwRevIDMSB = 0x05
	BlRevID    = 0x06 // Bootloader revision
	PageID     = 0x07 // Page select, valid on both pages

	AccXLSB = 0x08
	AccXMSB = 0x09
	AccYLSB = 0x0A
	AccYMSB = 0x0B
	AccZLSB = 0x0C
	AccZMSB = 0x0D
	MagXLSB = 0x0E
	MagXMSB = 0x0F
	MagYLSB = 0x10
	MagYMSB = 0x11
	MagZLSB = 0x12
	MagZMSB = 0x13
	GyrXLSB = 0x14
	GyrXMSB = 0x15
	GyrYLSB = 0x16
	GyrYMSB = 0x17
	GyrZLSB = 0x18
	GyrZMSB = 0x19
	EulXLSB = 0x1A // Heading
	EulXMSB = 0x1B
	EulYLSB = 0x1C // Roll
	EulYMSB = 0x1D
	EulZLSB = 0x1E // Pitch
	EulZMSB = 0x1F
	QuaWLSB = 0x20
	QuaWMSB = 0x21
	QuaXLSB = 0x22
	QuaXMSB = 0x23
	QuaYLSB = 0x24
	QuaYMSB = 0x25
	QuaZLSB = 0x26
	QuaZMSB = 0x27
	LiaXLSB = 0x28 // Linear acceleration
	LiaXMSB = 0x29
	LiaYLSB = 0x2A
	LiaYMSB = 0x2B
	LiaZLSB = 0x2C
	LiaZMSB = 0x2D
	GrvXLSB = 0x2E // Gravity vector
	GrvXMSB = 0x2F
	GrvYLSB = 0x30
	GrvYMSB = 0x31
	GrvZLSB = 0x32
	GrvZMSB = 0x33
	Temp    = 0x34

	CalibStat      = 0x35
	SelfTestResult = 0x36
	IntSta         = 0x37
	SysClkStatus   = 0x38
	SysStat        = 0x39
	SysErr         = 0x3A
	UnitSel        = 0x3B
	OprMode        = 0x3D
	PwrMode        = 0x3E
	SysTrigger     = 0x3F
	TempSource     = 0x40
	AxisMapConfig  = 0x41
	AxisMapSign    = 0x42

	AccOffsetXLSB = 0x55
	AccOffsetXMSB = 0x56
	AccOffsetYLSB = 0x57
	AccOffsetYMSB = 0x58
	AccOffsetZLSB = 0x59
	AccOffsetZMSB = 0x5A
	MagOffsetXLSB = 0x5B
	MagOffsetXMSB = 0x5C
	MagOffsetYLSB = 0x5D
	MagOffsetYMSB = 0x5E
	MagOffsetZLSB = 0x5F
	MagOffsetZMSB = 0x60
	GyrOffsetXLSB = 0x61
	GyrOffsetXMSB = 0x62
	GyrOffsetYLSB = 0x63
	GyrOffsetYMSB = 0x64
	GyrOffsetZLSB = 0x65
	GyrOffsetZMSB = 0x66
	AccRadiusLSB  = 0x67
	AccRadiusMSB  = 0x68
	MagRadiusLSB  = 0x69
	MagRadiusMSB  = 0x6A
)

// Page 1 registers.
const (
	AccConfig      = 0x08
	MagConfig      = 0x09
	GyrConfig0     = 0x0A
	GyrConfig1     = 0x0B
	AccSleepConfig = 0x0C
	GyrSleepConfig = 0x0D
	IntMsk         = 0x0F
	IntEn          = 0x10
	AccAMThres     = 0x11
	AccIntSettings = 0x12
	AccHGDuration  = 0x13
	AccHGThres     = 0x14
	AccNMThres     = 0x15
	AccNMSet       = 0x16
	GyrIntSetting  = 0x17
	GyrHRXSet      = 0x18
	GyrDurX        = 0x19
	GyrHRYSet      = 0x1A
	GyrDurY        = 0x1B
	GyrHRZSet      = 0x1C
	GyrDurZ        = 0x1D
	GyrAMThres     = 0x1E
	GyrAMSet       = 0x1F
)

// ExpectedChipID is the content of the ChipID register on a BNO055.
const ExpectedChipID byte = 0xA0

// SYS_TRIGGER bits.
const (
	triggerResetInt byte = 0x40
	triggerSysRst   byte = 0x20
)

// selfTestMask covers the accelerometer, magnetometer, gyroscope and MCU
// self-test bits.
const selfTestMask byte = 0x0F

// Unit is a UNIT_SEL flag. Flags above unitThreshold are AND masks that clear
// a bit, flags at or below it set the bit.
type Unit byte

const (
	MG         Unit = 0x01 // Acceleration in mg.
	MS2        Unit = 0xFE // Acceleration in m/s².
	RPS        Unit = 0x02 // Angular rate in rad/s.
	DPS        Unit = 0xFD // Angular rate in °/s.
	Radians    Unit = 0x03
	Degrees    Unit = 0xFB
	Fahrenheit Unit = 0x10
	Celsius    Unit = 0xEF

	unitThreshold Unit = 0x20
)

// Interrupt is a bit in the INT_MSK, INT_EN and INT_STA registers.
type Interrupt byte

const (
	AccNoMotion     Interrupt = 0x80
	AccAnyMotion    Interrupt = 0x40
	AccHighG        Interrupt = 0x20
	GyrDataReady    Interrupt = 0x10
	GyrHighRate     Interrupt = 0x08
	GyrAnyMotion    Interrupt = 0x04
	MagDataReady    Interrupt = 0x02
	AccBSXDataReady Interrupt = 0x01
)

// PowerMode is the device level power setting.
type PowerMode byte

const (
	PowerNormal  PowerMode = 0x00
	PowerLow     PowerMode = 0x01
	PowerSuspend PowerMode = 0x02
	PowerInvalid PowerMode = 0x03
)

func (p PowerMode) String() string {
	switch p {
	case PowerNormal:
		return "Normal"
	case PowerLow:
		return "LowPower"
	case PowerSuspend:
		return "Suspend"
	default:
		return "Invalid"
	}
}

// OperationMode selects the active sensors and whether fusion runs.
type OperationMode byte

const (
	ModeConfig     OperationMode = 0x00
	ModeAccOnly    OperationMode = 0x01
	ModeMagOnly    OperationMode = 0x02
	ModeGyroOnly   OperationMode = 0x03
	ModeAccMag     OperationMode = 0x04
	ModeAccGyro    OperationMode = 0x05
	ModeMagGyro    OperationMode = 0x06
	ModeAMG        OperationMode = 0x07
	ModeIMUPlus    OperationMode = 0x08
	ModeCompass    OperationMode = 0x09
	ModeM4G        OperationMode = 0x0A
	ModeNDOFFMCOff OperationMode = 0x0B
	ModeNDOF       OperationMode = 0x0C
)

var modeNames = [...]string{
	"CONFIG", "ACCONLY", "MAGONLY", "GYRONLY", "ACCMAG", "ACCGYRO", "MAGGYRO",
	"AMG", "IMUPLUS", "COMPASS", "M4G", "NDOF_FMC_OFF", "NDOF",
}

func (m OperationMode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "UNKNOWN"
}

// ParseOperationMode returns the mode named by s, as printed by String.
func ParseOperationMode(s string) (OperationMode, bool) {
	for i, n := range modeNames {
		if n == s {
			return OperationMode(i), true
		}
	}
	return 0, false
}

// RemapConfig is an AXIS_MAP_CONFIG value for mounting placement P0..P7.
type RemapConfig byte

const (
	RemapConfigP0 RemapConfig = 0x21
	RemapConfigP1 RemapConfig = 0x24 // Default.
	RemapConfigP2 RemapConfig = 0x24
	RemapConfigP3 RemapConfig = 0x21
	RemapConfigP4 RemapConfig = 0x24
	RemapConfigP5 RemapConfig = 0x21
	RemapConfigP6 RemapConfig = 0x21
	RemapConfigP7 RemapConfig = 0x24
)

// RemapSign is an AXIS_MAP_SIGN value for mounting placement P0..P7.
type RemapSign byte

const (
	RemapSignP0 RemapSign = 0x04
	RemapSignP1 RemapSign = 0x00 // Default.
	RemapSignP2 RemapSign = 0x06
	RemapSignP3 RemapSign = 0x02
	RemapSignP4 RemapSign = 0x03
	RemapSignP5 RemapSign = 0x01
	RemapSignP6 RemapSign = 0x07
	RemapSignP7 RemapSign = 0x05
)

// AccRange is the accelerometer full scale.
type AccRange byte

const (
	AccRange2G  AccRange = 0x00
	AccRange4G  AccRange = 0x01
	AccRange8G  AccRange = 0x02
	AccRange16G AccRange = 0x03
)

// AccBandwidth is the accelerometer filter bandwidth in Hz.
type AccBandwidth byte

const (
	AccBW7_81  AccBandwidth = 0x00
	AccBW15_63 AccBandwidth = 0x01
	AccBW31_25 AccBandwidth = 0x02
	AccBW62_5  AccBandwidth = 0x03
	AccBW125   AccBandwidth = 0x04
	AccBW250   AccBandwidth = 0x05
	AccBW500   AccBandwidth = 0x06
	AccBW1000  AccBandwidth = 0x07
)

// AccMode is the accelerometer power sub-mode.
type AccMode byte

const (
	AccNormal      AccMode = 0x00
	AccSuspend     AccMode = 0x01
	AccLowPower1   AccMode = 0x02
	AccStandby     AccMode = 0x03
	AccLowPower2   AccMode = 0x04
	AccDeepSuspend AccMode = 0x05
)

// GyrRange is the gyroscope full scale in °/s.
type GyrRange byte

const (
	GyrRange2000 GyrRange = 0x00
	GyrRange1000 GyrRange = 0x01
	GyrRange500  GyrRange = 0x02
	GyrRange250  GyrRange = 0x03
	GyrRange125  GyrRange = 0x04
)

// GyrBandwidth is the gyroscope filter bandwidth in Hz.
type GyrBandwidth byte

const (
	GyrBW523 GyrBandwidth = 0x00
	GyrBW230 GyrBandwidth = 0x01
	GyrBW116 GyrBandwidth = 0x02
	GyrBW47  GyrBandwidth = 0x03
	GyrBW23  GyrBandwidth = 0x04
	GyrBW12  GyrBandwidth = 0x05
	GyrBW64  GyrBandwidth = 0x06
	GyrBW32  GyrBandwidth = 0x07
)

// GyrMode is the gyroscope power sub-mode.
type GyrMode byte

const (
	GyrNormal            GyrMode = 0x00
	GyrFastPowerUp       GyrMode = 0x01
	GyrDeepSuspend       GyrMode = 0x02
	GyrSuspend           GyrMode = 0x03
	GyrAdvancedPowerSave GyrMode = 0x04
)

// MagRate is the magnetometer output data rate in Hz.
type MagRate byte

const (
	MagRate2  MagRate = 0x00
	MagRate6  MagRate = 0x01
	MagRate8  MagRate = 0x02
	MagRate10 MagRate = 0x03
	MagRate15 MagRate = 0x04
	MagRate20 MagRate = 0x05
	MagRate25 MagRate = 0x06
	MagRate30 MagRate = 0x07
)

// MagPowerMode is the magnetometer power mode.
type MagPowerMode byte

const (
	MagPowerNormal  MagPowerMode = 0x00
	MagPowerSleep   MagPowerMode = 0x01
	MagPowerSuspend MagPowerMode = 0x02
	MagPowerForce   MagPowerMode = 0x03
)

// MagMode is the magnetometer operation sub-mode.
type MagMode byte

const (
	MagLowPower        MagMode = 0x00
	MagRegular         MagMode = 0x01
	MagEnhancedRegular MagMode = 0x02
	MagHighAccuracy    MagMode = 0x03
)

// Bit offsets of the page 1 configuration fields.
const (
	accRangePos    = 5
	accBWPos       = 2
	gyrBWPos       = 3
	magPowerPos    = 5
	magModePos     = 3
	accSleepDurPos = 1
	gyrAutoSlpPos  = 3
	accHGAxisPos   = 5
	accAMAxisPos   = 2
	accNMDurPos    = 1
	gyrHRFiltPos   = 7
	gyrAMFiltPos   = 6
	gyrHRAxisPos   = 3
	gyrHystPos     = 5
	gyrAMDurPos    = 2
)
