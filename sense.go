// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package bno055

import (
	"encoding/binary"
	"fmt"
)

// Scale divisors from raw counts to the default units.
const (
	accScale   = 100.0   // m/s²
	eulerScale = 16.0    // degrees
	quatScale  = 16384.0 // 1 LSB = 2^-14
	magScale   = 16.0    // µT
	gyroScale  = 900.0   // see Gyroscope
	rateScale  = 16.0    // °/s
)

// Vector is a three axis sample.
type Vector struct {
	X, Y, Z float64
}

func (v Vector) String() string {
	return fmt.Sprintf("X:%.2f Y:%.2f Z:%.2f", v.X, v.Y, v.Z)
}

// Quaternion is the fused orientation as a unit quaternion.
type Quaternion struct {
	W, X, Y, Z float64
}

func (q Quaternion) String() string {
	return fmt.Sprintf("W:%.4f X:%.4f Y:%.4f Z:%.4f", q.W, q.X, q.Y, q.Z)
}

// Euler is the fused orientation in degrees.
type Euler struct {
	Heading, Roll, Pitch float64
}

func (e Euler) String() string {
	return fmt.Sprintf("Heading:%.2f Roll:%.2f Pitch:%.2f", e.Heading, e.Roll, e.Pitch)
}

// Calibration is the runtime calibration level of each subsystem, 0 to 3.
type Calibration struct {
	System, Gyro, Accel, Mag uint8
}

func (c Calibration) String() string {
	return fmt.Sprintf("Sys:%d Gyro:%d Accel:%d Mag:%d", c.System, c.Gyro, c.Accel, c.Mag)
}

// FullyCalibrated is the level of a subsystem done calibrating.
const FullyCalibrated = 3

func decodeCalibration(b byte) Calibration {
	return Calibration{
		System: (b >> 6) & 0x03,
		Gyro:   (b >> 4) & 0x03,
		Accel:  (b >> 2) & 0x03,
		Mag:    b & 0x03,
	}
}

// RevisionInfo holds the chip revisions.
type RevisionInfo struct {
	Accel      uint8
	Mag        uint8
	Gyro       uint8
	Software   uint16
	Bootloader uint8
}

func (r RevisionInfo) String() string {
	return fmt.Sprintf("Accel:%#x Mag:%#x Gyro:%#x SW:%#04x BL:%#x", r.Accel, r.Mag, r.Gyro, r.Software, r.Bootloader)
}

// SysStatus is the content of the SYS_STATUS register.
type SysStatus uint8

const (
	StatusIdle SysStatus = iota
	StatusError
	StatusInitPeripherals
	StatusInitSystem
	StatusSelfTest
	StatusFusionRunning
	StatusRunningNoFusion
)

var sysStatusNames = [...]string{
	"idle",
	"system error",
	"initializing peripherals",
	"system initialization",
	"executing self-test",
	"sensor fusion running",
	"running without fusion",
}

func (s SysStatus) String() string {
	if int(s) < len(sysStatusNames) {
		return sysStatusNames[s]
	}
	return fmt.Sprintf("SysStatus(%d)", uint8(s))
}

// SelfTest is the self-test result bitmask. A set bit is a passed test.
type SelfTest uint8

const (
	SelfTestAccel SelfTest = 1 << iota
	SelfTestMag
	SelfTestGyro
	SelfTestMCU

	SelfTestAll = SelfTestAccel | SelfTestMag | SelfTestGyro | SelfTestMCU
)

// Passed reports whether every test in mask passed.
func (s SelfTest) Passed(mask SelfTest) bool {
	return s&mask == mask
}

func (s SelfTest) String() string {
	return fmt.Sprintf("Accel:%t Mag:%t Gyro:%t MCU:%t", s.Passed(SelfTestAccel), s.Passed(SelfTestMag), s.Passed(SelfTestGyro), s.Passed(SelfTestMCU))
}

// SysError is the content of the SYS_ERR register.
type SysError uint8

const (
	SysErrNone SysError = iota
	SysErrPeripheralInit
	SysErrSystemInit
	SysErrSelfTestFailed
	SysErrRegisterValueRange
	SysErrRegisterAddressRange
	SysErrRegisterWrite
	SysErrLowPowerModeUnavailable
	SysErrAccPowerModeUnavailable
	SysErrFusionConfig
	SysErrSensorConfig
)

var sysErrorNames = [...]string{
	"no error",
	"peripheral initialization error",
	"system initialization error",
	"self test result failed",
	"register map value out of range",
	"register map address out of range",
	"register map write error",
	"low power mode not available for selected operation mode",
	"accelerometer power mode not available",
	"fusion algorithm configuration error",
	"sensor configuration error",
}

func (e SysError) String() string {
	if int(e) < len(sysErrorNames) {
		return sysErrorNames[e]
	}
	return fmt.Sprintf("SysError(%d)", uint8(e))
}

// SystemStatus is a snapshot of the three status registers.
type SystemStatus struct {
	Status   SysStatus
	SelfTest SelfTest
	Error    SysError
}

func (s SystemStatus) String() string {
	return fmt.Sprintf("status:%q selftest:{%s} error:%q", s.Status, s.SelfTest, s.Error)
}

// Acceleration returns the acceleration vector in m/s².
func (d *Dev) Acceleration() (Vector, error) {
	return d.readVector(AccXLSB, AccYLSB, AccZLSB, accScale)
}

// Gravity returns the gravity vector in m/s².
func (d *Dev) Gravity() (Vector, error) {
	return d.readVector(GrvXLSB, GrvYLSB, GrvZLSB, accScale)
}

// LinearAcceleration returns the acceleration without gravity in m/s².
func (d *Dev) LinearAcceleration() (Vector, error) {
	return d.readVector(LiaXLSB, LiaYLSB, LiaZLSB, accScale)
}

// Magnetometer returns the magnetic field in µT.
func (d *Dev) Magnetometer() (Vector, error) {
	return d.readVector(MagXLSB, MagYLSB, MagZLSB, magScale)
}

// Gyroscope returns the gyroscope registers divided by 900.
//
// AngularVelocity reads the same registers divided by 16, the datasheet
// scale for °/s. 900 LSB per unit is the datasheet scale for rad/s only when
// UNIT_SEL selects RPS. Check which one matches your unit selection.
func (d *Dev) Gyroscope() (Vector, error) {
	return d.readVector(GyrXLSB, GyrYLSB, GyrZLSB, gyroScale)
}

// AngularVelocity returns the gyroscope registers divided by 16.
//
// See Gyroscope for the same registers divided by 900.
func (d *Dev) AngularVelocity() (Vector, error) {
	return d.readVector(GyrXLSB, GyrYLSB, GyrZLSB, rateScale)
}

// Euler returns heading, roll and pitch in degrees.
func (d *Dev) Euler() (Euler, error) {
	v, err := d.readVector(EulXLSB, EulYLSB, EulZLSB, eulerScale)
	return Euler{Heading: v.X, Roll: v.Y, Pitch: v.Z}, err
}

// Quaternion returns the fused orientation.
func (d *Dev) Quaternion() (Quaternion, error) {
	if err := d.selectPage(Page0); err != nil {
		return Quaternion{}, err
	}
	var raw [4]int16
	for i, reg := range [...]byte{QuaWLSB, QuaXLSB, QuaYLSB, QuaZLSB} {
		v, err := d.readInt16(reg)
		if err != nil {
			return Quaternion{}, err
		}
		raw[i] = v
	}
	return Quaternion{
		W: float64(raw[0]) / quatScale,
		X: float64(raw[1]) / quatScale,
		Y: float64(raw[2]) / quatScale,
		Z: float64(raw[3]) / quatScale,
	}, nil
}

// Temperature returns the temperature in the unit selected by UNIT_SEL,
// 1 LSB per degree.
func (d *Dev) Temperature() (float64, error) {
	if err := d.selectPage(Page0); err != nil {
		return 0, err
	}
	v, err := d.t.ReadRegister(Temp)
	if err != nil {
		return 0, err
	}
	return float64(int8(v)), nil
}

// CalibrationStatus returns the calibration level of each subsystem.
func (d *Dev) CalibrationStatus() (Calibration, error) {
	if err := d.selectPage(Page0); err != nil {
		return Calibration{}, err
	}
	v, err := d.t.ReadRegister(CalibStat)
	if err != nil {
		return Calibration{}, err
	}
	return decodeCalibration(v), nil
}

// QuaternionAccuracy splits the SYS_ERR register in four 2 bits fields, in
// the CALIB_STAT layout.
func (d *Dev) QuaternionAccuracy() (Calibration, error) {
	if err := d.selectPage(Page0); err != nil {
		return Calibration{}, err
	}
	v, err := d.t.ReadRegister(SysErr)
	if err != nil {
		return Calibration{}, err
	}
	return decodeCalibration(v), nil
}

// IsFullyCalibrated reports whether the subsystems used by the last mode set
// through this Dev are fully calibrated.
//
// The mode is the cached one; use IsFullyCalibratedFor when the mode may have
// been changed by another path.
func (d *Dev) IsFullyCalibrated() (bool, error) {
	return d.IsFullyCalibratedFor(d.cache.Mode)
}

// IsFullyCalibratedFor reports whether the subsystems used by mode are fully
// calibrated.
func (d *Dev) IsFullyCalibratedFor(mode OperationMode) (bool, error) {
	c, err := d.CalibrationStatus()
	if err != nil {
		return false, err
	}
	return c.Complete(mode), nil
}

// Complete reports whether the subsystems mode depends on are all at
// FullyCalibrated. Modes without a dedicated subset require all four.
func (c Calibration) Complete(mode OperationMode) bool {
	switch mode {
	case ModeAccOnly:
		return c.Accel == FullyCalibrated
	case ModeMagOnly:
		return c.Mag == FullyCalibrated
	case ModeGyroOnly, ModeM4G:
		return c.Gyro == FullyCalibrated
	case ModeAccMag, ModeCompass:
		return c.Accel == FullyCalibrated && c.Mag == FullyCalibrated
	case ModeAccGyro, ModeIMUPlus:
		return c.Accel == FullyCalibrated && c.Gyro == FullyCalibrated
	case ModeMagGyro:
		return c.Mag == FullyCalibrated && c.Gyro == FullyCalibrated
	default:
		return c.System == FullyCalibrated && c.Gyro == FullyCalibrated && c.Accel == FullyCalibrated && c.Mag == FullyCalibrated
	}
}

// SystemStatus reads the status, self-test and error registers, then waits
// 200ms so consecutive queries see settled values. The wait happens even when
// a read fails.
func (d *Dev) SystemStatus() (SystemStatus, error) {
	if err := d.selectPage(Page0); err != nil {
		return SystemStatus{}, err
	}
	defer d.sleep(statusDelay)
	var s SystemStatus
	v, err := d.t.ReadRegister(SysStat)
	if err != nil {
		return SystemStatus{}, err
	}
	s.Status = SysStatus(v)
	if v, err = d.t.ReadRegister(SelfTestResult); err != nil {
		return SystemStatus{}, err
	}
	s.SelfTest = SelfTest(v)
	if v, err = d.t.ReadRegister(SysErr); err != nil {
		return SystemStatus{}, err
	}
	s.Error = SysError(v)
	return s, nil
}

// RevisionInfo reads the chip revisions.
func (d *Dev) RevisionInfo() (RevisionInfo, error) {
	if err := d.selectPage(Page0); err != nil {
		return RevisionInfo{}, err
	}
	var r RevisionInfo
	for _, f := range []struct {
		reg byte
		dst *uint8
	}{
		{AccID, &r.Accel},
		{MagID, &r.Mag},
		{GyroID, &r.Gyro},
		{BlRevID, &r.Bootloader},
	} {
		v, err := d.t.ReadRegister(f.reg)
		if err != nil {
			return RevisionInfo{}, err
		}
		*f.dst = v
	}
	lsb, err := d.t.ReadRegister(SwRevIDLSB)
	if err != nil {
		return RevisionInfo{}, err
	}
	msb, err := d.t.ReadRegister(SwRevIDMSB)
	if err != nil {
		return RevisionInfo{}, err
	}
	r.Software = uint16(msb)<<8 | uint16(lsb)
	return r, nil
}

// ChipID reads the chip identification register.
func (d *Dev) ChipID() (byte, error) {
	if err := d.selectPage(Page0); err != nil {
		return 0, err
	}
	return d.t.ReadRegister(ChipID)
}

// readVector reads three axes, each as a 2 bytes read at its LSB register.
func (d *Dev) readVector(x, y, z byte, scale float64) (Vector, error) {
	if err := d.selectPage(Page0); err != nil {
		return Vector{}, err
	}
	var raw [3]int16
	for i, reg := range [...]byte{x, y, z} {
		v, err := d.readInt16(reg)
		if err != nil {
			return Vector{}, err
		}
		raw[i] = v
	}
	return Vector{
		X: float64(raw[0]) / scale,
		Y: float64(raw[1]) / scale,
		Z: float64(raw[2]) / scale,
	}, nil
}

// readInt16 reads a little-endian signed 16 bits value, LSB at reg.
func (d *Dev) readInt16(reg byte) (int16, error) {
	b, err := d.t.ReadRegisters(reg, 2)
	if err != nil {
		return 0, err
	}
	return int16(binary.LittleEndian.Uint16(b)), nil
}
