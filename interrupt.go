// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package bno055

// Axes selects the axes an interrupt engine watches.
type Axes byte

const (
	AxisX   Axes = 0x01
	AxisY   Axes = 0x02
	AxisZ   Axes = 0x04
	AllAxes Axes = AxisX | AxisY | AxisZ
)

// InterruptReset clears the interrupt status bits and the INT pin.
func (d *Dev) InterruptReset() error {
	if err := d.selectPage(Page0); err != nil {
		return err
	}
	return d.t.WriteRegister(SysTrigger, triggerResetInt)
}

// InterruptStatus reads the pending interrupts. Reading does not clear them.
func (d *Dev) InterruptStatus() (Interrupt, error) {
	if err := d.selectPage(Page0); err != nil {
		return 0, err
	}
	v, err := d.t.ReadRegister(IntSta)
	return Interrupt(v), err
}

// InterruptMask selects which interrupts drive the INT pin.
func (d *Dev) InterruptMask(mask Interrupt) error {
	return d.write(IntMsk, byte(mask))
}

// InterruptEnable enables the interrupt engines in mask.
func (d *Dev) InterruptEnable(mask Interrupt) error {
	return d.write(IntEn, byte(mask))
}

// InterruptDisable disables every interrupt engine.
func (d *Dev) InterruptDisable() error {
	return d.write(IntEn, 0x00)
}

// AccAnyMotionThreshold sets the accelerometer any-motion threshold.
func (d *Dev) AccAnyMotionThreshold(threshold byte) error {
	return d.write(AccAMThres, threshold)
}

// AccInterruptSettings selects the high-g and any/no-motion axes and the
// any-motion duration (2 bits).
func (d *Dev) AccInterruptSettings(highG, motion Axes, duration byte) error {
	v := byte(highG&AllAxes)<<accHGAxisPos | byte(motion&AllAxes)<<accAMAxisPos | duration&0x03
	return d.write(AccIntSettings, v)
}

// AccHighGDuration sets the high-g duration.
func (d *Dev) AccHighGDuration(duration byte) error {
	return d.write(AccHGDuration, duration)
}

// AccHighGThreshold sets the high-g threshold.
func (d *Dev) AccHighGThreshold(threshold byte) error {
	return d.write(AccHGThres, threshold)
}

// AccNoMotionThreshold sets the slow/no-motion threshold.
func (d *Dev) AccNoMotionThreshold(threshold byte) error {
	return d.write(AccNMThres, threshold)
}

// AccNoMotionSettings sets the slow/no-motion duration (6 bits) and selects
// slow-motion (true) or no-motion (false) detection. Bit 7 is preserved.
func (d *Dev) AccNoMotionSettings(duration byte, slowMotion bool) error {
	return d.update(AccNMSet, 0x80, (duration&0x3F)<<accNMDurPos|bit(slowMotion))
}

// GyroInterruptSettings sets the high-rate and any-motion filter bypass bits
// and axes.
func (d *Dev) GyroInterruptSettings(hrFilter, amFilter bool, hrAxes, amAxes Axes) error {
	v := bit(hrFilter)<<gyrHRFiltPos | bit(amFilter)<<gyrAMFiltPos | byte(hrAxes&AllAxes)<<gyrHRAxisPos | byte(amAxes&AllAxes)
	return d.write(GyrIntSetting, v)
}

// GyroHighRateX sets the X axis high-rate hysteresis (2 bits) and threshold
// (5 bits). Bit 7 is preserved.
func (d *Dev) GyroHighRateX(hysteresis, threshold byte) error {
	return d.gyroHighRate(GyrHRXSet, hysteresis, threshold)
}

// GyroHighRateY is GyroHighRateX for the Y axis.
func (d *Dev) GyroHighRateY(hysteresis, threshold byte) error {
	return d.gyroHighRate(GyrHRYSet, hysteresis, threshold)
}

// GyroHighRateZ is GyroHighRateX for the Z axis.
func (d *Dev) GyroHighRateZ(hysteresis, threshold byte) error {
	return d.gyroHighRate(GyrHRZSet, hysteresis, threshold)
}

func (d *Dev) gyroHighRate(reg, hysteresis, threshold byte) error {
	return d.update(reg, 0x80, (hysteresis&0x03)<<gyrHystPos|threshold&0x1F)
}

// GyroDurationX sets the X axis high-rate duration.
func (d *Dev) GyroDurationX(duration byte) error {
	return d.write(GyrDurX, duration)
}

// GyroDurationY sets the Y axis high-rate duration.
func (d *Dev) GyroDurationY(duration byte) error {
	return d.write(GyrDurY, duration)
}

// GyroDurationZ sets the Z axis high-rate duration.
func (d *Dev) GyroDurationZ(duration byte) error {
	return d.write(GyrDurZ, duration)
}

// GyroAnyMotionThreshold sets the gyroscope any-motion threshold.
func (d *Dev) GyroAnyMotionThreshold(threshold byte) error {
	return d.write(GyrAMThres, threshold)
}

// GyroAnyMotionSettings sets the awake duration and slope samples, 2 bits
// each. Bits 7:4 are preserved.
func (d *Dev) GyroAnyMotionSettings(duration, samples byte) error {
	return d.update(GyrAMSet, 0xF0, (duration&0x03)<<gyrAMDurPos|samples&0x03)
}
