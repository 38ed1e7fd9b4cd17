// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package bno055

// SetUnit updates the unit selection register with one flag.
//
// Flags above 0x20 (MS2, DPS, Degrees, Celsius) are AND masks: the register
// becomes old & u. Flags at or below 0x20 (MG, RPS, Radians, Fahrenheit) are
// set: the register becomes (old &^ u) | u.
func (d *Dev) SetUnit(u Unit) error {
	if err := d.selectPage(Page0); err != nil {
		return err
	}
	old, err := d.t.ReadRegister(UnitSel)
	if err != nil {
		return err
	}
	return d.t.WriteRegister(UnitSel, applyUnit(old, u))
}

func applyUnit(old byte, u Unit) byte {
	if u > unitThreshold {
		return old & byte(u)
	}
	return (old &^ byte(u)) | byte(u)
}

// SetAccConfig overwrites the accelerometer configuration register with
// r<<5 | bw<<2 | m.
//
// The datasheet places the power mode in bits 7:5 and the range in bits 1:0,
// the reverse of this packing. Modes above AccStandby also spill into the
// lowest bandwidth bit.
func (d *Dev) SetAccConfig(r AccRange, bw AccBandwidth, m AccMode) error {
	v := byte(r&0x07)<<accRangePos | byte(bw&0x07)<<accBWPos | byte(m&0x07)
	if err := d.overwrite(AccConfig, v); err != nil {
		return err
	}
	d.cache.Acc = AccSettings{Range: r, Bandwidth: bw, Mode: m}
	return nil
}

// SetGyroConfig overwrites both gyroscope configuration registers.
func (d *Dev) SetGyroConfig(r GyrRange, bw GyrBandwidth, m GyrMode) error {
	if err := d.overwrite(GyrConfig0, byte(bw&0x07)<<gyrBWPos|byte(r&0x07)); err != nil {
		return err
	}
	if err := d.overwrite(GyrConfig1, byte(m&0x07)); err != nil {
		return err
	}
	d.cache.Gyr = GyrSettings{Range: r, Bandwidth: bw, Mode: m}
	return nil
}

// SetMagConfig overwrites the magnetometer configuration register.
func (d *Dev) SetMagConfig(rate MagRate, p MagPowerMode, m MagMode) error {
	v := byte(p&0x03)<<magPowerPos | byte(m&0x03)<<magModePos | byte(rate&0x07)
	if err := d.overwrite(MagConfig, v); err != nil {
		return err
	}
	d.cache.Mag = MagSettings{Rate: rate, PowerMode: p, Mode: m}
	return nil
}

// SetAccSleepConfig sets the accelerometer sleep duration (4 bits) and sleep
// timer mode. Bits 7:5 are preserved.
func (d *Dev) SetAccSleepConfig(duration byte, eventDriven bool) error {
	return d.update(AccSleepConfig, 0xE0, (duration&0x0F)<<accSleepDurPos|bit(eventDriven))
}

// SetGyroSleepConfig sets the gyroscope auto sleep duration and sleep
// duration, 3 bits each. Bits 7:6 are preserved.
func (d *Dev) SetGyroSleepConfig(autoSleep, sleep byte) error {
	return d.update(GyrSleepConfig, 0xC0, (autoSleep&0x07)<<gyrAutoSlpPos|sleep&0x07)
}

// overwrite writes a page 1 register that the driver owns entirely. The
// register is read first, as the device sequence always did, but none of its
// bits survive.
func (d *Dev) overwrite(reg, value byte) error {
	if err := d.selectPage(Page1); err != nil {
		return err
	}
	if _, err := d.t.ReadRegister(reg); err != nil {
		return err
	}
	return d.t.WriteRegister(reg, value)
}

// update is a page 1 read-modify-write keeping the bits in keep. value must
// not have bits in keep.
func (d *Dev) update(reg, keep, value byte) error {
	if err := d.selectPage(Page1); err != nil {
		return err
	}
	old, err := d.t.ReadRegister(reg)
	if err != nil {
		return err
	}
	return d.t.WriteRegister(reg, old&keep|value)
}

// write is a plain page 1 register write.
func (d *Dev) write(reg, value byte) error {
	if err := d.selectPage(Page1); err != nil {
		return err
	}
	return d.t.WriteRegister(reg, value)
}

func bit(b bool) byte {
	if b {
		return 1
	}
	return 0
}
