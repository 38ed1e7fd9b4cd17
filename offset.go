// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package bno055

import (
	"encoding/binary"
)

// offsetsLen is the size of the calibration profile, AccOffsetXLSB through
// MagRadiusMSB.
const offsetsLen = MagRadiusMSB - AccOffsetXLSB + 1

// Offsets is a calibration profile. Offsets are in the unit selected for each
// sensor at the time they are written.
type Offsets struct {
	Acc       [3]int16
	Mag       [3]int16
	Gyr       [3]int16
	AccRadius int16
	MagRadius int16
}

// AccOffsetX writes the accelerometer X offset.
func (d *Dev) AccOffsetX(offset int16) error { return d.writeWord(AccOffsetXLSB, offset) }

// AccOffsetY writes the accelerometer Y offset.
func (d *Dev) AccOffsetY(offset int16) error { return d.writeWord(AccOffsetYLSB, offset) }

// AccOffsetZ writes the accelerometer Z offset.
func (d *Dev) AccOffsetZ(offset int16) error { return d.writeWord(AccOffsetZLSB, offset) }

// MagOffsetX writes the magnetometer X offset.
func (d *Dev) MagOffsetX(offset int16) error { return d.writeWord(MagOffsetXLSB, offset) }

// MagOffsetY writes the magnetometer Y offset.
func (d *Dev) MagOffsetY(offset int16) error { return d.writeWord(MagOffsetYLSB, offset) }

// MagOffsetZ writes the magnetometer Z offset.
func (d *Dev) MagOffsetZ(offset int16) error { return d.writeWord(MagOffsetZLSB, offset) }

// GyroOffsetX writes the gyroscope X offset.
func (d *Dev) GyroOffsetX(offset int16) error { return d.writeWord(GyrOffsetXLSB, offset) }

// GyroOffsetY writes the gyroscope Y offset.
func (d *Dev) GyroOffsetY(offset int16) error { return d.writeWord(GyrOffsetYLSB, offset) }

// GyroOffsetZ writes the gyroscope Z offset.
func (d *Dev) GyroOffsetZ(offset int16) error { return d.writeWord(GyrOffsetZLSB, offset) }

// AccRadius writes the accelerometer radius.
func (d *Dev) AccRadius(radius int16) error { return d.writeWord(AccRadiusLSB, radius) }

// MagRadius writes the magnetometer radius.
func (d *Dev) MagRadius(radius int16) error { return d.writeWord(MagRadiusLSB, radius) }

// Offsets reads the calibration profile in one burst.
func (d *Dev) Offsets() (Offsets, error) {
	if err := d.selectPage(Page0); err != nil {
		return Offsets{}, err
	}
	b, err := d.t.ReadRegisters(AccOffsetXLSB, offsetsLen)
	if err != nil {
		return Offsets{}, err
	}
	var o Offsets
	for i := 0; i < 3; i++ {
		o.Acc[i] = int16(binary.LittleEndian.Uint16(b[2*i:]))
		o.Mag[i] = int16(binary.LittleEndian.Uint16(b[6+2*i:]))
		o.Gyr[i] = int16(binary.LittleEndian.Uint16(b[12+2*i:]))
	}
	o.AccRadius = int16(binary.LittleEndian.Uint16(b[18:]))
	o.MagRadius = int16(binary.LittleEndian.Uint16(b[20:]))
	return o, nil
}

// SetOffsets writes a calibration profile previously returned by Offsets.
// The device only accepts it in CONFIG mode, so the current mode is left and
// restored around the writes, even when one of them fails.
func (d *Dev) SetOffsets(o Offsets) error {
	b := make([]byte, offsetsLen)
	for i := 0; i < 3; i++ {
		binary.LittleEndian.PutUint16(b[2*i:], uint16(o.Acc[i]))
		binary.LittleEndian.PutUint16(b[6+2*i:], uint16(o.Mag[i]))
		binary.LittleEndian.PutUint16(b[12+2*i:], uint16(o.Gyr[i]))
	}
	binary.LittleEndian.PutUint16(b[18:], uint16(o.AccRadius))
	binary.LittleEndian.PutUint16(b[20:], uint16(o.MagRadius))
	return d.inConfig(func() error {
		if err := d.selectPage(Page0); err != nil {
			return err
		}
		for i, v := range b {
			if err := d.t.WriteRegister(byte(AccOffsetXLSB+i), v); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeWord writes a little-endian 16 bits value on page 0, LSB first.
func (d *Dev) writeWord(lsb byte, v int16) error {
	if err := d.selectPage(Page0); err != nil {
		return err
	}
	if err := d.t.WriteRegister(lsb, byte(uint16(v))); err != nil {
		return err
	}
	return d.t.WriteRegister(lsb+1, byte(uint16(v)>>8))
}
