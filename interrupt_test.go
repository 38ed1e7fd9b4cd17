// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package bno055

import (
	"testing"
)

func TestInterruptReset(t *testing.T) {
	d, bus, _ := newPlayback(t, page(Page0), wr(SysTrigger, 0x40))
	if err := d.InterruptReset(); err != nil {
		t.Fatal(err)
	}
	closePlayback(t, bus)
}

func TestInterruptStatus(t *testing.T) {
	d, bus, _ := newPlayback(t, page(Page0), rd(IntSta, 0x44))
	got, err := d.InterruptStatus()
	if err != nil {
		t.Fatal(err)
	}
	closePlayback(t, bus)
	if got != AccAnyMotion|GyrAnyMotion {
		t.Errorf("InterruptStatus() = %#x", byte(got))
	}
}

func TestInterruptWrites(t *testing.T) {
	data := []struct {
		name string
		call func(d *Dev) error
		reg  byte
		want byte
	}{
		{"InterruptMask", func(d *Dev) error { return d.InterruptMask(AccHighG | MagDataReady) }, IntMsk, 0x22},
		{"InterruptEnable", func(d *Dev) error { return d.InterruptEnable(AccNoMotion | GyrHighRate) }, IntEn, 0x88},
		{"InterruptDisable", func(d *Dev) error { return d.InterruptDisable() }, IntEn, 0x00},
		{"AccAnyMotionThreshold", func(d *Dev) error { return d.AccAnyMotionThreshold(0x14) }, AccAMThres, 0x14},
		{"AccInterruptSettings", func(d *Dev) error { return d.AccInterruptSettings(AxisX|AxisZ, AxisY, 0x03) }, AccIntSettings, 0xAB},
		{"AccHighGDuration", func(d *Dev) error { return d.AccHighGDuration(0x0F) }, AccHGDuration, 0x0F},
		{"AccHighGThreshold", func(d *Dev) error { return d.AccHighGThreshold(0xC0) }, AccHGThres, 0xC0},
		{"AccNoMotionThreshold", func(d *Dev) error { return d.AccNoMotionThreshold(0x0A) }, AccNMThres, 0x0A},
		{"GyroInterruptSettings", func(d *Dev) error { return d.GyroInterruptSettings(true, true, AllAxes, AxisX) }, GyrIntSetting, 0xF9},
		{"GyroDurationX", func(d *Dev) error { return d.GyroDurationX(0x19) }, GyrDurX, 0x19},
		{"GyroDurationY", func(d *Dev) error { return d.GyroDurationY(0x1A) }, GyrDurY, 0x1A},
		{"GyroDurationZ", func(d *Dev) error { return d.GyroDurationZ(0x1B) }, GyrDurZ, 0x1B},
		{"GyroAnyMotionThreshold", func(d *Dev) error { return d.GyroAnyMotionThreshold(0x04) }, GyrAMThres, 0x04},
	}
	for _, line := range data {
		d, bus, _ := newPlayback(t, page(Page1), wr(line.reg, line.want))
		if err := line.call(d); err != nil {
			t.Fatalf("%s: %v", line.name, err)
		}
		closePlayback(t, bus)
	}
}

func TestGyroHighRate(t *testing.T) {
	d, bus, _ := newPlayback(t, page(Page1), rd(GyrHRXSet, 0xFF), wr(GyrHRXSet, 0xA3))
	if err := d.GyroHighRateX(0x01, 0x03); err != nil {
		t.Fatal(err)
	}
	closePlayback(t, bus)
}
