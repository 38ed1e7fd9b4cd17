// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"testing"
	"time"

	"github.com/GermanBionicSystems/bno055"
	"github.com/pkg/errors"
	"periph.io/x/conn/v3/i2c/i2ctest"
)

func wr(reg, v byte) i2ctest.IO {
	return i2ctest.IO{Addr: bno055.DefaultI2CAddr, W: []byte{reg, v}}
}

// resetOps is the bus traffic of a reset followed by Init.
func resetOps(selfTest byte) []i2ctest.IO {
	p0 := wr(bno055.PageID, byte(bno055.Page0))
	return []i2ctest.IO{
		p0, wr(bno055.SysTrigger, 0x20), wr(bno055.SysTrigger, 0x00),
		p0, wr(bno055.OprMode, byte(bno055.ModeConfig)),
		p0, wr(bno055.PwrMode, byte(bno055.PowerNormal)),
		p0, wr(bno055.OprMode, byte(bno055.ModeConfig)),
		p0, {Addr: bno055.DefaultI2CAddr, W: []byte{bno055.SelfTestResult}, R: []byte{selfTest}},
	}
}

func newDev(t *testing.T, ops []i2ctest.IO) (*bno055.Dev, *i2ctest.Playback) {
	bus := &i2ctest.Playback{Ops: ops, DontPanic: true}
	d, err := bno055.New(bno055.NewI2C(bus, bno055.DefaultI2CAddr), &bno055.Opts{Sleep: func(time.Duration) {}})
	if err != nil {
		t.Fatal(err)
	}
	return d, bus
}

func TestResetDevice(t *testing.T) {
	ops := append(resetOps(0x0F), wr(bno055.PageID, byte(bno055.Page0)), wr(bno055.SysTrigger, 0x40))
	d, bus := newDev(t, ops)
	if err := resetDevice(d); err != nil {
		t.Fatal(err)
	}
	if err := bus.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestResetDevice_NotReady(t *testing.T) {
	d, bus := newDev(t, resetOps(0x00))
	if err := resetDevice(d); errors.Cause(err) != bno055.ErrNotReady {
		t.Fatalf("resetDevice() = %v, want %v", err, bno055.ErrNotReady)
	}
	// Interrupts are left alone.
	if err := bus.Close(); err != nil {
		t.Fatal(err)
	}
}
