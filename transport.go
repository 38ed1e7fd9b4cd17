// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package bno055

import (
	"fmt"

	"periph.io/x/conn/v3/i2c"
	"tinygo.org/x/drivers"
)

// DefaultI2CAddr is the address with COM3 pulled low.
const DefaultI2CAddr uint16 = 0x28

// AltI2CAddr is the address with COM3 pulled high.
const AltI2CAddr uint16 = 0x29

// DebugF the debug function type.
type DebugF func(string, ...interface{})

// Transport moves register contents between the host and the device.
//
// Reads that fail return a zero-filled result along with the error.
type Transport interface {
	// WriteRegister writes a single byte at reg.
	WriteRegister(reg, value byte) error
	// ReadRegister reads a single byte at reg.
	ReadRegister(reg byte) (byte, error)
	// ReadRegisters reads n contiguous registers starting at reg. The device
	// auto-increments the address.
	ReadRegisters(reg byte, n int) ([]byte, error)
}

// txer is the shape shared by periph's i2c.Dev and tinygo's drivers.I2C once
// the address is bound.
type txer interface {
	Tx(w, r []byte) error
}

// I2CTransport is the addressed bus variant.
type I2CTransport struct {
	c     txer
	name  string
	debug DebugF
}

// NewI2C returns a transport for a device on a periph.io I²C bus.
func NewI2C(bus i2c.Bus, addr uint16) *I2CTransport {
	return &I2CTransport{c: &i2c.Dev{Bus: bus, Addr: addr}, name: fmt.Sprintf("%s@%#x", bus, addr), debug: noop}
}

// NewDriversI2C returns a transport for a device on a TinyGo drivers.I2C bus.
func NewDriversI2C(bus drivers.I2C, addr uint16) *I2CTransport {
	return &I2CTransport{c: &driversDev{bus: bus, addr: addr}, name: fmt.Sprintf("drivers.I2C@%#x", addr), debug: noop}
}

// EnableDebug Sets the debugging output using the local print function.
func (t *I2CTransport) EnableDebug(f DebugF) {
	t.debug = f
}

func (t *I2CTransport) String() string {
	return t.name
}

// WriteRegister implements Transport.
func (t *I2CTransport) WriteRegister(reg, value byte) error {
	t.debug("write register %#x value %#x", reg, value)
	if err := t.c.Tx([]byte{reg, value}, nil); err != nil {
		return wrapf("write %#x: %w", reg, err)
	}
	return nil
}

// ReadRegister implements Transport.
func (t *I2CTransport) ReadRegister(reg byte) (byte, error) {
	r, err := t.ReadRegisters(reg, 1)
	return r[0], err
}

// ReadRegisters implements Transport. An invalid length returns nil.
func (t *I2CTransport) ReadRegisters(reg byte, n int) ([]byte, error) {
	if n < 1 {
		return nil, wrapf("read %#x: invalid length %d", reg, n)
	}
	t.debug("read register %#x length %d", reg, n)
	r := make([]byte, n)
	if err := t.c.Tx([]byte{reg}, r); err != nil {
		for i := range r {
			r[i] = 0
		}
		return r, wrapf("read %#x: %w", reg, err)
	}
	t.debug("register content % x", r)
	return r, nil
}

// driversDev binds an address to a drivers.I2C bus.
type driversDev struct {
	bus  drivers.I2C
	addr uint16
}

func (d *driversDev) Tx(w, r []byte) error {
	return d.bus.Tx(d.addr, w, r)
}

func wrapf(format string, a ...interface{}) error {
	return fmt.Errorf("bno055: "+format, a...)
}

func noop(string, ...interface{}) {}

var _ Transport = &I2CTransport{}
var _ fmt.Stringer = &I2CTransport{}
