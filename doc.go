// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package bno055 controls a Bosch BNO055 9-axis absolute orientation sensor
// over I²C or UART.
//
// The device runs sensor fusion on chip. The driver selects operation and
// power modes, configures the sensors and interrupt engines, writes
// calibration offsets and decodes the sensor and fusion output registers.
//
// Registers live on two pages selected through PageID. Every operation writes
// the page register before touching a paged register, so a Dev must not be
// shared between goroutines without external locking.
//
// # Transports
//
// NewI2C uses a periph.io I²C bus, NewDriversI2C a TinyGo drivers.I2C bus and
// NewUART any io.ReadWriter, typically a serial port with a read timeout.
//
// # Datasheet
//
// https://www.bosch-sensortec.com/media/boschsensortec/downloads/datasheets/bst-bno055-ds000.pdf
package bno055
