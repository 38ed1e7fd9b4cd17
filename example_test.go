// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package bno055_test

import (
	"fmt"
	"log"
	"time"

	"github.com/GermanBionicSystems/bno055"
	"github.com/tarm/serial"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

// Example reads the fused orientation of a BNO055 on the first I²C bus until
// the device reports full calibration.
func Example() {
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}
	bus, err := i2creg.Open("")
	if err != nil {
		log.Fatal(err)
	}
	defer bus.Close()

	d, err := bno055.New(bno055.NewI2C(bus, bno055.DefaultI2CAddr), &bno055.DefaultOpts)
	if err != nil {
		log.Fatal(err)
	}
	defer d.Halt()

	for {
		e, err := d.Euler()
		if err != nil {
			log.Fatal(err)
		}
		c, err := d.CalibrationStatus()
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(e, c)
		if c.Complete(bno055.ModeNDOF) {
			break
		}
		time.Sleep(100 * time.Millisecond)
	}
}

// ExampleNewUART talks to a BNO055 with PS1 pulled high, on a USB serial
// adapter.
func ExampleNewUART() {
	port, err := serial.OpenPort(&serial.Config{
		Name:        "/dev/ttyUSB0",
		Baud:        bno055.DefaultBaudRate,
		ReadTimeout: 100 * time.Millisecond,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer port.Close()

	d, err := bno055.New(bno055.NewUART(port, nil), &bno055.DefaultOpts)
	if err != nil {
		log.Fatal(err)
	}
	q, err := d.Quaternion()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(q)
}

// ExampleDev_SetOffsets restores a calibration profile saved from a previous
// run, so the device does not need to be calibrated again.
func ExampleDev_SetOffsets() {
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}
	bus, err := i2creg.Open("")
	if err != nil {
		log.Fatal(err)
	}
	defer bus.Close()

	d, err := bno055.New(bno055.NewI2C(bus, bno055.DefaultI2CAddr), &bno055.DefaultOpts)
	if err != nil {
		log.Fatal(err)
	}
	saved := bno055.Offsets{
		Acc:       [3]int16{-17, 42, -9},
		Mag:       [3]int16{-210, 96, -381},
		Gyr:       [3]int16{-1, 0, 2},
		AccRadius: 1000,
		MagRadius: 713,
	}
	if err := d.SetOffsets(saved); err != nil {
		log.Fatal(err)
	}
}
