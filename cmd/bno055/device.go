// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"io"
	"time"

	"github.com/GermanBionicSystems/bno055"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/tarm/serial"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

// session is an opened device and the port it lives on.
type session struct {
	dev  *bno055.Dev
	port io.Closer
}

func (s *session) Close() error {
	if err := s.dev.Halt(); err != nil {
		log.Warnln("halt:", err)
	}
	return s.port.Close()
}

// openTransport opens the bus or serial port selected by c.
func openTransport(c *config) (bno055.Transport, io.Closer, error) {
	switch c.Transport {
	case "uart":
		port, err := serial.OpenPort(&serial.Config{
			Name:        c.Port,
			Baud:        c.Baud,
			ReadTimeout: 10 * time.Millisecond,
		})
		if err != nil {
			return nil, nil, errors.Wrapf(err, "opening %s", c.Port)
		}
		t := bno055.NewUART(port, &bno055.DefaultUARTOpts)
		if c.Verbose {
			t.EnableDebug(log.Debugf)
		}
		log.Debugf("using serial port %s at %d bauds", c.Port, c.Baud)
		return t, port, nil
	default:
		if _, err := host.Init(); err != nil {
			return nil, nil, errors.Wrap(err, "initializing host")
		}
		bus, err := i2creg.Open(c.Bus)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "opening I²C bus %q", c.Bus)
		}
		t := bno055.NewI2C(bus, c.Addr)
		if c.Verbose {
			t.EnableDebug(log.Debugf)
		}
		log.Debugf("using %s", t)
		return t, bus, nil
	}
}

// open initializes the device, writes the configured calibration profile and
// enters the configured mode.
func open(c *config) (*session, error) {
	t, port, err := openTransport(c)
	if err != nil {
		return nil, err
	}
	opts := bno055.DefaultOpts
	opts.Mode = bno055.ModeConfig
	d, err := bno055.New(t, &opts)
	if err != nil {
		port.Close()
		return nil, errors.Wrap(err, "initializing device")
	}
	s := &session{dev: d, port: port}
	p, ok, err := c.profile()
	if err != nil {
		s.Close()
		return nil, err
	}
	if ok {
		if err := d.SetOffsets(p); err != nil {
			s.Close()
			return nil, errors.Wrap(err, "writing calibration profile")
		}
		log.Debugln("calibration profile written")
	}
	if c.mode != bno055.ModeConfig {
		if err := d.SetOperationMode(c.mode); err != nil {
			s.Close()
			return nil, errors.Wrapf(err, "entering %s", c.mode)
		}
		// Leaving CONFIG mode takes 7ms.
		time.Sleep(10 * time.Millisecond)
	}
	log.Debugf("%s ready", d)
	return s, nil
}
