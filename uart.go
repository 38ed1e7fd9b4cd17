// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package bno055

import (
	"errors"
	"fmt"
	"io"
	"time"
)

// UART frame bytes.
const (
	uartStart    byte = 0xAA
	uartOpWrite  byte = 0x00
	uartOpRead   byte = 0x01
	uartWriteAck byte = 0xEE
	uartReadAck  byte = 0xBB
)

// uartMaxLength is the largest read the device accepts in one frame.
const uartMaxLength = 128

// DefaultBaudRate is the UART speed the device boots with.
const DefaultBaudRate = 115200

// ErrTimeout is returned when the device did not answer within
// UARTOpts.Timeout.
var ErrTimeout = errors.New("bno055: response timeout")

// UARTStatus is the status byte that follows a 0xEE header.
type UARTStatus byte

const (
	StatusWriteSuccess         UARTStatus = 0x01
	StatusReadFail             UARTStatus = 0x03
	StatusWriteFail            UARTStatus = 0x04
	StatusRegmapInvalidAddress UARTStatus = 0x05
	StatusRegmapWriteDisabled  UARTStatus = 0x06
	StatusWrongStartByte       UARTStatus = 0x07
	StatusBusOverRun           UARTStatus = 0x08
	StatusMaxLength            UARTStatus = 0x09
	StatusMinLength            UARTStatus = 0x0A
	StatusReceiveTimeout       UARTStatus = 0x0B
)

func (s UARTStatus) String() string {
	switch s {
	case StatusWriteSuccess:
		return "write success"
	case StatusReadFail:
		return "read fail"
	case StatusWriteFail:
		return "write fail"
	case StatusRegmapInvalidAddress:
		return "invalid register address"
	case StatusRegmapWriteDisabled:
		return "register write disabled"
	case StatusWrongStartByte:
		return "wrong start byte"
	case StatusBusOverRun:
		return "bus over run"
	case StatusMaxLength:
		return "max length"
	case StatusMinLength:
		return "min length"
	case StatusReceiveTimeout:
		return "receive character timeout"
	default:
		return fmt.Sprintf("status %#x", byte(s))
	}
}

// ResponseError is returned when the device answers with an unexpected
// header.
type ResponseError struct {
	Reg    byte
	Header byte
	// Status is only meaningful when Header is 0xEE.
	Status UARTStatus
}

func (e *ResponseError) Error() string {
	if e.Header == uartWriteAck {
		return fmt.Sprintf("bno055: register %#x: %s", e.Reg, e.Status)
	}
	return fmt.Sprintf("bno055: register %#x: unexpected response header %#x", e.Reg, e.Header)
}

// UARTOpts configures the serial transport.
type UARTOpts struct {
	// Timeout bounds the wait for a complete response.
	Timeout time.Duration
	// Poll is the pause between reads that returned no data.
	Poll time.Duration
}

// DefaultUARTOpts is the recommended default options.
var DefaultUARTOpts = UARTOpts{
	Timeout: time.Second,
	Poll:    time.Millisecond,
}

type flusher interface {
	Flush()
}

type flusherErr interface {
	Flush() error
}

// UARTTransport is the framed serial variant.
//
// rw is usually a serial port opened with a read timeout, for example
// github.com/tarm/serial with ReadTimeout set. A Read that blocks forever
// defeats the response timeout.
type UARTTransport struct {
	rw    io.ReadWriter
	opts  UARTOpts
	debug DebugF
	rx    [2 + uartMaxLength]byte
}

// NewUART returns a transport speaking the BNO055 UART protocol over rw.
func NewUART(rw io.ReadWriter, opts *UARTOpts) *UARTTransport {
	if opts == nil {
		opts = &DefaultUARTOpts
	}
	o := *opts
	if o.Timeout <= 0 {
		o.Timeout = DefaultUARTOpts.Timeout
	}
	if o.Poll <= 0 {
		o.Poll = DefaultUARTOpts.Poll
	}
	return &UARTTransport{rw: rw, opts: o, debug: noop}
}

// EnableDebug Sets the debugging output using the local print function.
func (t *UARTTransport) EnableDebug(f DebugF) {
	t.debug = f
}

func (t *UARTTransport) String() string {
	return "UART"
}

// WriteRegister implements Transport.
//
// The device answers 0xEE on success. The status byte that follows is
// discarded by the flush preceding the next request.
func (t *UARTTransport) WriteRegister(reg, value byte) error {
	if err := t.send(uartOpWrite, reg, 1, value); err != nil {
		return err
	}
	deadline := time.Now().Add(t.opts.Timeout)
	h := t.rx[:1]
	if err := t.readFull(h, deadline); err != nil {
		t.debug("write register %#x: %v", reg, err)
		return err
	}
	if h[0] != uartWriteAck {
		t.debug("write register %#x: unexpected response %#x", reg, h[0])
		return &ResponseError{Reg: reg, Header: h[0]}
	}
	return nil
}

// ReadRegister implements Transport.
func (t *UARTTransport) ReadRegister(reg byte) (byte, error) {
	r, err := t.ReadRegisters(reg, 1)
	return r[0], err
}

// ReadRegisters implements Transport.
//
// A successful response is 0xBB, count, then count bytes, all within
// opts.Timeout of the request. On any failure the returned slice is
// zero-filled. An invalid length returns nil.
func (t *UARTTransport) ReadRegisters(reg byte, n int) ([]byte, error) {
	if n < 1 || n > uartMaxLength {
		return nil, wrapf("read %#x: invalid length %d", reg, n)
	}
	out := make([]byte, n)
	if err := t.send(uartOpRead, reg, byte(n)); err != nil {
		return out, err
	}
	deadline := time.Now().Add(t.opts.Timeout)
	h := t.rx[:2]
	if err := t.readFull(h[:1], deadline); err != nil {
		t.debug("read register %#x: %v", reg, err)
		return out, err
	}
	switch h[0] {
	case uartReadAck:
	case uartWriteAck:
		if err := t.readFull(h[1:2], deadline); err != nil {
			t.debug("read register %#x: %v", reg, err)
			return out, err
		}
		e := &ResponseError{Reg: reg, Header: h[0], Status: UARTStatus(h[1])}
		t.debug("read register %#x: %v", reg, e)
		return out, e
	default:
		t.debug("read register %#x: unexpected response %#x", reg, h[0])
		return out, &ResponseError{Reg: reg, Header: h[0]}
	}
	if err := t.readFull(h[1:2], deadline); err != nil {
		t.debug("read register %#x: %v", reg, err)
		return out, err
	}
	count := int(h[1])
	if count > uartMaxLength {
		return out, wrapf("read %#x: invalid response length %d", reg, count)
	}
	data := t.rx[2 : 2+count]
	if err := t.readFull(data, deadline); err != nil {
		t.debug("read register %#x: %v", reg, err)
		return out, err
	}
	if count != n {
		return out, wrapf("read %#x: got %d bytes, want %d", reg, count, n)
	}
	copy(out, data)
	t.debug("register content % x", out)
	return out, nil
}

// RawWrite sends a write frame for a single byte without waiting for the
// acknowledgement. It is meant for bootstrapping a device whose protocol
// state is unknown.
func (t *UARTTransport) RawWrite(reg, value byte) error {
	return t.send(uartOpWrite, reg, 1, value)
}

// RawRead sends a single byte read frame and returns the data byte of a
// 0xBB, 0x01, data answer. Only the acknowledgement byte is checked.
func (t *UARTTransport) RawRead(reg byte) (byte, error) {
	if err := t.send(uartOpRead, reg, 1); err != nil {
		return 0, err
	}
	r := t.rx[:3]
	if err := t.readFull(r, time.Now().Add(t.opts.Timeout)); err != nil {
		return 0, err
	}
	if r[0] != uartReadAck {
		return 0, &ResponseError{Reg: reg, Header: r[0]}
	}
	return r[2], nil
}

// send flushes stale input and writes one request frame.
func (t *UARTTransport) send(op, reg, length byte, payload ...byte) error {
	if f, ok := t.rw.(flusher); ok {
		f.Flush()
	} else if f, ok := t.rw.(flusherErr); ok {
		if err := f.Flush(); err != nil {
			return wrapf("flush: %w", err)
		}
	}
	frame := append([]byte{uartStart, op, reg, length}, payload...)
	t.debug("uart send % x", frame)
	if _, err := t.rw.Write(frame); err != nil {
		return wrapf("register %#x: %w", reg, err)
	}
	return nil
}

// readFull fills p or gives up once deadline has passed.
func (t *UARTTransport) readFull(p []byte, deadline time.Time) error {
	for got := 0; got < len(p); {
		n, err := t.rw.Read(p[got:])
		got += n
		if err != nil && err != io.EOF {
			return wrapf("uart read: %w", err)
		}
		if got == len(p) {
			break
		}
		if n == 0 {
			if time.Now().After(deadline) {
				for i := range p {
					p[i] = 0
				}
				return ErrTimeout
			}
			time.Sleep(t.opts.Poll)
		}
	}
	return nil
}

var _ Transport = &UARTTransport{}
