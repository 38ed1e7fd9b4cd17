// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package bno055

import (
	"bytes"
	"errors"
	"time"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2ctest"
	"periph.io/x/conn/v3/physic"
	"tinygo.org/x/drivers"
)

// fakeBNO is a paged register file answering like the device does on I²C.
// Every transaction is logged.
type fakeBNO struct {
	regs [2][256]byte
	page byte
	ops  []i2ctest.IO
	err  error
	// failWrite fails writes to these registers of the selected page.
	failWrite map[byte]error
}

func newFakeBNO() *fakeBNO {
	f := &fakeBNO{}
	f.regs[0][ChipID] = ExpectedChipID
	f.regs[0][SelfTestResult] = 0x0F
	return f
}

func (f *fakeBNO) String() string {
	return "fakeBNO"
}

func (f *fakeBNO) SetSpeed(physic.Frequency) error {
	return nil
}

func (f *fakeBNO) Tx(addr uint16, w, r []byte) error {
	if f.err != nil {
		f.ops = append(f.ops, i2ctest.IO{Addr: addr, W: append([]byte(nil), w...)})
		return f.err
	}
	if len(w) == 0 || len(w) > 2 || (len(w) == 2 && len(r) != 0) {
		return errors.New("fakeBNO: unexpected transaction")
	}
	if len(w) == 2 {
		if err := f.failWrite[w[0]]; err != nil {
			f.ops = append(f.ops, i2ctest.IO{Addr: addr, W: append([]byte(nil), w...)})
			return err
		}
		f.set(w[0], w[1])
	}
	for i := range r {
		r[i] = f.regs[f.page][byte(int(w[0])+i)]
	}
	f.ops = append(f.ops, i2ctest.IO{Addr: addr, W: append([]byte(nil), w...), R: append([]byte(nil), r...)})
	return nil
}

func (f *fakeBNO) set(reg, v byte) {
	if reg == PageID {
		f.page = v & 0x01
		f.regs[0][PageID] = v
		f.regs[1][PageID] = v
		return
	}
	f.regs[f.page][reg] = v
}

func (f *fakeBNO) reg(p Page, reg byte) byte {
	return f.regs[p][reg]
}

// writes returns the register writes in order, page selects included.
func (f *fakeBNO) writes() [][2]byte {
	var out [][2]byte
	for _, op := range f.ops {
		if len(op.W) == 2 {
			out = append(out, [2]byte{op.W[0], op.W[1]})
		}
	}
	return out
}

var _ i2c.Bus = &fakeBNO{}
var _ drivers.I2C = &fakeBNO{}

// fakeUART speaks the UART protocol in front of a fakeBNO.
type fakeUART struct {
	bno    *fakeBNO
	rx     bytes.Buffer
	sent   [][]byte
	silent bool
	// reply, when set, is sent instead of the next computed response.
	reply []byte
	// lag, when set, delays every byte read.
	lag time.Duration
}

func (u *fakeUART) Write(p []byte) (int, error) {
	u.sent = append(u.sent, append([]byte(nil), p...))
	switch {
	case u.silent:
	case u.reply != nil:
		u.rx.Write(u.reply)
		u.reply = nil
	case len(p) < 4 || p[0] != uartStart:
		u.rx.Write([]byte{uartWriteAck, byte(StatusWrongStartByte)})
	case p[1] == uartOpWrite:
		u.bno.set(p[2], p[4])
		u.rx.WriteByte(uartWriteAck)
	case p[1] == uartOpRead:
		n := int(p[3])
		u.rx.Write([]byte{uartReadAck, byte(n)})
		for i := 0; i < n; i++ {
			u.rx.WriteByte(u.bno.regs[u.bno.page][byte(int(p[2])+i)])
		}
	}
	return len(p), nil
}

// Read returns io.EOF when nothing is pending, like a drained buffer.
func (u *fakeUART) Read(p []byte) (int, error) {
	if u.lag > 0 && u.rx.Len() > 0 && len(p) > 0 {
		time.Sleep(u.lag)
		return u.rx.Read(p[:1])
	}
	return u.rx.Read(p)
}
