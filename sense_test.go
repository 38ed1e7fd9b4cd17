// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package bno055

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestAcceleration(t *testing.T) {
	d, bus, _ := newPlayback(t,
		page(Page0),
		rd(AccXLSB, 0x64, 0x00),
		rd(AccYLSB, 0x9C, 0xFF),
		rd(AccZLSB, 0xD4, 0x03),
	)
	v, err := d.Acceleration()
	if err != nil {
		t.Fatal(err)
	}
	closePlayback(t, bus)
	if diff := cmp.Diff(Vector{X: 1, Y: -1, Z: 9.8}, v); diff != "" {
		t.Errorf("Acceleration() (-want +got):\n%s", diff)
	}
	if s := v.String(); s != "X:1.00 Y:-1.00 Z:9.80" {
		t.Errorf("String() = %q", s)
	}
}

func TestQuaternion(t *testing.T) {
	d, bus, _ := newPlayback(t,
		page(Page0),
		rd(QuaWLSB, 0x00, 0x40),
		rd(QuaXLSB, 0x00, 0x00),
		rd(QuaYLSB, 0x00, 0xE0),
		rd(QuaZLSB, 0x00, 0x00),
	)
	q, err := d.Quaternion()
	if err != nil {
		t.Fatal(err)
	}
	closePlayback(t, bus)
	if diff := cmp.Diff(Quaternion{W: 1, Y: -0.5}, q); diff != "" {
		t.Errorf("Quaternion() (-want +got):\n%s", diff)
	}
}

func TestVectors(t *testing.T) {
	d, f, _ := newFake(t)
	put := func(lsb byte, v int16) {
		f.regs[0][lsb] = byte(uint16(v))
		f.regs[0][lsb+1] = byte(uint16(v) >> 8)
	}
	put(GyrXLSB, 900)
	put(GyrYLSB, -1800)
	put(GyrZLSB, 16)
	put(EulXLSB, 5760)
	put(EulYLSB, -16)
	put(EulZLSB, 720)
	put(MagXLSB, 320)
	put(LiaZLSB, -50)
	put(GrvZLSB, 981)

	data := []struct {
		name string
		get  func() (Vector, error)
		want Vector
	}{
		{"Gyroscope", d.Gyroscope, Vector{X: 1, Y: -2, Z: 16.0 / 900}},
		{"AngularVelocity", d.AngularVelocity, Vector{X: 56.25, Y: -112.5, Z: 1}},
		{"Magnetometer", d.Magnetometer, Vector{X: 20}},
		{"LinearAcceleration", d.LinearAcceleration, Vector{Z: -0.5}},
		{"Gravity", d.Gravity, Vector{Z: 9.81}},
	}
	for _, line := range data {
		got, err := line.get()
		if err != nil {
			t.Fatalf("%s: %v", line.name, err)
		}
		if diff := cmp.Diff(line.want, got); diff != "" {
			t.Errorf("%s() (-want +got):\n%s", line.name, diff)
		}
	}
	e, err := d.Euler()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(Euler{Heading: 360, Roll: -1, Pitch: 45}, e); diff != "" {
		t.Errorf("Euler() (-want +got):\n%s", diff)
	}
}

func TestScaleRoundTrip(t *testing.T) {
	for _, scale := range []float64{accScale, eulerScale, quatScale, magScale, gyroScale, rateScale} {
		for r := math.MinInt16; r <= math.MaxInt16; r++ {
			x := float64(int16(r)) / scale
			if back := int16(math.Round(x * scale)); back != int16(r) {
				t.Fatalf("scale %g: %d decoded to %g encoded back to %d", scale, r, x, back)
			}
		}
	}
}

func TestReadInt16(t *testing.T) {
	d, f, _ := newFake(t)
	for _, v := range []int16{0, 1, -1, 255, 256, math.MaxInt16, math.MinInt16} {
		f.regs[0][AccXLSB] = byte(uint16(v))
		f.regs[0][AccXMSB] = byte(uint16(v) >> 8)
		got, err := d.readInt16(AccXLSB)
		if err != nil {
			t.Fatal(err)
		}
		if got != v {
			t.Errorf("readInt16() = %d, want %d", got, v)
		}
	}
}

func TestTemperature(t *testing.T) {
	d, bus, _ := newPlayback(t, page(Page0), rd(Temp, 0x19), page(Page0), rd(Temp, 0xE7))
	for _, want := range []float64{25, -25} {
		got, err := d.Temperature()
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Errorf("Temperature() = %g, want %g", got, want)
		}
	}
	closePlayback(t, bus)
}

func TestCalibrationStatus(t *testing.T) {
	d, bus, _ := newPlayback(t, page(Page0), rd(CalibStat, 0xE4))
	c, err := d.CalibrationStatus()
	if err != nil {
		t.Fatal(err)
	}
	closePlayback(t, bus)
	if diff := cmp.Diff(Calibration{System: 3, Gyro: 2, Accel: 1, Mag: 0}, c); diff != "" {
		t.Errorf("CalibrationStatus() (-want +got):\n%s", diff)
	}
}

func TestQuaternionAccuracy(t *testing.T) {
	d, bus, _ := newPlayback(t, page(Page0), rd(SysErr, 0x1B))
	c, err := d.QuaternionAccuracy()
	if err != nil {
		t.Fatal(err)
	}
	closePlayback(t, bus)
	if diff := cmp.Diff(Calibration{System: 0, Gyro: 1, Accel: 2, Mag: 3}, c); diff != "" {
		t.Errorf("QuaternionAccuracy() (-want +got):\n%s", diff)
	}
}

func TestCalibrationComplete(t *testing.T) {
	type need struct{ sys, gyro, acc, mag bool }
	needs := map[OperationMode]need{
		ModeAccOnly:  {acc: true},
		ModeMagOnly:  {mag: true},
		ModeGyroOnly: {gyro: true},
		ModeAccMag:   {acc: true, mag: true},
		ModeAccGyro:  {acc: true, gyro: true},
		ModeMagGyro:  {mag: true, gyro: true},
		ModeIMUPlus:  {acc: true, gyro: true},
		ModeCompass:  {acc: true, mag: true},
		ModeM4G:      {gyro: true},
	}
	all := need{true, true, true, true}
	ok := func(req bool, level uint8) bool { return !req || level == FullyCalibrated }
	for m := ModeConfig; m <= ModeNDOF; m++ {
		n, found := needs[m]
		if !found {
			n = all
		}
		for b := 0; b < 256; b++ {
			c := decodeCalibration(byte(b))
			want := ok(n.sys, c.System) && ok(n.gyro, c.Gyro) && ok(n.acc, c.Accel) && ok(n.mag, c.Mag)
			if got := c.Complete(m); got != want {
				t.Fatalf("%s with %s: Complete() = %t, want %t", m, c, got, want)
			}
		}
	}
}

func TestIsFullyCalibrated(t *testing.T) {
	d, f, _ := newFake(t)
	if err := d.SetOperationMode(ModeAccOnly); err != nil {
		t.Fatal(err)
	}
	f.regs[0][CalibStat] = 0x0C
	if ok, err := d.IsFullyCalibrated(); err != nil || !ok {
		t.Errorf("IsFullyCalibrated() = %t, %v", ok, err)
	}
	if ok, err := d.IsFullyCalibratedFor(ModeNDOF); err != nil || ok {
		t.Errorf("IsFullyCalibratedFor(NDOF) = %t, %v", ok, err)
	}
	f.regs[0][CalibStat] = 0xFF
	if ok, err := d.IsFullyCalibratedFor(ModeNDOF); err != nil || !ok {
		t.Errorf("IsFullyCalibratedFor(NDOF) = %t, %v", ok, err)
	}
}

func TestSystemStatus(t *testing.T) {
	d, bus, s := newPlayback(t, page(Page0), rd(SysStat, 0x05), rd(SelfTestResult, 0x0D), rd(SysErr, 0x00))
	st, err := d.SystemStatus()
	if err != nil {
		t.Fatal(err)
	}
	closePlayback(t, bus)
	want := SystemStatus{Status: StatusFusionRunning, SelfTest: SelfTestAccel | SelfTestGyro | SelfTestMCU, Error: SysErrNone}
	if diff := cmp.Diff(want, st); diff != "" {
		t.Errorf("SystemStatus() (-want +got):\n%s", diff)
	}
	if st.SelfTest.Passed(SelfTestAll) {
		t.Error("magnetometer self-test reported as passed")
	}
	if diff := cmp.Diff(sleeps{200 * time.Millisecond}, *s); diff != "" {
		t.Errorf("sleeps (-want +got):\n%s", diff)
	}
	if got := st.String(); got != `status:"sensor fusion running" selftest:{Accel:true Mag:false Gyro:true MCU:true} error:"no error"` {
		t.Errorf("String() = %s", got)
	}
}

func TestSystemStatus_ReadError(t *testing.T) {
	d, bus, s := newPlayback(t, page(Page0), rd(SysStat, 0x05))
	if _, err := d.SystemStatus(); err == nil {
		t.Fatal("expected error")
	}
	closePlayback(t, bus)
	if diff := cmp.Diff(sleeps{200 * time.Millisecond}, *s); diff != "" {
		t.Errorf("sleeps (-want +got):\n%s", diff)
	}
}

func TestRevisionInfo(t *testing.T) {
	d, f, _ := newFake(t)
	f.regs[0][AccID] = 0xFB
	f.regs[0][MagID] = 0x32
	f.regs[0][GyroID] = 0x0F
	f.regs[0][SwRevIDLSB] = 0x11
	f.regs[0][SwRevIDMSB] = 0x03
	f.regs[0][BlRevID] = 0x15
	r, err := d.RevisionInfo()
	if err != nil {
		t.Fatal(err)
	}
	want := RevisionInfo{Accel: 0xFB, Mag: 0x32, Gyro: 0x0F, Software: 0x0311, Bootloader: 0x15}
	if diff := cmp.Diff(want, r); diff != "" {
		t.Errorf("RevisionInfo() (-want +got):\n%s", diff)
	}
}

func TestChipID(t *testing.T) {
	d, bus, _ := newPlayback(t, page(Page0), rd(ChipID, 0xA0))
	id, err := d.ChipID()
	if err != nil {
		t.Fatal(err)
	}
	closePlayback(t, bus)
	if id != ExpectedChipID {
		t.Errorf("ChipID() = %#x", id)
	}
}

func TestReadError(t *testing.T) {
	f := newFakeBNO()
	f.err = errors.New("bus fault")
	tr := NewI2C(f, addr)
	b, err := tr.ReadRegisters(AccXLSB, 6)
	if !errors.Is(err, f.err) {
		t.Fatalf("ReadRegisters() = %v", err)
	}
	if diff := cmp.Diff(make([]byte, 6), b); diff != "" {
		t.Errorf("result not zero-filled (-want +got):\n%s", diff)
	}
	d, err := New(tr, &Opts{})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := d.Euler(); err == nil {
		t.Error("Euler() expected error")
	}
}

func TestI2C_Length(t *testing.T) {
	f := newFakeBNO()
	tr := NewI2C(f, addr)
	for _, n := range []int{-1, 0} {
		if _, err := tr.ReadRegisters(ChipID, n); err == nil {
			t.Errorf("ReadRegisters(%d) expected error", n)
		}
	}
	if len(f.ops) != 0 {
		t.Errorf("transactions for invalid lengths: %v", f.ops)
	}
}

func TestDriversI2C(t *testing.T) {
	f := newFakeBNO()
	f.regs[0][Temp] = 0x1E
	d, err := New(NewDriversI2C(f, AltI2CAddr), &Opts{Sleep: func(time.Duration) {}})
	if err != nil {
		t.Fatal(err)
	}
	got, err := d.Temperature()
	if err != nil {
		t.Fatal(err)
	}
	if got != 30 {
		t.Errorf("Temperature() = %g", got)
	}
	for _, op := range f.ops {
		if op.Addr != AltI2CAddr {
			t.Fatalf("transaction on %#x", op.Addr)
		}
	}
}
