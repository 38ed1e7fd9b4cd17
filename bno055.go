// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package bno055

import (
	"errors"
	"fmt"
	"time"

	"periph.io/x/conn/v3"
)

var (
	// ErrNotReady is returned by New when the self-test result register
	// reports no passing component after initialization.
	ErrNotReady = errors.New("bno055: device not ready")
	// ErrChipID is returned by New when the chip ID does not match.
	ErrChipID = errors.New("bno055: unexpected chip ID")
)

// Opts holds the configuration applied by New.
type Opts struct {
	// InitOnStart runs Init from New.
	InitOnStart bool
	// ExpectedChipID is verified by New when non-zero.
	ExpectedChipID byte
	// Mode is the operation mode entered after initialization. ModeConfig
	// leaves the device in configuration mode.
	Mode OperationMode
	// Sleep waits for device settle times. Defaults to time.Sleep.
	Sleep func(time.Duration)
}

// DefaultOpts initializes the device and starts 9 degrees of freedom fusion.
var DefaultOpts = Opts{
	InitOnStart:    true,
	ExpectedChipID: ExpectedChipID,
	Mode:           ModeNDOF,
}

// settle holds the waits of the Init sequence.
type settle struct {
	powerOn time.Duration
	power   time.Duration
	config  time.Duration
}

var (
	i2cSettle  = settle{powerOn: 50 * time.Millisecond, power: 10 * time.Millisecond, config: 50 * time.Millisecond}
	uartSettle = settle{powerOn: 30 * time.Millisecond, power: 20 * time.Millisecond, config: 30 * time.Millisecond}
)

const (
	resetDelay       = 500 * time.Millisecond
	resetSettleDelay = 50 * time.Millisecond
	remapEnterDelay  = 25 * time.Millisecond
	remapWriteDelay  = 10 * time.Millisecond
	remapLeaveDelay  = 20 * time.Millisecond
	statusDelay      = 200 * time.Millisecond
)

// AccSettings is the last accelerometer configuration written.
type AccSettings struct {
	Range     AccRange
	Bandwidth AccBandwidth
	Mode      AccMode
}

// GyrSettings is the last gyroscope configuration written.
type GyrSettings struct {
	Range     GyrRange
	Bandwidth GyrBandwidth
	Mode      GyrMode
}

// MagSettings is the last magnetometer configuration written.
type MagSettings struct {
	Rate      MagRate
	PowerMode MagPowerMode
	Mode      MagMode
}

// Settings is the driver's cached view of the device configuration.
//
// It only reflects calls made through this Dev. Registers written through
// another path, or a reset of the device, make it stale.
type Settings struct {
	Mode      OperationMode
	PowerMode PowerMode
	Acc       AccSettings
	Gyr       GyrSettings
	Mag       MagSettings
}

// Dev is a handle to a BNO055.
//
// Dev is not safe for concurrent use. Register page selection is device state
// that the next access depends on, so calls from several goroutines must be
// serialized by the caller.
type Dev struct {
	t      Transport
	sleep  func(time.Duration)
	settle settle
	page   Page
	cache  Settings
}

// New returns a handle to the device behind t.
//
// When opts.InitOnStart is set the device is initialized, its chip ID is
// verified and opts.Mode is entered.
func New(t Transport, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	d := &Dev{t: t, sleep: opts.Sleep, settle: i2cSettle}
	if d.sleep == nil {
		d.sleep = time.Sleep
	}
	if _, ok := t.(*UARTTransport); ok {
		d.settle = uartSettle
	}
	if !opts.InitOnStart {
		return d, nil
	}
	ready, err := d.Init()
	if err != nil {
		return nil, err
	}
	if !ready {
		return nil, ErrNotReady
	}
	if opts.ExpectedChipID != 0 {
		id, err := d.ChipID()
		if err != nil {
			return nil, err
		}
		if id != opts.ExpectedChipID {
			return nil, fmt.Errorf("%w: got %#x, want %#x", ErrChipID, id, opts.ExpectedChipID)
		}
	}
	if opts.Mode != ModeConfig {
		if err := d.SetOperationMode(opts.Mode); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func (d *Dev) String() string {
	return fmt.Sprintf("BNO055{%s, mode:%s}", d.t, d.cache.Mode)
}

// Halt puts the device in suspend power mode.
func (d *Dev) Halt() error {
	return d.SetPowerMode(PowerSuspend)
}

// Init brings the device into CONFIG mode at normal power and reports whether
// the self-test passed for at least one component.
//
// ready is false only when all self-test bits are zero.
func (d *Dev) Init() (ready bool, err error) {
	if err := d.selectPage(Page0); err != nil {
		return false, err
	}
	if err := d.t.WriteRegister(OprMode, byte(ModeConfig)); err != nil {
		return false, err
	}
	d.sleep(d.settle.powerOn)
	if err := d.SetPowerMode(PowerNormal); err != nil {
		return false, err
	}
	d.sleep(d.settle.power)
	if err := d.SetOperationMode(ModeConfig); err != nil {
		return false, err
	}
	d.sleep(d.settle.config)
	return d.IsReady()
}

// IsReady reports whether any of the self-test bits is set.
func (d *Dev) IsReady() (bool, error) {
	if err := d.selectPage(Page0); err != nil {
		return false, err
	}
	v, err := d.t.ReadRegister(SelfTestResult)
	if err != nil {
		return false, err
	}
	return v&selfTestMask != 0, nil
}

// Reset triggers a system reset and waits for the device to come back.
func (d *Dev) Reset() error {
	if err := d.selectPage(Page0); err != nil {
		return err
	}
	if err := d.t.WriteRegister(SysTrigger, triggerSysRst); err != nil {
		return err
	}
	d.sleep(resetDelay)
	if err := d.t.WriteRegister(SysTrigger, 0x00); err != nil {
		return err
	}
	d.sleep(resetSettleDelay)
	d.page = Page0
	d.cache = Settings{}
	return nil
}

// SetPowerMode writes the power mode register.
func (d *Dev) SetPowerMode(p PowerMode) error {
	if err := d.selectPage(Page0); err != nil {
		return err
	}
	if err := d.t.WriteRegister(PwrMode, byte(p)); err != nil {
		return err
	}
	d.cache.PowerMode = p
	return nil
}

// SetOperationMode writes the operation mode register.
//
// The device needs 7ms to leave CONFIG mode and 19ms to enter it. The caller
// is responsible for that wait.
func (d *Dev) SetOperationMode(m OperationMode) error {
	if err := d.selectPage(Page0); err != nil {
		return err
	}
	if err := d.t.WriteRegister(OprMode, byte(m)); err != nil {
		return err
	}
	d.cache.Mode = m
	return nil
}

// OperationMode reads the operation mode from the device.
func (d *Dev) OperationMode() (OperationMode, error) {
	if err := d.selectPage(Page0); err != nil {
		return ModeConfig, err
	}
	v, err := d.t.ReadRegister(OprMode)
	return OperationMode(v & 0x0F), err
}

// Settings returns the cached configuration.
func (d *Dev) Settings() Settings {
	return d.cache
}

// SetPage selects the register page.
func (d *Dev) SetPage(p Page) error {
	return d.selectPage(p)
}

// Page reads the register page from the device.
func (d *Dev) Page() (Page, error) {
	v, err := d.t.ReadRegister(PageID)
	return Page(v), err
}

// selectPage writes the page register unconditionally, since the device may
// have changed pages behind the driver's back.
func (d *Dev) selectPage(p Page) error {
	if err := d.t.WriteRegister(PageID, byte(p)); err != nil {
		return err
	}
	d.page = p
	return nil
}

// SetAxisRemap writes the axis mapping. The device only accepts it in CONFIG
// mode, so the current mode is left and restored around the write.
func (d *Dev) SetAxisRemap(c RemapConfig) error {
	return d.writeInConfig(AxisMapConfig, byte(c))
}

// SetAxisSign writes the axis sign mapping, leaving and restoring the current
// mode around the write.
func (d *Dev) SetAxisSign(s RemapSign) error {
	return d.writeInConfig(AxisMapSign, byte(s))
}

func (d *Dev) writeInConfig(reg, value byte) error {
	return d.inConfig(func() error {
		if err := d.selectPage(Page0); err != nil {
			return err
		}
		if err := d.t.WriteRegister(reg, value); err != nil {
			return err
		}
		d.sleep(remapWriteDelay)
		return nil
	})
}

// inConfig runs f in CONFIG mode. The previous mode is restored afterwards,
// also when f fails; f's error takes precedence.
func (d *Dev) inConfig(f func() error) error {
	mode, err := d.OperationMode()
	if err != nil {
		return err
	}
	if err := d.SetOperationMode(ModeConfig); err != nil {
		return err
	}
	d.sleep(remapEnterDelay)
	err = f()
	if rerr := d.SetOperationMode(mode); rerr != nil {
		if err == nil {
			err = rerr
		}
		return err
	}
	d.sleep(remapLeaveDelay)
	return err
}

var _ conn.Resource = &Dev{}
