// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// bno055 reads and configures a Bosch BNO055 orientation sensor on I²C or
// on a serial port.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/GermanBionicSystems/bno055"
	"github.com/GermanBionicSystems/bno055/attitude"
	"github.com/GermanBionicSystems/bno055/calview"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "BNO055 orientation sensor tool",
		Long: `bno055 talks to a Bosch BNO055 over I²C or UART.

Settings are read, by decreasing priority, from flags, BNO055_* environment
variables (BNO055_TRANSPORT, BNO055_PORT, ...) and the configuration file
given by --config or BNO055_CONFIG, else $HOME/.config/bno055/bno055.yaml or
./bno055.yaml. A calibration profile given in the file under "offsets", as
printed by the calibrate command, is written to the device on start.
`,
		SilenceUsage: true,
	}
	rootFlags(root)
	root.AddCommand(infoCmd(), readCmd(), statusCmd(), calibrateCmd(), snapshotCmd(), resetCmd())
	return root
}

// withDevice loads the configuration, opens the device and runs f.
func withDevice(f func(c *config, d *bno055.Dev) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		c, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		s, err := open(c)
		if err != nil {
			return err
		}
		defer s.Close()
		return f(c, s.dev)
	}
}

// tick calls f at the configured rate until f returns done or an error, or
// the process is interrupted.
func tick(c *config, f func() (done bool, err error)) error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	defer signal.Stop(stop)
	t := time.NewTicker(c.rate.Period())
	defer t.Stop()
	for {
		done, err := f()
		if err != nil || done {
			return err
		}
		select {
		case <-stop:
			return nil
		case <-t.C:
		}
	}
}

func infoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "print chip revisions and system status",
		RunE: withDevice(func(c *config, d *bno055.Dev) error {
			id, err := d.ChipID()
			if err != nil {
				return errors.Wrap(err, "reading chip ID")
			}
			rev, err := d.RevisionInfo()
			if err != nil {
				return errors.Wrap(err, "reading revisions")
			}
			st, err := d.SystemStatus()
			if err != nil {
				return errors.Wrap(err, "reading status")
			}
			mode, err := d.OperationMode()
			if err != nil {
				return errors.Wrap(err, "reading mode")
			}
			fmt.Printf("chip:     %#x\nrevision: %s\nmode:     %s\n%s\n", id, rev, mode, st)
			return nil
		}),
	}
}

func readCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "read",
		Short: "stream sensor and fusion data",
		Example: `  bno055 read --rate 20Hz
  bno055 read -n 1 --quaternion`,
	}
	count := cmd.Flags().IntP("count", "n", 0, "number of samples, 0 for no limit")
	quat := cmd.Flags().Bool("quaternion", false, "print quaternions instead of Euler angles")
	raw := cmd.Flags().Bool("sensors", false, "also print accelerometer, gyroscope and magnetometer")
	cmd.RunE = withDevice(func(c *config, d *bno055.Dev) error {
		n := 0
		return tick(c, func() (bool, error) {
			if *quat {
				q, err := d.Quaternion()
				if err != nil {
					return false, errors.Wrap(err, "reading quaternion")
				}
				fmt.Println(q)
			} else {
				e, err := d.Euler()
				if err != nil {
					return false, errors.Wrap(err, "reading orientation")
				}
				fmt.Println(e)
			}
			if *raw {
				for _, s := range []struct {
					name string
					get  func() (bno055.Vector, error)
				}{
					{"acc", d.Acceleration},
					{"lia", d.LinearAcceleration},
					{"grv", d.Gravity},
					{"gyr", d.AngularVelocity},
					{"mag", d.Magnetometer},
				} {
					v, err := s.get()
					if err != nil {
						return false, errors.Wrapf(err, "reading %s", s.name)
					}
					fmt.Printf("  %s %s\n", s.name, v)
				}
				temp, err := d.Temperature()
				if err != nil {
					return false, errors.Wrap(err, "reading temperature")
				}
				fmt.Printf("  tmp %.0f\n", temp)
			}
			n++
			return *count > 0 && n >= *count, nil
		})
	})
	return cmd
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "show the calibration levels until interrupted",
		RunE: withDevice(func(c *config, d *bno055.Dev) error {
			v := calview.New(&calview.Opts{})
			defer v.Halt()
			return tick(c, func() (bool, error) {
				cal, err := d.CalibrationStatus()
				if err != nil {
					return false, errors.Wrap(err, "reading calibration")
				}
				return false, v.Show(cal)
			})
		}),
	}
}

func calibrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calibrate",
		Short: "wait for full calibration and print the profile",
		Long: `calibrate shows the calibration levels until every subsystem used by the
operation mode is calibrated, then prints the calibration profile in the
configuration file format, ready to be pasted under "offsets".

Keep the device still for the gyroscope, place it in six stable positions for
the accelerometer and move it in a figure eight for the magnetometer.
`,
	}
	timeout := cmd.Flags().Duration("timeout", 5*time.Minute, "give up after this long")
	cmd.RunE = withDevice(func(c *config, d *bno055.Dev) error {
		v := calview.New(&calview.Opts{})
		deadline := time.Now().Add(*timeout)
		done := false
		err := tick(c, func() (bool, error) {
			cal, err := d.CalibrationStatus()
			if err != nil {
				return false, errors.Wrap(err, "reading calibration")
			}
			if err := v.Show(cal); err != nil {
				return false, err
			}
			done = cal.Complete(c.mode)
			if !done && time.Now().After(deadline) {
				return false, errors.Errorf("not calibrated after %s: %s", *timeout, cal)
			}
			return done, nil
		})
		_ = v.Halt()
		if err != nil || !done {
			return err
		}
		// The profile is only readable in CONFIG mode.
		if err := d.SetOperationMode(bno055.ModeConfig); err != nil {
			return errors.Wrap(err, "entering CONFIG mode")
		}
		time.Sleep(25 * time.Millisecond)
		p, err := d.Offsets()
		if err != nil {
			return errors.Wrap(err, "reading calibration profile")
		}
		fmt.Print(formatProfile(p))
		return nil
	})
	return cmd
}

func snapshotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "snapshot [file.png]",
		Short:   "draw the current orientation as a PNG image",
		Args:    cobra.MaximumNArgs(1),
		Example: `  bno055 snapshot attitude.png`,
	}
	size := cmd.Flags().IntSlice("size", []int{attitude.DefaultOpts.Width, attitude.DefaultOpts.Height}, "image width,height")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		path := "attitude.png"
		if len(args) == 1 {
			path = args[0]
		}
		if len(*size) != 2 {
			return errors.Errorf("--size wants width,height, got %v", *size)
		}
		opts := attitude.DefaultOpts
		opts.Width, opts.Height = (*size)[0], (*size)[1]
		r, err := attitude.New(&opts)
		if err != nil {
			return err
		}
		return withDevice(func(c *config, d *bno055.Dev) error {
			e, err := d.Euler()
			if err != nil {
				return errors.Wrap(err, "reading orientation")
			}
			cal, err := d.CalibrationStatus()
			if err != nil {
				return errors.Wrap(err, "reading calibration")
			}
			f, err := os.Create(path)
			if err != nil {
				return errors.WithStack(err)
			}
			if err := r.WritePNG(f, attitude.Sample{Euler: e, Calibration: cal}); err != nil {
				f.Close()
				return errors.Wrapf(err, "encoding %s", path)
			}
			if err := f.Close(); err != nil {
				return errors.WithStack(err)
			}
			log.Infof("%s written: %s %s", path, e, cal)
			return nil
		})(cmd, args)
	}
	return cmd
}

func resetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "reset the device and clear its interrupts",
		RunE: withDevice(func(c *config, d *bno055.Dev) error {
			return resetDevice(d)
		}),
	}
}

// resetDevice resets d, checks that it came back ready and clears its
// interrupts.
func resetDevice(d *bno055.Dev) error {
	if err := d.Reset(); err != nil {
		return errors.Wrap(err, "reset")
	}
	ready, err := d.Init()
	if err != nil {
		return errors.Wrap(err, "initializing device")
	}
	if !ready {
		return errors.Wrap(bno055.ErrNotReady, "after reset")
	}
	if err := d.InterruptReset(); err != nil {
		return errors.Wrap(err, "clearing interrupts")
	}
	log.Infoln("device reset")
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatalln(err)
	}
}
