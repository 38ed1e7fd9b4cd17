// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/GermanBionicSystems/bno055"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"periph.io/x/conn/v3/physic"
)

const (
	appName           = "bno055"
	defaultConfigName = "bno055"
	defaultRate       = "10Hz"
)

// offsetsConfig is the calibration profile as stored in the config file.
type offsetsConfig struct {
	Acc       []int `mapstructure:"acc"`
	Mag       []int `mapstructure:"mag"`
	Gyr       []int `mapstructure:"gyr"`
	AccRadius int   `mapstructure:"acc_radius"`
	MagRadius int   `mapstructure:"mag_radius"`
}

type config struct {
	Transport string        `mapstructure:"transport"`
	Bus       string        `mapstructure:"bus"`
	Addr      uint16        `mapstructure:"addr"`
	Port      string        `mapstructure:"port"`
	Baud      int           `mapstructure:"baud"`
	Mode      string        `mapstructure:"mode"`
	Rate      string        `mapstructure:"rate"`
	Verbose   bool          `mapstructure:"verbose"`
	Offsets   offsetsConfig `mapstructure:"offsets"`

	mode bno055.OperationMode
	rate physic.Frequency
}

func rootFlags(cmd *cobra.Command) {
	f := cmd.PersistentFlags()
	f.String("config", "", "configuration file, default $HOME/.config/bno055/bno055.yaml or ./bno055.yaml")
	f.StringP("transport", "t", "i2c", "transport: i2c or uart")
	f.StringP("bus", "b", "", "I²C bus name or number, empty for the first one")
	f.Uint16P("addr", "a", bno055.DefaultI2CAddr, "I²C address, 0x28 or 0x29")
	f.StringP("port", "p", "/dev/ttyUSB0", "serial port for the uart transport")
	f.Int("baud", bno055.DefaultBaudRate, "serial port speed")
	f.StringP("mode", "m", bno055.ModeNDOF.String(), "operation mode entered on start")
	f.StringP("rate", "r", defaultRate, "sampling rate of streaming commands")
	f.BoolP("verbose", "v", false, "log register traffic")
}

// loadConfig merges, by decreasing priority, flags, BNO055_* environment
// variables, the config file and defaults.
func loadConfig(cmd *cobra.Command) (*config, error) {
	v := viper.New()
	v.SetDefault("transport", "i2c")
	v.SetDefault("addr", bno055.DefaultI2CAddr)
	v.SetDefault("baud", bno055.DefaultBaudRate)
	v.SetDefault("mode", bno055.ModeNDOF.String())
	v.SetDefault("rate", defaultRate)

	if file, err := cmd.Flags().GetString("config"); err == nil && file != "" {
		v.SetConfigFile(file)
	} else if file := os.Getenv("BNO055_CONFIG"); file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(defaultConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.config/bno055")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(appName)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, name := range []string{"transport", "bus", "addr", "port", "baud", "mode", "rate", "verbose"} {
		_ = v.BindPFlag(name, cmd.Flags().Lookup(name))
	}

	if err := v.ReadInConfig(); err == nil {
		log.Debugln("using config file:", v.ConfigFileUsed())
	} else if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
		return nil, errors.Wrap(err, "reading config")
	}

	c := &config{}
	if err := v.Unmarshal(c); err != nil {
		return nil, errors.Wrap(err, "decoding config")
	}
	if c.Verbose {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}
	m, ok := bno055.ParseOperationMode(strings.ToUpper(c.Mode))
	if !ok {
		return nil, errors.Errorf("unknown operation mode %q", c.Mode)
	}
	c.mode = m
	if err := c.rate.Set(c.Rate); err != nil {
		return nil, errors.Wrapf(err, "invalid rate %q", c.Rate)
	}
	if c.rate <= 0 {
		return nil, errors.Errorf("invalid rate %q", c.Rate)
	}
	switch c.Transport {
	case "i2c", "uart":
	default:
		return nil, errors.Errorf("unknown transport %q", c.Transport)
	}
	return c, nil
}

// profile returns the calibration profile given under "offsets", if any.
func (c *config) profile() (bno055.Offsets, bool, error) {
	o := c.Offsets
	if len(o.Acc) == 0 && len(o.Mag) == 0 && len(o.Gyr) == 0 {
		return bno055.Offsets{}, false, nil
	}
	var p bno055.Offsets
	for _, f := range []struct {
		name string
		src  []int
		dst  *[3]int16
	}{
		{"acc", o.Acc, &p.Acc},
		{"mag", o.Mag, &p.Mag},
		{"gyr", o.Gyr, &p.Gyr},
	} {
		if len(f.src) != 3 {
			return p, false, errors.Errorf("offsets.%s: want 3 values, got %d", f.name, len(f.src))
		}
		for i, x := range f.src {
			f.dst[i] = int16(x)
		}
	}
	p.AccRadius = int16(o.AccRadius)
	p.MagRadius = int16(o.MagRadius)
	return p, true, nil
}

// formatProfile prints p as the "offsets" section of the config file.
func formatProfile(p bno055.Offsets) string {
	return fmt.Sprintf("offsets:\n  acc: [%d, %d, %d]\n  mag: [%d, %d, %d]\n  gyr: [%d, %d, %d]\n  acc_radius: %d\n  mag_radius: %d\n",
		p.Acc[0], p.Acc[1], p.Acc[2], p.Mag[0], p.Mag[1], p.Mag[2], p.Gyr[0], p.Gyr[1], p.Gyr[2], p.AccRadius, p.MagRadius)
}
