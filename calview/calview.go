// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package calview shows BNO055 calibration levels as a strip of colored
// blocks on a terminal.
//
// Each subsystem gets three cells, one per calibration level reached. The
// strip is a 12x1 display.Drawer, so any animation written for a LED strip can
// be previewed with it too.
package calview

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"

	"github.com/GermanBionicSystems/bno055"
	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"periph.io/x/conn/v3/display"
)

// Width is the number of cells of the strip.
const Width = 4 * bno055.FullyCalibrated

// Levels are the cell colors, indexed by calibration level.
var Levels = [bno055.FullyCalibrated + 1]color.NRGBA{
	{0xC0, 0x00, 0x00, 0xFF},
	{0xFF, 0x80, 0x00, 0xFF},
	{0xFF, 0xE0, 0x00, 0xFF},
	{0x00, 0xC0, 0x00, 0xFF},
}

// Empty is the color of a cell above the reached level.
var Empty = color.NRGBA{0x30, 0x30, 0x30, 0xFF}

var labels = [...]string{"sys", "gyr", "acc", "mag"}

// Opts represents the options available for this display.
type Opts struct {
	Palette *ansi256.Palette
	// Color forces ANSI output. Otherwise color is only used when the output
	// is a terminal.
	Color bool

	_ struct{}
}

// Dev renders calibration levels to a terminal.
type Dev struct {
	w       io.Writer
	color   bool
	palette ansi256.Palette

	pixels []byte
	last   bno055.Calibration
	buf    bytes.Buffer
}

// New returns a Dev that displays at the console.
func New(opts *Opts) *Dev {
	ansi := opts.Color || isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	return NewWriter(colorable.NewColorableStdout(), ansi, opts.Palette)
}

// NewWriter returns a Dev writing to w. When ansi is false the last
// calibration shown is printed with plain characters instead.
func NewWriter(w io.Writer, ansi bool, p *ansi256.Palette) *Dev {
	if p == nil {
		p = ansi256.Default
	}
	return &Dev{
		w:       w,
		color:   ansi,
		palette: *p,
		pixels:  make([]byte, 3*Width),
	}
}

func (d *Dev) String() string {
	return "CalView"
}

// Halt implements conn.Resource.
//
// It resets the terminal attributes and ends the line.
func (d *Dev) Halt() error {
	_, err := d.w.Write([]byte("\n\033[0m"))
	return err
}

// Show renders c.
func (d *Dev) Show(c bno055.Calibration) error {
	d.last = c
	for i, level := range [...]uint8{c.System, c.Gyro, c.Accel, c.Mag} {
		if level > bno055.FullyCalibrated {
			level = bno055.FullyCalibrated
		}
		for j := 0; j < bno055.FullyCalibrated; j++ {
			col := Empty
			if uint8(j) < level {
				col = Levels[level]
			}
			p := d.pixels[3*(i*bno055.FullyCalibrated+j):]
			p[0], p[1], p[2] = col.R, col.G, col.B
		}
	}
	_, err := d.refresh()
	return err
}

// Write accepts a stream of raw RGB pixels and writes it to the console.
func (d *Dev) Write(pixels []byte) (int, error) {
	if len(pixels)%3 != 0 {
		return 0, errors.New("calview: invalid RGB stream length")
	}
	copy(d.pixels, pixels)
	return d.refresh()
}

// ColorModel implements display.Drawer.
func (d *Dev) ColorModel() color.Model {
	return color.NRGBAModel
}

// Bounds implements display.Drawer.
func (d *Dev) Bounds() image.Rectangle {
	return image.Rectangle{Max: image.Point{X: Width, Y: 1}}
}

// Draw implements display.Drawer.
func (d *Dev) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	r = r.Intersect(d.Bounds())
	srcR := src.Bounds()
	srcR.Min = srcR.Min.Add(sp)
	if dX := r.Dx(); dX < srcR.Dx() {
		srcR.Max.X = srcR.Min.X + dX
	}
	deltaX3 := 3 * (r.Min.X - srcR.Min.X)
	for sX := srcR.Min.X; sX < srcR.Max.X; sX++ {
		r16, g16, b16, _ := src.At(sX, srcR.Min.Y).RGBA()
		dX3 := 3*sX + deltaX3
		d.pixels[dX3] = byte(r16 >> 8)
		d.pixels[dX3+1] = byte(g16 >> 8)
		d.pixels[dX3+2] = byte(b16 >> 8)
	}
	_, err := d.refresh()
	return err
}

func (d *Dev) refresh() (int, error) {
	d.buf.Reset()
	if !d.color {
		d.plain()
	} else {
		_, _ = d.buf.WriteString("\r\033[0m")
		for i := 0; i < Width; i++ {
			if i%bno055.FullyCalibrated == 0 {
				_, _ = fmt.Fprintf(&d.buf, "\033[0m %s ", labels[i/bno055.FullyCalibrated])
			}
			c := color.NRGBA{d.pixels[3*i], d.pixels[3*i+1], d.pixels[3*i+2], 255}
			_, _ = io.WriteString(&d.buf, d.palette.Block(c))
		}
		_, _ = d.buf.WriteString("\033[0m ")
	}
	_, err := d.buf.WriteTo(d.w)
	return len(d.pixels), err
}

// plain prints the last calibration shown, one line per refresh.
func (d *Dev) plain() {
	for i, level := range [...]uint8{d.last.System, d.last.Gyro, d.last.Accel, d.last.Mag} {
		if i != 0 {
			_ = d.buf.WriteByte(' ')
		}
		_, _ = fmt.Fprintf(&d.buf, "%s:", labels[i])
		for j := uint8(0); j < bno055.FullyCalibrated; j++ {
			if j < level {
				_ = d.buf.WriteByte('#')
			} else {
				_ = d.buf.WriteByte('-')
			}
		}
	}
	_ = d.buf.WriteByte('\n')
}

var _ display.Drawer = &Dev{}
var _ fmt.Stringer = &Dev{}
