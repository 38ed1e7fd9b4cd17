// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package attitude draws a BNO055 orientation sample as an attitude
// indicator: an artificial horizon banked by roll and shifted by pitch, a
// heading readout and one bar per calibrated subsystem.
//
// The result is a plain image.Image, ready to be saved as a PNG or sent to any
// periph display.Drawer.
package attitude

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"

	"github.com/GermanBionicSystems/bno055"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"periph.io/x/conn/v3/display"
)

// Sample is what gets drawn.
type Sample struct {
	Euler       bno055.Euler
	Calibration bno055.Calibration
}

// Opts holds the image size and text size.
type Opts struct {
	Width  int
	Height int
	// FontSize is the text size in points. Zero selects the built-in 7x13
	// bitmap font.
	FontSize float64
}

// DefaultOpts is a QVGA image with 14 points text.
var DefaultOpts = Opts{Width: 320, Height: 240, FontSize: 14}

// Colors used by the indicator.
var (
	Sky        = color.NRGBA{0x3A, 0x7B, 0xD5, 0xFF}
	Ground     = color.NRGBA{0x8B, 0x5A, 0x2B, 0xFF}
	Background = color.NRGBA{0x10, 0x10, 0x10, 0xFF}
	Marker     = color.NRGBA{0xFF, 0xD0, 0x00, 0xFF}
)

// margin is the space around the horizon disc in pixels, used by the text.
const margin = 28

// Renderer draws samples. It is not safe for concurrent use.
type Renderer struct {
	opts Opts
	face font.Face
}

// New returns a Renderer.
func New(opts *Opts) (*Renderer, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	if opts.Width < 2*margin+16 || opts.Height < 2*margin+16 {
		return nil, fmt.Errorf("attitude: image %dx%d too small", opts.Width, opts.Height)
	}
	r := &Renderer{opts: *opts, face: basicfont.Face7x13}
	if opts.FontSize > 0 {
		f, err := truetype.Parse(goregular.TTF)
		if err != nil {
			return nil, fmt.Errorf("attitude: %w", err)
		}
		r.face = truetype.NewFace(f, &truetype.Options{Size: opts.FontSize})
	}
	return r, nil
}

// Bounds returns the size of the rendered images.
func (r *Renderer) Bounds() image.Rectangle {
	return image.Rect(0, 0, r.opts.Width, r.opts.Height)
}

// Render draws s.
func (r *Renderer) Render(s Sample) image.Image {
	return r.context(s).Image()
}

// WritePNG draws s and encodes it as PNG.
func (r *Renderer) WritePNG(w io.Writer, s Sample) error {
	return r.context(s).EncodePNG(w)
}

// Draw draws s on a display.
func (r *Renderer) Draw(dst display.Drawer, s Sample) error {
	return dst.Draw(dst.Bounds(), r.Render(s), image.Point{})
}

// Horizon returns the center and radius of the horizon disc.
func (r *Renderer) Horizon() (cx, cy, radius float64) {
	w, h := float64(r.opts.Width), float64(r.opts.Height)
	return w / 2, h / 2, math.Min(w, h)/2 - margin
}

func (r *Renderer) context(s Sample) *gg.Context {
	dc := gg.NewContext(r.opts.Width, r.opts.Height)
	dc.SetColor(Background)
	dc.Clear()
	dc.SetFontFace(r.face)

	cx, cy, radius := r.Horizon()
	e := s.Euler

	// The horizon moves down when the nose goes up, one radius per 90°.
	dc.Push()
	dc.DrawCircle(cx, cy, radius)
	dc.Clip()
	dc.Translate(cx, cy)
	dc.Rotate(gg.Radians(-e.Roll))
	shift := e.Pitch / 90 * radius
	dc.SetColor(Sky)
	dc.DrawRectangle(-2*radius, -3*radius, 4*radius, 3*radius+shift)
	dc.Fill()
	dc.SetColor(Ground)
	dc.DrawRectangle(-2*radius, shift, 4*radius, 3*radius)
	dc.Fill()
	dc.SetRGB(1, 1, 1)
	dc.SetLineWidth(2)
	dc.DrawLine(-2*radius, shift, 2*radius, shift)
	dc.Stroke()
	dc.SetLineWidth(1)
	for p := -60.0; p <= 60; p += 10 {
		if p == 0 {
			continue
		}
		y := shift - p/90*radius
		half := radius / 12
		if int(p)%20 == 0 {
			half = radius / 6
		}
		dc.DrawLine(-half, y, half, y)
	}
	dc.Stroke()
	dc.Pop()
	dc.ResetClip()

	dc.SetRGB(1, 1, 1)
	dc.SetLineWidth(2)
	dc.DrawCircle(cx, cy, radius)
	dc.Stroke()

	// Fixed aircraft symbol.
	dc.SetColor(Marker)
	dc.SetLineWidth(3)
	dc.DrawLine(cx-radius/2, cy, cx-radius/8, cy)
	dc.DrawLine(cx+radius/8, cy, cx+radius/2, cy)
	dc.Stroke()
	dc.DrawCircle(cx, cy, 3)
	dc.Fill()

	dc.SetRGB(1, 1, 1)
	dc.DrawStringAnchored(fmt.Sprintf("HDG %03.0f", math.Mod(e.Heading+360, 360)), cx, margin/2, 0.5, 0.5)
	dc.DrawStringAnchored(fmt.Sprintf("R %+.1f  P %+.1f", e.Roll, e.Pitch), 4, float64(r.opts.Height)-margin/2, 0, 0.5)
	r.calibration(dc, s.Calibration)
	return dc
}

// calibration draws four bars in the top right corner, full height at level 3.
func (r *Renderer) calibration(dc *gg.Context, c bno055.Calibration) {
	const barW, gap, maxH = 6.0, 3.0, margin - 8.0
	x := float64(r.opts.Width) - 4*(barW+gap) - 4
	for _, level := range [...]uint8{c.System, c.Gyro, c.Accel, c.Mag} {
		if level > bno055.FullyCalibrated {
			level = bno055.FullyCalibrated
		}
		dc.SetRGB(0.3, 0.3, 0.3)
		dc.DrawRectangle(x, 4, barW, maxH)
		dc.Fill()
		if level > 0 {
			h := maxH * float64(level) / bno055.FullyCalibrated
			if level == bno055.FullyCalibrated {
				dc.SetRGB(0, 0.75, 0)
			} else {
				dc.SetRGB(1, 0.6, 0)
			}
			dc.DrawRectangle(x, 4+maxH-h, barW, h)
			dc.Fill()
		}
		x += barW + gap
	}
}
