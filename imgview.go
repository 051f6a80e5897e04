// Copyright 2015 The astrogo Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fits

import (
	stdimage "image"
	"image/color"
)

// View returns a read-only standard-library image.Image over already
// decoded pixel data, for interoperability with Go imaging code. It
// supports the 2-D, BITPIX ∈ {8,16,32,64,-32,-64} case; other shapes
// return nil.
func (d *ImageData) View() stdimage.Image {
	if len(d.Axes) != 2 {
		return nil
	}
	w, h := d.Axes[0], d.Axes[1]
	rect := stdimage.Rect(0, 0, w, h)
	switch d.Elem {
	case Int8:
		return &stdimage.Gray{Pix: d.Raw, Stride: w, Rect: rect}
	case Int16:
		return &stdimage.Gray16{Pix: d.Raw, Stride: 2 * w, Rect: rect}
	case Int32:
		return &stdimage.RGBA{Pix: d.Raw, Stride: 4 * w, Rect: rect}
	case Int64:
		return &stdimage.RGBA64{Pix: d.Raw, Stride: 8 * w, Rect: rect}
	case Float32, Float64:
		buf := make([]float64, d.NElements())
		if err := d.ReadFloats(buf); err != nil {
			return nil
		}
		return &floatImage{pix: buf, rect: rect}
	default:
		return nil
	}
}

// floatImage adapts decoded float pixels to image.Image, clamping
// into an 8-bit gray level.
type floatImage struct {
	pix  []float64
	rect stdimage.Rectangle
}

func (p *floatImage) ColorModel() color.Model      { return color.GrayModel }
func (p *floatImage) Bounds() stdimage.Rectangle   { return p.rect }

func (p *floatImage) At(x, y int) color.Color {
	w := p.rect.Dx()
	idx := (y-p.rect.Min.Y)*w + (x - p.rect.Min.X)
	if idx < 0 || idx >= len(p.pix) {
		return color.Gray{Y: 0}
	}
	v := p.pix[idx]
	switch {
	case v < 0:
		v = 0
	case v > 255:
		v = 255
	}
	return color.Gray{Y: uint8(v)}
}
