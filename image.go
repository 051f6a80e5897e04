// Copyright 2015 The astrogo Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fits

import (
	"bytes"
	"math"

	"github.com/gonuts/binary"
)

// ElementType is the Go-level pixel type of an IMAGE HDU, derived
// from BITPIX.
type ElementType int

const (
	Int8 ElementType = iota
	Int16
	Int32
	Int64
	Float32
	Float64
)

// Bitpix returns the FITS BITPIX value for this element type.
func (e ElementType) Bitpix() int {
	switch e {
	case Int8:
		return 8
	case Int16:
		return 16
	case Int32:
		return 32
	case Int64:
		return 64
	case Float32:
		return -32
	case Float64:
		return -64
	default:
		return 0
	}
}

// Size returns the storage width, in bytes, of one element.
func (e ElementType) Size() int {
	switch e {
	case Int8:
		return 1
	case Int16:
		return 2
	case Int32, Float32:
		return 4
	case Int64, Float64:
		return 8
	default:
		return 0
	}
}

// ElementTypeFromBitpix maps a BITPIX card value to its element type.
func ElementTypeFromBitpix(bitpix int) (ElementType, error) {
	switch bitpix {
	case 8:
		return Int8, nil
	case 16:
		return Int16, nil
	case 32:
		return Int32, nil
	case 64:
		return Int64, nil
	case -32:
		return Float32, nil
	case -64:
		return Float64, nil
	default:
		return 0, &BitpixError{Bitpix: bitpix}
	}
}

// ImageData is the payload of an IMAGE HDU: an n-dimensional array of
// integer or floating-point pixels stored big-endian and row-major,
// with an optional BZERO/BSCALE affine transform used to represent
// unsigned integer pixel ranges through signed storage.
type ImageData struct {
	Elem   ElementType
	Axes   []int // NAXIS1..NAXISn, fastest-varying first
	Raw    []byte
	BZero  float64
	BScale bool // true if BSCALE/BZERO are present and != (0,1)
	Zero   float64
	Scale  float64
}

// NewImageData allocates a zero-filled ImageData for the given pixel
// type and axis lengths.
func NewImageData(elem ElementType, axes []int) *ImageData {
	n := nelements(axes)
	return &ImageData{
		Elem:  elem,
		Axes:  append([]int{}, axes...),
		Raw:   make([]byte, n*elem.Size()),
		Scale: 1,
	}
}

func nelements(axes []int) int {
	if len(axes) == 0 {
		return 0
	}
	n := 1
	for _, a := range axes {
		n *= a
	}
	return n
}

// NElements returns the total pixel count (product of Axes).
func (d *ImageData) NElements() int { return nelements(d.Axes) }

// SetZeroOffset installs a BZERO/BSCALE pair. Passing zero=0,scale=1
// clears the transform (ReadInts/WriteInts/ReadFloats/WriteFloats
// then pass values through unchanged), matching the "absent" card
// state.
func (d *ImageData) SetZeroOffset(zero, scale float64) {
	d.Zero = zero
	if scale == 0 {
		scale = 1
	}
	d.Scale = scale
	d.BScale = zero != 0 || scale != 1
}

// ReadInts decodes the raw buffer into physical integer values,
// applying the BZERO/BSCALE transform (physical = stored*scale+zero).
// out must have length NElements().
func (d *ImageData) ReadInts(out []int64) error {
	dec := binary.NewDecoder(bytes.NewReader(d.Raw))
	dec.Order = binary.BigEndian
	for i := range out {
		stored, err := decodeIntElem(dec, d.Elem)
		if err != nil {
			return err
		}
		if d.BScale {
			out[i] = int64(math.Round(float64(stored)*d.Scale + d.Zero))
		} else {
			out[i] = stored
		}
	}
	return nil
}

// WriteInts encodes physical integer values into the raw buffer,
// removing the BZERO/BSCALE transform (stored = (physical-zero)/scale).
func (d *ImageData) WriteInts(in []int64) error {
	var buf bytes.Buffer
	enc := binary.NewEncoder(&buf)
	enc.Order = binary.BigEndian
	for _, v := range in {
		stored := v
		if d.BScale {
			stored = int64(math.Round((float64(v) - d.Zero) / d.Scale))
		}
		if err := encodeIntElem(enc, d.Elem, stored); err != nil {
			return err
		}
	}
	d.Raw = buf.Bytes()
	return nil
}

// ReadFloats decodes the raw buffer into physical float64 values.
func (d *ImageData) ReadFloats(out []float64) error {
	dec := binary.NewDecoder(bytes.NewReader(d.Raw))
	dec.Order = binary.BigEndian
	for i := range out {
		switch d.Elem {
		case Float32:
			var v float32
			if err := dec.Decode(&v); err != nil {
				return err
			}
			out[i] = float64(v)
		case Float64:
			var v float64
			if err := dec.Decode(&v); err != nil {
				return err
			}
			out[i] = v
		default:
			var v int64
			var err error
			v, err = decodeIntElem(dec, d.Elem)
			if err != nil {
				return err
			}
			out[i] = float64(v)
		}
		if d.BScale {
			out[i] = out[i]*d.Scale + d.Zero
		}
	}
	return nil
}

// WriteFloats encodes physical float64 values into the raw buffer.
func (d *ImageData) WriteFloats(in []float64) error {
	var buf bytes.Buffer
	enc := binary.NewEncoder(&buf)
	enc.Order = binary.BigEndian
	for _, v := range in {
		stored := v
		if d.BScale {
			stored = (v - d.Zero) / d.Scale
		}
		switch d.Elem {
		case Float32:
			f := float32(stored)
			if err := enc.Encode(&f); err != nil {
				return err
			}
		case Float64:
			if err := enc.Encode(&stored); err != nil {
				return err
			}
		default:
			if err := encodeIntElem(enc, d.Elem, int64(math.Round(stored))); err != nil {
				return err
			}
		}
	}
	d.Raw = buf.Bytes()
	return nil
}

func decodeIntElem(dec *binary.Decoder, elem ElementType) (int64, error) {
	switch elem {
	case Int8:
		var v int8
		err := dec.Decode(&v)
		return int64(v), err
	case Int16:
		var v int16
		err := dec.Decode(&v)
		return int64(v), err
	case Int32:
		var v int32
		err := dec.Decode(&v)
		return int64(v), err
	case Int64:
		var v int64
		err := dec.Decode(&v)
		return v, err
	default:
		return 0, &BitpixError{Bitpix: elem.Bitpix()}
	}
}

func encodeIntElem(enc *binary.Encoder, elem ElementType, v int64) error {
	switch elem {
	case Int8:
		x := int8(v)
		return enc.Encode(&x)
	case Int16:
		x := int16(v)
		return enc.Encode(&x)
	case Int32:
		x := int32(v)
		return enc.Encode(&x)
	case Int64:
		return enc.Encode(&v)
	default:
		return &BitpixError{Bitpix: elem.Bitpix()}
	}
}
