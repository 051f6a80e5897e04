// Copyright 2015 The astrogo Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fits

import (
	"bytes"
	"fmt"

	"github.com/gonuts/binary"
)

// BinColumn describes one packed BINTABLE column: its name (TTYPEn),
// FORTRAN repeat-count format (TFORMn), and optional unit (TUNITn).
// Variable-length array ('P'/'Q' heap) columns are out of scope.
type BinColumn struct {
	Name   string
	Format FormatDescriptor
	Unit   string

	offset int // byte offset within a row, computed by NewBinTableData
}

// BinTableData is the payload of a BINTABLE HDU: NAXIS2 fixed-size
// binary rows, each the concatenation of its columns' big-endian
// encodings, with no heap (PCOUNT is always 0).
type BinTableData struct {
	Columns []BinColumn
	RowSize int
	Raw     []byte
}

// NewBinTableData lays out columns contiguously within a row and
// allocates a zero-filled buffer for nrows rows.
func NewBinTableData(cols []BinColumn, nrows int) (*BinTableData, error) {
	laid := make([]BinColumn, len(cols))
	off := 0
	for i, c := range cols {
		elemsz, nelem, err := binElemBytes(c.Format.Kind, c.Format.Repeat)
		if err != nil {
			return nil, fmt.Errorf("fits: column %q: %w", c.Name, err)
		}
		c.offset = off
		laid[i] = c
		off += elemsz * nelem
	}
	return &BinTableData{Columns: laid, RowSize: off, Raw: make([]byte, off*nrows)}, nil
}

// NRows returns the number of rows currently backed by Raw.
func (t *BinTableData) NRows() int {
	if t.RowSize == 0 {
		return 0
	}
	return len(t.Raw) / t.RowSize
}

func (t *BinTableData) columnByIndex(col int) (BinColumn, error) {
	if col < 0 || col >= len(t.Columns) {
		return BinColumn{}, fmt.Errorf("fits: column index %d out of range", col)
	}
	return t.Columns[col], nil
}

// ReadColumnInts decodes an integer-kinded column ('B','I','J','K')
// across all rows into out, which must have length NRows().
func (t *BinTableData) ReadColumnInts(col int, out []int64) error {
	c, err := t.columnByIndex(col)
	if err != nil {
		return err
	}
	for row := range out {
		base := row*t.RowSize + c.offset
		dec := binary.NewDecoder(bytes.NewReader(t.Raw[base:]))
		dec.Order = binary.BigEndian
		v, err := decodeBinInt(dec, c.Format.Kind)
		if err != nil {
			return err
		}
		out[row] = v
	}
	return nil
}

// WriteColumnInts encodes an integer-kinded column across all rows.
func (t *BinTableData) WriteColumnInts(col int, in []int64) error {
	c, err := t.columnByIndex(col)
	if err != nil {
		return err
	}
	for row, v := range in {
		base := row*t.RowSize + c.offset
		var buf bytes.Buffer
		enc := binary.NewEncoder(&buf)
		enc.Order = binary.BigEndian
		if err := encodeBinInt(enc, c.Format.Kind, v); err != nil {
			return err
		}
		copy(t.Raw[base:], buf.Bytes())
	}
	return nil
}

// ReadColumnFloats decodes a floating-point column ('E','D') across
// all rows into out.
func (t *BinTableData) ReadColumnFloats(col int, out []float64) error {
	c, err := t.columnByIndex(col)
	if err != nil {
		return err
	}
	for row := range out {
		base := row*t.RowSize + c.offset
		dec := binary.NewDecoder(bytes.NewReader(t.Raw[base:]))
		dec.Order = binary.BigEndian
		switch c.Format.Kind {
		case 'E':
			var v float32
			if err := dec.Decode(&v); err != nil {
				return err
			}
			out[row] = float64(v)
		case 'D':
			var v float64
			if err := dec.Decode(&v); err != nil {
				return err
			}
			out[row] = v
		default:
			return &FormatKindError{Form: string(c.Format.Kind)}
		}
	}
	return nil
}

// WriteColumnFloats encodes a floating-point column across all rows.
func (t *BinTableData) WriteColumnFloats(col int, in []float64) error {
	c, err := t.columnByIndex(col)
	if err != nil {
		return err
	}
	for row, v := range in {
		base := row*t.RowSize + c.offset
		var buf bytes.Buffer
		enc := binary.NewEncoder(&buf)
		enc.Order = binary.BigEndian
		switch c.Format.Kind {
		case 'E':
			f := float32(v)
			if err := enc.Encode(&f); err != nil {
				return err
			}
		case 'D':
			if err := enc.Encode(&v); err != nil {
				return err
			}
		default:
			return &FormatKindError{Form: string(c.Format.Kind)}
		}
		copy(t.Raw[base:], buf.Bytes())
	}
	return nil
}

// ReadColumnString decodes an 'A' column for one row.
func (t *BinTableData) ReadColumnString(col, row int) (string, error) {
	c, err := t.columnByIndex(col)
	if err != nil {
		return "", err
	}
	if c.Format.Kind != 'A' {
		return "", &FormatKindError{Form: string(c.Format.Kind)}
	}
	base := row*t.RowSize + c.offset
	n := c.Format.Repeat
	return string(bytes.TrimRight(t.Raw[base:base+n], "\x00 ")), nil
}

// WriteColumnString encodes an 'A' column for one row.
func (t *BinTableData) WriteColumnString(col, row int, s string) error {
	c, err := t.columnByIndex(col)
	if err != nil {
		return err
	}
	if c.Format.Kind != 'A' {
		return &FormatKindError{Form: string(c.Format.Kind)}
	}
	base := row*t.RowSize + c.offset
	n := c.Format.Repeat
	field := make([]byte, n)
	for i := range field {
		field[i] = ' '
	}
	copy(field, s)
	copy(t.Raw[base:base+n], field)
	return nil
}

// ReadColumnBools decodes an 'L' column across all rows.
func (t *BinTableData) ReadColumnBools(col int, out []bool) error {
	c, err := t.columnByIndex(col)
	if err != nil {
		return err
	}
	if c.Format.Kind != 'L' {
		return &FormatKindError{Form: string(c.Format.Kind)}
	}
	for row := range out {
		base := row*t.RowSize + c.offset
		out[row] = t.Raw[base] == 'T'
	}
	return nil
}

// WriteColumnBools encodes an 'L' column across all rows.
func (t *BinTableData) WriteColumnBools(col int, in []bool) error {
	c, err := t.columnByIndex(col)
	if err != nil {
		return err
	}
	if c.Format.Kind != 'L' {
		return &FormatKindError{Form: string(c.Format.Kind)}
	}
	for row, v := range in {
		base := row*t.RowSize + c.offset
		if v {
			t.Raw[base] = 'T'
		} else {
			t.Raw[base] = 'F'
		}
	}
	return nil
}

func decodeBinInt(dec *binary.Decoder, kind byte) (int64, error) {
	switch kind {
	case 'B':
		var v byte
		err := dec.Decode(&v)
		return int64(v), err
	case 'I':
		var v int16
		err := dec.Decode(&v)
		return int64(v), err
	case 'J':
		var v int32
		err := dec.Decode(&v)
		return int64(v), err
	case 'K':
		var v int64
		err := dec.Decode(&v)
		return v, err
	default:
		return 0, &FormatKindError{Form: string(kind)}
	}
}

func encodeBinInt(enc *binary.Encoder, kind byte, v int64) error {
	switch kind {
	case 'B':
		x := byte(v)
		return enc.Encode(&x)
	case 'I':
		x := int16(v)
		return enc.Encode(&x)
	case 'J':
		x := int32(v)
		return enc.Encode(&x)
	case 'K':
		return enc.Encode(&v)
	default:
		return &FormatKindError{Form: string(kind)}
	}
}

// Serialize returns the raw row buffer padded to a blockSize multiple.
func (t *BinTableData) Serialize() []byte {
	pad := padBytes(len(t.Raw))
	if pad == 0 {
		return t.Raw
	}
	out := make([]byte, len(t.Raw)+pad)
	copy(out, t.Raw)
	return out
}
