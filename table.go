// Copyright 2015 The astrogo Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fits

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// TableColumn describes one fixed-width ASCII TABLE column: its name
// (TTYPEn), FORTRAN format (TFORMn), optional physical unit (TUNITn)
// and its 1-based start column (TBCOLn).
type TableColumn struct {
	Name   string
	Format FormatDescriptor
	Unit   string
	TBCol  int
}

// TableData is the payload of an ASCII TABLE HDU: a fixed-width text
// grid, one row per RowWidth-byte line, columns placed at their TBCOLn
// offset with no inter-column padding.
type TableData struct {
	Columns []TableColumn
	Rows    [][]Value
}

// NewTableData lays out columns contiguously, deriving TBCOLn from a
// running sum of the preceding columns' widths. No inter-column
// padding is inserted.
func NewTableData(cols []TableColumn) *TableData {
	laid := make([]TableColumn, len(cols))
	col := 1
	for i, c := range cols {
		c.TBCol = col
		laid[i] = c
		col += colWidth(c.Format)
	}
	return &TableData{Columns: laid}
}

func colWidth(f FormatDescriptor) int {
	if f.Kind == 'A' {
		return f.Width
	}
	return f.Width
}

// RowWidth returns the fixed text width of one data row: the largest
// TBCOL-1+width over all columns.
func (t *TableData) RowWidth() int {
	w := 0
	for _, c := range t.Columns {
		end := c.TBCol - 1 + colWidth(c.Format)
		if end > w {
			w = end
		}
	}
	return w
}

// AppendRow validates and appends one row of column values.
func (t *TableData) AppendRow(vals []Value) error {
	if len(vals) != len(t.Columns) {
		return fmt.Errorf("fits: table row has %d values, want %d", len(vals), len(t.Columns))
	}
	t.Rows = append(t.Rows, vals)
	return nil
}

// EncodeRow renders one row to its fixed-width ASCII line of exactly
// RowWidth bytes, space-filled outside the cells; padding of the whole
// data section to blockSize is left to the caller.
func (t *TableData) EncodeRow(row []Value) ([]byte, error) {
	width := t.RowWidth()
	line := bytes.Repeat([]byte(" "), width)
	for i, c := range t.Columns {
		s, err := formatCell(c.Format, row[i])
		if err != nil {
			return nil, fmt.Errorf("fits: column %q: %w", c.Name, err)
		}
		start := c.TBCol - 1
		copy(line[start:start+len(s)], s)
	}
	return line, nil
}

func formatCell(f FormatDescriptor, v Value) (string, error) {
	switch f.Kind {
	case 'A':
		s := v.Str()
		if len(s) > f.Width {
			s = s[:f.Width]
		}
		return fmt.Sprintf("%-*s", f.Width, s), nil
	case 'I':
		return fmt.Sprintf("%*d", f.Width, v.Int()), nil
	case 'F':
		return fmt.Sprintf("%*.*f", f.Width, f.Decimals, v.Float()), nil
	case 'E', 'D':
		s := strconv.FormatFloat(v.Float(), 'E', f.Decimals, 64)
		if f.Kind == 'D' {
			s = strings.Replace(s, "E", "D", 1)
		}
		return fmt.Sprintf("%*s", f.Width, s), nil
	default:
		return "", &FormatKindError{Form: string(f.Kind)}
	}
}

// DecodeRow parses one fixed-width ASCII line into column values.
func DecodeRow(cols []TableColumn, line []byte) ([]Value, error) {
	vals := make([]Value, len(cols))
	for i, c := range cols {
		start := c.TBCol - 1
		end := start + colWidth(c.Format)
		if end > len(line) {
			return nil, fmt.Errorf("fits: row too short for column %q", c.Name)
		}
		field := strings.TrimSpace(string(line[start:end]))
		v, err := parseCell(c.Format, field)
		if err != nil {
			return nil, fmt.Errorf("fits: column %q: %w", c.Name, err)
		}
		vals[i] = v
	}
	return vals, nil
}

func parseCell(f FormatDescriptor, field string) (Value, error) {
	switch f.Kind {
	case 'A':
		return StringValue(field), nil
	case 'I':
		if field == "" {
			return IntegerValue(0), nil
		}
		n, err := strconv.ParseInt(field, 10, 64)
		if err != nil {
			return Value{}, err
		}
		return IntegerValue(n), nil
	case 'F', 'E', 'D':
		if field == "" {
			return FloatValue(0), nil
		}
		norm := strings.Replace(field, "D", "E", 1)
		x, err := strconv.ParseFloat(norm, 64)
		if err != nil {
			return Value{}, err
		}
		return FloatValue(x), nil
	default:
		return Value{}, &FormatKindError{Form: string(f.Kind)}
	}
}

// Serialize renders every row, padded to a blockSize multiple.
func (t *TableData) Serialize() ([]byte, error) {
	width := t.RowWidth()
	var buf bytes.Buffer
	for _, row := range t.Rows {
		line, err := t.EncodeRow(row)
		if err != nil {
			return nil, err
		}
		buf.Write(line)
		_ = width
	}
	pad := padBytes(buf.Len())
	if pad > 0 {
		buf.Write(bytes.Repeat([]byte(" "), pad))
	}
	return buf.Bytes(), nil
}

// ParseTableData reads nrows fixed-width rows from r.
func ParseTableData(r io.Reader, cols []TableColumn, nrows int) (*TableData, error) {
	width := (&TableData{Columns: cols}).RowWidth()
	t := &TableData{Columns: cols, Rows: make([][]Value, 0, nrows)}
	line := make([]byte, width)
	for i := 0; i < nrows; i++ {
		if _, err := io.ReadFull(r, line); err != nil {
			return nil, &TruncatedFileError{Expected: width * nrows, Got: width * i}
		}
		row, err := DecodeRow(cols, line)
		if err != nil {
			return nil, err
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}
