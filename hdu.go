// Copyright 2015 The astrogo Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fits

import (
	"fmt"
)

// DataObject is implemented by the three payload kinds an HDU can
// carry: *ImageData, *TableData and *BinTableData.
type DataObject interface {
	isDataObject()
}

func (*ImageData) isDataObject()    {}
func (*TableData) isDataObject()    {}
func (*BinTableData) isDataObject() {}

// HDU is one Header-Data Unit: a Header plus its typed payload.
type HDU struct {
	Primary bool
	Header  *Header
	Data    DataObject
}

// NewImageHDU builds an IMAGE HDU, deriving its mandatory cards from
// img. primary selects SIMPLE (true) vs. XTENSION=IMAGE (false).
func NewImageHDU(primary bool, img *ImageData) *HDU {
	return &HDU{Primary: primary, Header: assembleImageHeader(primary, img), Data: img}
}

// NewTableHDU builds an ASCII TABLE HDU from tbl.
func NewTableHDU(tbl *TableData) *HDU {
	return &HDU{Header: assembleTableHeader(tbl), Data: tbl}
}

// NewBinTableHDU builds a BINTABLE HDU from bt.
func NewBinTableHDU(bt *BinTableData) *HDU {
	return &HDU{Header: assembleBinTableHeader(bt), Data: bt}
}

func assembleImageHeader(primary bool, img *ImageData) *Header {
	h := newHeader(ImageHDU)
	var cards []Card
	if primary {
		cards = append(cards, NewCard("SIMPLE", LogicalValue(true), "conforms to FITS standard"))
	} else {
		cards = append(cards, NewCard("XTENSION", StringValue("IMAGE"), "IMAGE extension"))
	}
	cards = append(cards, NewCard("BITPIX", IntegerValue(int64(img.Elem.Bitpix())), "number of bits per data pixel"))
	cards = append(cards, NewCard("NAXIS", IntegerValue(int64(len(img.Axes))), "number of data axes"))
	for i, n := range img.Axes {
		cards = append(cards, NewCard(fmt.Sprintf("NAXIS%d", i+1), IntegerValue(int64(n)), fmt.Sprintf("length of data axis %d", i+1)))
	}
	if primary {
		cards = append(cards, NewCard("EXTEND", LogicalValue(true), "may contain extensions"))
	} else {
		cards = append(cards, NewCard("PCOUNT", IntegerValue(0), "number of parameters"))
		cards = append(cards, NewCard("GCOUNT", IntegerValue(1), "number of groups"))
	}
	if img.BScale {
		cards = append(cards, NewCard("BZERO", FloatValue(img.Zero), "offset data range"))
		cards = append(cards, NewCard("BSCALE", FloatValue(img.Scale), "data scaling factor"))
	}
	h.Prepend(cards...)
	return h
}

func assembleTableHeader(t *TableData) *Header {
	h := newHeader(TableHDU)
	width := t.RowWidth()
	cards := []Card{
		NewCard("XTENSION", StringValue("TABLE"), "ASCII table extension"),
		NewCard("BITPIX", IntegerValue(8), "8-bit bytes"),
		NewCard("NAXIS", IntegerValue(2), "2-dimensional ASCII table"),
		NewCard("NAXIS1", IntegerValue(int64(width)), "width of table in characters"),
		NewCard("NAXIS2", IntegerValue(int64(len(t.Rows))), "number of rows in table"),
		NewCard("PCOUNT", IntegerValue(0), "size of special data area"),
		NewCard("GCOUNT", IntegerValue(1), "one data group"),
		NewCard("TFIELDS", IntegerValue(int64(len(t.Columns))), "number of fields in each row"),
	}
	for i, c := range t.Columns {
		n := i + 1
		cards = append(cards, NewCard(fmt.Sprintf("TTYPE%d", n), StringValue(c.Name), ""))
		cards = append(cards, NewCard(fmt.Sprintf("TBCOL%d", n), IntegerValue(int64(c.TBCol)), ""))
		cards = append(cards, NewCard(fmt.Sprintf("TFORM%d", n), StringValue(c.Format.Render()), ""))
		if c.Unit != "" {
			cards = append(cards, NewCard(fmt.Sprintf("TUNIT%d", n), StringValue(c.Unit), ""))
		}
	}
	h.Prepend(cards...)
	return h
}

func assembleBinTableHeader(t *BinTableData) *Header {
	h := newHeader(BinTableHDU)
	cards := []Card{
		NewCard("XTENSION", StringValue("BINTABLE"), "binary table extension"),
		NewCard("BITPIX", IntegerValue(8), "8-bit bytes"),
		NewCard("NAXIS", IntegerValue(2), "2-dimensional binary table"),
		NewCard("NAXIS1", IntegerValue(int64(t.RowSize)), "width of table in bytes"),
		NewCard("NAXIS2", IntegerValue(int64(t.NRows())), "number of rows in table"),
		NewCard("PCOUNT", IntegerValue(0), "size of special data area"),
		NewCard("GCOUNT", IntegerValue(1), "one data group"),
		NewCard("TFIELDS", IntegerValue(int64(len(t.Columns))), "number of fields in each row"),
	}
	for i, c := range t.Columns {
		n := i + 1
		cards = append(cards, NewCard(fmt.Sprintf("TTYPE%d", n), StringValue(c.Name), ""))
		cards = append(cards, NewCard(fmt.Sprintf("TFORM%d", n), StringValue(c.Format.Render()), ""))
		if c.Unit != "" {
			cards = append(cards, NewCard(fmt.Sprintf("TUNIT%d", n), StringValue(c.Unit), ""))
		}
	}
	h.Prepend(cards...)
	return h
}

// dataSize returns the unpadded byte length of an HDU's data section.
func dataSize(hdu *HDU) (int, error) {
	switch d := hdu.Data.(type) {
	case *ImageData:
		return len(d.Raw), nil
	case *TableData:
		return d.RowWidth() * len(d.Rows), nil
	case *BinTableData:
		return len(d.Raw), nil
	default:
		return 0, fmt.Errorf("fits: unknown data object type %T", hdu.Data)
	}
}

// serializeData renders an HDU's data section, block-padded.
func serializeData(hdu *HDU) ([]byte, error) {
	switch d := hdu.Data.(type) {
	case *ImageData:
		pad := padBytes(len(d.Raw))
		if pad == 0 {
			return d.Raw, nil
		}
		out := make([]byte, len(d.Raw)+pad)
		copy(out, d.Raw)
		return out, nil
	case *TableData:
		return d.Serialize()
	case *BinTableData:
		return d.Serialize(), nil
	default:
		return nil, fmt.Errorf("fits: unknown data object type %T", hdu.Data)
	}
}

// intCard returns the integer value of a mandatory card, or an error
// naming the HDU-consistency failure.
func intCard(h *Header, key string) (int64, error) {
	c, ok := h.Get(key)
	if !ok || c.Value.Kind != KindInteger {
		return 0, &HeaderConsistencyError{Detail: fmt.Sprintf("missing or non-integer %s", key)}
	}
	return c.Value.Int(), nil
}

func strCard(h *Header, key string) (string, bool) {
	c, ok := h.Get(key)
	if !ok {
		return "", false
	}
	return c.Value.Str(), true
}

// decodeImageLayout reads BITPIX/NAXISn/BZERO/BSCALE from h and
// returns an ImageData shell (Raw left nil; the caller fills it from
// the file's data section).
func decodeImageLayout(h *Header) (*ImageData, error) {
	bitpix, err := intCard(h, "BITPIX")
	if err != nil {
		return nil, err
	}
	elem, err := ElementTypeFromBitpix(int(bitpix))
	if err != nil {
		return nil, err
	}
	naxis, err := intCard(h, "NAXIS")
	if err != nil {
		return nil, err
	}
	axes := make([]int, naxis)
	for i := range axes {
		n, err := intCard(h, fmt.Sprintf("NAXIS%d", i+1))
		if err != nil {
			return nil, err
		}
		axes[i] = int(n)
	}
	img := &ImageData{Elem: elem, Axes: axes, Scale: 1}
	if c, ok := h.Get("BZERO"); ok {
		img.SetZeroOffset(c.Value.Float(), img.Scale)
	}
	if c, ok := h.Get("BSCALE"); ok {
		img.SetZeroOffset(img.Zero, c.Value.Float())
	}
	return img, nil
}

// decodeTableLayout reads TFIELDS/TTYPEn/TFORMn/TBCOLn/TUNITn and
// NAXIS2 from h.
func decodeTableLayout(h *Header) ([]TableColumn, int, error) {
	tfields, err := intCard(h, "TFIELDS")
	if err != nil {
		return nil, 0, err
	}
	nrows, err := intCard(h, "NAXIS2")
	if err != nil {
		return nil, 0, err
	}
	cols := make([]TableColumn, tfields)
	for i := range cols {
		n := i + 1
		name, _ := strCard(h, fmt.Sprintf("TTYPE%d", n))
		formStr, ok := strCard(h, fmt.Sprintf("TFORM%d", n))
		if !ok {
			return nil, 0, &HeaderConsistencyError{Detail: fmt.Sprintf("missing TFORM%d", n)}
		}
		form, err := ParseTForm(formStr, TableHDU)
		if err != nil {
			return nil, 0, err
		}
		tbcol, err := intCard(h, fmt.Sprintf("TBCOL%d", n))
		if err != nil {
			return nil, 0, err
		}
		unit, _ := strCard(h, fmt.Sprintf("TUNIT%d", n))
		cols[i] = TableColumn{Name: name, Format: form, Unit: unit, TBCol: int(tbcol)}
	}
	return cols, int(nrows), nil
}

// decodeBinTableLayout reads TFIELDS/TTYPEn/TFORMn/TUNITn and NAXIS2
// from h.
func decodeBinTableLayout(h *Header) ([]BinColumn, int, error) {
	tfields, err := intCard(h, "TFIELDS")
	if err != nil {
		return nil, 0, err
	}
	nrows, err := intCard(h, "NAXIS2")
	if err != nil {
		return nil, 0, err
	}
	cols := make([]BinColumn, tfields)
	for i := range cols {
		n := i + 1
		name, _ := strCard(h, fmt.Sprintf("TTYPE%d", n))
		formStr, ok := strCard(h, fmt.Sprintf("TFORM%d", n))
		if !ok {
			return nil, 0, &HeaderConsistencyError{Detail: fmt.Sprintf("missing TFORM%d", n)}
		}
		form, err := ParseTForm(formStr, BinTableHDU)
		if err != nil {
			return nil, 0, err
		}
		unit, _ := strCard(h, fmt.Sprintf("TUNIT%d", n))
		cols[i] = BinColumn{Name: name, Format: form, Unit: unit}
	}
	return cols, int(nrows), nil
}
