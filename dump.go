// Copyright 2015 The astrogo Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fits

import (
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// Record is one raw, fixed-size slice of a FITS file as enumerated by
// RecordDump: an 80-byte card record within a header section, or a
// 2880-byte block within a data section.
type Record struct {
	Index  int
	Offset int64
	Data   []byte
}

// RecordDump enumerates every header card record and every data block
// of name, in file order, without interpreting their contents beyond
// what is needed to locate section boundaries.
func RecordDump(name string) ([]Record, error) {
	raw, err := os.ReadFile(name)
	if err != nil {
		return nil, errors.Wrapf(err, "fits: read %s", name)
	}

	var records []Record
	r := bytes.NewReader(raw)
	offset := int64(0)
	idx := 0
	primary := true

	for r.Len() > 0 {
		hdrStart := offset
		h, hdrBytes, err := ParseHeaderBlocks(r, ImageHDU)
		if err != nil {
			break
		}
		nCards := hdrBytes / cardSize
		for c := 0; c < nCards; c++ {
			start := int(hdrStart) + c*cardSize
			records = append(records, Record{Index: idx, Offset: int64(start), Data: raw[start : start+cardSize]})
			idx++
		}
		offset += int64(hdrBytes)

		var htype HDUType
		if primary {
			htype = ImageHDU
		} else {
			xt, ok := strCard(h, "XTENSION")
			if !ok {
				break
			}
			htype, err = ParseHDUType(strings.TrimSpace(xt))
			if err != nil {
				break
			}
		}
		h.htype = htype

		var dataLen int
		switch htype {
		case ImageHDU:
			img, err := decodeImageLayout(h)
			if err != nil {
				break
			}
			dataLen = img.Elem.Size() * img.NElements()
		case TableHDU:
			cols, nrows, err := decodeTableLayout(h)
			if err != nil {
				break
			}
			dataLen = (&TableData{Columns: cols}).RowWidth() * nrows
		case BinTableHDU:
			cols, nrows, err := decodeBinTableLayout(h)
			if err != nil {
				break
			}
			bt, err := NewBinTableData(cols, nrows)
			if err != nil {
				break
			}
			dataLen = len(bt.Raw)
		}

		total := dataLen + padBytes(dataLen)
		if total > 0 {
			nblocks := total / blockSize
			for b := 0; b < nblocks; b++ {
				start := offset + int64(b*blockSize)
				records = append(records, Record{Index: idx, Offset: start, Data: raw[start : start+blockSize]})
				idx++
			}
			if _, err := r.Seek(int64(total), io.SeekCurrent); err != nil {
				break
			}
			offset += int64(total)
		}
		primary = false
	}

	return records, nil
}
