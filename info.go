// Copyright 2015 The astrogo Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fits

import (
	"fmt"
	"strings"
)

// Info renders a human-readable one-line summary of an HDU: its kind,
// shape, and card count (END included).
func Info(hdu *HDU) string {
	var b strings.Builder
	switch d := hdu.Data.(type) {
	case *ImageData:
		dims := make([]string, len(d.Axes))
		for i, n := range d.Axes {
			dims[i] = fmt.Sprintf("%d", n)
		}
		fmt.Fprintf(&b, "IMAGE  bitpix=%d  axes=[%s]  cards=%d",
			d.Elem.Bitpix(), strings.Join(dims, ","), hdu.Header.Len())
	case *TableData:
		fmt.Fprintf(&b, "TABLE  cols=%d  rows=%d  rowwidth=%d  cards=%d",
			len(d.Columns), len(d.Rows), d.RowWidth(), hdu.Header.Len())
	case *BinTableData:
		fmt.Fprintf(&b, "BINTABLE  cols=%d  rows=%d  rowsize=%d  cards=%d",
			len(d.Columns), d.NRows(), d.RowSize, hdu.Header.Len())
	default:
		fmt.Fprintf(&b, "HDU  cards=%d", hdu.Header.Len())
	}
	if name, ok := strCard(hdu.Header, "EXTNAME"); ok {
		fmt.Fprintf(&b, "  extname=%q", name)
	}
	return b.String()
}
