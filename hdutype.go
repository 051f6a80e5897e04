// Copyright 2015 The astrogo Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fits

import (
	"fmt"
	"strings"
)

// HDUType is the payload kind of a Header-Data Unit.
type HDUType int

const (
	ImageHDU HDUType = iota
	TableHDU
	BinTableHDU
)

func (t HDUType) String() string {
	switch t {
	case ImageHDU:
		return "IMAGE"
	case TableHDU:
		return "TABLE"
	case BinTableHDU:
		return "BINTABLE"
	default:
		return "UNKNOWN"
	}
}

// xtension returns the 8-character, space-padded XTENSION card value
// for this HDU kind (meaningless for a primary IMAGE HDU, which uses
// SIMPLE rather than XTENSION).
func (t HDUType) xtension() string {
	switch t {
	case ImageHDU:
		return fmt.Sprintf("%-8s", "IMAGE")
	case TableHDU:
		return fmt.Sprintf("%-8s", "TABLE")
	case BinTableHDU:
		return fmt.Sprintf("%-8s", "BINTABLE")
	default:
		return ""
	}
}

// ParseHDUType parses a case-insensitive, optionally space-padded
// HDU-type name such as an XTENSION card value.
func ParseHDUType(s string) (HDUType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "IMAGE":
		return ImageHDU, nil
	case "TABLE":
		return TableHDU, nil
	case "BINTABLE":
		return BinTableHDU, nil
	default:
		return 0, fmt.Errorf("fits: unrecognized HDU type %q", s)
	}
}
