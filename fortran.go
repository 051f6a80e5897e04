// Copyright 2015 The astrogo Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fits

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatDescriptor is the parsed form of a TFORM/TDISP FORTRAN-style
// format string, e.g. "I5", "F10.3", "E12.4", "A8", "D24.16", or a
// BINTABLE repeat-count form such as "3D".
type FormatDescriptor struct {
	Repeat      int  // leading repeat count (BINTABLE); 1 if absent
	Kind        byte // L X B I J K A E D F G C M
	Width       int
	Decimals    int
	HasDecimals bool
	ExpWidth    int // only meaningful for exponential display forms

	// Ascii records which grammar this descriptor was parsed under:
	// ASCII-TABLE forms render kind-before-width ("A8"), BINTABLE
	// forms render repeat-before-kind ("8A"). The two grammars are
	// otherwise ambiguous for Kind=='A', so Render needs this to
	// reproduce the string it was parsed from.
	Ascii bool
}

// bintableKinds is the set of type characters legal in a BINTABLE
// TFORM descriptor. Variable-length array columns are not supported,
// so heap-backed 'P'/'Q' descriptors are rejected.
const bintableKinds = "LXBIJKAEDCM"

// tableKinds is the set of type characters legal in an ASCII TABLE
// TFORM/TDISP descriptor.
const tableKinds = "IFEDA"

// ParseTForm parses a TFORM string for the given HDU kind.
func ParseTForm(form string, htype HDUType) (FormatDescriptor, error) {
	switch htype {
	case BinTableHDU:
		return parseBinTForm(form)
	case TableHDU:
		return parseAsciiTForm(form)
	default:
		return FormatDescriptor{}, fmt.Errorf("fits: TFORM not applicable to %v", htype)
	}
}

func parseBinTForm(form string) (FormatDescriptor, error) {
	idx := strings.IndexAny(form, bintableKinds)
	if idx < 0 {
		return FormatDescriptor{}, &FormatKindError{Form: form}
	}
	repeat := 1
	if idx > 0 {
		r, err := strconv.Atoi(form[:idx])
		if err != nil {
			return FormatDescriptor{}, &FormatWidthError{Form: form}
		}
		repeat = r
	}
	kind := form[idx]
	d := FormatDescriptor{Repeat: repeat, Kind: kind, Ascii: false}
	if kind == 'A' {
		d.Width = repeat
	}
	if repeat == 0 && kind != 'A' && form != "0A" {
		return FormatDescriptor{}, &FormatWidthError{Form: form}
	}
	return d, nil
}

func parseAsciiTForm(form string) (FormatDescriptor, error) {
	if len(form) == 0 {
		return FormatDescriptor{}, &FormatKindError{Form: form}
	}
	kind := form[0]
	if !strings.ContainsRune(tableKinds, rune(kind)) {
		return FormatDescriptor{}, &FormatKindError{Form: form}
	}
	rest := form[1:]
	dotIdx := strings.IndexByte(rest, '.')
	widthStr := rest
	decStr := ""
	hasDec := false
	if dotIdx >= 0 {
		widthStr = rest[:dotIdx]
		decStr = rest[dotIdx+1:]
		hasDec = true
	}
	if widthStr == "" {
		return FormatDescriptor{}, &FormatWidthError{Form: form}
	}
	width, err := strconv.Atoi(widthStr)
	if err != nil || width <= 0 {
		return FormatDescriptor{}, &FormatWidthError{Form: form}
	}
	dec := 0
	if hasDec {
		if decStr == "" {
			return FormatDescriptor{}, &FormatWidthError{Form: form}
		}
		dec, err = strconv.Atoi(decStr)
		if err != nil {
			return FormatDescriptor{}, &FormatWidthError{Form: form}
		}
	}
	return FormatDescriptor{Repeat: 1, Kind: kind, Width: width, Decimals: dec, HasDecimals: hasDec, Ascii: true}, nil
}

// Render reproduces the TFORM/TDISP string this descriptor was
// parsed from. Two spellings are not kept: a BINTABLE repeat count
// of 1 is omitted ("1J" renders as "J"), and leading zeros in numbers
// are dropped ("I05" renders as "I5").
func (d FormatDescriptor) Render() string {
	switch d.Kind {
	case 'A':
		if d.Ascii {
			return fmt.Sprintf("A%d", d.Width)
		}
		if d.Repeat > 1 {
			return fmt.Sprintf("%dA", d.Repeat)
		}
		return fmt.Sprintf("%dA", d.Width)
	case 'L', 'X', 'B', 'I', 'J', 'K', 'E', 'D', 'C', 'M':
		prefix := ""
		if d.Repeat > 1 {
			prefix = strconv.Itoa(d.Repeat)
		}
		if d.HasDecimals {
			return fmt.Sprintf("%s%c%d.%d", prefix, d.Kind, d.Width, d.Decimals)
		}
		if d.Width > 0 {
			return fmt.Sprintf("%s%c%d", prefix, d.Kind, d.Width)
		}
		return fmt.Sprintf("%s%c", prefix, d.Kind)
	default:
		if d.HasDecimals {
			return fmt.Sprintf("%c%d.%d", d.Kind, d.Width, d.Decimals)
		}
		return fmt.Sprintf("%c%d", d.Kind, d.Width)
	}
}

// binElemBytes returns the on-disk byte width of a single element of
// kind (before the repeat count is applied), and the number of
// elements 'X' bit columns actually occupy given a repeat count.
func binElemBytes(kind byte, repeat int) (elemsz, nelem int, err error) {
	switch kind {
	case 'L', 'B':
		return 1, repeat, nil
	case 'X':
		nbits := 8
		bytesNeeded := (repeat + nbits - 1) / nbits
		return 1, bytesNeeded, nil
	case 'I':
		return 2, repeat, nil
	case 'J', 'E':
		return 4, repeat, nil
	case 'K', 'D', 'C':
		return 8, repeat, nil
	case 'M':
		return 16, repeat, nil
	case 'A':
		return 1, repeat, nil
	default:
		return 0, 0, &FormatKindError{Form: string(kind)}
	}
}

// txtFormat returns a Go fmt verb string implementing the TFORM's
// ASCII-table rendering (Iw -> %wd, Fw.d -> %w.df, Ew.d/Dw.d -> %w.de).
func (d FormatDescriptor) txtFormat() string {
	switch d.Kind {
	case 'A':
		return fmt.Sprintf("%%%d.%ds", d.Width, d.Width)
	case 'I':
		return fmt.Sprintf("%%%dd", d.Width)
	case 'F':
		if d.HasDecimals {
			return fmt.Sprintf("%%%d.%df", d.Width, d.Decimals)
		}
		return fmt.Sprintf("%%%df", d.Width)
	case 'E', 'D':
		if d.HasDecimals {
			return fmt.Sprintf("%%%d.%de", d.Width, d.Decimals)
		}
		return fmt.Sprintf("%%%de", d.Width)
	default:
		return fmt.Sprintf("%%%dv", d.Width)
	}
}
