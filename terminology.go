// Copyright 2015 The astrogo Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fits

import "strings"

// glossary backs Terminology and the CLI's `terminology` subcommand.
var glossary = map[string]string{
	"HDU":        "Header-Data Unit: one header section plus its associated data section.",
	"CARD":       "an 80-byte ASCII record carrying at most one keyword-value-comment triple.",
	"PRIMARY HDU": "the first HDU in a file; always an IMAGE HDU.",
	"EXTENSION HDU": "any non-primary HDU; begins with XTENSION.",
	"BITPIX":     "signed integer indicating element width and kind (8, 16, 32, 64 for integer; -32, -64 for IEEE float).",
	"NAXISN":     "size along the n-th image axis.",
	"TFORM":      "FORTRAN-style column format string for TABLE/BINTABLE.",
	"TDISP":      "FORTRAN-style column display string for TABLE/BINTABLE.",
	"BZERO":      "affine offset applied to stored integer values on read.",
	"BSCALE":     "affine scale applied to stored integer values on read.",
	"BLOCK":      "a 2880-byte unit of file alignment.",
}

// Terminology looks up term (case-insensitive) in the glossary.
func Terminology(term string) (string, bool) {
	v, ok := glossary[strings.ToUpper(strings.TrimSpace(term))]
	return v, ok
}
