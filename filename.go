// Copyright 2015 The astrogo Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fits

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// ValidateFilename enforces the ".fits" extension (case-insensitive)
// and a non-blank stem.
func ValidateFilename(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return &FilenameError{Name: name, Reason: "blank filename"}
	}
	ext := filepath.Ext(trimmed)
	if !strings.EqualFold(ext, ".fits") {
		return &FilenameError{Name: name, Reason: "missing .fits extension"}
	}
	stem := strings.TrimSuffix(filepath.Base(trimmed), ext)
	if strings.TrimSpace(stem) == "" {
		return &FilenameError{Name: name, Reason: "blank stem"}
	}
	return nil
}

var seqSuffix = regexp.MustCompile(`(\d+)(\.[Ff][Ii][Tt][Ss])$`)

// nextInSequence returns the filename obtained by incrementing the
// trailing run of digits before the extension, preserving width
// ("frame_007.fits" -> "frame_008.fits"). It reports ok=false if name
// has no trailing numeric field.
func nextInSequence(name string) (next string, ok bool) {
	loc := seqSuffix.FindStringSubmatchIndex(name)
	if loc == nil {
		return "", false
	}
	numStart, numEnd := loc[2], loc[3]
	digits := name[numStart:numEnd]
	n, err := strconv.Atoi(digits)
	if err != nil {
		return "", false
	}
	next = fmt.Sprintf("%s%0*d%s", name[:numStart], len(digits), n+1, name[numEnd:])
	return next, true
}
