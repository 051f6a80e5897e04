// Copyright 2015 The astrogo Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fits

import "fmt"

// FilenameError reports an invalid filename: a missing ".fits"
// extension (case-insensitive) or a blank stem.
type FilenameError struct {
	Name   string
	Reason string
}

func (e *FilenameError) Error() string {
	return fmt.Sprintf("fits: invalid filename %q: %s", e.Name, e.Reason)
}

// FileExistsError reports a refused overwrite under Protect.
type FileExistsError struct {
	Name string
}

func (e *FileExistsError) Error() string {
	return fmt.Sprintf("fits: file %q already exists (protect=true)", e.Name)
}

// CardEncodingError reports a non-ASCII byte encountered while
// parsing or serializing a card record.
type CardEncodingError struct {
	HDUIndex  int
	CardIndex int
	Keyword   string
	Detail    string
}

func (e *CardEncodingError) Error() string {
	return fmt.Sprintf("fits: card encoding error at hdu=%d card=%d keyword=%q: %s",
		e.HDUIndex, e.CardIndex, e.Keyword, e.Detail)
}

// CardStringError reports a malformed quoted string value, typically
// a missing closing quote.
type CardStringError struct {
	HDUIndex  int
	CardIndex int
	Keyword   string
	Detail    string
}

func (e *CardStringError) Error() string {
	return fmt.Sprintf("fits: card string error at hdu=%d card=%d keyword=%q: %s",
		e.HDUIndex, e.CardIndex, e.Keyword, e.Detail)
}

// CardValueError reports a value that could not be parsed into any
// recognized card value kind.
type CardValueError struct {
	HDUIndex  int
	CardIndex int
	Keyword   string
	Detail    string
}

func (e *CardValueError) Error() string {
	return fmt.Sprintf("fits: card value error at hdu=%d card=%d keyword=%q: %s",
		e.HDUIndex, e.CardIndex, e.Keyword, e.Detail)
}

// FormatKindError reports an unrecognized TFORM/TDISP type character.
type FormatKindError struct {
	Form string
}

func (e *FormatKindError) Error() string {
	return fmt.Sprintf("fits: unrecognized format kind in %q", e.Form)
}

// FormatWidthError reports a missing or zero field width where the
// FORTRAN format mini-language requires one.
type FormatWidthError struct {
	Form string
}

func (e *FormatWidthError) Error() string {
	return fmt.Sprintf("fits: invalid or missing field width in %q", e.Form)
}

// MandatoryKeywordError reports an attempt to delete or rename a
// mandatory card.
type MandatoryKeywordError struct {
	Keyword string
	Op      string
}

func (e *MandatoryKeywordError) Error() string {
	return fmt.Sprintf("fits: cannot %s mandatory keyword %q", e.Op, e.Keyword)
}

// HeaderConsistencyError reports mandatory keywords that disagree
// with the payload or with each other.
type HeaderConsistencyError struct {
	HDUIndex int
	Detail   string
}

func (e *HeaderConsistencyError) Error() string {
	return fmt.Sprintf("fits: header inconsistency at hdu=%d: %s", e.HDUIndex, e.Detail)
}

// HeaderUnterminatedError reports a header section with no END card
// within the scanned block limit.
type HeaderUnterminatedError struct {
	HDUIndex int
}

func (e *HeaderUnterminatedError) Error() string {
	return fmt.Sprintf("fits: header at hdu=%d has no END card", e.HDUIndex)
}

// BitpixError reports an unsupported BITPIX value.
type BitpixError struct {
	Bitpix int
}

func (e *BitpixError) Error() string {
	return fmt.Sprintf("fits: unsupported BITPIX value %d", e.Bitpix)
}

// TruncatedFileError reports a short read while loading a data block.
type TruncatedFileError struct {
	Expected int
	Got      int
}

func (e *TruncatedFileError) Error() string {
	return fmt.Sprintf("fits: truncated data block: expected %d bytes, got %d", e.Expected, e.Got)
}

// HDUIndexError reports an out-of-range HDU index.
type HDUIndexError struct {
	Index int
	Len   int
}

func (e *HDUIndexError) Error() string {
	return fmt.Sprintf("fits: hdu index %d out of range [0,%d)", e.Index, e.Len)
}
