// Copyright 2015 The astrogo Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fits

import (
	"bytes"
	"testing"
)

func TestHeaderAppendAndGet(t *testing.T) {
	h := newHeader(ImageHDU)
	if err := h.Append(NewCard("OBJECT", StringValue("M31"), "")); err != nil {
		t.Fatalf("append: %v", err)
	}
	c, ok := h.Get("OBJECT")
	if !ok {
		t.Fatalf("OBJECT not found")
	}
	if c.Value.Str() != "M31" {
		t.Fatalf("got %q", c.Value.Str())
	}
	if h.cards[len(h.cards)-1].Keyword != "END" {
		t.Fatalf("END card is not last")
	}
}

func TestHeaderMandatoryGuard(t *testing.T) {
	h := newHeader(ImageHDU)
	h.Append(NewCard("SIMPLE", LogicalValue(true), ""))
	if err := h.Remove("SIMPLE"); err == nil {
		t.Fatalf("expected MandatoryKeywordError")
	} else if _, ok := err.(*MandatoryKeywordError); !ok {
		t.Fatalf("got %T", err)
	}
	if err := h.Rename("NAXIS1", "FOO"); err == nil {
		t.Fatalf("expected MandatoryKeywordError")
	}
}

func TestHeaderFirstOccurrenceWins(t *testing.T) {
	h := newHeader(ImageHDU)
	h.Append(NewCommentCard("HISTORY", "first"))
	h.Append(NewCommentCard("HISTORY", "second"))
	if idx := h.Index("HISTORY"); idx != 0 {
		t.Fatalf("Index(HISTORY) = %d, want 0", idx)
	}
}

func TestHeaderSerializeBlockAligned(t *testing.T) {
	h := newHeader(ImageHDU)
	for i := 0; i < 3; i++ {
		h.Append(NewCard("SIMPLE", LogicalValue(true), ""))
	}
	b, err := h.Serialize()
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	if len(b)%blockSize != 0 {
		t.Fatalf("serialized header length %d not a multiple of %d", len(b), blockSize)
	}
}

func TestParseHeaderBlocksRoundTrip(t *testing.T) {
	h := newHeader(ImageHDU)
	h.Append(NewCard("SIMPLE", LogicalValue(true), "primary HDU"))
	h.Append(NewCard("BITPIX", IntegerValue(64), ""))
	h.Append(NewCard("NAXIS", IntegerValue(1), ""))
	h.Append(NewCard("NAXIS1", IntegerValue(0), ""))

	raw, err := h.Serialize()
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}

	got, n, err := ParseHeaderBlocks(bytes.NewReader(raw), ImageHDU)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if n != len(raw) {
		t.Fatalf("consumed %d bytes, want %d", n, len(raw))
	}
	c, ok := got.Get("NAXIS1")
	if !ok || c.Value.Int() != 0 {
		t.Fatalf("NAXIS1 = %+v", c)
	}
}

func TestParseHeaderBlocksUnterminated(t *testing.T) {
	raw := bytes.Repeat([]byte(" "), blockSize)
	_, _, err := ParseHeaderBlocks(bytes.NewReader(raw), ImageHDU)
	if err == nil {
		t.Fatalf("expected HeaderUnterminatedError")
	}
}

func TestIsMandatoryKeyword(t *testing.T) {
	for _, k := range []string{"SIMPLE", "BITPIX", "NAXIS", "NAXIS3", "TTYPE2", "TFORM1", "TBCOL4", "END"} {
		if !isMandatoryKeyword(k) {
			t.Fatalf("%q should be mandatory", k)
		}
	}
	for _, k := range []string{"OBJECT", "TUNIT1", "COMMENT", "HISTORY"} {
		if isMandatoryKeyword(k) {
			t.Fatalf("%q should not be mandatory", k)
		}
	}
}
