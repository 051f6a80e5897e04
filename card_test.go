// Copyright 2015 The astrogo Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fits

import (
	"strings"
	"testing"
)

func TestCardRoundTripLogical(t *testing.T) {
	c := NewCard("SIMPLE", LogicalValue(true), "conforms to FITS standard")
	line, err := renderCard(c)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(line) != cardSize {
		t.Fatalf("card length = %d, want %d", len(line), cardSize)
	}
	got, err := parseCardLine(line[:cardSize])
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got.Keyword != "SIMPLE" || !got.Value.Bool() {
		t.Fatalf("got %+v", got)
	}
}

func TestCardRoundTripInteger(t *testing.T) {
	c := NewCard("NAXIS1", IntegerValue(1024), "length of axis 1")
	line, err := renderCard(c)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	got, err := parseCardLine(line[:cardSize])
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got.Value.Int() != 1024 {
		t.Fatalf("got %d, want 1024", got.Value.Int())
	}
	if got.Comment != "length of axis 1" {
		t.Fatalf("comment = %q", got.Comment)
	}
}

func TestCardRoundTripFloat(t *testing.T) {
	for _, dbl := range []bool{false, true} {
		v := FloatValue(3.5)
		if dbl {
			v = DoubleValue(3.5)
		}
		c := NewCard("EXPTIME", v, "")
		line, err := renderCard(c)
		if err != nil {
			t.Fatalf("render: %v", err)
		}
		if len(line) != cardSize {
			t.Fatalf("card length = %d, want %d", len(line), cardSize)
		}
		got, err := parseCardLine(line[:cardSize])
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		if got.Value.Float() != 3.5 {
			t.Fatalf("got %v, want 3.5", got.Value.Float())
		}
		if got.Value.IsDouble() != dbl {
			t.Fatalf("dexp = %v, want %v", got.Value.IsDouble(), dbl)
		}
	}
}

func TestCardRoundTripString(t *testing.T) {
	c := NewCard("OBJECT", StringValue("Crab Nebula"), "target name")
	line, err := renderCard(c)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	got, err := parseCardLine(line[:cardSize])
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got.Value.Str() != "Crab Nebula" {
		t.Fatalf("got %q", got.Value.Str())
	}
}

func TestCardStringWithEmbeddedQuote(t *testing.T) {
	c := NewCard("NOTE", StringValue("it's a test"), "")
	line, err := renderCard(c)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	got, err := parseCardLine(line[:cardSize])
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got.Value.Str() != "it's a test" {
		t.Fatalf("got %q", got.Value.Str())
	}
}

func TestCardLongStringContinuation(t *testing.T) {
	long := strings.Repeat("x", 120)
	c := NewCard("LONGSTR", StringValue(long), "")
	line, err := renderCard(c)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(line)%cardSize != 0 {
		t.Fatalf("rendered length %d not a multiple of %d", len(line), cardSize)
	}
	if len(line) <= cardSize {
		t.Fatalf("expected CONTINUE overflow, got single card")
	}

	h := &Header{htype: ImageHDU}
	for i := 0; i < len(line)/cardSize; i++ {
		card, err := parseCardLine(line[i*cardSize : (i+1)*cardSize])
		if err != nil {
			t.Fatalf("parse block %d: %v", i, err)
		}
		if card.Keyword == "CONTINUE" {
			last := &h.cards[len(h.cards)-1]
			prior := strings.TrimRight(last.Value.Str(), "&")
			if strings.HasSuffix(last.Value.Str(), "&") {
				prior = last.Value.Str()[:len(last.Value.Str())-1]
			}
			last.Value = StringValue(prior + card.Value.Str())
			continue
		}
		h.cards = append(h.cards, card)
	}
	if len(h.cards) != 1 {
		t.Fatalf("reassembled %d cards, want 1", len(h.cards))
	}
	if h.cards[0].Value.Str() != long {
		t.Fatalf("reassembled string length %d, want %d", len(h.cards[0].Value.Str()), len(long))
	}
}

func TestEndCard(t *testing.T) {
	line, err := renderCard(Card{Keyword: "END"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := "END" + strings.Repeat(" ", 77)
	if string(line) != want {
		t.Fatalf("END card = %q", string(line))
	}
}

func TestHierarchKeyword(t *testing.T) {
	c := NewCard("ESO TEL FOCU VALUE", FloatValue(12.5), "focus value")
	line, err := renderCard(c)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.HasPrefix(string(line), "HIERARCH ") {
		t.Fatalf("expected HIERARCH prefix, got %q", string(line[:20]))
	}
}

func TestVerifyKeywordRejectsIllegalChars(t *testing.T) {
	if err := verifyKeyword("BAD!KEY"); err == nil {
		t.Fatalf("expected error for illegal character")
	}
}
