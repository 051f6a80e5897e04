// Copyright 2015 The astrogo Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fits

import "testing"

func TestParseTFormAsciiRoundTrip(t *testing.T) {
	forms := []string{"I5", "F10.3", "E12.4", "A8", "D24.16"}
	for _, s := range forms {
		d, err := ParseTForm(s, TableHDU)
		if err != nil {
			t.Fatalf("parse %q: %v", s, err)
		}
		if got := d.Render(); got != s {
			t.Fatalf("render(parse(%q)) = %q", s, got)
		}
	}
}

func TestParseTFormBinTableRoundTrip(t *testing.T) {
	forms := []string{"J", "3D", "8A", "L", "16B"}
	for _, s := range forms {
		d, err := ParseTForm(s, BinTableHDU)
		if err != nil {
			t.Fatalf("parse %q: %v", s, err)
		}
		got := d.Render()
		if got != s {
			t.Fatalf("render(parse(%q)) = %q", s, got)
		}
	}
}

func TestParseTFormUnknownKind(t *testing.T) {
	if _, err := ParseTForm("Z5", TableHDU); err == nil {
		t.Fatalf("expected FormatKindError")
	} else if _, ok := err.(*FormatKindError); !ok {
		t.Fatalf("got %T, want *FormatKindError", err)
	}
}

func TestParseTFormMissingWidth(t *testing.T) {
	if _, err := ParseTForm("I", TableHDU); err == nil {
		t.Fatalf("expected FormatWidthError")
	} else if _, ok := err.(*FormatWidthError); !ok {
		t.Fatalf("got %T, want *FormatWidthError", err)
	}
}

func TestBinElemBytes(t *testing.T) {
	cases := []struct {
		kind   byte
		repeat int
		elemsz int
		nelem  int
	}{
		{'I', 4, 2, 4},
		{'J', 2, 4, 2},
		{'D', 1, 8, 1},
		{'X', 10, 1, 2},
	}
	for _, c := range cases {
		elemsz, nelem, err := binElemBytes(c.kind, c.repeat)
		if err != nil {
			t.Fatalf("binElemBytes(%c,%d): %v", c.kind, c.repeat, err)
		}
		if elemsz != c.elemsz || nelem != c.nelem {
			t.Fatalf("binElemBytes(%c,%d) = (%d,%d), want (%d,%d)",
				c.kind, c.repeat, elemsz, nelem, c.elemsz, c.nelem)
		}
	}
}
