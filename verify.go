// Copyright 2015 The astrogo Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fits

// mandatoryOrder lists, per HDU kind, the fixed-prefix mandatory
// keywords that must appear in this relative order (§4.4). Indexed
// keywords (NAXISn, TTYPEn, ...) are checked by prefix membership,
// not by exact name, since their count varies per HDU.
func mandatoryOrder(primary bool, htype HDUType) []string {
	switch htype {
	case ImageHDU:
		if primary {
			return []string{"SIMPLE", "BITPIX", "NAXIS"}
		}
		return []string{"XTENSION", "BITPIX", "NAXIS", "PCOUNT", "GCOUNT"}
	case TableHDU, BinTableHDU:
		return []string{"XTENSION", "BITPIX", "NAXIS", "NAXIS1", "NAXIS2", "PCOUNT", "GCOUNT", "TFIELDS"}
	default:
		return nil
	}
}

// Verify opens name and returns the count of HDUs whose mandatory
// keywords are missing or out of their required relative order (0
// means every HDU is well-formed).
func Verify(name string) (int, error) {
	f, err := Read(name)
	if err != nil {
		return 0, err
	}
	bad := 0
	for i := range f.hdus {
		hdu := &f.hdus[i]
		want := mandatoryOrder(hdu.Primary, hdu.Header.Type())
		pos := -1
		ok := true
		for _, key := range want {
			idx := hdu.Header.Index(key)
			if idx < 0 || idx <= pos {
				ok = false
				break
			}
			pos = idx
		}
		if !ok {
			bad++
		}
	}
	return bad, nil
}
