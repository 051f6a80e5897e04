// Copyright 2015 The astrogo Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fits

import "fmt"

// AddKey inserts a non-mandatory card into the hduIdx-th HDU's
// header. If key already exists, its value/comment are replaced
// (matching Header.Set's upsert semantics). In-memory only; call
// SaveAs to persist.
func (f *FITS) AddKey(hduIdx int, key string, value Value, comment string) error {
	hdu, err := f.HDU(hduIdx)
	if err != nil {
		return err
	}
	return hdu.Header.Set(key, value, comment)
}

// EditKey replaces the value/comment of an existing card. Mandatory
// keywords may be edited but the card must already exist; use AddKey
// to create a new one.
func (f *FITS) EditKey(hduIdx int, key string, value Value, comment string) error {
	hdu, err := f.HDU(hduIdx)
	if err != nil {
		return err
	}
	if _, ok := hdu.Header.Get(key); !ok {
		return fmt.Errorf("fits: keyword %q not found in hdu %d", key, hduIdx)
	}
	return hdu.Header.Set(key, value, comment)
}

// DeleteKey removes a non-mandatory card.
func (f *FITS) DeleteKey(hduIdx int, key string) error {
	hdu, err := f.HDU(hduIdx)
	if err != nil {
		return err
	}
	return hdu.Header.Remove(key)
}

// RenameKey renames a non-mandatory card.
func (f *FITS) RenameKey(hduIdx int, oldKey, newKey string) error {
	hdu, err := f.HDU(hduIdx)
	if err != nil {
		return err
	}
	return hdu.Header.Rename(oldKey, newKey)
}
