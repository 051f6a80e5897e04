// Copyright 2015 The astrogo Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fits

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKeyEditAddEditDeleteRename(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "edit.fits")

	f, err := Create(name, nil, CreateOptions{})
	require.NoError(t, err)

	require.NoError(t, f.AddKey(0, "OBSERVER", StringValue("Huggins"), "who took the data"))
	require.NoError(t, f.EditKey(0, "OBSERVER", StringValue("Herschel"), "corrected"))

	hdu, err := f.HDU(0)
	require.NoError(t, err)
	c, ok := hdu.Header.Get("OBSERVER")
	require.True(t, ok)
	require.Equal(t, "Herschel", c.Value.Str())

	require.NoError(t, f.RenameKey(0, "OBSERVER", "OBSRVR"))
	_, ok = hdu.Header.Get("OBSERVER")
	require.False(t, ok)
	c, ok = hdu.Header.Get("OBSRVR")
	require.True(t, ok)
	require.Equal(t, "Herschel", c.Value.Str())

	require.NoError(t, f.DeleteKey(0, "OBSRVR"))
	_, ok = hdu.Header.Get("OBSRVR")
	require.False(t, ok)

	require.NoError(t, f.SaveAs(name, SaveOptions{}))
	back, err := Read(name)
	require.NoError(t, err)
	_, ok = back.HDUs()[0].Header.Get("OBSRVR")
	require.False(t, ok)
}

func TestKeyEditRefusesMandatoryDelete(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "mand.fits")
	f, err := Create(name, nil, CreateOptions{})
	require.NoError(t, err)

	err = f.DeleteKey(0, "BITPIX")
	require.Error(t, err)
	var me *MandatoryKeywordError
	require.ErrorAs(t, err, &me)
}

func TestKeyEditOutOfRangeHDU(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "idx.fits")
	f, err := Create(name, nil, CreateOptions{})
	require.NoError(t, err)

	err = f.AddKey(5, "FOO", IntegerValue(1), "")
	require.Error(t, err)
	var ie *HDUIndexError
	require.ErrorAs(t, err, &ie)
}
