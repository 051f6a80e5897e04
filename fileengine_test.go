// Copyright 2015 The astrogo Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fits

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreateMinimalPrimary(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "minimal.fits")

	f, err := Create(name, nil, CreateOptions{})
	require.NoError(t, err)
	require.Len(t, f.HDUs(), 1)

	info, err := os.Stat(name)
	require.NoError(t, err)
	require.EqualValues(t, blockSize, info.Size())

	back, err := Read(name)
	require.NoError(t, err)
	require.Len(t, back.HDUs(), 1)

	hdr := back.HDUs()[0].Header
	simple, ok := hdr.Get("SIMPLE")
	require.True(t, ok)
	require.True(t, simple.Value.Bool())

	naxis1, ok := hdr.Get("NAXIS1")
	require.True(t, ok)
	require.EqualValues(t, 0, naxis1.Value.Int())
}

func TestCreateProtectRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "protected.fits")

	_, err := Create(name, nil, CreateOptions{})
	require.NoError(t, err)

	_, err = Create(name, nil, CreateOptions{Protect: true})
	require.Error(t, err)
	var fe *FileExistsError
	require.ErrorAs(t, err, &fe)
}

func TestCreateRejectsBadFilename(t *testing.T) {
	for _, name := range []string{" .fits", "x", "x.fit"} {
		_, err := Create(name, nil, CreateOptions{})
		require.Error(t, err)
		var fne *FilenameError
		require.ErrorAs(t, err, &fne)
	}
}

func TestImageRoundTrip3x3(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "matrix.fits")

	axes := []int{3, 3, 1}
	img := NewImageData(Int64, axes)
	values := []int64{11, 21, 31, 12, 22, 23, 13, 23, 33}
	require.NoError(t, img.WriteInts(values))

	_, err := Create(name, img, CreateOptions{})
	require.NoError(t, err)

	back, err := Read(name)
	require.NoError(t, err)

	gotImg, ok := back.HDUs()[0].Data.(*ImageData)
	require.True(t, ok)
	require.Equal(t, axes, gotImg.Axes)

	out := make([]int64, gotImg.NElements())
	require.NoError(t, gotImg.ReadInts(out))
	require.Equal(t, values, out)

	bitpix, _ := back.HDUs()[0].Header.Get("BITPIX")
	require.EqualValues(t, 64, bitpix.Value.Int())
}

func TestImageZeroOffsetRoundTrip(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "unsigned.fits")

	axes := []int{3}
	img := NewImageData(Int32, axes)
	img.SetZeroOffset(2147483648, 1)
	native := []int64{0x0000043e, 0x0000040c, 0x0000041f}
	require.NoError(t, img.WriteInts(native))

	_, err := Create(name, img, CreateOptions{})
	require.NoError(t, err)

	back, err := Read(name)
	require.NoError(t, err)
	gotImg := back.HDUs()[0].Data.(*ImageData)

	out := make([]int64, 3)
	require.NoError(t, gotImg.ReadInts(out))
	require.Equal(t, native, out)

	bzero, ok := back.HDUs()[0].Header.Get("BZERO")
	require.True(t, ok)
	require.EqualValues(t, 2147483648, bzero.Value.Float())
}

func TestExtendAppendsHDUs(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "multi.fits")

	img := NewImageData(Int32, []int{2})
	require.NoError(t, img.WriteInts([]int64{1, 2}))
	f, err := Create(name, img, CreateOptions{})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		ext := NewImageData(Int32, []int{2})
		require.NoError(t, ext.WriteInts([]int64{int64(i), int64(i + 1)}))
		require.NoError(t, f.Extend(ext, ImageHDU))
	}
	require.NoError(t, f.SaveAs(name, SaveOptions{}))

	back, err := Read(name)
	require.NoError(t, err)
	require.Len(t, back.HDUs(), 3)
}

func TestVerifyCleanFile(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "clean.fits")

	img := NewImageData(Int64, []int{3, 3, 1})
	_, err := Create(name, img, CreateOptions{})
	require.NoError(t, err)

	n, err := Verify(name)
	require.NoError(t, err)
	require.Equal(t, 0, n)
}

func TestCopyRefusesProtectedOverwrite(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.fits")
	dst := filepath.Join(dir, "dst.fits")

	_, err := Create(src, nil, CreateOptions{})
	require.NoError(t, err)
	_, err = Create(dst, nil, CreateOptions{})
	require.NoError(t, err)

	err = Copy(src, dst, true)
	require.Error(t, err)

	err = Copy(src, dst, false)
	require.NoError(t, err)
}

func TestTableRoundTrip(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "table.fits")

	tbl := NewTableData([]TableColumn{
		{Name: "ID", Format: FormatDescriptor{Kind: 'I', Width: 5}},
		{Name: "FLUX", Format: FormatDescriptor{Kind: 'F', Width: 10, Decimals: 3, HasDecimals: true}},
	})
	require.NoError(t, tbl.AppendRow([]Value{IntegerValue(1), FloatValue(3.5)}))
	require.NoError(t, tbl.AppendRow([]Value{IntegerValue(2), FloatValue(7.25)}))

	f, err := Create(name, NewImageData(Int64, []int{0}), CreateOptions{})
	require.NoError(t, err)
	require.NoError(t, f.Extend(tbl, TableHDU))
	require.NoError(t, f.SaveAs(name, SaveOptions{}))

	back, err := Read(name)
	require.NoError(t, err)
	require.Len(t, back.HDUs(), 2)

	gotTbl := back.HDUs()[1].Data.(*TableData)
	require.Len(t, gotTbl.Rows, 2)
	require.Equal(t, int64(1), gotTbl.Rows[0][0].Int())
	require.InDelta(t, 7.25, gotTbl.Rows[1][1].Float(), 1e-9)
}

func TestBinTableRoundTrip(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "bintable.fits")

	cols := []BinColumn{
		{Name: "ID", Format: FormatDescriptor{Kind: 'J', Repeat: 1}},
		{Name: "VAL", Format: FormatDescriptor{Kind: 'D', Repeat: 1}},
	}
	bt, err := NewBinTableData(cols, 2)
	require.NoError(t, err)
	require.NoError(t, bt.WriteColumnInts(0, []int64{10, 20}))
	require.NoError(t, bt.WriteColumnFloats(1, []float64{1.5, -2.25}))

	f, err := Create(name, NewImageData(Int64, []int{0}), CreateOptions{})
	require.NoError(t, err)
	require.NoError(t, f.Extend(bt, BinTableHDU))
	require.NoError(t, f.SaveAs(name, SaveOptions{}))

	back, err := Read(name)
	require.NoError(t, err)
	gotBt := back.HDUs()[1].Data.(*BinTableData)

	ids := make([]int64, 2)
	require.NoError(t, gotBt.ReadColumnInts(0, ids))
	require.Equal(t, []int64{10, 20}, ids)

	vals := make([]float64, 2)
	require.NoError(t, gotBt.ReadColumnFloats(1, vals))
	require.Equal(t, []float64{1.5, -2.25}, vals)
}
