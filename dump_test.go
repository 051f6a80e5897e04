// Copyright 2015 The astrogo Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fits

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRecordDumpMinimal(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "dump.fits")

	_, err := Create(name, nil, CreateOptions{})
	require.NoError(t, err)

	records, err := RecordDump(name)
	require.NoError(t, err)
	// a minimal file has exactly one header block of 36 card records
	// and no data blocks.
	require.Len(t, records, 36)
	require.Equal(t, int64(0), records[0].Offset)
	require.Len(t, records[0].Data, cardSize)
}

func TestRecordDumpWithData(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "dumpdata.fits")

	img := NewImageData(Int64, []int{3, 3, 1})
	_, err := Create(name, img, CreateOptions{})
	require.NoError(t, err)

	records, err := RecordDump(name)
	require.NoError(t, err)
	require.True(t, len(records) > 36, "expected card records plus at least one data block")
	last := records[len(records)-1]
	require.Len(t, last.Data, blockSize)
}

func TestTerminologyLookup(t *testing.T) {
	v, ok := Terminology("bitpix")
	require.True(t, ok)
	require.Contains(t, v, "element width")

	_, ok = Terminology("not-a-term")
	require.False(t, ok)
}
