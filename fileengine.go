// Copyright 2015 The astrogo Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fits

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/stellafits/fits/internal/obs"
)

// FITS is an in-memory FITS object: a filename descriptor and an
// ordered HDU list. HDU[0] is always primary.
type FITS struct {
	name string
	hdus []HDU
	log  *obs.Logger
}

// CreateOptions configures Create.
type CreateOptions struct {
	Protect bool
	Msg     bool
	Logger  *logrus.Logger
}

// SaveOptions configures SaveAs.
type SaveOptions struct {
	Protect bool
	Msg     bool
}

// Name returns the FITS object's current filename.
func (f *FITS) Name() string { return f.name }

// HDUs returns every Header-Data Unit, primary first.
func (f *FITS) HDUs() []HDU { return f.hdus }

// HDU returns the i-th HDU.
func (f *FITS) HDU(i int) (*HDU, error) {
	if i < 0 || i >= len(f.hdus) {
		return nil, &HDUIndexError{Index: i, Len: len(f.hdus)}
	}
	return &f.hdus[i], nil
}

// Create builds a primary IMAGE HDU from data (nil means the empty
// image: NAXIS=1, NAXIS1=0) and autosaves it to name.
func Create(name string, data DataObject, opts CreateOptions) (*FITS, error) {
	if err := ValidateFilename(name); err != nil {
		return nil, err
	}
	log := obs.New(opts.Logger)

	var img *ImageData
	switch d := data.(type) {
	case nil:
		img = NewImageData(Int64, []int{0})
	case *ImageData:
		img = d
	default:
		return nil, fmt.Errorf("fits: primary HDU must be an image (got %T)", data)
	}

	f := &FITS{name: name, hdus: []HDU{*NewImageHDU(true, img)}, log: log}
	if err := f.SaveAs(name, SaveOptions{Protect: opts.Protect, Msg: opts.Msg}); err != nil {
		return nil, err
	}
	return f, nil
}

// Extend appends an extension HDU to f's in-memory HDU list. It does
// not write to disk; persist with SaveAs.
func (f *FITS) Extend(data DataObject, hduType HDUType) error {
	var hdu *HDU
	switch d := data.(type) {
	case *ImageData:
		if hduType != ImageHDU {
			return fmt.Errorf("fits: extend: data is *ImageData but hduType is %v", hduType)
		}
		hdu = NewImageHDU(false, d)
	case *TableData:
		if hduType != TableHDU {
			return fmt.Errorf("fits: extend: data is *TableData but hduType is %v", hduType)
		}
		hdu = NewTableHDU(d)
	case *BinTableData:
		if hduType != BinTableHDU {
			return fmt.Errorf("fits: extend: data is *BinTableData but hduType is %v", hduType)
		}
		hdu = NewBinTableHDU(d)
	default:
		return fmt.Errorf("fits: extend: unknown data object type %T", data)
	}
	f.hdus = append(f.hdus, *hdu)
	return nil
}

// SaveAs resynchronizes every HDU's mandatory keywords and serializes
// the full HDU sequence to name, block-aligned.
func (f *FITS) SaveAs(name string, opts SaveOptions) error {
	if err := ValidateFilename(name); err != nil {
		return err
	}
	if opts.Protect {
		if _, err := os.Stat(name); err == nil {
			return &FileExistsError{Name: name}
		}
	}

	var buf bytes.Buffer
	for i := range f.hdus {
		hdu := &f.hdus[i]
		if err := resyncHeader(hdu); err != nil {
			return errors.Wrapf(err, "fits: hdu %d", i)
		}
		hb, err := hdu.Header.Serialize()
		if err != nil {
			return errors.Wrapf(err, "fits: hdu %d header", i)
		}
		buf.Write(hb)
		db, err := serializeData(hdu)
		if err != nil {
			return errors.Wrapf(err, "fits: hdu %d data", i)
		}
		buf.Write(db)
	}

	if err := os.WriteFile(name, buf.Bytes(), 0644); err != nil {
		f.log.Error("save_as", name, err)
		return errors.Wrapf(err, "fits: write %s", name)
	}
	f.name = name
	if opts.Msg {
		fmt.Printf("fits: wrote %s (%d bytes, %d hdus)\n", name, buf.Len(), len(f.hdus))
	}
	f.log.Op("save_as", name, len(f.hdus), buf.Len())
	return nil
}

// resyncHeader recomputes an HDU's mandatory cards from its payload
// and writes their current values back into the existing header,
// catching a header left stale by a direct data mutation.
func resyncHeader(hdu *HDU) error {
	var fresh *Header
	switch d := hdu.Data.(type) {
	case *ImageData:
		fresh = assembleImageHeader(hdu.Primary, d)
	case *TableData:
		fresh = assembleTableHeader(d)
	case *BinTableData:
		fresh = assembleBinTableHeader(d)
	default:
		return fmt.Errorf("fits: unknown data object type %T", hdu.Data)
	}
	for i := 0; i < fresh.Len(); i++ {
		c := fresh.Card(i)
		if c.Keyword == "END" {
			continue
		}
		if err := hdu.Header.Set(c.Keyword, c.Value, c.Comment); err != nil {
			return err
		}
	}
	return nil
}

// Read parses every HDU in name sequentially until EOF.
func Read(name string) (*FITS, error) {
	fh, err := os.Open(name)
	if err != nil {
		return nil, errors.Wrapf(err, "fits: open %s", name)
	}
	defer fh.Close()

	var hdus []HDU
	primary := true
	for {
		hdu, _, err := readHDU(fh, primary)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				break
			}
			return nil, err
		}
		hdus = append(hdus, *hdu)
		primary = false
	}
	if len(hdus) == 0 {
		return nil, fmt.Errorf("fits: %s contains no HDUs", name)
	}
	return &FITS{name: name, hdus: hdus}, nil
}

// readHDU reads one header section plus its data section, including
// trailing block padding, from r.
func readHDU(r io.Reader, primary bool) (*HDU, int, error) {
	h, hdrBytes, err := ParseHeaderBlocks(r, ImageHDU)
	if err != nil {
		return nil, hdrBytes, err
	}

	var htype HDUType
	if primary {
		htype = ImageHDU
	} else {
		xt, ok := strCard(h, "XTENSION")
		if !ok {
			return nil, hdrBytes, &HeaderConsistencyError{Detail: "extension HDU missing XTENSION"}
		}
		htype, err = ParseHDUType(strings.TrimSpace(xt))
		if err != nil {
			return nil, hdrBytes, err
		}
	}
	h.htype = htype

	var data DataObject
	var dataLen int

	switch htype {
	case ImageHDU:
		img, err := decodeImageLayout(h)
		if err != nil {
			return nil, hdrBytes, err
		}
		dataLen = img.Elem.Size() * img.NElements()
		img.Raw = make([]byte, dataLen)
		if dataLen > 0 {
			if n, err := io.ReadFull(r, img.Raw); err != nil {
				return nil, hdrBytes, &TruncatedFileError{Expected: dataLen, Got: n}
			}
		}
		data = img

	case TableHDU:
		cols, nrows, err := decodeTableLayout(h)
		if err != nil {
			return nil, hdrBytes, err
		}
		width := (&TableData{Columns: cols}).RowWidth()
		dataLen = width * nrows
		t, err := ParseTableData(io.LimitReader(r, int64(dataLen)), cols, nrows)
		if err != nil {
			return nil, hdrBytes, err
		}
		data = t

	case BinTableHDU:
		cols, nrows, err := decodeBinTableLayout(h)
		if err != nil {
			return nil, hdrBytes, err
		}
		bt, err := NewBinTableData(cols, nrows)
		if err != nil {
			return nil, hdrBytes, err
		}
		dataLen = len(bt.Raw)
		if dataLen > 0 {
			if n, err := io.ReadFull(r, bt.Raw); err != nil {
				return nil, hdrBytes, &TruncatedFileError{Expected: dataLen, Got: n}
			}
		}
		data = bt

	default:
		return nil, hdrBytes, fmt.Errorf("fits: unsupported HDU type %v", htype)
	}

	if pad := padBytes(dataLen); pad > 0 {
		if n, err := io.CopyN(io.Discard, r, int64(pad)); err != nil {
			return nil, hdrBytes, &TruncatedFileError{Expected: pad, Got: int(n)}
		}
	}

	return &HDU{Primary: primary, Header: h, Data: data}, hdrBytes + dataLen + padBytes(dataLen), nil
}

// Copy byte-copies src to dst after validating dst's name and,
// if protect is set, refusing to overwrite an existing dst.
func Copy(src, dst string, protect bool) error {
	if err := ValidateFilename(dst); err != nil {
		return err
	}
	if protect {
		if _, err := os.Stat(dst); err == nil {
			return &FileExistsError{Name: dst}
		}
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return errors.Wrapf(err, "fits: read %s", src)
	}
	if err := os.WriteFile(dst, data, 0644); err != nil {
		return errors.Wrapf(err, "fits: write %s", dst)
	}
	return nil
}

// Collect reads a numbered sequence of single-HDU IMAGE files from
// firstPath through lastPath (inclusive, matched by incrementing the
// trailing digit run before the extension) and concatenates their
// primary IMAGE HDUs into one in-memory multi-HDU FITS object. protect
// is accepted for interface symmetry with Create/Copy/SaveAs: Collect
// itself writes nothing to disk, so it performs no existence check;
// honor protect on the caller's subsequent SaveAs.
func Collect(firstPath, lastPath string, protect bool) (*FITS, error) {
	_ = protect
	path := firstPath
	var result *FITS
	for {
		one, err := Read(path)
		if err != nil {
			return nil, errors.Wrapf(err, "fits: collect %s", path)
		}
		img, ok := one.hdus[0].Data.(*ImageData)
		if !ok {
			return nil, fmt.Errorf("fits: collect: %s primary HDU is not IMAGE", path)
		}
		if result == nil {
			result = &FITS{hdus: []HDU{*NewImageHDU(true, img)}}
		} else if err := result.Extend(img, ImageHDU); err != nil {
			return nil, err
		}
		if path == lastPath {
			break
		}
		next, ok := nextInSequence(path)
		if !ok {
			return nil, fmt.Errorf("fits: collect: %s has no numeric sequence suffix", path)
		}
		path = next
	}
	return result, nil
}
