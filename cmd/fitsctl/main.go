// Copyright 2015 The astrogo Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command fitsctl is a front end for the fits library, exposing its
// create/read/extend/copy/collect/key-edit/info/dump/verify/
// terminology operations as subcommands.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	fits "github.com/stellafits/fits"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	flag.Usage = func() {
		const msg = `Usage: fitsctl <command> [arguments]

Commands:
  create    <file.fits> <bitpix> <axis1,axis2,...>
  read      <file.fits>
  extend    <file.fits> <bitpix> <axis1,axis2,...>
  copy      <src.fits> <dst.fits>
  collect   <first.fits> <last.fits> <out.fits>
  addkey    <file.fits> <hdu> <key> <value> [comment]
  editkey   <file.fits> <hdu> <key> <value> [comment]
  delkey    <file.fits> <hdu> <key>
  renamekey <file.fits> <hdu> <old> <new>
  info      <file.fits> <hdu>
  dump      <file.fits>
  verify    <file.fits>
  terminology <term>
`
		fmt.Fprintf(os.Stderr, "%v\n", msg)
		flag.PrintDefaults()
	}

	protect := flag.Bool("protect", false, "refuse to overwrite an existing file")
	msg := flag.Bool("msg", false, "emit an advisory line on successful write/extend")
	flag.CommandLine.Parse(args)

	rest := flag.Args()
	if len(rest) < 1 {
		flag.Usage()
		return 1
	}
	cmd, rest := rest[0], rest[1:]

	log := logrus.StandardLogger()

	switch cmd {
	case "create":
		return cmdCreate(rest, *protect, *msg, log)
	case "read":
		return cmdRead(rest)
	case "extend":
		return cmdExtend(rest, *msg)
	case "copy":
		return cmdCopy(rest, *protect)
	case "collect":
		return cmdCollect(rest, *protect)
	case "addkey":
		return cmdAddKey(rest)
	case "editkey":
		return cmdEditKey(rest)
	case "delkey":
		return cmdDelKey(rest)
	case "renamekey":
		return cmdRenameKey(rest)
	case "info":
		return cmdInfo(rest)
	case "dump":
		return cmdDump(rest)
	case "verify":
		return cmdVerify(rest)
	case "terminology":
		return cmdTerminology(rest)
	default:
		fmt.Fprintf(os.Stderr, "**error** unknown command %q\n", cmd)
		flag.Usage()
		return 1
	}
}

func fail(format string, args ...interface{}) int {
	fmt.Fprintf(os.Stderr, "**error** "+format+"\n", args...)
	return 1
}

func parseAxes(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	axes := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		axes[i] = n
	}
	return axes, nil
}

func elemFromBitpix(bitpix int) (fits.ElementType, error) {
	return fits.ElementTypeFromBitpix(bitpix)
}

func cmdCreate(args []string, protect, msg bool, log *logrus.Logger) int {
	if len(args) != 3 {
		return fail("usage: create <file.fits> <bitpix> <axes>")
	}
	bitpix, err := strconv.Atoi(args[1])
	if err != nil {
		return fail("%v", err)
	}
	axes, err := parseAxes(args[2])
	if err != nil {
		return fail("%v", err)
	}
	elem, err := elemFromBitpix(bitpix)
	if err != nil {
		return fail("%v", err)
	}
	img := fits.NewImageData(elem, axes)
	_, err = fits.Create(args[0], img, fits.CreateOptions{Protect: protect, Msg: msg, Logger: log})
	if err != nil {
		return fail("%v", err)
	}
	return 0
}

func cmdRead(args []string) int {
	if len(args) != 1 {
		return fail("usage: read <file.fits>")
	}
	f, err := fits.Read(args[0])
	if err != nil {
		return fail("%v", err)
	}
	for i, hdu := range f.HDUs() {
		fmt.Printf("hdu[%d]: %s\n", i, fits.Info(&hdu))
	}
	return 0
}

func cmdExtend(args []string, msg bool) int {
	if len(args) != 3 {
		return fail("usage: extend <file.fits> <bitpix> <axes>")
	}
	f, err := fits.Read(args[0])
	if err != nil {
		return fail("%v", err)
	}
	bitpix, err := strconv.Atoi(args[1])
	if err != nil {
		return fail("%v", err)
	}
	axes, err := parseAxes(args[2])
	if err != nil {
		return fail("%v", err)
	}
	elem, err := elemFromBitpix(bitpix)
	if err != nil {
		return fail("%v", err)
	}
	img := fits.NewImageData(elem, axes)
	if err := f.Extend(img, fits.ImageHDU); err != nil {
		return fail("%v", err)
	}
	if err := f.SaveAs(args[0], fits.SaveOptions{Msg: msg}); err != nil {
		return fail("%v", err)
	}
	return 0
}

func cmdCopy(args []string, protect bool) int {
	if len(args) != 2 {
		return fail("usage: copy <src.fits> <dst.fits>")
	}
	if err := fits.Copy(args[0], args[1], protect); err != nil {
		return fail("%v", err)
	}
	return 0
}

func cmdCollect(args []string, protect bool) int {
	if len(args) != 3 {
		return fail("usage: collect <first.fits> <last.fits> <out.fits>")
	}
	f, err := fits.Collect(args[0], args[1], protect)
	if err != nil {
		return fail("%v", err)
	}
	if err := f.SaveAs(args[2], fits.SaveOptions{Protect: protect}); err != nil {
		return fail("%v", err)
	}
	return 0
}

func cmdAddKey(args []string) int {
	if len(args) < 4 {
		return fail("usage: addkey <file.fits> <hdu> <key> <value> [comment]")
	}
	return withFile(args[0], func(f *fits.FITS) error {
		hdu, err := strconv.Atoi(args[1])
		if err != nil {
			return err
		}
		comment := ""
		if len(args) > 4 {
			comment = strings.Join(args[4:], " ")
		}
		return f.AddKey(hdu, args[2], fits.StringValue(args[3]), comment)
	})
}

func cmdEditKey(args []string) int {
	if len(args) < 4 {
		return fail("usage: editkey <file.fits> <hdu> <key> <value> [comment]")
	}
	return withFile(args[0], func(f *fits.FITS) error {
		hdu, err := strconv.Atoi(args[1])
		if err != nil {
			return err
		}
		comment := ""
		if len(args) > 4 {
			comment = strings.Join(args[4:], " ")
		}
		return f.EditKey(hdu, args[2], fits.StringValue(args[3]), comment)
	})
}

func cmdDelKey(args []string) int {
	if len(args) != 3 {
		return fail("usage: delkey <file.fits> <hdu> <key>")
	}
	return withFile(args[0], func(f *fits.FITS) error {
		hdu, err := strconv.Atoi(args[1])
		if err != nil {
			return err
		}
		return f.DeleteKey(hdu, args[2])
	})
}

func cmdRenameKey(args []string) int {
	if len(args) != 4 {
		return fail("usage: renamekey <file.fits> <hdu> <old> <new>")
	}
	return withFile(args[0], func(f *fits.FITS) error {
		hdu, err := strconv.Atoi(args[1])
		if err != nil {
			return err
		}
		return f.RenameKey(hdu, args[2], args[3])
	})
}

// withFile reads name, applies edit, and saves the result back.
func withFile(name string, edit func(*fits.FITS) error) int {
	f, err := fits.Read(name)
	if err != nil {
		return fail("%v", err)
	}
	if err := edit(f); err != nil {
		return fail("%v", err)
	}
	if err := f.SaveAs(name, fits.SaveOptions{}); err != nil {
		return fail("%v", err)
	}
	return 0
}

func cmdInfo(args []string) int {
	if len(args) != 2 {
		return fail("usage: info <file.fits> <hdu>")
	}
	f, err := fits.Read(args[0])
	if err != nil {
		return fail("%v", err)
	}
	idx, err := strconv.Atoi(args[1])
	if err != nil {
		return fail("%v", err)
	}
	hdu, err := f.HDU(idx)
	if err != nil {
		return fail("%v", err)
	}
	fmt.Println(fits.Info(hdu))
	return 0
}

func cmdDump(args []string) int {
	if len(args) != 1 {
		return fail("usage: dump <file.fits>")
	}
	records, err := fits.RecordDump(args[0])
	if err != nil {
		return fail("%v", err)
	}
	for _, r := range records {
		fmt.Printf("%6d  offset=%-10d bytes=%d\n", r.Index, r.Offset, len(r.Data))
	}
	return 0
}

func cmdVerify(args []string) int {
	if len(args) != 1 {
		return fail("usage: verify <file.fits>")
	}
	n, err := fits.Verify(args[0])
	if err != nil {
		return fail("%v", err)
	}
	fmt.Printf("%d\n", n)
	if n != 0 {
		return 1
	}
	return 0
}

func cmdTerminology(args []string) int {
	if len(args) != 1 {
		return fail("usage: terminology <term>")
	}
	v, ok := fits.Terminology(args[0])
	if !ok {
		return fail("no glossary entry for %q", args[0])
	}
	fmt.Println(v)
	return 0
}
