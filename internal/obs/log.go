// Copyright 2015 The astrogo Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package obs wraps a *logrus.Logger for the file-engine's disk
// mutating operations. A nil *Logger silently drops all calls, so
// library callers (and tests) that pass no logger pay no cost.
package obs

import "github.com/sirupsen/logrus"

// Logger wraps an optional *logrus.Logger.
type Logger struct {
	l *logrus.Logger
}

// New wraps l. Passing nil yields a Logger whose methods are no-ops.
func New(l *logrus.Logger) *Logger {
	return &Logger{l: l}
}

// Default returns a Logger writing to stderr at Info level, for CLI
// use.
func Default() *Logger {
	return &Logger{l: logrus.StandardLogger()}
}

// Op logs a completed disk-mutating operation.
func (g *Logger) Op(op, file string, hdus, bytes int) {
	if g == nil || g.l == nil {
		return
	}
	g.l.WithFields(logrus.Fields{
		"op":    op,
		"file":  file,
		"hdu":   hdus,
		"bytes": bytes,
	}).Info("fits: operation complete")
}

// Error logs a failed operation.
func (g *Logger) Error(op, file string, err error) {
	if g == nil || g.l == nil {
		return
	}
	g.l.WithFields(logrus.Fields{
		"op":   op,
		"file": file,
	}).WithError(err).Error("fits: operation failed")
}
