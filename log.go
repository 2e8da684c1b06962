// Copyright 2026 The Wheel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE file.

package wheel

import (
	"github.com/intuitivelabs/slog"
)

// Log is the package-level logger. Callers that want different
// verbosity or a different output sink can reconfigure it directly,
// e.g. Log.Level = slog.LDBG.
var Log slog.Log = slog.Log{
	Level:      slog.LWARN,
	Prefix:     NAME + ": ",
	TimeFormat: slog.TimeFormatNone,
}

func DBGon() bool  { return Log.DBGon() }
func WARNon() bool { return Log.WARNon() }
func ERRon() bool  { return Log.ERRon() }

func DBG(f string, a ...interface{})   { Log.LogMux(slog.LDBG, 1, f, a...) }
func INFO(f string, a ...interface{})  { Log.LogMux(slog.LINFO, 1, f, a...) }
func WARN(f string, a ...interface{})  { Log.LogMux(slog.LWARN, 1, f, a...) }
func ERR(f string, a ...interface{})   { Log.LogMux(slog.LERR, 1, f, a...) }
func BUG(f string, a ...interface{})   { Log.LogMux(slog.LBUG, 1, "BUG: "+f, a...) }
func PANIC(f string, a ...interface{}) { Log.PANIC(f, a...) }
