// Copyright 2026 Kconfiglib project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

// Package debugtracer provides a small sink interface for long-running
// algorithms to report progress and dump intermediate artifacts.
package debugtracer

import (
	"fmt"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/0x4248/Kconfiglib/pkg/osutil"
)

type DebugTracer interface {
	Log(msg string, args ...interface{})
	SaveFile(filename string, data []byte)
}

// GenericTracer logs to a writer and saves files under OutDir (if set).
type GenericTracer struct {
	WithTime    bool
	TraceWriter io.Writer
	OutDir      string
}

// TestTracer routes trace output to a test log.
type TestTracer struct {
	T testing.TB
}

type NullTracer struct {
}

func (gt *GenericTracer) Log(msg string, args ...interface{}) {
	if gt.WithTime {
		fmt.Fprintf(gt.TraceWriter, "%v: "+msg+"\n",
			append([]interface{}{time.Now().Format("02-Jan-2006 15:04:05")}, args...)...)
		return
	}
	fmt.Fprintf(gt.TraceWriter, msg+"\n", args...)
}

func (gt *GenericTracer) SaveFile(filename string, data []byte) {
	if gt.OutDir == "" {
		return
	}
	osutil.MkdirAll(gt.OutDir)
	osutil.WriteFile(filepath.Join(gt.OutDir, filename), data)
}

func (tt *TestTracer) Log(msg string, args ...interface{}) {
	tt.T.Logf(msg, args...)
}

func (tt *TestTracer) SaveFile(filename string, data []byte) {
}

func (nt *NullTracer) Log(msg string, args ...interface{}) {
}

func (nt *NullTracer) SaveFile(filename string, data []byte) {
}
