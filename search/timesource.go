// Copyright 2014-2016 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package search

import (
	"time"

	"github.com/agilira/go-timecache"
)

// CachedTimeSource is the default TimeSource, backed by go-timecache's
// background-refreshed clock (agilira-balios/config.go's
// systemTimeProvider). It trades a small bounded staleness for avoiding a
// syscall on every NowMS call, which matters here since NowMS is polled
// from the hot move loop for cooperative cancellation.
type CachedTimeSource struct{}

func (CachedTimeSource) NowMS() int64 {
	return timecache.CachedTimeNano() / 1_000_000
}

// sandboxTimeSource falls back to an ordinary time.Now read. go-timecache
// refreshes its cache from a background goroutine, which a single-threaded
// WebAssembly sandbox cannot schedule; callers need a "compatible
// high-resolution wall-clock surrogate" for exactly this environment.
type sandboxTimeSource struct{}

func (sandboxTimeSource) NowMS() int64 {
	return time.Now().UnixMilli()
}

// SandboxTimeSource is the TimeSource to use when compiled for a
// single-threaded sandbox where go-timecache's refresh goroutine cannot run.
var SandboxTimeSource TimeSource = sandboxTimeSource{}
