// Copyright 2014-2016 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package faketest

// ManualClock is a search.TimeSource a test advances explicitly, so time
// budget/deadline behavior is deterministic instead of racing the real
// wall clock.
type ManualClock struct {
	ms int64
}

// NewManualClock returns a clock starting at 0ms.
func NewManualClock() *ManualClock { return &ManualClock{} }

func (c *ManualClock) NowMS() int64 { return c.ms }

// Advance moves the clock forward by deltaMS.
func (c *ManualClock) Advance(deltaMS int64) { c.ms += deltaMS }
