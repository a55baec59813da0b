// Copyright 2014-2016 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parallel

import (
	"sync/atomic"
	"time"
)

// watchdogPoll is how often the watchdog checks the deadline: fine enough
// that a deadline miss is never visible at normal search time budgets,
// coarse enough that the watchdog goroutine's own wakeups are not a
// measurable tax on the workers it is timing.
const watchdogPoll = 10 * time.Millisecond

// stopFlag is the cooperative cancellation flag shared by every worker in
// a Run call and the watchdog that may set it. It implements
// search.StopSignal so a worker's Engine can be handed it directly.
type stopFlag struct {
	stopped atomic.Bool
}

func (f *stopFlag) Stop()         { f.stopped.Store(true) }
func (f *stopFlag) Stopped() bool { return f.stopped.Load() }

// watchdog polls nowMS against deadlineMS every watchdogPoll and calls
// Stop on flag once it passes, unless done fires first (the search
// finished on its own, before the deadline). deadlineMS <= 0 means no
// deadline, in which case watchdog returns immediately without starting a
// timer -- callers rely on the external stop signal or MaxDepth instead.
func watchdog(deadlineMS int64, nowMS func() int64, flag *stopFlag, done <-chan struct{}) {
	if deadlineMS <= 0 {
		return
	}
	ticker := time.NewTicker(watchdogPoll)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if nowMS() >= deadlineMS {
				flag.Stop()
				return
			}
		}
	}
}
