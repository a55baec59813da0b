// Copyright 2014-2016 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parallel

import (
	"context"

	"github.com/sente-labs/shogi-search/search"
)

// runWorker drains tasks from its own deque and, once that runs dry, steals
// from sibling workers' deques (dqs, with selfIdx identifying this worker's
// own entry so it is skipped as a steal target). Each task indexes into
// roots/results directly; results[task.Index] is only ever written by the
// goroutine that popped that particular task, so no locking is needed on
// results itself.
func runWorker[B any](ctx context.Context, eng *search.Engine[B], dqs []*deque, selfIdx int, roots []RootMove[B], results []RootResult, flag *stopFlag) {
	own := dqs[selfIdx]
	for {
		if ctx.Err() != nil || flag.Stopped() {
			return
		}
		t, ok := own.popOwn()
		if !ok {
			t, ok = stealFrom(dqs, selfIdx)
			if !ok {
				return
			}
		}
		results[t.Index] = searchOneRoot(eng, roots[t.Index], t.Depth, flag)
	}
}

// stealFrom tries every sibling deque once, starting just after selfIdx, so
// repeated steal attempts across workers fan out rather than converging on
// whichever sibling happens to sort first.
func stealFrom(dqs []*deque, selfIdx int) (task, bool) {
	n := len(dqs)
	for i := 1; i < n; i++ {
		idx := (selfIdx + i) % n
		if t, ok := dqs[idx].steal(); ok {
			return t, true
		}
	}
	return task{}, false
}
