// Copyright 2014-2016 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package search

// timeReserveMS is subtracted from the configured time budget before it
// becomes e.deadlineMS, so that the last few milliseconds of overrun from
// finishing an in-flight node, building the PV, and logging never causes a
// caller-visible deadline miss. The engine honors a
// hard deadline; 100ms is generous enough to absorb that overrun on
// hardware an order of magnitude slower than what this was tuned against
// without meaningfully shortening deep searches.
const timeReserveMS = 100

// Search runs iterative deepening from the engine's current position,
// alternating widening aspiration windows (a classic
// search/Play) until stop is signaled, the configured deadline (less
// timeReserveMS) passes, or Config.MaxDepth is reached. Returns the best
// principal variation found and its score from the side to move's point of
// view; an empty PV means the position has no legal moves (checkmate or
// stalemate).
func (e *Engine[B]) Search(stop StopSignal) ([]Move, int32) {
	if stop == nil {
		stop = noopStopSignal{}
	}
	e.stop = stop
	e.stopped = false
	e.nodes = 0
	e.selDepth = 0
	e.searchStartMS = e.nowMS()
	e.iid.stats = IIDStats{}

	if e.cfg.TimeLimitMS > 0 {
		e.deadlineMS = e.nowMS() + e.cfg.TimeLimitMS - timeReserveMS
	} else {
		e.deadlineMS = 0
	}

	e.cfg.Logger.BeginSearch()
	defer e.cfg.Logger.EndSearch()

	var pv []Move
	score := int32(0)
	maxDepth := e.cfg.MaxDepth
	if maxDepth <= 0 || maxDepth > MaxPly {
		maxDepth = MaxPly
	}

	for depth := 1; depth <= maxDepth; depth++ {
		e.cacheMgr.IncrementAge()
		iterScore := e.searchAspirated(depth, score)
		if e.stopped && depth > 1 {
			break
		}
		score = iterScore
		pv = e.PV()
		stats := e.Stats()
		stats.Depth = depth
		e.cfg.Logger.PrintPV(stats, score, pv)

		if depth >= 3 && IsMateScore(score) {
			break
		}
		if e.stopped {
			break
		}
	}
	return pv, score
}

// searchAspirated runs Negamax at depth with a narrow window centered on
// estimated (the previous iteration's score), widening geometrically on
// fail-high/fail-low, a standard aspiration-window
// algorithm. Disabled below depth 4, where the overhead of re-searches
// outweighs the benefit of a narrow window.
func (e *Engine[B]) searchAspirated(depth int, estimated int32) int32 {
	delta := int32(initialAspiration)
	alpha, beta := estimated-delta, estimated+delta
	if depth < 4 {
		alpha, beta = -InfinityScore, InfinityScore
	}

	score := estimated
	for !e.stopped {
		score = e.Negamax(alpha, beta, depth)
		if score <= alpha {
			alpha = max32(alpha-delta, -InfinityScore)
			delta += delta / 2
		} else if score >= beta {
			beta = min32(beta+delta, InfinityScore)
			delta += delta / 2
		} else {
			return score
		}
	}
	return score
}
