// Copyright 2014-2016 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parallel

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/sente-labs/shogi-search/search"
)

// Config configures a Driver. Zero value is not valid; see NewDriver.
type Config struct {
	// NumThreads is the number of worker goroutines; clamped to [1, 32] to
	// match search.Config.NumThreads.
	NumThreads int
	// MinDepthParallel is the shallowest remaining depth at which the root
	// is still split across workers; shallower searches run single
	// threaded on worker 0, since splitting has no payoff once there is
	// barely any tree left to divide.
	MinDepthParallel int
}

// RootMove is one legal move available at the search root, already applied
// by the caller to produce the child position to search. The Engine type
// never exposes MakeMove/UnmakeMove outside the search package (only the
// negamax core calls the MoveGenerator collaborator directly), so the
// driver cannot apply root moves itself; the caller, who already owns the
// MoveGenerator for board type B, applies each root move once up front and
// hands the driver the resulting child position.
type RootMove[B any] struct {
	Move     search.Move
	Board    B
	Side     search.Side
	Captures search.CaptureCounts
}

// RootResult is one worker's finding for a single root move. Score is
// always in the root side's frame (negated from the child search's own
// side-to-move-relative score), so results are directly comparable to pick
// a best move.
type RootResult struct {
	Move     search.Move
	Score    int32
	Depth    int
	Nodes    int64
	PV       []search.Move
	Searched bool
}

// EngineFactory builds one Engine for one worker. Workers need independent
// Engine instances (independent move-ordering state, independent board)
// even though they share the same TranspositionTable/EvaluationCache/
// CacheManager; the caller supplies this factory because only it knows how
// to clone its board type B and bind fresh Collaborators[B] to the clone.
type EngineFactory[B any] func(workerID int) (*search.Engine[B], error)

// Driver implements the Young-Brothers-Wait-Concept root splitter: move 0
// (the eldest brother, almost always the best-ordered move from the
// previous iteration) is searched alone first to establish a working
// transposition table population and history/killer seed, then the
// remaining root moves are split round-robin across one work-stealing
// deque per worker, each worker owning and draining its own before it
// steals from a sibling's. Grounded on a classic single-threaded
// search/Play, generalized to the fan-out pattern the Lazy SMP corpus
// (other_examples' hailam-chessplay worker.go) uses for its worker pool,
// restructured around YBWC's eldest-brother-first ordering instead of Lazy
// SMP's "every worker searches the whole root" redundancy.
type Driver[B any] struct {
	cfg     Config
	factory EngineFactory[B]
}

// NewDriver builds a Driver. cfg.NumThreads is clamped to [1, 32]; 0 or
// negative defaults to 1 (the single-threaded fallback path
// requires for a WASM sandbox, where goroutines cannot actually run
// concurrently).
func NewDriver[B any](cfg Config, factory EngineFactory[B]) *Driver[B] {
	if cfg.NumThreads < 1 {
		cfg.NumThreads = 1
	}
	if cfg.NumThreads > 32 {
		cfg.NumThreads = 32
	}
	return &Driver[B]{cfg: cfg, factory: factory}
}

// Run searches every move in roots to depth, returning one RootResult per
// root move (in roots' original order) plus the index of the best one.
// deadlineMS <= 0 means no deadline (relies on ctx/stop instead). nowMS
// reads the wall clock the same way the caller's search.TimeSource does, so
// the watchdog and the workers agree on elapsed time.
func (d *Driver[B]) Run(ctx context.Context, roots []RootMove[B], depth int, deadlineMS int64, nowMS func() int64) ([]RootResult, int, error) {
	if len(roots) == 0 {
		return nil, -1, nil
	}

	flag := &stopFlag{}
	done := make(chan struct{})
	go watchdog(deadlineMS, nowMS, flag, done)
	defer close(done)

	results := make([]RootResult, len(roots))

	// Search the eldest brother alone: this populates the transposition
	// table before any other goroutine starts, which is the core of YBWC
	// (as opposed to Lazy SMP's search-everything-from-the-start approach).
	eldest, err := d.factory(0)
	if err != nil {
		return nil, -1, err
	}
	results[0] = searchOneRoot(eldest, roots[0], depth, flag)
	if ctx.Err() != nil || flag.Stopped() {
		return results, bestIndex(results), nil
	}
	if depth < d.cfg.MinDepthParallel || len(roots) == 1 || d.cfg.NumThreads == 1 {
		// Below the parallel split threshold, or with no worker beyond the
		// eldest brother's: finish the remaining moves on the eldest
		// brother's own engine, single threaded, rather than paying
		// goroutine/deque overhead for a handful of plies.
		for i := 1; i < len(roots); i++ {
			results[i] = searchOneRoot(eldest, roots[i], depth, flag)
			if flag.Stopped() {
				break
			}
		}
		return results, bestIndex(results), nil
	}

	tasks := make([]task, 0, len(roots)-1)
	for i := 1; i < len(roots); i++ {
		tasks = append(tasks, task{Index: i, Depth: depth})
	}
	dqs := newDeques(tasks, d.cfg.NumThreads-1)

	g, gctx := errgroup.WithContext(ctx)
	for w := 1; w < d.cfg.NumThreads; w++ {
		workerID := w
		selfIdx := w - 1
		g.Go(func() error {
			eng, err := d.factory(workerID)
			if err != nil {
				return err
			}
			runWorker(gctx, eng, dqs, selfIdx, roots, results, flag)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, -1, err
	}

	return results, bestIndex(results), nil
}

// searchOneRoot runs the engine on root's already-applied child position
// and negates the result back into the root side's frame.
func searchOneRoot[B any](eng *search.Engine[B], root RootMove[B], depth int, flag *stopFlag) RootResult {
	eng.SetPosition(root.Board, root.Side, root.Captures)
	pv, score := eng.Search(flag)
	stats := eng.Stats()
	return RootResult{
		Move:     root.Move,
		Score:    -score,
		Depth:    depth,
		Nodes:    stats.Nodes,
		PV:       pv,
		Searched: true,
	}
}

func bestIndex(results []RootResult) int {
	best := -1
	for i, r := range results {
		if !r.Searched {
			continue
		}
		if best == -1 || r.Score > results[best].Score {
			best = i
		}
	}
	return best
}
