// Copyright 2014-2016 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package search

// Tuning constants, grounded on classic engine.go constants of the
// same name and role, adjusted for ply-granular (rather than chess
// depth-granular) search.
const (
	checkDepthExtension = 1   // ply added when a move gives check
	nullMoveDepthLimit  = 1   // disable null-move at or below this remaining depth
	lmrDepthLimit       = 3   // do not reduce at or below this remaining depth
	futilityDepthLimit  = 3   // maximum remaining depth for futility pruning
	initialAspiration   = 21  // initial aspiration window half-width
	futilityMargin      = 150 // per-ply futility margin
	checkpointNodes     = 1024 // nodes between deadline/stop-signal polls
)

// Engine searches for the best move in a position of board type B, using
// the out-of-scope collaborators supplied at construction. One Engine is
// single-threaded state: the parallel driver (see the sibling package
// parallel) owns one Engine per worker.
type Engine[B any] struct {
	cfg    Config
	collab Collaborators[B]

	tt         *TranspositionTable
	evalCache  *EvaluationCache
	cacheMgr   *CacheManager
	history    *historyTable
	killers    *killerTable
	orderer    *moveOrderer
	iid        *iidController
	pv         *pvTable
	repetition *repetitionTracker

	board    B
	side     Side
	captures CaptureCounts
	rootPly  int

	stop          StopSignal
	nodes         int64
	selDepth      int
	deadlineMS    int64
	searchStartMS int64
	stopped       bool

	lastMoveByPly [MaxPly]Move
}

// NewEngine validates cfg and builds an Engine wired to collab. Caches are
// created fresh; share a *TranspositionTable/*EvaluationCache across
// engines (see the parallel package) by using NewSharedEngine instead.
func NewEngine[B any](cfg Config, collab Collaborators[B]) (*Engine[B], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	mgr := NewCacheManager(cfg.MaxAge)
	tt := NewTranspositionTable(cfg.TTSizeMB, cfg.TTReplacementPolicy, mgr)
	evalCache := NewEvaluationCache(cfg.EvalCacheSizeMB, cfg.EvalCacheReplacementPolicy)
	mgr.tt = tt
	mgr.eval = evalCache
	return newEngineWithCaches(cfg, collab, tt, evalCache, mgr), nil
}

// NewSharedEngine builds an Engine that shares tt/evalCache/mgr with
// sibling engines, which is how the parallel driver gives every worker its
// own search-local move ordering state while all of them probe and store
// into the same caches.
func NewSharedEngine[B any](cfg Config, collab Collaborators[B], tt *TranspositionTable, evalCache *EvaluationCache, mgr *CacheManager) (*Engine[B], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return newEngineWithCaches(cfg, collab, tt, evalCache, mgr), nil
}

func newEngineWithCaches[B any](cfg Config, collab Collaborators[B], tt *TranspositionTable, evalCache *EvaluationCache, mgr *CacheManager) *Engine[B] {
	if collab.TimeSource == nil {
		collab.TimeSource = CachedTimeSource{}
	}
	if cfg.Logger == nil {
		cfg.Logger = NopLogger{}
	}
	h := newHistoryTable()
	k := newKillerTable()
	return &Engine[B]{
		cfg:        cfg,
		collab:     collab,
		tt:         tt,
		evalCache:  evalCache,
		cacheMgr:   mgr,
		history:    h,
		killers:    k,
		orderer:    newMoveOrderer(h, k),
		iid:        newIIDController(cfg.IID),
		pv:         newPVTable(),
		repetition: newRepetitionTracker(),
		stop:       noopStopSignal{},
	}
}

// SetPosition sets the position Engine searches from. rootPly is reset to 0:
// ply() is always measured relative to the most recent SetPosition call.
func (e *Engine[B]) SetPosition(board B, side Side, captures CaptureCounts) {
	e.board = board
	e.side = side
	e.captures = captures
	e.rootPly = 0
	e.repetition.reset()
}

// Stats returns a snapshot of the most recent search's statistics.
func (e *Engine[B]) Stats() Stats {
	return Stats{
		Nodes:     e.nodes,
		SelDepth:  e.selDepth,
		ElapsedMS: e.nowMS() - e.searchStartMS,
		IID:       e.iid.stats,
	}
}

// TranspositionTable exposes the engine's table, e.g. for Hashfull()
// reporting or cache warming via CacheManager.WarmFromSeed.
func (e *Engine[B]) TranspositionTable() *TranspositionTable { return e.tt }

// EvaluationCache exposes the engine's evaluation cache.
func (e *Engine[B]) EvaluationCache() *EvaluationCache { return e.evalCache }

// CacheStatistics returns the combined TT/eval cache statistics.
func (e *Engine[B]) CacheStatistics() CacheStatistics { return e.cacheMgr.Stats() }

type noopStopSignal struct{}

func (noopStopSignal) Stop()         {}
func (noopStopSignal) Stopped() bool { return false }

// ply returns the number of plies searched since the last SetPosition.
func (e *Engine[B]) ply() int {
	return e.rootPly
}

// nowMS reads the engine's TimeSource.
func (e *Engine[B]) nowMS() int64 {
	return e.collab.TimeSource.NowMS()
}

// checkDeadline polls the stop signal and the deadline every
// checkpointNodes nodes, a classic "every node / every ~1024 nodes"
// cooperative cancellation rule. Once tripped, e.stopped stays true for the
// remainder of this search call.
func (e *Engine[B]) checkDeadline() {
	if e.stopped {
		return
	}
	if e.nodes%checkpointNodes != 0 {
		return
	}
	if e.stop.Stopped() {
		e.stopped = true
		return
	}
	if e.deadlineMS > 0 && e.nowMS() >= e.deadlineMS {
		e.stopped = true
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
