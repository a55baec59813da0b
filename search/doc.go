// Copyright 2014-2016 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package search implements the core alpha-beta search engine for a Shogi
// playing program: the transposition table, evaluation cache, move ordering,
// iterative-deepening negamax with PVS, and the stats/tuning surface that
// feeds a parallel driver (see the sibling package parallel).
//
// Board representation, legal move generation, static evaluation and
// Zobrist hashing are NOT implemented here. They are external collaborators
// consumed through the MoveGenerator, Evaluator, Zobrist and CheckDetector
// interfaces in interfaces.go, so that this package can be linked against
// any Shogi board library, including one running inside a single-threaded
// WebAssembly sandbox.
//
// Search (negamax.go, quiescence.go, iterative.go) features implemented are:
//
//   - Iterative deepening with a time reserve - see iterative.go
//   - Negamax framework with fail-soft bounds
//   - Principal variation search (PVS)
//   - Quiescence search over noisy moves only
//   - Null move pruning
//   - Futility pruning
//   - Late move reductions (LMR)
//   - Internal iterative deepening (IID) - see iid.go
//   - History and killer move heuristics - see history.go, moveorder.go
//
// Caching (tt_entry.go, tt.go, evalcache.go, cachemanager.go) implements a
// packed, atomically-readable transposition table entry, a bounded
// open-addressed transposition table with a pluggable replacement policy, a
// second position-level evaluation cache, and the cache management layer
// that reports on both of them (only the transposition table carries an age).
package search
