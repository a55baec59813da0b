// Copyright 2014-2016 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package search

import "context"

// Board is left fully opaque: this package never inspects it, it only ever
// hands it to the collaborators below. B is a generic type parameter rather
// than interface{} so that a concrete board implementation (array-based,
// bitboard-based, whatever the caller's move generator needs) threads
// through the search without a boxing allocation per node.
//
// RepetitionState flags the position fingerprint used by the evaluation
// cache (see evalcache.go) so that a cached evaluation from one visit along
// the search path is never reused at a different repetition count of the
// same physical position.
type RepetitionState uint8

const (
	NoRepetition RepetitionState = iota
	OneRepetition
	TwoRepetition
)

// MoveGenerator is the out-of-scope collaborator that knows how to
// enumerate legal moves and apply/undo them on a board of type B. The core
// never constructs a B itself.
type MoveGenerator[B any] interface {
	// GenerateLegal returns every legal move for side in the given position.
	GenerateLegal(board B, side Side, captures CaptureCounts) []Move

	// IsPseudoLegal reports whether m is at least pseudo-legal in board for
	// side, used to validate a TT/IID move before trusting it for move
	// ordering without paying for full generation.
	IsPseudoLegal(board B, side Side, m Move) bool

	// MakeMove applies m to board, returning the captured piece type (if
	// any) and whether the move was legal (did not leave the mover's own
	// king in check). The board is mutated in place.
	MakeMove(board B, side Side, m Move) (captured PieceType, legal bool)

	// UnmakeMove reverses the effect of the most recent MakeMove call. The
	// core always unmakes exactly the moves it made, in LIFO order, so an
	// implementation may keep a single internal undo stack.
	UnmakeMove(board B, side Side, m Move, captured PieceType)
}

// Evaluator is the out-of-scope static evaluation function: one scalar per
// position, from side's point of view.
type Evaluator[B any] interface {
	Evaluate(board B, side Side) int32
}

// Zobrist is the out-of-scope position hasher.
type Zobrist[B any] interface {
	Hash(board B, side Side, captures CaptureCounts, repetition RepetitionState) Hash
}

// CheckDetector is the out-of-scope check predicate.
type CheckDetector[B any] interface {
	IsKingInCheck(board B, side Side) bool
}

// Collaborators bundles the four external contracts a search Engine needs.
// Bundling them (rather than four separate constructor parameters) mirrors
// how a classic Engine held a single *Position and is the natural Go
// shape for "the board library implements these four things".
type Collaborators[B any] struct {
	Moves     MoveGenerator[B]
	Eval      Evaluator[B]
	Hasher    Zobrist[B]
	Check     CheckDetector[B]
	TimeSource TimeSource
}

// TimeSource abstracts wall-clock reads so the engine never imports
// time.Now directly: in a sandbox where Instant-like
// monotonic clocks are unavailable, implementations MUST substitute a
// compatible high-resolution wall-clock surrogate". NowMS MUST be
// monotonic (non-decreasing across calls within one process lifetime).
type TimeSource interface {
	NowMS() int64
}

// Logger logs search progress. Mirrors a classic engine.Logger
// interface; ZapLogger (log.go) is a zap-backed implementation, while
// DefaultConfig uses NopLogger.
type Logger interface {
	BeginSearch()
	EndSearch()
	PrintPV(stats Stats, score int32, pv []Move)
	Warn(msg string, fields ...any)
}

// NopLogger implements Logger with no-ops. It is the Logger of
// DefaultConfig and every preset, and the one an Engine falls back to.
type NopLogger struct{}

func (NopLogger) BeginSearch()                                {}
func (NopLogger) EndSearch()                                  {}
func (NopLogger) PrintPV(Stats, int32, []Move)                {}
func (NopLogger) Warn(string, ...any)                          {}

// StopSignal is the cooperative cancellation handle shared between a
// caller and a running search: Stop() requests cancellation, Stopped()
// polls it. It composes with context.Context so a caller that already uses
// contexts for cancellation/timeouts can adapt one to the other (see
// NewContextStopSignal).
type StopSignal interface {
	Stop()
	Stopped() bool
}

// NewContextStopSignal adapts a context.Context's cancellation into a
// StopSignal, for callers that prefer to drive search lifecycle through
// context.
func NewContextStopSignal(ctx context.Context) StopSignal {
	return ctxStop{ctx}
}

type ctxStop struct{ ctx context.Context }

func (c ctxStop) Stop()         {}
func (c ctxStop) Stopped() bool { return c.ctx.Err() != nil }
