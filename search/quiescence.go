// Copyright 2014-2016 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package search

// Quiescence resolves captures, promotions, and checks beyond the nominal
// search horizon, so Negamax never evaluates a position in the middle of
// an exchange. Grounded on a classic searchQuiescence: stand-pat first,
// then only noisy moves (the move's
// capture/promotion/check flags), fail-soft exactly like Negamax.
func (e *Engine[B]) Quiescence(alpha, beta int32) int32 {
	e.nodes++
	e.checkDeadline()
	if e.stopped {
		return alpha
	}

	hash := e.hash()
	ply := e.rootPly
	if e.repetition.isDraw(hash, ply) {
		return DrawScore
	}

	static := e.evaluate()
	if static >= beta {
		return static
	}
	localAlpha := max32(alpha, static)

	inCheck := e.collab.Check.IsKingInCheck(e.board, e.side)
	moves := e.noisyMoves()

	var bestMove Move = NullMove
	for _, move := range moves {
		if !inCheck && isFutileQuiescence(static, localAlpha, move) {
			continue
		}

		captured, legal := e.doMove(move)
		if !legal {
			continue
		}
		score := -e.Quiescence(-beta, -localAlpha)
		e.undoMove(move, captured)

		if score >= beta {
			return score
		}
		if score > localAlpha {
			localAlpha = score
			bestMove = move
		}
	}

	if alpha < localAlpha && localAlpha < beta {
		e.pv.Put(hash, bestMove)
	}
	return localAlpha
}

// noisyMoves returns the subset of legal moves that quiescence considers:
// captures, promotions, and checks, ordered by MVV/LVA via the shared move
// orderer so the strongest captures are tried (and can cause an early beta
// cutoff) first.
func (e *Engine[B]) noisyMoves() []Move {
	all := e.collab.Moves.GenerateLegal(e.board, e.side, e.captures)
	noisy := all[:0:0]
	for _, m := range all {
		if !m.Flags.IsQuiet() {
			noisy = append(noisy, m)
		}
	}
	scored := e.orderer.Order(noisy, e.rootPly, NullMove, NullMove, NullMove)
	out := make([]Move, len(scored))
	for i, sm := range scored {
		out[i] = sm.move
	}
	return out
}

// quiescenceFutilityMargin bounds how much a quiet-ish noisy move could
// still swing the static evaluation, grounded on a classic
// futilityMargin used the same way in searchQuiescence.
const quiescenceFutilityMargin = futilityMargin

// isFutileQuiescence reports whether move cannot plausibly raise static
// above alpha even with a generous margin, letting quiescence skip it
// without making/unmaking the move at all. Promotions are never pruned
// this way since they can swing the evaluation by more than the margin.
func isFutileQuiescence(static, alpha int32, move Move) bool {
	if move.Flags.IsPromotion() {
		return false
	}
	gain := int32(10) * pieceValue[move.Captured]
	return static+gain+quiescenceFutilityMargin < alpha
}
