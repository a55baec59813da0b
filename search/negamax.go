// Copyright 2014-2016 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package search

// hash computes the engine's current position identity. It always passes
// NoRepetition to the Hasher: the actual repetition count (tracked
// separately by e.repetition) is folded in only where it matters, namely
// the evaluation cache key (evalcache.go's Get/Put take hash and
// RepetitionState as independent arguments). Hashing the bare identity
// here means the transposition table, PV table, and repetition tracker all
// agree on what "the same position" means.
func (e *Engine[B]) hash() Hash {
	return e.collab.Hasher.Hash(e.board, e.side, e.captures, NoRepetition)
}

// doMove applies m, updates hand-piece counts, flips the side to move, and
// pushes the resulting hash onto the repetition path. Returns the piece
// MakeMove reports as captured (needed to undo) and whether m was legal;
// an illegal move is unmade immediately and must not be searched.
func (e *Engine[B]) doMove(m Move) (captured PieceType, legal bool) {
	captured, legal = e.collab.Moves.MakeMove(e.board, e.side, m)
	if !legal {
		e.collab.Moves.UnmakeMove(e.board, e.side, m, captured)
		return captured, false
	}
	applyCaptureDelta(&e.captures, e.side, m)
	e.lastMoveByPly[e.rootPly] = m
	e.side = e.side.Opposite()
	e.rootPly++
	e.repetition.push(e.hash())
	return captured, true
}

// undoMove reverses the most recent doMove.
func (e *Engine[B]) undoMove(m Move, captured PieceType) {
	e.repetition.pop()
	e.rootPly--
	e.side = e.side.Opposite()
	undoCaptureDelta(&e.captures, e.side, m, captured)
	e.collab.Moves.UnmakeMove(e.board, e.side, m, captured)
}

// Negamax searches the current position to depth plies within [alpha,
// beta], fail-soft (the returned score may lie outside the window), and
// returns the score from e.side's point of view. This is the generalized
// equivalent of classic searchTree: same pruning techniques
// (null-move, futility, LMR, mate-distance), same fail-soft convention,
// adapted to a generic board and widened with IID (iid.go) and a
// repetition-aware transposition probe instead of a
// chess-specific endPosition().
func (e *Engine[B]) Negamax(alpha, beta int32, depth int) int32 {
	ply := e.rootPly
	pvNode := alpha+1 < beta

	e.nodes++
	e.checkDeadline()
	if e.stopped {
		return alpha
	}
	if pvNode && ply > e.selDepth {
		e.selDepth = ply
	}

	hash := e.hash()
	if r := e.repetition.stateFor(hash); r != NoRepetition && e.repetition.isDraw(hash, ply) {
		return DrawScore
	}

	// Mate distance pruning: an ancestor already guarantees a mate no later
	// than `ply` plies from here, so nothing found at this node can beat it.
	if MateScore-int32(ply) <= alpha {
		return KnownWinScore
	}

	var ttMove Move = NullMove
	if entry, ok := e.tt.Probe(hash, e.side); ok {
		ttMove = entry.Move
		if depth <= int(entry.Depth) {
			score := adjustMateScoreFromTT(entry.Score, ply)
			if entry.Bound.InBounds(score, alpha, beta) {
				if entry.Bound == BoundExact && alpha < score && score < beta {
					e.pv.Put(hash, ttMove)
				}
				return score
			}
		}
	}

	if depth <= 0 {
		if alpha >= KnownWinScore || beta <= KnownLossScore {
			return e.evaluate()
		}
		score := e.Quiescence(alpha, beta)
		e.storeTT(hash, alpha, beta, 0, score, NullMove)
		return score
	}

	inCheck := e.collab.Check.IsKingInCheck(e.board, e.side)

	// Null move pruning: if passing the move entirely still fails high, the
	// position is already so good the opponent would never allow it.
	if depth > nullMoveDepthLimit && !inCheck && KnownLossScore < alpha && beta < KnownWinScore {
		captured, legal := e.doMove(NullMove)
		if legal {
			reduction := 2
			score := -e.Negamax(-beta, -beta+1, depth-1-reduction)
			e.undoMove(NullMove, captured)
			if score >= beta {
				return score
			}
		}
	}

	// Futility pre-evaluation at frontier nodes.
	allowLeafPruning := depth <= futilityDepthLimit && !inCheck && !pvNode && KnownLossScore < alpha && beta < KnownWinScore
	var static int32
	if allowLeafPruning {
		static = e.evaluate()
	}

	moves := e.collab.Moves.GenerateLegal(e.board, e.side, e.captures)
	if len(moves) == 0 {
		if inCheck {
			return MatedScore + int32(ply)
		}
		return DrawScore
	}

	// Internal iterative deepening: when this node lacks a usable TT move,
	// spend a shallow probe to recommend one for move ordering.
	iidMove := NullMove
	hasTTMove := !ttMove.IsNull() && e.collab.Moves.IsPseudoLegal(e.board, e.side, ttMove)
	if run, _ := e.iid.shouldRun(hasTTMove, depth, len(moves), e.elapsedFraction()); run {
		iidMove = e.runIID(depth)
	}

	lastMove := NullMove
	if ply > 0 {
		lastMove = e.lastMoveByPly[ply-1]
	}
	scored := e.orderer.Order(moves, ply, ttMove, iidMove, lastMove)

	allowLateMove := !inCheck && depth > lmrDepthLimit
	bestMove, bestScore := NullMove, -InfinityScore
	localAlpha := alpha
	nullWindow := false
	numMoves := 0
	alphaImproved := false

	for _, sm := range scored {
		move := sm.move
		numMoves++
		critical := move.SameAs(ttMove) || e.killers.isKiller(ply, move)

		captured, legal := e.doMove(move)
		if !legal {
			continue
		}

		givesCheck := e.collab.Check.IsKingInCheck(e.board, e.side)
		newDepth := depth
		if givesCheck {
			newDepth += checkDepthExtension
		}

		lmr := 0
		if allowLateMove && !givesCheck && !critical && move.Flags.IsQuiet() {
			lmr = 1 + minInt(depth, numMoves)/5
		}

		if allowLeafPruning && !givesCheck && !critical && move.Flags.IsQuiet() {
			margin := int32(depth) * futilityMargin
			if static+margin < localAlpha {
				e.undoMove(move, captured)
				continue
			}
		}

		score := e.searchChild(localAlpha, beta, newDepth, lmr, nullWindow, move)
		e.undoMove(move, captured)

		if allowLeafPruning && !givesCheck {
			if score > alpha {
				e.history.add(move, depth)
			}
		}

		if !alphaImproved && score > alpha {
			alphaImproved = true
			if !iidMove.IsNull() && move.SameAs(iidMove) {
				e.iid.recordFirstImprove()
			}
		}

		if score >= beta {
			e.killers.save(ply, move, lastMove)
			e.storeTT(hash, alpha, beta, depth, score, move)
			if !iidMove.IsNull() && move.SameAs(iidMove) {
				e.iid.recordCutoff()
			}
			return score
		}
		if score > bestScore {
			nullWindow = true
			bestMove, bestScore = move, score
			if score > localAlpha {
				localAlpha = score
			}
		}
	}

	e.storeTT(hash, alpha, beta, depth, bestScore, bestMove)
	if alpha < bestScore && bestScore < beta {
		e.pv.Put(hash, bestMove)
	}
	if !iidMove.IsNull() {
		e.iid.recordMoveMatch(bestMove.SameAs(iidMove))
	}
	return bestScore
}

// searchChild descends into move, which has already been made, applying
// principal variation search with late move reductions: a reduced-depth,
// null-window search first, re-searched at full depth/window only if it
// fails to refute alpha. Grounded on a classic tryMove helper.
func (e *Engine[B]) searchChild(alpha, beta int32, depth, lmr int, nullWindow bool, move Move) int32 {
	depth--
	score := alpha + 1
	if lmr > 0 {
		score = -e.Negamax(-alpha-1, -alpha, depth-lmr)
	}
	if score > alpha {
		if nullWindow {
			score = -e.Negamax(-alpha-1, -alpha, depth)
			if alpha < score && score < beta {
				score = -e.Negamax(-beta, -alpha, depth)
			}
		} else {
			score = -e.Negamax(-beta, -alpha, depth)
		}
	}
	return score
}

// runIID performs the shallow internal iterative deepening probe and
// returns the move it recommends, or NullMove if none was found (e.g. the
// probe itself hit the search deadline).
func (e *Engine[B]) runIID(depthRemaining int) Move {
	probeDepth := e.iid.probeDepth(depthRemaining)
	e.iid.recordAttempt(probeDepth)
	nodesBefore := e.nodes
	startMS := e.nowMS()
	e.Negamax(-InfinityScore, InfinityScore, probeDepth)
	elapsedMS := e.nowMS() - startMS
	move := e.pv.Get(e.hash())
	e.iid.recordResult(e.nodes-nodesBefore, elapsedMS, !move.IsNull(), move)
	return move
}

// elapsedFraction estimates how much of the configured time budget has
// been consumed, used by iid.go's time-pressure skip rule. Returns 0 when
// there is no time limit configured.
func (e *Engine[B]) elapsedFraction() float64 {
	if e.cfg.TimeLimitMS <= 0 || e.deadlineMS <= 0 {
		return 0
	}
	remaining := e.deadlineMS - e.nowMS()
	if remaining <= 0 {
		return 1
	}
	return 1 - float64(remaining)/float64(e.cfg.TimeLimitMS)
}

// evaluate returns the static evaluation of the current position from
// e.side's point of view, through the evaluation cache.
func (e *Engine[B]) evaluate() int32 {
	hash := e.hash()
	rep := e.repetition.stateFor(hash)
	return e.evalCache.GetOrCompute(hash, rep, func() int32 {
		return e.collab.Eval.Evaluate(e.board, e.side)
	})
}

// storeTT stores a search result, converting fail-soft (alpha, beta)
// bounds into a Bound and adjusting mate scores to be root-relative before
// storage, mirroring a classic updateHash.
func (e *Engine[B]) storeTT(hash Hash, alpha, beta int32, depth int, score int32, move Move) {
	bound := boundFor(score, alpha, beta)
	stored := adjustMateScoreToTT(score, e.rootPly, bound)
	if stored == unstorableMateBound {
		return
	}
	e.tt.Store(hash, e.side, stored, int8(depth), bound, move)
}

const unstorableMateBound = InfinityScore + 1

// adjustMateScoreFromTT converts a root-relative mate score stored in the
// transposition table back into one relative to the current ply, per the
// classic retrieveHash comment.
func adjustMateScoreFromTT(score int32, ply int) int32 {
	if score < KnownLossScore {
		return score + int32(ply)
	}
	if score > KnownWinScore {
		return score - int32(ply)
	}
	return score
}

// adjustMateScoreToTT converts a ply-relative mate score into the
// root-relative form stored in the table, clamping non-exact bounds to the
// nearest known win/loss score exactly as a classic updateHash does,
// and signaling "do not store" for a failed-high loss / failed-low win
// (which a classic updateHash also declines to store).
func adjustMateScoreToTT(score int32, ply int, bound Bound) int32 {
	if score < KnownLossScore {
		switch bound {
		case BoundExact:
			return score - int32(ply)
		case BoundUpper:
			return KnownLossScore
		default:
			return unstorableMateBound
		}
	}
	if score > KnownWinScore {
		switch bound {
		case BoundExact:
			return score + int32(ply)
		case BoundLower:
			return KnownWinScore
		default:
			return unstorableMateBound
		}
	}
	return score
}
