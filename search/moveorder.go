// Copyright 2014-2016 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package search

// pieceValue approximates each piece's attacking/defending worth for
// MVV/LVA ordering only; it never contributes to the static evaluation
// score itself (that is Evaluator's job, out of scope here). Values are
// conventional centipawn-ish Shogi weights, grounded on the relative
// ordering classic chess material tables use (pawn smallest,
// rook/bishop largest non-royal pieces).
var pieceValue = [...]int32{
	NoPieceType:    0,
	Pawn:           1,
	Lance:          3,
	Knight:         3,
	Silver:         5,
	Gold:           6,
	Bishop:         8,
	Rook:           10,
	King:           0,
	PromotedPawn:   6,
	PromotedLance:  6,
	PromotedKnight: 6,
	PromotedSilver: 6,
	Horse:          10,
	Dragon:         12,
}

// Move ordering priority tiers, highest first. A scored move's final
// ordering key is one of these base values plus a small same-tier
// tiebreaker, so tiers never overlap regardless of tiebreaker magnitude.
const (
	orderIIDMove      int32 = 1_000_000
	orderTTMove       int32 = 900_000
	orderGoodCapture  int32 = 100_000 // + 1000 + 10*value
	orderPromotion    int32 = 80_000
	orderKillerFirst  int32 = 20_900
	orderKillerSecond int32 = 20_800
	orderCounterMove  int32 = 20_700
	orderCenterBonus  int32 = 20
)

// moveOrderer scores and sorts a ply's legal moves. One instance lives per
// search thread (held by Engine / a parallel worker's thread-local state),
// grounded on a classic move-ordering stack but restructured around
// a plain slice-sort instead of a generator state machine, since this
// package's MoveGenerator already returns every legal move at once rather
// than needing phased incremental generation.
type moveOrderer struct {
	history *historyTable
	killers *killerTable
	center  func(Square) bool
}

func newMoveOrderer(h *historyTable, k *killerTable) *moveOrderer {
	// center reports the central 3x3 squares (rows and columns 3-5 of the
	// row-major 9x9 numbering).
	center := func(s Square) bool {
		row, col := s/9, s%9
		return row >= 3 && row <= 5 && col >= 3 && col <= 5
	}
	return &moveOrderer{history: h, killers: k, center: center}
}

// scoredMove pairs a Move with its ordering key for sorting.
type scoredMove struct {
	move  Move
	score int32
}

// Order scores and sorts moves in place (descending score), given the
// node's ply, the TT-recommended move (if any), the IID-recommended move
// (if any, takes priority over the TT move), and
// the opponent's last move (for the counter-move heuristic).
func (mo *moveOrderer) Order(moves []Move, ply int, ttMove, iidMove, lastMove Move) []scoredMove {
	scored := make([]scoredMove, len(moves))
	for i, m := range moves {
		scored[i] = scoredMove{move: m, score: mo.score(m, ply, ttMove, iidMove, lastMove)}
	}
	shellSort(scored)
	return scored
}

func (mo *moveOrderer) score(m Move, ply int, ttMove, iidMove, lastMove Move) int32 {
	switch {
	case !iidMove.IsNull() && m.SameAs(iidMove):
		return orderIIDMove
	case !ttMove.IsNull() && m.SameAs(ttMove):
		return orderTTMove
	case m.Flags.IsCapture():
		return orderGoodCapture + 1000 + 10*pieceValue[m.Captured] - pieceValue[m.Piece]
	case m.Flags.IsPromotion():
		return orderPromotion + 800
	}

	ks := &mo.killers.killers[ply]
	switch {
	case m.SameAs(ks[0]):
		return orderKillerFirst
	case m.SameAs(ks[1]):
		return orderKillerSecond
	}
	if cm := mo.killers.counterMove(lastMove); !cm.IsNull() && m.SameAs(cm) {
		return orderCounterMove
	}

	score := mo.history.get(m)
	if mo.center != nil && mo.center(m.To) {
		score += orderCenterBonus
	}
	return score
}

// shellSort sorts scored descending by score, using the same gap sequence
// as a classic move-ordering sort -- good increments for the small
// (typically under 150 legal moves) slices move ordering deals with,
// avoiding the allocation overhead of sort.Slice's reflection-based swap.
var shellSortGaps = [...]int{132, 57, 23, 10, 4, 1}

func shellSort(s []scoredMove) {
	for _, gap := range shellSortGaps {
		for i := gap; i < len(s); i++ {
			j := i
			tmp := s[j]
			for ; j >= gap && s[j-gap].score < tmp.score; j -= gap {
				s[j] = s[j-gap]
			}
			s[j] = tmp
		}
	}
}
