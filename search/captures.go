// Copyright 2014-2016 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package search

// demoteForHand maps a promoted piece type back to the base type it is
// held as in hand once captured, per Shogi rules (a captured promoted
// piece reverts to its unpromoted form in the capturing player's hand).
// Kings are never captured and never droppable, so they map to
// NoPieceType, which dropIndex then ignores.
func demoteForHand(pt PieceType) PieceType {
	switch pt {
	case PromotedPawn:
		return Pawn
	case PromotedLance:
		return Lance
	case PromotedKnight:
		return Knight
	case PromotedSilver:
		return Silver
	case Horse:
		return Bishop
	case Dragon:
		return Rook
	case King:
		return NoPieceType
	default:
		return pt
	}
}

// dropIndex returns pt's slot in CaptureCounts, or -1 if pt is never held
// in hand (King, NoPieceType, or a promoted type). Gold has no promoted
// form but is held and dropped like the other base pieces, so it has a
// slot (see pieceDropOrder).
func dropIndex(pt PieceType) int {
	for i, p := range pieceDropOrder {
		if p == pt {
			return i
		}
	}
	return -1
}

// applyCaptureDelta updates captures in place to reflect playing m for
// side: a capture adds the demoted captured piece to side's hand, a drop
// removes one from it. This lets the Engine track hand-piece counts
// generically from the Move stream alone, without the external
// MoveGenerator needing to expose them -- see interfaces.go's MakeMove,
// which only returns the captured piece type.
func applyCaptureDelta(captures *CaptureCounts, side Side, m Move) {
	if m.IsDrop() {
		if i := dropIndex(m.Piece); i >= 0 {
			if captures[side][i] > 0 {
				captures[side][i]--
			}
		}
		return
	}
	if m.Flags.IsCapture() {
		if i := dropIndex(demoteForHand(m.Captured)); i >= 0 {
			captures[side][i]++
		}
	}
}

// undoCaptureDelta reverses applyCaptureDelta, given the same move and the
// piece MakeMove reported as captured.
func undoCaptureDelta(captures *CaptureCounts, side Side, m Move, captured PieceType) {
	if m.IsDrop() {
		if i := dropIndex(m.Piece); i >= 0 {
			captures[side][i]++
		}
		return
	}
	if captured != NoPieceType {
		if i := dropIndex(demoteForHand(captured)); i >= 0 {
			if captures[side][i] > 0 {
				captures[side][i]--
			}
		}
	}
}
