// Copyright 2014-2016 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package search

import "testing"

func TestDemoteForHand(t *testing.T) {
	cases := []struct {
		in   PieceType
		want PieceType
	}{
		{PromotedPawn, Pawn},
		{PromotedLance, Lance},
		{PromotedKnight, Knight},
		{PromotedSilver, Silver},
		{Horse, Bishop},
		{Dragon, Rook},
		{King, NoPieceType},
		{Gold, Gold},
		{Pawn, Pawn},
	}
	for _, c := range cases {
		if got := demoteForHand(c.in); got != c.want {
			t.Errorf("demoteForHand(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestApplyAndUndoCaptureDeltaRoundTrip(t *testing.T) {
	var captures CaptureCounts
	capture := Move{Piece: Rook, Side: Black, Flags: FlagCapture, Captured: Horse}
	applyCaptureDelta(&captures, Black, capture)

	idx := dropIndex(Bishop)
	if idx < 0 || captures[Black][idx] != 1 {
		t.Fatalf("expected a captured Horse to demote to one Bishop in hand, got %+v", captures)
	}

	undoCaptureDelta(&captures, Black, capture, Horse)
	if captures[Black][idx] != 0 {
		t.Fatalf("expected undo to remove the hand piece, got %+v", captures)
	}
}

func TestApplyAndUndoDropDelta(t *testing.T) {
	var captures CaptureCounts
	idx := dropIndex(Pawn)
	captures[White][idx] = 2

	drop := Move{From: NoSquare, To: 5, Piece: Pawn, Side: White}
	applyCaptureDelta(&captures, White, drop)
	if captures[White][idx] != 1 {
		t.Fatalf("expected a drop to remove one Pawn from hand, got %d", captures[White][idx])
	}

	undoCaptureDelta(&captures, White, drop, NoPieceType)
	if captures[White][idx] != 2 {
		t.Fatalf("expected undo to restore the dropped Pawn to hand, got %d", captures[White][idx])
	}
}

func TestApplyCaptureDeltaNeverUnderflows(t *testing.T) {
	var captures CaptureCounts
	drop := Move{From: NoSquare, To: 5, Piece: Pawn, Side: Black}
	applyCaptureDelta(&captures, Black, drop) // already zero, must not wrap
	idx := dropIndex(Pawn)
	if captures[Black][idx] != 0 {
		t.Fatalf("expected applyCaptureDelta to refuse to underflow, got %d", captures[Black][idx])
	}
}

func TestDropIndexRejectsUndroppablePieces(t *testing.T) {
	if dropIndex(King) != -1 {
		t.Fatalf("King must never be droppable")
	}
	if dropIndex(NoPieceType) != -1 {
		t.Fatalf("NoPieceType must never be droppable")
	}
	if dropIndex(Pawn) < 0 {
		t.Fatalf("Pawn must be droppable")
	}
}
