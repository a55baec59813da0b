// Copyright 2014-2016 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package search

import "testing"

func TestHistoryTableAddAccumulatesQuadratically(t *testing.T) {
	h := newHistoryTable()
	m := Move{From: 1, To: 2, Piece: Pawn, Side: Black}
	h.add(m, 4)
	first := h.get(m)
	if first != 16 {
		t.Fatalf("expected depth^2 = 16 after one add, got %d", first)
	}
	h.add(m, 4)
	if h.get(m) != 32 {
		t.Fatalf("expected accumulation to 32 after a second add, got %d", h.get(m))
	}
}

func TestHistoryTableIgnoresNonQuietMoves(t *testing.T) {
	h := newHistoryTable()
	capture := Move{From: 1, To: 2, Piece: Pawn, Side: Black, Flags: FlagCapture, Captured: Silver}
	h.add(capture, 10)
	if h.get(capture) != 0 {
		t.Fatalf("expected a capture to never accumulate history, got %d", h.get(capture))
	}
}

func TestHistoryTableCapsAtMax(t *testing.T) {
	h := newHistoryTable()
	m := Move{From: 1, To: 2, Piece: Pawn, Side: Black}
	for i := 0; i < 100; i++ {
		h.add(m, 64)
	}
	if h.get(m) != historyMax {
		t.Fatalf("expected history to cap at %d, got %d", historyMax, h.get(m))
	}
}

func TestHistoryTableClear(t *testing.T) {
	h := newHistoryTable()
	m := Move{From: 1, To: 2, Piece: Pawn, Side: Black}
	h.add(m, 4)
	h.clear()
	if h.get(m) != 0 {
		t.Fatalf("expected clear to drop all scores, got %d", h.get(m))
	}
}

func TestKillerTableSaveAndIsKiller(t *testing.T) {
	kt := newKillerTable()
	m1 := Move{From: 1, To: 2, Piece: Pawn, Side: Black}
	m2 := Move{From: 3, To: 4, Piece: Gold, Side: Black}

	kt.save(5, m1, NullMove)
	if !kt.isKiller(5, m1) {
		t.Fatalf("expected m1 to be recorded as a killer at ply 5")
	}
	kt.save(5, m2, NullMove)
	if !kt.isKiller(5, m1) || !kt.isKiller(5, m2) {
		t.Fatalf("expected both killers to be retained in the two-slot window")
	}
}

func TestKillerTableIgnoresNonQuietMoves(t *testing.T) {
	kt := newKillerTable()
	capture := Move{From: 1, To: 2, Piece: Pawn, Side: Black, Flags: FlagCapture, Captured: Silver}
	kt.save(0, capture, NullMove)
	if kt.isKiller(0, capture) {
		t.Fatalf("expected a capture to never be saved as a killer")
	}
}

func TestKillerTableCounterMove(t *testing.T) {
	kt := newKillerTable()
	lastMove := Move{From: 9, To: 10, Piece: Gold, Side: White}
	refutation := Move{From: 1, To: 2, Piece: Pawn, Side: Black}
	kt.save(3, refutation, lastMove)

	if got := kt.counterMove(lastMove); !got.SameAs(refutation) {
		t.Fatalf("counterMove(lastMove) = %v, want %v", got, refutation)
	}
	if got := kt.counterMove(NullMove); !got.IsNull() {
		t.Fatalf("counterMove(NullMove) should return NullMove, got %v", got)
	}
}
