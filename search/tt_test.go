// Copyright 2014-2016 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package search

import "testing"

func TestTranspositionTableRoundTrip(t *testing.T) {
	mgr := NewCacheManager(1 << 20)
	tt := NewTranspositionTable(1, AlwaysReplace, mgr)
	mgr.tt = tt

	move := Move{From: 3, To: 12, Piece: Silver}
	tt.Store(Hash(0xdeadbeef), Black, 123, 5, BoundExact, move)

	entry, ok := tt.Probe(Hash(0xdeadbeef), Black)
	if !ok {
		t.Fatalf("expected a probe hit after Store")
	}
	if entry.Score != 123 || entry.Depth != 5 || entry.Bound != BoundExact {
		t.Fatalf("round-tripped entry mismatch: %+v", entry)
	}
	if !entry.Move.SameAs(move) {
		t.Fatalf("round-tripped move mismatch: got %v want %v", entry.Move, move)
	}
}

func TestTranspositionTableMissOnUnknownKey(t *testing.T) {
	mgr := NewCacheManager(1 << 20)
	tt := NewTranspositionTable(1, AlwaysReplace, mgr)
	if _, ok := tt.Probe(Hash(42), Black); ok {
		t.Fatalf("expected a miss on an empty table")
	}
}

func TestTranspositionTableDepthPreferredKeepsDeeper(t *testing.T) {
	mgr := NewCacheManager(1 << 20)
	tt := NewTranspositionTable(1, DepthPreferred, mgr)
	mgr.tt = tt

	deep := Move{To: 1, Piece: Pawn}
	shallow := Move{To: 2, Piece: Pawn}

	tt.Store(Hash(7), Black, 10, 8, BoundExact, deep)
	// A different key colliding into the same pair of candidate slots with
	// a shallower depth must not evict the deeper entry under
	// DepthPreferred -- unless both candidate slots are occupied by
	// deeper entries, in which case the fallback tie-break
	// (always overwrite the primary slot) applies instead. Exercise the
	// policy function directly to avoid depending on split()'s exact slot
	// assignment.
	if tt.shouldReplace(&tt.table[uint64(7)&tt.mask], Hash(99), 3, BoundExact, mgr.currentAge()) {
		t.Fatalf("DepthPreferred should refuse to replace a deeper entry with a shallower one")
	}
	if !tt.shouldReplace(&tt.table[uint64(7)&tt.mask], Hash(99), 9, BoundExact, mgr.currentAge()) {
		t.Fatalf("DepthPreferred should accept a deeper entry")
	}
	_ = shallow
}

func TestTranspositionTableAgeBasedKeepsRecentGeneration(t *testing.T) {
	mgr := NewCacheManager(1 << 20)
	tt := NewTranspositionTable(1, AgeBased, mgr)
	mgr.tt = tt

	tt.Store(Hash(7), Black, 10, 8, BoundExact, Move{To: 1, Piece: Pawn})
	mgr.IncrementAge()

	if tt.shouldReplace(&tt.table[uint64(7)&tt.mask], Hash(99), 1, BoundExact, mgr.currentAge()) {
		t.Fatalf("AgeBased should keep an entry only one generation old")
	}
}

func TestTranspositionTableAgeBasedReplacesStaleGeneration(t *testing.T) {
	mgr := NewCacheManager(1 << 20)
	tt := NewTranspositionTable(1, AgeBased, mgr)
	mgr.tt = tt

	tt.Store(Hash(7), Black, 10, 8, BoundExact, Move{To: 1, Piece: Pawn})
	for i := 0; i <= ageBasedReplacementThreshold; i++ {
		mgr.IncrementAge()
	}

	if !tt.shouldReplace(&tt.table[uint64(7)&tt.mask], Hash(99), 1, BoundExact, mgr.currentAge()) {
		t.Fatalf("AgeBased should replace an entry more than %d generations old regardless of depth", ageBasedReplacementThreshold)
	}
}

func TestTranspositionTableDepthAndAgeKeepsDeeperRecentEntry(t *testing.T) {
	mgr := NewCacheManager(1 << 20)
	tt := NewTranspositionTable(1, DepthAndAge, mgr)
	mgr.tt = tt

	tt.Store(Hash(7), Black, 10, 8, BoundExact, Move{To: 1, Piece: Pawn})
	mgr.IncrementAge()

	if tt.shouldReplace(&tt.table[uint64(7)&tt.mask], Hash(99), 1, BoundExact, mgr.currentAge()) {
		t.Fatalf("DepthAndAge should keep a deeper, only-slightly-stale entry")
	}
	if !tt.shouldReplace(&tt.table[uint64(7)&tt.mask], Hash(99), 9, BoundExact, mgr.currentAge()) {
		t.Fatalf("DepthAndAge should accept an at-least-as-deep entry")
	}
}

func TestTranspositionTableDepthAndAgeOverridesShallowVeryStaleEntry(t *testing.T) {
	mgr := NewCacheManager(1 << 20)
	tt := NewTranspositionTable(1, DepthAndAge, mgr)
	mgr.tt = tt

	tt.Store(Hash(7), Black, 10, 8, BoundExact, Move{To: 1, Piece: Pawn})
	for i := 0; i <= depthAndAgeOverrideThreshold; i++ {
		mgr.IncrementAge()
	}

	if !tt.shouldReplace(&tt.table[uint64(7)&tt.mask], Hash(99), 1, BoundExact, mgr.currentAge()) {
		t.Fatalf("DepthAndAge should replace an entry more than %d generations old even if shallower", depthAndAgeOverrideThreshold)
	}
}

func TestNewTranspositionTableRoundsSizeUp(t *testing.T) {
	// 1MB / 16 bytes/entry = 65536 requested entries, already a power of
	// two, so force a non-power-of-two request by using more memory.
	mgr := NewCacheManager(1 << 20)
	tt := NewTranspositionTable(3, AlwaysReplace, mgr) // 3<<20/16 = 196608
	if got := tt.Size(); got != 262144 {
		t.Fatalf("Size() = %d, want 262144 (the next power of two at or above the request)", got)
	}
}

func TestTranspositionTableClearEmptiesSlots(t *testing.T) {
	mgr := NewCacheManager(1 << 20)
	tt := NewTranspositionTable(1, AlwaysReplace, mgr)
	mgr.tt = tt
	tt.Store(Hash(7), Black, 10, 8, BoundExact, Move{To: 1, Piece: Pawn})
	tt.Clear()
	if _, ok := tt.Probe(Hash(7), Black); ok {
		t.Fatalf("expected a miss after Clear")
	}
}

func TestPackedEntryRoundTripsAllFields(t *testing.T) {
	move := Move{From: 17, To: 40, Piece: Dragon}
	payload := packPayload(-12345, 63, BoundUpper, move, 7)
	score, depth, bound, gotMove, age := unpackPayload(payload, Black)
	if score != -12345 || depth != 63 || bound != BoundUpper || age != 7 {
		t.Fatalf("unpackPayload mismatch: score=%d depth=%d bound=%v age=%d", score, depth, bound, age)
	}
	if gotMove.From != move.From || gotMove.To != move.To || gotMove.Piece != move.Piece {
		t.Fatalf("unpackPayload move mismatch: got %+v want %+v", gotMove, move)
	}
}

func TestPackedEntryRoundTripsMaxPackedAge(t *testing.T) {
	payload := packPayload(0, 1, BoundExact, Move{To: 1, Piece: Pawn}, MaxPackedAge)
	_, _, _, _, age := unpackPayload(payload, Black)
	if age != MaxPackedAge {
		t.Fatalf("age = %d, want MaxPackedAge (%d)", age, MaxPackedAge)
	}
}

func TestBoundInBounds(t *testing.T) {
	cases := []struct {
		bound      Bound
		score      int32
		alpha      int32
		beta       int32
		wantUsable bool
	}{
		{BoundExact, 10, 0, 20, true},
		{BoundLower, 25, 0, 20, true},  // score >= beta: cutoff usable
		{BoundLower, 5, 0, 20, false},  // lower bound below beta tells us nothing
		{BoundUpper, -5, 0, 20, true},  // score <= alpha: cutoff usable
		{BoundUpper, 15, 0, 20, false}, // upper bound above alpha tells us nothing
	}
	for i, c := range cases {
		if got := c.bound.InBounds(c.score, c.alpha, c.beta); got != c.wantUsable {
			t.Errorf("case %d: InBounds(%v, %d, %d, %d) = %v, want %v", i, c.bound, c.score, c.alpha, c.beta, got, c.wantUsable)
		}
	}
}
