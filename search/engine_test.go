// Copyright 2014-2016 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package search_test

import (
	"testing"

	"github.com/sente-labs/shogi-search/internal/faketest"
	"github.com/sente-labs/shogi-search/search"
)

func testConfig() search.Config {
	cfg := search.DefaultConfig()
	cfg.TTSizeMB = 1
	cfg.EvalCacheSizeMB = 1
	cfg.MaxDepth = 6
	return cfg
}

func mustEngine(t *testing.T, g *faketest.Graph) *search.Engine[*faketest.Board] {
	t.Helper()
	eng, err := search.NewEngine(testConfig(), faketest.Collaborators(nil))
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	eng.SetPosition(faketest.NewBoard(g, 0), search.Black, search.CaptureCounts{})
	return eng
}

// mateInOneGraph builds a root where one of two Black moves delivers an
// immediate mate (node 1, White has no moves and is in check) and the other
// leads to a quiet, drawn-out position (node 2) a shallow search would
// otherwise be tempted to prefer on raw material.
func mateInOneGraph() *faketest.Graph {
	g := faketest.NewGraph()
	mateMove := search.Move{To: 1, Piece: search.Rook}
	quietMove := search.Move{To: 2, Piece: search.Pawn}
	g.AddMove(0, search.Black, mateMove, 1, search.NoPieceType)
	g.AddMove(0, search.Black, quietMove, 2, search.NoPieceType)

	// Node 1: White to move, in check, no legal moves -> checkmate.
	g.SetCheck(1, search.White, true)

	// Node 2: quiet shuffle both sides can repeat forever without
	// progress, scored at material parity so the engine has no reason to
	// prefer it over the mate.
	shuffleW := search.Move{From: 10, To: 11, Piece: search.Gold}
	shuffleB := search.Move{From: 20, To: 21, Piece: search.Gold}
	g.AddMove(2, search.White, shuffleW, 3, search.NoPieceType)
	g.AddMove(3, search.Black, shuffleB, 2, search.NoPieceType)
	g.SetEval(2, search.Black, 0)
	g.SetEval(2, search.White, 0)
	g.SetEval(3, search.Black, 0)
	g.SetEval(3, search.White, 0)
	return g
}

func TestSearchFindsForcedMate(t *testing.T) {
	eng := mustEngine(t, mateInOneGraph())
	pv, score := eng.Search(nil)
	if len(pv) == 0 {
		t.Fatalf("expected a non-empty PV, got none")
	}
	if !pv[0].SameAs(search.Move{To: 1, Piece: search.Rook}) {
		t.Fatalf("expected the mating move to be chosen first, got %v", pv[0])
	}
	if !search.IsMateScore(score) || score <= 0 {
		t.Fatalf("expected a winning mate score, got %d", score)
	}
}

// forcedStalemateGraph puts Black to move with no legal moves and not in
// check: a draw.
func forcedStalemateGraph() *faketest.Graph {
	g := faketest.NewGraph()
	g.SetCheck(0, search.Black, false)
	return g
}

func TestSearchDetectsStalemate(t *testing.T) {
	eng := mustEngine(t, forcedStalemateGraph())
	pv, score := eng.Search(nil)
	if len(pv) != 0 {
		t.Fatalf("expected an empty PV at a stalemated root, got %v", pv)
	}
	if score != search.DrawScore {
		t.Fatalf("expected DrawScore, got %d", score)
	}
}

// checkmatedRootGraph puts Black to move, in check, with no legal moves:
// Black is mated.
func checkmatedRootGraph() *faketest.Graph {
	g := faketest.NewGraph()
	g.SetCheck(0, search.Black, true)
	return g
}

func TestSearchDetectsOwnCheckmate(t *testing.T) {
	eng := mustEngine(t, checkmatedRootGraph())
	pv, score := eng.Search(nil)
	if len(pv) != 0 {
		t.Fatalf("expected an empty PV when already mated, got %v", pv)
	}
	if score >= search.MatedScore+int32(search.MaxPly) {
		t.Fatalf("expected a losing mate score, got %d", score)
	}
}

func TestTranspositionTableRecordsHits(t *testing.T) {
	eng := mustEngine(t, mateInOneGraph())
	eng.Search(nil)
	probes, hits, _, stores, _, _ := eng.TranspositionTable().Stats()
	if probes == 0 || stores == 0 {
		t.Fatalf("expected the transposition table to be exercised, got probes=%d stores=%d", probes, stores)
	}
	if hits == 0 {
		t.Fatalf("expected at least one transposition hit from iterative deepening re-probing the same positions")
	}
}

func TestCancellationStopsSearchPromptly(t *testing.T) {
	eng := mustEngine(t, mateInOneGraph())
	stop := &alwaysStop{}
	pv, _ := eng.Search(stop)
	_ = pv // a single stopped iteration may still return a partial PV
	stats := eng.Stats()
	if stats.Nodes == 0 {
		t.Fatalf("expected at least the root node to be visited before stopping")
	}
}

type alwaysStop struct{}

func (*alwaysStop) Stop()         {}
func (*alwaysStop) Stopped() bool { return true }
