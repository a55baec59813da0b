// Copyright 2014-2016 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package faketest implements a minimal, fully-deterministic board type
// satisfying the search package's MoveGenerator/Evaluator/Zobrist/
// CheckDetector interfaces, used by _test.go files across this module in
// place of a real Shogi rules engine. Positions are nodes in a small graph
// the test supplies; moves are edges. This mirrors how a production
// engine tests drive the search against small, hand-built positions rather
// than a full game database -- here the "position" is just whatever graph
// shape a test needs (a forced mate, a stalemate, a transposition, a long
// forced line) instead of a legal Shogi diagram.
package faketest

import "github.com/sente-labs/shogi-search/search"

// MoveKey identifies one edge of a Graph: the move available for side at
// node.
type MoveKey struct {
	Node int
	Side search.Side
	Move search.Move
}

// Transition is the edge target and the piece type (if any) it captures.
type Transition struct {
	Target   int
	Captured search.PieceType
}

// Graph is the fixture a test builds once and hands to NewBoard: the full
// set of legal moves, their destinations, static evaluations, and check
// status for every node a test visits. All lookups default to their zero
// value (no moves, eval 0, not in check) so a test only needs to populate
// the nodes it actually cares about.
type Graph struct {
	Moves map[int]map[search.Side][]search.Move
	Trans map[MoveKey]Transition
	Check map[int]map[search.Side]bool
	Eval  map[int]map[search.Side]int32
}

// NewGraph returns an empty Graph ready for a test to populate.
func NewGraph() *Graph {
	return &Graph{
		Moves: make(map[int]map[search.Side][]search.Move),
		Trans: make(map[MoveKey]Transition),
		Check: make(map[int]map[search.Side]bool),
		Eval:  make(map[int]map[search.Side]int32),
	}
}

// AddMove registers a legal move for side at fromNode, leading to toNode
// and capturing captured (NoPieceType for a non-capture).
func (g *Graph) AddMove(fromNode int, side search.Side, m search.Move, toNode int, captured search.PieceType) {
	if g.Moves[fromNode] == nil {
		g.Moves[fromNode] = make(map[search.Side][]search.Move)
	}
	m.Side = side
	m.Captured = captured
	if captured != search.NoPieceType {
		m.Flags |= search.FlagCapture
	}
	g.Moves[fromNode][side] = append(g.Moves[fromNode][side], m)
	g.Trans[MoveKey{fromNode, side, m}] = Transition{Target: toNode, Captured: captured}
}

// SetCheck marks side as being in check at node.
func (g *Graph) SetCheck(node int, side search.Side, inCheck bool) {
	if g.Check[node] == nil {
		g.Check[node] = make(map[search.Side]bool)
	}
	g.Check[node][side] = inCheck
}

// SetEval sets the static evaluation of node from side's point of view.
func (g *Graph) SetEval(node int, side search.Side, score int32) {
	if g.Eval[node] == nil {
		g.Eval[node] = make(map[search.Side]int32)
	}
	g.Eval[node][side] = score
}

// Board is the mutable search-time state: the current node plus an undo
// stack of previous nodes, so MakeMove/UnmakeMove behave like an in-place
// board mutation exactly as search.MoveGenerator documents.
type Board struct {
	Graph *Graph
	Node  int
	undo  []int
}

// NewBoard builds a Board positioned at start within g.
func NewBoard(g *Graph, start int) *Board {
	return &Board{Graph: g, Node: start}
}

// Clone returns an independent copy positioned at the same node, sharing
// the (read-only, after setup) Graph. Used by parallel-driver tests, which
// need one Board per worker the same way a real Shogi board library would
// need to clone its position before handing it to a sibling goroutine.
func (b *Board) Clone() *Board {
	return &Board{Graph: b.Graph, Node: b.Node}
}

// Generator implements search.MoveGenerator[*Board].
type Generator struct{}

func (Generator) GenerateLegal(b *Board, side search.Side, _ search.CaptureCounts) []search.Move {
	return append([]search.Move(nil), b.Graph.Moves[b.Node][side]...)
}

func (Generator) IsPseudoLegal(b *Board, side search.Side, m search.Move) bool {
	for _, mv := range b.Graph.Moves[b.Node][side] {
		if mv.SameAs(m) {
			return true
		}
	}
	return false
}

func (Generator) MakeMove(b *Board, side search.Side, m search.Move) (search.PieceType, bool) {
	if m.IsNull() {
		b.undo = append(b.undo, b.Node)
		return search.NoPieceType, true
	}
	t, ok := b.Graph.Trans[MoveKey{b.Node, side, m}]
	if !ok {
		return search.NoPieceType, false
	}
	b.undo = append(b.undo, b.Node)
	b.Node = t.Target
	return t.Captured, true
}

func (Generator) UnmakeMove(b *Board, _ search.Side, _ search.Move, _ search.PieceType) {
	n := len(b.undo)
	if n == 0 {
		return
	}
	b.Node = b.undo[n-1]
	b.undo = b.undo[:n-1]
}

// Evaluator implements search.Evaluator[*Board].
type Evaluator struct{}

func (Evaluator) Evaluate(b *Board, side search.Side) int32 {
	return b.Graph.Eval[b.Node][side]
}

// Hasher implements search.Zobrist[*Board]. The hash folds in the node and
// side to move only: repetition is intentionally ignored here since the
// engine never hashes with anything but NoRepetition (see negamax.go's
// hash method), so a fixture hasher that used repetition would never be
// exercised differently anyway.
type Hasher struct{}

func (Hasher) Hash(b *Board, side search.Side, _ search.CaptureCounts, _ search.RepetitionState) search.Hash {
	h := search.Hash(b.Node) * 1000003
	if side == search.White {
		h ^= 0x9e3779b97f4a7c15
	}
	return h
}

// CheckDetector implements search.CheckDetector[*Board].
type CheckDetector struct{}

func (CheckDetector) IsKingInCheck(b *Board, side search.Side) bool {
	return b.Graph.Check[b.Node][side]
}

// Collaborators builds the search.Collaborators bundle for *Board using the
// stateless fixture implementations above, plus the supplied TimeSource
// (nil defaults to search.CachedTimeSource{}, same as the Engine itself).
func Collaborators(ts search.TimeSource) search.Collaborators[*Board] {
	return search.Collaborators[*Board]{
		Moves:      Generator{},
		Eval:       Evaluator{},
		Hasher:     Hasher{},
		Check:      CheckDetector{},
		TimeSource: ts,
	}
}
