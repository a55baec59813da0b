// Copyright 2014-2016 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package search

const (
	pvTableSize = 1 << 13
	pvTableMask = pvTableSize - 1
)

type pvSlot struct {
	lock uint64
	move Move
}

// pvTable is a small hash table dedicated to the principal variation,
// separate from the transposition table, grounded on a classic pv.go:
// a PV move found at a PV node is worth remembering even if the TT slot
// for that hash gets evicted before iterative deepening asks for the PV
// again. Keyed by Hash directly rather than by replaying the board, since
// this package never holds a board of its own (see interfaces.go).
type pvTable struct {
	slots [pvTableSize]pvSlot
}

func newPVTable() *pvTable {
	return &pvTable{}
}

// Put records move as the PV move for hash. Ignores the null move.
func (pv *pvTable) Put(hash Hash, move Move) {
	if move.IsNull() {
		return
	}
	pv.slots[uint64(hash)&pvTableMask] = pvSlot{lock: uint64(hash), move: move}
}

// Get returns the recorded PV move for hash, or the null move.
func (pv *pvTable) Get(hash Hash) Move {
	if s := &pv.slots[uint64(hash)&pvTableMask]; s.lock == uint64(hash) {
		return s.move
	}
	return NullMove
}

// PV walks the pv table forward from the engine's current position,
// applying each recorded move via the MoveGenerator and undoing them all
// before returning, so the board is left exactly as it was found. Stops on
// the first missing or repeated hash, same termination rule as the
// a classic Get.
func (e *Engine[B]) PV() []Move {
	seen := make(map[Hash]bool)
	var moves []Move
	var captured []PieceType

	hash := e.collab.Hasher.Hash(e.board, e.side, e.captures, NoRepetition)
	next := e.pv.Get(hash)
	for !next.IsNull() && !seen[hash] {
		seen[hash] = true
		cap, legal := e.collab.Moves.MakeMove(e.board, e.side, next)
		if !legal {
			e.collab.Moves.UnmakeMove(e.board, e.side, next, cap)
			break
		}
		moves = append(moves, next)
		captured = append(captured, cap)
		e.side = e.side.Opposite()
		hash = e.collab.Hasher.Hash(e.board, e.side, e.captures, NoRepetition)
		next = e.pv.Get(hash)
	}

	for i := len(moves) - 1; i >= 0; i-- {
		e.side = e.side.Opposite()
		e.collab.Moves.UnmakeMove(e.board, e.side, moves[i], captured[i])
	}
	return moves
}
