// Copyright 2014-2016 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package search

import "sync/atomic"

// Bound records which side of [α, β] a stored score is known relative to.
// Grounded on a classic hash-table hashFlags layout / original_source's
// TranspositionFlag, renamed to read naturally outside a bitmask.
type Bound uint8

const (
	// BoundExact is the exact minimax score (a PV node).
	BoundExact Bound = iota
	// BoundLower means the true score is at least the stored score (search
	// failed high, a cut node).
	BoundLower
	// BoundUpper means the true score is at most the stored score (search
	// failed low, an all node).
	BoundUpper
)

// InBounds reports whether a stored (bound, score) entry is directly usable
// to terminate search at the given window.
func (b Bound) InBounds(score, alpha, beta int32) bool {
	switch b {
	case BoundExact:
		return true
	case BoundLower:
		return score >= beta
	case BoundUpper:
		return score <= alpha
	default:
		return false
	}
}

// boundFor classifies score against [alpha, beta], grounded on the
// a classic getBound helper.
func boundFor(score, alpha, beta int32) Bound {
	if score <= alpha {
		return BoundUpper
	}
	if score >= beta {
		return BoundLower
	}
	return BoundExact
}

// packedEntry is one slot of a TranspositionTable, laid out so that a
// single atomic.Uint64 load/store moves the payload and a separate
// atomic.Uint64 carries the full Zobrist key. Storing key and payload in
// independent words (rather than one wide struct under a mutex) is the
// packed, atomically-readable entry; it is
// verified, not assumed, correct by the seqlock-style write-payload-then-
// key / read-key-then-payload-then-recheck-key protocol in tt.go, which is
// what actually rules out a torn read racing a concurrent store.
//
// Payload bit layout (low to high):
//
//	bits  0-15  score+32768 (unsigned bias, recovers the signed int16 range)
//	bits 16-23  depth (0-255)
//	bits 24-25  bound (Bound)
//	bit  26     hasMove
//	bits 27-34  move.From  (8 bits, NoSquare sentinel included)
//	bits 35-42  move.To    (8 bits)
//	bits 43-46  move.Piece (4 bits, enough for every PieceType)
//	bits 47-50  move.Flags (4 bits)
//	bits 51-63  age (13 low bits of the table's current age counter, enough
//	            to distinguish "this search" from "an old search" without
//	            needing the full 32-bit generation inline; bits 51-63 are
//	            every bit left over once the fields above are packed, so
//	            this is the field's natural width rather than a chosen one.
//	            Config.MaxAge must not exceed MaxPackedAge or ages alias
//	            modulo 1<<13 and AgeBased/DepthAndAge misjudge staleness)
//
// This widens a classic move-less depth/score/kind word specifically to
// carry Piece and Flags, fixing a lossy-best-move defect:
// original_source's AtomicPackedEntry::best_move() hardcodes
// piece_type: PieceType::Pawn and captured_piece: None on every reconstructed
// move, which would otherwise corrupt move ordering and any caller that
// replays the TT move directly.
type packedEntry struct {
	key     atomic.Uint64
	payload atomic.Uint64
}

const (
	peScoreBias            = 32768
	peScoreMask     uint64 = 0xFFFF
	peDepthShift           = 16
	peDepthMask     uint64 = 0xFF
	peBoundShift           = 24
	peBoundMask     uint64 = 0x3
	peHasMoveShift         = 26
	peFromShift            = 27
	peToShift              = 35
	pePieceShift           = 43
	peFlagsShift           = 47
	peAgeShift             = 51
	peSquareMask    uint64 = 0xFF
	pePieceMask     uint64 = 0xF
	peFlagsMask     uint64 = 0xF
	peAgeMask       uint64 = 0x1FFF
)

// MaxPackedAge is the largest age value a packedEntry can store (bits
// 51-63, 13 bits). Config.Validate rejects a larger Config.MaxAge.
const MaxPackedAge uint32 = uint32(peAgeMask)

func packPayload(score int32, depth int8, bound Bound, move Move, age uint32) uint64 {
	p := uint64(uint16(score+peScoreBias)) & peScoreMask
	p |= (uint64(uint8(depth)) & peDepthMask) << peDepthShift
	p |= (uint64(bound) & peBoundMask) << peBoundShift
	if !move.IsNull() {
		p |= 1 << peHasMoveShift
		from := move.From
		if move.IsDrop() {
			from = 0xFF
		}
		p |= (uint64(from) & peSquareMask) << peFromShift
		p |= (uint64(move.To) & peSquareMask) << peToShift
		p |= (uint64(move.Piece) & pePieceMask) << pePieceShift
		p |= (uint64(move.Flags) & peFlagsMask) << peFlagsShift
	}
	p |= (uint64(age) & peAgeMask) << peAgeShift
	return p
}

// unpackPayload reconstructs the stored score/depth/bound/move/age. side is
// needed because Move does not otherwise recover which player owns it; a TT
// entry is always probed by the side to move at the probing node, which is
// exactly the side the stored move belongs to.
func unpackPayload(p uint64, side Side) (score int32, depth int8, bound Bound, move Move, age uint32) {
	score = int32(uint16(p&peScoreMask)) - peScoreBias
	depth = int8(uint8((p >> peDepthShift) & peDepthMask))
	bound = Bound((p >> peBoundShift) & peBoundMask)
	age = uint32((p >> peAgeShift) & peAgeMask)
	if (p>>peHasMoveShift)&1 != 0 {
		from := Square((p >> peFromShift) & peSquareMask)
		move = Move{
			From:  from,
			To:    Square((p >> peToShift) & peSquareMask),
			Piece: PieceType((p >> pePieceShift) & pePieceMask),
			Flags: MoveFlags((p >> peFlagsShift) & peFlagsMask),
			Side:  side,
		}
	} else {
		move = NullMove
	}
	return
}

// ttEntry is the de-packed, ergonomic view of a packedEntry returned by
// Probe.
type ttEntry struct {
	Score int32
	Depth int8
	Bound Bound
	Move  Move
	Age   uint32
}
