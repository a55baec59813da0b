// Copyright 2014-2016 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package search

import "sync/atomic"

// TranspositionTable caches search results keyed by position Hash, open
// addressed into two candidate slots per key (see split), with atomically
// readable slots instead of a single racy struct assignment, a pluggable
// ReplacementPolicy, and entries stamped with the age counter of a
// CacheManager (cachemanager.go).
type TranspositionTable struct {
	table  []packedEntry
	mask   uint64
	policy ReplacementPolicy
	mgr    *CacheManager

	probes       atomic.Uint64
	hits         atomic.Uint64
	misses       atomic.Uint64
	stores       atomic.Uint64
	replacements atomic.Uint64
	collisions   atomic.Uint64
}

// NewTranspositionTable builds a table of the smallest power-of-two entry
// count at or above sizeMB megabytes' worth of entries, so a caller never
// gets less capacity than requested.
func NewTranspositionTable(sizeMB int, policy ReplacementPolicy, mgr *CacheManager) *TranspositionTable {
	const entrySize = 16 // two uint64 words
	requested := uint64(sizeMB) << 20 / entrySize
	count := nextPowerOfTwo(requested)
	return &TranspositionTable{
		table:  make([]packedEntry, count),
		mask:   count - 1,
		policy: policy,
		mgr:    mgr,
	}
}

// Size returns the number of slots in the table.
func (tt *TranspositionTable) Size() int {
	return len(tt.table)
}

// split uses a key's low bits to pick the primary slot, XORed with its
// bits from 32 up to pick the secondary slot, so that two different keys
// colliding on the primary rarely also collide on the secondary. When
// those high bits are zero under the mask, both candidates are the same
// slot.
func (tt *TranspositionTable) split(key Hash) (h0, h1 uint64) {
	h0 = uint64(key) & tt.mask
	h1 = h0 ^ ((uint64(key) >> 32) & tt.mask)
	return h0, h1
}

// Probe looks up hash and reports whether a usable entry was found. A
// torn read (the key word changed between the payload read and the
// recheck) is treated as a miss, never propagated.
func (tt *TranspositionTable) Probe(hash Hash, side Side) (ttEntry, bool) {
	tt.probes.Add(1)
	h0, h1 := tt.split(hash)
	if e, ok := tt.probeSlot(h0, hash, side); ok {
		tt.hits.Add(1)
		return e, true
	}
	if e, ok := tt.probeSlot(h1, hash, side); ok {
		tt.hits.Add(1)
		return e, true
	}
	tt.misses.Add(1)
	return ttEntry{}, false
}

// probeSlot implements the acquire-read half of the seqlock protocol: read
// the key, read the payload, reread the key and compare. A mismatch means
// a concurrent Store overwrote this slot mid-read, so the payload read is
// discarded rather than risking a torn score/depth/move combination.
func (tt *TranspositionTable) probeSlot(idx uint64, want Hash, side Side) (ttEntry, bool) {
	slot := &tt.table[idx]
	k1 := slot.key.Load()
	p := slot.payload.Load()
	k2 := slot.key.Load()
	if k1 != k2 || k1 != uint64(want) {
		return ttEntry{}, false
	}
	score, depth, bound, move, age := unpackPayload(p, side)
	return ttEntry{Score: score, Depth: depth, Bound: bound, Move: move, Age: age}, true
}

// Store records a search result, choosing between the two candidate slots
// per tt.policy. The release-write half of the seqlock protocol writes the
// key LAST: any reader that observes the new key is guaranteed to also
// observe the new payload (loads/stores on atomic.Uint64 are each
// individually atomic; ordering them key-after-payload on the write side
// and key-before-payload-before-recheck-key on the read side is what makes
// the pair race-free without a mutex).
func (tt *TranspositionTable) Store(hash Hash, side Side, score int32, depth int8, bound Bound, move Move) {
	tt.stores.Add(1)
	h0, h1 := tt.split(hash)
	age := tt.mgr.currentAge()

	s0 := &tt.table[h0]
	if tt.shouldReplace(s0, hash, depth, bound, age) {
		tt.write(s0, hash, score, depth, bound, move, age)
		return
	}
	s1 := &tt.table[h1]
	if tt.shouldReplace(s1, hash, depth, bound, age) {
		tt.write(s1, hash, score, depth, bound, move, age)
		return
	}
	// Both candidates refused replacement (fresher / deeper / exact). A
	// candidate already holding this position is deeper than the new
	// result, so keep it; otherwise fall back to overwriting the primary
	// slot so the new result is not dropped.
	if s0.key.Load() == uint64(hash) || s1.key.Load() == uint64(hash) {
		return
	}
	tt.write(s0, hash, score, depth, bound, move, age)
	tt.replacements.Add(1)
}

func (tt *TranspositionTable) write(slot *packedEntry, hash Hash, score int32, depth int8, bound Bound, move Move, age uint32) {
	payload := packPayload(score, depth, bound, move, age)
	slot.payload.Store(payload)
	slot.key.Store(uint64(hash))
}

// shouldReplace applies tt.policy to decide whether the new (depth, bound,
// age) should evict the slot's current occupant. An empty slot (key == 0
// and never written) always accepts.
func (tt *TranspositionTable) shouldReplace(slot *packedEntry, hash Hash, newDepth int8, newBound Bound, newAge uint32) bool {
	oldKey := slot.key.Load()
	if oldKey == 0 {
		return true
	}
	if oldKey == uint64(hash) {
		// Same position: only upgrade if at least as deep, so a shallow
		// re-search of a transposition never regresses the stored depth.
		p := slot.payload.Load()
		_, oldDepth, _, _, _ := unpackPayload(p, Black)
		return newDepth >= oldDepth
	}

	p := slot.payload.Load()
	oldScore, oldDepth, oldBound, _, oldAge := unpackPayload(p, Black)
	_ = oldScore
	tt.collisions.Add(1)

	switch tt.policy {
	case AlwaysReplace:
		return true
	case DepthPreferred:
		return newDepth >= oldDepth
	case AgeBased:
		if tt.mgr.ageDistance(oldAge, newAge) > ageBasedReplacementThreshold {
			tt.mgr.recordExpiredRemoval()
			return true
		}
		return false
	case ExactPreferred:
		if oldBound == BoundExact && newBound != BoundExact {
			return false
		}
		return newDepth >= oldDepth
	case DepthAndAge:
		if newDepth >= oldDepth {
			return true
		}
		if tt.mgr.ageDistance(oldAge, newAge) > depthAndAgeOverrideThreshold {
			tt.mgr.recordExpiredRemoval()
			return true
		}
		return false
	default:
		return true
	}
}

// Replacement-policy thresholds, in generations of CacheManager.age.
const (
	// ageBasedReplacementThreshold is how many generations old an entry must
	// be, beyond the current one, before AgeBased evicts it regardless of
	// depth.
	ageBasedReplacementThreshold = 2
	// depthAndAgeOverrideThreshold lets DepthAndAge evict a deeper-but-very-
	// stale entry even though its depth alone would keep it.
	depthAndAgeOverrideThreshold = 100
)

// Clear removes every entry, resetting the table to its just-constructed
// state. Counters are left untouched; callers that want fresh stats use a
// new CacheManager.
func (tt *TranspositionTable) Clear() {
	for i := range tt.table {
		tt.table[i].key.Store(0)
		tt.table[i].payload.Store(0)
	}
}

// Hashfull estimates occupancy in permille (0-1000), the UCI-style metric
// hashfull statistic every "info" line from an
// analysis-grade engine reports; sampled rather than scanned exhaustively
// so it is cheap enough to call every iterative-deepening ply.
func (tt *TranspositionTable) Hashfull() int {
	const sample = 1000
	n := len(tt.table)
	if n == 0 {
		return 0
	}
	if n < sample {
		filled := 0
		for i := range tt.table {
			if tt.table[i].key.Load() != 0 {
				filled++
			}
		}
		return filled * 1000 / n
	}
	filled := 0
	for i := 0; i < sample; i++ {
		if tt.table[i].key.Load() != 0 {
			filled++
		}
	}
	return filled * 1000 / sample
}

// Stats returns a point-in-time snapshot of this table's counters, fed into
// cachemanager.go's CacheStatistics.
func (tt *TranspositionTable) Stats() (probes, hits, misses, stores, replacements, collisions uint64) {
	return tt.probes.Load(), tt.hits.Load(), tt.misses.Load(), tt.stores.Load(), tt.replacements.Load(), tt.collisions.Load()
}
