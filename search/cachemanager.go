// Copyright 2014-2016 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package search

import (
	"sync/atomic"
)

// CacheManager owns the age counter that the transposition table stamps
// its entries with, and aggregates both caches' raw counters into the
// derived CacheStatistics a caller actually wants to read. The evaluation
// cache keeps no age of its own. Grounded on
// original_source/src/search/cache_management.rs's CacheManager /
// AgeCounter, generalized from "one cache" to "every cache this engine
// owns" for the statistics side.
type CacheManager struct {
	age    atomic.Uint32
	maxAge uint32

	expiredRemovals atomic.Uint64
	warmingHits     atomic.Uint64
	warmingMisses   atomic.Uint64

	tt   *TranspositionTable
	eval *EvaluationCache
}

// NewCacheManager constructs a manager with age counting starting at 1 (0
// is reserved to mean "never written", matching tt.go's shouldReplace
// treating a zero key as empty).
func NewCacheManager(maxAge uint32) *CacheManager {
	m := &CacheManager{maxAge: maxAge}
	m.age.Store(1)
	return m
}

// currentAge returns the manager's current search generation.
func (m *CacheManager) currentAge() uint32 {
	return m.age.Load()
}

// IncrementAge advances the search generation, wrapping back to 1 (never
// 0) once maxAge is reached. Called once per iterative-deepening ply by
// iterative.go.
func (m *CacheManager) IncrementAge() uint32 {
	for {
		cur := m.age.Load()
		next := cur + 1
		if next == 0 || (m.maxAge != 0 && next > m.maxAge) {
			next = 1
		}
		if m.age.CompareAndSwap(cur, next) {
			return next
		}
	}
}

// ageDistance returns how many generations newAge lies ahead of oldAge,
// correct across the counter's wraparound back to 1 at m.maxAge: a plain
// subtraction would otherwise report an entry stamped just before a wrap
// as billions of generations stale instead of one. maxAge == 0 means the
// counter only wraps at the full uint32 range, matching IncrementAge.
func (m *CacheManager) ageDistance(oldAge, newAge uint32) uint32 {
	if newAge >= oldAge {
		return newAge - oldAge
	}
	if m.maxAge == 0 {
		return uint32(int64(newAge) - int64(oldAge) + 1<<32 - 1)
	}
	return (m.maxAge - oldAge) + newAge
}

// isEntryExpired reports whether an entry stamped with entryAge is old
// enough, relative to the manager's current age, to be treated as stale
// for replacement-policy purposes even if its key still matches.
func (m *CacheManager) isEntryExpired(entryAge uint32, maxGenerationsOld uint32) bool {
	return m.ageDistance(entryAge, m.currentAge()) > maxGenerationsOld
}

// recordExpiredRemoval bumps the counter used by CacheStatistics to report
// how many entries were dropped for being from a stale generation rather
// than for an ordinary depth/exactness replacement decision.
func (m *CacheManager) recordExpiredRemoval() {
	m.expiredRemovals.Add(1)
}

// WarmFromSeed pre-populates the transposition table from a set of (hash,
// entry) pairs computed offline (an opening book, a prior game's final
// search state) for cache warming. Each seed is stored only if the table
// does not already hold a result at least as deep for that hash.
func (m *CacheManager) WarmFromSeed(seeds []WarmSeed) {
	for _, s := range seeds {
		if existing, ok := m.tt.Probe(s.Hash, s.Side); ok && existing.Depth >= s.Depth {
			m.warmingHits.Add(1)
			continue
		}
		m.warmingMisses.Add(1)
		m.tt.Store(s.Hash, s.Side, s.Score, s.Depth, s.Bound, s.Move)
	}
}

// WarmSeed is one precomputed entry supplied to WarmFromSeed.
type WarmSeed struct {
	Hash  Hash
	Side  Side
	Score int32
	Depth int8
	Bound Bound
	Move  Move
}

// CacheStatistics is a point-in-time snapshot of both caches' raw counters
// plus derived rates, grounded on
// original_source/src/search/cache_management.rs's CacheStatistics.
type CacheStatistics struct {
	TTProbes       uint64
	TTHits         uint64
	TTMisses       uint64
	TTStores       uint64
	TTReplacements uint64
	TTCollisions   uint64
	TTSize         int
	TTHashfull     int

	EvalProbes uint64
	EvalHits   uint64
	EvalMisses uint64
	EvalStores uint64

	ExpiredRemovals uint64
	WarmingHits     uint64
	WarmingMisses   uint64
}

// TTHitRate returns TTHits / TTProbes, or 0 if there were no probes.
func (s CacheStatistics) TTHitRate() float64 {
	if s.TTProbes == 0 {
		return 0
	}
	return float64(s.TTHits) / float64(s.TTProbes)
}

// EvalHitRate returns EvalHits / EvalProbes, or 0 if there were no probes.
func (s CacheStatistics) EvalHitRate() float64 {
	if s.EvalProbes == 0 {
		return 0
	}
	return float64(s.EvalHits) / float64(s.EvalProbes)
}

// ReplacementRate returns TTReplacements / TTStores, or 0 if there were no
// stores.
func (s CacheStatistics) ReplacementRate() float64 {
	if s.TTStores == 0 {
		return 0
	}
	return float64(s.TTReplacements) / float64(s.TTStores)
}

// CollisionRate returns TTCollisions / TTStores, or 0 if there were no
// stores.
func (s CacheStatistics) CollisionRate() float64 {
	if s.TTStores == 0 {
		return 0
	}
	return float64(s.TTCollisions) / float64(s.TTStores)
}

// Stats assembles a CacheStatistics snapshot from both caches this manager
// owns.
func (m *CacheManager) Stats() CacheStatistics {
	var s CacheStatistics
	if m.tt != nil {
		s.TTProbes, s.TTHits, s.TTMisses, s.TTStores, s.TTReplacements, s.TTCollisions = m.tt.Stats()
		s.TTSize = m.tt.Size()
		s.TTHashfull = m.tt.Hashfull()
	}
	if m.eval != nil {
		s.EvalProbes, s.EvalHits, s.EvalMisses, s.EvalStores = m.eval.Stats()
	}
	s.ExpiredRemovals = m.expiredRemovals.Load()
	s.WarmingHits = m.warmingHits.Load()
	s.WarmingMisses = m.warmingMisses.Load()
	return s
}
