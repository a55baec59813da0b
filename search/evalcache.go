// Copyright 2014-2016 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package search

import (
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

// evalCacheKey fingerprints a position for the evaluation cache by its
// Zobrist hash AND its RepetitionState (confirmed against
// original_source/src/search/eval_cache.rs,
// whose EvaluationEntry is likewise keyed on more than the bare hash): the
// same physical position visited for the first time, or for the second
// time along the search path, must evaluate to different draw-adjusted
// scores, so they may never share a cache line.
type evalCacheKey struct {
	hash Hash
	rep  RepetitionState
}

type evalCacheSlot struct {
	key   atomic.Uint64 // packed evalCacheKey; meaningful only while valid is set
	score atomic.Int32
	valid atomic.Bool
}

func packEvalKey(k evalCacheKey) uint64 {
	return uint64(k.hash)<<8 | uint64(k.rep)
}

// EvaluationCache memoizes Evaluator.Evaluate results, separate from the
// transposition table because an evaluation is valid independent of
// search depth/bound while a TT entry is not. Concurrent misses for the
// same key are deduplicated with singleflight.Group so that two goroutines
// racing to evaluate the same leaf under YBWC do not both pay for a call
// into the (potentially expensive) external Evaluator.
type EvaluationCache struct {
	slots  []evalCacheSlot
	mask   uint64
	policy ReplacementPolicy
	group  singleflight.Group

	probes atomic.Uint64
	hits   atomic.Uint64
	misses atomic.Uint64
	stores atomic.Uint64
}

// NewEvaluationCache builds a cache of the smallest power-of-two slot count
// at or above sizeMB megabytes' worth of slots.
func NewEvaluationCache(sizeMB int, policy ReplacementPolicy) *EvaluationCache {
	const slotSize = 16
	count := nextPowerOfTwo(uint64(sizeMB) << 20 / slotSize)
	return &EvaluationCache{
		slots:  make([]evalCacheSlot, count),
		mask:   count - 1,
		policy: policy,
	}
}

func (c *EvaluationCache) index(k evalCacheKey) uint64 {
	return (uint64(k.hash) ^ uint64(k.rep)) & c.mask
}

// Get returns a cached evaluation, if present and not overwritten by a
// different key since.
func (c *EvaluationCache) Get(hash Hash, rep RepetitionState) (int32, bool) {
	c.probes.Add(1)
	k := evalCacheKey{hash, rep}
	slot := &c.slots[c.index(k)]
	if !slot.valid.Load() {
		c.misses.Add(1)
		return 0, false
	}
	if slot.key.Load() != packEvalKey(k) {
		c.misses.Add(1)
		return 0, false
	}
	score := slot.score.Load()
	// Re-verify after reading the score: a concurrent Put could have
	// replaced this slot between the key check above and the score read.
	if slot.key.Load() != packEvalKey(k) {
		c.misses.Add(1)
		return 0, false
	}
	c.hits.Add(1)
	return score, true
}

// Put stores score under (hash, rep), always overwriting a different key
// held by the target slot. c.policy matters only when the slot already
// holds this same key: ExactPreferred then keeps the stored value, and
// every other policy overwrites it. An evaluation cache has no "depth" or
// age of its own, so DepthPreferred, AgeBased and DepthAndAge behave
// exactly like AlwaysReplace here.
func (c *EvaluationCache) Put(hash Hash, rep RepetitionState, score int32) {
	c.stores.Add(1)
	k := evalCacheKey{hash, rep}
	slot := &c.slots[c.index(k)]
	packed := packEvalKey(k)
	if c.policy == ExactPreferred && slot.valid.Load() && slot.key.Load() == packed {
		return // identical key already holds a value; nothing to upgrade.
	}
	slot.valid.Store(false)
	slot.score.Store(score)
	slot.key.Store(packed)
	slot.valid.Store(true)
}

// GetOrCompute returns the cached evaluation for (hash, rep), computing it
// with compute and storing the result on a miss. Concurrent callers racing
// on the same key share one compute call via singleflight.
func (c *EvaluationCache) GetOrCompute(hash Hash, rep RepetitionState, compute func() int32) int32 {
	if score, ok := c.Get(hash, rep); ok {
		return score
	}
	sfKey := evalCacheSingleflightKey(hash, rep)
	v, _, _ := c.group.Do(sfKey, func() (interface{}, error) {
		if score, ok := c.Get(hash, rep); ok {
			return score, nil
		}
		score := compute()
		c.Put(hash, rep, score)
		return score, nil
	})
	return v.(int32)
}

func evalCacheSingleflightKey(hash Hash, rep RepetitionState) string {
	var buf [9]byte
	for i := 0; i < 8; i++ {
		buf[i] = byte(hash >> (8 * i))
	}
	buf[8] = byte(rep)
	return string(buf[:])
}

// Clear empties every slot.
func (c *EvaluationCache) Clear() {
	for i := range c.slots {
		c.slots[i].valid.Store(false)
	}
}

// Stats returns raw counters consumed by cachemanager.go's CacheStatistics.
func (c *EvaluationCache) Stats() (probes, hits, misses, stores uint64) {
	return c.probes.Load(), c.hits.Load(), c.misses.Load(), c.stores.Load()
}
