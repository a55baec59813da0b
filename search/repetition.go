// Copyright 2014-2016 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package search

// repetitionTracker counts how many times each position hash has been
// visited along the current search path (root to the current node), so
// that negamax.go can detect draws by repetition and evalcache.go can key
// on the right RepetitionState. Grounded on a classic
// endPosition/ThreeFoldRepetition check, generalized from "the position's
// own game history" (which this package does not own -- board history is
// out of scope) to "the search's own path", since Shogi repetition rules
// (sennichite) are judged over the whole game, but a search-local tracker
// is all this package can maintain without owning the board.
//
// Seed can fold prior position hashes into the counts, but Engine has no
// method that calls it and SetPosition resets the tracker, so a search
// counts only the positions along its own path.
type repetitionTracker struct {
	counts map[Hash]int
	path   []Hash
}

func newRepetitionTracker() *repetitionTracker {
	return &repetitionTracker{counts: make(map[Hash]int, 64)}
}

func (r *repetitionTracker) reset() {
	for k := range r.counts {
		delete(r.counts, k)
	}
	r.path = r.path[:0]
}

// Seed records hashes from game history prior to the search root, so a
// repetition that started before this search began is still detected.
func (r *repetitionTracker) Seed(hashes []Hash) {
	for _, h := range hashes {
		r.counts[h]++
	}
}

// push records hash as visited at the current ply, returning the
// RepetitionState to use for evaluation caching and draw detection at this
// node.
func (r *repetitionTracker) push(hash Hash) RepetitionState {
	r.counts[hash]++
	r.path = append(r.path, hash)
	return r.stateFor(hash)
}

// pop reverses the most recent push. Callers must push/pop in strict LIFO
// order matching MakeMove/UnmakeMove.
func (r *repetitionTracker) pop() {
	n := len(r.path)
	hash := r.path[n-1]
	r.path = r.path[:n-1]
	r.counts[hash]--
	if r.counts[hash] <= 0 {
		delete(r.counts, hash)
	}
}

func (r *repetitionTracker) stateFor(hash Hash) RepetitionState {
	switch r.counts[hash] {
	case 0, 1:
		return NoRepetition
	case 2:
		return OneRepetition
	default:
		return TwoRepetition
	}
}

// isDraw reports whether hash has now been visited enough times along the
// path to be declared a draw. At any ply other than the root a second
// visit (OneRepetition) is enough to stop; at the root the search still
// explores until a third visit (TwoRepetition), since some callers do not
// separately detect a theoretical draw.
func (r *repetitionTracker) isDraw(hash Hash, ply int) bool {
	n := r.counts[hash]
	if ply > 0 {
		return n >= 2
	}
	return n >= 3
}
