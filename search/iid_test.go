// Copyright 2014-2016 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package search

import "testing"

func TestIIDControllerSkipsWithTTMove(t *testing.T) {
	c := newIIDController(DefaultIIDConfig())
	run, reason := c.shouldRun(true, 10, 5, 0)
	if run || reason != IIDSkipTTMove {
		t.Fatalf("shouldRun with a TT move = (%v, %v), want (false, IIDSkipTTMove)", run, reason)
	}
	if c.stats.SkippedTTMove != 1 {
		t.Fatalf("expected SkippedTTMove to be counted")
	}
}

func TestIIDControllerSkipsShallowDepth(t *testing.T) {
	cfg := DefaultIIDConfig()
	c := newIIDController(cfg)
	run, reason := c.shouldRun(false, cfg.MinDepth-1, 5, 0)
	if run || reason != IIDSkipDepth {
		t.Fatalf("shouldRun below MinDepth = (%v, %v), want (false, IIDSkipDepth)", run, reason)
	}
}

func TestIIDControllerSkipsWideBranching(t *testing.T) {
	cfg := DefaultIIDConfig()
	c := newIIDController(cfg)
	run, reason := c.shouldRun(false, cfg.MinDepth+2, cfg.MaxLegalMoves+1, 0)
	if run || reason != IIDSkipMoveCount {
		t.Fatalf("shouldRun over MaxLegalMoves = (%v, %v), want (false, IIDSkipMoveCount)", run, reason)
	}
}

func TestIIDControllerSkipsTimePressure(t *testing.T) {
	cfg := DefaultIIDConfig()
	c := newIIDController(cfg)
	run, reason := c.shouldRun(false, cfg.MinDepth+2, 5, cfg.TimeOverheadThreshold+0.01)
	if run || reason != IIDSkipTimePressure {
		t.Fatalf("shouldRun over time threshold = (%v, %v), want (false, IIDSkipTimePressure)", run, reason)
	}
}

func TestIIDControllerRunsWhenEligible(t *testing.T) {
	cfg := DefaultIIDConfig()
	c := newIIDController(cfg)
	run, reason := c.shouldRun(false, cfg.MinDepth+2, 5, 0)
	if !run || reason != iidNotSkipped {
		t.Fatalf("shouldRun eligible node = (%v, %v), want (true, iidNotSkipped)", run, reason)
	}
}

func TestIIDProbeDepthAdaptiveScalesWithRemainingDepth(t *testing.T) {
	cfg := DefaultIIDConfig()
	cfg.DepthStrategy = IIDDepthAdaptive
	c := newIIDController(cfg)

	shallow := c.probeDepth(6)
	deep := c.probeDepth(24)
	if !(deep > shallow) {
		t.Fatalf("expected a deeper main search to produce a deeper IID probe: shallow=%d deep=%d", shallow, deep)
	}
}

func TestIIDProbeDepthNeverExceedsRemainingDepth(t *testing.T) {
	cfg := DefaultIIDConfig()
	cfg.DepthStrategy = IIDDepthAdaptive
	c := newIIDController(cfg)
	if got := c.probeDepth(2); got > 2 {
		t.Fatalf("probeDepth(2) = %d, must not exceed the remaining depth", got)
	}
}

func TestIIDProbeDepthAtLeastOne(t *testing.T) {
	cfg := DefaultIIDConfig()
	cfg.DepthStrategy = IIDDepthRelative
	cfg.IIDDepthPly = 5
	c := newIIDController(cfg)
	if got := c.probeDepth(4); got < 1 {
		t.Fatalf("probeDepth must never go below 1, got %d", got)
	}
}

func TestIIDStatsRates(t *testing.T) {
	s := IIDStats{Attempts: 4, Successes: 3, RecommendedMoveMatch: 1, TotalProbeDepth: 12, TimeSpentMS: 25}
	if got := s.SuccessRate(); got != 0.75 {
		t.Errorf("SuccessRate = %v, want 0.75", got)
	}
	if got := s.MatchRate(); got < 0.333 || got > 0.334 {
		t.Errorf("MatchRate = %v, want ~0.333", got)
	}
	if got := s.AverageProbeDepth(); got != 3 {
		t.Errorf("AverageProbeDepth = %v, want 3", got)
	}
	if got := s.OverheadPercent(100); got != 25 {
		t.Errorf("OverheadPercent(100) = %v, want 25", got)
	}
	if got := s.OverheadPercent(0); got != 0 {
		t.Errorf("OverheadPercent(0) = %v, want 0 to avoid a division by zero", got)
	}

	var zero IIDStats
	if zero.SuccessRate() != 0 || zero.MatchRate() != 0 || zero.AverageProbeDepth() != 0 || zero.OverheadPercent(100) != 0 {
		t.Fatalf("expected all rates to be 0 with no attempts")
	}
}

func TestIIDControllerRecordCutoffAndFirstImprove(t *testing.T) {
	c := newIIDController(DefaultIIDConfig())
	c.recordCutoff()
	c.recordCutoff()
	c.recordFirstImprove()
	if c.stats.CutoffCount != 2 {
		t.Fatalf("CutoffCount = %d, want 2", c.stats.CutoffCount)
	}
	if c.stats.FirstImprovedAlpha != 1 {
		t.Fatalf("FirstImprovedAlpha = %d, want 1", c.stats.FirstImprovedAlpha)
	}
}

func TestIIDControllerRecordResultAccumulatesTime(t *testing.T) {
	c := newIIDController(DefaultIIDConfig())
	c.recordResult(10, 5, true, Move{To: 1, Piece: Pawn})
	c.recordResult(20, 7, false, NullMove)
	if c.stats.NodesSpent != 30 {
		t.Fatalf("NodesSpent = %d, want 30", c.stats.NodesSpent)
	}
	if c.stats.TimeSpentMS != 12 {
		t.Fatalf("TimeSpentMS = %d, want 12", c.stats.TimeSpentMS)
	}
	if c.stats.Successes != 1 {
		t.Fatalf("Successes = %d, want 1", c.stats.Successes)
	}
}
