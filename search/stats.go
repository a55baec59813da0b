// Copyright 2014-2016 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package search

import "fmt"

// Stats stores statistics about one search call. Grounded on a classic engine's
// engine.go Stats, widened with IID counters (see iid.go's IIDStats, folded
// in at the end of a search via Engine.Stats()).
type Stats struct {
	CacheHit  uint64 // transposition table probes that found an entry; Engine.Stats leaves it 0
	CacheMiss uint64 // transposition table probes that found nothing; Engine.Stats leaves it 0
	Nodes     int64  // nodes searched, including quiescence nodes
	Depth     int    // depth of the last completed iterative-deepening ply; set on the Stats passed to Logger.PrintPV, left 0 by Engine.Stats
	SelDepth  int    // maximum ply reached along the principal variation
	ElapsedMS int64  // wall-clock time since the current Search call began

	IID IIDStats
}

// IIDOverheadPercent returns the share of this search call's wall-clock
// time spent inside internal iterative deepening probes.
func (s Stats) IIDOverheadPercent() float64 {
	return s.IID.OverheadPercent(s.ElapsedMS)
}

// CacheHitRatio returns CacheHit / (CacheHit + CacheMiss), or 0 if there
// were no probes at all.
func (s Stats) CacheHitRatio() float64 {
	total := s.CacheHit + s.CacheMiss
	if total == 0 {
		return 0
	}
	return float64(s.CacheHit) / float64(total)
}

// CachePerformanceMetrics is the richer, engine-wide counterpart to Stats,
// covering both caches rather than one search call. Grounded on
// original_source/src/search/performance_tuning.rs's
// PerformanceTuningManager output.
type CachePerformanceMetrics struct {
	Cache CacheStatistics
	IID   IIDStats
}

// RecommendationSeverity classifies how urgently a Recommendation should
// be acted on.
type RecommendationSeverity uint8

const (
	SeverityInfo RecommendationSeverity = iota
	SeverityWarning
	SeverityCritical
)

func (s RecommendationSeverity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityCritical:
		return "critical"
	default:
		return "info"
	}
}

// Recommendation is one actionable observation produced by Recommend,
// grounded on original_source/src/search/performance_tuning.rs's
// TuningRecommendation.
type Recommendation struct {
	Severity RecommendationSeverity
	Message  string
}

// Recommend evaluates m against the fixed threshold rules
// original_source/src/search/performance_tuning.rs applies (hit rate below
// 40%, table utilization above 90%, replacement rate above 80%, collision
// rate above 15%) and returns zero or more actionable observations. This
// is advisory only: nothing in this package acts on a Recommendation.
func Recommend(m CachePerformanceMetrics) []Recommendation {
	var recs []Recommendation
	c := m.Cache

	if rate := c.TTHitRate(); c.TTProbes > 0 && rate < 0.40 {
		recs = append(recs, Recommendation{
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("transposition table hit rate is low (%.1f%%); consider a larger table or a stricter replacement policy", rate*100),
		})
	}
	if util := float64(c.TTHashfull) / 1000; util > 0.90 {
		recs = append(recs, Recommendation{
			Severity: SeverityCritical,
			Message:  fmt.Sprintf("transposition table is %.0f%% full; increase tt_size_mb", util*100),
		})
	}
	if rate := c.ReplacementRate(); c.TTStores > 0 && rate > 0.80 {
		recs = append(recs, Recommendation{
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("transposition table replacement rate is high (%.1f%%); entries are being evicted before they can be reused", rate*100),
		})
	}
	if rate := c.CollisionRate(); c.TTStores > 0 && rate > 0.15 {
		recs = append(recs, Recommendation{
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("transposition table collision rate is high (%.1f%%); consider a larger table", rate*100),
		})
	}
	if m.IID.Attempts > 0 {
		if rate := m.IID.SuccessRate(); rate < 0.20 {
			recs = append(recs, Recommendation{
				Severity: SeverityInfo,
				Message:  fmt.Sprintf("internal iterative deepening rarely finds a usable move (%.1f%% success); consider raising iid.min_depth", rate*100),
			})
		}
	}
	return recs
}
