// Copyright 2014-2016 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package search

import "github.com/prometheus/client_golang/prometheus"

// metricsNamespace groups every metric this package exports under one
// Prometheus namespace, following the convention Voskan-arena-cache's
// pkg/metrics.go uses for its own cache counters (there: "arena_cache";
// here: the search engine's cache layer).
const metricsNamespace = "shogi_search"

var (
	ttProbesDesc = prometheus.NewDesc(
		prometheus.BuildFQName(metricsNamespace, "tt", "probes_total"),
		"Total transposition table probes.", nil, nil)
	ttHitsDesc = prometheus.NewDesc(
		prometheus.BuildFQName(metricsNamespace, "tt", "hits_total"),
		"Total transposition table hits.", nil, nil)
	ttStoresDesc = prometheus.NewDesc(
		prometheus.BuildFQName(metricsNamespace, "tt", "stores_total"),
		"Total transposition table stores.", nil, nil)
	ttReplacementsDesc = prometheus.NewDesc(
		prometheus.BuildFQName(metricsNamespace, "tt", "replacements_total"),
		"Total transposition table replacement evictions.", nil, nil)
	ttCollisionsDesc = prometheus.NewDesc(
		prometheus.BuildFQName(metricsNamespace, "tt", "collisions_total"),
		"Total transposition table key collisions observed on store.", nil, nil)
	ttHashfullDesc = prometheus.NewDesc(
		prometheus.BuildFQName(metricsNamespace, "tt", "hashfull_permille"),
		"Estimated transposition table occupancy, in permille.", nil, nil)

	evalProbesDesc = prometheus.NewDesc(
		prometheus.BuildFQName(metricsNamespace, "eval_cache", "probes_total"),
		"Total evaluation cache probes.", nil, nil)
	evalHitsDesc = prometheus.NewDesc(
		prometheus.BuildFQName(metricsNamespace, "eval_cache", "hits_total"),
		"Total evaluation cache hits.", nil, nil)
	evalStoresDesc = prometheus.NewDesc(
		prometheus.BuildFQName(metricsNamespace, "eval_cache", "stores_total"),
		"Total evaluation cache stores.", nil, nil)

	expiredRemovalsDesc = prometheus.NewDesc(
		prometheus.BuildFQName(metricsNamespace, "cache", "expired_removals_total"),
		"Total entries dropped for belonging to a stale search generation.", nil, nil)
	warmingHitsDesc = prometheus.NewDesc(
		prometheus.BuildFQName(metricsNamespace, "cache", "warming_hits_total"),
		"Total WarmFromSeed seeds that found an existing, at-least-as-deep entry.", nil, nil)
	warmingMissesDesc = prometheus.NewDesc(
		prometheus.BuildFQName(metricsNamespace, "cache", "warming_misses_total"),
		"Total WarmFromSeed seeds written to the transposition table.", nil, nil)
)

// MetricsCollector adapts a CacheManager into a prometheus.Collector: a
// caller that already runs a Prometheus registry (as Voskan-arena-cache
// does via WithMetrics(reg)) registers this once and every subsequent
// Collect scrapes a fresh CacheStatistics snapshot -- no separate counter
// bookkeeping is needed since CacheManager.Stats() already aggregates both
// caches' atomic counters.
type MetricsCollector struct {
	mgr *CacheManager
}

// NewMetricsCollector wraps mgr for Prometheus registration.
func NewMetricsCollector(mgr *CacheManager) *MetricsCollector {
	return &MetricsCollector{mgr: mgr}
}

var _ prometheus.Collector = (*MetricsCollector)(nil)

func (c *MetricsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- ttProbesDesc
	ch <- ttHitsDesc
	ch <- ttStoresDesc
	ch <- ttReplacementsDesc
	ch <- ttCollisionsDesc
	ch <- ttHashfullDesc
	ch <- evalProbesDesc
	ch <- evalHitsDesc
	ch <- evalStoresDesc
	ch <- expiredRemovalsDesc
	ch <- warmingHitsDesc
	ch <- warmingMissesDesc
}

func (c *MetricsCollector) Collect(ch chan<- prometheus.Metric) {
	s := c.mgr.Stats()
	ch <- prometheus.MustNewConstMetric(ttProbesDesc, prometheus.CounterValue, float64(s.TTProbes))
	ch <- prometheus.MustNewConstMetric(ttHitsDesc, prometheus.CounterValue, float64(s.TTHits))
	ch <- prometheus.MustNewConstMetric(ttStoresDesc, prometheus.CounterValue, float64(s.TTStores))
	ch <- prometheus.MustNewConstMetric(ttReplacementsDesc, prometheus.CounterValue, float64(s.TTReplacements))
	ch <- prometheus.MustNewConstMetric(ttCollisionsDesc, prometheus.CounterValue, float64(s.TTCollisions))
	ch <- prometheus.MustNewConstMetric(ttHashfullDesc, prometheus.GaugeValue, float64(s.TTHashfull))
	ch <- prometheus.MustNewConstMetric(evalProbesDesc, prometheus.CounterValue, float64(s.EvalProbes))
	ch <- prometheus.MustNewConstMetric(evalHitsDesc, prometheus.CounterValue, float64(s.EvalHits))
	ch <- prometheus.MustNewConstMetric(evalStoresDesc, prometheus.CounterValue, float64(s.EvalStores))
	ch <- prometheus.MustNewConstMetric(expiredRemovalsDesc, prometheus.CounterValue, float64(s.ExpiredRemovals))
	ch <- prometheus.MustNewConstMetric(warmingHitsDesc, prometheus.CounterValue, float64(s.WarmingHits))
	ch <- prometheus.MustNewConstMetric(warmingMissesDesc, prometheus.CounterValue, float64(s.WarmingMisses))
}
