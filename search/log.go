// Copyright 2014-2016 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package search

import (
	"time"

	"go.uber.org/zap"
)

// ZapLogger implements Logger on top of a *zap.Logger, the structured
// logging idiom used throughout the wider example corpus (Voskan-arena-cache,
// agilira-balios) in place of bare log.Printf output.
type ZapLogger struct {
	log   *zap.Logger
	start time.Time
}

// NewZapLogger wraps an existing zap logger. Pass zap.NewNop() to get
// NopLogger-equivalent behavior while still satisfying code that expects a
// *ZapLogger specifically.
func NewZapLogger(log *zap.Logger) *ZapLogger {
	return &ZapLogger{log: log}
}

func (l *ZapLogger) BeginSearch() {
	l.start = time.Now()
	l.log.Debug("search started")
}

func (l *ZapLogger) EndSearch() {
	l.log.Debug("search finished", zap.Duration("elapsed", time.Since(l.start)))
}

func (l *ZapLogger) PrintPV(stats Stats, score int32, pv []Move) {
	moves := make([]string, len(pv))
	for i, m := range pv {
		moves[i] = m.String()
	}
	l.log.Info("pv",
		zap.Int("depth", stats.Depth),
		zap.Int("seldepth", stats.SelDepth),
		zap.Int64("nodes", stats.Nodes),
		zap.Int32("score", score),
		zap.Strings("pv", moves),
		zap.Float64("cache_hit_ratio", stats.CacheHitRatio()),
	)
}

func (l *ZapLogger) Warn(msg string, fields ...any) {
	l.log.Sugar().Warnw(msg, fields...)
}
