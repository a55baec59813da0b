// Copyright 2014-2016 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package search

// ReplacementPolicy selects how a full transposition table or evaluation
// cache slot decides whether to evict its current occupant in favor of a
// new entry. Grounded on tt.go / original_source/src/thread_safe_table.rs's
// ReplacementPolicy enum.
type ReplacementPolicy uint8

const (
	// AlwaysReplace unconditionally overwrites the slot.
	AlwaysReplace ReplacementPolicy = iota
	// DepthPreferred keeps whichever entry was searched to greater depth.
	DepthPreferred
	// AgeBased replaces an entry more than ageBasedReplacementThreshold (2)
	// generations older than the current one, regardless of depth, and
	// keeps any more recent entry.
	AgeBased
	// ExactPreferred keeps an exact-score entry over a bound, all else equal.
	ExactPreferred
	// DepthAndAge combines DepthPreferred and AgeBased: an entry is replaced
	// by one at least as deep, or once it is more than
	// depthAndAgeOverrideThreshold (100) generations old; otherwise the
	// deeper entry is kept.
	DepthAndAge
)

func (p ReplacementPolicy) String() string {
	switch p {
	case AlwaysReplace:
		return "always-replace"
	case DepthPreferred:
		return "depth-preferred"
	case AgeBased:
		return "age-based"
	case ExactPreferred:
		return "exact-preferred"
	case DepthAndAge:
		return "depth-and-age"
	default:
		return "unknown"
	}
}

// IIDDepthStrategy selects how the probe depth used for internal iterative
// deepening is derived from the depth remaining in the main search.
// Grounded on original_source/src/iid.rs's DepthStrategy enum.
type IIDDepthStrategy uint8

const (
	// IIDDepthFixed always probes at the same configured ply count.
	IIDDepthFixed IIDDepthStrategy = iota
	// IIDDepthRelative subtracts a fixed offset from the main depth.
	IIDDepthRelative
	// IIDDepthAdaptive scales the probe depth with the depth remaining in
	// the main search, clamped to [min, max].
	IIDDepthAdaptive
)

// IIDConfig configures internal iterative deepening. Field defaults and
// valid ranges are grounded on original_source/tests/iid_tests.rs, which
// exercises IIDConfig::default() and IIDConfig::validate() directly.
type IIDConfig struct {
	// Enabled turns IID on or off entirely.
	Enabled bool

	// MinDepth is the minimum remaining depth, at an internal node lacking a
	// TT move, for IID to trigger. Valid range excludes 1 (a depth-1 IID
	// probe cannot usefully recommend a move); default 4.
	MinDepth int

	// IIDDepthPly is the probe depth used for IIDDepthFixed and as the base
	// offset for IIDDepthRelative. Valid range [1, 5]; default 2.
	IIDDepthPly int

	// MaxLegalMoves caps IID to positions with at most this many legal
	// moves; a node with more legal moves skips the probe. Valid range
	// [1, 100]; default 35.
	MaxLegalMoves int

	// TimeOverheadThreshold skips IID once the fraction of the allotted
	// search time already consumed exceeds this value, avoiding spending
	// budget on a probe whose recommendation may never be used. Valid range
	// [0, 1]; default 0.15.
	TimeOverheadThreshold float64

	// DepthStrategy selects how the probe depth is derived; default
	// IIDDepthAdaptive.
	DepthStrategy IIDDepthStrategy

	// EnableTimePressureDetection gates TimeOverheadThreshold: when false,
	// IID never skips for time pressure regardless of elapsed fraction.
	EnableTimePressureDetection bool

	// EnableAdaptiveTuning is stored, but nothing in this package reads it:
	// MinDepth, IIDDepthPly, MaxLegalMoves and TimeOverheadThreshold keep
	// their configured values for the life of the engine.
	EnableAdaptiveTuning bool
}

// DefaultIIDConfig returns the tuned defaults from
// original_source/tests/iid_tests.rs's IIDConfig::default() assertions.
func DefaultIIDConfig() IIDConfig {
	return IIDConfig{
		Enabled:                     true,
		MinDepth:                    4,
		IIDDepthPly:                 2,
		MaxLegalMoves:               35,
		TimeOverheadThreshold:       0.15,
		DepthStrategy:               IIDDepthAdaptive,
		EnableTimePressureDetection: true,
		EnableAdaptiveTuning:        false,
	}
}

func (c IIDConfig) validate() error {
	var errs []error
	if c.MinDepth <= 1 {
		errs = append(errs, errInvalidIIDConfig("min_depth must be > 1"))
	}
	if c.IIDDepthPly < 1 || c.IIDDepthPly > 5 {
		errs = append(errs, errInvalidIIDConfig("iid_depth_ply must be in [1, 5]"))
	}
	if c.MaxLegalMoves < 1 || c.MaxLegalMoves > 100 {
		errs = append(errs, errInvalidIIDConfig("max_legal_moves must be in [1, 100]"))
	}
	if c.TimeOverheadThreshold < 0 || c.TimeOverheadThreshold > 1 {
		errs = append(errs, errInvalidIIDConfig("time_overhead_threshold must be in [0, 1]"))
	}
	return joinErrors(errs...)
}

// EnginePreset bundles a coherent set of Config values under a name, mirroring
// original_source/src/*.rs's EnginePreset enum (Balanced/Aggressive/
// Conservative), each differing chiefly in IID's MinDepth.
type EnginePreset uint8

const (
	PresetBalanced EnginePreset = iota
	PresetAggressive
	PresetConservative
)

// Config configures a new Engine. Zero value is not valid; use
// DefaultConfig and override individual fields, then call Validate (NewEngine
// calls it for you).
type Config struct {
	// TTSizeMB is the transposition table size in megabytes; the entry count
	// is rounded up to the nearest power of two at or above sizeMB's worth
	// of entries by NewTranspositionTable, so a caller-requested capacity is
	// never under-provisioned.
	TTSizeMB int
	// TTReplacementPolicy picks the transposition table's eviction rule.
	TTReplacementPolicy ReplacementPolicy

	// EvalCacheSizeMB is the evaluation cache size in megabytes.
	EvalCacheSizeMB int
	// EvalCacheReplacementPolicy picks the evaluation cache's eviction rule.
	EvalCacheReplacementPolicy ReplacementPolicy

	// MaxAge bounds the age counter before it wraps back to 1 (never 0,
	// which is reserved to mean "never stored"). See cachemanager.go. Must
	// not exceed MaxPackedAge: a stored entry's age is packed into a fixed-
	// width field in tt_entry.go, and a larger MaxAge would alias distinct
	// generations together.
	MaxAge uint32

	// NumThreads must lie in [1, 32]; Validate rejects other values rather
	// than clamping them. The Engine does not read NumThreads,
	// EnableParallel or MinDepthParallel: a search always runs on the
	// calling goroutine, and the parallel package's Driver is configured
	// through its own parallel.Config.
	NumThreads int
	// EnableParallel is stored but not read; see NumThreads.
	EnableParallel bool
	// MinDepthParallel is stored but not read; see NumThreads.
	MinDepthParallel int

	// MaxDepth bounds iterative deepening.
	MaxDepth int
	// TimeLimitMS bounds a single search call; 0 means "until MaxDepth or
	// Stop()", see iterative.go.
	TimeLimitMS int64

	// IID configures internal iterative deepening.
	IID IIDConfig

	Logger     Logger
	TimeSource TimeSource
}

// DefaultConfig returns the PresetBalanced configuration.
func DefaultConfig() Config {
	return presetConfig(PresetBalanced)
}

// NewPresetConfig returns the configuration for a named preset. Grounded on
// original_source/src/*.rs's EnginePreset constructors: Balanced uses
// IID.MinDepth 4, Aggressive 3 (probes more eagerly, trading overhead for
// better move ordering), Conservative 5 (probes less, favoring raw nodes/sec
// in endgame-heavy positions).
func NewPresetConfig(preset EnginePreset) Config {
	return presetConfig(preset)
}

func presetConfig(preset EnginePreset) Config {
	cfg := Config{
		TTSizeMB:                   64,
		TTReplacementPolicy:        DepthAndAge,
		EvalCacheSizeMB:            16,
		EvalCacheReplacementPolicy: AlwaysReplace,
		MaxAge:                     MaxPackedAge,
		NumThreads:                 1,
		EnableParallel:             false,
		MinDepthParallel:           4,
		MaxDepth:                   64,
		TimeLimitMS:                0,
		IID:                        DefaultIIDConfig(),
		Logger:                     NopLogger{},
	}
	switch preset {
	case PresetAggressive:
		cfg.IID.MinDepth = 3
	case PresetConservative:
		cfg.IID.MinDepth = 5
	}
	return cfg
}

// Validate reports every violated invariant at once (via multierr), rather
// than failing on the first. Grounded on
// Voskan-arena-cache/pkg/config.go's Validate combined with
// agilira-balios/errors.go's per-field error constructors.
func (c Config) Validate() error {
	var errs []error
	if c.TTSizeMB <= 0 {
		errs = append(errs, errInvalidTTSize(c.TTSizeMB))
	}
	if c.EvalCacheSizeMB <= 0 {
		errs = append(errs, errInvalidEvalCacheSize(c.EvalCacheSizeMB))
	}
	if c.NumThreads < 1 || c.NumThreads > 32 {
		errs = append(errs, errInvalidNumThreads(c.NumThreads))
	}
	if c.MaxDepth <= 0 || c.MaxDepth > MaxPly {
		errs = append(errs, errInvalidMaxDepth(c.MaxDepth))
	}
	if c.TimeLimitMS < 0 {
		errs = append(errs, errInvalidTimeLimit(c.TimeLimitMS))
	}
	if c.MaxAge == 0 {
		errs = append(errs, errInvalidMaxAge(c.MaxAge))
	} else if c.MaxAge > MaxPackedAge {
		errs = append(errs, errMaxAgeExceedsPacked(c.MaxAge))
	}
	if err := c.IID.validate(); err != nil {
		errs = append(errs, err)
	}
	return joinErrors(errs...)
}

// clampThreads mirrors classic defensive numeric clamps (e.g.
// material.go's score clamps) applied to thread counts instead of scores.
func clampThreads(n int) int {
	if n < 1 {
		return 1
	}
	if n > 32 {
		return 32
	}
	return n
}
