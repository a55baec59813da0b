// Copyright 2014-2016 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package search

import (
	goerrors "github.com/agilira/go-errors"
	"go.uber.org/multierr"
)

// Error codes for the search package, as SEARCH_-prefixed string
// identifiers. Only configuration and thread pool construction failures
// are meant to reach a caller; every other error kind is handled locally.
const (
	ErrCodeInvalidTTSize          goerrors.ErrorCode = "SEARCH_INVALID_TT_SIZE"
	ErrCodeInvalidEvalCacheSize   goerrors.ErrorCode = "SEARCH_INVALID_EVAL_CACHE_SIZE"
	ErrCodeInvalidNumThreads      goerrors.ErrorCode = "SEARCH_INVALID_NUM_THREADS"
	ErrCodeInvalidMaxDepth        goerrors.ErrorCode = "SEARCH_INVALID_MAX_DEPTH"
	ErrCodeInvalidTimeLimit       goerrors.ErrorCode = "SEARCH_INVALID_TIME_LIMIT"
	ErrCodeInvalidMaxAge          goerrors.ErrorCode = "SEARCH_INVALID_MAX_AGE"
	ErrCodeInvalidIIDConfig       goerrors.ErrorCode = "SEARCH_INVALID_IID_CONFIG"
	ErrCodeThreadPoolCreateFailed goerrors.ErrorCode = "SEARCH_THREAD_POOL_CREATE_FAILED"
)

func errInvalidTTSize(size int) error {
	return goerrors.NewWithField(ErrCodeInvalidTTSize, "tt_size must be > 0", "tt_size", size)
}

func errInvalidEvalCacheSize(size int) error {
	return goerrors.NewWithField(ErrCodeInvalidEvalCacheSize, "eval_cache_size must be > 0", "eval_cache_size", size)
}

func errInvalidNumThreads(n int) error {
	return goerrors.NewWithContext(ErrCodeInvalidNumThreads, "num_threads must be between 1 and 32", map[string]interface{}{
		"provided_threads": n,
		"valid_range":      "1-32",
	})
}

func errInvalidMaxDepth(d int) error {
	return goerrors.NewWithField(ErrCodeInvalidMaxDepth, "max_depth must be between 1 and 128", "max_depth", d)
}

func errInvalidTimeLimit(ms int64) error {
	return goerrors.NewWithField(ErrCodeInvalidTimeLimit, "time_limit_ms must be >= 0", "time_limit_ms", ms)
}

func errInvalidMaxAge(age uint32) error {
	return goerrors.NewWithField(ErrCodeInvalidMaxAge, "max_age must be > 0", "max_age", age)
}

func errMaxAgeExceedsPacked(age uint32) error {
	return goerrors.NewWithContext(ErrCodeInvalidMaxAge, "max_age exceeds the transposition table's packed age field", map[string]interface{}{
		"max_age":        age,
		"max_packed_age": MaxPackedAge,
	})
}

func errInvalidIIDConfig(reason string) error {
	return goerrors.NewWithField(ErrCodeInvalidIIDConfig, "invalid iid configuration", "reason", reason)
}

// ErrThreadPoolCreateFailed wraps an OS-level failure to create the
// parallel driver's worker pool. This is the one runtime failure that
// surfaces to the caller as an error return rather than being handled
// cooperatively.
func ErrThreadPoolCreateFailed(cause error) error {
	return goerrors.Wrap(cause, ErrCodeThreadPoolCreateFailed, "failed to create search worker pool")
}

// joinErrors aggregates zero or more validation failures into a single
// error, or nil if none were supplied. Grounded on
// Voskan-arena-cache/pkg/config.go's early-return validation chain,
// generalized with go.uber.org/multierr so Config.Validate can report every
// violated invariant in one call instead of only the first.
func joinErrors(errs ...error) error {
	var joined error
	for _, e := range errs {
		joined = multierr.Append(joined, e)
	}
	return joined
}
