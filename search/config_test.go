// Copyright 2014-2016 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package search

import "testing"

func TestDefaultConfigValidates(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig() should validate cleanly, got %v", err)
	}
}

func TestPresetsDifferOnlyInIIDMinDepth(t *testing.T) {
	balanced := NewPresetConfig(PresetBalanced)
	aggressive := NewPresetConfig(PresetAggressive)
	conservative := NewPresetConfig(PresetConservative)

	if balanced.IID.MinDepth != 4 || aggressive.IID.MinDepth != 3 || conservative.IID.MinDepth != 5 {
		t.Fatalf("unexpected MinDepth values: balanced=%d aggressive=%d conservative=%d",
			balanced.IID.MinDepth, aggressive.IID.MinDepth, conservative.IID.MinDepth)
	}
}

func TestConfigValidateAggregatesAllErrors(t *testing.T) {
	cfg := Config{
		TTSizeMB:        0,
		EvalCacheSizeMB: 0,
		NumThreads:      99,
		MaxDepth:        0,
		TimeLimitMS:     -1,
		MaxAge:          0,
		IID:             DefaultIIDConfig(),
	}
	err := cfg.Validate()
	if err == nil {
		t.Fatalf("expected an aggregate validation error")
	}
}

func TestIIDConfigValidateRejectsOutOfRangeFields(t *testing.T) {
	cfg := DefaultIIDConfig()
	cfg.MinDepth = 1
	cfg.IIDDepthPly = 0
	cfg.MaxLegalMoves = 0
	cfg.TimeOverheadThreshold = 2
	if err := cfg.validate(); err == nil {
		t.Fatalf("expected validate() to reject every out-of-range field")
	}
}

func TestConfigValidateRejectsMaxAgeBeyondPackedField(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxAge = MaxPackedAge + 1
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected Validate to reject a MaxAge exceeding MaxPackedAge")
	}
	cfg.MaxAge = MaxPackedAge
	if err := cfg.Validate(); err != nil {
		t.Fatalf("MaxAge == MaxPackedAge should validate cleanly, got %v", err)
	}
}

func TestClampThreads(t *testing.T) {
	if clampThreads(0) != 1 {
		t.Errorf("clampThreads(0) should floor to 1")
	}
	if clampThreads(100) != 32 {
		t.Errorf("clampThreads(100) should cap to 32")
	}
	if clampThreads(8) != 8 {
		t.Errorf("clampThreads(8) should pass through unchanged")
	}
}
