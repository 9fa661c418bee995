/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package config

import (
	"dirpx.dev/renf/apis"
)

const (
	// DefaultMaxRefineSteps represents the default for MaxRefineSteps.
	// Each step halves an enclosure, so 4096 steps reach widths far below
	// any practical coefficient size.
	DefaultMaxRefineSteps = 4096
)

// DefaultPrecisionLadder returns the default disambiguation precisions in
// bits. The final entry is a pragmatic cutoff, not a proven separation bound;
// raise it via WithMaxPrecision when working with nearly coincident roots.
func DefaultPrecisionLadder() []uint {
	return []uint{53, 64, 128, 256}
}

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	// Ensure the ladder is usable.
	if len(cfg.PrecisionLadder) == 0 {
		cfg.PrecisionLadder = DefaultPrecisionLadder()
	}
	if cfg.MaxRefineSteps <= 0 {
		cfg.MaxRefineSteps = DefaultMaxRefineSteps
	}
	return cfg
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		PrecisionLadder: DefaultPrecisionLadder(),
		MaxRefineSteps:  DefaultMaxRefineSteps,
	}
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithPrecisionLadder replaces the disambiguation precision ladder.
// An empty ladder resets to the default.
func WithPrecisionLadder(bits ...uint) Option {
	return func(c *apis.Config) {
		if len(bits) == 0 {
			c.PrecisionLadder = DefaultPrecisionLadder()
			return
		}
		ladder := make([]uint, len(bits))
		copy(ladder, bits)
		c.PrecisionLadder = ladder
	}
}

// WithMaxPrecision extends the ladder by doubling its last entry until the
// given maximum is reached, so disambiguation may escalate further before
// giving up. A maximum at or below the current ladder top is a no-op.
func WithMaxPrecision(bits uint) Option {
	return func(c *apis.Config) {
		if len(c.PrecisionLadder) == 0 {
			c.PrecisionLadder = DefaultPrecisionLadder()
		}
		last := c.PrecisionLadder[len(c.PrecisionLadder)-1]
		for last < bits {
			last *= 2
			if last > bits {
				last = bits
			}
			c.PrecisionLadder = append(c.PrecisionLadder, last)
		}
	}
}

// WithMaxRefineSteps sets the sign-refinement step bound.
// A non-positive value resets to the default.
func WithMaxRefineSteps(n int) Option {
	return func(c *apis.Config) {
		if n <= 0 {
			c.MaxRefineSteps = DefaultMaxRefineSteps
			return
		}
		c.MaxRefineSteps = n
	}
}
