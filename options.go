// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package vraster

import (
	"log/slog"

	"github.com/gogpu/vraster/internal/compositor"
	"github.com/gogpu/vraster/pattern"
	"github.com/gogpu/vraster/render"
)

// Option configures an Engine during creation.
//
// Example:
//
//	e := vraster.New(
//	    vraster.WithSolidCacheSize(64),
//	    vraster.WithDefaultTolerance(0.25),
//	)
type Option func(*options)

// options holds the Engine configuration.
type options struct {
	solidCacheSize    int
	snapshotCacheSize int
	coverageBuffer    int
	tolerance         float64
	logger            *slog.Logger
}

// defaultOptions returns the default engine options.
func defaultOptions() options {
	return options{
		solidCacheSize:    pattern.DefaultSolidCacheSize,
		snapshotCacheSize: pattern.DefaultSnapshotCacheSize,
		coverageBuffer:    compositor.DefaultCoverageBufferSize,
		tolerance:         render.DefaultTolerance,
		logger:            nil, // package logger
	}
}

// WithSolidCacheSize sets how many solid color pictures the engine keeps,
// besides the transparent, black and white ones.
func WithSolidCacheSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.solidCacheSize = n
		}
	}
}

// WithSnapshotCacheSize sets how many replayed images each recording made
// by NewRecording keeps.
func WithSnapshotCacheSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.snapshotCacheSize = n
		}
	}
}

// WithCoverageBufferSize sets the size, in pixels, of the coverage buffer
// the engine reuses between calls. Larger requests allocate their own.
func WithCoverageBufferSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.coverageBuffer = n
		}
	}
}

// WithDefaultTolerance sets the flattening tolerance, in device pixels,
// used when a call passes a tolerance of zero or less.
func WithDefaultTolerance(t float64) Option {
	return func(o *options) {
		if t > 0 {
			o.tolerance = t
		}
	}
}

// WithLogger sets the logger for the records of this engine. Without it
// the engine logs to the package logger set with SetLogger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}
