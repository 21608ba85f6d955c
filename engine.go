// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package vraster

import (
	"errors"
	"fmt"
	"image"
	"log/slog"

	"github.com/gogpu/vraster/clip"
	"github.com/gogpu/vraster/geom"
	"github.com/gogpu/vraster/internal/compositor"
	"github.com/gogpu/vraster/path"
	"github.com/gogpu/vraster/pattern"
	"github.com/gogpu/vraster/pixbuf"
	"github.com/gogpu/vraster/recording"
	"github.com/gogpu/vraster/render"
)

// Engine renders fill, stroke, paint and mask requests into images.
//
// Every operation runs to completion before it returns and releases all
// of its temporaries. An Engine owns the caches shared by its calls, so it
// is not safe for concurrent use; callers serialize the operations on one
// Engine and on one destination.
type Engine struct {
	opts     options
	solids   *pattern.SolidCache
	resolver *pattern.Resolver
	comp     *compositor.Compositor
	closed   bool
}

// New returns an Engine configured by opts.
func New(opts ...Option) *Engine {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	e := &Engine{opts: o, solids: pattern.NewSolidCache(o.solidCacheSize)}
	e.resolver = &pattern.Resolver{Solids: e.solids}
	e.comp = compositor.New(e.resolver, o.coverageBuffer)
	return e
}

func (e *Engine) logger() *slog.Logger {
	if e.opts.logger != nil {
		return e.opts.logger
	}
	return Logger()
}

// begin checks the common arguments and prepares a call.
func (e *Engine) begin(op pixbuf.Operator, dst *pixbuf.Image) error {
	if e.closed {
		return ErrClosed
	}
	if dst == nil {
		return fmt.Errorf("vraster: nil destination: %w", ErrInvalidGeometry)
	}
	if !op.Valid() {
		return fmt.Errorf("vraster: operator %v: %w", op, ErrInvalidGeometry)
	}
	e.resolver.Logger = e.logger()
	return nil
}

func (e *Engine) tolerance(t float64) float64 {
	if t <= 0 {
		return e.opts.tolerance
	}
	return t
}

// status keeps the strategy fallback signal inside the engine.
func status(err error) error {
	if err != nil && errors.Is(err, ErrUnsupported) {
		return fmt.Errorf("vraster: %w: %v", ErrInvalidGeometry, err)
	}
	return err
}

// Fill fills the device-space path p under rule with src, composited onto
// dst with op. A nil clip does not restrict drawing. A tolerance of zero
// or less selects the engine default.
func (e *Engine) Fill(p *path.Path, rule render.FillRule, tolerance float64, aa render.Antialias, op pixbuf.Operator, src pattern.Pattern, dst *pixbuf.Image, c *clip.Clip) error {
	if err := e.begin(op, dst); err != nil {
		return err
	}
	return status(e.comp.Fill(dst, op, src, p, rule, e.tolerance(tolerance), aa, c))
}

// Stroke strokes the device-space path p with style. ctm maps user space,
// where the line width and dashes are measured, to device space, and
// ctmInverse is its inverse.
func (e *Engine) Stroke(p *path.Path, style *render.StrokeStyle, ctm, ctmInverse geom.Matrix, tolerance float64, aa render.Antialias, op pixbuf.Operator, src pattern.Pattern, dst *pixbuf.Image, c *clip.Clip) error {
	if err := e.begin(op, dst); err != nil {
		return err
	}
	return status(e.comp.Stroke(dst, op, src, p, style, ctm, ctmInverse, e.tolerance(tolerance), aa, c))
}

// Paint composites src onto dst everywhere inside the clip.
func (e *Engine) Paint(op pixbuf.Operator, src pattern.Pattern, dst *pixbuf.Image, c *clip.Clip) error {
	if err := e.begin(op, dst); err != nil {
		return err
	}
	return status(e.comp.Paint(dst, op, src, c))
}

// Mask composites src onto dst inside the clip, weighted by the alpha of
// mask.
func (e *Engine) Mask(op pixbuf.Operator, src, mask pattern.Pattern, dst *pixbuf.Image, c *clip.Clip) error {
	if err := e.begin(op, dst); err != nil {
		return err
	}
	return status(e.comp.Mask(dst, op, src, mask, c))
}

// NewRecording returns a recording surface that replays through e. A nil
// extents records an unbounded surface.
func (e *Engine) NewRecording(content pixbuf.Content, extents *image.Rectangle) *recording.Recording {
	return recording.New(e, content, extents, e.opts.snapshotCacheSize)
}

// Close drops the cached solid pictures. Operations on a closed Engine
// return ErrClosed.
func (e *Engine) Close() {
	if e.closed {
		return
	}
	e.logger().Debug("vraster: engine closed", "solids", e.solids.Len())
	e.solids.Clear()
	e.closed = true
}

var _ recording.Backend = (*Engine)(nil)
