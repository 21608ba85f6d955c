// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package compositor

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/vraster/clip"
	"github.com/gogpu/vraster/geom"
	"github.com/gogpu/vraster/internal/raster"
	"github.com/gogpu/vraster/internal/stroke"
	"github.com/gogpu/vraster/internal/tess"
	"github.com/gogpu/vraster/path"
	"github.com/gogpu/vraster/pattern"
	"github.com/gogpu/vraster/pixbuf"
	"github.com/gogpu/vraster/render"
)

// DefaultCoverageBufferSize is the number of pixels of the coverage buffer
// a Compositor keeps between calls.
const DefaultCoverageBufferSize = 256 * 256

// Trace describes how one request was rendered.
type Trace struct {
	Op       string
	Strategy Strategy
	// Fallbacks lists the strategies that declined the request.
	Fallbacks []Strategy
	// Boxes is the box shape, when the request reduced to boxes.
	Boxes []geom.Box
	// MaskAllocated is set when a clip mask image was rendered.
	MaskAllocated bool
	// CoverageAllocated is set when the request needed a coverage buffer
	// larger than the retained one.
	CoverageAllocated bool
	// Cleanup lists the rectangles cleared for unbounded operators.
	Cleanup []image.Rectangle
}

// Compositor renders fill, stroke, paint and mask requests into images.
// It is not safe for concurrent use.
type Compositor struct {
	resolver *pattern.Resolver
	limit    int
	cov      raster.Coverage
	covBusy  bool
	trace    func(*Trace)
}

// New returns a compositor resolving sources with resolver. It retains a
// coverage buffer of up to limit pixels between calls.
func New(resolver *pattern.Resolver, limit int) *Compositor {
	if resolver == nil {
		resolver = &pattern.Resolver{}
	}
	if limit <= 0 {
		limit = DefaultCoverageBufferSize
	}
	return &Compositor{resolver: resolver, limit: limit}
}

// SetTrace installs fn to receive the trace of every request that reaches
// a strategy. Pass nil to stop tracing.
func (c *Compositor) SetTrace(fn func(*Trace)) { c.trace = fn }

// coverage returns an empty coverage buffer over r and the function that
// hands it back. The retained buffer is used when it is free and r fits.
func (c *Compositor) coverage(r image.Rectangle, aa render.Antialias, t *Trace) (*raster.Coverage, func(), error) {
	if !c.covBusy && r.Dx() <= c.limit/max(r.Dy(), 1) {
		if err := c.cov.Reset(r, aa); err != nil {
			return nil, nil, err
		}
		c.covBusy = true
		return &c.cov, func() { c.covBusy = false }, nil
	}
	t.CoverageAllocated = true
	cov, err := raster.NewCoverage(r, aa)
	if err != nil {
		return nil, nil, err
	}
	return cov, func() {}, nil
}

// unbounded returns the pixels dst and cl leave open to drawing.
func unbounded(dst *pixbuf.Image, cl *clip.Clip) image.Rectangle {
	r := dst.Bounds()
	if ext, ok := cl.Extents(); ok {
		r = r.Intersect(ext)
	}
	return r
}

// Fill fills p under rule.
func (c *Compositor) Fill(dst *pixbuf.Image, op pixbuf.Operator, src pattern.Pattern, p *path.Path, rule render.FillRule, tolerance float64, aa render.Antialias, cl *clip.Clip) error {
	if p == nil {
		return fmt.Errorf("compositor: fill nil path: %w", render.ErrInvalidGeometry)
	}
	op, src, ok := reduce(op, src, dst)
	if !ok || cl.IsAllClipped() {
		return nil
	}
	limit := unbounded(dst, cl)
	if limit.Empty() {
		return nil
	}
	var s shape
	if !p.FillIsEmpty() {
		var err error
		if s, err = fillShape(p, rule, tolerance, aa, limit); err != nil {
			return err
		}
	}
	return c.composite("fill", dst, op, src, nil, cl, s)
}

func fillShape(p *path.Path, rule render.FillRule, tolerance float64, aa render.Antialias, limit image.Rectangle) (shape, error) {
	lb := geom.BoxFromRect(limit)
	if p.FillIsRectilinear() {
		boxes := tess.NewBoxes(lb)
		err := tess.FillRectilinear(p, rule, aa, boxes)
		if err == nil {
			return shape{boxes: boxes, aa: aa}, nil
		}
		if !errors.Is(err, render.ErrUnsupported) {
			return shape{}, err
		}
		slogger().Debug("compositor: rectilinear fill declined", "err", err)
	}
	traps := tess.NewTraps()
	if err := tess.FillPath(p, rule, tolerance, traps, lb); err != nil {
		return shape{}, err
	}
	return trapShape(traps, aa, lb), nil
}

// trapShape turns rectilinear trapezoids into boxes.
func trapShape(traps *tess.Traps, aa render.Antialias, limit geom.Box) shape {
	if traps.Len() > 0 && traps.IsRectilinear() {
		boxes := tess.NewBoxes(limit)
		if traps.ToBoxes(boxes, aa) {
			return shape{boxes: boxes, aa: aa}
		}
	}
	return shape{traps: traps, aa: aa}
}

// Stroke strokes p with style. ctm maps user space to device space and
// ctmInverse is its inverse.
func (c *Compositor) Stroke(dst *pixbuf.Image, op pixbuf.Operator, src pattern.Pattern, p *path.Path, style *render.StrokeStyle, ctm, ctmInverse geom.Matrix, tolerance float64, aa render.Antialias, cl *clip.Clip) error {
	if p == nil || style == nil {
		return fmt.Errorf("compositor: stroke without path or style: %w", render.ErrInvalidGeometry)
	}
	if err := style.Validate(); err != nil {
		return err
	}
	if _, err := ctm.Invert(); err != nil {
		return fmt.Errorf("compositor: stroke transform: %w", render.ErrInvalidGeometry)
	}
	op, src, ok := reduce(op, src, dst)
	if !ok || cl.IsAllClipped() {
		return nil
	}
	limit := unbounded(dst, cl)
	if limit.Empty() {
		return nil
	}
	s, err := strokeShape(p, style, ctm, ctmInverse, tolerance, aa, limit)
	if err != nil {
		return err
	}
	return c.composite("stroke", dst, op, src, nil, cl, s)
}

func strokeShape(p *path.Path, style *render.StrokeStyle, ctm, ctmInverse geom.Matrix, tolerance float64, aa render.Antialias, limit image.Rectangle) (shape, error) {
	lb := geom.BoxFromRect(limit)
	if p.StrokeIsRectilinear() {
		boxes := tess.NewBoxes(lb)
		err := stroke.Rectilinear(p, style, ctm, aa, boxes)
		if err == nil {
			return shape{boxes: boxes, aa: aa}, nil
		}
		if !errors.Is(err, render.ErrUnsupported) {
			return shape{}, err
		}
		slogger().Debug("compositor: rectilinear stroke declined", "err", err)
	}
	traps := tess.NewTraps()
	if aa.IsNone() {
		// Pixel-center sampling saturates, so overlapping pieces need no
		// sweep.
		strip, err := stroke.Tristrip(p, style, ctm, ctmInverse, tolerance)
		if err != nil {
			return shape{}, err
		}
		if err := strip.ToTraps(traps); err != nil {
			return shape{}, err
		}
		return shape{traps: traps, aa: aa}, nil
	}
	if err := stroke.Traps(p, style, ctm, ctmInverse, tolerance, traps, lb); err != nil {
		return shape{}, err
	}
	return trapShape(traps, aa, lb), nil
}

// Paint composites src over the whole clip.
func (c *Compositor) Paint(dst *pixbuf.Image, op pixbuf.Operator, src pattern.Pattern, cl *clip.Clip) error {
	op, src, ok := reduce(op, src, dst)
	if !ok || cl.IsAllClipped() {
		return nil
	}
	limit := unbounded(dst, cl)
	if limit.Empty() {
		return nil
	}
	return c.composite("paint", dst, op, src, nil, cl, boxShape(limit))
}

// Mask composites src weighted by the alpha of mask over the whole clip.
func (c *Compositor) Mask(dst *pixbuf.Image, op pixbuf.Operator, src, mask pattern.Pattern, cl *clip.Clip) error {
	if mask == nil {
		return fmt.Errorf("compositor: nil mask: %w", render.ErrInvalidGeometry)
	}
	op, src, ok := reduce(op, src, dst)
	if !ok || cl.IsAllClipped() {
		return nil
	}
	if mask.IsClear() && op.BoundedByMask() {
		return nil
	}
	limit := unbounded(dst, cl)
	if limit.Empty() {
		return nil
	}
	return c.composite("mask", dst, op, src, mask, cl, boxShape(limit))
}

// reduce rewrites op and src into a cheaper equivalent for dst. ok is
// false when the request cannot change dst.
func reduce(op pixbuf.Operator, src pattern.Pattern, dst *pixbuf.Image) (pixbuf.Operator, pattern.Pattern, bool) {
	if src == nil && op != pixbuf.OpClear {
		// Surfaces as an error from the resolver.
		return op, src, true
	}
	if op == pixbuf.OpSource && src.IsClear() {
		op = pixbuf.OpClear
	}
	if op == pixbuf.OpClear {
		src = pattern.NewSolid(pixbuf.Transparent)
	}
	if dst.IsClear() {
		switch op {
		case pixbuf.OpOver, pixbuf.OpAdd:
			op = pixbuf.OpSource
		case pixbuf.OpClear, pixbuf.OpDest, pixbuf.OpIn, pixbuf.OpDestIn, pixbuf.OpDestOut, pixbuf.OpAtop:
			return op, src, false
		}
	}
	if op.IsNoop() {
		return op, src, false
	}
	if src.IsClear() && op.BoundedBySource() {
		return op, src, false
	}
	return op, src, true
}

// composite runs one request through the first strategy that accepts it,
// then clears what an unbounded operator left outside the shape.
func (c *Compositor) composite(kind string, dst *pixbuf.Image, op pixbuf.Operator, src, mask pattern.Pattern, cl *clip.Clip, s shape) error {
	rects, ok := NewRectangles(op, src, mask, dst, cl, s.extents())
	if !ok {
		return nil
	}
	t := &Trace{Op: kind}
	if s.boxes != nil {
		t.Boxes = s.boxes.Slice()
	}
	j := &job{op: op, src: src, dst: dst, clip: cl, rects: rects, shape: s, trace: t}

	if !rects.Bounded.Empty() {
		source, err := c.resolver.Resolve(src, rects.Bounded)
		if err != nil {
			return err
		}
		defer source.Cleanup()
		j.source = source
		if mask != nil {
			m, err := c.resolver.Resolve(mask, rects.Bounded)
			if err != nil {
				return err
			}
			defer m.Cleanup()
			j.mask = m
		}
		if err := c.run(j); err != nil {
			return err
		}
	}
	if !rects.IsBounded {
		if err := c.cleanup(j); err != nil {
			return err
		}
	}
	if c.trace != nil {
		c.trace(t)
	}
	return nil
}

func (c *Compositor) run(j *job) error {
	for _, s := range choose(j.op, j.mask != nil, j.shape, j.clip) {
		err := c.render(s, j)
		if errors.Is(err, render.ErrUnsupported) && s != GenericSpans {
			j.trace.Fallbacks = append(j.trace.Fallbacks, s)
			slogger().Debug("compositor: strategy declined", "op", j.trace.Op, "strategy", s, "err", err)
			continue
		}
		if err != nil {
			return err
		}
		j.trace.Strategy = s
		slogger().Debug("compositor: rendered", "op", j.trace.Op, "strategy", s, "operator", j.op, "bounded", j.rects.Bounded)
		return nil
	}
	return fmt.Errorf("compositor: no strategy for %s: %w", j.trace.Op, render.ErrInvalidGeometry)
}
