// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package compositor

import (
	"fmt"
	"image"

	"github.com/gogpu/vraster/clip"
	"github.com/gogpu/vraster/geom"
	"github.com/gogpu/vraster/internal/raster"
	"github.com/gogpu/vraster/internal/tess"
	"github.com/gogpu/vraster/pattern"
	"github.com/gogpu/vraster/pixbuf"
	"github.com/gogpu/vraster/render"
)

// Strategy names a renderer. Strategies are tried from the most to the
// least specialized; GenericSpans handles every request.
type Strategy uint8

const (
	// SolidFill fills whole-pixel boxes directly, without coverage.
	SolidFill Strategy = iota
	// MonoBlit composites runs of full coverage.
	MonoBlit
	// GenericSpans composites antialiased coverage rows.
	GenericSpans
)

var strategyNames = [...]string{"solid-fill", "mono-blit", "generic-spans"}

func (s Strategy) String() string {
	if int(s) < len(strategyNames) {
		return strategyNames[s]
	}
	return fmt.Sprintf("Strategy(%d)", uint8(s))
}

// shape is the coverage of a request: either boxes or trapezoids.
type shape struct {
	boxes *tess.Boxes
	traps *tess.Traps
	aa    render.Antialias
}

func boxShape(r image.Rectangle) shape {
	b := tess.NewBoxes()
	b.Add(geom.BoxFromRect(r), render.AntialiasDefault)
	return shape{boxes: b, aa: render.AntialiasDefault}
}

// extents returns the pixels the shape touches.
func (s shape) extents() image.Rectangle {
	switch {
	case s.boxes != nil && s.boxes.Len() > 0:
		return s.boxes.Extents().RoundOut()
	case s.traps != nil && s.traps.Len() > 0:
		return s.traps.Extents().RoundOut()
	}
	return image.Rectangle{}
}

// aligned reports whether every pixel is either fully covered or not at
// all.
func (s shape) aligned() bool {
	return s.boxes != nil && s.boxes.IsPixelAligned()
}

func (s shape) addTo(cov *raster.Coverage) {
	if s.boxes != nil {
		cov.AddBoxes(s.boxes)
	}
	if s.traps != nil {
		cov.AddTraps(s.traps)
	}
}

// choose returns the strategies able to render a request, most specialized
// first.
func choose(op pixbuf.Operator, hasMask bool, s shape, c *clip.Clip) []Strategy {
	var out []Strategy
	region := c.IsRegion()
	if !hasMask && region && s.aligned() && op.BoundedByMask() {
		out = append(out, SolidFill)
	}
	if !hasMask && region && (s.aa.IsNone() || s.aligned()) {
		out = append(out, MonoBlit)
	}
	return append(out, GenericSpans)
}

// job is one request on its way through a strategy.
type job struct {
	op    pixbuf.Operator
	src   pattern.Pattern
	dst   *pixbuf.Image
	clip  *clip.Clip
	rects Rectangles
	shape shape

	source *pattern.Resolved
	mask   *pattern.Resolved
	trace  *Trace
}

// clipRects returns the whole-pixel clip boxes within r.
func (j *job) clipRects(r image.Rectangle) []image.Rectangle {
	if j.clip == nil {
		return []image.Rectangle{r}
	}
	var out []image.Rectangle
	for _, b := range j.clip.Boxes() {
		if x := b.RoundOut().Intersect(r); !x.Empty() {
			out = append(out, x)
		}
	}
	return out
}

func (c *Compositor) render(s Strategy, j *job) error {
	switch s {
	case SolidFill:
		return c.solidFill(j)
	case MonoBlit:
		return c.monoBlit(j)
	}
	return c.genericSpans(j)
}

// solidFill writes each box of the shape within the clip region with one
// fill or copy.
func (c *Compositor) solidFill(j *job) error {
	switch {
	case j.mask != nil:
		return fmt.Errorf("%w: solid fill with a mask", render.ErrUnsupported)
	case !j.shape.aligned():
		return fmt.Errorf("%w: solid fill of unaligned shape", render.ErrUnsupported)
	case !j.clip.IsRegion():
		return fmt.Errorf("%w: solid fill through a path clip", render.ErrUnsupported)
	case !j.op.BoundedByMask():
		return fmt.Errorf("%w: solid fill with %v", render.ErrUnsupported, j.op)
	}

	solid, isSolid := j.src.(*pattern.Solid)
	var rects []image.Rectangle
	j.shape.boxes.Each(func(b geom.Box) bool {
		rects = append(rects, j.clipRects(b.RoundOut().Intersect(j.rects.Bounded))...)
		return true
	})
	for _, r := range rects {
		switch {
		case j.op == pixbuf.OpClear:
			pixbuf.Fill(pixbuf.OpClear, pixbuf.Transparent, j.dst, r)
		case isSolid:
			pixbuf.Fill(j.op, solid.Color, j.dst, r)
		default:
			off := j.source.Offset
			pixbuf.Composite(j.op, j.source.Picture, nil, j.dst,
				r.Min.X+off.X, r.Min.Y+off.Y, 0, 0, r.Min.X, r.Min.Y, r.Dx(), r.Dy())
		}
	}
	return nil
}

// spanners composites one request through the operator rewrites the
// backend needs: SOURCE and CLEAR interpolate towards the source by the
// coverage instead of replacing the destination.
type spanners struct {
	op      pixbuf.Operator
	main    pixbuf.Spanner
	destOut pixbuf.Spanner
	add     pixbuf.Spanner
}

func (c *Compositor) spanners(j *job) *spanners {
	white := c.resolver.Solids.Get(pixbuf.White)
	pic, off := j.source.Picture, j.source.Offset
	return &spanners{
		op:      j.op,
		main:    pixbuf.Spanner{Op: j.op, Src: pic, Dst: j.dst, DX: off.X, DY: off.Y},
		destOut: pixbuf.Spanner{Op: pixbuf.OpDestOut, Src: white, Dst: j.dst},
		add:     pixbuf.Spanner{Op: pixbuf.OpAdd, Src: pic, Dst: j.dst, DX: off.X, DY: off.Y},
	}
}

func (s *spanners) run(x, y, w int, coverage byte) {
	if coverage == 0xff {
		s.main.Run(x, y, w, coverage)
		return
	}
	switch s.op {
	case pixbuf.OpClear:
		s.destOut.Run(x, y, w, coverage)
	case pixbuf.OpSource:
		s.destOut.Run(x, y, w, coverage)
		s.add.Run(x, y, w, coverage)
	default:
		s.main.Run(x, y, w, coverage)
	}
}

func (s *spanners) row(x, y int, cov []byte) {
	switch s.op {
	case pixbuf.OpClear:
		s.destOut.Row(x, y, cov)
	case pixbuf.OpSource:
		s.destOut.Row(x, y, cov)
		s.add.Row(x, y, cov)
	default:
		s.main.Row(x, y, cov)
	}
}

// monoBlit composites the runs of a shape whose coverage is all or
// nothing, restricted to the clip region.
func (c *Compositor) monoBlit(j *job) error {
	switch {
	case j.mask != nil:
		return fmt.Errorf("%w: mono blit with a mask", render.ErrUnsupported)
	case !j.clip.IsRegion():
		return fmt.Errorf("%w: mono blit through a path clip", render.ErrUnsupported)
	case !j.shape.aa.IsNone() && !j.shape.aligned():
		return fmt.Errorf("%w: mono blit of antialiased shape", render.ErrUnsupported)
	}

	b := j.rects.Bounded
	cov, done, err := c.coverage(b, render.AntialiasNone, j.trace)
	if err != nil {
		return err
	}
	defer done()
	j.shape.addTo(cov)

	clips := j.clipRects(b)
	sp := c.spanners(j)
	keepZero := !j.op.BoundedByMask()
	spans := make([]raster.Span, 0, 16)
	return cov.EachRow(func(y int, row []byte) error {
		spans = raster.AppendSpans(spans[:0], b.Min.X, row, keepZero)
		for _, s := range spans {
			for _, r := range clips {
				if y < r.Min.Y || y >= r.Max.Y {
					continue
				}
				x0, x1 := max(s.X, r.Min.X), min(s.X+s.Len, r.Max.X)
				if x0 < x1 {
					sp.run(x0, y, x1-x0, s.Coverage)
				}
			}
		}
		return nil
	})
}

// genericSpans composites antialiased coverage, weighted by the mask
// pattern and the clip, row by row.
func (c *Compositor) genericSpans(j *job) error {
	b := j.rects.Bounded
	w := b.Dx()

	var clipMask *pixbuf.Image
	if !j.clip.ContainsRectangle(b) {
		m, err := c.clipMask(j.clip, b)
		if err != nil {
			return err
		}
		defer m.Release()
		clipMask = m
		j.trace.MaskAllocated = true
	}

	cov, done, err := c.coverage(b, j.shape.aa, j.trace)
	if err != nil {
		return err
	}
	defer done()
	j.shape.addTo(cov)

	sp := c.spanners(j)
	bpp := j.dst.Format().BytesPerPixel()
	m := make([]byte, w)
	var alpha, scratch, saved []byte
	if j.mask != nil {
		alpha = make([]byte, w)
		scratch = make([]byte, 4*w)
	}
	bounded := j.op.BoundedByMask()

	return cov.EachRow(func(y int, row []byte) error {
		copy(m, row)
		if j.mask != nil {
			off := j.mask.Offset
			j.mask.Picture.Fetch(b.Min.X+off.X, y+off.Y, scratch)
			for i := range alpha {
				alpha[i] = scratch[4*i+3]
			}
			mulRow(m, alpha)
		}
		var clipRow []byte
		if clipMask != nil {
			o := (y - b.Min.Y) * clipMask.Stride()
			clipRow = clipMask.Pix()[o : o+w]
		}

		if bounded {
			if clipRow != nil {
				mulRow(m, clipRow)
			}
			if !isZero(m) {
				sp.row(b.Min.X, y, m)
			}
			return nil
		}
		if clipRow == nil {
			sp.row(b.Min.X, y, m)
			return nil
		}
		// Unbounded operators clear where the shape is absent, but only
		// inside the clip: apply fully, then blend back by the clip.
		pix := j.dst.Pix()
		o := y*j.dst.Stride() + b.Min.X*bpp
		dstRow := pix[o : o+w*bpp]
		saved = append(saved[:0], dstRow...)
		sp.row(b.Min.X, y, m)
		lerpRow(dstRow, saved, clipRow, bpp)
		return nil
	})
}

// cleanup clears the parts of the clip outside the bounded extents for
// operators that affect pixels outside their mask.
func (c *Compositor) cleanup(j *job) error {
	for _, r := range j.rects.Complement() {
		j.trace.Cleanup = append(j.trace.Cleanup, r)
		if j.clip.IsRegion() {
			for _, cr := range j.clipRects(r) {
				pixbuf.Fill(pixbuf.OpClear, pixbuf.Transparent, j.dst, cr)
			}
			continue
		}
		m, err := c.clipMask(j.clip, r)
		if err != nil {
			return err
		}
		j.trace.MaskAllocated = true
		white := c.resolver.Solids.Get(pixbuf.White)
		pixbuf.Composite(pixbuf.OpDestOut, white, pixbuf.NewBits(m), j.dst,
			0, 0, 0, 0, r.Min.X, r.Min.Y, r.Dx(), r.Dy())
		m.Release()
	}
	if len(j.trace.Cleanup) > 0 {
		slogger().Debug("compositor: unbounded cleanup", "op", j.op, "rects", len(j.trace.Cleanup))
	}
	return nil
}

func (c *Compositor) clipMask(cl *clip.Clip, r image.Rectangle) (*pixbuf.Image, error) {
	m, err := cl.Mask(r)
	if err != nil {
		return nil, fmt.Errorf("compositor: clip mask %v: %w", r, render.ErrOutOfMemory)
	}
	return m, nil
}

func mul8(a, b byte) byte {
	t := uint32(a)*uint32(b) + 0x80
	return byte((t + t>>8) >> 8)
}

func mulRow(dst, k []byte) {
	for i, v := range k {
		if v != 0xff {
			dst[i] = mul8(dst[i], v)
		}
	}
}

func isZero(row []byte) bool {
	for _, v := range row {
		if v != 0 {
			return false
		}
	}
	return true
}

// lerpRow moves every pixel of dst back towards saved by one minus its clip
// coverage.
func lerpRow(dst, saved, clipRow []byte, bpp int) {
	for i, k := range clipRow {
		if k == 0xff {
			continue
		}
		for o := i * bpp; o < (i+1)*bpp; o++ {
			s := int(saved[o])
			v := (int(dst[o]) - s) * int(k)
			if v >= 0 {
				dst[o] = byte(s + (v+127)/255)
			} else {
				dst[o] = byte(s - (127-v)/255)
			}
		}
	}
}
