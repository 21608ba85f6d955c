// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package pattern

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/gogpu/vraster/geom"
	"github.com/gogpu/vraster/pixbuf"
	"github.com/gogpu/vraster/render"
)

// gradientLimit bounds the gradient matrix terms so that gradient space
// stays within a 16.16 fixed-point range.
const gradientLimit = 32767

// Resolver turns patterns into pictures. The zero value is usable; it
// allocates a new picture for every solid color and does not log.
type Resolver struct {
	Solids *SolidCache
	Logger *slog.Logger
}

// Resolved is a pattern ready for compositing. Device pixel (x, y) reads
// picture pixel (x+Offset.X, y+Offset.Y). Cleanup must be called once the
// picture is no longer used; it is safe to call more than once.
type Resolved struct {
	Picture pixbuf.Picture
	Offset  image.Point
	// Opaque is set when every pixel read from Picture is opaque.
	Opaque bool

	cleanup []func()
}

// Cleanup releases the temporaries held by r.
func (r *Resolved) Cleanup() {
	if r == nil {
		return
	}
	for i := len(r.cleanup) - 1; i >= 0; i-- {
		r.cleanup[i]()
	}
	r.cleanup = nil
}

func (r *Resolved) onCleanup(f func()) { r.cleanup = append(r.cleanup, f) }

func (r *Resolver) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return r.Logger
}

// Resolve returns a picture for p that is valid at least over the device
// pixels of sample.
func (r *Resolver) Resolve(p Pattern, sample image.Rectangle) (*Resolved, error) {
	switch p := p.(type) {
	case *Solid:
		return r.solid(p.Color), nil
	case *Linear:
		if len(p.Stops) == 0 {
			return r.solid(pixbuf.Transparent), nil
		}
		g := pixbuf.NewLinearGradient(p.P1, p.P2, p.Stops, p.Extend, p.Matrix.ClampMagnitude(gradientLimit))
		return &Resolved{Picture: g, Opaque: g.IsOpaque()}, nil
	case *Radial:
		if len(p.Stops) == 0 {
			return r.solid(pixbuf.Transparent), nil
		}
		g := pixbuf.NewRadialGradient(p.C1, p.R1, p.C2, p.R2, p.Stops, p.Extend, p.Matrix.ClampMagnitude(gradientLimit))
		return &Resolved{Picture: g, Opaque: g.IsOpaque()}, nil
	case *Mesh:
		return r.mesh(p, sample)
	case *SurfacePattern:
		return r.surface(p, sample)
	case nil:
		return nil, fmt.Errorf("pattern: resolve nil pattern: %w", render.ErrInvalidGeometry)
	}
	return nil, fmt.Errorf("pattern: resolve %T: %w", p, render.ErrInvalidGeometry)
}

func (r *Resolver) solid(c pixbuf.Color) *Resolved {
	return &Resolved{Picture: r.Solids.Get(c), Opaque: c.IsOpaque()}
}

// newSample allocates the intermediate image for sample. Its pixel (0, 0)
// is device pixel sample.Min, so the picture offset is -sample.Min.
func newSample(f pixbuf.Format, sample image.Rectangle) (*Resolved, *pixbuf.Image, error) {
	img, err := pixbuf.NewImage(f, sample.Dx(), sample.Dy())
	if err != nil {
		return nil, nil, fmt.Errorf("pattern: sample image: %w", render.ErrOutOfMemory)
	}
	res := &Resolved{Picture: pixbuf.NewBits(img), Offset: sample.Min.Mul(-1)}
	res.onCleanup(img.Release)
	return res, img, nil
}

func (r *Resolver) mesh(p *Mesh, sample image.Rectangle) (*Resolved, error) {
	if sample.Empty() || len(p.Patches) == 0 {
		return r.solid(pixbuf.Transparent), nil
	}
	res, img, err := newSample(pixbuf.FormatARGB32, sample)
	if err != nil {
		return nil, err
	}
	if err := p.rasterize(img, sample.Min); err != nil {
		res.Cleanup()
		return nil, fmt.Errorf("pattern: mesh: %w", render.ErrInvalidGeometry)
	}
	return res, nil
}

func (r *Resolver) surface(p *SurfacePattern, sample image.Rectangle) (*Resolved, error) {
	switch src := p.Source.(type) {
	case Replayer:
		return r.replay(p, src, sample)
	case Surface:
		ext, _ := src.Extents()
		img, release, err := src.AcquireSourceImage()
		if err != nil {
			return nil, fmt.Errorf("pattern: acquire source: %w", err)
		}
		return r.image(p, img, ext.Min, release, sample)
	}
	return nil, ErrNotDrawable
}

// image resolves the pixels of a surface whose pixel (0, 0) sits at origin
// in pattern space. release is called by the cleanup of the result.
func (r *Resolver) image(p *SurfacePattern, img *pixbuf.Image, origin image.Point, release Release, sample image.Rectangle) (*Resolved, error) {
	// Device space to image pixel space.
	m := geom.Translate(-float64(origin.X), -float64(origin.Y)).Multiply(p.Matrix)

	if tx, ty, ok := m.IntegerTranslation(); ok {
		b := pixbuf.NewBits(img)
		b.Extend = p.Extend
		b.Filter = p.Filter
		res := &Resolved{Picture: b, Offset: image.Pt(tx, ty), Opaque: p.IsOpaque()}
		res.onCleanup(release)
		return res, nil
	}

	if sample.Empty() {
		release()
		return r.solid(pixbuf.Transparent), nil
	}
	f := pixbuf.FormatARGB32
	if img.Format() == pixbuf.FormatA8 {
		f = pixbuf.FormatA8
	}
	res, tmp, err := newSample(f, sample)
	if err != nil {
		release()
		return nil, err
	}
	res.onCleanup(release)
	sm := m.Multiply(geom.Translate(float64(sample.Min.X), float64(sample.Min.Y)))
	if err := pixbuf.SampleAffine(tmp, tmp.Bounds(), img, sm, p.Extend, p.Filter); err != nil {
		res.Cleanup()
		return nil, fmt.Errorf("pattern: sample surface: %w", render.ErrInvalidGeometry)
	}
	res.Opaque = p.IsOpaque()
	return res, nil
}

func (r *Resolver) replay(p *SurfacePattern, src Replayer, sample image.Rectangle) (*Resolved, error) {
	ext, bounded := src.Extents()
	if bounded && p.Extend != pixbuf.ExtendNone {
		// Record the whole source once, then extend it like pixels.
		if ext.Empty() {
			return r.solid(pixbuf.Transparent), nil
		}
		img, err := r.snapshot(src, ext, geom.Identity(), pixbuf.ExtendNone)
		if err != nil {
			return nil, err
		}
		return r.image(p, img, ext.Min, func() {}, sample)
	}

	if sample.Empty() {
		return r.solid(pixbuf.Transparent), nil
	}
	img, err := r.snapshot(src, sample, p.Matrix, pixbuf.ExtendNone)
	if err != nil {
		return nil, err
	}
	return &Resolved{Picture: pixbuf.NewBits(img), Offset: sample.Min.Mul(-1)}, nil
}

// snapshot returns src replayed over the device rectangle rect under the
// device-to-source matrix m, taking it from the snapshot memo when
// possible.
func (r *Resolver) snapshot(src Replayer, rect image.Rectangle, m geom.Matrix, e pixbuf.Extend) (*pixbuf.Image, error) {
	inv, err := m.Invert()
	if err != nil {
		return nil, fmt.Errorf("pattern: replay: %w", render.ErrInvalidGeometry)
	}
	replay := func() (*pixbuf.Image, error) {
		img, err := pixbuf.NewImage(pixbuf.FormatARGB32, rect.Dx(), rect.Dy())
		if err != nil {
			return nil, fmt.Errorf("pattern: replay image: %w", render.ErrOutOfMemory)
		}
		toImage := geom.Translate(-float64(rect.Min.X), -float64(rect.Min.Y)).Multiply(inv)
		if err := src.Replay(img, toImage); err != nil {
			img.Release()
			return nil, fmt.Errorf("pattern: replay: %w", err)
		}
		return img, nil
	}

	snaps := src.Snapshots()
	if snaps == nil {
		return replay()
	}
	img, hit, err := snaps.get(snaps.key(rect, m, e), replay)
	if err != nil {
		return nil, err
	}
	if hit {
		r.logger().Debug("pattern: snapshot hit", "rect", rect)
	}
	return img, nil
}
