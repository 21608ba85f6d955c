// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package pattern

import (
	"fmt"
	"image"
	"math"
	"slices"

	"github.com/gogpu/vraster/geom"
	"github.com/gogpu/vraster/pixbuf"
)

// Kind identifies the concrete type of a Pattern.
type Kind uint8

const (
	KindSolid Kind = iota
	KindSurface
	KindLinear
	KindRadial
	KindMesh
)

func (k Kind) String() string {
	switch k {
	case KindSolid:
		return "solid"
	case KindSurface:
		return "surface"
	case KindLinear:
		return "linear"
	case KindRadial:
		return "radial"
	case KindMesh:
		return "mesh"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Pattern is a paint source. The implementations in this package are the
// only ones; the resolver turns each into a pixbuf.Picture.
type Pattern interface {
	Kind() Kind
	// IsOpaque reports whether every pixel the pattern paints is opaque.
	IsOpaque() bool
	// IsClear reports whether the pattern paints nothing anywhere.
	IsClear() bool
}

// Base holds the attributes shared by every non-solid pattern.
type Base struct {
	// Matrix maps device space to pattern space.
	Matrix geom.Matrix
	Extend pixbuf.Extend
	Filter pixbuf.Filter
}

func newBase(extend pixbuf.Extend) Base {
	return Base{Matrix: geom.Identity(), Extend: extend, Filter: pixbuf.FilterGood}
}

// SetMatrix replaces the pattern matrix. It fails for singular matrices,
// which leave the pattern unchanged.
func (b *Base) SetMatrix(m geom.Matrix) error {
	if _, err := m.Invert(); err != nil {
		return err
	}
	b.Matrix = m
	return nil
}

// Solid paints one color everywhere.
type Solid struct {
	Color pixbuf.Color
}

// NewSolid returns a solid pattern of c.
func NewSolid(c pixbuf.Color) *Solid { return &Solid{Color: c} }

// NewRGBA returns a solid pattern from non-premultiplied components in
// [0, 1].
func NewRGBA(r, g, b, a float64) *Solid { return NewSolid(pixbuf.RGBA(r, g, b, a)) }

func (s *Solid) Kind() Kind     { return KindSolid }
func (s *Solid) IsOpaque() bool { return s.Color.IsOpaque() }
func (s *Solid) IsClear() bool  { return s.Color.IsClear() }

// Gradient holds the color stops shared by linear and radial gradients.
type Gradient struct {
	Base
	Stops []pixbuf.Stop
}

// AddStop appends a color stop at offset, clamped to [0, 1]. Stops with
// equal offsets keep their insertion order.
func (g *Gradient) AddStop(offset float64, c pixbuf.Color) {
	g.Stops = append(g.Stops, pixbuf.Stop{Offset: geom.Clamp(offset, 0, 1), Color: c})
}

func (g *Gradient) stopsOpaque() bool {
	if len(g.Stops) == 0 || g.Extend == pixbuf.ExtendNone {
		return false
	}
	for _, s := range g.Stops {
		if !s.Color.IsOpaque() {
			return false
		}
	}
	return true
}

// IsClear reports whether every stop is transparent.
func (g *Gradient) IsClear() bool {
	for _, s := range g.Stops {
		if !s.Color.IsClear() {
			return false
		}
	}
	return true
}

// Linear varies color along the line from P1 to P2 in pattern space.
type Linear struct {
	Gradient
	P1, P2 [2]float64
}

// NewLinear returns a linear gradient from (x1, y1) to (x2, y2) that pads
// past its ends.
func NewLinear(x1, y1, x2, y2 float64) *Linear {
	return &Linear{
		Gradient: Gradient{Base: newBase(pixbuf.ExtendPad)},
		P1:       [2]float64{x1, y1},
		P2:       [2]float64{x2, y2},
	}
}

func (l *Linear) Kind() Kind     { return KindLinear }
func (l *Linear) IsOpaque() bool { return l.stopsOpaque() }

// Radial blends between the circles (C1, R1) and (C2, R2) in pattern space.
type Radial struct {
	Gradient
	C1, C2 [2]float64
	R1, R2 float64
}

// NewRadial returns a two-circle gradient that pads past its ends.
func NewRadial(cx1, cy1, r1, cx2, cy2, r2 float64) *Radial {
	return &Radial{
		Gradient: Gradient{Base: newBase(pixbuf.ExtendPad)},
		C1:       [2]float64{cx1, cy1},
		R1:       math.Abs(r1),
		C2:       [2]float64{cx2, cy2},
		R2:       math.Abs(r2),
	}
}

func (r *Radial) Kind() Kind { return KindRadial }

// IsOpaque reports whether the cone covers the plane with opaque colors,
// which needs one circle to contain the other.
func (r *Radial) IsOpaque() bool {
	if !r.stopsOpaque() {
		return false
	}
	d := math.Hypot(r.C2[0]-r.C1[0], r.C2[1]-r.C1[1])
	return d <= math.Abs(r.R2-r.R1)
}

// SurfacePattern paints the content of a Source.
type SurfacePattern struct {
	Base
	Source Source
}

// NewSurface returns a pattern painting src unrepeated.
func NewSurface(src Source) *SurfacePattern {
	return &SurfacePattern{Base: newBase(pixbuf.ExtendNone), Source: src}
}

func (s *SurfacePattern) Kind() Kind { return KindSurface }

func (s *SurfacePattern) IsOpaque() bool {
	if s.Source.ContentType() != pixbuf.ContentColor {
		return false
	}
	_, bounded := s.Source.Extents()
	return !bounded || s.Extend != pixbuf.ExtendNone
}

func (s *SurfacePattern) IsClear() bool {
	r, bounded := s.Source.Extents()
	return bounded && r.Empty()
}

// Clone returns a copy of p that shares nothing mutable with it. The Source
// of a SurfacePattern is shared, not copied.
func Clone(p Pattern) Pattern {
	switch p := p.(type) {
	case *Solid:
		c := *p
		return &c
	case *Linear:
		c := *p
		c.Stops = slices.Clone(p.Stops)
		return &c
	case *Radial:
		c := *p
		c.Stops = slices.Clone(p.Stops)
		return &c
	case *Mesh:
		c := *p
		c.Patches = slices.Clone(p.Patches)
		return &c
	case *SurfacePattern:
		c := *p
		return &c
	}
	return p
}

// Extents returns the device-space pixel bounds of everything p can paint.
// ok is false when p is not bounded.
func Extents(p Pattern) (r image.Rectangle, ok bool) {
	switch p := p.(type) {
	case *SurfacePattern:
		if p.Extend != pixbuf.ExtendNone {
			return image.Rectangle{}, false
		}
		src, bounded := p.Source.Extents()
		if !bounded {
			return image.Rectangle{}, false
		}
		r = deviceBounds(p.Matrix, float64(src.Min.X), float64(src.Min.Y), float64(src.Max.X), float64(src.Max.Y))
		// Filters reach one pixel past the sampled area.
		if !p.Filter.Nearest() || !p.Matrix.IsTranslation() {
			r = r.Inset(-1)
		}
		return r, true
	case *Mesh:
		return p.deviceExtents()
	}
	return image.Rectangle{}, false
}

// deviceBounds maps a pattern-space rectangle to device space through the
// inverse of m and rounds it out.
func deviceBounds(m geom.Matrix, x1, y1, x2, y2 float64) image.Rectangle {
	inv, err := m.Invert()
	if err != nil {
		return image.Rectangle{}
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range [4][2]float64{{x1, y1}, {x2, y1}, {x1, y2}, {x2, y2}} {
		x, y := inv.TransformPoint(c[0], c[1])
		minX, minY = math.Min(minX, x), math.Min(minY, y)
		maxX, maxY = math.Max(maxX, x), math.Max(maxY, y)
	}
	const limit = math.MaxInt32 >> geom.FracBits
	clampI := func(v float64) int { return int(geom.Clamp(v, -limit, limit)) }
	return image.Rect(
		clampI(math.Floor(minX)), clampI(math.Floor(minY)),
		clampI(math.Ceil(maxX)), clampI(math.Ceil(maxY)),
	)
}
