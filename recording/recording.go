// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package recording

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/vraster/clip"
	"github.com/gogpu/vraster/geom"
	"github.com/gogpu/vraster/path"
	"github.com/gogpu/vraster/pattern"
	"github.com/gogpu/vraster/pixbuf"
	"github.com/gogpu/vraster/render"
)

// ErrNoBackend is returned by Replay when the recording has no backend.
var ErrNoBackend = errors.New("recording: no backend")

// Recording is a surface that stores drawing commands. A bounded recording
// clips every command to its extents; an unbounded one records
// everything.
//
// The Recording is not safe for concurrent use.
type Recording struct {
	backend   Backend
	content   pixbuf.Content
	extents   image.Rectangle
	bounded   bool
	commands  []Command
	resources *ResourcePool
	snapshots *pattern.Snapshots
}

// New returns an empty recording replayed through backend. extents is
// nil for an unbounded recording. snapshots is the number of replayed
// images kept for reuse; a negative value selects the default.
func New(backend Backend, content pixbuf.Content, extents *image.Rectangle, snapshots int) *Recording {
	r := &Recording{
		backend:   backend,
		content:   content,
		commands:  make([]Command, 0, 16),
		resources: NewResourcePool(),
		snapshots: pattern.NewSnapshots(snapshots),
	}
	if extents != nil {
		r.extents = *extents
		r.bounded = true
	}
	return r
}

// ContentType implements pattern.Source.
func (r *Recording) ContentType() pixbuf.Content { return r.content }

// Extents implements pattern.Source.
func (r *Recording) Extents() (image.Rectangle, bool) {
	return r.extents, r.bounded
}

// Snapshots implements pattern.Replayer.
func (r *Recording) Snapshots() *pattern.Snapshots { return r.snapshots }

// Commands returns the recorded commands.
func (r *Recording) Commands() []Command { return r.commands }

// Resources returns the resource pool.
func (r *Recording) Resources() *ResourcePool { return r.resources }

// Len returns the number of recorded commands.
func (r *Recording) Len() int { return len(r.commands) }

// Clear drops every recorded command.
func (r *Recording) Clear() {
	r.commands = r.commands[:0]
	r.resources.Clear()
	r.snapshots.Invalidate()
}

func (r *Recording) clip(c *clip.Clip) *clip.Clip {
	if r.bounded {
		return c.IntersectRectangle(r.extents)
	}
	return c.Copy()
}

func (r *Recording) append(cmd Command) {
	r.commands = append(r.commands, cmd)
	r.snapshots.Invalidate()
}

// own returns a private copy of p for a command. A pattern that draws r,
// directly or through other recordings, is rejected since replaying it
// would never end.
func (r *Recording) own(p pattern.Pattern) (pattern.Pattern, error) {
	if r.drawnBy(p) {
		return nil, render.ErrInvalidGeometry
	}
	return pattern.Clone(p), nil
}

// drawnBy reports whether replaying p replays r.
func (r *Recording) drawnBy(p pattern.Pattern) bool {
	sp, ok := p.(*pattern.SurfacePattern)
	if !ok {
		return false
	}
	nested, ok := sp.Source.(*Recording)
	if !ok {
		return false
	}
	if nested == r {
		return true
	}
	for _, cmd := range nested.commands {
		for _, q := range commandPatterns(cmd) {
			if r.drawnBy(q) {
				return true
			}
		}
	}
	return false
}

func commandPatterns(cmd Command) []pattern.Pattern {
	switch c := cmd.(type) {
	case FillCommand:
		return []pattern.Pattern{c.Source}
	case StrokeCommand:
		return []pattern.Pattern{c.Source}
	case PaintCommand:
		return []pattern.Pattern{c.Source}
	case MaskCommand:
		return []pattern.Pattern{c.Source, c.Mask}
	}
	return nil
}

// Fill records a fill of p.
func (r *Recording) Fill(p *path.Path, rule render.FillRule, tolerance float64, aa render.Antialias,
	op pixbuf.Operator, src pattern.Pattern, c *clip.Clip) error {
	if p == nil || src == nil {
		return fmt.Errorf("recording: fill: %w", render.ErrInvalidGeometry)
	}
	src, err := r.own(src)
	if err != nil {
		return fmt.Errorf("recording: fill: %w", err)
	}
	r.append(FillCommand{
		Op:        op,
		Source:    src,
		Path:      r.resources.AddPath(p),
		Rule:      rule,
		Tolerance: tolerance,
		Antialias: aa,
		Clip:      r.clip(c),
	})
	return nil
}

// Stroke records a stroke of p.
func (r *Recording) Stroke(p *path.Path, style *render.StrokeStyle, ctm, ctmInverse geom.Matrix, tolerance float64,
	aa render.Antialias, op pixbuf.Operator, src pattern.Pattern, c *clip.Clip) error {
	if p == nil || style == nil || src == nil {
		return fmt.Errorf("recording: stroke: %w", render.ErrInvalidGeometry)
	}
	if err := style.Validate(); err != nil {
		return fmt.Errorf("recording: stroke: %w", err)
	}
	src, err := r.own(src)
	if err != nil {
		return fmt.Errorf("recording: stroke: %w", err)
	}
	r.append(StrokeCommand{
		Op:         op,
		Source:     src,
		Path:       r.resources.AddPath(p),
		Style:      style.Clone(),
		CTM:        ctm,
		CTMInverse: ctmInverse,
		Tolerance:  tolerance,
		Antialias:  aa,
		Clip:       r.clip(c),
	})
	return nil
}

// Paint records a paint of src.
func (r *Recording) Paint(op pixbuf.Operator, src pattern.Pattern, c *clip.Clip) error {
	if src == nil {
		return fmt.Errorf("recording: paint: %w", render.ErrInvalidGeometry)
	}
	src, err := r.own(src)
	if err != nil {
		return fmt.Errorf("recording: paint: %w", err)
	}
	r.append(PaintCommand{Op: op, Source: src, Clip: r.clip(c)})
	return nil
}

// Mask records a paint of src through mask.
func (r *Recording) Mask(op pixbuf.Operator, src, mask pattern.Pattern, c *clip.Clip) error {
	if src == nil || mask == nil {
		return fmt.Errorf("recording: mask: %w", render.ErrInvalidGeometry)
	}
	src, err := r.own(src)
	if err != nil {
		return fmt.Errorf("recording: mask: %w", err)
	}
	if mask, err = r.own(mask); err != nil {
		return fmt.Errorf("recording: mask: %w", err)
	}
	r.append(MaskCommand{Op: op, Source: src, Mask: mask, Clip: r.clip(c)})
	return nil
}

// Replay draws every command into dst, with m mapping recording space to
// dst pixel space. It implements pattern.Replayer.
func (r *Recording) Replay(dst *pixbuf.Image, m geom.Matrix) error {
	if r.backend == nil {
		return ErrNoBackend
	}
	inv, err := m.Invert()
	if err != nil {
		return fmt.Errorf("recording: replay: %w", render.ErrInvalidGeometry)
	}
	identity := m.IsIdentity()
	for i, cmd := range r.commands {
		if err := r.replayOne(cmd, dst, m, inv, identity); err != nil {
			return fmt.Errorf("recording: replay %s command %d: %w", cmd.Type(), i, err)
		}
	}
	return nil
}

func (r *Recording) replayOne(cmd Command, dst *pixbuf.Image, m, inv geom.Matrix, identity bool) error {
	pathOf := func(ref PathRef) *path.Path {
		p := r.resources.GetPath(ref)
		if identity || p == nil {
			return p
		}
		return p.Transform(m)
	}
	clipOf := func(c *clip.Clip) (*clip.Clip, error) {
		if identity {
			return c, nil
		}
		return c.Transform(m)
	}
	source := func(p pattern.Pattern) pattern.Pattern {
		if identity {
			return p
		}
		return transformPattern(p, inv)
	}

	switch c := cmd.(type) {
	case FillCommand:
		cl, err := clipOf(c.Clip)
		if err != nil {
			return err
		}
		return r.backend.Fill(pathOf(c.Path), c.Rule, c.Tolerance, c.Antialias, c.Op, source(c.Source), dst, cl)
	case StrokeCommand:
		cl, err := clipOf(c.Clip)
		if err != nil {
			return err
		}
		style := c.Style
		ctm, ctmInv := c.CTM, c.CTMInverse
		if !identity {
			ctm, ctmInv = m.Multiply(ctm), ctmInv.Multiply(inv)
		}
		return r.backend.Stroke(pathOf(c.Path), &style, ctm, ctmInv, c.Tolerance, c.Antialias, c.Op, source(c.Source), dst, cl)
	case PaintCommand:
		cl, err := clipOf(c.Clip)
		if err != nil {
			return err
		}
		return r.backend.Paint(c.Op, source(c.Source), dst, cl)
	case MaskCommand:
		cl, err := clipOf(c.Clip)
		if err != nil {
			return err
		}
		return r.backend.Mask(c.Op, source(c.Source), source(c.Mask), dst, cl)
	}
	return fmt.Errorf("unknown command %T: %w", cmd, render.ErrUnsupported)
}

// transformPattern returns a copy of p for a device space moved by the
// transform whose inverse is inv.
func transformPattern(p pattern.Pattern, inv geom.Matrix) pattern.Pattern {
	switch p := p.(type) {
	case *pattern.Linear:
		c := *p
		c.Matrix = p.Matrix.Multiply(inv)
		return &c
	case *pattern.Radial:
		c := *p
		c.Matrix = p.Matrix.Multiply(inv)
		return &c
	case *pattern.Mesh:
		c := *p
		c.Matrix = p.Matrix.Multiply(inv)
		return &c
	case *pattern.SurfacePattern:
		c := *p
		c.Matrix = p.Matrix.Multiply(inv)
		return &c
	}
	return p
}

var _ pattern.Replayer = (*Recording)(nil)
