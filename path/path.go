// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package path

import (
	"fmt"

	"github.com/gogpu/vraster/geom"
	"github.com/gogpu/vraster/render"
)

// Op is a path operation tag.
type Op uint8

const (
	OpMoveTo Op = iota
	OpLineTo
	OpCurveTo
	OpClosePath
)

// Points returns how many points op consumes.
func (op Op) Points() int {
	switch op {
	case OpMoveTo, OpLineTo:
		return 1
	case OpCurveTo:
		return 3
	}
	return 0
}

func (op Op) String() string {
	switch op {
	case OpMoveTo:
		return "move-to"
	case OpLineTo:
		return "line-to"
	case OpCurveTo:
		return "curve-to"
	case OpClosePath:
		return "close-path"
	}
	return fmt.Sprintf("Op(%d)", uint8(op))
}

// MaxOps bounds the number of operations a single path may hold.
const MaxOps = 1 << 26

// Path is a fixed-point path in device space. The zero value is an empty
// path ready to use.
type Path struct {
	chunks chunkList
	numOps int

	currentPoint  geom.Point
	lastMovePoint geom.Point
	extents       geom.Box

	hasCurrentPoint bool
	needsMoveTo     bool
	// pendingMove is set by MoveTo until the move is recorded or the
	// subpath is closed.
	pendingMove bool
	hasExtents      bool
	initialized     bool

	hasCurveTo          bool
	strokeIsRectilinear bool
	fillIsRectilinear   bool
	fillMaybeRegion     bool
	fillIsEmpty         bool
}

// New returns an empty path.
func New() *Path {
	p := &Path{}
	p.init()
	return p
}

func (p *Path) init() {
	if p.initialized {
		return
	}
	p.initialized = true
	p.needsMoveTo = true
	p.strokeIsRectilinear = true
	p.fillIsRectilinear = true
	p.fillMaybeRegion = true
	p.fillIsEmpty = true
}

// Reset empties p, keeping its first chunk for reuse.
func (p *Path) Reset() {
	p.chunks.reset()
	*p = Path{chunks: p.chunks}
	p.init()
}

// MoveTo starts a new subpath at pt. The move is recorded lazily: a run of
// MoveTo calls with no drawing in between keeps only the last one.
func (p *Path) MoveTo(pt geom.Point) error {
	p.init()
	p.NewSubPath()
	p.hasCurrentPoint = true
	p.pendingMove = true
	p.currentPoint = pt
	p.lastMovePoint = pt
	return nil
}

// NewSubPath ends the current subpath without starting a new one. The
// implicit closing segment of the ended subpath is checked for
// rectilinearity so the fill flags stay exact.
func (p *Path) NewSubPath() {
	p.init()
	if !p.needsMoveTo {
		if p.fillIsRectilinear {
			p.fillIsRectilinear = p.currentPoint.X == p.lastMovePoint.X ||
				p.currentPoint.Y == p.lastMovePoint.Y
			p.fillMaybeRegion = p.fillMaybeRegion && p.fillIsRectilinear
		}
		p.needsMoveTo = true
	}
	p.hasCurrentPoint = false
}

// moveToApply records a pending MoveTo before a drawing operation.
func (p *Path) moveToApply() error {
	if !p.needsMoveTo {
		return nil
	}
	if err := p.reserve(OpMoveTo); err != nil {
		return err
	}
	p.needsMoveTo = false
	p.pendingMove = false
	if p.hasExtents {
		p.extents = p.extents.AddPoint(p.currentPoint)
	} else {
		p.extents = geom.Box{P1: p.currentPoint, P2: p.currentPoint}
		p.hasExtents = true
	}
	if p.fillMaybeRegion {
		p.fillMaybeRegion = geom.IsInteger(p.currentPoint.X) && geom.IsInteger(p.currentPoint.Y)
	}
	p.lastMovePoint = p.currentPoint
	p.add(OpMoveTo, p.currentPoint)
	return nil
}

// LineTo appends a straight segment to pt. Without a current point it acts
// as MoveTo. A segment that does not move is dropped unless it directly
// follows a MoveTo (a stroked dot), and a segment continuing the previous
// one in the same direction extends it instead of adding a vertex.
func (p *Path) LineTo(pt geom.Point) error {
	p.init()
	if !p.hasCurrentPoint {
		return p.MoveTo(pt)
	}
	// Reserve up front so a failure leaves p untouched.
	if err := p.reserveN(2, 2); err != nil {
		return err
	}
	if err := p.moveToApply(); err != nil {
		return err
	}

	last, _ := p.lastOp()
	if last != OpMoveTo && pt == p.currentPoint {
		return nil
	}
	if last == OpLineTo {
		prev := p.penultimatePoint()
		if prev == p.currentPoint {
			p.dropLineTo()
		} else {
			ps := geom.SlopeBetween(prev, p.currentPoint)
			s := geom.SlopeBetween(p.currentPoint, pt)
			if geom.SlopeEqual(ps, s) {
				p.dropLineTo()
			}
		}
	}

	if p.strokeIsRectilinear {
		p.strokeIsRectilinear = p.currentPoint.X == pt.X || p.currentPoint.Y == pt.Y
		p.fillIsRectilinear = p.fillIsRectilinear && p.strokeIsRectilinear
		p.fillMaybeRegion = p.fillMaybeRegion && p.fillIsRectilinear
		if p.fillMaybeRegion {
			p.fillMaybeRegion = geom.IsInteger(pt.X) && geom.IsInteger(pt.Y)
		}
	}
	if p.fillIsEmpty {
		p.fillIsEmpty = fanIsDegenerate(p.lastMovePoint, p.currentPoint, pt)
	}

	p.currentPoint = pt
	p.extents = p.extents.AddPoint(pt)
	p.add(OpLineTo, pt)
	return nil
}

// CurveTo appends a cubic Bezier segment with control points c1, c2 ending
// at end. A curve whose control points all coincide with the current point
// and end point is appended as a line.
func (p *Path) CurveTo(c1, c2, end geom.Point) error {
	p.init()
	if p.hasCurrentPoint && p.currentPoint == end && c1 == end && c2 == end {
		return p.LineTo(end)
	}
	if err := p.reserveN(2, 4); err != nil {
		return err
	}
	if !p.hasCurrentPoint {
		if err := p.MoveTo(c1); err != nil {
			return err
		}
	}
	if err := p.moveToApply(); err != nil {
		return err
	}
	if last, _ := p.lastOp(); last == OpLineTo {
		if p.penultimatePoint() == p.currentPoint {
			p.dropLineTo()
		}
	}

	p.extents = p.extents.AddBox(curveBounds(p.currentPoint, c1, c2, end))
	p.currentPoint = end
	p.hasCurveTo = true
	p.strokeIsRectilinear = false
	p.fillIsRectilinear = false
	p.fillMaybeRegion = false
	p.fillIsEmpty = false
	p.add(OpCurveTo, c1, c2, end)
	return nil
}

// ClosePath closes the current subpath with a straight segment back to its
// start. The closing segment is implicit: it is used to update the flags
// and then removed, leaving only the close operation.
func (p *Path) ClosePath() error {
	p.init()
	if !p.hasCurrentPoint {
		return nil
	}
	if err := p.reserveN(3, 2); err != nil {
		return err
	}
	if err := p.LineTo(p.lastMovePoint); err != nil {
		return err
	}
	if last, _ := p.lastOp(); last == OpLineTo {
		p.dropLineTo()
	}
	p.needsMoveTo = true
	p.pendingMove = false
	p.add(OpClosePath)
	return nil
}

// CurrentPoint returns the current point, if any.
func (p *Path) CurrentPoint() (geom.Point, bool) {
	return p.currentPoint, p.hasCurrentPoint
}

// Extents returns the bounding box of all recorded points, and false for a
// path with no drawing operations.
func (p *Path) Extents() (geom.Box, bool) {
	return p.extents, p.hasExtents
}

// Len returns the number of recorded operations.
func (p *Path) Len() int { return p.numOps }

// IsEmpty reports whether p has no recorded operations.
func (p *Path) IsEmpty() bool { return p.numOps == 0 }

// HasCurveTo reports whether p contains a curve.
func (p *Path) HasCurveTo() bool { return p.hasCurveTo }

// StrokeIsRectilinear reports whether every segment is axis aligned.
func (p *Path) StrokeIsRectilinear() bool { p.init(); return p.strokeIsRectilinear }

// FillIsRectilinear reports whether every segment, including implicit
// closing segments, is axis aligned.
func (p *Path) FillIsRectilinear() bool {
	p.init()
	if !p.fillIsRectilinear {
		return false
	}
	// The last subpath has not been checked by NewSubPath yet.
	if !p.needsMoveTo {
		return p.currentPoint.X == p.lastMovePoint.X || p.currentPoint.Y == p.lastMovePoint.Y
	}
	return true
}

// FillMaybeRegion reports whether the fill of p may be an exact union of
// pixel-aligned boxes.
func (p *Path) FillMaybeRegion() bool {
	if !p.FillIsRectilinear() {
		return false
	}
	return p.fillMaybeRegion
}

// FillIsEmpty reports whether filling p covers no area.
func (p *Path) FillIsEmpty() bool {
	p.init()
	return p.fillIsEmpty
}

// add appends an operation; capacity was reserved by the caller.
func (p *Path) add(op Op, pts ...geom.Point) {
	p.chunks.push(op, pts)
	p.numOps++
}

func (p *Path) reserve(op Op) error {
	return p.reserveN(1, op.Points())
}

// reserveN makes room for nops operations holding npts points without
// touching the path state.
func (p *Path) reserveN(nops, npts int) error {
	if p.numOps+nops > MaxOps {
		return fmt.Errorf("%w: path exceeds %d operations", render.ErrOutOfMemory, MaxOps)
	}
	p.chunks.reserve(nops, npts)
	return nil
}

func (p *Path) lastOp() (Op, bool) {
	return p.chunks.lastOp()
}

func (p *Path) penultimatePoint() geom.Point {
	return p.chunks.pointFromEnd(1)
}

// fanIsDegenerate reports whether the triangle a, b, c has no area. A
// subpath whose every fan triangle from its start point is degenerate
// encloses nothing.
func fanIsDegenerate(a, b, c geom.Point) bool {
	bx, by := int64(b.X)-int64(a.X), int64(b.Y)-int64(a.Y)
	cx, cy := int64(c.X)-int64(a.X), int64(c.Y)-int64(a.Y)
	return geom.Mul64(bx, cy).Cmp(geom.Mul64(by, cx)) == 0
}

// dropLineTo removes the trailing line-to. The current point is left
// unchanged.
func (p *Path) dropLineTo() {
	p.chunks.pop(1)
	p.numOps--
}
