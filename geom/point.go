// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package geom

import (
	"image"
	"math"

	"golang.org/x/image/math/fixed"
)

// Point is a fixed-point position.
type Point = fixed.Point26_6

// Pt returns the Point (x, y).
func Pt(x, y Fixed) Point {
	return Point{X: x, Y: y}
}

// PtFloat converts a float64 position to a Point, saturating.
func PtFloat(x, y float64) Point {
	return Point{X: FromFloat(x), Y: FromFloat(y)}
}

// PointToFloat converts p to float64 coordinates.
func PointToFloat(p Point) (x, y float64) {
	return ToFloat(p.X), ToFloat(p.Y)
}

// Line is a directed segment from P1 to P2.
type Line struct {
	P1, P2 Point
}

// XForY returns the x coordinate of the infinite line through l at y,
// truncated toward negative infinity. Horizontal lines return P1.X.
func (l Line) XForY(y Fixed) Fixed {
	dy := int64(l.P2.Y - l.P1.Y)
	if dy == 0 {
		return l.P1.X
	}
	if y == l.P1.Y {
		return l.P1.X
	}
	if y == l.P2.Y {
		return l.P2.X
	}
	num := int64(y-l.P1.Y) * int64(l.P2.X-l.P1.X)
	q := num / dy
	if (num%dy != 0) && ((num < 0) != (dy < 0)) {
		q--
	}
	return l.P1.X + Fixed(q)
}

// XForYFloat is XForY without rounding.
func (l Line) XForYFloat(y float64) float64 {
	x1, y1 := PointToFloat(l.P1)
	x2, y2 := PointToFloat(l.P2)
	if y2 == y1 {
		return x1
	}
	return x1 + (y-y1)*(x2-x1)/(y2-y1)
}

// Slope returns the direction of l.
func (l Line) Slope() Slope {
	return Slope{DX: l.P2.X - l.P1.X, DY: l.P2.Y - l.P1.Y}
}

// Colinear reports whether a and b lie on the same infinite line.
func Colinear(a, b Line) bool {
	sa := a.Slope()
	if !SlopeParallel(sa, b.Slope()) {
		return false
	}
	// b.P1 must lie on a.
	d := Slope{DX: b.P1.X - a.P1.X, DY: b.P1.Y - a.P1.Y}
	return Cross(sa, d) == 0
}

// Box is an axis-aligned box. A canonical box has P1 <= P2 componentwise.
type Box struct {
	P1, P2 Point
}

// BoxFromPoints returns the canonical box spanning a and b.
func BoxFromPoints(a, b Point) Box {
	return Box{P1: a, P2: b}.Canonical()
}

// BoxFromRect converts an integer rectangle to a box.
func BoxFromRect(r image.Rectangle) Box {
	return Box{
		P1: Point{X: FromInt(r.Min.X), Y: FromInt(r.Min.Y)},
		P2: Point{X: FromInt(r.Max.X), Y: FromInt(r.Max.Y)},
	}
}

// EmptyBox is the identity for AddPoint and AddBox.
var EmptyBox = Box{
	P1: Point{X: MaxFixed, Y: MaxFixed},
	P2: Point{X: MinFixed, Y: MinFixed},
}

// Canonical returns b with its corners ordered.
func (b Box) Canonical() Box {
	if b.P1.X > b.P2.X {
		b.P1.X, b.P2.X = b.P2.X, b.P1.X
	}
	if b.P1.Y > b.P2.Y {
		b.P1.Y, b.P2.Y = b.P2.Y, b.P1.Y
	}
	return b
}

// ContainsPoint reports whether p lies inside b, boundary included on all
// four sides.
func (b Box) ContainsPoint(p Point) bool {
	return p.X >= b.P1.X && p.X <= b.P2.X && p.Y >= b.P1.Y && p.Y <= b.P2.Y
}

// ContainsBox reports whether o lies entirely inside b.
func (b Box) ContainsBox(o Box) bool {
	return o.P1.X >= b.P1.X && o.P2.X <= b.P2.X && o.P1.Y >= b.P1.Y && o.P2.Y <= b.P2.Y
}

// AddPoint grows b to include p.
func (b Box) AddPoint(p Point) Box {
	if p.X < b.P1.X {
		b.P1.X = p.X
	}
	if p.X > b.P2.X {
		b.P2.X = p.X
	}
	if p.Y < b.P1.Y {
		b.P1.Y = p.Y
	}
	if p.Y > b.P2.Y {
		b.P2.Y = p.Y
	}
	return b
}

// AddBox grows b to include o.
func (b Box) AddBox(o Box) Box {
	return b.AddPoint(o.P1).AddPoint(o.P2)
}

// Intersect returns the intersection of b and o. The result is empty
// (IsEmpty reports true) when they do not overlap.
func (b Box) Intersect(o Box) Box {
	if o.P1.X > b.P1.X {
		b.P1.X = o.P1.X
	}
	if o.P1.Y > b.P1.Y {
		b.P1.Y = o.P1.Y
	}
	if o.P2.X < b.P2.X {
		b.P2.X = o.P2.X
	}
	if o.P2.Y < b.P2.Y {
		b.P2.Y = o.P2.Y
	}
	return b
}

// Overlaps reports whether b and o share a region of positive area.
func (b Box) Overlaps(o Box) bool {
	return b.P1.X < o.P2.X && o.P1.X < b.P2.X && b.P1.Y < o.P2.Y && o.P1.Y < b.P2.Y
}

// IsEmpty reports whether b has no area.
func (b Box) IsEmpty() bool {
	return b.P1.X >= b.P2.X || b.P1.Y >= b.P2.Y
}

// Width returns the horizontal extent of b.
func (b Box) Width() Fixed { return b.P2.X - b.P1.X }

// Height returns the vertical extent of b.
func (b Box) Height() Fixed { return b.P2.Y - b.P1.Y }

// IsPixelAligned reports whether all four edges of b lie on integers.
func (b Box) IsPixelAligned() bool {
	return IsInteger(b.P1.X) && IsInteger(b.P1.Y) && IsInteger(b.P2.X) && IsInteger(b.P2.Y)
}

// RoundOut returns the smallest integer rectangle containing b.
func (b Box) RoundOut() image.Rectangle {
	return image.Rect(b.P1.X.Floor(), b.P1.Y.Floor(), b.P2.X.Ceil(), b.P2.Y.Ceil())
}

// RoundIn returns the largest integer rectangle inside b.
func (b Box) RoundIn() image.Rectangle {
	r := image.Rectangle{
		Min: image.Point{X: b.P1.X.Ceil(), Y: b.P1.Y.Ceil()},
		Max: image.Point{X: b.P2.X.Floor(), Y: b.P2.Y.Floor()},
	}
	if r.Empty() {
		return image.Rectangle{}
	}
	return r
}

// ToFloat returns b as float64 corner coordinates.
func (b Box) ToFloat() (x1, y1, x2, y2 float64) {
	return ToFloat(b.P1.X), ToFloat(b.P1.Y), ToFloat(b.P2.X), ToFloat(b.P2.Y)
}

// Slope is a direction vector. It is never normalized; angles are ordered
// with cross products only.
type Slope struct {
	DX, DY Fixed
}

// SlopeBetween returns the direction from a to b.
func SlopeBetween(a, b Point) Slope {
	return Slope{DX: b.X - a.X, DY: b.Y - a.Y}
}

// IsZero reports whether s has no direction.
func (s Slope) IsZero() bool { return s.DX == 0 && s.DY == 0 }

// Neg returns the opposite direction.
func (s Slope) Neg() Slope { return Slope{DX: -s.DX, DY: -s.DY} }

// Float returns s as float64 components in pixels.
func (s Slope) Float() (dx, dy float64) { return ToFloat(s.DX), ToFloat(s.DY) }

// Len returns the Euclidean length of s in pixels.
func (s Slope) Len() float64 {
	dx, dy := s.Float()
	return math.Hypot(dx, dy)
}

// Cross returns a.DX*b.DY - a.DY*b.DX. Positive means b is rotated from a
// toward +y (clockwise on a y-down screen) by less than a half turn.
func Cross(a, b Slope) int64 {
	return int64(a.DX)*int64(b.DY) - int64(a.DY)*int64(b.DX)
}

// Dot returns a.DX*b.DX + a.DY*b.DY.
func Dot(a, b Slope) int64 {
	return int64(a.DX)*int64(b.DX) + int64(a.DY)*int64(b.DY)
}

// SlopeParallel reports whether a and b are parallel or anti-parallel.
func SlopeParallel(a, b Slope) bool {
	return Cross(a, b) == 0
}

// SlopeEqual reports whether a and b point in the same direction.
func SlopeEqual(a, b Slope) bool {
	return Cross(a, b) == 0 && Dot(a, b) > 0
}

// half classifies s into the angular half-plane [0, pi) or [pi, 2pi),
// measuring angles from +x toward +y.
func (s Slope) half() int {
	if s.DY > 0 || (s.DY == 0 && s.DX > 0) {
		return 0
	}
	return 1
}

// SlopeCompare orders a and b by their angle in [0, 2pi), measured from the
// positive x axis toward positive y. It returns -1, 0 or +1. The zero slope
// sorts before every direction. The ordering is a strict weak ordering and
// uses no trigonometry.
func SlopeCompare(a, b Slope) int {
	az, bz := a.IsZero(), b.IsZero()
	switch {
	case az && bz:
		return 0
	case az:
		return -1
	case bz:
		return 1
	}
	ha, hb := a.half(), b.half()
	if ha != hb {
		if ha < hb {
			return -1
		}
		return 1
	}
	c := Cross(a, b)
	switch {
	case c > 0:
		return -1
	case c < 0:
		return 1
	}
	return 0
}
