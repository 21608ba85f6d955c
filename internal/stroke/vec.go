// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package stroke

import (
	"math"

	"github.com/gogpu/vraster/geom"
)

// Vec2 is a floating point direction.
type Vec2 struct {
	X, Y float64
}

// Scale returns v scaled by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Neg returns -v.
func (v Vec2) Neg() Vec2 {
	return Vec2{X: -v.X, Y: -v.Y}
}

// Dot returns the dot product of v and w.
func (v Vec2) Dot(w Vec2) float64 {
	return v.X*w.X + v.Y*w.Y
}

// Cross returns the z component of the 3D cross product.
func (v Vec2) Cross(w Vec2) float64 {
	return v.X*w.Y - v.Y*w.X
}

// Length returns the length of v.
func (v Vec2) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// Normalize returns a unit vector along v and the original length. A zero
// vector stays zero.
func (v Vec2) Normalize() (Vec2, float64) {
	l := v.Length()
	if l == 0 {
		return Vec2{}, 0
	}
	return Vec2{X: v.X / l, Y: v.Y / l}, l
}

// Perp returns v rotated a quarter turn toward +y.
func (v Vec2) Perp() Vec2 {
	return Vec2{X: -v.Y, Y: v.X}
}

func vecOf(s geom.Slope) Vec2 {
	x, y := s.Float()
	return Vec2{X: x, Y: y}
}

func transformVec(m geom.Matrix, v Vec2) Vec2 {
	x, y := m.TransformDistance(v.X, v.Y)
	return Vec2{X: x, Y: y}
}

func fixedOffset(v Vec2) geom.Point {
	return geom.PtFloat(v.X, v.Y)
}
