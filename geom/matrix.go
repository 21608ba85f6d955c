// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package geom

import (
	"errors"
	"math"

	"golang.org/x/image/math/f64"
)

// ErrSingularMatrix is returned when a matrix that must be inverted has a
// zero or non-finite determinant.
var ErrSingularMatrix = errors.New("geom: matrix is not invertible")

// Matrix is a 2D affine transformation in row-major order:
//
//	| a  b  c |
//	| d  e  f |
//
// mapping (x, y) to (a*x + b*y + c, d*x + e*y + f).
type Matrix struct {
	A, B, C float64
	D, E, F float64
}

// Identity returns the identity transformation.
func Identity() Matrix {
	return Matrix{A: 1, E: 1}
}

// Translate returns a translation.
func Translate(x, y float64) Matrix {
	return Matrix{A: 1, C: x, E: 1, F: y}
}

// Scale returns a scale about the origin.
func Scale(x, y float64) Matrix {
	return Matrix{A: x, E: y}
}

// Rotate returns a rotation by angle radians. Positive angles rotate +x
// toward +y.
func Rotate(angle float64) Matrix {
	sin, cos := math.Sincos(angle)
	return Matrix{A: cos, B: -sin, D: sin, E: cos}
}

// Multiply returns m * o, which applies o first and then m.
func (m Matrix) Multiply(o Matrix) Matrix {
	return Matrix{
		A: m.A*o.A + m.B*o.D,
		B: m.A*o.B + m.B*o.E,
		C: m.A*o.C + m.B*o.F + m.C,
		D: m.D*o.A + m.E*o.D,
		E: m.D*o.B + m.E*o.E,
		F: m.D*o.C + m.E*o.F + m.F,
	}
}

// TransformPoint maps (x, y) through m.
func (m Matrix) TransformPoint(x, y float64) (float64, float64) {
	return m.A*x + m.B*y + m.C, m.D*x + m.E*y + m.F
}

// TransformDistance maps the vector (dx, dy) through the linear part of m.
func (m Matrix) TransformDistance(dx, dy float64) (float64, float64) {
	return m.A*dx + m.B*dy, m.D*dx + m.E*dy
}

// TransformFixed maps a fixed-point point through m, saturating.
func (m Matrix) TransformFixed(p Point) Point {
	x, y := m.TransformPoint(PointToFloat(p))
	return PtFloat(x, y)
}

// Determinant returns a*e - b*d.
func (m Matrix) Determinant() float64 {
	return m.A*m.E - m.B*m.D
}

// Invert returns the inverse of m, or ErrSingularMatrix.
func (m Matrix) Invert() (Matrix, error) {
	det := m.Determinant()
	if det == 0 || math.IsNaN(det) || math.IsInf(det, 0) {
		return Matrix{}, ErrSingularMatrix
	}
	inv := 1 / det
	return Matrix{
		A: m.E * inv,
		B: -m.B * inv,
		C: (m.B*m.F - m.E*m.C) * inv,
		D: -m.D * inv,
		E: m.A * inv,
		F: (m.D*m.C - m.A*m.F) * inv,
	}, nil
}

// IsIdentity reports whether m is exactly the identity.
func (m Matrix) IsIdentity() bool {
	return m == Identity()
}

// IsTranslation reports whether m only translates.
func (m Matrix) IsTranslation() bool {
	return m.A == 1 && m.B == 0 && m.D == 0 && m.E == 1
}

// IntegerTranslation returns the translation of m when m is a translation
// by whole pixels.
func (m Matrix) IntegerTranslation() (tx, ty int, ok bool) {
	if !m.IsTranslation() {
		return 0, 0, false
	}
	if m.C != math.Trunc(m.C) || m.F != math.Trunc(m.F) {
		return 0, 0, false
	}
	if math.Abs(m.C) > math.MaxInt32 || math.Abs(m.F) > math.MaxInt32 {
		return 0, 0, false
	}
	return int(m.C), int(m.F), true
}

// TransformedCircleMajorAxis returns the semi-major axis of the ellipse a
// circle of the given radius becomes under m.
func (m Matrix) TransformedCircleMajorAxis(radius float64) float64 {
	if m.B == 0 && m.D == 0 {
		return radius * math.Max(math.Abs(m.A), math.Abs(m.E))
	}
	// The ellipse axes are the singular values of the linear part.
	i := m.A*m.A + m.B*m.B
	j := m.D*m.D + m.E*m.E
	f := 0.5 * (i + j)
	g := 0.5 * (i - j)
	h := m.A*m.D + m.B*m.E
	return radius * math.Sqrt(f+math.Hypot(g, h))
}

// ClampMagnitude scales down the coefficients of m so that no term exceeds
// limit in magnitude, preserving the mapping direction. It is used where a
// transform must stay representable in fixed point.
func (m Matrix) ClampMagnitude(limit float64) Matrix {
	mx := math.Max(math.Max(math.Abs(m.A), math.Abs(m.B)), math.Max(math.Abs(m.D), math.Abs(m.E)))
	if mx > limit {
		s := limit / mx
		m.A *= s
		m.B *= s
		m.D *= s
		m.E *= s
	}
	m.C = Clamp(m.C, -limit, limit)
	m.F = Clamp(m.F, -limit, limit)
	return m
}

// Aff3 returns m in the layout used by golang.org/x/image/draw.
func (m Matrix) Aff3() f64.Aff3 {
	return f64.Aff3{m.A, m.B, m.C, m.D, m.E, m.F}
}
