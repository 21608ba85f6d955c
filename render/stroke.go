// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import "fmt"

// LineCap is the shape drawn at the open ends of a stroked subpath.
type LineCap uint8

const (
	// LineCapButt ends the stroke exactly at the endpoint.
	LineCapButt LineCap = iota
	// LineCapRound adds a half disc centered at the endpoint.
	LineCapRound
	// LineCapSquare extends the stroke by half the line width.
	LineCapSquare
)

func (c LineCap) String() string {
	switch c {
	case LineCapRound:
		return "round"
	case LineCapSquare:
		return "square"
	}
	return "butt"
}

// LineJoin is the shape drawn where two stroked segments meet.
type LineJoin uint8

const (
	// LineJoinMiter extends the outer edges to their intersection.
	LineJoinMiter LineJoin = iota
	// LineJoinRound fills the corner with an arc.
	LineJoinRound
	// LineJoinBevel cuts the corner with a straight edge.
	LineJoinBevel
)

func (j LineJoin) String() string {
	switch j {
	case LineJoinRound:
		return "round"
	case LineJoinBevel:
		return "bevel"
	}
	return "miter"
}

// StrokeStyle describes how a path is stroked. Width and dash lengths are
// in user space; the stroker maps them to device space with the stroke
// transform.
type StrokeStyle struct {
	Width      float64
	Cap        LineCap
	Join       LineJoin
	MiterLimit float64
	Dash       *Dash
}

// DefaultStrokeStyle returns a 2 unit wide solid stroke with miter joins
// and butt caps.
func DefaultStrokeStyle() StrokeStyle {
	return StrokeStyle{
		Width:      2,
		Cap:        LineCapButt,
		Join:       LineJoinMiter,
		MiterLimit: 10,
	}
}

// Validate reports invalid style parameters.
func (s *StrokeStyle) Validate() error {
	if s.Width < 0 {
		return fmt.Errorf("%w: negative line width %g", ErrInvalidGeometry, s.Width)
	}
	if s.Dash != nil {
		for _, l := range s.Dash.Array {
			if l < 0 {
				return fmt.Errorf("%w: negative dash length %g", ErrInvalidGeometry, l)
			}
		}
	}
	return nil
}

// Clone returns a deep copy of s.
func (s StrokeStyle) Clone() StrokeStyle {
	s.Dash = s.Dash.Clone()
	return s
}
