// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package render holds the request vocabulary shared by the engine and its
// internal stages: fill rules, antialiasing modes, stroke styles and the
// status errors every stage reports.
package render

import "errors"

// Status errors. ErrUnsupported is an internal fallback signal: a renderer
// strategy returns it when it cannot handle a request, and the compositor
// moves on to the next, more general strategy.
var (
	ErrOutOfMemory     = errors.New("vraster: out of memory")
	ErrInvalidGeometry = errors.New("vraster: invalid geometry")
	ErrUnsupported     = errors.New("vraster: unsupported")
)

// MaxPixels bounds the size of any temporary image or buffer.
const MaxPixels = 1 << 28

// FillRule selects how winding numbers map to inside/outside.
type FillRule uint8

const (
	// FillRuleWinding treats a point as inside when its winding number is
	// nonzero.
	FillRuleWinding FillRule = iota
	// FillRuleEvenOdd treats a point as inside when its winding number is
	// odd.
	FillRuleEvenOdd
)

// String returns the rule name.
func (r FillRule) String() string {
	if r == FillRuleEvenOdd {
		return "even-odd"
	}
	return "winding"
}

// Inside reports whether winding number w is inside under r.
func (r FillRule) Inside(w int) bool {
	if r == FillRuleEvenOdd {
		return w&1 != 0
	}
	return w != 0
}

// Antialias selects the coverage model used when rasterizing.
type Antialias uint8

const (
	AntialiasDefault Antialias = iota
	AntialiasNone
	AntialiasGray
	AntialiasFast
	AntialiasGood
	AntialiasBest
)

// IsNone reports whether a selects binary (pixel-center) coverage.
func (a Antialias) IsNone() bool { return a == AntialiasNone }

// String returns the mode name.
func (a Antialias) String() string {
	switch a {
	case AntialiasNone:
		return "none"
	case AntialiasGray:
		return "gray"
	case AntialiasFast:
		return "fast"
	case AntialiasGood:
		return "good"
	case AntialiasBest:
		return "best"
	}
	return "default"
}

// DefaultTolerance is the flattening tolerance in device pixels used when a
// caller passes zero.
const DefaultTolerance = 0.1
