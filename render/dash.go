// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import "math"

// Dash is a pattern of alternating "on" and "off" lengths. An odd-length
// array is used twice so that on and off swap on the second pass.
type Dash struct {
	Array  []float64
	Offset float64
}

// NewDash returns a dash pattern, or nil when every length is zero.
// Negative lengths are taken by magnitude.
func NewDash(lengths ...float64) *Dash {
	positive := false
	for _, l := range lengths {
		if l != 0 {
			positive = true
			break
		}
	}
	if !positive {
		return nil
	}
	a := make([]float64, len(lengths))
	for i, l := range lengths {
		a[i] = math.Abs(l)
	}
	return &Dash{Array: a}
}

// WithOffset returns a copy of d starting offset units into the pattern.
func (d *Dash) WithOffset(offset float64) *Dash {
	if d == nil {
		return nil
	}
	return &Dash{Array: d.Array, Offset: offset}
}

// PatternLength returns the length of one full cycle.
func (d *Dash) PatternLength() float64 {
	if d == nil {
		return 0
	}
	var total float64
	for _, l := range d.Array {
		total += l
	}
	if len(d.Array)%2 != 0 {
		total *= 2
	}
	return total
}

// IsDashed reports whether d produces gaps.
func (d *Dash) IsDashed() bool {
	return d != nil && d.PatternLength() > 0
}

// Clone returns a deep copy of d.
func (d *Dash) Clone() *Dash {
	if d == nil {
		return nil
	}
	a := make([]float64, len(d.Array))
	copy(a, d.Array)
	return &Dash{Array: a, Offset: d.Offset}
}

// NormalizedOffset returns Offset reduced into [0, PatternLength).
func (d *Dash) NormalizedOffset() float64 {
	n := d.PatternLength()
	if n <= 0 {
		return 0
	}
	o := math.Mod(d.Offset, n)
	if o < 0 {
		o += n
	}
	return o
}

// Effective returns the pattern with odd-length arrays doubled.
func (d *Dash) Effective() []float64 {
	if d == nil || len(d.Array) == 0 {
		return nil
	}
	if len(d.Array)%2 == 0 {
		return d.Array
	}
	a := make([]float64, 2*len(d.Array))
	copy(a, d.Array)
	copy(a[len(d.Array):], d.Array)
	return a
}
