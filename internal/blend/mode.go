// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package blend implements per-pixel compositing on premultiplied 8-bit
// RGBA: the Porter-Duff operators, add and saturate, and the separable and
// HSL blend modes of the W3C Compositing and Blending specification.
package blend

// Mode selects a compositing function. The order matches the operator
// enumeration of package pixbuf.
type Mode uint8

const (
	Clear Mode = iota
	Source
	Over
	In
	Out
	Atop
	Dest
	DestOver
	DestIn
	DestOut
	DestAtop
	Xor
	Add
	Saturate
	Multiply
	Screen
	Overlay
	Darken
	Lighten
	ColorDodge
	ColorBurn
	HardLight
	SoftLight
	Difference
	Exclusion
	Hue
	Saturation
	Color
	Luminosity

	numModes
)

// NumModes is the number of defined modes.
const NumModes = int(numModes)

// Func composites a premultiplied source pixel onto a premultiplied
// destination pixel.
type Func func(sr, sg, sb, sa, dr, dg, db, da byte) (r, g, b, a byte)

var funcs = [numModes]Func{
	Clear:      clearAll,
	Source:     source,
	Over:       over,
	In:         in,
	Out:        out,
	Atop:       atop,
	Dest:       dest,
	DestOver:   destOver,
	DestIn:     destIn,
	DestOut:    destOut,
	DestAtop:   destAtop,
	Xor:        xor,
	Add:        plus,
	Saturate:   saturate,
	Multiply:   separable(multiplyChan),
	Screen:     separable(screenChan),
	Overlay:    separable(overlayChan),
	Darken:     separable(darkenChan),
	Lighten:    separable(lightenChan),
	ColorDodge: separable(colorDodgeChan),
	ColorBurn:  separable(colorBurnChan),
	HardLight:  separable(hardLightChan),
	SoftLight:  separable(softLightChan),
	Difference: separable(differenceChan),
	Exclusion:  separable(exclusionChan),
	Hue:        nonSeparable(hslHue),
	Saturation: nonSeparable(hslSaturation),
	Color:      nonSeparable(hslColor),
	Luminosity: nonSeparable(hslLuminosity),
}

// Lookup returns the function for m. Unknown modes composite as Over.
func Lookup(m Mode) Func {
	if m >= numModes {
		return over
	}
	return funcs[m]
}
