// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package geom is the fixed-point geometry kernel shared by the path store,
// the stroker, the tessellator and the compositor.
//
// Coordinates are 26.6 fixed-point values ([fixed.Int26_6]): an integer
// mantissa with 6 fractional bits. All predicates are exact: slopes are
// ordered by the sign of 64-bit cross products and sweep comparisons use
// 128-bit products, so results are reproducible across platforms.
//
// Conversions from float64 saturate at the representable range instead of
// wrapping. Nothing in this package allocates.
package geom
