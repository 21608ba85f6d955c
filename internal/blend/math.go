// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package blend

// div255 divides x by 255 exactly for x in [0, 65535] without a division.
func div255(x uint32) uint32 {
	t := x + 128
	return (t + (t >> 8)) >> 8
}

// mul multiplies two 8-bit fractions.
func mul(a, b byte) byte {
	return byte(div255(uint32(a) * uint32(b)))
}

// mulAdd returns a*b + c*d as 8-bit fractions, saturated.
func mulAdd(a, b, c, d byte) byte {
	return sat(div255(uint32(a)*uint32(b) + uint32(c)*uint32(d)))
}

func sat(x uint32) byte {
	if x > 255 {
		return 255
	}
	return byte(x)
}

func add(a, b byte) byte {
	return sat(uint32(a) + uint32(b))
}

// Lerp returns a + (b - a) * t for 8-bit fractions.
func Lerp(a, b, t byte) byte {
	return byte(div255(uint32(a)*uint32(255-t) + uint32(b)*uint32(t)))
}

// Mul multiplies two 8-bit fractions with rounding.
func Mul(a, b byte) byte { return mul(a, b) }
