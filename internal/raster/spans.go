// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package raster

// Span is a horizontal run of pixels sharing one coverage value.
type Span struct {
	X, Len   int
	Coverage byte
}

// AppendSpans run-length encodes the coverage row cov, whose first pixel
// is at x, and appends the runs to dst. Runs of zero coverage are dropped
// unless keepZero is set.
func AppendSpans(dst []Span, x int, cov []byte, keepZero bool) []Span {
	start := 0
	for i := 1; i <= len(cov); i++ {
		if i < len(cov) && cov[i] == cov[start] {
			continue
		}
		if cov[start] != 0 || keepZero {
			dst = append(dst, Span{X: x + start, Len: i - start, Coverage: cov[start]})
		}
		start = i
	}
	return dst
}
