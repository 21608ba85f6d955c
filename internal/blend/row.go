// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package blend

// Row composites len(dst)/4 source pixels onto dst. When mask is non-nil
// each source pixel is first multiplied by the matching mask byte.
func Row(m Mode, dst, src, mask []byte) {
	f := Lookup(m)
	n := len(dst) / 4
	for i := 0; i < n; i++ {
		o := 4 * i
		sr, sg, sb, sa := src[o], src[o+1], src[o+2], src[o+3]
		if mask != nil {
			c := mask[i]
			if c == 0 && boundedByMask(m) {
				continue
			}
			if c != 255 {
				sr, sg, sb, sa = mul(sr, c), mul(sg, c), mul(sb, c), mul(sa, c)
			}
		}
		dst[o], dst[o+1], dst[o+2], dst[o+3] = f(sr, sg, sb, sa, dst[o], dst[o+1], dst[o+2], dst[o+3])
	}
}

// RowSolid composites the premultiplied color c onto every pixel of dst,
// weighted by mask when it is non-nil.
func RowSolid(m Mode, dst []byte, c [4]byte, mask []byte) {
	f := Lookup(m)
	n := len(dst) / 4
	if mask == nil && (m == Source || (m == Over && c[3] == 255)) {
		for i := 0; i < n; i++ {
			copy(dst[4*i:4*i+4], c[:])
		}
		return
	}
	for i := 0; i < n; i++ {
		sr, sg, sb, sa := c[0], c[1], c[2], c[3]
		if mask != nil {
			k := mask[i]
			if k == 0 && boundedByMask(m) {
				continue
			}
			if k != 255 {
				sr, sg, sb, sa = mul(sr, k), mul(sg, k), mul(sb, k), mul(sa, k)
			}
		}
		o := 4 * i
		dst[o], dst[o+1], dst[o+2], dst[o+3] = f(sr, sg, sb, sa, dst[o], dst[o+1], dst[o+2], dst[o+3])
	}
}

// RowAlpha composites source alpha values onto an alpha-only row.
func RowAlpha(m Mode, dst, srcAlpha, mask []byte) {
	f := Lookup(m)
	for i := range dst {
		sa := srcAlpha[i]
		if mask != nil {
			if mask[i] == 0 && boundedByMask(m) {
				continue
			}
			sa = mul(sa, mask[i])
		}
		// Color channels carry the alpha so separable modes stay defined.
		_, _, _, dst[i] = f(sa, sa, sa, sa, dst[i], dst[i], dst[i], dst[i])
	}
}

// boundedByMask reports whether a zero-coverage pixel is left unchanged.
// A transparent source leaves the destination unchanged for every mode
// except those that clear where the source is absent.
func boundedByMask(m Mode) bool {
	switch m {
	case Source, In, Out, DestIn, DestAtop, Clear:
		return false
	}
	return true
}
