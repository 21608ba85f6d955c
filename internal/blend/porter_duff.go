// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package blend

func clearAll(_, _, _, _, _, _, _, _ byte) (byte, byte, byte, byte) {
	return 0, 0, 0, 0
}

func source(sr, sg, sb, sa, _, _, _, _ byte) (byte, byte, byte, byte) {
	return sr, sg, sb, sa
}

func dest(_, _, _, _, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return dr, dg, db, da
}

// S + D(1-Sa)
func over(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	if sa == 255 {
		return sr, sg, sb, sa
	}
	ia := 255 - sa
	return add(sr, mul(dr, ia)), add(sg, mul(dg, ia)), add(sb, mul(db, ia)), add(sa, mul(da, ia))
}

// S(1-Da) + D
func destOver(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return over(dr, dg, db, da, sr, sg, sb, sa)
}

// S·Da
func in(sr, sg, sb, sa, _, _, _, da byte) (byte, byte, byte, byte) {
	return mul(sr, da), mul(sg, da), mul(sb, da), mul(sa, da)
}

// D·Sa
func destIn(_, _, _, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return mul(dr, sa), mul(dg, sa), mul(db, sa), mul(da, sa)
}

// S(1-Da)
func out(sr, sg, sb, sa, _, _, _, da byte) (byte, byte, byte, byte) {
	ia := 255 - da
	return mul(sr, ia), mul(sg, ia), mul(sb, ia), mul(sa, ia)
}

// D(1-Sa)
func destOut(_, _, _, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	ia := 255 - sa
	return mul(dr, ia), mul(dg, ia), mul(db, ia), mul(da, ia)
}

// S·Da + D(1-Sa)
func atop(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	ia := 255 - sa
	return mulAdd(sr, da, dr, ia), mulAdd(sg, da, dg, ia), mulAdd(sb, da, db, ia), da
}

// S(1-Da) + D·Sa
func destAtop(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	r, g, b, _ := atop(dr, dg, db, da, sr, sg, sb, sa)
	return r, g, b, sa
}

// S(1-Da) + D(1-Sa)
func xor(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	isa, ida := 255-sa, 255-da
	return mulAdd(sr, ida, dr, isa), mulAdd(sg, ida, dg, isa),
		mulAdd(sb, ida, db, isa), mulAdd(sa, ida, da, isa)
}

// min(S + D, 1)
func plus(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return add(sr, dr), add(sg, dg), add(sb, db), add(sa, da)
}

// S·min(1, (1-Da)/Sa) + D
func saturate(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	room := 255 - da
	if sa > room {
		// Scale the source down so it exactly fills the remaining alpha.
		f := byte(uint32(room) * 255 / uint32(sa))
		sr, sg, sb, sa = mul(sr, f), mul(sg, f), mul(sb, f), mul(sa, f)
	}
	return add(sr, dr), add(sg, dg), add(sb, db), add(sa, da)
}
