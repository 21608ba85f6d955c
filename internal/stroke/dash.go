// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package stroke

import "github.com/gogpu/vraster/render"

// dashEpsilon is the remaining length below which a dash is finished.
const dashEpsilon = 1.0 / 256

// dasher tracks the position in a dash pattern in user-space units. One
// dasher lives for a whole stroke call; it is not reset between segments
// or subpaths.
type dasher struct {
	array    []float64
	index    int
	on       bool
	startsOn bool // state at the start of the current subpath
	remain   float64
}

func newDasher(d *render.Dash) dasher {
	ds := dasher{array: d.Effective(), on: true}
	offset := d.NormalizedOffset()
	for offset > 0 && offset >= ds.array[ds.index] {
		offset -= ds.array[ds.index]
		ds.on = !ds.on
		ds.index = (ds.index + 1) % len(ds.array)
	}
	ds.remain = ds.array[ds.index] - offset
	ds.startsOn = ds.on
	return ds
}

// step advances the pattern by l, which must not exceed remain.
func (d *dasher) step(l float64) {
	d.remain -= l
	if d.remain < dashEpsilon {
		d.index = (d.index + 1) % len(d.array)
		d.on = !d.on
		d.remain = d.array[d.index]
	}
}

// usable reports whether d makes progress along a path.
func usable(d *render.Dash) bool {
	return d.IsDashed() && d.PatternLength() > dashEpsilon*float64(len(d.Effective()))
}
