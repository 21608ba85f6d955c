// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package path

import "github.com/gogpu/vraster/geom"

const initialChunkOps = 16

// chunk is a fixed-capacity block of operations and their points.
type chunk struct {
	ops    []Op
	points []geom.Point
	next   int // arena index of the following chunk, or -1
}

func newChunk(nops int) chunk {
	return chunk{
		ops:    make([]Op, 0, nops),
		points: make([]geom.Point, 0, 2*nops+1),
		next:   -1,
	}
}

func (c *chunk) fits(nops, npts int) bool {
	return len(c.ops)+nops <= cap(c.ops) && len(c.points)+npts <= cap(c.points)
}

// chunkList is an arena of chunks linked by index. Chunks are appended to
// the arena in list order, so the chunk before index i is i-1.
type chunkList struct {
	arena []chunk
	tail  int
}

func (l *chunkList) reset() {
	if len(l.arena) == 0 {
		return
	}
	first := l.arena[0]
	first.ops = first.ops[:0]
	first.points = first.points[:0]
	first.next = -1
	l.arena = append(l.arena[:0], first)
	l.tail = 0
}

// reserve guarantees that nops operations with npts points can be pushed
// without allocating. New chunks double the capacity of the tail.
func (l *chunkList) reserve(nops, npts int) {
	if len(l.arena) == 0 {
		n := initialChunkOps
		for n < nops || 2*n+1 < npts {
			n *= 2
		}
		l.arena = append(l.arena, newChunk(n))
		l.tail = 0
		return
	}
	t := &l.arena[l.tail]
	if t.fits(nops, npts) {
		return
	}
	n := 2 * cap(t.ops)
	for n < nops || 2*n+1 < npts {
		n *= 2
	}
	l.arena = append(l.arena, newChunk(n))
	idx := len(l.arena) - 1
	l.arena[l.tail].next = idx
	l.tail = idx
}

func (l *chunkList) push(op Op, pts []geom.Point) {
	if len(l.arena) == 0 || !l.arena[l.tail].fits(1, len(pts)) {
		l.reserve(1, len(pts))
	}
	t := &l.arena[l.tail]
	t.ops = append(t.ops, op)
	t.points = append(t.points, pts...)
}

// lastOp returns the most recent operation.
func (l *chunkList) lastOp() (Op, bool) {
	for i := l.tail; i >= 0 && len(l.arena) > 0; i-- {
		if n := len(l.arena[i].ops); n > 0 {
			return l.arena[i].ops[n-1], true
		}
	}
	return 0, false
}

// pointFromEnd returns the k-th point counting back from the last one
// (k == 0 is the last point).
func (l *chunkList) pointFromEnd(k int) geom.Point {
	for i := l.tail; i >= 0 && len(l.arena) > 0; i-- {
		pts := l.arena[i].points
		if k < len(pts) {
			return pts[len(pts)-1-k]
		}
		k -= len(pts)
	}
	return geom.Point{}
}

// pop removes the last n single-point operations.
func (l *chunkList) pop(n int) {
	for i := l.tail; i >= 0 && n > 0; i-- {
		c := &l.arena[i]
		for n > 0 && len(c.ops) > 0 {
			op := c.ops[len(c.ops)-1]
			c.ops = c.ops[:len(c.ops)-1]
			c.points = c.points[:len(c.points)-op.Points()]
			n--
		}
	}
}

// each visits every chunk in list order.
func (l *chunkList) each(fn func(c *chunk) bool) {
	if len(l.arena) == 0 {
		return
	}
	for i := 0; i >= 0; i = l.arena[i].next {
		if !fn(&l.arena[i]) {
			return
		}
	}
}
