// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package tess

import (
	"cmp"
	"container/heap"
	"slices"

	"github.com/gogpu/vraster/geom"
	"github.com/gogpu/vraster/render"
)

// sweepEdge is an edge while it takes part in the sweep. A trapezoid whose
// left side is this edge stays open in deferredRight until the region to
// its right changes.
type sweepEdge struct {
	Edge
	dx, dy int64
	idx    int

	prev, next *sweepEdge
	active     bool

	deferredRight *sweepEdge
	deferredTop   geom.Fixed
}

type eventType uint8

// Events at the same y are handled stops first, then crossings, then
// starts.
const (
	evStop eventType = iota
	evIntersection
	evStart
)

type event struct {
	y    geom.Fixed
	typ  eventType
	seq  uint64
	a, b *sweepEdge
}

func (e event) less(o event) bool {
	return cmp.Or(cmp.Compare(e.y, o.y), cmp.Compare(e.typ, o.typ), cmp.Compare(e.seq, o.seq)) < 0
}

type eventQueue []event

func (q eventQueue) Len() int           { return len(q) }
func (q eventQueue) Less(i, j int) bool { return q[i].less(q[j]) }
func (q eventQueue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }
func (q *eventQueue) Push(x any)        { *q = append(*q, x.(event)) }
func (q *eventQueue) Pop() any {
	old := *q
	n := len(old) - 1
	e := old[n]
	*q = old[:n]
	return e
}

type sweeper struct {
	rule render.FillRule
	out  *Traps

	starts []*sweepEdge
	queue  eventQueue
	seq    uint64

	head    *sweepEdge
	cursor  *sweepEdge
	stopped []*sweepEdge
	y       geom.Fixed
}

// Tessellate converts the area of p selected by rule into non-overlapping
// trapezoids appended to out. Edges are processed in a single downward
// sweep; crossings are found exactly on the 26.6 grid.
func Tessellate(p *Polygon, rule render.FillRule, out *Traps) error {
	if len(p.Edges) == 0 {
		return nil
	}
	edges := make([]sweepEdge, len(p.Edges))
	s := &sweeper{rule: rule, out: out, starts: make([]*sweepEdge, len(edges))}
	for i := range p.Edges {
		e := &edges[i]
		e.Edge = p.Edges[i]
		e.dx = int64(e.Line.P2.X - e.Line.P1.X)
		e.dy = int64(e.Line.P2.Y - e.Line.P1.Y)
		e.idx = i
		s.starts[i] = e
	}
	slices.SortFunc(s.starts, func(a, b *sweepEdge) int {
		return cmp.Or(
			cmp.Compare(a.Top, b.Top),
			cmp.Compare(a.Line.XForY(a.Top), b.Line.XForY(b.Top)),
			cmp.Compare(a.idx, b.idx),
		)
	})
	s.run()
	return nil
}

func (s *sweeper) run() {
	s.y = s.starts[0].Top
	for {
		ev, ok := s.pop()
		if !ok {
			break
		}
		if ev.y != s.y {
			s.flushStopped()
			s.emit(s.y)
			s.y = ev.y
		}
		switch ev.typ {
		case evStart:
			s.start(ev.a)
		case evStop:
			s.stop(ev.a)
		case evIntersection:
			s.cross(ev.a, ev.b)
		}
	}
	s.flushStopped()
}

// pop merges the presorted start events with the queue.
func (s *sweeper) pop() (event, bool) {
	var st event
	haveStart := len(s.starts) > 0
	if haveStart {
		st = event{y: s.starts[0].Top, typ: evStart, a: s.starts[0]}
	}
	if len(s.queue) > 0 && (!haveStart || s.queue[0].less(st)) {
		return heap.Pop(&s.queue).(event), true
	}
	if !haveStart {
		return event{}, false
	}
	s.starts = s.starts[1:]
	return st, true
}

func (s *sweeper) push(y geom.Fixed, typ eventType, a, b *sweepEdge) {
	s.seq++
	heap.Push(&s.queue, event{y: y, typ: typ, seq: s.seq, a: a, b: b})
}

func (s *sweeper) start(e *sweepEdge) {
	s.insert(e)
	e.active = true
	for i, st := range s.stopped {
		if e.Top <= st.Bottom && geom.Colinear(e.Line, st.Line) {
			e.deferredRight, e.deferredTop = st.deferredRight, st.deferredTop
			st.deferredRight = nil
			s.stopped = slices.Delete(s.stopped, i, i+1)
			break
		}
	}
	s.push(e.Bottom, evStop, e, nil)
	s.checkIntersection(e.prev, e)
	s.checkIntersection(e, e.next)
}

func (s *sweeper) stop(e *sweepEdge) {
	left, right := e.prev, e.next
	s.remove(e)
	e.active = false
	if e.deferredRight != nil {
		s.stopped = append(s.stopped, e)
	}
	s.checkIntersection(left, right)
}

func (s *sweeper) cross(a, b *sweepEdge) {
	if !a.active || !b.active || a.next != b {
		return
	}
	// swap a and b
	left, right := a.prev, b.next
	if left != nil {
		left.next = b
	} else {
		s.head = b
	}
	if right != nil {
		right.prev = a
	}
	b.prev, b.next = left, a
	a.prev, a.next = b, right
	s.cursor = b

	s.checkIntersection(left, b)
	s.checkIntersection(a, right)
}

// numAt returns x(y)*dy for e, exact.
func numAt(e *sweepEdge, y geom.Fixed) int64 {
	return int64(e.Line.P1.X)*e.dy + int64(y-e.Line.P1.Y)*e.dx
}

// cmpX compares the x positions of a and b at y.
func cmpX(a, b *sweepEdge, y geom.Fixed) int {
	return geom.Mul64(numAt(a, y), b.dy).Cmp(geom.Mul64(numAt(b, y), a.dy))
}

// cmpSlope orders a before b when a leans further left going down.
func cmpSlope(a, b *sweepEdge) int {
	return cmp.Compare(a.dx*b.dy, b.dx*a.dy)
}

func cmpEdges(a, b *sweepEdge, y geom.Fixed) int {
	if c := cmpX(a, b, y); c != 0 {
		return c
	}
	if c := cmpSlope(a, b); c != 0 {
		return c
	}
	return cmp.Compare(a.idx, b.idx)
}

func (s *sweeper) insert(e *sweepEdge) {
	pos := s.cursor
	if pos == nil {
		pos = s.head
	}
	s.cursor = e
	if pos == nil {
		e.prev, e.next = nil, nil
		s.head = e
		return
	}
	if cmpEdges(pos, e, s.y) < 0 {
		for pos.next != nil && cmpEdges(pos.next, e, s.y) < 0 {
			pos = pos.next
		}
		e.prev, e.next = pos, pos.next
		if pos.next != nil {
			pos.next.prev = e
		}
		pos.next = e
		return
	}
	for pos.prev != nil && cmpEdges(pos.prev, e, s.y) > 0 {
		pos = pos.prev
	}
	e.prev, e.next = pos.prev, pos
	if pos.prev != nil {
		pos.prev.next = e
	} else {
		s.head = e
	}
	pos.prev = e
}

func (s *sweeper) remove(e *sweepEdge) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		s.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	}
	s.cursor = e.prev
	if s.cursor == nil {
		s.cursor = e.next
	}
	e.prev, e.next = nil, nil
}

// checkIntersection queues the first y at or below the sweep line where
// the adjacent edges a and b swap order.
func (s *sweeper) checkIntersection(a, b *sweepEdge) {
	if a == nil || b == nil || cmpSlope(a, b) <= 0 {
		return
	}
	end := min(a.Bottom, b.Bottom)
	if cmpX(a, b, end) <= 0 {
		return
	}
	// x_a - x_b grows with y, so the first y with cmpX >= 0 is found by
	// bisection on the grid.
	lo, hi := s.y, end
	for lo < hi {
		mid := lo + (hi-lo)/2
		if cmpX(a, b, mid) >= 0 {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	s.push(lo, evIntersection, a, b)
}

func (s *sweeper) inside(w int) bool {
	if s.rule == render.FillRuleEvenOdd {
		return w&1 != 0
	}
	return w != 0
}

func (s *sweeper) weight(e *sweepEdge) int {
	if s.rule == render.FillRuleEvenOdd {
		return 1
	}
	return e.Dir
}

// emit opens or extends trapezoids for the spans of the active list that
// are inside the fill.
func (s *sweeper) emit(top geom.Fixed) {
	pos := s.head
	for pos != nil {
		left := pos
		w := s.weight(left)
		pos = pos.next
		for pos != nil {
			if pos.deferredRight != nil {
				s.endTrap(pos, top)
			}
			w += s.weight(pos)
			if !s.inside(w) && (pos.next == nil || !geom.Colinear(pos.Line, pos.next.Line)) {
				break
			}
			pos = pos.next
		}
		if pos == nil {
			if left.deferredRight != nil {
				s.endTrap(left, top)
			}
			return
		}
		s.startOrContinue(left, top, pos)
		pos = pos.next
	}
}

func (s *sweeper) startOrContinue(left *sweepEdge, top geom.Fixed, right *sweepEdge) {
	if left.deferredRight == right {
		return
	}
	if left.deferredRight != nil {
		if geom.Colinear(left.deferredRight.Line, right.Line) {
			left.deferredRight = right
			return
		}
		s.endTrap(left, top)
	}
	if !geom.Colinear(left.Line, right.Line) {
		left.deferredTop = top
		left.deferredRight = right
	}
}

func (s *sweeper) endTrap(left *sweepEdge, bottom geom.Fixed) {
	if left.deferredTop < bottom {
		s.out.Add(left.deferredTop, bottom, left.Line, left.deferredRight.Line)
	}
	left.deferredRight = nil
}

func (s *sweeper) flushStopped() {
	for _, e := range s.stopped {
		if e.deferredRight != nil {
			s.endTrap(e, e.Bottom)
		}
	}
	s.stopped = s.stopped[:0]
}
