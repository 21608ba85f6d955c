// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package stroke

import (
	"math"
	"slices"
	"sort"

	"github.com/gogpu/vraster/geom"
)

// maxPenVertices bounds the pen size for huge radii at tiny tolerances.
const maxPenVertices = 1 << 14

// keyScale is the magnitude of a pen vertex key slope.
const keyScale = 1 << 16

type penVertex struct {
	point geom.Point // offset from the pen center
	key   geom.Slope // outward normal the vertex is extreme for
}

// pen is a convex polygon approximating a circle of the stroke radius under
// the stroke transform. Vertices are ordered by increasing key angle.
type pen struct {
	vertices []penVertex
}

// penVerticesNeeded returns an even vertex count for which the polygon
// inscribed in the transformed circle deviates from it by at most
// tolerance.
func penVerticesNeeded(tolerance, radius float64, ctm geom.Matrix) int {
	major := ctm.TransformedCircleMajorAxis(radius)
	if tolerance >= major {
		return 4
	}
	n := int(math.Ceil(2 * math.Pi / math.Acos(1-tolerance/major)))
	if n%2 != 0 {
		n++
	}
	return geom.Clamp(n, 4, maxPenVertices)
}

func newPen(radius, tolerance float64, ctm geom.Matrix) *pen {
	n := penVerticesNeeded(tolerance, radius, ctm)
	// A reflecting transform reverses the winding, so walk the circle the
	// other way to keep device angles increasing.
	reflect := ctm.Determinant() < 0
	pos := make([]Vec2, n)
	for i := range pos {
		theta := 2 * math.Pi * float64(i) / float64(n)
		if reflect {
			theta = -theta
		}
		pos[i] = transformVec(ctm, Vec2{X: radius * math.Cos(theta), Y: radius * math.Sin(theta)})
	}

	p := &pen{vertices: make([]penVertex, n)}
	for i := range pos {
		prev, next := pos[(i+n-1)%n], pos[(i+1)%n]
		ein, _ := Vec2{X: pos[i].X - prev.X, Y: pos[i].Y - prev.Y}.Normalize()
		eout, _ := Vec2{X: next.X - pos[i].X, Y: next.Y - pos[i].Y}.Normalize()
		// The outward normal halfway between the adjacent edges.
		k, _ := Vec2{X: ein.Y + eout.Y, Y: -(ein.X + eout.X)}.Normalize()
		p.vertices[i] = penVertex{
			point: fixedOffset(pos[i]),
			key:   geom.Slope{DX: geom.Fixed(math.Round(k.X * keyScale)), DY: geom.Fixed(math.Round(k.Y * keyScale))},
		}
	}
	slices.SortStableFunc(p.vertices, func(a, b penVertex) int {
		return geom.SlopeCompare(a.key, b.key)
	})
	return p
}

// between reports whether k lies strictly inside the sweep from a0 to a1,
// turning toward increasing angles when increasing is set. The sweep is at
// most half a turn.
func between(a0, a1, k geom.Slope, increasing bool) bool {
	c0, c1 := geom.Cross(a0, k), geom.Cross(k, a1)
	if !increasing {
		c0, c1 = -c0, -c1
	}
	if geom.Cross(a0, a1) == 0 {
		return c0 > 0
	}
	return c0 > 0 && c1 > 0
}

// appendArc appends center plus the offsets of the vertices whose normals
// lie strictly between the normals a0 and a1.
func (p *pen) appendArc(dst []geom.Point, center geom.Point, a0, a1 geom.Slope, increasing bool) []geom.Point {
	n := len(p.vertices)
	if n == 0 {
		return dst
	}
	var i int
	if increasing {
		// first vertex after a0
		i = sort.Search(n, func(j int) bool { return geom.SlopeCompare(p.vertices[j].key, a0) > 0 })
		if i == n {
			i = 0
		}
	} else {
		// last vertex before a0
		i = sort.Search(n, func(j int) bool { return geom.SlopeCompare(p.vertices[j].key, a0) >= 0 }) - 1
		if i < 0 {
			i = n - 1
		}
	}
	for range n {
		v := p.vertices[i]
		if !between(a0, a1, v.key, increasing) {
			break
		}
		dst = append(dst, center.Add(v.point))
		if increasing {
			i = (i + 1) % n
		} else {
			i = (i + n - 1) % n
		}
	}
	return dst
}
