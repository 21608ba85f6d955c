// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package pattern

import (
	"image"
	"math"

	"github.com/gogpu/vraster/geom"
	"github.com/gogpu/vraster/pixbuf"
)

// maxMeshSteps bounds the subdivision of one patch side.
const maxMeshSteps = 128

// Patch is a Coons patch. Its boundary is four cubic curves: side i runs
// from corner i at Points[3*i] through Points[3*i+1] and Points[3*i+2] to
// corner i+1 (corner 4 is corner 0). Colors are given at the corners and
// interpolated across the patch.
type Patch struct {
	Points [12][2]float64
	Colors [4]pixbuf.Color
}

// QuadPatch returns the patch with straight sides through four corners.
func QuadPatch(corners [4][2]float64, colors [4]pixbuf.Color) Patch {
	p := Patch{Colors: colors}
	for i := range 4 {
		a, b := corners[i], corners[(i+1)%4]
		p.Points[3*i] = a
		p.Points[3*i+1] = [2]float64{a[0] + (b[0]-a[0])/3, a[1] + (b[1]-a[1])/3}
		p.Points[3*i+2] = [2]float64{a[0] + 2*(b[0]-a[0])/3, a[1] + 2*(b[1]-a[1])/3}
	}
	return p
}

// Mesh paints a list of Coons patches; later patches are drawn over
// earlier ones. Nothing is painted outside the patches.
type Mesh struct {
	Base
	Patches []Patch
}

// NewMesh returns an empty mesh.
func NewMesh() *Mesh { return &Mesh{Base: newBase(pixbuf.ExtendNone)} }

// AddPatch appends p.
func (m *Mesh) AddPatch(p Patch) { m.Patches = append(m.Patches, p) }

func (m *Mesh) Kind() Kind     { return KindMesh }
func (m *Mesh) IsOpaque() bool { return false }

func (m *Mesh) IsClear() bool {
	for _, p := range m.Patches {
		for _, c := range p.Colors {
			if !c.IsClear() {
				return false
			}
		}
	}
	return true
}

func (m *Mesh) deviceExtents() (image.Rectangle, bool) {
	if len(m.Patches) == 0 {
		return image.Rectangle{}, true
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range m.Patches {
		for _, pt := range p.Points {
			minX, minY = math.Min(minX, pt[0]), math.Min(minY, pt[1])
			maxX, maxY = math.Max(maxX, pt[0]), math.Max(maxY, pt[1])
		}
	}
	return deviceBounds(m.Matrix, minX, minY, maxX, maxY), true
}

// rasterize draws the mesh into dst, whose pixel (0, 0) is device pixel
// origin.
func (m *Mesh) rasterize(dst *pixbuf.Image, origin image.Point) error {
	inv, err := m.Matrix.Invert()
	if err != nil {
		return err
	}
	inv = geom.Translate(-float64(origin.X), -float64(origin.Y)).Multiply(inv)
	for i := range m.Patches {
		var dev Patch
		dev.Colors = m.Patches[i].Colors
		for j, pt := range m.Patches[i].Points {
			x, y := inv.TransformPoint(pt[0], pt[1])
			dev.Points[j] = [2]float64{x, y}
		}
		drawPatch(dst, &dev)
	}
	return nil
}

// meshVertex is a point of the subdivision grid with its premultiplied
// color.
type meshVertex struct {
	x, y       float64
	r, g, b, a float64
}

func drawPatch(dst *pixbuf.Image, p *Patch) {
	n := patchSteps(p)
	grid := make([]meshVertex, (n+1)*(n+1))
	cols := [4][4]float64{}
	for i, c := range p.Colors {
		cols[i] = [4]float64{c.R * c.A, c.G * c.A, c.B * c.A, c.A}
	}
	for j := 0; j <= n; j++ {
		v := float64(j) / float64(n)
		for i := 0; i <= n; i++ {
			u := float64(i) / float64(n)
			x, y := p.eval(u, v)
			w := [4]float64{(1 - u) * (1 - v), u * (1 - v), u * v, (1 - u) * v}
			var c [4]float64
			for k := range 4 {
				for ch := range 4 {
					c[ch] += w[k] * cols[k][ch]
				}
			}
			grid[j*(n+1)+i] = meshVertex{x: x, y: y, r: c[0], g: c[1], b: c[2], a: c[3]}
		}
	}
	for j := range n {
		for i := range n {
			v00 := &grid[j*(n+1)+i]
			v10 := &grid[j*(n+1)+i+1]
			v01 := &grid[(j+1)*(n+1)+i]
			v11 := &grid[(j+1)*(n+1)+i+1]
			drawTriangle(dst, v00, v10, v11)
			drawTriangle(dst, v00, v11, v01)
		}
	}
}

// patchSteps picks the grid size from the length of the control polygon
// so that grid cells stay around two pixels wide.
func patchSteps(p *Patch) int {
	var l float64
	for i := range 12 {
		a, b := p.Points[i], p.Points[(i+1)%12]
		l = math.Max(l, math.Hypot(b[0]-a[0], b[1]-a[1]))
	}
	return geom.Clamp(int(math.Ceil(3*l/2)), 1, maxMeshSteps)
}

func cubic(p0, p1, p2, p3 [2]float64, t float64) (float64, float64) {
	mt := 1 - t
	a, b, c, d := mt*mt*mt, 3*mt*mt*t, 3*mt*t*t, t*t*t
	return a*p0[0] + b*p1[0] + c*p2[0] + d*p3[0], a*p0[1] + b*p1[1] + c*p2[1] + d*p3[1]
}

// eval returns the Coons surface point at (u, v). u runs from corner 0 to
// corner 1 and v from corner 0 to corner 3.
func (p *Patch) eval(u, v float64) (float64, float64) {
	pt := p.Points
	top := func(t float64) (float64, float64) { return cubic(pt[0], pt[1], pt[2], pt[3], t) }
	right := func(t float64) (float64, float64) { return cubic(pt[3], pt[4], pt[5], pt[6], t) }
	bottom := func(t float64) (float64, float64) { return cubic(pt[9], pt[8], pt[7], pt[6], t) }
	left := func(t float64) (float64, float64) { return cubic(pt[0], pt[11], pt[10], pt[9], t) }

	tx, ty := top(u)
	bx, by := bottom(u)
	lx, ly := left(v)
	rx, ry := right(v)
	c0, c1, c2, c3 := pt[0], pt[3], pt[6], pt[9]
	w0, w1, w2, w3 := (1-u)*(1-v), u*(1-v), u*v, (1-u)*v
	x := (1-v)*tx + v*bx + (1-u)*lx + u*rx - (w0*c0[0] + w1*c1[0] + w2*c2[0] + w3*c3[0])
	y := (1-v)*ty + v*by + (1-u)*ly + u*ry - (w0*c0[1] + w1*c1[1] + w2*c2[1] + w3*c3[1])
	return x, y
}

// drawTriangle composites the Gouraud-shaded triangle over dst, covering
// pixels whose centers are inside. Shared edges are owned by one side so
// adjacent triangles do not blend twice.
func drawTriangle(dst *pixbuf.Image, a, b, c *meshVertex) {
	area := (b.x-a.x)*(c.y-a.y) - (b.y-a.y)*(c.x-a.x)
	if area == 0 || math.IsNaN(area) {
		return
	}
	if area < 0 {
		b, c = c, b
		area = -area
	}
	minX := max(int(math.Floor(math.Min(a.x, math.Min(b.x, c.x)))), 0)
	minY := max(int(math.Floor(math.Min(a.y, math.Min(b.y, c.y)))), 0)
	maxX := min(int(math.Ceil(math.Max(a.x, math.Max(b.x, c.x)))), dst.Width())
	maxY := min(int(math.Ceil(math.Max(a.y, math.Max(b.y, c.y)))), dst.Height())

	for y := minY; y < maxY; y++ {
		py := float64(y) + 0.5
		for x := minX; x < maxX; x++ {
			px := float64(x) + 0.5
			w0 := edge(b, c, px, py)
			w1 := edge(c, a, px, py)
			w2 := edge(a, b, px, py)
			if !owns(w0, b, c) || !owns(w1, c, a) || !owns(w2, a, b) {
				continue
			}
			w0, w1, w2 = w0/area, w1/area, w2/area
			src := [4]float64{
				w0*a.r + w1*b.r + w2*c.r,
				w0*a.g + w1*b.g + w2*c.g,
				w0*a.b + w1*b.b + w2*c.b,
				w0*a.a + w1*b.a + w2*c.a,
			}
			over(dst, x, y, src)
		}
	}
}

// edge returns twice the signed area of (p, q, point).
func edge(p, q *meshVertex, x, y float64) float64 {
	return (q.x-p.x)*(y-p.y) - (q.y-p.y)*(x-p.x)
}

// owns applies the top-left rule to a point on the edge from p to q.
func owns(w float64, p, q *meshVertex) bool {
	if w != 0 {
		return w > 0
	}
	dy := q.y - p.y
	return dy < 0 || (dy == 0 && q.x < p.x)
}

func over(dst *pixbuf.Image, x, y int, src [4]float64) {
	d := dst.At(x, y)
	inv := 1 - geom.Clamp(src[3], 0, 1)
	var out [4]byte
	for i := range 4 {
		v := src[i]*255 + float64(d[i])*inv
		out[i] = byte(geom.Clamp(math.Round(v), 0, 255))
	}
	dst.Set(x, y, out)
}
