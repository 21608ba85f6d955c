// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package path

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"honnef.co/go/curve"

	"github.com/gogpu/vraster/geom"
)

func pt(x, y float64) geom.Point { return geom.PtFloat(x, y) }

type recorded struct {
	op  Op
	pts []geom.Point
}

func record(t *testing.T, p *Path) []recorded {
	t.Helper()
	var out []recorded
	err := p.Interpret(Funcs{
		Move: func(a geom.Point) error {
			out = append(out, recorded{OpMoveTo, []geom.Point{a}})
			return nil
		},
		Line: func(a geom.Point) error {
			out = append(out, recorded{OpLineTo, []geom.Point{a}})
			return nil
		},
		Curve: func(a, b, c geom.Point) error {
			out = append(out, recorded{OpCurveTo, []geom.Point{a, b, c}})
			return nil
		},
		Close: func() error {
			out = append(out, recorded{OpClosePath, nil})
			return nil
		},
	})
	require.NoError(t, err)
	return out
}

func ops(rs []recorded) []Op {
	out := make([]Op, len(rs))
	for i, r := range rs {
		out[i] = r.op
	}
	return out
}

func TestZeroValuePath(t *testing.T) {
	var p Path
	assert.True(t, p.IsEmpty())
	assert.True(t, p.FillIsEmpty())
	assert.True(t, p.StrokeIsRectilinear())
	_, ok := p.CurrentPoint()
	assert.False(t, ok)

	require.NoError(t, p.LineTo(pt(1, 1)))
	cp, ok := p.CurrentPoint()
	assert.True(t, ok)
	assert.Equal(t, pt(1, 1), cp)
	// LineTo without a current point only moves.
	assert.Equal(t, 0, p.Len())
}

func TestLazyMoveTo(t *testing.T) {
	p := New()
	require.NoError(t, p.MoveTo(pt(0, 0)))
	require.NoError(t, p.MoveTo(pt(5, 5)))
	require.NoError(t, p.LineTo(pt(10, 5)))

	got := record(t, p)
	require.Equal(t, []Op{OpMoveTo, OpLineTo}, ops(got))
	assert.Equal(t, pt(5, 5), got[0].pts[0])
}

func TestTrailingMoveToReported(t *testing.T) {
	p := New()
	require.NoError(t, p.MoveTo(pt(0, 0)))
	require.NoError(t, p.LineTo(pt(10, 0)))
	require.NoError(t, p.MoveTo(pt(20, 20)))

	got := record(t, p)
	require.Equal(t, []Op{OpMoveTo, OpLineTo, OpMoveTo}, ops(got))
	assert.Equal(t, pt(20, 20), got[2].pts[0])
	assert.Equal(t, 2, p.Len())
}

func TestClosedSubpathHasNoTrailingMove(t *testing.T) {
	p := New()
	require.NoError(t, p.MoveTo(pt(0, 0)))
	require.NoError(t, p.LineTo(pt(8, 0)))
	require.NoError(t, p.LineTo(pt(8, 8)))
	require.NoError(t, p.ClosePath())
	assert.Equal(t, []Op{OpMoveTo, OpLineTo, OpLineTo, OpClosePath}, ops(record(t, p)))

	require.NoError(t, p.MoveTo(pt(20, 20)))
	got := record(t, p)
	require.Equal(t, []Op{OpMoveTo, OpLineTo, OpLineTo, OpClosePath, OpMoveTo}, ops(got))
	assert.Equal(t, pt(20, 20), got[4].pts[0])
}

func TestDegenerateLineTo(t *testing.T) {
	t.Run("kept after move", func(t *testing.T) {
		p := New()
		require.NoError(t, p.MoveTo(pt(3, 3)))
		require.NoError(t, p.LineTo(pt(3, 3)))
		assert.Equal(t, []Op{OpMoveTo, OpLineTo}, ops(record(t, p)))
	})
	t.Run("dropped after line", func(t *testing.T) {
		p := New()
		require.NoError(t, p.MoveTo(pt(0, 0)))
		require.NoError(t, p.LineTo(pt(4, 0)))
		require.NoError(t, p.LineTo(pt(4, 0)))
		assert.Equal(t, []Op{OpMoveTo, OpLineTo}, ops(record(t, p)))
	})
}

func TestCollinearMerge(t *testing.T) {
	p := New()
	require.NoError(t, p.MoveTo(pt(0, 0)))
	require.NoError(t, p.LineTo(pt(2, 0)))
	require.NoError(t, p.LineTo(pt(5, 0)))
	require.NoError(t, p.LineTo(pt(9, 0)))

	got := record(t, p)
	require.Equal(t, []Op{OpMoveTo, OpLineTo}, ops(got))
	assert.Equal(t, pt(9, 0), got[1].pts[0])

	// Reversing direction is not a merge.
	require.NoError(t, p.LineTo(pt(1, 0)))
	assert.Equal(t, []Op{OpMoveTo, OpLineTo, OpLineTo}, ops(record(t, p)))
}

func TestClosePathDropsClosingLine(t *testing.T) {
	p := New()
	require.NoError(t, p.Rectangle(1, 2, 3, 4))
	got := record(t, p)
	assert.Equal(t, []Op{OpMoveTo, OpLineTo, OpLineTo, OpLineTo, OpClosePath}, ops(got))

	cp, ok := p.CurrentPoint()
	require.True(t, ok)
	assert.Equal(t, pt(1, 2), cp)
}

func TestClosePathWithoutCurrentPoint(t *testing.T) {
	p := New()
	require.NoError(t, p.ClosePath())
	assert.True(t, p.IsEmpty())
}

func TestLineAfterCloseStartsAtMovePoint(t *testing.T) {
	p := New()
	require.NoError(t, p.MoveTo(pt(0, 0)))
	require.NoError(t, p.LineTo(pt(10, 0)))
	require.NoError(t, p.LineTo(pt(10, 10)))
	require.NoError(t, p.ClosePath())
	require.NoError(t, p.LineTo(pt(-5, 0)))

	got := record(t, p)
	require.Equal(t, []Op{OpMoveTo, OpLineTo, OpLineTo, OpClosePath, OpMoveTo, OpLineTo}, ops(got))
	assert.Equal(t, pt(0, 0), got[4].pts[0])
}

func TestFlags(t *testing.T) {
	tests := []struct {
		name        string
		build       func(p *Path)
		strokeRect  bool
		fillRect    bool
		maybeRegion bool
		fillEmpty   bool
	}{
		{
			name:        "integer rectangle",
			build:       func(p *Path) { _ = p.Rectangle(0, 0, 10, 10) },
			strokeRect:  true,
			fillRect:    true,
			maybeRegion: true,
		},
		{
			name:       "fractional rectangle",
			build:      func(p *Path) { _ = p.Rectangle(0.5, 0, 10, 10) },
			strokeRect: true,
			fillRect:   true,
		},
		{
			name: "open L shape",
			build: func(p *Path) {
				_ = p.MoveTo(pt(0, 0))
				_ = p.LineTo(pt(10, 0))
				_ = p.LineTo(pt(10, 10))
			},
			strokeRect: true,
		},
		{
			name: "triangle",
			build: func(p *Path) {
				_ = p.MoveTo(pt(0, 0))
				_ = p.LineTo(pt(10, 0))
				_ = p.LineTo(pt(5, 10))
				_ = p.ClosePath()
			},
		},
		{
			name: "single line",
			build: func(p *Path) {
				_ = p.MoveTo(pt(0, 0))
				_ = p.LineTo(pt(7, 3))
			},
			fillEmpty: true,
		},
		{
			name: "curve",
			build: func(p *Path) {
				_ = p.MoveTo(pt(0, 0))
				_ = p.CurveTo(pt(1, 5), pt(4, 5), pt(5, 0))
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New()
			tt.build(p)
			assert.Equal(t, tt.strokeRect, p.StrokeIsRectilinear(), "stroke rectilinear")
			assert.Equal(t, tt.fillRect, p.FillIsRectilinear(), "fill rectilinear")
			assert.Equal(t, tt.maybeRegion, p.FillMaybeRegion(), "maybe region")
			assert.Equal(t, tt.fillEmpty, p.FillIsEmpty(), "fill empty")
		})
	}
}

func TestExtents(t *testing.T) {
	p := New()
	_, ok := p.Extents()
	assert.False(t, ok)

	require.NoError(t, p.MoveTo(pt(2, 3)))
	require.NoError(t, p.LineTo(pt(-1, 8)))
	b, ok := p.Extents()
	require.True(t, ok)
	assert.Equal(t, geom.BoxFromPoints(pt(-1, 3), pt(2, 8)), b)
}

func TestCurveExtentsAreTight(t *testing.T) {
	p := New()
	require.NoError(t, p.MoveTo(pt(0, 0)))
	require.NoError(t, p.CurveTo(pt(0, 10), pt(10, 10), pt(10, 0)))
	b, ok := p.Extents()
	require.True(t, ok)
	// The curve peaks at y = 7.5, well inside its control polygon.
	_, y1, _, y2 := b.ToFloat()
	assert.InDelta(t, 0, y1, 1e-9)
	assert.InDelta(t, 7.5, y2, 1.0/64)
}

func TestReset(t *testing.T) {
	p := New()
	require.NoError(t, p.Rectangle(0, 0, 4, 4))
	p.Reset()
	assert.True(t, p.IsEmpty())
	assert.Empty(t, record(t, p))
	require.NoError(t, p.Rectangle(1, 1, 2, 2))
	assert.Len(t, record(t, p), 5)
}

func TestManyChunks(t *testing.T) {
	p := New()
	require.NoError(t, p.MoveTo(pt(0, 0)))
	const n = 1000
	for i := 1; i <= n; i++ {
		// Alternate directions so nothing merges.
		require.NoError(t, p.LineTo(pt(float64(i), float64(i%2))))
	}
	got := record(t, p)
	require.Len(t, got, n+1)
	for i := 1; i <= n; i++ {
		assert.Equal(t, pt(float64(i), float64(i%2)), got[i].pts[0])
	}
}

func TestInterpretStopsOnError(t *testing.T) {
	p := New()
	require.NoError(t, p.Rectangle(0, 0, 4, 4))
	stop := errors.New("stop")
	calls := 0
	err := p.Interpret(Funcs{Line: func(geom.Point) error {
		calls++
		return stop
	}})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, calls)
}

func TestBoxes(t *testing.T) {
	p := New()
	require.NoError(t, p.Rectangle(0, 0, 10, 10))
	// Counter-clockwise rectangle.
	require.NoError(t, p.MoveTo(pt(20, 0)))
	require.NoError(t, p.LineTo(pt(20, 5)))
	require.NoError(t, p.LineTo(pt(25, 5)))
	require.NoError(t, p.LineTo(pt(25, 0)))
	require.NoError(t, p.ClosePath())

	boxes, ok := p.Boxes()
	require.True(t, ok)
	require.Len(t, boxes, 2)
	assert.Equal(t, geom.BoxFromPoints(pt(0, 0), pt(10, 10)), boxes[0].Box)
	assert.Equal(t, 1, boxes[0].Dir)
	assert.Equal(t, geom.BoxFromPoints(pt(20, 0), pt(25, 5)), boxes[1].Box)
	assert.Equal(t, -1, boxes[1].Dir)

	_, ok = p.IsBox()
	assert.False(t, ok)
}

func TestBoxesRejectsLShape(t *testing.T) {
	p := New()
	require.NoError(t, p.MoveTo(pt(0, 0)))
	for _, q := range []geom.Point{pt(10, 0), pt(10, 5), pt(5, 5), pt(5, 10), pt(0, 10)} {
		require.NoError(t, p.LineTo(q))
	}
	require.NoError(t, p.ClosePath())
	assert.True(t, p.FillIsRectilinear())
	_, ok := p.Boxes()
	assert.False(t, ok)
}

func TestTransformAndTranslate(t *testing.T) {
	p := New()
	require.NoError(t, p.Rectangle(0, 0, 2, 2))

	q := p.Translate(geom.FromInt(3), geom.FromInt(4))
	b, ok := q.IsBox()
	require.True(t, ok)
	assert.Equal(t, geom.BoxFromPoints(pt(3, 4), pt(5, 6)), b)
	assert.Equal(t, record(t, q), record(t, p.Transform(geom.Translate(3, 4))))

	s := p.Transform(geom.Scale(2, 3))
	b, ok = s.IsBox()
	require.True(t, ok)
	assert.Equal(t, geom.BoxFromPoints(pt(0, 0), pt(4, 6)), b)

	r := p.Transform(geom.Rotate(math.Pi / 4))
	assert.False(t, r.FillIsRectilinear())

	c := p.Copy()
	assert.Equal(t, record(t, p), record(t, c))
}

func TestInterpretFlatWithoutCurves(t *testing.T) {
	p := New()
	require.NoError(t, p.Rectangle(0, 0, 3, 3))
	var lines int
	err := p.InterpretFlat(Funcs{Line: func(geom.Point) error { lines++; return nil }}, 0.1)
	require.NoError(t, err)
	assert.Equal(t, 3, lines)
}

func TestFlattenWithinTolerance(t *testing.T) {
	shapes := []struct {
		name           string
		p0, p1, p2, p3 [2]float64
	}{
		{"arch", [2]float64{0, 0}, [2]float64{0, 100}, [2]float64{100, 100}, [2]float64{100, 0}},
		{"s-curve", [2]float64{0, 0}, [2]float64{100, 0}, [2]float64{0, 100}, [2]float64{100, 100}},
		{"loop", [2]float64{0, 0}, [2]float64{120, 80}, [2]float64{-20, 80}, [2]float64{100, 0}},
		{"cusp", [2]float64{0, 0}, [2]float64{100, 100}, [2]float64{0, 100}, [2]float64{100, 0}},
	}
	for _, tol := range []float64{1, 0.25, 0.1} {
		for _, sh := range shapes {
			t.Run(sh.name, func(t *testing.T) {
				s := NewSpline(pt(sh.p0[0], sh.p0[1]), pt(sh.p1[0], sh.p1[1]),
					pt(sh.p2[0], sh.p2[1]), pt(sh.p3[0], sh.p3[1]))
				ref := curve.CubicBez{
					P0: curve.Point{X: sh.p0[0], Y: sh.p0[1]},
					P1: curve.Point{X: sh.p1[0], Y: sh.p1[1]},
					P2: curve.Point{X: sh.p2[0], Y: sh.p2[1]},
					P3: curve.Point{X: sh.p3[0], Y: sh.p3[1]},
				}
				prev := s.P0
				var last geom.Point
				err := s.Decompose(tol, func(q geom.Point) error {
					// Sample each emitted chord and measure its distance
					// from the true curve.
					ax, ay := geom.PointToFloat(prev)
					bx, by := geom.PointToFloat(q)
					for i := 0; i <= 8; i++ {
						f := float64(i) / 8
						m := curve.Point{X: ax + (bx-ax)*f, Y: ay + (by-ay)*f}
						d2, _ := ref.Nearest(m, 1e-9)
						assert.LessOrEqual(t, math.Sqrt(d2), tol+1e-6)
					}
					prev, last = q, q
					return nil
				})
				require.NoError(t, err)
				assert.Equal(t, s.P3, last)
			})
		}
	}
}

func TestInflectionParams(t *testing.T) {
	s := NewSpline(pt(0, 0), pt(100, 0), pt(0, 100), pt(100, 100))
	ts := s.InflectionParams()
	require.Len(t, ts, 1)
	assert.InDelta(t, 0.5, ts[0], 1e-9)

	arch := NewSpline(pt(0, 0), pt(0, 100), pt(100, 100), pt(100, 0))
	assert.Empty(t, arch.InflectionParams())
}

func TestCircleFlattening(t *testing.T) {
	p := New()
	require.NoError(t, p.Circle(50, 50, 40))
	assert.True(t, p.HasCurveTo())
	var maxErr float64
	err := p.InterpretFlat(Funcs{Line: func(q geom.Point) error {
		x, y := geom.PointToFloat(q)
		maxErr = math.Max(maxErr, math.Abs(math.Hypot(x-50, y-50)-40))
		return nil
	}}, 0.1)
	require.NoError(t, err)
	assert.Less(t, maxErr, 0.1)
}
