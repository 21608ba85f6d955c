// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package recording

import (
	"errors"
	"image"
	"testing"

	"github.com/gogpu/vraster/clip"
	"github.com/gogpu/vraster/geom"
	"github.com/gogpu/vraster/path"
	"github.com/gogpu/vraster/pattern"
	"github.com/gogpu/vraster/pixbuf"
	"github.com/gogpu/vraster/render"
)

// call is one backend invocation seen by fakeBackend.
type call struct {
	kind    CommandType
	path    *path.Path
	src     pattern.Pattern
	clip    *clip.Clip
	ctm     geom.Matrix
	ctmInv  geom.Matrix
	lineCap render.LineCap
}

type fakeBackend struct {
	calls []call
	err   error
}

func (b *fakeBackend) Fill(p *path.Path, _ render.FillRule, _ float64, _ render.Antialias,
	_ pixbuf.Operator, src pattern.Pattern, _ *pixbuf.Image, c *clip.Clip) error {
	b.calls = append(b.calls, call{kind: CmdFill, path: p, src: src, clip: c})
	return b.err
}

func (b *fakeBackend) Stroke(p *path.Path, style *render.StrokeStyle, ctm, ctmInverse geom.Matrix, _ float64,
	_ render.Antialias, _ pixbuf.Operator, src pattern.Pattern, _ *pixbuf.Image, c *clip.Clip) error {
	b.calls = append(b.calls, call{kind: CmdStroke, path: p, src: src, clip: c, ctm: ctm, ctmInv: ctmInverse, lineCap: style.Cap})
	return b.err
}

func (b *fakeBackend) Paint(_ pixbuf.Operator, src pattern.Pattern, _ *pixbuf.Image, c *clip.Clip) error {
	b.calls = append(b.calls, call{kind: CmdPaint, src: src, clip: c})
	return b.err
}

func (b *fakeBackend) Mask(_ pixbuf.Operator, src, _ pattern.Pattern, _ *pixbuf.Image, c *clip.Clip) error {
	b.calls = append(b.calls, call{kind: CmdMask, src: src, clip: c})
	return b.err
}

func rect(t *testing.T, x, y, w, h float64) *path.Path {
	t.Helper()
	p := path.New()
	if err := p.Rectangle(x, y, w, h); err != nil {
		t.Fatalf("Rectangle: %v", err)
	}
	return p
}

func TestCommandTypeString(t *testing.T) {
	tests := []struct {
		c    CommandType
		want string
	}{
		{CmdFill, "Fill"},
		{CmdStroke, "Stroke"},
		{CmdPaint, "Paint"},
		{CmdMask, "Mask"},
		{CommandType(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.c.String(); got != tt.want {
			t.Errorf("CommandType(%d).String() = %q, want %q", tt.c, got, tt.want)
		}
	}
}

func TestResourcePoolCopiesPaths(t *testing.T) {
	pool := NewResourcePool()
	p := rect(t, 0, 0, 10, 10)
	ref := pool.AddPath(p)
	if err := p.Rectangle(20, 20, 5, 5); err != nil {
		t.Fatal(err)
	}
	got := pool.GetPath(ref)
	if got == p {
		t.Fatal("pool stored the caller's path")
	}
	if got.Len() == p.Len() {
		t.Errorf("pooled path changed with the original: %d ops", got.Len())
	}
	if pool.GetPath(PathRef(5)) != nil {
		t.Error("GetPath past the end should be nil")
	}
	if nilRef := pool.AddPath(nil); pool.GetPath(nilRef) != nil {
		t.Error("nil path should stay nil")
	}

	c := pool.Clone()
	pool.Clear()
	if pool.PathCount() != 0 || c.PathCount() != 2 {
		t.Errorf("PathCount() = %d, clone %d; want 0 and 2", pool.PathCount(), c.PathCount())
	}
}

func TestRecordAndReplay(t *testing.T) {
	b := &fakeBackend{}
	rec := New(b, pixbuf.ContentColorAlpha, nil, -1)
	red := pattern.NewRGBA(1, 0, 0, 1)
	style := render.DefaultStrokeStyle()

	if err := rec.Fill(rect(t, 0, 0, 4, 4), render.FillRuleWinding, 0.1, render.AntialiasDefault, pixbuf.OpOver, red, nil); err != nil {
		t.Fatal(err)
	}
	if err := rec.Stroke(rect(t, 1, 1, 2, 2), &style, geom.Identity(), geom.Identity(), 0.1, render.AntialiasDefault, pixbuf.OpOver, red, nil); err != nil {
		t.Fatal(err)
	}
	// Changing the style afterwards does not reach the recording.
	style.Cap = render.LineCapRound
	if err := rec.Paint(pixbuf.OpOver, red, nil); err != nil {
		t.Fatal(err)
	}
	if err := rec.Mask(pixbuf.OpOver, red, red, nil); err != nil {
		t.Fatal(err)
	}
	if rec.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", rec.Len())
	}

	dst, err := pixbuf.NewImage(pixbuf.FormatARGB32, 8, 8)
	if err != nil {
		t.Fatal(err)
	}
	if err := rec.Replay(dst, geom.Identity()); err != nil {
		t.Fatal(err)
	}
	want := []CommandType{CmdFill, CmdStroke, CmdPaint, CmdMask}
	if len(b.calls) != len(want) {
		t.Fatalf("backend saw %d calls, want %d", len(b.calls), len(want))
	}
	for i, c := range b.calls {
		if c.kind != want[i] {
			t.Errorf("call %d = %s, want %s", i, c.kind, want[i])
		}
		if c.clip != nil {
			t.Errorf("call %d: unbounded recording passed clip %v", i, c.clip)
		}
	}
	if b.calls[1].lineCap != render.LineCapButt {
		t.Errorf("stroke cap = %s, want butt", b.calls[1].lineCap)
	}
}

func TestReplayTransforms(t *testing.T) {
	b := &fakeBackend{}
	bounds := image.Rect(0, 0, 10, 10)
	rec := New(b, pixbuf.ContentColorAlpha, &bounds, -1)
	grad := pattern.NewLinear(0, 0, 10, 0)
	grad.AddStop(0, pixbuf.Black)
	grad.AddStop(1, pixbuf.White)
	style := render.DefaultStrokeStyle()

	if err := rec.Fill(rect(t, 1, 1, 2, 2), render.FillRuleWinding, 0.1, render.AntialiasDefault, pixbuf.OpOver, grad, nil); err != nil {
		t.Fatal(err)
	}
	if err := rec.Stroke(rect(t, 1, 1, 2, 2), &style, geom.Identity(), geom.Identity(), 0.1, render.AntialiasDefault, pixbuf.OpOver, grad, nil); err != nil {
		t.Fatal(err)
	}

	dst, err := pixbuf.NewImage(pixbuf.FormatARGB32, 40, 40)
	if err != nil {
		t.Fatal(err)
	}
	m := geom.Translate(5, 7).Multiply(geom.Scale(2, 2))
	if err := rec.Replay(dst, m); err != nil {
		t.Fatal(err)
	}

	fill := b.calls[0]
	ext, _ := fill.path.Extents()
	x1, y1, x2, y2 := ext.ToFloat()
	if x1 != 7 || y1 != 9 || x2 != 11 || y2 != 13 {
		t.Errorf("fill path extents = (%g, %g, %g, %g), want (7, 9, 11, 13)", x1, y1, x2, y2)
	}
	cext, ok := fill.clip.Extents()
	if !ok || cext != image.Rect(5, 7, 25, 27) {
		t.Errorf("clip extents = %v, %v; want %v", cext, ok, image.Rect(5, 7, 25, 27))
	}
	lin, ok := fill.src.(*pattern.Linear)
	if !ok {
		t.Fatalf("source = %T, want *pattern.Linear", fill.src)
	}
	if lin == grad {
		t.Error("replay modified the recorded pattern in place")
	}
	// Device (25, 7) maps back to gradient point (10, 0).
	if x, y := lin.Matrix.TransformPoint(25, 7); x != 10 || y != 0 {
		t.Errorf("pattern maps (25, 7) to (%g, %g), want (10, 0)", x, y)
	}
	if !grad.Matrix.IsIdentity() {
		t.Error("recorded pattern matrix changed")
	}

	stroke := b.calls[1]
	if stroke.ctm != m {
		t.Errorf("stroke ctm = %+v, want %+v", stroke.ctm, m)
	}
	if got := stroke.ctm.Multiply(stroke.ctmInv); !nearIdentity(got) {
		t.Errorf("ctm * ctmInverse = %+v, want identity", got)
	}
}

func nearIdentity(m geom.Matrix) bool {
	id := geom.Identity()
	d := []float64{m.A - id.A, m.B - id.B, m.C - id.C, m.D - id.D, m.E - id.E, m.F - id.F}
	for _, v := range d {
		if v > 1e-9 || v < -1e-9 {
			return false
		}
	}
	return true
}

func TestBoundedRecordingClipsCommands(t *testing.T) {
	b := &fakeBackend{}
	bounds := image.Rect(2, 2, 6, 6)
	rec := New(b, pixbuf.ContentColor, &bounds, -1)
	if err := rec.Paint(pixbuf.OpSource, pattern.NewRGBA(0, 0, 1, 1), clip.FromRectangle(image.Rect(0, 0, 4, 4))); err != nil {
		t.Fatal(err)
	}
	if err := rec.Replay(nil, geom.Identity()); err != nil {
		t.Fatal(err)
	}
	ext, ok := b.calls[0].clip.Extents()
	if !ok || ext != image.Rect(2, 2, 4, 4) {
		t.Errorf("clip extents = %v, want %v", ext, image.Rect(2, 2, 4, 4))
	}
	if r, bounded := rec.Extents(); !bounded || r != bounds {
		t.Errorf("Extents() = %v, %v", r, bounded)
	}
	if rec.ContentType() != pixbuf.ContentColor {
		t.Errorf("ContentType() = %s", rec.ContentType())
	}
}

func TestAppendInvalidatesSnapshots(t *testing.T) {
	b := &fakeBackend{}
	bounds := image.Rect(0, 0, 4, 4)
	rec := New(b, pixbuf.ContentColorAlpha, &bounds, -1)
	if err := rec.Paint(pixbuf.OpOver, pattern.NewRGBA(1, 1, 1, 1), nil); err != nil {
		t.Fatal(err)
	}

	res := &pattern.Resolver{}
	src := pattern.NewSurface(rec)
	r1, err := res.Resolve(src, image.Rect(0, 0, 4, 4))
	if err != nil {
		t.Fatal(err)
	}
	r1.Cleanup()
	if rec.Snapshots().Len() != 1 {
		t.Fatalf("Snapshots().Len() = %d, want 1", rec.Snapshots().Len())
	}
	if _, err := res.Resolve(src, image.Rect(0, 0, 4, 4)); err != nil {
		t.Fatal(err)
	}
	if len(b.calls) != 1 {
		t.Errorf("second resolve replayed again: %d calls", len(b.calls))
	}

	if err := rec.Paint(pixbuf.OpOver, pattern.NewRGBA(0, 0, 0, 1), nil); err != nil {
		t.Fatal(err)
	}
	if rec.Snapshots().Len() != 0 {
		t.Errorf("append kept %d snapshots", rec.Snapshots().Len())
	}
}

func TestReplayErrors(t *testing.T) {
	rec := New(nil, pixbuf.ContentColorAlpha, nil, -1)
	if err := rec.Replay(nil, geom.Identity()); !errors.Is(err, ErrNoBackend) {
		t.Errorf("Replay without backend = %v, want ErrNoBackend", err)
	}

	boom := errors.New("boom")
	b := &fakeBackend{err: boom}
	rec = New(b, pixbuf.ContentColorAlpha, nil, -1)
	if err := rec.Paint(pixbuf.OpOver, pattern.NewRGBA(0, 0, 0, 1), nil); err != nil {
		t.Fatal(err)
	}
	if err := rec.Replay(nil, geom.Identity()); !errors.Is(err, boom) {
		t.Errorf("Replay = %v, want wrapped backend error", err)
	}
	if err := rec.Replay(nil, geom.Scale(0, 1)); !errors.Is(err, render.ErrInvalidGeometry) {
		t.Errorf("singular replay matrix = %v, want ErrInvalidGeometry", err)
	}

	if err := rec.Fill(nil, render.FillRuleWinding, 0, render.AntialiasDefault, pixbuf.OpOver, pattern.NewRGBA(0, 0, 0, 1), nil); !errors.Is(err, render.ErrInvalidGeometry) {
		t.Errorf("Fill(nil) = %v", err)
	}
	bad := render.StrokeStyle{Width: -1}
	if err := rec.Stroke(path.New(), &bad, geom.Identity(), geom.Identity(), 0, render.AntialiasDefault, pixbuf.OpOver, pattern.NewRGBA(0, 0, 0, 1), nil); !errors.Is(err, render.ErrInvalidGeometry) {
		t.Errorf("Stroke with negative width = %v", err)
	}
	rec.Clear()
	if rec.Len() != 0 || rec.Resources().PathCount() != 0 {
		t.Error("Clear left commands behind")
	}
}

func TestRecordedPatternsAreCopies(t *testing.T) {
	b := &fakeBackend{}
	rec := New(b, pixbuf.ContentColorAlpha, nil, -1)
	solid := pattern.NewRGBA(1, 0, 0, 1)
	lin := pattern.NewLinear(0, 0, 8, 0)
	lin.AddStop(0, pixbuf.RGB(1, 0, 0))

	if err := rec.Paint(pixbuf.OpOver, solid, nil); err != nil {
		t.Fatal(err)
	}
	if err := rec.Fill(rect(t, 0, 0, 4, 4), render.FillRuleWinding, 0.1, render.AntialiasDefault, pixbuf.OpOver, lin, nil); err != nil {
		t.Fatal(err)
	}
	solid.Color = pixbuf.White
	lin.Stops[0].Color = pixbuf.White
	lin.AddStop(1, pixbuf.Black)

	if err := rec.Replay(nil, geom.Identity()); err != nil {
		t.Fatal(err)
	}
	if len(b.calls) != 2 {
		t.Fatalf("backend saw %d calls, want 2", len(b.calls))
	}
	if got := b.calls[0].src.(*pattern.Solid).Color; got != pixbuf.RGB(1, 0, 0) {
		t.Errorf("replayed solid = %v, want red", got)
	}
	stops := b.calls[1].src.(*pattern.Linear).Stops
	if len(stops) != 1 || stops[0].Color != pixbuf.RGB(1, 0, 0) {
		t.Errorf("replayed stops = %v, want one red stop", stops)
	}
}

func TestRecordingRejectsItselfAsSource(t *testing.T) {
	b := &fakeBackend{}
	rec := New(b, pixbuf.ContentColorAlpha, nil, -1)
	self := pattern.NewSurface(rec)
	black := pattern.NewRGBA(0, 0, 0, 1)
	style := render.DefaultStrokeStyle()

	errs := map[string]error{
		"fill":   rec.Fill(rect(t, 0, 0, 4, 4), render.FillRuleWinding, 0.1, render.AntialiasDefault, pixbuf.OpOver, self, nil),
		"stroke": rec.Stroke(rect(t, 0, 0, 4, 4), &style, geom.Identity(), geom.Identity(), 0.1, render.AntialiasDefault, pixbuf.OpOver, self, nil),
		"paint":  rec.Paint(pixbuf.OpOver, self, nil),
		"mask":   rec.Mask(pixbuf.OpOver, black, self, nil),
	}
	for name, err := range errs {
		if !errors.Is(err, render.ErrInvalidGeometry) {
			t.Errorf("%s with itself as source = %v, want ErrInvalidGeometry", name, err)
		}
	}
	if rec.Len() != 0 {
		t.Errorf("Len() = %d after rejected commands, want 0", rec.Len())
	}

	// A cycle through another recording is rejected as well.
	other := New(b, pixbuf.ContentColorAlpha, nil, -1)
	if err := other.Paint(pixbuf.OpOver, pattern.NewSurface(rec), nil); err != nil {
		t.Fatal(err)
	}
	if err := rec.Paint(pixbuf.OpOver, pattern.NewSurface(other), nil); !errors.Is(err, render.ErrInvalidGeometry) {
		t.Errorf("Paint through a cycle = %v, want ErrInvalidGeometry", err)
	}
	if err := rec.Paint(pixbuf.OpOver, pattern.NewSurface(New(b, pixbuf.ContentColorAlpha, nil, -1)), nil); err != nil {
		t.Errorf("Paint of an unrelated recording = %v", err)
	}
}
