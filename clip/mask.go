// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package clip

import (
	"image"

	"github.com/gogpu/vraster/geom"
	"github.com/gogpu/vraster/internal/raster"
	"github.com/gogpu/vraster/internal/tess"
	"github.com/gogpu/vraster/pixbuf"
	"github.com/gogpu/vraster/render"
)

// Mask renders the coverage of c over r into a new A8 image whose pixel
// (0, 0) is device pixel r.Min. The nil clip renders fully opaque.
func (c *Clip) Mask(r image.Rectangle) (*pixbuf.Image, error) {
	mask, err := pixbuf.NewImage(pixbuf.FormatA8, r.Dx(), r.Dy())
	if err != nil {
		return nil, err
	}
	if c == nil {
		pixbuf.Fill(pixbuf.OpSource, pixbuf.White, mask, mask.Bounds())
		return mask, nil
	}
	if c.IsAllClipped() || !r.Overlaps(c.extents) {
		return mask, nil
	}

	cov, err := raster.NewCoverage(r, render.AntialiasDefault)
	if err != nil {
		mask.Release()
		return nil, err
	}
	for _, b := range c.boxes {
		cov.AddBox(b)
	}
	if err := cov.Render(mask, r.Min); err != nil {
		mask.Release()
		return nil, err
	}

	if c.path == nil {
		return mask, nil
	}
	layer, err := pixbuf.NewImage(pixbuf.FormatA8, r.Dx(), r.Dy())
	if err != nil {
		mask.Release()
		return nil, err
	}
	defer layer.Release()
	traps := tess.NewTraps()
	for p := c.path; p != nil; p = p.prev {
		if err := p.coverage(traps, cov, r, layer); err != nil {
			mask.Release()
			return nil, err
		}
		pixbuf.Composite(pixbuf.OpDestIn, pixbuf.NewBits(layer), nil, mask, 0, 0, 0, 0, 0, 0, r.Dx(), r.Dy())
	}
	return mask, nil
}

// coverage renders the inside of p over r into layer.
func (p *Path) coverage(traps *tess.Traps, cov *raster.Coverage, r image.Rectangle, layer *pixbuf.Image) error {
	traps.Reset()
	poly := tess.NewPolygon(geom.BoxFromRect(r))
	if err := poly.AddPath(p.Path, p.Tolerance); err != nil {
		return err
	}
	if err := tess.Tessellate(poly, p.FillRule, traps); err != nil {
		return err
	}
	if err := cov.Reset(r, p.Antialias); err != nil {
		return err
	}
	cov.AddTraps(traps)
	return cov.Render(layer, r.Min)
}
