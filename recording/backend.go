// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package recording

import (
	"github.com/gogpu/vraster/clip"
	"github.com/gogpu/vraster/geom"
	"github.com/gogpu/vraster/path"
	"github.com/gogpu/vraster/pattern"
	"github.com/gogpu/vraster/pixbuf"
	"github.com/gogpu/vraster/render"
)

// Backend executes drawing operations against a destination image. Its
// methods have the signatures of the vraster.Engine operations, so an
// Engine is a Backend.
type Backend interface {
	Fill(p *path.Path, rule render.FillRule, tolerance float64, aa render.Antialias,
		op pixbuf.Operator, src pattern.Pattern, dst *pixbuf.Image, c *clip.Clip) error
	Stroke(p *path.Path, style *render.StrokeStyle, ctm, ctmInverse geom.Matrix, tolerance float64,
		aa render.Antialias, op pixbuf.Operator, src pattern.Pattern, dst *pixbuf.Image, c *clip.Clip) error
	Paint(op pixbuf.Operator, src pattern.Pattern, dst *pixbuf.Image, c *clip.Clip) error
	Mask(op pixbuf.Operator, src, mask pattern.Pattern, dst *pixbuf.Image, c *clip.Clip) error
}
