// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/vraster/pixbuf"
	"github.com/gogpu/vraster/render"
)

// Scene is a list of shapes drawn in order onto one image.
type Scene struct {
	Width      int     `toml:"width" yaml:"width"`
	Height     int     `toml:"height" yaml:"height"`
	Background Color   `toml:"background" yaml:"background"`
	Tolerance  float64 `toml:"tolerance" yaml:"tolerance"`
	Shapes     []Shape `toml:"shape" yaml:"shapes"`
}

// Shape is one drawing request. Exactly one of Rect, Circle and Points
// gives the geometry; a shape without geometry paints the whole clip.
type Shape struct {
	Rect   []float64    `toml:"rect" yaml:"rect"`     // x, y, w, h
	Circle []float64    `toml:"circle" yaml:"circle"` // cx, cy, r
	Points [][2]float64 `toml:"points" yaml:"points"`
	Closed bool         `toml:"closed" yaml:"closed"`

	Op        Operator  `toml:"op" yaml:"op"`
	Rule      FillRule  `toml:"rule" yaml:"rule"`
	Antialias Antialias `toml:"antialias" yaml:"antialias"`
	Clip      []float64 `toml:"clip" yaml:"clip"` // x, y, w, h

	Fill   *Paint  `toml:"fill" yaml:"fill"`
	Stroke *Stroke `toml:"stroke" yaml:"stroke"`
}

// Paint is a solid color or a gradient.
type Paint struct {
	Color  *Color      `toml:"color" yaml:"color"`
	Linear []float64   `toml:"linear" yaml:"linear"` // x1, y1, x2, y2
	Radial []float64   `toml:"radial" yaml:"radial"` // cx1, cy1, r1, cx2, cy2, r2
	Stops  []ColorStop `toml:"stops" yaml:"stops"`
}

// ColorStop is one gradient stop.
type ColorStop struct {
	Offset float64 `toml:"offset" yaml:"offset"`
	Color  Color   `toml:"color" yaml:"color"`
}

// Stroke is a stroke style with its paint.
type Stroke struct {
	Paint      `yaml:",inline"`
	Width      float64   `toml:"width" yaml:"width"`
	Cap        string    `toml:"cap" yaml:"cap"`
	Join       string    `toml:"join" yaml:"join"`
	MiterLimit float64   `toml:"miter_limit" yaml:"miter_limit"`
	Dash       []float64 `toml:"dash" yaml:"dash"`
	DashOffset float64   `toml:"dash_offset" yaml:"dash_offset"`
}

// Color is a "#rrggbb" or "#rrggbbaa" color.
type Color pixbuf.Color

// UnmarshalText parses a hex color.
func (c *Color) UnmarshalText(b []byte) error {
	s := strings.TrimPrefix(string(b), "#")
	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("color %q: want #rrggbb or #rrggbbaa", b)
	}
	if len(s) == 6 {
		s += "ff"
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return fmt.Errorf("color %q: %w", b, err)
	}
	ch := func(shift uint) float64 { return float64(v>>shift&0xff) / 255 }
	*c = Color(pixbuf.RGBA(ch(24), ch(16), ch(8), ch(0)))
	return nil
}

// Operator is a compositing operator by name, "over" when unset.
type Operator struct {
	op  pixbuf.Operator
	set bool
}

// UnmarshalText parses an operator name such as "dest-out".
func (o *Operator) UnmarshalText(b []byte) error {
	op, err := pixbuf.ParseOperator(string(b))
	if err != nil {
		return err
	}
	o.op, o.set = op, true
	return nil
}

// Value returns the operator.
func (o Operator) Value() pixbuf.Operator {
	if !o.set {
		return pixbuf.OpOver
	}
	return o.op
}

// FillRule is "winding" or "even-odd".
type FillRule struct{ render.FillRule }

// UnmarshalText parses a fill rule name.
func (r *FillRule) UnmarshalText(b []byte) error {
	return parseName(string(b), &r.FillRule, render.FillRuleWinding, render.FillRuleEvenOdd)
}

// Antialias is an antialiasing mode name.
type Antialias struct{ render.Antialias }

// UnmarshalText parses an antialiasing mode name.
func (a *Antialias) UnmarshalText(b []byte) error {
	return parseName(string(b), &a.Antialias,
		render.AntialiasDefault, render.AntialiasNone, render.AntialiasGray,
		render.AntialiasFast, render.AntialiasGood, render.AntialiasBest)
}

func parseName[T fmt.Stringer](s string, dst *T, values ...T) error {
	for _, v := range values {
		if v.String() == s {
			*dst = v
			return nil
		}
	}
	return fmt.Errorf("unknown name %q", s)
}

// style returns the render stroke style of s.
func (s *Stroke) style() (render.StrokeStyle, error) {
	st := render.DefaultStrokeStyle()
	if s.Width != 0 {
		st.Width = s.Width
	}
	if s.MiterLimit != 0 {
		st.MiterLimit = s.MiterLimit
	}
	if s.Cap != "" {
		if err := parseName(s.Cap, &st.Cap, render.LineCapButt, render.LineCapRound, render.LineCapSquare); err != nil {
			return st, fmt.Errorf("cap: %w", err)
		}
	}
	if s.Join != "" {
		if err := parseName(s.Join, &st.Join, render.LineJoinMiter, render.LineJoinRound, render.LineJoinBevel); err != nil {
			return st, fmt.Errorf("join: %w", err)
		}
	}
	if len(s.Dash) > 0 {
		st.Dash = render.NewDash(s.Dash...).WithOffset(s.DashOffset)
	}
	return st, st.Validate()
}

// LoadScene reads a scene from a .toml, .yaml or .yml file.
func LoadScene(name string) (*Scene, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	return DecodeScene(data, filepath.Ext(name))
}

// DecodeScene decodes a scene in the format named by the file extension
// ext.
func DecodeScene(data []byte, ext string) (*Scene, error) {
	s := &Scene{Width: 400, Height: 300, Background: Color(pixbuf.White)}
	switch strings.ToLower(ext) {
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(s); err != nil {
			return nil, fmt.Errorf("toml: %w", err)
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(s); err != nil {
			return nil, fmt.Errorf("yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown scene format %q", ext)
	}
	if s.Width <= 0 || s.Height <= 0 {
		return nil, fmt.Errorf("scene size %dx%d", s.Width, s.Height)
	}
	return s, nil
}
