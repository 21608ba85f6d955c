// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package recording

import (
	"github.com/gogpu/vraster/clip"
	"github.com/gogpu/vraster/geom"
	"github.com/gogpu/vraster/pattern"
	"github.com/gogpu/vraster/pixbuf"
	"github.com/gogpu/vraster/render"
)

// CommandType identifies the type of a command.
type CommandType uint8

const (
	CmdFill CommandType = iota
	CmdStroke
	CmdPaint
	CmdMask
)

var commandTypeNames = [...]string{
	CmdFill:   "Fill",
	CmdStroke: "Stroke",
	CmdPaint:  "Paint",
	CmdMask:   "Mask",
}

// String returns the string representation of a CommandType.
func (c CommandType) String() string {
	if int(c) < len(commandTypeNames) {
		return commandTypeNames[c]
	}
	return "Unknown"
}

// Command is implemented by all command types.
type Command interface {
	Type() CommandType
}

// PathRef is a reference to a path in the resource pool.
type PathRef uint32

// InvalidRef is the sentinel value for an invalid reference.
const InvalidRef = ^uint32(0)

// IsValid reports whether the reference points to a path.
func (r PathRef) IsValid() bool {
	return uint32(r) != InvalidRef
}

// FillCommand fills a path.
type FillCommand struct {
	Op        pixbuf.Operator
	Source    pattern.Pattern
	Path      PathRef
	Rule      render.FillRule
	Tolerance float64
	Antialias render.Antialias
	Clip      *clip.Clip
}

// Type implements Command.
func (FillCommand) Type() CommandType { return CmdFill }

// StrokeCommand strokes a path. CTM maps user space, where the style is
// measured, to device space.
type StrokeCommand struct {
	Op         pixbuf.Operator
	Source     pattern.Pattern
	Path       PathRef
	Style      render.StrokeStyle
	CTM        geom.Matrix
	CTMInverse geom.Matrix
	Tolerance  float64
	Antialias  render.Antialias
	Clip       *clip.Clip
}

// Type implements Command.
func (StrokeCommand) Type() CommandType { return CmdStroke }

// PaintCommand paints the source everywhere inside the clip.
type PaintCommand struct {
	Op     pixbuf.Operator
	Source pattern.Pattern
	Clip   *clip.Clip
}

// Type implements Command.
func (PaintCommand) Type() CommandType { return CmdPaint }

// MaskCommand paints the source through the alpha of a mask pattern.
type MaskCommand struct {
	Op     pixbuf.Operator
	Source pattern.Pattern
	Mask   pattern.Pattern
	Clip   *clip.Clip
}

// Type implements Command.
func (MaskCommand) Type() CommandType { return CmdMask }
