// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package pixbuf

import (
	"fmt"

	"github.com/gogpu/vraster/internal/blend"
)

// Operator is a compositing operator.
type Operator uint8

const (
	OpClear Operator = iota
	OpSource
	OpOver
	OpIn
	OpOut
	OpAtop
	OpDest
	OpDestOver
	OpDestIn
	OpDestOut
	OpDestAtop
	OpXor
	OpAdd
	OpSaturate
	OpMultiply
	OpScreen
	OpOverlay
	OpDarken
	OpLighten
	OpColorDodge
	OpColorBurn
	OpHardLight
	OpSoftLight
	OpDifference
	OpExclusion
	OpHSLHue
	OpHSLSaturation
	OpHSLColor
	OpHSLLuminosity
)

var operatorNames = [...]string{
	"clear", "source", "over", "in", "out", "atop",
	"dest", "dest-over", "dest-in", "dest-out", "dest-atop",
	"xor", "add", "saturate",
	"multiply", "screen", "overlay", "darken", "lighten",
	"color-dodge", "color-burn", "hard-light", "soft-light",
	"difference", "exclusion",
	"hsl-hue", "hsl-saturation", "hsl-color", "hsl-luminosity",
}

func (op Operator) String() string {
	if int(op) < len(operatorNames) {
		return operatorNames[op]
	}
	return fmt.Sprintf("Operator(%d)", uint8(op))
}

// ParseOperator returns the operator with the given String name.
func ParseOperator(s string) (Operator, error) {
	for i, n := range operatorNames {
		if n == s {
			return Operator(i), nil
		}
	}
	return 0, fmt.Errorf("pixbuf: unknown operator %q", s)
}

// Valid reports whether op is a defined operator.
func (op Operator) Valid() bool { return int(op) < len(operatorNames) }

func (op Operator) mode() blend.Mode { return blend.Mode(op) }

// BoundedByMask reports whether pixels outside the mask are left unchanged.
func (op Operator) BoundedByMask() bool {
	switch op {
	case OpIn, OpOut, OpDestIn, OpDestAtop:
		return false
	}
	return true
}

// BoundedBySource reports whether pixels where the source is transparent
// are left unchanged.
func (op Operator) BoundedBySource() bool {
	switch op {
	case OpClear, OpSource, OpIn, OpOut, OpDestIn, OpDestAtop:
		return false
	}
	return true
}

// IsNoop reports whether op never changes the destination.
func (op Operator) IsNoop() bool { return op == OpDest }
