// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFillRuleInside(t *testing.T) {
	tests := []struct {
		rule    FillRule
		winding int
		want    bool
	}{
		{FillRuleWinding, 0, false},
		{FillRuleWinding, 1, true},
		{FillRuleWinding, -2, true},
		{FillRuleEvenOdd, 2, false},
		{FillRuleEvenOdd, -1, true},
		{FillRuleEvenOdd, 3, true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.rule.Inside(tt.winding), "%v with winding %d", tt.rule, tt.winding)
	}
}

func TestDash(t *testing.T) {
	assert.Nil(t, NewDash())
	assert.Nil(t, NewDash(0, 0))

	d := NewDash(5, -3)
	assert.Equal(t, []float64{5, 3}, d.Array)
	assert.Equal(t, 8.0, d.PatternLength())
	assert.True(t, d.IsDashed())

	odd := NewDash(4)
	assert.Equal(t, 8.0, odd.PatternLength())
	assert.Equal(t, []float64{4, 4}, odd.Effective())

	assert.Equal(t, 3.0, d.WithOffset(11).NormalizedOffset())
	assert.Equal(t, 5.0, d.WithOffset(-3).NormalizedOffset())

	c := d.Clone()
	c.Array[0] = 1
	assert.Equal(t, 5.0, d.Array[0])
}

func TestStrokeStyleValidate(t *testing.T) {
	s := DefaultStrokeStyle()
	assert.NoError(t, s.Validate())
	s.Width = -1
	assert.ErrorIs(t, s.Validate(), ErrInvalidGeometry)
	s = DefaultStrokeStyle()
	s.Dash = &Dash{Array: []float64{1, -1}}
	assert.ErrorIs(t, s.Validate(), ErrInvalidGeometry)
}
