// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package pixbuf

import "errors"

var (
	// ErrInvalidDimensions is returned for negative sizes or a stride too
	// small for the width.
	ErrInvalidDimensions = errors.New("pixbuf: invalid image dimensions")

	// ErrInvalidFormat is returned for an unknown pixel format.
	ErrInvalidFormat = errors.New("pixbuf: invalid pixel format")

	// ErrTooLarge is returned when an image would exceed MaxPixels.
	ErrTooLarge = errors.New("pixbuf: image too large")
)
