// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package pixbuf

import "fmt"

// Format is a pixel storage format.
type Format uint8

const (
	// FormatARGB32 is premultiplied 8-bit color with alpha, stored R, G, B, A.
	FormatARGB32 Format = iota
	// FormatRGB24 is opaque 8-bit color stored R, G, B, 0xff.
	FormatRGB24
	// FormatA8 is 8-bit alpha only.
	FormatA8
)

// BytesPerPixel returns the storage size of one pixel.
func (f Format) BytesPerPixel() int {
	if f == FormatA8 {
		return 1
	}
	return 4
}

// Valid reports whether f is a known format.
func (f Format) Valid() bool { return f <= FormatA8 }

// Content returns what f stores.
func (f Format) Content() Content {
	switch f {
	case FormatRGB24:
		return ContentColor
	case FormatA8:
		return ContentAlpha
	}
	return ContentColorAlpha
}

func (f Format) String() string {
	switch f {
	case FormatARGB32:
		return "argb32"
	case FormatRGB24:
		return "rgb24"
	case FormatA8:
		return "a8"
	}
	return fmt.Sprintf("Format(%d)", uint8(f))
}

// Content describes which channels a surface carries.
type Content uint8

const (
	ContentColor Content = 1 << iota
	ContentAlpha

	ContentColorAlpha = ContentColor | ContentAlpha
)

func (c Content) String() string {
	switch c {
	case ContentColor:
		return "color"
	case ContentAlpha:
		return "alpha"
	case ContentColorAlpha:
		return "color-alpha"
	}
	return fmt.Sprintf("Content(%d)", uint8(c))
}
