// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package pixbuf

import (
	"fmt"
	"image"
	"image/draw"
)

// MaxPixels bounds the size of a single image.
const MaxPixels = 1 << 28

// Image is a pixel buffer. Coordinates start at (0, 0) in the top-left
// corner; a sub-image is re-based to its own origin.
type Image struct {
	format Format
	width  int
	height int
	stride int
	pix    []byte

	// clear is set while every pixel is known to be transparent.
	clear bool
}

// NewImage allocates a transparent image.
func NewImage(f Format, width, height int) (*Image, error) {
	if !f.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidFormat, f)
	}
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if width != 0 && height > MaxPixels/width {
		return nil, fmt.Errorf("%w: %dx%d", ErrTooLarge, width, height)
	}
	stride := width * f.BytesPerPixel()
	img := &Image{
		format: f,
		width:  width,
		height: height,
		stride: stride,
		pix:    make([]byte, stride*height),
		clear:  true,
	}
	if f == FormatRGB24 {
		img.forceOpaque()
		img.clear = false
	}
	return img, nil
}

// NewImageFromData wraps existing pixel memory without copying it.
func NewImageFromData(f Format, width, height, stride int, pix []byte) (*Image, error) {
	if !f.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidFormat, f)
	}
	if width < 0 || height < 0 || stride < width*f.BytesPerPixel() {
		return nil, fmt.Errorf("%w: %dx%d stride %d", ErrInvalidDimensions, width, height, stride)
	}
	if height > 0 && len(pix) < stride*(height-1)+width*f.BytesPerPixel() {
		return nil, fmt.Errorf("%w: buffer holds %d bytes", ErrInvalidDimensions, len(pix))
	}
	return &Image{format: f, width: width, height: height, stride: stride, pix: pix}, nil
}

// FromImage copies src into a new ARGB32 image, or A8 when src is an
// *image.Alpha.
func FromImage(src image.Image) (*Image, error) {
	b := src.Bounds()
	if a, ok := src.(*image.Alpha); ok {
		img, err := NewImage(FormatA8, b.Dx(), b.Dy())
		if err != nil {
			return nil, err
		}
		draw.Draw(img.Alpha(), img.Alpha().Bounds(), a, b.Min, draw.Src)
		img.clear = false
		return img, nil
	}
	img, err := NewImage(FormatARGB32, b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}
	draw.Draw(img.RGBA(), img.RGBA().Bounds(), src, b.Min, draw.Src)
	img.clear = false
	return img, nil
}

func (img *Image) Format() Format   { return img.format }
func (img *Image) Width() int       { return img.width }
func (img *Image) Height() int      { return img.height }
func (img *Image) Stride() int      { return img.stride }
func (img *Image) Content() Content { return img.format.Content() }

// Bounds returns the image rectangle, anchored at the origin.
func (img *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, img.width, img.height)
}

// Pix returns the pixel memory.
func (img *Image) Pix() []byte { return img.pix }

// IsClear reports whether the image is known to be fully transparent.
func (img *Image) IsClear() bool { return img.clear }

// MarkDirty records an external write to the pixel memory.
func (img *Image) MarkDirty() { img.clear = false }

// Clear sets every pixel to transparent (opaque black for RGB24).
func (img *Image) Clear() {
	for y := 0; y < img.height; y++ {
		clear(img.row(y))
	}
	if img.format == FormatRGB24 {
		img.forceOpaque()
		return
	}
	img.clear = true
}

// Release drops the pixel memory. The image must not be used afterwards.
func (img *Image) Release() {
	img.pix = nil
	img.width, img.height = 0, 0
}

// SubImage returns a view of r sharing memory with img. r is clipped to
// the image bounds. Writes through the view are not tracked by img, so img
// stops reporting itself clear.
func (img *Image) SubImage(r image.Rectangle) *Image {
	wasClear := img.clear
	img.clear = false
	r = r.Intersect(img.Bounds())
	if r.Empty() {
		return &Image{format: img.format, stride: img.stride}
	}
	off := r.Min.Y*img.stride + r.Min.X*img.format.BytesPerPixel()
	end := (r.Max.Y-1)*img.stride + r.Max.X*img.format.BytesPerPixel()
	return &Image{
		format: img.format,
		width:  r.Dx(),
		height: r.Dy(),
		stride: img.stride,
		pix:    img.pix[off:end:end],
		clear:  wasClear,
	}
}

// RGBA returns an image.RGBA view of a 4-byte-per-pixel image.
func (img *Image) RGBA() *image.RGBA {
	if img.format == FormatA8 {
		return nil
	}
	return &image.RGBA{Pix: img.pix, Stride: img.stride, Rect: img.Bounds()}
}

// Alpha returns an image.Alpha view of an A8 image.
func (img *Image) Alpha() *image.Alpha {
	if img.format != FormatA8 {
		return nil
	}
	return &image.Alpha{Pix: img.pix, Stride: img.stride, Rect: img.Bounds()}
}

// Std returns the matching standard library view.
func (img *Image) Std() draw.Image {
	if img.format == FormatA8 {
		return img.Alpha()
	}
	return img.RGBA()
}

// At returns the premultiplied pixel at (x, y); out of bounds reads are
// transparent.
func (img *Image) At(x, y int) [4]byte {
	if x < 0 || y < 0 || x >= img.width || y >= img.height {
		return [4]byte{}
	}
	if img.format == FormatA8 {
		return [4]byte{0, 0, 0, img.pix[y*img.stride+x]}
	}
	o := y*img.stride + 4*x
	return [4]byte{img.pix[o], img.pix[o+1], img.pix[o+2], img.pix[o+3]}
}

// Set stores a premultiplied pixel.
func (img *Image) Set(x, y int, p [4]byte) {
	if x < 0 || y < 0 || x >= img.width || y >= img.height {
		return
	}
	img.clear = false
	switch img.format {
	case FormatA8:
		img.pix[y*img.stride+x] = p[3]
	case FormatRGB24:
		o := y*img.stride + 4*x
		img.pix[o], img.pix[o+1], img.pix[o+2], img.pix[o+3] = p[0], p[1], p[2], 0xff
	default:
		o := y*img.stride + 4*x
		img.pix[o], img.pix[o+1], img.pix[o+2], img.pix[o+3] = p[0], p[1], p[2], p[3]
	}
}

// row returns the bytes of row y.
func (img *Image) row(y int) []byte {
	o := y * img.stride
	return img.pix[o : o+img.width*img.format.BytesPerPixel()]
}

func (img *Image) rowSpan(x, y, w int) []byte {
	bpp := img.format.BytesPerPixel()
	o := y*img.stride + x*bpp
	return img.pix[o : o+w*bpp]
}

func (img *Image) forceOpaque() {
	for y := 0; y < img.height; y++ {
		r := img.row(y)
		for i := 3; i < len(r); i += 4 {
			r[i] = 0xff
		}
	}
}

// Copy returns a deep copy of img with a tight stride.
func (img *Image) Copy() *Image {
	bpp := img.format.BytesPerPixel()
	c := &Image{
		format: img.format,
		width:  img.width,
		height: img.height,
		stride: img.width * bpp,
		pix:    make([]byte, img.width*bpp*img.height),
		clear:  img.clear,
	}
	for y := 0; y < img.height; y++ {
		copy(c.row(y), img.row(y))
	}
	return c
}
