// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package pattern

import (
	"errors"
	"image"

	"github.com/gogpu/vraster/geom"
	"github.com/gogpu/vraster/pixbuf"
)

// Source is anything a SurfacePattern can paint. Every Source is also a
// Surface or a Replayer.
type Source interface {
	ContentType() pixbuf.Content
	// Extents returns the pixel bounds of the source; ok is false for an
	// unbounded source.
	Extents() (r image.Rectangle, ok bool)
}

// Release gives back an image obtained from a Surface.
type Release func()

// Surface is a source backed by pixels.
type Surface interface {
	Source
	// AcquireSourceImage returns the pixels of the surface. The image must
	// not be used after release is called.
	AcquireSourceImage() (img *pixbuf.Image, release Release, err error)
}

// Replayer is a source that draws itself on demand.
type Replayer interface {
	Source
	// Replay draws the source into dst with m mapping source space to dst
	// pixel space.
	Replay(dst *pixbuf.Image, m geom.Matrix) error
	// Snapshots returns the memo of replayed images for the source.
	Snapshots() *Snapshots
}

// ErrNotDrawable is returned for a Source that is neither a Surface nor a
// Replayer.
var ErrNotDrawable = errors.New("pattern: source is neither a surface nor a replayer")

// ImageSurface is a Surface over an existing image.
type ImageSurface struct {
	Image *pixbuf.Image
}

// NewImageSurface wraps img.
func NewImageSurface(img *pixbuf.Image) *ImageSurface { return &ImageSurface{Image: img} }

func (s *ImageSurface) ContentType() pixbuf.Content { return s.Image.Content() }

func (s *ImageSurface) Extents() (image.Rectangle, bool) { return s.Image.Bounds(), true }

func (s *ImageSurface) AcquireSourceImage() (*pixbuf.Image, Release, error) {
	return s.Image, func() {}, nil
}

// RasterSource is a Surface whose pixels come from caller callbacks. The
// image returned by Acquire must cover Bounds; Release, when set, is called
// once the image is no longer used.
type RasterSource struct {
	Bounds  image.Rectangle
	Content pixbuf.Content
	Acquire func(r image.Rectangle) (*pixbuf.Image, error)
	Release func(img *pixbuf.Image)
}

func (s *RasterSource) ContentType() pixbuf.Content { return s.Content }

func (s *RasterSource) Extents() (image.Rectangle, bool) { return s.Bounds, true }

func (s *RasterSource) AcquireSourceImage() (*pixbuf.Image, Release, error) {
	img, err := s.Acquire(s.Bounds)
	if err != nil {
		return nil, nil, err
	}
	release := func() {
		if s.Release != nil {
			s.Release(img)
		}
	}
	return img, release, nil
}
