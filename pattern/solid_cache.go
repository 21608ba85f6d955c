// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package pattern

import (
	"github.com/gogpu/vraster/internal/cache"
	"github.com/gogpu/vraster/pixbuf"
)

// DefaultSolidCacheSize is the capacity NewSolidCache uses for sizes below
// zero.
const DefaultSolidCacheSize = 16

// SolidCache hands out constant-color pictures. Transparent, opaque black
// and opaque white come from preallocated pictures; other colors are kept
// in a small LRU. A nil *SolidCache allocates a new picture per call.
type SolidCache struct {
	transparent, black, white *pixbuf.Solid

	lru *cache.Cache[[4]byte, *pixbuf.Solid]
}

// NewSolidCache returns a cache holding up to size colors besides the
// three preallocated ones.
func NewSolidCache(size int) *SolidCache {
	if size < 0 {
		size = DefaultSolidCacheSize
	}
	return &SolidCache{
		transparent: pixbuf.NewSolid(pixbuf.Transparent),
		black:       pixbuf.NewSolid(pixbuf.Black),
		white:       pixbuf.NewSolid(pixbuf.White),
		lru:         cache.New[[4]byte, *pixbuf.Solid](size, nil),
	}
}

// Get returns the picture for c. The picture is shared and must not be
// modified.
func (s *SolidCache) Get(c pixbuf.Color) *pixbuf.Solid {
	px := c.Premul()
	if s == nil {
		return &pixbuf.Solid{Pixel: px}
	}
	switch px {
	case s.transparent.Pixel:
		return s.transparent
	case s.black.Pixel:
		return s.black
	case s.white.Pixel:
		return s.white
	}
	pic, _, _ := s.lru.GetOrCreate(px, func() (*pixbuf.Solid, error) {
		return &pixbuf.Solid{Pixel: px}, nil
	})
	return pic
}

// Len returns the number of cached colors, not counting the preallocated
// ones.
func (s *SolidCache) Len() int {
	if s == nil {
		return 0
	}
	return s.lru.Len()
}

// Clear drops every cached color.
func (s *SolidCache) Clear() {
	if s != nil {
		s.lru.Clear()
	}
}
