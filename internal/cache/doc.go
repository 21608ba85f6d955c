// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package cache provides a generic LRU cache with an eviction hook.
//
// The rasterizer uses it for the values it keeps between calls: constant
// color pictures and replayed recording snapshots. Evicted and cleared
// values are handed to the hook so owners can release their memory.
//
//	c := cache.New[key, *pixbuf.Image](16, func(_ key, img *pixbuf.Image) {
//		img.Release()
//	})
//	img, cached, err := c.GetOrCreate(k, render)
//
// Cache is safe for concurrent use and must not be copied.
package cache
