// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package pattern

import (
	"image"
	"sync/atomic"

	"github.com/gogpu/vraster/geom"
	"github.com/gogpu/vraster/internal/cache"
	"github.com/gogpu/vraster/pixbuf"
)

// DefaultSnapshotCacheSize is the number of snapshots a Replayer keeps by
// default.
const DefaultSnapshotCacheSize = 4

// Snapshots memoizes the images a Replayer was replayed into, keyed by the
// device rectangle and pattern matrix they were made for. Any change to
// the source must call Invalidate.
type Snapshots struct {
	generation atomic.Uint64
	lru        *cache.Cache[snapshotKey, *pixbuf.Image]
}

type snapshotKey struct {
	rect       image.Rectangle
	matrix     geom.Matrix
	extend     pixbuf.Extend
	generation uint64
}

// NewSnapshots returns an empty memo holding up to size images.
func NewSnapshots(size int) *Snapshots {
	if size < 0 {
		size = DefaultSnapshotCacheSize
	}
	return &Snapshots{lru: cache.New[snapshotKey, *pixbuf.Image](size, nil)}
}

// Invalidate drops every snapshot.
func (s *Snapshots) Invalidate() {
	s.generation.Add(1)
	s.lru.Clear()
}

// Len returns the number of stored snapshots.
func (s *Snapshots) Len() int { return s.lru.Len() }

func (s *Snapshots) key(r image.Rectangle, m geom.Matrix, e pixbuf.Extend) snapshotKey {
	return snapshotKey{rect: r, matrix: m, extend: e, generation: s.generation.Load()}
}

// get returns the snapshot for key, replaying it on a miss. hit
// reports whether the image came from the memo.
func (s *Snapshots) get(key snapshotKey, replay func() (*pixbuf.Image, error)) (img *pixbuf.Image, hit bool, err error) {
	if img, ok := s.lru.Get(key); ok {
		return img, true, nil
	}
	img, err = replay()
	if err != nil {
		return nil, false, err
	}
	s.lru.Set(key, img)
	return img, false, nil
}
