// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package recording

import "github.com/gogpu/vraster/path"

// ResourcePool stores the paths referenced by recording commands. Each
// AddPath copies its argument so the recording stays immutable.
//
// ResourcePool is not safe for concurrent use.
type ResourcePool struct {
	paths []*path.Path
}

// NewResourcePool creates an empty resource pool.
func NewResourcePool() *ResourcePool {
	return &ResourcePool{paths: make([]*path.Path, 0, 64)}
}

// AddPath adds a copy of p to the pool and returns its reference.
func (r *ResourcePool) AddPath(p *path.Path) PathRef {
	var c *path.Path
	if p != nil {
		c = p.Copy()
	}
	r.paths = append(r.paths, c)
	// #nosec G115 -- pool size is bounded by available memory, well under uint32 max
	return PathRef(uint32(len(r.paths) - 1))
}

// GetPath returns the path for ref, or nil for an invalid reference.
func (r *ResourcePool) GetPath(ref PathRef) *path.Path {
	if int(ref) >= len(r.paths) {
		return nil
	}
	return r.paths[ref]
}

// PathCount returns the number of paths in the pool.
func (r *ResourcePool) PathCount() int {
	return len(r.paths)
}

// Clear removes all paths from the pool.
func (r *ResourcePool) Clear() {
	clear(r.paths)
	r.paths = r.paths[:0]
}

// Clone returns a deep copy of the pool.
func (r *ResourcePool) Clone() *ResourcePool {
	c := &ResourcePool{paths: make([]*path.Path, len(r.paths))}
	for i, p := range r.paths {
		if p != nil {
			c.paths[i] = p.Copy()
		}
	}
	return c
}
