package physics

import (
	"math"

	"github.com/jakecoffman/cp"
)

// SpatialHash is a uniform grid broad phase over an unbounded plane. Signed
// cell coordinates are folded onto non-negative grid coordinates (0, -1, 1,
// -2, 2, ... map to 0, 1, 2, 3, 4, ...) and the grid doubles in both axes
// whenever an insert lands outside it. The grid never shrinks.
type SpatialHash[K comparable] struct {
	buckets      [][]K
	bucketWidth  float64
	bucketHeight float64
	width        int
	height       int
}

func NewSpatialHash[K comparable](bucketWidth, bucketHeight float64) *SpatialHash[K] {
	return &SpatialHash[K]{
		buckets:      make([][]K, 1),
		bucketWidth:  bucketWidth,
		bucketHeight: bucketHeight,
		width:        1,
		height:       1,
	}
}

// Size returns the grid dimensions in buckets.
func (h *SpatialHash[K]) Size() (width, height int) {
	return h.width, h.height
}

func fold(p int) int {
	if p < 0 {
		return -2*p - 1
	}
	return 2 * p
}

type cellRange struct {
	x0, y0, x1, y1 int
}

func (h *SpatialHash[K]) cells(bb cp.BB) cellRange {
	return cellRange{
		x0: int(math.Floor(bb.L / h.bucketWidth)),
		y0: int(math.Floor(bb.B / h.bucketHeight)),
		x1: int(math.Floor(bb.R / h.bucketWidth)),
		y1: int(math.Floor(bb.T / h.bucketHeight)),
	}
}

// index returns the bucket slot for a signed cell, or -1 when the cell is
// outside the grid.
func (h *SpatialHash[K]) index(x, y int) int {
	gx, gy := fold(x), fold(y)
	if gx >= h.width || gy >= h.height {
		return -1
	}
	return gy*h.width + gx
}

func (h *SpatialHash[K]) contains(r cellRange) bool {
	return h.index(r.x0, r.y0) >= 0 && h.index(r.x1, r.y1) >= 0
}

func (h *SpatialHash[K]) grow() {
	width, height := h.width*2, h.height*2
	buckets := make([][]K, width*height)
	for y := 0; y < h.height; y++ {
		for x := 0; x < h.width; x++ {
			buckets[y*width+x] = h.buckets[y*h.width+x]
		}
	}
	h.buckets = buckets
	h.width = width
	h.height = height
}

// Insert adds k to every cell covered by box placed at t.
func (h *SpatialHash[K]) Insert(k K, t Transform, box AABB) {
	r := h.cells(box.World(t))
	for !h.contains(r) {
		h.grow()
	}
	for x := r.x0; x <= r.x1; x++ {
		for y := r.y0; y <= r.y1; y++ {
			i := h.index(x, y)
			h.buckets[i] = append(h.buckets[i], k)
		}
	}
}

// Remove deletes k from every cell covered by box placed at t. Removing a
// key that is not present is a no-op.
func (h *SpatialHash[K]) Remove(k K, t Transform, box AABB) {
	r := h.cells(box.World(t))
	for x := r.x0; x <= r.x1; x++ {
		for y := r.y0; y <= r.y1; y++ {
			i := h.index(x, y)
			if i < 0 {
				continue
			}
			bucket := h.buckets[i]
			kept := bucket[:0]
			for _, other := range bucket {
				if other != k {
					kept = append(kept, other)
				}
			}
			clear(bucket[len(kept):])
			h.buckets[i] = kept
		}
	}
}

// Nearby returns the keys, other than k, sharing a cell with box placed at
// t. Each key appears once, in first-seen order.
func (h *SpatialHash[K]) Nearby(k K, t Transform, box AABB) []K {
	var out []K
	seen := make(map[K]struct{})
	h.collect(h.cells(box.World(t)), func(other K) {
		if other == k {
			return
		}
		if _, ok := seen[other]; ok {
			return
		}
		seen[other] = struct{}{}
		out = append(out, other)
	})
	return out
}

// Query returns every key sharing a cell with bb, once each.
func (h *SpatialHash[K]) Query(bb cp.BB) []K {
	var out []K
	seen := make(map[K]struct{})
	h.collect(h.cells(bb), func(k K) {
		if _, ok := seen[k]; ok {
			return
		}
		seen[k] = struct{}{}
		out = append(out, k)
	})
	return out
}

func (h *SpatialHash[K]) collect(r cellRange, fn func(K)) {
	for x := r.x0; x <= r.x1; x++ {
		for y := r.y0; y <= r.y1; y++ {
			i := h.index(x, y)
			if i < 0 {
				continue
			}
			for _, k := range h.buckets[i] {
				fn(k)
			}
		}
	}
}
