// Copyright 2024 The geopack Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rtree

import "sort"

// hilbertMax is the largest coordinate value the Hilbert curve is
// projected onto, on each axis (spec.md §4.3: "scaling the point into the
// range [0, 65535]").
const hilbertMax = 0xFFFF

// hilbert computes the 32-bit Hilbert curve index for a point (x, y),
// each coordinate in [0, hilbertMax]. This is the exact branch-free
// bit-interleaving algorithm from the public-domain reference at
// https://github.com/rawrunprotected/hilbert_curves, ported bit-for-bit
// from original_source/src/hilbert.rs (the bug-free source the
// specification's Hilbert ordering is distilled from).
func hilbert(x, y uint32) uint32 {
	a := x ^ y
	b := 0xFFFF ^ a
	c := 0xFFFF ^ (x | y)
	d := x & (y ^ 0xFFFF)

	aa := a | (b >> 1)
	bb := (a >> 1) ^ a
	cc := ((c >> 1) ^ (b & (d >> 1))) ^ c
	dd := ((a & (c >> 1)) ^ (d >> 1)) ^ d

	a, b, c, d = aa, bb, cc, dd
	aa = (a & (a >> 2)) ^ (b & (b >> 2))
	bb = (a & (b >> 2)) ^ (b & ((a ^ b) >> 2))
	cc ^= (a & (c >> 2)) ^ (b & (d >> 2))
	dd ^= (b & (c >> 2)) ^ ((a ^ b) & (d >> 2))

	a, b, c, d = aa, bb, cc, dd
	aa = (a & (a >> 4)) ^ (b & (b >> 4))
	bb = (a & (b >> 4)) ^ (b & ((a ^ b) >> 4))
	cc ^= (a & (c >> 4)) ^ (b & (d >> 4))
	dd ^= (b & (c >> 4)) ^ ((a ^ b) & (d >> 4))

	a, b, c, d = aa, bb, cc, dd
	cc ^= (a & (c >> 8)) ^ (b & (d >> 8))
	dd ^= (b & (c >> 8)) ^ ((a ^ b) & (d >> 8))

	a = cc ^ (cc >> 1)
	b = dd ^ (dd >> 1)

	i0 := x ^ y
	i1 := b | (0xFFFF ^ (i0 | a))

	i0 = (i0 | (i0 << 8)) & 0x00FF00FF
	i0 = (i0 | (i0 << 4)) & 0x0F0F0F0F
	i0 = (i0 | (i0 << 2)) & 0x33333333
	i0 = (i0 | (i0 << 1)) & 0x55555555

	i1 = (i1 | (i1 << 8)) & 0x00FF00FF
	i1 = (i1 | (i1 << 4)) & 0x0F0F0F0F
	i1 = (i1 | (i1 << 2)) & 0x33333333
	i1 = (i1 | (i1 << 1)) & 0x55555555

	return (i1 << 1) | i0
}

// ScaledHilbert projects point onto a Hilbert curve that fills extent:
// extent.Min corresponds to (0,0) and extent.Max corresponds to
// (hilbertMax, hilbertMax). Scaling uses 64-bit arithmetic throughout to
// avoid overflow (spec.md §4.3). An axis on which extent has zero width
// (e.g. a single point) scales to 0.
func ScaledHilbert(point Coord, extent Bounds) uint32 {
	var x, y uint64
	if width := extent.unscaledLngWidth(); width > 0 {
		x = uint64(int64(point.Lng)-int64(extent.Min.Lng)) * hilbertMax / uint64(width)
	}
	if height := extent.unscaledLatHeight(); height > 0 {
		y = uint64(int64(point.Lat)-int64(extent.Min.Lat)) * hilbertMax / uint64(height)
	}
	return hilbert(uint32(x), uint32(y))
}

// SortableByHilbert pairs a Bounds with an arbitrary payload, for sorting
// entries by Hilbert key before tree construction.
type SortableByHilbert[T any] struct {
	Bounds  Bounds
	Payload T
}

// SortDescendingByHilbert sorts entries by their center's Hilbert key,
// relative to extent, in descending order. Descending is the observable
// on-disk order (spec.md §4.3, §8 property 1; see also the Open Questions
// log in DESIGN.md) and must match bit-for-bit across writers and
// readers sharing fixtures.
func SortDescendingByHilbert[T any](entries []SortableByHilbert[T], extent Bounds) {
	type keyed struct {
		key uint32
		e   SortableByHilbert[T]
	}
	tmp := make([]keyed, len(entries))
	for i, e := range entries {
		tmp[i] = keyed{key: ScaledHilbert(e.Bounds.Center(), extent), e: e}
	}
	sort.SliceStable(tmp, func(i, j int) bool {
		return tmp[i].key > tmp[j].key
	})
	for i, k := range tmp {
		entries[i] = k.e
	}
}
