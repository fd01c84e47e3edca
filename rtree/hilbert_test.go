// Copyright 2024 The geopack Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rect(minLng, minLat, maxLng, maxLat float64) Bounds {
	return FromCorners(FromDegrees(minLng, minLat), FromDegrees(maxLng, maxLat))
}

// TestScaledHilbert_KnownValues pins ScaledHilbert to the exact values the
// original Rust implementation produces for two adjacent unit squares,
// the oracle this package's hilbert() was ported from bit-for-bit.
func TestScaledHilbert_KnownValues(t *testing.T) {
	node1 := rect(0, 0, 1, 1)
	node2 := rect(2, 2, 3, 3)

	extent := EmptyBounds
	extent.Extend(node1)
	extent.Extend(node2)

	assert.Equal(t, uint32(143165576), ScaledHilbert(node1.Center(), extent))
	assert.Equal(t, uint32(2720145952), ScaledHilbert(node2.Center(), extent))
}

func TestHilbert_OriginIsZero(t *testing.T) {
	assert.Equal(t, uint32(0), hilbert(0, 0))
}

func TestHilbert_AxisSymmetry(t *testing.T) {
	// hilbert(x, 0) and hilbert(0, x) both lie on the curve's first two
	// quadrant boundary and must not collide for x > 0.
	assert.NotEqual(t, hilbert(1, 0), hilbert(0, 1))
}

// TestSortDescendingByHilbert_MatchesKeys checks SortDescendingByHilbert
// against independently computed ScaledHilbert keys for the same boxes
// used in the teacher's hilbertInputs regression
// (packedrtree/hilbert_test.go), laid out across all four quadrants so
// no two centers collide. This pins the sort mechanics (descending,
// stable) rather than any particular absolute ordering of this package's
// hilbert() implementation.
func TestSortDescendingByHilbert_MatchesKeys(t *testing.T) {
	boxes := []Bounds{
		rect(-10, -10, -8, -8), // A
		rect(-10, 8, -8, 10),   // B
		rect(8, 8, 10, 10),     // C
		rect(1, -2, 2, -1),     // D
		rect(8, -8, 10, -6),    // E
		rect(8, -10, 10, -8),   // F
	}

	extent := EmptyBounds
	for _, b := range boxes {
		extent.Extend(b)
	}

	entries := make([]SortableByHilbert[int], len(boxes))
	wantKeys := make([]uint32, len(boxes))
	for i, b := range boxes {
		entries[i] = SortableByHilbert[int]{Bounds: b, Payload: i}
		wantKeys[i] = ScaledHilbert(b.Center(), extent)
	}

	SortDescendingByHilbert(entries, extent)

	for i := 1; i < len(entries); i++ {
		keyPrev := wantKeys[entries[i-1].Payload]
		keyCur := wantKeys[entries[i].Payload]
		require.GreaterOrEqual(t, keyPrev, keyCur, "entries must be sorted by descending Hilbert key")
	}

	// Every original box must still be present exactly once.
	seen := make(map[int]bool, len(entries))
	for _, e := range entries {
		seen[e.Payload] = true
	}
	require.Len(t, seen, len(boxes))
}

func TestSortDescendingByHilbert_Singleton(t *testing.T) {
	b := rect(-1, -1, 1, 1)
	entries := []SortableByHilbert[int]{{Bounds: b, Payload: 555}}

	SortDescendingByHilbert(entries, b)

	assert.Equal(t, 555, entries[0].Payload)
}

func TestSortDescendingByHilbert_Nil(t *testing.T) {
	var entries []SortableByHilbert[int]
	SortDescendingByHilbert(entries, EmptyBounds)
}
