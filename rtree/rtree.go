// Copyright 2024 The geopack Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package rtree implements the packed Hilbert R-tree index described in
// spec.md §4.1: a level-ordered, implicit (array-laid-out) static tree
// over feature bounding boxes with a fixed branching factor of 16. It also
// holds the scaled-coordinate Coord/Bounds types (spec.md §3) that the
// rest of this module builds on, and the Hilbert ordering used to sort
// leaves before the tree is built (spec.md §4.3).
package rtree

// PackedRTree is a built, queryable packed R-tree: all BranchingFactor-ary
// internal levels plus the leaf level, laid out root-first exactly as it
// will appear on disk.
type PackedRTree struct {
	nodes     []Node
	levels    []levelRange
	leafCount uint64
}

// Bounds returns the root node's bounding rectangle, or EmptyBounds if the
// tree has no leaves.
func (t *PackedRTree) Bounds() Bounds {
	if len(t.nodes) == 0 {
		return EmptyBounds
	}
	return t.nodes[0].Bounds
}

// NumLeaves returns the number of leaf nodes (features) in the tree.
func (t *PackedRTree) NumLeaves() uint64 { return t.leafCount }

// NumNodes returns the total number of nodes, internal and leaf.
func (t *PackedRTree) NumNodes() uint64 { return uint64(len(t.nodes)) }

// IndexSize returns the on-disk size, in bytes, of this tree's index.
func (t *PackedRTree) IndexSize() uint64 { return uint64(len(t.nodes)) * NodeSize }
