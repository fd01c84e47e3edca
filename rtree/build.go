// Copyright 2024 The geopack Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rtree

// Build constructs a packed R-tree in memory from a caller-supplied leaf
// slice, which must already be in the final on-disk leaf order (Hilbert-
// sorted descending per spec.md §4.3; this package does not sort). This
// mirrors the bottom-up construction described in spec.md §4.1: the leaf
// layer is placed verbatim into the tree's last level, and each higher
// level is built by chunking the level below into runs of up to
// BranchingFactor nodes and unioning their bounds, with a zeroed
// FeatureLocation (internal nodes do not address a feature).
//
// Build keeps the whole index in memory, unlike the original Rust writer's
// memory-mapped temp file (original_source/geomedea/src/packed_r_tree/
// writer.rs); no memory-mapping library appears anywhere in the example
// pack, and an index this small (28 bytes per feature) is cheap to hold
// as a plain slice, matching how the teacher's own packedrtree.New builds
// its node slice entirely in memory.
func Build(leaves []Node) (*PackedRTree, error) {
	leafCount := uint64(len(leaves))
	levels := levelShape(leafCount)
	total := nodeCount(levels)
	if total == 0 {
		return &PackedRTree{levels: levels, leafCount: 0}, nil
	}

	nodes := make([]Node, total)
	leafLevel := levels[len(levels)-1]
	if leafLevel.len() != leafCount {
		return nil, fmtErr("leaf level has %d slots but got %d leaves", leafLevel.len(), leafCount)
	}
	copy(nodes[leafLevel.start:leafLevel.end], leaves)

	// Build each level above the leaves, bottom to top.
	for i := len(levels) - 2; i >= 0; i-- {
		parent := levels[i]
		child := levels[i+1]
		for p := parent.start; p < parent.end; p++ {
			idxInLevel := p - parent.start
			cStart := child.start + idxInLevel*BranchingFactor
			cEnd := cStart + BranchingFactor
			if cEnd > child.end {
				cEnd = child.end
			}
			bounds := EmptyBounds
			for c := cStart; c < cEnd; c++ {
				bounds.Extend(nodes[c].Bounds)
			}
			nodes[p] = Node{Bounds: bounds}
		}
	}

	return &PackedRTree{nodes: nodes, levels: levels, leafCount: leafCount}, nil
}
