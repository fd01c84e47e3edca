// Copyright 2024 The geopack Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rtree

// BranchingFactor is the fixed fanout of the tree (spec.md §4.1: "a fixed
// branching factor of 16").
const BranchingFactor = 16

// levelRange is the half-open range of node indices, in the final
// root-first layout, belonging to one level of the tree.
type levelRange struct {
	start, end uint64
}

func (r levelRange) len() uint64 { return r.end - r.start }

// levelShape computes, for a given leaf count, the root-first list of
// level ranges: index 0 is the root level (a single node unless the tree
// is empty), and the last entry is the leaf level. This mirrors
// original_source/geomedea/src/packed_r_tree/mod.rs's byte_ranges_by_level,
// built bottom-up (leaf count, then ⌈prev/16⌉ repeatedly until a single
// root remains) and then reversed to root-first order, matching the
// teacher's packedrtree.go levelify.
func levelShape(leafCount uint64) []levelRange {
	if leafCount == 0 {
		return nil
	}
	// Bottom-up: count of nodes at each level, leaf level first.
	counts := []uint64{leafCount}
	for counts[len(counts)-1] > 1 {
		prev := counts[len(counts)-1]
		counts = append(counts, ceilDiv(prev, BranchingFactor))
	}
	// counts is now leaf-first; convert to root-first byte ranges.
	n := len(counts)
	ranges := make([]levelRange, n)
	var offset uint64
	for i := 0; i < n; i++ {
		// counts[n-1-i] is the node count of level i (root-first).
		count := counts[n-1-i]
		ranges[i] = levelRange{start: offset, end: offset + count}
		offset += count
	}
	return ranges
}

func ceilDiv(a, b uint64) uint64 {
	return (a + b - 1) / b
}

// nodeCount returns the total number of nodes (internal plus leaf) for a
// tree with the given leaf count.
func nodeCount(levels []levelRange) uint64 {
	if len(levels) == 0 {
		return 0
	}
	return levels[len(levels)-1].end
}

// IndexSize returns the on-disk size, in bytes, of the index for a tree
// with the given leaf count: node_count × 28, or 0 if leafCount == 0
// (spec.md §4.1).
func IndexSize(leafCount uint64) uint64 {
	return nodeCount(levelShape(leafCount)) * NodeSize
}

// levelForNodeIdx returns which level (0 == root) a node index falls in.
func levelForNodeIdx(levels []levelRange, nodeIdx uint64) int {
	for i, r := range levels {
		if nodeIdx >= r.start && nodeIdx < r.end {
			return i
		}
	}
	fmtPanic("node index %d out of range", nodeIdx)
	return -1
}

// childrenRange returns the half-open range of child node indices for the
// internal node at nodeIdx. The caller must ensure nodeIdx is not in the
// leaf level.
func childrenRange(levels []levelRange, nodeIdx uint64) levelRange {
	level := levelForNodeIdx(levels, nodeIdx)
	if level == len(levels)-1 {
		fmtPanic("node index %d is a leaf, has no children", nodeIdx)
	}
	childLevel := levels[level+1]
	indexInLevel := nodeIdx - levels[level].start
	start := childLevel.start + indexInLevel*BranchingFactor
	end := start + BranchingFactor
	if end > childLevel.end {
		end = childLevel.end
	}
	return levelRange{start: start, end: end}
}

// isLeafNode reports whether nodeIdx is in the leaf (last) level.
func isLeafNode(levels []levelRange, nodeIdx uint64) bool {
	return levelForNodeIdx(levels, nodeIdx) == len(levels)-1
}
