// Copyright 2024 The geopack Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_Empty(t *testing.T) {
	tree, err := Build(nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), tree.NumLeaves())
	assert.Equal(t, uint64(0), tree.NumNodes())
	assert.Equal(t, EmptyBounds, tree.Bounds())
}

func TestBuild_Singleton(t *testing.T) {
	leaf := LeafNode(rect(0, 0, 1, 1), FeatureLocation{FeatureOffset: 7})
	tree, err := Build([]Node{leaf})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), tree.NumLeaves())
	assert.Equal(t, uint64(1), tree.NumNodes())
	assert.Equal(t, leaf.Bounds, tree.Bounds())
}

func TestBuild_ParentBoundsUnionChildren(t *testing.T) {
	var leaves []Node
	for i := 0; i < 20; i++ {
		base := float64(i)
		leaves = append(leaves, LeafNode(rect(base, base, base+0.5, base+0.5), FeatureLocation{FeatureOffset: uint32(i)}))
	}
	tree, err := Build(leaves)
	require.NoError(t, err)
	require.Equal(t, uint64(20), tree.NumLeaves())

	want := EmptyBounds
	for _, l := range leaves {
		want.Extend(l.Bounds)
	}
	assert.Equal(t, want, tree.Bounds())
}

func TestBuild_BranchingFactorBoundary(t *testing.T) {
	// 17 leaves forces a second node at the level above the leaves
	// (BranchingFactor=16), exercising the chunking boundary.
	var leaves []Node
	for i := 0; i < 17; i++ {
		base := float64(i)
		leaves = append(leaves, LeafNode(rect(base, base, base+0.5, base+0.5), FeatureLocation{FeatureOffset: uint32(i)}))
	}
	tree, err := Build(leaves)
	require.NoError(t, err)
	assert.Equal(t, uint64(17), tree.NumLeaves())
	assert.Equal(t, uint64(20), tree.NumNodes())
}
