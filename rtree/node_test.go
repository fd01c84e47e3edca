// Copyright 2024 The geopack Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNodeSize(t *testing.T) {
	assert.Equal(t, 28, NodeSize)
}

func TestNode_EncodeDecode_RoundTrip(t *testing.T) {
	n := LeafNode(rect(1, 2, 3, 4), FeatureLocation{PageStartingOffset: 123456789, FeatureOffset: 42})
	buf := make([]byte, NodeSize)
	n.Encode(buf)
	assert.Equal(t, n, DecodeNode(buf))
}

func TestFeatureLocation_EncodeDecode_RoundTrip(t *testing.T) {
	loc := FeatureLocation{PageStartingOffset: 1 << 40, FeatureOffset: 1 << 20}
	buf := make([]byte, FeatureLocationSize)
	loc.encode(buf)
	assert.Equal(t, loc, decodeFeatureLocation(buf))
}
