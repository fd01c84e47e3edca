// Copyright 2024 The geopack Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rtree

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshal_RoundTrip(t *testing.T) {
	tree, leaves := buildGrid(t)

	var buf bytes.Buffer
	n, err := tree.Marshal(&buf)
	require.NoError(t, err)
	assert.Equal(t, int(tree.IndexSize()), n)

	got, err := Unmarshal(bytes.NewReader(buf.Bytes()), uint64(len(leaves)))
	require.NoError(t, err)
	assert.Equal(t, tree.Bounds(), got.Bounds())
	assert.Equal(t, tree.NumNodes(), got.NumNodes())
}

func TestMarshal_Empty(t *testing.T) {
	tree, err := Build(nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	n, err := tree.Marshal(&buf)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Empty(t, buf.Bytes())
}
