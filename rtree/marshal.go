// Copyright 2024 The geopack Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rtree

import "io"

// Marshal writes the tree's nodes to w, root first, each node exactly
// NodeSize bytes, per spec.md §6's Index region layout.
func (t *PackedRTree) Marshal(w io.Writer) (int, error) {
	if len(t.nodes) == 0 {
		return 0, nil
	}
	buf := make([]byte, len(t.nodes)*NodeSize)
	for i, n := range t.nodes {
		n.Encode(buf[i*NodeSize : (i+1)*NodeSize])
	}
	return w.Write(buf)
}

// Unmarshal reads a complete index of leafCount leaves from r into an
// in-memory PackedRTree, suitable for a caller that wants to query a
// small index without re-reading it from disk for every query.
func Unmarshal(r io.Reader, leafCount uint64) (*PackedRTree, error) {
	levels := levelShape(leafCount)
	total := nodeCount(levels)
	if total == 0 {
		return &PackedRTree{levels: levels}, nil
	}
	buf := make([]byte, total*NodeSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, wrapErr("failed to read index", err)
	}
	return &PackedRTree{nodes: decodeNodes(buf), levels: levels, leafCount: leafCount}, nil
}
