// Copyright 2024 The geopack Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rtree

import "github.com/tidemark/geopack/internal/wire"

// FeatureLocation addresses a feature within the paged feature region: the
// byte offset of the page it lives in (measured from the start of the
// feature region, i.e. the first byte after the index) plus the feature's
// offset within that page's decoded byte stream (spec.md §3).
type FeatureLocation struct {
	PageStartingOffset uint64
	FeatureOffset      uint32
}

// FeatureLocationSize is the on-disk size, in bytes, of a FeatureLocation.
const FeatureLocationSize = 12

func (l FeatureLocation) encode(buf []byte) {
	wire.PutUint64(buf[0:8], l.PageStartingOffset)
	wire.PutUint32(buf[8:12], l.FeatureOffset)
}

func decodeFeatureLocation(buf []byte) FeatureLocation {
	return FeatureLocation{
		PageStartingOffset: wire.GetUint64(buf[0:8]),
		FeatureOffset:      wire.GetUint32(buf[8:12]),
	}
}

// Node is one index entry: a bounding rectangle plus a FeatureLocation.
// Every node, leaf or internal, is exactly NodeSize bytes on disk so that
// node i can be located by multiplication alone (spec.md §3). Internal
// nodes carry a zero FeatureLocation; it is unused.
type Node struct {
	Bounds   Bounds
	Location FeatureLocation
}

// NodeSize is the on-disk size, in bytes, of a Node: Bounds (16) plus
// FeatureLocation (12).
const NodeSize = BoundsSize + FeatureLocationSize

// LeafNode builds a leaf-level Node: a feature's bounds paired with the
// location where that feature can be found.
func LeafNode(bounds Bounds, loc FeatureLocation) Node {
	return Node{Bounds: bounds, Location: loc}
}

// Encode writes n to buf, which must be at least NodeSize bytes.
func (n Node) Encode(buf []byte) {
	n.Bounds.Encode(buf[0:BoundsSize])
	n.Location.encode(buf[BoundsSize:NodeSize])
}

// DecodeNode reads a Node from buf, which must be at least NodeSize bytes.
func DecodeNode(buf []byte) Node {
	return Node{
		Bounds:   DecodeBounds(buf[0:BoundsSize]),
		Location: decodeFeatureLocation(buf[BoundsSize:NodeSize]),
	}
}
