// Copyright 2024 The geopack Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rtree

import (
	"io"
)

// mergeThresholdNodes is the named constant from spec.md §4.1: "the gap
// between the tail's end and the new range's start is ≤ ⌈16_000 / 28⌉ ≈
// 571 nodes". It is computed the same way the original Rust reader
// computes it (original_source/geomedea/src/packed_r_tree/reader.rs:
// combine_request_threshold / Node::serialized_size(), integer division,
// not rounded up) so the two implementations agree on the exact value.
const (
	combineRequestThresholdBytes = 16000
	mergeThresholdNodes          = combineRequestThresholdBytes / NodeSize
)

// nodeFetcher fetches the nodes in the half-open range [start, end) of the
// root-first node layout.
type nodeFetcher func(start, end uint64) ([]Node, error)

// RangeFetcher fetches raw index bytes covering the half-open byte range
// [startByte, endByte) of the index region. Implementations (e.g. an HTTP
// range client) may return more bytes than requested if they over-fetch,
// but must return at least the requested range as a prefix.
type RangeFetcher func(startByte, endByte uint64) ([]byte, error)

// pendingRange is one entry in the traversal queue: a range of node
// indices all belonging to the same level.
type pendingRange struct {
	level      int
	nodeRange  levelRange
}

// Search performs an in-memory intersect query against an already-built
// tree, returning FeatureLocations in the level-by-level, left-to-right
// traversal order specified by spec.md §4.1.
func Search(t *PackedRTree, query Bounds) ([]FeatureLocation, error) {
	if len(t.levels) == 0 {
		return nil, nil
	}
	fetch := func(start, end uint64) ([]Node, error) {
		return t.nodes[start:end], nil
	}
	return search(t.levels, fetch, query, false)
}

// SeekLocal performs a streaming intersect query over a seekable index
// byte source, reading only the node ranges the traversal actually
// visits. The index is taken to start at r's position when SeekLocal is
// called. This is the local (synchronous, blocking) reader's descent
// (spec.md §4.2 "Reader (local)", §5 "Blocking, single-threaded").
func SeekLocal(r io.ReadSeeker, leafCount uint64, query Bounds) ([]FeatureLocation, error) {
	levels := levelShape(leafCount)
	if len(levels) == 0 {
		return nil, nil
	}
	base, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, err
	}
	fetch := func(start, end uint64) ([]Node, error) {
		return readNodeRange(r, base, start, end)
	}
	return search(levels, fetch, query, false)
}

// SeekHTTP performs a streaming intersect query via a RangeFetcher,
// merging adjacent same-level node ranges per spec.md §4.1's range
// merging rule before each fetch. This is the HTTP reader's descent.
func SeekHTTP(fetch RangeFetcher, leafCount uint64, query Bounds) ([]FeatureLocation, error) {
	levels := levelShape(leafCount)
	if len(levels) == 0 {
		return nil, nil
	}
	nf := func(start, end uint64) ([]Node, error) {
		buf, err := fetch(start*NodeSize, end*NodeSize)
		if err != nil {
			return nil, wrapErr("failed to fetch index range", err)
		}
		want := (end - start) * NodeSize
		if uint64(len(buf)) < want {
			return nil, fmtErr("short index range fetch: got %d bytes, want at least %d", len(buf), want)
		}
		return decodeNodes(buf[:want]), nil
	}
	return search(levels, nf, query, true)
}

// search is the shared tree-guided descent used by Search, SeekLocal, and
// SeekHTTP. It starts with the singleton range [0,1) on a FIFO queue,
// pops the front range, fetches its nodes, and for each node whose
// bounds intersect query either emits a FeatureLocation (if it is a
// leaf) or pushes (possibly merged with the queue tail, if merge is
// enabled) its children range. The FIFO queue preserves the level-by-
// level, left-to-right order spec.md §4.1 requires.
func search(levels []levelRange, fetch nodeFetcher, query Bounds, merge bool) ([]FeatureLocation, error) {
	var results []FeatureLocation
	queue := []pendingRange{{level: 0, nodeRange: levelRange{start: 0, end: 1}}}
	leafLevel := len(levels) - 1

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		nodes, err := fetch(cur.nodeRange.start, cur.nodeRange.end)
		if err != nil {
			return nil, err
		}
		for i, n := range nodes {
			if !n.Bounds.Intersects(query) {
				continue
			}
			nodeIdx := cur.nodeRange.start + uint64(i)
			if cur.level == leafLevel {
				results = append(results, n.Location)
				continue
			}
			children := childrenRange(levels, nodeIdx)
			queue = pushRange(queue, cur.level+1, children, merge)
		}
	}
	return results, nil
}

// pushRange appends a newly discovered children range to the queue,
// fusing it with the queue's tail when merge is enabled, the tail is on
// the same level, and the gap between them is within
// mergeThresholdNodes (spec.md §4.1 "Range merging"). Fusing never
// crosses levels.
func pushRange(queue []pendingRange, level int, r levelRange, merge bool) []pendingRange {
	if merge && len(queue) > 0 {
		tail := &queue[len(queue)-1]
		if tail.level == level && r.start >= tail.nodeRange.end &&
			r.start-tail.nodeRange.end <= mergeThresholdNodes {
			tail.nodeRange.end = r.end
			return queue
		}
	}
	return append(queue, pendingRange{level: level, nodeRange: r})
}

func readNodeRange(r io.ReadSeeker, base int64, start, end uint64) ([]Node, error) {
	if _, err := r.Seek(base+int64(start*NodeSize), io.SeekStart); err != nil {
		return nil, err
	}
	buf := make([]byte, (end-start)*NodeSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	return decodeNodes(buf), nil
}

func decodeNodes(buf []byte) []Node {
	n := len(buf) / NodeSize
	nodes := make([]Node, n)
	for i := 0; i < n; i++ {
		nodes[i] = DecodeNode(buf[i*NodeSize : (i+1)*NodeSize])
	}
	return nodes
}
