// Copyright 2024 The geopack Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package geopack

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/tidemark/geopack/rtree"
)

// Writer builds a geopack file. Features are buffered to a temporary
// spill file as they arrive; Finish sorts them by Hilbert order, builds
// the packed R-tree over their bounds, and streams header, index, and
// paged feature data to the destination writer in that order (spec.md
// §4.2, §6). A Writer is single-use: once Finish has been called, it is
// done.
//
// Like the teacher's fileWriter, a Writer is poisoned by the first
// failed call: once AddFeature or Finish returns an error, every later
// call returns that same error (spec.md §7).
type Writer struct {
	stateful

	dst          io.Writer
	isCompressed bool
	pageSizeGoal int

	spill     *os.File
	entries   []rtree.SortableByHilbert[pendingFeature]
	extent    rtree.Bounds
	hasExtent bool
}

// pendingFeature records where a buffered feature's bytes live in the
// spill file.
type pendingFeature struct {
	offset int64
	length int
}

// NewWriter returns a Writer that streams a geopack file to dst.
// isCompressed selects zstd page compression (spec.md §6's
// compression_flag).
func NewWriter(dst io.Writer, isCompressed bool) (*Writer, error) {
	spill, err := os.CreateTemp("", "geopack-spill-*")
	if err != nil {
		return nil, wrapErr("failed to create spill file", err)
	}
	return &Writer{
		dst:          dst,
		isCompressed: isCompressed,
		pageSizeGoal: DefaultPageSizeGoal,
		spill:        spill,
		extent:       rtree.EmptyBounds,
	}, nil
}

// SetPageSizeGoal overrides the default page rollover threshold
// (DefaultPageSizeGoal), in bytes of uncompressed feature content
// (spec.md §4.2). It must be called before any AddFeature call.
func (w *Writer) SetPageSizeGoal(bytes int) {
	w.pageSizeGoal = bytes
}

// AddFeature buffers f for inclusion in the file. Features may be added
// in any order; Finish reorders them by Hilbert key before writing
// (spec.md §4.3). AddFeature rejects a feature with no geometry
// (spec.md §9's Open Question, resolved in DESIGN.md: rejected rather
// than substituting a sentinel point).
func (w *Writer) AddFeature(f Feature) error {
	if err := w.checkOpen(); err != nil {
		return err
	}
	if !hasGeometryPayload(f.Geometry) {
		return w.poison(ErrNoGeometry)
	}
	body, err := MarshalFeature(f)
	if err != nil {
		return w.poison(wrapErr("failed to encode feature", err))
	}
	offset, err := w.spill.Seek(0, io.SeekEnd)
	if err != nil {
		return w.poison(wrapErr("failed to seek spill file", err))
	}
	if _, err := w.spill.Write(body); err != nil {
		return w.poison(wrapErr("failed to buffer feature", err))
	}
	bounds := f.Geometry.Bounds()
	w.extendExtent(bounds)
	w.entries = append(w.entries, rtree.SortableByHilbert[pendingFeature]{
		Bounds:  bounds,
		Payload: pendingFeature{offset: offset, length: len(body)},
	})
	return nil
}

// hasGeometryPayload reports whether g actually carries a geometry,
// distinguishing a deliberately empty collection (legal) from the zero
// Geometry value, which carries nil slices in every variant but Point
// (spec.md §9).
func hasGeometryPayload(g Geometry) bool {
	switch g.Kind {
	case KindPoint:
		return true
	case KindLineString:
		return g.LineString != nil
	case KindPolygon:
		return g.Polygon != nil
	case KindMultiPoint:
		return g.MultiPoint != nil
	case KindMultiLineString:
		return g.MultiLineString != nil
	case KindMultiPolygon:
		return g.MultiPolygon != nil
	case KindGeometryCollection:
		return g.GeometryCollection != nil
	default:
		return false
	}
}

func (w *Writer) extendExtent(b Bounds) {
	if !w.hasExtent {
		w.extent = b
		w.hasExtent = true
		return
	}
	w.extent.Extend(b)
}

// Finish writes the complete file: header, packed R-tree index, then
// paged feature data in Hilbert order (spec.md §6). After Finish
// returns successfully the Writer is closed; calling Finish again, or
// any other method, returns ErrClosed.
func (w *Writer) Finish() (err error) {
	if err := w.checkOpen(); err != nil {
		return err
	}
	defer func() {
		spillName := w.spill.Name()
		if cerr := w.close(w.spill); cerr != nil && err == nil {
			err = cerr
		}
		os.Remove(spillName)
	}()

	featureCount := uint64(len(w.entries))
	if featureCount == 0 {
		hdr := Header{IsCompressed: w.isCompressed, PageCount: 1, FeatureCount: 0}
		if err := hdr.Encode(w.dst); err != nil {
			return w.poison(wrapErr("failed to write header", err))
		}
		return w.poison(encodeSentinelPage(w.dst))
	}

	rtree.SortDescendingByHilbert(w.entries, w.extent)

	leaves := make([]rtree.Node, featureCount)
	pages, err := w.layoutPages(leaves)
	if err != nil {
		return w.poison(err)
	}

	tree, err := rtree.Build(leaves)
	if err != nil {
		return w.poison(fmt.Errorf("%w: %v", ErrCountMismatch, err))
	}

	hdr := Header{
		IsCompressed: w.isCompressed,
		PageCount:    uint64(len(pages)),
		FeatureCount: featureCount,
	}
	if err := hdr.Encode(w.dst); err != nil {
		return w.poison(wrapErr("failed to write header", err))
	}
	if _, err := tree.Marshal(w.dst); err != nil {
		return w.poison(wrapErr("failed to write index", err))
	}
	for _, p := range pages {
		if _, err := w.dst.Write(p); err != nil {
			return w.poison(wrapErr("failed to write page", err))
		}
	}
	return nil
}

// layoutPages groups w.entries (already Hilbert-sorted) into pages
// under the rollover policy of spec.md §4.2 — a feature is always added
// to the current page first, and the page closes only once that
// addition makes its uncompressed size strictly exceed the page size
// goal, so the feature that crosses the threshold is the last one in
// the page it crossed it in — assigning each feature's final
// FeatureLocation into leaves as it is placed, and returns the encoded
// pages (PageHeader plus payload) in page order. Each page's starting
// offset is the total encoded size of the pages before it.
func (w *Writer) layoutPages(leaves []rtree.Node) ([][]byte, error) {
	var pages [][]byte
	var cur pageBuilder
	var pageStart uint64

	flushCur := func() error {
		var enc bytes.Buffer
		if err := encodePage(&enc, cur.buf.Bytes(), cur.count, w.isCompressed); err != nil {
			return err
		}
		pages = append(pages, enc.Bytes())
		pageStart += uint64(enc.Len())
		cur.buf.Reset()
		cur.count = 0
		return nil
	}

	for i, e := range w.entries {
		body := make([]byte, e.Payload.length)
		if _, err := w.spill.ReadAt(body, e.Payload.offset); err != nil {
			return nil, wrapErr("failed to read buffered feature", err)
		}

		featureOffset := uint32(cur.len())
		if err := cur.addRawRecord(body); err != nil {
			return nil, err
		}

		leaves[i] = rtree.LeafNode(e.Bounds, rtree.FeatureLocation{
			PageStartingOffset: pageStart,
			FeatureOffset:      featureOffset,
		})

		if cur.len() > w.pageSizeGoal {
			if err := flushCur(); err != nil {
				return nil, err
			}
		}
	}
	if cur.len() > 0 || len(pages) == 0 {
		if err := flushCur(); err != nil {
			return nil, err
		}
	}
	return pages, nil
}

// wireLenSize is the width of the length prefix WriteFeatureRecord adds
// ahead of every feature's marshaled bytes (spec.md §4.4).
const wireLenSize = 8
