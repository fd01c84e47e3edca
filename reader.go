// Copyright 2024 The geopack Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package geopack

import (
	"io"
	"sort"

	"github.com/tidemark/geopack/rtree"
)

// Reader reads a geopack file from a seekable local source (spec.md
// §4.2 "Reader (local)"). It reads the header once, in NewReader; the
// index and feature pages are read lazily as queries touch them.
type Reader struct {
	stateful

	src          io.ReadSeeker
	header       Header
	indexOffset  int64
	featuresBase int64
}

// NewReader opens r as a geopack file, reading and validating its
// header.
func NewReader(r io.ReadSeeker) (*Reader, error) {
	hdr, err := DecodeHeader(r)
	if err != nil {
		return nil, wrapErr("failed to read header", err)
	}
	indexOffset := int64(HeaderSize)
	indexSize := rtree.IndexSize(hdr.FeatureCount)
	return &Reader{
		src:          r,
		header:       hdr,
		indexOffset:  indexOffset,
		featuresBase: indexOffset + int64(indexSize),
	}, nil
}

// Header returns the file's header.
func (rd *Reader) Header() Header { return rd.header }

// FileInfo summarizes a file without requiring the caller to walk its
// index or features; a convenience the original flatgeobuf ecosystem
// offers via a file's embedded metadata, supplemented here because
// geopack has no sidecar metadata blob to read it from (spec.md §9's
// "Non-goals" excludes a metadata/CRS registry but not a basic summary).
type FileInfo struct {
	FeatureCount uint64
	PageCount    uint64
	IsCompressed bool
	Bounds       Bounds
	HasBounds    bool
}

// Info returns a FileInfo for the file, reading the root index node (if
// any) to obtain the overall bounds.
func (rd *Reader) Info() (FileInfo, error) {
	if err := rd.checkOpen(); err != nil {
		return FileInfo{}, err
	}
	info := FileInfo{
		FeatureCount: rd.header.FeatureCount,
		PageCount:    rd.header.PageCount,
		IsCompressed: rd.header.IsCompressed,
	}
	if rd.header.FeatureCount == 0 {
		return info, nil
	}
	if _, err := rd.src.Seek(rd.indexOffset, io.SeekStart); err != nil {
		return FileInfo{}, wrapErr("failed to seek index", err)
	}
	buf := make([]byte, rtree.NodeSize)
	if _, err := io.ReadFull(rd.src, buf); err != nil {
		return FileInfo{}, wrapErr("failed to read root index node", err)
	}
	root := rtree.DecodeNode(buf)
	info.Bounds = root.Bounds
	info.HasBounds = true
	return info, nil
}

// FeatureIter yields features in the on-disk (Hilbert) order. Like the
// teacher's record readers, a FeatureIter is forward-only: it fast-
// forwards through pages as Next is called and never rewinds (spec.md
// §5 "Blocking, single-threaded, forward-only iteration").
type FeatureIter struct {
	rd   *Reader
	locs []FeatureLocation
	next int

	curPageStart uint64
	curPage      page
	havePage     bool
}

// SelectAll returns an iterator over every feature in the file, in
// on-disk order.
func (rd *Reader) SelectAll() (*FeatureIter, error) {
	if err := rd.checkOpen(); err != nil {
		return nil, err
	}
	locs := make([]FeatureLocation, rd.header.FeatureCount)
	if rd.header.FeatureCount > 0 {
		if _, err := rd.src.Seek(rd.indexOffset, io.SeekStart); err != nil {
			return nil, wrapErr("failed to seek index", err)
		}
		tree, err := rtree.Unmarshal(rd.src, rd.header.FeatureCount)
		if err != nil {
			return nil, wrapErr("failed to read index", err)
		}
		locs, err = rtree.Search(tree, tree.Bounds())
		if err != nil {
			return nil, err
		}
		orderFeatureLocations(locs)
	}
	return &FeatureIter{rd: rd, locs: locs}, nil
}

// SelectBbox returns an iterator over the features whose bounds
// intersect query, descending the packed R-tree to avoid reading pages
// that cannot contain a match (spec.md §4.1). SelectBbox rejects a
// query rectangle that crosses the antimeridian (spec.md §9's Open
// Question, resolved in DESIGN.md: rejected rather than silently
// corner-sorted).
func (rd *Reader) SelectBbox(query Bounds) (*FeatureIter, error) {
	if err := rd.checkOpen(); err != nil {
		return nil, err
	}
	if query.Min.Lng > query.Max.Lng {
		return nil, ErrAntimeridian
	}
	if rd.header.FeatureCount == 0 {
		return &FeatureIter{rd: rd}, nil
	}
	if _, err := rd.src.Seek(rd.indexOffset, io.SeekStart); err != nil {
		return nil, wrapErr("failed to seek index", err)
	}
	locs, err := rtree.SeekLocal(rd.src, rd.header.FeatureCount, query)
	if err != nil {
		return nil, err
	}
	orderFeatureLocations(locs)
	return &FeatureIter{rd: rd, locs: locs}, nil
}

// orderFeatureLocations sorts by (PageStartingOffset, FeatureOffset) so
// a FeatureIter only ever seeks forward, matching the forward-only
// iteration invariant (spec.md §5).
func orderFeatureLocations(locs []FeatureLocation) {
	sort.Slice(locs, func(i, j int) bool {
		if locs[i].PageStartingOffset != locs[j].PageStartingOffset {
			return locs[i].PageStartingOffset < locs[j].PageStartingOffset
		}
		return locs[i].FeatureOffset < locs[j].FeatureOffset
	})
}

// Next returns the next feature, or io.EOF once the iterator is
// exhausted.
func (it *FeatureIter) Next() (Feature, error) {
	if it.next >= len(it.locs) {
		return Feature{}, io.EOF
	}
	loc := it.locs[it.next]
	it.next++

	if !it.havePage || loc.PageStartingOffset != it.curPageStart {
		if it.havePage && loc.PageStartingOffset < it.curPageStart {
			fmtPanic("feature iteration attempted to rewind from page %d to page %d", it.curPageStart, loc.PageStartingOffset)
		}
		p, err := it.rd.readPageAt(loc.PageStartingOffset)
		if err != nil {
			return Feature{}, err
		}
		it.curPage = p
		it.curPageStart = loc.PageStartingOffset
		it.havePage = true
	}
	return it.curPage.featureAt(loc.FeatureOffset)
}

// readPageAt reads and decodes the page whose payload begins
// pageStartingOffset bytes into the feature region.
func (rd *Reader) readPageAt(pageStartingOffset uint64) (page, error) {
	if _, err := rd.src.Seek(rd.featuresBase+int64(pageStartingOffset), io.SeekStart); err != nil {
		return page{}, wrapErr("failed to seek page", err)
	}
	return decodePage(rd.src, rd.header.IsCompressed)
}

// Close releases the Reader's resources. The underlying source is only
// closed if it implements io.Closer.
func (rd *Reader) Close() error {
	return rd.close(rd.src)
}
