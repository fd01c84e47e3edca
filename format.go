// Copyright 2024 The geopack Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package geopack

import (
	"io"

	"github.com/tidemark/geopack/internal/wire"
	"github.com/tidemark/geopack/rtree"
)

// FeatureLocation addresses a feature within the paged feature region
// (spec.md §3); see rtree.FeatureLocation.
type FeatureLocation = rtree.FeatureLocation

// HeaderSize is the fixed on-disk size, in bytes, of a Header (spec.md
// §3, §8 property 6).
const HeaderSize = 1 + wire.SizeInt64 + wire.SizeInt64

// Header is the file's 17-byte fixed-layout preamble (spec.md §3): a
// compression flag, the page count, and the feature count. It is the
// only record whose layout is memorized by file offset.
type Header struct {
	IsCompressed bool
	PageCount    uint64
	FeatureCount uint64
}

// Encode writes h to w in the fixed 17-byte layout: compression_flag(1)
// || page_count_u64_le(8) || feature_count_u64_le(8) (spec.md §6).
func (h Header) Encode(w io.Writer) error {
	ww := wire.NewWriter(w)
	if err := ww.WriteBool(h.IsCompressed); err != nil {
		return err
	}
	if err := ww.WriteUint64(h.PageCount); err != nil {
		return err
	}
	return ww.WriteUint64(h.FeatureCount)
}

// DecodeHeader reads a Header from r.
func DecodeHeader(r io.Reader) (Header, error) {
	rr := wire.NewReader(r)
	compressed, err := rr.ReadBool()
	if err != nil {
		return Header{}, err
	}
	pageCount, err := rr.ReadUint64()
	if err != nil {
		return Header{}, err
	}
	featureCount, err := rr.ReadUint64()
	if err != nil {
		return Header{}, err
	}
	return Header{IsCompressed: compressed, PageCount: pageCount, FeatureCount: featureCount}, nil
}

// PageHeaderSize is the fixed on-disk size, in bytes, of a PageHeader
// (spec.md §3, §8 property 6).
const PageHeaderSize = wire.SizeInt32 * 3

// PageHeader describes one page: its encoded (possibly compressed) and
// decoded byte lengths, and how many features it holds (spec.md §3). A
// page is a self-describing unit whose physical size is PageHeaderSize
// plus EncodedPageLength bytes.
type PageHeader struct {
	EncodedPageLength uint32
	DecodedPageLength uint32
	FeatureCount      uint32
}

// Encode writes h to w in its fixed 12-byte layout.
func (h PageHeader) Encode(w io.Writer) error {
	ww := wire.NewWriter(w)
	if err := ww.WriteUint32(h.EncodedPageLength); err != nil {
		return err
	}
	if err := ww.WriteUint32(h.DecodedPageLength); err != nil {
		return err
	}
	return ww.WriteUint32(h.FeatureCount)
}

// DecodePageHeader reads a PageHeader from r.
func DecodePageHeader(r io.Reader) (PageHeader, error) {
	rr := wire.NewReader(r)
	encLen, err := rr.ReadUint32()
	if err != nil {
		return PageHeader{}, err
	}
	decLen, err := rr.ReadUint32()
	if err != nil {
		return PageHeader{}, err
	}
	count, err := rr.ReadUint32()
	if err != nil {
		return PageHeader{}, err
	}
	return PageHeader{EncodedPageLength: encLen, DecodedPageLength: decLen, FeatureCount: count}, nil
}

// sentinelPageHeader is the page header an empty file gets: a single page
// with no content (spec.md §6: "An empty file (feature_count = 0) has no
// index and exactly one sentinel page with header (0,0,0)").
var sentinelPageHeader = PageHeader{}

// DefaultPageSizeGoal is the Writer's default page rollover threshold, in
// bytes of uncompressed feature content (spec.md §4.2, §6).
const DefaultPageSizeGoal = 1024 * 64

// DefaultHTTPOverfetchBytes is the HTTP reader's default per-request
// over-fetch, in bytes, beyond a requested page (spec.md §4.2, §6).
const DefaultHTTPOverfetchBytes = 512_000
