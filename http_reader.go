// Copyright 2024 The geopack Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package geopack

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/tidemark/geopack/rtree"
)

// HTTPReader reads a geopack file over HTTP range requests, without
// downloading the whole file: it fetches just the header, then the
// index ranges its query touches (merging adjacent ranges per spec.md
// §4.1), then just the pages those index leaves name. Go has no
// built-in cooperative async runtime the way the original reader's host
// language does; net/http's blocking client plus an ordinary goroutine
// per concurrent caller is this format's idiomatic equivalent (spec.md
// §5, and see DESIGN.md's Open Question log).
type HTTPReader struct {
	client       *http.Client
	url          string
	header       Header
	indexOffset  int64
	featuresBase int64
	overfetch    int64
}

// Open fetches just enough of the resource at url to read its header,
// returning an HTTPReader ready to serve queries.
func Open(ctx context.Context, url string) (*HTTPReader, error) {
	return OpenWithClient(ctx, http.DefaultClient, url)
}

// OpenWithClient is Open with a caller-supplied *http.Client, for tests
// and for callers that need custom transports, timeouts, or retry
// behavior.
func OpenWithClient(ctx context.Context, client *http.Client, url string) (*HTTPReader, error) {
	hr := &HTTPReader{client: client, url: url, overfetch: DefaultHTTPOverfetchBytes}
	buf, err := hr.fetchRange(ctx, 0, HeaderSize)
	if err != nil {
		return nil, wrapErr("failed to fetch header", err)
	}
	hdr, err := DecodeHeader(bytes.NewReader(buf))
	if err != nil {
		return nil, wrapErr("failed to decode header", err)
	}
	hr.header = hdr
	hr.indexOffset = int64(HeaderSize)
	hr.featuresBase = hr.indexOffset + int64(rtree.IndexSize(hdr.FeatureCount))
	return hr, nil
}

// Header returns the file's header.
func (hr *HTTPReader) Header() Header { return hr.header }

// fetchRange issues a single HTTP Range request for the half-open byte
// range [start, end), returning at least that many bytes (more, if the
// server or our over-fetch policy returns extra).
func (hr *HTTPReader) fetchRange(ctx context.Context, start, end int64) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, hr.url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Range", fmt.Sprintf("bytes=%d-%d", start, end-1))

	resp, err := hr.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusPartialContent && resp.StatusCode != http.StatusOK {
		return nil, fmtErr("unexpected HTTP status %d fetching range [%d,%d)", resp.StatusCode, start, end)
	}
	return io.ReadAll(resp.Body)
}

// FeatureStream yields features a query matched, fetching their pages
// over HTTP as Next is called. Like the local FeatureIter, it is
// forward-only.
type FeatureStream struct {
	hr   *HTTPReader
	ctx  context.Context
	locs []FeatureLocation
	next int

	curPageStart uint64
	curPage      page
	havePage     bool
}

// SelectAll returns a stream over every feature in the file.
func (hr *HTTPReader) SelectAll(ctx context.Context) (*FeatureStream, error) {
	if hr.header.FeatureCount == 0 {
		return &FeatureStream{hr: hr, ctx: ctx}, nil
	}
	fetch := hr.rangeFetcher(ctx)
	locs, err := rtree.SeekHTTP(fetch, hr.header.FeatureCount, rtree.FullBounds)
	if err != nil {
		return nil, err
	}
	orderFeatureLocations(locs)
	return &FeatureStream{hr: hr, ctx: ctx, locs: locs}, nil
}

// SelectBbox returns a stream over the features whose bounds intersect
// query. SelectBbox rejects a query rectangle that crosses the
// antimeridian (spec.md §9, resolved in DESIGN.md).
func (hr *HTTPReader) SelectBbox(ctx context.Context, query Bounds) (*FeatureStream, error) {
	if query.Min.Lng > query.Max.Lng {
		return nil, ErrAntimeridian
	}
	if hr.header.FeatureCount == 0 {
		return &FeatureStream{hr: hr, ctx: ctx}, nil
	}
	fetch := hr.rangeFetcher(ctx)
	locs, err := rtree.SeekHTTP(fetch, hr.header.FeatureCount, query)
	if err != nil {
		return nil, err
	}
	orderFeatureLocations(locs)
	return &FeatureStream{hr: hr, ctx: ctx, locs: locs}, nil
}

// rangeFetcher adapts fetchRange to rtree.RangeFetcher, over-fetching
// by hr.overfetch bytes beyond the requested index range the way a real
// HTTP client amortizes small range requests (spec.md §4.2, §6).
func (hr *HTTPReader) rangeFetcher(ctx context.Context) rtree.RangeFetcher {
	return func(startByte, endByte uint64) ([]byte, error) {
		fetchEnd := endByte + uint64(hr.overfetch)
		return hr.fetchRange(ctx, hr.indexOffset+int64(startByte), hr.indexOffset+int64(fetchEnd))
	}
}

// Next returns the next feature, or io.EOF once the stream is
// exhausted.
func (fs *FeatureStream) Next() (Feature, error) {
	if fs.next >= len(fs.locs) {
		return Feature{}, io.EOF
	}
	loc := fs.locs[fs.next]
	fs.next++

	if !fs.havePage || loc.PageStartingOffset != fs.curPageStart {
		if fs.havePage && loc.PageStartingOffset < fs.curPageStart {
			fmtPanic("feature streaming attempted to rewind from page %d to page %d", fs.curPageStart, loc.PageStartingOffset)
		}
		p, err := fs.hr.fetchPageAt(fs.ctx, loc.PageStartingOffset)
		if err != nil {
			return Feature{}, err
		}
		fs.curPage = p
		fs.curPageStart = loc.PageStartingOffset
		fs.havePage = true
	}
	return fs.curPage.featureAt(loc.FeatureOffset)
}

// fetchPageAt fetches and decodes the page starting pageStartingOffset
// bytes into the feature region. The page header is fetched first to
// learn its exact encoded length, then the payload is fetched in one
// additional request of exactly EncodedPageLength bytes. No over-fetch
// is applied to page requests, and no fetched bytes are kept for later
// pages.
func (hr *HTTPReader) fetchPageAt(ctx context.Context, pageStartingOffset uint64) (page, error) {
	base := hr.featuresBase + int64(pageStartingOffset)
	hdrBuf, err := hr.fetchRange(ctx, base, base+PageHeaderSize)
	if err != nil {
		return page{}, wrapErr("failed to fetch page header", err)
	}
	hdr, err := DecodePageHeader(bytes.NewReader(hdrBuf))
	if err != nil {
		return page{}, wrapErr("failed to decode page header", err)
	}
	bodyBuf, err := hr.fetchRange(ctx, base+PageHeaderSize, base+PageHeaderSize+int64(hdr.EncodedPageLength))
	if err != nil {
		return page{}, wrapErr("failed to fetch page body", err)
	}
	full := append(append([]byte(nil), hdrBuf...), bodyBuf...)
	return decodePage(bytes.NewReader(full), hr.header.IsCompressed)
}
