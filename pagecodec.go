// Copyright 2024 The geopack Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package geopack

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/zstd"

	"github.com/tidemark/geopack/internal/wire"
)

// page is a decoded page: the features it holds, still as their encoded
// record bytes (an 8-byte length plus the marshaled feature, the same
// layout WriteFeatureRecord produces), concatenated in on-disk order.
// Keeping records encoded rather than decoding every feature up front
// lets a reader skip straight to the FeatureOffset a tree leaf names
// (spec.md §3's FeatureLocation.feature_offset).
type page struct {
	records []byte
	count   uint32
}

// encodePage serializes records (the concatenated, already-length-
// prefixed feature records of one page) into a PageHeader plus payload,
// compressing the payload with zstd when compressed is true (spec.md
// §4.2, §6). zstd is the corpus's page-compression library of choice
// (other_examples/manifests/protomaps-go-pmtiles uses it for the same
// "compress an opaque tile/page of bytes" role); geopack uses it the
// same way, one independent frame per page.
func encodePage(w io.Writer, records []byte, count uint32, compressed bool) error {
	payload := records
	if compressed {
		var buf bytes.Buffer
		enc, err := zstd.NewWriter(&buf)
		if err != nil {
			return wrapErr("failed to open zstd encoder", err)
		}
		if _, err := enc.Write(records); err != nil {
			enc.Close()
			return wrapErr("failed to compress page", err)
		}
		if err := enc.Close(); err != nil {
			return wrapErr("failed to finish page compression", err)
		}
		payload = buf.Bytes()
	}
	hdr := PageHeader{
		EncodedPageLength: uint32(len(payload)),
		DecodedPageLength: uint32(len(records)),
		FeatureCount:      count,
	}
	if err := hdr.Encode(w); err != nil {
		return err
	}
	_, err := w.Write(payload)
	return err
}

// decodePage reads one page from r: its header, then EncodedPageLength
// bytes of payload, decompressing with zstd if the file header says the
// body is compressed.
func decodePage(r io.Reader, compressed bool) (page, error) {
	hdr, err := DecodePageHeader(r)
	if err != nil {
		return page{}, err
	}
	encoded := make([]byte, hdr.EncodedPageLength)
	if hdr.EncodedPageLength > 0 {
		if _, err := io.ReadFull(r, encoded); err != nil {
			return page{}, wrapErr("failed to read page body", err)
		}
	}
	if !compressed {
		return page{records: encoded, count: hdr.FeatureCount}, nil
	}
	dec, err := zstd.NewReader(bytes.NewReader(encoded))
	if err != nil {
		return page{}, wrapErr("failed to open zstd decoder", err)
	}
	defer dec.Close()
	records := make([]byte, hdr.DecodedPageLength)
	if hdr.DecodedPageLength > 0 {
		if _, err := io.ReadFull(dec, records); err != nil {
			return page{}, wrapErr("failed to decompress page", err)
		}
	}
	return page{records: records, count: hdr.FeatureCount}, nil
}

// featureAt decodes the feature record starting at byteOffset within the
// page's decoded record bytes (the FeatureLocation.FeatureOffset a tree
// leaf names).
func (p page) featureAt(byteOffset uint32) (Feature, error) {
	if byteOffset > uint32(len(p.records)) {
		return Feature{}, fmtErr("feature offset %d beyond page of %d bytes", byteOffset, len(p.records))
	}
	return ReadFeatureRecord(bytes.NewReader(p.records[byteOffset:]))
}

// pageBuilder accumulates feature records for the page currently being
// written, tracking the uncompressed size so the Writer can apply the
// rollover policy (spec.md §4.2: a feature is always added to the
// current page first, and the page closes only once that addition
// makes its uncompressed size strictly exceed the page size goal, so
// the feature that crosses the threshold stays in the page it crossed
// it in).
type pageBuilder struct {
	buf   bytes.Buffer
	count uint32
}

func (pb *pageBuilder) len() int { return pb.buf.Len() }

// addRawRecord appends a feature's already-marshaled body to the page,
// prefixed with its own 8-byte length, the same record layout
// WriteFeatureRecord produces (spec.md §4.4).
func (pb *pageBuilder) addRawRecord(body []byte) error {
	w := wire.NewWriter(&pb.buf)
	if err := w.WriteLen(uint64(len(body))); err != nil {
		return err
	}
	if _, err := pb.buf.Write(body); err != nil {
		return err
	}
	pb.count++
	return nil
}

// encodeSentinelPage writes the single (0,0,0) page an empty file gets
// in place of features and an index (spec.md §6).
func encodeSentinelPage(w io.Writer) error {
	return sentinelPageHeader.Encode(w)
}
