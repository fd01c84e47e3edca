// Copyright 2024 The geopack Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package geopack

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeaderSize(t *testing.T) {
	assert.Equal(t, 17, HeaderSize)
}

func TestPageHeaderSize(t *testing.T) {
	assert.Equal(t, 12, PageHeaderSize)
}

// TestHeader_Encode_KnownBytes pins the encoding to the exact byte
// sequence the original implementation produces for the same header
// values (spec.md §6).
func TestHeader_Encode_KnownBytes(t *testing.T) {
	h := Header{IsCompressed: false, PageCount: 1, FeatureCount: 3}

	var buf bytes.Buffer
	require.NoError(t, h.Encode(&buf))

	want := []byte{
		0x00,
		0x01, 0, 0, 0, 0, 0, 0, 0,
		0x03, 0, 0, 0, 0, 0, 0, 0,
	}
	assert.Equal(t, want, buf.Bytes())
}

func TestHeader_EncodeDecode_RoundTrip(t *testing.T) {
	h := Header{IsCompressed: true, PageCount: 42, FeatureCount: 123456789}

	var buf bytes.Buffer
	require.NoError(t, h.Encode(&buf))

	got, err := DecodeHeader(&buf)
	require.NoError(t, err)
	assert.Equal(t, h, got)
}

func TestPageHeader_EncodeDecode_RoundTrip(t *testing.T) {
	h := PageHeader{EncodedPageLength: 100, DecodedPageLength: 200, FeatureCount: 7}

	var buf bytes.Buffer
	require.NoError(t, h.Encode(&buf))

	got, err := DecodePageHeader(&buf)
	require.NoError(t, err)
	assert.Equal(t, h, got)
}

func TestSentinelPageHeader_IsZero(t *testing.T) {
	assert.Equal(t, PageHeader{}, sentinelPageHeader)
}
