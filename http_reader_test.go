// Copyright 2024 The geopack Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package geopack

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// serveGeopack starts an httptest server that serves buf as a single
// resource, honoring Range requests via http.ServeContent the way any
// static file host fronting a geopack file would.
func serveGeopack(t *testing.T, buf []byte) *httptest.Server {
	t.Helper()
	modTime := time.Unix(0, 0)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.ServeContent(w, r, "data.geopack", modTime, bytes.NewReader(buf))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func collectStream(t *testing.T, fs *FeatureStream) []Feature {
	t.Helper()
	var got []Feature
	for {
		f, err := fs.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		got = append(got, f)
	}
	return got
}

func TestHTTPReader_SelectAll_MatchesLocalOrder(t *testing.T) {
	buf := fourPointsWriter(t, false, 0)
	srv := serveGeopack(t, buf.Bytes())

	ctx := context.Background()
	hr, err := Open(ctx, srv.URL)
	require.NoError(t, err)
	assert.Equal(t, uint64(4), hr.Header().FeatureCount)

	stream, err := hr.SelectAll(ctx)
	require.NoError(t, err)
	got := collectStream(t, stream)
	require.Len(t, got, 4)
	want := [][2]float64{{3, 3}, {2, 2}, {1, 1}, {0, 0}}
	for i, xy := range want {
		assert.Equal(t, point(xy[0], xy[1]), got[i].Geometry.Point, "feature %d", i)
	}
}

func TestHTTPReader_SelectBbox_MatchesLocalReader(t *testing.T) {
	buf := fourPointsWriter(t, false, 0)
	srv := serveGeopack(t, buf.Bytes())

	ctx := context.Background()
	hr, err := Open(ctx, srv.URL)
	require.NoError(t, err)

	query := rectFor(1, 1, 2, 2)
	stream, err := hr.SelectBbox(ctx, query)
	require.NoError(t, err)
	got := collectStream(t, stream)
	require.Len(t, got, 2)
	assert.Equal(t, point(2, 2), got[0].Geometry.Point)
	assert.Equal(t, point(1, 1), got[1].Geometry.Point)
}

func TestHTTPReader_SelectAll_EmptyFile(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf, false)
	require.NoError(t, err)
	require.NoError(t, w.Finish())

	srv := serveGeopack(t, buf.Bytes())
	ctx := context.Background()
	hr, err := Open(ctx, srv.URL)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), hr.Header().FeatureCount)

	stream, err := hr.SelectAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, collectStream(t, stream))
}

func TestHTTPReader_SelectBbox_RejectsAntimeridian(t *testing.T) {
	buf := fourPointsWriter(t, false, 0)
	srv := serveGeopack(t, buf.Bytes())

	ctx := context.Background()
	hr, err := Open(ctx, srv.URL)
	require.NoError(t, err)

	crossing := Bounds{Min: point(170, 0), Max: point(-170, 10)}
	_, err = hr.SelectBbox(ctx, crossing)
	assert.ErrorIs(t, err, ErrAntimeridian)
}

func TestHTTPReader_SelectAll_CompressedManyPages(t *testing.T) {
	buf := fourPointsWriter(t, true, 50)
	srv := serveGeopack(t, buf.Bytes())

	ctx := context.Background()
	hr, err := Open(ctx, srv.URL)
	require.NoError(t, err)
	assert.True(t, hr.Header().IsCompressed)
	assert.Greater(t, hr.Header().PageCount, uint64(1))

	stream, err := hr.SelectAll(ctx)
	require.NoError(t, err)
	got := collectStream(t, stream)
	assert.Len(t, got, 4)
}

func rectFor(minLng, minLat, maxLng, maxLat float64) Bounds {
	return Bounds{Min: point(minLng, minLat), Max: point(maxLng, maxLat)}
}
