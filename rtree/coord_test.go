// Copyright 2024 The geopack Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromDegrees(t *testing.T) {
	// -118.2562, 34.1060 is the fixture from the original implementation's
	// coordinate round-trip test (LngLat::degrees), confirming truncation
	// toward zero at the 10^-7 degree scale (spec.md §3).
	c := FromDegrees(-118.2562, 34.1060)
	assert.Equal(t, int32(-1182562000), c.Lng)
	assert.Equal(t, int32(341060000), c.Lat)
}

func TestCoord_Degrees_RoundTrip(t *testing.T) {
	c := FromDegrees(12.3456789, -76.5432101)
	lng, lat := c.Degrees()
	assert.InDelta(t, 12.3456789, lng, 1e-7)
	assert.InDelta(t, -76.5432101, lat, 1e-7)
}

func TestFromDegrees_TruncatesTowardZero(t *testing.T) {
	positive := FromDegrees(1.99999999, 0)
	negative := FromDegrees(-1.99999999, 0)
	assert.Equal(t, int32(19999999), positive.Lng)
	assert.Equal(t, int32(-19999999), negative.Lng)
}
