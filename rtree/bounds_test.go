// Copyright 2024 The geopack Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBounds_String(t *testing.T) {
	b := Bounds{Min: Coord{Lng: -10, Lat: -20}, Max: Coord{Lng: 30, Lat: 40}}
	assert.Equal(t, "RECT(-10 -20,30 40)", b.String())
}

func TestBounds_ExtendFromEmpty(t *testing.T) {
	b := EmptyBounds
	p := Coord{Lng: 5, Lat: -5}
	b.ExtendPoint(p)
	assert.Equal(t, Bounds{Min: p, Max: p}, b)
}

func TestBounds_Center(t *testing.T) {
	b := rect(0, 0, 3, 3)
	assert.Equal(t, rect(1.5, 1.5, 1.5, 1.5).Min, b.Center())
}

func TestBounds_Intersects(t *testing.T) {
	a := rect(0, 0, 10, 10)
	testCases := []struct {
		name string
		b    Bounds
		want bool
	}{
		{"Overlapping", rect(5, 5, 15, 15), true},
		{"Touching", rect(10, 10, 20, 20), true},
		{"Disjoint", rect(11, 11, 20, 20), false},
		{"Contained", rect(2, 2, 3, 3), true},
		{"Containing", rect(-5, -5, 15, 15), true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, a.Intersects(tc.b))
			assert.Equal(t, tc.want, tc.b.Intersects(a), "Intersects must be symmetric")
		})
	}
}

func TestBounds_EncodeDecode_RoundTrip(t *testing.T) {
	b := rect(-170, -80, 170, 80)
	buf := make([]byte, BoundsSize)
	b.Encode(buf)
	assert.Equal(t, b, DecodeBounds(buf))
}

func TestBounds_FromCorners_Normalizes(t *testing.T) {
	a := FromDegrees(10, -10)
	b := FromDegrees(-10, 10)
	got := FromCorners(a, b)
	assert.Equal(t, FromDegrees(-10, -10), got.Min)
	assert.Equal(t, FromDegrees(10, 10), got.Max)
}
