// Copyright 2024 The geopack Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rtree

import (
	"fmt"
	"math"

	"github.com/tidemark/geopack/internal/wire"
)

// Bounds is an axis-aligned rectangle over scaled coordinates: four
// signed 32-bit integers (min/max of each axis), serializing to exactly
// 16 bytes (spec.md §3).
type Bounds struct {
	Min Coord
	Max Coord
}

// BoundsSize is the on-disk size, in bytes, of a Bounds value.
const BoundsSize = 16

// EmptyBounds is the identity element for Extend: any extend operation
// against it yields exactly the extended value (spec.md §3: "(MAX,MAX)-
// (MIN,MIN) so any extend operation yields the point bounds").
var EmptyBounds = Bounds{
	Min: Coord{Lng: math.MaxInt32, Lat: math.MaxInt32},
	Max: Coord{Lng: math.MinInt32, Lat: math.MinInt32},
}

// FullBounds covers every representable Coord; querying with it matches
// every node in a tree, used by a "select everything" query that still
// wants to go through the same tree-guided descent as a bounded one
// (e.g. HTTPReader.SelectAll, which has no cheaper way to learn the
// root bounds before it has fetched anything).
var FullBounds = Bounds{
	Min: Coord{Lng: math.MinInt32, Lat: math.MinInt32},
	Max: Coord{Lng: math.MaxInt32, Lat: math.MaxInt32},
}

func (b Bounds) String() string {
	return fmt.Sprintf("RECT(%d %d,%d %d)", b.Min.Lng, b.Min.Lat, b.Max.Lng, b.Max.Lat)
}

// FromCorners builds Bounds from two arbitrary corners, normalizing so
// Min holds the smaller coordinate on each axis.
func FromCorners(a, b Coord) Bounds {
	r := Bounds{Min: a, Max: a}
	r.ExtendPoint(b)
	return r
}

// unscaledLngWidth returns max.Lng - min.Lng computed in 64-bit arithmetic
// to avoid int32 overflow (spec.md §3).
func (b Bounds) unscaledLngWidth() int64 {
	return int64(b.Max.Lng) - int64(b.Min.Lng)
}

func (b Bounds) unscaledLatHeight() int64 {
	return int64(b.Max.Lat) - int64(b.Min.Lat)
}

// Width returns max.Lng - min.Lng in 64-bit arithmetic.
func (b Bounds) Width() int64 { return b.unscaledLngWidth() }

// Height returns max.Lat - min.Lat in 64-bit arithmetic.
func (b Bounds) Height() int64 { return b.unscaledLatHeight() }

// Extend grows b (in place) to also cover other.
func (b *Bounds) Extend(other Bounds) {
	b.ExtendPoint(other.Min)
	b.ExtendPoint(other.Max)
}

// ExtendPoint grows b (in place) to also cover p.
func (b *Bounds) ExtendPoint(p Coord) {
	if p.Lng < b.Min.Lng {
		b.Min.Lng = p.Lng
	}
	if p.Lat < b.Min.Lat {
		b.Min.Lat = p.Lat
	}
	if p.Lng > b.Max.Lng {
		b.Max.Lng = p.Lng
	}
	if p.Lat > b.Max.Lat {
		b.Max.Lat = p.Lat
	}
}

// Center returns the center point of b, using integer division of
// width/height by two (spec.md §3: "used only for Hilbert sorting").
func (b Bounds) Center() Coord {
	halfLng := int32(b.unscaledLngWidth() / 2)
	halfLat := int32(b.unscaledLatHeight() / 2)
	return Coord{
		Lng: b.Min.Lng + halfLng,
		Lat: b.Min.Lat + halfLat,
	}
}

// Intersects reports whether b and other share at least one point.
// Two rectangles intersect iff neither is strictly left/right/above/below
// the other (spec.md §3).
func (b Bounds) Intersects(other Bounds) bool {
	if b.Max.Lng < other.Min.Lng || b.Min.Lng > other.Max.Lng {
		return false
	}
	if b.Max.Lat < other.Min.Lat || b.Min.Lat > other.Max.Lat {
		return false
	}
	return true
}

// Encode writes b to buf, which must be at least BoundsSize bytes.
func (b Bounds) Encode(buf []byte) {
	wire.PutInt32(buf[0:4], b.Min.Lng)
	wire.PutInt32(buf[4:8], b.Min.Lat)
	wire.PutInt32(buf[8:12], b.Max.Lng)
	wire.PutInt32(buf[12:16], b.Max.Lat)
}

// DecodeBounds reads a Bounds from buf, which must be at least
// BoundsSize bytes.
func DecodeBounds(buf []byte) Bounds {
	return Bounds{
		Min: Coord{Lng: wire.GetInt32(buf[0:4]), Lat: wire.GetInt32(buf[4:8])},
		Max: Coord{Lng: wire.GetInt32(buf[8:12]), Lat: wire.GetInt32(buf[12:16])},
	}
}
