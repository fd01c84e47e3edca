// Copyright 2024 The geopack Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rtree

// scaleFactor is the fixed conversion factor between degrees and the
// scaled integer units a Coord stores internally (spec.md §3: "units of
// 10⁻⁷ degrees (precision ~1 cm)").
const scaleFactor = 1e7

// Coord is a longitude/latitude pair stored as two signed 32-bit integers
// in units of 10⁻⁷ degrees. This is the fixed on-disk representation used
// everywhere coordinates appear: in geometries, in node rectangles, and in
// Hilbert sorting.
type Coord struct {
	Lng int32
	Lat int32
}

// FromDegrees builds a Coord from a longitude/latitude pair in degrees.
// The conversion truncates toward zero, matching the source format's
// conversion rule (spec.md §3: "degree→scaled truncates toward zero").
func FromDegrees(lng, lat float64) Coord {
	return Coord{
		Lng: int32(lng * scaleFactor),
		Lat: int32(lat * scaleFactor),
	}
}

// Degrees returns the longitude/latitude pair in degrees.
func (c Coord) Degrees() (lng, lat float64) {
	return float64(c.Lng) / scaleFactor, float64(c.Lat) / scaleFactor
}

// LngDegrees returns the longitude in degrees.
func (c Coord) LngDegrees() float64 { return float64(c.Lng) / scaleFactor }

// LatDegrees returns the latitude in degrees.
func (c Coord) LatDegrees() float64 { return float64(c.Lat) / scaleFactor }
