// Copyright 2024 The geopack Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package geopack

import (
	"fmt"
	"strings"

	"github.com/tidemark/geopack/rtree"
)

// Coord is a scaled longitude/latitude pair; see rtree.Coord for the
// scaling rule (spec.md §3).
type Coord = rtree.Coord

// Bounds is an axis-aligned rectangle over scaled coordinates (spec.md
// §3); see rtree.Bounds.
type Bounds = rtree.Bounds

// GeometryKind tags which of the seven OGC geometry variants a Geometry
// holds. The sum type is closed (spec.md §9: "The Geometry sum type is
// closed (seven variants)"); implementations without native sum types
// wrap an integer tag plus a union payload — this is that tag.
type GeometryKind uint32

const (
	KindPoint GeometryKind = iota
	KindLineString
	KindPolygon
	KindMultiPoint
	KindMultiLineString
	KindMultiPolygon
	KindGeometryCollection
)

func (k GeometryKind) String() string {
	switch k {
	case KindPoint:
		return "Point"
	case KindLineString:
		return "LineString"
	case KindPolygon:
		return "Polygon"
	case KindMultiPoint:
		return "MultiPoint"
	case KindMultiLineString:
		return "MultiLineString"
	case KindMultiPolygon:
		return "MultiPolygon"
	case KindGeometryCollection:
		return "GeometryCollection"
	default:
		return fmt.Sprintf("GeometryKind(%d)", uint32(k))
	}
}

// Ring is an ordered sequence of coordinates forming one ring of a
// Polygon; the first ring in a Polygon is the exterior ring (spec.md §3).
type Ring []Coord

// Geometry is a tagged union over the seven OGC geometry kinds (spec.md
// §3). Exactly one of the fields matching Kind is meaningful; the rest
// are left as their zero value. A union type rather than one interface
// per variant was chosen (see DESIGN.md) to keep the fixed-width,
// randomly-addressable encoding concerns (spec.md §4.4) out of the data
// model itself.
type Geometry struct {
	Kind GeometryKind

	Point              Coord
	LineString         []Coord
	Polygon            []Ring
	MultiPoint         []Coord
	MultiLineString    []Ring
	MultiPolygon       [][]Ring
	GeometryCollection []Geometry
}

// NewPoint builds a Point geometry.
func NewPoint(c Coord) Geometry { return Geometry{Kind: KindPoint, Point: c} }

// NewLineString builds a LineString geometry.
func NewLineString(coords []Coord) Geometry {
	return Geometry{Kind: KindLineString, LineString: coords}
}

// NewPolygon builds a Polygon geometry; rings[0] is the exterior ring.
func NewPolygon(rings []Ring) Geometry {
	return Geometry{Kind: KindPolygon, Polygon: rings}
}

// NewMultiPoint builds a MultiPoint geometry.
func NewMultiPoint(coords []Coord) Geometry {
	return Geometry{Kind: KindMultiPoint, MultiPoint: coords}
}

// NewMultiLineString builds a MultiLineString geometry.
func NewMultiLineString(lines []Ring) Geometry {
	return Geometry{Kind: KindMultiLineString, MultiLineString: lines}
}

// NewMultiPolygon builds a MultiPolygon geometry.
func NewMultiPolygon(polygons [][]Ring) Geometry {
	return Geometry{Kind: KindMultiPolygon, MultiPolygon: polygons}
}

// NewGeometryCollection builds a GeometryCollection geometry. Recursion
// exists only through this variant; nesting depth is bounded only by the
// input (spec.md §9).
func NewGeometryCollection(geoms []Geometry) Geometry {
	return Geometry{Kind: KindGeometryCollection, GeometryCollection: geoms}
}

// Bounds returns the bounding rectangle of g, unioning recursively through
// GeometryCollection.
func (g Geometry) Bounds() Bounds {
	b := rtree.EmptyBounds
	g.extendBounds(&b)
	return b
}

func (g Geometry) extendBounds(b *Bounds) {
	switch g.Kind {
	case KindPoint:
		b.ExtendPoint(g.Point)
	case KindLineString:
		for _, c := range g.LineString {
			b.ExtendPoint(c)
		}
	case KindPolygon:
		for _, ring := range g.Polygon {
			for _, c := range ring {
				b.ExtendPoint(c)
			}
		}
	case KindMultiPoint:
		for _, c := range g.MultiPoint {
			b.ExtendPoint(c)
		}
	case KindMultiLineString:
		for _, ring := range g.MultiLineString {
			for _, c := range ring {
				b.ExtendPoint(c)
			}
		}
	case KindMultiPolygon:
		for _, poly := range g.MultiPolygon {
			for _, ring := range poly {
				for _, c := range ring {
					b.ExtendPoint(c)
				}
			}
		}
	case KindGeometryCollection:
		for _, child := range g.GeometryCollection {
			child.extendBounds(b)
		}
	default:
		fmtPanic("unknown geometry kind %d", g.Kind)
	}
}

// String renders g in a compact WKT-like form for debugging, matching the
// teacher's habit of giving domain types a readable String (see
// packedrtree/box.go's Box.String and the teacher's Feature.String).
func (g Geometry) String() string {
	var b strings.Builder
	g.writeWKT(&b)
	return b.String()
}

func (g Geometry) writeWKT(b *strings.Builder) {
	switch g.Kind {
	case KindPoint:
		lng, lat := g.Point.Degrees()
		fmt.Fprintf(b, "POINT(%g %g)", lng, lat)
	case KindLineString:
		b.WriteString("LINESTRING(")
		writeCoords(b, g.LineString)
		b.WriteByte(')')
	case KindPolygon:
		b.WriteString("POLYGON(")
		writeRings(b, g.Polygon)
		b.WriteByte(')')
	case KindMultiPoint:
		b.WriteString("MULTIPOINT(")
		writeCoords(b, g.MultiPoint)
		b.WriteByte(')')
	case KindMultiLineString:
		b.WriteString("MULTILINESTRING(")
		for i, ring := range g.MultiLineString {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteByte('(')
			writeCoords(b, ring)
			b.WriteByte(')')
		}
		b.WriteByte(')')
	case KindMultiPolygon:
		b.WriteString("MULTIPOLYGON(")
		for i, poly := range g.MultiPolygon {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteByte('(')
			writeRings(b, poly)
			b.WriteByte(')')
		}
		b.WriteByte(')')
	case KindGeometryCollection:
		b.WriteString("GEOMETRYCOLLECTION(")
		for i, child := range g.GeometryCollection {
			if i > 0 {
				b.WriteByte(',')
			}
			child.writeWKT(b)
		}
		b.WriteByte(')')
	}
}

func writeCoords(b *strings.Builder, coords []Coord) {
	for i, c := range coords {
		if i > 0 {
			b.WriteByte(',')
		}
		lng, lat := c.Degrees()
		fmt.Fprintf(b, "%g %g", lng, lat)
	}
}

func writeRings(b *strings.Builder, rings []Ring) {
	for i, ring := range rings {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('(')
		writeCoords(b, ring)
		b.WriteByte(')')
	}
}

// Feature is a geometry paired with an ordered property map, the unit of
// storage and query (GLOSSARY).
type Feature struct {
	Geometry   Geometry
	Properties Properties
}

// NewFeature builds a Feature with empty properties.
func NewFeature(g Geometry) Feature {
	return Feature{Geometry: g, Properties: NewProperties()}
}
