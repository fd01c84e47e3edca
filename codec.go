// Copyright 2024 The geopack Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package geopack

import (
	"bytes"
	"io"

	"github.com/tidemark/geopack/internal/wire"
)

// MarshalFeature encodes f using the fixed-width little-endian rules of
// spec.md §4.4: a 4-byte unsigned tag for the geometry's variant, 8-byte
// counts ahead of every variable-length collection, and no varints
// anywhere. The returned bytes are the feature's body only — callers
// that need the 8-byte length-prefixed record form (spec.md §3 "an
// 8-byte length word followed by that many bytes of serialized
// feature") should use WriteFeatureRecord.
func MarshalFeature(f Feature) ([]byte, error) {
	var buf bytes.Buffer
	w := wire.NewWriter(&buf)
	if err := encodeGeometry(w, f.Geometry); err != nil {
		return nil, err
	}
	if err := encodeProperties(w, f.Properties); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalFeature decodes a feature body previously produced by
// MarshalFeature.
func UnmarshalFeature(b []byte) (Feature, error) {
	r := wire.NewReader(bytes.NewReader(b))
	g, err := decodeGeometry(r)
	if err != nil {
		return Feature{}, wrapErr("failed to decode geometry", err)
	}
	p, err := decodeProperties(r)
	if err != nil {
		return Feature{}, wrapErr("failed to decode properties", err)
	}
	return Feature{Geometry: g, Properties: p}, nil
}

// WriteFeatureRecord writes f as an 8-byte length followed by its
// marshaled bytes, the unit that a page payload is a concatenation of
// (spec.md §3, §4.2).
func WriteFeatureRecord(w io.Writer, f Feature) (int, error) {
	body, err := MarshalFeature(f)
	if err != nil {
		return 0, err
	}
	ww := wire.NewWriter(w)
	if err := ww.WriteLen(uint64(len(body))); err != nil {
		return 0, err
	}
	n, err := w.Write(body)
	return n + wire.SizeLen, err
}

// ReadFeatureRecord reads one length-prefixed feature record from r.
func ReadFeatureRecord(r io.Reader) (Feature, error) {
	rr := wire.NewReader(r)
	n, err := rr.ReadLen()
	if err != nil {
		return Feature{}, err
	}
	body := make([]byte, n)
	if n > 0 {
		if _, err := io.ReadFull(r, body); err != nil {
			return Feature{}, err
		}
	}
	return UnmarshalFeature(body)
}

func encodeCoord(w *wire.Writer, c Coord) error {
	if err := w.WriteInt32(c.Lng); err != nil {
		return err
	}
	return w.WriteInt32(c.Lat)
}

func decodeCoord(r *wire.Reader) (Coord, error) {
	lng, err := r.ReadInt32()
	if err != nil {
		return Coord{}, err
	}
	lat, err := r.ReadInt32()
	if err != nil {
		return Coord{}, err
	}
	return Coord{Lng: lng, Lat: lat}, nil
}

func encodeCoords(w *wire.Writer, coords []Coord) error {
	if err := w.WriteLen(uint64(len(coords))); err != nil {
		return err
	}
	for _, c := range coords {
		if err := encodeCoord(w, c); err != nil {
			return err
		}
	}
	return nil
}

func decodeCoords(r *wire.Reader) ([]Coord, error) {
	n, err := r.ReadLen()
	if err != nil {
		return nil, err
	}
	coords := make([]Coord, n)
	for i := range coords {
		if coords[i], err = decodeCoord(r); err != nil {
			return nil, err
		}
	}
	return coords, nil
}

func encodeRings(w *wire.Writer, rings []Ring) error {
	if err := w.WriteLen(uint64(len(rings))); err != nil {
		return err
	}
	for _, ring := range rings {
		if err := encodeCoords(w, []Coord(ring)); err != nil {
			return err
		}
	}
	return nil
}

func decodeRings(r *wire.Reader) ([]Ring, error) {
	n, err := r.ReadLen()
	if err != nil {
		return nil, err
	}
	rings := make([]Ring, n)
	for i := range rings {
		coords, err := decodeCoords(r)
		if err != nil {
			return nil, err
		}
		rings[i] = Ring(coords)
	}
	return rings, nil
}

func encodeGeometry(w *wire.Writer, g Geometry) error {
	if err := w.WriteUint32(uint32(g.Kind)); err != nil {
		return err
	}
	switch g.Kind {
	case KindPoint:
		return encodeCoord(w, g.Point)
	case KindLineString:
		return encodeCoords(w, g.LineString)
	case KindPolygon:
		return encodeRings(w, g.Polygon)
	case KindMultiPoint:
		return encodeCoords(w, g.MultiPoint)
	case KindMultiLineString:
		return encodeRings(w, g.MultiLineString)
	case KindMultiPolygon:
		if err := w.WriteLen(uint64(len(g.MultiPolygon))); err != nil {
			return err
		}
		for _, poly := range g.MultiPolygon {
			if err := encodeRings(w, poly); err != nil {
				return err
			}
		}
		return nil
	case KindGeometryCollection:
		if err := w.WriteLen(uint64(len(g.GeometryCollection))); err != nil {
			return err
		}
		for _, child := range g.GeometryCollection {
			if err := encodeGeometry(w, child); err != nil {
				return err
			}
		}
		return nil
	default:
		fmtPanic("unknown geometry kind %d", g.Kind)
		return nil
	}
}

func decodeGeometry(r *wire.Reader) (Geometry, error) {
	tag, err := r.ReadUint32()
	if err != nil {
		return Geometry{}, err
	}
	kind := GeometryKind(tag)
	switch kind {
	case KindPoint:
		c, err := decodeCoord(r)
		return Geometry{Kind: kind, Point: c}, err
	case KindLineString:
		coords, err := decodeCoords(r)
		return Geometry{Kind: kind, LineString: coords}, err
	case KindPolygon:
		rings, err := decodeRings(r)
		return Geometry{Kind: kind, Polygon: rings}, err
	case KindMultiPoint:
		coords, err := decodeCoords(r)
		return Geometry{Kind: kind, MultiPoint: coords}, err
	case KindMultiLineString:
		rings, err := decodeRings(r)
		return Geometry{Kind: kind, MultiLineString: rings}, err
	case KindMultiPolygon:
		n, err := r.ReadLen()
		if err != nil {
			return Geometry{}, err
		}
		polys := make([][]Ring, n)
		for i := range polys {
			if polys[i], err = decodeRings(r); err != nil {
				return Geometry{}, err
			}
		}
		return Geometry{Kind: kind, MultiPolygon: polys}, nil
	case KindGeometryCollection:
		n, err := r.ReadLen()
		if err != nil {
			return Geometry{}, err
		}
		geoms := make([]Geometry, n)
		for i := range geoms {
			if geoms[i], err = decodeGeometry(r); err != nil {
				return Geometry{}, err
			}
		}
		return Geometry{Kind: kind, GeometryCollection: geoms}, nil
	default:
		return Geometry{}, fmtErr("decode: unknown geometry tag %d", tag)
	}
}

func encodeProperties(w *wire.Writer, p Properties) error {
	if err := w.WriteLen(uint64(p.Len())); err != nil {
		return err
	}
	for _, k := range p.keys {
		if err := w.WriteString(k); err != nil {
			return err
		}
		if err := encodePropertyValue(w, p.values[k]); err != nil {
			return err
		}
	}
	return nil
}

func decodeProperties(r *wire.Reader) (Properties, error) {
	n, err := r.ReadLen()
	if err != nil {
		return Properties{}, err
	}
	p := NewProperties()
	for i := uint64(0); i < n; i++ {
		key, err := r.ReadString()
		if err != nil {
			return Properties{}, err
		}
		val, err := decodePropertyValue(r)
		if err != nil {
			return Properties{}, err
		}
		p.Insert(key, val)
	}
	return p, nil
}

func encodePropertyValue(w *wire.Writer, v PropertyValue) error {
	if err := w.WriteUint32(uint32(v.Kind)); err != nil {
		return err
	}
	switch v.Kind {
	case KindBool:
		return w.WriteBool(v.Bool)
	case KindInt8:
		return w.WriteByte(byte(v.Int8))
	case KindUInt8:
		return w.WriteByte(v.UInt8)
	case KindInt16:
		return w.WriteInt16(v.Int16)
	case KindUInt16:
		return w.WriteUint16(v.UInt16)
	case KindInt32:
		return w.WriteInt32(v.Int32)
	case KindUInt32:
		return w.WriteUint32(v.UInt32)
	case KindInt64:
		return w.WriteInt64(v.Int64)
	case KindUInt64:
		return w.WriteUint64(v.UInt64)
	case KindFloat32:
		return w.WriteFloat32(v.Float32)
	case KindFloat64:
		return w.WriteFloat64(v.Float64)
	case KindBytes:
		return w.WriteBytes(v.Bytes)
	case KindString:
		return w.WriteString(v.String)
	case KindList:
		if err := w.WriteLen(uint64(len(v.List))); err != nil {
			return err
		}
		for _, e := range v.List {
			if err := encodePropertyValue(w, e); err != nil {
				return err
			}
		}
		return nil
	case KindMap:
		return encodeProperties(w, v.Map)
	default:
		fmtPanic("unknown property value kind %d", v.Kind)
		return nil
	}
}

func decodePropertyValue(r *wire.Reader) (PropertyValue, error) {
	tag, err := r.ReadUint32()
	if err != nil {
		return PropertyValue{}, err
	}
	kind := PropertyValueKind(tag)
	switch kind {
	case KindBool:
		b, err := r.ReadBool()
		return PropertyValue{Kind: kind, Bool: b}, err
	case KindInt8:
		b, err := r.ReadByte()
		return PropertyValue{Kind: kind, Int8: int8(b)}, err
	case KindUInt8:
		b, err := r.ReadByte()
		return PropertyValue{Kind: kind, UInt8: b}, err
	case KindInt16:
		v, err := r.ReadInt16()
		return PropertyValue{Kind: kind, Int16: v}, err
	case KindUInt16:
		v, err := r.ReadUint16()
		return PropertyValue{Kind: kind, UInt16: v}, err
	case KindInt32:
		v, err := r.ReadInt32()
		return PropertyValue{Kind: kind, Int32: v}, err
	case KindUInt32:
		v, err := r.ReadUint32()
		return PropertyValue{Kind: kind, UInt32: v}, err
	case KindInt64:
		v, err := r.ReadInt64()
		return PropertyValue{Kind: kind, Int64: v}, err
	case KindUInt64:
		v, err := r.ReadUint64()
		return PropertyValue{Kind: kind, UInt64: v}, err
	case KindFloat32:
		v, err := r.ReadFloat32()
		return PropertyValue{Kind: kind, Float32: v}, err
	case KindFloat64:
		v, err := r.ReadFloat64()
		return PropertyValue{Kind: kind, Float64: v}, err
	case KindBytes:
		v, err := r.ReadBytes()
		return PropertyValue{Kind: kind, Bytes: v}, err
	case KindString:
		v, err := r.ReadString()
		return PropertyValue{Kind: kind, String: v}, err
	case KindList:
		n, err := r.ReadLen()
		if err != nil {
			return PropertyValue{}, err
		}
		list := make([]PropertyValue, n)
		for i := range list {
			if list[i], err = decodePropertyValue(r); err != nil {
				return PropertyValue{}, err
			}
		}
		return PropertyValue{Kind: kind, List: list}, nil
	case KindMap:
		m, err := decodeProperties(r)
		return PropertyValue{Kind: kind, Map: m}, err
	default:
		return PropertyValue{}, fmtErr("decode: unknown property value tag %d", tag)
	}
}
