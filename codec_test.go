// Copyright 2024 The geopack Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package geopack

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tidemark/geopack/internal/wire"
)

func TestMarshalUnmarshalFeature_AllGeometryKinds(t *testing.T) {
	ring := Ring{{Lng: 0, Lat: 0}, {Lng: 10, Lat: 0}, {Lng: 10, Lat: 10}, {Lng: 0, Lat: 0}}
	geoms := []Geometry{
		NewPoint(Coord{Lng: 1, Lat: 2}),
		NewLineString([]Coord{{Lng: 0, Lat: 0}, {Lng: 5, Lat: 5}}),
		NewPolygon([]Ring{ring}),
		NewMultiPoint([]Coord{{Lng: 1, Lat: 1}, {Lng: 2, Lat: 2}}),
		NewMultiLineString([]Ring{{{Lng: 0, Lat: 0}, {Lng: 1, Lat: 1}}, {{Lng: 2, Lat: 2}, {Lng: 3, Lat: 3}}}),
		NewMultiPolygon([][]Ring{{ring}, {ring}}),
		NewGeometryCollection([]Geometry{NewPoint(Coord{Lng: 1, Lat: 1}), NewLineString([]Coord{{Lng: 0, Lat: 0}, {Lng: 1, Lat: 1}})}),
	}

	for _, g := range geoms {
		t.Run(g.Kind.String(), func(t *testing.T) {
			f := NewFeature(g)
			body, err := MarshalFeature(f)
			require.NoError(t, err)

			got, err := UnmarshalFeature(body)
			require.NoError(t, err)
			assert.Equal(t, f.Geometry, got.Geometry)
		})
	}
}

func TestMarshalUnmarshalFeature_AllPropertyKinds(t *testing.T) {
	nested := NewProperties()
	nested.Insert("inner", BoolValue(true))

	p := NewProperties()
	p.Insert("bool", BoolValue(true))
	p.Insert("int8", Int8Value(-12))
	p.Insert("uint8", UInt8Value(200))
	p.Insert("int16", Int16Value(-30000))
	p.Insert("uint16", UInt16Value(60000))
	p.Insert("int32", Int32Value(-2000000000))
	p.Insert("uint32", UInt32Value(4000000000))
	p.Insert("int64", Int64Value(-9000000000000000000))
	p.Insert("uint64", UInt64Value(18000000000000000000))
	p.Insert("float32", Float32Value(3.5))
	p.Insert("float64", Float64Value(-2.71828))
	p.Insert("bytes", BytesValue([]byte{0xDE, 0xAD, 0xBE, 0xEF}))
	p.Insert("string", StringValue("hello, geopack"))
	p.Insert("list", ListValue([]PropertyValue{Int32Value(1), StringValue("two")}))
	p.Insert("map", MapValue(nested))

	f := NewFeature(NewPoint(Coord{Lng: 0, Lat: 0}))
	f.Properties = p

	body, err := MarshalFeature(f)
	require.NoError(t, err)

	got, err := UnmarshalFeature(body)
	require.NoError(t, err)
	assert.True(t, p.Equal(got.Properties), "properties must round-trip through all 15 kinds")
}

func TestWriteReadFeatureRecord_RoundTrip(t *testing.T) {
	f := NewFeature(NewPoint(Coord{Lng: 42, Lat: -42}))
	f.Properties.Insert("k", StringValue("v"))

	var buf bytes.Buffer
	n, err := WriteFeatureRecord(&buf, f)
	require.NoError(t, err)
	assert.Equal(t, buf.Len(), n)

	got, err := ReadFeatureRecord(&buf)
	require.NoError(t, err)
	assert.Equal(t, f.Geometry, got.Geometry)
	assert.True(t, f.Properties.Equal(got.Properties))
}

func TestUnmarshalFeature_UnknownGeometryTag(t *testing.T) {
	var buf bytes.Buffer
	w := wire.NewWriter(&buf)
	require.NoError(t, w.WriteUint32(99))

	_, err := UnmarshalFeature(buf.Bytes())
	assert.Error(t, err)
}
