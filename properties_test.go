// Copyright 2024 The geopack Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package geopack

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPropertyValue_String(t *testing.T) {
	testCases := []struct {
		name  string
		value PropertyValue
		want  string
	}{
		{"Bool", BoolValue(true), "true"},
		{"Int8", Int8Value(-5), "-5"},
		{"UInt8", UInt8Value(5), "5"},
		{"Int16", Int16Value(-1000), "-1000"},
		{"UInt16", UInt16Value(1000), "1000"},
		{"Int32", Int32Value(-100000), "-100000"},
		{"UInt32", UInt32Value(100000), "100000"},
		{"Int64", Int64Value(-1 << 40), "-1099511627776"},
		{"UInt64", UInt64Value(1 << 40), "1099511627776"},
		{"String", StringValue("hello"), "hello"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.value.String())
		})
	}
}

func TestPropertyValue_Equal_KindMismatch(t *testing.T) {
	assert.False(t, Int32Value(1).equal(Int64Value(1)))
}

func TestPropertyValue_Equal_List(t *testing.T) {
	a := ListValue([]PropertyValue{Int32Value(1), StringValue("x")})
	b := ListValue([]PropertyValue{Int32Value(1), StringValue("x")})
	c := ListValue([]PropertyValue{Int32Value(1), StringValue("y")})
	assert.True(t, a.equal(b))
	assert.False(t, a.equal(c))
}

func TestPropertyValue_Equal_Map(t *testing.T) {
	inner1 := NewProperties()
	inner1.Insert("k", Int32Value(1))
	inner2 := NewProperties()
	inner2.Insert("k", Int32Value(1))

	assert.True(t, MapValue(inner1).equal(MapValue(inner2)))
}

func TestPropertyValue_Equal_Bytes(t *testing.T) {
	a := BytesValue([]byte{1, 2, 3})
	b := BytesValue([]byte{1, 2, 3})
	c := BytesValue([]byte{1, 2, 4})
	assert.True(t, a.equal(b))
	assert.False(t, a.equal(c))
}
