// Copyright 2024 The geopack Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package geopack

import "fmt"

// PropertyValueKind tags which of the fifteen typed values a
// PropertyValue holds (spec.md §3).
type PropertyValueKind uint32

const (
	KindBool PropertyValueKind = iota
	KindInt8
	KindUInt8
	KindInt16
	KindUInt16
	KindInt32
	KindUInt32
	KindInt64
	KindUInt64
	KindFloat32
	KindFloat64
	KindBytes
	KindString
	KindList
	KindMap
)

// PropertyValue is one property value: a tagged union over booleans,
// signed and unsigned 8-, 16-, 32- and 64-bit integers (eight kinds),
// 32- and 64-bit floats, raw bytes,
// a UTF-8 string, a list of values, and a nested Properties map (spec.md
// §3). Like Geometry, this is expressed as a union struct rather than an
// interface hierarchy so the serializer (codec.go) can switch on Kind
// uniformly (see DESIGN.md).
type PropertyValue struct {
	Kind PropertyValueKind

	Bool    bool
	Int8    int8
	UInt8   uint8
	Int16   int16
	UInt16  uint16
	Int32   int32
	UInt32  uint32
	Int64   int64
	UInt64  uint64
	Float32 float32
	Float64 float64
	Bytes   []byte
	String  string
	List    []PropertyValue
	Map     Properties
}

func BoolValue(v bool) PropertyValue       { return PropertyValue{Kind: KindBool, Bool: v} }
func Int8Value(v int8) PropertyValue       { return PropertyValue{Kind: KindInt8, Int8: v} }
func UInt8Value(v uint8) PropertyValue     { return PropertyValue{Kind: KindUInt8, UInt8: v} }
func Int16Value(v int16) PropertyValue     { return PropertyValue{Kind: KindInt16, Int16: v} }
func UInt16Value(v uint16) PropertyValue   { return PropertyValue{Kind: KindUInt16, UInt16: v} }
func Int32Value(v int32) PropertyValue     { return PropertyValue{Kind: KindInt32, Int32: v} }
func UInt32Value(v uint32) PropertyValue   { return PropertyValue{Kind: KindUInt32, UInt32: v} }
func Int64Value(v int64) PropertyValue     { return PropertyValue{Kind: KindInt64, Int64: v} }
func UInt64Value(v uint64) PropertyValue   { return PropertyValue{Kind: KindUInt64, UInt64: v} }
func Float32Value(v float32) PropertyValue { return PropertyValue{Kind: KindFloat32, Float32: v} }
func Float64Value(v float64) PropertyValue { return PropertyValue{Kind: KindFloat64, Float64: v} }
func BytesValue(v []byte) PropertyValue    { return PropertyValue{Kind: KindBytes, Bytes: v} }
func StringValue(v string) PropertyValue   { return PropertyValue{Kind: KindString, String: v} }
func ListValue(v []PropertyValue) PropertyValue {
	return PropertyValue{Kind: KindList, List: v}
}
func MapValue(v Properties) PropertyValue { return PropertyValue{Kind: KindMap, Map: v} }

// Properties is an ordered mapping from unique string keys to
// PropertyValues. It serializes as a length-prefixed sequence of (key,
// value) pairs so key order is preserved across a round trip (spec.md
// §3), grounded on original_source/geomedea/src/feature.rs's
// Properties{ordered_keys, property_map}.
type Properties struct {
	keys   []string
	values map[string]PropertyValue
}

// NewProperties returns an empty Properties value.
func NewProperties() Properties {
	return Properties{values: make(map[string]PropertyValue)}
}

// Len returns the number of properties.
func (p Properties) Len() int { return len(p.keys) }

// Insert adds name=value, preserving insertion order. Insert panics if
// name is already present: spec.md §7 classifies a duplicate property
// name as a Programming error, mirroring
// original_source/geomedea/src/feature.rs's
// `assert!(!self.ordered_keys.contains(&name), ...)`.
func (p *Properties) Insert(name string, value PropertyValue) {
	if p.values == nil {
		p.values = make(map[string]PropertyValue)
	}
	if _, exists := p.values[name]; exists {
		fmtPanic("duplicate property name %q", name)
	}
	p.keys = append(p.keys, name)
	p.values[name] = value
}

// Get returns the value for name and whether it was present.
func (p Properties) Get(name string) (PropertyValue, bool) {
	v, ok := p.values[name]
	return v, ok
}

// Keys returns the property names in insertion order. The caller must
// not mutate the returned slice.
func (p Properties) Keys() []string { return p.keys }

// Equal reports whether p and other have the same keys, in the same
// order, mapping to equal values.
func (p Properties) Equal(other Properties) bool {
	if len(p.keys) != len(other.keys) {
		return false
	}
	for i, k := range p.keys {
		if other.keys[i] != k {
			return false
		}
		a, b := p.values[k], other.values[k]
		if !a.equal(b) {
			return false
		}
	}
	return true
}

func (v PropertyValue) equal(o PropertyValue) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindBool:
		return v.Bool == o.Bool
	case KindInt8:
		return v.Int8 == o.Int8
	case KindUInt8:
		return v.UInt8 == o.UInt8
	case KindInt16:
		return v.Int16 == o.Int16
	case KindUInt16:
		return v.UInt16 == o.UInt16
	case KindInt32:
		return v.Int32 == o.Int32
	case KindUInt32:
		return v.UInt32 == o.UInt32
	case KindInt64:
		return v.Int64 == o.Int64
	case KindUInt64:
		return v.UInt64 == o.UInt64
	case KindFloat32:
		return v.Float32 == o.Float32
	case KindFloat64:
		return v.Float64 == o.Float64
	case KindBytes:
		if len(v.Bytes) != len(o.Bytes) {
			return false
		}
		for i := range v.Bytes {
			if v.Bytes[i] != o.Bytes[i] {
				return false
			}
		}
		return true
	case KindString:
		return v.String == o.String
	case KindList:
		if len(v.List) != len(o.List) {
			return false
		}
		for i := range v.List {
			if !v.List[i].equal(o.List[i]) {
				return false
			}
		}
		return true
	case KindMap:
		return v.Map.Equal(o.Map)
	default:
		fmtPanic("unknown property value kind %d", v.Kind)
		return false
	}
}

func (v PropertyValue) String() string {
	switch v.Kind {
	case KindBool:
		return fmt.Sprintf("%t", v.Bool)
	case KindInt8, KindInt16, KindInt32, KindInt64:
		return fmt.Sprintf("%d", v.asInt64())
	case KindUInt8, KindUInt16, KindUInt32, KindUInt64:
		return fmt.Sprintf("%d", v.asUint64())
	case KindFloat32:
		return fmt.Sprintf("%g", v.Float32)
	case KindFloat64:
		return fmt.Sprintf("%g", v.Float64)
	case KindBytes:
		return fmt.Sprintf("%x", v.Bytes)
	case KindString:
		return v.String
	case KindList:
		return fmt.Sprintf("%v", v.List)
	case KindMap:
		return fmt.Sprintf("%v", v.Map.keys)
	default:
		return fmt.Sprintf("PropertyValue(kind=%d)", v.Kind)
	}
}

func (v PropertyValue) asInt64() int64 {
	switch v.Kind {
	case KindInt8:
		return int64(v.Int8)
	case KindInt16:
		return int64(v.Int16)
	case KindInt32:
		return int64(v.Int32)
	default:
		return v.Int64
	}
}

func (v PropertyValue) asUint64() uint64 {
	switch v.Kind {
	case KindUInt8:
		return uint64(v.UInt8)
	case KindUInt16:
		return uint64(v.UInt16)
	case KindUInt32:
		return uint64(v.UInt32)
	default:
		return v.UInt64
	}
}
