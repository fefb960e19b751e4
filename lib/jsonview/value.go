// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package jsonview

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"math"
	"slices"
	"time"

	"github.com/bureau-foundation/bsonkit/lib/bson"
)

// ErrUnsupportedValue is returned by [FromValue] for values with no
// BSON representation.
var ErrUnsupportedValue = errors.New("jsonview: unsupported value")

// ToValue converts a node to a generic value:
//
//   - Document: [Object]
//   - Array: []any
//   - Text, JavaScript, Symbol: string
//   - Double: float64, or "NaN", "Infinity", "-Infinity" when not finite
//   - Int32, Int64, UTCDateTime, Timestamp: int64
//   - Boolean: bool
//   - Null, Undefined, MinKey, MaxKey: nil
//   - ObjectID, Binary data, Decimal128: lowercase hex string
//   - Regex: "/pattern/options"
//   - DBPointer: "name/hex"
//   - JavaScriptWithScope: the code string
func ToValue(node bson.Node) any {
	switch value := node.(type) {
	case *bson.Document:
		object := make(Object, 0, value.Len())
		for i := range value.Len() {
			name, field := value.At(i)
			object = append(object, Member{Name: name, Value: ToValue(field)})
		}
		return object
	case *bson.Array:
		array := make([]any, 0, value.Len())
		for i := range value.Len() {
			array = append(array, ToValue(value.At(i)))
		}
		return array
	case bson.Double:
		f := float64(value)
		switch {
		case math.IsNaN(f):
			return "NaN"
		case math.IsInf(f, 1):
			return "Infinity"
		case math.IsInf(f, -1):
			return "-Infinity"
		}
		return f
	case bson.Text:
		return string(value)
	case bson.JavaScript:
		return string(value)
	case bson.Symbol:
		return string(value)
	case bson.Int32:
		return int64(value)
	case bson.Int64:
		return int64(value)
	case bson.UTCDateTime:
		return int64(value)
	case bson.Timestamp:
		return int64(value)
	case bson.Boolean:
		return bool(value)
	case bson.ObjectID:
		return value.Hex()
	case bson.Binary:
		return hex.EncodeToString(value.Data)
	case bson.Decimal128:
		return hex.EncodeToString(value[:])
	case bson.Regex:
		return "/" + value.Pattern() + "/" + value.Options()
	case bson.DBPointer:
		return value.Name + "/" + value.Value.Hex()
	case bson.JavaScriptWithScope:
		return value.Code
	}
	return nil
}

// FromValue converts a generic value to a node. Integers become Int32
// when they fit and Int64 otherwise; json.Number does the same and
// falls back to Double. Maps without order ([map[string]any]) have
// their keys sorted. []byte becomes generic Binary and time.Time a
// UTC datetime.
func FromValue(value any) (bson.Node, error) {
	switch v := value.(type) {
	case nil:
		return bson.Null{}, nil
	case Object:
		document := bson.NewDocument()
		for _, member := range v {
			node, err := FromValue(member.Value)
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", member.Name, err)
			}
			document.Set(member.Name, node)
		}
		return document, nil
	case map[string]any:
		document := bson.NewDocument()
		for _, name := range slices.Sorted(maps.Keys(v)) {
			node, err := FromValue(v[name])
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", name, err)
			}
			document.Set(name, node)
		}
		return document, nil
	case map[any]any:
		names := make(map[string]any, len(v))
		for key, element := range v {
			name, ok := key.(string)
			if !ok {
				return nil, fmt.Errorf("%w: map key %v is %T, not a string", ErrUnsupportedValue, key, key)
			}
			names[name] = element
		}
		return FromValue(names)
	case []any:
		array := bson.NewArray()
		for i, element := range v {
			node, err := FromValue(element)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			array.Append(node)
		}
		return array, nil
	case string:
		return bson.Text(v), nil
	case bool:
		return bson.Boolean(v), nil
	case float64:
		return bson.Double(v), nil
	case float32:
		return bson.Double(v), nil
	case int:
		return integer(int64(v)), nil
	case int8:
		return integer(int64(v)), nil
	case int16:
		return integer(int64(v)), nil
	case int32:
		return integer(int64(v)), nil
	case int64:
		return integer(v), nil
	case uint:
		return unsigned(uint64(v))
	case uint8:
		return unsigned(uint64(v))
	case uint16:
		return unsigned(uint64(v))
	case uint32:
		return unsigned(uint64(v))
	case uint64:
		return unsigned(v)
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return integer(i), nil
		}
		f, err := v.Float64()
		if err != nil {
			return nil, fmt.Errorf("%w: number %q: %v", ErrUnsupportedValue, v, err)
		}
		return bson.Double(f), nil
	case []byte:
		return bson.Binary{Subtype: bson.SubtypeGeneric, Data: slices.Clone(v)}, nil
	case time.Time:
		return bson.UTCDateTime(v.UnixMilli()), nil
	}
	return nil, fmt.Errorf("%w: %T", ErrUnsupportedValue, value)
}

func integer(value int64) bson.Node {
	if value >= math.MinInt32 && value <= math.MaxInt32 {
		return bson.Int32(value)
	}
	return bson.Int64(value)
}

func unsigned(value uint64) (bson.Node, error) {
	if value > math.MaxInt64 {
		return nil, fmt.Errorf("%w: %d overflows int64", ErrUnsupportedValue, value)
	}
	return integer(int64(value)), nil
}

// Plain replaces every [Object] in value with a map[string]any, for
// encoders that only understand plain maps. Member order is lost and
// the last duplicate wins.
func Plain(value any) any {
	switch v := value.(type) {
	case Object:
		plain := make(map[string]any, len(v))
		for _, member := range v {
			plain[member.Name] = Plain(member.Value)
		}
		return plain
	case []any:
		plain := make([]any, len(v))
		for i, element := range v {
			plain[i] = Plain(element)
		}
		return plain
	}
	return value
}
