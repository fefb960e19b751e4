// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package bsonmongo instantiates the lib/bson codec over the value types
// of the MongoDB Go driver: documents are primitive.D, arrays
// primitive.A, and scalars the driver's primitive types or plain Go
// values. Code that already holds driver values can decode into them,
// extract from raw documents, and encode them with the same codec and
// the same size-marker policies as the native node model.
//
// Driver values carry no cached sizes. Under [bson.TrustCached] every
// container length prefix is written as -1.
package bsonmongo

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/bureau-foundation/bsonkit/lib/bson"
)

// Module is the [bson.Module] for driver values.
//
// Decoding produces: float64, string, primitive.D, primitive.A,
// primitive.Binary, primitive.Undefined, primitive.ObjectID, bool,
// primitive.DateTime, nil for null, primitive.Regex, primitive.DBPointer,
// primitive.JavaScript, primitive.Symbol, primitive.CodeWithScope with a
// primitive.D scope, int32, primitive.Timestamp, int64,
// primitive.Decimal128, primitive.MinKey, and primitive.MaxKey.
//
// Encoding accepts those plus primitive.Null, []any, int (int32 when it
// fits), float32, and time.Time. primitive.M is rejected because its
// field order is undefined.
type Module struct{}

var _ bson.Module[any] = Module{}

func (Module) NewDouble(value float64) any { return value }
func (Module) NewText(value string) any    { return value }

func (Module) NewDocument(int32) any { return primitive.D{} }

func (Module) AddDocumentField(document any, name string, value any) any {
	return append(document.(primitive.D), primitive.E{Key: name, Value: value})
}

func (Module) NewArray(int32) any { return primitive.A{} }

func (Module) AppendArrayElement(array any, value any) any {
	return append(array.(primitive.A), value)
}

func (Module) NewBinary(subtype bson.BinarySubtype, data []byte) any {
	return primitive.Binary{Subtype: byte(subtype), Data: data}
}

func (Module) NewUndefined() any                   { return primitive.Undefined{} }
func (Module) NewObjectID(value bson.ObjectID) any { return primitive.ObjectID(value) }
func (Module) NewBoolean(value bool) any           { return value }
func (Module) NewUTCDateTime(millis int64) any     { return primitive.DateTime(millis) }
func (Module) NewNull() any                        { return nil }

func (Module) NewRegex(pattern, options string) any {
	return primitive.Regex{Pattern: pattern, Options: bson.NewRegex(pattern, options).Options()}
}

func (Module) NewDBPointer(name string, value bson.ObjectID) any {
	return primitive.DBPointer{DB: name, Pointer: primitive.ObjectID(value)}
}

func (Module) NewJavaScript(code string) any { return primitive.JavaScript(code) }
func (Module) NewSymbol(value string) any    { return primitive.Symbol(value) }

func (Module) NewJavaScriptWithScope(code string, scope any) any {
	return primitive.CodeWithScope{Code: primitive.JavaScript(code), Scope: scope}
}

func (Module) NewInt32(value int32) any { return value }

// NewTimestamp splits the opaque 64-bit value into the driver's seconds
// (high word) and increment (low word).
func (Module) NewTimestamp(value int64) any {
	return primitive.Timestamp{T: uint32(uint64(value) >> 32), I: uint32(value)}
}

func (Module) NewInt64(value int64) any { return value }

// NewDecimal128 reads the two little-endian halves of the wire form,
// low word first.
func (Module) NewDecimal128(value bson.Decimal128) any {
	low := binary.LittleEndian.Uint64(value[0:8])
	high := binary.LittleEndian.Uint64(value[8:16])
	return primitive.NewDecimal128(high, low)
}

func (Module) NewMinKey() any { return primitive.MinKey{} }
func (Module) NewMaxKey() any { return primitive.MaxKey{} }

func (Module) KindOf(node any) (bson.Kind, error) {
	switch value := node.(type) {
	case nil, primitive.Null:
		return bson.KindNull, nil
	case float64, float32:
		return bson.KindDouble, nil
	case string:
		return bson.KindText, nil
	case primitive.D:
		return bson.KindDocument, nil
	case primitive.M:
		return 0, fmt.Errorf("%w: primitive.M has no field order; use primitive.D", bson.ErrInvalidArgument)
	case primitive.A, []any:
		return bson.KindArray, nil
	case primitive.Binary:
		return bson.KindBinary, nil
	case primitive.Undefined:
		return bson.KindUndefined, nil
	case primitive.ObjectID:
		return bson.KindObjectID, nil
	case bool:
		return bson.KindBoolean, nil
	case primitive.DateTime, time.Time:
		return bson.KindUTCDateTime, nil
	case primitive.Regex:
		return bson.KindRegex, nil
	case primitive.DBPointer:
		return bson.KindDBPointer, nil
	case primitive.JavaScript:
		return bson.KindJavaScript, nil
	case primitive.Symbol:
		return bson.KindSymbol, nil
	case primitive.CodeWithScope:
		switch value.Scope.(type) {
		case nil, primitive.D:
			return bson.KindJavaScriptWithScope, nil
		default:
			return 0, fmt.Errorf("%w: code scope must be primitive.D, got %T", bson.ErrInvalidArgument, value.Scope)
		}
	case int32:
		return bson.KindInt32, nil
	case int:
		if value >= math.MinInt32 && value <= math.MaxInt32 {
			return bson.KindInt32, nil
		}
		return bson.KindInt64, nil
	case int64:
		return bson.KindInt64, nil
	case primitive.Timestamp:
		return bson.KindTimestamp, nil
	case primitive.Decimal128:
		return bson.KindDecimal128, nil
	case primitive.MinKey:
		return bson.KindMinKey, nil
	case primitive.MaxKey:
		return bson.KindMaxKey, nil
	}
	return 0, fmt.Errorf("%w: no BSON representation for %T", bson.ErrInvalidArgument, node)
}

func (Module) DocumentLen(document any) int { return len(document.(primitive.D)) }

func (Module) DocumentField(document any, i int) (string, any) {
	element := document.(primitive.D)[i]
	return element.Key, element.Value
}

func (Module) DocumentSizeBytes(any) int32     { return bson.UnknownSize }
func (Module) SetDocumentSizeBytes(any, int32) {}

func elements(array any) []any {
	if a, ok := array.(primitive.A); ok {
		return a
	}
	return array.([]any)
}

func (Module) ArrayLen(array any) int            { return len(elements(array)) }
func (Module) ArrayElement(array any, i int) any { return elements(array)[i] }
func (Module) ArraySizeBytes(any) int32          { return bson.UnknownSize }
func (Module) SetArraySizeBytes(any, int32)      {}

func (Module) DoubleValue(node any) float64 {
	if f, ok := node.(float32); ok {
		return float64(f)
	}
	return node.(float64)
}

func (Module) TextValue(node any) string { return node.(string) }

func (Module) BinaryValue(node any) (bson.BinarySubtype, []byte) {
	value := node.(primitive.Binary)
	return bson.BinarySubtype(value.Subtype), value.Data
}

func (Module) ObjectIDValue(node any) bson.ObjectID { return bson.ObjectID(node.(primitive.ObjectID)) }
func (Module) BooleanValue(node any) bool           { return node.(bool) }

func (Module) UTCDateTimeValue(node any) int64 {
	if t, ok := node.(time.Time); ok {
		return t.UnixMilli()
	}
	return int64(node.(primitive.DateTime))
}

func (Module) RegexValue(node any) (string, string) {
	regex := node.(primitive.Regex)
	return regex.Pattern, bson.NewRegex(regex.Pattern, regex.Options).Options()
}

func (Module) DBPointerValue(node any) (string, bson.ObjectID) {
	pointer := node.(primitive.DBPointer)
	return pointer.DB, bson.ObjectID(pointer.Pointer)
}

func (Module) JavaScriptValue(node any) string { return string(node.(primitive.JavaScript)) }
func (Module) SymbolValue(node any) string     { return string(node.(primitive.Symbol)) }

func (Module) JavaScriptWithScopeValue(node any) (string, any) {
	code := node.(primitive.CodeWithScope)
	if code.Scope == nil {
		return string(code.Code), primitive.D{}
	}
	return string(code.Code), code.Scope
}

func (Module) Int32Value(node any) int32 {
	if i, ok := node.(int); ok {
		return int32(i)
	}
	return node.(int32)
}

func (Module) TimestampValue(node any) int64 {
	timestamp := node.(primitive.Timestamp)
	return int64(uint64(timestamp.T)<<32 | uint64(timestamp.I))
}

func (Module) Int64Value(node any) int64 {
	if i, ok := node.(int); ok {
		return int64(i)
	}
	return node.(int64)
}

func (Module) Decimal128Value(node any) bson.Decimal128 {
	high, low := node.(primitive.Decimal128).GetBytes()
	var out bson.Decimal128
	binary.LittleEndian.PutUint64(out[0:8], low)
	binary.LittleEndian.PutUint64(out[8:16], high)
	return out
}
