// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bson

// Builder constructs nodes of representation N while decoding. The
// decoder calls exactly one constructor per value it reads and never
// inspects the result, so N is opaque to it.
//
// Container builders return the container after each addition. For
// pointer-like representations this is the same value; value-typed
// representations (slices) return the grown value and the decoder
// carries it forward.
type Builder[N any] interface {
	NewDouble(value float64) N
	NewText(value string) N

	// NewDocument starts an empty document whose wire length prefix was
	// sizeBytes. The prefix is informational.
	NewDocument(sizeBytes int32) N
	AddDocumentField(document N, name string, value N) N

	// NewArray starts an empty array whose wire length prefix was
	// sizeBytes.
	NewArray(sizeBytes int32) N
	AppendArrayElement(array N, value N) N

	NewBinary(subtype BinarySubtype, data []byte) N
	NewUndefined() N
	NewObjectID(value ObjectID) N
	NewBoolean(value bool) N
	NewUTCDateTime(millis int64) N
	NewNull() N
	NewRegex(pattern, options string) N
	NewDBPointer(name string, value ObjectID) N
	NewJavaScript(code string) N
	NewSymbol(value string) N
	NewJavaScriptWithScope(code string, scope N) N
	NewInt32(value int32) N
	NewTimestamp(value int64) N
	NewInt64(value int64) N
	NewDecimal128(value Decimal128) N
	NewMinKey() N
	NewMaxKey() N
}

// Accessor reads nodes of representation N while encoding. The encoder
// calls KindOf first and then only the accessors for that kind.
type Accessor[N any] interface {
	// KindOf classifies a node. It fails for values the representation
	// cannot express in BSON.
	KindOf(node N) (Kind, error)

	DocumentLen(document N) int
	DocumentField(document N, i int) (string, N)
	DocumentSizeBytes(document N) int32
	SetDocumentSizeBytes(document N, size int32)

	ArrayLen(array N) int
	ArrayElement(array N, i int) N
	ArraySizeBytes(array N) int32
	SetArraySizeBytes(array N, size int32)

	DoubleValue(node N) float64
	TextValue(node N) string
	BinaryValue(node N) (BinarySubtype, []byte)
	ObjectIDValue(node N) ObjectID
	BooleanValue(node N) bool
	UTCDateTimeValue(node N) int64
	RegexValue(node N) (pattern, options string)
	DBPointerValue(node N) (string, ObjectID)
	JavaScriptValue(node N) string
	SymbolValue(node N) string
	JavaScriptWithScopeValue(node N) (code string, scope N)
	Int32Value(node N) int32
	TimestampValue(node N) int64
	Int64Value(node N) int64
	Decimal128Value(node N) Decimal128
}

// Module is a representation that can be both decoded into and encoded
// from.
type Module[N any] interface {
	Builder[N]
	Accessor[N]
}
