// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package bsontest provides node fixtures for tests of packages built on
// lib/bson.
package bsontest

import (
	"github.com/bureau-foundation/bsonkit/lib/bson"
)

// Field is one named sample value.
type Field struct {
	Name  string
	Value bson.Node
}

// EveryKind returns one representative value per [bson.Kind], in
// fingerprint order, named after the kind. Containers are non-empty and
// nest another container so that skip and decode paths recurse.
func EveryKind() []Field {
	id := bson.ObjectID{0x65, 0x0f, 0x1c, 0x2a, 0x9b, 0x3e, 0x41, 0x00, 0x12, 0x34, 0x56, 0x78}
	decimal := bson.Decimal128{0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x40, 0x30}

	nested := bson.NewDocument().
		Set("name", bson.Text("deep")).
		Set("tags", bson.NewArray(bson.Text("a"), bson.Int32(2)))

	scope := bson.NewDocument().
		Set("x", bson.Int32(1)).
		Set("inner", bson.NewDocument().Set("y", bson.Boolean(true)))

	return []Field{
		{"double", bson.Double(3.25)},
		{"string", bson.Text("hello, world")},
		{"document", nested},
		{"array", bson.NewArray(bson.Int64(1), bson.NewDocument().Set("k", bson.Null{}), bson.NewArray())},
		{"binary", bson.Binary{Subtype: bson.SubtypeUUID, Data: []byte{0xde, 0xad, 0xbe, 0xef, 0x00, 0x01}}},
		{"undefined", bson.Undefined{}},
		{"objectid", id},
		{"bool", bson.Boolean(true)},
		{"datetime", bson.UTCDateTime(1700000000123)},
		{"null", bson.Null{}},
		{"regex", bson.NewRegex("^ab+c$", "mi")},
		{"dbpointer", bson.DBPointer{Name: "db.collection", Value: id}},
		{"javascript", bson.JavaScript("function() { return 1; }")},
		{"symbol", bson.Symbol("sym")},
		{"javascript_with_scope", bson.JavaScriptWithScope{Code: "return x;", Scope: scope}},
		{"int32", bson.Int32(-42)},
		{"timestamp", bson.Timestamp(int64(7)<<32 | 3)},
		{"int64", bson.Int64(-9007199254740993)},
		{"decimal128", decimal},
		{"maxkey", bson.MaxKey{}},
		{"minkey", bson.MinKey{}},
	}
}

// Document wraps fields in a document in order.
func Document(fields ...Field) *bson.Document {
	document := bson.NewDocument()
	for _, field := range fields {
		document.Set(field.Name, field.Value)
	}
	return document
}

// EveryKindDocument is a document holding [EveryKind].
func EveryKindDocument() *bson.Document {
	return Document(EveryKind()...)
}
