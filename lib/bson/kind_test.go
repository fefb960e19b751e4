// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bson_test

import (
	"testing"

	"github.com/bureau-foundation/bsonkit/lib/bson"
	"github.com/bureau-foundation/bsonkit/lib/bson/bsontest"
)

func TestKindOfRoundtrip(t *testing.T) {
	for _, kind := range bson.Kinds {
		got, ok := bson.KindOf(kind.Fingerprint())
		if !ok {
			t.Errorf("KindOf(0x%02x) not recognized", kind.Fingerprint())
			continue
		}
		if got != kind {
			t.Errorf("KindOf(0x%02x) = %v, want %v", kind.Fingerprint(), got, kind)
		}
	}
}

func TestKindOfRejectsUnknownBytes(t *testing.T) {
	for _, fingerprint := range []byte{0x00, 0x14, 0x20, 0x7E, 0x80, 0xFE} {
		if kind, ok := bson.KindOf(fingerprint); ok {
			t.Errorf("KindOf(0x%02x) = %v, want unrecognized", fingerprint, kind)
		}
	}
}

func TestKindFingerprints(t *testing.T) {
	tests := []struct {
		kind        bson.Kind
		fingerprint byte
		name        string
	}{
		{bson.KindDouble, 0x01, "double"},
		{bson.KindText, 0x02, "string"},
		{bson.KindDocument, 0x03, "document"},
		{bson.KindArray, 0x04, "array"},
		{bson.KindBoolean, 0x08, "bool"},
		{bson.KindDecimal128, 0x13, "decimal128"},
		{bson.KindMaxKey, 0x7F, "maxkey"},
		{bson.KindMinKey, 0xFF, "minkey"},
	}
	for _, test := range tests {
		if got := test.kind.Fingerprint(); got != test.fingerprint {
			t.Errorf("%v.Fingerprint() = 0x%02x, want 0x%02x", test.kind, got, test.fingerprint)
		}
		if got := test.kind.String(); got != test.name {
			t.Errorf("Kind(0x%02x).String() = %q, want %q", test.fingerprint, got, test.name)
		}
	}
	if got := bson.Kind(0x42).String(); got != "unknown(0x42)" {
		t.Errorf("unknown kind String() = %q", got)
	}
}

func TestEveryKindCoversKinds(t *testing.T) {
	fields := bsontest.EveryKind()
	if len(fields) != len(bson.Kinds) {
		t.Fatalf("EveryKind has %d fields, Kinds has %d", len(fields), len(bson.Kinds))
	}
	for i, field := range fields {
		if field.Value.Kind() != bson.Kinds[i] {
			t.Errorf("field %d (%s) has kind %v, want %v", i, field.Name, field.Value.Kind(), bson.Kinds[i])
		}
		if field.Name != bson.Kinds[i].String() {
			t.Errorf("field %d named %q, want %q", i, field.Name, bson.Kinds[i].String())
		}
	}
}

func TestContainerKinds(t *testing.T) {
	for _, kind := range bson.Kinds {
		want := kind == bson.KindDocument || kind == bson.KindArray
		if kind.Container() != want {
			t.Errorf("%v.Container() = %v, want %v", kind, kind.Container(), want)
		}
	}
}

func TestBinarySubtypeString(t *testing.T) {
	tests := []struct {
		subtype bson.BinarySubtype
		want    string
		user    bool
	}{
		{bson.SubtypeGeneric, "generic", false},
		{bson.SubtypeUUID, "uuid", false},
		{bson.SubtypeCompressed, "compressed", false},
		{bson.BinarySubtype(0x03), "subtype(0x03)", false},
		{bson.SubtypeUserDefined, "user(0x80)", true},
		{bson.BinarySubtype(0xFE), "user(0xfe)", true},
	}
	for _, test := range tests {
		if got := test.subtype.String(); got != test.want {
			t.Errorf("BinarySubtype(0x%02x).String() = %q, want %q", byte(test.subtype), got, test.want)
		}
		if got := test.subtype.UserDefined(); got != test.user {
			t.Errorf("BinarySubtype(0x%02x).UserDefined() = %v, want %v", byte(test.subtype), got, test.user)
		}
	}
}
