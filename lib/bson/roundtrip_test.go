// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bson_test

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/bureau-foundation/bsonkit/lib/bson"
	"github.com/bureau-foundation/bsonkit/lib/bson/bsontest"
)

// Every kind, wrapped in a single-field document, survives encoding
// under each policy and decoding from each input with and without
// string trust.
func TestRoundtripEveryKind(t *testing.T) {
	for _, field := range bsontest.EveryKind() {
		for _, policy := range policies {
			for _, trust := range []bool{false, true} {
				document := bsontest.Document(field)
				data, err := bson.Marshal(document, policy)
				if err != nil {
					t.Fatalf("%s/%s: Marshal: %v", field.Name, policy, err)
				}
				for name, in := range inputs(data, trust) {
					t.Run(fmt.Sprintf("%s/%s/trust=%v/%s", field.Name, policy, trust, name), func(t *testing.T) {
						decoded, err := bson.DecodeDocument(in)
						if err != nil {
							t.Fatalf("DecodeDocument: %v", err)
						}
						if diff := cmp.Diff(document, decoded); diff != "" {
							t.Errorf("round-trip mismatch (-want +got):\n%s", diff)
						}
					})
				}
			}
		}
	}
}

func TestRoundtripBareNodes(t *testing.T) {
	for _, field := range bsontest.EveryKind() {
		for _, policy := range policies {
			t.Run(field.Name+"/"+policy.String(), func(t *testing.T) {
				data, err := bson.MarshalNode(field.Value, policy)
				if err != nil {
					t.Fatalf("MarshalNode: %v", err)
				}
				if data[0] != field.Value.Kind().Fingerprint() {
					t.Errorf("leading byte 0x%02x, want fingerprint 0x%02x", data[0], field.Value.Kind().Fingerprint())
				}
				for name, in := range inputs(data, true) {
					decoded, err := bson.DecodeNode(in)
					if err != nil {
						t.Fatalf("%s: DecodeNode: %v", name, err)
					}
					if !bson.Equal(decoded, field.Value) {
						t.Errorf("%s: decoded %v, want %v", name, decoded, field.Value)
					}
				}
			})
		}
	}
}

func TestRoundtripEveryKindDocument(t *testing.T) {
	document := bsontest.EveryKindDocument()
	data, err := bson.Marshal(document, bson.Recompute)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	decoded, err := bson.Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if diff := cmp.Diff(document, decoded); diff != "" {
		t.Errorf("round-trip mismatch (-want +got):\n%s", diff)
	}
	// Decoded containers carry the sizes Recompute wrote.
	for i := range document.Len() {
		name, value := document.At(i)
		_, got := decoded.At(i)
		switch want := value.(type) {
		case *bson.Document:
			if got.(*bson.Document).SizeBytes() != want.SizeBytes() {
				t.Errorf("%s: decoded size %d, encoded %d", name, got.(*bson.Document).SizeBytes(), want.SizeBytes())
			}
		case *bson.Array:
			if got.(*bson.Array).SizeBytes() != want.SizeBytes() {
				t.Errorf("%s: decoded size %d, encoded %d", name, got.(*bson.Array).SizeBytes(), want.SizeBytes())
			}
		}
	}
}
