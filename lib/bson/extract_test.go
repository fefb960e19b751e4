// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bson_test

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/bureau-foundation/bsonkit/lib/bson"
	"github.com/bureau-foundation/bsonkit/lib/bson/bsontest"
	"github.com/bureau-foundation/bsonkit/lib/testutil"
)

type pathValue struct {
	path  []string
	value bson.Node
}

// reachable lists every path into node together with the value there.
// Extraction descends into documents and arrays only.
func reachable(prefix []string, node bson.Node) []pathValue {
	var out []pathValue
	switch container := node.(type) {
	case *bson.Document:
		for i := range container.Len() {
			name, value := container.At(i)
			path := append(append([]string(nil), prefix...), name)
			out = append(out, pathValue{path, value})
			out = append(out, reachable(path, value)...)
		}
	case *bson.Array:
		for i := range container.Len() {
			path := append(append([]string(nil), prefix...), strconv.Itoa(i))
			out = append(out, pathValue{path, container.At(i)})
			out = append(out, reachable(path, container.At(i))...)
		}
	}
	return out
}

func TestExtractSingleInt32(t *testing.T) {
	data := testutil.Hex(t, "0c 00 00 00 10 61 00 2a 00 00 00 00")
	value, found, err := bson.ExtractBytes(data, []string{"a"}, false)
	if err != nil || !found {
		t.Fatalf("Extract(a) = %v, %v, %v", value, found, err)
	}
	if value != bson.Int32(42) {
		t.Errorf("Extract(a) = %v, want int32(42)", value)
	}

	value, found, err = bson.ExtractBytes(data, []string{"b"}, false)
	if err != nil {
		t.Fatalf("Extract(b): %v", err)
	}
	if found {
		t.Errorf("Extract(b) found %v", value)
	}
}

func TestExtractEveryReachablePath(t *testing.T) {
	document := bsontest.EveryKindDocument()
	encodings := map[string]bson.SizeMarkers{"recompute": bson.Recompute, "minus-one": bson.WriteMinusOne}
	for encodingName, policy := range encodings {
		data, err := bson.Marshal(document, policy)
		if err != nil {
			t.Fatalf("Marshal: %v", err)
		}
		for _, trust := range []bool{false, true} {
			// Minus-one markers are never trusted (not > 0), so both
			// settings scan.
			for _, want := range reachable(nil, document) {
				for name, in := range inputs(data, trust) {
					got, found, err := bson.Extract(in, want.path, trust)
					if err != nil {
						t.Fatalf("%s/%s trust=%v: Extract(%v): %v", encodingName, name, trust, want.path, err)
					}
					if !found {
						t.Errorf("%s/%s trust=%v: Extract(%v) not found", encodingName, name, trust, want.path)
						continue
					}
					if !bson.Equal(got, want.value) {
						t.Errorf("%s/%s trust=%v: Extract(%v) = %v, want %v", encodingName, name, trust, want.path, got, want.value)
					}
				}
			}
		}
	}
}

func TestExtractUnreachablePaths(t *testing.T) {
	data, err := bson.Marshal(bsontest.EveryKindDocument(), bson.Recompute)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	paths := [][]string{
		{"missing"},
		{"document", "missing"},
		{"document", "tags", "2"},
		{"array", "first"},
		{"array", "-1"},
		{"int32", "anything"},
		{"string", "0"},
		// The scope of JavaScript-with-scope is not a path step.
		{"javascript_with_scope", "x"},
		{"document", "name", "deeper"},
	}
	for _, path := range paths {
		for _, trust := range []bool{false, true} {
			for name, in := range inputs(data, trust) {
				value, found, err := bson.Extract(in, path, trust)
				if err != nil {
					t.Fatalf("%s: Extract(%v): %v", name, path, err)
				}
				if found {
					t.Errorf("%s trust=%v: Extract(%v) found %v", name, trust, path, value)
				}
			}
		}
	}
}

// Every kind appears as a decoy before the marker field. Extraction of
// the marker must skip the decoy exactly, whatever its kind.
func TestExtractSkipsDecoyOfEveryKind(t *testing.T) {
	marker := bson.Text("found")
	for _, decoy := range bsontest.EveryKind() {
		document := bson.NewDocument().Set("decoy", decoy.Value).Set("marker", marker)
		for _, policy := range []bson.SizeMarkers{bson.Recompute, bson.WriteMinusOne} {
			data, err := bson.Marshal(document, policy)
			if err != nil {
				t.Fatalf("%s: Marshal: %v", decoy.Name, err)
			}
			for _, trust := range []bool{false, true} {
				for name, in := range inputs(data, trust) {
					value, found, err := bson.Extract(in, []string{"marker"}, trust)
					if err != nil {
						t.Fatalf("%s/%s/%s trust=%v: Extract: %v", decoy.Name, policy, name, trust, err)
					}
					if !found || value != marker {
						t.Errorf("%s/%s/%s trust=%v: Extract = %v, %v", decoy.Name, policy, name, trust, value, found)
					}
				}
			}
		}
	}
}

func TestExtractEmptyPathDecodesDocument(t *testing.T) {
	document := bsontest.EveryKindDocument()
	data, err := bson.Marshal(document, bson.Recompute)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	value, found, err := bson.ExtractBytes(data, nil, false)
	if err != nil || !found {
		t.Fatalf("Extract(nil) = %v, %v", found, err)
	}
	if diff := cmp.Diff(bson.Node(document), value); diff != "" {
		t.Errorf("Extract(nil) mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractRejectsEmptySegments(t *testing.T) {
	// No input at all: the path is checked before reading.
	for _, path := range [][]string{{""}, {"a", ""}, {"a", "", "b"}} {
		_, _, err := bson.ExtractBytes(nil, path, false)
		if !errors.Is(err, bson.ErrInvalidArgument) {
			t.Errorf("Extract(%q) error = %v, want ErrInvalidArgument", strings.Join(path, "/"), err)
		}
	}
}

func TestExtractFirstDuplicateWins(t *testing.T) {
	// {"a": 1, "a": 2}
	data := testutil.Hex(t, "13 00 00 00 10 61 00 01 00 00 00 10 61 00 02 00 00 00 00")
	value, found, err := bson.ExtractBytes(data, []string{"a"}, false)
	if err != nil || !found {
		t.Fatalf("Extract = %v, %v", found, err)
	}
	if value != bson.Int32(1) {
		t.Errorf("Extract = %v, want the first occurrence", value)
	}
}

func TestExtractTrustUsesStaleMarkers(t *testing.T) {
	// {"a": {"x": 1}, "b": 2} with the nested length prefix shrunk to 5.
	data := testutil.Hex(t, "1b 00 00 00 03 61 00 05 00 00 00 10 78 00 01 00 00 00 00 10 62 00 02 00 00 00 00")

	value, found, err := bson.ExtractBytes(data, []string{"b"}, false)
	if err != nil || !found || value != bson.Int32(2) {
		t.Fatalf("untrusted Extract(b) = %v, %v, %v; want int32(2)", value, found, err)
	}

	value, found, err = bson.ExtractBytes(data, []string{"b"}, true)
	if err == nil && found && value == bson.Int32(2) {
		t.Error("trusted Extract(b) read past a stale marker correctly; the marker was not used")
	}
}

func TestExtractUnknownElementType(t *testing.T) {
	data := testutil.Hex(t, "0f 00 00 00 14 61 00 10 62 00 02 00 00 00 00")
	_, _, err := bson.ExtractBytes(data, []string{"b"}, false)
	if !errors.Is(err, bson.ErrUnknownElementType) {
		t.Errorf("Extract error = %v, want ErrUnknownElementType", err)
	}
}
