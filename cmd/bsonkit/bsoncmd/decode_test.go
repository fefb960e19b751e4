// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bsoncmd

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/bureau-foundation/bsonkit/cmd/bsonkit/cli"
	"github.com/bureau-foundation/bsonkit/lib/codec"
	"github.com/bureau-foundation/bsonkit/lib/testutil"
)

func TestDecodeBSON_Formats(t *testing.T) {
	sequence := testutil.Hex(t, documentAHex+documentBHex)

	tests := []struct {
		name    string
		options decodeOptions
		want    string
	}{
		{
			name:    "pretty json",
			options: decodeOptions{format: "json"},
			want:    "{\n  \"a\": 1\n}\n{\n  \"b\": \"x\"\n}\n",
		},
		{
			name:    "compact json",
			options: decodeOptions{format: "json", compact: true},
			want:    "{\"a\":1}\n{\"b\":\"x\"}\n",
		},
		{
			name:    "slurped json",
			options: decodeOptions{format: "json", compact: true, slurp: true},
			want:    "[{\"a\":1},{\"b\":\"x\"}]\n",
		},
		{
			name:    "trusted json",
			options: decodeOptions{format: "json", compact: true, trust: true},
			want:    "{\"a\":1}\n{\"b\":\"x\"}\n",
		},
		{
			name:    "yaml stream",
			options: decodeOptions{format: "yaml"},
			want:    "a: 1\n---\nb: x\n",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var output bytes.Buffer
			if err := decodeBSON(bytes.NewReader(sequence), &output, test.options, discardLogger); err != nil {
				t.Fatalf("decodeBSON: %v", err)
			}
			if diff := cmp.Diff(test.want, output.String()); diff != "" {
				t.Errorf("output mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeBSON_PreservesFieldOrder(t *testing.T) {
	var output bytes.Buffer
	err := decodeBSON(bytes.NewReader(nestedDocument(t)), &output, decodeOptions{format: "json", compact: true}, discardLogger)
	if err != nil {
		t.Fatalf("decodeBSON: %v", err)
	}
	want := "{\"d\":{\"t\":true},\"l\":[1.5]}\n"
	if output.String() != want {
		t.Errorf("output = %q, want %q", output.String(), want)
	}
}

func TestDecodeBSON_CBOR(t *testing.T) {
	var output bytes.Buffer
	sequence := testutil.Hex(t, documentAHex+documentBHex)
	err := decodeBSON(bytes.NewReader(sequence), &output, decodeOptions{format: "cbor"}, discardLogger)
	if err != nil {
		t.Fatalf("decodeBSON: %v", err)
	}
	items, err := codec.DecodeSequence(output.Bytes())
	if err != nil {
		t.Fatalf("DecodeSequence: %v", err)
	}
	want := []any{map[string]any{"a": uint64(1)}, map[string]any{"b": "x"}}
	if diff := cmp.Diff(want, items); diff != "" {
		t.Errorf("CBOR mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeBSON_Errors(t *testing.T) {
	err := decodeBSON(bytes.NewReader(nil), &bytes.Buffer{}, decodeOptions{format: "json"}, discardLogger)
	requireCategory(t, err, cli.CategoryValidation)

	err = decodeBSON(bytes.NewReader(testutil.Hex(t, documentAHex)), &bytes.Buffer{}, decodeOptions{format: "toml"}, discardLogger)
	requireCategory(t, err, cli.CategoryValidation)

	// Element type 0x20 does not exist.
	unknown := testutil.Hex(t, "08000000 20 6100 00")
	err = decodeBSON(bytes.NewReader(unknown), &bytes.Buffer{}, decodeOptions{format: "json"}, discardLogger)
	requireCategory(t, err, cli.CategoryInternal)
}
