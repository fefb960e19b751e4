// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bsoncmd

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/bureau-foundation/bsonkit/cmd/bsonkit/cli"
	"github.com/bureau-foundation/bsonkit/lib/bson"
	"github.com/bureau-foundation/bsonkit/lib/bsonfile"
	"github.com/bureau-foundation/bsonkit/lib/codec"
	"github.com/bureau-foundation/bsonkit/lib/testutil"
)

// {"name": "x", "count": 42}
const nameCountHex = "1c000000 02 6e616d6500 02000000 7800 10 636f756e7400 2a000000 00"

func TestEncodeBSON_InputFormats(t *testing.T) {
	cborInput, err := codec.Marshal(map[string]any{"a": 1})
	if err != nil {
		t.Fatalf("codec.Marshal: %v", err)
	}

	tests := []struct {
		name  string
		from  string
		input []byte
		want  string
	}{
		{
			name:  "json keeps field order",
			from:  "json",
			input: []byte(`{"name": "x", "count": 42}`),
			want:  nameCountHex,
		},
		{
			name:  "jsonc strips comments",
			from:  "jsonc",
			input: []byte("{\n  // who\n  \"name\": \"x\",\n  /* how many */ \"count\": 42,\n}"),
			want:  nameCountHex,
		},
		{
			name:  "yaml keeps field order",
			from:  "yaml",
			input: []byte("name: x\ncount: 42\n"),
			want:  nameCountHex,
		},
		{
			name:  "cbor",
			from:  "cbor",
			input: cborInput,
			want:  documentAHex,
		},
		{
			name:  "cbor sequence",
			from:  "cbor",
			input: cborSequence(t, map[string]any{"a": 1}, map[string]any{"b": "x"}),
			want:  documentAHex + documentBHex,
		},
		{
			name:  "array becomes a sequence",
			from:  "json",
			input: []byte(`[{"a": 1}, {"b": "x"}]`),
			want:  documentAHex + documentBHex,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var output bytes.Buffer
			err := encodeBSON(test.input, &output, encodeOptions{from: test.from}, discardLogger)
			if err != nil {
				t.Fatalf("encodeBSON: %v", err)
			}
			testutil.RequireBytes(t, output.Bytes(), testutil.Hex(t, test.want))
		})
	}
}

func cborSequence(t *testing.T, items ...any) []byte {
	t.Helper()
	var buffer bytes.Buffer
	encoder := codec.NewEncoder(&buffer)
	for _, item := range items {
		if err := encoder.Encode(item); err != nil {
			t.Fatalf("Encode: %v", err)
		}
	}
	return buffer.Bytes()
}

func TestEncodeBSON_SizeMarkers(t *testing.T) {
	var output bytes.Buffer
	err := encodeBSON([]byte(`{"a": 1}`), &output, encodeOptions{from: "json", sizeMarkers: bson.WriteMinusOne}, discardLogger)
	if err != nil {
		t.Fatalf("encodeBSON: %v", err)
	}
	testutil.RequireBytes(t, output.Bytes(), testutil.Hex(t, minusOneAHex))
}

func TestEncodeBSON_Compression(t *testing.T) {
	for _, compression := range []bsonfile.Compression{bsonfile.CompressionZstd, bsonfile.CompressionLZ4} {
		t.Run(compression.String(), func(t *testing.T) {
			var output bytes.Buffer
			err := encodeBSON([]byte(`[{"a": 1}, {"b": "x"}]`), &output,
				encodeOptions{from: "json", compression: compression}, discardLogger)
			if err != nil {
				t.Fatalf("encodeBSON: %v", err)
			}
			if detected := bsonfile.DetectCompression(output.Bytes()); detected != compression {
				t.Fatalf("output frame = %s, want %s", detected, compression)
			}

			reader, _, err := bsonfile.OpenReader(&output, nil)
			if err != nil {
				t.Fatalf("OpenReader: %v", err)
			}
			defer reader.Close()
			data, err := io.ReadAll(reader)
			if err != nil {
				t.Fatalf("ReadAll: %v", err)
			}
			testutil.RequireBytes(t, data, testutil.Hex(t, documentAHex+documentBHex))
		})
	}
}

func TestEncodeBSON_Errors(t *testing.T) {
	tests := []struct {
		name  string
		from  string
		input string
	}{
		{name: "scalar top level", from: "json", input: `42`},
		{name: "scalar in sequence", from: "json", input: `[{"a": 1}, "x"]`},
		{name: "malformed json", from: "json", input: `{"a": `},
		{name: "trailing json", from: "json", input: `{} {}`},
		{name: "unknown format", from: "toml", input: `a = 1`},
		{name: "empty cbor", from: "cbor", input: ``},
		{name: "nul in field name", from: "json", input: `{"a\u0000b": 1}`},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := encodeBSON([]byte(test.input), io.Discard, encodeOptions{from: test.from}, discardLogger)
			if err == nil {
				t.Fatal("encodeBSON succeeded, want error")
			}
			var toolError *cli.ToolError
			if !errors.As(err, &toolError) {
				t.Errorf("error %v is not a ToolError", err)
			}
		})
	}
}
