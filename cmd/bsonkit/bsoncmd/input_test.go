// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bsoncmd

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bureau-foundation/bsonkit/cmd/bsonkit/cli"
	"github.com/bureau-foundation/bsonkit/lib/bson"
	"github.com/bureau-foundation/bsonkit/lib/bsonfile"
	"github.com/bureau-foundation/bsonkit/lib/testutil"
)

func TestDecodeHexInput(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []byte
		wantErr bool
	}{
		{name: "compact", input: "0500000000", want: []byte{5, 0, 0, 0, 0}},
		{name: "spaced", input: "05 00 00 00\n00\n", want: []byte{5, 0, 0, 0, 0}},
		{name: "empty", input: " \n\t", wantErr: true},
		{name: "invalid digit", input: "0g", wantErr: true},
		{name: "odd length", input: "050", wantErr: true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := decodeHexInput([]byte(test.input))
			if test.wantErr {
				if err == nil {
					t.Fatalf("decodeHexInput(%q) = %x, want error", test.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("decodeHexInput: %v", err)
			}
			testutil.RequireBytes(t, got, test.want)
		})
	}
}

func TestOpenInputFromFile(t *testing.T) {
	path := testutil.WriteFile(t, "doc.bson", testutil.Hex(t, documentAHex))

	input, remaining, err := openInput("extract", []string{"a", path}, 1, strings.NewReader("unused"), false, discardLogger)
	if err != nil {
		t.Fatalf("openInput: %v", err)
	}
	defer input.Close()
	if len(remaining) != 1 || remaining[0] != "a" {
		t.Errorf("remaining = %v, want [a]", remaining)
	}
	data, err := io.ReadAll(input)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	testutil.RequireBytes(t, data, testutil.Hex(t, documentAHex))
}

func TestOpenInputHexStdin(t *testing.T) {
	input, _, err := openInput("decode", nil, 0, strings.NewReader(documentAHex+"\n"), true, discardLogger)
	if err != nil {
		t.Fatalf("openInput: %v", err)
	}
	defer input.Close()
	data, err := io.ReadAll(input)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	testutil.RequireBytes(t, data, testutil.Hex(t, documentAHex))
}

func TestOpenInputDecompresses(t *testing.T) {
	for _, compression := range []bsonfile.Compression{bsonfile.CompressionZstd, bsonfile.CompressionLZ4} {
		t.Run(compression.String(), func(t *testing.T) {
			var framed bytes.Buffer
			writer, err := bsonfile.NewWriter(&framed, compression)
			if err != nil {
				t.Fatalf("NewWriter: %v", err)
			}
			writer.Write(testutil.Hex(t, documentAHex+documentBHex))
			if err := writer.Close(); err != nil {
				t.Fatalf("Close: %v", err)
			}

			input, _, err := openInput("decode", nil, 0, &framed, false, discardLogger)
			if err != nil {
				t.Fatalf("openInput: %v", err)
			}
			defer input.Close()
			if input.compression != compression {
				t.Errorf("compression = %s, want %s", input.compression, compression)
			}
			data, err := io.ReadAll(input)
			if err != nil {
				t.Fatalf("ReadAll: %v", err)
			}
			testutil.RequireBytes(t, data, testutil.Hex(t, documentAHex+documentBHex))
		})
	}
}

func TestOpenInputRejectsExtraArguments(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.bson")
	_, _, err := openInput("decode", []string{missing}, 0, strings.NewReader(""), false, discardLogger)
	requireCategory(t, err, cli.CategoryNotFound)

	_, _, err = openInput("decode", []string{t.TempDir()}, 0, strings.NewReader(""), false, discardLogger)
	requireCategory(t, err, cli.CategoryValidation)
}

func TestReadText(t *testing.T) {
	path := testutil.WriteFile(t, "doc.json", []byte(`{"a": 1}`))
	data, err := readText("encode", []string{path}, strings.NewReader("stdin"))
	if err != nil {
		t.Fatalf("readText(file): %v", err)
	}
	if string(data) != `{"a": 1}` {
		t.Errorf("readText(file) = %q", data)
	}

	data, err = readText("encode", nil, strings.NewReader("stdin"))
	if err != nil || string(data) != "stdin" {
		t.Errorf("readText(stdin) = %q, %v", data, err)
	}
}

func TestEachDocument(t *testing.T) {
	sequence := testutil.Hex(t, documentAHex+documentBHex)
	for _, trust := range []bool{false, true} {
		var names []string
		count, err := eachDocument(bytes.NewReader(sequence), trust, func(index int, document *bson.Document) error {
			name, _ := document.At(0)
			names = append(names, name)
			return nil
		})
		if err != nil {
			t.Fatalf("trust=%v: eachDocument: %v", trust, err)
		}
		if count != 2 || strings.Join(names, ",") != "a,b" {
			t.Errorf("trust=%v: count = %d, names = %v", trust, count, names)
		}
	}

	_, err := eachDocument(bytes.NewReader(nil), false, func(int, *bson.Document) error { return nil })
	requireCategory(t, err, cli.CategoryValidation)

	truncated := testutil.Hex(t, documentAHex)[:7]
	_, err = eachDocument(bytes.NewReader(truncated), false, func(int, *bson.Document) error { return nil })
	requireCategory(t, err, cli.CategoryInternal)
}
