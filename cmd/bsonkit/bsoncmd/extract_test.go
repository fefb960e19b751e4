// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bsoncmd

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/bureau-foundation/bsonkit/cmd/bsonkit/cli"
	"github.com/bureau-foundation/bsonkit/lib/testutil"
)

func TestSplitPath(t *testing.T) {
	tests := []struct {
		expression string
		separator  string
		want       []string
	}{
		{"", ".", nil},
		{"a", ".", []string{"a"}},
		{"a.b.0", ".", []string{"a", "b", "0"}},
		{"a.b/c", "/", []string{"a.b", "c"}},
		{"a..b", ".", []string{"a", "", "b"}},
	}
	for _, test := range tests {
		if diff := cmp.Diff(test.want, splitPath(test.expression, test.separator)); diff != "" {
			t.Errorf("splitPath(%q, %q) mismatch (-want +got):\n%s", test.expression, test.separator, diff)
		}
	}
}

func TestExtractValue(t *testing.T) {
	nested := nestedDocument(t)

	tests := []struct {
		name string
		path string
		want string
	}{
		{name: "nested field", path: "d.t", want: "true\n"},
		{name: "array index", path: "l.0", want: "1.5\n"},
		{name: "subdocument", path: "d", want: "{\"t\":true}\n"},
		{name: "whole document", path: "", want: "{\"d\":{\"t\":true},\"l\":[1.5]}\n"},
	}

	for _, test := range tests {
		for _, trust := range []bool{false, true} {
			var output bytes.Buffer
			options := extractOptions{separator: ".", compact: true, trust: trust}
			if err := extractValue(bytes.NewReader(nested), &output, test.path, options, discardLogger); err != nil {
				t.Fatalf("%s (trust=%v): extractValue: %v", test.name, trust, err)
			}
			if output.String() != test.want {
				t.Errorf("%s (trust=%v): output = %q, want %q", test.name, trust, output.String(), test.want)
			}
		}
	}
}

func TestExtractValue_NotFound(t *testing.T) {
	nested := nestedDocument(t)
	for _, path := range []string{"missing", "d.missing", "l.1", "l.x", "d.t.deeper"} {
		var output bytes.Buffer
		err := extractValue(bytes.NewReader(nested), &output, path, extractOptions{separator: "."}, discardLogger)
		requireExitCode(t, err, 1)
		if output.Len() != 0 {
			t.Errorf("path %q: wrote %q for a missing value", path, output.String())
		}
	}
}

func TestExtractValue_Errors(t *testing.T) {
	err := extractValue(bytes.NewReader(testutil.Hex(t, documentAHex)), &bytes.Buffer{}, "a..b", extractOptions{separator: "."}, discardLogger)
	requireCategory(t, err, cli.CategoryValidation)

	err = extractValue(bytes.NewReader(nil), &bytes.Buffer{}, "a", extractOptions{separator: "."}, discardLogger)
	requireCategory(t, err, cli.CategoryValidation)

	truncated := testutil.Hex(t, documentAHex)[:9]
	err = extractValue(bytes.NewReader(truncated), &bytes.Buffer{}, "a", extractOptions{separator: "."}, discardLogger)
	requireCategory(t, err, cli.CategoryInternal)
}
