// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bsoncmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bureau-foundation/bsonkit/lib/testutil"
)

func TestValidateBSON_Valid(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		slurp bool
	}{
		{name: "single document", input: testutil.Hex(t, documentAHex)},
		{name: "nested document", input: nestedDocument(t)},
		{name: "sequence", input: testutil.Hex(t, documentAHex+documentBHex), slurp: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var output bytes.Buffer
			if err := validateBSON(test.input, &output, test.slurp, discardLogger); err != nil {
				t.Fatalf("expected valid, got error: %v", err)
			}
			if output.String() != "valid\n" {
				t.Errorf("output = %q, want %q", output.String(), "valid\n")
			}
		})
	}
}

func TestValidateBSON_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		input   []byte
		slurp   bool
		wantErr string
	}{
		{
			name:    "minus one prefix",
			input:   testutil.Hex(t, minusOneAHex),
			wantErr: "differs from its re-encoding at byte 0",
		},
		{
			name:    "stale prefix in second document",
			input:   testutil.Hex(t, documentAHex+"0f000000 02 6200 02000000 7800 00"),
			slurp:   true,
			wantErr: "document 1 differs from its re-encoding at byte 12",
		},
		{
			name:    "sequence without slurp",
			input:   testutil.Hex(t, documentAHex+documentBHex),
			wantErr: "14 trailing bytes",
		},
		{
			name:    "truncated",
			input:   testutil.Hex(t, documentAHex)[:10],
			wantErr: "decode document 0",
		},
		{
			name:    "empty",
			input:   nil,
			wantErr: "empty input",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var output bytes.Buffer
			err := validateBSON(test.input, &output, test.slurp, discardLogger)
			if err == nil {
				t.Fatalf("expected error, got output %q", output.String())
			}
			if !strings.Contains(err.Error(), test.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err, test.wantErr)
			}
			if output.Len() != 0 {
				t.Errorf("output = %q, want none", output.String())
			}
		})
	}
}
