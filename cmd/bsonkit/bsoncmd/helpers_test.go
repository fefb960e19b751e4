// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bsoncmd

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/bureau-foundation/bsonkit/cmd/bsonkit/cli"
	"github.com/bureau-foundation/bsonkit/lib/bson"
)

var discardLogger = slog.New(slog.DiscardHandler)

// Two small documents used across the command tests, and the first
// again with a -1 length prefix.
const (
	documentAHex = "0c000000 10 6100 01000000 00"
	documentBHex = "0e000000 02 6200 02000000 7800 00"
	minusOneAHex = "ffffffff 10 6100 01000000 00"
)

// nestedDocument returns {"d": {"t": true}, "l": [1.5]} encoded with
// recomputed sizes: 36 bytes overall, 9 for "d", 16 for "l".
func nestedDocument(t *testing.T) []byte {
	t.Helper()
	document := bson.NewDocument().
		Set("d", bson.NewDocument().Set("t", bson.Boolean(true))).
		Set("l", bson.NewArray(bson.Double(1.5)))
	data, err := bson.Marshal(document, bson.Recompute)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if len(data) != 36 {
		t.Fatalf("nested fixture is %d bytes, want 36", len(data))
	}
	return data
}

func concat(parts ...[]byte) []byte {
	return bytes.Join(parts, nil)
}

// requireExitCode fails unless err is an ExitError with code.
func requireExitCode(t *testing.T, err error, code int) {
	t.Helper()
	var exitError *cli.ExitError
	if !errors.As(err, &exitError) {
		t.Fatalf("error = %v, want ExitError", err)
	}
	if exitError.Code != code {
		t.Fatalf("exit code = %d, want %d", exitError.Code, code)
	}
}

// requireCategory fails unless err is a ToolError in category.
func requireCategory(t *testing.T, err error, category cli.ErrorCategory) {
	t.Helper()
	var toolError *cli.ToolError
	if !errors.As(err, &toolError) {
		t.Fatalf("error = %v, want ToolError", err)
	}
	if toolError.Category != category {
		t.Fatalf("category = %q, want %q (error: %v)", toolError.Category, category, err)
	}
}
