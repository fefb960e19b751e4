// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"
)

func TestToolError_Error(t *testing.T) {
	err := Validation("missing path argument")
	if err.Error() != "missing path argument" {
		t.Errorf("Error() = %q", err.Error())
	}

	err.WithHint("Run 'bsonkit extract --help' for usage.")
	want := "missing path argument\n\nRun 'bsonkit extract --help' for usage."
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestToolError_Categories(t *testing.T) {
	tests := []struct {
		err  *ToolError
		want ErrorCategory
	}{
		{Validation("bad"), CategoryValidation},
		{NotFound("missing"), CategoryNotFound},
		{Internal("broken"), CategoryInternal},
	}
	for _, test := range tests {
		if test.err.Category != test.want {
			t.Errorf("%q: Category = %q, want %q", test.err, test.err.Category, test.want)
		}
	}
}

func TestToolError_Unwrap(t *testing.T) {
	inner := NotFound("open doc.bson: %w", fs.ErrNotExist)
	wrapped := fmt.Errorf("decode: %w", inner)

	if !errors.Is(wrapped, fs.ErrNotExist) {
		t.Error("errors.Is should reach the innermost error")
	}
	var toolError *ToolError
	if !errors.As(wrapped, &toolError) || toolError.Category != CategoryNotFound {
		t.Errorf("errors.As = %v, want a not_found ToolError", toolError)
	}
}

func TestExitError(t *testing.T) {
	var err error = &ExitError{Code: 1}
	coder, ok := err.(interface{ ExitCode() int })
	if !ok || coder.ExitCode() != 1 {
		t.Errorf("ExitError does not report code 1")
	}
	if err.Error() != "exit code 1" {
		t.Errorf("Error() = %q", err.Error())
	}
}
