// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"fmt"
)

// diffWindow is the number of bytes shown on each side of the first
// difference.
const diffWindow = 8

// RequireBytes fails the test if got and want differ, reporting the
// first differing offset.
//
//	testutil.RequireBytes(t, encoded, testutil.Hex(t, "05 00 00 00 00"), "empty document")
func RequireBytes(t interface {
	Helper()
	Fatalf(format string, args ...any)
}, got, want []byte, msgAndArgs ...any) {
	t.Helper()
	offset := FirstDifference(got, want)
	if offset < 0 {
		return
	}
	t.Fatalf("%s: bytes differ at offset %d (got %d bytes, want %d)\n  got:  %s\n  want: %s",
		formatMessage(msgAndArgs), offset, len(got), len(want),
		window(got, offset), window(want, offset))
}

// FirstDifference returns the offset of the first byte where a and b
// differ, the length of the shorter slice if one is a prefix of the
// other, or -1 if they are equal.
func FirstDifference(a, b []byte) int {
	limit := min(len(a), len(b))
	for i := range limit {
		if a[i] != b[i] {
			return i
		}
	}
	if len(a) != len(b) {
		return limit
	}
	return -1
}

func window(data []byte, offset int) string {
	start := max(offset-diffWindow, 0)
	end := min(offset+diffWindow, len(data))
	if start >= end {
		return "(end of data)"
	}
	return fmt.Sprintf("[%d:%d] %s", start, end, Spaced(data[start:end]))
}

// formatMessage formats optional message arguments into a string.
// Accepts either a single string or a format string followed by args.
func formatMessage(msgAndArgs []any) string {
	if len(msgAndArgs) == 0 {
		return "(no message)"
	}
	if len(msgAndArgs) == 1 {
		if s, ok := msgAndArgs[0].(string); ok {
			return s
		}
		return fmt.Sprintf("%v", msgAndArgs[0])
	}
	if format, ok := msgAndArgs[0].(string); ok {
		return fmt.Sprintf(format, msgAndArgs[1:]...)
	}
	return fmt.Sprintf("%v", msgAndArgs)
}
