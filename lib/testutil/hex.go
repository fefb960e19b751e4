// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"encoding/hex"
	"strings"
)

// Hex decodes a hex literal, ignoring whitespace.
//
//	empty := testutil.Hex(t, "05 00 00 00 00")
func Hex(t interface {
	Helper()
	Fatalf(format string, args ...any)
}, literal string) []byte {
	t.Helper()
	compact := strings.Join(strings.Fields(literal), "")
	data, err := hex.DecodeString(compact)
	if err != nil {
		t.Fatalf("invalid hex literal %q: %v", literal, err)
	}
	return data
}

// Spaced formats data as lowercase hex with a space between bytes, the
// inverse of [Hex].
func Spaced(data []byte) string {
	var builder strings.Builder
	for i, b := range data {
		if i > 0 {
			builder.WriteByte(' ')
		}
		builder.WriteString(hex.EncodeToString([]byte{b}))
	}
	return builder.String()
}
