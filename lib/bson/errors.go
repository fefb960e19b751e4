// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bson

import "errors"

// Codec errors. Decode and encode failures wrap one of these with the
// input offset or field path where the failure happened; use errors.Is
// to classify. None of them are retried internally: after any decode
// error the input position is undefined.
var (
	// ErrEndOfInput reports that the input ran out in the middle of a
	// value.
	ErrEndOfInput = errors.New("bson: unexpected end of input")

	// ErrUnknownElementType reports a fingerprint byte that does not name
	// a BSON element type. Nothing after it can be located.
	ErrUnknownElementType = errors.New("bson: unknown element type")

	// ErrInvalidArrayIndex reports an array field name that is not a
	// non-negative decimal integer.
	ErrInvalidArrayIndex = errors.New("bson: invalid array index")

	// ErrInvalidBooleanEncoding reports a boolean byte other than 0x00 or
	// 0x01.
	ErrInvalidBooleanEncoding = errors.New("bson: invalid boolean encoding")

	// ErrInvalidLength reports a negative byte count read from a length
	// prefix.
	ErrInvalidLength = errors.New("bson: invalid length")

	// ErrInvalidArgument reports a caller error detected before any I/O:
	// an empty path segment, oversized fixed-size payloads, NUL bytes in
	// strings that are NUL-framed on the wire, or bad input bounds.
	ErrInvalidArgument = errors.New("bson: invalid argument")
)
