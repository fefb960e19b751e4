// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for bsonkit packages.
//
// [Hex] turns a spaced hex literal such as "05 00 00 00 00" into bytes,
// so wire-format fixtures in tests read like a hex dump.
//
// [RequireBytes] compares two byte slices and, on mismatch, reports the
// first differing offset with a window of surrounding bytes from both
// sides. Length-prefixed formats usually go wrong at one byte and then
// cascade; the first difference is the useful one.
//
// [WriteFile] writes fixture data into a per-test temporary directory
// and returns the path, for commands that take a file argument.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
//
// This package has no bsonkit-internal dependencies.
package testutil
