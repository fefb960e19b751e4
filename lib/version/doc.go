// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package version reports what bsonkit binary is running, for
// "bsonkit --version" and bug reports.
//
// Release builds stamp [GitCommit], [GitDirty], and [BuildTime] through
// the linker:
//
//	go build -ldflags "-X github.com/bureau-foundation/bsonkit/lib/version.GitCommit=$(git rev-parse --short HEAD)" ./cmd/bsonkit
//
// Unstamped builds fall back to the VCS revision the Go toolchain
// records, and tests see "unknown". [Full] also names the MongoDB Go
// driver version linked in, since the driver supplies the primitive
// types that the interop module converts to.
package version
