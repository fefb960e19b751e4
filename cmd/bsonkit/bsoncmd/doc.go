// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package bsoncmd implements the bsonkit subcommands: decode, encode,
// extract, diag, validate, and digest.
//
// Every command that reads BSON accepts an optional trailing file path
// and otherwise reads stdin. Input may be hex-encoded (--hex) and may be
// wrapped in a zstd or LZ4 frame, which is detected from its magic
// number. A file may hold a single document or a sequence of documents
// laid end to end.
//
// Defaults for output format, size marker policy, compression, and the
// extract path separator come from the YAML file named by --config or
// BSONKIT_CONFIG. Flags given on the command line override the file.
package bsoncmd
