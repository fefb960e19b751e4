// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package bsonfile handles BSON documents at rest: compressed document
// files and content digests.
//
// Files may hold one document or a sequence of them, optionally wrapped
// in a zstd or LZ4 frame. [OpenReader] detects the frame from its magic
// bytes so that callers read every variant the same way:
//
//	reader, compression, err := bsonfile.OpenReader(file, logger)
//	defer reader.Close()
//	input := bson.NewStreamInput(reader)
//
// [Digest] is a BLAKE3 keyed hash in a BSON-specific domain. Two
// documents have the same digest exactly when their encodings are
// identical, so [DocumentDigest] hashes the recomputed encoding: stale
// cached sizes in the tree do not change the result.
package bsonfile
