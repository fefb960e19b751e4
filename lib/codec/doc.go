// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec holds the shared CBOR configuration for converting BSON
// documents to and from CBOR.
//
// The encoder uses Core Deterministic Encoding (RFC 8949 §4.2): sorted
// map keys, smallest integer encoding, no indefinite-length items. The
// same document always produces identical bytes, at the cost of BSON
// field order, which CBOR maps sorted this way cannot carry.
//
//	data, err := codec.Marshal(jsonview.Plain(jsonview.ToValue(document)))
//	items, err := codec.DecodeSequence(data)
package codec
