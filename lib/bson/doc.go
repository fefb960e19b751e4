// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package bson implements a byte-exact codec for the BSON document
// format (https://bsonspec.org/spec.html).
//
// The package has three layers:
//
//   - The node model: [Node] is a closed set of value types, one per
//     [Kind]. [Document] and [Array] are the mutable containers; every
//     other node is an immutable value.
//   - Inputs: [ArrayInput], [BufferInput], and [StreamInput] present a
//     byte slice, a seekable in-memory buffer, and a forward-only
//     reader behind the one [Input] cursor interface.
//   - The codec: decoding ([DecodeDocument], [DecodeNode], [Extract])
//     and encoding ([AppendDocument], [Marshal], [WriteDocument]) are
//     written once against the generic [Builder] and [Accessor]
//     interfaces. [Native] instantiates them for the node model;
//     other packages (lib/bsonmongo) instantiate them for foreign
//     representations.
//
// For whole documents held in memory:
//
//	data, err := bson.Marshal(document, bson.Recompute)
//	document, err := bson.Unmarshal(data)
//
// For reading a single field out of a large document without decoding
// its siblings:
//
//	value, found, err := bson.ExtractBytes(data, []string{"owner", "tags", "0"}, false)
//
// # Size markers
//
// Documents, arrays and JavaScript-with-scope values start with their
// encoded byte length. [Document] and [Array] cache the length they were
// decoded with (or last encoded with under [Recompute]). The cache is
// advisory: mutating a container marks it stale ([Document.SizeStale])
// but does not correct it, and mutating a nested container does not mark
// its ancestors stale. Encoding with [TrustCached] writes the cached
// value unmodified, so it is only correct for trees whose cached sizes
// are known to be current.
//
// On the read side, passing trust=true to [Extract] lets the skip logic
// jump over sibling documents by their length prefix instead of scanning
// them. Stale length prefixes then produce wrong results rather than
// errors. String length prefixes are handled separately: inputs created
// with trust enabled verify that each string's length ends on a NUL byte
// and fall back to scanning when it does not.
//
// # Bare nodes
//
// [MarshalNode] and [DecodeNode] write and read a single fingerprinted
// value with no enclosing document. BSON only permits documents at the
// top level, so this form is for round-tripping individual values
// between the two functions and is never valid BSON on its own.
//
// The codec is synchronous and holds no global mutable state. Separate
// calls may run concurrently on separate inputs; concurrent encodes of
// the same tree are unsafe because [Recompute] writes cached sizes.
package bson
