// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bson

import (
	"fmt"
	"strconv"
)

// ExtractWith decodes the single value at path inside the document read
// from in, skipping everything else. Each path segment names a document
// field or, inside an array, a decimal index. An empty path decodes the
// whole document.
//
// The boolean result is false when the path does not resolve: a segment
// matches no field, a non-final segment lands on a value that is neither
// a document nor an array, or an array segment is not an integer. Empty
// segments are rejected with [ErrInvalidArgument] before any input is
// read.
//
// With trust set, sibling documents and arrays are skipped by their
// length prefix. A stale prefix then silently misplaces the cursor.
func ExtractWith[N any](in Input, path []string, trust bool, builder Builder[N]) (N, bool, error) {
	var zero N
	for i, segment := range path {
		if segment == "" {
			return zero, false, fmt.Errorf("%w: path segment %d is empty", ErrInvalidArgument, i)
		}
	}
	if len(path) == 0 {
		document, err := DecodeDocumentWith(in, builder)
		if err != nil {
			return zero, false, err
		}
		return document, true, nil
	}
	if _, err := readInt32(in); err != nil {
		return zero, false, err
	}
	return extractElements(in, path, trust, builder, KindDocument)
}

// Extract is [ExtractWith] for the node model.
func Extract(in Input, path []string, trust bool) (Node, bool, error) {
	return ExtractWith[Node](in, path, trust, Native{})
}

// ExtractBytes extracts the value at path from the document at the start
// of data. trust applies both to container skipping and to string length
// prefixes.
func ExtractBytes(data []byte, path []string, trust bool) (Node, bool, error) {
	return Extract(NewArrayInput(data, trust), path, trust)
}

// extractElements walks the element list of a container whose length
// prefix has already been consumed. The first field named path[0] wins.
func extractElements[N any](in Input, path []string, trust bool, builder Builder[N], container Kind) (N, bool, error) {
	var zero N
	if container == KindArray {
		if _, err := strconv.ParseUint(path[0], 10, 31); err != nil {
			return zero, false, nil
		}
	}
	for {
		offset := in.Offset()
		fingerprint, err := in.ReadByte()
		if err != nil {
			return zero, false, err
		}
		if fingerprint == 0 {
			return zero, false, nil
		}
		name, err := in.ReadCString()
		if err != nil {
			return zero, false, err
		}
		if name != path[0] {
			if err := skipValue(in, fingerprint, offset, trust); err != nil {
				return zero, false, fmt.Errorf("skipping field %q: %w", name, err)
			}
			continue
		}

		if len(path) == 1 {
			value, err := decodeValue(in, builder, fingerprint, offset)
			if err != nil {
				return zero, false, fmt.Errorf("field %q: %w", name, err)
			}
			return value, true, nil
		}
		kind := Kind(fingerprint)
		if !kind.Container() {
			if _, ok := KindOf(fingerprint); !ok {
				return zero, false, unknownElementType(fingerprint, offset)
			}
			return zero, false, nil
		}
		if _, err := readInt32(in); err != nil {
			return zero, false, err
		}
		value, found, err := extractElements(in, path[1:], trust, builder, kind)
		if err != nil {
			return zero, false, fmt.Errorf("field %q: %w", name, err)
		}
		return value, found, nil
	}
}
