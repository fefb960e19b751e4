// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bson

import "fmt"

// minContainerSize is the length of an empty document: the length prefix
// and the terminator.
const minContainerSize = 5

// skipValue advances in past the value that follows a fingerprint
// without building anything. String and binary length prefixes are
// always used. Container length prefixes are used only when trust is
// set; otherwise the container is scanned to its terminator, and every
// container nested inside a scanned one is scanned too.
func skipValue(in Input, fingerprint byte, offset int64, trust bool) error {
	kind, ok := KindOf(fingerprint)
	if !ok {
		return unknownElementType(fingerprint, offset)
	}
	switch kind {
	case KindUndefined, KindNull, KindMinKey, KindMaxKey:
		return nil

	case KindBoolean:
		return in.SkipBytes(1)

	case KindInt32:
		return in.SkipBytes(4)

	case KindDouble, KindUTCDateTime, KindTimestamp, KindInt64:
		return in.SkipBytes(8)

	case KindObjectID:
		return in.SkipBytes(ObjectIDSize)

	case KindDecimal128:
		return in.SkipBytes(Decimal128Size)

	case KindText, KindJavaScript, KindSymbol:
		return skipString(in)

	case KindBinary:
		length, err := readLength(in)
		if err != nil {
			return err
		}
		// The subtype byte follows the length.
		return in.SkipBytes(length + 1)

	case KindRegex:
		if err := in.SkipCString(); err != nil {
			return err
		}
		return in.SkipCString()

	case KindDBPointer:
		if err := skipString(in); err != nil {
			return err
		}
		return in.SkipBytes(ObjectIDSize)

	case KindDocument, KindArray:
		return skipContainer(in, trust)

	case KindJavaScriptWithScope:
		total, err := readInt32(in)
		if err != nil {
			return err
		}
		if trust && total >= minContainerSize {
			return in.SkipBytes(int(total) - 4)
		}
		if err := skipString(in); err != nil {
			return err
		}
		return skipContainer(in, false)
	}
	return unknownElementType(fingerprint, offset)
}

func skipString(in Input) error {
	length, err := readLength(in)
	if err != nil {
		return err
	}
	return in.SkipBytes(length)
}

// skipContainer skips a document or array including its length prefix.
func skipContainer(in Input, trust bool) error {
	size, err := readInt32(in)
	if err != nil {
		return err
	}
	if trust && size >= minContainerSize {
		return in.SkipBytes(int(size) - 4)
	}
	return skipElements(in)
}

// skipElements scans an element list up to and including its 0x00
// terminator. Nested containers are scanned as well.
func skipElements(in Input) error {
	for {
		offset := in.Offset()
		fingerprint, err := in.ReadByte()
		if err != nil {
			return err
		}
		if fingerprint == 0 {
			return nil
		}
		if err := in.SkipCString(); err != nil {
			return err
		}
		if err := skipValue(in, fingerprint, offset, false); err != nil {
			return fmt.Errorf("skipping element at offset %d: %w", offset, err)
		}
	}
}
