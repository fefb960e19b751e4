// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bson

import (
	"fmt"
	"io"
	"strconv"
)

// DecodeDocumentWith decodes one document from in, building nodes with
// builder. The document's length prefix is passed to the builder as its
// cached size; the 0x00 terminator, not the prefix, ends the read.
func DecodeDocumentWith[N any](in Input, builder Builder[N]) (N, error) {
	return decodeContainer(in, builder, KindDocument)
}

// DecodeDocument decodes one document from in into the node model.
func DecodeDocument(in Input) (*Document, error) {
	document, err := DecodeDocumentWith[Node](in, Native{})
	if err != nil {
		return nil, err
	}
	return document.(*Document), nil
}

// DecodeNodeWith decodes a single fingerprinted value with no enclosing
// document, as written by [AppendNodeWith]. This framing is not BSON;
// it exists to round-trip individual values.
func DecodeNodeWith[N any](in Input, builder Builder[N]) (N, error) {
	offset := in.Offset()
	fingerprint, err := in.ReadByte()
	if err != nil {
		var zero N
		return zero, err
	}
	return decodeValue(in, builder, fingerprint, offset)
}

// DecodeNode decodes a bare value into the node model.
func DecodeNode(in Input) (Node, error) {
	return DecodeNodeWith[Node](in, Native{})
}

// Unmarshal decodes the document at the start of data. String size
// markers are not trusted.
func Unmarshal(data []byte) (*Document, error) {
	return DecodeDocument(NewArrayInput(data, false))
}

// UnmarshalBounded decodes the document in data[start:end]. With trust
// set, string length prefixes that check out are used instead of
// scanning for terminators.
func UnmarshalBounded(data []byte, trust bool, start, end int) (*Document, error) {
	in, err := NewArrayInputRange(data, trust, start, end)
	if err != nil {
		return nil, err
	}
	return DecodeDocument(in)
}

// ReadDocument decodes one document from r. Bytes after the document
// may have been buffered and are lost; use [NewStreamInput] and
// [DecodeDocument] directly to read a sequence of documents.
func ReadDocument(r io.Reader) (*Document, error) {
	return DecodeDocument(NewStreamInput(r))
}

// UnmarshalNode decodes a bare value written by [MarshalNode].
func UnmarshalNode(data []byte) (Node, error) {
	return DecodeNode(NewArrayInput(data, false))
}

func decodeContainer[N any](in Input, builder Builder[N], kind Kind) (N, error) {
	var container N
	size, err := readInt32(in)
	if err != nil {
		return container, err
	}
	if kind == KindArray {
		container = builder.NewArray(size)
	} else {
		container = builder.NewDocument(size)
	}
	for {
		offset := in.Offset()
		fingerprint, err := in.ReadByte()
		if err != nil {
			return container, err
		}
		if fingerprint == 0 {
			return container, nil
		}
		name, err := in.ReadCString()
		if err != nil {
			return container, err
		}
		if kind == KindArray {
			if _, err := strconv.ParseUint(name, 10, 31); err != nil {
				return container, fmt.Errorf("%w: field name %q at offset %d", ErrInvalidArrayIndex, name, offset)
			}
		}
		value, err := decodeValue(in, builder, fingerprint, offset)
		if err != nil {
			return container, fmt.Errorf("field %q: %w", name, err)
		}
		if kind == KindArray {
			container = builder.AppendArrayElement(container, value)
		} else {
			container = builder.AddDocumentField(container, name, value)
		}
	}
}

func unknownElementType(fingerprint byte, offset int64) error {
	return fmt.Errorf("%w 0x%02x at offset %d", ErrUnknownElementType, fingerprint, offset)
}

// decodeValue decodes the value that follows a fingerprint and, inside
// containers, a field name. offset locates the fingerprint.
func decodeValue[N any](in Input, builder Builder[N], fingerprint byte, offset int64) (N, error) {
	var zero N
	kind, ok := KindOf(fingerprint)
	if !ok {
		return zero, unknownElementType(fingerprint, offset)
	}
	switch kind {
	case KindDouble:
		value, err := readFloat64(in)
		if err != nil {
			return zero, err
		}
		return builder.NewDouble(value), nil

	case KindText:
		value, err := in.ReadString()
		if err != nil {
			return zero, err
		}
		return builder.NewText(value), nil

	case KindDocument, KindArray:
		return decodeContainer(in, builder, kind)

	case KindBinary:
		length, err := readLength(in)
		if err != nil {
			return zero, err
		}
		subtype, err := in.ReadByte()
		if err != nil {
			return zero, err
		}
		data, err := in.ReadBytes(length)
		if err != nil {
			return zero, err
		}
		return builder.NewBinary(BinarySubtype(subtype), data), nil

	case KindUndefined:
		return builder.NewUndefined(), nil

	case KindObjectID:
		id, err := readObjectID(in)
		if err != nil {
			return zero, err
		}
		return builder.NewObjectID(id), nil

	case KindBoolean:
		valueOffset := in.Offset()
		b, err := in.ReadByte()
		if err != nil {
			return zero, err
		}
		switch b {
		case 0x00:
			return builder.NewBoolean(false), nil
		case 0x01:
			return builder.NewBoolean(true), nil
		default:
			return zero, fmt.Errorf("%w: 0x%02x at offset %d", ErrInvalidBooleanEncoding, b, valueOffset)
		}

	case KindUTCDateTime:
		value, err := readInt64(in)
		if err != nil {
			return zero, err
		}
		return builder.NewUTCDateTime(value), nil

	case KindNull:
		return builder.NewNull(), nil

	case KindRegex:
		pattern, err := in.ReadCString()
		if err != nil {
			return zero, err
		}
		options, err := in.ReadCString()
		if err != nil {
			return zero, err
		}
		return builder.NewRegex(pattern, options), nil

	case KindDBPointer:
		name, err := in.ReadString()
		if err != nil {
			return zero, err
		}
		id, err := readObjectID(in)
		if err != nil {
			return zero, err
		}
		return builder.NewDBPointer(name, id), nil

	case KindJavaScript:
		code, err := in.ReadString()
		if err != nil {
			return zero, err
		}
		return builder.NewJavaScript(code), nil

	case KindSymbol:
		value, err := in.ReadString()
		if err != nil {
			return zero, err
		}
		return builder.NewSymbol(value), nil

	case KindJavaScriptWithScope:
		// The total length prefix carries no information the code string
		// and scope document do not already frame.
		if _, err := readInt32(in); err != nil {
			return zero, err
		}
		code, err := in.ReadString()
		if err != nil {
			return zero, err
		}
		scope, err := decodeContainer(in, builder, KindDocument)
		if err != nil {
			return zero, fmt.Errorf("scope: %w", err)
		}
		return builder.NewJavaScriptWithScope(code, scope), nil

	case KindInt32:
		value, err := readInt32(in)
		if err != nil {
			return zero, err
		}
		return builder.NewInt32(value), nil

	case KindTimestamp:
		value, err := readInt64(in)
		if err != nil {
			return zero, err
		}
		return builder.NewTimestamp(value), nil

	case KindInt64:
		value, err := readInt64(in)
		if err != nil {
			return zero, err
		}
		return builder.NewInt64(value), nil

	case KindDecimal128:
		data, err := in.ReadBytes(Decimal128Size)
		if err != nil {
			return zero, err
		}
		return builder.NewDecimal128(Decimal128(data)), nil

	case KindMinKey:
		return builder.NewMinKey(), nil

	case KindMaxKey:
		return builder.NewMaxKey(), nil
	}
	return zero, unknownElementType(fingerprint, offset)
}

func readObjectID(in Input) (ObjectID, error) {
	data, err := in.ReadBytes(ObjectIDSize)
	if err != nil {
		return ObjectID{}, err
	}
	return ObjectID(data), nil
}
