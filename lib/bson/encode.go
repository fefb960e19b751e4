// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bson

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// SizeMarkers selects what the encoder writes into the length prefixes
// of documents, arrays, and JavaScript-with-scope values.
type SizeMarkers int

const (
	// Recompute writes the actual encoded length and stores it as the
	// container's cached size. Always correct.
	Recompute SizeMarkers = iota

	// TrustCached writes each container's cached size unmodified. The
	// output is only valid BSON if every cached size is current.
	TrustCached

	// WriteMinusOne writes -1 in every container length prefix.
	WriteMinusOne
)

// String returns the name accepted by [ParseSizeMarkers].
func (s SizeMarkers) String() string {
	switch s {
	case Recompute:
		return "recompute"
	case TrustCached:
		return "trust"
	case WriteMinusOne:
		return "minus-one"
	default:
		return fmt.Sprintf("SizeMarkers(%d)", int(s))
	}
}

// ParseSizeMarkers parses "recompute", "trust", or "minus-one".
func ParseSizeMarkers(name string) (SizeMarkers, error) {
	switch name {
	case "recompute", "":
		return Recompute, nil
	case "trust":
		return TrustCached, nil
	case "minus-one":
		return WriteMinusOne, nil
	default:
		return 0, fmt.Errorf("%w: unknown size marker policy %q (expected recompute, trust, or minus-one)", ErrInvalidArgument, name)
	}
}

// AppendDocumentWith appends the encoding of document to dst. Under
// [Recompute] the cached size of every container in the tree is
// updated through accessor.
func AppendDocumentWith[N any](dst []byte, document N, policy SizeMarkers, accessor Accessor[N]) ([]byte, error) {
	kind, err := accessor.KindOf(document)
	if err != nil {
		return dst, err
	}
	if kind != KindDocument {
		return dst, fmt.Errorf("%w: top-level value is %s, not a document", ErrInvalidArgument, kind)
	}
	return appendContainer(dst, document, KindDocument, policy, accessor)
}

// AppendDocument appends the encoding of document to dst.
func AppendDocument(dst []byte, document *Document, policy SizeMarkers) ([]byte, error) {
	return AppendDocumentWith[Node](dst, document, policy, Native{})
}

// Marshal returns the encoding of document.
func Marshal(document *Document, policy SizeMarkers) ([]byte, error) {
	return AppendDocument(nil, document, policy)
}

// WriteDocument writes the encoding of document to w.
func WriteDocument(w io.Writer, document *Document, policy SizeMarkers) error {
	data, err := Marshal(document, policy)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// AppendNodeWith appends a single fingerprinted value with no enclosing
// document. The result is not BSON; read it back with [DecodeNodeWith].
func AppendNodeWith[N any](dst []byte, node N, policy SizeMarkers, accessor Accessor[N]) ([]byte, error) {
	kind, err := accessor.KindOf(node)
	if err != nil {
		return dst, err
	}
	dst = append(dst, kind.Fingerprint())
	return appendValue(dst, kind, node, policy, accessor)
}

// AppendNode appends a bare value from the node model.
func AppendNode(dst []byte, node Node, policy SizeMarkers) ([]byte, error) {
	return AppendNodeWith(dst, node, policy, Native{})
}

// MarshalNode returns the bare encoding of node.
func MarshalNode(node Node, policy SizeMarkers) ([]byte, error) {
	return AppendNode(nil, node, policy)
}

// WriteNode writes the bare encoding of node to w.
func WriteNode(w io.Writer, node Node, policy SizeMarkers) error {
	data, err := MarshalNode(node, policy)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// appendContainer encodes a document or array. The length prefix is
// reserved, the elements appended, and the prefix filled in last.
func appendContainer[N any](dst []byte, container N, kind Kind, policy SizeMarkers, accessor Accessor[N]) ([]byte, error) {
	start := len(dst)
	dst = append(dst, 0, 0, 0, 0)
	var err error
	if kind == KindArray {
		for i := range accessor.ArrayLen(container) {
			dst, err = appendElement(dst, strconv.Itoa(i), accessor.ArrayElement(container, i), policy, accessor)
			if err != nil {
				return dst, err
			}
		}
	} else {
		for i := range accessor.DocumentLen(container) {
			name, value := accessor.DocumentField(container, i)
			dst, err = appendElement(dst, name, value, policy, accessor)
			if err != nil {
				return dst, err
			}
		}
	}
	dst = append(dst, 0)

	var marker int32
	switch policy {
	case Recompute:
		size, err := encodedSize(len(dst) - start)
		if err != nil {
			return dst, err
		}
		marker = size
		if kind == KindArray {
			accessor.SetArraySizeBytes(container, size)
		} else {
			accessor.SetDocumentSizeBytes(container, size)
		}
	case TrustCached:
		if kind == KindArray {
			marker = accessor.ArraySizeBytes(container)
		} else {
			marker = accessor.DocumentSizeBytes(container)
		}
	default:
		marker = -1
	}
	binary.LittleEndian.PutUint32(dst[start:], uint32(marker))
	return dst, nil
}

func encodedSize(n int) (int32, error) {
	if n > math.MaxInt32 {
		return 0, fmt.Errorf("%w: encoded length %d exceeds the int32 limit", ErrInvalidArgument, n)
	}
	return int32(n), nil
}

func appendElement[N any](dst []byte, name string, value N, policy SizeMarkers, accessor Accessor[N]) ([]byte, error) {
	if err := checkCString(name, "field name"); err != nil {
		return dst, err
	}
	kind, err := accessor.KindOf(value)
	if err != nil {
		return dst, fmt.Errorf("field %q: %w", name, err)
	}
	dst = append(dst, kind.Fingerprint())
	dst = append(dst, name...)
	dst = append(dst, 0)
	dst, err = appendValue(dst, kind, value, policy, accessor)
	if err != nil {
		return dst, fmt.Errorf("field %q: %w", name, err)
	}
	return dst, nil
}

func appendValue[N any](dst []byte, kind Kind, value N, policy SizeMarkers, accessor Accessor[N]) ([]byte, error) {
	switch kind {
	case KindDouble:
		return binary.LittleEndian.AppendUint64(dst, math.Float64bits(accessor.DoubleValue(value))), nil

	case KindText:
		return appendString(dst, accessor.TextValue(value), "string")

	case KindDocument, KindArray:
		return appendContainer(dst, value, kind, policy, accessor)

	case KindBinary:
		subtype, data := accessor.BinaryValue(value)
		length, err := encodedSize(len(data))
		if err != nil {
			return dst, err
		}
		dst = binary.LittleEndian.AppendUint32(dst, uint32(length))
		dst = append(dst, byte(subtype))
		return append(dst, data...), nil

	case KindUndefined, KindNull, KindMinKey, KindMaxKey:
		return dst, nil

	case KindObjectID:
		id := accessor.ObjectIDValue(value)
		return append(dst, id[:]...), nil

	case KindBoolean:
		if accessor.BooleanValue(value) {
			return append(dst, 0x01), nil
		}
		return append(dst, 0x00), nil

	case KindUTCDateTime:
		return binary.LittleEndian.AppendUint64(dst, uint64(accessor.UTCDateTimeValue(value))), nil

	case KindRegex:
		pattern, options := accessor.RegexValue(value)
		if err := checkCString(pattern, "regex pattern"); err != nil {
			return dst, err
		}
		if err := checkCString(options, "regex options"); err != nil {
			return dst, err
		}
		dst = append(dst, pattern...)
		dst = append(dst, 0)
		dst = append(dst, options...)
		return append(dst, 0), nil

	case KindDBPointer:
		name, id := accessor.DBPointerValue(value)
		var err error
		dst, err = appendString(dst, name, "db pointer name")
		if err != nil {
			return dst, err
		}
		return append(dst, id[:]...), nil

	case KindJavaScript:
		return appendString(dst, accessor.JavaScriptValue(value), "javascript code")

	case KindSymbol:
		return appendString(dst, accessor.SymbolValue(value), "symbol")

	case KindJavaScriptWithScope:
		return appendJavaScriptWithScope(dst, value, policy, accessor)

	case KindInt32:
		return binary.LittleEndian.AppendUint32(dst, uint32(accessor.Int32Value(value))), nil

	case KindTimestamp:
		return binary.LittleEndian.AppendUint64(dst, uint64(accessor.TimestampValue(value))), nil

	case KindInt64:
		return binary.LittleEndian.AppendUint64(dst, uint64(accessor.Int64Value(value))), nil

	case KindDecimal128:
		decimal := accessor.Decimal128Value(value)
		return append(dst, decimal[:]...), nil
	}
	return dst, fmt.Errorf("%w: cannot encode kind %s", ErrInvalidArgument, kind)
}

// appendJavaScriptWithScope writes the total length, the code string,
// and the scope document. The total follows the same policy as
// container length prefixes.
func appendJavaScriptWithScope[N any](dst []byte, value N, policy SizeMarkers, accessor Accessor[N]) ([]byte, error) {
	code, scope := accessor.JavaScriptWithScopeValue(value)
	start := len(dst)
	dst = append(dst, 0, 0, 0, 0)
	dst, err := appendString(dst, code, "javascript code")
	if err != nil {
		return dst, err
	}
	dst, err = appendContainer(dst, scope, KindDocument, policy, accessor)
	if err != nil {
		return dst, fmt.Errorf("scope: %w", err)
	}

	var marker int32
	switch policy {
	case Recompute:
		marker, err = encodedSize(len(dst) - start)
		if err != nil {
			return dst, err
		}
	case TrustCached:
		// Total prefix, string prefix, code, NUL, then the scope's own
		// cached size.
		marker = accessor.DocumentSizeBytes(scope) + int32(4+4+len(code)+1)
	default:
		marker = -1
	}
	binary.LittleEndian.PutUint32(dst[start:], uint32(marker))
	return dst, nil
}

func appendString(dst []byte, value, what string) ([]byte, error) {
	if err := checkCString(value, what); err != nil {
		return dst, err
	}
	length, err := encodedSize(len(value) + 1)
	if err != nil {
		return dst, err
	}
	dst = binary.LittleEndian.AppendUint32(dst, uint32(length))
	dst = append(dst, value...)
	return append(dst, 0), nil
}

func checkCString(value, what string) error {
	if i := strings.IndexByte(value, 0); i >= 0 {
		return fmt.Errorf("%w: %s contains a NUL byte at index %d", ErrInvalidArgument, what, i)
	}
	return nil
}
