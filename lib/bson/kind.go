// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bson

import "fmt"

// Kind identifies the type of a BSON value. The numeric value of each
// Kind is its fingerprint byte: the element type tag that precedes the
// value on the wire. These values are fixed by the BSON format (bsonspec.org).
type Kind uint8

const (
	KindDouble              Kind = 0x01
	KindText                Kind = 0x02
	KindDocument            Kind = 0x03
	KindArray               Kind = 0x04
	KindBinary              Kind = 0x05
	KindUndefined           Kind = 0x06 // deprecated in BSON, still decoded
	KindObjectID            Kind = 0x07
	KindBoolean             Kind = 0x08 // true and false share this tag
	KindUTCDateTime         Kind = 0x09
	KindNull                Kind = 0x0A
	KindRegex               Kind = 0x0B
	KindDBPointer           Kind = 0x0C // deprecated
	KindJavaScript          Kind = 0x0D
	KindSymbol              Kind = 0x0E // deprecated
	KindJavaScriptWithScope Kind = 0x0F // deprecated
	KindInt32               Kind = 0x10
	KindTimestamp           Kind = 0x11
	KindInt64               Kind = 0x12
	KindDecimal128          Kind = 0x13
	KindMaxKey              Kind = 0x7F
	KindMinKey              Kind = 0xFF
)

// Kinds lists every kind in fingerprint order.
var Kinds = []Kind{
	KindDouble,
	KindText,
	KindDocument,
	KindArray,
	KindBinary,
	KindUndefined,
	KindObjectID,
	KindBoolean,
	KindUTCDateTime,
	KindNull,
	KindRegex,
	KindDBPointer,
	KindJavaScript,
	KindSymbol,
	KindJavaScriptWithScope,
	KindInt32,
	KindTimestamp,
	KindInt64,
	KindDecimal128,
	KindMaxKey,
	KindMinKey,
}

// Fingerprint returns the element type byte written before values of
// this kind.
func (k Kind) Fingerprint() byte {
	return byte(k)
}

// Container reports whether values of this kind hold an element list
// (documents and arrays).
func (k Kind) Container() bool {
	return k == KindDocument || k == KindArray
}

// KindOf maps a fingerprint byte to its Kind. The second result is false
// for bytes that do not name a BSON element type, including the 0x00
// document terminator.
func KindOf(fingerprint byte) (Kind, bool) {
	switch Kind(fingerprint) {
	case KindDouble, KindText, KindDocument, KindArray, KindBinary,
		KindUndefined, KindObjectID, KindBoolean, KindUTCDateTime,
		KindNull, KindRegex, KindDBPointer, KindJavaScript, KindSymbol,
		KindJavaScriptWithScope, KindInt32, KindTimestamp, KindInt64,
		KindDecimal128, KindMaxKey, KindMinKey:
		return Kind(fingerprint), true
	default:
		return 0, false
	}
}

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindDouble:
		return "double"
	case KindText:
		return "string"
	case KindDocument:
		return "document"
	case KindArray:
		return "array"
	case KindBinary:
		return "binary"
	case KindUndefined:
		return "undefined"
	case KindObjectID:
		return "objectid"
	case KindBoolean:
		return "bool"
	case KindUTCDateTime:
		return "datetime"
	case KindNull:
		return "null"
	case KindRegex:
		return "regex"
	case KindDBPointer:
		return "dbpointer"
	case KindJavaScript:
		return "javascript"
	case KindSymbol:
		return "symbol"
	case KindJavaScriptWithScope:
		return "javascript_with_scope"
	case KindInt32:
		return "int32"
	case KindTimestamp:
		return "timestamp"
	case KindInt64:
		return "int64"
	case KindDecimal128:
		return "decimal128"
	case KindMaxKey:
		return "maxkey"
	case KindMinKey:
		return "minkey"
	default:
		return fmt.Sprintf("unknown(0x%02x)", byte(k))
	}
}

// BinarySubtype is the subtype byte stored with binary values. Subtypes
// the codec does not name are carried through unchanged.
type BinarySubtype byte

const (
	SubtypeGeneric     BinarySubtype = 0x00
	SubtypeFunction    BinarySubtype = 0x01
	SubtypeUUID        BinarySubtype = 0x04
	SubtypeMD5         BinarySubtype = 0x05
	SubtypeEncrypted   BinarySubtype = 0x06
	SubtypeCompressed  BinarySubtype = 0x07
	SubtypeUserDefined BinarySubtype = 0x80
)

// UserDefined reports whether the subtype is in the user-defined range
// 0x80-0xFF.
func (s BinarySubtype) UserDefined() bool {
	return s >= SubtypeUserDefined
}

// String returns the name of the subtype.
func (s BinarySubtype) String() string {
	switch s {
	case SubtypeGeneric:
		return "generic"
	case SubtypeFunction:
		return "function"
	case SubtypeUUID:
		return "uuid"
	case SubtypeMD5:
		return "md5"
	case SubtypeEncrypted:
		return "encrypted"
	case SubtypeCompressed:
		return "compressed"
	}
	if s.UserDefined() {
		return fmt.Sprintf("user(0x%02x)", byte(s))
	}
	return fmt.Sprintf("subtype(0x%02x)", byte(s))
}
