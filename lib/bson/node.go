// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bson

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Node is a BSON value. The implementations are exactly the types
// declared in this package, one per [Kind]; the unexported method keeps
// the set closed so that a type switch over Node with a case per kind is
// exhaustive.
type Node interface {
	Kind() Kind
	node()
}

// Sizes of the fixed-width payloads.
const (
	ObjectIDSize   = 12
	Decimal128Size = 16
)

// Double is a 64-bit IEEE 754 floating point value.
type Double float64

// Text is a UTF-8 string. It must not contain NUL bytes.
type Text string

// Binary is a byte payload with a subtype tag.
type Binary struct {
	Subtype BinarySubtype
	Data    []byte
}

// Undefined is the deprecated undefined value.
type Undefined struct{}

// ObjectID is a 12-byte object identifier.
type ObjectID [ObjectIDSize]byte

// Boolean is true or false.
type Boolean bool

// UTCDateTime is milliseconds since the Unix epoch.
type UTCDateTime int64

// Null is the null value.
type Null struct{}

// Regex is a regular expression with normalized options. Construct it
// with [NewRegex].
type Regex struct {
	pattern string
	options string
}

// DBPointer is the deprecated reference to a document in another
// collection.
type DBPointer struct {
	Name  string
	Value ObjectID
}

// JavaScript is JavaScript source code.
type JavaScript string

// Symbol is the deprecated symbol type.
type Symbol string

// JavaScriptWithScope is JavaScript source code with a scope document.
type JavaScriptWithScope struct {
	Code  string
	Scope *Document
}

// Int32 is a signed 32-bit integer.
type Int32 int32

// Timestamp is the 8-byte internal MongoDB timestamp, carried as an
// opaque integer. The low 32 bits are the increment and the high 32
// bits the seconds.
type Timestamp int64

// Int64 is a signed 64-bit integer.
type Int64 int64

// Decimal128 is an IEEE 754-2008 128-bit decimal in its wire byte
// order. The codec does not interpret it numerically.
type Decimal128 [Decimal128Size]byte

// MinKey compares lower than every other value.
type MinKey struct{}

// MaxKey compares higher than every other value.
type MaxKey struct{}

func (Double) Kind() Kind              { return KindDouble }
func (Text) Kind() Kind                { return KindText }
func (*Document) Kind() Kind           { return KindDocument }
func (*Array) Kind() Kind              { return KindArray }
func (Binary) Kind() Kind              { return KindBinary }
func (Undefined) Kind() Kind           { return KindUndefined }
func (ObjectID) Kind() Kind            { return KindObjectID }
func (Boolean) Kind() Kind             { return KindBoolean }
func (UTCDateTime) Kind() Kind         { return KindUTCDateTime }
func (Null) Kind() Kind                { return KindNull }
func (Regex) Kind() Kind               { return KindRegex }
func (DBPointer) Kind() Kind           { return KindDBPointer }
func (JavaScript) Kind() Kind          { return KindJavaScript }
func (Symbol) Kind() Kind              { return KindSymbol }
func (JavaScriptWithScope) Kind() Kind { return KindJavaScriptWithScope }
func (Int32) Kind() Kind               { return KindInt32 }
func (Timestamp) Kind() Kind           { return KindTimestamp }
func (Int64) Kind() Kind               { return KindInt64 }
func (Decimal128) Kind() Kind          { return KindDecimal128 }
func (MinKey) Kind() Kind              { return KindMinKey }
func (MaxKey) Kind() Kind              { return KindMaxKey }

func (Double) node()              {}
func (Text) node()                {}
func (*Document) node()           {}
func (*Array) node()              {}
func (Binary) node()              {}
func (Undefined) node()           {}
func (ObjectID) node()            {}
func (Boolean) node()             {}
func (UTCDateTime) node()         {}
func (Null) node()                {}
func (Regex) node()               {}
func (DBPointer) node()           {}
func (JavaScript) node()          {}
func (Symbol) node()              {}
func (JavaScriptWithScope) node() {}
func (Int32) node()               {}
func (Timestamp) node()           {}
func (Int64) node()               {}
func (Decimal128) node()          {}
func (MinKey) node()              {}
func (MaxKey) node()              {}

// padFixed copies value into a zeroed buffer of the given size. Short
// input is padded with trailing zeros; input longer than size is
// rejected.
func padFixed(dst []byte, value []byte, what string) error {
	if len(value) > len(dst) {
		return fmt.Errorf("%w: %s holds at most %d bytes, got %d", ErrInvalidArgument, what, len(dst), len(value))
	}
	copy(dst, value)
	return nil
}

// NewObjectID builds an ObjectID from up to 12 bytes.
func NewObjectID(value []byte) (ObjectID, error) {
	var id ObjectID
	if err := padFixed(id[:], value, "object id"); err != nil {
		return ObjectID{}, err
	}
	return id, nil
}

// ParseObjectID parses the 24-character hex form of an ObjectID.
func ParseObjectID(hexString string) (ObjectID, error) {
	decoded, err := hex.DecodeString(hexString)
	if err != nil {
		return ObjectID{}, fmt.Errorf("%w: object id: %v", ErrInvalidArgument, err)
	}
	return NewObjectID(decoded)
}

// Hex returns the lowercase hex encoding of the identifier.
func (id ObjectID) Hex() string {
	return hex.EncodeToString(id[:])
}

// NewDBPointer builds a DBPointer from a collection name and up to 12
// bytes of identifier.
func NewDBPointer(name string, value []byte) (DBPointer, error) {
	var pointer DBPointer
	if err := padFixed(pointer.Value[:], value, "db pointer value"); err != nil {
		return DBPointer{}, err
	}
	pointer.Name = name
	return pointer, nil
}

// NewDecimal128 builds a Decimal128 from up to 16 bytes in wire order.
func NewDecimal128(value []byte) (Decimal128, error) {
	var decimal Decimal128
	if err := padFixed(decimal[:], value, "decimal128"); err != nil {
		return Decimal128{}, err
	}
	return decimal, nil
}

// regexOptions are the option flags BSON defines for regular
// expressions, in ascending order.
const regexOptions = "ilmsux"

// NewRegex builds a Regex. Options outside "ilmsux" are dropped,
// duplicates removed, and the rest sorted, so "xiiz m" becomes "imx".
func NewRegex(pattern, options string) Regex {
	return Regex{pattern: pattern, options: normalizeRegexOptions(options)}
}

func normalizeRegexOptions(options string) string {
	var present [len(regexOptions)]bool
	for i := 0; i < len(options); i++ {
		if index := strings.IndexByte(regexOptions, options[i]); index >= 0 {
			present[index] = true
		}
	}
	var builder strings.Builder
	for index, set := range present {
		if set {
			builder.WriteByte(regexOptions[index])
		}
	}
	return builder.String()
}

// Pattern returns the regular expression source.
func (r Regex) Pattern() string { return r.pattern }

// Options returns the normalized option flags.
func (r Regex) Options() string { return r.options }

// Equal reports whether two regular expressions have the same pattern
// and options.
func (r Regex) Equal(other Regex) bool {
	return r == other
}

// Equal reports whether two binary values have the same subtype and
// bytes.
func (b Binary) Equal(other Binary) bool {
	return b.Subtype == other.Subtype && bytes.Equal(b.Data, other.Data)
}

// Equal reports whether two JavaScript-with-scope values have the same
// code and structurally equal scopes.
func (j JavaScriptWithScope) Equal(other JavaScriptWithScope) bool {
	return j.Code == other.Code && equalDocuments(j.Scope, other.Scope)
}

// Equal reports whether a and b are structurally equal. Cached sizes
// are ignored. Doubles compare by bit pattern, so NaN equals an
// identical NaN and 0.0 differs from -0.0.
func Equal(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch left := a.(type) {
	case Double:
		return math.Float64bits(float64(left)) == math.Float64bits(float64(b.(Double)))
	case *Document:
		return equalDocuments(left, b.(*Document))
	case *Array:
		return equalArrays(left, b.(*Array))
	case Binary:
		return left.Equal(b.(Binary))
	case JavaScriptWithScope:
		return left.Equal(b.(JavaScriptWithScope))
	default:
		// Every remaining node type is comparable.
		return a == b
	}
}

func equalDocuments(a, b *Document) bool {
	if a == nil || b == nil {
		return a.Len() == 0 && b.Len() == 0
	}
	if a.Len() != b.Len() {
		return false
	}
	for i := range a.names {
		if a.names[i] != b.names[i] || !Equal(a.values[i], b.values[i]) {
			return false
		}
	}
	return true
}

func equalArrays(a, b *Array) bool {
	if a.Len() != b.Len() {
		return false
	}
	for i := 0; i < a.Len(); i++ {
		if !Equal(a.At(i), b.At(i)) {
			return false
		}
	}
	return true
}

func (d Double) String() string {
	return strconv.FormatFloat(float64(d), 'g', -1, 64)
}

func (t Text) String() string {
	return strconv.Quote(string(t))
}

func (b Binary) String() string {
	return fmt.Sprintf("binary(%s, %s)", b.Subtype, hex.EncodeToString(b.Data))
}

func (Undefined) String() string { return "undefined" }

func (id ObjectID) String() string {
	return "objectid(" + id.Hex() + ")"
}

func (b Boolean) String() string {
	return strconv.FormatBool(bool(b))
}

func (t UTCDateTime) String() string {
	return "datetime(" + strconv.FormatInt(int64(t), 10) + ")"
}

func (Null) String() string { return "null" }

func (r Regex) String() string {
	return "/" + r.pattern + "/" + r.options
}

func (p DBPointer) String() string {
	return fmt.Sprintf("dbpointer(%q, %s)", p.Name, p.Value.Hex())
}

func (j JavaScript) String() string {
	return "javascript(" + strconv.Quote(string(j)) + ")"
}

func (s Symbol) String() string {
	return "symbol(" + strconv.Quote(string(s)) + ")"
}

func (j JavaScriptWithScope) String() string {
	return fmt.Sprintf("javascript(%q, %v)", j.Code, j.Scope)
}

func (i Int32) String() string {
	return "int32(" + strconv.FormatInt(int64(i), 10) + ")"
}

func (t Timestamp) String() string {
	return fmt.Sprintf("timestamp(%d, %d)", uint32(uint64(t)>>32), uint32(t))
}

func (i Int64) String() string {
	return "int64(" + strconv.FormatInt(int64(i), 10) + ")"
}

func (d Decimal128) String() string {
	return "decimal128(" + hex.EncodeToString(d[:]) + ")"
}

func (MinKey) String() string { return "minkey" }
func (MaxKey) String() string { return "maxkey" }
