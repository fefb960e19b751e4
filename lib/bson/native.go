// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bson

import "fmt"

// Native is the [Module] for this package's own node types.
type Native struct{}

var _ Module[Node] = Native{}

func (Native) NewDouble(value float64) Node { return Double(value) }
func (Native) NewText(value string) Node    { return Text(value) }

func (Native) NewDocument(sizeBytes int32) Node {
	document := NewDocument()
	document.SetSizeBytes(sizeBytes)
	return document
}

func (Native) AddDocumentField(document Node, name string, value Node) Node {
	document.(*Document).set(name, value)
	return document
}

func (Native) NewArray(sizeBytes int32) Node {
	array := &Array{}
	array.SetSizeBytes(sizeBytes)
	return array
}

func (Native) AppendArrayElement(array Node, value Node) Node {
	a := array.(*Array)
	a.items = append(a.items, value)
	return a
}

func (Native) NewBinary(subtype BinarySubtype, data []byte) Node {
	return Binary{Subtype: subtype, Data: data}
}

func (Native) NewUndefined() Node               { return Undefined{} }
func (Native) NewObjectID(value ObjectID) Node  { return value }
func (Native) NewBoolean(value bool) Node       { return Boolean(value) }
func (Native) NewUTCDateTime(millis int64) Node { return UTCDateTime(millis) }
func (Native) NewNull() Node                    { return Null{} }

func (Native) NewRegex(pattern, options string) Node {
	return NewRegex(pattern, options)
}

func (Native) NewDBPointer(name string, value ObjectID) Node {
	return DBPointer{Name: name, Value: value}
}

func (Native) NewJavaScript(code string) Node { return JavaScript(code) }
func (Native) NewSymbol(value string) Node    { return Symbol(value) }

func (Native) NewJavaScriptWithScope(code string, scope Node) Node {
	return JavaScriptWithScope{Code: code, Scope: scope.(*Document)}
}

func (Native) NewInt32(value int32) Node           { return Int32(value) }
func (Native) NewTimestamp(value int64) Node       { return Timestamp(value) }
func (Native) NewInt64(value int64) Node           { return Int64(value) }
func (Native) NewDecimal128(value Decimal128) Node { return value }
func (Native) NewMinKey() Node                     { return MinKey{} }
func (Native) NewMaxKey() Node                     { return MaxKey{} }

func (Native) KindOf(node Node) (Kind, error) {
	if node == nil {
		return 0, fmt.Errorf("%w: nil node", ErrInvalidArgument)
	}
	switch n := node.(type) {
	case *Document:
		if n == nil {
			return 0, fmt.Errorf("%w: nil document", ErrInvalidArgument)
		}
	case *Array:
		if n == nil {
			return 0, fmt.Errorf("%w: nil array", ErrInvalidArgument)
		}
	}
	return node.Kind(), nil
}

func (Native) DocumentLen(document Node) int { return document.(*Document).Len() }

func (Native) DocumentField(document Node, i int) (string, Node) {
	return document.(*Document).At(i)
}

func (Native) DocumentSizeBytes(document Node) int32 { return document.(*Document).SizeBytes() }

func (Native) SetDocumentSizeBytes(document Node, size int32) {
	document.(*Document).SetSizeBytes(size)
}

func (Native) ArrayLen(array Node) int             { return array.(*Array).Len() }
func (Native) ArrayElement(array Node, i int) Node { return array.(*Array).At(i) }
func (Native) ArraySizeBytes(array Node) int32     { return array.(*Array).SizeBytes() }

func (Native) SetArraySizeBytes(array Node, size int32) {
	array.(*Array).SetSizeBytes(size)
}

func (Native) DoubleValue(node Node) float64 { return float64(node.(Double)) }
func (Native) TextValue(node Node) string    { return string(node.(Text)) }

func (Native) BinaryValue(node Node) (BinarySubtype, []byte) {
	binary := node.(Binary)
	return binary.Subtype, binary.Data
}

func (Native) ObjectIDValue(node Node) ObjectID { return node.(ObjectID) }
func (Native) BooleanValue(node Node) bool      { return bool(node.(Boolean)) }
func (Native) UTCDateTimeValue(node Node) int64 { return int64(node.(UTCDateTime)) }

func (Native) RegexValue(node Node) (string, string) {
	regex := node.(Regex)
	return regex.pattern, regex.options
}

func (Native) DBPointerValue(node Node) (string, ObjectID) {
	pointer := node.(DBPointer)
	return pointer.Name, pointer.Value
}

func (Native) JavaScriptValue(node Node) string { return string(node.(JavaScript)) }
func (Native) SymbolValue(node Node) string     { return string(node.(Symbol)) }

func (Native) JavaScriptWithScopeValue(node Node) (string, Node) {
	js := node.(JavaScriptWithScope)
	scope := js.Scope
	if scope == nil {
		scope = NewDocument()
	}
	return js.Code, scope
}

func (Native) Int32Value(node Node) int32           { return int32(node.(Int32)) }
func (Native) TimestampValue(node Node) int64       { return int64(node.(Timestamp)) }
func (Native) Int64Value(node Node) int64           { return int64(node.(Int64)) }
func (Native) Decimal128Value(node Node) Decimal128 { return node.(Decimal128) }
