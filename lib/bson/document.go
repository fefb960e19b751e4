// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bson

import (
	"fmt"
	"strings"
)

// UnknownSize is the cached size of a container that has never been
// decoded or encoded with [Recompute].
const UnknownSize int32 = -1

// Document is an ordered mapping from field names to nodes. Field order
// is insertion order and is preserved through encode and decode.
//
// A Document caches the byte length it was last decoded or encoded with.
// Set and Delete mark the cache stale without changing it. The zero
// value is an empty document with an unknown size.
type Document struct {
	names  []string
	values []Node
	index  map[string]int

	sizeBytes int32
	sizeKnown bool
	stale     bool
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{}
}

// Len returns the number of fields.
func (d *Document) Len() int {
	if d == nil {
		return 0
	}
	return len(d.names)
}

// At returns the name and value of the i-th field in insertion order.
func (d *Document) At(i int) (string, Node) {
	return d.names[i], d.values[i]
}

// Names returns the field names in order. The slice is a copy.
func (d *Document) Names() []string {
	return append([]string(nil), d.names...)
}

// Get returns the value of the named field.
func (d *Document) Get(name string) (Node, bool) {
	if d == nil {
		return nil, false
	}
	i, ok := d.lookup(name)
	if !ok {
		return nil, false
	}
	return d.values[i], true
}

// Set assigns a field. An existing field keeps its position; a new name
// is appended. Set returns the document so calls can be chained while
// building literals.
func (d *Document) Set(name string, value Node) *Document {
	d.set(name, value)
	d.stale = true
	return d
}

// set is Set without marking the cached size stale, used while decoding.
func (d *Document) set(name string, value Node) {
	if i, ok := d.lookup(name); ok {
		d.values[i] = value
		return
	}
	if d.index == nil {
		d.index = make(map[string]int)
	}
	d.index[name] = len(d.names)
	d.names = append(d.names, name)
	d.values = append(d.values, value)
}

// Delete removes the named field, reporting whether it was present.
func (d *Document) Delete(name string) bool {
	i, ok := d.lookup(name)
	if !ok {
		return false
	}
	d.names = append(d.names[:i], d.names[i+1:]...)
	d.values = append(d.values[:i], d.values[i+1:]...)
	delete(d.index, name)
	for j := i; j < len(d.names); j++ {
		d.index[d.names[j]] = j
	}
	d.stale = true
	return true
}

func (d *Document) lookup(name string) (int, bool) {
	i, ok := d.index[name]
	return i, ok
}

// SizeBytes returns the cached encoded length, or [UnknownSize].
func (d *Document) SizeBytes() int32 {
	if d == nil || !d.sizeKnown {
		return UnknownSize
	}
	return d.sizeBytes
}

// SizeStale reports whether the document has been mutated since its
// cached size was recorded. It does not see mutations of nested
// containers.
func (d *Document) SizeStale() bool {
	return d != nil && d.stale
}

// SetSizeBytes records size as the cached encoded length and clears the
// stale flag.
func (d *Document) SetSizeBytes(size int32) {
	d.sizeBytes = size
	d.sizeKnown = true
	d.stale = false
}

// String renders the document as {name: value, ...}.
func (d *Document) String() string {
	var builder strings.Builder
	builder.WriteByte('{')
	for i := 0; i < d.Len(); i++ {
		if i > 0 {
			builder.WriteString(", ")
		}
		fmt.Fprintf(&builder, "%q: %v", d.names[i], d.values[i])
	}
	builder.WriteByte('}')
	return builder.String()
}

// Equal reports whether two documents hold the same fields in the same
// order. Cached sizes are ignored.
func (d *Document) Equal(other *Document) bool {
	return equalDocuments(d, other)
}

// Array is an ordered sequence of nodes. On the wire its elements are
// named "0", "1", ... in order. Like [Document] it caches its encoded
// length and marks the cache stale on mutation.
type Array struct {
	items []Node

	sizeBytes int32
	sizeKnown bool
	stale     bool
}

// NewArray returns an array holding values.
func NewArray(values ...Node) *Array {
	return &Array{items: append([]Node(nil), values...)}
}

// Len returns the number of elements.
func (a *Array) Len() int {
	if a == nil {
		return 0
	}
	return len(a.items)
}

// At returns the i-th element.
func (a *Array) At(i int) Node {
	return a.items[i]
}

// Values returns the elements in order. The slice is a copy.
func (a *Array) Values() []Node {
	return append([]Node(nil), a.items...)
}

// Append adds values to the end of the array and returns it.
func (a *Array) Append(values ...Node) *Array {
	a.items = append(a.items, values...)
	a.stale = true
	return a
}

// Set replaces the i-th element. It panics if i is out of range, like a
// slice index.
func (a *Array) Set(i int, value Node) {
	a.items[i] = value
	a.stale = true
}

// Remove deletes the i-th element, shifting later elements down.
func (a *Array) Remove(i int) {
	a.items = append(a.items[:i], a.items[i+1:]...)
	a.stale = true
}

// SizeBytes returns the cached encoded length, or [UnknownSize].
func (a *Array) SizeBytes() int32 {
	if a == nil || !a.sizeKnown {
		return UnknownSize
	}
	return a.sizeBytes
}

// SizeStale reports whether the array has been mutated since its cached
// size was recorded.
func (a *Array) SizeStale() bool {
	return a != nil && a.stale
}

// SetSizeBytes records size as the cached encoded length and clears the
// stale flag.
func (a *Array) SetSizeBytes(size int32) {
	a.sizeBytes = size
	a.sizeKnown = true
	a.stale = false
}

// String renders the array as [value, ...].
func (a *Array) String() string {
	var builder strings.Builder
	builder.WriteByte('[')
	for i := 0; i < a.Len(); i++ {
		if i > 0 {
			builder.WriteString(", ")
		}
		fmt.Fprintf(&builder, "%v", a.items[i])
	}
	builder.WriteByte(']')
	return builder.String()
}

// Equal reports whether two arrays hold equal elements in order.
func (a *Array) Equal(other *Array) bool {
	return equalArrays(a, other)
}
