// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package jsonview converts between BSON node trees and the generic
// values produced by JSON, YAML, and CBOR decoders.
//
// Documents become [Object], which keeps member order and marshals to
// JSON and YAML in that order. The conversion toward generic values is
// lossy: the BSON-only kinds (ObjectID, Regex, Decimal128, and so on)
// collapse to strings, integers, or null. The conversion back picks the
// narrowest BSON kind that holds the value:
//
//	value, err := jsonview.DecodeJSON(data)
//	node, err := jsonview.FromValue(value)
//	document := node.(*bson.Document)
//
// [DecodeJSON] and [DecodeYAML] preserve object member order, which
// the standard decoders into map[string]any do not.
package jsonview
