// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bsonmongo

import (
	"fmt"

	driverbson "go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/bureau-foundation/bsonkit/lib/bson"
)

// Unmarshal decodes the document at the start of data into driver
// values.
func Unmarshal(data []byte) (primitive.D, error) {
	document, err := bson.DecodeDocumentWith[any](bson.NewArrayInput(data, false), Module{})
	if err != nil {
		return nil, err
	}
	return document.(primitive.D), nil
}

// Marshal encodes a driver document.
func Marshal(document primitive.D, policy bson.SizeMarkers) ([]byte, error) {
	return bson.AppendDocumentWith[any](nil, document, policy, Module{})
}

// Extract decodes the value at path into a driver value.
func Extract(data []byte, path []string, trust bool) (any, bool, error) {
	return bson.ExtractWith[any](bson.NewArrayInput(data, trust), path, trust, Module{})
}

// FromNode converts a node-model value into driver values by encoding
// it with one module and decoding it with the other.
func FromNode(node bson.Node) (any, error) {
	data, err := bson.MarshalNode(node, bson.Recompute)
	if err != nil {
		return nil, err
	}
	return bson.DecodeNodeWith[any](bson.NewArrayInput(data, false), Module{})
}

// ToNode converts driver values into the node model.
func ToNode(value any) (bson.Node, error) {
	data, err := bson.AppendNodeWith[any](nil, value, bson.Recompute, Module{})
	if err != nil {
		return nil, err
	}
	return bson.UnmarshalNode(data)
}

// Validate checks data with the driver's own structural validator,
// which is independent of this module's decoder.
func Validate(data []byte) error {
	if err := driverbson.Raw(data).Validate(); err != nil {
		return fmt.Errorf("driver validation: %w", err)
	}
	return nil
}
