// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package jsonview

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// DecodeJSON decodes a single JSON value. Objects become [Object] with
// members in source order, arrays []any, and numbers json.Number so
// that integers keep their precision.
func DecodeJSON(data []byte) (any, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	value, err := decodeJSONValue(decoder)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decoding JSON: %w", io.ErrUnexpectedEOF)
		}
		return nil, fmt.Errorf("decoding JSON: %w", err)
	}
	if token, err := decoder.Token(); err != io.EOF {
		if err != nil {
			return nil, fmt.Errorf("decoding JSON: %w", err)
		}
		return nil, fmt.Errorf("decoding JSON: unexpected %v after the value", token)
	}
	return value, nil
}

func decodeJSONValue(decoder *json.Decoder) (any, error) {
	token, err := decoder.Token()
	if err != nil {
		return nil, err
	}
	delimiter, ok := token.(json.Delim)
	if !ok {
		return token, nil
	}
	switch delimiter {
	case '{':
		object := Object{}
		for decoder.More() {
			key, err := decoder.Token()
			if err != nil {
				return nil, err
			}
			name, ok := key.(string)
			if !ok {
				return nil, fmt.Errorf("object key is %T, not a string", key)
			}
			value, err := decodeJSONValue(decoder)
			if err != nil {
				return nil, fmt.Errorf("member %q: %w", name, err)
			}
			object = append(object, Member{Name: name, Value: value})
		}
		if _, err := decoder.Token(); err != nil {
			return nil, err
		}
		return object, nil
	case '[':
		array := []any{}
		for decoder.More() {
			value, err := decodeJSONValue(decoder)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", len(array), err)
			}
			array = append(array, value)
		}
		if _, err := decoder.Token(); err != nil {
			return nil, err
		}
		return array, nil
	}
	return nil, fmt.Errorf("unexpected delimiter %v", delimiter)
}

// DecodeYAML decodes the first YAML document in data. Mappings become
// [Object] in source order; scalars take the types yaml.v3 resolves for
// them. An empty input decodes to nil.
func DecodeYAML(data []byte) (any, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("decoding YAML: %w", err)
	}
	value, err := fromYAMLNode(&root)
	if err != nil {
		return nil, fmt.Errorf("decoding YAML: %w", err)
	}
	return value, nil
}

func fromYAMLNode(node *yaml.Node) (any, error) {
	switch node.Kind {
	case 0:
		return nil, nil
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}
		return fromYAMLNode(node.Content[0])
	case yaml.AliasNode:
		return fromYAMLNode(node.Alias)
	case yaml.MappingNode:
		object := make(Object, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i]
			if key.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: mapping key is not a scalar", key.Line)
			}
			value, err := fromYAMLNode(node.Content[i+1])
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", key.Value, err)
			}
			object = append(object, Member{Name: key.Value, Value: value})
		}
		return object, nil
	case yaml.SequenceNode:
		array := make([]any, 0, len(node.Content))
		for i, element := range node.Content {
			value, err := fromYAMLNode(element)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			array = append(array, value)
		}
		return array, nil
	case yaml.ScalarNode:
		var value any
		if err := node.Decode(&value); err != nil {
			return nil, fmt.Errorf("line %d: %w", node.Line, err)
		}
		return value, nil
	}
	return nil, fmt.Errorf("line %d: unsupported YAML node kind %d", node.Line, node.Kind)
}
