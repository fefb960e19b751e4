// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package jsonview

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Member is one name/value pair of an [Object].
type Member struct {
	Name  string
	Value any
}

// Object is an ordered JSON object. Duplicate names are kept as they
// appear.
type Object []Member

// Get returns the value of the first member called name.
func (o Object) Get(name string) (any, bool) {
	for _, member := range o {
		if member.Name == name {
			return member.Value, true
		}
	}
	return nil, false
}

// MarshalJSON writes the members in order.
func (o Object) MarshalJSON() ([]byte, error) {
	var buffer bytes.Buffer
	buffer.WriteByte('{')
	for i, member := range o {
		if i > 0 {
			buffer.WriteByte(',')
		}
		name, err := json.Marshal(member.Name)
		if err != nil {
			return nil, err
		}
		buffer.Write(name)
		buffer.WriteByte(':')
		value, err := json.Marshal(member.Value)
		if err != nil {
			return nil, fmt.Errorf("member %q: %w", member.Name, err)
		}
		buffer.Write(value)
	}
	buffer.WriteByte('}')
	return buffer.Bytes(), nil
}

// MarshalYAML returns a mapping node with the members in order.
func (o Object) MarshalYAML() (any, error) {
	mapping := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, member := range o {
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: member.Name}
		value := &yaml.Node{}
		if err := value.Encode(member.Value); err != nil {
			return nil, fmt.Errorf("member %q: %w", member.Name, err)
		}
		mapping.Content = append(mapping.Content, key, value)
	}
	return mapping, nil
}
