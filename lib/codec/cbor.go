// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

// encMode writes Core Deterministic Encoding: sorted map keys, shortest
// integer forms, definite lengths only.
var encMode = mustEncMode(cbor.CoreDetEncOptions())

// decMode decodes maps under an any target as map[string]any, the shape
// the BSON value conversion expects for documents.
var decMode = mustDecMode(cbor.DecOptions{
	DefaultMapType: reflect.TypeOf(map[string]any(nil)),
})

func mustEncMode(options cbor.EncOptions) cbor.EncMode {
	mode, err := options.EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}
	return mode
}

func mustDecMode(options cbor.DecOptions) cbor.DecMode {
	mode, err := options.DecMode()
	if err != nil {
		panic("codec: CBOR decoder initialization failed: " + err.Error())
	}
	return mode
}

// Marshal encodes v deterministically.
func Marshal(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

// NewEncoder returns an encoder that appends deterministic CBOR items
// to w, one per Encode call, forming a CBOR sequence (RFC 8742).
func NewEncoder(w io.Writer) *cbor.Encoder {
	return encMode.NewEncoder(w)
}

// DecodeSequence decodes a CBOR sequence (RFC 8742): zero or more data
// items laid end to end. Items decode to generic values: maps become
// map[string]any, arrays []any, integers uint64 or int64, and byte
// strings []byte.
func DecodeSequence(data []byte) ([]any, error) {
	decoder := decMode.NewDecoder(bytes.NewReader(data))
	var items []any
	for {
		var item any
		err := decoder.Decode(&item)
		if errors.Is(err, io.EOF) {
			return items, nil
		}
		if err != nil {
			return items, fmt.Errorf("CBOR sequence item %d: %w", len(items), err)
		}
		items = append(items, item)
	}
}
