// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bson

import (
	"fmt"
	"math"
)

// Input is a forward cursor over BSON bytes. The decoder reads every
// value through it, so one decode algorithm serves byte slices,
// seekable buffers, and plain readers.
//
// All methods report [ErrEndOfInput] when the input runs out and
// [ErrInvalidLength] for negative counts. After an error the cursor
// position is unspecified.
type Input interface {
	// ReadByte consumes one byte.
	ReadByte() (byte, error)

	// SkipBytes advances n bytes without decoding them.
	SkipBytes(n int) error

	// ReadBytes consumes n bytes and returns them in a slice the caller
	// owns.
	ReadBytes(n int) ([]byte, error)

	// ReadCString consumes a NUL-terminated string and returns it
	// without the terminator.
	ReadCString() (string, error)

	// SkipCString advances past the next NUL byte.
	SkipCString() error

	// ReadString consumes a length-prefixed BSON string. Inputs that
	// trust string size markers take the prefix at its word when the
	// byte it points at is a NUL; otherwise they scan for the NUL, which
	// is always correct.
	ReadString() (string, error)

	// Offset returns the number of bytes consumed, for error context.
	Offset() int64
}

func endOfInput(offset int64, need int) error {
	return fmt.Errorf("%w: need %d bytes at offset %d", ErrEndOfInput, need, offset)
}

func invalidLength(offset int64, n int) error {
	return fmt.Errorf("%w: %d at offset %d", ErrInvalidLength, n, offset)
}

// readUint32 composes four bytes, least significant first.
func readUint32(in Input) (uint32, error) {
	var value uint32
	for shift := 0; shift < 32; shift += 8 {
		b, err := in.ReadByte()
		if err != nil {
			return 0, err
		}
		value |= uint32(b&0xFF) << shift
	}
	return value, nil
}

// readUint64 composes eight bytes, least significant first.
func readUint64(in Input) (uint64, error) {
	var value uint64
	for shift := 0; shift < 64; shift += 8 {
		b, err := in.ReadByte()
		if err != nil {
			return 0, err
		}
		value |= uint64(b&0xFF) << shift
	}
	return value, nil
}

func readInt32(in Input) (int32, error) {
	value, err := readUint32(in)
	return int32(value), err
}

func readInt64(in Input) (int64, error) {
	value, err := readUint64(in)
	return int64(value), err
}

func readFloat64(in Input) (float64, error) {
	value, err := readUint64(in)
	return math.Float64frombits(value), err
}

// readLength reads an int32 byte count and rejects negative values.
func readLength(in Input) (int, error) {
	offset := in.Offset()
	length, err := readInt32(in)
	if err != nil {
		return 0, err
	}
	if length < 0 {
		return 0, invalidLength(offset, int(length))
	}
	return int(length), nil
}
