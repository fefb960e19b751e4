// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bson

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// Buffer is a seekable in-memory byte source. *bytes.Reader implements
// it.
type Buffer interface {
	io.Reader
	io.ReaderAt
	io.ByteReader
	io.Seeker
	Size() int64
}

// BufferInput reads from the current position of a [Buffer]. Reads
// advance the buffer's own position, so consecutive documents can be
// decoded from one buffer by creating an input per document or reusing
// one input.
type BufferInput struct {
	buffer Buffer
	trust  bool
}

// NewBufferInput reads from buffer starting at its current position.
// With trust set, ReadString probes the buffer to validate string length
// prefixes.
func NewBufferInput(buffer Buffer, trust bool) *BufferInput {
	return &BufferInput{buffer: buffer, trust: trust}
}

func (b *BufferInput) Offset() int64 {
	position, err := b.buffer.Seek(0, io.SeekCurrent)
	if err != nil {
		return -1
	}
	return position
}

// Remaining returns the number of unread bytes.
func (b *BufferInput) Remaining() int64 {
	return b.buffer.Size() - b.Offset()
}

func (b *BufferInput) ReadByte() (byte, error) {
	c, err := b.buffer.ReadByte()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return 0, endOfInput(b.Offset(), 1)
		}
		return 0, err
	}
	return c, nil
}

func (b *BufferInput) SkipBytes(n int) error {
	offset := b.Offset()
	if n < 0 {
		return invalidLength(offset, n)
	}
	if int64(n) > b.buffer.Size()-offset {
		return endOfInput(offset, n)
	}
	_, err := b.buffer.Seek(int64(n), io.SeekCurrent)
	return err
}

func (b *BufferInput) ReadBytes(n int) ([]byte, error) {
	offset := b.Offset()
	if n < 0 {
		return nil, invalidLength(offset, n)
	}
	if int64(n) > b.buffer.Size()-offset {
		return nil, endOfInput(offset, n)
	}
	out := make([]byte, n)
	if _, err := io.ReadFull(b.buffer, out); err != nil {
		return nil, fmt.Errorf("reading %d bytes at offset %d: %w", n, offset, err)
	}
	return out, nil
}

func (b *BufferInput) ReadCString() (string, error) {
	var builder bytes.Buffer
	for {
		c, err := b.ReadByte()
		if err != nil {
			return "", err
		}
		if c == 0 {
			return builder.String(), nil
		}
		builder.WriteByte(c)
	}
}

func (b *BufferInput) SkipCString() error {
	for {
		c, err := b.ReadByte()
		if err != nil {
			return err
		}
		if c == 0 {
			return nil
		}
	}
}

func (b *BufferInput) ReadString() (string, error) {
	length, err := readInt32(b)
	if err != nil {
		return "", err
	}
	if b.trust && length > 0 {
		position := b.Offset()
		if int64(length) <= b.buffer.Size()-position {
			var probe [1]byte
			if _, err := b.buffer.ReadAt(probe[:], position+int64(length)-1); err == nil && probe[0] == 0 {
				data, err := b.ReadBytes(int(length))
				if err != nil {
					return "", err
				}
				return string(data[:length-1]), nil
			}
		}
	}
	return b.ReadCString()
}
