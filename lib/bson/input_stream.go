// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bson

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
)

const streamChunk = 64 << 10

// StreamInput reads from a forward-only [io.Reader]. It cannot look
// ahead, so ReadString always scans for the terminator.
type StreamInput struct {
	reader *bufio.Reader
	offset int64
}

// NewStreamInput reads from r, buffering unless r is already a
// *bufio.Reader.
func NewStreamInput(r io.Reader) *StreamInput {
	reader, ok := r.(*bufio.Reader)
	if !ok {
		reader = bufio.NewReader(r)
	}
	return &StreamInput{reader: reader}
}

// AtEnd reports whether the stream is exhausted. It blocks until a byte
// is available or the reader returns an error.
func (s *StreamInput) AtEnd() (bool, error) {
	_, err := s.reader.Peek(1)
	if errors.Is(err, io.EOF) {
		return true, nil
	}
	return false, err
}

func (s *StreamInput) Offset() int64 {
	return s.offset
}

func (s *StreamInput) wrap(err error, need int) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return endOfInput(s.offset, need)
	}
	return fmt.Errorf("reading at offset %d: %w", s.offset, err)
}

func (s *StreamInput) ReadByte() (byte, error) {
	b, err := s.reader.ReadByte()
	if err != nil {
		return 0, s.wrap(err, 1)
	}
	s.offset++
	return b, nil
}

func (s *StreamInput) SkipBytes(n int) error {
	if n < 0 {
		return invalidLength(s.offset, n)
	}
	discarded, err := s.reader.Discard(n)
	s.offset += int64(discarded)
	if err != nil {
		return s.wrap(err, n-discarded)
	}
	return nil
}

func (s *StreamInput) ReadBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, invalidLength(s.offset, n)
	}
	if n > streamChunk {
		// Grow with the data instead of trusting a length prefix for the
		// allocation size.
		var buffer bytes.Buffer
		copied, err := io.CopyN(&buffer, s.reader, int64(n))
		s.offset += copied
		if err != nil {
			return nil, s.wrap(err, n-int(copied))
		}
		return buffer.Bytes(), nil
	}
	out := make([]byte, n)
	read, err := io.ReadFull(s.reader, out)
	s.offset += int64(read)
	if err != nil {
		return nil, s.wrap(err, n-read)
	}
	return out, nil
}

func (s *StreamInput) ReadCString() (string, error) {
	line, err := s.reader.ReadString(0)
	s.offset += int64(len(line))
	if err != nil {
		return "", s.wrap(err, 1)
	}
	return line[:len(line)-1], nil
}

func (s *StreamInput) SkipCString() error {
	_, err := s.ReadCString()
	return err
}

func (s *StreamInput) ReadString() (string, error) {
	if err := s.SkipBytes(4); err != nil {
		return "", err
	}
	return s.ReadCString()
}
