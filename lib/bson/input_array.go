// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bson

import (
	"bytes"
	"fmt"
)

// ArrayInput reads from a byte slice between fixed bounds.
type ArrayInput struct {
	data  []byte
	pos   int
	end   int
	trust bool
}

// NewArrayInput reads all of data. With trust set, ReadString takes
// string length prefixes at their word when they check out.
func NewArrayInput(data []byte, trust bool) *ArrayInput {
	return &ArrayInput{data: data, end: len(data), trust: trust}
}

// NewArrayInputRange reads data[start:end].
func NewArrayInputRange(data []byte, trust bool, start, end int) (*ArrayInput, error) {
	if start < 0 || end < start || end > len(data) {
		return nil, fmt.Errorf("%w: range [%d, %d) outside %d-byte input", ErrInvalidArgument, start, end, len(data))
	}
	return &ArrayInput{data: data, pos: start, end: end, trust: trust}, nil
}

// Remaining returns the number of unread bytes.
func (a *ArrayInput) Remaining() int {
	return a.end - a.pos
}

func (a *ArrayInput) Offset() int64 {
	return int64(a.pos)
}

func (a *ArrayInput) ReadByte() (byte, error) {
	if a.pos >= a.end {
		return 0, endOfInput(int64(a.pos), 1)
	}
	b := a.data[a.pos]
	a.pos++
	return b, nil
}

func (a *ArrayInput) SkipBytes(n int) error {
	if n < 0 {
		return invalidLength(int64(a.pos), n)
	}
	if n > a.end-a.pos {
		return endOfInput(int64(a.pos), n)
	}
	a.pos += n
	return nil
}

func (a *ArrayInput) ReadBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, invalidLength(int64(a.pos), n)
	}
	if n > a.end-a.pos {
		return nil, endOfInput(int64(a.pos), n)
	}
	out := make([]byte, n)
	copy(out, a.data[a.pos:a.pos+n])
	a.pos += n
	return out, nil
}

// terminator returns the index of the next NUL within bounds.
func (a *ArrayInput) terminator() (int, error) {
	i := bytes.IndexByte(a.data[a.pos:a.end], 0)
	if i < 0 {
		return 0, fmt.Errorf("%w: unterminated string at offset %d", ErrEndOfInput, a.pos)
	}
	return a.pos + i, nil
}

func (a *ArrayInput) ReadCString() (string, error) {
	nul, err := a.terminator()
	if err != nil {
		return "", err
	}
	s := string(a.data[a.pos:nul])
	a.pos = nul + 1
	return s, nil
}

func (a *ArrayInput) SkipCString() error {
	nul, err := a.terminator()
	if err != nil {
		return err
	}
	a.pos = nul + 1
	return nil
}

func (a *ArrayInput) ReadString() (string, error) {
	length, err := readInt32(a)
	if err != nil {
		return "", err
	}
	if a.trust && length > 0 && int(length) <= a.end-a.pos && a.data[a.pos+int(length)-1] == 0 {
		s := string(a.data[a.pos : a.pos+int(length)-1])
		a.pos += int(length)
		return s, nil
	}
	return a.ReadCString()
}
