// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bsonfile

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"log/slog"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression identifies the frame format wrapping a BSON file.
type Compression uint8

const (
	// CompressionNone is a bare document or document sequence.
	CompressionNone Compression = iota

	// CompressionZstd is a zstd frame at the default level.
	CompressionZstd

	// CompressionLZ4 is an LZ4 frame (not raw LZ4 blocks).
	CompressionLZ4
)

// Frame magic numbers as they appear on disk.
var (
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4Magic  = []byte{0x04, 0x22, 0x4d, 0x18}
)

// String returns the name accepted by [ParseCompression].
func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionZstd:
		return "zstd"
	case CompressionLZ4:
		return "lz4"
	default:
		return fmt.Sprintf("unknown(%d)", c)
	}
}

// ParseCompression parses "none", "zstd", or "lz4". The empty string is
// "none".
func ParseCompression(name string) (Compression, error) {
	switch name {
	case "none", "":
		return CompressionNone, nil
	case "zstd":
		return CompressionZstd, nil
	case "lz4":
		return CompressionLZ4, nil
	default:
		return 0, fmt.Errorf("unknown compression %q (expected none, zstd, or lz4)", name)
	}
}

// DetectCompression identifies the frame format from the first bytes of
// a file. Anything without a known magic number is taken as bare BSON.
// Read as a length prefix, the zstd magic is negative and the LZ4 magic
// is about 389 MiB, so neither collides with a plausible document.
func DetectCompression(header []byte) Compression {
	switch {
	case bytes.HasPrefix(header, zstdMagic):
		return CompressionZstd
	case bytes.HasPrefix(header, lz4Magic):
		return CompressionLZ4
	default:
		return CompressionNone
	}
}

// OpenReader wraps r with the decompressor its first bytes call for.
// Closing the result releases the decompressor but not r. logger may be
// nil.
func OpenReader(r io.Reader, logger *slog.Logger) (io.ReadCloser, Compression, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	buffered := bufio.NewReader(r)
	// A short or empty input cannot carry a frame header; the BSON
	// decoder reports the truncation.
	header, _ := buffered.Peek(len(zstdMagic))
	compression := DetectCompression(header)
	logger.Debug("opened BSON input", "compression", compression.String())

	switch compression {
	case CompressionZstd:
		decoder, err := zstd.NewReader(buffered)
		if err != nil {
			return nil, compression, fmt.Errorf("zstd reader: %w", err)
		}
		return zstdReadCloser{decoder}, compression, nil
	case CompressionLZ4:
		return io.NopCloser(lz4.NewReader(buffered)), compression, nil
	default:
		return io.NopCloser(buffered), compression, nil
	}
}

type zstdReadCloser struct {
	decoder *zstd.Decoder
}

func (z zstdReadCloser) Read(p []byte) (int, error) { return z.decoder.Read(p) }

func (z zstdReadCloser) Close() error {
	z.decoder.Close()
	return nil
}

// NewWriter returns a writer that compresses into w. Close flushes the
// frame; it does not close w.
func NewWriter(w io.Writer, compression Compression) (io.WriteCloser, error) {
	switch compression {
	case CompressionNone:
		return nopWriteCloser{w}, nil
	case CompressionZstd:
		encoder, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, fmt.Errorf("zstd writer: %w", err)
		}
		return encoder, nil
	case CompressionLZ4:
		return lz4.NewWriter(w), nil
	default:
		return nil, fmt.Errorf("unsupported compression: %s", compression)
	}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
