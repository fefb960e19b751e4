// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bsoncmd

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"unicode"

	"github.com/bureau-foundation/bsonkit/cmd/bsonkit/cli"
	"github.com/bureau-foundation/bsonkit/lib/bson"
	"github.com/bureau-foundation/bsonkit/lib/bsonfile"
)

// sourceFile opens the last element of args if it names a regular file
// and returns the remaining args. Otherwise the args are returned
// unchanged with a nil file.
func sourceFile(args []string) (*os.File, []string, error) {
	if length := len(args); length > 0 {
		candidate := args[length-1]
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			file, err := os.Open(candidate)
			if err != nil {
				return nil, nil, cli.Internal("open %s: %w", candidate, err)
			}
			return file, args[:length-1], nil
		}
	}
	return nil, args, nil
}

// rejectExtra reports positional arguments beyond what a command takes.
// An argument that looks like a missing file is reported as not found.
func rejectExtra(command string, extra []string) error {
	if len(extra) == 0 {
		return nil
	}
	if _, err := os.Stat(extra[len(extra)-1]); errors.Is(err, fs.ErrNotExist) {
		return cli.NotFound("%s: %s: no such file", command, extra[len(extra)-1])
	}
	return cli.Validation("%s: unexpected argument %q", command, extra[0]).
		WithHint(fmt.Sprintf("Run 'bsonkit %s --help' for usage.", command))
}

// bsonInput is a decompressed BSON byte source.
type bsonInput struct {
	io.Reader
	compression bsonfile.Compression
	closers     []io.Closer
}

func (b *bsonInput) Close() error {
	var errs []error
	for i := len(b.closers) - 1; i >= 0; i-- {
		errs = append(errs, b.closers[i].Close())
	}
	return errors.Join(errs...)
}

// openInput resolves a command's BSON input: a trailing file argument
// or stdin, hex-decoded when hexMode is set, and decompressed when it
// starts with a zstd or LZ4 frame. positional is the number of
// arguments the command takes besides the file; any more are rejected
// before stdin is touched.
func openInput(command string, args []string, positional int, stdin io.Reader, hexMode bool, logger *slog.Logger) (*bsonInput, []string, error) {
	file, remaining, err := sourceFile(args)
	if err != nil {
		return nil, nil, err
	}
	input := &bsonInput{}
	var source io.Reader = stdin
	if file != nil {
		input.closers = append(input.closers, file)
		source = file
	}
	if len(remaining) > positional {
		input.Close()
		return nil, nil, rejectExtra(command, remaining[positional:])
	}

	if hexMode {
		data, err := io.ReadAll(source)
		if err != nil {
			input.Close()
			return nil, nil, cli.Internal("read input: %w", err)
		}
		decoded, err := decodeHexInput(data)
		if err != nil {
			input.Close()
			return nil, nil, cli.Validation("%w", err)
		}
		source = bytes.NewReader(decoded)
	}

	reader, compression, err := bsonfile.OpenReader(source, logger)
	if err != nil {
		input.Close()
		return nil, nil, cli.Internal("%w", err)
	}
	input.Reader = reader
	input.compression = compression
	input.closers = append(input.closers, reader)
	return input, remaining, nil
}

// readText reads a command's text input from a trailing file argument
// or stdin.
func readText(command string, args []string, stdin io.Reader) ([]byte, error) {
	file, remaining, err := sourceFile(args)
	if err != nil {
		return nil, err
	}
	if file != nil {
		defer file.Close()
		stdin = file
	}
	if err := rejectExtra(command, remaining); err != nil {
		return nil, err
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, cli.Internal("read input: %w", err)
	}
	return data, nil
}

// decodeHexInput strips whitespace from hex-encoded input and decodes
// it to binary bytes. Whitespace between hex digit pairs is allowed
// (e.g., "0c 00 00 00" or "0c000000").
func decodeHexInput(data []byte) ([]byte, error) {
	cleaned := bytes.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, data)

	if len(cleaned) == 0 {
		return nil, fmt.Errorf("empty input after stripping whitespace from hex")
	}

	decoded := make([]byte, hex.DecodedLen(len(cleaned)))
	count, err := hex.Decode(decoded, cleaned)
	if err != nil {
		return nil, fmt.Errorf("decode hex: %w", err)
	}
	return decoded[:count], nil
}

// eachDocument decodes the document sequence in r and calls fn for each
// document in order. Without trust the sequence is decoded as a stream.
// With trust it is read into memory so that length prefixes can be used
// to skip string scans.
func eachDocument(r io.Reader, trust bool, fn func(index int, document *bson.Document) error) (int, error) {
	var in bson.Input
	var atEnd func() (bool, error)
	if trust {
		data, err := io.ReadAll(r)
		if err != nil {
			return 0, cli.Internal("read input: %w", err)
		}
		array := bson.NewArrayInput(data, true)
		in = array
		atEnd = func() (bool, error) { return array.Remaining() == 0, nil }
	} else {
		stream := bson.NewStreamInput(r)
		in = stream
		atEnd = stream.AtEnd
	}

	count := 0
	for {
		end, err := atEnd()
		if err != nil {
			return count, cli.Internal("read input: %w", err)
		}
		if end {
			break
		}
		document, err := bson.DecodeDocument(in)
		if err != nil {
			return count, cli.Internal("decode document %d: %w", count, err)
		}
		if err := fn(count, document); err != nil {
			return count, err
		}
		count++
	}
	if count == 0 {
		return 0, cli.Validation("empty input: expected BSON data")
	}
	return count, nil
}
