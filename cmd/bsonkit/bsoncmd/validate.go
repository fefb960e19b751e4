// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bsoncmd

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/bsonkit/cmd/bsonkit/cli"
	"github.com/bureau-foundation/bsonkit/lib/bson"
	"github.com/bureau-foundation/bsonkit/lib/bsonmongo"
)

type validateParams struct {
	commonParams
	Hex   bool `flag:"hex,x"   desc:"treat input as hex-encoded BSON"`
	Slurp bool `flag:"slurp,s" desc:"validate every document in a sequence"`
}

func validateCommand(s streams) *cli.Command {
	var params validateParams

	return &cli.Command{
		Name:    "validate",
		Summary: "Check that BSON length prefixes match their contents",
		Description: `Read BSON and verify that it is exactly what a fresh encoding of the
decoded documents produces. Exits 0 with "valid" if so, and exits 1
with the offset of the first difference if not.

This catches stale or -1 length prefixes, non-canonical boolean bytes,
and trailing garbage. Each document is also checked by the MongoDB Go
driver's structural validator.

Without -s, the input must hold exactly one document. With -s, it may
hold any number of documents laid end to end.`,
		Usage: "bsonkit validate [-s] [-x] [file]",
		Examples: []cli.Example{
			{
				Description: "Validate a document",
				Command:     "bsonkit validate doc.bson",
			},
			{
				Description: "Validate a compressed dump",
				Command:     "bsonkit validate -s dump.bson.zst",
			},
		},
		Flags: func() *pflag.FlagSet { return cli.FlagsFromParams("validate", &params) },
		Run: func(args []string) error {
			_, logger, err := params.load("validate")
			if err != nil {
				return err
			}
			input, _, err := openInput("validate", args, 0, s.in, params.Hex, logger)
			if err != nil {
				return err
			}
			defer input.Close()
			data, err := io.ReadAll(input)
			if err != nil {
				return cli.Internal("read input: %w", err)
			}
			return validateBSON(data, s.out, params.Slurp, logger)
		},
	}
}

// validateBSON checks that every document in data re-encodes to the
// same bytes and passes the driver's validator.
func validateBSON(data []byte, w io.Writer, slurp bool, logger *slog.Logger) error {
	if len(data) == 0 {
		return cli.Validation("empty input: expected BSON data")
	}

	in := bson.NewArrayInput(data, false)
	count := 0
	for in.Remaining() > 0 {
		if count > 0 && !slurp {
			return fmt.Errorf("not canonical: %d trailing bytes after the document at offset %d (use -s for a sequence)",
				in.Remaining(), in.Offset())
		}
		start := int(in.Offset())
		document, err := bson.DecodeDocument(in)
		if err != nil {
			return fmt.Errorf("decode document %d: %w", count, err)
		}
		original := data[start:in.Offset()]

		reencoded, err := bson.Marshal(document, bson.Recompute)
		if err != nil {
			return fmt.Errorf("re-encode document %d: %w", count, err)
		}
		if !bytes.Equal(original, reencoded) {
			return describeMismatch(count, start, original, reencoded)
		}
		if err := bsonmongo.Validate(original); err != nil {
			return fmt.Errorf("document %d at offset %d: %w", count, start, err)
		}
		count++
	}

	logger.Debug("validated documents", "count", count)
	fmt.Fprintln(w, "valid")
	return nil
}

func describeMismatch(index, start int, original, reencoded []byte) error {
	offset := 0
	minLength := min(len(original), len(reencoded))
	for offset < minLength && original[offset] == reencoded[offset] {
		offset++
	}

	return fmt.Errorf("not canonical: document %d differs from its re-encoding at byte %d (original %d bytes, re-encoded %d bytes)",
		index, start+offset, len(original), len(reencoded))
}
