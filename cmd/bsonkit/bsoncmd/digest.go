// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bsoncmd

import (
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/bsonkit/cmd/bsonkit/cli"
	"github.com/bureau-foundation/bsonkit/lib/bson"
	"github.com/bureau-foundation/bsonkit/lib/bsonfile"
)

type digestParams struct {
	commonParams
	Hex    bool   `flag:"hex,x"  desc:"treat input as hex-encoded BSON"`
	Raw    bool   `flag:"raw"    desc:"hash the input bytes instead of each document's canonical encoding"`
	Expect string `flag:"expect" desc:"exit 1 unless every digest equals this hex digest"`
}

func digestCommand(s streams) *cli.Command {
	var params digestParams

	return &cli.Command{
		Name:    "digest",
		Summary: "Print BLAKE3 digests of BSON documents",
		Description: `Print a keyed BLAKE3 digest for each document in the input, one per
line.

The digest covers the document's canonical encoding, so two files that
differ only in their length prefixes (for example one written with -1
markers) produce the same digests. With --raw, a single digest of the
decompressed input bytes is printed instead.

With --expect, the command also exits 1 if any printed digest differs
from the given one.`,
		Usage: "bsonkit digest [--raw] [--expect HASH] [-x] [file]",
		Examples: []cli.Example{
			{
				Description: "Compare two dumps document by document",
				Command:     "diff <(bsonkit digest a.bson) <(bsonkit digest b.bson.zst)",
			},
		},
		Flags: func() *pflag.FlagSet { return cli.FlagsFromParams("digest", &params) },
		Run: func(args []string) error {
			_, logger, err := params.load("digest")
			if err != nil {
				return err
			}
			input, _, err := openInput("digest", args, 0, s.in, params.Hex, logger)
			if err != nil {
				return err
			}
			defer input.Close()

			var expect *bsonfile.Hash
			if params.Expect != "" {
				hash, err := bsonfile.ParseHash(params.Expect)
				if err != nil {
					return cli.Validation("--expect: %w", err)
				}
				expect = &hash
			}
			return digestBSON(input, s.out, params.Raw, expect)
		},
	}
}

// digestBSON writes one digest per document in r, or one digest of all
// of r when raw is set. When expect is non-nil, a digest that differs
// from it turns into exit code 1 after all digests are written.
func digestBSON(r io.Reader, w io.Writer, raw bool, expect *bsonfile.Hash) error {
	mismatch := false
	emit := func(hash bsonfile.Hash) error {
		if expect != nil && hash != *expect {
			mismatch = true
		}
		_, err := fmt.Fprintln(w, hash)
		return err
	}

	if raw {
		hash, err := bsonfile.DigestReader(r)
		if err != nil {
			return cli.Internal("read input: %w", err)
		}
		if err := emit(hash); err != nil {
			return err
		}
	} else {
		_, err := eachDocument(r, false, func(index int, document *bson.Document) error {
			hash, err := bsonfile.DocumentDigest(document)
			if err != nil {
				return cli.Internal("document %d: %w", index, err)
			}
			return emit(hash)
		})
		if err != nil {
			return err
		}
	}

	if mismatch {
		return &cli.ExitError{Code: 1}
	}
	return nil
}
