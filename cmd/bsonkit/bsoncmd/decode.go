// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bsoncmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/bsonkit/cmd/bsonkit/cli"
	"github.com/bureau-foundation/bsonkit/lib/bson"
	"github.com/bureau-foundation/bsonkit/lib/codec"
	"github.com/bureau-foundation/bsonkit/lib/jsonview"
)

type decodeParams struct {
	commonParams
	Hex     bool   `flag:"hex,x"     desc:"treat input as hex-encoded BSON"`
	Compact bool   `flag:"compact,c" desc:"compact output (no indentation)"`
	Slurp   bool   `flag:"slurp,s"   desc:"read a document sequence as one array"`
	To      string `flag:"to"        desc:"output format: json, yaml, or cbor" default:"json"`
	Trust   bool   `flag:"trust"     desc:"trust string length prefixes instead of scanning"`
}

// decodeOptions are the resolved decode settings after config and
// flags are merged.
type decodeOptions struct {
	format  string
	compact bool
	slurp   bool
	trust   bool
}

func decodeCommand(s streams) *cli.Command {
	var params decodeParams
	var command *cli.Command

	command = &cli.Command{
		Name:    "decode",
		Summary: "Convert BSON to JSON, YAML, or CBOR",
		Description: `Read BSON documents and write them as JSON (default), YAML, or CBOR.

Field order is preserved in JSON and YAML output. Types without a JSON
counterpart are rendered as strings: ObjectIDs, binary data, and
Decimal128 values as hex, regular expressions as "/pattern/options".
Use "bsonkit diag" to see the exact BSON types.

Each document in a sequence is written separately. With -s, the
sequence is written as a single array.

CBOR output uses Core Deterministic Encoding, which sorts map keys:
field order is not preserved.`,
		Usage: "bsonkit decode [-c] [-s] [--to json|yaml|cbor] [file]",
		Examples: []cli.Example{
			{
				Description: "Decode a file to pretty JSON",
				Command:     "bsonkit decode doc.bson",
			},
			{
				Description: "Decode a zstd-compressed dump to a YAML stream",
				Command:     "bsonkit decode --to yaml dump.bson.zst",
			},
			{
				Description: "Decode hex-encoded BSON",
				Command:     "echo '0c000000 10 61 00 01000000 00' | bsonkit decode --hex -c",
			},
		},
		Flags: func() *pflag.FlagSet { return cli.FlagsFromParams("decode", &params) },
		Run: func(args []string) error {
			cfg, logger, err := params.load("decode")
			if err != nil {
				return err
			}
			options := decodeOptions{
				format:  cfg.Decode.Format,
				compact: cfg.Decode.Compact,
				slurp:   params.Slurp,
				trust:   cfg.Decode.Trust,
			}
			if command.Changed("to") {
				options.format = params.To
			}
			if command.Changed("compact") {
				options.compact = params.Compact
			}
			if command.Changed("trust") {
				options.trust = params.Trust
			}

			input, _, err := openInput("decode", args, 0, s.in, params.Hex, logger)
			if err != nil {
				return err
			}
			defer input.Close()
			return decodeBSON(input, s.out, options, logger)
		},
	}
	return command
}

// decodeBSON reads a document sequence from r and writes it to w in the
// requested format.
func decodeBSON(r io.Reader, w io.Writer, options decodeOptions, logger *slog.Logger) error {
	write, finish, err := documentWriter(w, options)
	if err != nil {
		return err
	}

	var values []any
	count, err := eachDocument(r, options.trust, func(index int, document *bson.Document) error {
		value := jsonview.ToValue(document)
		if options.slurp {
			values = append(values, value)
			return nil
		}
		return write(value)
	})
	if err != nil {
		return err
	}
	logger.Debug("decoded documents", "count", count, "format", options.format)

	if options.slurp {
		if err := write(values); err != nil {
			return err
		}
	}
	return finish()
}

// documentWriter returns a function that writes one value in the chosen
// format and a function that flushes the output.
func documentWriter(w io.Writer, options decodeOptions) (func(any) error, func() error, error) {
	noop := func() error { return nil }
	switch options.format {
	case "json":
		return func(value any) error { return writeJSON(w, value, options.compact) }, noop, nil

	case "yaml":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		write := func(value any) error {
			if err := encoder.Encode(value); err != nil {
				return cli.Internal("encode YAML: %w", err)
			}
			return nil
		}
		return write, encoder.Close, nil

	case "cbor":
		encoder := codec.NewEncoder(w)
		write := func(value any) error {
			if err := encoder.Encode(jsonview.Plain(value)); err != nil {
				return cli.Internal("encode CBOR: %w", err)
			}
			return nil
		}
		return write, noop, nil

	default:
		return nil, nil, cli.Validation("unknown output format %q (expected json, yaml, or cbor)", options.format)
	}
}

// writeJSON encodes value as JSON and writes it to w with a trailing
// newline. When compact is false, output is pretty-printed with 2-space
// indentation.
func writeJSON(w io.Writer, value any, compact bool) error {
	var output []byte
	var err error
	if compact {
		output, err = json.Marshal(value)
	} else {
		output, err = json.MarshalIndent(value, "", "  ")
	}
	if err != nil {
		return cli.Internal("encode JSON: %w", err)
	}

	_, err = fmt.Fprintln(w, string(output))
	return err
}
