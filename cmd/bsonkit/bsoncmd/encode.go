// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bsoncmd

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"
	"github.com/tidwall/jsonc"

	"github.com/bureau-foundation/bsonkit/cmd/bsonkit/cli"
	"github.com/bureau-foundation/bsonkit/lib/bson"
	"github.com/bureau-foundation/bsonkit/lib/bsonfile"
	"github.com/bureau-foundation/bsonkit/lib/codec"
	"github.com/bureau-foundation/bsonkit/lib/jsonview"
)

type encodeParams struct {
	commonParams
	From        string `flag:"from"         desc:"input format: json, jsonc, yaml, or cbor" default:"json"`
	SizeMarkers string `flag:"size-markers" desc:"length prefix policy: recompute, trust, or minus-one"`
	Compress    string `flag:"compress"     desc:"output frame: none, zstd, or lz4"`
	Force       bool   `flag:"force,f"      desc:"write binary output even when stdout is a terminal"`
}

// encodeOptions are the resolved encode settings.
type encodeOptions struct {
	from        string
	sizeMarkers bson.SizeMarkers
	compression bsonfile.Compression
}

func encodeCommand(s streams) *cli.Command {
	var params encodeParams
	var command *cli.Command

	command = &cli.Command{
		Name:    "encode",
		Summary: "Convert JSON, YAML, or CBOR to BSON",
		Description: `Read a JSON, JSONC, YAML, or CBOR value and write it as BSON.

The top-level value must be an object, which becomes one document, or
an array of objects, which becomes a document sequence. CBOR input may
also be a CBOR sequence of maps. Field order in
JSON and YAML input is preserved. Integers become int32 when they fit
and int64 otherwise; numbers with a fraction or exponent become doubles.
CBOR byte strings become generic binary data.

--size-markers selects what is written into length prefixes. Only
"recompute" produces valid BSON; "minus-one" writes -1 everywhere,
which is useful for exercising readers that must not trust prefixes.`,
		Usage: "bsonkit encode [--from json|jsonc|yaml|cbor] [--compress none|zstd|lz4] [file]",
		Examples: []cli.Example{
			{
				Description: "Encode a JSON object",
				Command:     `echo '{"name": "x", "count": 42}' | bsonkit encode > doc.bson`,
			},
			{
				Description: "Encode a commented JSON config as a compressed sequence",
				Command:     "bsonkit encode --from jsonc --compress zstd fixtures.jsonc > fixtures.bson.zst",
			},
			{
				Description: "Round-trip: encode then decode",
				Command:     `echo '{"count": 42}' | bsonkit encode | bsonkit decode`,
			},
		},
		Flags: func() *pflag.FlagSet { return cli.FlagsFromParams("encode", &params) },
		Run: func(args []string) error {
			cfg, logger, err := params.load("encode")
			if err != nil {
				return err
			}
			if command.Changed("size-markers") {
				cfg.Encode.SizeMarkers = params.SizeMarkers
			}
			if command.Changed("compress") {
				cfg.Encode.Compression = params.Compress
			}
			sizeMarkers, err := cfg.SizeMarkers()
			if err != nil {
				return cli.Validation("%w", err)
			}
			compression, err := cfg.Compression()
			if err != nil {
				return cli.Validation("%w", err)
			}

			if file, ok := s.out.(*os.File); ok && cli.IsTerminal(file) && !params.Force {
				return cli.Validation("refusing to write binary BSON to a terminal").
					WithHint("Redirect stdout to a file or pipe, or pass --force.")
			}

			data, err := readText("encode", args, s.in)
			if err != nil {
				return err
			}
			return encodeBSON(data, s.out, encodeOptions{
				from:        params.From,
				sizeMarkers: sizeMarkers,
				compression: compression,
			}, logger)
		},
	}
	return command
}

// encodeBSON parses data in the input format and writes the resulting
// documents to w.
func encodeBSON(data []byte, w io.Writer, options encodeOptions, logger *slog.Logger) error {
	value, err := parseInput(data, options.from)
	if err != nil {
		return err
	}

	var documents []*bson.Document
	if array, ok := value.([]any); ok {
		for i, element := range array {
			document, err := toDocument(element)
			if err != nil {
				return cli.Validation("element %d: %w", i, err)
			}
			documents = append(documents, document)
		}
	} else {
		document, err := toDocument(value)
		if err != nil {
			return cli.Validation("%w", err)
		}
		documents = append(documents, document)
	}

	writer, err := bsonfile.NewWriter(w, options.compression)
	if err != nil {
		return cli.Internal("%w", err)
	}
	for i, document := range documents {
		if err := bson.WriteDocument(writer, document, options.sizeMarkers); err != nil {
			writer.Close()
			return cli.Internal("encode document %d: %w", i, err)
		}
	}
	if err := writer.Close(); err != nil {
		return cli.Internal("flush output: %w", err)
	}
	logger.Debug("encoded documents",
		"count", len(documents),
		"size_markers", options.sizeMarkers.String(),
		"compression", options.compression.String(),
	)
	return nil
}

// parseInput decodes data into the value model shared with
// [jsonview.FromValue].
func parseInput(data []byte, format string) (any, error) {
	var value any
	var err error
	switch format {
	case "json":
		value, err = jsonview.DecodeJSON(data)
	case "jsonc":
		value, err = jsonview.DecodeJSON(jsonc.ToJSON(data))
	case "yaml":
		value, err = jsonview.DecodeYAML(data)
	case "cbor":
		var items []any
		items, err = codec.DecodeSequence(data)
		switch {
		case err == nil && len(items) == 0:
			err = io.ErrUnexpectedEOF
		case len(items) == 1:
			value = items[0]
		default:
			value = items
		}
	default:
		return nil, cli.Validation("unknown input format %q (expected json, jsonc, yaml, or cbor)", format)
	}
	if err != nil {
		return nil, cli.Validation("parse %s input: %w", format, err)
	}
	return value, nil
}

// toDocument converts a decoded value that must be an object.
func toDocument(value any) (*bson.Document, error) {
	node, err := jsonview.FromValue(value)
	if err != nil {
		return nil, err
	}
	document, ok := node.(*bson.Document)
	if !ok {
		return nil, cli.Validation("top-level value is %s, not an object", node.Kind())
	}
	return document, nil
}
