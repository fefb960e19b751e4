// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bsoncmd

import (
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/bsonkit/cmd/bsonkit/cli"
	"github.com/bureau-foundation/bsonkit/lib/bson"
	"github.com/bureau-foundation/bsonkit/lib/jsonview"
)

type extractParams struct {
	commonParams
	Hex       bool   `flag:"hex,x"     desc:"treat input as hex-encoded BSON"`
	Compact   bool   `flag:"compact,c" desc:"compact output (no indentation)"`
	Separator string `flag:"separator" desc:"path segment separator (default from config, else \".\")"`
	Trust     bool   `flag:"trust"     desc:"skip sibling documents and arrays by their length prefix"`
}

// extractOptions are the resolved extract settings.
type extractOptions struct {
	separator string
	compact   bool
	trust     bool
}

func extractCommand(s streams) *cli.Command {
	var params extractParams
	var command *cli.Command

	command = &cli.Command{
		Name:    "extract",
		Summary: "Print one value from a document by path",
		Description: `Decode the single value at a path inside the first document of the
input and print it as JSON. Every other field is skipped without being
decoded.

Path segments are separated by "." (or --separator). A segment names a
field in a document or, inside an array, a decimal index. When a name
occurs more than once, the first occurrence is used. An empty path
prints the whole document.

Exits 1 without output when the path does not resolve.

With --trust, sibling documents and arrays are skipped using their
length prefixes. This is faster for large documents but returns wrong
results if a prefix is stale.`,
		Usage: "bsonkit extract [--separator SEP] [--trust] <path> [file]",
		Examples: []cli.Example{
			{
				Description: "Read a nested field",
				Command:     "bsonkit extract user.address.city doc.bson",
			},
			{
				Description: "Index into an array",
				Command:     "bsonkit extract items.0.price doc.bson",
			},
			{
				Description: "Use a separator that does not appear in field names",
				Command:     "bsonkit extract --separator / 'a.b/c' doc.bson",
			},
		},
		Flags: func() *pflag.FlagSet { return cli.FlagsFromParams("extract", &params) },
		Run: func(args []string) error {
			cfg, logger, err := params.load("extract")
			if err != nil {
				return err
			}
			options := extractOptions{
				separator: cfg.Extract.Separator,
				compact:   params.Compact,
				trust:     params.Trust,
			}
			if command.Changed("separator") {
				options.separator = params.Separator
			}
			if options.separator == "" {
				return cli.Validation("--separator must not be empty")
			}

			if len(args) == 0 {
				return cli.Validation("extract requires a path argument").
					WithHint("Run 'bsonkit extract --help' for usage.")
			}
			input, remaining, err := openInput("extract", args, 1, s.in, params.Hex, logger)
			if err != nil {
				return err
			}
			defer input.Close()
			if len(remaining) == 0 {
				return cli.Validation("extract requires a path argument").
					WithHint("Run 'bsonkit extract --help' for usage.")
			}
			return extractValue(input, s.out, remaining[0], options, logger)
		},
	}
	return command
}

// splitPath splits a path expression into segments. The empty
// expression is the empty path.
func splitPath(expression, separator string) []string {
	if expression == "" {
		return nil
	}
	return strings.Split(expression, separator)
}

// extractValue reads the first document from r and writes the value at
// path to w.
func extractValue(r io.Reader, w io.Writer, expression string, options extractOptions, logger *slog.Logger) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return cli.Internal("read input: %w", err)
	}
	if len(data) == 0 {
		return cli.Validation("empty input: expected BSON data")
	}

	path := splitPath(expression, options.separator)
	value, found, err := bson.ExtractBytes(data, path, options.trust)
	if err != nil {
		if errors.Is(err, bson.ErrInvalidArgument) {
			return cli.Validation("%w", err)
		}
		return cli.Internal("extract %q: %w", expression, err)
	}
	if !found {
		logger.Debug("path not found", "path", expression)
		return &cli.ExitError{Code: 1}
	}
	return writeJSON(w, jsonview.ToValue(value), options.compact)
}
