// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bsoncmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/bsonkit/cmd/bsonkit/cli"
	"github.com/bureau-foundation/bsonkit/lib/config"
	"github.com/bureau-foundation/bsonkit/lib/version"
)

// streams are the standard input and output of a command tree. Tests
// substitute buffers.
type streams struct {
	in  io.Reader
	out io.Writer
}

// commonParams are embedded in every subcommand's parameters.
type commonParams struct {
	Config  string `flag:"config"    desc:"configuration file (default: $BSONKIT_CONFIG)"`
	Verbose bool   `flag:"verbose,v" desc:"log at debug level"`
}

// load reads the configuration and builds the command's logger.
func (p commonParams) load(name string) (*config.Config, *slog.Logger, error) {
	var cfg *config.Config
	var err error
	if p.Config != "" {
		cfg, err = config.LoadFile(p.Config)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, nil, cli.Validation("%w", err)
	}

	level, err := cfg.LogLevel()
	if err != nil {
		return nil, nil, cli.Validation("%w", err)
	}
	if p.Verbose {
		level = slog.LevelDebug
	}
	return cfg, cli.NewCommandLogger(level).With("command", name), nil
}

// Root returns the bsonkit command tree bound to the process's stdin
// and stdout.
func Root() *cli.Command {
	return newRoot(streams{in: os.Stdin, out: os.Stdout})
}

func newRoot(s streams) *cli.Command {
	var showVersion bool

	return &cli.Command{
		Name:    "bsonkit",
		Summary: "Decode, encode, and inspect BSON",
		Description: `Tools for working with BSON documents from the command line.

bsonkit decodes BSON to JSON, YAML, or CBOR, encodes those formats back
to BSON, extracts single values by path without decoding the rest of
the document, and checks that a document's length prefixes match its
contents.`,
		Subcommands: []*cli.Command{
			decodeCommand(s),
			encodeCommand(s),
			extractCommand(s),
			diagCommand(s),
			validateCommand(s),
			digestCommand(s),
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("bsonkit", pflag.ContinueOnError)
			flagSet.BoolVar(&showVersion, "version", false, "print version information")
			return flagSet
		},
		Run: func(args []string) error {
			if showVersion {
				_, err := fmt.Fprintln(s.out, version.Full())
				return err
			}
			return cli.Validation("subcommand required").
				WithHint("Run 'bsonkit --help' for usage.")
		},
		Examples: []cli.Example{
			{
				Description: "Decode a document to pretty JSON",
				Command:     "bsonkit decode doc.bson",
			},
			{
				Description: "Encode JSON to BSON",
				Command:     `echo '{"count": 42}' | bsonkit encode > doc.bson`,
			},
			{
				Description: "Read one value without decoding the rest",
				Command:     "bsonkit extract user.address.city doc.bson",
			},
		},
	}
}
