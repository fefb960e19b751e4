// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Command bsonkit decodes, encodes, and inspects BSON documents.
package main

import (
	"fmt"
	"os"

	"github.com/bureau-foundation/bsonkit/cmd/bsonkit/bsoncmd"
)

func main() {
	if err := run(); err != nil {
		// Commands that print their own result (extract on a missing
		// path, digest --expect) return an ExitError with the desired
		// code. Don't print a redundant "error:" line for those.
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	return bsoncmd.Root().Execute(os.Args[1:])
}
