// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bsoncmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/bsonkit/cmd/bsonkit/cli"
	"github.com/bureau-foundation/bsonkit/lib/bson"
)

type diagParams struct {
	commonParams
	Hex bool `flag:"hex,x" desc:"treat input as hex-encoded BSON"`
}

func diagCommand(s streams) *cli.Command {
	var params diagParams

	return &cli.Command{
		Name:    "diag",
		Summary: "Show BSON documents as a typed tree",
		Description: `Print each document as an indented tree that shows the BSON type of
every value and the length prefix of every document and array.

When a length prefix does not match the encoded length of its
contents, the actual length is shown beside it:

  document size=-1 (actual 12)

Use this to inspect values that JSON output flattens to strings, such
as ObjectIDs, timestamps, and Decimal128 values.`,
		Usage: "bsonkit diag [-x] [file]",
		Examples: []cli.Example{
			{
				Description: "Inspect a document",
				Command:     "bsonkit diag doc.bson",
			},
			{
				Description: "Inspect hex-encoded BSON",
				Command:     "echo '0c000000 10 61 00 01000000 00' | bsonkit diag --hex",
			},
		},
		Flags: func() *pflag.FlagSet { return cli.FlagsFromParams("diag", &params) },
		Run: func(args []string) error {
			_, logger, err := params.load("diag")
			if err != nil {
				return err
			}
			input, _, err := openInput("diag", args, 0, s.in, params.Hex, logger)
			if err != nil {
				return err
			}
			defer input.Close()
			return diagBSON(input, s.out)
		},
	}
}

// diagBSON writes the typed tree of every document in r to w.
func diagBSON(r io.Reader, w io.Writer) error {
	_, err := eachDocument(r, false, func(index int, document *bson.Document) error {
		if index > 0 {
			fmt.Fprintln(w)
		}
		var builder strings.Builder
		writeTree(&builder, document, 0)
		_, err := io.WriteString(w, builder.String())
		return err
	})
	return err
}

// writeTree renders node and, for containers, its children at the next
// indentation level.
func writeTree(builder *strings.Builder, node bson.Node, depth int) {
	switch value := node.(type) {
	case *bson.Document:
		builder.WriteString("document " + sizeLabel(value, value.SizeBytes()) + "\n")
		for i := range value.Len() {
			name, field := value.At(i)
			writeChild(builder, name, field, depth+1)
		}
	case *bson.Array:
		builder.WriteString("array " + sizeLabel(value, value.SizeBytes()) + "\n")
		for i := range value.Len() {
			writeChild(builder, fmt.Sprint(i), value.At(i), depth+1)
		}
	case bson.JavaScriptWithScope:
		fmt.Fprintf(builder, "javascript_with_scope %q scope=", value.Code)
		writeTree(builder, value.Scope, depth)
	case bson.Double:
		fmt.Fprintf(builder, "double(%v)\n", value)
	case bson.Boolean:
		fmt.Fprintf(builder, "boolean(%v)\n", value)
	case bson.Text:
		fmt.Fprintf(builder, "string(%v)\n", value)
	default:
		fmt.Fprintf(builder, "%v\n", value)
	}
}

func writeChild(builder *strings.Builder, name string, node bson.Node, depth int) {
	builder.WriteString(strings.Repeat("  ", depth))
	fmt.Fprintf(builder, "%q: ", name)
	writeTree(builder, node, depth)
}

// sizeLabel formats a container's declared length prefix and, when it
// differs, the length the container actually encodes to. WriteMinusOne
// leaves the cached sizes of the tree untouched.
func sizeLabel(container bson.Node, declared int32) string {
	encoded, err := bson.MarshalNode(container, bson.WriteMinusOne)
	if err != nil {
		return fmt.Sprintf("size=%d", declared)
	}
	// The bare encoding starts with the one-byte type fingerprint.
	actual := int32(len(encoded) - 1)
	if actual == declared {
		return fmt.Sprintf("size=%d", declared)
	}
	return fmt.Sprintf("size=%d (actual %d)", declared, actual)
}
