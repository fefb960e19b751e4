// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bsoncmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bureau-foundation/bsonkit/cmd/bsonkit/cli"
	"github.com/bureau-foundation/bsonkit/lib/config"
	"github.com/bureau-foundation/bsonkit/lib/testutil"
)

// execute runs the command tree with stdin and returns stdout.
func execute(t *testing.T, stdin []byte, args ...string) ([]byte, error) {
	t.Helper()
	var stdout bytes.Buffer
	err := newRoot(streams{in: bytes.NewReader(stdin), out: &stdout}).Execute(args)
	return stdout.Bytes(), err
}

func TestRoot_EncodeDecodeRoundTrip(t *testing.T) {
	t.Setenv(config.EnvironmentVariable, "")

	encoded, err := execute(t, []byte(`{"name": "x", "count": 42}`), "encode")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	testutil.RequireBytes(t, encoded, testutil.Hex(t, nameCountHex))

	decoded, err := execute(t, encoded, "decode", "-c")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if string(decoded) != "{\"name\":\"x\",\"count\":42}\n" {
		t.Errorf("decode output = %q", decoded)
	}
}

func TestRoot_CompressedFileInput(t *testing.T) {
	t.Setenv(config.EnvironmentVariable, "")

	compressed, err := execute(t, []byte(`[{"a": 1}, {"b": "x"}]`), "encode", "--compress", "zstd")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	path := testutil.WriteFile(t, "dump.bson.zst", compressed)

	output, err := execute(t, nil, "validate", "-s", path)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if string(output) != "valid\n" {
		t.Errorf("validate output = %q", output)
	}

	// extract reads only the first document of a sequence.
	output, err = execute(t, nil, "extract", "a", path)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if string(output) != "1\n" {
		t.Errorf("extract output = %q", output)
	}
}

func TestRoot_ExtractMissingPath(t *testing.T) {
	t.Setenv(config.EnvironmentVariable, "")

	output, err := execute(t, []byte(documentAHex), "extract", "--hex", "nothing")
	requireExitCode(t, err, 1)
	if len(output) != 0 {
		t.Errorf("output = %q, want none", output)
	}

	_, err = execute(t, []byte(documentAHex), "extract", "--hex")
	requireCategory(t, err, cli.CategoryValidation)
}

func TestRoot_ConfigAndFlagPrecedence(t *testing.T) {
	configPath := testutil.WriteFile(t, "bsonkit.yaml", []byte(`
decode:
  format: yaml
extract:
  separator: /
`))
	t.Setenv(config.EnvironmentVariable, configPath)
	input := nestedDocument(t)

	output, err := execute(t, input, "extract", "-c", "d/t")
	if err != nil {
		t.Fatalf("extract with configured separator: %v", err)
	}
	if string(output) != "true\n" {
		t.Errorf("extract output = %q", output)
	}

	output, err = execute(t, input, "extract", "-c", "--separator", ".", "d.t")
	if err != nil {
		t.Fatalf("extract with --separator: %v", err)
	}
	if string(output) != "true\n" {
		t.Errorf("extract output = %q", output)
	}

	output, err = execute(t, testutil.Hex(t, documentAHex), "decode")
	if err != nil {
		t.Fatalf("decode with configured format: %v", err)
	}
	if string(output) != "a: 1\n" {
		t.Errorf("decode output = %q, want YAML", output)
	}

	output, err = execute(t, testutil.Hex(t, documentAHex), "decode", "--to", "json", "-c")
	if err != nil {
		t.Fatalf("decode --to json: %v", err)
	}
	if string(output) != "{\"a\":1}\n" {
		t.Errorf("decode output = %q, want JSON", output)
	}
}

func TestRoot_InvalidConfig(t *testing.T) {
	configPath := testutil.WriteFile(t, "bsonkit.yaml", []byte("decode:\n  format: xml\n"))

	_, err := execute(t, testutil.Hex(t, documentAHex), "decode", "--config", configPath)
	requireCategory(t, err, cli.CategoryValidation)
	if !strings.Contains(err.Error(), "decode.format") {
		t.Errorf("error = %q, want it to name decode.format", err)
	}
}

func TestRoot_Version(t *testing.T) {
	output, err := execute(t, nil, "--version")
	if err != nil {
		t.Fatalf("--version: %v", err)
	}
	if !strings.HasPrefix(string(output), "0.1.0-dev") {
		t.Errorf("version output = %q", output)
	}

	_, err = execute(t, nil)
	requireCategory(t, err, cli.CategoryValidation)
}
