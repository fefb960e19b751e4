// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/bsonkit/lib/bson"
	"github.com/bureau-foundation/bsonkit/lib/bsonfile"
)

// EnvironmentVariable names the config file when no --config flag is
// given.
const EnvironmentVariable = "BSONKIT_CONFIG"

// Output formats accepted by decode.format.
var formats = []string{"json", "yaml", "cbor"}

// Config holds the defaults for bsonkit commands. Command-line flags
// override every field.
type Config struct {
	// Decode configures reading BSON.
	Decode DecodeConfig `yaml:"decode"`

	// Encode configures writing BSON.
	Encode EncodeConfig `yaml:"encode"`

	// Extract configures path extraction.
	Extract ExtractConfig `yaml:"extract"`

	// Log configures the command logger.
	Log LogConfig `yaml:"log"`
}

// DecodeConfig configures reading BSON.
type DecodeConfig struct {
	// Trust uses container and string length prefixes instead of
	// scanning for terminators. Only safe for input whose size markers
	// are known to be current.
	// Default: false
	Trust bool `yaml:"trust"`

	// Format is the output format of decode: json, yaml, or cbor.
	// Default: json
	Format string `yaml:"format"`

	// Compact writes JSON on one line.
	// Default: false
	Compact bool `yaml:"compact"`
}

// EncodeConfig configures writing BSON.
type EncodeConfig struct {
	// SizeMarkers is the length prefix policy: recompute, trust, or
	// minus-one.
	// Default: recompute
	SizeMarkers string `yaml:"size_markers"`

	// Compression wraps the output: none, zstd, or lz4.
	// Default: none
	Compression string `yaml:"compression"`
}

// ExtractConfig configures path extraction.
type ExtractConfig struct {
	// Separator splits a path argument into segments.
	// Default: "."
	Separator string `yaml:"separator"`
}

// LogConfig configures the command logger.
type LogConfig struct {
	// Level is the minimum level: debug, info, warn, or error.
	// Default: info
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Decode: DecodeConfig{
			Format: "json",
		},
		Encode: EncodeConfig{
			SizeMarkers: bson.Recompute.String(),
			Compression: bsonfile.CompressionNone.String(),
		},
		Extract: ExtractConfig{
			Separator: ".",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load loads the file named by BSONKIT_CONFIG. There is no search path:
// if the variable is unset, Load returns [Default].
func Load() (*Config, error) {
	path := os.Getenv(EnvironmentVariable)
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile loads and validates a config file. Fields absent from the
// file keep their defaults; unknown fields are errors.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if err := cfg.loadFile(path); err != nil {
		return nil, fmt.Errorf("loading config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate checks every enumerated field.
func (c *Config) Validate() error {
	var errs []error

	if !slices.Contains(formats, c.Decode.Format) {
		errs = append(errs, fmt.Errorf("decode.format must be one of: %v", formats))
	}
	if _, err := bson.ParseSizeMarkers(c.Encode.SizeMarkers); err != nil {
		errs = append(errs, fmt.Errorf("encode.size_markers: %w", err))
	}
	if _, err := bsonfile.ParseCompression(c.Encode.Compression); err != nil {
		errs = append(errs, fmt.Errorf("encode.compression: %w", err))
	}
	if c.Extract.Separator == "" {
		errs = append(errs, errors.New("extract.separator is required"))
	}
	if _, err := c.LogLevel(); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}

	return errors.Join(errs...)
}

// SizeMarkers returns the parsed encode.size_markers.
func (c *Config) SizeMarkers() (bson.SizeMarkers, error) {
	return bson.ParseSizeMarkers(c.Encode.SizeMarkers)
}

// Compression returns the parsed encode.compression.
func (c *Config) Compression() (bsonfile.Compression, error) {
	return bsonfile.ParseCompression(c.Encode.Compression)
}

// LogLevel returns the parsed log.level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, err
	}
	return level, nil
}
