// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads the YAML configuration for bsonkit.
//
// Configuration is read from a single file named by either the
// BSONKIT_CONFIG environment variable (via [Load]) or a --config flag
// (via [LoadFile]). There is no ~/.config discovery and no automatic
// file search. Without a file, [Default] applies.
//
// The file sets defaults for the commands; flags given on the command
// line always win:
//
//	decode:
//	  trust: false
//	  format: json
//	encode:
//	  size_markers: recompute
//	  compression: zstd
//	extract:
//	  separator: "/"
//	log:
//	  level: debug
//
// Unknown keys are rejected so that a misspelled option fails loudly
// instead of being ignored.
package config
