// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bsonfile

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/zeebo/blake3"

	"github.com/bureau-foundation/bsonkit/lib/bson"
)

// Hash is a 32-byte BLAKE3 digest.
type Hash [32]byte

// documentDomainKey is the BLAKE3 key for document digests: the ASCII
// domain name zero-padded to 32 bytes. Changing it changes every
// digest.
var documentDomainKey = [32]byte{
	'b', 'u', 'r', 'e', 'a', 'u', '.', 'b', 's', 'o', 'n', '.',
	'd', 'o', 'c', 'u', 'm', 'e', 'n', 't', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

// Digest hashes encoded BSON bytes.
func Digest(data []byte) Hash {
	hasher := newHasher()
	hasher.Write(data)
	return sum(hasher)
}

// DigestReader hashes everything read from r.
func DigestReader(r io.Reader) (Hash, error) {
	hasher := newHasher()
	if _, err := io.Copy(hasher, r); err != nil {
		return Hash{}, fmt.Errorf("hashing BSON input: %w", err)
	}
	return sum(hasher), nil
}

// DocumentDigest hashes the encoding of document with recomputed size
// markers. The cached sizes in the tree are refreshed as a side effect.
func DocumentDigest(document *bson.Document) (Hash, error) {
	data, err := bson.Marshal(document, bson.Recompute)
	if err != nil {
		return Hash{}, err
	}
	return Digest(data), nil
}

// String returns the lowercase hex form.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// ParseHash parses the 64-character hex form of a [Hash].
func ParseHash(hexString string) (Hash, error) {
	var hash Hash
	decoded, err := hex.DecodeString(hexString)
	if err != nil {
		return hash, fmt.Errorf("parsing document digest: %w", err)
	}
	if len(decoded) != len(hash) {
		return hash, fmt.Errorf("document digest is %d bytes, want %d", len(decoded), len(hash))
	}
	copy(hash[:], decoded)
	return hash, nil
}

func newHasher() *blake3.Hasher {
	// NewKeyed only fails for a key that is not 32 bytes.
	hasher, err := blake3.NewKeyed(documentDomainKey[:])
	if err != nil {
		panic("bsonfile: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	return hasher
}

func sum(hasher *blake3.Hasher) Hash {
	var hash Hash
	copy(hash[:], hasher.Sum(nil))
	return hash
}
