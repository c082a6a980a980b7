package project

import (
	"crypto/sha256"
)

// Digest is a SHA-256 value, compatible with source.File.Hash.
type Digest [32]byte

// Combine hashes content followed by every extra digest, in order.
func Combine(content Digest, extra ...Digest) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, d := range extra {
		_, _ = h.Write(d[:])
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// StringDigest hashes s.
func StringDigest(s string) Digest {
	return sha256.Sum256([]byte(s))
}
