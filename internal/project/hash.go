package project

import (
	"crypto/sha256"
	"encoding/hex"
)

// Digest is a SHA-256 value used as a cache key.
type Digest [32]byte

// Combine hashes content followed by every part, each length-prefixed so
// that ("ab","c") and ("a","bc") differ.
func Combine(content Digest, parts ...string) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	var n [8]byte
	for _, p := range parts {
		l := uint64(len(p))
		for i := range n {
			n[i] = byte(l >> (8 * i))
		}
		_, _ = h.Write(n[:])
		_, _ = h.Write([]byte(p))
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

func (d Digest) IsZero() bool {
	return d == Digest{}
}
