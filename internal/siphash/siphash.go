// Package siphash implements SipHash-1-3, the 64-bit keyed hash with one
// compression round and three finalization rounds.
//
// With zero keys it produces the same values as the default hasher of the
// Rust standard library, which is what ties generated error codes to the
// codes already committed by other tools.
package siphash

import (
	"encoding/binary"
	"hash"
	"math/bits"
)

const (
	initV0 = 0x736f6d6570736575
	initV1 = 0x646f72616e646f6d
	initV2 = 0x6c7967656e657261
	initV3 = 0x7465646279746573
)

// Size is the checksum length in bytes.
const Size = 8

// BlockSize is the compression block length in bytes.
const BlockSize = 8

type digest struct {
	k0, k1         uint64
	v0, v1, v2, v3 uint64
	tail           [BlockSize]byte
	ntail          int
	length         uint64
}

var _ hash.Hash64 = (*digest)(nil)

// New returns a SipHash-1-3 hash.Hash64 keyed with k0, k1.
func New(k0, k1 uint64) hash.Hash64 {
	d := &digest{k0: k0, k1: k1}
	d.Reset()
	return d
}

// Sum64 hashes data in one shot.
func Sum64(k0, k1 uint64, data []byte) uint64 {
	d := digest{k0: k0, k1: k1}
	d.Reset()
	_, _ = d.Write(data)
	return d.Sum64()
}

func (d *digest) Reset() {
	d.v0 = d.k0 ^ initV0
	d.v1 = d.k1 ^ initV1
	d.v2 = d.k0 ^ initV2
	d.v3 = d.k1 ^ initV3
	d.ntail = 0
	d.length = 0
}

func (d *digest) Size() int      { return Size }
func (d *digest) BlockSize() int { return BlockSize }

func (d *digest) Write(p []byte) (int, error) {
	n := len(p)
	d.length += uint64(n)

	if d.ntail > 0 {
		c := copy(d.tail[d.ntail:], p)
		d.ntail += c
		p = p[c:]
		if d.ntail < BlockSize {
			return n, nil
		}
		d.compress(binary.LittleEndian.Uint64(d.tail[:]))
		d.ntail = 0
	}
	for len(p) >= BlockSize {
		d.compress(binary.LittleEndian.Uint64(p))
		p = p[BlockSize:]
	}
	d.ntail = copy(d.tail[:], p)
	return n, nil
}

// Sum64 returns the hash of the bytes written so far; the state is not
// modified and writes may continue.
func (d *digest) Sum64() uint64 {
	s := *d
	b := (s.length & 0xff) << 56
	for i := range s.ntail {
		b |= uint64(s.tail[i]) << (8 * i)
	}
	s.compress(b)

	s.v2 ^= 0xff
	s.round()
	s.round()
	s.round()
	return s.v0 ^ s.v1 ^ s.v2 ^ s.v3
}

func (d *digest) Sum(in []byte) []byte {
	return binary.BigEndian.AppendUint64(in, d.Sum64())
}

func (d *digest) compress(m uint64) {
	d.v3 ^= m
	d.round()
	d.v0 ^= m
}

func (d *digest) round() {
	d.v0 += d.v1
	d.v1 = bits.RotateLeft64(d.v1, 13)
	d.v1 ^= d.v0
	d.v0 = bits.RotateLeft64(d.v0, 32)
	d.v2 += d.v3
	d.v3 = bits.RotateLeft64(d.v3, 16)
	d.v3 ^= d.v2
	d.v0 += d.v3
	d.v3 = bits.RotateLeft64(d.v3, 21)
	d.v3 ^= d.v0
	d.v2 += d.v1
	d.v1 = bits.RotateLeft64(d.v1, 17)
	d.v1 ^= d.v2
	d.v2 = bits.RotateLeft64(d.v2, 32)
}
