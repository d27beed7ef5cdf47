// Copyright © 2021 Rak Laptudirm <raklaptudirm@gmail.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package sha1

import (
	"encoding/binary"
	"math/bits"
)

// initial hash value, FIPS 180-4 §5.3.1
const (
	init0 = 0x67452301
	init1 = 0xefcdab89
	init2 = 0x98badcfe
	init3 = 0x10325476
	init4 = 0xc3d2e1f0
)

// round constants, FIPS 180-4 §4.2.1
const (
	k0 = 0x5a827999
	k1 = 0x6ed9eba1
	k2 = 0x8f1bbcdc
	k3 = 0xca62c1d6
)

// sumGeneric computes the digest of data with the portable scalar
// implementation. All full blocks of data are compressed in place; the
// remaining bytes, the mandatory 0x80 byte, the zero padding and the
// big-endian bit length are laid out in a stack buffer of at most two
// blocks and compressed last.
func sumGeneric(data []byte) [Size]byte {
	h := [5]uint32{init0, init1, init2, init3, init4}

	n := len(data) &^ (BlockSize - 1)
	blockGeneric(&h, data[:n])

	// tail: <rest of data> 0x80 <zero padding> <bit length>
	var tail [2 * BlockSize]byte
	rest := copy(tail[:], data[n:])
	tail[rest] = 0x80

	length := uint64(len(data)) << 3
	if rest >= 56 {
		// no room for the length in this block, pad into the next
		binary.BigEndian.PutUint64(tail[2*BlockSize-8:], length)
		blockGeneric(&h, tail[:])
	} else {
		binary.BigEndian.PutUint64(tail[BlockSize-8:], length)
		blockGeneric(&h, tail[:BlockSize])
	}

	var digest [Size]byte
	binary.BigEndian.PutUint32(digest[0:], h[0])
	binary.BigEndian.PutUint32(digest[4:], h[1])
	binary.BigEndian.PutUint32(digest[8:], h[2])
	binary.BigEndian.PutUint32(digest[12:], h[3])
	binary.BigEndian.PutUint32(digest[16:], h[4])
	return digest
}

// blockGeneric compresses the given blocks into the hash state h. The
// length of p must be a multiple of BlockSize.
//
// The 80-entry message schedule is walked in four unrolled passes, one
// per round function, instead of a single loop with a round-dependent
// branch.
func blockGeneric(h *[5]uint32, p []byte) {
	var w [80]uint32

	for len(p) >= BlockSize {
		// message schedule, big-endian words
		for i := 0; i < 16; i++ {
			w[i] = binary.BigEndian.Uint32(p[i*4:])
		}
		for i := 16; i < 80; i++ {
			w[i] = bits.RotateLeft32(w[i-3]^w[i-8]^w[i-14]^w[i-16], 1)
		}

		a, b, c, d, e := h[0], h[1], h[2], h[3], h[4]

		// rounds 0-19: Ch(x, y, z) = (x AND y) XOR (NOT x AND z)
		for i := 0; i < 20; i++ {
			t := bits.RotateLeft32(a, 5) + (d ^ (b & (c ^ d))) + e + k0 + w[i]
			e, d, c, b, a = d, c, bits.RotateLeft32(b, 30), a, t
		}
		// rounds 20-39: Parity(x, y, z) = x XOR y XOR z
		for i := 20; i < 40; i++ {
			t := bits.RotateLeft32(a, 5) + (b ^ c ^ d) + e + k1 + w[i]
			e, d, c, b, a = d, c, bits.RotateLeft32(b, 30), a, t
		}
		// rounds 40-59: Maj(x, y, z) = (x AND y) XOR (x AND z) XOR (y AND z)
		for i := 40; i < 60; i++ {
			t := bits.RotateLeft32(a, 5) + ((b & c) | (d & (b | c))) + e + k2 + w[i]
			e, d, c, b, a = d, c, bits.RotateLeft32(b, 30), a, t
		}
		// rounds 60-79: Parity again
		for i := 60; i < 80; i++ {
			t := bits.RotateLeft32(a, 5) + (b ^ c ^ d) + e + k3 + w[i]
			e, d, c, b, a = d, c, bits.RotateLeft32(b, 30), a, t
		}

		h[0] += a
		h[1] += b
		h[2] += c
		h[3] += d
		h[4] += e

		p = p[BlockSize:]
	}
}
