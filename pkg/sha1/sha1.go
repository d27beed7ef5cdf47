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

// Package sha1 computes SHA-1 digests of byte slices, as defined in
// FIPS 180-4. Two implementations sit behind a single entry point: a
// portable scalar one, and the hardware-accelerated one from the
// standard library. The variant is picked once at startup; both produce
// bit-identical output.
package sha1

import (
	csha1 "crypto/sha1"

	"github.com/klauspost/cpuid/v2"
)

// Size is the size of a SHA-1 digest in bytes.
const Size = 20

// BlockSize is the block size of SHA-1 in bytes.
const BlockSize = 64

// useAccel reports whether the processor has SHA instructions, in which
// case crypto/sha1's assembly paths beat the portable implementation.
// Probed once; callers never observe which variant runs.
var useAccel = cpuid.CPU.Supports(cpuid.SHA) || cpuid.CPU.Supports(cpuid.SHA1)

// Sum returns the SHA-1 digest of data.
func Sum(data []byte) [Size]byte {
	if useAccel {
		return csha1.Sum(data)
	}

	return sumGeneric(data)
}
