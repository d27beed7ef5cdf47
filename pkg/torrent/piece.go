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

package torrent

import "math"

// Piece length bounds: 16 KiB to 16 MiB, always a power of two.
const (
	MinPieceLength = 1 << 14
	MaxPieceLength = 1 << 24
)

// targetPieces is the piece count the automatic rule aims for.
const targetPieces = 1200

// AutoPieceLength picks a piece length for the given total content
// size, aiming for about targetPieces pieces. The result is the power
// of two nearest to total/targetPieces, clamped into the legal range.
// Anything below about 19 MiB of content collapses to 16 KiB pieces.
func AutoPieceLength(total int64) int64 {
	if total <= 0 {
		return MinPieceLength
	}

	factor := math.Round(math.Log2(float64(total) / targetPieces))
	switch {
	case factor < 14:
		factor = 14
	case factor > 24:
		factor = 24
	}

	return 1 << int(factor)
}

// ValidPieceLength reports whether n is a legal explicit piece length:
// a power of two between 16 KiB and 16 MiB.
func ValidPieceLength(n int64) bool {
	return n >= MinPieceLength && n <= MaxPieceLength && n&(n-1) == 0
}
