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

import "sync/atomic"

// A Meter tracks hashing progress. Every content byte is counted
// twice, once when read and once when hashed, so the fraction reaches
// exactly 1 when the last piece hash lands.
type Meter struct {
	total  int64
	read   atomic.Int64
	hashed atomic.Int64
}

// NewMeter creates a progress meter for total content bytes.
func NewMeter(total int64) *Meter {
	return &Meter{total: total}
}

// AddRead records n bytes read.
func (m *Meter) AddRead(n int) {
	m.read.Add(int64(n))
}

// AddHashed records n bytes hashed.
func (m *Meter) AddHashed(n int) {
	m.hashed.Add(int64(n))
}

// Fraction returns the progress so far, in [0, 1]. It is
// non-decreasing as long as the counters only grow.
func (m *Meter) Fraction() float64 {
	if m.total == 0 {
		return 1
	}

	fraction := float64(m.read.Load()+m.hashed.Load()) / float64(2*m.total)
	if fraction > 1 {
		fraction = 1
	}

	return fraction
}
