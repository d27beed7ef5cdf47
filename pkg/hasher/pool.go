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

// Package hasher turns a stream of files into a table of piece hashes.
// It consists of a bounded pool of parallel hash workers and a
// streaming pipeline which feeds them.
package hasher

import (
	"runtime"
	"sync/atomic"

	"laptudirm.com/x/mktor/pkg/sha1"
)

// MaxWorkers is the upper bound on parallel hash workers, regardless of
// how many processors the machine has.
const MaxWorkers = 8

// Pool is a bounded pool of hash workers. A Pool also carries the
// active job id used for cancellation: work submitted under a stale id
// is dropped instead of hashed.
type Pool struct {
	workers chan struct{} // worker slots; buffered, capacity = worker count
	active  atomic.Int64  // id of the job whose results are still wanted
}

// NewPool creates a pool with min(GOMAXPROCS, MaxWorkers) workers.
func NewPool() *Pool {
	n := runtime.GOMAXPROCS(0)
	if n > MaxWorkers {
		n = MaxWorkers
	}

	p := &Pool{workers: make(chan struct{}, n)}
	for i := 0; i < n; i++ {
		p.workers <- struct{}{}
	}

	return p
}

// Workers returns the number of workers in the pool.
func (p *Pool) Workers() int {
	return cap(p.workers)
}

// SetActive marks id as the active job. Results of jobs submitted under
// any other id are dropped from now on. In-flight workers are not
// interrupted; their output simply never reaches a piece table.
func (p *Pool) SetActive(id int64) {
	p.active.Store(id)
}

// Active returns the currently active job id.
func (p *Pool) Active() int64 {
	return p.active.Load()
}

// Hash hashes each buffer independently, in order, and returns the
// concatenation of their 20-byte digests in a freshly allocated slice.
//
// Hash blocks until a worker is free; waiting callers acquire workers
// in arrival order. If job is no longer the active job at the moment
// the worker is acquired, Hash returns ok == false without hashing.
// The input buffers belong to the worker until Hash returns.
func (p *Pool) Hash(bufs [][]byte, job int64) (digests []byte, ok bool) {
	<-p.workers
	defer func() { p.workers <- struct{}{} }()

	if p.active.Load() != job {
		return nil, false
	}

	digests = make([]byte, len(bufs)*sha1.Size)
	for i, buf := range bufs {
		digest := sha1.Sum(buf)
		copy(digests[i*sha1.Size:], digest[:])
	}

	return digests, true
}
