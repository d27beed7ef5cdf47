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

package hasher

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"

	"laptudirm.com/x/mktor/pkg/sha1"
)

// ChunkSize is the size of the read accumulator. Files are read in
// chunks of up to this size and handed to the workers one accumulator
// at a time, decoupling read granularity from piece size: every legal
// piece length divides ChunkSize, so a full accumulator always carves
// into whole pieces.
const ChunkSize = 16 << 20

// File is a single input file for the pipeline.
type File struct {
	Path []string                      // path segments, preserved verbatim
	Size int64                         // file size in bytes
	Open func() (io.ReadCloser, error) // opens the file's byte stream
}

// Name returns the file's path segments joined with slashes.
func (f *File) Name() string {
	return strings.Join(f.Path, "/")
}

// Callbacks carries the pipeline's progress hooks. Any of the fields
// may be nil.
type Callbacks struct {
	OnFileOpen func(name string) // called before a file is opened
	OnRead     func(n int)       // called after n bytes are read
	OnHashed   func(n int)       // called after n bytes are hashed
}

func (c *Callbacks) fileOpen(name string) {
	if c.OnFileOpen != nil {
		c.OnFileOpen(name)
	}
}

func (c *Callbacks) read(n int) {
	if c.OnRead != nil {
		c.OnRead(n)
	}
}

func (c *Callbacks) hashed(n int) {
	if c.OnHashed != nil {
		c.OnHashed(n)
	}
}

// ErrCancelled is returned by Run when its job id is superseded while
// hashing is still in progress.
var ErrCancelled = errors.New("hashing cancelled")

// ReadError is returned by Run when one of the input files can not be
// read to the end.
type ReadError struct {
	Path string // slash-joined path of the failing file
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("Error reading file: %s. The file might be inaccessible, or might have been modified, moved, or deleted.", e.Path)
}

// Run streams the given files through the pool's workers and returns
// the piece table: the concatenated 20-byte digests of each pieceLen
// sized piece of the files' concatenated contents. total must be the
// sum of the file sizes, and job the id this run was submitted under.
//
// Pieces are numbered in file order no matter in which order workers
// finish: each dispatch reserves its index range up front and writes
// digests only there. Zero-sized files contribute no pieces.
func (p *Pool) Run(files []File, total, pieceLen, job int64, cb Callbacks) ([]byte, error) {
	numPieces := (total + pieceLen - 1) / pieceLen
	table := make([]byte, numPieces*sha1.Size)

	// piece-sized scratch buffers, recycled across dispatches
	pieces := &sync.Pool{
		New: func() interface{} {
			return make([]byte, pieceLen)
		},
	}

	var wg sync.WaitGroup
	var stale atomic.Bool // set when a worker observes a superseded job
	next := int64(0)      // next unassigned piece index

	// dispatch carves seg into pieces, copies them into pooled buffers
	// and hands them to a worker. seg may be reused once it returns.
	dispatch := func(seg []byte) {
		size := int64(len(seg))
		count := (size + pieceLen - 1) / pieceLen

		bufs := make([][]byte, 0, count)
		for off := int64(0); off < size; off += pieceLen {
			end := off + pieceLen
			if end > size {
				end = size
			}

			buf := pieces.Get().([]byte)[:end-off]
			copy(buf, seg[off:end])
			bufs = append(bufs, buf)
		}

		start := next
		next += count

		wg.Add(1)
		go func() {
			defer wg.Done()

			digests, ok := p.Hash(bufs, job)
			for _, buf := range bufs {
				pieces.Put(buf[:cap(buf)])
			}

			if !ok {
				stale.Store(true)
				return
			}

			if off := start * sha1.Size; off < int64(len(table)) {
				copy(table[off:], digests)
			}
			cb.hashed(int(size))
		}()
	}

	acc := make([]byte, ChunkSize)
	w := 0 // write offset into acc

	for i := range files {
		file := &files[i]
		if file.Size == 0 {
			continue
		}

		if p.active.Load() != job {
			return nil, ErrCancelled
		}

		name := file.Name()
		cb.fileOpen(name)

		r, err := file.Open()
		if err != nil {
			return nil, &ReadError{Path: name}
		}

		var got int64
		for {
			n, err := r.Read(acc[w:])
			if n > 0 {
				w += n
				got += int64(n)
				cb.read(n)

				if w == len(acc) {
					if p.active.Load() != job {
						r.Close()
						return nil, ErrCancelled
					}

					dispatch(acc)
					w = 0
				}
			}

			if err == io.EOF {
				break
			}
			if err != nil {
				r.Close()
				return nil, &ReadError{Path: name}
			}
		}
		r.Close()

		// a short or long stream means the file changed under us
		if got != file.Size {
			return nil, &ReadError{Path: name}
		}
	}

	if w > 0 {
		if p.active.Load() != job {
			return nil, ErrCancelled
		}
		dispatch(acc[:w])
	}

	wg.Wait()

	if stale.Load() || p.active.Load() != job {
		return nil, ErrCancelled
	}

	return table, nil
}
