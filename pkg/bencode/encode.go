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

package bencode

import (
	"sort"
	"strconv"
)

// Marshal marshals v into its canonical bencode representation.
func Marshal(v Value) []byte {
	e := &encoder{}
	e.marshal(v)
	return e.data
}

// encoder stores the current state of the marshalling.
type encoder struct {
	data []byte // result buffer
}

// marshal marshals v into the encoder e.
func (e *encoder) marshal(v Value) {
	switch v := v.(type) {
	case Int:
		e.marshalInt(int64(v))
	case String:
		e.marshalBytes([]byte(v))
	case Bytes:
		e.marshalBytes(v)
	case List:
		e.marshalList(v)
	case Dict:
		e.marshalDict(v)
	}
}

// marshalInt marshals an integer into the encoder.
func (e *encoder) marshalInt(n int64) {
	// i<number>e
	e.data = append(e.data, 'i')
	e.data = strconv.AppendInt(e.data, n, 10)
	e.data = append(e.data, 'e')
}

// marshalBytes marshals a string into the encoder. Text and binary
// strings share a representation, so both kinds end up here.
func (e *encoder) marshalBytes(b []byte) {
	// <length>:<raw bytes>
	e.data = strconv.AppendInt(e.data, int64(len(b)), 10)
	e.data = append(e.data, ':')
	e.data = append(e.data, b...)
}

// marshalList marshals a list into the encoder, keeping the order of
// its elements.
func (e *encoder) marshalList(l List) {
	// write leading 'l'
	e.data = append(e.data, 'l')

	// marshal elements
	for _, v := range l {
		e.marshal(v)
	}

	// write ending 'e'
	e.data = append(e.data, 'e')
}

// marshalDict marshals a dictionary into the encoder. Keys are emitted
// in ascending lexicographic byte order, which makes the encoding of a
// dictionary independent of its in-memory entry order. Entries whose
// value is nil are skipped entirely.
func (e *encoder) marshalDict(d Dict) {
	// write leading 'd'
	e.data = append(e.data, 'd')

	// get sorted key list
	keys := make([]string, 0, len(d))
	for key, v := range d {
		if v == nil {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	// marshal elements
	for _, key := range keys {
		// marshal key
		e.marshalBytes([]byte(key))

		// marshal value
		e.marshal(d[key])
	}

	// write ending 'e'
	e.data = append(e.data, 'e')
}
