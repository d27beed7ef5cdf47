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

import (
	"encoding/hex"
	"sync"

	"laptudirm.com/x/mktor/pkg/bencode"
	"laptudirm.com/x/mktor/pkg/sha1"
)

// InfoHash returns the torrent's identity: the SHA-1 of the bencoded
// info dictionary, as 40 lowercase hex characters. Since the piece
// table inside info is passed by reference, recomputing the hash after
// a metadata change costs one encode and one digest, never a re-hash
// of the content.
func InfoHash(info bencode.Dict) string {
	digest := sha1.Sum(bencode.Marshal(info))
	return hex.EncodeToString(digest[:])
}

// A HashTracker recomputes the info hash in the background as metadata
// edits come in. Each Submit is stamped with an increasing epoch, and a
// finished hash is kept only if no later Submit has finished already,
// so a slow early computation can never clobber a newer one.
type HashTracker struct {
	mu      sync.Mutex
	issued  int64  // epoch handed to the latest Submit
	applied int64  // epoch of the stored hash
	hash    string // latest info hash
}

// Submit schedules the hash of info for computation.
func (t *HashTracker) Submit(info bencode.Dict) {
	t.mu.Lock()
	t.issued++
	epoch := t.issued
	t.mu.Unlock()

	go func() {
		t.apply(epoch, InfoHash(info))
	}()
}

// apply stores hash unless a later epoch already has.
func (t *HashTracker) apply(epoch int64, hash string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if epoch > t.applied {
		t.applied = epoch
		t.hash = hash
	}
}

// Hash returns the most recently finished info hash, or "" if none has
// finished yet.
func (t *HashTracker) Hash() string {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.hash
}
