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

// Package torrent builds BitTorrent v1 metainfo documents. It validates
// the caller's parameters, drives the hashing pipeline over the input
// files, assembles the info and outer dictionaries and computes the
// torrent's info hash.
package torrent

import (
	"time"

	"laptudirm.com/x/mktor/pkg/bencode"
	"laptudirm.com/x/mktor/pkg/hasher"
	"laptudirm.com/x/mktor/pkg/sha1"
)

// Params are the user-chosen properties of the torrent being created.
type Params struct {
	Name        string // torrent name
	PieceLength int64  // piece length in bytes, 0 picks automatically

	Private bool   // mark the torrent private
	Source  string // source tag, for cross-tracker uniqueness

	Trackers string // whitespace-separated tracker urls
	WebSeeds string // whitespace-separated web seed urls
	Comment  string // free-form comment

	WriteDate bool // record the creation time
}

// Torrent is a finished metainfo document.
type Torrent struct {
	Data     []byte // the bencoded metainfo document
	InfoHash string // 40-char lowercase hex hash of the info dictionary

	Name        string
	PieceLength int64
	Pieces      int   // number of pieces in the piece table
	TotalSize   int64 // total content size in bytes
}

// Create builds a torrent from the given files under job id job,
// hashing pieces on pool's workers. single selects single-file mode, in
// which files must hold exactly one entry and the metainfo carries its
// size directly instead of a file list.
//
// The returned error is a *ValidationError for bad parameters, a
// *hasher.ReadError for an unreadable input file, or
// hasher.ErrCancelled when the job id was superseded mid-run.
func Create(files []hasher.File, single bool, params Params, pool *hasher.Pool, job int64, cb hasher.Callbacks) (*Torrent, error) {
	if err := Validate(params); err != nil {
		return nil, err
	}

	// a promised file that never arrived: give a neutral result
	// instead of an inconsistent document
	if single && len(files) != 1 {
		return nil, hasher.ErrCancelled
	}

	var total int64
	for i := range files {
		total += files[i].Size
	}

	pieceLen := params.PieceLength
	if pieceLen == 0 {
		pieceLen = AutoPieceLength(total)
	}

	pieces, err := pool.Run(files, total, pieceLen, job, cb)
	if err != nil {
		return nil, err
	}

	info := Info(params.Name, pieceLen, pieces, files, single, params.Private, params.Source)
	data := bencode.Marshal(outer(info, params, time.Now().Unix()))

	return &Torrent{
		Data:        data,
		InfoHash:    InfoHash(info),
		Name:        params.Name,
		PieceLength: pieceLen,
		Pieces:      len(pieces) / sha1.Size,
		TotalSize:   total,
	}, nil
}
