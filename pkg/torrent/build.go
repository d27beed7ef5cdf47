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
	"laptudirm.com/x/mktor/pkg/bencode"
	"laptudirm.com/x/mktor/pkg/hasher"
)

// CreatedBy identifies the program in the metainfo it writes.
const CreatedBy = "kimbatt.github.io/torrent-creator"

// Info assembles the info dictionary. The dictionary is a pure function
// of its arguments: the same inputs always produce a dictionary which
// encodes to the same bytes, and therefore to the same info hash.
//
// In single-file mode the dictionary carries the file's size under
// "length"; otherwise it carries a "files" list with one entry per
// input file, in pipeline order. "private" and "source" are emitted
// only when set.
func Info(name string, pieceLen int64, pieces []byte, files []hasher.File, single bool, private bool, source string) bencode.Dict {
	info := bencode.Dict{
		"name":         bencode.String(name),
		"piece length": bencode.Int(pieceLen),
		"pieces":       bencode.Bytes(pieces),
	}

	if single {
		info["length"] = bencode.Int(files[0].Size)
	} else {
		list := make(bencode.List, 0, len(files))
		for i := range files {
			file := &files[i]

			segments := make(bencode.List, 0, len(file.Path))
			for _, segment := range file.Path {
				segments = append(segments, bencode.String(segment))
			}

			list = append(list, bencode.Dict{
				"length": bencode.Int(file.Size),
				"path":   segments,
			})
		}
		info["files"] = list
	}

	if private {
		info["private"] = bencode.Int(1)
	}
	if source != "" {
		info["source"] = bencode.String(source)
	}

	return info
}

// outer assembles the outer metainfo dictionary around an info
// dictionary. now is the creation timestamp in unix seconds, recorded
// only when params asks for it.
func outer(info bencode.Dict, params Params, now int64) bencode.Dict {
	document := bencode.Dict{
		"info":       info,
		"created by": bencode.String(CreatedBy),
	}

	if trackers := Tokens(params.Trackers); len(trackers) > 0 {
		document["announce"] = bencode.String(trackers[0])

		// one single-element tier per tracker, preserving order
		tiers := make(bencode.List, 0, len(trackers))
		for _, tracker := range trackers {
			tiers = append(tiers, bencode.List{bencode.String(tracker)})
		}
		document["announce-list"] = tiers
	}

	if seeds := Tokens(params.WebSeeds); len(seeds) > 0 {
		list := make(bencode.List, 0, len(seeds))
		for _, seed := range seeds {
			list = append(list, bencode.String(seed))
		}
		document["url-list"] = list
	}

	if params.Comment != "" {
		document["comment"] = bencode.String(params.Comment)
	}

	if params.WriteDate {
		document["creation date"] = bencode.Int(now)
	}

	return document
}
