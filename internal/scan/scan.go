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

// Package scan turns a file or directory tree into the ordered file
// list the hashing pipeline consumes.
package scan

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"laptudirm.com/x/mktor/pkg/hasher"
)

// Result is the outcome of scanning a path.
type Result struct {
	Files  []hasher.File // ordered file entries
	Single bool          // root is a bare file, not a directory
	Total  int64         // total content size in bytes
}

// junkSuffixes are files which never belong in a torrent, matched
// case-insensitively against the base name.
var junkSuffixes = []string{
	".torrent",
	".ds_store",
	"thumbs.db",
	"desktop.ini",
}

// junk reports whether name is filtered out of directory scans.
func junk(name string) bool {
	name = strings.ToLower(name)
	for _, suffix := range junkSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}

// Walk scans root and returns its file listing. A bare file becomes a
// single entry whose path is its base name; a directory becomes one
// entry per contained file with paths relative to root, in sorted
// order. Zero-sized files are kept in the listing; they appear in the
// metainfo but contribute no pieces.
func Walk(root string) (*Result, error) {
	stat, err := os.Stat(root)
	if err != nil {
		return nil, err
	}

	if !stat.IsDir() {
		return &Result{
			Files:  []hasher.File{entry(root, []string{filepath.Base(root)}, stat.Size())},
			Single: true,
			Total:  stat.Size(),
		}, nil
	}

	result := &Result{}
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || junk(d.Name()) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		segments := strings.Split(filepath.ToSlash(rel), "/")

		result.Files = append(result.Files, entry(path, segments, info.Size()))
		result.Total += info.Size()
		return nil
	})
	if err != nil {
		return nil, err
	}

	// WalkDir already walks lexically; sorting again keeps the order
	// contractual rather than incidental
	sort.Slice(result.Files, func(i, j int) bool {
		return result.Files[i].Name() < result.Files[j].Name()
	})

	return result, nil
}

// entry builds a pipeline file entry for the file at path.
func entry(path string, segments []string, size int64) hasher.File {
	return hasher.File{
		Path: segments,
		Size: size,
		Open: func() (io.ReadCloser, error) {
			return os.Open(path)
		},
	}
}
