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
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"
)

// ValidationError reports a rejected parameter. Its message is meant to
// be shown to the user verbatim.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

func validationErrorf(format string, a ...any) *ValidationError {
	return &ValidationError{msg: fmt.Sprintf(format, a...)}
}

// reservedNameChars are not allowed in torrent names, since the name
// doubles as a file or directory name on every major platform.
const reservedNameChars = `<>:"\/|?*`

// Validate checks the parameters and returns a *ValidationError
// describing the first problem found, or nil if there is none.
func Validate(params Params) error {
	switch {
	case params.Name == "":
		return validationErrorf("Torrent name cannot be empty")
	case utf8.RuneCountInString(params.Name) > 255:
		return validationErrorf("Torrent name cannot be longer than 255 characters")
	case strings.ContainsAny(params.Name, reservedNameChars):
		return validationErrorf(`Torrent name cannot contain any of the following characters: < > : " \ / | ? *`)
	}

	for _, tracker := range Tokens(params.Trackers) {
		if !validTrackerURL(tracker) {
			return validationErrorf("%q is not a valid tracker URL", tracker)
		}
	}

	for _, seed := range Tokens(params.WebSeeds) {
		if _, err := url.Parse(seed); err != nil {
			return validationErrorf("%q is not a valid URL", seed)
		}
	}

	return nil
}

// validTrackerURL reports whether raw is an absolute URL whose path
// ends with "announce" or "announce/", the shape every HTTP and UDP
// tracker announce endpoint has.
func validTrackerURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() {
		return false
	}

	return strings.HasSuffix(u.Path, "announce") || strings.HasSuffix(u.Path, "announce/")
}

// Tokens splits a user-entered text field on runs of whitespace,
// dropping empty tokens.
func Tokens(text string) []string {
	return strings.Fields(text)
}
