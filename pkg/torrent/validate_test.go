package torrent

import (
	"strings"
	"testing"
)

var validateTests = []struct {
	name   string
	params Params
	err    string // expected message, "" for success
}{
	{
		name:   "empty name",
		params: Params{},
		err:    "Torrent name cannot be empty",
	},
	{
		name:   "name too long",
		params: Params{Name: strings.Repeat("a", 256)},
		err:    "Torrent name cannot be longer than 255 characters",
	},
	{
		name:   "name at limit",
		params: Params{Name: strings.Repeat("a", 255)},
	},
	{
		name:   "reserved character",
		params: Params{Name: "a:b"},
		err:    `Torrent name cannot contain any of the following characters: < > : " \ / | ? *`,
	},
	{
		name:   "reserved slash",
		params: Params{Name: "a/b"},
		err:    `Torrent name cannot contain any of the following characters: < > : " \ / | ? *`,
	},
	{
		name:   "plain name",
		params: Params{Name: "linux-6.8.iso"},
	},
	{
		name:   "valid trackers",
		params: Params{Name: "a", Trackers: "https://tracker.example.com/announce udp://tracker.example.org:1337/announce"},
	},
	{
		name:   "tracker with trailing slash",
		params: Params{Name: "a", Trackers: "https://tracker.example.com/announce/"},
	},
	{
		name:   "tracker without announce path",
		params: Params{Name: "a", Trackers: "https://tracker.example.com/peers"},
		err:    `"https://tracker.example.com/peers" is not a valid tracker URL`,
	},
	{
		name:   "relative tracker",
		params: Params{Name: "a", Trackers: "tracker.example.com/announce"},
		err:    `"tracker.example.com/announce" is not a valid tracker URL`,
	},
	{
		name:   "malformed tracker",
		params: Params{Name: "a", Trackers: "https://good.example.com/announce\nhttp://%zz/announce"},
		err:    `"http://%zz/announce" is not a valid tracker URL`,
	},
	{
		name:   "valid web seed",
		params: Params{Name: "a", WebSeeds: "https://mirror.example.com/files/"},
	},
	{
		name:   "malformed web seed",
		params: Params{Name: "a", WebSeeds: "https://%zz"},
		err:    `"https://%zz" is not a valid URL`,
	},
}

func TestValidate(t *testing.T) {
	for _, test := range validateTests {
		t.Run(test.name, func(t *testing.T) {
			err := Validate(test.params)

			if test.err == "" {
				if err != nil {
					t.Errorf("Validate: unexpected error %q", err)
				}
				return
			}

			if err == nil {
				t.Fatalf("Validate: expected error %q, got nil", test.err)
			}
			if err.Error() != test.err {
				t.Errorf("Validate: got error %q, want %q", err, test.err)
			}
		})
	}
}

func TestTokens(t *testing.T) {
	tests := []struct {
		in  string
		out []string
	}{
		{"", nil},
		{"   \n\t  ", nil},
		{"a b", []string{"a", "b"}},
		{"a\nb\n\nc", []string{"a", "b", "c"}},
		{"a\u00a0b", []string{"a", "b"}}, // non-breaking space
	}

	for _, test := range tests {
		got := Tokens(test.in)

		if len(got) != len(test.out) {
			t.Errorf("Tokens(%q): got %q, want %q", test.in, got, test.out)
			continue
		}
		for i := range got {
			if got[i] != test.out[i] {
				t.Errorf("Tokens(%q): got %q, want %q", test.in, got, test.out)
				break
			}
		}
	}
}
