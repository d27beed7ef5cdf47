package torrent

import (
	"bytes"
	"encoding/hex"
	"io"
	"strings"
	"testing"

	jackpal "github.com/jackpal/bencode-go"
	"github.com/stretchr/testify/require"

	"laptudirm.com/x/mktor/pkg/bencode"
	"laptudirm.com/x/mktor/pkg/hasher"
)

func memFile(data []byte, path ...string) hasher.File {
	return hasher.File{
		Path: path,
		Size: int64(len(data)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}

func mustHex(t *testing.T, s string) []byte {
	t.Helper()

	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

// TestInfoSingleFile pins down the exact encoding of a tiny
// single-file info dictionary, and with it the info hash.
func TestInfoSingleFile(t *testing.T) {
	pieces := mustHex(t, "aaf4c61ddcc5e8a2dabede0f3b482cd9aea9434d") // sha1("hello")
	files := []hasher.File{memFile([]byte("hello"), "a.txt")}

	info := Info("a.txt", 16384, pieces, files, true, false, "")

	want := "d6:lengthi5e4:name5:a.txt12:piece lengthi16384e6:pieces20:" +
		string(pieces) + "e"
	require.Equal(t, want, string(bencode.Marshal(info)))

	require.Equal(t, "de3edc1dfa1958affac1dbdc8f34d4d6dac43f00", InfoHash(info))
}

func TestInfoModes(t *testing.T) {
	pieces := mustHex(t, "aaf4c61ddcc5e8a2dabede0f3b482cd9aea9434d")

	t.Run("single file", func(t *testing.T) {
		files := []hasher.File{memFile([]byte("hello"), "a.txt")}
		info := Info("a.txt", 16384, pieces, files, true, false, "")

		require.Contains(t, info, "length")
		require.NotContains(t, info, "files")
	})

	t.Run("folder with one file", func(t *testing.T) {
		files := []hasher.File{memFile([]byte("hello"), "a.txt")}
		info := Info("stuff", 16384, pieces, files, false, false, "")

		require.NotContains(t, info, "length")
		require.Equal(t, bencode.List{
			bencode.Dict{
				"length": bencode.Int(5),
				"path":   bencode.List{bencode.String("a.txt")},
			},
		}, info["files"])
	})

	t.Run("file order preserved", func(t *testing.T) {
		files := []hasher.File{
			memFile([]byte("cd"), "sub", "z.txt"),
			memFile([]byte("ab"), "a.txt"),
		}
		info := Info("stuff", 16384, pieces, files, false, false, "")

		list, ok := info["files"].(bencode.List)
		require.True(t, ok)
		require.Len(t, list, 2)

		first, ok := list[0].(bencode.Dict)
		require.True(t, ok)
		require.Equal(t, bencode.List{
			bencode.String("sub"), bencode.String("z.txt"),
		}, first["path"])
	})

	t.Run("private and source", func(t *testing.T) {
		files := []hasher.File{memFile([]byte("hello"), "a.txt")}

		info := Info("a.txt", 16384, pieces, files, true, true, "TRK")
		require.Equal(t, bencode.Int(1), info["private"])
		require.Equal(t, bencode.String("TRK"), info["source"])

		info = Info("a.txt", 16384, pieces, files, true, false, "")
		require.NotContains(t, info, "private")
		require.NotContains(t, info, "source")
	})
}

// TestInfoHashMetadataOnly checks that the hash changes with metadata
// edits but is stable across recomputation with an unchanged piece
// table.
func TestInfoHashMetadataOnly(t *testing.T) {
	pieces := mustHex(t, "aaf4c61ddcc5e8a2dabede0f3b482cd9aea9434d")
	files := []hasher.File{memFile([]byte("hello"), "a.txt")}

	base := InfoHash(Info("a.txt", 16384, pieces, files, true, false, ""))

	require.Equal(t, base,
		InfoHash(Info("a.txt", 16384, pieces, files, true, false, "")))

	require.NotEqual(t, base,
		InfoHash(Info("b.txt", 16384, pieces, files, true, false, "")))
	require.NotEqual(t, base,
		InfoHash(Info("a.txt", 16384, pieces, files, true, true, "")))
	require.NotEqual(t, base,
		InfoHash(Info("a.txt", 16384, pieces, files, true, false, "TRK")))
}

func TestOuter(t *testing.T) {
	info := bencode.Dict{"name": bencode.String("x")}

	t.Run("minimal", func(t *testing.T) {
		document := outer(info, Params{Name: "x"}, 1700000000)

		require.Equal(t, bencode.String(CreatedBy), document["created by"])
		require.NotContains(t, document, "announce")
		require.NotContains(t, document, "announce-list")
		require.NotContains(t, document, "url-list")
		require.NotContains(t, document, "comment")
		require.NotContains(t, document, "creation date")
	})

	t.Run("trackers", func(t *testing.T) {
		document := outer(info, Params{
			Name:     "x",
			Trackers: "https://a.example/announce\nudp://b.example:1337/announce",
		}, 1700000000)

		require.Equal(t, bencode.String("https://a.example/announce"), document["announce"])
		require.Equal(t, bencode.List{
			bencode.List{bencode.String("https://a.example/announce")},
			bencode.List{bencode.String("udp://b.example:1337/announce")},
		}, document["announce-list"])
	})

	t.Run("web seeds and comment", func(t *testing.T) {
		document := outer(info, Params{
			Name:     "x",
			WebSeeds: "https://mirror.example/a https://mirror.example/b",
			Comment:  "hello there",
		}, 1700000000)

		require.Equal(t, bencode.List{
			bencode.String("https://mirror.example/a"),
			bencode.String("https://mirror.example/b"),
		}, document["url-list"])
		require.Equal(t, bencode.String("hello there"), document["comment"])
	})

	t.Run("creation date", func(t *testing.T) {
		document := outer(info, Params{Name: "x", WriteDate: true}, 1700000000)
		require.Equal(t, bencode.Int(1700000000), document["creation date"])
	})
}

func TestCreate(t *testing.T) {
	pool := hasher.NewPool()
	pool.SetActive(1)

	files := []hasher.File{
		memFile([]byte("ab"), "a"),
		memFile([]byte("cd"), "b"),
	}

	result, err := Create(files, false, Params{
		Name:     "stuff",
		Trackers: "https://tracker.example.com/announce",
		Private:  true,
	}, pool, 1, hasher.Callbacks{})
	require.NoError(t, err)

	require.Equal(t, int64(4), result.TotalSize)
	require.Equal(t, int64(1<<14), result.PieceLength) // automatic
	require.Equal(t, 1, result.Pieces)
	require.Len(t, result.InfoHash, 40)
	require.Equal(t, strings.ToLower(result.InfoHash), result.InfoHash, "info hash must be lowercase")

	// the document must parse under an independent bencode decoder
	decoded, err := jackpal.Decode(bytes.NewReader(result.Data))
	require.NoError(t, err)

	document, ok := decoded.(map[string]any)
	require.True(t, ok)
	require.Equal(t, "https://tracker.example.com/announce", document["announce"])
	require.Equal(t, CreatedBy, document["created by"])

	infoDict, ok := document["info"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "stuff", infoDict["name"])
	require.Equal(t, int64(1<<14), infoDict["piece length"])
	require.Equal(t, int64(1), infoDict["private"])
	require.Len(t, infoDict["pieces"], 20)
}

func TestCreateValidates(t *testing.T) {
	pool := hasher.NewPool()
	pool.SetActive(1)

	_, err := Create(nil, false, Params{}, pool, 1, hasher.Callbacks{})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "Torrent name cannot be empty", verr.Error())
}

func TestCreateCancelled(t *testing.T) {
	pool := hasher.NewPool()
	pool.SetActive(2) // job 1 superseded before it starts

	files := []hasher.File{memFile([]byte("hello"), "a.txt")}
	_, err := Create(files, true, Params{Name: "a.txt"}, pool, 1, hasher.Callbacks{})

	require.ErrorIs(t, err, hasher.ErrCancelled)
}
