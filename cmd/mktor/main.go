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

// Command mktor creates .torrent metainfo files.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"laptudirm.com/x/mktor/internal/scan"
	"laptudirm.com/x/mktor/pkg/hasher"
	"laptudirm.com/x/mktor/pkg/torrent"
)

var (
	trackers []string
	webSeeds []string
	private  bool
	comment  string
	source   string
	name     string
	output   string
	noDate   bool
	pieceExp uint
)

var rootCmd = &cobra.Command{
	Use:          "mktor <path>",
	Short:        "mktor creates .torrent metainfo files",
	Args:         cobra.ExactArgs(1),
	RunE:         run,
	SilenceUsage: true,
}

func init() {
	flags := rootCmd.Flags()
	flags.StringArrayVarP(&trackers, "tracker", "t", nil, "tracker announce URL, repeatable")
	flags.StringArrayVarP(&webSeeds, "web-seed", "w", nil, "web seed URL, repeatable")
	flags.BoolVarP(&private, "private", "p", false, "mark the torrent private")
	flags.StringVarP(&comment, "comment", "c", "", "free-form comment")
	flags.StringVarP(&source, "source", "s", "", "source tag")
	flags.StringVarP(&name, "name", "n", "", "torrent name (default: base name of path)")
	flags.StringVarP(&output, "output", "o", "", "output path (default: <name>.torrent)")
	flags.BoolVarP(&noDate, "no-date", "d", false, "do not record a creation date")
	flags.UintVarP(&pieceExp, "piece-length", "l", 0, "piece length as 2^n bytes, 14-24 (default: automatic)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	result, err := scan.Walk(args[0])
	if err != nil {
		return err
	}

	if name == "" {
		name = filepath.Base(filepath.Clean(args[0]))
	}

	var pieceLen int64
	if pieceExp != 0 {
		pieceLen = int64(1) << pieceExp
		if !torrent.ValidPieceLength(pieceLen) {
			return fmt.Errorf("piece length exponent must be between 14 (16 KiB) and 24 (16 MiB)")
		}
	}

	params := torrent.Params{
		Name:        name,
		PieceLength: pieceLen,
		Private:     private,
		Source:      source,
		Trackers:    strings.Join(trackers, "\n"),
		WebSeeds:    strings.Join(webSeeds, "\n"),
		Comment:     comment,
		WriteDate:   !noDate,
	}

	// every byte counts twice: once read, once hashed
	bar := progressbar.NewOptions64(2*result.Total,
		progressbar.OptionSetDescription("hashing pieces"),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(15),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)

	pool := hasher.NewPool()

	const job = 1
	pool.SetActive(job)

	start := time.Now()
	built, err := torrent.Create(result.Files, result.Single, params, pool, job, hasher.Callbacks{
		OnRead:   func(n int) { bar.Add(n) },
		OnHashed: func(n int) { bar.Add(n) },
	})
	bar.Finish()
	if err != nil {
		return err
	}

	out := output
	if out == "" {
		out = built.Name + ".torrent"
	}

	if err := os.WriteFile(out, built.Data, 0o644); err != nil {
		return err
	}

	fmt.Printf("mktor: wrote %s in %v\n\n", out, time.Since(start).Round(time.Millisecond))

	fmt.Printf("Name:         %s\n", built.Name)
	fmt.Printf("Size:         %s\n", humanize.IBytes(uint64(built.TotalSize)))
	fmt.Printf("Piece length: %s\n", humanize.IBytes(uint64(built.PieceLength)))
	fmt.Printf("Pieces:       %d\n", built.Pieces)
	fmt.Printf("Info hash:    %s\n", color.GreenString(built.InfoHash))

	if len(trackers) > 0 {
		fmt.Printf("Trackers:     %s\n", strings.Join(trackers, "\n              "))
	}

	return nil
}
