// The MIT License (MIT)
//
// # Copyright (c) 2016 xtaci
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Command rlsend streams a file as an unbounded rateless fountain, for use
// with an external symbol channel (here a bare UDP socket, standing in for
// the visual channel this module doesn't implement). It runs until killed
// — there is no completion signal from the receiver by design (spec.md
// §1: no back-channel).
package main

import (
	"fmt"
	"log"
	"mime"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/airgapfile/raptorlite/fountain"
	"github.com/airgapfile/raptorlite/transport"
)

// VERSION is injected by build flags.
var VERSION = "SELFBUILD"

func main() {
	if VERSION == "SELFBUILD" {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}

	myApp := cli.NewApp()
	myApp.Name = "rlsend"
	myApp.Usage = "raptor-lite fountain sender"
	myApp.Version = VERSION
	myApp.Flags = []cli.Flag{
		cli.StringFlag{Name: "file, f", Usage: "path of the file to transmit"},
		cli.StringFlag{Name: "addr, a", Value: "127.0.0.1:29900", Usage: "symbol-channel UDP address to send to"},
		cli.IntFlag{Name: "blocksize, b", Value: 200, Usage: "source/parity block size B in bytes, 16-65535"},
		cli.IntFlag{Name: "rate, r", Value: 30, Usage: "symbols emitted per second"},
		cli.IntFlag{Name: "metainterval", Value: fountain.MetadataInterval, Usage: "emit the metadata symbol every N ticks"},
		cli.BoolFlag{Name: "compress", Usage: "snappy pre-compress the file before slicing into blocks"},
		cli.IntFlag{Name: "maxfilesize", Value: 0, Usage: "reject files larger than this many bytes, 0 to disable"},
		cli.BoolFlag{Name: "quiet", Usage: "suppress per-tick progress output"},
		cli.StringFlag{Name: "c", Value: "", Usage: "config from a json file, overrides the command line"},
	}
	myApp.Action = func(c *cli.Context) error {
		config := Config{}
		config.File = c.String("file")
		config.Addr = c.String("addr")
		config.BlockSize = c.Int("blocksize")
		config.Rate = c.Int("rate")
		config.MetaInterval = c.Int("metainterval")
		config.Compress = c.Bool("compress")
		config.MaxFileSize = c.Int("maxfilesize")
		config.Quiet = c.Bool("quiet")

		if conf := c.String("c"); conf != "" {
			if err := parseJSONConfig(&config, conf); err != nil {
				return errors.Wrap(err, "parse config file")
			}
		}

		return run(config)
	}
	myApp.Run(os.Args)
}

func run(config Config) error {
	if config.File == "" {
		return errors.New("no --file given")
	}

	fileBytes, err := os.ReadFile(config.File)
	if err != nil {
		return errors.Wrap(err, "read source file")
	}

	filename := filepath.Base(config.File)
	mimeType := mime.TypeByExtension(filepath.Ext(config.File))
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	enc, err := fountain.NewEncoder(fileBytes, filename, mimeType, config.BlockSize, config.MaxFileSize,
		fountain.WithCompression(config.Compress))
	if err != nil {
		return errors.Wrap(err, "construct encoder")
	}

	ch, err := transport.DialUDPChannel(config.Addr)
	if err != nil {
		return errors.Wrap(err, "dial symbol channel")
	}
	defer ch.Close()

	if !config.Quiet {
		color.Green("session %08x: K=%d K'=%d B=%d -> %s", enc.SessionID(), enc.K(), enc.KPrime(), enc.BlockSize(), config.Addr)
	}

	interval := time.Second / time.Duration(maxInt(config.Rate, 1))
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	metaEvery := maxInt(config.MetaInterval, 1)
	var id uint32
	var tick uint64
	for range ticker.C {
		if tick%uint64(metaEvery) == 0 {
			if err := ch.Send(enc.Emit(0)); err != nil {
				return errors.Wrap(err, "send metadata symbol")
			}
		} else {
			id = fountain.NextID(id, uint32(enc.KPrime()))
			if err := ch.Send(enc.Emit(id)); err != nil {
				return errors.Wrap(err, "send data symbol")
			}
		}
		tick++

		if !config.Quiet && tick%uint64(enc.KPrime()+1) == 0 {
			fmt.Printf("emitted %d symbols\n", tick)
		}
	}
	return nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
