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

// Command rlrecv binds a symbol channel, feeds every arriving packet to a
// fountain.Decoder, and writes the reconstructed file once the digest
// verifies. It keeps running after completion so late-arriving duplicate
// sessions are handled the same way a real air-gapped receiver would.
package main

import (
	"fmt"
	"io"
	"log"
	"os"
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
	myApp.Name = "rlrecv"
	myApp.Usage = "raptor-lite fountain receiver"
	myApp.Version = VERSION
	myApp.Flags = []cli.Flag{
		cli.StringFlag{Name: "listen, l", Value: "127.0.0.1:29900", Usage: "symbol-channel UDP address to listen on"},
		cli.StringFlag{Name: "out, o", Value: "", Usage: "path to write the reconstructed file; defaults to the transmitted filename"},
		cli.StringFlag{Name: "statslog", Value: "", Usage: "collect transfer stats to a CSV file, time-formatted like stats-20060102.log"},
		cli.IntFlag{Name: "statsperiod", Value: 60, Usage: "stats collection period, in seconds"},
		cli.BoolFlag{Name: "quiet", Usage: "suppress per-packet progress output"},
		cli.StringFlag{Name: "c", Value: "", Usage: "config from a json file, overrides the command line"},
	}
	myApp.Action = func(c *cli.Context) error {
		config := Config{}
		config.Listen = c.String("listen")
		config.Out = c.String("out")
		config.StatsLog = c.String("statslog")
		config.StatsPeriod = c.Int("statsperiod")
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
	ch, err := transport.ListenUDPChannel(config.Listen)
	if err != nil {
		return errors.Wrap(err, "listen symbol channel")
	}
	defer ch.Close()

	dec := fountain.NewDecoder()

	if config.StatsLog != "" {
		go transport.StatsLogger(config.StatsLog, time.Duration(config.StatsPeriod)*time.Second, dec.Stats)
	}

	if !config.Quiet {
		color.Green("listening on %s", config.Listen)
	}

	written := false
	for {
		packet, err := ch.Recv()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return errors.Wrap(err, "recv symbol")
		}

		switch dec.Receive(packet) {
		case fountain.NewSession:
			if !config.Quiet {
				color.Yellow("new session detected, resetting decoder")
			}
			dec.Reset()
			dec.Receive(packet)
			written = false
		case fountain.Accepted:
			if !config.Quiet {
				fmt.Printf("\rprogress: %.1f%%", dec.Progress()*100)
			}
		}

		if !written && dec.IsComplete() {
			if err := writeResult(dec, config.Out); err != nil {
				return err
			}
			written = true
		}
	}
}

func writeResult(dec *fountain.Decoder, outOverride string) error {
	if !dec.Verify() {
		color.Red("\nverification failed: digest mismatch, discarding reconstructed bytes")
		return nil
	}

	data, err := dec.Reconstruct()
	if err != nil {
		return errors.Wrap(err, "reconstruct file")
	}

	md, _ := dec.Metadata()
	out := outOverride
	if out == "" {
		out = md.Filename
	}
	if out == "" {
		out = "received.bin"
	}

	if err := os.WriteFile(out, data, 0o644); err != nil {
		return errors.Wrap(err, "write reconstructed file")
	}
	color.Green("\nsession complete: wrote %s (%d bytes)", out, len(data))
	return nil
}
