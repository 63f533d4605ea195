package main

import (
	"encoding/json"
	"os"
)

// Config mirrors the teacher's server/config.go shape: every CLI flag has a
// matching JSON field so a config file can override the command line.
type Config struct {
	File         string `json:"file"`
	Addr         string `json:"addr"`
	BlockSize    int    `json:"blocksize"`
	Rate         int    `json:"rate"`
	MetaInterval int    `json:"metainterval"`
	Compress     bool   `json:"compress"`
	MaxFileSize  int    `json:"maxfilesize"`
	Quiet        bool   `json:"quiet"`
}

func parseJSONConfig(config *Config, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return json.NewDecoder(file).Decode(config)
}
