package main

import (
	"encoding/json"
	"os"
)

// Config mirrors cmd/rlsend's: every CLI flag has a matching JSON field so
// a config file can override the command line, grounded on the teacher's
// server/config.go parseJSONConfig helper.
type Config struct {
	Listen      string `json:"listen"`
	Out         string `json:"out"`
	StatsLog    string `json:"statslog"`
	StatsPeriod int    `json:"statsperiod"`
	Quiet       bool   `json:"quiet"`
}

func parseJSONConfig(config *Config, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return json.NewDecoder(file).Decode(config)
}
