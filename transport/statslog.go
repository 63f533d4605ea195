package transport

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/airgapfile/raptorlite/fountain"
)

// statsHeader names the fountain.Stats fields in CSV column order, mirrored
// by statsRow below.
var statsHeader = []string{
	"Unix", "PacketsSeen", "Duplicates", "MetadataAccepted",
	"ParityRounds", "BlocksPeeled", "NewSessionEvents",
}

func statsRow(s fountain.Stats) []string {
	return []string{
		fmt.Sprint(time.Now().Unix()),
		fmt.Sprint(s.PacketsSeen),
		fmt.Sprint(s.Duplicates),
		fmt.Sprint(s.MetadataAccepted),
		fmt.Sprint(s.ParityRounds),
		fmt.Sprint(s.BlocksPeeled),
		fmt.Sprint(s.NewSessionEvents),
	}
}

// StatsLogger periodically appends a CSV row of decoder stats to
// path, adapted from the teacher's std/snmp.go SnmpLogger: a ticker plus a
// CSV writer that writes a header only into an empty file.
func StatsLogger(path string, interval time.Duration, snapshot func() fountain.Stats) {
	if path == "" || interval == 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for range ticker.C {
		logdir, logfile := filepath.Split(path)
		name := logdir + time.Now().Format(logfile)
		f, err := os.OpenFile(name, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
		if err != nil {
			log.Println(err)
			return
		}

		w := csv.NewWriter(f)
		if stat, err := f.Stat(); err == nil && stat.Size() == 0 {
			if err := w.Write(statsHeader); err != nil {
				log.Println(err)
			}
		}
		if err := w.Write(statsRow(snapshot())); err != nil {
			log.Println(err)
		}
		w.Flush()
		f.Close()
	}
}
