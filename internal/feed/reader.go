package feed

import (
	"bufio"
	"errors"
	"os"
	"strings"

	"github.com/yanun0323/logs"
)

// ReplayStats counts the outcome of one feed replay.
type ReplayStats struct {
	Replayed  int
	Malformed int
	Failed    int
}

// Replay reads a feed file line by line and applies each non-blank line
// to the handler. Malformed records are counted and skipped; a handler
// error counts as failed without aborting the replay, so one bad event
// cannot take the run down.
func Replay(path string, handler func(line string) error) (ReplayStats, error) {
	file, err := os.Open(path)
	if err != nil {
		return ReplayStats{}, err
	}
	defer file.Close()

	var stats ReplayStats
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := handler(line); err != nil {
			if errors.Is(err, ErrMalformedRecord) {
				stats.Malformed++
				logs.Errorf("%s:%d skipped: %+v", path, lineNo, err)
				continue
			}
			stats.Failed++
			logs.Errorf("%s:%d failed: %+v", path, lineNo, err)
			continue
		}
		stats.Replayed++
	}
	if err := scanner.Err(); err != nil {
		return stats, err
	}
	return stats, nil
}
