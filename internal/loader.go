package internal

import (
	"bufio"
	"bytes"
	"io"
	"math"
	"os"
)

const defaultScannerBufferSize = 1024 * 1024

// LoadResult holds the outcome of decoding a transcript.
type LoadResult struct {
	Events  []Event
	Skipped int // malformed lines dropped
}

// ReadTranscript reads a newline-delimited JSON transcript from disk and
// decodes each line independently. A line that fails to decode is counted
// and skipped; one malformed record never invalidates the rest of the log.
func ReadTranscript(path string) (*LoadResult, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()

	return DecodeEvents(file)
}

// DecodeEvents decodes transcript lines from r in append order.
func DecodeEvents(r io.Reader) (*LoadResult, error) {
	scanner := bufio.NewScanner(r)
	// Transcript lines can be very large (tool results embed file contents).
	buf := make([]byte, 0, defaultScannerBufferSize)
	scanner.Buffer(buf, math.MaxInt)

	result := &LoadResult{}
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		ev, err := ParseEvent(line)
		if err != nil {
			LogDebug("Skipping malformed transcript line %d: %v", lineNum, err)
			result.Skipped++
			continue
		}
		result.Events = append(result.Events, ev)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
