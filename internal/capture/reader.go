package capture

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// maxLineSize bounds a single JSONL line. Captions are short; this is generous.
const maxLineSize = 1 << 20

// Read decodes a JSONL stream of events. Blank lines and lines starting with
// '#' are skipped.
func Read(r io.Reader) ([]Event, error) {
	scan := bufio.NewScanner(r)
	scan.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var events []Event
	lineNo := 0
	for scan.Scan() {
		lineNo++
		line := strings.TrimSpace(scan.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		var ev Event
		if err := json.Unmarshal([]byte(line), &ev); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		events = append(events, ev)
	}
	if err := scan.Err(); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}

	return events, nil
}

// ReadFile reads a capture file from disk.
func ReadFile(path string) ([]Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open capture: %w", err)
	}
	defer f.Close()

	events, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("read capture %s: %w", path, err)
	}
	return events, nil
}
