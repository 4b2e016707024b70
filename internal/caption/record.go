package caption

import (
	"fmt"
	"strings"
	"time"
)

// isoLayout matches the millisecond UTC form used in transcript lines.
const isoLayout = "2006-01-02T15:04:05.000Z"

// Record is a committed, immutable utterance.
type Record struct {
	SpeakerKey string    `json:"speakerKey"`
	Speaker    string    `json:"speaker"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	Text       string    `json:"text"`
}

// String renders the transcript line "[start] [end] speaker : text".
func (r Record) String() string {
	return strings.TrimSpace(fmt.Sprintf("[%s] [%s] %s : %s",
		FormatTime(r.Start), FormatTime(r.End), r.Speaker, r.Text))
}

// FormatTime formats t as an ISO-8601 UTC instant with milliseconds.
func FormatTime(t time.Time) string {
	return t.UTC().Format(isoLayout)
}

// JoinRecords renders records one per line.
func JoinRecords(records []Record) string {
	lines := make([]string, len(records))
	for i, r := range records {
		lines[i] = r.String()
	}
	return strings.Join(lines, "\n")
}
