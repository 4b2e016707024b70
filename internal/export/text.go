package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// ErrEmptyTranscript is returned when there is nothing worth saving.
var ErrEmptyTranscript = errors.New("transcript is empty")

const defaultSuffix = "google-meet"

var reUnsafe = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// TranscriptFilename builds "google-meet-transcript-<suffix>-<unixMillis>.txt".
// suffix is usually the meeting code; it falls back to "google-meet".
func TranscriptFilename(suffix string, at time.Time) string {
	return fmt.Sprintf("google-meet-transcript-%s-%d.txt", cleanSuffix(suffix), at.UnixMilli())
}

// WriteText saves transcript into dir and returns the file path.
func WriteText(dir, suffix, transcript string, at time.Time) (string, error) {
	if strings.TrimSpace(transcript) == "" {
		return "", ErrEmptyTranscript
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	path := filepath.Join(dir, TranscriptFilename(suffix, at))
	if err := os.WriteFile(path, []byte(transcript), 0644); err != nil {
		return "", fmt.Errorf("write transcript: %w", err)
	}
	return path, nil
}

func cleanSuffix(s string) string {
	s = strings.Trim(reUnsafe.ReplaceAllString(strings.TrimSpace(s), "-"), "-")
	if s == "" {
		return defaultSuffix
	}
	return s
}
