package caption

import "context"

// Aggregator turns a stream of noisy per-speaker caption redraws into an
// ordered transcript of timestamped utterances.
//
// All methods are safe for concurrent use and never fail.
type Aggregator interface {
	// OnCaptionUpdate feeds one caption redraw for a speaker.
	OnCaptionUpdate(ctx context.Context, speakerKey, speakerName, rawText string)
	// Transcript commits every open chunk and returns the records joined by newlines.
	Transcript(ctx context.Context) string
	// Records commits every open chunk and returns a copy of the committed records.
	Records(ctx context.Context) []Record
	// ResetTranscript drops open chunks without committing them and clears the transcript.
	ResetTranscript(ctx context.Context)
	// Stats reports the current number of open chunks and committed records.
	Stats() Stats
}

// Stats is a point-in-time view of an Aggregator.
type Stats struct {
	OpenChunks int `json:"openChunks"`
	Records    int `json:"records"`
}
