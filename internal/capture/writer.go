package capture

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
)

// Writer appends events to a JSONL stream.
type Writer struct {
	mu  sync.Mutex
	enc *json.Encoder
}

// NewWriter creates a Writer over w.
func NewWriter(w io.Writer) *Writer {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &Writer{enc: enc}
}

// Write encodes ev as a single line.
func (w *Writer) Write(ev Event) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.enc.Encode(ev); err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	return nil
}
