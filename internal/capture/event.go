package capture

import (
	"strings"
	"time"
)

// Event is one caption redraw as observed by the page collaborator.
type Event struct {
	Time        time.Time `json:"ts"`
	SpeakerKey  string    `json:"speakerKey,omitempty"`
	SpeakerName string    `json:"speakerName,omitempty"`
	Text        string    `json:"text"`
}

// Key returns the stable participant id, or the display name when the page
// exposed none.
func (e Event) Key() string {
	if k := strings.TrimSpace(e.SpeakerKey); k != "" {
		return k
	}
	return strings.TrimSpace(e.SpeakerName)
}
