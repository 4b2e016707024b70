package caption

import "strings"

var punctuationStripper = strings.NewReplacer(
	".", "",
	",", "",
	"?", "",
	"!", "",
	"'", "",
	`"`, "",
	"’", "",
)

// Normalize canonicalizes caption text for duplicate detection: lowercase,
// drop . , ? ! ' " ’ and collapse whitespace. It is never stored.
func Normalize(text string) string {
	s := strings.ToLower(text)
	s = punctuationStripper.Replace(s)
	return strings.Join(strings.Fields(s), " ")
}
