package deck

import (
	"fmt"
	"strings"
)

// MaxFieldLen is the largest front/back field accepted without a
// data-quality note. Matches the Anki note field limit.
const MaxFieldLen = 131072

// CardRecord is a single flashcard flattened out of a deck tree.
// Index is the card's stable position in the flattened sequence and is
// what removal suggestions refer to. Records are read-only once built.
type CardRecord struct {
	Index    int      `json:"index"`
	Front    string   `json:"front"`
	Back     string   `json:"back"`
	Tags     []string `json:"tags,omitempty"`
	DeckPath string   `json:"deck_path,omitempty"`
	GUID     string   `json:"guid,omitempty"`
}

// Validate checks cards for data-quality problems: empty fields,
// oversized fields, and NUL bytes. It returns one human-readable note
// per problem. Problems are never fatal; the analyzer simply excludes
// empty fronts from grouping.
func Validate(cards []CardRecord) []string {
	var notes []string
	for _, c := range cards {
		if strings.TrimSpace(c.Front) == "" {
			notes = append(notes, fmt.Sprintf("card %d: empty front", c.Index))
		}
		if strings.TrimSpace(c.Back) == "" {
			notes = append(notes, fmt.Sprintf("card %d: empty back", c.Index))
		}
		if len(c.Front) > MaxFieldLen {
			notes = append(notes, fmt.Sprintf("card %d: front exceeds max length", c.Index))
		}
		if len(c.Back) > MaxFieldLen {
			notes = append(notes, fmt.Sprintf("card %d: back exceeds max length", c.Index))
		}
		if strings.ContainsRune(c.Front, 0) || strings.ContainsRune(c.Back, 0) {
			notes = append(notes, fmt.Sprintf("card %d: contains null bytes", c.Index))
		}
	}
	return notes
}
