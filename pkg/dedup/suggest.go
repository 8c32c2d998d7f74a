package dedup

import (
	"fmt"

	"github.com/japaniel/deckdupe/pkg/deck"
)

// Action is what a suggestion asks the caller to do. Only Remove
// deletes cards; the other actions flag pairs for a human decision.
type Action string

const (
	ActionRemove       Action = "remove"
	ActionMergeReverse Action = "merge_reverse"
	ActionReview       Action = "review"
)

// Suggestion is one proposed action over card indices. DuplicateOf is
// the index of the kept card for Remove suggestions and -1 otherwise.
// Score carries the similarity score on similar-pair reviews.
type Suggestion struct {
	Action      Action  `json:"action"`
	Targets     []int   `json:"targets"`
	DuplicateOf int     `json:"duplicate_of"`
	Score       float64 `json:"score,omitempty"`
	Rationale   string  `json:"rationale"`
}

// Suggest turns duplicate groups into a conflict-free action list.
// The removed set accumulates sequentially in group order: for each
// exact group the first member (original input order) is kept and the
// rest become Remove suggestions, deduplicated across groups so no
// index is removed twice. Reverse and similar pairs whose members
// survived the exact pass become MergeReverse / Review suggestions;
// substring pairs become Review suggestions when the contained card
// survived. Nothing outside exact groups is ever auto-removed.
func Suggest(dups Duplicates) []Suggestion {
	var suggestions []Suggestion
	removed := make(map[int]bool)

	for _, g := range dups.Exact {
		keep := g.Members[0].Index
		for _, m := range g.Members[1:] {
			if removed[m.Index] {
				continue
			}
			removed[m.Index] = true
			suggestions = append(suggestions, Suggestion{
				Action:      ActionRemove,
				Targets:     []int{m.Index},
				DuplicateOf: keep,
				Rationale:   g.Detail,
			})
		}
	}

	for _, g := range dups.Reverse {
		a, b := g.Members[0].Index, g.Members[1].Index
		if removed[a] || removed[b] {
			continue
		}
		suggestions = append(suggestions, Suggestion{
			Action:      ActionMergeReverse,
			Targets:     []int{a, b},
			DuplicateOf: -1,
			Rationale:   "these cards are reverses - consider keeping both or creating a reversible card type",
		})
	}

	for _, g := range dups.Similar {
		a, b := g.Members[0].Index, g.Members[1].Index
		if removed[a] || removed[b] {
			continue
		}
		suggestions = append(suggestions, Suggestion{
			Action:      ActionReview,
			Targets:     []int{a, b},
			DuplicateOf: -1,
			Score:       g.Score,
			Rationale:   fmt.Sprintf("%s - manual review needed, cards are similar but not identical", g.Detail),
		})
	}

	for _, g := range dups.Substring {
		contained := -1
		var targets []int
		for _, m := range g.Members {
			targets = append(targets, m.Index)
			if m.Role == RoleContained {
				contained = m.Index
			}
		}
		if contained < 0 || removed[contained] {
			continue
		}
		suggestions = append(suggestions, Suggestion{
			Action:      ActionReview,
			Targets:     targets,
			DuplicateOf: -1,
			Rationale:   fmt.Sprintf("%s - consider removing the shorter card or combining them", g.Detail),
		})
	}

	return suggestions
}

// RemovedSet collects the union of all Remove targets. Each index
// appears in at most one Remove suggestion, so the set size equals the
// number of Remove suggestions.
func RemovedSet(suggestions []Suggestion) map[int]bool {
	removed := make(map[int]bool)
	for _, s := range suggestions {
		if s.Action != ActionRemove {
			continue
		}
		for _, idx := range s.Targets {
			removed[idx] = true
		}
	}
	return removed
}

// ApplyRemovals drops every card whose index is in the Remove set and
// returns the cleaned sequence. Applying it is idempotent: re-running
// detection on the result yields no exact groups. Original Index
// values are preserved so suggestions stay meaningful against the
// input sequence.
func ApplyRemovals(cards []deck.CardRecord, suggestions []Suggestion) []deck.CardRecord {
	removed := RemovedSet(suggestions)
	cleaned := make([]deck.CardRecord, 0, len(cards))
	for _, c := range cards {
		if removed[c.Index] {
			continue
		}
		cleaned = append(cleaned, c)
	}
	return cleaned
}
