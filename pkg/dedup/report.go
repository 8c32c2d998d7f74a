package dedup

import (
	"context"
	"fmt"
	"strings"

	"github.com/japaniel/deckdupe/pkg/deck"
)

// Report is the complete, loss-free result of one analysis run. The
// human-readable rendering in Format truncates long listings; the
// struct itself always carries every group and suggestion.
type Report struct {
	Stats       Stats        `json:"stats"`
	Duplicates  Duplicates   `json:"duplicates"`
	Suggestions []Suggestion `json:"suggestions"`
	Notes       []string     `json:"notes,omitempty"`
}

// How many groups the human-readable report shows per category.
const (
	exactShowMax   = 10
	similarShowMax = 5
)

// Analyze runs the full pipeline: classification, suggestion
// generation, and data-quality validation of the input records.
func (a *Analyzer) Analyze(ctx context.Context, cards []deck.CardRecord) Report {
	dups, stats := a.FindDuplicates(ctx, cards)
	return Report{
		Stats:       stats,
		Duplicates:  dups,
		Suggestions: Suggest(dups),
		Notes:       deck.Validate(cards),
	}
}

// Format renders the human-readable summary. Only the first
// exactShowMax exact groups and similarShowMax similar pairs are
// listed, with an explicit "... and K more" tail for the rest.
func (r Report) Format() string {
	var b strings.Builder
	b.WriteString("# Duplicate Detection Report\n\n")
	fmt.Fprintf(&b, "Total cards analyzed: %d\n", r.Stats.TotalCards)
	fmt.Fprintf(&b, "Exact duplicates found: %d\n", r.Stats.ExactDuplicates)
	fmt.Fprintf(&b, "Similar cards found: %d\n", r.Stats.SimilarDuplicates)
	fmt.Fprintf(&b, "Reverse pairs found: %d\n", r.Stats.ReverseDuplicates)

	removeCount, reviewCount := 0, 0
	for _, s := range r.Suggestions {
		switch s.Action {
		case ActionRemove:
			removeCount++
		case ActionReview:
			reviewCount++
		}
	}
	b.WriteString("\n## Suggested Actions\n")
	fmt.Fprintf(&b, "- Cards to remove: %d\n", removeCount)
	fmt.Fprintf(&b, "- Cards to review: %d\n", reviewCount)

	if len(r.Duplicates.Exact) > 0 {
		b.WriteString("\n## Exact Duplicates\n")
		for i, g := range r.Duplicates.Exact {
			if i >= exactShowMax {
				break
			}
			fmt.Fprintf(&b, "%d. '%s' appears %d times\n",
				i+1, truncate(g.Members[0].Card.Front, 50), len(g.Members))
		}
		if extra := len(r.Duplicates.Exact) - exactShowMax; extra > 0 {
			fmt.Fprintf(&b, "... and %d more groups\n", extra)
		}
	}

	if len(r.Duplicates.Similar) > 0 {
		b.WriteString("\n## Similar Cards (Manual Review Needed)\n")
		for i, g := range r.Duplicates.Similar {
			if i >= similarShowMax {
				break
			}
			fmt.Fprintf(&b, "%d. %.0f%% similar:\n", i+1, g.Score*100)
			fmt.Fprintf(&b, "   - '%s'\n", truncate(g.Members[0].Card.Front, 40))
			fmt.Fprintf(&b, "   - '%s'\n", truncate(g.Members[1].Card.Front, 40))
		}
		if extra := len(r.Duplicates.Similar) - similarShowMax; extra > 0 {
			fmt.Fprintf(&b, "... and %d more pairs\n", extra)
		}
	}

	if len(r.Notes) > 0 {
		b.WriteString("\n## Data Quality Notes\n")
		for _, n := range r.Notes {
			fmt.Fprintf(&b, "- %s\n", n)
		}
	}

	return b.String()
}

// truncate shortens s to at most n runes, marking the cut with an
// ellipsis.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
