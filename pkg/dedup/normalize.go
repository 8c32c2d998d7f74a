package dedup

import (
	"strings"

	"golang.org/x/net/html"
)

// Normalize produces the comparison key for a card field: markup is
// stripped, interior whitespace runs collapse to single spaces, the
// result is lowercased and one trailing run of sentence punctuation is
// trimmed. Deterministic and side-effect-free. Markup-only input
// normalizes to the empty string, which callers must exclude from
// grouping (empty keys never match each other).
func Normalize(text string) string {
	text = stripMarkup(text)
	text = strings.Join(strings.Fields(text), " ")
	text = strings.ToLower(text)
	text = strings.TrimRight(text, ".,!?;:")
	return text
}

// stripMarkup removes every <...> span, keeping only text content.
// Entities are decoded along the way.
func stripMarkup(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}
	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(s))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return b.String()
		case html.TextToken:
			b.Write(z.Text())
		}
	}
}
