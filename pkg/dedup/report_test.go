package dedup

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/japaniel/deckdupe/pkg/deck"
)

func TestAnalyzePipeline(t *testing.T) {
	a := mustAnalyzer(t, Options{})
	cards := cardsFrom([][2]string{
		{"le chat", "the cat"},
		{"le chat", "the cat"},
		{"Bonjour", "Hello"},
		{"Hello", "Bonjour"},
	})
	report := a.Analyze(context.Background(), cards)

	if report.Stats.TotalCards != 4 || report.Stats.ExactDuplicates != 1 || report.Stats.ReverseDuplicates != 1 {
		t.Errorf("stats = %+v", report.Stats)
	}
	if len(report.Suggestions) != 2 {
		t.Fatalf("suggestions = %d, want 2", len(report.Suggestions))
	}

	out := report.Format()
	for _, want := range []string{
		"Total cards analyzed: 4",
		"Exact duplicates found: 1",
		"Reverse pairs found: 1",
		"- Cards to remove: 1",
		"'le chat' appears 2 times",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}

// TestFormatTruncatesListings: only the first 10 exact groups and 5
// similar pairs are rendered, with an explicit "and K more" tail. The
// Report struct itself keeps everything.
func TestFormatTruncatesListings(t *testing.T) {
	var r Report
	for i := 0; i < 12; i++ {
		front := fmt.Sprintf("exact front %d", i)
		r.Duplicates.Exact = append(r.Duplicates.Exact, Group{
			Kind: KindExact,
			Members: []Member{
				{Index: 2 * i, Card: deck.CardRecord{Index: 2 * i, Front: front}},
				{Index: 2*i + 1, Card: deck.CardRecord{Index: 2*i + 1, Front: front}},
			},
			Detail: "identical front text",
		})
	}
	for i := 0; i < 7; i++ {
		r.Duplicates.Similar = append(r.Duplicates.Similar, Group{
			Kind: KindSimilar,
			Members: []Member{
				{Index: 100 + i, Card: deck.CardRecord{Index: 100 + i, Front: fmt.Sprintf("similar a %d", i)}},
				{Index: 200 + i, Card: deck.CardRecord{Index: 200 + i, Front: fmt.Sprintf("similar b %d", i)}},
			},
			Score: 0.9,
		})
	}

	out := r.Format()
	if !strings.Contains(out, "... and 2 more groups") {
		t.Errorf("missing exact-group tail:\n%s", out)
	}
	if !strings.Contains(out, "... and 2 more pairs") {
		t.Errorf("missing similar-pair tail:\n%s", out)
	}
	if strings.Contains(out, "exact front 10") {
		t.Error("rendered more than 10 exact groups")
	}
	if !strings.Contains(out, "exact front 9") {
		t.Error("did not render the 10th exact group")
	}
	if strings.Contains(out, "similar a 5") {
		t.Error("rendered more than 5 similar pairs")
	}
	if len(r.Duplicates.Exact) != 12 || len(r.Duplicates.Similar) != 7 {
		t.Error("formatting must not drop groups from the report")
	}
}

func TestFormatTruncatesLongFronts(t *testing.T) {
	long := strings.Repeat("x", 80)
	r := Report{
		Duplicates: Duplicates{
			Exact: []Group{{
				Kind: KindExact,
				Members: []Member{
					{Index: 0, Card: deck.CardRecord{Index: 0, Front: long}},
					{Index: 1, Card: deck.CardRecord{Index: 1, Front: long}},
				},
			}},
		},
	}
	out := r.Format()
	if !strings.Contains(out, strings.Repeat("x", 50)+"...") {
		t.Errorf("long front not truncated at 50 runes:\n%s", out)
	}
	if strings.Contains(out, strings.Repeat("x", 51)) {
		t.Error("front longer than 50 runes rendered")
	}
}

func TestTruncate(t *testing.T) {
	cases := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"exactly ten", 11, "exactly ten"},
		{"goes past the limit", 9, "goes past..."},
		{"héllo wörld", 5, "héllo..."},
	}
	for _, tc := range cases {
		if got := truncate(tc.in, tc.n); got != tc.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tc.in, tc.n, got, tc.want)
		}
	}
}

func TestAnalyzeEmptyInput(t *testing.T) {
	a := mustAnalyzer(t, Options{})
	report := a.Analyze(context.Background(), nil)
	if report.Stats != (Stats{}) {
		t.Errorf("stats = %+v, want zero", report.Stats)
	}
	if len(report.Suggestions) != 0 || len(report.Notes) != 0 {
		t.Errorf("unexpected suggestions or notes: %+v", report)
	}
	out := report.Format()
	if !strings.Contains(out, "Total cards analyzed: 0") {
		t.Errorf("empty report malformed:\n%s", out)
	}
}
