package dedup

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"unicode/utf8"

	"github.com/japaniel/deckdupe/pkg/deck"
)

// Kind classifies a duplicate group. Categories are computed
// independently; a pair of cards can show up under more than one kind.
type Kind string

const (
	KindExact     Kind = "exact"
	KindSimilar   Kind = "similar"
	KindReverse   Kind = "reverse"
	KindSubstring Kind = "substring"
)

// Member roles for substring groups.
const (
	RoleContained = "contained"
	RoleContainer = "container"
)

// Member is one card's place in a duplicate group.
type Member struct {
	Index int             `json:"index"`
	Card  deck.CardRecord `json:"card"`
	Role  string          `json:"role,omitempty"`
}

// Group is a set of cards classified as duplicates of one another.
// Exact groups hold every card sharing a normalized front; the other
// kinds are always pairs. Score is set for similar groups only.
// Groups are never mutated after creation.
type Group struct {
	Kind    Kind     `json:"kind"`
	Members []Member `json:"members"`
	Score   float64  `json:"score,omitempty"`
	Detail  string   `json:"detail"`
}

// Duplicates holds every group found in one analysis run, by kind.
type Duplicates struct {
	Exact     []Group `json:"exact"`
	Similar   []Group `json:"similar"`
	Reverse   []Group `json:"reverse"`
	Substring []Group `json:"substring"`
}

// Stats are the aggregate counts for a run. ExactDuplicates counts
// removable cards: group size minus one, summed over exact groups.
type Stats struct {
	TotalCards        int `json:"total_cards"`
	ExactDuplicates   int `json:"exact_duplicates"`
	SimilarDuplicates int `json:"similar_duplicates"`
	ReverseDuplicates int `json:"reverse_duplicates"`
}

// DefaultThreshold is the similarity threshold used when Options
// leaves it zero.
const DefaultThreshold = 0.85

// substringMinLen is the minimum raw front length (in runes) for the
// substring check; short fronts contain each other too easily.
const substringMinLen = 10

// ErrInvalidThreshold is returned by NewAnalyzer for thresholds
// outside [0, 1]. Invalid configuration is rejected, never clamped.
var ErrInvalidThreshold = errors.New("dedup: similarity threshold out of range")

// Options configures an Analyzer.
type Options struct {
	// Threshold is the minimum similarity score for the similar-pair
	// category. Zero selects DefaultThreshold; values outside [0, 1]
	// are rejected.
	Threshold float64
	// Workers shards the pairwise scan across this many goroutines.
	// Values below 2 keep the scan sequential. Output is identical
	// either way.
	Workers int
	// Logger receives informational messages. nil means no logging.
	Logger *log.Logger
}

// Analyzer finds duplicate cards in a flattened deck. It holds no
// state across runs; the same input always yields the same output.
type Analyzer struct {
	threshold float64
	workers   int
	logger    *log.Logger
}

// NewAnalyzer validates opts and builds an Analyzer.
func NewAnalyzer(opts Options) (*Analyzer, error) {
	threshold := opts.Threshold
	if threshold == 0 {
		threshold = DefaultThreshold
	}
	if threshold < 0 || threshold > 1 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidThreshold, opts.Threshold)
	}
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	return &Analyzer{threshold: threshold, workers: workers, logger: opts.Logger}, nil
}

// Threshold reports the configured similarity threshold.
func (a *Analyzer) Threshold() float64 { return a.threshold }

// cardKey caches the per-card values the scan needs so normalization
// and rune splitting happen once per card, not once per pair.
type cardKey struct {
	frontNorm  string
	backNorm   string
	frontRunes []string
	frontLen   int // raw front length in runes
}

// FindDuplicates classifies all duplicate groups in cards. The four
// categories are computed independently, with one carry-over from the
// scan order: a pair already classified as a reverse pair is not also
// scored for similarity. Substring containment is checked regardless.
func (a *Analyzer) FindDuplicates(ctx context.Context, cards []deck.CardRecord) (Duplicates, Stats) {
	stats := Stats{TotalCards: len(cards)}
	var dups Duplicates

	keys := make([]cardKey, len(cards))
	for i, c := range cards {
		keys[i] = cardKey{
			frontNorm:  Normalize(c.Front),
			backNorm:   Normalize(c.Back),
			frontRunes: splitRunes(c.Front),
			frontLen:   utf8.RuneCountInString(c.Front),
		}
	}

	// Exact pass: group by normalized front, first-seen order, empty
	// keys excluded.
	var order []string
	byFront := make(map[string][]Member)
	for i, c := range cards {
		key := keys[i].frontNorm
		if key == "" {
			continue
		}
		if _, seen := byFront[key]; !seen {
			order = append(order, key)
		}
		byFront[key] = append(byFront[key], Member{Index: c.Index, Card: c})
	}
	for _, key := range order {
		members := byFront[key]
		if len(members) < 2 {
			continue
		}
		dups.Exact = append(dups.Exact, Group{
			Kind:    KindExact,
			Members: members,
			Detail:  fmt.Sprintf("identical front text: %q", key),
		})
		stats.ExactDuplicates += len(members) - 1
	}

	// Pairwise passes over all unordered pairs.
	for _, row := range a.scanRows(ctx, cards, keys) {
		for _, g := range row {
			switch g.Kind {
			case KindReverse:
				dups.Reverse = append(dups.Reverse, g)
				stats.ReverseDuplicates++
			case KindSimilar:
				dups.Similar = append(dups.Similar, g)
				stats.SimilarDuplicates++
			case KindSubstring:
				dups.Substring = append(dups.Substring, g)
			}
		}
	}

	if a.logger != nil {
		a.logger.Printf("analyzed %d cards: %d exact, %d similar, %d reverse, %d substring",
			stats.TotalCards, len(dups.Exact), len(dups.Similar), len(dups.Reverse), len(dups.Substring))
	}
	return dups, stats
}

// scanRows runs the pairwise comparison matrix. Row i compares card i
// against every card j > i, so rows are disjoint and independent; with
// multiple workers each row is one job and the merge back into row
// order keeps output deterministic and equal to the sequential scan.
func (a *Analyzer) scanRows(ctx context.Context, cards []deck.CardRecord, keys []cardKey) [][]Group {
	rows := make([][]Group, len(cards))
	if a.workers <= 1 {
		for i := range cards {
			rows[i] = a.scanRow(i, cards, keys)
		}
		return rows
	}

	// Queue capacity covers every row so submission never blocks on
	// a worker that has already exited.
	pool := newWorkerPool(a.workers, len(cards))
	pool.start(ctx)
	for i := range cards {
		i := i
		pool.submit(func(context.Context) {
			rows[i] = a.scanRow(i, cards, keys)
		})
	}
	pool.close()
	return rows
}

// scanRow classifies the pairs (i, j) for all j > i, in j order.
func (a *Analyzer) scanRow(i int, cards []deck.CardRecord, keys []cardKey) []Group {
	var out []Group
	ci, ki := cards[i], keys[i]
	for j := i + 1; j < len(cards); j++ {
		cj, kj := cards[j], keys[j]

		isReverse := ki.frontNorm != "" && kj.frontNorm != "" &&
			ki.frontNorm == kj.backNorm && ki.backNorm == kj.frontNorm
		if isReverse {
			out = append(out, Group{
				Kind: KindReverse,
				Members: []Member{
					{Index: ci.Index, Card: ci},
					{Index: cj.Index, Card: cj},
				},
				Detail: "cards are reverses of each other",
			})
		} else if ci.Front != "" && cj.Front != "" {
			// Length gap alone can rule out the threshold; skip the
			// matcher for those pairs.
			if maxRatio(ki.frontLen, kj.frontLen) >= a.threshold {
				score := ratio(ki.frontRunes, kj.frontRunes)
				if score >= a.threshold && score < 1.0 {
					out = append(out, Group{
						Kind: KindSimilar,
						Members: []Member{
							{Index: ci.Index, Card: ci},
							{Index: cj.Index, Card: cj},
						},
						Score:  score,
						Detail: fmt.Sprintf("similar front text (%.0f%% match)", score*100),
					})
				}
			}
		}

		if ki.frontLen > substringMinLen && kj.frontLen > substringMinLen && ci.Front != cj.Front {
			if strings.Contains(cj.Front, ci.Front) {
				out = append(out, Group{
					Kind: KindSubstring,
					Members: []Member{
						{Index: ci.Index, Card: ci, Role: RoleContained},
						{Index: cj.Index, Card: cj, Role: RoleContainer},
					},
					Detail: "first card is contained in second",
				})
			} else if strings.Contains(ci.Front, cj.Front) {
				out = append(out, Group{
					Kind: KindSubstring,
					Members: []Member{
						{Index: ci.Index, Card: ci, Role: RoleContainer},
						{Index: cj.Index, Card: cj, Role: RoleContained},
					},
					Detail: "second card is contained in first",
				})
			}
		}
	}
	return out
}
