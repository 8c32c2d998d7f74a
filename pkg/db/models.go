package db

import "time"

// Run is one recorded analysis over a deck.
type Run struct {
	ID                int64
	DeckTitle         string
	TotalCards        int
	ExactDuplicates   int
	SimilarDuplicates int
	ReverseDuplicates int
	RemovedCards      int
	Threshold         float64
	CreatedAt         time.Time
}

// RunSuggestion is one suggestion stored against a run. Targets holds
// the card indices as a JSON array; DuplicateOf is negative when the
// suggestion has no kept card.
type RunSuggestion struct {
	ID          int64
	RunID       int64
	Action      string
	Targets     []int
	DuplicateOf int
	Score       float64
	Rationale   string
}
