package db

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/japaniel/deckdupe/pkg/dedup"
)

// DBExecutor is an interface that allows methods to accept either *sql.DB or *sql.Tx
type DBExecutor interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}

// SaveRun records one analysis run and its suggestions in a single
// transaction and returns the new run id.
func SaveRun(db *sql.DB, deckTitle string, threshold float64, report dedup.Report) (int64, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin save run: %w", err)
	}
	defer tx.Rollback()

	removed := len(dedup.RemovedSet(report.Suggestions))
	res, err := tx.Exec(
		`INSERT INTO runs (deck_title, total_cards, exact_duplicates, similar_duplicates, reverse_duplicates, removed_cards, threshold)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		deckTitle,
		report.Stats.TotalCards,
		report.Stats.ExactDuplicates,
		report.Stats.SimilarDuplicates,
		report.Stats.ReverseDuplicates,
		removed,
		threshold,
	)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	for _, s := range report.Suggestions {
		if err := insertSuggestion(tx, runID, s); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit save run: %w", err)
	}
	return runID, nil
}

func insertSuggestion(db DBExecutor, runID int64, s dedup.Suggestion) error {
	targets, err := json.Marshal(s.Targets)
	if err != nil {
		return fmt.Errorf("marshal targets: %w", err)
	}
	var dupOf interface{}
	if s.DuplicateOf >= 0 {
		dupOf = s.DuplicateOf
	}
	var score interface{}
	if s.Score > 0 {
		score = s.Score
	}
	_, err = db.Exec(
		`INSERT INTO run_suggestions (run_id, action, targets, duplicate_of, score, rationale)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		runID, string(s.Action), string(targets), dupOf, score, s.Rationale,
	)
	if err != nil {
		return fmt.Errorf("insert suggestion: %w", err)
	}
	return nil
}

// GetRuns returns the most recent runs, newest first. limit <= 0 means
// no limit.
func GetRuns(db DBExecutor, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := db.Query(
		`SELECT id, deck_title, total_cards, exact_duplicates, similar_duplicates, reverse_duplicates, removed_cards, threshold, created_at
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.DeckTitle, &r.TotalCards, &r.ExactDuplicates,
			&r.SimilarDuplicates, &r.ReverseDuplicates, &r.RemovedCards, &r.Threshold, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// GetRunSuggestions returns the suggestions stored for a run, in
// insertion order.
func GetRunSuggestions(db DBExecutor, runID int64) ([]RunSuggestion, error) {
	rows, err := db.Query(
		`SELECT id, run_id, action, targets, duplicate_of, score, rationale
		 FROM run_suggestions WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunSuggestion
	for rows.Next() {
		var s RunSuggestion
		var targets string
		var dupOf sql.NullInt64
		var score sql.NullFloat64
		if err := rows.Scan(&s.ID, &s.RunID, &s.Action, &targets, &dupOf, &score, &s.Rationale); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(targets), &s.Targets); err != nil {
			return nil, fmt.Errorf("unmarshal targets: %w", err)
		}
		s.DuplicateOf = -1
		if dupOf.Valid {
			s.DuplicateOf = int(dupOf.Int64)
		}
		if score.Valid {
			s.Score = score.Float64
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
