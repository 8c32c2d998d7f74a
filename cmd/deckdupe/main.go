package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/japaniel/deckdupe/pkg/db"
	"github.com/japaniel/deckdupe/pkg/deck"
	"github.com/japaniel/deckdupe/pkg/dedup"

	_ "github.com/mattn/go-sqlite3"
)

func main() {
	deckFlag := flag.String("deck", "", "Path to deck JSON file (CrowdAnki or flat format)")
	htmlFlag := flag.String("html", "", "Path to a saved HTML page to extract cards from")
	thresholdFlag := flag.Float64("threshold", dedup.DefaultThreshold, "Similarity threshold in [0,1]")
	workersFlag := flag.Int("workers", 4, "Worker goroutines for the pairwise scan")
	dbFlag := flag.String("db", "", "Optional SQLite database recording run history")
	reportFlag := flag.String("report", "", "Write the human-readable report to this file")
	jsonFlag := flag.String("json", "", "Write the full machine-readable report to this file")
	cleanedFlag := flag.String("cleaned", "", "Write the deck minus removed cards to this file")
	flag.Parse()

	// Setup context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if *deckFlag == "" && *htmlFlag == "" {
		log.Fatal("Please provide a -deck or -html input")
	}
	if *deckFlag != "" && *htmlFlag != "" {
		log.Fatal("Use either -deck or -html, not both")
	}

	var (
		cards []deck.CardRecord
		tree  *deck.Deck
		title string
	)

	if *deckFlag != "" {
		d, err := deck.Load(*deckFlag)
		if err != nil {
			log.Fatalf("Failed to load deck: %v", err)
		}
		tree = d
		title = d.Name
		cards = d.Flatten()
	} else {
		f, err := os.Open(*htmlFlag)
		if err != nil {
			log.Fatalf("Failed to open HTML file: %v", err)
		}
		cards, err = deck.CardsFromHTML(f, "file://"+*htmlFlag)
		f.Close()
		if err != nil {
			log.Fatalf("Failed to extract cards: %v", err)
		}
		title = *htmlFlag
	}
	if title == "" {
		title = *deckFlag
	}

	fmt.Printf("Loaded %d cards from %s\n", len(cards), title)

	analyzer, err := dedup.NewAnalyzer(dedup.Options{
		Threshold: *thresholdFlag,
		Workers:   *workersFlag,
		Logger:    log.New(os.Stderr, "", log.LstdFlags),
	})
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	report := analyzer.Analyze(ctx, cards)
	fmt.Println(report.Format())

	if *reportFlag != "" {
		if err := os.WriteFile(*reportFlag, []byte(report.Format()), 0o644); err != nil {
			log.Fatalf("Failed to write report: %v", err)
		}
		fmt.Printf("Report saved to: %s\n", *reportFlag)
	}

	if *jsonFlag != "" {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			log.Fatalf("Failed to marshal report: %v", err)
		}
		if err := os.WriteFile(*jsonFlag, data, 0o644); err != nil {
			log.Fatalf("Failed to write JSON report: %v", err)
		}
		fmt.Printf("Detailed report saved to: %s\n", *jsonFlag)
	}

	if *cleanedFlag != "" {
		removed := dedup.RemovedSet(report.Suggestions)
		if tree != nil {
			if err := tree.Removed(removed).WriteFile(*cleanedFlag); err != nil {
				log.Fatalf("Failed to write cleaned deck: %v", err)
			}
		} else {
			cleaned := dedup.ApplyRemovals(cards, report.Suggestions)
			out := &deck.Deck{Name: title}
			for _, c := range cleaned {
				out.Cards = append(out.Cards, deck.Card{Front: c.Front, Back: c.Back, Tags: c.Tags, GUID: c.GUID})
			}
			if err := out.WriteFile(*cleanedFlag); err != nil {
				log.Fatalf("Failed to write cleaned deck: %v", err)
			}
		}
		fmt.Printf("Cleaned deck saved to: %s (removed %d cards)\n", *cleanedFlag, len(removed))
	}

	if *dbFlag != "" {
		conn, err := sql.Open("sqlite3", *dbFlag)
		if err != nil {
			log.Fatalf("Failed to open database: %v", err)
		}
		defer conn.Close()

		if err := db.InitDB(conn); err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		runID, err := db.SaveRun(conn, title, analyzer.Threshold(), report)
		if err != nil {
			log.Fatalf("Failed to record run: %v", err)
		}
		fmt.Printf("Run recorded with ID: %d\n", runID)
	}
}
