package deck

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/go-shiori/go-readability"
)

// CardsFromHTML extracts front/back pairs from a saved HTML page. The
// page's readable text content is split line by line; the article
// title becomes the DeckPath.
func CardsFromHTML(r io.Reader, pageURL string) ([]CardRecord, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("parse page url: %w", err)
	}
	article, err := readability.FromReader(r, u)
	if err != nil {
		return nil, fmt.Errorf("extract article: %w", err)
	}

	title := article.Title
	if title == "" {
		title = "Imported"
	}
	return CardsFromText(article.TextContent, title), nil
}

// CardsFromText splits raw text into cards. A line containing a run of
// four or more spaces becomes one card: front before the gap, the
// remainder as the back. Lines without a gap or with an empty side are
// skipped.
func CardsFromText(text, deckPath string) []CardRecord {
	var cards []CardRecord
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		front, back, ok := strings.Cut(line, "    ")
		if !ok {
			continue
		}
		front = strings.TrimSpace(front)
		back = strings.TrimSpace(back)
		if front == "" || back == "" {
			continue
		}
		cards = append(cards, CardRecord{
			Index:    len(cards),
			Front:    front,
			Back:     back,
			DeckPath: deckPath,
		})
	}
	return cards
}
