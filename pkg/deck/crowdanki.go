package deck

import (
	"encoding/json"
	"fmt"
	"os"
)

// Deck mirrors the two deck JSON shapes we ingest: the CrowdAnki
// export format (name / notes with positional fields / children
// subdecks) and the simpler flat format ({"cards": [{front, back}]}).
// A file may use either; a CrowdAnki tree may nest arbitrarily.
type Deck struct {
	Name     string  `json:"name,omitempty"`
	Notes    []Note  `json:"notes,omitempty"`
	Children []*Deck `json:"children,omitempty"`
	Cards    []Card  `json:"cards,omitempty"`
}

// Note is a CrowdAnki note. Fields are positional: fields[0] is the
// front, fields[1] the back. Missing fields are treated as empty.
type Note struct {
	Fields []string `json:"fields"`
	Tags   []string `json:"tags,omitempty"`
	GUID   string   `json:"guid,omitempty"`
}

// Card is a flat-format card.
type Card struct {
	Front string   `json:"front"`
	Back  string   `json:"back"`
	Tags  []string `json:"tags,omitempty"`
	GUID  string   `json:"guid,omitempty"`
}

// Load reads and parses a deck JSON file.
func Load(path string) (*Deck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read deck: %w", err)
	}
	return Parse(data)
}

// Parse decodes deck JSON from memory.
func Parse(data []byte) (*Deck, error) {
	var d Deck
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parse deck: %w", err)
	}
	if len(d.Notes) == 0 && len(d.Cards) == 0 && len(d.Children) == 0 {
		return nil, fmt.Errorf("parse deck: no cards, notes, or children found")
	}
	return &d, nil
}

// Flatten walks the deck and its subdecks recursively and returns the
// cards in document order. DeckPath records where each card came from
// ("Root/Child/..."); indices are assigned sequentially and are the
// stable identities the analyzer's suggestions point at.
func (d *Deck) Flatten() []CardRecord {
	var out []CardRecord
	d.walk("", func(path string, n *Note, c *Card) {
		rec := CardRecord{Index: len(out), DeckPath: path}
		if n != nil {
			if len(n.Fields) > 0 {
				rec.Front = n.Fields[0]
			}
			if len(n.Fields) > 1 {
				rec.Back = n.Fields[1]
			}
			rec.Tags = n.Tags
			rec.GUID = n.GUID
		} else {
			rec.Front = c.Front
			rec.Back = c.Back
			rec.Tags = c.Tags
			rec.GUID = c.GUID
		}
		out = append(out, rec)
	})
	return out
}

// Removed returns a copy of the deck tree with every card whose
// flattened index is in the removed set dropped. Walk order matches
// Flatten, so indices line up.
func (d *Deck) Removed(removed map[int]bool) *Deck {
	idx := 0
	return d.prune(removed, &idx)
}

func (d *Deck) prune(removed map[int]bool, idx *int) *Deck {
	out := &Deck{Name: d.Name}
	for _, n := range d.Notes {
		if !removed[*idx] {
			out.Notes = append(out.Notes, n)
		}
		*idx++
	}
	for _, c := range d.Cards {
		if !removed[*idx] {
			out.Cards = append(out.Cards, c)
		}
		*idx++
	}
	for _, child := range d.Children {
		out.Children = append(out.Children, child.prune(removed, idx))
	}
	return out
}

// WriteFile marshals the deck as indented JSON.
func (d *Deck) WriteFile(path string) error {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal deck: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write deck: %w", err)
	}
	return nil
}

// walk visits notes before flat cards in each deck node, then recurses
// into children. Exactly one of n / c is non-nil per visit.
func (d *Deck) walk(parent string, visit func(path string, n *Note, c *Card)) {
	path := d.Name
	if path == "" {
		path = "Root"
	}
	if parent != "" {
		path = parent + "/" + path
	}
	for i := range d.Notes {
		visit(path, &d.Notes[i], nil)
	}
	for i := range d.Cards {
		visit(path, nil, &d.Cards[i])
	}
	for _, child := range d.Children {
		child.walk(path, visit)
	}
}
