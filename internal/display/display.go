// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package display renders a ResearchResult for people: a header with the
// record count and a summary of the query, then one view per record
// category. Every category is always shown, with an explicit message when it
// has no records.
package display

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/trait-explorer/pkg/types"
)

const (
	// IdleMessage is shown before the first search.
	IdleMessage = "Enter search parameters above to explore genes, QTLs and markers."
	// LoadingMessage is shown while a search is in flight.
	LoadingMessage = "Analyzing genetic data..."

	// fallbackSummary describes a query with no non-blank fields.
	fallbackSummary = "all genetic data"
)

// Tab selects one record category.
type Tab int

const (
	Genes Tab = iota
	QTLs
	Markers
)

// Tabs lists every category in display order.
func Tabs() []Tab { return []Tab{Genes, QTLs, Markers} }

// String returns the flag spelling of t.
func (t Tab) String() string {
	switch t {
	case Genes:
		return "genes"
	case QTLs:
		return "qtls"
	case Markers:
		return "markers"
	default:
		return fmt.Sprintf("tab(%d)", int(t))
	}
}

// ParseTab converts "genes", "qtls", or "markers" (any case) to a Tab.
func ParseTab(s string) (Tab, error) {
	for _, t := range Tabs() {
		if strings.EqualFold(s, t.String()) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown tab %q (want genes, qtls, or markers)", s)
}

// Next returns the tab after t, wrapping around.
func (t Tab) Next() Tab { return (t + 1) % 3 }

// Prev returns the tab before t, wrapping around.
func (t Tab) Prev() Tab { return (t + 2) % 3 }

// noun is the plural shown in labels and empty-state messages.
func (t Tab) noun() string {
	switch t {
	case QTLs:
		return "QTLs"
	case Markers:
		return "markers"
	default:
		return "genes"
	}
}

// Count returns the number of records r holds for t.
func Count(r types.ResearchResult, t Tab) int {
	switch t {
	case QTLs:
		return len(r.QTLs)
	case Markers:
		return len(r.Markers)
	default:
		return len(r.Genes)
	}
}

// TabLabel returns the selector text for t, e.g. "Genes (2)".
func TabLabel(r types.ResearchResult, t Tab) string {
	name := t.noun()
	if t != QTLs {
		name = strings.ToUpper(name[:1]) + name[1:]
	}
	return fmt.Sprintf("%s (%d)", name, Count(r, t))
}

// EmptyMessage is shown in place of the records of an empty category.
func EmptyMessage(t Tab) string {
	return fmt.Sprintf("No %s found for the given search parameters.", t.noun())
}

// Summary describes the non-blank query fields in the order trait, crop,
// variety, geography, e.g. `trait "Salt tolerance", crop "Rice"`. Values are
// quoted verbatim. A query with no non-blank field reads "all genetic data".
func Summary(q types.SearchParams) string {
	var parts []string
	for _, f := range q.Fields() {
		if strings.TrimSpace(f.Value) == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf(`%s "%s"`, f.Name, f.Value))
	}
	if len(parts) == 0 {
		return fallbackSummary
	}
	return strings.Join(parts, ", ")
}

// Heading returns "Results for " followed by the query summary.
func Heading(q types.SearchParams) string {
	return "Results for " + Summary(q)
}

// Badge returns the total record count, e.g. "5 results found".
func Badge(r types.ResearchResult) string {
	return fmt.Sprintf("%d results found", r.Total())
}

// Card is the display form of one record.
type Card struct {
	Title       string
	Subtitle    string
	Description string
	// Lines are labelled details; absent optional fields produce no line.
	Lines []Line
}

// Line is one labelled detail of a card.
type Line struct {
	Label string
	Value string
}

// Cards returns the cards for category t of r, in result order.
func Cards(r types.ResearchResult, t Tab) []Card {
	var cards []Card
	switch t {
	case Genes:
		for _, g := range r.Genes {
			cards = append(cards, GeneCard(g))
		}
	case QTLs:
		for _, q := range r.QTLs {
			cards = append(cards, QTLCard(q))
		}
	case Markers:
		for _, m := range r.Markers {
			cards = append(cards, MarkerCard(m))
		}
	}
	return cards
}

// GeneCard shows the description, function, and source.
func GeneCard(g types.Gene) Card {
	c := Card{Title: g.Name, Subtitle: g.ID, Description: g.Description}
	if g.Function != "" {
		c.Lines = append(c.Lines, Line{"Function", g.Function})
	}
	if g.Source != "" {
		c.Lines = append(c.Lines, Line{"Source", g.Source})
	}
	return c
}

// QTLCard shows the description, location, and associated traits.
func QTLCard(q types.QTL) Card {
	c := Card{Title: q.Name, Subtitle: q.ID, Description: q.Description}
	if q.Location != "" {
		c.Lines = append(c.Lines, Line{"Location", q.Location})
	}
	if len(q.AssociatedTraits) > 0 {
		c.Lines = append(c.Lines, Line{"Associated Traits", strings.Join(q.AssociatedTraits, ", ")})
	}
	return c
}

// MarkerCard shows the marker type, position, and associations.
func MarkerCard(m types.Marker) Card {
	c := Card{Title: m.Name, Subtitle: "Type: " + m.Type}
	if m.Position != "" {
		c.Lines = append(c.Lines, Line{"Position", m.Position})
	}
	if len(m.AssociatedWith) > 0 {
		c.Lines = append(c.Lines, Line{"Associated With", strings.Join(m.AssociatedWith, ", ")})
	}
	return c
}

// FormatJSON writes r as indented JSON to w.
func FormatJSON(r types.ResearchResult, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
