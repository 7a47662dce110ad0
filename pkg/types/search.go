// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the shared data contracts of trait-explorer: the
// search request, the genetic records it returns, and the result set that
// carries them to the display layer.
package types

import (
	"strings"
	"time"
)

// TimestampLayout is the ISO-8601 layout used for ResearchResult.Timestamp.
// Timestamps are always rendered in UTC with millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// SearchParams holds the free-text filters entered by the user. Every field
// is optional; a submitted SearchParams carries at least one non-blank field.
type SearchParams struct {
	// Crop filters by crop name (e.g. "Rice", "Wheat").
	Crop string `json:"crop,omitempty" yaml:"crop,omitempty" mapstructure:"crop"`

	// Variety filters by cultivar or variety (e.g. "IR64", "Basmati").
	Variety string `json:"variety,omitempty" yaml:"variety,omitempty" mapstructure:"variety"`

	// Trait filters by phenotypic trait (e.g. "Drought tolerance").
	Trait string `json:"trait,omitempty" yaml:"trait,omitempty" mapstructure:"trait"`

	// Geography filters by region (e.g. "South Asia").
	Geography string `json:"geography,omitempty" yaml:"geography,omitempty" mapstructure:"geography"`
}

// Field is one named SearchParams value.
type Field struct {
	Name  string
	Value string
}

// Fields returns the parameters in summary order: trait, crop, variety,
// geography. Empty fields are included.
func (p SearchParams) Fields() []Field {
	return []Field{
		{Name: "trait", Value: p.Trait},
		{Name: "crop", Value: p.Crop},
		{Name: "variety", Value: p.Variety},
		{Name: "geography", Value: p.Geography},
	}
}

// IsBlank reports whether every field is empty or whitespace only.
func (p SearchParams) IsBlank() bool {
	for _, f := range p.Fields() {
		if strings.TrimSpace(f.Value) != "" {
			return false
		}
	}
	return true
}

// ResearchResult is the answer to one search. Query echoes the parameters
// that produced it; Timestamp is assigned by the query service when the
// result is constructed.
type ResearchResult struct {
	Query     SearchParams `json:"query" yaml:"query"`
	Genes     []Gene       `json:"genes" yaml:"genes"`
	QTLs      []QTL        `json:"qtls" yaml:"qtls"`
	Markers   []Marker     `json:"markers" yaml:"markers"`
	Timestamp string       `json:"timestamp" yaml:"timestamp"`
}

// Total returns the number of records across all three categories.
func (r ResearchResult) Total() int {
	return len(r.Genes) + len(r.QTLs) + len(r.Markers)
}

// FormatTimestamp renders t in TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
