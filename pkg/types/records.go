// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Gene is a gene associated with the searched trait.
type Gene struct {
	// ID is unique within a result set (e.g. "g1").
	ID string `json:"id" yaml:"id"`

	// Name is the gene symbol (e.g. "DREB1A").
	Name string `json:"name" yaml:"name"`

	// Description is the full gene name or a short summary.
	Description string `json:"description" yaml:"description"`

	// Function describes the molecular or physiological role, if known.
	Function string `json:"function,omitempty" yaml:"function,omitempty"`

	// Source names the database or publication the record came from.
	Source string `json:"source,omitempty" yaml:"source,omitempty"`
}

// QTL is a quantitative trait locus.
type QTL struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`

	// Location is the chromosomal interval (e.g. "Chromosome 1: 15.2-18.7 cM").
	Location string `json:"location,omitempty" yaml:"location,omitempty"`

	// AssociatedTraits lists trait names in source order. Duplicates are kept.
	AssociatedTraits []string `json:"associatedTraits,omitempty" yaml:"associated_traits,omitempty"`
}

// Marker is a genetic marker.
type Marker struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`

	// Type is a free-text marker technology label such as "SSR" or "SNP".
	Type string `json:"type" yaml:"type"`

	// Position is the map position (e.g. "Chromosome 3, 24.8 cM").
	Position string `json:"position,omitempty" yaml:"position,omitempty"`

	// AssociatedWith names the QTLs, traits, or genes the marker is linked to.
	AssociatedWith []string `json:"associatedWith,omitempty" yaml:"associated_with,omitempty"`
}
