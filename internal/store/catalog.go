// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/trait-explorer/pkg/types"
)

// Facets tags a catalog record with the values a search filters on.
type Facets struct {
	Crops       []string `yaml:"crops,omitempty"`
	Varieties   []string `yaml:"varieties,omitempty"`
	Traits      []string `yaml:"traits,omitempty"`
	Geographies []string `yaml:"geographies,omitempty"`
}

// CatalogGene is a gene with its facets.
type CatalogGene struct {
	types.Gene `yaml:",inline"`
	Facets     `yaml:",inline"`
}

// CatalogQTL is a QTL with its facets.
type CatalogQTL struct {
	types.QTL `yaml:",inline"`
	Facets    `yaml:",inline"`
}

// CatalogMarker is a marker with its facets.
type CatalogMarker struct {
	types.Marker `yaml:",inline"`
	Facets       `yaml:",inline"`
}

// Catalog is the on-disk YAML representation of the searchable records.
//
//	genes:
//	  - id: g1
//	    name: DREB1A
//	    description: Dehydration-responsive element-binding protein 1A
//	    crops: [Rice]
//	    traits: [Drought tolerance]
//	qtls: [...]
//	markers: [...]
type Catalog struct {
	Genes   []CatalogGene   `yaml:"genes"`
	QTLs    []CatalogQTL    `yaml:"qtls"`
	Markers []CatalogMarker `yaml:"markers"`
}

// Len returns the number of records in the catalog.
func (c Catalog) Len() int {
	return len(c.Genes) + len(c.QTLs) + len(c.Markers)
}

// Validate checks that every record has an ID and a name, and that IDs are
// unique within each category.
func (c Catalog) Validate() error {
	check := func(kind string, seen map[string]bool, id, name string) error {
		if id == "" {
			return fmt.Errorf("%s %q has no id", kind, name)
		}
		if name == "" {
			return fmt.Errorf("%s %s has no name", kind, id)
		}
		if seen[id] {
			return fmt.Errorf("duplicate %s id %s", kind, id)
		}
		seen[id] = true
		return nil
	}

	seen := map[string]bool{}
	for _, g := range c.Genes {
		if err := check(kindGene, seen, g.ID, g.Name); err != nil {
			return err
		}
	}
	seen = map[string]bool{}
	for _, q := range c.QTLs {
		if err := check(kindQTL, seen, q.ID, q.Name); err != nil {
			return err
		}
	}
	seen = map[string]bool{}
	for _, m := range c.Markers {
		if err := check(kindMarker, seen, m.ID, m.Name); err != nil {
			return err
		}
	}
	return nil
}

// LoadCatalog reads and validates a YAML catalog file.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing catalog %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog %s: %w", path, err)
	}
	return &c, nil
}
