// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// sampleCatalog is the YAML catalog shipped with the repository.
var sampleCatalog = filepath.Join("data", "catalog.yaml")

func binPath() string { return filepath.Join(binDir, binName) }

// Catalog builds the CLI and imports the sample catalog into data/catalog.db.
func Catalog() error {
	mg.Deps(Build)
	return sh.RunV(binPath(), "catalog", "import", sampleCatalog)
}

// Demo runs a sample search against the sample catalog.
func Demo() error {
	mg.Deps(Catalog)
	return sh.RunV(binPath(), "search", "--backend", "store", "--crop", "Rice", "--trait", "salt tolerance")
}
