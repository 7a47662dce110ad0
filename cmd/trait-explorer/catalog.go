// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/trait-explorer/internal/store"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the local sqlite catalog (import, stats)",
	Long: `Catalog manages the sqlite database searched by the store backend.
The database location is store.path (default data/catalog.db).`,
}

// --- import subcommand ---

var catalogImportCmd = &cobra.Command{
	Use:   "import <catalog.yaml>",
	Short: "Replace the catalog with the records in a YAML file",
	Long: `Import validates a YAML catalog of genes, QTLs, and markers, each tagged
with the crops, varieties, traits, and geographies it applies to, and
replaces the stored catalog with it in a single transaction.`,
	Args: cobra.ExactArgs(1),
	RunE: runCatalogImport,
}

func runCatalogImport(cmd *cobra.Command, args []string) error {
	c, err := store.LoadCatalog(args[0])
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	s, err := store.NewStore(cfg.Store, logger)
	if err != nil {
		return err
	}
	defer s.Close()

	summary, err := s.Ingest(cmd.Context(), c)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "imported %d records (genes: %d, qtls: %d, markers: %d) into %s\n",
		summary.Total(), summary.Genes, summary.QTLs, summary.Markers, cfg.Store.Path)
	return nil
}

// --- stats subcommand ---

var catalogStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show record counts in the catalog",
	RunE:  runCatalogStats,
}

func runCatalogStats(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	s, err := store.NewStore(cfg.Store, logger)
	if err != nil {
		return err
	}
	defer s.Close()

	st, err := s.Stats(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "%-10s %d\n", "genes", st.Genes)
	fmt.Fprintf(os.Stdout, "%-10s %d\n", "qtls", st.QTLs)
	fmt.Fprintf(os.Stdout, "%-10s %d\n", "markers", st.Markers)
	fmt.Fprintf(os.Stdout, "%-10s %d\n", "total", st.Total())
	if st.IngestedAt != "" {
		fmt.Fprintf(os.Stdout, "\nlast import: %s\n", st.IngestedAt)
	}
	return nil
}

func init() {
	catalogCmd.AddCommand(catalogImportCmd)
	catalogCmd.AddCommand(catalogStatsCmd)
	rootCmd.AddCommand(catalogCmd)
}
