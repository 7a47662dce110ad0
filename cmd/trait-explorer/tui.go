// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/trait-explorer/internal/notify"
	"github.com/pdiddy/trait-explorer/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Explore results interactively in the terminal",
	Long: `Tui opens a full-screen explorer: fill in any of crop, variety, trait,
and geography, press enter to search, then switch between the genes, QTLs,
and markers tabs with the arrow keys or 1-3. Logs go to logging.file, if set.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		svc, closeFn, err := openService(cfg, nil)
		if err != nil {
			return err
		}
		defer closeFn()

		return tui.Run(cmd.Context(), svc, notify.LogNotifier{Logger: logger})
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
