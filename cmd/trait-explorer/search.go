// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/trait-explorer/internal/display"
	"github.com/pdiddy/trait-explorer/internal/form"
	"github.com/pdiddy/trait-explorer/internal/lifecycle"
	"github.com/pdiddy/trait-explorer/internal/notify"
	"github.com/pdiddy/trait-explorer/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search for genes, QTLs, and markers",
	Long: `Search looks up genetic records matching any combination of crop,
variety, trait, and geography. At least one filter must be non-blank.

Results are printed as styled text (one tab or all three), markdown rendered
for the terminal, or JSON. Notifications go to stderr; the command exits
non-zero when the search is rejected or fails.`,
	Example: `  trait-explorer search --crop Rice
  trait-explorer search --trait "Salt tolerance" --tab qtls
  trait-explorer search --trait drought --format json`,
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	format := types.OutputFormat(viper.GetString("display.format"))
	tabName, _ := cmd.Flags().GetString("tab")
	render, err := resultRenderer(format, tabName)
	if err != nil {
		return err
	}

	svc, closeFn, err := openService(cfg, nil)
	if err != nil {
		return err
	}
	defer closeFn()

	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
	notifier := notify.Multi(notify.NewWriterNotifier(stderr), notify.LogNotifier{Logger: logger})
	ctrl := lifecycle.New(svc, notifier, logger)

	var snap lifecycle.Snapshot
	f := form.New(func(p types.SearchParams) {
		if format != types.FormatJSON {
			fmt.Fprintln(stderr, display.LoadingMessage)
		}
		snap = ctrl.Submit(cmd.Context(), p)
	}, notifier)
	f.Crop, _ = cmd.Flags().GetString("crop")
	f.Variety, _ = cmd.Flags().GetString("variety")
	f.Trait, _ = cmd.Flags().GetString("trait")
	f.Geography, _ = cmd.Flags().GetString("geography")

	if err := f.Submit(ctrl.IsLoading()); err != nil {
		return err
	}
	if snap.State == lifecycle.Failed {
		return snap.Err
	}
	return render(snap.Result, stdout)
}

// resultRenderer picks the output function for format and tab. Tab "all"
// expands every category; it only applies to text output.
func resultRenderer(format types.OutputFormat, tab string) (func(types.ResearchResult, io.Writer) error, error) {
	switch format {
	case types.FormatText, "":
		if tab == "" || tab == "all" {
			return display.FormatTextAll, nil
		}
		t, err := display.ParseTab(tab)
		if err != nil {
			return nil, err
		}
		return func(r types.ResearchResult, w io.Writer) error {
			return display.FormatText(r, t, w)
		}, nil
	case types.FormatMarkdown:
		return func(r types.ResearchResult, w io.Writer) error {
			return display.FormatMarkdown(r, w, 0)
		}, nil
	case types.FormatJSON:
		return display.FormatJSON, nil
	default:
		return nil, fmt.Errorf("unsupported format %q: use text, markdown, or json", format)
	}
}

func init() {
	searchCmd.Flags().String("crop", "", "crop name (e.g. Rice, Wheat)")
	searchCmd.Flags().String("variety", "", "variety or cultivar (e.g. IR64)")
	searchCmd.Flags().String("trait", "", "trait of interest (e.g. Drought tolerance)")
	searchCmd.Flags().String("geography", "", "region (e.g. South Asia)")
	searchCmd.Flags().String("tab", "all", "category to show in text output: genes, qtls, markers, or all")
	searchCmd.Flags().String("format", "", "output format: text, markdown, or json (default from display.format)")

	_ = viper.BindPFlag("display.format", searchCmd.Flags().Lookup("format"))

	rootCmd.AddCommand(searchCmd)
}
